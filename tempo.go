package main

// DefaultBPM applies when a song declares no usable tempo.
const DefaultBPM = 120.0

const microsPerMinute = 60_000_000.0

// ResolveTempo returns the BPM of the first tempo change found, scanning
// tracks in order and messages in order within each track. Later tempo
// changes are ignored. A non-positive tempo value falls back to DefaultBPM.
func ResolveTempo(tl *Timeline) float64 {
	for ti, track := range tl.Tracks {
		for _, msg := range track {
			if msg.Kind != KindTempo {
				continue
			}
			if msg.Tempo <= 0 {
				logger.Warn("tempo: degenerate tempo value, using default", "track", ti, "tempo", msg.Tempo, "bpm", DefaultBPM)
				return DefaultBPM
			}
			bpm := microsPerMinute / float64(msg.Tempo)
			logger.Debug("tempo: resolved", "track", ti, "tempo_us", msg.Tempo, "bpm", bpm)
			return bpm
		}
	}
	logger.Debug("tempo: none declared, using default", "bpm", DefaultBPM)
	return DefaultBPM
}
