package main

import "math"

// NoteEvent is one actuation derived from a matched note-on/note-off pair.
// Duration is in seconds, rounded to the millisecond, always > 0.
type NoteEvent struct {
	StartTick int
	Motor     int
	Frequency int
	Intensity int
	Duration  float64
}

// ExtractEvents walks every track and emits a NoteEvent each time a sounding
// pitch ends. Tracks are time-independent: the tick counter and the note
// table are reset at the start of each one. Output is in discovery order.
func ExtractEvents(tl *Timeline, bpm float64) []NoteEvent {
	var events []NoteEvent
	if bpm <= 0 || tl.TicksPerBeat <= 0 {
		logger.Warn("extract: invalid timing, nothing to extract", "bpm", bpm, "ticks_per_beat", tl.TicksPerBeat)
		return events
	}
	secondsPerTick := 60 / (bpm * float64(tl.TicksPerBeat))

	discarded := 0
	for ti, track := range tl.Tracks {
		tick := 0
		notes := NewNoteTable()
		for _, msg := range track {
			tick += msg.Delta
			if msg.Kind != KindNoteOn && msg.Kind != KindNoteOff {
				continue
			}
			if !validPitch(msg.Pitch) {
				logger.Debug("extract: pitch out of range, ignored", "track", ti, "pitch", msg.Pitch)
				continue
			}

			if msg.Kind == KindNoteOn && msg.Velocity > 0 {
				notes.ApplyNoteOn(msg.Pitch, tick, msg.Velocity)
				continue
			}

			held, ok := notes.ApplyNoteOff(msg.Pitch)
			if !ok {
				continue
			}
			dur := roundMillis(float64(tick-held.startTick) * secondsPerTick)
			if dur <= 0 {
				discarded++
				logger.Debug("extract: non-positive duration, discarded",
					"track", ti, "pitch", msg.Pitch, "start", held.startTick, "end", tick)
				continue
			}
			events = append(events, NoteEvent{
				StartTick: held.startTick,
				Motor:     MotorFor(msg.Pitch),
				Frequency: FrequencyFor(msg.Pitch),
				Intensity: IntensityFor(held.velocity),
				Duration:  dur,
			})
		}
		if notes.Len() > 0 {
			logger.Debug("extract: notes left sounding at end of track", "track", ti, "count", notes.Len())
		}
	}
	logger.Info("extract: events ready", "events", len(events), "discarded", discarded, "bpm", bpm)
	return events
}

func roundMillis(sec float64) float64 {
	return math.Round(sec*1000) / 1000
}
