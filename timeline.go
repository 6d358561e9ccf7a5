package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// ErrLoad is returned (wrapped) when a song cannot be parsed at all.
var ErrLoad = errors.New("timeline: load failed")

// MessageKind classifies a timeline entry for the extractor.
type MessageKind int

const (
	KindOther MessageKind = iota
	KindNoteOn
	KindNoteOff
	KindTempo
)

// RawMessage is one entry of a track. Delta is in ticks since the previous
// message of the same track. Tempo is microseconds per quarter note and is
// only meaningful for KindTempo.
type RawMessage struct {
	Kind     MessageKind
	Pitch    int
	Velocity int
	Delta    int
	Tempo    int
}

// Track is a chronological message stream.
type Track []RawMessage

// Timeline is a parsed song: independent tracks plus the tick resolution.
type Timeline struct {
	TicksPerBeat int
	Tracks       []Track
}

// LoadTimeline reads a Standard MIDI File from disk.
func LoadTimeline(path string) (*Timeline, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoad, err)
	}
	defer f.Close()
	return ReadTimeline(bufio.NewReader(f))
}

// ReadTimeline parses a Standard MIDI File. Files using SMPTE time codes are
// rejected since the tempo model needs a ticks-per-beat resolution.
func ReadTimeline(r io.Reader) (*Timeline, error) {
	data, err := smf.ReadFrom(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoad, err)
	}
	ticks, ok := data.TimeFormat.(smf.MetricTicks)
	if !ok {
		return nil, fmt.Errorf("%w: unsupported time format %v", ErrLoad, data.TimeFormat)
	}
	if ticks.Resolution() == 0 {
		return nil, fmt.Errorf("%w: zero ticks per beat", ErrLoad)
	}

	tl := &Timeline{
		TicksPerBeat: int(ticks.Resolution()),
		Tracks:       make([]Track, 0, len(data.Tracks)),
	}
	for _, tr := range data.Tracks {
		track := make(Track, 0, len(tr))
		for _, ev := range tr {
			track = append(track, convertMessage(ev.Delta, ev.Message))
		}
		tl.Tracks = append(tl.Tracks, track)
	}
	logger.Debug("timeline: loaded", "tracks", len(tl.Tracks), "ticks_per_beat", tl.TicksPerBeat)
	return tl, nil
}

func convertMessage(delta uint32, msg smf.Message) RawMessage {
	raw := RawMessage{Kind: KindOther, Delta: int(delta)}

	// Meta tempo: FF 51 03 tt tt tt
	if len(msg) == 6 && msg[0] == 0xFF && msg[1] == 0x51 && msg[2] == 0x03 {
		raw.Kind = KindTempo
		raw.Tempo = int(msg[3])<<16 | int(msg[4])<<8 | int(msg[5])
		return raw
	}
	var bpm float64
	if msg.GetMetaTempo(&bpm) {
		raw.Kind = KindTempo
		if bpm > 0 {
			raw.Tempo = int(math.Round(microsPerMinute / bpm))
		}
		return raw
	}

	var ch, key, vel uint8
	m := midi.Message(msg)
	switch {
	case m.GetNoteStart(&ch, &key, &vel):
		raw.Kind = KindNoteOn
		raw.Pitch = int(key)
		raw.Velocity = int(vel)
	case m.GetNoteEnd(&ch, &key):
		raw.Kind = KindNoteOff
		raw.Pitch = int(key)
	}
	return raw
}
