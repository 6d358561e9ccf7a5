package main

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// recordingSleeper records requested sleeps without waiting.
type recordingSleeper struct {
	mu      sync.Mutex
	slept   []time.Duration
	onSleep func(index int)
}

func (r *recordingSleeper) Sleep(_ context.Context, d time.Duration) {
	r.mu.Lock()
	r.slept = append(r.slept, d)
	i := len(r.slept) - 1
	r.mu.Unlock()
	if r.onSleep != nil {
		r.onSleep(i)
	}
}

func (r *recordingSleeper) durations() []time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]time.Duration(nil), r.slept...)
}

// blockingSleeper sleeps until the session is cancelled.
type blockingSleeper struct{}

func (blockingSleeper) Sleep(ctx context.Context, _ time.Duration) {
	<-ctx.Done()
}

type smfNote struct {
	delta uint32
	msg   []byte
}

// writeSong writes a one-track SMF at 480 ticks per beat.
func writeSong(t *testing.T, dir, name string, bpm float64, notes ...smfNote) string {
	t.Helper()
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(480)

	var tr smf.Track
	if bpm > 0 {
		tr.Add(0, smf.MetaTempo(bpm))
	}
	for _, n := range notes {
		tr.Add(n.delta, n.msg)
	}
	tr.Close(0)
	require.NoError(t, s.Add(tr))

	path := filepath.Join(dir, name)
	require.NoError(t, s.WriteFile(path))
	return path
}

func on(delta uint32, key, vel uint8) smfNote {
	return smfNote{delta: delta, msg: midi.NoteOn(0, key, vel)}
}

func off(delta uint32, key uint8) smfNote {
	return smfNote{delta: delta, msg: midi.NoteOff(0, key)}
}

func noteOn(delta, pitch, vel int) RawMessage {
	return RawMessage{Kind: KindNoteOn, Delta: delta, Pitch: pitch, Velocity: vel}
}

func noteOff(delta, pitch int) RawMessage {
	return RawMessage{Kind: KindNoteOff, Delta: delta, Pitch: pitch}
}

func tempo(delta, micros int) RawMessage {
	return RawMessage{Kind: KindTempo, Delta: delta, Tempo: micros}
}
