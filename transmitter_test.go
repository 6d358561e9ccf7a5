package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type failingWriter struct {
	writes int
	failAt int
	buf    bytes.Buffer
}

func (w *failingWriter) Write(p []byte) (int, error) {
	w.writes++
	if w.writes >= w.failAt {
		return 0, errors.New("link lost")
	}
	return w.buf.Write(p)
}

func TestTransmitterWritesFrames(t *testing.T) {
	var buf bytes.Buffer
	tx := NewTransmitter(&buf)
	assert.True(t, tx.Send(NoteEvent{Motor: 1, Frequency: 50, Intensity: 255, Duration: 1}))
	assert.True(t, tx.Send(NoteEvent{Motor: 3, Frequency: 175, Intensity: 10, Duration: 0.333}))
	assert.Equal(t, "1,50,255,1.00\n3,175,10,0.33\n", buf.String())
	assert.Equal(t, 2, tx.Sent())
	assert.False(t, tx.Simulated())
}

func TestTransmitterSimulationMode(t *testing.T) {
	tx := NewTransmitter(nil)
	assert.False(t, tx.Send(NoteEvent{Motor: 1, Frequency: 50, Intensity: 255, Duration: 1}))
	assert.True(t, tx.Simulated())
	assert.Equal(t, 0, tx.Sent())
	assert.False(t, tx.Failed())
}

func TestTransmitterDegradesOnWriteFailure(t *testing.T) {
	w := &failingWriter{failAt: 2}
	tx := NewTransmitter(w)
	ev := NoteEvent{Motor: 2, Frequency: 100, Intensity: 50, Duration: 0.5}

	assert.True(t, tx.Send(ev))
	assert.False(t, tx.Send(ev))
	assert.False(t, tx.Send(ev))

	assert.Equal(t, 2, w.writes, "no writes after the channel is dropped")
	assert.True(t, tx.Failed())
	assert.True(t, tx.Simulated())
	assert.Equal(t, 1, tx.Sent())
	assert.Equal(t, "2,100,50,0.50\n", w.buf.String())
}
