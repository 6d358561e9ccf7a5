package main

import (
	"context"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func press(m pickerModel, key string) pickerModel {
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, _ := m.Update(msg)
	return next.(pickerModel)
}

func TestPickerNavigatesAndPlays(t *testing.T) {
	dir := makeLibrary(t)
	chordSong(t, filepath.Join(dir, "piano"))
	p := NewPlayer(nil, filepath.Join(t.TempDir(), "log.csv"))
	p.sleeper = blockingSleeper{}

	m := newPickerModel(context.Background(), p, dir)
	require.NoError(t, m.err)
	assert.Equal(t, []string{"drums", "guitar", "piano"}, m.instruments)
	assert.Contains(t, m.View(), "Select instrument")

	m = press(m, "down")
	m = press(m, "down")
	m = press(m, "enter")
	assert.Equal(t, "piano", m.instrument)
	require.Len(t, m.songs, 3) // a.MID, b.mid, chord.mid
	assert.Contains(t, m.View(), "chord.mid")

	m = press(m, "down")
	m = press(m, "down")
	m = press(m, "enter")
	assert.Equal(t, "playing chord.mid", m.message)
	assert.True(t, m.status.Playing)

	m = press(m, "s")
	assert.Equal(t, "stopping...", m.message)
	res, err := p.Wait()
	require.NoError(t, err)
	assert.Equal(t, StateStopped, res.State)

	m = press(m, "esc")
	assert.Equal(t, "", m.instrument)
	assert.Equal(t, 0, m.cursor)
}

func TestPickerStopWithoutPlayback(t *testing.T) {
	p := NewPlayer(nil, filepath.Join(t.TempDir(), "log.csv"))
	m := newPickerModel(context.Background(), p, makeLibrary(t))
	m = press(m, "s")
	assert.Equal(t, "nothing is playing", m.message)
	assert.Contains(t, m.statusLine(), "IDLE")
}

func TestPickerQuit(t *testing.T) {
	p := NewPlayer(nil, filepath.Join(t.TempDir(), "log.csv"))
	m := newPickerModel(context.Background(), p, makeLibrary(t))
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
