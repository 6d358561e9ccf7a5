package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionLogWritesHeaderAndRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.csv")
	l, err := CreateSessionLog(path)
	require.NoError(t, err)
	require.NoError(t, l.Append(NoteEvent{StartTick: 0, Motor: 1, Frequency: 50, Intensity: 255, Duration: 1}))
	require.NoError(t, l.Append(NoteEvent{StartTick: 480, Motor: 4, Frequency: 230, Intensity: 129, Duration: 0.257}))
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "timestamp,motor_id,frequency,pwm,duration\n0,1,50,255,1.000\n480,4,230,129,0.257\n", string(data))
}

func TestSessionLogTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.csv")
	require.NoError(t, os.WriteFile(path, []byte("stale\nstale\n"), 0o644))

	l, err := CreateSessionLog(path)
	require.NoError(t, err)
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "timestamp,motor_id,frequency,pwm,duration\n", string(data))
}

func TestSessionLogBadPath(t *testing.T) {
	_, err := CreateSessionLog(filepath.Join(t.TempDir(), "missing", "log.csv"))
	assert.Error(t, err)
}
