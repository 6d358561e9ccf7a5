package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeLibrary(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, p := range []string{"piano/b.mid", "piano/a.MID", "piano/notes.txt", "guitar/riff.midi", "readme.md"} {
		full := filepath.Join(dir, p)
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, nil, 0o644))
	}
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "drums"), 0o755))
	return dir
}

func TestListInstruments(t *testing.T) {
	dir := makeLibrary(t)
	inst, err := ListInstruments(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"drums", "guitar", "piano"}, inst)
}

func TestListSongs(t *testing.T) {
	dir := makeLibrary(t)
	songs, err := ListSongs(dir, "piano")
	require.NoError(t, err)
	require.Len(t, songs, 2)
	assert.Equal(t, "a.MID", songs[0].Name)
	assert.Equal(t, filepath.Join(dir, "piano", "b.mid"), songs[1].Path)
	assert.Equal(t, "piano", songs[1].Instrument)

	empty, err := ListSongs(dir, "drums")
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = ListSongs(dir, "violin")
	assert.Error(t, err)
}

func TestListLibrary(t *testing.T) {
	all, err := ListLibrary(makeLibrary(t))
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = ListLibrary(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
