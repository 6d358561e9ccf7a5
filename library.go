package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Song is a playable file inside an instrument folder.
type Song struct {
	Instrument string `json:"instrument"`
	Name       string `json:"name"`
	Path       string `json:"path"`
}

// ListInstruments returns the instrument folders under dir, sorted.
func ListInstruments(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("library: %w", err)
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			out = append(out, e.Name())
		}
	}
	sort.Strings(out)
	return out, nil
}

// ListSongs returns the .mid files of one instrument folder, sorted by name.
func ListSongs(dir, instrument string) ([]Song, error) {
	folder := filepath.Join(dir, instrument)
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, fmt.Errorf("library: %w", err)
	}
	var out []Song
	for _, e := range entries {
		if e.IsDir() || !isMIDIFile(e.Name()) {
			continue
		}
		out = append(out, Song{
			Instrument: instrument,
			Name:       e.Name(),
			Path:       filepath.Join(folder, e.Name()),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ListLibrary returns every song of every instrument.
func ListLibrary(dir string) ([]Song, error) {
	instruments, err := ListInstruments(dir)
	if err != nil {
		return nil, err
	}
	var all []Song
	for _, inst := range instruments {
		songs, err := ListSongs(dir, inst)
		if err != nil {
			return nil, err
		}
		all = append(all, songs...)
	}
	return all, nil
}

func isMIDIFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".mid" || ext == ".midi"
}
