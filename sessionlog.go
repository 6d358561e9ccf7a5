package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

var sessionLogHeader = []string{"timestamp", "motor_id", "frequency", "pwm", "duration"}

// SessionLog is the CSV record of every dispatched event, in dispatch order.
type SessionLog struct {
	f *os.File
	w *csv.Writer
}

// CreateSessionLog truncates path and writes the header row.
func CreateSessionLog(path string) (*SessionLog, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("session log: %w", err)
	}
	l := &SessionLog{f: f, w: csv.NewWriter(f)}
	if err := l.w.Write(sessionLogHeader); err != nil {
		f.Close()
		return nil, fmt.Errorf("session log: header: %w", err)
	}
	return l, nil
}

// Append records one dispatched event.
func (l *SessionLog) Append(ev NoteEvent) error {
	return l.w.Write([]string{
		strconv.Itoa(ev.StartTick),
		strconv.Itoa(ev.Motor),
		strconv.Itoa(ev.Frequency),
		strconv.Itoa(ev.Intensity),
		strconv.FormatFloat(ev.Duration, 'f', 3, 64),
	})
}

// Flush pushes buffered rows to the file.
func (l *SessionLog) Flush() error {
	l.w.Flush()
	return l.w.Error()
}

// Close flushes and closes the file.
func (l *SessionLog) Close() error {
	ferr := l.Flush()
	cerr := l.f.Close()
	if ferr != nil {
		return fmt.Errorf("session log: flush: %w", ferr)
	}
	return cerr
}
