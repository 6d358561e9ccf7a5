package main

import "math"

// Motor ids, lowest register first.
const (
	MotorLow     = 1
	MotorLowMid  = 2
	MotorHighMid = 3
	MotorHigh    = 4
)

const (
	MinPitch    = 0
	MaxPitch    = 127
	MaxVelocity = 127
	MaxPWM      = 255
)

// MotorFor maps a pitch onto one of the four motors.
// Breakpoints: <40, <55, <70, rest.
func MotorFor(pitch int) int {
	switch {
	case pitch < 40:
		return MotorLow
	case pitch < 55:
		return MotorLowMid
	case pitch < 70:
		return MotorHighMid
	default:
		return MotorHigh
	}
}

// FrequencyFor is a linear map anchored at C2 (36) -> 50.
// Not clamped: pitches below 26 give zero or negative values.
func FrequencyFor(pitch int) int {
	return 50 + (pitch-36)*5
}

// IntensityFor scales a velocity in [0,127] to a PWM duty in [0,255].
// Out-of-range velocities are clamped first.
func IntensityFor(velocity int) int {
	v := min(max(velocity, 0), MaxVelocity)
	return int(math.Round(float64(v) / MaxVelocity * MaxPWM))
}

func validPitch(pitch int) bool {
	return pitch >= MinPitch && pitch <= MaxPitch
}

// heldNote is a sounding pitch waiting for its note-off.
type heldNote struct {
	startTick int
	velocity  int
}

// NoteTable tracks which pitches are currently sounding within one track.
// One entry per pitch: a second note-on for a sounding pitch replaces the
// first (last write wins), truncating the earlier note.
type NoteTable struct {
	active map[int]heldNote
}

func NewNoteTable() *NoteTable {
	return &NoteTable{active: make(map[int]heldNote)}
}

func (t *NoteTable) ApplyNoteOn(pitch, tick, velocity int) {
	if prev, ok := t.active[pitch]; ok {
		logger.Debug("mapping: duplicate note-on overwrites sounding note",
			"pitch", pitch, "prev_start", prev.startTick, "new_start", tick)
	}
	t.active[pitch] = heldNote{startTick: tick, velocity: velocity}
}

// ApplyNoteOff pops the sounding entry for pitch, if any.
func (t *NoteTable) ApplyNoteOff(pitch int) (heldNote, bool) {
	n, ok := t.active[pitch]
	if ok {
		delete(t.active, pitch)
	}
	return n, ok
}

// Len is the number of pitches still sounding.
func (t *NoteTable) Len() int {
	return len(t.active)
}
