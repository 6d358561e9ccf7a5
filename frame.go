package main

import (
	"fmt"
	"strconv"
)

// Frame is one vibration command for the actuator board.
type Frame struct {
	Motor     int
	Frequency int
	PWM       int
	Duration  float64 // seconds
}

// FrameFor builds the wire command for a note event.
func FrameFor(ev NoteEvent) Frame {
	return Frame{
		Motor:     ev.Motor,
		Frequency: ev.Frequency,
		PWM:       ev.Intensity,
		Duration:  ev.Duration,
	}
}

// Encode builds the on-wire representation, one ASCII line:
//
//	motor_id,frequency,pwm,duration\n
//
// with duration fixed at two decimals.
func (f Frame) Encode() []byte {
	out := make([]byte, 0, 24)
	out = strconv.AppendInt(out, int64(f.Motor), 10)
	out = append(out, ',')
	out = strconv.AppendInt(out, int64(f.Frequency), 10)
	out = append(out, ',')
	out = strconv.AppendInt(out, int64(f.PWM), 10)
	out = append(out, ',')
	out = strconv.AppendFloat(out, f.Duration, 'f', 2, 64)
	out = append(out, '\n')
	return out
}

func (f Frame) String() string {
	return fmt.Sprintf("motor=%d freq=%d pwm=%d dur=%.2fs", f.Motor, f.Frequency, f.PWM, f.Duration)
}
