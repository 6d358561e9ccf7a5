package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrameEncode(t *testing.T) {
	for _, tc := range []struct {
		f    Frame
		want string
	}{
		{Frame{Motor: 1, Frequency: 50, PWM: 255, Duration: 1}, "1,50,255,1.00\n"},
		{Frame{Motor: 4, Frequency: 230, PWM: 129, Duration: 0.257}, "4,230,129,0.26\n"},
		{Frame{Motor: 2, Frequency: -130, PWM: 2, Duration: 0.001}, "2,-130,2,0.00\n"},
		{Frame{Motor: 3, Frequency: 175, PWM: 100, Duration: 12.5}, "3,175,100,12.50\n"},
	} {
		assert.Equal(t, tc.want, string(tc.f.Encode()))
	}
}

func TestFrameFor(t *testing.T) {
	ev := NoteEvent{StartTick: 42, Motor: 3, Frequency: 160, Intensity: 99, Duration: 0.75}
	assert.Equal(t, Frame{Motor: 3, Frequency: 160, PWM: 99, Duration: 0.75}, FrameFor(ev))
}
