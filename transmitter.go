package main

import "io"

// Transmitter writes one frame per event to the output channel. A nil channel
// runs in simulation mode: frames are logged, nothing is written. The first
// failed write drops the channel for the rest of the session.
type Transmitter struct {
	out    io.Writer
	sent   int
	failed bool
}

func NewTransmitter(out io.Writer) *Transmitter {
	if out == nil {
		logger.Info("transmitter: no output channel, simulation mode")
	}
	return &Transmitter{out: out}
}

// Send transmits ev and reports whether bytes reached the channel.
func (t *Transmitter) Send(ev NoteEvent) bool {
	f := FrameFor(ev)
	if t.out == nil {
		logger.Debug("transmitter: simulated", "frame", f.String())
		return false
	}
	data := f.Encode()
	if _, err := t.out.Write(data); err != nil {
		logger.Warn("transmitter: write failed, switching to simulation mode", "err", err)
		t.out = nil
		t.failed = true
		return false
	}
	t.sent++
	logger.Debug("transmitter: frame sent", "frame", f.String())
	return true
}

// Simulated reports whether frames are currently being dropped.
func (t *Transmitter) Simulated() bool {
	return t.out == nil
}

// Sent is the number of frames written to the channel.
func (t *Transmitter) Sent() int {
	return t.sent
}

// Failed reports whether the channel was lost mid-session.
func (t *Transmitter) Failed() bool {
	return t.failed
}
