package main

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

// Keyboards matching any of these are picked first in live mode.
var preferredInputs = []string{"Keyboard", "Piano", "Launchkey"}

// Virtual/system ports that are never auto-connected.
var excludedInputs = []string{"Midi Through", "Through Port", "Dummy"}

const midiRescanInterval = time.Second

// MIDIWatcher keeps a connection to a live MIDI input and reconnects when the
// device is unplugged and plugged back in. onNoteStart runs on the driver's
// listener goroutine.
type MIDIWatcher struct {
	mu           sync.Mutex
	drv          *rtmididrv.Driver
	inPort       drivers.In
	stopFn       func()
	connected    bool
	selectedName string
	lastRescanAt time.Time

	onNoteStart func(pitch, velocity int)
}

func NewMIDIWatcher(onNoteStart func(pitch, velocity int)) (*MIDIWatcher, error) {
	drv, err := rtmididrv.New()
	if err != nil {
		return nil, fmt.Errorf("rtmididrv: %w", err)
	}
	return &MIDIWatcher{drv: drv, onNoteStart: onNoteStart}, nil
}

// Close shuts down the active connection and the driver.
func (m *MIDIWatcher) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closeConn()
	m.drv.Close()
}

// Run rescans once per second until ctx is done.
func (m *MIDIWatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(midiRescanInterval)
	defer ticker.Stop()
	m.Tick()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Tick()
		}
	}
}

// Tick scans for devices, connects to a preferred one and notices when the
// connected device disappears.
func (m *MIDIWatcher) Tick() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	if !m.lastRescanAt.IsZero() && now.Sub(m.lastRescanAt) < midiRescanInterval {
		return
	}
	m.lastRescanAt = now

	inputs := m.listInputs()
	if m.connected {
		for _, n := range inputs {
			if n == m.selectedName {
				return
			}
		}
		logger.Warn("midi: device disappeared", "device", m.selectedName)
		m.closeConn()
		m.lastRescanAt = time.Time{}
		return
	}

	cand, ok := pickInput(inputs)
	if !ok {
		return
	}
	if err := m.openByName(cand); err != nil {
		logger.Error("midi: connect failed", "device", cand, "err", err)
	}
}

func (m *MIDIWatcher) listInputs() []string {
	ins, err := m.drv.Ins()
	if err != nil {
		logger.Error("midi: list inputs failed", "err", err)
		return nil
	}
	var names []string
	for _, in := range ins {
		names = append(names, in.String())
	}
	names = filterInputs(names)
	logger.Debug("midi: inputs found", "count", len(names), "devices", strings.Join(names, ", "))
	return names
}

func filterInputs(names []string) []string {
	var out []string
	for _, name := range names {
		excluded := false
		for _, pat := range excludedInputs {
			if containsCI(name, pat) {
				excluded = true
				break
			}
		}
		if !excluded {
			out = append(out, name)
		}
	}
	return out
}

// pickInput prefers a known keyboard, else takes the only input available.
func pickInput(inputs []string) (string, bool) {
	for _, pat := range preferredInputs {
		for _, name := range inputs {
			if containsCI(name, pat) {
				return name, true
			}
		}
	}
	if len(inputs) == 1 {
		return inputs[0], true
	}
	return "", false
}

func (m *MIDIWatcher) closeConn() {
	if m.stopFn != nil {
		m.stopFn()
		m.stopFn = nil
	}
	if m.inPort != nil {
		_ = m.inPort.Close()
		m.inPort = nil
	}
	m.connected = false
	m.selectedName = ""
}

func (m *MIDIWatcher) openByName(name string) error {
	ins, err := m.drv.Ins()
	if err != nil {
		return err
	}
	var found drivers.In
	for _, in := range ins {
		if in.String() == name {
			found = in
			break
		}
	}
	if found == nil {
		return fmt.Errorf("input %q not found", name)
	}
	if err := found.Open(); err != nil {
		return fmt.Errorf("open %q: %w", name, err)
	}

	stop, err := midi.ListenTo(found, func(msg midi.Message, _ int32) {
		var ch, key, vel uint8
		if msg.GetNoteStart(&ch, &key, &vel) {
			logger.Debug("midi: note start", "ch", ch, "key", key, "vel", vel)
			m.onNoteStart(int(key), int(vel))
		}
	}, midi.HandleError(func(listenErr error) {
		logger.Warn("midi: listener error", "device", name, "err", listenErr)
		// closeConn stops the listener, so it cannot run on this goroutine.
		go func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			if m.connected && m.selectedName == name {
				m.closeConn()
				m.lastRescanAt = time.Time{}
			}
		}()
	}))
	if err != nil {
		_ = found.Close()
		return fmt.Errorf("listen %q: %w", name, err)
	}

	m.inPort = found
	m.stopFn = stop
	m.connected = true
	m.selectedName = name
	logger.Info("midi: connected", "device", name)
	return nil
}

// LiveMapper turns key presses into fixed-length vibration pulses.
type LiveMapper struct {
	mu    sync.Mutex
	tx    *Transmitter
	pulse float64
}

func NewLiveMapper(tx *Transmitter, pulse time.Duration) *LiveMapper {
	return &LiveMapper{tx: tx, pulse: roundMillis(pulse.Seconds())}
}

// NoteStart maps a pressed key with the same rules as file playback.
func (l *LiveMapper) NoteStart(pitch, velocity int) {
	if !validPitch(pitch) || velocity <= 0 || l.pulse <= 0 {
		return
	}
	ev := NoteEvent{
		Motor:     MotorFor(pitch),
		Frequency: FrequencyFor(pitch),
		Intensity: IntensityFor(velocity),
		Duration:  l.pulse,
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.tx.Send(ev)
}
