package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.bug.st/serial"
	"go.bug.st/serial/enumerator"
)

// ErrNoPort means no serial port matched the discovery patterns.
var ErrNoPort = errors.New("serial: no matching port")

// SerialPort wraps a go.bug.st/serial port as an output channel.
type SerialPort struct {
	name string
	port serial.Port
}

// OpenSerial opens the named serial device at the given baud rate and waits
// settle before returning so the first frame is not lost while a Bluetooth
// module finishes its link setup.
func OpenSerial(name string, baud int, settle time.Duration) (*SerialPort, error) {
	mode := &serial.Mode{BaudRate: baud}
	p, err := serial.Open(name, mode)
	if err != nil {
		return nil, fmt.Errorf("serial: open %s: %w", name, err)
	}
	logger.Info("serial: port opened", "device", name, "baud", baud)
	if settle > 0 {
		time.Sleep(settle)
	}
	return &SerialPort{name: name, port: p}, nil
}

// Write sends raw bytes to the device.
func (s *SerialPort) Write(b []byte) (int, error) {
	return s.port.Write(b)
}

func (s *SerialPort) String() string {
	return s.name
}

// Close closes the underlying serial port.
func (s *SerialPort) Close() error {
	logger.Info("serial: closing port", "device", s.name)
	return s.port.Close()
}

// PortInfo is a detected serial device.
type PortInfo struct {
	Name    string
	Product string
	IsUSB   bool
}

// ListPorts returns every serial device the OS reports.
func ListPorts() ([]PortInfo, error) {
	details, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, fmt.Errorf("serial: list ports: %w", err)
	}
	out := make([]PortInfo, 0, len(details))
	for _, d := range details {
		out = append(out, PortInfo{Name: d.Name, Product: d.Product, IsUSB: d.IsUSB})
	}
	return out, nil
}

// FindPort returns the first port whose name or product contains any of the
// patterns, compared case-insensitively.
func FindPort(patterns []string) (string, error) {
	ports, err := ListPorts()
	if err != nil {
		return "", err
	}
	name, ok := matchPort(ports, patterns)
	if !ok {
		return "", ErrNoPort
	}
	logger.Info("serial: port discovered", "device", name)
	return name, nil
}

func matchPort(ports []PortInfo, patterns []string) (string, bool) {
	for _, p := range ports {
		for _, pat := range patterns {
			if containsCI(p.Name, pat) || containsCI(p.Product, pat) {
				return p.Name, true
			}
		}
	}
	return "", false
}

func containsCI(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
