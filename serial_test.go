package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchPort(t *testing.T) {
	ports := []PortInfo{
		{Name: "/dev/ttyS0"},
		{Name: "/dev/ttyUSB0", Product: "CP2102 USB to UART", IsUSB: true},
		{Name: "/dev/rfcomm0", Product: "HC-05 bluetooth link"},
	}

	name, ok := matchPort(ports, []string{"HC-05", "Bluetooth"})
	assert.True(t, ok)
	assert.Equal(t, "/dev/rfcomm0", name)

	name, ok = matchPort(ports, []string{"usb"})
	assert.True(t, ok)
	assert.Equal(t, "/dev/ttyUSB0", name, "case-insensitive match on the device name")

	_, ok = matchPort(ports, []string{"arduino"})
	assert.False(t, ok)

	_, ok = matchPort(nil, []string{"HC-05"})
	assert.False(t, ok)
}

func TestOpenSerialMissingDevice(t *testing.T) {
	_, err := OpenSerial("/dev/does-not-exist-lou", 9600, 0)
	assert.Error(t, err)
}
