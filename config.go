package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the YAML configuration file. Command-line flags override it.
type Config struct {
	SongsDir string `yaml:"songs_dir"`
	LogPath  string `yaml:"log_path"`

	Serial struct {
		Port     string        `yaml:"port"`     // empty: discover by Match
		Baud     int           `yaml:"baud"`     // 9600 for HC-05 modules
		Match    []string      `yaml:"match"`    // name/product substrings
		Settle   time.Duration `yaml:"settle"`   // wait after open
		Simulate bool          `yaml:"simulate"` // never open a port
	} `yaml:"serial"`

	Live struct {
		Pulse time.Duration `yaml:"pulse"` // vibration length per key press
	} `yaml:"live"`

	HTTP struct {
		Addr string `yaml:"addr"`
	} `yaml:"http"`
}

// DefaultConfig returns a config with every default filled in.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.SongsDir == "" {
		c.SongsDir = "midi_files"
	}
	if c.LogPath == "" {
		c.LogPath = "vibration_log.csv"
	}
	if c.Serial.Baud == 0 {
		c.Serial.Baud = 9600
	}
	if len(c.Serial.Match) == 0 {
		c.Serial.Match = []string{"HC-05", "Serial", "Bluetooth"}
	}
	if c.Serial.Settle == 0 {
		c.Serial.Settle = 2 * time.Second
	}
	if c.Live.Pulse == 0 {
		c.Live.Pulse = 250 * time.Millisecond
	}
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = ":8088"
	}
}

// LoadConfig reads path, or returns defaults when the file does not exist.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}
