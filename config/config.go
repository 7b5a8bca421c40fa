// Package config persists user defaults between runs. Command-line flags
// always win over the file.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/Peacockli/webfishing-midi/constants"
)

// Config is the on-disk configuration, stored as JSON under the user config
// directory (override with WEBFISHING_MIDI_CONFIG).
type Config struct {
	Backend       string  `json:"backend,omitempty"`       // "midi" or "dry"
	MidiPort      string  `json:"midiPort,omitempty"`      // substring match on the port name
	MidiChannel   uint8   `json:"midiChannel,omitempty"`   // 0-15
	ActionDelayMS int     `json:"actionDelayMs,omitempty"` // press-to-release hold time
	Speed         float64 `json:"speed,omitempty"`
	SingAbove     uint8   `json:"singAbove,omitempty"`
	ServeAddr     string  `json:"serveAddr,omitempty"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Backend:       "dry",
		ActionDelayMS: int(constants.DefaultActionDelay.Milliseconds()),
		Speed:         1.0,
		SingAbove:     constants.MaxNote,
		ServeAddr:     constants.DefaultServeAddr,
	}
}

func ConfigPath() string {
	return filepath.Join(constants.GetConfigDir(), "config.json")
}

// Load reads the config from disk, or returns defaults if not found.
func Load() (*Config, error) {
	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config to disk, creating the directory if needed.
func (c *Config) Save() error {
	if err := os.MkdirAll(constants.GetConfigDir(), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(ConfigPath(), data, 0644)
}
