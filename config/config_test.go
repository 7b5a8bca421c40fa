package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadWithoutFileReturnsDefaults(t *testing.T) {
	t.Setenv("WEBFISHING_MIDI_CONFIG", t.TempDir())

	cfg, err := Load()
	assert := assert.New(t)
	assert.NoError(err)
	assert.Equal(DefaultConfig(), cfg)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("WEBFISHING_MIDI_CONFIG", t.TempDir())

	cfg := DefaultConfig()
	cfg.Backend = "midi"
	cfg.MidiPort = "fluid"
	cfg.Speed = 1.5
	assert := assert.New(t)
	assert.NoError(cfg.Save())

	loaded, err := Load()
	assert.NoError(err)
	assert.Equal(cfg, loaded)
}

func TestPartialFileKeepsDefaultsForMissingFields(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("WEBFISHING_MIDI_CONFIG", dir)

	cfg := &Config{Backend: "midi"}
	assert := assert.New(t)
	assert.NoError(cfg.Save())

	loaded, err := Load()
	assert.NoError(err)
	assert.Equal("midi", loaded.Backend)
	assert.Equal(DefaultConfig().Speed, loaded.Speed)
}
