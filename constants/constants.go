package constants

import (
	"os"
	"path/filepath"
	"time"
)

// Playable range of the in-game guitar. Six strings, each spanning 16
// consecutive semitones from its open pitch, overlapping like a real guitar.
const (
	MinNote uint8 = 40 // E2, lowest open string
	MaxNote uint8 = 79 // 15th fret on the high E string
)

const (
	NumStrings = 6
	NumFrets   = 16 // fret 0 is the open string
)

// OpenStringNotes holds the MIDI pitch of each open string:
// E2(40) A2(45) D3(50) G3(55) B3(59) E4(64)
var OpenStringNotes = [NumStrings]uint8{40, 45, 50, 55, 59, 64}

// PausePollInterval is how often the driver re-checks the pause flag and
// control signals while playback is suspended.
const PausePollInterval = 100 * time.Millisecond

// DefaultActionDelay is how long the actuator holds a press before releasing.
// The game samples input once per frame, so releasing too fast drops strums.
const DefaultActionDelay = 30 * time.Millisecond

const DefaultServeAddr = ":8471"

func GetConfigDir() string {
	path := os.Getenv("WEBFISHING_MIDI_CONFIG")
	if path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "webfishing-midi")
}
