package actuator

import (
	"fmt"
	"strings"
	"time"

	"github.com/Peacockli/webfishing-midi/constants"
	gomidi "gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters driver
)

// accentNote is the pitch the accent action lands on when rendered over
// MIDI. Well above the guitar range so it can't be mistaken for a strum.
const accentNote uint8 = 96

// MidiPort renders guitar actions as note events on a real MIDI output
// port. This is the "visible" backend: useful for monitoring what the
// player would do, or for driving a synth instead of the game.
type MidiPort struct {
	send    func(gomidi.Message) error
	channel uint8
	delay   time.Duration
	frets   [constants.NumStrings]int
}

// NewMidiPort opens the first MIDI output port whose name contains portName
// (case-insensitive). An empty name takes the first available port. The
// delay is how long a note is held before release.
func NewMidiPort(portName string, channel uint8, delay time.Duration) (*MidiPort, error) {
	outs := gomidi.GetOutPorts()
	if len(outs) == 0 {
		return nil, fmt.Errorf("no midi output ports available")
	}

	for _, port := range outs {
		if portName != "" && !strings.Contains(strings.ToLower(port.String()), strings.ToLower(portName)) {
			continue
		}
		send, err := gomidi.SendTo(port)
		if err != nil {
			return nil, fmt.Errorf("could not open midi port %v: %w", port.String(), err)
		}
		return &MidiPort{send: send, channel: channel, delay: delay}, nil
	}

	return nil, fmt.Errorf("no midi output port matches %q", portName)
}

func (m *MidiPort) SetPosition(str int, fret int) error {
	if str < 0 || str >= constants.NumStrings {
		return nil
	}
	m.frets[str] = fret
	return nil
}

func (m *MidiPort) Strum(str int) error {
	if str < 0 || str >= constants.NumStrings {
		return nil
	}
	pitch := constants.OpenStringNotes[str] + uint8(m.frets[str])
	if err := m.send(gomidi.NoteOn(m.channel, pitch, 100)); err != nil {
		return err
	}
	time.Sleep(m.delay)
	return m.send(gomidi.NoteOff(m.channel, pitch))
}

func (m *MidiPort) Accent() error {
	if err := m.send(gomidi.NoteOn(m.channel, accentNote, 127)); err != nil {
		return err
	}
	time.Sleep(m.delay)
	return m.send(gomidi.NoteOff(m.channel, accentNote))
}

func (m *MidiPort) Close() error {
	gomidi.CloseDriver()
	return nil
}
