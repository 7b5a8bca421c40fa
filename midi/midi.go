package midi

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/Peacockli/webfishing-midi/model"
	"gitlab.com/gomidi/midi/v2/smf"
)

func ReadMidiFile(filepath string) (s *smf.SMF, e error) {
	var blank smf.SMF

	// handle panics
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r, ok := recover().(string); ok {
			e = errors.New(r)
		}
	}()

	dat, err := os.ReadFile(filepath)
	if err != nil {
		return &blank, fmt.Errorf("error reading midi file... %s", err.Error())
	}

	res, err := smf.ReadFrom(bytes.NewReader(dat))
	if err != nil {
		return &blank, fmt.Errorf("error parsing midi file... %s", err.Error())
	}

	return res, nil
}

// TicksPerBeat returns the metrical resolution of the file. Anything other
// than ticks-per-beat timing (i.e. SMPTE timecode) is rejected outright:
// playback pacing would be undefined.
func TicksPerBeat(s *smf.SMF) (uint64, error) {
	mt, ok := s.TimeFormat.(smf.MetricTicks)
	if !ok {
		return 0, fmt.Errorf("unsupported timing mode %v: only metrical (ticks-per-beat) files can be played", s.TimeFormat)
	}
	return uint64(mt), nil
}

// CollectNotes returns the pitch of every note-on event across all tracks,
// in track order. Used to pick the transposition shift before playback.
func CollectNotes(s *smf.SMF) model.Notes {
	var notes model.Notes
	for _, track := range s.Tracks {
		for _, event := range track {
			var channel, key, velocity uint8
			if event.Message.GetNoteOn(&channel, &key, &velocity) {
				notes = append(notes, key)
			}
		}
	}
	return notes
}
