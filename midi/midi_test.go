package midi

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Peacockli/webfishing-midi/model"
	"github.com/stretchr/testify/assert"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

func writeScore(t *testing.T) string {
	t.Helper()

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(96)
	var track smf.Track
	track.Add(0, smf.MetaTempo(120))
	track.Add(0, gomidi.NoteOn(0, 60, 100))
	track.Add(48, gomidi.NoteOff(0, 60))
	track.Add(0, gomidi.NoteOn(0, 64, 100))
	track.Close(48)
	if err := s.Add(track); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "song.mid")
	if err := s.WriteFile(path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadMidiFileRoundTrip(t *testing.T) {
	s, err := ReadMidiFile(writeScore(t))

	assert := assert.New(t)
	assert.NoError(err)
	assert.Len(s.Tracks, 1)
}

func TestReadMidiFileRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "noise.mid")
	if err := os.WriteFile(path, []byte("not a midi file"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := ReadMidiFile(path)
	assert.Error(t, err)
}

func TestReadMidiFileMissingFile(t *testing.T) {
	_, err := ReadMidiFile(filepath.Join(t.TempDir(), "nope.mid"))
	assert.Error(t, err)
}

func TestTicksPerBeat(t *testing.T) {
	s, err := ReadMidiFile(writeScore(t))
	assert.NoError(t, err)

	ticks, err := TicksPerBeat(s)
	assert.NoError(t, err)
	assert.Equal(t, uint64(96), ticks)
}

func TestTicksPerBeatRejectsTimecode(t *testing.T) {
	s := smf.New()
	s.TimeFormat = smf.TimeCode{FramesPerSecond: 25, SubFrames: 40}

	_, err := TicksPerBeat(s)
	assert.Error(t, err)
}

func TestCollectNotesFindsOnlyNoteOns(t *testing.T) {
	s, err := ReadMidiFile(writeScore(t))
	assert.NoError(t, err)
	assert.Equal(t, model.Notes{60, 64}, CollectNotes(s))
}
