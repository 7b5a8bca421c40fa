//go:build e2e
// +build e2e

package e2e_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/Peacockli/webfishing-midi/actuator"
	"github.com/Peacockli/webfishing-midi/midi"
	"github.com/Peacockli/webfishing-midi/player"
	"github.com/Peacockli/webfishing-midi/web"
	"github.com/stretchr/testify/assert"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

func writeTwoTrackSong(t *testing.T) string {
	t.Helper()

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(4)

	var tempo smf.Track
	tempo.Add(0, smf.MetaTempo(15000)) // 1ms per tick
	tempo.Close(0)
	if err := s.Add(tempo); err != nil {
		t.Fatal(err)
	}

	var melody smf.Track
	melody.Add(0, gomidi.NoteOn(0, 45, 100))
	melody.Add(8, gomidi.NoteOn(0, 50, 100))
	melody.Add(8, gomidi.NoteOn(0, 55, 100))
	melody.Close(4)
	if err := s.Add(melody); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "song.mid")
	if err := s.WriteFile(path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFileToActuatorPipeline(t *testing.T) {
	score, err := midi.ReadMidiFile(writeTwoTrackSong(t))
	assert.NoError(t, err)

	act := actuator.NewPositionCache(actuator.NewDry(0))
	p, err := player.New(score, player.Settings{PlaybackSpeed: 4.0}, act)
	assert.NoError(t, err)

	assert := assert.New(t)
	assert.NoError(p.Play(context.Background()))
	assert.Equal(player.StateFinished, p.State())

	progress := p.Progress()
	assert.Equal(progress.FinalTick, progress.CurrentTick)
	assert.False(progress.Paused)
}

func TestStopOverHTTPMidSong(t *testing.T) {
	score, err := midi.ReadMidiFile(writeTwoTrackSong(t))
	assert.NoError(t, err)

	p, err := player.New(score, player.Settings{PlaybackSpeed: 1.0, LoopMidi: true}, actuator.NewDry(0))
	assert.NoError(t, err)

	srv := web.NewServer(p, ":0")
	done := make(chan error, 1)
	go func() { done <- p.Play(context.Background()) }()

	deadline := time.Now().Add(5 * time.Second)
	for p.State() != player.StateRunning && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/stop", nil))
	assert.Equal(t, http.StatusAccepted, w.Result().StatusCode)

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("player did not stop in time")
	}
}
