package control

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func collect(t *testing.T, k *KeyReader, quiet time.Duration) []Signal {
	t.Helper()
	var got []Signal
	for {
		select {
		case s := <-k.Signals():
			got = append(got, s)
		case <-time.After(quiet):
			return got
		}
	}
}

func TestStopAndStartPassThroughUndebounced(t *testing.T) {
	k := newKeyReader(strings.NewReader("\nq\n"), time.Millisecond)
	defer k.Close()

	got := collect(t, k, 300*time.Millisecond)
	assert.Equal(t, []Signal{SignalStart, SignalStop}, got)
}

func TestHeldPauseKeyTogglesOnce(t *testing.T) {
	// Five rapid repeats of the pause key, as a held key would produce.
	k := newKeyReader(strings.NewReader("p\np\np\np\np\n"), 50*time.Millisecond)
	defer k.Close()

	got := collect(t, k, 400*time.Millisecond)
	assert.Equal(t, []Signal{SignalPause}, got)
}

func TestSeparatedPausePressesToggleTwice(t *testing.T) {
	r := &slowReader{chunks: []string{"p\n", "p\n"}, gap: 150 * time.Millisecond}

	k := newKeyReader(r, 30*time.Millisecond)
	defer k.Close()

	got := collect(t, k, 500*time.Millisecond)
	assert.Equal(t, []Signal{SignalPause, SignalPause}, got)
}

// slowReader feeds chunks with a gap between them, so debounce intervals can
// expire in between.
type slowReader struct {
	chunks []string
	gap    time.Duration
	pos    int
}

func (r *slowReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.chunks) {
		return 0, io.EOF
	}
	if r.pos > 0 {
		time.Sleep(r.gap)
	}
	n := copy(p, r.chunks[r.pos])
	r.pos++
	return n, nil
}
