package control

import (
	"bufio"
	"io"
	"strings"
	"time"

	"github.com/bep/debounce"
)

const pauseDebounceInterval = 250 * time.Millisecond

// KeyReader turns line input into control signals:
//
//	<enter>  start (ready signal)
//	p        toggle pause
//	q        stop
//
// The pause toggle is debounced so a burst of repeats (held key with
// autorepeat, pasted input) collapses into a single toggle instead of
// oscillating the pause state.
type KeyReader struct {
	ch   chan Signal
	done chan struct{}
}

func NewKeyReader(r io.Reader) *KeyReader {
	return newKeyReader(r, pauseDebounceInterval)
}

func newKeyReader(r io.Reader, debounceInterval time.Duration) *KeyReader {
	k := &KeyReader{
		ch:   make(chan Signal, 8),
		done: make(chan struct{}),
	}

	debounced := debounce.New(debounceInterval)

	go func() {
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case <-k.done:
				return
			default:
			}

			switch strings.TrimSpace(strings.ToLower(scanner.Text())) {
			case "":
				k.emit(SignalStart)
			case "p":
				debounced(func() { k.emit(SignalPause) })
			case "q":
				k.emit(SignalStop)
			}
		}
	}()

	return k
}

func (k *KeyReader) emit(s Signal) {
	select {
	case k.ch <- s:
	default:
		// consumer is behind, drop rather than block the reader
	}
}

func (k *KeyReader) Signals() <-chan Signal { return k.ch }

func (k *KeyReader) Close() error {
	close(k.done)
	return nil
}
