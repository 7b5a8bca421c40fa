// Package control feeds user intent (start, pause, stop) into the playback
// driver from outside the tick loop.
package control

// Signal is a single edge-detected control action. Level state (a held key)
// never produces more than one signal.
type Signal int

const (
	SignalStart Signal = iota
	SignalPause
	SignalStop
)

func (s Signal) String() string {
	switch s {
	case SignalStart:
		return "start"
	case SignalPause:
		return "pause"
	case SignalStop:
		return "stop"
	}
	return "unknown"
}

// Source produces control signals at its own cadence. Implementations must
// never block the consumer: the signal channel is buffered and slow
// consumers drop signals rather than stall the producer.
type Source interface {
	Signals() <-chan Signal
	Close() error
}
