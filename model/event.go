package model

import "gitlab.com/gomidi/midi/v2/smf"

type Notes = []uint8

// TimedEvent is a track event resolved to its absolute tick. Built fresh by
// the scheduler for every loop iteration and consumed exactly once.
type TimedEvent struct {
	AbsTick uint64
	Track   int
	Event   smf.Event
}

// GuitarPosition is a physical playing position on the six-string model.
// String 0 is the low E string. Fret 0 means the open string.
type GuitarPosition struct {
	String int
	Fret   int
}
