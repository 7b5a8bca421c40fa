// Package actuator turns resolved playing positions into real input actions.
// The playback driver only ever sees the Actuator interface; which backend
// sits behind it is a configuration decision.
package actuator

// Actuator is the boundary to whatever delivers input to the game. Strum and
// Accent are momentary press-and-release actions; the hold duration between
// press and release belongs to the backend, not the scheduler.
type Actuator interface {
	// SetPosition moves the given string to a fret. Fret 0 is the open
	// string.
	SetPosition(str int, fret int) error

	// Strum plays the given string at its current fret position.
	Strum(str int) error

	// Accent fires the secondary "sing" action.
	Accent() error

	Close() error
}
