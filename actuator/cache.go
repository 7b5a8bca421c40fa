package actuator

import "github.com/Peacockli/webfishing-midi/constants"

// PositionCache remembers the last fret set on each string and swallows
// redundant SetPosition calls, so a string is only re-pressed when its target
// fret actually changes. Everything else passes straight through.
type PositionCache struct {
	inner     Actuator
	positions [constants.NumStrings]int
}

func NewPositionCache(inner Actuator) *PositionCache {
	c := &PositionCache{inner: inner}
	for i := range c.positions {
		c.positions[i] = -1 // unknown, first set always goes through
	}
	return c
}

func (c *PositionCache) SetPosition(str int, fret int) error {
	if str < 0 || str >= constants.NumStrings {
		return nil
	}
	if c.positions[str] == fret {
		return nil
	}
	if err := c.inner.SetPosition(str, fret); err != nil {
		return err
	}
	c.positions[str] = fret
	return nil
}

func (c *PositionCache) Strum(str int) error { return c.inner.Strum(str) }

func (c *PositionCache) Accent() error { return c.inner.Accent() }

func (c *PositionCache) Close() error { return c.inner.Close() }
