package actuator

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Dry is a no-delivery backend that only logs what it would do. It still
// holds each action for the configured delay so playback timing matches the
// real thing.
type Dry struct {
	delay time.Duration
}

func NewDry(delay time.Duration) *Dry {
	return &Dry{delay: delay}
}

func (d *Dry) SetPosition(str int, fret int) error {
	logrus.Infof("set string %v to fret %v", str+1, fret)
	return nil
}

func (d *Dry) Strum(str int) error {
	logrus.Infof("strum string %v", str+1)
	time.Sleep(d.delay)
	return nil
}

func (d *Dry) Accent() error {
	logrus.Info("accent")
	time.Sleep(d.delay)
	return nil
}

func (d *Dry) Close() error { return nil }
