// Package player drives a parsed score forward in real time and turns its
// note events into actuator calls.
package player

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Peacockli/webfishing-midi/actuator"
	"github.com/Peacockli/webfishing-midi/constants"
	"github.com/Peacockli/webfishing-midi/fretboard"
	"github.com/Peacockli/webfishing-midi/midi"
	"github.com/Peacockli/webfishing-midi/model"
	"github.com/Peacockli/webfishing-midi/schedule"
	"github.com/Peacockli/webfishing-midi/transpose"
	"github.com/Peacockli/webfishing-midi/util"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gitlab.com/gomidi/midi/v2/smf"
)

// State is where the playback state machine currently sits.
type State int32

const (
	StateIdle State = iota
	StateWaitingForStart
	StateRunning
	StatePaused
	StateInterrupted
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateWaitingForStart:
		return "waiting-for-start"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateInterrupted:
		return "interrupted"
	case StateFinished:
		return "finished"
	}
	return "unknown"
}

// errInterrupted flows up through the tick loop when the user stops the
// song. It never escapes Play: a user stop is a clean early return, not an
// error.
var errInterrupted = errors.New("interrupted")

// Settings configures one playback session.
type Settings struct {
	LoopMidi      bool
	ShouldSing    bool
	SingAbove     uint8
	Tracks        []int // note events play only from these; empty means all
	PlaybackSpeed float64
	StartAtMillis uint64 // unix millis wall-clock start deadline, 0 = none
	WaitForReady  bool   // wait for an explicit ready signal instead
	ActionDelay   time.Duration
}

// Player owns a playback session: the fixed transposition shift, the
// fretboard state and the real-time tick loop. The pause flag and the
// elapsed/tick counters are atomics with the driver as single writer, so a
// progress reporter can sample them from any goroutine without ever
// blocking the loop.
type Player struct {
	score    *smf.SMF
	settings Settings
	act      actuator.Actuator
	frets    *fretboard.Engine

	shift        int
	ticksPerBeat uint64

	// written only by the driver goroutine inside dispatch
	microsPerTick uint64

	sessionID string
	log       *logrus.Entry

	state         atomic.Int32
	paused        atomic.Bool
	stopped       atomic.Bool
	elapsedMicros atomic.Uint64
	currentTick   atomic.Uint64
	finalTick     atomic.Uint64

	ready     chan struct{}
	readyOnce sync.Once
}

// New validates the score and fixes the transposition shift for the whole
// session. A score without metrical timing is rejected here, before any
// real-time work starts.
func New(score *smf.SMF, settings Settings, act actuator.Actuator) (*Player, error) {
	if settings.PlaybackSpeed <= 0 {
		return nil, fmt.Errorf("playback speed must be positive, got %v", settings.PlaybackSpeed)
	}

	ticksPerBeat, err := midi.TicksPerBeat(score)
	if err != nil {
		return nil, err
	}

	p := &Player{
		score:        score,
		settings:     settings,
		act:          act,
		frets:        fretboard.New(),
		ticksPerBeat: ticksPerBeat,
		sessionID:    uuid.New().String(),
		ready:        make(chan struct{}),
	}
	p.log = logrus.WithField("session", p.sessionID)

	if score.Format() != 1 {
		p.log.Warn("midi format is not parallel")
	}

	notes := midi.CollectNotes(score)
	p.shift = transpose.OptimalShift(notes)
	summary := transpose.Summarize(notes, p.shift)
	p.log.Infof("optimal shift: %v", summary.Shift)
	p.log.Infof("total notes: %v | playable notes: %v | clamped notes: %v : %.0f%% playable",
		summary.TotalNotes, summary.PlayableNotes, summary.ClampedNotes, summary.PlayablePercent)

	return p, nil
}

func (p *Player) SessionID() string { return p.sessionID }

func (p *Player) State() State { return State(p.state.Load()) }

// Shift returns the transposition shift fixed at construction.
func (p *Player) Shift() int { return p.shift }

// Progress is a lock-free snapshot for reporters; callers poll it at their
// own cadence.
func (p *Player) Progress() model.Progress {
	return model.Progress{
		SessionID:     p.sessionID,
		Paused:        p.paused.Load(),
		ElapsedMicros: p.elapsedMicros.Load(),
		CurrentTick:   p.currentTick.Load(),
		FinalTick:     p.finalTick.Load(),
		Speed:         p.settings.PlaybackSpeed,
	}
}

// TogglePause flips the pause flag and returns the new value.
func (p *Player) TogglePause() bool {
	for {
		old := p.paused.Load()
		if p.paused.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// Stop requests a cooperative stop. The driver notices within one tick
// sleep, or within one pause poll if currently paused.
func (p *Player) Stop() {
	p.stopped.Store(true)
}

// Ready releases a player that was configured to wait for an external
// go-ahead. Safe to call any number of times.
func (p *Player) Ready() {
	p.readyOnce.Do(func() { close(p.ready) })
}

// Play runs the session until the stream is exhausted (looping if enabled)
// or the user stops it. Blocking; the caller decides whether to run it in a
// goroutine. A user stop returns nil.
func (p *Player) Play(ctx context.Context) error {
	if err := p.waitForStart(ctx); err != nil {
		if errors.Is(err, errInterrupted) {
			p.markInterrupted()
			return nil
		}
		return err
	}

	// Reset the guitar to all open strings.
	for s := 0; s < constants.NumStrings; s++ {
		if err := p.act.SetPosition(s, 0); err != nil {
			p.log.Warnf("could not reset string %v: %v", s+1, err)
		}
	}

	for {
		// The queue is single-pass, so every loop iteration rebuilds it
		// from the score instead of resuming partial state.
		q, err := schedule.Build(p.score, p.settings.Tracks)
		if err != nil {
			return err
		}

		if err := p.runStream(ctx, q); err != nil {
			if errors.Is(err, errInterrupted) {
				p.markInterrupted()
				return nil
			}
			return err
		}

		if !p.settings.LoopMidi {
			break
		}
		p.log.Info("looping playback")
	}

	p.state.Store(int32(StateFinished))
	return nil
}

func (p *Player) markInterrupted() {
	p.log.Info("song interrupted")
	p.state.Store(int32(StateInterrupted))
}

func (p *Player) interrupted(ctx context.Context) bool {
	return p.stopped.Load() || ctx.Err() != nil
}

func (p *Player) waitForStart(ctx context.Context) error {
	if p.settings.WaitForReady {
		p.state.Store(int32(StateWaitingForStart))
		p.log.Info("waiting for ready signal")
		for {
			select {
			case <-p.ready:
				return nil
			case <-ctx.Done():
				return errInterrupted
			case <-time.After(constants.PausePollInterval):
				if p.stopped.Load() {
					return errInterrupted
				}
			}
		}
	}

	if p.settings.StartAtMillis > 0 {
		now := uint64(time.Now().UnixMilli())
		if p.settings.StartAtMillis > now {
			p.state.Store(int32(StateWaitingForStart))
			wait := time.Duration(p.settings.StartAtMillis-now) * time.Millisecond
			p.log.Infof("starting playback in %v", wait.Round(time.Second))

			deadline := time.Now().Add(wait)
			for time.Now().Before(deadline) {
				if p.interrupted(ctx) {
					return errInterrupted
				}
				remaining := time.Until(deadline)
				time.Sleep(util.Min(remaining, constants.PausePollInterval))
			}
		}
	}

	return nil
}

// runStream consumes one full pass of the merged event stream.
func (p *Player) runStream(ctx context.Context, q *schedule.Queue) error {
	p.finalTick.Store(q.FinalTick())
	p.elapsedMicros.Store(0)
	p.currentTick.Store(0)
	p.state.Store(int32(StateRunning))

	var lastTick uint64
	for {
		ev, ok := q.Pop()
		if !ok {
			return nil
		}

		if p.interrupted(ctx) {
			return errInterrupted
		}

		if ev.AbsTick > lastTick {
			// A wait period ends the current simultaneous note group.
			p.frets.ResetGroup()

			// Sleep one tick at a time so cancellation and pause latency
			// stay bounded by a single tick's duration.
			for tick := lastTick; tick < ev.AbsTick; tick++ {
				if err := p.holdWhilePaused(ctx); err != nil {
					return err
				}
				p.sleepTick()
				p.currentTick.Store(tick + 1)
				if p.interrupted(ctx) {
					return errInterrupted
				}
			}
			lastTick = ev.AbsTick
		}

		if err := p.holdWhilePaused(ctx); err != nil {
			return err
		}

		p.dispatch(ev)
	}
}

// sleepTick sleeps for one tick scaled by playback speed and advances the
// elapsed-time accumulator by the same amount.
func (p *Player) sleepTick() {
	scaled := uint64(float64(p.microsPerTick) / p.settings.PlaybackSpeed)
	time.Sleep(time.Duration(scaled) * time.Microsecond)
	p.elapsedMicros.Add(scaled)
}

// holdWhilePaused suspends forward progress without consuming stream
// elements. Elapsed time does not accumulate while paused.
func (p *Player) holdWhilePaused(ctx context.Context) error {
	if !p.paused.Load() {
		return nil
	}

	p.state.Store(int32(StatePaused))
	for p.paused.Load() {
		time.Sleep(constants.PausePollInterval)
		if p.interrupted(ctx) {
			return errInterrupted
		}
	}
	p.state.Store(int32(StateRunning))
	return nil
}

func (p *Player) dispatch(ev model.TimedEvent) {
	var bpm float64
	var channel, key, velocity uint8

	msg := ev.Event.Message
	switch {
	case msg.GetMetaTempo(&bpm):
		microsPerBeat := 60_000_000 / bpm
		p.microsPerTick = uint64(microsPerBeat / float64(p.ticksPerBeat))
		p.log.Infof("tempo change: %vµs per tick - track %v", p.microsPerTick, ev.Track)
	case msg.GetNoteStart(&channel, &key, &velocity):
		p.playNote(int(key)+p.shift, ev.Track)
	default:
		// note-offs and other events consume their place in the stream but
		// never reach the actuator: strums are momentary, there is no held
		// state to release
	}
}

func (p *Player) playNote(pitch int, track int) {
	note := util.Clamp(pitch, int(constants.MinNote), int(constants.MaxNote))

	if pos, ok := p.frets.Assign(note); ok {
		p.log.Infof("playing note %v on string %v fret %v - track %v", note, pos.String+1, pos.Fret, track)

		// Actuator failures are logged and skipped: a missed strum must not
		// stall the clock mid-song.
		if err := p.act.SetPosition(pos.String, pos.Fret); err != nil {
			p.log.Warnf("could not set fret: %v", err)
		}
		if err := p.act.Strum(pos.String); err != nil {
			p.log.Warnf("could not strum string %v: %v", pos.String+1, err)
		}

		// The actuator held the press for the action delay; account for it.
		p.elapsedMicros.Add(uint64(p.settings.ActionDelay.Microseconds()))
	} else {
		p.log.Warnf("no suitable string found for note %v", note)
	}

	if p.settings.ShouldSing && uint8(note) >= p.settings.SingAbove {
		if err := p.act.Accent(); err != nil {
			p.log.Warnf("could not accent: %v", err)
		}
	}
}
