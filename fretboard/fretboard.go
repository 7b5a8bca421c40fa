// Package fretboard maps pitches onto the six-string guitar model.
package fretboard

import (
	"github.com/Peacockli/webfishing-midi/constants"
	"github.com/Peacockli/webfishing-midi/model"
	"github.com/Peacockli/webfishing-midi/util"
)

// Engine assigns incoming pitches to (string, fret) positions. It remembers
// which strings were already used within the current simultaneous note group
// and balances load across strings by picking the least recently used
// candidate. Not safe for concurrent use; the playback driver owns it.
type Engine struct {
	// logical clock for recency; strictly increasing per assignment
	clock    uint64
	lastUsed [constants.NumStrings]uint64
	played   [constants.NumStrings]bool
}

func New() *Engine {
	return &Engine{}
}

// ResetGroup starts a new simultaneous note group. Called by the driver
// whenever the tick cursor advances past a wait period.
func (e *Engine) ResetGroup() {
	e.played = [constants.NumStrings]bool{}
}

// Assign resolves a pitch to a playing position. The pitch is clamped into
// the playable range first, so out-of-range notes land on the nearest bound
// instead of being dropped. Returns ok=false when every string that could
// play the note was already used in this group, or no string covers it;
// the caller decides what to do with the miss.
//
// Within one group each string is handed out at most once. Across groups the
// least recently used covering string wins; recency ties prefer the lower
// fret (so a fresh engine puts a chord of open-string pitches on its open
// strings), and a remaining tie goes to the lower string.
func (e *Engine) Assign(pitch int) (model.GuitarPosition, bool) {
	pitch = util.Clamp(pitch, int(constants.MinNote), int(constants.MaxNote))

	best := -1
	bestFret := 0
	for s := 0; s < constants.NumStrings; s++ {
		if e.played[s] {
			continue
		}
		fret := pitch - int(constants.OpenStringNotes[s])
		if fret < 0 || fret >= constants.NumFrets {
			continue
		}
		better := best == -1 ||
			e.lastUsed[s] < e.lastUsed[best] ||
			(e.lastUsed[s] == e.lastUsed[best] && fret < bestFret)
		if better {
			best = s
			bestFret = fret
		}
	}

	if best == -1 {
		return model.GuitarPosition{}, false
	}

	e.clock++
	e.lastUsed[best] = e.clock
	e.played[best] = true

	return model.GuitarPosition{
		String: best,
		Fret:   pitch - int(constants.OpenStringNotes[best]),
	}, true
}
