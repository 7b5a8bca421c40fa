// Package transpose picks the single semitone shift applied to every note
// before it is mapped onto the guitar.
package transpose

import (
	"github.com/Peacockli/webfishing-midi/constants"
	"github.com/Peacockli/webfishing-midi/model"
)

// Summary describes how well a shift fits the playable range. Diagnostic
// only; nothing branches on it.
type Summary struct {
	Shift           int
	TotalNotes      int
	PlayableNotes   int
	ClampedNotes    int
	PlayablePercent float64
}

func playableCount(notes model.Notes, shift int) int {
	count := 0
	for _, n := range notes {
		shifted := int(n) + shift
		if shifted >= int(constants.MinNote) && shifted <= int(constants.MaxNote) {
			count++
		}
	}
	return count
}

// OptimalShift scans every shift from -127 to 127 in ascending order and
// returns the one that puts the most notes inside the playable range. Ties
// go to the smallest absolute shift; a remaining tie keeps the shift found
// first in the ascending scan. The fixed scan order makes the result
// reproducible for any input.
func OptimalShift(notes model.Notes) int {
	bestShift := 0
	maxPlayable := 0

	for shift := -127; shift <= 127; shift++ {
		playable := playableCount(notes, shift)
		if playable > maxPlayable || (playable == maxPlayable && abs(shift) < abs(bestShift)) {
			maxPlayable = playable
			bestShift = shift
		}
	}

	return bestShift
}

// Summarize reports the fit of a shift over the given notes. An empty note
// set yields a zero summary rather than a division by zero.
func Summarize(notes model.Notes, shift int) Summary {
	s := Summary{
		Shift:         shift,
		TotalNotes:    len(notes),
		PlayableNotes: playableCount(notes, shift),
	}
	s.ClampedNotes = s.TotalNotes - s.PlayableNotes
	if s.TotalNotes > 0 {
		s.PlayablePercent = float64(s.PlayableNotes) / float64(s.TotalNotes) * 100
	}
	return s
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
