package transpose

import (
	"fmt"
	"testing"

	"github.com/Peacockli/webfishing-midi/model"
	"github.com/stretchr/testify/assert"
)

func TestRangeEdgesNeedNoShift(t *testing.T) {
	notes := model.Notes{40, 79}
	shift := OptimalShift(notes)

	assert := assert.New(t)
	assert.Equal(0, shift)
	assert.Equal(2, Summarize(notes, shift).PlayableNotes)
}

func TestNotesBelowRangeShiftUp(t *testing.T) {
	notes := model.Notes{20, 20, 20}
	shift := OptimalShift(notes)

	assert := assert.New(t)
	assert.Equal(20, shift)
	assert.Equal(3, Summarize(notes, shift).PlayableNotes)
}

func TestNotesAboveRangeShiftDown(t *testing.T) {
	notes := model.Notes{100, 100}
	shift := OptimalShift(notes)

	assert := assert.New(t)
	assert.Equal(-21, shift)
	assert.Equal(2, Summarize(notes, shift).PlayableNotes)
}

func TestChosenShiftIsNeverBeaten(t *testing.T) {
	cases := []model.Notes{
		{0, 127},
		{60, 62, 64, 65, 67},
		{10, 50, 90},
		{39, 80},
	}

	for _, notes := range cases {
		name := fmt.Sprintf("notes %v", notes)
		t.Run(name, func(t *testing.T) {
			best := OptimalShift(notes)
			bestCount := Summarize(notes, best).PlayableNotes
			for shift := -127; shift <= 127; shift++ {
				count := Summarize(notes, shift).PlayableNotes
				if count > bestCount {
					t.Errorf("shift %v beats chosen shift %v (%v > %v)", shift, best, count, bestCount)
				}
				if count == bestCount && abs(shift) < abs(best) {
					t.Errorf("shift %v ties chosen shift %v with smaller magnitude", shift, best)
				}
			}
		})
	}
}

func TestEmptyNoteSet(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(0, OptimalShift(nil))

	s := Summarize(nil, 0)
	assert.Equal(0, s.TotalNotes)
	assert.Equal(float64(0), s.PlayablePercent)
}
