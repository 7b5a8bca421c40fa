package cmd

import (
	"fmt"

	"github.com/Peacockli/webfishing-midi/midi"
	"github.com/Peacockli/webfishing-midi/transpose"
	"github.com/Peacockli/webfishing-midi/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <midi-file>",
	Short: "Inspects a midi file",
	Long:  `Inspects a midi file`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		inspect(args[0])
	},
}

func inspect(path string) {
	score, err := midi.ReadMidiFile(path)
	if err != nil {
		panic("Could not read midi file because: " + err.Error())
	}

	ticksPerBeat, err := midi.TicksPerBeat(score)
	if err != nil {
		panic(err.Error())
	}

	noteCounts := make(map[int]int)
	eventCounts := make([]int, len(score.Tracks))
	for trackNum, track := range score.Tracks {
		eventCounts[trackNum] = len(track)
		for _, event := range track {
			var channel, key, velocity uint8
			if event.Message.GetNoteOn(&channel, &key, &velocity) {
				noteCounts[trackNum]++
			}
		}
	}

	fmt.Printf("format: %v | tracks: %v | ticks per beat: %v\n", score.Format(), len(score.Tracks), ticksPerBeat)
	fmt.Printf("total events: %v\n", util.Sum(eventCounts))
	for _, trackNum := range util.GetKeysSorted(noteCounts) {
		fmt.Printf("track %v: %v notes\n", trackNum, noteCounts[trackNum])
	}

	notes := midi.CollectNotes(score)
	shift := transpose.OptimalShift(notes)
	summary := transpose.Summarize(notes, shift)
	fmt.Printf("optimal shift: %v\n", summary.Shift)
	fmt.Printf("total notes: %v | playable notes: %v | clamped notes: %v : %.0f%% playable\n",
		summary.TotalNotes, summary.PlayableNotes, summary.ClampedNotes, summary.PlayablePercent)
}
