package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "webfishing-midi",
	Short: "Plays midi files on the Webfishing guitar",
	Long:  `Parses a midi file and plays it on the in-game guitar by scheduling string and fret actions in real time.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logrus.SetLevel(logrus.DebugLevel)
		} else {
			// keep note-by-note chatter off the progress line
			logrus.SetLevel(logrus.WarnLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every note placement and tempo change")
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
