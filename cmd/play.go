package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/Peacockli/webfishing-midi/actuator"
	"github.com/Peacockli/webfishing-midi/config"
	"github.com/Peacockli/webfishing-midi/control"
	"github.com/Peacockli/webfishing-midi/midi"
	"github.com/Peacockli/webfishing-midi/player"
	"github.com/Peacockli/webfishing-midi/web"
	"github.com/spf13/cobra"
)

var (
	playLoop      bool
	playSing      bool
	playSingAbove int
	playTracks    []int
	playSpeed     float64
	playStartAt   uint64
	playWait      bool
	playDelayMS   int
	playBackend   string
	playMidiPort  string
	playServeAddr string
	playNoServe   bool
)

func init() {
	playCmd.Flags().BoolVar(&playLoop, "loop", false, "restart the song when it ends")
	playCmd.Flags().BoolVar(&playSing, "sing", false, "fire the accent action for high notes")
	playCmd.Flags().IntVar(&playSingAbove, "sing-above", 0, "lowest note that triggers the accent action")
	playCmd.Flags().IntSliceVar(&playTracks, "tracks", nil, "track numbers to play (default all)")
	playCmd.Flags().Float64Var(&playSpeed, "speed", 0, "playback speed multiplier")
	playCmd.Flags().Uint64Var(&playStartAt, "start-at", 0, "unix millis timestamp to start playback at")
	playCmd.Flags().BoolVar(&playWait, "wait", false, "wait for enter before starting")
	playCmd.Flags().IntVar(&playDelayMS, "input-sleep", 0, "milliseconds each press is held")
	playCmd.Flags().StringVar(&playBackend, "backend", "", `actuator backend ("midi" or "dry")`)
	playCmd.Flags().StringVar(&playMidiPort, "midi-port", "", "midi output port for the midi backend")
	playCmd.Flags().StringVar(&playServeAddr, "serve-addr", "", "address for the http control surface")
	playCmd.Flags().BoolVar(&playNoServe, "no-serve", false, "disable the http control surface")
	rootCmd.AddCommand(playCmd)
}

var playCmd = &cobra.Command{
	Use:   "play <midi-file>",
	Short: "Plays a midi file",
	Long:  `Plays a midi file`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		play(cmd, args[0])
	},
}

func play(cmd *cobra.Command, path string) {
	cfg, err := config.Load()
	if err != nil {
		panic("Could not load config because: " + err.Error())
	}
	if cmd.Flags().Changed("speed") {
		cfg.Speed = playSpeed
	}
	if cmd.Flags().Changed("sing-above") {
		cfg.SingAbove = uint8(playSingAbove)
	}
	if cmd.Flags().Changed("input-sleep") {
		cfg.ActionDelayMS = playDelayMS
	}
	if cmd.Flags().Changed("backend") {
		cfg.Backend = playBackend
	}
	if cmd.Flags().Changed("midi-port") {
		cfg.MidiPort = playMidiPort
	}
	if cmd.Flags().Changed("serve-addr") {
		cfg.ServeAddr = playServeAddr
	}

	score, err := midi.ReadMidiFile(path)
	if err != nil {
		panic("Could not read midi file because: " + err.Error())
	}

	delay := time.Duration(cfg.ActionDelayMS) * time.Millisecond
	act, err := buildActuator(cfg, delay)
	if err != nil {
		panic("Could not set up actuator because: " + err.Error())
	}
	defer act.Close()

	settings := player.Settings{
		LoopMidi:      playLoop,
		ShouldSing:    playSing,
		SingAbove:     cfg.SingAbove,
		Tracks:        playTracks,
		PlaybackSpeed: cfg.Speed,
		StartAtMillis: playStartAt,
		WaitForReady:  playWait,
		ActionDelay:   delay,
	}

	p, err := player.New(score, settings, act)
	if err != nil {
		panic("Could not create player because: " + err.Error())
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	keys := control.NewKeyReader(os.Stdin)
	defer keys.Close()
	go func() {
		for s := range keys.Signals() {
			switch s {
			case control.SignalStart:
				p.Ready()
			case control.SignalPause:
				p.TogglePause()
			case control.SignalStop:
				p.Stop()
			}
		}
	}()

	if !playNoServe {
		go web.NewServer(p, cfg.ServeAddr).Run()
	}

	fmt.Println("q+enter to stop the song, p+enter to pause/play")
	if playWait {
		fmt.Println("Tab over to the game and press enter to start playing")
	}

	stopReport := make(chan struct{})
	go reportProgress(p, stopReport)

	err = p.Play(ctx)
	close(stopReport)
	if err != nil {
		panic("Playback failed because: " + err.Error())
	}
}

func buildActuator(cfg *config.Config, delay time.Duration) (actuator.Actuator, error) {
	switch cfg.Backend {
	case "midi":
		inner, err := actuator.NewMidiPort(cfg.MidiPort, cfg.MidiChannel, delay)
		if err != nil {
			return nil, err
		}
		return actuator.NewPositionCache(inner), nil
	default:
		return actuator.NewPositionCache(actuator.NewDry(delay)), nil
	}
}

// reportProgress redraws a one-line status until told to stop. It only ever
// reads the player's atomic snapshot, so it cannot slow the tick loop down.
func reportProgress(p *player.Player, stop <-chan struct{}) {
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			fmt.Println()
			return
		case <-ticker.C:
			pr := p.Progress()
			marker := "▶"
			if pr.Paused {
				marker = "⏸"
			}
			secs := pr.ElapsedMicros / 1_000_000
			fmt.Printf("\r%s [%02d:%02d] tick %v/%v speed %.1fx ", marker, secs/60, secs%60, pr.CurrentTick, pr.FinalTick, pr.Speed)
		}
	}
}
