package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nprice1/just-run/internal/audio"
	"github.com/nprice1/just-run/internal/config"
	"github.com/nprice1/just-run/internal/games/justrun"
	"github.com/nprice1/just-run/internal/highscore"
	"github.com/nprice1/just-run/internal/platform/tui"
	"github.com/nprice1/just-run/internal/registry"
)

var (
	flagHighScore string
	flagMute      bool
	flagVolume    float64
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a game mode",
	Long: `Start playing the given mode (default: justrun).

Controls:
  Arrows/WASD - Run
  P/Space     - Pause
  Enter       - Start from the title screen
  R           - Restart (after game over)
  Esc/B       - Leave a paused or finished game
  Q/Ctrl+C    - Quit

Difficulty options:
  easy   - Fewer zombies, progresses to max over the levels
  normal - Starts a little harder
  hard   - Starts near max difficulty
  fixed  - No progression, stays at the config's initial level

Examples:
  justrun play
  justrun play justrun_classic
  justrun play --difficulty hard --mute
  justrun play --map ./levels/mall.yaml
  justrun play --config ./my-justrun.toml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	addGameFlags(playCmd)
	playCmd.Flags().StringVar(&flagHighScore, "highscore", "~/.justrun/"+highscore.DefaultFile, "Path to the high-score file")
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound effects")
	playCmd.Flags().Float64Var(&flagVolume, "volume", 0.8, "Sound effect volume (0-1)")
}

func runPlay(_ *cobra.Command, args []string) error {
	mode := justrun.ModeStandard
	if len(args) > 0 {
		mode = args[0]
	}
	if _, ok := registry.Lookup(mode); !ok {
		return fmt.Errorf("unknown mode %q, run 'justrun list' to see the modes", mode)
	}
	if err := applyGameFlags(mode); err != nil {
		return err
	}

	cfg, err := config.LoadJustRun(flagConfig)
	if err != nil {
		return err
	}

	stopAudio := setupAudio()
	defer stopAudio()

	justrun.SetHighScores(highscore.New(expandHome(flagHighScore), logger))
	justrun.SetClock(func() justrun.Clock { return justrun.NewWallClock() })

	game, err := registry.Create(mode)
	if err != nil {
		return err
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	return tui.Run(game, tui.Options{
		Config:    terminalConfig(),
		Store:     store,
		Logger:    logger,
		HoldTicks: cfg.Controls.HoldTicks,
	})
}

// setupAudio routes sound effects to the speaker unless muted. A missing
// audio device only costs the sound.
func setupAudio() (stop func()) {
	if flagMute {
		return func() {}
	}
	board := audio.NewSoundBoard(audio.Options{Volume: flagVolume})
	if err := board.Start(); err != nil {
		logger.Warn("sound disabled", "error", err)
		return func() {}
	}
	justrun.SetSoundPlayer(board)
	return func() {
		justrun.SetSoundPlayer(nil)
		board.Close()
	}
}
