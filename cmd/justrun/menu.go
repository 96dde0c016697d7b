package main

import (
	"github.com/spf13/cobra"

	"github.com/nprice1/just-run/internal/config"
	"github.com/nprice1/just-run/internal/games/justrun"
	"github.com/nprice1/just-run/internal/highscore"
	"github.com/nprice1/just-run/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a mode and browse runs interactively",
	Long: `Start Just Run in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to play, Tab for the run history.
Leaving a paused or finished game returns to the menu.

Examples:
  justrun menu
  justrun menu --difficulty easy
  justrun menu --db ./runs.db`,
	RunE: runMenu,
}

func init() {
	addGameFlags(menuCmd)
	menuCmd.Flags().StringVar(&flagHighScore, "highscore", "~/.justrun/"+highscore.DefaultFile, "Path to the high-score file")
	menuCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound effects")
	menuCmd.Flags().Float64Var(&flagVolume, "volume", 0.8, "Sound effect volume (0-1)")
}

func runMenu(_ *cobra.Command, _ []string) error {
	if err := applyGameFlags(justrun.ModeStandard); err != nil {
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

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	return tui.RunSession(tui.Options{
		Config:    terminalConfig(),
		Store:     store,
		Logger:    logger,
		HoldTicks: cfg.Controls.HoldTicks,
	})
}
