// justrun is a terminal zombie survival game: gather the parts, build the
// vehicle, get out before the timer or the dead catch you.
//
// Usage:
//
//	justrun list              - List game modes
//	justrun play [mode]       - Play a mode (default: justrun)
//	justrun menu              - Pick modes and browse runs interactively
//	justrun serve             - Start SSH server for remote play
//	justrun scores [mode]     - Show the best runs for a mode
//	justrun sim               - Run the simulation headless
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path (default: ~/.justrun/runs.db)
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/nprice1/just-run/internal/core"
	"github.com/nprice1/just-run/internal/games/justrun"
	"github.com/nprice1/just-run/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string

	// Per-game flags shared by play, menu, serve and sim
	flagConfig     string
	flagDifficulty string
	flagMap        string
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "justrun",
})

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "justrun",
	Short: "Just Run - survive the zombies, build the ride, escape",
	Long: `Just Run is a top-down zombie survival game for the terminal.

Each level hides the parts of a vehicle. Carry them to the wreck one at a
time, avoid the zombies, and leave before the timer runs out.

Available commands:
  list     - Show the game modes
  play     - Play a mode directly
  menu     - Interactive mode picker and run history
  serve    - Start SSH server for remote play
  scores   - View the best runs
  sim      - Headless simulation

Examples:
  justrun play
  justrun play justrun_classic --difficulty hard
  justrun menu
  justrun serve --ssh :2222
  justrun sim --frames 36000 --spectate :8080`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		level, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
		}
		logger.SetLevel(level)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.justrun/runs.db", "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
}

// addGameFlags registers the flags that shape a world.
func addGameFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to a config file (.yaml or .toml)")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	cmd.Flags().StringVar(&flagMap, "map", "", "Path to a level file to play instead of generated maps")
}

// applyGameFlags hands the world flags to the game package and reports
// anything that will not load, so problems surface before the screen
// switches to the alternate buffer.
func applyGameFlags(mode string) error {
	justrun.SetConfigPath(flagConfig)
	justrun.SetDifficultyPreset(flagDifficulty)
	justrun.SetLevelPath(flagMap)
	_, _, err := justrun.LoadSettings(mode)
	return err
}

// terminalConfig sizes the runtime config to the current terminal.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW, cfg.ScreenH = w, h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// openStore opens the run history. Failure is logged; the caller goes on
// without history.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open run history", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

// expandHome resolves a leading ~ to the user's home directory.
func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
