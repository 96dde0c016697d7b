package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nprice1/just-run/internal/games/justrun"
	"github.com/nprice1/just-run/internal/registry"
	"github.com/nprice1/just-run/internal/storage"
)

var (
	flagScoresLimit  int
	flagScoresRecent bool
	flagScoresClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show the best runs for a mode",
	Long: `Display the best (or most recent) runs for the given mode.

Examples:
  justrun scores
  justrun scores justrun_classic
  justrun scores --recent --limit 20
  justrun scores justrun_classic --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresRecent, "recent", false, "Show the newest runs instead of the best")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete every recorded run for the mode")
}

func runScores(cmd *cobra.Command, args []string) error {
	mode := justrun.ModeStandard
	if len(args) > 0 {
		mode = args[0]
	}
	info, ok := registry.Lookup(mode)
	if !ok {
		return fmt.Errorf("unknown mode %q, run 'justrun list' to see the modes", mode)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	out := cmd.OutOrStdout()
	if flagScoresClear {
		if err := store.ClearScores(mode); err != nil {
			return err
		}
		fmt.Fprintf(out, "Cleared runs for %s\n", info.Title)
		return nil
	}

	var runs []storage.Run
	if flagScoresRecent {
		runs, err = store.RecentRuns(mode, flagScoresLimit)
	} else {
		runs, err = store.TopRuns(mode, flagScoresLimit)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Runs - %s\n\n", info.Title)
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Play 'justrun play %s' to set the first one!\n", mode)
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-8s  %-5s  %-5s  %-7s  %s\n", "Rank", "Score", "Level", "Kills", "Time", "Date")
	fmt.Fprintf(out, "  %-4s  %-8s  %-5s  %-5s  %-7s  %s\n", "----", "-----", "-----", "-----", "----", "----")
	for i, r := range runs {
		fmt.Fprintf(out, "  %-4d  %-8d  %-5d  %-5d  %-7s  %s\n",
			i+1, r.Score, r.Level, r.Kills, formatClock(r.Duration), r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetGameStats(mode)
	if err == nil {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Best: %d  Games: %d  Furthest level: %d  Total kills: %d\n",
			stats.HighScore, stats.GamesCount, stats.MaxLevel, stats.TotalKills)
	}
	if best, err := store.BestRun(mode); err == nil && best != nil {
		fmt.Fprintf(out, "Best run: level %d, %d kills in %s\n",
			best.Level, best.Kills, formatClock(best.Duration))
	}
	return nil
}

// formatClock renders d as m:ss.
func formatClock(d time.Duration) string {
	secs := int(d.Round(time.Second) / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
