package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nprice1/just-run/internal/games/justrun/tilemap"
	"github.com/nprice1/just-run/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the game modes",
	Long:  `Shows every registered game mode and the builtin level layouts.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, _ []string) {
	out := cmd.OutOrStdout()
	modes := registry.List()
	if len(modes) == 0 {
		fmt.Fprintln(out, "No modes available.")
		return
	}

	maxIDLen := 2 // "ID" header
	for _, m := range modes {
		maxIDLen = max(maxIDLen, len(m.ID))
	}

	fmt.Fprintln(out, "Game modes:")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %-*s  %-20s  %s\n", maxIDLen, "ID", "Title", "Map")
	fmt.Fprintf(out, "  %-*s  %-20s  %s\n", maxIDLen, "--", "-----", "---")
	for _, m := range modes {
		fmt.Fprintf(out, "  %-*s  %-20s  %s\n", maxIDLen, m.ID, m.Title, m.Summary)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Builtin levels: %v\n", tilemap.BuiltinIDs())
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'justrun play <id>' to play a mode.")
}
