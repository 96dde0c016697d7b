package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nprice1/just-run/internal/config"
	"github.com/nprice1/just-run/internal/games/justrun"
	"github.com/nprice1/just-run/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Just Run SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own session with the mode picker menu.
Runs are stored per-server (all users share the same history).
Sessions have no sound and no high-score file.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.justrun/host_key

Examples:
  justrun serve                           # Listen on :23234 with auto-generated key
  justrun serve --ssh :2222               # Listen on port 2222
  justrun serve --host-key ./my_host_key  # Use specific host key
  justrun serve --db ./runs.db            # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	RunE: runServe,
}

func init() {
	addGameFlags(serveCmd)
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) error {
	if err := applyGameFlags(justrun.ModeStandard); err != nil {
		return err
	}
	cfg, err := config.LoadJustRun(flagConfig)
	if err != nil {
		return err
	}

	// Each session needs its own clock; a shared one would split the
	// elapsed time between players.
	justrun.SetClock(func() justrun.Clock { return justrun.NewWallClock() })

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		TickRate:    flagFPS,
		HoldTicks:   cfg.Controls.HoldTicks,
	}, store, logger.WithPrefix("justrun-ssh"))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, port, err := net.SplitHostPort(flagSSHAddr); err == nil {
		logger.Info("connect with ssh", "command", "ssh localhost -p "+port)
	}
	return server.ListenAndServe(ctx)
}
