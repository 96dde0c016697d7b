package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nprice1/just-run/internal/games/justrun"
	"github.com/nprice1/just-run/internal/games/justrun/rng"
	"github.com/nprice1/just-run/internal/platform/spectate"
	"github.com/nprice1/just-run/internal/storage"
)

var (
	flagSimMode     string
	flagSimFrames   int
	flagSimRealtime bool
	flagSimSpectate string
	flagSimRecord   bool
	flagSimTurn     int
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run the simulation headless with a wandering player",
	Long: `Run a world without a terminal. A scripted player wanders the map,
changing direction at random intervals, until it dies or the frame limit is
reached. Level changes and the final result are logged.

With --spectate the frames are streamed as JSON over a websocket at
ws://<addr>/ws, and the simulation runs in real time.

Examples:
  justrun sim --seed 42
  justrun sim --frames 0 --realtime --log-level debug
  justrun sim --spectate :8080 --difficulty hard`,
	RunE: runSim,
}

func init() {
	addGameFlags(simCmd)
	simCmd.Flags().StringVar(&flagSimMode, "mode", justrun.ModeStandard, "Game mode whose settings to use")
	simCmd.Flags().IntVar(&flagSimFrames, "frames", 60*60*5, "Frames to simulate (0 = until the player dies)")
	simCmd.Flags().BoolVar(&flagSimRealtime, "realtime", false, "Pace frames with the wall clock")
	simCmd.Flags().StringVar(&flagSimSpectate, "spectate", "", "Serve a websocket snapshot feed on this address")
	simCmd.Flags().BoolVar(&flagSimRecord, "record", false, "Save the run to the history database")
	simCmd.Flags().IntVar(&flagSimTurn, "turn", 45, "Average frames between direction changes")
}

// wanderer steers like a restless player: hold a direction, sometimes two,
// and pick a new one every so often.
type wanderer struct {
	src   *rng.Source
	every int
	left  int
	in    justrun.Input
}

func newWanderer(seed int64, every int) *wanderer {
	return &wanderer{src: rng.New(seed), every: max(every, 1)}
}

func (w *wanderer) next() justrun.Input {
	if w.left <= 0 {
		w.in = justrun.Input{}
		switch w.src.Intn(3) {
		case 0:
			w.in.Left = true
		case 1:
			w.in.Right = true
		}
		switch w.src.Intn(3) {
		case 0:
			w.in.Up = true
		case 1:
			w.in.Down = true
		}
		w.left = w.every/2 + w.src.Intn(w.every)
	}
	w.left--
	return w.in
}

func runSim(_ *cobra.Command, _ []string) error {
	if err := applyGameFlags(flagSimMode); err != nil {
		return err
	}
	cfg, level, _ := justrun.LoadSettings(flagSimMode)
	if flagFPS > 0 {
		cfg.World.FrameRate = flagFPS
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	world := justrun.NewWorld(justrun.Options{
		Config:    cfg,
		Seed:      seed,
		Level:     level,
		SkipTitle: true,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var hub *spectate.Hub
	if flagSimSpectate != "" {
		hub = spectate.NewHub(logger.WithPrefix("spectate"))
		defer hub.Close()
		shutdown, err := serveSpectators(flagSimSpectate, hub)
		if err != nil {
			return err
		}
		defer shutdown()
		flagSimRealtime = true
	}

	opts := justrun.LoopOptions{
		MaxFrames: flagSimFrames,
		OnOverrun: func(took time.Duration) {
			logger.Debug("frame overrun", "took", took, "frame", world.Ticks())
		},
	}
	if !flagSimRealtime {
		opts.Clock = justrun.FixedClock(justrun.FrameInterval(cfg.World.FrameRate))
		opts.Sleep = func(time.Duration) {}
		opts.OnOverrun = nil
	}

	walker := newWanderer(seed^0x5eed, flagSimTurn)
	opts.Input = func() justrun.Input {
		if world.Phase() == justrun.PhaseGameOver {
			return justrun.Input{Quit: true}
		}
		return walker.next()
	}
	opts.Draw = func(w *justrun.World) {
		logEvents(w)
		if hub != nil {
			if err := hub.Publish(spectate.NewMessage(w)); err != nil {
				logger.Warn("could not publish frame", "error", err)
			}
		}
	}

	logger.Info("simulation started", "mode", flagSimMode, "seed", seed, "frames", flagSimFrames)
	err := justrun.Run(ctx, world, opts)
	if errors.Is(err, context.Canceled) {
		err = nil
	}

	logger.Info("simulation finished",
		"phase", world.Phase(),
		"level", world.Level(),
		"score", world.Score(),
		"kills", world.Kills(),
		"played", world.RunTime().Round(time.Second),
		"hash", world.Snapshot().Hash(),
	)
	if flagSimRecord {
		recordSim(world)
	}
	return err
}

// logEvents reports the frame's notable events.
func logEvents(w *justrun.World) {
	for _, e := range w.Events() {
		switch e.Kind {
		case justrun.EventLevelComplete:
			logger.Info("level complete", "level", e.Value, "score", w.Score(), "frame", w.Ticks())
		case justrun.EventTimeUp:
			logger.Info("time ran out", "level", w.Level())
		case justrun.EventGameOver:
			logger.Info("game over", "level", w.Level(), "score", w.Score())
		case justrun.EventNewHighScore:
			logger.Info("new high score", "score", e.Value)
		default:
			logger.Debug("event", "kind", e.Kind, "value", e.Value, "frame", w.Ticks())
		}
	}
}

func recordSim(w *justrun.World) {
	store := openStore()
	if store == nil {
		return
	}
	defer store.Close()

	_, err := store.SaveRun(storage.Run{
		GameID:   flagSimMode,
		Score:    w.Score(),
		Level:    w.Level(),
		Kills:    w.Kills(),
		Duration: w.RunTime(),
	})
	if err != nil {
		logger.Warn("could not save run", "error", err)
	}
}

// serveSpectators starts the websocket feed in the background.
func serveSpectators(addr string, hub *spectate.Hub) (shutdown func(), err error) {
	mux := http.NewServeMux()
	mux.Handle("/ws", hub)

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()

	// Surface an immediate bind failure instead of simulating unwatched.
	select {
	case err := <-errc:
		return nil, err
	case <-time.After(100 * time.Millisecond):
	}
	logger.Info("spectator feed listening", "url", "ws://"+addr+"/ws")

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(ctx) //nolint:errcheck // exiting anyway
	}, nil
}
