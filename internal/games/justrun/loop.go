package justrun

import (
	"context"
	"time"
)

// LoopOptions wires a World to its surroundings.
type LoopOptions struct {
	// Input is polled once per frame. nil means no input.
	Input func() Input
	// Draw renders the world after each step. nil skips drawing.
	Draw func(*World)
	// Clock measures frames; defaults to a WallClock.
	Clock Clock
	// Sleep waits out the rest of the frame budget; defaults to time.Sleep.
	Sleep func(time.Duration)
	// OnOverrun is told when a frame used more than its budget.
	OnOverrun func(took time.Duration)
	// MaxFrames stops the loop after that many frames when positive.
	MaxFrames int
}

// Run drives w at the configured frame rate until ctx is cancelled, a quit
// intent is seen, or MaxFrames frames have run. The world is only ever
// touched from the calling goroutine.
func Run(ctx context.Context, w *World, opts LoopOptions) error {
	if opts.Clock == nil {
		opts.Clock = NewWallClock()
	}
	if opts.Sleep == nil {
		opts.Sleep = time.Sleep
	}
	nominal := FrameInterval(w.cfg.World.FrameRate)
	factor := w.cfg.World.MaxFrameFactor

	for frame := 0; opts.MaxFrames <= 0 || frame < opts.MaxFrames; frame++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		start := time.Now()

		var in Input
		if opts.Input != nil {
			in = opts.Input()
		}
		w.Step(in, ClampElapsed(opts.Clock.Elapsed(), nominal, factor))
		if opts.Draw != nil {
			opts.Draw(w)
		}
		if w.Quit() {
			return nil
		}

		took := time.Since(start)
		if took < nominal {
			opts.Sleep(nominal - took)
		} else if opts.OnOverrun != nil {
			opts.OnOverrun(took)
		}
	}
	return nil
}
