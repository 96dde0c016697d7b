package sprite

import "github.com/nprice1/just-run/internal/games/justrun/physics"

// Animation cycles through a fixed number of frames at a fixed rate.
// A single-frame animation never advances.
type Animation struct {
	frames  int
	fps     int
	elapsed float64 // ms since the last frame change
	current int
}

// NewAnimation creates an animation of frames frames played at fps.
func NewAnimation(frames, fps int) Animation {
	return Animation{frames: max(frames, 1), fps: fps}
}

// Update advances the animation by elapsed milliseconds.
func (a *Animation) Update(elapsed float64) {
	if a.frames <= 1 || a.fps <= 0 {
		return
	}
	a.elapsed += elapsed
	frameTime := 1000 / float64(a.fps)
	for a.elapsed >= frameTime {
		a.elapsed -= frameTime
		a.current = (a.current + 1) % a.frames
	}
}

// Frame returns the current frame index.
func (a *Animation) Frame() int {
	return a.current
}

// Reset rewinds to the first frame.
func (a *Animation) Reset() {
	a.current = 0
	a.elapsed = 0
}

// Set is per-movement state indexed by (motion, facing).
type Set[T any] [2][2]T

// NewSet fills every slot with build(movement).
func NewSet[T any](build func(physics.Movement) T) Set[T] {
	var s Set[T]
	for _, m := range []physics.Motion{physics.Standing, physics.Walking} {
		for _, f := range []physics.Facing{physics.West, physics.East} {
			s[m][f] = build(physics.Movement{Motion: m, Facing: f})
		}
	}
	return s
}

// At returns the slot for m.
func (s *Set[T]) At(m physics.Movement) *T {
	return &s[m.Motion][m.Facing]
}

// Animator keeps one Animation per movement and advances only the active one.
type Animator struct {
	set Set[Animation]
}

// NewAnimator builds an Animator where walking uses walkFrames and standing
// uses a single frame.
func NewAnimator(walkFrames, fps int) Animator {
	return Animator{set: NewSet(func(m physics.Movement) Animation {
		if m.Motion == physics.Walking {
			return NewAnimation(walkFrames, fps)
		}
		return NewAnimation(1, fps)
	})}
}

// Update advances the animation for m.
func (a *Animator) Update(m physics.Movement, elapsed float64) {
	a.set.At(m).Update(elapsed)
}

// Frame returns the current frame for m.
func (a *Animator) Frame(m physics.Movement) int {
	return a.set.At(m).Frame()
}
