package justrun

import "time"

// Clock measures frame durations.
type Clock interface {
	// Elapsed returns the time since the previous call.
	Elapsed() time.Duration
}

// FrameInterval is the nominal duration of one frame at fps frames per
// second.
func FrameInterval(fps int) time.Duration {
	if fps <= 0 {
		fps = 60
	}
	return time.Second / time.Duration(fps)
}

// ClampElapsed bounds a measured frame duration to factor nominal frames,
// so a stall (debugger, suspended terminal) cannot tunnel actors through
// walls. Negative durations become zero.
func ClampElapsed(d, nominal time.Duration, factor int) time.Duration {
	if d < 0 {
		return 0
	}
	if factor < 1 {
		factor = 1
	}
	if limit := nominal * time.Duration(factor); d > limit {
		return limit
	}
	return d
}

// WallClock reads real time.
type WallClock struct {
	last time.Time
	now  func() time.Time
}

// NewWallClock starts a clock at the current time.
func NewWallClock() *WallClock {
	return &WallClock{last: time.Now(), now: time.Now}
}

// Elapsed returns the wall time since the previous call.
func (c *WallClock) Elapsed() time.Duration {
	t := c.now()
	d := t.Sub(c.last)
	c.last = t
	return d
}

// FixedClock reports the same duration every frame. Simulations and tests
// use it to stay deterministic.
type FixedClock time.Duration

// Elapsed returns the fixed duration.
func (c FixedClock) Elapsed() time.Duration { return time.Duration(c) }
