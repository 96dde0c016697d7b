package physics

// Countdown is an explicit frame timer. Tick mutates; IsExpired and Active
// are pure queries, so checking a timer never changes it.
type Countdown struct {
	remaining int
	armed     bool
}

// Start arms the countdown for n ticks. n below 1 is treated as 1.
func (c *Countdown) Start(n int) {
	c.remaining = max(n, 1)
	c.armed = true
}

// Stop disarms the countdown.
func (c *Countdown) Stop() {
	c.remaining = 0
	c.armed = false
}

// Tick consumes one frame.
func (c *Countdown) Tick() {
	if c.remaining > 0 {
		c.remaining--
	}
}

// IsExpired reports whether the countdown was started and has run out.
func (c Countdown) IsExpired() bool {
	return c.armed && c.remaining == 0
}

// Active reports whether the countdown is started and still running.
func (c Countdown) Active() bool {
	return c.armed && c.remaining > 0
}

// Armed reports whether Start has been called since the last Stop.
func (c Countdown) Armed() bool { return c.armed }

// Remaining returns the ticks left.
func (c Countdown) Remaining() int { return c.remaining }
