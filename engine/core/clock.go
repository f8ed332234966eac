package core

import "time"

// Clock measures elapsed wall time in seconds. Elapsed only advances on
// Update so a frame reads one consistent timestamp everywhere.
type Clock struct {
	startTime time.Time
	elapsed   float64
	running   bool
}

func NewClock() *Clock {
	return &Clock{}
}

// Start resets the clock and begins measuring.
func (c *Clock) Start() {
	c.startTime = time.Now()
	c.elapsed = 0
	c.running = true
}

// Stop freezes the clock at its current elapsed time.
func (c *Clock) Stop() {
	c.running = false
}

// Update samples the wall clock. No effect on a stopped clock.
func (c *Clock) Update() {
	if c.running {
		c.elapsed = time.Since(c.startTime).Seconds()
	}
}

// Elapsed returns seconds since Start, as of the last Update.
func (c *Clock) Elapsed() float64 {
	return c.elapsed
}
