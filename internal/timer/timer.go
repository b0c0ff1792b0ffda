// Package timer provides the 60Hz countdown timer controller. It
// converts elapsed wall clock time into timer ticks so that the
// delay and sound timers decay independently of the instruction
// clock.
package timer

import (
	"time"

	"github.com/thelolagemann/pixel8/internal/types"
)

// Period is the time between two timer ticks.
const Period = time.Second / types.TimerFrequency

// Decrementer is implemented by anything holding countdown timers.
type Decrementer interface {
	DecrementTimers()
}

// Controller is a timer controller. It accumulates elapsed time and
// decrements the attached timers once for every Period that passes.
type Controller struct {
	target  Decrementer
	elapsed time.Duration

	// Enabled controls whether Advance ticks the timers. Time that
	// passes while disabled is discarded.
	Enabled bool
}

// NewController returns a new timer controller driving target.
func NewController(target Decrementer) *Controller {
	return &Controller{
		target:  target,
		Enabled: true,
	}
}

// Advance adds d to the accumulated time and ticks the timers for
// each whole Period. It returns the number of ticks performed.
func (c *Controller) Advance(d time.Duration) int {
	if !c.Enabled || d <= 0 {
		return 0
	}
	c.elapsed += d

	ticks := 0
	for c.elapsed >= Period {
		c.elapsed -= Period
		c.target.DecrementTimers()
		ticks++
	}
	return ticks
}

// Reset discards any accumulated time.
func (c *Controller) Reset() {
	c.elapsed = 0
}
