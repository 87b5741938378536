package engine

import (
	"math/big"
	"time"

	"github.com/talgya/oreworks/internal/exact"
)

// Clock converts wall-clock elapsed time into whole fixed-size simulation
// ticks. Elapsed seconds accumulate as an exact rational; Advance drains
// whole ticks up to a hard per-call cap, which bounds catch-up work after a
// stall (backgrounded process, debugger pause) at the cost of the backlog
// draining over several frames.
type Clock struct {
	prev    time.Time
	acc     *big.Rat // Seconds not yet converted to ticks
	tickDur *big.Rat
	limit   int
}

// NewClock creates a clock ticking ticksPerSecond times per simulated
// second, draining at most catchUpLimit ticks per Advance call.
func NewClock(now time.Time, ticksPerSecond int64, catchUpLimit int) *Clock {
	return &Clock{
		prev:    now,
		acc:     exact.Zero(),
		tickDur: big.NewRat(1, ticksPerSecond),
		limit:   catchUpLimit,
	}
}

// Advance accumulates the wall-clock time since the previous call and
// returns the number of whole ticks to simulate, capped at the catch-up
// limit. The previous timestamp updates unconditionally on every call, no
// matter how many ticks fired; negative elapsed time (clock stepped
// backwards) is discarded.
func (c *Clock) Advance(now time.Time) int {
	elapsed := now.Sub(c.prev)
	c.prev = now
	if elapsed > 0 {
		c.acc.Add(c.acc, big.NewRat(elapsed.Nanoseconds(), int64(time.Second)))
	}

	ticks := 0
	for ticks < c.limit && c.acc.Cmp(c.tickDur) >= 0 {
		c.acc.Sub(c.acc, c.tickDur)
		ticks++
	}
	return ticks
}

// Rebase moves the previous timestamp to now without consuming the elapsed
// time. Called after loading a saved game so downtime does not turn into a
// catch-up burst.
func (c *Clock) Rebase(now time.Time) {
	c.prev = now
}

// TickDuration returns a copy of the fixed tick length in seconds.
func (c *Clock) TickDuration() *big.Rat {
	return exact.Copy(c.tickDur)
}

// Pending returns a copy of the not-yet-converted second balance.
func (c *Clock) Pending() *big.Rat {
	return exact.Copy(c.acc)
}
