package core

import (
	"context"
	"time"
)

// Clock is a monotonic millisecond tick source with a yielding wait.
type Clock interface {
	// Ticks returns milliseconds elapsed since the clock started.
	Ticks() uint64

	// Sleep blocks for d or until ctx is done.
	Sleep(ctx context.Context, d time.Duration) error
}

// SystemClock reads the process monotonic clock.
type SystemClock struct {
	start time.Time
}

// NewSystemClock creates a clock whose tick zero is now.
func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

// Ticks returns milliseconds since the clock was created.
func (c *SystemClock) Ticks() uint64 {
	return uint64(time.Since(c.start).Milliseconds()) //nolint:gosec // monotonic, never negative
}

// Sleep waits on a timer so the goroutine yields instead of spinning.
func (c *SystemClock) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// ManualClock is a clock that only moves when told to.
// Sleep advances it instead of blocking, which makes simulated runs
// finish as fast as the CPU allows.
type ManualClock struct {
	now uint64
}

// NewManualClock creates a manual clock starting at the given tick.
func NewManualClock(start uint64) *ManualClock {
	return &ManualClock{now: start}
}

// Ticks returns the current tick.
func (c *ManualClock) Ticks() uint64 {
	return c.now
}

// Advance moves the clock forward by ms milliseconds.
func (c *ManualClock) Advance(ms uint64) {
	c.now += ms
}

// Sleep advances the clock by d.
func (c *ManualClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d > 0 {
		c.now += uint64(d.Milliseconds()) //nolint:gosec // d > 0
	}
	return nil
}
