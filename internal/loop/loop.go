// Package loop drives a game with a fixed-interval frame loop:
// poll input, advance the game, render unless paused, then wait out the
// rest of the frame. Backends that own their own loop (Bubble Tea, Ebiten)
// call Game.Frame directly instead.
package loop

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/registry"
)

// DefaultFrameInterval is the target time between frame starts.
const DefaultFrameInterval = 16 * time.Millisecond

// Platform supplies input and a render target to the loop.
type Platform interface {
	// Poll drains pending input for one frame.
	// quit is true when the player asked to exit.
	Poll() (in core.InputFrame, quit bool)

	// Canvas is the surface frames are rendered to.
	Canvas() core.Canvas
}

// Options configure a Run.
type Options struct {
	Clock         core.Clock
	FrameInterval time.Duration
	MaxFrames     int // 0 runs until quit or cancellation
	Logger        *log.Logger

	// OnFrame, if set, is called after every frame with its result.
	OnFrame func(frame int, res core.StepResult)
}

// Stats summarizes a finished run.
type Stats struct {
	Frames   int // Frames advanced
	Rendered int // Frames drawn
	Paused   int // Frames skipped while paused
	Start    uint64
	End      uint64
	Last     core.GameState
}

// Elapsed is the wall (or simulated) time the run covered.
func (s Stats) Elapsed() time.Duration {
	return time.Duration(s.End-s.Start) * time.Millisecond
}

// Pacer waits out the remainder of a frame on a Clock.
type Pacer struct {
	clock    core.Clock
	interval time.Duration
}

// NewPacer creates a pacer; a non-positive interval uses DefaultFrameInterval.
func NewPacer(clock core.Clock, interval time.Duration) Pacer {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return Pacer{clock: clock, interval: interval}
}

// Interval returns the target frame interval.
func (p Pacer) Interval() time.Duration {
	return p.interval
}

// Remaining is how much of the frame that started at start is left.
func (p Pacer) Remaining(start uint64) time.Duration {
	now := p.clock.Ticks()
	if now < start {
		return p.interval
	}
	spent := time.Duration(now-start) * time.Millisecond
	if spent >= p.interval {
		return 0
	}
	return p.interval - spent
}

// Wait sleeps until the frame that started at start has used its interval.
// A frame that overran does not wait.
func (p Pacer) Wait(ctx context.Context, start uint64) error {
	d := p.Remaining(start)
	if d <= 0 {
		return ctx.Err()
	}
	return p.clock.Sleep(ctx, d)
}

// Run loops until the platform reports quit, ctx is cancelled or MaxFrames
// frames have run. Cancellation is a clean stop. A render failure ends the
// run with an error.
func Run(ctx context.Context, game registry.Game, p Platform, opts Options) (Stats, error) {
	if opts.Clock == nil {
		opts.Clock = core.NewSystemClock()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	pacer := NewPacer(opts.Clock, opts.FrameInterval)

	stats := Stats{Start: opts.Clock.Ticks()}

	for {
		if ctx.Err() != nil {
			logger.Debug("loop cancelled", "frames", stats.Frames)
			stats.End = opts.Clock.Ticks()
			return stats, nil
		}
		if opts.MaxFrames > 0 && stats.Frames >= opts.MaxFrames {
			stats.End = opts.Clock.Ticks()
			return stats, nil
		}

		start := opts.Clock.Ticks()

		in, quit := p.Poll()
		if quit {
			logger.Debug("quit requested", "frames", stats.Frames)
			stats.End = opts.Clock.Ticks()
			return stats, nil
		}

		res := game.Frame(start, in)
		stats.Frames++
		stats.Last = res.State

		if res.State.Paused {
			stats.Paused++
		} else {
			if err := game.Render(p.Canvas()); err != nil {
				stats.End = opts.Clock.Ticks()
				return stats, fmt.Errorf("render frame %d: %w", stats.Frames, err)
			}
			stats.Rendered++
		}

		if opts.OnFrame != nil {
			opts.OnFrame(stats.Frames, res)
		}

		if err := pacer.Wait(ctx, start); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				stats.End = opts.Clock.Ticks()
				return stats, nil
			}
			stats.End = opts.Clock.Ticks()
			return stats, fmt.Errorf("frame wait: %w", err)
		}
	}
}
