package loop

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/tui-pong/internal/config"
	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/games/pong"
)

// countingCanvas counts presented frames and can fail on demand.
type countingCanvas struct {
	presents int
	err      error
}

func (c *countingCanvas) Clear(core.Color) {}

func (c *countingCanvas) FillRect(core.Rect, core.Color) {}

func (c *countingCanvas) Present() error {
	c.presents++
	return c.err
}

// scriptedPlatform replays actions at fixed poll counts.
type scriptedPlatform struct {
	canvas *countingCanvas
	polls  int
	script map[int][]core.Action // poll index -> actions
	quitAt int                   // 0 never quits
	onPoll func(poll int)
}

func (p *scriptedPlatform) Poll() (core.InputFrame, bool) {
	p.polls++
	if p.onPoll != nil {
		p.onPoll(p.polls)
	}
	if p.quitAt > 0 && p.polls >= p.quitAt {
		return core.NewInputFrame(), true
	}
	in := core.NewInputFrame()
	for _, a := range p.script[p.polls] {
		in.Set(a)
	}
	return in, false
}

func (p *scriptedPlatform) Canvas() core.Canvas {
	return p.canvas
}

func newGame(t *testing.T) *pong.Game {
	t.Helper()
	g := pong.New()
	g.ResetWith(config.DefaultPongConfig())
	return g
}

func TestRunMaxFramesPacesOnClock(t *testing.T) {
	clock := core.NewManualClock(1000)
	p := &scriptedPlatform{canvas: &countingCanvas{}}

	stats, err := Run(context.Background(), newGame(t), p, Options{
		Clock:     clock,
		MaxFrames: 60,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if stats.Frames != 60 || stats.Rendered != 60 || stats.Paused != 0 {
		t.Errorf("stats = %+v, expected 60 rendered frames", stats)
	}
	if p.canvas.presents != 60 {
		t.Errorf("presents = %d, expected 60", p.canvas.presents)
	}
	if stats.Elapsed() != 60*DefaultFrameInterval {
		t.Errorf("Elapsed() = %v, expected %v", stats.Elapsed(), 60*DefaultFrameInterval)
	}
}

func TestRunQuit(t *testing.T) {
	p := &scriptedPlatform{canvas: &countingCanvas{}, quitAt: 5}

	stats, err := Run(context.Background(), newGame(t), p, Options{Clock: core.NewManualClock(0)})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if stats.Frames != 4 {
		t.Errorf("Frames = %d, expected 4 before quit", stats.Frames)
	}
}

func TestRunSkipsRenderWhilePaused(t *testing.T) {
	p := &scriptedPlatform{
		canvas: &countingCanvas{},
		script: map[int][]core.Action{
			3:  {core.ActionPause},
			10: {core.ActionPause},
		},
	}
	g := newGame(t)

	var ballAtPause, ballAtResume core.Vector2
	stats, err := Run(context.Background(), g, p, Options{
		Clock:     core.NewManualClock(0),
		MaxFrames: 20,
		OnFrame: func(frame int, res core.StepResult) {
			switch frame {
			case 3:
				ballAtPause = g.GameState().BallPos
			case 9:
				ballAtResume = g.GameState().BallPos
			}
		},
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// Frames 3..9 are paused
	if stats.Paused != 7 || stats.Rendered != 13 {
		t.Errorf("stats = %+v, expected 7 paused and 13 rendered", stats)
	}
	if ballAtPause != ballAtResume {
		t.Error("ball moved while paused")
	}
	if stats.Last.Paused {
		t.Error("game should have resumed")
	}
}

func TestRunRenderError(t *testing.T) {
	boom := errors.New("surface lost")
	p := &scriptedPlatform{canvas: &countingCanvas{err: boom}}

	stats, err := Run(context.Background(), newGame(t), p, Options{Clock: core.NewManualClock(0)})
	if !errors.Is(err, boom) {
		t.Fatalf("Run() error = %v, expected wrapped %v", err, boom)
	}
	if stats.Frames != 1 || stats.Rendered != 0 {
		t.Errorf("stats = %+v, expected to stop on the first frame", stats)
	}
}

func TestRunCancelIsCleanStop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	p := &scriptedPlatform{
		canvas: &countingCanvas{},
		onPoll: func(poll int) {
			if poll == 3 {
				cancel()
			}
		},
	}

	stats, err := Run(ctx, newGame(t), p, Options{Clock: core.NewManualClock(0)})
	if err != nil {
		t.Fatalf("Run() error = %v, expected nil on cancellation", err)
	}
	if stats.Frames != 3 {
		t.Errorf("Frames = %d, expected 3", stats.Frames)
	}
}

func TestRunWithSystemClock(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	p := &scriptedPlatform{canvas: &countingCanvas{}}

	start := time.Now()
	stats, err := Run(ctx, newGame(t), p, Options{})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if time.Since(start) < 90*time.Millisecond {
		t.Error("run ended before the deadline")
	}
	// 100ms at 16ms per frame, with generous slack for slow machines
	if stats.Frames < 2 || stats.Frames > 8 {
		t.Errorf("Frames = %d, expected about 7", stats.Frames)
	}
}

func TestPacerRemaining(t *testing.T) {
	clock := core.NewManualClock(100)
	p := NewPacer(clock, 0)

	if p.Interval() != DefaultFrameInterval {
		t.Fatalf("Interval() = %v, expected default", p.Interval())
	}

	tests := []struct {
		name    string
		advance uint64
		want    time.Duration
	}{
		{"fresh frame", 0, 16 * time.Millisecond},
		{"partly used", 10, 6 * time.Millisecond},
		{"exactly used", 16, 0},
		{"overran", 40, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := core.NewManualClock(100)
			p := NewPacer(c, 16*time.Millisecond)
			c.Advance(tc.advance)
			if got := p.Remaining(100); got != tc.want {
				t.Errorf("Remaining() = %v, expected %v", got, tc.want)
			}
		})
	}

	if err := p.Wait(context.Background(), 100); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	if clock.Ticks() != 116 {
		t.Errorf("clock = %d after Wait, expected 116", clock.Ticks())
	}
}
