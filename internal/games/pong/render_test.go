package pong

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-pong/internal/core"
)

type fillCall struct {
	rect  core.Rect
	color core.Color
}

// recordingCanvas remembers every draw call of the last frame.
type recordingCanvas struct {
	clears   []core.Color
	fills    []fillCall
	presents int
	err      error
}

func (c *recordingCanvas) Clear(col core.Color) {
	c.clears = append(c.clears, col)
	c.fills = nil
}

func (c *recordingCanvas) FillRect(r core.Rect, col core.Color) {
	c.fills = append(c.fills, fillCall{rect: r, color: col})
}

func (c *recordingCanvas) Present() error {
	c.presents++
	return c.err
}

func TestRenderDrawsFieldInOrder(t *testing.T) {
	s := NewGameState(DefaultParams())
	c := &recordingCanvas{}

	if err := s.Render(c); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if len(c.clears) != 1 || c.clears[0] != core.ColorBlue {
		t.Fatalf("clears = %v, expected one blue clear", c.clears)
	}
	if c.presents != 1 {
		t.Fatalf("presents = %d, expected 1", c.presents)
	}

	want := []core.Rect{
		{X: 0, Y: 0, W: 1024, H: 15},   // top wall
		{X: 0, Y: 753, W: 1024, H: 15}, // bottom wall
		{X: 1009, Y: 0, W: 15, H: 768}, // right wall
		{X: 505, Y: 377, W: 15, H: 15}, // ball
		{X: 0, Y: 334, W: 15, H: 100},  // paddle
	}
	if len(c.fills) != len(want) {
		t.Fatalf("got %d rects, expected %d", len(c.fills), len(want))
	}
	for i, f := range c.fills {
		if f.rect != want[i] {
			t.Errorf("rect %d = %+v, expected %+v", i, f.rect, want[i])
		}
		if f.color != core.ColorWhite {
			t.Errorf("rect %d color = %v, expected white", i, f.color)
		}
	}
}

func TestRenderFollowsState(t *testing.T) {
	p := DefaultParams()
	p.PaddleLength = 200
	s := NewGameState(p)
	s.BallPos = core.Vector2{X: 100.9, Y: 50.2}
	s.PaddlePos.Y = 200
	c := &recordingCanvas{}

	if err := s.Render(c); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	ball, paddle := c.fills[3].rect, c.fills[4].rect
	if ball != (core.Rect{X: 93, Y: 43, W: 15, H: 15}) {
		t.Errorf("ball rect = %+v", ball)
	}
	if paddle != (core.Rect{X: 0, Y: 100, W: 15, H: 200}) {
		t.Errorf("paddle rect = %+v", paddle)
	}
}

func TestRenderDoesNotMutateState(t *testing.T) {
	s := NewGameState(DefaultParams())
	s.Update(frameDT, Keys{Down: true})
	before := *s

	if err := s.Render(&recordingCanvas{}); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if *s != before {
		t.Error("Render must only read the state")
	}
}

func TestRenderPresentError(t *testing.T) {
	s := NewGameState(DefaultParams())
	boom := errors.New("present failed")

	err := s.Render(&recordingCanvas{err: boom})
	if !errors.Is(err, boom) {
		t.Errorf("Render() error = %v, expected %v", err, boom)
	}
}

func TestRenderOntoRaster(t *testing.T) {
	s := NewGameState(DefaultParams())
	screen := core.NewScreen(64, 24)
	r := core.NewRaster(1024, 768, screen)

	if err := s.Render(r); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	// Top-left cell is covered by the top wall and the paddle's column
	if got := screen.GetCell(0, 0); got.Fg != core.ColorWhite {
		t.Errorf("top-left cell fg = %v, expected white wall", got.Fg)
	}
	// Center of the field shows the ball
	if got := screen.GetCell(32, 12); got.Fg != core.ColorWhite && got.Bg != core.ColorWhite {
		t.Errorf("center cell = %+v, expected ball pixels", got)
	}
	// Somewhere in open field is background
	if got := screen.GetCell(20, 6); got.Fg != core.ColorBlue || got.Bg != core.ColorBlue {
		t.Errorf("open cell = %+v, expected blue background", got)
	}
}
