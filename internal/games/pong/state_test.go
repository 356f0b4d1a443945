package pong

import (
	"testing"

	"github.com/vovakirdan/tui-pong/internal/config"
	"github.com/vovakirdan/tui-pong/internal/core"
)

const frameDT = 1.0 / 60.0

// newTestState returns a default-field state with the ball and paddle placed explicitly.
func newTestState(ball, vel core.Vector2, paddleY float64) *GameState {
	s := NewGameState(DefaultParams())
	s.BallPos = ball
	s.BallVel = vel
	s.PaddlePos.Y = paddleY
	return s
}

func TestNewGameState(t *testing.T) {
	s := NewGameState(DefaultParams())

	if s.BallPos != (core.Vector2{X: 512, Y: 384}) {
		t.Errorf("BallPos = %+v, expected field center", s.BallPos)
	}
	if s.PaddlePos != (core.Vector2{X: 7.5, Y: 384}) {
		t.Errorf("PaddlePos = %+v, expected left-center", s.PaddlePos)
	}
	if s.BallVel != (core.Vector2{X: -200, Y: 235}) {
		t.Errorf("BallVel = %+v, expected serve velocity", s.BallVel)
	}
	if s.IsPaused || s.BallOut() || s.Returns() != 0 {
		t.Error("new state should be running with no returns")
	}
}

func TestTopWallBounce(t *testing.T) {
	s := newTestState(core.Vector2{X: 500, Y: 5}, core.Vector2{X: -100, Y: -50}, 384)

	s.Update(frameDT, Keys{})

	if s.BallVel.Y != 50 {
		t.Errorf("BallVel.Y = %g, expected 50", s.BallVel.Y)
	}
	if s.BallVel.X != -100 {
		t.Errorf("BallVel.X = %g, expected unchanged -100", s.BallVel.X)
	}
}

func TestPaddleBounce(t *testing.T) {
	s := newTestState(core.Vector2{X: 22, Y: 384}, core.Vector2{X: -100, Y: 0}, 384)

	s.Update(frameDT, Keys{})

	if s.BallVel.X != 100 {
		t.Errorf("BallVel.X = %g, expected 100", s.BallVel.X)
	}
	if s.BallVel.Y != 0 {
		t.Errorf("BallVel.Y = %g, expected flat reflection", s.BallVel.Y)
	}
	if s.Returns() != 1 {
		t.Errorf("Returns() = %d, expected 1", s.Returns())
	}
}

func TestPaddleBounceEdgeOfPaddle(t *testing.T) {
	// |paddle.y - ball.y| == length/2 still counts as a hit
	s := newTestState(core.Vector2{X: 22, Y: 434}, core.Vector2{X: -100, Y: 0}, 384)
	s.Update(frameDT, Keys{})
	if s.BallVel.X != 100 {
		t.Errorf("BallVel.X = %g, expected a hit at the paddle tip", s.BallVel.X)
	}
}

func TestPaddleMissEscapesWithoutReset(t *testing.T) {
	s := newTestState(core.Vector2{X: 22, Y: 500}, core.Vector2{X: -100, Y: 0}, 100)

	s.Update(frameDT, Keys{})
	if s.BallVel.X != -100 {
		t.Fatalf("BallVel.X = %g, expected no bounce", s.BallVel.X)
	}
	if s.BallPos.X >= 22 {
		t.Errorf("ball should keep moving left, x = %g", s.BallPos.X)
	}

	for i := 0; i < 60; i++ {
		s.Update(frameDT, Keys{})
	}
	if !s.BallOut() {
		t.Fatalf("ball at x = %g should be out of the field", s.BallPos.X)
	}

	x := s.BallPos.X
	for i := 0; i < 60; i++ {
		s.Update(frameDT, Keys{})
	}
	if s.BallPos.X >= x {
		t.Errorf("ball should keep flying after leaving, x went from %g to %g", x, s.BallPos.X)
	}
	if s.BallVel.X != -100 || s.Returns() != 0 {
		t.Error("a missed ball must not be reset or returned")
	}
}

func TestBottomAndRightWalls(t *testing.T) {
	tests := []struct {
		name    string
		ball    core.Vector2
		vel     core.Vector2
		wantVel core.Vector2
	}{
		{"bottom wall", core.Vector2{X: 500, Y: 760}, core.Vector2{X: 100, Y: 50}, core.Vector2{X: 100, Y: -50}},
		{"right wall", core.Vector2{X: 1015, Y: 300}, core.Vector2{X: 100, Y: 20}, core.Vector2{X: -100, Y: 20}},
		{"bottom wall ignores upward ball", core.Vector2{X: 500, Y: 760}, core.Vector2{X: 100, Y: -50}, core.Vector2{X: 100, Y: -50}},
		{"right wall ignores leftward ball", core.Vector2{X: 1015, Y: 300}, core.Vector2{X: -100, Y: 20}, core.Vector2{X: -100, Y: 20}},
		{"top wall ignores downward ball", core.Vector2{X: 500, Y: 5}, core.Vector2{X: 100, Y: 50}, core.Vector2{X: 100, Y: 50}},
		{"corner flips both axes once", core.Vector2{X: 1015, Y: 10}, core.Vector2{X: 100, Y: -100}, core.Vector2{X: -100, Y: 100}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestState(tc.ball, tc.vel, 384)
			s.Update(frameDT, Keys{})
			if s.BallVel != tc.wantVel {
				t.Errorf("BallVel = %+v, expected %+v", s.BallVel, tc.wantVel)
			}
		})
	}
}

func TestNoDoubleReflection(t *testing.T) {
	// The ball stays inside the top threshold for several frames after the
	// bounce; its velocity must not flip back.
	s := newTestState(core.Vector2{X: 500, Y: 5}, core.Vector2{X: 0, Y: -50}, 384)

	for i := 0; i < 5; i++ {
		s.Update(frameDT, Keys{})
		if s.BallVel.Y != 50 {
			t.Fatalf("frame %d: BallVel.Y = %g, expected 50", i, s.BallVel.Y)
		}
	}
}

func TestClampDelta(t *testing.T) {
	s := NewGameState(DefaultParams())

	tests := []struct {
		dt, want float64
	}{
		{0.016, 0.016},
		{0.05, 0.05},
		{0.051, 0.05},
		{3.0, 0.05},
		{-1, 0},
	}
	for _, tc := range tests {
		if got := s.ClampDelta(tc.dt); got != tc.want {
			t.Errorf("ClampDelta(%g) = %g, expected %g", tc.dt, got, tc.want)
		}
	}

	// A stalled frame moves the ball by at most MaxDelta worth of velocity
	s = newTestState(core.Vector2{X: 500, Y: 384}, core.Vector2{X: -100, Y: 0}, 384)
	s.Update(2.5, Keys{})
	if s.BallPos.X != 495 {
		t.Errorf("BallPos.X = %g, expected 495 after a clamped step", s.BallPos.X)
	}
}

func TestPaddleMovementAndClamp(t *testing.T) {
	for _, length := range []float64{100, 200} {
		p := DefaultParams()
		p.PaddleLength = length
		minY := p.Thickness + length/2
		maxY := p.Height - p.Thickness - length/2

		s := NewGameState(p)
		start := s.PaddlePos.Y
		s.Update(0.01, Keys{Up: true})
		if s.PaddlePos.Y != start-3 {
			t.Errorf("length %g: paddle y = %g after 0.01s up, expected %g", length, s.PaddlePos.Y, start-3)
		}

		for i := 0; i < 300; i++ {
			s.Update(0.05, Keys{Up: true})
			if s.PaddlePos.Y < minY || s.PaddlePos.Y > maxY {
				t.Fatalf("length %g: paddle y = %g outside [%g, %g]", length, s.PaddlePos.Y, minY, maxY)
			}
		}
		if s.PaddlePos.Y != minY {
			t.Errorf("length %g: paddle should rest on the top wall, y = %g", length, s.PaddlePos.Y)
		}

		for i := 0; i < 300; i++ {
			s.Update(0.05, Keys{Down: true})
			if s.PaddlePos.Y < minY || s.PaddlePos.Y > maxY {
				t.Fatalf("length %g: paddle y = %g outside [%g, %g]", length, s.PaddlePos.Y, minY, maxY)
			}
		}
		if s.PaddlePos.Y != maxY {
			t.Errorf("length %g: paddle should rest on the bottom wall, y = %g", length, s.PaddlePos.Y)
		}

		y := s.PaddlePos.Y
		s.Update(0.05, Keys{Up: true, Down: true})
		if s.PaddlePos.Y != y {
			t.Errorf("length %g: opposing keys should cancel", length)
		}
	}
}

func TestPausedUpdateIsNoOp(t *testing.T) {
	s := NewGameState(DefaultParams())
	s.TogglePause()
	before := *s

	for i := 0; i < 10; i++ {
		s.Update(frameDT, Keys{Down: true})
	}
	if s.BallPos != before.BallPos || s.PaddlePos != before.PaddlePos || s.BallVel != before.BallVel {
		t.Error("paused updates must not move the ball or paddle")
	}

	s.TogglePause()
	s.Update(frameDT, Keys{})
	if s.BallPos == before.BallPos {
		t.Error("ball should move again after unpausing")
	}
}

func TestTickDiscardsPausedTime(t *testing.T) {
	s := NewGameState(DefaultParams())
	s.LastTick = 1000

	s.Tick(1016, Keys{})
	x := s.BallPos.X
	if s.LastTick != 1016 {
		t.Errorf("LastTick = %d, expected 1016", s.LastTick)
	}

	s.TogglePause()
	s.Tick(5000, Keys{})
	s.Tick(9000, Keys{})
	if s.BallPos.X != x {
		t.Error("paused ticks must not move the ball")
	}
	if s.LastTick != 9000 {
		t.Errorf("LastTick = %d, expected paused frames to track the clock", s.LastTick)
	}

	s.TogglePause()
	s.Tick(9010, Keys{})
	// 10ms at -200px/s
	if got := x - s.BallPos.X; got < 1.99 || got > 2.01 {
		t.Errorf("resumed frame moved ball %g px, expected 2", got)
	}
}

func TestTickClockGoingBackwards(t *testing.T) {
	s := NewGameState(DefaultParams())
	s.LastTick = 500
	before := s.BallPos

	s.Tick(400, Keys{})
	if s.BallPos != before || s.LastTick != 400 {
		t.Error("a tick from the past should only resync LastTick")
	}
}

func TestParamsFromConfigScalesServe(t *testing.T) {
	tests := []struct {
		level float64
		wantX float64
		wantY float64
	}{
		{0.0, -200, 235},
		{0.5, -300, 352.5},
		{1.0, -400, 470},
	}

	for _, tc := range tests {
		cfg := config.DefaultPongConfig()
		cfg.Difficulty.InitialLevel = tc.level
		p := ParamsFromConfig(cfg)
		if p.BallVelocity.X != tc.wantX || p.BallVelocity.Y != tc.wantY {
			t.Errorf("level %g: serve = %+v, expected (%g, %g)", tc.level, p.BallVelocity, tc.wantX, tc.wantY)
		}
		if p.PaddleSpeed != 300 {
			t.Errorf("level %g: paddle speed = %g, difficulty must only scale the serve", tc.level, p.PaddleSpeed)
		}
	}
}

func TestParamsFromConfigCapsFrameStep(t *testing.T) {
	cfg := config.DefaultPongConfig()
	cfg.Timing.MaxDelta = 1.0
	p := ParamsFromConfig(cfg)
	if p.MaxDelta != config.MaxFrameDelta {
		t.Fatalf("MaxDelta = %g, expected the %g cap", p.MaxDelta, config.MaxFrameDelta)
	}

	s := NewGameState(p)
	if got := s.ClampDelta(1.0); got != config.MaxFrameDelta {
		t.Errorf("ClampDelta(1.0) = %g, expected %g", got, config.MaxFrameDelta)
	}
}
