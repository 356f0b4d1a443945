package pong

import (
	"github.com/vovakirdan/tui-pong/internal/config"
	"github.com/vovakirdan/tui-pong/internal/core"
)

// Params are the fixed physical constants of one game.
// All distances are field pixels, speeds are pixels per second.
type Params struct {
	Width        float64
	Height       float64
	Thickness    float64
	PaddleLength float64
	PaddleSpeed  float64
	HitBandMin   float64 // Ball x range where the paddle can return it
	HitBandMax   float64
	MaxDelta     float64 // Largest physics step in seconds
	BallVelocity core.Vector2
}

// ParamsFromConfig derives physics parameters from a validated config.
// The difficulty level scales the serve velocity once, up front.
func ParamsFromConfig(cfg config.PongConfig) Params {
	scale := cfg.Difficulty.ServeScale()
	return Params{
		Width:        float64(cfg.Field.Width),
		Height:       float64(cfg.Field.Height),
		Thickness:    float64(cfg.Field.Thickness),
		PaddleLength: float64(cfg.Paddle.Length),
		PaddleSpeed:  cfg.Paddle.Speed,
		HitBandMin:   cfg.Paddle.HitBandMin,
		HitBandMax:   cfg.Paddle.HitBandMax,
		MaxDelta:     min(cfg.Timing.MaxDelta, config.MaxFrameDelta),
		BallVelocity: core.Vector2{X: cfg.Ball.VelocityX * scale, Y: cfg.Ball.VelocityY * scale},
	}
}

// DefaultParams returns the parameters of the default configuration.
func DefaultParams() Params {
	return ParamsFromConfig(config.DefaultPongConfig())
}

// Keys is the continuous paddle key state for one update.
type Keys struct {
	Up   bool
	Down bool
}

// KeysFrom reads paddle keys out of an input frame.
func KeysFrom(in core.InputFrame) Keys {
	return Keys{Up: in.IsHeld(core.ActionUp), Down: in.IsHeld(core.ActionDown)}
}

// GameState is the whole mutable state of a game.
// It has a single owner and is not safe for concurrent use.
type GameState struct {
	PaddlePos core.Vector2
	BallPos   core.Vector2
	BallVel   core.Vector2
	IsPaused  bool
	LastTick  uint64 // Tick of the last frame, in milliseconds

	params  Params
	returns int  // Paddle returns since construction
	ballOut bool // Ball has fully left the field on the left
}

// NewGameState places the ball at the field center and the paddle at the
// middle of the left edge, with the serve velocity from p.
func NewGameState(p Params) *GameState {
	return &GameState{
		PaddlePos: core.Vector2{X: p.Thickness / 2, Y: p.Height / 2},
		BallPos:   core.Vector2{X: p.Width / 2, Y: p.Height / 2},
		BallVel:   p.BallVelocity,
		params:    p,
	}
}

// Params returns the state's physical constants.
func (s *GameState) Params() Params {
	return s.params
}

// Returns is the number of times the paddle has sent the ball back.
func (s *GameState) Returns() int {
	return s.returns
}

// BallOut reports whether the ball has passed the paddle and left the field.
// Nothing resets the ball; it keeps travelling.
func (s *GameState) BallOut() bool {
	return s.ballOut
}

// TogglePause flips the pause flag.
func (s *GameState) TogglePause() {
	s.IsPaused = !s.IsPaused
}

// ClampDelta limits a frame's elapsed time to [0, MaxDelta] seconds.
func (s *GameState) ClampDelta(dt float64) float64 {
	return core.ClampF(dt, 0, s.params.MaxDelta)
}

// Tick runs the update for a frame at time now (milliseconds).
// Paused frames only move LastTick, so the paused interval is discarded.
func (s *GameState) Tick(now uint64, keys Keys) {
	if s.IsPaused || now < s.LastTick {
		s.LastTick = now
		return
	}
	dt := float64(now-s.LastTick) / 1000.0
	s.LastTick = now
	s.Update(dt, keys)
}

// Update advances the simulation by dt seconds. It does nothing while paused.
func (s *GameState) Update(dt float64, keys Keys) {
	if s.IsPaused {
		return
	}
	dt = s.ClampDelta(dt)
	p := s.params

	var dir float64
	if keys.Up {
		dir--
	}
	if keys.Down {
		dir++
	}
	half := p.PaddleLength / 2
	s.PaddlePos.Y += dir * p.PaddleSpeed * dt
	s.PaddlePos.Y = core.ClampF(s.PaddlePos.Y, p.Thickness+half, p.Height-p.Thickness-half)

	s.BallPos = s.BallPos.Add(s.BallVel.Scale(dt))
	s.collide()

	if s.BallPos.X < -p.Thickness {
		s.ballOut = true
	}
}

// collide reflects the ball off walls and the paddle using position
// thresholds. Each switch flips its axis at most once per update.
// Fast balls can tunnel through the paddle band between frames.
func (s *GameState) collide() {
	p := s.params

	switch {
	case s.BallPos.Y <= p.Thickness && s.BallVel.Y < 0:
		s.BallVel.Y = -s.BallVel.Y
	case s.BallPos.Y >= p.Height-p.Thickness && s.BallVel.Y >= 0:
		s.BallVel.Y = -s.BallVel.Y
	}

	offset := core.AbsF(s.PaddlePos.Y - s.BallPos.Y)
	switch {
	case s.BallPos.X >= p.HitBandMin && s.BallPos.X <= p.HitBandMax &&
		s.BallVel.X < 0 && offset <= p.PaddleLength/2:
		s.BallVel.X = -s.BallVel.X
		s.returns++
	case s.BallPos.X >= p.Width-p.Thickness && s.BallVel.X >= 0:
		s.BallVel.X = -s.BallVel.X
	}
}
