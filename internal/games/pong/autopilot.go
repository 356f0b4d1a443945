package pong

import "github.com/vovakirdan/tui-pong/internal/core"

// Autopilot steers the paddle toward the ball, like a CPU opponent.
type Autopilot struct {
	// DeadZone is how far (pixels) the paddle center may be from its target
	// before it moves. Larger values make a sloppier player.
	DeadZone float64
}

// NewAutopilot returns an autopilot with a dead zone of one wall thickness.
func NewAutopilot(p Params) Autopilot {
	return Autopilot{DeadZone: p.Thickness}
}

// Keys picks paddle keys for the current state.
// It tracks the ball while the ball approaches and drifts back to the
// center while the ball moves away.
func (a Autopilot) Keys(s *GameState) Keys {
	target := s.params.Height / 2
	if s.BallVel.X < 0 {
		target = s.BallPos.Y
	}

	diff := target - s.PaddlePos.Y
	switch {
	case diff > a.DeadZone:
		return Keys{Down: true}
	case diff < -a.DeadZone:
		return Keys{Up: true}
	default:
		return Keys{}
	}
}

// Steer holds the keys the autopilot picks for s in in.
func (a Autopilot) Steer(s *GameState, in *core.InputFrame) {
	keys := a.Keys(s)
	if keys.Up {
		in.Hold(core.ActionUp)
	}
	if keys.Down {
		in.Hold(core.ActionDown)
	}
}
