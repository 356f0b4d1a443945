package pong

import "github.com/vovakirdan/tui-pong/internal/core"

// Colors used for the field.
const (
	BackgroundColor = core.ColorBlue
	ShapeColor      = core.ColorWhite
)

// Render draws walls, ball and paddle onto dst and presents the frame.
// It only reads the state.
func (s *GameState) Render(dst core.Canvas) error {
	p := s.params
	w, h := int(p.Width), int(p.Height)
	t := int(p.Thickness)

	dst.Clear(BackgroundColor)

	dst.FillRect(core.NewRect(0, 0, w, t), ShapeColor)   // top wall
	dst.FillRect(core.NewRect(0, h-t, w, t), ShapeColor) // bottom wall
	dst.FillRect(core.NewRect(w-t, 0, t, h), ShapeColor) // right wall

	dst.FillRect(core.CenteredRect(s.BallPos.X, s.BallPos.Y, t, t), ShapeColor)
	dst.FillRect(core.CenteredRect(s.PaddlePos.X, s.PaddlePos.Y, t, int(p.PaddleLength)), ShapeColor)

	return dst.Present()
}
