// Package window runs a game in a desktop window using Ebitengine.
// Ebitengine owns the loop: Update advances the game once per tick and
// Draw presents the frame. Real key-up events make held keys exact here,
// unlike the terminal.
package window

import (
	"errors"
	"fmt"
	"image/color"
	"io"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/games/pong"
	"github.com/vovakirdan/tui-pong/internal/registry"
	"github.com/vovakirdan/tui-pong/internal/storage"
)

// Title is the window caption.
const Title = "Pong!"

// target is the surface a Canvas draws onto.
type target interface {
	Fill(c color.Color)
	FillRect(x, y, w, h float32, c color.Color)
}

// imageTarget draws onto an Ebitengine image.
type imageTarget struct {
	img *ebiten.Image
}

func (t imageTarget) Fill(c color.Color) {
	t.img.Fill(c)
}

func (t imageTarget) FillRect(x, y, w, h float32, c color.Color) {
	vector.DrawFilledRect(t.img, x, y, w, h, c, false)
}

// Canvas adapts a window surface to core.Canvas.
// Field pixels map one to one onto the logical screen.
type Canvas struct {
	dst target
}

// Clear fills the surface with c.
func (c *Canvas) Clear(col core.Color) {
	if c.dst == nil {
		return
	}
	c.dst.Fill(col.ToRGBA())
}

// FillRect fills r with col. Ebitengine clips to the image bounds.
func (c *Canvas) FillRect(r core.Rect, col core.Color) {
	if c.dst == nil || r.Empty() {
		return
	}
	c.dst.FillRect(float32(r.X), float32(r.Y), float32(r.W), float32(r.H), col.ToRGBA())
}

// Present is a no-op: Ebitengine shows the screen image after Draw returns.
func (c *Canvas) Present() error {
	if c.dst == nil {
		return core.ErrEmptySurface
	}
	return nil
}

// Keys reports keyboard state for the current tick.
type Keys interface {
	Pressed(k ebiten.Key) bool
	JustPressed(k ebiten.Key) bool
}

// ebitenKeys reads the live keyboard.
type ebitenKeys struct{}

func (ebitenKeys) Pressed(k ebiten.Key) bool {
	return ebiten.IsKeyPressed(k)
}

func (ebitenKeys) JustPressed(k ebiten.Key) bool {
	return inpututil.IsKeyJustPressed(k)
}

// autopilotFor returns a function that steers game's paddle, or nil if
// the game has no pong state to steer.
func autopilotFor(game registry.Game) func(*core.InputFrame) {
	src, ok := game.(interface{ GameState() *pong.GameState })
	if !ok {
		return nil
	}
	return func(in *core.InputFrame) {
		if gs := src.GameState(); gs != nil {
			pong.NewAutopilot(gs.Params()).Steer(gs, in)
		}
	}
}

// Options configure a window run.
type Options struct {
	Store  *storage.Store // nil disables rally saving
	Clock  core.Clock     // nil uses the system clock
	Logger *log.Logger
	Player string
	TPS    int     // Updates per second, 0 means 60
	Scale  float64 // Window size relative to the field, 0 means 1
	Demo   bool    // Let the autopilot play
	Keys   Keys    // nil reads the real keyboard
}

// Runner implements ebiten.Game for a registry game.
type Runner struct {
	game     registry.Game
	clock    core.Clock
	keys     Keys
	logger   *log.Logger
	recorder *storage.Recorder
	pilot    func(*core.InputFrame)
	canvas   Canvas

	input core.InputFrame
	state core.GameState
	err   error
}

// NewRunner wraps game, which must already be Reset.
func NewRunner(game registry.Game, opts Options) *Runner {
	if opts.Clock == nil {
		opts.Clock = core.NewSystemClock()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Keys == nil {
		opts.Keys = ebitenKeys{}
	}

	r := &Runner{
		game:   game,
		clock:  opts.Clock,
		keys:   opts.Keys,
		logger: opts.Logger,
		input:  core.NewInputFrame(),
		state:  game.State(),
	}
	if opts.Demo {
		r.pilot = autopilotFor(game)
	}

	rec, err := storage.NewRecorder(opts.Store, game.ID(), opts.Player, opts.Demo)
	if err != nil {
		r.logger.Warn("could not load best rally", "game", game.ID(), "error", err)
	}
	r.recorder = rec
	return r
}

// poll maps the keyboard onto an input frame.
// Esc quits; Space and P toggle pause; arrows and W/S are held keys.
func (r *Runner) poll() (quit bool) {
	k := r.keys
	if k.JustPressed(ebiten.KeyEscape) {
		return true
	}
	if k.JustPressed(ebiten.KeySpace) || k.JustPressed(ebiten.KeyP) {
		r.input.Set(core.ActionPause)
	}
	if k.JustPressed(ebiten.KeyR) {
		r.input.Set(core.ActionRestart)
	}
	if k.Pressed(ebiten.KeyArrowUp) || k.Pressed(ebiten.KeyW) {
		r.input.Hold(core.ActionUp)
	}
	if k.Pressed(ebiten.KeyArrowDown) || k.Pressed(ebiten.KeyS) {
		r.input.Hold(core.ActionDown)
	}
	return false
}

// Update runs one frame. Returning ebiten.Termination ends the run.
func (r *Runner) Update() error {
	if r.err != nil {
		return r.err
	}
	if r.poll() {
		r.logger.Info("window closed", "game", r.game.ID(), "returns", r.state.Score)
		return ebiten.Termination
	}

	if r.input.Has(core.ActionRestart) {
		r.recorder.Restart()
	}
	if r.pilot != nil {
		r.pilot(&r.input)
	}

	now := r.clock.Ticks()
	res := r.game.Frame(now, r.input)
	r.state = res.State
	r.input.Clear()

	rally, done, err := r.recorder.Observe(now, r.state)
	if done {
		r.logger.Info("rally over", "game", rally.Variant, "returns", rally.Returns, "duration", rally.Duration)
	}
	if err != nil {
		r.logger.Warn("could not save rally", "error", err)
	}
	return nil
}

// Draw renders the frame unless paused. The screen is not cleared between
// frames, so a paused game keeps showing its last frame.
func (r *Runner) Draw(screen *ebiten.Image) {
	r.draw(imageTarget{img: screen})
}

func (r *Runner) draw(dst target) {
	if r.state.Paused || r.err != nil {
		return
	}
	r.canvas.dst = dst
	if err := r.game.Render(&r.canvas); err != nil {
		r.err = fmt.Errorf("render %s: %w", r.game.ID(), err)
	}
}

// Layout keeps the logical screen at the field size; Ebitengine scales it
// to the window.
func (r *Runner) Layout(_, _ int) (int, int) {
	return r.game.FieldSize()
}

// State returns the game state after the last frame.
func (r *Runner) State() core.GameState {
	return r.state
}

// Err returns the error that ended the run, if any.
func (r *Runner) Err() error {
	return r.err
}

// Run opens the window and blocks until it is closed.
// The game must already be Reset.
func Run(game registry.Game, opts Options) (core.GameState, error) {
	tps := opts.TPS
	if tps <= 0 {
		tps = 60
	}
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}

	w, h := game.FieldSize()
	ebiten.SetWindowTitle(Title)
	ebiten.SetWindowSize(int(float64(w)*scale), int(float64(h)*scale))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(tps)
	ebiten.SetScreenClearedEveryFrame(false)

	r := NewRunner(game, opts)
	err := ebiten.RunGame(r)
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return r.State(), err
	}
	return r.State(), nil
}
