// Package headless runs games without a terminal or window.
// Frames are rasterized into an off-screen Screen so the whole render path
// is exercised, and the paddle can be driven by the autopilot.
package headless

import (
	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/games/pong"
)

// StateSource exposes the live pong state for the autopilot.
type StateSource interface {
	GameState() *pong.GameState
	State() core.GameState
}

// Event injects a discrete action on a given frame (1-based).
type Event struct {
	Frame  int
	Action core.Action
}

// Options configure a headless platform.
type Options struct {
	Cols, Rows int  // Off-screen surface size in cells
	Autopilot  bool // Drive the paddle with pong.Autopilot
	StopOnMiss bool // Quit once the ball has left the field
	Events     []Event
}

// Platform implements loop.Platform off-screen.
type Platform struct {
	src       StateSource
	opts      Options
	autopilot pong.Autopilot
	screen    *core.Screen
	raster    *core.Raster
	frame     int
	events    map[int][]core.Action
}

// New creates a headless platform for the game behind src.
func New(src StateSource, fieldW, fieldH int, opts Options) *Platform {
	if opts.Cols <= 0 {
		opts.Cols = 80
	}
	if opts.Rows <= 0 {
		opts.Rows = 24
	}

	screen := core.NewScreen(opts.Cols, opts.Rows)
	p := &Platform{
		src:    src,
		opts:   opts,
		screen: screen,
		raster: core.NewRaster(fieldW, fieldH, screen),
		events: make(map[int][]core.Action),
	}
	for _, e := range opts.Events {
		p.events[e.Frame] = append(p.events[e.Frame], e.Action)
	}
	if gs := src.GameState(); gs != nil {
		p.autopilot = pong.NewAutopilot(gs.Params())
	}
	return p
}

// Poll builds the next frame's input from the script and the autopilot.
func (p *Platform) Poll() (core.InputFrame, bool) {
	p.frame++
	if p.opts.StopOnMiss && p.src.State().GameOver {
		return core.NewInputFrame(), true
	}

	in := core.NewInputFrame()
	for _, a := range p.events[p.frame] {
		switch a {
		case core.ActionQuit:
			return in, true
		case core.ActionUp, core.ActionDown:
			in.Hold(a)
		default:
			in.Set(a)
		}
	}

	if p.opts.Autopilot {
		if gs := p.src.GameState(); gs != nil {
			p.autopilot.Steer(gs, &in)
		}
	}
	return in, false
}

// Canvas returns the off-screen raster.
func (p *Platform) Canvas() core.Canvas {
	return p.raster
}

// Screen returns the cells of the last presented frame.
func (p *Platform) Screen() *core.Screen {
	return p.screen
}

// Frames is how many times Poll has been called.
func (p *Platform) Frames() int {
	return p.frame
}
