// Package pong implements single-paddle Pong on a fixed pixel field.
// The player holds Up/Down to move the left paddle; the ball bounces off the
// top, bottom and right walls. A missed ball flies off the field for good.
package pong

import (
	"github.com/vovakirdan/tui-pong/internal/config"
	"github.com/vovakirdan/tui-pong/internal/core"
	"github.com/vovakirdan/tui-pong/internal/registry"
)

// Variant paddle lengths in pixels.
const (
	LongPaddleLength = 200
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset config.DifficultyPreset) {
	difficultyPreset = preset
}

// Game adapts a GameState to the platform's frame loop.
type Game struct {
	id           string
	title        string
	paddleLength int // 0 keeps the configured length

	cfg    config.PongConfig
	source string // where cfg was loaded from
	params Params
	state  *GameState
	synced bool // LastTick has been aligned with the platform clock
}

// New creates the default variant.
func New() *Game {
	return &Game{id: "pong", title: "Pong"}
}

// NewLong creates the long-paddle variant.
func NewLong() *Game {
	return &Game{id: "pong_long", title: "Pong (Long Paddle)", paddleLength: LongPaddleLength}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return g.title
}

// Reset loads the configuration and builds a fresh state.
func (g *Game) Reset() error {
	cfg, source, err := config.ResolvePong(configPath)
	if err != nil {
		return err
	}
	config.ApplyPongPreset(&cfg, difficultyPreset)
	cfg = g.Variant(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	g.ResetWith(cfg)
	g.source = source
	return nil
}

// ResetWith builds a fresh state from an already loaded config.
// The variant's paddle length overrides the configured one.
func (g *Game) ResetWith(cfg config.PongConfig) {
	g.source = ""
	g.cfg = g.Variant(cfg)
	g.params = ParamsFromConfig(g.cfg)
	g.restart()
}

// Variant returns cfg with the variant's fixed settings applied.
func (g *Game) Variant(cfg config.PongConfig) config.PongConfig {
	if g.paddleLength > 0 {
		cfg.Paddle.Length = g.paddleLength
	}
	return cfg
}

// restart discards the current rally and starts over with the same config.
func (g *Game) restart() {
	g.state = NewGameState(g.params)
	g.synced = false
}

// Config returns the configuration the game was last reset with.
func (g *Game) Config() config.PongConfig {
	return g.cfg
}

// ConfigSource is the file the last Reset loaded, or config.EmbeddedSource.
// It is empty after ResetWith.
func (g *Game) ConfigSource() string {
	return g.source
}

// GameState exposes the underlying state, e.g. for the autopilot.
func (g *Game) GameState() *GameState {
	return g.state
}

// Frame handles discrete input then advances physics to time now.
// The first frame after a reset only aligns LastTick with the clock.
func (g *Game) Frame(now uint64, in core.InputFrame) core.StepResult {
	if g.state == nil {
		return core.StepResult{}
	}

	if in.Has(core.ActionRestart) {
		g.restart()
	}
	if in.Has(core.ActionPause) {
		g.state.TogglePause()
	}

	if !g.synced {
		g.state.LastTick = now
		g.synced = true
		return core.StepResult{State: g.State()}
	}

	g.state.Tick(now, KeysFrom(in))
	return core.StepResult{State: g.State()}
}

// Render draws the current frame.
func (g *Game) Render(dst core.Canvas) error {
	if g.state == nil {
		return nil
	}
	return g.state.Render(dst)
}

// FieldSize returns the playfield size in pixels.
func (g *Game) FieldSize() (int, int) {
	if g.state == nil {
		d := config.DefaultPongConfig().Field
		return d.Width, d.Height
	}
	return int(g.params.Width), int(g.params.Height)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.state == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.state.Returns(),
		GameOver: g.state.BallOut(),
		Paused:   g.state.IsPaused,
	}
}

// Register the variants with the registry
func init() {
	registry.Register("pong", func() registry.Game {
		return New()
	})
	registry.Register("pong_long", func() registry.Game {
		return NewLong()
	})
}
