// Package config provides YAML-based game configuration loading and
// difficulty presets for the pong platform.
package config

import "fmt"

// PongConfig contains all configuration for the Pong game.
type PongConfig struct {
	Field      PongField        `yaml:"field"`
	Paddle     PongPaddle       `yaml:"paddle"`
	Ball       PongBall         `yaml:"ball"`
	Timing     PongTiming       `yaml:"timing"`
	Terminal   TerminalConfig   `yaml:"terminal"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// PongField defines the playfield in pixels.
type PongField struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	Thickness int `yaml:"thickness"` // Wall, paddle and ball size
}

// PongPaddle defines the paddle.
type PongPaddle struct {
	Length     int     `yaml:"length"`
	Speed      float64 `yaml:"speed"`        // Pixels per second
	HitBandMin float64 `yaml:"hit_band_min"` // Ball x range where the paddle can return it
	HitBandMax float64 `yaml:"hit_band_max"`
}

// PongBall defines the ball's initial velocity in pixels per second.
type PongBall struct {
	VelocityX float64 `yaml:"velocity_x"`
	VelocityY float64 `yaml:"velocity_y"`
}

// MaxFrameDelta is the largest physics step any config may ask for, in seconds.
const MaxFrameDelta = 0.05

// PongTiming defines frame timing.
type PongTiming struct {
	MaxDelta        float64 `yaml:"max_delta"`         // Largest physics step in seconds, at most MaxFrameDelta
	FrameIntervalMS int     `yaml:"frame_interval_ms"` // Minimum time between frames; sets the default frame rate
}

// FrameRate is the frames per second that keeps at least FrameIntervalMS
// between frames. It is never below 1.
func (t PongTiming) FrameRate() int {
	if t.FrameIntervalMS <= 0 {
		return 60
	}
	return max(1000/t.FrameIntervalMS, 1)
}

// TerminalConfig holds settings that only matter for terminal play.
type TerminalConfig struct {
	// HoldWindowMS is how long a key counts as held after its last press.
	// Terminals only report presses (with auto-repeat), never releases.
	HoldWindowMS int `yaml:"hold_window_ms"`
}

// DifficultyConfig scales the serve speed.
type DifficultyConfig struct {
	InitialLevel    float64 `yaml:"initial_level"`    // 0.0 = easy, 1.0 = hard
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Added to ball speed at level 1.0
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset converts a CLI value to a preset.
// The empty string means "use the config file's level".
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard:
		return DifficultyPreset(s), nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// Validate checks that the configuration describes a playable field.
func (c PongConfig) Validate() error {
	f := c.Field
	if f.Width <= 0 || f.Height <= 0 {
		return fmt.Errorf("config: field size must be positive, got %dx%d", f.Width, f.Height)
	}
	if f.Thickness <= 0 {
		return fmt.Errorf("config: thickness must be positive, got %d", f.Thickness)
	}
	if c.Paddle.Length <= 0 {
		return fmt.Errorf("config: paddle length must be positive, got %d", c.Paddle.Length)
	}
	if c.Paddle.Length+2*f.Thickness > f.Height {
		return fmt.Errorf("config: paddle length %d does not fit between walls of a %dpx field",
			c.Paddle.Length, f.Height)
	}
	if 2*f.Thickness >= f.Width {
		return fmt.Errorf("config: field width %d leaves no room inside the walls", f.Width)
	}
	if c.Paddle.Speed < 0 {
		return fmt.Errorf("config: paddle speed must not be negative, got %g", c.Paddle.Speed)
	}
	if c.Paddle.HitBandMin > c.Paddle.HitBandMax {
		return fmt.Errorf("config: hit band [%g, %g] is inverted", c.Paddle.HitBandMin, c.Paddle.HitBandMax)
	}
	if c.Timing.MaxDelta <= 0 || c.Timing.MaxDelta > MaxFrameDelta {
		return fmt.Errorf("config: max_delta must be in (0, %g], got %g", MaxFrameDelta, c.Timing.MaxDelta)
	}
	if c.Timing.FrameIntervalMS <= 0 {
		return fmt.Errorf("config: frame_interval_ms must be positive, got %d", c.Timing.FrameIntervalMS)
	}
	if c.Terminal.HoldWindowMS <= 0 {
		return fmt.Errorf("config: hold_window_ms must be positive, got %d", c.Terminal.HoldWindowMS)
	}
	return nil
}
