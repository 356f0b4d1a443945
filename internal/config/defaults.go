package config

import (
	_ "embed"
)

//go:embed defaults/pong.yaml
var defaultPongYAML []byte

// DefaultPongConfig returns the default Pong configuration.
func DefaultPongConfig() PongConfig {
	return PongConfig{
		Field: PongField{
			Width:     1024,
			Height:    768,
			Thickness: 15,
		},
		Paddle: PongPaddle{
			Length:     100,
			Speed:      300,
			HitBandMin: 20,
			HitBandMax: 25,
		},
		Ball: PongBall{
			VelocityX: -200,
			VelocityY: 235,
		},
		Timing: PongTiming{
			MaxDelta:        0.05,
			FrameIntervalMS: 16,
		},
		Terminal: TerminalConfig{
			HoldWindowMS: 150,
		},
		Difficulty: DifficultyConfig{
			InitialLevel:    0.0,
			SpeedMultiplier: 1.0,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultPongYAML
}
