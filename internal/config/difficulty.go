package config

// Level is InitialLevel clamped to [0, 1].
func (d DifficultyConfig) Level() float64 {
	return min(max(d.InitialLevel, 0), 1)
}

// ServeScale is the factor applied to the serve velocity: 1 at level 0,
// 1+SpeedMultiplier at level 1. The ball keeps that speed for the rally.
func (d DifficultyConfig) ServeScale() float64 {
	return 1 + d.Level()*d.SpeedMultiplier
}
