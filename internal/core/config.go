package core

// RuntimeConfig contains platform settings passed to the frame loop.
// The playfield itself is in pixel units and configured separately; these
// values describe the surface the field is presented on.
type RuntimeConfig struct {
	ScreenW  int // Screen width in characters
	ScreenH  int // Screen height in characters
	TickRate int // Frames per second (default 60)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// GameState represents the platform-visible status of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Paddle returns in the current rally
	GameOver bool // Whether the ball has left the field
	Paused   bool // Whether the game is paused
}

// StepResult is returned by Game.Frame() after each frame.
type StepResult struct {
	State GameState
}
