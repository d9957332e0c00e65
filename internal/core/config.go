package core

// RuntimeConfig contains the per-session settings handed to the game and renderer.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed, 0 means derive from the clock in the platform layer
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0,
	}
}

// GameState is the summary of a run the platform needs after each tick.
type GameState struct {
	Score     int
	HighScore int
	Running   bool
	Over      bool
}

// Events flags what happened during a single tick.
type Events struct {
	RunStarted     bool
	RunEnded       bool
	NewHighScore   bool
	BalloonsPopped int
}

// StepResult is returned after each simulation tick.
type StepResult struct {
	State  GameState
	Events Events
}
