package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int
	Lives    int
	Level    int  // 1-based
	GameOver bool // Whether the game has ended (lost or won)
	GameWon  bool
	Paused   bool
}

// StepResult is returned by Game.Step() after each simulation tick.
// Err carries a configuration or simulation fault that ended the run;
// the game is already in a terminal state when it is set.
type StepResult struct {
	State GameState
	Err   error
}
