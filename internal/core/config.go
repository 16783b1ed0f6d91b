package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to the terminal size and the simulation cadence.
type RuntimeConfig struct {
	ScreenW  int // Screen width in characters
	ScreenH  int // Screen height in characters
	TickRate int // Simulation ticks per second (default 60)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the run has ended (completed or dead)
	Won      bool // Whether the run ended by reaching the goal
	Paused   bool // Whether the game is paused
	Ticks    int  // Simulation ticks elapsed in this run
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
