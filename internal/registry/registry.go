// Package registry provides a global registry of playable levels.
// Level packages register themselves in init() functions, allowing the
// platform to list and start levels without hardcoded dependencies.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/store-dash/internal/config"
	"github.com/vovakirdan/store-dash/internal/core"
)

// ErrUnknownLevel is returned by Create for an unregistered ID.
var ErrUnknownLevel = errors.New("registry: unknown level")

// Game is the interface the platform drives.
// Games contain pure logic with no external dependencies (especially no Bubble Tea).
// The platform handles input mapping, timing, and rendering.
type Game interface {
	// ID returns the level identifier (e.g., "main-street").
	// Used for CLI commands and run storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset initializes or restarts the run.
	// Called once at start and again when restarting after the run ends.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into the provided screen buffer.
	// The screen is pre-cleared before this call.
	Render(dst *core.Screen)

	// State returns the current game state (score, game over, paused).
	State() core.GameState
}

// RunSummary describes a finished run for persistence.
type RunSummary struct {
	LevelID  string
	Outcome  string
	Score    int
	Ticks    int
	Health   int
	Defeated int
	Replay   []byte // encoded replay, may be nil
}

// Recorded is implemented by games that can summarize a finished run.
type Recorded interface {
	Summary() (RunSummary, error)
}

// LevelInfo contains metadata about a registered level.
type LevelInfo struct {
	ID    string
	Title string
}

// Factory creates a new game for a level with the given tuning.
type Factory func(tuning config.StoreDashConfig) Game

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a level factory to the registry.
// Panics if a level with the same ID is already registered.
func Register(id, title string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: level %q already registered", id))
	}

	factories[id] = f
	titles[id] = title
}

// List returns information about all registered levels, sorted by ID.
func List() []LevelInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]LevelInfo, 0, len(factories))
	for id := range factories {
		result = append(result, LevelInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a game for the level ID.
func Create(id string, tuning config.StoreDashConfig) (Game, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownLevel, id)
	}

	return f(tuning), nil
}

// Exists checks if a level with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
