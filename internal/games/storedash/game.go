// Package storedash plugs the Store Dash simulation into the game registry:
// it maps terminal input to the world, renders it and records replays.
// The player runs to the store while police chase and church members pace
// their lanes; jumping on an enemy knocks it out, touching one slows you down.
package storedash

import (
	"fmt"

	"github.com/vovakirdan/store-dash/internal/config"
	"github.com/vovakirdan/store-dash/internal/core"
	"github.com/vovakirdan/store-dash/internal/games/storedash/levels"
	"github.com/vovakirdan/store-dash/internal/games/storedash/sim"
	"github.com/vovakirdan/store-dash/internal/registry"
	"github.com/vovakirdan/store-dash/internal/replay"
)

// Game is one level of Store Dash.
type Game struct {
	level  levels.Level
	tuning config.StoreDashConfig
	config core.RuntimeConfig

	world      *sim.World
	recorder   *replay.Recorder
	completion *sim.Completion
	paused     bool
}

// New creates a game for level with the given tuning. Call Reset before the
// first Step.
func New(level levels.Level, tuning config.StoreDashConfig) *Game {
	return &Game{level: level, tuning: tuning}
}

// ID returns the level ID.
func (g *Game) ID() string {
	return g.level.ID
}

// Title returns the level name.
func (g *Game) Title() string {
	return g.level.Name
}

// Reset starts a new run of the level.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.config = cfg
	g.paused = false
	g.completion = nil
	g.world = sim.NewWorld(g.level.Spec, g.tuning, sim.WithCompletionHandler(func(c sim.Completion) {
		g.completion = &c
	}))

	// A level without source (built in code) cannot be replayed.
	g.recorder = nil
	if len(g.level.Source) > 0 {
		if rec, err := replay.NewRecorder(g.level, g.tuning); err == nil {
			g.recorder = rec
		}
	}
}

// Step advances the run by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.world == nil {
		g.Reset(core.DefaultConfig())
	}
	if g.world.Outcome() != sim.OutcomeRunning {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	si := SimInput(in)
	if g.recorder != nil {
		g.recorder.Record(si)
	}
	g.world.Step(si)

	return core.StepResult{State: g.State()}
}

// SimInput converts a platform input frame into a simulation input. The
// analog axis wins; discrete left/right actions are the fallback.
func SimInput(in core.InputFrame) sim.Input {
	axis := in.Axis
	if axis == 0 {
		if in.Has(core.ActionLeft) {
			axis--
		}
		if in.Has(core.ActionRight) {
			axis++
		}
	}
	return sim.Input{Axis: axis, Jump: in.Has(core.ActionJump)}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.world == nil {
		return core.GameState{}
	}
	outcome := g.world.Outcome()
	return core.GameState{
		Score:    g.world.Score(),
		GameOver: outcome != sim.OutcomeRunning,
		Won:      outcome == sim.OutcomeCompleted,
		Paused:   g.paused,
		Ticks:    g.world.Tick(),
	}
}

// World returns the running simulation.
func (g *Game) World() *sim.World {
	return g.world
}

// Completion returns the level-completed notification, if it has fired.
func (g *Game) Completion() (sim.Completion, bool) {
	if g.completion == nil {
		return sim.Completion{}, false
	}
	return *g.completion, true
}

// Summary describes the run so far, with its encoded replay when one was
// recorded.
func (g *Game) Summary() (registry.RunSummary, error) {
	if g.world == nil {
		return registry.RunSummary{}, fmt.Errorf("storedash: %s: no run", g.level.ID)
	}

	p := g.world.Player()
	s := registry.RunSummary{
		LevelID:  g.level.ID,
		Outcome:  g.world.Outcome().String(),
		Score:    g.world.Score(),
		Ticks:    g.world.Tick(),
		Health:   p.Health(),
		Defeated: g.world.Defeated(),
	}

	if g.recorder != nil {
		data, err := replay.Encode(g.recorder.Finish(g.world))
		if err != nil {
			return s, fmt.Errorf("storedash: %s: %w", g.level.ID, err)
		}
		s.Replay = data
	}
	return s, nil
}

// Register the embedded levels with the registry.
func init() {
	lvls, err := levels.Embedded()
	if err != nil {
		panic(fmt.Sprintf("storedash: %v", err))
	}
	for _, lvl := range lvls {
		registry.Register(lvl.ID, lvl.Name, func(tuning config.StoreDashConfig) registry.Game {
			return New(lvl, tuning)
		})
	}
}

var (
	_ registry.Game     = (*Game)(nil)
	_ registry.Recorded = (*Game)(nil)
)
