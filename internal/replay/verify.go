package replay

import (
	"fmt"

	"github.com/vovakirdan/store-dash/internal/config"
	"github.com/vovakirdan/store-dash/internal/games/storedash/levels"
	"github.com/vovakirdan/store-dash/internal/games/storedash/sim"
)

// World rebuilds the world a replay was recorded in, before any step.
func World(r *Replay) (*sim.World, error) {
	level, err := levels.Parse(r.Level)
	if err != nil {
		return nil, fmt.Errorf("replay: level: %w", err)
	}
	if level.ID != r.LevelID {
		return nil, fmt.Errorf("%w: level id %q, recorded %q", ErrMismatch, level.ID, r.LevelID)
	}

	tuning, err := config.Parse(r.Tuning)
	if err != nil {
		return nil, fmt.Errorf("replay: tuning: %w", err)
	}
	if tuning.Physics.TickRate != r.TickRate {
		return nil, fmt.Errorf("%w: tick rate %d, recorded %d", ErrMismatch, tuning.Physics.TickRate, r.TickRate)
	}
	if err := level.Fits(tuning); err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}

	return sim.NewWorld(level.Spec, tuning), nil
}

// Play re-simulates a replay and returns the resulting world.
func Play(r *Replay) (*sim.World, error) {
	if err := r.checkFrames(); err != nil {
		return nil, err
	}
	w, err := World(r)
	if err != nil {
		return nil, err
	}
	w.Run(r.Inputs())
	return w, nil
}

// Verify re-simulates a replay and checks that it ends exactly as recorded.
func Verify(r *Replay) (Result, error) {
	w, err := Play(r)
	if err != nil {
		return Result{}, err
	}

	got := ResultOf(w)
	if got != r.Result {
		return got, fmt.Errorf("%w: got %s, recorded %s", ErrMismatch, got, r.Result)
	}
	return got, nil
}
