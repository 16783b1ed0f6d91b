package sim

import "github.com/vovakirdan/store-dash/internal/core"

// Obstacle is a static hazard. Touching it penalizes the player.
type Obstacle struct {
	box core.Box
}

// NewObstacle creates an obstacle with the given bounds.
func NewObstacle(box core.Box) Obstacle {
	return Obstacle{box: box}
}

// Box returns the obstacle's bounds.
func (o Obstacle) Box() core.Box { return o.box }

// Goal is the store at the end of a level. Reaching it completes the level.
type Goal struct {
	box       core.Box
	completed bool
}

// NewGoal creates a goal marker with the given bounds.
func NewGoal(box core.Box) *Goal {
	return &Goal{box: box}
}

// Box returns the goal's bounds.
func (g *Goal) Box() core.Box { return g.box }

// IsLevelCompleted reports whether the player has reached the store.
func (g *Goal) IsLevelCompleted() bool { return g.completed }

// complete sets the completion flag and reports whether this call set it.
func (g *Goal) complete() bool {
	if g.completed {
		return false
	}
	g.completed = true
	return true
}
