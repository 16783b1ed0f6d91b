package sim

import (
	"time"

	"github.com/vovakirdan/store-dash/internal/core"
)

// EnemyType is a cosmetic tag. Movement policy, not type, drives physics.
type EnemyType int

const (
	EnemyPolice EnemyType = iota
	EnemyChurchMember
)

// String returns the level-file name of the type.
func (t EnemyType) String() string {
	switch t {
	case EnemyPolice:
		return "police"
	case EnemyChurchMember:
		return "church_member"
	default:
		return "unknown"
	}
}

// Movement is an enemy's movement policy, fixed at spawn.
type Movement int

const (
	MovementTowardPlayer Movement = iota
	MovementAcrossPath
)

// String returns the level-file name of the policy.
func (m Movement) String() string {
	switch m {
	case MovementTowardPlayer:
		return "toward_player"
	case MovementAcrossPath:
		return "across_path"
	default:
		return "unknown"
	}
}

// DefaultMovement returns the conventional policy for an enemy type:
// police chase, church members walk their lane.
func DefaultMovement(t EnemyType) Movement {
	if t == EnemyChurchMember {
		return MovementAcrossPath
	}
	return MovementTowardPlayer
}

// Lane is a horizontal interval an enemy may not leave.
type Lane struct {
	Min, Max float64
}

// EnemySpec describes an enemy at level load.
type EnemySpec struct {
	Type      EnemyType
	Movement  Movement
	X         float64
	Direction int   // -1 or +1; anything else means +1
	Lane      *Lane // nil means the level bounds
}

// Enemy is a ground-bound hazard that can be defeated by stomping on it.
type Enemy struct {
	id       int
	kind     EnemyType
	movement Movement

	pos  core.Vec2
	w, h float64
	dir  float64

	baseSpeed float64
	speed     float64
	lane      Lane
	groundY   float64

	defeated bool
}

func newEnemy(id int, spec EnemySpec, w, h, speed, groundY float64, bounds Lane) *Enemy {
	lane := bounds
	if spec.Lane != nil {
		lane = Lane{
			Min: max(spec.Lane.Min, bounds.Min),
			Max: min(spec.Lane.Max, bounds.Max),
		}
	}

	dir := 1.0
	if spec.Direction < 0 {
		dir = -1
	}

	x := core.ClampF(spec.X, lane.Min, max(lane.Min, lane.Max-w))

	return &Enemy{
		id:        id,
		kind:      spec.Type,
		movement:  spec.Movement,
		pos:       core.Vec2{X: x, Y: groundY},
		w:         w,
		h:         h,
		dir:       dir,
		baseSpeed: speed,
		speed:     speed,
		lane:      lane,
		groundY:   groundY,
	}
}

// UpdateMovement moves the enemy one step of length dt. Under
// MovementTowardPlayer it walks toward target's horizontal position without
// overshooting it; under MovementAcrossPath it walks in its current direction
// and ignores target. A step that would leave the lane reverses the direction
// and stops at the edge instead.
func (e *Enemy) UpdateMovement(target core.Vec2, dt time.Duration) {
	if e.defeated {
		return
	}

	step := e.speed * dt.Seconds()
	next := e.pos.X

	switch e.movement {
	case MovementTowardPlayer:
		dx := target.X - e.Box().Center().X
		if dx != 0 {
			e.dir = core.Sign(dx)
			next += e.dir * min(step, core.AbsF(dx))
		}
	case MovementAcrossPath:
		next += e.dir * step
	}

	switch {
	case next < e.lane.Min:
		e.dir = -e.dir
	case next+e.w > e.lane.Max:
		e.dir = -e.dir
	}
	// A lane narrower than the body pins the enemy to lane.Min.
	next = core.ClampF(next, e.lane.Min, max(e.lane.Min, e.lane.Max-e.w))

	e.pos.X = next
	e.pos.Y = e.groundY
}

// HandleJumpDefeat marks the enemy defeated. The world drops defeated enemies
// from its active set after the step. Later calls return false and change
// nothing.
func (e *Enemy) HandleJumpDefeat() bool {
	if e.defeated {
		return false
	}
	e.defeated = true
	return true
}

// setSpeedScale applies the difficulty multiplier to the base speed.
func (e *Enemy) setSpeedScale(scale float64) {
	e.speed = e.baseSpeed * scale
}

// ID returns the enemy's index in its level.
func (e *Enemy) ID() int { return e.id }

// Type returns the cosmetic enemy type.
func (e *Enemy) Type() EnemyType { return e.kind }

// Movement returns the movement policy.
func (e *Enemy) Movement() Movement { return e.movement }

// Position returns the bottom-left corner of the enemy's body.
func (e *Enemy) Position() core.Vec2 { return e.pos }

// Direction returns -1 or +1.
func (e *Enemy) Direction() int { return int(e.dir) }

// Box returns the enemy's collision bounds.
func (e *Enemy) Box() core.Box { return core.NewBox(e.pos, e.w, e.h) }

// Lane returns the interval the enemy is confined to.
func (e *Enemy) Lane() Lane { return e.lane }

// IsDefeated reports whether the enemy has been stomped.
func (e *Enemy) IsDefeated() bool { return e.defeated }
