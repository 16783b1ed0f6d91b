// Package sim implements the Store Dash gameplay core: the player avatar,
// enemies, obstacles, the store the player must reach, the contact resolver
// and the fixed-step world that ties them together.
//
// Everything here is deterministic. Nothing reads the wall clock or a random
// source, so the same level, tuning and input sequence always produce the
// same outcome.
package sim

import (
	"time"

	"github.com/vovakirdan/store-dash/internal/config"
	"github.com/vovakirdan/store-dash/internal/core"
)

// State is the player's locomotion state.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateJumping
	StatePenalized // display overlay only, see DisplayState
	StateDead
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateRunning:
		return "Running"
	case StateJumping:
		return "Jumping"
	case StatePenalized:
		return "Penalized"
	case StateDead:
		return "Dead"
	default:
		return "Unknown"
	}
}

// Player is the avatar. Its position and velocity are only changed by its own
// methods and by the world's vertical integration.
type Player struct {
	pos core.Vec2
	vel core.Vec2
	w   float64
	h   float64

	groundY float64
	input   float64

	baseSpeed float64
	speed     float64

	state     State
	health    int
	maxHealth int
	grounded  bool

	penalized        bool
	penaltyRemaining time.Duration

	jumpVelocity    float64
	penaltyFactor   float64
	penaltyDuration time.Duration
}

// NewPlayer creates a player at spawn. A spawn at or below groundY starts
// grounded and snapped to the ground surface.
func NewPlayer(spawn core.Vec2, groundY float64, cfg config.Player) *Player {
	maxHealth := cfg.MaxHealth
	if maxHealth < 1 {
		maxHealth = 1
	}

	p := &Player{
		pos:             spawn,
		w:               cfg.Width,
		h:               cfg.Height,
		groundY:         groundY,
		baseSpeed:       cfg.BaseSpeed,
		speed:           cfg.BaseSpeed,
		state:           StateIdle,
		health:          maxHealth,
		maxHealth:       maxHealth,
		jumpVelocity:    cfg.JumpVelocity,
		penaltyFactor:   cfg.PenaltyFactor,
		penaltyDuration: cfg.PenaltyDuration,
	}
	if spawn.Y <= groundY {
		p.land()
	} else {
		p.state = StateJumping
	}
	return p
}

// SetHorizontalInput stores the axis value for the next movement update,
// clamped to [-1, 1].
func (p *Player) SetHorizontalInput(v float64) {
	if p.state == StateDead {
		return
	}
	p.input = core.ClampF(v, -1, 1)
}

// UpdateMovement advances the player horizontally by one step of length dt
// and counts the penalty window down. It does nothing once the player is dead.
func (p *Player) UpdateMovement(dt time.Duration) {
	if p.state == StateDead {
		return
	}

	p.vel.X = p.input * p.speed
	p.pos.X += p.vel.X * dt.Seconds()

	if p.penalized {
		// dt is truncated to whole nanoseconds, so a remainder under half a
		// step counts as expired.
		p.penaltyRemaining -= dt
		if p.penaltyRemaining < dt/2 {
			p.penaltyRemaining = 0
			p.penalized = false
			p.speed = p.baseSpeed
		}
	}

	if p.grounded {
		p.state = p.groundState()
	} else {
		p.state = StateJumping
	}
}

// StartJump applies the jump impulse if the player is alive and grounded.
// It returns false, with no effect, while airborne, so a jump cannot be
// repeated before landing.
func (p *Player) StartJump() bool {
	if p.state == StateDead || !p.grounded || p.vel.Y > 0 {
		return false
	}
	p.vel.Y = p.jumpVelocity
	p.grounded = false
	p.state = StateJumping
	return true
}

// TakeDamage subtracts amount from health, floored at zero. Reaching zero
// kills the player: velocity is zeroed and the body stops responding.
func (p *Player) TakeDamage(amount int) {
	if p.state == StateDead || amount <= 0 {
		return
	}
	p.health -= amount
	if p.health <= 0 {
		p.health = 0
		p.die()
	}
}

// HandleObstacleCollision opens the penalty window. Calls made while the
// window is already open change nothing. It reports whether a new window
// was opened.
func (p *Player) HandleObstacleCollision() bool {
	return p.applyPenalty()
}

// HandleEnemyCollision treats side contact with an enemy exactly like an
// obstacle hit. Both share the one penalty timer.
func (p *Player) HandleEnemyCollision() bool {
	return p.applyPenalty()
}

// HandleEnemyJumpDefeat bounces the player upward after stomping an enemy,
// whether or not the player is grounded.
func (p *Player) HandleEnemyJumpDefeat(bounceVelocity float64) {
	if p.state == StateDead {
		return
	}
	p.vel.Y = bounceVelocity
	p.grounded = false
	p.state = StateJumping
}

func (p *Player) applyPenalty() bool {
	if p.state == StateDead || p.penalized || p.penaltyDuration <= 0 {
		return false
	}
	p.penalized = true
	p.speed = p.baseSpeed * p.penaltyFactor
	p.penaltyRemaining = p.penaltyDuration
	return true
}

func (p *Player) die() {
	p.state = StateDead
	p.vel = core.Vec2{}
	p.input = 0
	p.penalized = false
	p.penaltyRemaining = 0
}

// land puts the player on the ground surface.
func (p *Player) land() {
	p.pos.Y = p.groundY
	p.vel.Y = 0
	p.grounded = true
	p.state = p.groundState()
}

func (p *Player) groundState() State {
	if p.input != 0 {
		return StateRunning
	}
	return StateIdle
}

// Position returns the bottom-left corner of the player's body.
func (p *Player) Position() core.Vec2 { return p.pos }

// Velocity returns the current velocity in units per second.
func (p *Player) Velocity() core.Vec2 { return p.vel }

// Box returns the player's collision bounds.
func (p *Player) Box() core.Box { return core.NewBox(p.pos, p.w, p.h) }

// HorizontalInput returns the stored axis value.
func (p *Player) HorizontalInput() float64 { return p.input }

// CurrentSpeed returns the horizontal speed after any active penalty.
func (p *Player) CurrentSpeed() float64 { return p.speed }

// BaseSpeed returns the unpenalized horizontal speed.
func (p *Player) BaseSpeed() float64 { return p.baseSpeed }

// State returns the locomotion state (never StatePenalized).
func (p *Player) State() State { return p.state }

// DisplayState returns the state to show on a HUD: the locomotion state, or
// StatePenalized while a penalty window is open.
func (p *Player) DisplayState() State {
	if p.penalized && p.state != StateDead {
		return StatePenalized
	}
	return p.state
}

// Health returns the current health.
func (p *Player) Health() int { return p.health }

// MaxHealth returns the health the player started with.
func (p *Player) MaxHealth() int { return p.maxHealth }

// IsDead reports whether health has reached zero.
func (p *Player) IsDead() bool { return p.state == StateDead }

// IsGrounded reports whether the player stands on the ground.
func (p *Player) IsGrounded() bool { return p.grounded }

// IsPenalized reports whether a penalty window is open.
func (p *Player) IsPenalized() bool { return p.penalized }

// PenaltyRemaining returns how long the current penalty window still lasts.
func (p *Player) PenaltyRemaining() time.Duration { return p.penaltyRemaining }
