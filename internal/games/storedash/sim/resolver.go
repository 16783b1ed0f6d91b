package sim

import "github.com/vovakirdan/store-dash/internal/config"

// Completion is the level-completed notification.
type Completion struct {
	LevelID string
	Tick    int
}

// Contacts summarizes what one resolver pass did.
type Contacts struct {
	Obstacles int  // obstacle overlaps
	Side      int  // side contacts with live enemies
	Stomps    int  // enemies defeated from above
	Penalized bool // a new penalty window opened
	Completed bool // the goal was reached in this pass
}

// Resolver classifies player overlaps into outcomes and calls back into the
// entities. It keeps no state between passes: all it holds is tuning and the
// completion callback for one level.
type Resolver struct {
	bounce         float64
	tolerance      float64
	obstacleDamage int
	enemyDamage    int
	onComplete     func()
}

// NewResolver creates a resolver. onComplete may be nil.
func NewResolver(cfg config.StoreDashConfig, onComplete func()) *Resolver {
	return &Resolver{
		bounce:         cfg.Player.BounceVelocity,
		tolerance:      cfg.Player.StompTolerance,
		obstacleDamage: cfg.Obstacles.ContactDamage,
		enemyDamage:    cfg.Enemies.ContactDamage,
		onComplete:     onComplete,
	}
}

// Resolve runs one pass over every overlap between the player and the other
// entities. Bounds and the player's vertical velocity are read once up front;
// outcomes applied during the pass do not change how later contacts in the
// same pass are classified. goal may be nil.
func (r *Resolver) Resolve(p *Player, enemies []*Enemy, obstacles []Obstacle, goal *Goal) Contacts {
	var c Contacts
	if p.IsDead() {
		return c
	}

	pbox := p.Box()
	falling := p.Velocity().Y < 0

	for _, o := range obstacles {
		if !pbox.Overlaps(o.Box()) {
			continue
		}
		c.Obstacles++
		if p.HandleObstacleCollision() {
			c.Penalized = true
			p.TakeDamage(r.obstacleDamage)
		}
	}

	for _, e := range enemies {
		if e.IsDefeated() {
			continue
		}
		ebox := e.Box()
		if !pbox.Overlaps(ebox) {
			continue
		}

		if falling && pbox.Bottom() >= ebox.Center().Y-r.tolerance {
			e.HandleJumpDefeat()
			p.HandleEnemyJumpDefeat(r.bounce)
			c.Stomps++
			continue
		}

		c.Side++
		if p.HandleEnemyCollision() {
			c.Penalized = true
			p.TakeDamage(r.enemyDamage)
		}
	}

	if goal != nil && !p.IsDead() && !goal.IsLevelCompleted() && pbox.Overlaps(goal.Box()) {
		if goal.complete() {
			c.Completed = true
			if r.onComplete != nil {
				r.onComplete()
			}
		}
	}

	return c
}
