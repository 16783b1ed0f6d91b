package sim

import (
	"time"

	"github.com/vovakirdan/store-dash/internal/config"
	"github.com/vovakirdan/store-dash/internal/core"
)

// Outcome is the state of a run.
type Outcome int

const (
	OutcomeRunning Outcome = iota
	OutcomeCompleted
	OutcomeDead
)

// String returns the name stored with a run.
func (o Outcome) String() string {
	switch o {
	case OutcomeRunning:
		return "running"
	case OutcomeCompleted:
		return "completed"
	case OutcomeDead:
		return "dead"
	default:
		return "unknown"
	}
}

// Input is the normalized input for one step.
type Input struct {
	Axis float64 `msgpack:"a"`
	Jump bool    `msgpack:"j"`
}

// LevelSpec is everything the world needs to build a level.
type LevelSpec struct {
	ID        string
	Name      string
	Width     float64
	Spawn     core.Vec2
	Obstacles []core.Box
	Enemies   []EnemySpec
	Store     *core.Box // nil: the level cannot be completed
}

// Option configures a World.
type Option func(*World)

// WithCompletionHandler registers a callback for the level-completed
// notification. It fires at most once per world.
func WithCompletionHandler(fn func(Completion)) Option {
	return func(w *World) {
		w.onComplete = fn
	}
}

// World owns every entity of one level and drives the fixed-step
// simulation: input, movement, gravity, enemy movement, contact resolution.
type World struct {
	level      LevelSpec
	cfg        config.StoreDashConfig
	dt         time.Duration
	bounds     Lane
	difficulty *config.DifficultyManager

	player    *Player
	enemies   []*Enemy
	obstacles []Obstacle
	goal      *Goal
	resolver  *Resolver

	onComplete func(Completion)
	outcome    Outcome
	tick       int
	defeated   int
	last       Contacts
}

// NewWorld builds a world for the level with the given tuning.
func NewWorld(level LevelSpec, cfg config.StoreDashConfig, opts ...Option) *World {
	w := &World{
		level:      level,
		cfg:        cfg,
		dt:         cfg.Physics.StepDuration(),
		bounds:     Lane{Min: 0, Max: level.Width},
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
	}
	for _, opt := range opts {
		opt(w)
	}

	ground := cfg.Physics.GroundY
	w.player = NewPlayer(level.Spawn, ground, cfg.Player)

	w.enemies = make([]*Enemy, 0, len(level.Enemies))
	for i, spec := range level.Enemies {
		w.enemies = append(w.enemies, newEnemy(i, spec, cfg.Enemies.Width, cfg.Enemies.Height, w.enemySpeed(spec.Type), ground, w.bounds))
	}

	w.obstacles = make([]Obstacle, 0, len(level.Obstacles))
	for _, b := range level.Obstacles {
		w.obstacles = append(w.obstacles, NewObstacle(b))
	}

	if level.Store != nil {
		w.goal = NewGoal(*level.Store)
	}

	w.resolver = NewResolver(cfg, w.complete)
	return w
}

func (w *World) enemySpeed(t EnemyType) float64 {
	if t == EnemyChurchMember {
		return w.cfg.Enemies.ChurchSpeed
	}
	return w.cfg.Enemies.PoliceSpeed
}

// Step advances the simulation by one fixed tick. Once the run has ended
// further steps do nothing.
func (w *World) Step(in Input) Outcome {
	if w.outcome != OutcomeRunning {
		return w.outcome
	}

	p := w.player
	p.SetHorizontalInput(in.Axis)
	if in.Jump {
		p.StartJump()
	}
	p.UpdateMovement(w.dt)
	w.integrate(p)

	scale := w.difficulty.Speed(1, w.tick)
	target := p.Box().Center()
	for _, e := range w.enemies {
		e.setSpeedScale(scale)
		e.UpdateMovement(target, w.dt)
	}

	w.last = w.resolver.Resolve(p, w.enemies, w.obstacles, w.goal)
	w.pruneDefeated()
	w.tick++

	if p.IsDead() {
		w.outcome = OutcomeDead
	}
	return w.outcome
}

// Run steps through inputs until they run out or the run ends.
func (w *World) Run(inputs []Input) Outcome {
	for _, in := range inputs {
		if w.Step(in) != OutcomeRunning {
			break
		}
	}
	return w.outcome
}

// integrate applies gravity to the player, lands it on the ground and keeps
// it inside the level. A dead body is left where it is.
func (w *World) integrate(p *Player) {
	if p.IsDead() {
		return
	}

	secs := w.dt.Seconds()
	p.vel.Y -= w.cfg.Physics.Gravity * secs
	if p.vel.Y < -w.cfg.Physics.MaxFallSpeed {
		p.vel.Y = -w.cfg.Physics.MaxFallSpeed
	}
	p.pos.Y += p.vel.Y * secs

	if p.pos.Y <= p.groundY && p.vel.Y <= 0 {
		p.land()
	} else {
		p.grounded = false
		p.state = StateJumping
	}

	p.pos.X = core.ClampF(p.pos.X, w.bounds.Min, max(w.bounds.Min, w.bounds.Max-p.w))
}

func (w *World) pruneDefeated() {
	active := w.enemies[:0]
	for _, e := range w.enemies {
		if e.IsDefeated() {
			w.defeated++
			continue
		}
		active = append(active, e)
	}
	for i := len(active); i < len(w.enemies); i++ {
		w.enemies[i] = nil
	}
	w.enemies = active
}

func (w *World) complete() {
	w.outcome = OutcomeCompleted
	if w.onComplete != nil {
		w.onComplete(Completion{LevelID: w.level.ID, Tick: w.tick})
	}
}

// Score is the run's score: 100 per defeated enemy, plus on completion 250
// per remaining health point and a time bonus that shrinks by one point
// every six ticks.
func (w *World) Score() int {
	score := w.defeated * 100
	if w.outcome == OutcomeCompleted {
		score += w.player.Health() * 250
		score += max(0, 6000-w.tick/6)
	}
	return score
}

// Level returns the level the world was built from.
func (w *World) Level() LevelSpec { return w.level }

// Config returns the tuning in use.
func (w *World) Config() config.StoreDashConfig { return w.cfg }

// Player returns the player.
func (w *World) Player() *Player { return w.player }

// Enemies returns the active (undefeated) enemies.
func (w *World) Enemies() []*Enemy { return w.enemies }

// Obstacles returns the level's obstacles.
func (w *World) Obstacles() []Obstacle { return w.obstacles }

// Goal returns the store, or nil if the level has none.
func (w *World) Goal() *Goal { return w.goal }

// Bounds returns the level's horizontal extent.
func (w *World) Bounds() Lane { return w.bounds }

// Outcome returns the current run state.
func (w *World) Outcome() Outcome { return w.outcome }

// Tick returns the number of completed steps.
func (w *World) Tick() int { return w.tick }

// Elapsed returns the simulated time of the completed steps.
func (w *World) Elapsed() time.Duration { return time.Duration(w.tick) * w.dt }

// Defeated returns how many enemies have been stomped.
func (w *World) Defeated() int { return w.defeated }

// LastContacts returns what the resolver did in the most recent step.
func (w *World) LastContacts() Contacts { return w.last }
