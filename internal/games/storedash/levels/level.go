// Package levels loads Store Dash levels from YAML.
// Levels are parsed and validated here; the simulation only ever sees a
// checked sim.LevelSpec.
package levels

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/store-dash/internal/config"
	"github.com/vovakirdan/store-dash/internal/core"
	"github.com/vovakirdan/store-dash/internal/games/storedash/sim"
)

var (
	// ErrLevelNotFound is returned when no level has the requested ID.
	ErrLevelNotFound = errors.New("level not found")

	// ErrInvalidLevel wraps every validation failure.
	ErrInvalidLevel = errors.New("invalid level")
)

// Level is a parsed, validated level.
type Level struct {
	ID       string
	Name     string
	Spec     sim.LevelSpec
	Source   []byte // raw YAML, kept for replays
	FilePath string // empty for embedded levels
}

// HasStore reports whether the level can be completed.
func (l Level) HasStore() bool {
	return l.Spec.Store != nil
}

type yamlLevel struct {
	ID        string      `yaml:"id"`
	Name      string      `yaml:"name"`
	Width     float64     `yaml:"width"`
	Spawn     yamlPoint   `yaml:"spawn"`
	Obstacles []yamlBox   `yaml:"obstacles"`
	Enemies   []yamlEnemy `yaml:"enemies"`
	Store     *yamlBox    `yaml:"store"`
}

type yamlPoint struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type yamlBox struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

type yamlEnemy struct {
	Type      string    `yaml:"type"`
	X         float64   `yaml:"x"`
	Movement  string    `yaml:"movement"`
	Direction int       `yaml:"direction"`
	Lane      *yamlLane `yaml:"lane"`
}

type yamlLane struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Parse decodes and validates a level. Unknown keys are rejected.
func Parse(data []byte) (Level, error) {
	var yl yamlLevel
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&yl); err != nil {
		if errors.Is(err, io.EOF) {
			return Level{}, fmt.Errorf("%w: empty document", ErrInvalidLevel)
		}
		return Level{}, fmt.Errorf("yaml decode: %w", err)
	}

	spec, err := yl.toSpec()
	if err != nil {
		return Level{}, err
	}

	name := yl.Name
	if name == "" {
		name = yl.ID
	}
	spec.Name = name

	lvl := Level{
		ID:     yl.ID,
		Name:   name,
		Spec:   spec,
		Source: append([]byte(nil), data...),
	}
	if err := lvl.Fits(config.DefaultStoreDashConfig()); err != nil {
		return Level{}, err
	}
	return lvl, nil
}

// Fits checks that the level leaves room for the bodies the tuning
// describes: the level must be at least as wide as the player and an enemy,
// and every enemy lane at least as wide as an enemy.
func (l Level) Fits(tuning config.StoreDashConfig) error {
	need := max(tuning.Player.Width, tuning.Enemies.Width)
	if l.Spec.Width < need {
		return fmt.Errorf("%w: %s: width %g narrower than a body (%g)", ErrInvalidLevel, l.ID, l.Spec.Width, need)
	}
	for i, e := range l.Spec.Enemies {
		if e.Lane != nil && e.Lane.Max-e.Lane.Min < tuning.Enemies.Width {
			return fmt.Errorf("%w: %s: enemy %d: lane [%g, %g] narrower than an enemy (%g)",
				ErrInvalidLevel, l.ID, i, e.Lane.Min, e.Lane.Max, tuning.Enemies.Width)
		}
	}
	return nil
}

func (yl yamlLevel) toSpec() (sim.LevelSpec, error) {
	if yl.ID == "" {
		return sim.LevelSpec{}, fmt.Errorf("%w: missing id", ErrInvalidLevel)
	}
	if yl.Width <= 0 {
		return sim.LevelSpec{}, fmt.Errorf("%w: %s: width must be positive", ErrInvalidLevel, yl.ID)
	}
	if yl.Spawn.X < 0 || yl.Spawn.X >= yl.Width || yl.Spawn.Y < 0 {
		return sim.LevelSpec{}, fmt.Errorf("%w: %s: spawn (%g, %g) outside the level", ErrInvalidLevel, yl.ID, yl.Spawn.X, yl.Spawn.Y)
	}

	spec := sim.LevelSpec{
		ID:        yl.ID,
		Width:     yl.Width,
		Spawn:     core.Vec2{X: yl.Spawn.X, Y: yl.Spawn.Y},
		Obstacles: make([]core.Box, 0, len(yl.Obstacles)),
		Enemies:   make([]sim.EnemySpec, 0, len(yl.Enemies)),
	}

	for i, o := range yl.Obstacles {
		box, err := o.toBox(yl.Width)
		if err != nil {
			return sim.LevelSpec{}, fmt.Errorf("%w: %s: obstacle %d: %v", ErrInvalidLevel, yl.ID, i, err)
		}
		spec.Obstacles = append(spec.Obstacles, box)
	}

	for i, e := range yl.Enemies {
		es, err := e.toSpec(yl.Width)
		if err != nil {
			return sim.LevelSpec{}, fmt.Errorf("%w: %s: enemy %d: %v", ErrInvalidLevel, yl.ID, i, err)
		}
		spec.Enemies = append(spec.Enemies, es)
	}

	if yl.Store != nil {
		box, err := yl.Store.toBox(yl.Width)
		if err != nil {
			return sim.LevelSpec{}, fmt.Errorf("%w: %s: store: %v", ErrInvalidLevel, yl.ID, err)
		}
		spec.Store = &box
	}

	return spec, nil
}

func (b yamlBox) toBox(width float64) (core.Box, error) {
	if b.W <= 0 || b.H <= 0 {
		return core.Box{}, fmt.Errorf("size %gx%g must be positive", b.W, b.H)
	}
	if b.X < 0 || b.X+b.W > width || b.Y < 0 {
		return core.Box{}, fmt.Errorf("box at (%g, %g) outside the level", b.X, b.Y)
	}
	return core.Box{X: b.X, Y: b.Y, W: b.W, H: b.H}, nil
}

func (e yamlEnemy) toSpec(width float64) (sim.EnemySpec, error) {
	kind, err := ParseEnemyType(e.Type)
	if err != nil {
		return sim.EnemySpec{}, err
	}

	movement := sim.DefaultMovement(kind)
	if e.Movement != "" {
		if movement, err = ParseMovement(e.Movement); err != nil {
			return sim.EnemySpec{}, err
		}
	}

	if e.Direction < -1 || e.Direction > 1 {
		return sim.EnemySpec{}, fmt.Errorf("direction %d must be -1 or 1", e.Direction)
	}
	if e.X < 0 || e.X >= width {
		return sim.EnemySpec{}, fmt.Errorf("x %g outside the level", e.X)
	}

	spec := sim.EnemySpec{
		Type:      kind,
		Movement:  movement,
		X:         e.X,
		Direction: e.Direction,
	}

	if e.Lane != nil {
		if e.Lane.Min < 0 || e.Lane.Max > width || e.Lane.Min >= e.Lane.Max {
			return sim.EnemySpec{}, fmt.Errorf("lane [%g, %g] invalid", e.Lane.Min, e.Lane.Max)
		}
		spec.Lane = &sim.Lane{Min: e.Lane.Min, Max: e.Lane.Max}
	}

	return spec, nil
}

// ParseEnemyType parses "police" or "church_member".
func ParseEnemyType(s string) (sim.EnemyType, error) {
	switch s {
	case "police":
		return sim.EnemyPolice, nil
	case "church_member":
		return sim.EnemyChurchMember, nil
	default:
		return 0, fmt.Errorf("unknown enemy type %q", s)
	}
}

// ParseMovement parses "toward_player" or "across_path".
func ParseMovement(s string) (sim.Movement, error) {
	switch s {
	case "toward_player":
		return sim.MovementTowardPlayer, nil
	case "across_path":
		return sim.MovementAcrossPath, nil
	default:
		return 0, fmt.Errorf("unknown movement %q", s)
	}
}
