// Package config provides YAML-based tuning for Store Dash and the
// difficulty presets layered on top of it.
package config

import "time"

// StoreDashConfig contains all tuning for the gameplay core.
// Distances are world units (one terminal column is eight units), speeds are
// units per second and accelerations units per second squared. Y grows upward.
type StoreDashConfig struct {
	Physics    Physics          `yaml:"physics"`
	Player     Player           `yaml:"player"`
	Enemies    Enemies          `yaml:"enemies"`
	Obstacles  Obstacles        `yaml:"obstacles"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// Physics defines the step driver parameters.
type Physics struct {
	TickRate     int     `yaml:"tick_rate"`
	Gravity      float64 `yaml:"gravity"`
	MaxFallSpeed float64 `yaml:"max_fall_speed"`
	GroundY      float64 `yaml:"ground_y"`
}

// Player defines the avatar's body, health and penalty rules.
type Player struct {
	Width           float64       `yaml:"width"`
	Height          float64       `yaml:"height"`
	MaxHealth       int           `yaml:"max_health"`
	BaseSpeed       float64       `yaml:"base_speed"`
	JumpVelocity    float64       `yaml:"jump_velocity"`
	PenaltyFactor   float64       `yaml:"penalty_factor"`
	PenaltyDuration time.Duration `yaml:"penalty_duration"`
	BounceVelocity  float64       `yaml:"bounce_velocity"`
	StompTolerance  float64       `yaml:"stomp_tolerance"`
}

// Enemies defines enemy bodies and speeds.
type Enemies struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	PoliceSpeed   float64 `yaml:"police_speed"`
	ChurchSpeed   float64 `yaml:"church_speed"`
	ContactDamage int     `yaml:"contact_damage"`
}

// Obstacles defines hazard contact rules.
type Obstacles struct {
	ContactDamage int `yaml:"contact_damage"`
}

// StepDuration returns the fixed simulation step for the configured tick rate.
func (p Physics) StepDuration() time.Duration {
	rate := p.TickRate
	if rate <= 0 {
		rate = 60
	}
	return time.Second / time.Duration(rate)
}

// DifficultyConfig defines how enemy speed progresses during a run.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "time" or "none"
	MaxAt int    `yaml:"max_at"` // Ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Added to enemy speed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI string to a preset. Unknown or empty strings
// yield the empty preset, which keeps the config untouched.
func ParsePreset(s string) DifficultyPreset {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}
