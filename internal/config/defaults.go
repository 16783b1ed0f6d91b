package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/storedash.yaml
var defaultStoreDashYAML []byte

// DefaultStoreDashConfig returns the hard-coded tuning, identical to the
// embedded defaults/storedash.yaml.
func DefaultStoreDashConfig() StoreDashConfig {
	return StoreDashConfig{
		Physics: Physics{
			TickRate:     60,
			Gravity:      1800,
			MaxFallSpeed: 900,
			GroundY:      0,
		},
		Player: Player{
			Width:           24,
			Height:          40,
			MaxHealth:       3,
			BaseSpeed:       240,
			JumpVelocity:    620,
			PenaltyFactor:   0.5,
			PenaltyDuration: 3 * time.Second,
			BounceVelocity:  420,
			StompTolerance:  2,
		},
		Enemies: Enemies{
			Width:         24,
			Height:        36,
			PoliceSpeed:   90,
			ChurchSpeed:   60,
			ContactDamage: 0,
		},
		Obstacles: Obstacles{
			ContactDamage: 0,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "time",
				MaxAt: 7200,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.75,
			},
		},
	}
}

// DefaultYAML returns the embedded default tuning file.
func DefaultYAML() []byte {
	return defaultStoreDashYAML
}
