package config

import "math"

// DifficultyManager calculates enemy speed scaling from elapsed ticks.
// It is a pure function of its inputs so runs stay reproducible.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) after the given ticks.
func (d *DifficultyManager) Level(ticks int) float64 {
	if !d.IsEnabled() || d.cfg.Progression.Type != "time" {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1
	}
	progress := clampF(float64(ticks)/maxAt, 0.0, 1.0)

	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// Speed scales a base enemy speed by the current difficulty level.
func (d *DifficultyManager) Speed(baseSpeed float64, ticks int) float64 {
	return baseSpeed * (1.0 + d.Level(ticks)*d.cfg.Scaling.SpeedMultiplier)
}

func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
