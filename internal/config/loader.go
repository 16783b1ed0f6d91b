package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the tuning file name looked up in the config directories.
const FileName = "storedash.yaml"

// Load loads Store Dash tuning.
// Search order: customPath -> ~/.storedash/configs/storedash.yaml -> ./configs/storedash.yaml -> embedded default
func Load(customPath string) (StoreDashConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return StoreDashConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return StoreDashConfig{}, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range []string{userConfigPath(FileName), filepath.Join("configs", FileName)} {
		if path == "" {
			continue
		}
		if data, err := os.ReadFile(path); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	cfg, err := Parse(defaultStoreDashYAML)
	if err != nil {
		return DefaultStoreDashConfig(), nil
	}
	return cfg, nil
}

// Parse decodes tuning YAML on top of the hard-coded defaults, so a file only
// needs the keys it overrides.
func Parse(data []byte) (StoreDashConfig, error) {
	cfg := DefaultStoreDashConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return StoreDashConfig{}, err
	}
	return cfg, nil
}

// Marshal encodes tuning as YAML. Replays embed this so a run can be
// re-simulated with the tuning it was played with.
func Marshal(cfg StoreDashConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: cannot encode tuning: %w", err)
	}
	return data, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".storedash", "configs", filename)
}

// ApplyPreset modifies the config based on a difficulty preset.
// The empty preset leaves the config unchanged.
func ApplyPreset(cfg *StoreDashConfig, preset DifficultyPreset) {
	switch preset {
	case "":
		return
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
	default:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	switch preset {
	case DifficultyEasy:
		cfg.Player.MaxHealth = 5
	case DifficultyHard:
		cfg.Player.MaxHealth = 2
	}
}
