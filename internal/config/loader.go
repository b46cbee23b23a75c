package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// load fills dst from a game's YAML config.
// Search order: customPath -> ~/.arcade/configs/<game>.yaml -> ./configs/<game>.yaml -> embedded default.
// dst should already hold the hardcoded defaults; YAML keys override them.
func load(gameID, customPath string, dst any) error {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, dst); err != nil {
			return fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return nil
	}

	filename := gameID + ".yaml"

	// Try user config directory
	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, dst); err == nil {
				return nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", filename)); err == nil {
		if err := yaml.Unmarshal(data, dst); err == nil {
			return nil
		}
	}

	// Use embedded default YAML; the hardcoded defaults already in dst win if it is missing
	if data := GetDefaultYAML(gameID); data != nil {
		//nolint:errcheck // Hardcoded defaults remain on parse failure
		yaml.Unmarshal(data, dst)
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// LoadClickSpeed loads Click Speed configuration.
func LoadClickSpeed(customPath string) (ClickSpeedConfig, error) {
	cfg := DefaultClickSpeedConfig()
	err := load("click-speed", customPath, &cfg)
	return cfg, err
}

// LoadReaction loads Reaction Time configuration.
func LoadReaction(customPath string) (ReactionConfig, error) {
	cfg := DefaultReactionConfig()
	err := load("reaction-time", customPath, &cfg)
	if cfg.MaxDelayMs < cfg.MinDelayMs {
		cfg.MaxDelayMs = cfg.MinDelayMs
	}
	return cfg, err
}

// LoadSnake loads Snake configuration.
func LoadSnake(customPath string, preset DifficultyPreset) (SnakeConfig, error) {
	cfg := DefaultSnakeConfig()
	err := load("snake", customPath, &cfg)
	ApplyPreset(&cfg.Difficulty, preset)
	return cfg, err
}

// LoadWhack loads Whack-a-Mole configuration.
func LoadWhack(customPath string, preset DifficultyPreset) (WhackConfig, error) {
	cfg := DefaultWhackConfig()
	err := load("whack-a-mole", customPath, &cfg)
	ApplyPreset(&cfg.Difficulty, preset)
	return cfg, err
}

// LoadAim loads Aim Trainer configuration.
func LoadAim(customPath string, preset DifficultyPreset) (AimConfig, error) {
	cfg := DefaultAimConfig()
	err := load("aim-trainer", customPath, &cfg)
	ApplyPreset(&cfg.Difficulty, preset)
	return cfg, err
}

// LoadMemory loads Memory Match configuration.
func LoadMemory(customPath string) (MemoryConfig, error) {
	cfg := DefaultMemoryConfig()
	err := load("memory-match", customPath, &cfg)
	return cfg, err
}

// LoadSimon loads Simon Says configuration.
func LoadSimon(customPath string, preset DifficultyPreset) (SimonConfig, error) {
	cfg := DefaultSimonConfig()
	err := load("simon-says", customPath, &cfg)
	ApplyPreset(&cfg.Difficulty, preset)
	return cfg, err
}

// LoadTyping loads Typing Speed configuration.
func LoadTyping(customPath string) (TypingConfig, error) {
	cfg := DefaultTypingConfig()
	err := load("typing-speed", customPath, &cfg)
	return cfg, err
}
