package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Settings are process-wide options read from the environment. They seed the
// CLI flag defaults.
type Settings struct {
	DBPath   string `env:"ARCADE_DB" envDefault:"~/.arcade/minigames.db"`
	Seed     int64  `env:"ARCADE_SEED" envDefault:"0"`
	LogLevel string `env:"ARCADE_LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"ARCADE_LOG_FILE" envDefault:"~/.arcade/minigames.log"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// LoadSettings returns the environment settings.
func LoadSettings() (Settings, error) {
	var s Settings
	err := ParseEnv(&s)
	return s, err
}
