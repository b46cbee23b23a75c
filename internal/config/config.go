// Package config provides YAML-based game configuration loading,
// environment settings and difficulty policies for the mini-game hub.
package config

// ClickSpeedConfig contains all configuration for the Click Speed game.
type ClickSpeedConfig struct {
	DurationSecs int `yaml:"duration_secs"`
}

// ReactionConfig contains all configuration for the Reaction Time game.
type ReactionConfig struct {
	MinDelayMs int `yaml:"min_delay_ms"` // Earliest stimulus after start
	MaxDelayMs int `yaml:"max_delay_ms"` // Latest stimulus after start
}

// SnakeConfig contains all configuration for the Snake game.
type SnakeConfig struct {
	Grid       int              `yaml:"grid"`
	StartX     int              `yaml:"start_x"`
	StartY     int              `yaml:"start_y"`
	Difficulty DifficultyConfig `yaml:"difficulty"` // Interval = move period
}

// WhackConfig contains all configuration for the Whack-a-Mole game.
type WhackConfig struct {
	DurationSecs int              `yaml:"duration_secs"`
	Difficulty   DifficultyConfig `yaml:"difficulty"` // Interval = mole lifetime, size = holes
}

// AimConfig contains all configuration for the Aim Trainer game.
type AimConfig struct {
	DurationSecs int              `yaml:"duration_secs"`
	BoardSize    int              `yaml:"board_size"`
	Difficulty   DifficultyConfig `yaml:"difficulty"` // Interval = target lifetime, size = target edge
}

// MemoryConfig contains all configuration for the Memory Match game.
type MemoryConfig struct {
	FlipBackMs int                 `yaml:"flip_back_ms"`
	Decks      map[string][]string `yaml:"decks"` // Mode -> card faces (each appears twice)
}

// SimonConfig contains all configuration for the Simon Says game.
type SimonConfig struct {
	Pads         map[string]int   `yaml:"pads"` // Mode -> number of color pads
	LitMs        int              `yaml:"lit_ms"`
	UnlockMs     int              `yaml:"unlock_ms"`
	RoundPauseMs int              `yaml:"round_pause_ms"`
	Difficulty   DifficultyConfig `yaml:"difficulty"` // Interval = playback step period
}

// TypingConfig contains all configuration for the Typing Speed game.
type TypingConfig struct {
	DurationSecs int                 `yaml:"duration_secs"`
	Sentences    map[string][]string `yaml:"sentences"` // Mode -> sentence pool
}
