package config

import (
	"embed"
)

//go:embed defaults/*.yaml
var defaultsFS embed.FS

var fruits = []string{"🍎", "🍌", "🍇", "🍒", "🥝", "🍉", "🍍", "🥭", "🍑", "🍓", "🍋", "🍊"}

// DefaultClickSpeedConfig returns the default Click Speed configuration.
func DefaultClickSpeedConfig() ClickSpeedConfig {
	return ClickSpeedConfig{DurationSecs: 10}
}

// DefaultReactionConfig returns the default Reaction Time configuration.
func DefaultReactionConfig() ReactionConfig {
	return ReactionConfig{MinDelayMs: 2000, MaxDelayMs: 5000}
}

// DefaultSnakeConfig returns the default Snake configuration.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Grid:   20,
		StartX: 10,
		StartY: 10,
		Difficulty: DifficultyConfig{
			Enabled:  true,
			Interval: Curve{Base: 140, Step: 2, Floor: 70},
			Size:     Fixed(20),
		},
	}
}

// DefaultWhackConfig returns the default Whack-a-Mole configuration.
func DefaultWhackConfig() WhackConfig {
	return WhackConfig{
		DurationSecs: 30,
		Difficulty: DifficultyConfig{
			Enabled:  true,
			Interval: Curve{Base: 900, Step: 30, Floor: 400},
			Size:     Fixed(9),
		},
	}
}

// DefaultAimConfig returns the default Aim Trainer configuration.
func DefaultAimConfig() AimConfig {
	return AimConfig{
		DurationSecs: 30,
		BoardSize:    350,
		Difficulty: DifficultyConfig{
			Enabled:  true,
			Interval: Curve{Base: 1200, Step: 30, Floor: 500},
			Size:     Curve{Base: 60, Step: 2, Floor: 24},
		},
	}
}

// DefaultMemoryConfig returns the default Memory Match configuration.
func DefaultMemoryConfig() MemoryConfig {
	return MemoryConfig{
		FlipBackMs: 800,
		Decks: map[string][]string{
			"easy":   append([]string(nil), fruits[:6]...),
			"medium": append([]string(nil), fruits[:10]...),
			"hard":   append([]string(nil), fruits...),
		},
	}
}

// DefaultSimonConfig returns the default Simon Says configuration.
func DefaultSimonConfig() SimonConfig {
	return SimonConfig{
		Pads:         map[string]int{"normal": 4, "hard": 6},
		LitMs:        450,
		UnlockMs:     600,
		RoundPauseMs: 900,
		Difficulty: DifficultyConfig{
			Enabled:  true,
			Interval: Curve{Base: 750, Step: 10, Floor: 450},
			Size:     Fixed(4),
		},
	}
}

// DefaultTypingConfig returns the default Typing Speed configuration.
func DefaultTypingConfig() TypingConfig {
	return TypingConfig{
		DurationSecs: 60,
		Sentences: map[string][]string{
			"easy": {
				"Practice makes progress",
				"Typing is a useful skill",
				"Accuracy comes before speed",
				"Focus on one word at a time",
				"Relax your hands while typing",
				"Small steps lead to success",
				"Consistency builds confidence",
				"Good posture improves typing",
			},
			"medium": {
				"Typing speed improves when accuracy becomes consistent over time",
				"The best typists focus on rhythm instead of rushing",
				"Daily practice creates noticeable improvement in typing skills",
				"Maintaining focus is more important than raw typing speed",
				"Typing efficiently reduces mental and physical fatigue",
				"Strong fundamentals lead to long term typing mastery",
			},
			"hard": {
				"Typing fluently requires muscle memory, sustained focus, and disciplined practice habits",
				"Professional typists prioritize accuracy, rhythm, and endurance over short bursts of speed",
				"Improving typing speed involves correcting mistakes early and maintaining consistent posture",
				"Long typing sessions demand both mental concentration and physical relaxation to avoid fatigue",
				"Mastery of typing emerges gradually through deliberate practice and continuous self correction",
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game, or nil.
func GetDefaultYAML(gameID string) []byte {
	data, err := defaultsFS.ReadFile("defaults/" + gameID + ".yaml")
	if err != nil {
		return nil
	}
	return data
}
