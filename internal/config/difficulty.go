package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/tui-minigames/internal/core"
)

// Curve is a clamped linear ramp: value(score) = Base - Step*score, never
// below Floor.
type Curve struct {
	Base  int `yaml:"base"`
	Step  int `yaml:"step"`
	Floor int `yaml:"floor"`
}

// Fixed returns a curve that always yields v.
func Fixed(v int) Curve {
	return Curve{Base: v, Floor: v}
}

// DifficultyConfig defines the difficulty progression of a game.
type DifficultyConfig struct {
	Enabled      bool    `yaml:"enabled"`
	InitialLevel float64 `yaml:"initial_level"` // 0.0 = easy, 1.0 = floor from the start
	Interval     Curve   `yaml:"interval"`      // Milliseconds
	Size         Curve   `yaml:"size"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. The empty string means easy.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return DifficultyEasy, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
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

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyPreset modifies the difficulty config based on a preset.
func ApplyPreset(cfg *DifficultyConfig, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		cfg.Enabled = false
		return
	}
	cfg.Enabled = true
	cfg.InitialLevel = InitialLevelForPreset(preset)
}

// Policy maps a score to difficulty parameters. It is a pure function of
// the score: monotonically non-increasing and clamped to each curve's floor.
type Policy struct {
	cfg DifficultyConfig
}

// NewPolicy creates a policy from a difficulty config.
func NewPolicy(cfg DifficultyConfig) Policy {
	cfg.InitialLevel = core.ClampF(cfg.InitialLevel, 0, 1)
	return Policy{cfg: cfg}
}

// FixedPolicy returns a policy that never changes.
func FixedPolicy(intervalMs, size int) Policy {
	return NewPolicy(DifficultyConfig{Interval: Fixed(intervalMs), Size: Fixed(size)})
}

// At returns the parameters for the given score.
func (p Policy) At(score int) core.Params {
	interval := p.value(p.cfg.Interval, score)
	decay := 1.0
	if p.cfg.Interval.Base > 0 {
		decay = core.ClampF(float64(interval)/float64(p.cfg.Interval.Base), 0, 1)
	}
	return core.Params{
		IntervalMs: interval,
		Size:       p.value(p.cfg.Size, score),
		DecayRate:  decay,
	}
}

func (p Policy) value(c Curve, score int) int {
	floor := min(c.Floor, c.Base)
	offset := int(math.Round(p.cfg.InitialLevel * float64(c.Base-floor)))
	v := c.Base - offset
	if p.cfg.Enabled && score > 0 && c.Step > 0 {
		v -= c.Step * score
	}
	return max(v, floor)
}
