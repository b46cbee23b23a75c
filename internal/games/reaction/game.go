// Package reaction implements the reaction time test: wait for the signal,
// then click as fast as possible. Clicking early is a false start.
package reaction

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-minigames/internal/clock"
	"github.com/vovakirdan/tui-minigames/internal/config"
	"github.com/vovakirdan/tui-minigames/internal/core"
	"github.com/vovakirdan/tui-minigames/internal/engine"
	"github.com/vovakirdan/tui-minigames/internal/ledger"
	"github.com/vovakirdan/tui-minigames/internal/registry"
)

// ID is the registry identifier.
const ID = "reaction-time"

const (
	PhaseWaiting core.Phase = "waiting"
	PhaseReady   core.Phase = "ready"

	kindGo clock.Kind = "go"
)

// Game implements engine.Rules for the reaction time test.
type Game struct {
	cfg config.ReactionConfig

	shown   bool
	shownAt time.Duration
	latency time.Duration
}

// New creates a reaction time test from its configuration.
func New(cfg config.ReactionConfig) *Game {
	if cfg.MinDelayMs < 0 {
		cfg.MinDelayMs = 0
	}
	if cfg.MaxDelayMs < cfg.MinDelayMs {
		cfg.MaxDelayMs = cfg.MinDelayMs
	}
	return &Game{cfg: cfg}
}

func init() {
	registry.Register(registry.GameInfo{
		ID:          ID,
		Title:       "Reaction Time",
		Description: "Test how fast you react to visual cues.",
		Difficulty:  "Easy",
		Modes:       []string{"default"},
	}, func(opts registry.Options) (engine.Rules, error) {
		cfg, err := config.LoadReaction(opts.ConfigPath)
		if err != nil {
			return nil, err
		}
		return New(cfg), nil
	})
}

// Info describes the game to the engine.
func (g *Game) Info() engine.Info {
	return engine.Info{
		ID:        ID,
		Modes:     []string{"default"},
		Direction: ledger.LowerIsBetter,
	}
}

// Params are constant for this game.
func (g *Game) Params(mode string, score int) core.Params {
	return core.Params{DecayRate: 1}
}

// Begin arms the signal after a random delay.
func (g *Game) Begin(s *engine.Session) error {
	g.shown, g.shownAt, g.latency = false, 0, 0
	s.SetPhase(PhaseWaiting)
	delay := s.Rand().Between(g.cfg.MinDelayMs, g.cfg.MaxDelayMs)
	s.After(time.Duration(delay)*time.Millisecond, kindGo, 0)
	return nil
}

// Tick is unused; the game has no periodic tick.
func (g *Game) Tick(s *engine.Session) error {
	return nil
}

// Input handles the click: before the signal it is a false start, after it
// the latency is measured and the session completes.
func (g *Game) Input(s *engine.Session, a core.Action) error {
	if a.Kind != core.ActionClick {
		return fmt.Errorf("reaction-time: %s action: %w", a.Kind, core.ErrInvalidTransition)
	}

	switch s.Phase() {
	case PhaseWaiting:
		s.Cue(core.CueFail)
		s.End(core.ReasonFalseStart)
	case PhaseReady:
		g.latency = s.Now() - g.shownAt
		s.SetStat("latency_ms", float64(g.latency.Milliseconds()))
		s.Cue(core.CueSuccess)
		s.End(core.ReasonCompleted)
	default:
		return fmt.Errorf("reaction-time: click in phase %q: %w", s.Phase(), core.ErrInvalidTransition)
	}
	return nil
}

// Timer shows the signal.
func (g *Game) Timer(s *engine.Session, kind clock.Kind, arg int) error {
	if kind != kindGo || s.Phase() != PhaseWaiting {
		return fmt.Errorf("reaction-time: timer %s: %w", kind, core.ErrInvalidTransition)
	}
	g.shown, g.shownAt = true, s.Now()
	s.SetPhase(PhaseReady)
	return nil
}

// Result records the latency in milliseconds. False starts are not recorded.
func (g *Game) Result(s *engine.Session) (float64, bool) {
	if s.Reason() != core.ReasonCompleted {
		return 0, false
	}
	return float64(g.latency.Milliseconds()), true
}

// Entities returns the signal once it is shown.
func (g *Game) Entities() []core.Entity {
	if !g.shown {
		return nil
	}
	return []core.Entity{{ID: 1, Slot: 0, Label: "go", State: core.EntityActive, SpawnedAt: g.shownAt}}
}
