// Package clickspeed implements the click speed test: count clicks inside a
// fixed window and report clicks per second.
package clickspeed

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
const ID = "click-speed"

// Game implements engine.Rules for the click speed test.
type Game struct {
	cfg config.ClickSpeedConfig
}

// New creates a click speed test from its configuration.
func New(cfg config.ClickSpeedConfig) *Game {
	if cfg.DurationSecs <= 0 {
		cfg.DurationSecs = config.DefaultClickSpeedConfig().DurationSecs
	}
	return &Game{cfg: cfg}
}

func init() {
	registry.Register(registry.GameInfo{
		ID:          ID,
		Title:       "Click Speed Test",
		Description: "How fast can you click in 10 seconds?",
		Difficulty:  "Easy",
		Modes:       []string{"default"},
	}, func(opts registry.Options) (engine.Rules, error) {
		cfg, err := config.LoadClickSpeed(opts.ConfigPath)
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
		Direction: ledger.HigherIsBetter,
		Countdown: g.cfg.DurationSecs,
		Tick:      time.Second,
	}
}

// Params are constant for this game.
func (g *Game) Params(mode string, score int) core.Params {
	return core.Params{DecayRate: 1}
}

// Begin resets the counters.
func (g *Game) Begin(s *engine.Session) error {
	s.SetStat("cps", 0)
	return nil
}

// Tick refreshes the running rate.
func (g *Game) Tick(s *engine.Session) error {
	g.updateRate(s)
	return nil
}

// Input counts a click.
func (g *Game) Input(s *engine.Session, a core.Action) error {
	if a.Kind != core.ActionClick {
		return fmt.Errorf("click-speed: %s action: %w", a.Kind, core.ErrInvalidTransition)
	}
	s.AddScore(1)
	s.Cue(core.CueHit)
	return nil
}

// Timer is unused.
func (g *Game) Timer(s *engine.Session, kind clock.Kind, arg int) error {
	return fmt.Errorf("click-speed: timer %s: %w", kind, core.ErrInvalidTransition)
}

// Result records clicks per second over the full window.
func (g *Game) Result(s *engine.Session) (float64, bool) {
	cps := core.Rate(float64(s.Score()), float64(g.cfg.DurationSecs), 2)
	s.SetStat("cps", cps)
	return cps, true
}

// Entities returns nothing; the whole screen is the button.
func (g *Game) Entities() []core.Entity {
	return nil
}

func (g *Game) updateRate(s *engine.Session) {
	s.SetStat("cps", core.Rate(float64(s.Score()), float64(s.ElapsedTicks()), 2))
}
