// Package whackamole implements Whack-a-Mole: a mole pops up in one of the
// holes and the player whacks it before it hides again.
package whackamole

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
const ID = "whack-a-mole"

const kindExpire clock.Kind = "expire"

// Game implements engine.Rules for Whack-a-Mole.
type Game struct {
	cfg    config.WhackConfig
	policy config.Policy

	mole   core.Entity
	nextID int
	expiry clock.Token
}

// New creates a Whack-a-Mole game from its configuration.
func New(cfg config.WhackConfig) *Game {
	if cfg.DurationSecs <= 0 {
		cfg.DurationSecs = config.DefaultWhackConfig().DurationSecs
	}
	return &Game{cfg: cfg, policy: config.NewPolicy(cfg.Difficulty)}
}

func init() {
	registry.Register(registry.GameInfo{
		ID:          ID,
		Title:       "Whack-a-Mole",
		Description: "Whack the mole before it hides again.",
		Difficulty:  "Easy",
		Modes:       []string{"default"},
	}, func(opts registry.Options) (engine.Rules, error) {
		cfg, err := config.LoadWhack(opts.ConfigPath, opts.Preset)
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

// Params returns the mole lifetime and hole count for a score.
func (g *Game) Params(mode string, score int) core.Params {
	return g.policy.At(score)
}

// Begin pops the first mole.
func (g *Game) Begin(s *engine.Session) error {
	g.mole = core.Entity{Slot: -1}
	g.nextID = 0
	holes := g.holes(s.Score())
	cols := 3
	s.SetBoard(cols, (holes+cols-1)/cols)
	g.spawn(s)
	return nil
}

// Tick is a no-op; the countdown is handled by the engine.
func (g *Game) Tick(s *engine.Session) error {
	return nil
}

// Input whacks a hole. Hitting the mole scores and pops a new one at once;
// any other hole is a miss.
func (g *Game) Input(s *engine.Session, a core.Action) error {
	if a.Kind != core.ActionSelect {
		return fmt.Errorf("whack-a-mole: %s action: %w", a.Kind, core.ErrInvalidTransition)
	}
	slot := a.Slot
	if slot < 0 && a.Target == g.mole.ID {
		slot = g.mole.Slot
	}
	if slot < 0 || slot >= g.holes(s.Score()) {
		return fmt.Errorf("whack-a-mole: hole %d: %w", slot, core.ErrInvalidTransition)
	}

	if slot != g.mole.Slot {
		s.Fail()
		s.Cue(core.CueMiss)
		return nil
	}

	s.AddScore(1)
	s.Cue(core.CueHit)
	s.Cancel(g.expiry)
	g.spawn(s)
	return nil
}

// Timer relocates a mole that was not whacked in time. This is not a miss.
func (g *Game) Timer(s *engine.Session, kind clock.Kind, arg int) error {
	if kind != kindExpire || arg != g.mole.ID {
		return fmt.Errorf("whack-a-mole: timer %s(%d): %w", kind, arg, core.ErrInvalidTransition)
	}
	g.spawn(s)
	return nil
}

// Result records the number of moles whacked.
func (g *Game) Result(s *engine.Session) (float64, bool) {
	return float64(s.Score()), true
}

// Entities returns the active mole.
func (g *Game) Entities() []core.Entity {
	if g.mole.Slot < 0 {
		return nil
	}
	return []core.Entity{g.mole}
}

func (g *Game) holes(score int) int {
	return max(1, g.policy.At(score).Size)
}

// spawn moves the mole to a different hole and arms its expiry.
func (g *Game) spawn(s *engine.Session) {
	p := g.policy.At(s.Score())
	g.nextID++
	g.mole = core.Entity{
		ID:        g.nextID,
		Slot:      s.Rand().PickExcept(g.holes(s.Score()), g.mole.Slot),
		State:     core.EntityActive,
		SpawnedAt: s.Elapsed(),
		TTL:       p.Interval(),
	}
	g.expiry = s.After(p.Interval(), kindExpire, g.mole.ID)
}
