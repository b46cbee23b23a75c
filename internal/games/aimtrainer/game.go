// Package aimtrainer implements the aim trainer: click square targets that
// shrink and vanish faster as the score rises.
package aimtrainer

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
const ID = "aim-trainer"

const kindExpire clock.Kind = "expire"

// Game implements engine.Rules for the aim trainer.
type Game struct {
	cfg    config.AimConfig
	policy config.Policy

	target core.Entity
	active bool
	nextID int
	expiry clock.Token
}

// New creates an aim trainer from its configuration.
func New(cfg config.AimConfig) *Game {
	def := config.DefaultAimConfig()
	if cfg.DurationSecs <= 0 {
		cfg.DurationSecs = def.DurationSecs
	}
	if cfg.BoardSize <= 0 {
		cfg.BoardSize = def.BoardSize
	}
	return &Game{cfg: cfg, policy: config.NewPolicy(cfg.Difficulty)}
}

func init() {
	registry.Register(registry.GameInfo{
		ID:          ID,
		Title:       "Aim Trainer",
		Description: "Click the target as fast as you can.",
		Difficulty:  "Medium",
		Modes:       []string{"default"},
	}, func(opts registry.Options) (engine.Rules, error) {
		cfg, err := config.LoadAim(opts.ConfigPath, opts.Preset)
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

// Params returns the target lifetime and edge for a score.
func (g *Game) Params(mode string, score int) core.Params {
	return g.policy.At(score)
}

// Begin spawns the first target.
func (g *Game) Begin(s *engine.Session) error {
	g.active = false
	g.nextID = 0
	s.SetBoard(g.cfg.BoardSize, g.cfg.BoardSize)
	s.SetStat("accuracy", 100)
	g.spawn(s)
	return nil
}

// Tick is a no-op; the countdown is handled by the engine.
func (g *Game) Tick(s *engine.Session) error {
	return nil
}

// Input checks a shot. Selecting the target by id or pointing inside its
// bounds is a hit; any other shot on the board only plays the miss cue.
func (g *Game) Input(s *engine.Session, a core.Action) error {
	var hit bool
	switch a.Kind {
	case core.ActionSelect:
		hit = g.active && a.Target == g.target.ID
	case core.ActionPoint:
		board := core.NewRect(0, 0, g.cfg.BoardSize, g.cfg.BoardSize)
		if !board.Contains(a.Pos) {
			return fmt.Errorf("aim-trainer: shot %+v off the board: %w", a.Pos, core.ErrInvalidTransition)
		}
		hit = g.active && g.target.Bounds().Contains(a.Pos)
	default:
		return fmt.Errorf("aim-trainer: %s action: %w", a.Kind, core.ErrInvalidTransition)
	}

	if !hit {
		s.Cue(core.CueMiss)
		return nil
	}
	s.AddScore(1)
	s.Cue(core.CueHit)
	s.Cancel(g.expiry)
	g.spawn(s)
	g.updateAccuracy(s)
	return nil
}

// Timer handles an expired target: it counts as a miss and a new target
// appears.
func (g *Game) Timer(s *engine.Session, kind clock.Kind, arg int) error {
	if kind != kindExpire || !g.active || arg != g.target.ID {
		return fmt.Errorf("aim-trainer: timer %s(%d): %w", kind, arg, core.ErrInvalidTransition)
	}
	s.Fail()
	s.Cue(core.CueMiss)
	g.spawn(s)
	g.updateAccuracy(s)
	return nil
}

// Result records the number of targets hit.
func (g *Game) Result(s *engine.Session) (float64, bool) {
	return float64(s.Score()), true
}

// Entities returns the active target.
func (g *Game) Entities() []core.Entity {
	if !g.active {
		return nil
	}
	return []core.Entity{g.target}
}

func (g *Game) spawn(s *engine.Session) {
	p := g.policy.At(s.Score())
	size := core.Clamp(p.Size, 1, g.cfg.BoardSize)
	g.nextID++
	g.target = core.Entity{
		ID:        g.nextID,
		Slot:      -1,
		Pos:       s.Rand().PointIn(g.cfg.BoardSize-size+1, g.cfg.BoardSize-size+1),
		Size:      size,
		State:     core.EntityActive,
		SpawnedAt: s.Elapsed(),
		TTL:       p.Interval(),
	}
	g.active = true
	g.expiry = s.After(p.Interval(), kindExpire, g.target.ID)
}

func (g *Game) updateAccuracy(s *engine.Session) {
	hits := float64(s.Score())
	s.SetStat("accuracy", core.Percent(hits, hits+float64(s.Failures()), 100))
}
