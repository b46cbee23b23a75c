// Package memorymatch implements Memory Match: flip two cards at a time and
// find every pair in as little time as possible.
package memorymatch

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
const ID = "memory-match"

const kindUnflip clock.Kind = "unflip"

var modes = []string{"easy", "medium", "hard"}

// Game implements engine.Rules for Memory Match.
type Game struct {
	cfg config.MemoryConfig

	cards   []core.Entity
	pending []int // Revealed, unmatched card indexes (at most two)
	matched int   // Matched pairs
	moves   int
}

// New creates a Memory Match game from its configuration.
func New(cfg config.MemoryConfig) *Game {
	if cfg.FlipBackMs <= 0 {
		cfg.FlipBackMs = config.DefaultMemoryConfig().FlipBackMs
	}
	return &Game{cfg: cfg}
}

func init() {
	registry.Register(registry.GameInfo{
		ID:          ID,
		Title:       "Memory Match",
		Description: "Match all pairs with the fewest moves.",
		Difficulty:  "Medium",
		Modes:       modes,
	}, func(opts registry.Options) (engine.Rules, error) {
		cfg, err := config.LoadMemory(opts.ConfigPath)
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
		Modes:     modes,
		Direction: ledger.LowerIsBetter,
		Tick:      time.Second,
	}
}

// Params returns the deck size for the current mode.
func (g *Game) Params(mode string, score int) core.Params {
	return core.Params{IntervalMs: g.cfg.FlipBackMs, Size: 2 * len(g.cfg.Decks[mode]), DecayRate: 1}
}

// Begin deals a shuffled deck holding every face twice.
func (g *Game) Begin(s *engine.Session) error {
	faces := g.cfg.Decks[s.Mode()]
	if len(faces) == 0 {
		return fmt.Errorf("memory-match: empty deck for mode %q", s.Mode())
	}

	deck := make([]string, 0, 2*len(faces))
	deck = append(deck, faces...)
	deck = append(deck, faces...)
	s.Rand().Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})

	g.cards = make([]core.Entity, len(deck))
	for i, face := range deck {
		g.cards[i] = core.Entity{ID: i, Slot: i, Label: face, State: core.EntityHidden}
	}
	g.pending = g.pending[:0]
	g.matched, g.moves = 0, 0

	rows := 3
	if len(deck) >= 16 {
		rows = 4
	}
	s.SetBoard((len(deck)+rows-1)/rows, rows)
	s.SetStat("moves", 0)
	return nil
}

// Tick is a no-op; elapsed seconds are counted by the engine.
func (g *Game) Tick(s *engine.Session) error {
	return nil
}

// Input flips a card. A second flip compares the pair: equal faces stay up,
// different faces turn back after a short delay.
func (g *Game) Input(s *engine.Session, a core.Action) error {
	if a.Kind != core.ActionSelect {
		return fmt.Errorf("memory-match: %s action: %w", a.Kind, core.ErrInvalidTransition)
	}
	idx := a.Slot
	if idx < 0 {
		idx = a.Target
	}
	if len(g.pending) == 2 {
		return fmt.Errorf("memory-match: pair pending: %w", core.ErrInvalidTransition)
	}
	if idx < 0 || idx >= len(g.cards) || g.cards[idx].State != core.EntityHidden {
		return fmt.Errorf("memory-match: card %d not flippable: %w", idx, core.ErrInvalidTransition)
	}

	g.cards[idx].State = core.EntityRevealed
	g.cards[idx].SpawnedAt = s.Elapsed()
	g.pending = append(g.pending, idx)
	if len(g.pending) < 2 {
		return nil
	}

	g.moves++
	s.SetStat("moves", float64(g.moves))
	first, second := g.pending[0], g.pending[1]
	if g.cards[first].Label != g.cards[second].Label {
		s.Cue(core.CueMiss)
		s.After(time.Duration(g.cfg.FlipBackMs)*time.Millisecond, kindUnflip, g.moves)
		return nil
	}

	g.cards[first].State = core.EntityMatched
	g.cards[second].State = core.EntityMatched
	g.pending = g.pending[:0]
	g.matched++
	s.AddScore(1)
	s.Cue(core.CueSuccess)
	if 2*g.matched == len(g.cards) {
		s.End(core.ReasonCompleted)
	}
	return nil
}

// Timer turns a mismatched pair face down again.
func (g *Game) Timer(s *engine.Session, kind clock.Kind, arg int) error {
	if kind != kindUnflip || len(g.pending) != 2 || arg != g.moves {
		return fmt.Errorf("memory-match: timer %s(%d): %w", kind, arg, core.ErrInvalidTransition)
	}
	for _, idx := range g.pending {
		g.cards[idx].State = core.EntityHidden
	}
	g.pending = g.pending[:0]
	return nil
}

// Result records the elapsed seconds of a completed board.
func (g *Game) Result(s *engine.Session) (float64, bool) {
	if s.Reason() != core.ReasonCompleted {
		return 0, false
	}
	return float64(s.ElapsedTicks()), true
}

// Entities returns every card in deck order.
func (g *Game) Entities() []core.Entity {
	return g.cards
}

// Moves returns the number of pair comparisons made.
func (g *Game) Moves() int {
	return g.moves
}
