// Package typingspeed implements the typing speed test: type sentence after
// sentence within the time limit and get scored in words per minute.
package typingspeed

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/vovakirdan/tui-minigames/internal/clock"
	"github.com/vovakirdan/tui-minigames/internal/config"
	"github.com/vovakirdan/tui-minigames/internal/core"
	"github.com/vovakirdan/tui-minigames/internal/engine"
	"github.com/vovakirdan/tui-minigames/internal/ledger"
	"github.com/vovakirdan/tui-minigames/internal/registry"
)

// ID is the registry identifier.
const ID = "typing-speed"

var modes = []string{"easy", "medium", "hard"}

// Game implements engine.Rules for the typing speed test.
type Game struct {
	cfg config.TypingConfig

	pool         []string
	target       string
	sentences    int
	correctChars int
	totalChars   int
}

// New creates a typing speed test from its configuration.
func New(cfg config.TypingConfig) *Game {
	if cfg.DurationSecs <= 0 {
		cfg.DurationSecs = config.DefaultTypingConfig().DurationSecs
	}
	return &Game{cfg: cfg}
}

func init() {
	registry.Register(registry.GameInfo{
		ID:          ID,
		Title:       "Typing Speed Test",
		Description: "Type continuously; new sentences appear automatically.",
		Difficulty:  "Medium",
		Modes:       modes,
	}, func(opts registry.Options) (engine.Rules, error) {
		cfg, err := config.LoadTyping(opts.ConfigPath)
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
		Direction: ledger.HigherIsBetter,
		Countdown: g.cfg.DurationSecs,
		Tick:      time.Second,
	}
}

// Params are constant for this game.
func (g *Game) Params(mode string, score int) core.Params {
	return core.Params{DecayRate: 1}
}

// Begin loads the first sentence.
func (g *Game) Begin(s *engine.Session) error {
	g.pool = g.cfg.Sentences[s.Mode()]
	if len(g.pool) == 0 {
		return fmt.Errorf("typing-speed: no sentences for mode %q", s.Mode())
	}
	g.sentences, g.correctChars, g.totalChars = 0, 0, 0
	g.target = s.Rand().PickString(g.pool, "")
	s.SetInput("")
	g.updateStats(s)
	return nil
}

// Tick refreshes the running words per minute.
func (g *Game) Tick(s *engine.Session) error {
	g.updateStats(s)
	return nil
}

// Input receives the whole input buffer after each keystroke. An exact match
// counts the sentence and loads the next one.
func (g *Game) Input(s *engine.Session, a core.Action) error {
	if a.Kind != core.ActionText {
		return fmt.Errorf("typing-speed: %s action: %w", a.Kind, core.ErrInvalidTransition)
	}
	s.SetInput(a.Text)
	if a.Text != g.target {
		return nil
	}

	g.correctChars += correctChars(g.target, a.Text)
	g.totalChars += utf8.RuneCountInString(g.target)
	g.sentences++
	s.AddScore(1)
	s.Cue(core.CueHit)

	g.target = s.Rand().PickString(g.pool, g.target)
	s.SetInput("")
	g.updateStats(s)
	return nil
}

// Timer is unused.
func (g *Game) Timer(s *engine.Session, kind clock.Kind, arg int) error {
	return fmt.Errorf("typing-speed: timer %s: %w", kind, core.ErrInvalidTransition)
}

// Result records words per minute.
func (g *Game) Result(s *engine.Session) (float64, bool) {
	g.updateStats(s)
	return s.Stat("wpm"), true
}

// Entities returns the sentence to type.
func (g *Game) Entities() []core.Entity {
	return []core.Entity{{ID: g.sentences, Slot: -1, Label: g.target, State: core.EntityActive}}
}

// Target returns the sentence to type.
func (g *Game) Target() string {
	return g.target
}

func (g *Game) updateStats(s *engine.Session) {
	minutes := float64(s.ElapsedTicks()) / 60
	s.SetStat("wpm", core.Rate(float64(g.totalChars)/5, minutes, 0))
	s.SetStat("accuracy", core.Percent(float64(g.correctChars), float64(g.totalChars), 100))
	s.SetStat("correct_chars", float64(g.correctChars))
	s.SetStat("total_chars", float64(g.totalChars))
}

// correctChars counts positions where typed matches target.
func correctChars(target, typed string) int {
	t, u := []rune(target), []rune(typed)
	n := 0
	for i := range t {
		if i < len(u) && t[i] == u[i] {
			n++
		}
	}
	return n
}
