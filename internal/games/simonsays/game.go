// Package simonsays implements Simon Says: watch a growing color sequence,
// then repeat it pad by pad.
package simonsays

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
const ID = "simon-says"

const (
	PhasePlayback core.Phase = "playback" // Sequence is shown; input is ignored
	PhaseInput    core.Phase = "input"    // Player repeats the sequence

	kindStep   clock.Kind = "step"
	kindUnlit  clock.Kind = "unlit"
	kindUnlock clock.Kind = "unlock"
)

var modes = []string{"normal", "hard"}

// Colors names the pads in order.
var Colors = []string{"red", "green", "blue", "yellow", "purple", "pink"}

// Game implements engine.Rules for Simon Says.
type Game struct {
	cfg    config.SimonConfig
	policy config.Policy

	pads     int
	sequence []int
	progress int // Pads repeated correctly in this round
	lit      int // Lit pad, -1 when none
	litStep  int // Playback index that lit it
}

// New creates a Simon Says game from its configuration.
func New(cfg config.SimonConfig) *Game {
	return &Game{cfg: cfg, policy: config.NewPolicy(cfg.Difficulty), lit: -1}
}

func init() {
	registry.Register(registry.GameInfo{
		ID:          ID,
		Title:       "Simon Says",
		Description: "Repeat the color pattern correctly.",
		Difficulty:  "Medium",
		Modes:       modes,
	}, func(opts registry.Options) (engine.Rules, error) {
		cfg, err := config.LoadSimon(opts.ConfigPath, opts.Preset)
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
	}
}

// Params returns the playback step period and pad count.
func (g *Game) Params(mode string, score int) core.Params {
	p := g.policy.At(score)
	p.Size = g.padCount(mode)
	return p
}

// Begin starts the first round. Its only step is shown after one step
// period.
func (g *Game) Begin(s *engine.Session) error {
	g.pads = g.padCount(s.Mode())
	if g.pads < 2 {
		return fmt.Errorf("simon-says: mode %q needs at least 2 pads, has %d", s.Mode(), g.pads)
	}
	g.sequence = g.sequence[:0]
	g.lit, g.litStep = -1, -1
	cols := 2
	if g.pads > 4 {
		cols = 3
	}
	s.SetBoard(cols, (g.pads+cols-1)/cols)
	g.nextRound(s, g.interval(s))
	return nil
}

// Tick is unused; playback runs on one-shot timers.
func (g *Game) Tick(s *engine.Session) error {
	return nil
}

// Input checks one pad press against the sequence.
func (g *Game) Input(s *engine.Session, a core.Action) error {
	if a.Kind != core.ActionSelect {
		return fmt.Errorf("simon-says: %s action: %w", a.Kind, core.ErrInvalidTransition)
	}
	if s.Phase() != PhaseInput {
		return fmt.Errorf("simon-says: input during %s: %w", s.Phase(), core.ErrInvalidTransition)
	}
	pad := a.Slot
	if pad < 0 {
		pad = a.Target
	}
	if pad < 0 || pad >= g.pads {
		return fmt.Errorf("simon-says: pad %d: %w", pad, core.ErrInvalidTransition)
	}

	if g.sequence[g.progress] != pad {
		s.Cue(core.CueFail)
		s.End(core.ReasonMismatch)
		return nil
	}

	s.Cue(core.CueHit)
	g.progress++
	s.SetStat("progress", float64(g.progress))
	if g.progress < len(g.sequence) {
		return nil
	}

	s.AddScore(1)
	s.Cue(core.CueSuccess)
	g.nextRound(s, time.Duration(g.cfg.RoundPauseMs)*time.Millisecond)
	return nil
}

// Timer drives playback: each step lights a pad, schedules its unlighting
// and the next step, and the last step schedules the unlock.
func (g *Game) Timer(s *engine.Session, kind clock.Kind, arg int) error {
	switch kind {
	case kindStep:
		if s.Phase() != PhasePlayback || arg < 0 || arg >= len(g.sequence) {
			break
		}
		g.lit, g.litStep = g.sequence[arg], arg
		s.After(time.Duration(g.cfg.LitMs)*time.Millisecond, kindUnlit, arg)
		if arg+1 < len(g.sequence) {
			s.After(g.interval(s), kindStep, arg+1)
		} else {
			s.After(time.Duration(g.cfg.UnlockMs)*time.Millisecond, kindUnlock, len(g.sequence))
		}
		return nil
	case kindUnlit:
		if arg == g.litStep {
			g.lit, g.litStep = -1, -1
		}
		return nil
	case kindUnlock:
		if s.Phase() == PhasePlayback && arg == len(g.sequence) {
			s.SetPhase(PhaseInput)
			return nil
		}
	}
	return fmt.Errorf("simon-says: timer %s(%d): %w", kind, arg, core.ErrInvalidTransition)
}

// Result records the number of completed rounds.
func (g *Game) Result(s *engine.Session) (float64, bool) {
	return float64(s.Score()), true
}

// Entities returns the pads. The lit pad is in the lit state.
func (g *Game) Entities() []core.Entity {
	out := make([]core.Entity, g.pads)
	for i := range out {
		state := core.EntityActive
		if i == g.lit {
			state = core.EntityLit
		}
		out[i] = core.Entity{ID: i, Slot: i, Label: Colors[i%len(Colors)], State: state}
	}
	return out
}

// Sequence returns a copy of the current sequence.
func (g *Game) Sequence() []int {
	return append([]int(nil), g.sequence...)
}

// nextRound extends the sequence by one pad that differs from the previous
// one and schedules its playback.
func (g *Game) nextRound(s *engine.Session, delay time.Duration) {
	last := -1
	if n := len(g.sequence); n > 0 {
		last = g.sequence[n-1]
	}
	g.sequence = append(g.sequence, s.Rand().PickExcept(g.pads, last))
	g.progress = 0
	s.SetPhase(PhasePlayback)
	s.SetStat("length", float64(len(g.sequence)))
	s.SetStat("progress", 0)
	s.After(delay, kindStep, 0)
}

func (g *Game) interval(s *engine.Session) time.Duration {
	return g.policy.At(s.Score()).Interval()
}

func (g *Game) padCount(mode string) int {
	if n, ok := g.cfg.Pads[mode]; ok {
		return min(n, len(Colors))
	}
	return 4
}
