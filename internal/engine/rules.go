// Package engine runs timed game sessions. A Machine owns one session at a
// time and delegates game behaviour to a Rules strategy; all timing flows
// through a clock.Clock so sessions can be driven by a wall clock or a
// virtual one.
package engine

import (
	"time"

	"github.com/vovakirdan/tui-minigames/internal/clock"
	"github.com/vovakirdan/tui-minigames/internal/core"
	"github.com/vovakirdan/tui-minigames/internal/ledger"
)

// Info is the static description of a game.
type Info struct {
	ID        string
	Modes     []string // First entry is the default mode
	Direction ledger.Direction
	Countdown int           // Session length in one-second ticks; 0 = no countdown
	Tick      time.Duration // Fixed tick period
	// TickFromParams derives the tick period from Params.Interval and
	// reschedules the tick whenever it changes.
	TickFromParams bool
}

// HasMode reports whether mode is one of the game's modes.
func (i Info) HasMode(mode string) bool {
	for _, m := range i.Modes {
		if m == mode {
			return true
		}
	}
	return false
}

// DefaultMode returns the first mode, or "default" when none is declared.
func (i Info) DefaultMode() string {
	if len(i.Modes) == 0 {
		return "default"
	}
	return i.Modes[0]
}

// Rules is the per-game strategy a Machine delegates to.
//
// Methods are only called while the session is running. Returning
// core.ErrInvalidTransition means the event was ignored;
// core.ErrExhaustedPlacement ends the session; any other error is a fault.
type Rules interface {
	Info() Info
	// Params returns the difficulty parameters for a score.
	Params(mode string, score int) core.Params
	// Begin resets per-session state and spawns the opening entities.
	Begin(s *Session) error
	// Tick advances the game by one periodic tick.
	Tick(s *Session) error
	// Input applies a player action.
	Input(s *Session, a core.Action) error
	// Timer handles a one-shot timer scheduled through Session.After.
	Timer(s *Session, kind clock.Kind, arg int) error
	// Entities returns the current board contents.
	Entities() []core.Entity
	// Result returns the metric to record for an ended session and
	// whether it should be recorded at all.
	Result(s *Session) (float64, bool)
}

// HistorySaver appends finished sessions to a history log.
type HistorySaver interface {
	SaveSession(sum core.Summary) error
}
