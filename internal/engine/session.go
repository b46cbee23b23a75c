package engine

import (
	"maps"
	"time"

	"github.com/vovakirdan/tui-minigames/internal/clock"
	"github.com/vovakirdan/tui-minigames/internal/core"
	"github.com/vovakirdan/tui-minigames/internal/random"
)

// Session is the mutable state of one play-through. Rules mutate it through
// its methods; the Machine owns its lifecycle.
type Session struct {
	m *Machine

	id     string
	gen    uint64
	mode   string
	status core.Status
	phase  core.Phase
	reason core.Reason

	startedAt    time.Duration
	endedAt      time.Duration
	elapsedTicks int
	timeLeft     int
	score        int
	failures     int
	params       core.Params
	board        core.Point
	input        string
	stats        map[string]float64
	cues         []core.Cue

	rng *random.Generator
}

func (s *Session) ID() string { return s.id }
func (s *Session) Mode() string { return s.mode }
func (s *Session) Generation() uint64 { return s.gen }
func (s *Session) Status() core.Status { return s.status }
func (s *Session) Phase() core.Phase { return s.phase }
func (s *Session) Reason() core.Reason { return s.reason }
func (s *Session) Score() int { return s.score }
func (s *Session) Failures() int { return s.failures }
func (s *Session) ElapsedTicks() int { return s.elapsedTicks }
func (s *Session) TimeLeft() int { return s.timeLeft }
func (s *Session) Params() core.Params { return s.params }
func (s *Session) Rand() *random.Generator { return s.rng }

// Running reports whether the session still accepts events.
func (s *Session) Running() bool {
	return s.status == core.StatusRunning
}

// Now returns the clock time.
func (s *Session) Now() time.Duration {
	return s.m.clock.Now()
}

// Elapsed returns the time since the session started, frozen once it ends.
func (s *Session) Elapsed() time.Duration {
	if s.status == core.StatusEnded {
		return s.endedAt - s.startedAt
	}
	return s.Now() - s.startedAt
}

// AddScore increases the score. Scores never decrease.
func (s *Session) AddScore(n int) {
	if n > 0 {
		s.score += n
	}
}

// Fail counts one failure.
func (s *Session) Fail() {
	s.failures++
}

// End finishes the session. Only the first call has an effect; the Machine
// records the result after the current rule call returns.
func (s *Session) End(reason core.Reason) {
	if s.status != core.StatusRunning {
		return
	}
	s.status = core.StatusEnded
	s.reason = reason
	s.endedAt = s.Now()
}

// SetPhase changes the game-specific sub-state.
func (s *Session) SetPhase(p core.Phase) {
	s.phase = p
}

// SetBoard declares the board dimensions shown to renderers.
func (s *Session) SetBoard(w, h int) {
	s.board = core.Point{X: w, Y: h}
}

// SetInput stores the pending text buffer.
func (s *Session) SetInput(text string) {
	s.input = text
}

// SetStat publishes a derived metric.
func (s *Session) SetStat(name string, v float64) {
	s.stats[name] = v
}

// Stat returns a previously published metric.
func (s *Session) Stat(name string) float64 {
	return s.stats[name]
}

// Cue queues a presentation cue for the next snapshot.
func (s *Session) Cue(c core.Cue) {
	s.cues = append(s.cues, c)
}

// After schedules a one-shot timer for this session. The returned token can
// be passed to Cancel.
func (s *Session) After(d time.Duration, kind clock.Kind, arg int) clock.Token {
	return s.m.schedule(d, kind, arg)
}

// Cancel stops a timer scheduled with After. Cancelling a timer that
// already fired is a no-op.
func (s *Session) Cancel(tok clock.Token) {
	s.m.cancel(tok.Seq)
}

func (s *Session) snapshot(drain bool) core.Snapshot {
	snap := core.Snapshot{
		SessionID:    s.id,
		Mode:         s.mode,
		Generation:   s.gen,
		Status:       s.status,
		Phase:        s.phase,
		Reason:       s.reason,
		ElapsedTicks: s.elapsedTicks,
		Elapsed:      s.Elapsed(),
		TimeLeft:     s.timeLeft,
		Score:        s.score,
		Failures:     s.failures,
		Board:        s.board,
		Params:       s.params,
		Input:        s.input,
		Stats:        maps.Clone(s.stats),
	}
	if len(s.cues) > 0 {
		snap.Cues = append([]core.Cue(nil), s.cues...)
		if drain {
			s.cues = s.cues[:0]
		}
	}
	return snap
}
