package engine

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-minigames/internal/clock"
	"github.com/vovakirdan/tui-minigames/internal/core"
	"github.com/vovakirdan/tui-minigames/internal/ledger"
	"github.com/vovakirdan/tui-minigames/internal/random"
)

// Option configures a Machine.
type Option func(*Machine)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *log.Logger) Option {
	return func(m *Machine) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithSeed fixes the base seed so sessions replay exactly.
func WithSeed(seed int64) Option {
	return func(m *Machine) {
		m.seed = seed
	}
}

// WithObserver registers a callback that receives a snapshot after every
// mutation.
func WithObserver(fn func(core.Snapshot)) Option {
	return func(m *Machine) {
		m.observer = fn
	}
}

// WithHistory appends every finished session to h.
func WithHistory(h HistorySaver) Option {
	return func(m *Machine) {
		m.history = h
	}
}

// Machine is the session state machine for one game. It is not safe for
// concurrent use; a single driver goroutine feeds it inputs and clock events.
type Machine struct {
	rules    Rules
	info     Info
	clock    clock.Clock
	ledger   *ledger.Ledger
	logger   *log.Logger
	seed     int64
	observer func(core.Snapshot)
	history  HistorySaver

	gen        uint64
	session    *Session
	timers     map[uint64]clock.Timer // Outstanding one-shots by seq
	tick       clock.Timer
	tickPeriod time.Duration

	best    float64
	hasBest bool
	newBest bool
	result  float64
}

// New creates a machine for rules. A nil ledger keeps bests in memory.
func New(rules Rules, clk clock.Clock, led *ledger.Ledger, opts ...Option) *Machine {
	m := &Machine{
		rules:  rules,
		info:   rules.Info(),
		clock:  clk,
		logger: log.New(io.Discard),
		seed:   time.Now().UnixNano(),
		timers: make(map[uint64]clock.Timer),
	}
	for _, opt := range opts {
		opt(m)
	}
	if led == nil {
		led = ledger.New(nil, m.logger)
	}
	m.ledger = led
	return m
}

// Info returns the game description.
func (m *Machine) Info() Info {
	return m.info
}

// Generation returns the current session generation. It increases on every
// Start.
func (m *Machine) Generation() uint64 {
	return m.gen
}

// Start begins a new session in mode; an empty mode selects the default.
// A running session is aborted first.
func (m *Machine) Start(mode string) (core.Snapshot, error) {
	if mode == "" {
		mode = m.info.DefaultMode()
	}
	if !m.info.HasMode(mode) {
		return m.peek(), fmt.Errorf("engine: %s has no mode %q", m.info.ID, mode)
	}

	if m.session != nil && m.session.Running() {
		m.session.End(core.ReasonAborted)
		m.finish()
	}
	m.cancelAll()

	m.gen++
	s := &Session{
		m:         m,
		id:        uuid.NewString(),
		gen:       m.gen,
		mode:      mode,
		status:    core.StatusRunning,
		startedAt: m.clock.Now(),
		timeLeft:  m.info.Countdown,
		stats:     make(map[string]float64),
		rng:       random.New(random.DeriveSeed(m.seed, m.info.ID, m.gen)),
	}
	s.params = m.rules.Params(mode, 0)
	m.session = s
	m.result = 0
	m.newBest = false

	best, ok, err := m.ledger.Best(m.key(), m.info.Direction)
	if err != nil {
		m.logger.Warn("best score unavailable", "key", m.key(), "err", err)
	}
	m.best, m.hasBest = best, ok

	m.logger.Debug("session started", "game", m.info.ID, "mode", mode, "gen", m.gen, "id", s.id)

	m.handle(m.rules.Begin(s))
	if s.Running() {
		m.startTick()
	}
	m.settle()
	return m.emit(), nil
}

// Submit applies a player action. Actions outside a running session are
// ignored and leave the session untouched.
func (m *Machine) Submit(a core.Action) core.Snapshot {
	if m.session == nil || !m.session.Running() {
		return m.peek()
	}
	m.handle(m.rules.Input(m.session, a))
	m.settle()
	return m.emit()
}

// Fire delivers a clock event. Events from an earlier generation, for a
// cancelled timer, or outside a running session are ignored.
func (m *Machine) Fire(ev clock.Fired) core.Snapshot {
	s := m.session
	tok := ev.Token
	if s == nil || !s.Running() || tok.Gen != m.gen {
		m.logger.Debug("stale event ignored", "token", tok)
		return m.peek()
	}

	if tok.Kind == clock.KindTick {
		if m.tick == nil || m.tick.Token().Seq != tok.Seq {
			m.logger.Debug("stale tick ignored", "token", tok)
			return m.peek()
		}
		m.onTick(s)
	} else {
		if _, ok := m.timers[tok.Seq]; !ok {
			m.logger.Debug("cancelled timer ignored", "token", tok)
			return m.peek()
		}
		delete(m.timers, tok.Seq)
		m.handle(m.rules.Timer(s, tok.Kind, tok.Arg))
	}
	m.settle()
	return m.emit()
}

// Stop aborts a running session and cancels all of its timers. No result is
// recorded.
func (m *Machine) Stop() core.Snapshot {
	if m.session == nil {
		return m.peek()
	}
	if m.session.Running() {
		m.session.End(core.ReasonAborted)
		m.finish()
	}
	m.cancelAll()
	return m.emit()
}

// Snapshot returns the current state and drains pending cues.
func (m *Machine) Snapshot() core.Snapshot {
	return m.snapshot(true)
}

// Pending returns the number of outstanding timers, the tick included.
func (m *Machine) Pending() int {
	n := len(m.timers)
	if m.tick != nil {
		n++
	}
	return n
}

func (m *Machine) onTick(s *Session) {
	s.elapsedTicks++
	if m.info.Countdown > 0 {
		s.timeLeft--
		if s.timeLeft <= 0 {
			s.timeLeft = 0
			s.End(core.ReasonTimeout)
			return
		}
	}
	s.params = m.rules.Params(s.mode, s.score)
	m.handle(m.rules.Tick(s))
}

// handle maps a rule error onto the session.
func (m *Machine) handle(err error) {
	if err == nil {
		return
	}
	s := m.session
	switch {
	case errors.Is(err, core.ErrInvalidTransition):
		m.logger.Debug("event ignored", "game", m.info.ID, "err", err)
	case errors.Is(err, core.ErrExhaustedPlacement):
		m.logger.Info("no free placement left", "game", m.info.ID, "gen", s.gen)
		s.End(core.ReasonExhausted)
	default:
		m.logger.Error("rule failed", "game", m.info.ID, "gen", s.gen, "err", err)
		s.End(core.ReasonFault)
	}
}

// settle finishes an ended session or brings params and the tick period up
// to date with the score.
func (m *Machine) settle() {
	s := m.session
	if s.status == core.StatusEnded {
		m.finish()
		return
	}
	s.params = m.rules.Params(s.mode, s.score)
	if m.info.TickFromParams && m.tick != nil && s.params.Interval() != m.tickPeriod {
		m.startTick()
	}
}

// finish cancels timers and records the result of an ended session. It runs
// once per session. Faulted sessions go to history unrecorded.
func (m *Machine) finish() {
	s := m.session
	m.cancelAll()

	if s.reason == core.ReasonAborted {
		m.logger.Debug("session aborted", "game", m.info.ID, "gen", s.gen)
		return
	}

	result, ok := m.rules.Result(s)
	if s.reason == core.ReasonFault {
		ok = false
	}
	m.result = result
	if ok {
		out, err := m.ledger.RecordIfBetter(m.key(), result, m.info.Direction)
		if err != nil {
			m.logger.Warn("best score not persisted", "key", m.key(), "err", err)
		}
		m.best, m.hasBest, m.newBest = out.Best, true, out.Improved
	}

	m.logger.Info("session ended",
		"game", m.info.ID,
		"mode", s.mode,
		"reason", s.reason,
		"score", s.score,
		"result", result,
		"new_best", m.newBest,
	)

	if m.history != nil {
		sum := core.Summary{
			SessionID: s.id,
			Game:      m.info.ID,
			Mode:      s.mode,
			Score:     s.score,
			Failures:  s.failures,
			Result:    result,
			Recorded:  ok,
			Reason:    s.reason,
			Duration:  s.Elapsed(),
		}
		if err := m.history.SaveSession(sum); err != nil {
			m.logger.Warn("session history not saved", "id", s.id, "err", err)
		}
	}
}

func (m *Machine) key() string {
	return ledger.Key(m.info.ID, m.session.mode)
}

func (m *Machine) schedule(d time.Duration, kind clock.Kind, arg int) clock.Token {
	t := m.clock.After(d, clock.Token{Gen: m.gen, Kind: kind, Arg: arg})
	tok := t.Token()
	m.timers[tok.Seq] = t
	return tok
}

func (m *Machine) cancel(seq uint64) {
	if t, ok := m.timers[seq]; ok {
		t.Stop()
		delete(m.timers, seq)
	}
}

func (m *Machine) startTick() {
	m.stopTick()
	period := m.info.Tick
	if m.info.TickFromParams {
		period = m.session.params.Interval()
	}
	if period <= 0 {
		return
	}
	m.tickPeriod = period
	m.tick = m.clock.Every(period, clock.Token{Gen: m.gen, Kind: clock.KindTick})
}

func (m *Machine) stopTick() {
	if m.tick != nil {
		m.tick.Stop()
		m.tick = nil
	}
}

func (m *Machine) cancelAll() {
	m.stopTick()
	for seq, t := range m.timers {
		t.Stop()
		delete(m.timers, seq)
	}
}

func (m *Machine) emit() core.Snapshot {
	snap := m.snapshot(true)
	if m.observer != nil {
		m.observer(snap)
	}
	return snap
}

func (m *Machine) peek() core.Snapshot {
	return m.snapshot(false)
}

func (m *Machine) snapshot(drain bool) core.Snapshot {
	if m.session == nil {
		return core.Snapshot{
			Game:   m.info.ID,
			Mode:   m.info.DefaultMode(),
			Status: core.StatusIdle,
		}
	}
	snap := m.session.snapshot(drain)
	snap.Game = m.info.ID
	snap.Entities = append([]core.Entity(nil), m.rules.Entities()...)
	snap.Result = m.result
	snap.Best = m.best
	snap.HasBest = m.hasBest
	snap.NewBest = m.newBest
	return snap
}
