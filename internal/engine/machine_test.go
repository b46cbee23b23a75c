package engine

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/vovakirdan/tui-minigames/internal/clock"
	"github.com/vovakirdan/tui-minigames/internal/core"
	"github.com/vovakirdan/tui-minigames/internal/ledger"
)

// counterRules scores one point per click and fails once per expiry.
type counterRules struct {
	info     Info
	beginErr error
	inputErr error
	ticks    int
	expired  int
	last     clock.Token
}

func (r *counterRules) Info() Info { return r.info }

func (r *counterRules) Params(mode string, score int) core.Params {
	return core.Params{IntervalMs: max(100, 500-100*score), Size: 1}
}

func (r *counterRules) Begin(s *Session) error {
	r.ticks, r.expired = 0, 0
	r.last = s.After(time.Second, "expire", 7)
	return r.beginErr
}

func (r *counterRules) Tick(s *Session) error {
	r.ticks++
	return nil
}

func (r *counterRules) Input(s *Session, a core.Action) error {
	if r.inputErr != nil {
		return r.inputErr
	}
	if a.Kind == core.ActionClick {
		s.AddScore(1)
		s.Cue(core.CueHit)
	}
	return nil
}

func (r *counterRules) Timer(s *Session, kind clock.Kind, arg int) error {
	r.expired++
	s.Fail()
	return nil
}

func (r *counterRules) Entities() []core.Entity { return nil }

func (r *counterRules) Result(s *Session) (float64, bool) {
	return float64(s.Score()), true
}

type historyLog struct {
	sessions []core.Summary
}

func (h *historyLog) SaveSession(sum core.Summary) error {
	h.sessions = append(h.sessions, sum)
	return nil
}

func countdownInfo(secs int) Info {
	return Info{
		ID:        "counter",
		Modes:     []string{"default"},
		Direction: ledger.HigherIsBetter,
		Countdown: secs,
		Tick:      time.Second,
	}
}

func newTestMachine(rules *counterRules, opts ...Option) (*Machine, *clock.Manual, func(clock.Fired)) {
	clk := clock.NewManual()
	m := New(rules, clk, ledger.New(ledger.NewMemoryStore(), nil), append([]Option{WithSeed(1)}, opts...)...)
	return m, clk, func(ev clock.Fired) { m.Fire(ev) }
}

func TestStartRunsSession(t *testing.T) {
	m, _, _ := newTestMachine(&counterRules{info: countdownInfo(3)})

	if snap := m.Snapshot(); snap.Status != core.StatusIdle {
		t.Fatalf("expected idle before start, got %v", snap.Status)
	}

	snap, err := m.Start("")
	if err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	if snap.Status != core.StatusRunning || snap.Mode != "default" || snap.Generation != 1 {
		t.Errorf("unexpected snapshot %+v", snap)
	}
	if snap.TimeLeft != 3 {
		t.Errorf("TimeLeft = %d, expected 3", snap.TimeLeft)
	}
	if snap.SessionID == "" {
		t.Error("expected a session id")
	}
	if m.Pending() != 2 {
		t.Errorf("Pending() = %d, expected tick and expiry", m.Pending())
	}
}

func TestStartUnknownMode(t *testing.T) {
	m, _, _ := newTestMachine(&counterRules{info: countdownInfo(3)})
	if _, err := m.Start("insane"); err == nil {
		t.Error("expected error for unknown mode")
	}
	if m.Generation() != 0 {
		t.Error("failed start should not bump the generation")
	}
}

func TestCountdownTimeoutRecordsResult(t *testing.T) {
	rules := &counterRules{info: countdownInfo(3)}
	hist := &historyLog{}
	m, clk, fire := newTestMachine(rules, WithHistory(hist))

	m.Start("")
	m.Submit(core.Click())
	m.Submit(core.Click())
	clk.Advance(3*time.Second, fire)

	snap := m.Snapshot()
	if snap.Status != core.StatusEnded || snap.Reason != core.ReasonTimeout {
		t.Fatalf("expected timeout, got %v/%v", snap.Status, snap.Reason)
	}
	if snap.TimeLeft != 0 || snap.ElapsedTicks != 3 {
		t.Errorf("TimeLeft=%d ElapsedTicks=%d", snap.TimeLeft, snap.ElapsedTicks)
	}
	if snap.Result != 2 || !snap.HasBest || snap.Best != 2 || !snap.NewBest {
		t.Errorf("unexpected result %+v", snap)
	}
	if snap.Failures != 1 || rules.expired != 1 {
		t.Errorf("expected one expiry, got failures=%d", snap.Failures)
	}
	// The countdown-ending tick does not reach the rules.
	if rules.ticks != 2 {
		t.Errorf("rules saw %d ticks, expected 2", rules.ticks)
	}
	if m.Pending() != 0 {
		t.Errorf("timers left after end: %d", m.Pending())
	}
	if len(hist.sessions) != 1 || hist.sessions[0].Reason != core.ReasonTimeout || hist.sessions[0].Duration != 3*time.Second {
		t.Errorf("unexpected history %+v", hist.sessions)
	}
}

func TestBestNeverRegresses(t *testing.T) {
	m, clk, fire := newTestMachine(&counterRules{info: countdownInfo(1)})

	m.Start("")
	m.Submit(core.Click())
	m.Submit(core.Click())
	clk.Advance(time.Second, fire)

	m.Start("")
	m.Submit(core.Click())
	clk.Advance(time.Second, fire)

	snap := m.Snapshot()
	if snap.Result != 1 || snap.Best != 2 || snap.NewBest {
		t.Errorf("worse result should keep best: %+v", snap)
	}
	if snap.Generation != 2 {
		t.Errorf("Generation = %d, expected 2", snap.Generation)
	}
}

func TestSubmitIgnoredWhenNotRunning(t *testing.T) {
	calls := 0
	rules := &counterRules{info: countdownInfo(1)}
	m, clk, fire := newTestMachine(rules, WithObserver(func(core.Snapshot) { calls++ }))

	if snap := m.Submit(core.Click()); snap.Status != core.StatusIdle || snap.Score != 0 {
		t.Errorf("submit while idle mutated state: %+v", snap)
	}
	if calls != 0 {
		t.Errorf("observer notified %d times while idle", calls)
	}

	m.Start("")
	clk.Advance(time.Second, fire)
	before := m.Snapshot()
	calls = 0

	after := m.Submit(core.Click())
	if after.Score != before.Score || after.Status != core.StatusEnded {
		t.Errorf("submit after end mutated state: %+v", after)
	}
	if calls != 0 {
		t.Errorf("observer notified %d times after end", calls)
	}
}

func TestScoreMonotonic(t *testing.T) {
	m, clk, fire := newTestMachine(&counterRules{info: countdownInfo(10)})
	m.Start("")

	prev := 0
	for i := 0; i < 40; i++ {
		var snap core.Snapshot
		if i%3 == 0 {
			clk.Advance(250*time.Millisecond, fire)
			snap = m.Snapshot()
		} else {
			snap = m.Submit(core.Click())
		}
		if snap.Score < prev {
			t.Fatalf("score decreased from %d to %d", prev, snap.Score)
		}
		prev = snap.Score
	}
}

func TestStaleGenerationIgnored(t *testing.T) {
	rules := &counterRules{info: countdownInfo(30)}
	m, _, _ := newTestMachine(rules)

	m.Start("")
	stale := rules.last
	m.Start("")

	snap := m.Fire(clock.Fired{Token: stale, At: time.Second})
	if snap.Failures != 0 || rules.expired != 0 {
		t.Error("timer from previous generation reached the rules")
	}

	staleTick := clock.Token{Gen: 1, Kind: clock.KindTick, Seq: 2}
	if snap := m.Fire(clock.Fired{Token: staleTick}); snap.TimeLeft != 30 {
		t.Error("tick from previous generation advanced the countdown")
	}
}

func TestTimerDeliveredOnce(t *testing.T) {
	rules := &counterRules{info: countdownInfo(30)}
	m, _, _ := newTestMachine(rules)
	m.Start("")

	ev := clock.Fired{Token: rules.last, At: time.Second}
	m.Fire(ev)
	m.Fire(ev)
	if rules.expired != 1 {
		t.Errorf("timer delivered %d times", rules.expired)
	}
}

func TestTickRescheduledWhenParamsChange(t *testing.T) {
	rules := &counterRules{info: Info{ID: "counter", Modes: []string{"default"}, TickFromParams: true}}
	m, clk, fire := newTestMachine(rules)

	m.Start("")
	m.Submit(core.Click()) // interval 500ms -> 400ms
	clk.Advance(400*time.Millisecond, fire)
	if rules.ticks != 1 {
		t.Fatalf("expected 1 tick at the new period, got %d", rules.ticks)
	}

	clk.Advance(100*time.Millisecond, fire)
	if rules.ticks != 1 {
		t.Errorf("old period still ticking: %d ticks", rules.ticks)
	}
}

func TestRuleErrors(t *testing.T) {
	tests := []struct {
		name       string
		beginErr   error
		inputErr   error
		wantStatus core.Status
		wantReason core.Reason
		wantBest   bool
	}{
		{"exhausted on begin", core.ErrExhaustedPlacement, nil, core.StatusEnded, core.ReasonExhausted, true},
		{"invalid transition ignored", nil, fmt.Errorf("wrap: %w", core.ErrInvalidTransition), core.StatusRunning, core.ReasonNone, false},
		{"unexpected error faults", nil, errors.New("boom"), core.StatusEnded, core.ReasonFault, false},
		{"broken config faults on begin", errors.New("broken config"), nil, core.StatusEnded, core.ReasonFault, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			hist := &historyLog{}
			rules := &counterRules{info: countdownInfo(5), beginErr: tc.beginErr, inputErr: tc.inputErr}
			m, _, _ := newTestMachine(rules, WithHistory(hist))

			m.Start("")
			snap := m.Submit(core.Click())
			if snap.Status != tc.wantStatus || snap.Reason != tc.wantReason {
				t.Errorf("got %v/%q, expected %v/%q", snap.Status, snap.Reason, tc.wantStatus, tc.wantReason)
			}
			if snap.HasBest != tc.wantBest {
				t.Errorf("HasBest = %v, expected %v", snap.HasBest, tc.wantBest)
			}
			if tc.wantStatus == core.StatusEnded && m.Pending() != 0 {
				t.Errorf("timers left after end: %d", m.Pending())
			}
			if tc.wantReason == core.ReasonFault {
				if len(hist.sessions) != 1 || hist.sessions[0].Recorded {
					t.Errorf("faulted session should be saved unrecorded, got %+v", hist.sessions)
				}
			}
		})
	}
}

func TestStopAborts(t *testing.T) {
	hist := &historyLog{}
	m, clk, fire := newTestMachine(&counterRules{info: countdownInfo(5)}, WithHistory(hist))

	m.Start("")
	m.Submit(core.Click())
	snap := m.Stop()

	if snap.Reason != core.ReasonAborted || snap.HasBest {
		t.Errorf("unexpected snapshot after stop %+v", snap)
	}
	if m.Pending() != 0 {
		t.Errorf("timers left after stop: %d", m.Pending())
	}
	if len(hist.sessions) != 0 {
		t.Error("aborted session should not be saved")
	}

	clk.Advance(10*time.Second, fire)
	if got := m.Snapshot(); got.ElapsedTicks != 0 {
		t.Error("stopped session kept ticking")
	}
}

func TestCuesDrainedPerSnapshot(t *testing.T) {
	m, _, _ := newTestMachine(&counterRules{info: countdownInfo(5)})
	m.Start("")

	snap := m.Submit(core.Click())
	if len(snap.Cues) != 1 || snap.Cues[0] != core.CueHit {
		t.Fatalf("expected hit cue, got %v", snap.Cues)
	}
	if again := m.Snapshot(); len(again.Cues) != 0 {
		t.Errorf("cues not drained: %v", again.Cues)
	}
}

func TestRunDrainsClockBeforeInput(t *testing.T) {
	m, clk, _ := newTestMachine(&counterRules{info: countdownInfo(1)})
	m.Start("")

	events := make(chan clock.Fired, 8)
	clk.Advance(time.Second, func(ev clock.Fired) { events <- ev })

	inputs := make(chan core.Action, 1)
	inputs <- core.Click()
	close(inputs)

	if err := Run(context.Background(), m, events, inputs); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	snap := m.Snapshot()
	if snap.Reason != core.ReasonTimeout || snap.Score != 0 {
		t.Errorf("click should lose to the due timeout: %v score=%d", snap.Reason, snap.Score)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	m, _, _ := newTestMachine(&counterRules{info: countdownInfo(5)})
	m.Start("")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Run(ctx, m, make(chan clock.Fired), make(chan core.Action))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if snap := m.Snapshot(); snap.Reason != core.ReasonAborted {
		t.Errorf("expected aborted session, got %q", snap.Reason)
	}
}
