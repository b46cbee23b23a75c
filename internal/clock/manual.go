package clock

import (
	"sort"
	"time"
)

// Manual is a virtual clock driven explicitly by Advance. It is
// deterministic and is what tests and replays run on.
type Manual struct {
	now    time.Duration
	seq    uint64
	timers []*manualTimer
}

type manualTimer struct {
	clock  *Manual
	tok    Token
	due    time.Duration
	period time.Duration
	done   bool
}

func (t *manualTimer) Token() Token { return t.tok }

func (t *manualTimer) Stop() bool {
	if t.done {
		return false
	}
	t.done = true
	t.clock.remove(t)
	return true
}

// NewManual creates a manual clock at time zero.
func NewManual() *Manual {
	return &Manual{}
}

// Now returns the virtual time.
func (m *Manual) Now() time.Duration {
	return m.now
}

// After schedules tok to fire once, d from now.
func (m *Manual) After(d time.Duration, tok Token) Timer {
	if d < 0 {
		d = 0
	}
	return m.add(tok, m.now+d, 0)
}

// Every schedules tok to fire every period, starting one period from now.
func (m *Manual) Every(period time.Duration, tok Token) Timer {
	if period <= 0 {
		panic("clock: Every requires a positive period")
	}
	return m.add(tok, m.now+period, period)
}

func (m *Manual) add(tok Token, due, period time.Duration) *manualTimer {
	m.seq++
	tok.Seq = m.seq
	t := &manualTimer{clock: m, tok: tok, due: due, period: period}
	m.timers = append(m.timers, t)
	return t
}

func (m *Manual) remove(t *manualTimer) {
	for i, other := range m.timers {
		if other == t {
			m.timers = append(m.timers[:i], m.timers[i+1:]...)
			return
		}
	}
}

// Pending returns the number of scheduled timers.
func (m *Manual) Pending() int {
	return len(m.timers)
}

// Advance moves the clock forward by d, delivering every timer that comes
// due in time order. Timers scheduled by deliver itself fire within the same
// call when they fall inside the window. Ties fire in scheduling order.
func (m *Manual) Advance(d time.Duration, deliver func(Fired)) {
	target := m.now + d
	for {
		t := m.next(target)
		if t == nil {
			break
		}
		m.now = t.due
		if t.period > 0 {
			t.due += t.period
		} else {
			t.done = true
			m.remove(t)
		}
		if deliver != nil {
			deliver(Fired{Token: t.tok, At: m.now})
		}
	}
	m.now = target
}

// next returns the earliest timer due at or before limit.
func (m *Manual) next(limit time.Duration) *manualTimer {
	if len(m.timers) == 0 {
		return nil
	}
	sort.SliceStable(m.timers, func(i, j int) bool {
		if m.timers[i].due != m.timers[j].due {
			return m.timers[i].due < m.timers[j].due
		}
		return m.timers[i].tok.Seq < m.timers[j].tok.Seq
	})
	if m.timers[0].due > limit {
		return nil
	}
	return m.timers[0]
}
