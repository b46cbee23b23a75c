package clock

import (
	"sync"
	"sync/atomic"
	"time"
)

// Real is a wall clock. Expiries are queued on C() and must be consumed by a
// single goroutine, which keeps all session mutations on one timeline.
// Drivers that cannot block on C() wait on Ready() and drain C() themselves.
type Real struct {
	start  time.Time
	events chan Fired
	wake   chan struct{}
	done   chan struct{}
	once   sync.Once
	seq    atomic.Uint64
}

type realTimer struct {
	tok     Token
	stopped atomic.Bool
	timer   *time.Timer   // one-shot
	stop    chan struct{} // periodic
}

func (t *realTimer) Token() Token { return t.tok }

func (t *realTimer) Stop() bool {
	if !t.stopped.CompareAndSwap(false, true) {
		return false
	}
	if t.timer != nil {
		return t.timer.Stop()
	}
	close(t.stop)
	return true
}

// NewReal creates a wall clock whose event queue holds buffer events.
func NewReal(buffer int) *Real {
	if buffer < 1 {
		buffer = 64
	}
	return &Real{
		start:  time.Now(),
		events: make(chan Fired, buffer),
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
}

// C returns the channel expiries are delivered on.
func (r *Real) C() <-chan Fired {
	return r.events
}

// Ready signals after an expiry has been queued on C(). Signals coalesce:
// one receive may stand for several queued events, or for none if they were
// already drained.
func (r *Real) Ready() <-chan struct{} {
	return r.wake
}

// Done is closed by Close.
func (r *Real) Done() <-chan struct{} {
	return r.done
}

// Now returns the wall time elapsed since the clock was created.
func (r *Real) Now() time.Duration {
	return time.Since(r.start)
}

// After schedules tok to fire once after d.
func (r *Real) After(d time.Duration, tok Token) Timer {
	tok.Seq = r.seq.Add(1)
	t := &realTimer{tok: tok}
	t.timer = time.AfterFunc(d, func() {
		if t.stopped.CompareAndSwap(false, true) {
			r.emit(Fired{Token: tok, At: r.Now()})
		}
	})
	return t
}

// Every schedules tok to fire every period until stopped.
func (r *Real) Every(period time.Duration, tok Token) Timer {
	if period <= 0 {
		panic("clock: Every requires a positive period")
	}
	tok.Seq = r.seq.Add(1)
	t := &realTimer{tok: tok, stop: make(chan struct{})}
	go func() {
		ticker := time.NewTicker(period)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if t.stopped.Load() {
					return
				}
				r.emit(Fired{Token: tok, At: r.Now()})
			case <-t.stop:
				return
			case <-r.done:
				return
			}
		}
	}()
	return t
}

// Close releases goroutines blocked on delivery. Timers scheduled after
// Close never deliver.
func (r *Real) Close() {
	r.once.Do(func() { close(r.done) })
}

func (r *Real) emit(ev Fired) {
	select {
	case r.events <- ev:
	case <-r.done:
		return
	}
	select {
	case r.wake <- struct{}{}:
	default:
	}
}
