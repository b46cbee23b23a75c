// Package clock abstracts time for game sessions. A Clock schedules one-shot
// and periodic timers and reports each expiry as a Fired event tagged with
// the Token supplied at scheduling time. Consumers reconcile Fired events
// against their own state, so a stopped or stale timer is always harmless.
package clock

import (
	"fmt"
	"time"
)

// Kind names what a timer is for (tick, expire, reveal, ...).
type Kind string

// KindTick is the kind used for a session's periodic tick.
const KindTick Kind = "tick"

// Token identifies a scheduled callback. Gen is the session generation that
// scheduled it; Seq is unique per clock.
type Token struct {
	Gen  uint64
	Kind Kind
	Arg  int
	Seq  uint64
}

func (t Token) String() string {
	return fmt.Sprintf("%s#%d(gen=%d,arg=%d)", t.Kind, t.Seq, t.Gen, t.Arg)
}

// Fired is delivered when a timer expires.
type Fired struct {
	Token Token
	At    time.Duration // Clock time of the expiry
}

// Timer is a handle to a scheduled callback.
type Timer interface {
	// Stop cancels the timer. It reports whether the timer was still pending.
	Stop() bool
	// Token returns the token the timer fires with.
	Token() Token
}

// Clock schedules timers and reports the current monotonic time.
// Implementations never invoke game logic directly; they only produce Fired
// events for a single consumer.
type Clock interface {
	// Now returns the time elapsed since the clock was created.
	Now() time.Duration
	// After fires tok once after d.
	After(d time.Duration, tok Token) Timer
	// Every fires tok every period until stopped.
	Every(period time.Duration, tok Token) Timer
}
