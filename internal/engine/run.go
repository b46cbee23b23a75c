package engine

import (
	"context"

	"github.com/vovakirdan/tui-minigames/internal/clock"
	"github.com/vovakirdan/tui-minigames/internal/core"
)

// Run drives m from a single goroutine until ctx is cancelled or inputs is
// closed. Clock events that are already due are applied before each input,
// so an expiry and a click in the same turn resolve in the expiry's favour.
// Run stops the machine on return.
func Run(ctx context.Context, m *Machine, events <-chan clock.Fired, inputs <-chan core.Action) error {
	defer m.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			m.Fire(ev)
		case a, ok := <-inputs:
			if !ok {
				return nil
			}
			Drain(m, events)
			m.Submit(a)
		}
	}
}

// Drain applies every clock event already queued on events.
func Drain(m *Machine, events <-chan clock.Fired) {
	for {
		select {
		case ev := <-events:
			m.Fire(ev)
		default:
			return
		}
	}
}
