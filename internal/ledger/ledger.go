// Package ledger keeps the best result per game and mode. It compares a
// finished session's value against the stored best under the key's
// direction and writes only on strict improvement.
package ledger

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-minigames/internal/core"
)

// Direction says which way a result improves.
type Direction int

const (
	HigherIsBetter Direction = iota // score, level, cps, wpm
	LowerIsBetter                   // time, reaction latency
)

func (d Direction) String() string {
	if d == LowerIsBetter {
		return "lower-is-better"
	}
	return "higher-is-better"
}

// Better reports whether candidate strictly improves on current.
func (d Direction) Better(candidate, current float64) bool {
	if d == LowerIsBetter {
		return candidate < current
	}
	return candidate > current
}

// Store is the persistent key-value backend. A missing key reports
// ok == false with a nil error.
type Store interface {
	Best(key string) (value float64, ok bool, err error)
	SetBest(key string, value float64) error
}

// Record is a best value for one key.
type Record struct {
	Key       string
	Value     float64
	Direction Direction
}

// Outcome describes the effect of RecordIfBetter.
type Outcome struct {
	Best      float64 // Best value after the call
	Previous  float64 // Best before the call; meaningless when !HadRecord
	HadRecord bool
	Improved  bool // Candidate became the new best
	Persisted bool // New best reached the store
}

// Key returns the storage key for a game and mode.
func Key(game, mode string) string {
	return game + "-best-" + mode
}

// Ledger compares results against persisted bests. When the store fails it
// keeps bests in memory so gameplay is never blocked.
type Ledger struct {
	store  Store
	logger *log.Logger

	mu  sync.Mutex
	mem map[string]float64 // Bests the store failed to accept or return
}

// New creates a ledger over store. A nil store keeps bests in memory only.
func New(store Store, logger *log.Logger) *Ledger {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Ledger{
		store:  store,
		logger: logger,
		mem:    make(map[string]float64),
	}
}

// Best returns the current best for key. A store failure falls back to the
// in-memory value and reports an error wrapping
// core.ErrPersistenceUnavailable.
func (l *Ledger) Best(key string, dir Direction) (float64, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.best(key, dir)
}

func (l *Ledger) best(key string, dir Direction) (float64, bool, error) {
	memVal, memOK := l.mem[key]
	if l.store == nil {
		return memVal, memOK, nil
	}

	val, ok, err := l.store.Best(key)
	if err != nil {
		l.logger.Warn("best score store unavailable, using memory", "key", key, "error", err)
		return memVal, memOK, fmt.Errorf("ledger: read %s: %w: %w", key, core.ErrPersistenceUnavailable, err)
	}
	switch {
	case ok && memOK:
		if dir.Better(memVal, val) {
			return memVal, true, nil
		}
		return val, true, nil
	case ok:
		return val, true, nil
	default:
		return memVal, memOK, nil
	}
}

// RecordIfBetter stores candidate under key when there is no record yet or
// when candidate strictly beats the current best in direction dir. The
// returned Outcome is valid even when the error is non-nil; errors wrap
// core.ErrPersistenceUnavailable. While the store cannot be read, bests
// are compared and kept in memory only.
func (l *Ledger) RecordIfBetter(key string, candidate float64, dir Direction) (Outcome, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	current, ok, readErr := l.best(key, dir)
	out := Outcome{Best: current, Previous: current, HadRecord: ok}
	if ok && !dir.Better(candidate, current) {
		return out, readErr
	}

	out.Best = candidate
	out.Improved = true

	if l.store == nil {
		l.mem[key] = candidate
		return out, readErr
	}
	if readErr != nil {
		// The durable best is unknown, so the store is left untouched.
		l.mem[key] = candidate
		l.logger.Warn("best score kept in memory until the store is readable",
			"key", key, "value", candidate)
		return out, readErr
	}
	if err := l.store.SetBest(key, candidate); err != nil {
		l.mem[key] = candidate
		l.logger.Warn("could not persist best score, keeping it in memory",
			"key", key, "value", candidate, "error", err)
		return out, errors.Join(readErr,
			fmt.Errorf("ledger: write %s: %w: %w", key, core.ErrPersistenceUnavailable, err))
	}
	delete(l.mem, key)
	out.Persisted = true
	return out, readErr
}
