// Package random produces the pseudo-random entities games spawn: positions,
// slots, sequence steps, sentences and shuffled decks. Every draw comes from
// a seeded source so a session replays exactly from its seed.
package random

import (
	"encoding/binary"
	"math/rand"

	"github.com/cespare/xxhash/v2"

	"github.com/vovakirdan/tui-minigames/internal/core"
)

// maxTries bounds re-draws before falling back to an exhaustive scan.
const maxTries = 32

// Generator draws game entities from a seeded source.
type Generator struct {
	rng *rand.Rand
}

// New creates a generator seeded with seed.
func New(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// DeriveSeed mixes a base seed with a game id and session generation so
// consecutive sessions of the same game draw different sequences while the
// whole run stays reproducible from the base seed.
func DeriveSeed(base int64, gameID string, gen uint64) int64 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], uint64(base))
	binary.LittleEndian.PutUint64(buf[8:], gen)

	d := xxhash.New()
	_, _ = d.Write(buf[:])
	_, _ = d.WriteString(gameID)
	return int64(d.Sum64() >> 1)
}

// Intn returns a uniform value in [0, n). n <= 0 yields 0.
func (g *Generator) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return g.rng.Intn(n)
}

// Between returns a uniform value in [lo, hi].
func (g *Generator) Between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + g.rng.Intn(hi-lo+1)
}

// PointIn returns a uniform point with 0 <= X < w and 0 <= Y < h.
func (g *Generator) PointIn(w, h int) core.Point {
	return core.Point{X: g.Intn(w), Y: g.Intn(h)}
}

// PickExcept returns a uniform index in [0, n) different from last.
// When last is out of range every index is eligible; with a single option
// that option is returned.
func (g *Generator) PickExcept(n, last int) int {
	if n <= 1 {
		return 0
	}
	if last < 0 || last >= n {
		return g.rng.Intn(n)
	}
	v := g.rng.Intn(n - 1)
	if v >= last {
		v++
	}
	return v
}

// PickString returns a pool entry different from last when the pool holds
// any other entry.
func (g *Generator) PickString(pool []string, last string) string {
	if len(pool) == 0 {
		return ""
	}
	for range maxTries {
		if s := pool[g.rng.Intn(len(pool))]; s != last {
			return s
		}
	}
	var rest []string
	for _, s := range pool {
		if s != last {
			rest = append(rest, s)
		}
	}
	if len(rest) == 0 {
		return last
	}
	return rest[g.rng.Intn(len(rest))]
}

// FreeCell returns a uniform cell of a w×h grid for which occupied reports
// false. It re-draws a bounded number of times, then scans every cell so a
// nearly full board still terminates. A full board yields
// core.ErrExhaustedPlacement.
func (g *Generator) FreeCell(w, h int, occupied func(core.Point) bool) (core.Point, error) {
	if w <= 0 || h <= 0 {
		return core.Point{}, core.ErrExhaustedPlacement
	}
	for range maxTries {
		p := g.PointIn(w, h)
		if !occupied(p) {
			return p, nil
		}
	}

	var free []core.Point
	for y := range h {
		for x := range w {
			p := core.Point{X: x, Y: y}
			if !occupied(p) {
				free = append(free, p)
			}
		}
	}
	if len(free) == 0 {
		return core.Point{}, core.ErrExhaustedPlacement
	}
	return free[g.rng.Intn(len(free))], nil
}

// Shuffle permutes n elements in place with a Fisher-Yates shuffle.
func (g *Generator) Shuffle(n int, swap func(i, j int)) {
	g.rng.Shuffle(n, swap)
}
