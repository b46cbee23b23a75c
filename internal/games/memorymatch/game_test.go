package memorymatch

import (
	"testing"
	"time"

	"github.com/vovakirdan/tui-minigames/internal/clock"
	"github.com/vovakirdan/tui-minigames/internal/config"
	"github.com/vovakirdan/tui-minigames/internal/core"
	"github.com/vovakirdan/tui-minigames/internal/engine"
)

func start(t *testing.T, mode string, seed int64) (*Game, *engine.Machine, *clock.Manual) {
	t.Helper()
	g := New(config.DefaultMemoryConfig())
	clk := clock.NewManual()
	m := engine.New(g, clk, nil, engine.WithSeed(seed))
	if _, err := m.Start(mode); err != nil {
		t.Fatalf("Start(%q) error: %v", mode, err)
	}
	return g, m, clk
}

func advance(m *engine.Machine, clk *clock.Manual, d time.Duration) {
	clk.Advance(d, func(ev clock.Fired) { m.Fire(ev) })
}

// pairs groups card indexes by face.
func pairs(g *Game) map[string][]int {
	out := make(map[string][]int)
	for i, c := range g.cards {
		out[c.Label] = append(out[c.Label], i)
	}
	return out
}

// mismatch returns two cards with different faces.
func mismatch(g *Game) (int, int) {
	for i := 1; i < len(g.cards); i++ {
		if g.cards[i].Label != g.cards[0].Label {
			return 0, i
		}
	}
	return -1, -1
}

func TestDeal(t *testing.T) {
	tests := []struct {
		mode  string
		cards int
		board core.Point
	}{
		{"easy", 12, core.Point{X: 4, Y: 3}},
		{"medium", 20, core.Point{X: 5, Y: 4}},
		{"hard", 24, core.Point{X: 6, Y: 4}},
	}

	for _, tc := range tests {
		t.Run(tc.mode, func(t *testing.T) {
			g, m, _ := start(t, tc.mode, 1)
			snap := m.Snapshot()

			if len(snap.Entities) != tc.cards || snap.Board != tc.board {
				t.Fatalf("got %d cards on %+v", len(snap.Entities), snap.Board)
			}
			for face, idx := range pairs(g) {
				if len(idx) != 2 {
					t.Errorf("face %s appears %d times", face, len(idx))
				}
			}
			for _, c := range snap.Entities {
				if c.State != core.EntityHidden {
					t.Errorf("card %d dealt face up", c.ID)
				}
			}
		})
	}
}

func TestMatchStaysUp(t *testing.T) {
	g, m, _ := start(t, "easy", 2)
	p := pairs(g)[g.cards[0].Label]

	m.Submit(core.Select(p[0]))
	snap := m.Submit(core.Select(p[1]))

	if snap.Score != 1 || snap.Stats["moves"] != 1 {
		t.Errorf("score=%d moves=%v", snap.Score, snap.Stats["moves"])
	}
	if g.cards[p[0]].State != core.EntityMatched || g.cards[p[1]].State != core.EntityMatched {
		t.Error("matched pair should stay up")
	}
	if len(snap.Cues) != 1 || snap.Cues[0] != core.CueSuccess {
		t.Errorf("expected success cue, got %v", snap.Cues)
	}

	// Matched cards cannot be flipped again
	if snap := m.Submit(core.Select(p[0])); snap.Stats["moves"] != 1 {
		t.Error("matched card was flipped again")
	}
}

func TestMismatchTurnsBack(t *testing.T) {
	g, m, clk := start(t, "easy", 3)
	a, b := mismatch(g)

	m.Submit(core.Select(a))
	snap := m.Submit(core.Select(b))
	if snap.Score != 0 || len(snap.Cues) != 1 || snap.Cues[0] != core.CueMiss {
		t.Fatalf("expected miss, got score=%d cues=%v", snap.Score, snap.Cues)
	}

	// A third card is ignored while the pair is pending
	third := (b + 1) % len(g.cards)
	if third == a {
		third = (third + 1) % len(g.cards)
	}
	m.Submit(core.Select(third))
	if g.cards[third].State != core.EntityHidden {
		t.Error("third card flipped while a pair was pending")
	}

	advance(m, clk, 799*time.Millisecond)
	if g.cards[a].State != core.EntityRevealed {
		t.Fatal("pair turned back too early")
	}
	advance(m, clk, time.Millisecond)
	if g.cards[a].State != core.EntityHidden || g.cards[b].State != core.EntityHidden {
		t.Error("pair should turn back after 800ms")
	}
	if g.Moves() != 1 {
		t.Errorf("Moves() = %d, expected 1", g.Moves())
	}
}

func TestSameCardTwiceIgnored(t *testing.T) {
	g, m, _ := start(t, "easy", 4)
	m.Submit(core.Select(0))
	m.Submit(core.Select(0))
	m.Submit(core.Select(-1))
	m.Submit(core.Select(99))

	if g.Moves() != 0 || len(g.pending) != 1 {
		t.Errorf("moves=%d pending=%v", g.Moves(), g.pending)
	}
}

func TestCompleteRecordsSeconds(t *testing.T) {
	g, m, clk := start(t, "easy", 5)
	advance(m, clk, 42*time.Second)

	for _, idx := range pairs(g) {
		m.Submit(core.Select(idx[0]))
		m.Submit(core.Select(idx[1]))
	}

	snap := m.Snapshot()
	if snap.Status != core.StatusEnded || snap.Reason != core.ReasonCompleted {
		t.Fatalf("expected completed, got %v/%q", snap.Status, snap.Reason)
	}
	if snap.Score != 6 || snap.Result != 42 || !snap.NewBest {
		t.Errorf("unexpected result %+v", snap)
	}
}

func TestShuffleDeterministic(t *testing.T) {
	g1, _, _ := start(t, "hard", 9)
	g2, _, _ := start(t, "hard", 9)
	for i := range g1.cards {
		if g1.cards[i].Label != g2.cards[i].Label {
			t.Fatalf("decks differ at card %d", i)
		}
	}
}

func TestEmptyDeckFaults(t *testing.T) {
	cfg := config.DefaultMemoryConfig()
	cfg.Decks["easy"] = nil
	m := engine.New(New(cfg), clock.NewManual(), nil)

	snap, err := m.Start("easy")
	if err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	if snap.Reason != core.ReasonFault {
		t.Errorf("expected fault, got %q", snap.Reason)
	}
}
