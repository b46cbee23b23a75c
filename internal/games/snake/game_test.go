package snake

import (
	"testing"
	"time"

	"github.com/vovakirdan/tui-minigames/internal/clock"
	"github.com/vovakirdan/tui-minigames/internal/config"
	"github.com/vovakirdan/tui-minigames/internal/core"
	"github.com/vovakirdan/tui-minigames/internal/engine"
)

const movePeriod = 140 * time.Millisecond

func start(t *testing.T, cfg config.SnakeConfig, seed int64) (*Game, *engine.Machine, *clock.Manual) {
	t.Helper()
	g := New(cfg)
	clk := clock.NewManual()
	m := engine.New(g, clk, nil, engine.WithSeed(seed))
	if _, err := m.Start(""); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	return g, m, clk
}

func advance(m *engine.Machine, clk *clock.Manual, d time.Duration) {
	clk.Advance(d, func(ev clock.Fired) { m.Fire(ev) })
}

func TestDeterminism(t *testing.T) {
	// Two games with the same seed should produce identical snapshots
	g1, m1, c1 := start(t, config.DefaultSnakeConfig(), 12345)
	g2, m2, c2 := start(t, config.DefaultSnakeConfig(), 12345)

	steps := map[int]core.Direction{3: core.DirLeft, 7: core.DirDown, 12: core.DirRight, 20: core.DirUp}
	for i := 0; i < 40; i++ {
		if d, ok := steps[i]; ok {
			m1.Submit(core.Steer(d))
			m2.Submit(core.Steer(d))
		}
		advance(m1, c1, movePeriod)
		advance(m2, c2, movePeriod)
	}

	if g1.Snapshot() != g2.Snapshot() {
		t.Errorf("snapshot mismatch: %+v vs %+v", g1.Snapshot(), g2.Snapshot())
	}
	s1, s2 := m1.Snapshot(), m2.Snapshot()
	if s1.Score != s2.Score || s1.Status != s2.Status || s1.ElapsedTicks != s2.ElapsedTicks {
		t.Errorf("session mismatch: %+v vs %+v", s1, s2)
	}
}

func TestInitialState(t *testing.T) {
	g, m, _ := start(t, config.DefaultSnakeConfig(), 1)

	snap := g.Snapshot()
	if snap.SnakeLen != 1 || snap.Head != (core.Point{X: 10, Y: 10}) || snap.Dir != core.DirUp {
		t.Errorf("unexpected initial snake %+v", snap)
	}
	if g.isSnakeAt(snap.Food) {
		t.Error("food spawned on the snake")
	}
	if board := m.Snapshot().Board; board != (core.Point{X: 20, Y: 20}) {
		t.Errorf("Board = %+v, expected 20x20", board)
	}
}

func TestNoImmediateReversal(t *testing.T) {
	g, m, clk := start(t, config.DefaultSnakeConfig(), 42)

	// Moving up: down is a reversal and must be ignored
	m.Submit(core.Steer(core.DirDown))
	if g.nextDir != core.DirUp {
		t.Fatalf("reversal accepted: nextDir = %v", g.nextDir)
	}

	m.Submit(core.Steer(core.DirLeft))
	if g.nextDir != core.DirLeft {
		t.Fatalf("expected nextDir Left, got %v", g.nextDir)
	}

	// Down is still opposite of the applied direction until the snake moves
	m.Submit(core.Steer(core.DirDown))
	if g.nextDir != core.DirLeft {
		t.Errorf("reversal against applied direction accepted: %v", g.nextDir)
	}

	g.food = core.Point{X: 19, Y: 19}
	advance(m, clk, movePeriod)
	if g.direction != core.DirLeft {
		t.Fatalf("expected applied direction Left, got %v", g.direction)
	}
	m.Submit(core.Steer(core.DirDown))
	if g.nextDir != core.DirDown {
		t.Errorf("expected nextDir Down after turning, got %v", g.nextDir)
	}
}

func TestRightChangesDirection(t *testing.T) {
	g, m, _ := start(t, config.DefaultSnakeConfig(), 42)

	m.Submit(core.Steer(core.DirRight))
	if g.nextDir != core.DirRight {
		t.Errorf("expected nextDir Right, got %v", g.nextDir)
	}

	snap := m.Submit(core.Click())
	if !snap.Running() || g.nextDir != core.DirRight {
		t.Error("non-steer action should be ignored")
	}
}

func TestWallCollision(t *testing.T) {
	g, m, clk := start(t, config.DefaultSnakeConfig(), 7)
	g.food = core.Point{X: 0, Y: 19}

	advance(m, clk, 10*movePeriod)
	if snap := m.Snapshot(); !snap.Running() || g.Snapshot().Head != (core.Point{X: 10, Y: 0}) {
		t.Fatalf("expected snake at the top edge, got %+v", g.Snapshot())
	}

	advance(m, clk, movePeriod)
	snap := m.Snapshot()
	if snap.Status != core.StatusEnded || snap.Reason != core.ReasonCollision {
		t.Fatalf("expected collision, got %v/%q", snap.Status, snap.Reason)
	}
	if !snap.HasBest || snap.Best != 0 {
		t.Errorf("expected result 0 recorded, got %+v", snap)
	}
}

func TestEatingGrowsAndSpeedsUp(t *testing.T) {
	g, m, clk := start(t, config.DefaultSnakeConfig(), 3)
	g.food = core.Point{X: 10, Y: 9}

	advance(m, clk, movePeriod)
	snap := m.Snapshot()
	if snap.Score != 1 || g.Snapshot().SnakeLen != 2 {
		t.Fatalf("expected score 1 and length 2, got %d/%d", snap.Score, g.Snapshot().SnakeLen)
	}
	if g.isSnakeAt(g.food) {
		t.Error("new food spawned on the snake")
	}
	if snap.Params.IntervalMs != 138 {
		t.Errorf("move period = %d, expected 138", snap.Params.IntervalMs)
	}
	if snap.Stats["length"] != 2 {
		t.Errorf("length stat = %v", snap.Stats["length"])
	}
}

func TestSelfCollision(t *testing.T) {
	g, m, clk := start(t, config.DefaultSnakeConfig(), 5)
	g.snake = []core.Point{{X: 5, Y: 5}, {X: 5, Y: 6}, {X: 6, Y: 6}, {X: 6, Y: 5}, {X: 6, Y: 4}}
	g.direction, g.nextDir = core.DirRight, core.DirRight
	g.food = core.Point{X: 0, Y: 0}

	advance(m, clk, movePeriod)
	if snap := m.Snapshot(); snap.Reason != core.ReasonCollision {
		t.Errorf("expected self collision, got %q", snap.Reason)
	}
}

func TestMoveIntoTailIsAllowed(t *testing.T) {
	g, m, clk := start(t, config.DefaultSnakeConfig(), 5)
	g.snake = []core.Point{{X: 5, Y: 5}, {X: 5, Y: 6}, {X: 6, Y: 6}, {X: 6, Y: 5}}
	g.direction, g.nextDir = core.DirRight, core.DirRight
	g.food = core.Point{X: 0, Y: 0}

	advance(m, clk, movePeriod)
	if snap := m.Snapshot(); !snap.Running() {
		t.Fatalf("tail cell should be free on a move, ended with %q", snap.Reason)
	}
	if head := g.Snapshot().Head; head != (core.Point{X: 6, Y: 5}) {
		t.Errorf("head = %+v", head)
	}
}

func TestSegmentsStayUnique(t *testing.T) {
	_, m, clk := start(t, config.DefaultSnakeConfig(), 99)
	dirs := []core.Direction{core.DirLeft, core.DirDown, core.DirRight, core.DirUp}

	for i := 0; i < 200 && m.Snapshot().Running(); i++ {
		if i%5 == 0 {
			m.Submit(core.Steer(dirs[(i/5)%len(dirs)]))
		}
		advance(m, clk, movePeriod)

		seen := make(map[core.Point]bool)
		for _, e := range m.Snapshot().Entities[1:] {
			if seen[e.Pos] {
				t.Fatalf("duplicate segment at %+v on move %d", e.Pos, i)
			}
			seen[e.Pos] = true
		}
	}
}

func TestFullBoardEndsSession(t *testing.T) {
	cfg := config.DefaultSnakeConfig()
	cfg.Grid, cfg.StartX, cfg.StartY = 2, 0, 1
	g, m, clk := start(t, cfg, 11)

	g.snake = []core.Point{{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0}}
	g.direction, g.nextDir = core.DirUp, core.DirUp
	g.food = core.Point{X: 0, Y: 0}

	advance(m, clk, movePeriod)
	snap := m.Snapshot()
	if snap.Reason != core.ReasonExhausted || snap.Score != 1 {
		t.Errorf("expected exhausted with score 1, got %q/%d", snap.Reason, snap.Score)
	}
	if !snap.HasBest || snap.Best != 1 {
		t.Error("exhausted session should still record its score")
	}
}
