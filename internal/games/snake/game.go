// Package snake implements the classic snake game: steer a growing snake
// around a bounded grid, eat food and avoid the walls and your own body.
package snake

import (
	"fmt"

	"github.com/vovakirdan/tui-minigames/internal/clock"
	"github.com/vovakirdan/tui-minigames/internal/config"
	"github.com/vovakirdan/tui-minigames/internal/core"
	"github.com/vovakirdan/tui-minigames/internal/engine"
	"github.com/vovakirdan/tui-minigames/internal/ledger"
	"github.com/vovakirdan/tui-minigames/internal/registry"
)

// ID is the registry identifier.
const ID = "snake"

// Game implements engine.Rules for Snake.
type Game struct {
	cfg    config.SnakeConfig
	policy config.Policy

	// Snake state
	snake     []core.Point // Head at index 0
	direction core.Direction
	nextDir   core.Direction // Buffered direction for next move
	food      core.Point
}

// New creates a Snake game from its configuration.
func New(cfg config.SnakeConfig) *Game {
	if cfg.Grid < 2 {
		cfg.Grid = 2
	}
	cfg.StartX = core.Clamp(cfg.StartX, 0, cfg.Grid-1)
	cfg.StartY = core.Clamp(cfg.StartY, 0, cfg.Grid-1)
	return &Game{cfg: cfg, policy: config.NewPolicy(cfg.Difficulty)}
}

func init() {
	registry.Register(registry.GameInfo{
		ID:          ID,
		Title:       "Snake",
		Description: "Classic snake game. Eat, grow, survive.",
		Difficulty:  "Medium",
		Modes:       []string{"default"},
	}, func(opts registry.Options) (engine.Rules, error) {
		cfg, err := config.LoadSnake(opts.ConfigPath, opts.Preset)
		if err != nil {
			return nil, err
		}
		return New(cfg), nil
	})
}

// Info describes the game to the engine.
func (g *Game) Info() engine.Info {
	return engine.Info{
		ID:             ID,
		Modes:          []string{"default"},
		Direction:      ledger.HigherIsBetter,
		TickFromParams: true,
	}
}

// Params returns the move period for a score.
func (g *Game) Params(mode string, score int) core.Params {
	return g.policy.At(score)
}

// Begin places a one-cell snake moving up and spawns the first food.
func (g *Game) Begin(s *engine.Session) error {
	g.snake = []core.Point{{X: g.cfg.StartX, Y: g.cfg.StartY}}
	g.direction = core.DirUp
	g.nextDir = core.DirUp
	s.SetBoard(g.cfg.Grid, g.cfg.Grid)
	s.SetStat("length", 1)
	return g.spawnFood(s)
}

// Tick moves the snake one cell.
func (g *Game) Tick(s *engine.Session) error {
	return g.moveSnake(s)
}

// Input buffers a direction change for the next move.
func (g *Game) Input(s *engine.Session, a core.Action) error {
	if a.Kind != core.ActionSteer || a.Dir == core.DirNone {
		return fmt.Errorf("snake: %s action: %w", a.Kind, core.ErrInvalidTransition)
	}
	// Prevent instant reversal
	if a.Dir.Opposite(g.direction) {
		return fmt.Errorf("snake: reversal %s -> %s: %w", g.direction, a.Dir, core.ErrInvalidTransition)
	}
	g.nextDir = a.Dir
	return nil
}

// Timer is unused; snake only moves on ticks.
func (g *Game) Timer(s *engine.Session, kind clock.Kind, arg int) error {
	return fmt.Errorf("snake: timer %s: %w", kind, core.ErrInvalidTransition)
}

// Result records the number of food eaten.
func (g *Game) Result(s *engine.Session) (float64, bool) {
	return float64(s.Score()), true
}

// Entities returns the food followed by the snake segments, head first.
func (g *Game) Entities() []core.Entity {
	out := make([]core.Entity, 0, len(g.snake)+1)
	out = append(out, core.Entity{ID: 0, Slot: -1, Pos: g.food, Size: 1, Label: "food"})
	for i, seg := range g.snake {
		label := "body"
		if i == 0 {
			label = "head"
		}
		out = append(out, core.Entity{ID: i + 1, Slot: -1, Pos: seg, Size: 1, Label: label})
	}
	return out
}

// spawnFood places food at a random empty cell.
func (g *Game) spawnFood(s *engine.Session) error {
	p, err := s.Rand().FreeCell(g.cfg.Grid, g.cfg.Grid, g.isSnakeAt)
	if err != nil {
		return fmt.Errorf("snake: spawn food: %w", err)
	}
	g.food = p
	return nil
}

// isSnakeAt checks if the snake occupies the given point.
func (g *Game) isSnakeAt(p core.Point) bool {
	for _, seg := range g.snake {
		if seg == p {
			return true
		}
	}
	return false
}

// moveSnake moves the snake one cell in the buffered direction.
func (g *Game) moveSnake(s *engine.Session) error {
	// Apply buffered direction
	g.direction = g.nextDir
	newHead := g.snake[0].Add(g.direction.Delta())

	// Check wall collision
	if newHead.X < 0 || newHead.X >= g.cfg.Grid || newHead.Y < 0 || newHead.Y >= g.cfg.Grid {
		g.die(s)
		return nil
	}

	growing := newHead == g.food

	// Check self collision (excluding tail if not growing, since it will move)
	checkLen := len(g.snake)
	if !growing {
		checkLen--
	}
	for i := range checkLen {
		if g.snake[i] == newHead {
			g.die(s)
			return nil
		}
	}

	g.snake = append([]core.Point{newHead}, g.snake...)
	if !growing {
		g.snake = g.snake[:len(g.snake)-1]
	}
	s.SetStat("length", float64(len(g.snake)))

	if growing {
		s.AddScore(1)
		s.Cue(core.CueHit)
		return g.spawnFood(s)
	}
	return nil
}

func (g *Game) die(s *engine.Session) {
	s.Cue(core.CueFail)
	s.End(core.ReasonCollision)
}
