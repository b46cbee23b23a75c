package snake

import "github.com/vovakirdan/tui-minigames/internal/core"

// Snapshot captures the board state for determinism testing and replay.
type Snapshot struct {
	SnakeLen int
	Head     core.Point
	Dir      core.Direction
	NextDir  core.Direction
	Food     core.Point
}

// Snapshot returns the current board snapshot.
func (g *Game) Snapshot() Snapshot {
	var head core.Point
	if len(g.snake) > 0 {
		head = g.snake[0]
	}
	return Snapshot{
		SnakeLen: len(g.snake),
		Head:     head,
		Dir:      g.direction,
		NextDir:  g.nextDir,
		Food:     g.food,
	}
}
