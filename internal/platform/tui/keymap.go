package tui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-minigames/internal/core"
	"github.com/vovakirdan/tui-minigames/internal/games/clickspeed"
	"github.com/vovakirdan/tui-minigames/internal/games/memorymatch"
	"github.com/vovakirdan/tui-minigames/internal/games/reaction"
	"github.com/vovakirdan/tui-minigames/internal/games/simonsays"
	"github.com/vovakirdan/tui-minigames/internal/games/snake"
	"github.com/vovakirdan/tui-minigames/internal/games/typingspeed"
	"github.com/vovakirdan/tui-minigames/internal/games/whackamole"
)

// KeyMap defines the key bindings of the game screen.
type KeyMap struct {
	Click   key.Binding
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Slot    key.Binding
	Restart key.Binding
	Help    key.Binding
	Quit    key.Binding

	// Typing games capture printable keys, so they only honor these.
	ForceRestart key.Binding
	ForceQuit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Click, k.Restart, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Click, k.Slot},
		{k.Up, k.Down, k.Left, k.Right},
		{k.Restart, k.ForceRestart},
		{k.Help, k.Quit, k.ForceQuit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Click: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "click / flip"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "w", "k"),
			key.WithHelp("up/w", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s", "j"),
			key.WithHelp("down/s", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "a", "h"),
			key.WithHelp("left/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d", "l"),
			key.WithHelp("right/d", "right"),
		),
		Slot: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "hole / pad"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		ForceRestart: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "restart while typing"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit while typing"),
		),
	}
}

// direction maps a movement key to a direction.
func (k KeyMap) direction(msg tea.KeyMsg) core.Direction {
	switch {
	case key.Matches(msg, k.Up):
		return core.DirUp
	case key.Matches(msg, k.Down):
		return core.DirDown
	case key.Matches(msg, k.Left):
		return core.DirLeft
	case key.Matches(msg, k.Right):
		return core.DirRight
	default:
		return core.DirNone
	}
}

// slot maps a digit key to a zero-based slot index.
func (k KeyMap) slot(msg tea.KeyMsg) (int, bool) {
	if !key.Matches(msg, k.Slot) {
		return 0, false
	}
	n, err := strconv.Atoi(msg.String())
	if err != nil {
		return 0, false
	}
	return n - 1, true
}

// ActionFor translates a key press into an action for game. The memory
// match cursor moves with the arrow keys; cursor and board dimensions
// describe it and the new cursor is returned. Keys without a meaning for
// the game report ok == false.
func (k KeyMap) ActionFor(game string, msg tea.KeyMsg, cursor int, board core.Point) (a core.Action, next int, ok bool) {
	next = cursor
	switch game {
	case clickspeed.ID, reaction.ID:
		if key.Matches(msg, k.Click) {
			return core.Click(), next, true
		}

	case snake.ID:
		if d := k.direction(msg); d != core.DirNone {
			return core.Steer(d), next, true
		}

	case whackamole.ID, simonsays.ID:
		if n, ok := k.slot(msg); ok {
			return core.Select(n), next, true
		}

	case memorymatch.ID:
		if key.Matches(msg, k.Click) {
			return core.Select(cursor), next, true
		}
		if d := k.direction(msg); d != core.DirNone {
			return core.Action{}, moveCursor(cursor, d, board), false
		}

	case typingspeed.ID:
		// Text is forwarded by the model's text input.
	}
	return core.Action{}, next, false
}

// moveCursor steps a row-major cursor on a cols x rows board, staying on it.
func moveCursor(cursor int, d core.Direction, board core.Point) int {
	cols, rows := board.X, board.Y
	if cols <= 0 || rows <= 0 {
		return cursor
	}
	p := core.Point{X: cursor % cols, Y: cursor / cols}.Add(d.Delta())
	p.X = core.Clamp(p.X, 0, cols-1)
	p.Y = core.Clamp(p.Y, 0, rows-1)
	return p.Y*cols + p.X
}
