package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-minigames/internal/core"
	"github.com/vovakirdan/tui-minigames/internal/games/aimtrainer"
	"github.com/vovakirdan/tui-minigames/internal/games/clickspeed"
	"github.com/vovakirdan/tui-minigames/internal/games/memorymatch"
	"github.com/vovakirdan/tui-minigames/internal/games/reaction"
	"github.com/vovakirdan/tui-minigames/internal/games/simonsays"
	"github.com/vovakirdan/tui-minigames/internal/games/snake"
	"github.com/vovakirdan/tui-minigames/internal/games/typingspeed"
	"github.com/vovakirdan/tui-minigames/internal/games/whackamole"
)

// headerLines is the number of rows View draws above the board.
const headerLines = 3

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	statStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	endStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	bestStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 4)

	padStyles = map[string]lipgloss.Color{
		"red":    lipgloss.Color("1"),
		"green":  lipgloss.Color("2"),
		"blue":   lipgloss.Color("4"),
		"yellow": lipgloss.Color("3"),
		"purple": lipgloss.Color("5"),
		"pink":   lipgloss.Color("13"),
	}
)

// flashColor returns the border tint for the current cue.
func (m Model) flashColor() lipgloss.Color {
	switch m.flash {
	case core.CueHit, core.CueSuccess:
		return lipgloss.Color("10")
	case core.CueMiss, core.CueFail:
		return lipgloss.Color("9")
	default:
		return lipgloss.Color("240")
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s  [%s]", m.game.Title, m.snap.Mode)))
	b.WriteString("\n")
	b.WriteString(statStyle.Render(m.statusLine()))
	b.WriteString("\n\n")

	b.WriteString(m.renderBoard())
	b.WriteString("\n\n")

	if m.snap.Status == core.StatusEnded {
		b.WriteString(m.renderEnd())
		b.WriteString("\n\n")
	}
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m Model) statusLine() string {
	parts := []string{fmt.Sprintf("Score: %d", m.snap.Score)}
	if m.machine.Info().Countdown > 0 {
		parts = append(parts, fmt.Sprintf("Time: %ds", m.snap.TimeLeft))
	}
	if m.snap.Failures > 0 {
		parts = append(parts, fmt.Sprintf("Misses: %d", m.snap.Failures))
	}
	for _, name := range []string{"cps", "wpm", "accuracy", "moves", "length", "latency_ms"} {
		if v, ok := m.snap.Stats[name]; ok {
			parts = append(parts, fmt.Sprintf("%s: %g", name, v))
		}
	}
	if m.snap.HasBest {
		parts = append(parts, fmt.Sprintf("Best: %g", m.snap.Best))
	}
	return strings.Join(parts, "  |  ")
}

func (m Model) renderEnd() string {
	line := fmt.Sprintf("Game over (%s).", m.snap.Reason)
	if m.snap.Reason != core.ReasonFalseStart {
		line += fmt.Sprintf(" Result: %g.", m.snap.Result)
	}
	out := endStyle.Render(line + " Press r to play again.")
	if m.snap.NewBest {
		out += "\n" + bestStyle.Render("New best!")
	}
	return out
}

func (m Model) renderBoard() string {
	switch m.game.ID {
	case clickspeed.ID:
		return m.box().Render("CLICK!\n\npress space as fast as you can")
	case reaction.ID:
		return m.renderReaction()
	case snake.ID:
		return m.renderSnake()
	case whackamole.ID:
		return m.renderWhack()
	case aimtrainer.ID:
		return m.renderAim()
	case memorymatch.ID:
		return m.renderMemory()
	case simonsays.ID:
		return m.renderSimon()
	case typingspeed.ID:
		return m.renderTyping()
	default:
		return ""
	}
}

func (m Model) box() lipgloss.Style {
	return boxStyle.BorderForeground(m.flashColor())
}

func (m Model) renderReaction() string {
	switch m.snap.Phase {
	case reaction.PhaseWaiting:
		return m.box().Background(lipgloss.Color("52")).Render("Wait for green...")
	case reaction.PhaseReady:
		return m.box().Background(lipgloss.Color("22")).Render("NOW! Press space")
	}
	if m.snap.Reason == core.ReasonFalseStart {
		return m.box().Render("Too soon!")
	}
	return m.box().Render(fmt.Sprintf("%g ms", m.snap.Result))
}

func (m Model) renderSnake() string {
	w, h := m.snap.Board.X, m.snap.Board.Y
	if w <= 0 || h <= 0 {
		return ""
	}
	border := ColorGray
	if m.flash == core.CueFail {
		border = ColorRed
	}

	// Two columns per cell keep the board roughly square
	s := NewScreen(w*2+2, h+2)
	s.DrawBox(core.NewRect(0, 0, w*2+2, h+2), border)
	for _, e := range m.snap.Entities {
		x, y := 1+e.Pos.X*2, 1+e.Pos.Y
		switch e.Label {
		case "food":
			s.DrawText(x, y, "●", ColorRed)
		case "head":
			s.DrawText(x, y, "██", ColorBrightGreen)
		default:
			s.DrawText(x, y, "▓▓", ColorGreen)
		}
	}
	return RenderScreen(s)
}

func (m Model) renderWhack() string {
	cols := max(m.snap.Board.X, 1)
	holes := cols * max(m.snap.Board.Y, 1)
	mole := -1
	for _, e := range m.snap.Entities {
		mole = e.Slot
	}

	hole := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 2).BorderForeground(lipgloss.Color("240"))
	up := hole.BorderForeground(m.flashColor()).Foreground(lipgloss.Color("214")).Bold(true)

	var rows []string
	for r := 0; r*cols < holes; r++ {
		var cells []string
		for c := 0; c < cols && r*cols+c < holes; c++ {
			i := r*cols + c
			if i == mole {
				cells = append(cells, up.Render("(o.o)"))
			} else {
				cells = append(cells, hole.Render(fmt.Sprintf("  %d  ", i+1)))
			}
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// boardLayout is where the aim board interior lands on the terminal.
type boardLayout struct {
	X, Y       int // Top-left terminal cell of the interior
	Cols, Rows int
}

// boardLayout sizes the aim board to the window.
func (m Model) boardLayout() boardLayout {
	rows := core.Clamp(m.height-headerLines-8, 8, 24)
	cols := core.Clamp(m.width-2, 16, rows*2)
	return boardLayout{X: 1, Y: headerLines + 1, Cols: cols, Rows: rows}
}

// cellCenter returns the board coordinate at the center of interior cell
// (cx, cy).
func (l boardLayout) cellCenter(cx, cy int, board core.Point) core.Point {
	return core.Point{
		X: (2*cx + 1) * board.X / (2 * l.Cols),
		Y: (2*cy + 1) * board.Y / (2 * l.Rows),
	}
}

// toBoard maps a terminal cell to a board coordinate.
func (l boardLayout) toBoard(x, y int, board core.Point) (core.Point, bool) {
	cx, cy := x-l.X, y-l.Y
	if cx < 0 || cy < 0 || cx >= l.Cols || cy >= l.Rows || board.X <= 0 || board.Y <= 0 {
		return core.Point{}, false
	}
	return l.cellCenter(cx, cy, board), true
}

func (m Model) renderAim() string {
	l := m.boardLayout()
	board := m.snap.Board
	border := ColorGray
	switch m.flash {
	case core.CueHit:
		border = ColorGreen
	case core.CueMiss:
		border = ColorRed
	}

	s := NewScreen(l.Cols+2, l.Rows+2)
	s.DrawBox(core.NewRect(0, 0, l.Cols+2, l.Rows+2), border)
	if board.X <= 0 || board.Y <= 0 {
		return RenderScreen(s)
	}

	for _, e := range m.snap.Entities {
		hit := e.Bounds()
		drawn := false
		for cy := range l.Rows {
			for cx := range l.Cols {
				if hit.Contains(l.cellCenter(cx, cy, board)) {
					s.Set(1+cx, 1+cy, '█', ColorRed)
					drawn = true
				}
			}
		}
		if !drawn {
			c := hit.Center()
			s.Set(1+c.X*l.Cols/board.X, 1+c.Y*l.Rows/board.Y, '●', ColorRed)
		}
	}
	return RenderScreen(s)
}

func (m Model) renderMemory() string {
	cols := max(m.snap.Board.X, 1)
	card := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Width(6).Align(lipgloss.Center)

	var rows []string
	var cells []string
	for i, e := range m.snap.Entities {
		face := "?"
		style := card.BorderForeground(lipgloss.Color("240"))
		switch e.State {
		case core.EntityRevealed:
			face = e.Label
			style = style.BorderForeground(m.flashColor()).Foreground(lipgloss.Color("229"))
		case core.EntityMatched:
			face = e.Label
			style = style.BorderForeground(lipgloss.Color("2")).Foreground(lipgloss.Color("2"))
		}
		if i == m.cursor {
			style = style.Bold(true).BorderStyle(lipgloss.ThickBorder())
		}
		cells = append(cells, style.Render(face))
		if len(cells) == cols {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
			cells = nil
		}
	}
	if len(cells) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderSimon() string {
	cols := max(m.snap.Board.X, 1)
	pad := lipgloss.NewStyle().Width(10).Height(3).Align(lipgloss.Center, lipgloss.Center).Margin(0, 1)

	var rows []string
	var cells []string
	for _, e := range m.snap.Entities {
		style := pad.Foreground(padStyles[e.Label]).Border(lipgloss.NormalBorder()).BorderForeground(padStyles[e.Label])
		label := fmt.Sprintf("%d %s", e.Slot+1, e.Label)
		if e.State == core.EntityLit {
			style = style.Background(padStyles[e.Label]).Foreground(lipgloss.Color("0")).Bold(true)
		}
		cells = append(cells, style.Render(label))
		if len(cells) == cols {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
			cells = nil
		}
	}
	if len(cells) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	status := "Watch the sequence..."
	if m.snap.Phase == simonsays.PhaseInput {
		status = "Your turn: repeat it with the number keys"
	}
	return lipgloss.JoinVertical(lipgloss.Left, lipgloss.JoinVertical(lipgloss.Left, rows...), "", status)
}

func (m Model) renderTyping() string {
	var target string
	for _, e := range m.snap.Entities {
		target = e.Label
	}

	ok := lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	bad := lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Underline(true)
	rest := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	typed := []rune(m.snap.Input)
	var b strings.Builder
	for i, r := range []rune(target) {
		switch {
		case i >= len(typed):
			b.WriteString(rest.Render(string(r)))
		case typed[i] == r:
			b.WriteString(ok.Render(string(r)))
		default:
			b.WriteString(bad.Render(string(r)))
		}
	}

	width := max(min(m.width-12, 80), 20)
	return m.box().Width(width).Render(b.String() + "\n\n" + m.input.View())
}
