package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-minigames/internal/registry"
)

// MenuKeyMap defines the key bindings of the game picker.
type MenuKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Select     key.Binding
	Back       key.Binding
	Scoreboard key.Binding
	Quit       key.Binding
}

// DefaultMenuKeyMap returns default key bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up:         key.NewBinding(key.WithKeys("up", "w", "k")),
		Down:       key.NewBinding(key.WithKeys("down", "s", "j")),
		Select:     key.NewBinding(key.WithKeys("enter", " ")),
		Back:       key.NewBinding(key.WithKeys("esc", "b")),
		Scoreboard: key.NewBinding(key.WithKeys("tab")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c")),
	}
}

// MenuModel is the Bubble Tea model for the game picker menu. Games with
// several modes open a second list to pick the mode.
type MenuModel struct {
	games          []registry.GameInfo
	cursor         int
	modeCursor     int
	choosingMode   bool
	width          int
	height         int
	keys           MenuKeyMap
	quitting       bool
	selected       *MenuResult
	openScoreboard bool
}

// NewMenuModel creates a new menu model over the registered games.
func NewMenuModel(width, height int) MenuModel {
	return MenuModel{
		games:  registry.List(),
		width:  width,
		height: height,
		keys:   DefaultMenuKeyMap(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Scoreboard):
		m.openScoreboard = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		m.choosingMode = false
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.choosingMode {
			m.modeCursor = max(m.modeCursor-1, 0)
		} else {
			m.cursor = max(m.cursor-1, 0)
		}

	case key.Matches(msg, m.keys.Down):
		if m.choosingMode {
			m.modeCursor = min(m.modeCursor+1, len(m.games[m.cursor].Modes)-1)
		} else {
			m.cursor = max(min(m.cursor+1, len(m.games)-1), 0)
		}

	case key.Matches(msg, m.keys.Select):
		if len(m.games) == 0 {
			return m, nil
		}
		g := m.games[m.cursor]
		if len(g.Modes) > 1 && !m.choosingMode {
			m.choosingMode = true
			m.modeCursor = 0
			return m, nil
		}
		mode := ""
		if m.choosingMode {
			mode = g.Modes[m.modeCursor]
		}
		m.selected = &MenuResult{GameID: g.ID, Mode: mode}
		return m, tea.Quit // Exit menu to start game
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Render("  M I N I G A M E S  ")
	b.WriteString("\n")
	b.WriteString(centerText(title, m.width))
	b.WriteString("\n\n")

	if m.choosingMode {
		g := m.games[m.cursor]
		b.WriteString(centerText(fmt.Sprintf("%s: select a mode", g.Title), m.width))
		b.WriteString("\n\n")
		for i, mode := range g.Modes {
			b.WriteString(centerText(cursorPrefix(i == m.modeCursor)+mode, m.width))
			b.WriteString("\n")
		}
	} else {
		b.WriteString(centerText("Select a game", m.width))
		b.WriteString("\n\n")
		for i, g := range m.games {
			line := fmt.Sprintf("%s%-14s %s", cursorPrefix(i == m.cursor), g.Title, g.Difficulty)
			b.WriteString(centerText(line, m.width))
			b.WriteString("\n")
		}
		if len(m.games) > 0 {
			b.WriteString("\n")
			desc := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Render(m.games[m.cursor].Description)
			b.WriteString(centerText(desc, m.width))
			b.WriteString("\n")
		}
	}

	// Footer with controls
	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Select  |  Esc: Back  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(controls, m.width))
	b.WriteString("\n")

	return b.String()
}

func cursorPrefix(selected bool) string {
	if selected {
		return "> "
	}
	return "  "
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GameID          string
	Mode            string // Empty selects the game's default mode
	WantsScoreboard bool
	Quit            bool
}

// Result reports what the user picked.
func (m MenuModel) Result() MenuResult {
	switch {
	case m.openScoreboard:
		return MenuResult{WantsScoreboard: true}
	case m.selected != nil:
		return *m.selected
	default:
		return MenuResult{Quit: true}
	}
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(width, height int) (MenuResult, error) {
	p := tea.NewProgram(
		NewMenuModel(width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Quit: true}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Quit: true}, nil
	}
	return m.Result(), nil
}
