package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-minigames/internal/ledger"
	"github.com/vovakirdan/tui-minigames/internal/registry"
	"github.com/vovakirdan/tui-minigames/internal/storage"
)

const maxRankedSessions = 50

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Scroll key.Binding
	Next   key.Binding
	Prev   key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Scroll, k.Prev, k.Next, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Scroll: key.NewBinding(key.WithKeys("up", "down", "k", "j"), key.WithHelp("↑/↓", "scroll")),
		Next:   key.NewBinding(key.WithKeys("right", "l", "tab"), key.WithHelp("→", "next game")),
		Prev:   key.NewBinding(key.WithKeys("left", "h", "shift+tab"), key.WithHelp("←", "prev game")),
		Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// boardGame is a scoreboard page: one game and the way its results rank.
type boardGame struct {
	info registry.GameInfo
	dir  ledger.Direction
}

// ScoreboardModel shows the ranked sessions and the per-mode bests of one
// game at a time.
type ScoreboardModel struct {
	games    []boardGame
	page     int
	store    *storage.Store
	bests    []string // "mode: value" for the current page
	ranked   int
	table    table.Model
	help     help.Model
	keys     ScoreboardKeyMap
	width    int
	height   int
	quitting bool
	back     bool
}

// NewScoreboardModel creates a scoreboard over store. A nil store shows
// empty pages.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	var games []boardGame
	for _, g := range registry.List() {
		games = append(games, boardGame{info: g, dir: directionOf(g.ID)})
	}

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "#", Width: 4},
			{Title: "Result", Width: 10},
			{Title: "Mode", Width: 8},
			{Title: "Score", Width: 6},
			{Title: "Played", Width: 14},
		}),
		table.WithFocused(true),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	t.SetStyles(s)

	m := ScoreboardModel{
		games:  games,
		store:  store,
		table:  t,
		help:   help.New(),
		keys:   DefaultScoreboardKeyMap(),
		width:  width,
		height: height,
	}
	m.table.SetHeight(max(height-9, 3))
	m.load()
	return m
}

// directionOf reports how a game's results rank. Games whose config fails
// to load fall back to higher-is-better.
func directionOf(gameID string) ledger.Direction {
	rules, err := registry.Create(gameID, registry.Options{})
	if err != nil {
		return ledger.HigherIsBetter
	}
	return rules.Info().Direction
}

// load fills the table and the bests line for the current page.
func (m *ScoreboardModel) load() {
	m.bests = nil
	var rows []table.Row
	if m.store != nil && len(m.games) > 0 {
		g := m.games[m.page]
		if sessions, err := m.store.TopSessions(g.info.ID, "", g.dir, maxRankedSessions); err == nil {
			for i, s := range sessions {
				rows = append(rows, table.Row{
					fmt.Sprint(i + 1),
					fmt.Sprintf("%g", s.Result),
					s.Mode,
					fmt.Sprint(s.Score),
					s.CreatedAt.Format("Jan 02 15:04"),
				})
			}
		}
		for _, mode := range g.info.Modes {
			if v, ok, err := m.store.Best(ledger.Key(g.info.ID, mode)); err == nil && ok {
				m.bests = append(m.bests, fmt.Sprintf("%s: %g", mode, v))
			}
		}
	}
	m.ranked = len(rows)
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *ScoreboardModel) turn(delta int) {
	if len(m.games) == 0 {
		return
	}
	m.page = (m.page + delta + len(m.games)) % len(m.games)
	m.load()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.back = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.turn(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.turn(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table.SetHeight(max(msg.Height-9, 3))
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the current page.
func (m ScoreboardModel) View() string {
	if m.quitting || m.back {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	title := "BEST SESSIONS"
	if len(m.games) > 0 {
		g := m.games[m.page]
		title = fmt.Sprintf("< %s >  %d/%d  (%s)", g.info.Title, m.page+1, len(m.games), g.dir)
	}
	b.WriteString(centerText(titleStyle.Render(title), m.width))
	b.WriteString("\n")
	if len(m.bests) > 0 {
		b.WriteString(centerText("Best  "+strings.Join(m.bests, "  "), m.width))
	}
	b.WriteString("\n\n")

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	body := m.table.View()
	if m.ranked == 0 {
		body = helpStyle.Italic(true).Padding(1, 2).Render("No ranked sessions yet.")
	}
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, box.Render(body)))
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// RunScoreboard runs the scoreboard screen. It reports whether the user went
// back to the menu rather than quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.back, nil
}
