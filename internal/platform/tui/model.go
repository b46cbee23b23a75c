package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-minigames/internal/clock"
	"github.com/vovakirdan/tui-minigames/internal/core"
	"github.com/vovakirdan/tui-minigames/internal/engine"
	"github.com/vovakirdan/tui-minigames/internal/games/aimtrainer"
	"github.com/vovakirdan/tui-minigames/internal/games/typingspeed"
	"github.com/vovakirdan/tui-minigames/internal/registry"
)

// Config describes one game screen.
type Config struct {
	Game    registry.GameInfo
	Mode    string
	Machine *engine.Machine
	Clock   *clock.Real
	Width   int
	Height  int
}

// Model is the Bubble Tea model for a running game. All machine calls
// happen in Update, so the session is only touched by the program loop.
type Model struct {
	game    registry.GameInfo
	mode    string
	machine *engine.Machine
	clk     *clock.Real
	keys    KeyMap
	help    help.Model
	input   textinput.Model

	snap     core.Snapshot
	cursor   int      // Memory match card cursor
	flash    core.Cue // Cue currently tinting the board
	flashID  int
	width    int
	height   int
	quitting bool
}

// NewModel creates the game model and starts the first session.
func NewModel(cfg Config) (Model, error) {
	ti := textinput.New()
	ti.Placeholder = "start typing..."
	ti.Prompt = "> "
	ti.CharLimit = 256

	m := Model{
		game:    cfg.Game,
		mode:    cfg.Mode,
		machine: cfg.Machine,
		clk:     cfg.Clock,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		input:   ti,
		width:   cfg.Width,
		height:  cfg.Height,
	}

	snap, err := m.machine.Start(m.mode)
	if err != nil {
		return m, err
	}
	m.snap = snap
	m.mode = snap.Mode
	if m.typing() {
		m.input.Focus()
	}
	return m, nil
}

// Init starts listening for clock expiries.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{waitForWake(m.clk)}
	if m.typing() {
		cmds = append(cmds, textinput.Blink)
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case wakeMsg:
		cmd := m.drain()
		return m, tea.Batch(waitForWake(m.clk), cmd)

	case flashDoneMsg:
		if msg.id == m.flashID {
			m.flash = ""
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}

	if m.typing() {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	capture := m.typing() && m.snap.Running()

	switch {
	case capture && key.Matches(msg, m.keys.ForceQuit),
		!capture && key.Matches(msg, m.keys.Quit):
		m.snap = m.machine.Stop()
		m.quitting = true
		return m, tea.Quit

	case capture && key.Matches(msg, m.keys.ForceRestart),
		!capture && key.Matches(msg, m.keys.Restart):
		cmd := m.restart()
		return m, cmd

	case !capture && key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if capture {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		submitCmd := m.submit(core.Type(m.input.Value()))
		return m, tea.Batch(cmd, submitCmd)
	}

	a, cursor, ok := m.keys.ActionFor(m.game.ID, msg, m.cursor, m.snap.Board)
	m.cursor = cursor
	if !ok {
		return m, nil
	}
	cmd := m.submit(a)
	return m, cmd
}

// handleMouse maps left clicks on the aim board to board coordinates.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.game.ID != aimtrainer.ID || msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	p, ok := m.boardLayout().toBoard(msg.X, msg.Y, m.snap.Board)
	if !ok {
		return m, nil
	}
	cmd := m.submit(core.PointAt(p.X, p.Y))
	return m, cmd
}

// submit forwards an action after every expiry that is already due.
func (m *Model) submit(a core.Action) tea.Cmd {
	cmd := m.drain()
	return tea.Batch(cmd, m.apply(m.machine.Submit(a)))
}

// drain applies queued clock events without blocking.
func (m *Model) drain() tea.Cmd {
	var cmds []tea.Cmd
	for {
		select {
		case ev := <-m.clk.C():
			cmds = append(cmds, m.apply(m.machine.Fire(ev)))
		default:
			return tea.Batch(cmds...)
		}
	}
}

func (m *Model) restart() tea.Cmd {
	snap, err := m.machine.Start(m.mode)
	if err != nil {
		return nil
	}
	m.cursor = 0
	m.flash = ""
	m.input.Reset()
	return m.apply(snap)
}

// apply stores snap and flashes its strongest cue.
func (m *Model) apply(snap core.Snapshot) tea.Cmd {
	m.snap = snap
	if m.typing() && snap.Input == "" && m.input.Value() != "" {
		m.input.Reset()
	}

	cue := strongestCue(snap.Cues)
	if cue == "" {
		return nil
	}
	m.flash = cue
	m.flashID++
	return flashCmd(m.flashID)
}

func (m Model) typing() bool {
	return m.game.ID == typingspeed.ID
}

// Snapshot returns the last snapshot the model rendered.
func (m Model) Snapshot() core.Snapshot {
	return m.snap
}

// strongestCue picks the cue to flash when several arrive together.
func strongestCue(cues []core.Cue) core.Cue {
	rank := map[core.Cue]int{
		core.CueHit:     1,
		core.CueSuccess: 2,
		core.CueMiss:    3,
		core.CueFail:    4,
	}
	var best core.Cue
	for _, c := range cues {
		if rank[c] > rank[best] {
			best = c
		}
	}
	return best
}

// Run starts the Bubble Tea program for one game and returns the final
// snapshot.
func Run(cfg Config) (core.Snapshot, error) {
	model, err := NewModel(cfg)
	if err != nil {
		return core.Snapshot{}, err
	}
	defer cfg.Machine.Stop()

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Aim trainer clicks
	)

	final, err := p.Run()
	if err != nil {
		return model.Snapshot(), err
	}
	if fm, ok := final.(Model); ok {
		return fm.Snapshot(), nil
	}
	return model.Snapshot(), nil
}
