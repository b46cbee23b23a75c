// Package tui provides the Bubble Tea integration for the minigames.
// It handles the terminal UI loop, input mapping, and game orchestration.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-minigames/internal/clock"
)

// flashDuration is how long a hit or miss cue tints the board border.
const flashDuration = 150 * time.Millisecond

// wakeMsg reports that the clock queued at least one expiry. Events are
// only taken off the clock inside Update, so a key press never overtakes a
// due expiry.
type wakeMsg struct{}

// flashDoneMsg clears the cue flash with the matching id.
type flashDoneMsg struct{ id int }

// waitForWake returns a command that blocks until the clock signals. It
// must be re-issued after every wakeMsg.
func waitForWake(clk *clock.Real) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-clk.Ready():
			return wakeMsg{}
		case <-clk.Done():
			return nil
		}
	}
}

func flashCmd(id int) tea.Cmd {
	return tea.Tick(flashDuration, func(time.Time) tea.Msg {
		return flashDoneMsg{id: id}
	})
}
