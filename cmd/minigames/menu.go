package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-minigames/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a game picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a game. Games with
several modes ask for the mode next. After a game ends, you return to
the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select game or mode
  Esc          - Back to the game list
  Tab          - Scoreboard
  Q            - Quit

Examples:
  minigames menu
  minigames menu --db ./scores.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	b := openBackend()
	defer b.Close()

	for {
		width, height := terminalSize()
		result, err := tui.RunMenu(width, height)
		if err != nil {
			return err
		}

		switch {
		case result.Quit:
			return nil

		case result.WantsScoreboard:
			goBack, err := tui.RunScoreboard(b.store, width, height)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}

		default:
			if _, err := playGame(b, result.GameID, playOptions{Mode: result.Mode}); err != nil {
				logger.Error("game failed", "game", result.GameID, "error", err)
				return err
			}
		}
	}
}
