package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-minigames/internal/registry"
)

var (
	flagMode       string
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Space/Enter  - Click, flip the card under the cursor
  Arrows/WASD  - Steer the snake, move the card cursor
  1-9          - Hit a hole (whack-a-mole), press a pad (simon says)
  Mouse        - Shoot targets (aim trainer)
  R            - Restart (Ctrl+R while typing)
  Q/Esc        - Quit (Esc while typing)

Difficulty options (snake, whack-a-mole, aim trainer, simon says):
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  minigames play click-speed
  minigames play memory-match --mode hard
  minigames play whack-a-mole --difficulty hard
  minigames play snake --config ./my-snake.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagMode, "mode", "", "Game mode (see 'minigames list')")
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := args[0]

	b := openBackend()
	defer b.Close()

	snap, err := playGame(b, gameID, playOptions{
		Mode:       flagMode,
		ConfigPath: flagConfig,
		Difficulty: flagDifficulty,
	})
	if err != nil {
		return err
	}

	info, _ := registry.Lookup(gameID)
	printSummary(info.Title, snap)
	return nil
}
