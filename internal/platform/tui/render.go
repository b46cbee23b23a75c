package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// colorStyles maps Color to lipgloss styles.
var colorStyles = map[Color]lipgloss.Style{
	ColorDefault:     lipgloss.NewStyle(),
	ColorRed:         lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	ColorGreen:       lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	ColorYellow:      lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	ColorBlue:        lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	ColorMagenta:     lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	ColorCyan:        lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	ColorBrightGreen: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	ColorGray:        lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same color for efficiency
		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			// Collect consecutive cells with same color
			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			// Apply style to the run
			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
