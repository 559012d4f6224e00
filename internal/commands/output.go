package commands

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorText     = lipgloss.Color("#e9e4f5")
	colorTextDim  = lipgloss.Color("#8c82a8")
	colorTextMute = lipgloss.Color("#4a4360")
	colorSuccess  = lipgloss.Color("#69db7c")
	colorWarning  = lipgloss.Color("#ffa94d")
	colorPrimary  = lipgloss.Color("#b197fc")
)

// Styles matching the companion TUI
var (
	companionLabelStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	companionBubbleStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(colorPrimary).
				Foreground(colorText).
				Padding(0, 1).
				MarginBottom(1)

	successStyle = lipgloss.NewStyle().Foreground(colorSuccess)
	warnStyle    = lipgloss.NewStyle().Foreground(colorWarning)
	dimStyle     = lipgloss.NewStyle().Foreground(colorTextDim)
)

// bubbleWidth clamps the terminal width to a readable bubble
func bubbleWidth(termWidth int) int {
	w := termWidth - 4
	if w < 40 {
		w = 40
	}
	if w > 120 {
		w = 120
	}
	return w
}

func writeOutput(path, text string) error {
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
