// Package tui provides the terminal user interface for pawsitive.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/pawsitive/internal/errors"
	"github.com/diogo/pawsitive/internal/render"
)

// Color variables (updated from theme)
var (
	colorSurface lipgloss.Color
	colorBorder  lipgloss.Color

	colorPrimary   lipgloss.Color
	colorSecondary lipgloss.Color
	colorAccent    lipgloss.Color
	colorWarning   lipgloss.Color
	colorError     lipgloss.Color

	colorText     lipgloss.Color
	colorTextDim  lipgloss.Color
	colorTextMute lipgloss.Color
)

// Style variables (rebuilt when theme changes)
var (
	headerStyle   lipgloss.Style
	titleStyle    lipgloss.Style
	subtitleStyle lipgloss.Style
	hintStyle     lipgloss.Style
	streakStyle   lipgloss.Style

	// Companion panel
	companionPanelStyle lipgloss.Style
	companionNameStyle  lipgloss.Style
	moodBadgeStyle      lipgloss.Style

	// Tabs
	contentPanelStyle lipgloss.Style
	tabStyle          lipgloss.Style
	activeTabStyle    lipgloss.Style

	// Chat
	userBubbleStyle      lipgloss.Style
	userLabelStyle       lipgloss.Style
	companionBubbleStyle lipgloss.Style
	companionLabelStyle  lipgloss.Style
	timestampStyle       lipgloss.Style
	inputPanelStyle      lipgloss.Style
	inputLabelStyle      lipgloss.Style
	typingStyle          lipgloss.Style

	// Tips
	chipStyle       lipgloss.Style
	activeChipStyle lipgloss.Style
	tipCardStyle    lipgloss.Style
	tipTitleStyle   lipgloss.Style
	dotStyle        lipgloss.Style
	activeDotStyle  lipgloss.Style

	// Progress
	statCardStyle    lipgloss.Style
	statValueStyle   lipgloss.Style
	statLabelStyle   lipgloss.Style
	barStyle         lipgloss.Style
	sectionStyle     lipgloss.Style
	achievementStyle lipgloss.Style

	// Footer
	disclaimerStyle lipgloss.Style
	statusBarStyle  lipgloss.Style
	statusKeyStyle  lipgloss.Style
	statusDescStyle lipgloss.Style
	noticeStyle     lipgloss.Style

	errorStyle lipgloss.Style

	// Character palette
	furStyle     lipgloss.Style
	shadeStyle   lipgloss.Style
	outlineStyle lipgloss.Style
	hatStyle     lipgloss.Style
	bowtieStyle  lipgloss.Style
	tongueStyle  lipgloss.Style
	blushStyle   lipgloss.Style
)

// typingColors cycle through the typing indicator dots
var typingColors = []lipgloss.Color{
	lipgloss.Color("#a78bfa"),
	lipgloss.Color("#c4b5fd"),
	lipgloss.Color("#f9a8d4"),
	lipgloss.Color("#f472b6"),
}

func init() {
	UpdateTheme()
}

// UpdateTheme refreshes all styles based on the current TUI theme
func UpdateTheme() {
	theme := render.GetTUITheme()

	colorSurface = theme.Surface
	colorBorder = theme.Border
	colorPrimary = theme.Primary
	colorSecondary = theme.Secondary
	colorAccent = theme.Accent
	colorWarning = theme.Warning
	colorError = theme.Error
	colorText = theme.Text
	colorTextDim = theme.TextDim
	colorTextMute = theme.TextMute

	rebuildStyles(theme.Pet)
}

func rebuildStyles(pet render.CharacterPalette) {
	// header is exactly three lines tall; mouse mapping depends on it
	headerStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 2)

	titleStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true)

	subtitleStyle = lipgloss.NewStyle().
		Foreground(colorTextDim)

	hintStyle = lipgloss.NewStyle().
		Foreground(colorTextMute).
		Italic(true)

	streakStyle = lipgloss.NewStyle().
		Foreground(colorWarning).
		Bold(true)

	companionPanelStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1)

	companionNameStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true)

	moodBadgeStyle = lipgloss.NewStyle().
		Foreground(colorText).
		Background(colorSurface).
		Padding(0, 1)

	contentPanelStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1)

	tabStyle = lipgloss.NewStyle().
		Foreground(colorTextDim).
		Padding(0, 2)

	activeTabStyle = lipgloss.NewStyle().
		Foreground(colorText).
		Background(colorPrimary).
		Bold(true).
		Padding(0, 2)

	userBubbleStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorSecondary).
		Padding(0, 1).
		MarginLeft(4)

	userLabelStyle = lipgloss.NewStyle().
		Foreground(colorSecondary).
		Bold(true).
		MarginLeft(4)

	companionBubbleStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorPrimary).
		Foreground(colorText).
		Padding(0, 1).
		MarginRight(4)

	companionLabelStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true)

	timestampStyle = lipgloss.NewStyle().
		Foreground(colorTextMute)

	inputPanelStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1)

	inputLabelStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		MarginRight(1)

	typingStyle = lipgloss.NewStyle().
		Foreground(colorAccent).
		Italic(true)

	chipStyle = lipgloss.NewStyle().
		Foreground(colorTextDim).
		Background(colorSurface).
		Padding(0, 1).
		MarginRight(1)

	activeChipStyle = lipgloss.NewStyle().
		Foreground(colorText).
		Background(colorAccent).
		Bold(true).
		Padding(0, 1).
		MarginRight(1)

	tipCardStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Padding(1, 2).
		MarginTop(1)

	tipTitleStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true)

	dotStyle = lipgloss.NewStyle().
		Foreground(colorTextMute)

	activeDotStyle = lipgloss.NewStyle().
		Foreground(colorAccent)

	statCardStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1).
		MarginRight(1).
		Align(lipgloss.Center)

	statValueStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true)

	statLabelStyle = lipgloss.NewStyle().
		Foreground(colorTextDim)

	barStyle = lipgloss.NewStyle().
		Foreground(colorPrimary)

	sectionStyle = lipgloss.NewStyle().
		Foreground(colorSecondary).
		Bold(true).
		MarginTop(1)

	achievementStyle = lipgloss.NewStyle().
		Foreground(colorText).
		PaddingLeft(2)

	disclaimerStyle = lipgloss.NewStyle().
		Foreground(colorTextDim).
		Italic(true).
		Align(lipgloss.Center)

	statusBarStyle = lipgloss.NewStyle().
		Foreground(colorTextMute)

	statusKeyStyle = lipgloss.NewStyle().
		Foreground(colorTextDim).
		Bold(true)

	statusDescStyle = lipgloss.NewStyle().
		Foreground(colorTextMute)

	noticeStyle = lipgloss.NewStyle().
		Foreground(colorSecondary)

	errorStyle = lipgloss.NewStyle().
		Foreground(colorError).
		Bold(true)

	furStyle = lipgloss.NewStyle().Foreground(pet.Fur)
	shadeStyle = lipgloss.NewStyle().Foreground(pet.Shade)
	outlineStyle = lipgloss.NewStyle().Foreground(pet.Outline).Bold(true)
	hatStyle = lipgloss.NewStyle().Foreground(pet.Hat).Bold(true)
	bowtieStyle = lipgloss.NewStyle().Foreground(pet.Bowtie).Bold(true)
	tongueStyle = lipgloss.NewStyle().Foreground(pet.Tongue)
	blushStyle = lipgloss.NewStyle().Foreground(pet.Blush).Bold(true)
}

// FormatError returns a styled error message with a hint for known error kinds.
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	errStyle := lipgloss.NewStyle().Foreground(colorError)
	dimStyle := lipgloss.NewStyle().Foreground(colorTextDim)

	var sb strings.Builder
	sb.WriteString(errStyle.Render(fmt.Sprintf("✗ %v", err)))

	if path := errors.GetPath(err); path != "" {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  File: %s", path)))
	}

	switch {
	case errors.IsParseError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: Check the file is valid JSON. The built-in data is used meanwhile"))
	case errors.IsValidationError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: Run 'pawsitive config show' to review your settings"))
	case errors.Is(err, errors.ErrUnknownCategory):
		sb.WriteString(dimStyle.Render("\n  Hint: Run 'pawsitive tips --all' to list the categories"))
	case errors.Is(err, errors.ErrEmptyInput):
		sb.WriteString(dimStyle.Render("\n  Hint: Tell Buddy how you feel, e.g. pawsitive \"I'm a bit tired\""))
	}

	return sb.String()
}
