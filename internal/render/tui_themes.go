package render

import (
	"github.com/charmbracelet/lipgloss"
)

// TUITheme defines the color scheme for the TUI interface
type TUITheme struct {
	Name        string
	Description string

	Surface lipgloss.Color
	Border  lipgloss.Color

	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color

	Text     lipgloss.Color
	TextDim  lipgloss.Color
	TextMute lipgloss.Color

	Pet CharacterPalette
}

// CharacterPalette colors the companion drawing
type CharacterPalette struct {
	Fur     lipgloss.Color
	Shade   lipgloss.Color
	Outline lipgloss.Color
	Tongue  lipgloss.Color
	Hat     lipgloss.Color
	Bowtie  lipgloss.Color
	Blush   lipgloss.Color
}

// coat builds a palette from fur, shade, outline, tongue, hat, bowtie, blush
func coat(c ...string) CharacterPalette {
	return CharacterPalette{
		Fur: lipgloss.Color(c[0]), Shade: lipgloss.Color(c[1]), Outline: lipgloss.Color(c[2]),
		Tongue: lipgloss.Color(c[3]), Hat: lipgloss.Color(c[4]), Bowtie: lipgloss.Color(c[5]),
		Blush: lipgloss.Color(c[6]),
	}
}

// scheme fills the interface colors in the order surface, border, primary,
// secondary, accent, warning, error, text, dim text, muted text
func scheme(name, description string, pet CharacterPalette, c ...string) TUITheme {
	return TUITheme{
		Name: name, Description: description,
		Surface: lipgloss.Color(c[0]), Border: lipgloss.Color(c[1]),
		Primary: lipgloss.Color(c[2]), Secondary: lipgloss.Color(c[3]), Accent: lipgloss.Color(c[4]),
		Warning: lipgloss.Color(c[5]), Error: lipgloss.Color(c[6]),
		Text: lipgloss.Color(c[7]), TextDim: lipgloss.Color(c[8]), TextMute: lipgloss.Color(c[9]),
		Pet: pet,
	}
}

// tuiThemes lists the built-in themes; the first one is the default.
// Each dresses Buddy in its own coat.
var tuiThemes = []TUITheme{
	scheme("pawsitive", "Pawsitive - Calm purple theme, golden retriever",
		coat("#E8C080", "#D4B070", "#8B4513", "#FF9999", "#FFD700", "#E57373", "#FFAB91"),
		"#2a2240", "#5b4b8a", "#a78bfa", "#86efac", "#f472b6", "#fcd34d", "#f87171", "#ede9fe", "#8b7fb0", "#4c4370"),
	scheme("tokyonight", "Tokyo Night - Blue accents, slate husky",
		coat("#a9b1d6", "#787c99", "#565f89", "#f7768e", "#e0af68", "#bb9af7", "#ff9e64"),
		"#24283b", "#414868", "#7aa2f7", "#9ece6a", "#bb9af7", "#e0af68", "#f7768e", "#c0caf5", "#565f89", "#3b4261"),
	scheme("catppuccin", "Catppuccin Mocha - Warm pastels, cream corgi",
		coat("#f5e0dc", "#f2cdcd", "#fab387", "#f38ba8", "#f9e2af", "#cba6f7", "#f5c2e7"),
		"#313244", "#45475a", "#89b4fa", "#a6e3a1", "#cba6f7", "#f9e2af", "#f38ba8", "#cdd6f4", "#6c7086", "#45475a"),
	scheme("nord", "Nord - Cool arctic tones, white samoyed",
		coat("#eceff4", "#d8dee9", "#81a1c1", "#bf616a", "#ebcb8b", "#5e81ac", "#d08770"),
		"#3b4252", "#4c566a", "#88c0d0", "#a3be8c", "#b48ead", "#ebcb8b", "#bf616a", "#eceff4", "#7b88a1", "#4c566a"),
	scheme("dracula", "Dracula - Vibrant darks, chocolate lab",
		coat("#a67c52", "#8b6540", "#f8f8f2", "#ff79c6", "#f1fa8c", "#ff5555", "#ffb86c"),
		"#44475a", "#6272a4", "#8be9fd", "#50fa7b", "#ff79c6", "#f1fa8c", "#ff5555", "#f8f8f2", "#6272a4", "#44475a"),
}

// currentTUITheme holds the currently active TUI theme
var currentTUITheme = tuiThemes[0]

// GetTUITheme returns the currently active TUI theme
func GetTUITheme() TUITheme {
	return currentTUITheme
}

// SetTUITheme sets the active TUI theme by name
func SetTUITheme(name string) bool {
	theme, ok := GetTUIThemeByName(name)
	if ok {
		currentTUITheme = theme
		return true
	}
	return false
}

// GetTUIThemeByName returns a TUI theme by its name
func GetTUIThemeByName(name string) (TUITheme, bool) {
	for _, t := range tuiThemes {
		if t.Name == name {
			return t, true
		}
	}
	return TUITheme{}, false
}

// AvailableTUIThemes returns a list of all available TUI themes
func AvailableTUIThemes() []TUITheme {
	return append([]TUITheme(nil), tuiThemes...)
}

// TUIThemeNames returns just the theme names for selection
func TUIThemeNames() []string {
	themes := AvailableTUIThemes()
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}
