package render

// Markdown style names
const (
	ThemeDark       = "dark"
	ThemeLight      = "light"
	ThemeDracula    = "dracula"
	ThemeTokyoNight = "tokyonight"
	ThemePink       = "pink"
	ThemeNoTTY      = "notty"
	ThemeASCII      = "ascii"
)

// glamourStyle maps our style names onto glamour's standard style names.
// Anything else is passed through as a path to a JSON style file.
func glamourStyle(name string) string {
	switch name {
	case ThemeTokyoNight:
		return "tokyo-night"
	case "":
		return ThemeDark
	default:
		return name
	}
}

// IsBuiltinStyle returns true if the style ships with glamour.
func IsBuiltinStyle(style string) bool {
	for _, t := range AvailableThemes() {
		if t.Name == style {
			return true
		}
	}
	return style == "tokyo-night"
}

// ThemeInfo contains information about a theme for display purposes.
type ThemeInfo struct {
	Name        string
	Description string
}

// AvailableThemes returns the markdown styles that need no style file.
func AvailableThemes() []ThemeInfo {
	return []ThemeInfo{
		{Name: ThemeDark, Description: "Dark theme (default)"},
		{Name: ThemeLight, Description: "Light theme for bright terminals"},
		{Name: ThemePink, Description: "Pink accents"},
		{Name: ThemeTokyoNight, Description: "Tokyo Night color scheme"},
		{Name: ThemeDracula, Description: "Dracula color scheme"},
		{Name: ThemeNoTTY, Description: "Plain text (no styling)"},
		{Name: ThemeASCII, Description: "ASCII-only output"},
	}
}

// ThemeNames returns just the theme names for selection.
func ThemeNames() []string {
	themes := AvailableThemes()
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}
