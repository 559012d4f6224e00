package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/pawsitive/internal/config"
	"github.com/diogo/pawsitive/internal/render"
)

// configView represents the current view in the settings editor
type configView int

const (
	viewMain configView = iota
	viewNameEdit
	viewThemeSelect    // Markdown style
	viewTUIThemeSelect // color theme
)

// Menu item indices for the main view
const (
	menuCompanionName = iota
	menuCopyToClipboard
	menuTypingDelay
	menuTheme
	menuTUITheme
	menuExit
	menuItemCount
)

// typingDelays are the presets the typing delay item cycles through, in ms
var typingDelays = []int{0, 750, 1500, 3000}

// feedbackClearMsg clears the feedback line unless a newer one replaced it
type feedbackClearMsg struct{ seq int }

// ConfigOptions configures the settings editor
type ConfigOptions struct {
	// Config is the file content, without environment overrides
	Config config.Config
	// Path is shown in the header
	Path string
	// Save persists the config; defaults to config.SaveConfig
	Save func(config.Config) error
}

// ConfigModel is the interactive settings editor
type ConfigModel struct {
	config config.Config
	path   string
	save   func(config.Config) error

	view           configView
	cursor         int
	themeCursor    int
	tuiThemeCursor int
	nameInput      textinput.Model

	feedback        string
	feedbackErr     bool
	feedbackSeq     int
	feedbackTimeout time.Duration

	width  int
	height int
	ready  bool
}

// NewConfigModel creates the settings editor for opts.Config
func NewConfigModel(opts ConfigOptions) ConfigModel {
	if opts.Save == nil {
		opts.Save = config.SaveConfig
	}
	cfg := opts.Config

	ti := textinput.New()
	ti.Placeholder = "Buddy"
	ti.CharLimit = 24
	ti.Width = 24

	return ConfigModel{
		config:          cfg,
		path:            opts.Path,
		save:            opts.Save,
		themeCursor:     indexOf(render.ThemeNames(), markdownStyle(cfg)),
		tuiThemeCursor:  indexOf(render.TUIThemeNames(), cfg.TUITheme),
		nameInput:       ti,
		feedbackTimeout: 2 * time.Second,
	}
}

func markdownStyle(cfg config.Config) string {
	if cfg.Markdown.Style == "" {
		return render.ThemeDark
	}
	return cfg.Markdown.Style
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return 0
}

// Init initializes the model
func (m ConfigModel) Init() tea.Cmd {
	return nil
}

func wrap(i, n int) int {
	return (i%n + n) % n
}

// Update handles messages and updates the model
func (m ConfigModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

	case feedbackClearMsg:
		if msg.seq == m.feedbackSeq {
			m.feedback = ""
			m.feedbackErr = false
		}

	case tea.KeyMsg:
		if m.view == viewNameEdit {
			return m.updateNameEdit(msg)
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "esc":
			if m.view == viewMain {
				return m, tea.Quit
			}
			m.view = viewMain

		case "up", "k":
			m.move(-1)

		case "down", "j":
			m.move(1)

		case "enter", " ":
			return m.handleSelect()
		}
	}

	return m, nil
}

func (m *ConfigModel) move(delta int) {
	switch m.view {
	case viewMain:
		m.cursor = wrap(m.cursor+delta, menuItemCount)
	case viewThemeSelect:
		m.themeCursor = wrap(m.themeCursor+delta, len(render.ThemeNames()))
	case viewTUIThemeSelect:
		m.tuiThemeCursor = wrap(m.tuiThemeCursor+delta, len(render.TUIThemeNames()))
	}
}

func (m ConfigModel) updateNameEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		m.nameInput.Blur()
		m.view = viewMain
		return m, nil
	case tea.KeyEnter:
		name := strings.TrimSpace(m.nameInput.Value())
		m.nameInput.Blur()
		m.view = viewMain
		if name == "" {
			return m.setFeedback("Name cannot be empty", true)
		}
		m.config.CompanionName = name
		return m.persist(fmt.Sprintf("Companion renamed to %s", name))
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

// handleSelect handles menu item selection
func (m ConfigModel) handleSelect() (tea.Model, tea.Cmd) {
	switch m.view {
	case viewMain:
		switch m.cursor {
		case menuCompanionName:
			m.view = viewNameEdit
			m.nameInput.SetValue(m.config.CompanionName)
			m.nameInput.CursorEnd()
			cmd := m.nameInput.Focus()
			return m, cmd

		case menuCopyToClipboard:
			m.config.CopyToClipboard = !m.config.CopyToClipboard
			return m.persist(fmt.Sprintf("Copy to clipboard %s", onOff(m.config.CopyToClipboard)))

		case menuTypingDelay:
			m.config.TypingDelayMs = nextDelay(m.config.TypingDelayMs)
			return m.persist(fmt.Sprintf("Typing delay set to %s", m.config.TypingDelay()))

		case menuTheme:
			m.view = viewThemeSelect

		case menuTUITheme:
			m.view = viewTUIThemeSelect

		case menuExit:
			return m, tea.Quit
		}

	case viewThemeSelect:
		m.config.Markdown.Style = render.ThemeNames()[m.themeCursor]
		m.view = viewMain
		return m.persist(fmt.Sprintf("Markdown style set to %s", m.config.Markdown.Style))

	case viewTUIThemeSelect:
		selected := render.TUIThemeNames()[m.tuiThemeCursor]
		m.config.TUITheme = selected
		render.SetTUITheme(selected)
		UpdateTheme()
		m.view = viewMain
		return m.persist(fmt.Sprintf("Color theme set to %s", selected))
	}

	return m, nil
}

func nextDelay(current int) int {
	for _, d := range typingDelays {
		if d > current {
			return d
		}
	}
	return typingDelays[0]
}

func onOff(v bool) string {
	if v {
		return "enabled"
	}
	return "disabled"
}

func (m ConfigModel) persist(feedback string) (tea.Model, tea.Cmd) {
	if err := m.save(m.config); err != nil {
		return m.setFeedback(fmt.Sprintf("Error: %v", err), true)
	}
	return m.setFeedback(feedback, false)
}

func (m ConfigModel) setFeedback(text string, isErr bool) (tea.Model, tea.Cmd) {
	m.feedback = text
	m.feedbackErr = isErr
	m.feedbackSeq++
	seq := m.feedbackSeq
	return m, tea.Tick(m.feedbackTimeout, func(time.Time) tea.Msg {
		return feedbackClearMsg{seq: seq}
	})
}

// Config returns the settings as edited so far
func (m ConfigModel) Config() config.Config {
	return m.config
}

// View renders the editor
func (m ConfigModel) View() string {
	if !m.ready {
		return hintStyle.Render("  Initializing...")
	}

	contentWidth := max(m.width-4, 40)

	header := headerStyle.Width(contentWidth).Render(
		titleStyle.Render("🐾 Settings") + "  " + subtitleStyle.Render(m.path),
	)

	var body string
	switch m.view {
	case viewMain, viewNameEdit:
		body = m.renderMainMenu()
	case viewThemeSelect:
		body = m.renderChoices("🎨 Markdown style", render.AvailableThemes(), m.themeCursor, markdownStyle(m.config))
	case viewTUIThemeSelect:
		var themes []render.ThemeInfo
		for _, t := range render.AvailableTUIThemes() {
			themes = append(themes, render.ThemeInfo{Name: t.Name, Description: t.Description})
		}
		body = m.renderChoices("🎨 Color theme", themes, m.tuiThemeCursor, m.config.TUITheme)
	}

	sections := []string{header, contentPanelStyle.Width(contentWidth).Render(body)}

	if m.feedback != "" {
		if m.feedbackErr {
			sections = append(sections, errorStyle.Render("✗ "+m.feedback))
		} else {
			sections = append(sections, noticeStyle.Render("✓ "+m.feedback))
		}
	}

	sections = append(sections, m.renderStatusBar(contentWidth))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m ConfigModel) renderMainMenu() string {
	delay := m.config.TypingDelay().String()
	if m.config.TypingDelayMs <= 0 {
		delay = "instant"
	}

	name := companionNameStyle.Render(m.config.CompanionName)
	if m.view == viewNameEdit {
		name = m.nameInput.View()
	}

	rows := []struct {
		label string
		value string
	}{
		{"Companion name", name},
		{"Copy to clipboard", m.renderBool(m.config.CopyToClipboard)},
		{"Typing delay", statValueStyle.Render(delay)},
		{"Markdown style", statValueStyle.Render(markdownStyle(m.config))},
		{"Color theme", statValueStyle.Render(m.config.TUITheme)},
	}

	lines := []string{sectionStyle.Render("⚙ Preferences"), ""}
	for i, r := range rows {
		lines = append(lines, m.menuLine(i, fmt.Sprintf("%-20s", r.label))+r.value)
	}
	lines = append(lines, "", m.menuLine(menuExit, "Exit"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m ConfigModel) menuLine(i int, label string) string {
	if m.cursor == i {
		return activeDotStyle.Render("▸ ") + titleStyle.Render(label)
	}
	return "  " + subtitleStyle.Render(label)
}

func (m ConfigModel) renderChoices(title string, items []render.ThemeInfo, cursor int, current string) string {
	lines := []string{sectionStyle.Render(title), ""}
	for i, t := range items {
		prefix, style := "  ", subtitleStyle
		if i == cursor {
			prefix, style = activeDotStyle.Render("▸ "), titleStyle
		}
		line := prefix + style.Render(fmt.Sprintf("%s - %s", t.Name, t.Description))
		if t.Name == current {
			line += noticeStyle.Render(" (current)")
		}
		lines = append(lines, line)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m ConfigModel) renderBool(v bool) string {
	if v {
		return noticeStyle.Render("enabled")
	}
	return hintStyle.Render("disabled")
}

func (m ConfigModel) renderStatusBar(width int) string {
	back := "Exit"
	if m.view != viewMain {
		back = "Back"
	}
	shortcuts := []struct{ key, desc string }{
		{"↑↓", "Navigate"},
		{"Enter", "Select"},
		{"Esc", back},
	}

	var items []string
	for _, s := range shortcuts {
		items = append(items, statusKeyStyle.Render(s.key)+statusDescStyle.Render(" "+s.desc))
	}
	return statusBarStyle.Width(width).Align(lipgloss.Center).Render(strings.Join(items, "  │  "))
}

// RunConfig starts the settings editor
func RunConfig(opts ConfigOptions) error {
	p := tea.NewProgram(
		NewConfigModel(opts),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
