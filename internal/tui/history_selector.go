package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/pawsitive/internal/history"
)

// TranscriptLister lists saved transcripts, newest first
type TranscriptLister interface {
	List() ([]history.Entry, error)
}

// transcriptsLoadedMsg is sent when the transcript list is loaded
type transcriptsLoadedMsg struct {
	entries []history.Entry
	err     error
}

// HistorySelectorModel lets the user pick a saved transcript
type HistorySelectorModel struct {
	store TranscriptLister

	entries []history.Entry
	cursor  int

	loading   bool
	err       error
	confirmed bool

	width  int
	height int
	ready  bool
}

// NewHistorySelectorModel creates a selector over store
func NewHistorySelectorModel(store TranscriptLister) HistorySelectorModel {
	return HistorySelectorModel{
		store:   store,
		loading: true,
	}
}

// Init starts loading the transcripts
func (m HistorySelectorModel) Init() tea.Cmd {
	return m.loadTranscripts()
}

func (m HistorySelectorModel) loadTranscripts() tea.Cmd {
	return func() tea.Msg {
		entries, err := m.store.List()
		return transcriptsLoadedMsg{entries: entries, err: err}
	}
}

// Update handles messages and updates the model
func (m HistorySelectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

	case transcriptsLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.entries = msg.entries

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.loading {
			return m, nil
		}

		switch msg.String() {
		case "esc", "q":
			return m, tea.Quit

		case "up", "k":
			if len(m.entries) > 0 {
				m.cursor = wrap(m.cursor-1, len(m.entries))
			}

		case "down", "j":
			if len(m.entries) > 0 {
				m.cursor = wrap(m.cursor+1, len(m.entries))
			}

		case "home", "g":
			m.cursor = 0

		case "end", "G":
			m.cursor = max(len(m.entries)-1, 0)

		case "enter":
			if len(m.entries) == 0 {
				return m, nil
			}
			m.confirmed = true
			return m, tea.Quit
		}
	}

	return m, nil
}

// View renders the selector
func (m HistorySelectorModel) View() string {
	if !m.ready {
		return hintStyle.Render("  Initializing...")
	}
	if m.loading {
		return hintStyle.Render("  Loading conversations...")
	}
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("  Error: %v", m.err))
	}

	contentWidth := max(m.width-4, 40)

	header := headerStyle.Width(contentWidth).Render(
		titleStyle.Render("📜 Saved conversations") +
			subtitleStyle.Render(fmt.Sprintf("  %d saved", len(m.entries))),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		contentPanelStyle.Width(contentWidth).Render(m.renderList()),
		m.renderStatusBar(contentWidth),
	)
}

func (m HistorySelectorModel) renderList() string {
	if len(m.entries) == 0 {
		return hintStyle.Render("No saved conversations yet. Press Ctrl+S in the chat to save one.")
	}

	maxItems := max(5, m.height-8)
	offset := 0
	if m.cursor >= maxItems {
		offset = m.cursor - maxItems + 1
	}
	end := min(offset+maxItems, len(m.entries))

	var items []string
	if offset > 0 {
		items = append(items, hintStyle.Render("  ..."))
	}
	for i := offset; i < end; i++ {
		items = append(items, m.renderItem(i))
	}
	if end < len(m.entries) {
		items = append(items, hintStyle.Render("  ..."))
	}
	return lipgloss.JoinVertical(lipgloss.Left, items...)
}

func (m HistorySelectorModel) renderItem(i int) string {
	e := m.entries[i]
	cursor, style := "  ", subtitleStyle
	if i == m.cursor {
		cursor, style = activeDotStyle.Render("▸ "), titleStyle
	}

	title := fmt.Sprintf("%s with %s", e.StartedAt.Format("Mon Jan 2 15:04"), e.Companion)
	return cursor + style.Render(title) +
		" " + moodBadgeStyle.Render(e.Mood.Emoji()+" "+e.Mood.String()) +
		timestampStyle.Render(fmt.Sprintf("  %d messages · %s", e.Messages, history.FormatRelativeTime(e.StartedAt)))
}

func (m HistorySelectorModel) renderStatusBar(width int) string {
	shortcuts := []struct{ key, desc string }{
		{"↑↓", "Navigate"},
		{"Enter", "Open"},
		{"Esc", "Quit"},
	}

	var items []string
	for _, s := range shortcuts {
		items = append(items, statusKeyStyle.Render(s.key)+statusDescStyle.Render(" "+s.desc))
	}
	return statusBarStyle.Width(width).Align(lipgloss.Center).Render(strings.Join(items, "  │  "))
}

// Selected returns the chosen transcript, ok is false when the user quit
func (m HistorySelectorModel) Selected() (history.Entry, bool) {
	if !m.confirmed || m.cursor >= len(m.entries) {
		return history.Entry{}, false
	}
	return m.entries[m.cursor], true
}

// RunHistorySelector starts the selector and returns the chosen transcript
func RunHistorySelector(store TranscriptLister) (history.Entry, bool, error) {
	p := tea.NewProgram(
		NewHistorySelectorModel(store),
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return history.Entry{}, false, err
	}
	if hm, ok := final.(HistorySelectorModel); ok {
		e, picked := hm.Selected()
		return e, picked, nil
	}
	return history.Entry{}, false, nil
}
