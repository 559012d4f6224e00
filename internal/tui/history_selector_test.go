package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/diogo/pawsitive/internal/history"
	"github.com/diogo/pawsitive/internal/mood"
)

type fakeLister struct {
	entries []history.Entry
	err     error
}

func (f fakeLister) List() ([]history.Entry, error) {
	return f.entries, f.err
}

func testEntries(n int) []history.Entry {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.Local)
	entries := make([]history.Entry, n)
	for i := range entries {
		entries[i] = history.Entry{
			ID:        string(rune('a'+i)) + "-id",
			StartedAt: base.Add(-time.Duration(i) * time.Hour),
			Companion: "Maple",
			Mood:      mood.Thinking,
			Messages:  3 + i,
		}
	}
	return entries
}

func loadedSelector(t *testing.T, lister fakeLister) HistorySelectorModel {
	t.Helper()
	m := NewHistorySelectorModel(lister)
	cmd := m.Init()
	if cmd == nil {
		t.Fatal("Init should load the transcripts")
	}
	m = selectorUpdate(m, tea.WindowSizeMsg{Width: 100, Height: 30})
	return selectorUpdate(m, cmd())
}

func selectorUpdate(m HistorySelectorModel, msg tea.Msg) HistorySelectorModel {
	next, _ := m.Update(msg)
	return next.(HistorySelectorModel)
}

func TestHistorySelector_Loading(t *testing.T) {
	m := NewHistorySelectorModel(fakeLister{})
	if !m.loading {
		t.Error("selector should start loading")
	}
	m = selectorUpdate(m, tea.WindowSizeMsg{Width: 80, Height: 24})
	if !strings.Contains(m.View(), "Loading") {
		t.Error("expected loading view")
	}

	// keys are ignored until the list arrives
	m = selectorUpdate(m, tea.KeyMsg{Type: tea.KeyDown})
	if m.cursor != 0 {
		t.Error("cursor moved while loading")
	}
}

func TestHistorySelector_Navigate(t *testing.T) {
	m := loadedSelector(t, fakeLister{entries: testEntries(3)})

	m = selectorUpdate(m, tea.KeyMsg{Type: tea.KeyUp})
	if m.cursor != 2 {
		t.Errorf("up from the top should wrap, got %d", m.cursor)
	}
	m = selectorUpdate(m, tea.KeyMsg{Type: tea.KeyDown})
	if m.cursor != 0 {
		t.Errorf("down from the bottom should wrap, got %d", m.cursor)
	}
	m = selectorUpdate(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'G'}})
	if m.cursor != 2 {
		t.Errorf("G should jump to the end, got %d", m.cursor)
	}
	m = selectorUpdate(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}})
	if m.cursor != 0 {
		t.Errorf("g should jump to the start, got %d", m.cursor)
	}
}

func TestHistorySelector_Select(t *testing.T) {
	entries := testEntries(3)
	m := loadedSelector(t, fakeLister{entries: entries})

	m = selectorUpdate(m, tea.KeyMsg{Type: tea.KeyDown})
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(HistorySelectorModel)
	if cmd == nil {
		t.Fatal("enter should quit")
	}

	got, ok := m.Selected()
	if !ok || got.ID != entries[1].ID {
		t.Errorf("Selected() = %v, %v", got.ID, ok)
	}
}

func TestHistorySelector_Quit(t *testing.T) {
	m := loadedSelector(t, fakeLister{entries: testEntries(2)})

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("esc should quit")
	}
	if _, ok := next.(HistorySelectorModel).Selected(); ok {
		t.Error("nothing should be selected after esc")
	}
}

func TestHistorySelector_Empty(t *testing.T) {
	m := loadedSelector(t, fakeLister{})

	if !strings.Contains(m.View(), "No saved conversations") {
		t.Error("expected empty hint")
	}
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("enter on an empty list should do nothing")
	}
	if _, ok := next.(HistorySelectorModel).Selected(); ok {
		t.Error("nothing to select")
	}
}

func TestHistorySelector_Error(t *testing.T) {
	m := loadedSelector(t, fakeLister{err: errors.New("permission denied")})
	if !strings.Contains(m.View(), "permission denied") {
		t.Errorf("error not shown: %q", m.View())
	}
}

func TestHistorySelector_View(t *testing.T) {
	m := loadedSelector(t, fakeLister{entries: testEntries(2)})
	view := m.View()
	for _, want := range []string{"Saved conversations", "2 saved", "Maple", "thinking", "4 messages", "Open"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestHistorySelector_Scrolls(t *testing.T) {
	m := loadedSelector(t, fakeLister{entries: testEntries(30)})
	for range 20 {
		m = selectorUpdate(m, tea.KeyMsg{Type: tea.KeyDown})
	}
	view := m.View()
	if !strings.Contains(view, "...") {
		t.Error("long lists should show scroll markers")
	}
	if !strings.Contains(view, "23 messages") {
		t.Error("the selected entry should be visible")
	}
}
