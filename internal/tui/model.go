package tui

import (
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/pawsitive/internal/character"
	"github.com/diogo/pawsitive/internal/chat"
	"github.com/diogo/pawsitive/internal/mood"
	"github.com/diogo/pawsitive/internal/progress"
	"github.com/diogo/pawsitive/internal/render"
	"github.com/diogo/pawsitive/internal/timer"
	"github.com/diogo/pawsitive/internal/tips"
)

// Tab is one of the content panels
type Tab int

const (
	TabChat Tab = iota
	TabTips
	TabProgress
	TabAbout
)

var tabNames = []string{"Chat", "Tips", "Progress", "About"}

func (t Tab) String() string {
	if t < 0 || int(t) >= len(tabNames) {
		return "Unknown"
	}
	return tabNames[t]
}

// ParseTab maps a tab name to a Tab, case-insensitively
func ParseTab(s string) (Tab, bool) {
	for i, name := range tabNames {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			return Tab(i), true
		}
	}
	return TabChat, false
}

const (
	scopeNotice    timer.Scope = "tui/notice"
	noticeDuration             = 3 * time.Second
)

// Layout constants. The header is three rows and the companion panel has a
// one-cell border plus one cell of padding, so the drawing starts at (2, 4).
const (
	headerHeight = 3
	footerHeight = 2
	artOriginX   = 2
	artOriginY   = headerHeight + 1
	leftWidth    = artWidth + 4
)

// Messages
type (
	frameTickMsg      time.Time
	characterTimerMsg struct {
		timer character.Timer
	}
	replyMsg struct {
		pending chat.Pending
	}
	noticeExpiredMsg struct {
		handle timer.Handle
	}
)

// Options configures the companion TUI
type Options struct {
	CompanionName string
	Tab           Tab
	TypingDelay   time.Duration
	FrameInterval time.Duration
	TranscriptDir string
	Catalog       *tips.Catalog
	Snapshot      *progress.Snapshot
	Render        render.Options
	Logger        *slog.Logger
	Rand          *rand.Rand
	// CopyFn writes to the clipboard; defaults to clipboard.WriteAll
	CopyFn func(string) error
	// Warnings are shown once in the status bar at startup
	Warnings []string
}

func (o Options) withDefaults() Options {
	if o.CompanionName == "" {
		o.CompanionName = chat.DefaultCompanionName
	}
	if o.FrameInterval <= 0 {
		o.FrameInterval = 50 * time.Millisecond
	}
	if o.Catalog == nil {
		o.Catalog = tips.Builtin()
	}
	if o.Snapshot == nil {
		s := progress.DefaultSnapshot()
		o.Snapshot = &s
	}
	if o.Render.Style == "" {
		o.Render = render.DefaultOptions()
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.Rand == nil {
		o.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if o.CopyFn == nil {
		o.CopyFn = clipboard.WriteAll
	}
	return o
}

// Model represents the TUI state
type Model struct {
	opts     Options
	timers   *timer.Registry
	session  *chat.Session
	pet      *character.Character
	browser  *tips.Browser
	snapshot progress.Snapshot
	logger   *slog.Logger

	// UI components
	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model

	// State
	tab         Tab
	ready       bool
	startTimers []character.Timer
	notice      string
	noticeErr   bool
	typingFrame int

	// Dimensions
	width  int
	height int
}

// NewModel creates the companion TUI model
func NewModel(opts Options) Model {
	opts = opts.withDefaults()
	timers := timer.NewRegistry()

	sessionOpts := []chat.Option{
		chat.WithClassifier(mood.NewClassifier(mood.WithRand(opts.Rand))),
		chat.WithCompanionName(opts.CompanionName),
		chat.WithRegistry(timers),
		chat.WithLogger(opts.Logger),
	}
	if opts.TypingDelay > 0 {
		sessionOpts = append(sessionOpts, chat.WithTypingDelay(opts.TypingDelay))
	}
	session := chat.NewSession(sessionOpts...)

	pet := character.New(
		character.WithRand(opts.Rand),
		character.WithRegistry(timers),
		character.WithLogger(opts.Logger),
		character.WithMood(session.Mood()),
	)

	ti := textinput.New()
	ti.Placeholder = fmt.Sprintf("Tell %s how you're feeling...", session.CompanionName())
	ti.CharLimit = 500
	ti.Prompt = ""
	ti.TextStyle = lipgloss.NewStyle().Foreground(colorText)
	ti.PlaceholderStyle = lipgloss.NewStyle().Foreground(colorTextDim)
	ti.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = typingStyle

	m := Model{
		opts:        opts,
		timers:      timers,
		session:     session,
		pet:         pet,
		browser:     tips.NewBrowser(opts.Catalog),
		snapshot:    *opts.Snapshot,
		logger:      opts.Logger,
		input:       ti,
		spinner:     s,
		tab:         opts.Tab,
		startTimers: pet.Start(),
	}
	if len(opts.Warnings) > 0 {
		m.notice = strings.Join(opts.Warnings, "; ")
		m.noticeErr = true
	}
	return m
}

// Init starts the animation loop and the character's first timers
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		textinput.Blink,
		m.frameTick(),
		scheduleCharacter(m.startTimers),
	}
	if m.notice != "" {
		cmds = append(cmds, m.armNotice())
	}
	return tea.Batch(cmds...)
}

func (m Model) frameTick() tea.Cmd {
	return tea.Tick(m.opts.FrameInterval, func(t time.Time) tea.Msg {
		return frameTickMsg(t)
	})
}

// scheduleCharacter turns character timers into tea ticks carrying their handle
func scheduleCharacter(timers []character.Timer) tea.Cmd {
	if len(timers) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, len(timers))
	for i, t := range timers {
		t := t
		cmds[i] = tea.Tick(t.Delay, func(time.Time) tea.Msg {
			return characterTimerMsg{timer: t}
		})
	}
	return tea.Batch(cmds...)
}

// syncMood moves the character to the session mood. An unchanged mood keeps
// running animations and interaction timers.
func (m Model) syncMood() []character.Timer {
	if m.pet.Mood() == m.session.Mood() {
		return nil
	}
	return m.pet.SetMood(m.session.Mood())
}

func scheduleReply(p chat.Pending) tea.Cmd {
	return tea.Tick(p.Delay, func(time.Time) tea.Msg {
		return replyMsg{pending: p}
	})
}

// setNotice shows text in the status bar until a newer notice replaces it
func (m *Model) setNotice(text string, isErr bool) tea.Cmd {
	m.notice = text
	m.noticeErr = isErr
	return m.armNotice()
}

func (m Model) armNotice() tea.Cmd {
	m.timers.CancelScope(scopeNotice)
	req := m.timers.Schedule(scopeNotice, noticeDuration)
	return tea.Tick(req.Delay, func(time.Time) tea.Msg {
		return noticeExpiredMsg{handle: req.Handle}
	})
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.updateViewport()
		m.viewport.GotoBottom()

	case tea.KeyMsg:
		if next, cmd, handled := m.handleKey(msg); handled {
			return next, cmd
		}

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			return m.handleClick(msg.X, msg.Y)
		}
		if m.tab == TabChat {
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
		return m, nil

	case frameTickMsg:
		m.pet.Frame()
		if m.session.Typing() {
			m.typingFrame++
		}
		return m, m.frameTick()

	case characterTimerMsg:
		return m, scheduleCharacter(m.pet.Fire(msg.timer))

	case replyMsg:
		reply, ok := m.session.Deliver(msg.pending)
		if !ok {
			return m, nil
		}
		m.logger.Debug("reply delivered", "message_id", reply.ID, "mood", m.session.Mood())
		timers := m.syncMood()
		m.updateViewport()
		m.viewport.GotoBottom()
		return m, scheduleCharacter(timers)

	case noticeExpiredMsg:
		if m.timers.Fire(msg.handle) {
			m.notice = ""
			m.noticeErr = false
		}
		return m, nil

	case spinner.TickMsg:
		if m.session.Typing() {
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	// Only key messages reach the input so escape sequences don't leak into it
	if m.tab == TabChat {
		if _, ok := msg.(tea.KeyMsg); ok {
			m.input, cmd = m.input.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

// handleKey processes shortcuts. handled is false when the key should fall
// through to the text input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.shutdown()
		return m, tea.Quit, true

	case "tab":
		return m.switchTab((m.tab + 1) % Tab(len(tabNames))), nil, true

	case "shift+tab":
		return m.switchTab((m.tab + Tab(len(tabNames)) - 1) % Tab(len(tabNames))), nil, true

	case "alt+p":
		return m, scheduleCharacter(m.pet.Interact(character.ZoneHead)), true
	case "alt+e":
		return m, scheduleCharacter(m.pet.Interact(character.ZoneEar)), true
	case "alt+h":
		return m, scheduleCharacter(m.pet.Interact(character.ZoneHatArea)), true
	case "alt+b":
		return m, scheduleCharacter(m.pet.Interact(character.ZoneNeckArea)), true

	case "ctrl+y":
		cmd := m.copyLastReply()
		return m, cmd, true

	case "ctrl+s":
		cmd := m.saveTranscript()
		return m, cmd, true
	}

	switch m.tab {
	case TabChat:
		return m.handleChatKey(msg)
	case TabTips:
		return m.handleTipsKey(msg)
	}
	return m, nil, true
}

func (m Model) handleChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch msg.String() {
	case "enter":
		spinning := m.session.Typing()
		p, ok := m.session.Send(m.input.Value())
		if !ok {
			return m, nil, true
		}
		m.input.Reset()
		m.typingFrame = 0
		m.updateViewport()
		m.viewport.GotoBottom()
		// one tick chain per typing stretch
		if spinning {
			return m, scheduleReply(p), true
		}
		return m, tea.Batch(scheduleReply(p), m.spinner.Tick), true

	case "ctrl+r":
		m.session.Reset()
		timers := m.syncMood()
		m.input.Reset()
		m.updateViewport()
		m.viewport.GotoTop()
		cmd := tea.Batch(scheduleCharacter(timers), m.setNotice("Started a new conversation", false))
		return m, cmd, true

	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd, true
	}
	return m, nil, false
}

func (m Model) handleTipsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch key := msg.String(); key {
	case "right", "l", "n":
		m.browser.Next()
	case "left", "h", "p":
		m.browser.Prev()
	case "down", "j":
		m.browser.NextCategory()
	case "up", "k":
		m.browser.PrevCategory()
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if i := int(key[0] - '1'); i < len(m.browser.Catalog().Categories) {
				m.browser.SelectIndex(i)
			}
		}
	}
	return m, nil, true
}

func (m Model) switchTab(t Tab) Model {
	m.tab = t
	if t == TabChat {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
	return m
}

// handleClick maps a left click to a tab or a character zone
func (m Model) handleClick(x, y int) (tea.Model, tea.Cmd) {
	if y == headerHeight+1 && x >= leftWidth {
		if t, ok := tabAt(x - leftWidth - 2); ok {
			return m.switchTab(t), nil
		}
		return m, nil
	}

	zone := zoneAt(drawCharacter(m.pet.Descriptor()), x-artOriginX, y-artOriginY)
	if zone == character.ZoneNone {
		return m, nil
	}
	return m, scheduleCharacter(m.pet.Interact(zone))
}

// tabAt returns the tab under column x of the tab row
func tabAt(x int) (Tab, bool) {
	col := 0
	for i, name := range tabNames {
		w := lipgloss.Width(tabStyle.Render(name))
		if x >= col && x < col+w {
			return Tab(i), true
		}
		col += w
	}
	return TabChat, false
}

func (m *Model) copyLastReply() tea.Cmd {
	reply, err := m.session.LastReply()
	if err != nil {
		return m.setNotice(fmt.Sprintf("%s hasn't replied yet", m.session.CompanionName()), true)
	}
	if err := m.opts.CopyFn(reply.Text); err != nil {
		m.logger.Warn("clipboard copy failed", "error", err)
		return m.setNotice("Could not copy to clipboard: "+err.Error(), true)
	}
	return m.setNotice("Copied last reply to clipboard", false)
}

func (m *Model) saveTranscript() tea.Cmd {
	if m.opts.TranscriptDir == "" {
		return m.setNotice("No transcript directory configured", true)
	}
	path, err := chat.SaveTranscript(m.session, m.opts.TranscriptDir, chat.ExportFormatMarkdown)
	if err != nil {
		m.logger.Error("transcript save failed", "error", err)
		return m.setNotice("Could not save transcript: "+err.Error(), true)
	}
	m.logger.Info("transcript saved", "path", path)
	return m.setNotice("Transcript saved to "+path, false)
}

// shutdown drops every pending timer so nothing fires after quit
func (m Model) shutdown() {
	m.pet.Stop()
	m.session.Close()
	m.timers.CancelAll()
}

// resize recomputes component sizes from the window size
func (m *Model) resize() {
	w, h := m.contentSize()
	// tabs row and spacer above, input panel and typing line below
	vpHeight := h - 2 - 3 - 1
	if vpHeight < 3 {
		vpHeight = 3
	}

	if !m.ready {
		m.viewport = viewport.New(w, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = w
		m.viewport.Height = vpHeight
	}
	m.input.Width = w - 10
}

// contentSize is the inner size of the right-hand panel
func (m Model) contentSize() (int, int) {
	w := m.width - leftWidth - 4
	if w < 20 {
		w = 20
	}
	h := m.height - headerHeight - footerHeight - 2
	if h < artHeight+4 {
		h = artHeight + 4
	}
	return w, h
}

// RunCompanion starts the companion TUI
func RunCompanion(opts Options) error {
	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
