package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/pawsitive/internal/chat"
	"github.com/diogo/pawsitive/internal/render"
)

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return typingStyle.Render("  Waking up " + m.session.CompanionName() + "...")
	}

	contentWidth, contentHeight := m.contentSize()

	// ═══ HEADER ═══
	header := headerStyle.Width(m.width - 2).Render(lipgloss.JoinHorizontal(
		lipgloss.Center,
		titleStyle.Render("🐾 Pawsitive Mindset"),
		hintStyle.Render("  •  "),
		streakStyle.Render(fmt.Sprintf("🔥 %d day streak", m.snapshot.Streak)),
	))

	// ═══ COMPANION PANEL ═══
	companion := companionPanelStyle.
		Width(leftWidth - 2).
		Height(contentHeight).
		Render(m.renderCompanion())

	// ═══ CONTENT PANEL ═══
	var body string
	switch m.tab {
	case TabChat:
		body = m.renderChat(contentWidth)
	case TabTips:
		body = m.renderTips(contentWidth)
	case TabProgress:
		body = m.renderProgress(contentWidth)
	case TabAbout:
		body = m.renderAbout(contentWidth)
	}
	content := contentPanelStyle.
		Width(contentWidth + 2).
		Height(contentHeight).
		Render(lipgloss.JoinVertical(lipgloss.Left, m.renderTabs(), "", body))

	main := lipgloss.JoinHorizontal(lipgloss.Top, companion, content)

	// ═══ FOOTER ═══
	footer := lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderStatusBar(),
		disclaimerStyle.Width(m.width).Render(Disclaimer),
	)

	return lipgloss.JoinVertical(lipgloss.Left, header, main, footer)
}

// renderCompanion draws the character with its name, mood and hint
func (m Model) renderCompanion() string {
	d := m.pet.Descriptor()
	mood := moodBadgeStyle.Render(fmt.Sprintf("%s %s", d.Indicator, d.Mood))

	hint := "click to pet me"
	if d.Petted {
		hint = "that feels nice!"
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		renderArt(drawCharacter(d)),
		companionNameStyle.Render(m.session.CompanionName()),
		subtitleStyle.Render("Your Mental Health"),
		subtitleStyle.Render("Companion"),
		"",
		mood,
		"",
		hintStyle.Render(hint),
	)
}

func (m Model) renderTabs() string {
	tabs := make([]string, len(tabNames))
	for i, name := range tabNames {
		if Tab(i) == m.tab {
			tabs[i] = activeTabStyle.Render(name)
		} else {
			tabs[i] = tabStyle.Render(name)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderChat(width int) string {
	var typing string
	if m.session.Typing() {
		typing = m.renderTyping()
	}

	input := inputPanelStyle.Width(width - 2).Render(
		lipgloss.JoinHorizontal(lipgloss.Left, inputLabelStyle.Render("You ›"), m.input.View()),
	)

	return lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), typing, input)
}

// renderTyping draws the animated "is typing" line
func (m Model) renderTyping() string {
	dots := ""
	lit := (m.typingFrame / 6) % 4
	for i := 0; i < 3; i++ {
		if i < lit {
			color := typingColors[(m.typingFrame/6+i)%len(typingColors)]
			dots += lipgloss.NewStyle().Foreground(color).Render("●")
		} else {
			dots += lipgloss.NewStyle().Foreground(colorTextMute).Render("○")
		}
	}
	return fmt.Sprintf("%s %s %s", m.spinner.View(), typingStyle.Render(m.session.CompanionName()+" is typing"), dots)
}

// updateViewport refreshes the viewport content with styled messages
func (m *Model) updateViewport() {
	if !m.ready {
		return
	}
	var content strings.Builder
	bubbleWidth := m.viewport.Width - 6
	if bubbleWidth < 10 {
		bubbleWidth = 10
	}
	opts := m.opts.Render.WithWidth(bubbleWidth - 4)

	for i, msg := range m.session.Messages() {
		if i > 0 {
			content.WriteString("\n")
		}
		stamp := timestampStyle.Render(" " + msg.Timestamp.Format("15:04"))

		if msg.Sender == chat.SenderUser {
			label := userLabelStyle.Render("● You") + stamp
			bubble := userBubbleStyle.Width(bubbleWidth).Render(msg.Text)
			content.WriteString(label + "\n" + bubble)
		} else {
			label := companionLabelStyle.Render("🐾 "+m.session.CompanionName()) + stamp
			bubble := companionBubbleStyle.Width(bubbleWidth).Render(render.MarkdownOrPlain(msg.Text, opts))
			content.WriteString(label + "\n" + bubble)
		}
		content.WriteString("\n")
	}

	m.viewport.SetContent(content.String())
}

func (m Model) renderTips(width int) string {
	cat := m.browser.Category()
	catalog := m.browser.Catalog()

	chips := make([]string, len(catalog.Categories))
	for i, c := range catalog.Categories {
		label := fmt.Sprintf("%d %s", i+1, c.Name)
		if i == m.browser.CategoryIndex() {
			chips[i] = activeChipStyle.Render(label)
		} else {
			chips[i] = chipStyle.Render(label)
		}
	}
	chipRow := lipgloss.NewStyle().Width(width).Render(strings.Join(chips, ""))

	tip := m.browser.Current()
	desc := render.MarkdownOrPlain(tip.Description, m.opts.Render.WithWidth(width-8))
	card := tipCardStyle.Width(width - 2).Render(lipgloss.JoinVertical(
		lipgloss.Left,
		tipTitleStyle.Render(fmt.Sprintf("%s  %s", tip.Icon, tip.Title)),
		"",
		desc,
	))

	dots := make([]string, len(cat.Tips))
	for i := range cat.Tips {
		if i == m.browser.Index() {
			dots[i] = activeDotStyle.Render("●")
		} else {
			dots[i] = dotStyle.Render("○")
		}
	}
	position := lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(strings.Join(dots, " "))

	parts := []string{chipRow, card, position}
	if catalog.Disclaimer != "" {
		parts = append(parts, "", hintStyle.Width(width).Render(catalog.Disclaimer))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) renderProgress(width int) string {
	s := m.snapshot

	avg := "–"
	if v, ok := s.Average(); ok {
		avg = fmt.Sprintf("%.1f/5", v)
	}

	cardWidth := (width - 4) / 4
	if cardWidth < 12 {
		cardWidth = 12
	}
	card := func(value, label string) string {
		return statCardStyle.Width(cardWidth).Render(
			lipgloss.JoinVertical(lipgloss.Center, statValueStyle.Render(value), statLabelStyle.Render(label)),
		)
	}
	cards := lipgloss.JoinHorizontal(
		lipgloss.Top,
		card(fmt.Sprintf("%d", s.Streak), "Day Streak"),
		card(fmt.Sprintf("%d", s.CompletedActivities), "Activities"),
		card(avg, "Average Mood"),
		card(s.Trend(), "Trend"),
	)

	var achievements []string
	for _, a := range s.Achievements() {
		achievements = append(achievements, achievementStyle.Render(fmt.Sprintf("%s  %s - %s", a.Icon, a.Name, a.Description)))
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		cards,
		sectionStyle.Render("Mood History"),
		moodChart(s.MoodHistory),
		sectionStyle.Render("Your Achievements"),
		lipgloss.JoinVertical(lipgloss.Left, achievements...),
	)
}

// moodChart draws one column per day, five rows tall
func moodChart(history []int) string {
	if len(history) == 0 {
		return hintStyle.Render("  No check-ins yet")
	}
	var b strings.Builder
	for level := 5; level >= 1; level-- {
		for _, v := range history {
			if v >= level {
				b.WriteString(barStyle.Render(" ███ "))
			} else {
				b.WriteString("     ")
			}
		}
		b.WriteString("\n")
	}
	for i := range history {
		b.WriteString(statLabelStyle.Render(fmt.Sprintf(" D%-3d", i+1)))
	}
	return b.String()
}

func (m Model) renderAbout(width int) string {
	return render.MarkdownOrPlain(AboutMarkdown(m.session.CompanionName()), m.opts.Render.WithWidth(width))
}

type shortcut struct {
	key  string
	desc string
}

// renderStatusBar shows the active notice, or the shortcuts for the current tab
func (m Model) renderStatusBar() string {
	if m.notice != "" {
		if m.noticeErr {
			return errorStyle.Render("⚠ " + m.notice)
		}
		return noticeStyle.Render("✓ " + m.notice)
	}

	shortcuts := []shortcut{{"Tab", "Switch"}}
	switch m.tab {
	case TabChat:
		shortcuts = append(shortcuts,
			shortcut{"Enter", "Send"},
			shortcut{"^R", "Reset"},
			shortcut{"^Y", "Copy"},
			shortcut{"^S", "Save"},
		)
	case TabTips:
		shortcuts = append(shortcuts,
			shortcut{"←→", "Tip"},
			shortcut{"↑↓ 1-5", "Category"},
		)
	}
	shortcuts = append(shortcuts,
		shortcut{"Alt+P/E/H/B", "Pet/Ear/Hat/Bowtie"},
		shortcut{"Esc", "Quit"},
	)

	items := make([]string, len(shortcuts))
	for i, s := range shortcuts {
		items[i] = statusKeyStyle.Render(s.key) + statusDescStyle.Render(" "+s.desc)
	}
	return statusBarStyle.Width(m.width).Align(lipgloss.Center).Render(strings.Join(items, "  │  "))
}
