package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stefanpenner/quest/pkg/engine"
	"github.com/stefanpenner/quest/pkg/goal"
)

const minWidth = 40
const minHeight = 10

// View implements tea.Model.
func (m Model) View() string {
	w := m.width
	h := m.height
	if w < minWidth {
		w = minWidth
	}
	if h < minHeight {
		h = minHeight
	}

	if m.showHelpModal {
		return placeOverlay(m.renderHelpModal(), w, h)
	}

	if m.showResetConfirm {
		return placeOverlay(m.renderResetModal(), w, h)
	}

	if m.isAdding {
		return placeOverlay(m.renderAddModal(), w, h)
	}

	var b strings.Builder

	b.WriteString(m.renderHeader(w))
	b.WriteString("\n")
	b.WriteString(m.renderBadges(w))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", w))
	b.WriteString("\n")

	headerLines := 3
	footerLines := 2

	searchActive := m.isSearching || m.searchQuery != ""
	if searchActive {
		headerLines++
		b.WriteString(m.renderSearchBar(w))
		b.WriteString("\n")
	}

	contentHeight := h - headerLines - footerLines

	leftWidth := w / 3
	rightWidth := w - leftWidth - 1
	if leftWidth < 20 {
		leftWidth = 20
	}
	if rightWidth < 20 {
		rightWidth = 20
	}

	leftPanel := m.renderGoalPanel(leftWidth, contentHeight)
	rightPanel := m.renderDetailPanel(rightWidth, contentHeight)

	sepColor := ColorGrayDim
	if m.focusedPane == 1 {
		sepColor = ColorPurple
	}
	sep := lipgloss.NewStyle().Foreground(sepColor).Render("│")
	for i := 0; i < contentHeight; i++ {
		b.WriteString(getLine(leftPanel, i, leftWidth))
		b.WriteString(sep)
		b.WriteString(getLine(rightPanel, i, rightWidth))
		b.WriteString("\n")
	}

	b.WriteString(strings.Repeat("─", w))
	b.WriteString("\n")
	b.WriteString(m.renderFooter(w))

	return b.String()
}

func (m Model) renderHeader(width int) string {
	title := HeaderStyle.Render("Eternal Quest")
	save := m.app.SaveName
	if m.dirty {
		save += "*"
	}
	title += HeaderCountStyle.Render(" · " + save)

	e := m.app.Engine
	stats := HeaderCountStyle.Render(fmt.Sprintf("%d points  ", e.Score())) +
		LevelStyle.Render(fmt.Sprintf("Level %d", e.Level()))

	status := ""
	if m.statusMsg != "" && time.Now().Before(m.statusTimeout) {
		status = lipgloss.NewStyle().Foreground(ColorCyan).Render(m.statusMsg) + "  "
	}

	gap := width - lipgloss.Width(title) - lipgloss.Width(stats) - lipgloss.Width(status)
	if gap < 1 {
		gap = 1
	}

	return title + strings.Repeat(" ", gap) + status + stats
}

func (m Model) renderBadges(width int) string {
	badges := m.app.Engine.Badges()
	if len(badges) == 0 {
		return FooterStyle.Render("Badges: none yet")
	}
	line := FooterStyle.Render("Badges: ")
	for i, b := range badges {
		if i > 0 {
			line += FooterStyle.Render("  ")
		}
		line += BadgeStyle.Render(IconBadge + " " + b)
	}
	if lipgloss.Width(line) > width {
		return FooterStyle.Render(fmt.Sprintf("Badges: %d earned", len(badges)))
	}
	return line
}

func (m Model) renderSearchBar(width int) string {
	prefix := SearchBarStyle.Render(" / ")
	query := SearchBarStyle.Render(m.searchQuery)
	cursor := ""
	if m.isSearching {
		cursor = SearchBarStyle.Render("█")
	}

	countStr := ""
	if m.searchQuery != "" {
		countStr = SearchCountStyle.Render(fmt.Sprintf(" %d matches", len(m.visibleItems)))
	}

	left := prefix + query + cursor
	padWidth := width - lipgloss.Width(left) - lipgloss.Width(countStr)
	if padWidth < 1 {
		padWidth = 1
	}

	return left + strings.Repeat(" ", padWidth) + countStr
}

func (m Model) renderGoalPanel(width, height int) string {
	var lines []string

	// Reserve last line for the save path
	listHeight := height - 1
	if listHeight < 1 {
		listHeight = 1
	}

	if len(m.visibleItems) == 0 {
		if m.searchQuery != "" {
			lines = append(lines, FooterStyle.Render("No matching goals."))
		} else {
			lines = append(lines, FooterStyle.Render("No goals yet. Press 'a' to add one."))
		}
	}

	// Scrolling window
	startIdx := 0
	endIdx := len(m.visibleItems)
	if len(m.visibleItems) > listHeight {
		startIdx = m.cursor - listHeight/2
		if startIdx < 0 {
			startIdx = 0
		}
		endIdx = startIdx + listHeight
		if endIdx > len(m.visibleItems) {
			endIdx = len(m.visibleItems)
			startIdx = endIdx - listHeight
		}
	}

	for i := startIdx; i < endIdx; i++ {
		lines = append(lines, m.renderGoalItem(m.visibleItems[i], i == m.cursor, width))
	}

	for len(lines) < listHeight {
		lines = append(lines, "")
	}

	pathLine := lipgloss.NewStyle().Foreground(ColorGrayDim).Render(fileHyperlink(m.app.SavePath()))
	lines = append(lines, pathLine)

	return strings.Join(lines, "\n")
}

func (m Model) renderGoalItem(item GoalItem, isSelected bool, width int) string {
	var icon string
	switch item.Icon {
	case IconComplete:
		icon = CompleteStyle.Render(item.Icon)
	case IconInProgress:
		icon = InProgressStyle.Render(item.Icon)
	case IconEternal:
		icon = EternalStyle.Render(item.Icon)
	default:
		icon = IncompleteStyle.Render(item.Icon)
	}

	name := item.Name
	if m.searchQuery != "" && !isSelected {
		name = highlightMatch(name, m.searchQuery, SearchCharStyle, NormalStyle)
	}

	suffix := fmt.Sprintf(" %dp", item.Points)
	if item.Progress != "" {
		suffix = " " + item.Progress + suffix
	}

	line := " " + icon + " " + name
	gap := width - lipgloss.Width(line) - lipgloss.Width(suffix)
	if gap < 1 {
		gap = 1
	}
	line += strings.Repeat(" ", gap) + PointsStyle.Render(suffix)

	if isSelected {
		line = SelectedStyle.Render(line)
	}
	return line
}

func (m Model) renderDetailPanel(width, height int) string {
	if m.cursor >= len(m.visibleItems) || len(m.visibleItems) == 0 {
		return FooterStyle.Render(" Select a goal to view details")
	}

	md := goalMarkdown(m.visibleItems[m.cursor].Entry)

	rendered := md
	if m.glamourRenderer != nil {
		if out, err := m.glamourRenderer.Render(md); err == nil {
			rendered = out
		}
	}

	rendered = strings.TrimRight(rendered, "\n ")
	lines := strings.Split(rendered, "\n")

	scroll := m.detailScroll
	if scroll > len(lines)-1 {
		scroll = len(lines) - 1
	}
	if scroll < 0 {
		scroll = 0
	}
	lines = lines[scroll:]

	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

// goalMarkdown renders a goal as markdown for the detail pane.
func goalMarkdown(e engine.Entry) string {
	var md strings.Builder

	md.WriteString("# " + e.Title + "\n\n")

	meta := []string{
		"**Kind:** " + string(e.Kind),
		fmt.Sprintf("**Points:** %d", e.Points),
	}
	switch e.Kind {
	case goal.KindSimple:
		if e.Status.Complete {
			meta = append(meta, "**Status:** complete")
		} else {
			meta = append(meta, "**Status:** open")
		}
	case goal.KindChecklist:
		meta = append(meta, fmt.Sprintf("**Progress:** %d/%d", e.Status.Done, e.Status.Required))
	case goal.KindEternal:
		meta = append(meta, "**Status:** never completes")
	}
	md.WriteString(strings.Join(meta, " | ") + "\n\n")

	md.WriteString("`" + e.Status.Mark() + "`\n\n")

	if e.Description != "" {
		md.WriteString(e.Description + "\n")
	}
	return md.String()
}

func (m Model) renderFooter(width int) string {
	help := m.keys.ShortHelp()
	if m.isSearching {
		help = "type to search  enter/↓ keep filter  esc clear"
	} else if m.searchQuery != "" {
		help = "esc clear filter  ↑↓ nav  space record"
	} else if m.focusedPane == 1 {
		help = "↑↓ scroll details  tab goals  ? help"
	}
	return FooterStyle.Render(help)
}

func (m Model) renderHelpModal() string {
	var b strings.Builder

	b.WriteString(ModalTitleStyle.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")

	keyStyle := lipgloss.NewStyle().Foreground(ColorBlue).Width(16)
	descStyle := lipgloss.NewStyle().Foreground(ColorWhite)

	for _, binding := range m.keys.FullHelp() {
		b.WriteString(keyStyle.Render(binding[0]))
		b.WriteString(descStyle.Render(binding[1]))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(FooterStyle.Render("Press Esc or ? to close"))

	return ModalStyle.Render(b.String())
}

func (m Model) renderResetModal() string {
	var b strings.Builder

	b.WriteString(ModalTitleStyle.Render("Reset"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Clear all goals, badges and %d points?\n\n", m.app.Engine.Score()))
	b.WriteString(lipgloss.NewStyle().Foreground(ColorGreen).Render("[y]") + " Yes  ")
	b.WriteString(lipgloss.NewStyle().Foreground(ColorRed).Render("[n]") + " No")

	return ModalStyle.Render(b.String())
}

func (m Model) renderAddModal() string {
	var b strings.Builder

	title := "New Goal"
	if m.form.step > stepKind {
		title = "New " + string(m.form.kind) + " Goal"
	}
	b.WriteString(ModalTitleStyle.Render(title))
	b.WriteString("\n\n")

	if m.form.title != "" {
		b.WriteString(FooterStyle.Render(m.form.title))
		b.WriteString("\n\n")
	}

	b.WriteString(InputPromptStyle.Render(m.form.prompt()))
	b.WriteString("\n")
	b.WriteString(InputStyle.Render(m.form.input.View()))
	b.WriteString("\n\n")

	if m.statusMsg != "" && time.Now().Before(m.statusTimeout) {
		b.WriteString(lipgloss.NewStyle().Foreground(ColorRed).Render(m.statusMsg))
		b.WriteString("\n")
	}
	b.WriteString(FooterStyle.Render("enter next  esc cancel"))

	return ModalStyle.Render(b.String())
}

// highlightMatch splits name into before/match/after and styles the match portion
// with charStyle, and the rest with rowStyle. The match is case-insensitive.
func highlightMatch(name, query string, charStyle, rowStyle lipgloss.Style) string {
	lower := strings.ToLower(name)
	idx := strings.Index(lower, strings.ToLower(query))
	if idx < 0 {
		return rowStyle.Render(name)
	}
	before := name[:idx]
	match := name[idx : idx+len(query)]
	after := name[idx+len(query):]

	var result string
	if before != "" {
		result += rowStyle.Render(before)
	}
	result += charStyle.Render(match)
	if after != "" {
		result += rowStyle.Render(after)
	}
	return result
}

// fileHyperlink wraps a file path in an OSC 8 terminal hyperlink so it's clickable.
func fileHyperlink(path string) string {
	url := "file://" + path
	return fmt.Sprintf("\x1b]8;;%s\x1b\\%s\x1b]8;;\x1b\\", url, path)
}

// Helper functions

func getLine(block string, idx int, width int) string {
	lines := strings.Split(block, "\n")
	if idx < len(lines) {
		line := lines[idx]
		lineWidth := lipgloss.Width(line)
		if lineWidth < width {
			return line + strings.Repeat(" ", width-lineWidth)
		}
		return line
	}
	return strings.Repeat(" ", width)
}

func placeOverlay(modal string, width, height int) string {
	modalLines := strings.Split(modal, "\n")

	topPadding := (height - len(modalLines)) / 2
	if topPadding < 0 {
		topPadding = 0
	}

	leftPadding := (width - lipgloss.Width(modalLines[0])) / 2
	if leftPadding < 0 {
		leftPadding = 0
	}

	var result strings.Builder
	for i := 0; i < topPadding; i++ {
		result.WriteString("\n")
	}

	for _, line := range modalLines {
		result.WriteString(strings.Repeat(" ", leftPadding))
		result.WriteString(line)
		result.WriteString("\n")
	}

	return result.String()
}
