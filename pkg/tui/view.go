package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const timeLayout = "2006-01-02 15:04"

// View renders the current screen.
func (m *model) View() string {
	var body string
	if m.screen == screenPairs {
		body = m.viewPairs()
	} else {
		body = m.viewProfiles()
	}

	parts := []string{m.buildHeader(), body}
	if in := m.buildInput(); in != "" {
		parts = append(parts, in)
	}
	parts = append(parts, m.buildStatus(), m.buildTips())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *model) buildHeader() string {
	if m.screen == screenPairs {
		name := ""
		if s, err := m.lib.Get(m.current); err == nil {
			name = s.Name
		}
		return headerStyle.Render(fmt.Sprintf(" tabresumer › %s ", name))
	}
	return headerStyle.Render(" tabresumer › profiles ")
}

func (m *model) viewProfiles() string {
	if len(m.profiles) == 0 {
		return tipsStyle.Render("  No profiles yet. Press n to create one.")
	}

	var b strings.Builder
	for i, s := range m.profiles {
		line := fmt.Sprintf("%-24s %4d tabs  %-9s  %s",
			truncate(s.Name, 24), s.Pairs, s.SortMode, s.LastModifiedAt.Local().Format(timeLayout))
		b.WriteString(m.renderRow(line, i == m.profileCursor))
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *model) viewPairs() string {
	visible := m.visiblePairs()
	if len(visible) == 0 {
		return tipsStyle.Render("  No tabs. Press a to add one.")
	}

	width := m.width - 4
	if width < 40 {
		width = 80
	}

	var b strings.Builder
	for i, pair := range visible {
		title := truncate(pair.Title, width/2)
		line := fmt.Sprintf("%s  %s", title, urlStyle.Render(truncate(pair.URL, width-len(title)-2)))
		b.WriteString(m.renderRow(line, pair.Highlighted || i == m.pairCursor))
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *model) renderRow(line string, selected bool) string {
	if selected {
		return selectedStyle.Render("› " + line)
	}
	return itemStyle.Render("  " + line)
}

func (m *model) buildInput() string {
	switch m.prompt {
	case promptNone, promptConfirmDelete:
		return ""
	}
	width := m.width - 4
	if width < 20 {
		width = 64
	}
	return inputBoxStyle.Width(width).Render(m.input.View())
}

func (m *model) buildStatus() string {
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return errorStyle.Render("  " + m.status)
	}
	return statusStyle.Render("  " + m.status)
}

func (m *model) buildTips() string {
	var help string
	switch {
	case m.prompt == promptConfirmDelete:
		help = helpLine(keys.Confirm) + " • any other key cancels"
	case m.prompt == promptSearch:
		help = helpLine(keys.Enter, keys.Field, keys.Exact, keys.Back)
	case m.prompt != promptNone:
		help = helpLine(keys.Enter, keys.Back)
	case m.screen == screenPairs:
		help = helpLine(keys.Up, keys.Down, keys.Add, keys.Remove, keys.Sort, keys.Search, keys.Copy, keys.Open, keys.Back)
	default:
		help = helpLine(keys.Up, keys.Down, keys.Enter, keys.New, keys.Rename, keys.Delete, keys.Open, keys.Quit)
	}
	return tipsStyle.Render("  " + help)
}

func truncate(s string, n int) string {
	if n <= 1 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
