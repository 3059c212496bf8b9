package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// TabsModel represents a horizontal tab bar.
type TabsModel struct {
	Tabs   []string
	Active int
	theme  *Theme
}

// NewTabs creates a new tab bar with the given labels.
func NewTabs(theme *Theme, tabs ...string) TabsModel {
	return TabsModel{
		Tabs:   tabs,
		Active: 0,
		theme:  theme,
	}
}

// SetActive sets the active tab index.
func (m *TabsModel) SetActive(index int) {
	if index >= 0 && index < len(m.Tabs) {
		m.Active = index
	}
}

// Next moves to the next tab.
func (m *TabsModel) Next() {
	if len(m.Tabs) == 0 {
		return
	}
	m.Active = (m.Active + 1) % len(m.Tabs)
}

// Prev moves to the previous tab.
func (m *TabsModel) Prev() {
	if len(m.Tabs) == 0 {
		return
	}
	m.Active = (m.Active - 1 + len(m.Tabs)) % len(m.Tabs)
}

// ViewWithResults renders the tabs with a pass or fail mark per tab.
func (m TabsModel) ViewWithResults(passed []bool, width int) string {
	tabs := make([]string, 0, len(m.Tabs))
	for i, tab := range m.Tabs {
		mark := m.theme.SuccessStyle.Render(IconCheck)
		if i < len(passed) && !passed[i] {
			mark = m.theme.ErrorStyle.Render(IconX)
		}

		style := m.theme.InactiveTab
		if i == m.Active {
			style = m.theme.ActiveTab
		}
		tabs = append(tabs, style.Render(mark+" "+tab))
	}

	gap := lipgloss.NewStyle().
		Foreground(m.theme.Border).
		Render(" │ ")

	row := lipgloss.JoinHorizontal(lipgloss.Top, join(tabs, gap)...)
	if width > 0 {
		return m.theme.TabBar.Width(width).Render(row)
	}
	return m.theme.TabBar.Render(row)
}

// join inserts a separator between items.
func join(items []string, sep string) []string {
	if len(items) == 0 {
		return items
	}
	result := make([]string, 0, len(items)*2-1)
	for i, item := range items {
		if i > 0 {
			result = append(result, sep)
		}
		result = append(result, item)
	}
	return result
}
