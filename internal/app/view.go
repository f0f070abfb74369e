package app

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zhubert/kavosh/internal/ui"
)

// contentHeight is the space between header and footer
func (m *Model) contentHeight() int {
	return max(m.height-ui.HeaderHeight-ui.FooterHeight, 1)
}

// contentWidth is the width of the centered reading column
func (m *Model) contentWidth() int {
	return max(min(m.width, ui.MaxContentWidth), 1)
}

// updateSizes recalculates and applies dimensions to all UI components
func (m *Model) updateSizes() {
	m.header.SetWidth(m.width)
	m.footer.SetWidth(m.width)

	w := m.contentWidth()
	m.bar.SetWidth(w)
	m.answer.SetSize(w, max(m.contentHeight()-ui.SearchBarHeight, 1))
	m.admin.SetSize(w, m.contentHeight())
}

// View renders the app
func (m *Model) View() tea.View {
	var v tea.View
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion

	v.SetContent(m.render())
	return v
}

// render draws the full screen as a string
func (m *Model) render() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	m.footer.SetContext(ui.FooterContext{
		Admin:         m.screen == ScreenAdmin,
		AnswerFocused: m.answer.Focused(),
		Pending:       m.search.Pending(),
		HasSources:    m.answer.HasSources(),
	})

	var body string
	if m.screen == ScreenAdmin {
		body = m.admin.View()
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left, m.answer.View(), m.bar.View())
	}
	body = lipgloss.NewStyle().
		Height(m.contentHeight()).
		MaxHeight(m.contentHeight()).
		Render(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, body))

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.header.View(),
		body,
		m.footer.View(),
	)
}
