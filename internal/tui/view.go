package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateMeds:
		content = contentStyle.Render(m.medList.View())
	case StateHistory:
		content = contentStyle.Render(m.history.View())
	case StateForm:
		content = contentStyle.Render(m.form.View())
	case StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	active := m.state
	if active != StateMeds && active != StateHistory {
		active = m.prevState
	}

	var tabs []string
	for i, title := range []string{"Medications", "History"} {
		if active == SessionState(i) {
			tabs = append(tabs, currentTabStyle.Render(title))
		} else {
			tabs = append(tabs, tabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewStatus() string {
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return statusErrStyle.Render(m.status)
	}
	return statusOKStyle.Render(m.status)
}

func (m Model) viewConfirmDelete() string {
	return lipgloss.Place(m.width, max(m.height-4, 5),
		lipgloss.Center, lipgloss.Center,
		confirmBoxStyle.Render(lipgloss.JoinVertical(lipgloss.Center,
			fmt.Sprintf("Delete %s (%s) and all of its history?", m.deleteTarget.Name, m.deleteTarget.Dose),
			"",
			"[y] Yes    [n] No",
		)),
	)
}
