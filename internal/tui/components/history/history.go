// Package history renders the adherence log as a table.
package history

import (
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/medimate/internal/constants"
	"github.com/julianstephens/medimate/internal/models"
)

type Model struct {
	table  table.Model
	filter models.LogFilter
	count  int
}

func New(width, height int) Model {
	t := table.New(
		table.WithColumns(columns(width)),
		table.WithFocused(true),
		table.WithHeight(max(height, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57"))
	t.SetStyles(s)

	return Model{table: t, filter: models.LogFilterAll}
}

func columns(width int) []table.Column {
	name := 24
	if width > 80 {
		name = width - 56
	}
	return []table.Column{
		{Title: "Taken at", Width: 18},
		{Title: "Name", Width: name},
		{Title: "Dose", Width: 14},
		{Title: "Schedule", Width: 16},
	}
}

func (m Model) Filter() models.LogFilter {
	return m.filter
}

// Toggle flips between all events and today's events
func (m *Model) Toggle() models.LogFilter {
	if m.filter == models.LogFilterToday {
		m.filter = models.LogFilterAll
	} else {
		m.filter = models.LogFilterToday
	}
	return m.filter
}

func (m *Model) SetEntries(entries []models.LogEntry) {
	rows := make([]table.Row, len(entries))
	for i, e := range entries {
		rows[i] = table.Row{e.TakenAt.Format(constants.DisplayFormat), e.Name, e.Dose, e.Schedule}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
	m.count = len(entries)
}

func (m Model) Len() int {
	return m.count
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	title := "History (all)"
	if m.filter == models.LogFilterToday {
		title = "History (today)"
	}

	if m.count == 0 {
		if m.filter == models.LogFilterToday {
			return title + "\n\n  Nothing logged today."
		}
		return title + "\n\n  Nothing logged yet."
	}
	return title + "\n\n" + m.table.View()
}

func (m *Model) SetSize(width, height int) {
	m.table.SetColumns(columns(width))
	m.table.SetHeight(max(height, 3))
}
