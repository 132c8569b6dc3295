package medlist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/medimate/internal/models"
	"github.com/julianstephens/medimate/internal/utils"
)

type AddMedMsg struct{}

type TakeMedMsg struct {
	Med models.Medication
}

type EditMedMsg struct {
	Med models.Medication
}

type DeleteMedMsg struct {
	Med models.Medication
}

type Item struct {
	Med models.Medication
}

func (i Item) Title() string {
	return fmt.Sprintf("%s (%s)", i.Med.Name, i.Med.Dose)
}

func (i Item) Description() string {
	desc := fmt.Sprintf("%s | last taken: %s", i.Med.Schedule, utils.FormatDisplay(i.Med.LastTaken, "never"))
	if i.Med.Notes != "" {
		desc += " | " + i.Med.Notes
	}
	return desc
}

func (i Item) FilterValue() string { return i.Med.Name }

type KeyMap struct {
	Take   key.Binding
	Add    key.Binding
	Edit   key.Binding
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Take: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "mark taken"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(meds []models.Medication, width, height int) Model {
	l := list.New(toItems(meds), list.NewDefaultDelegate(), width, height)
	l.Title = "Medications"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Take, keys.Add, keys.Edit, keys.Delete}
	}
	l.AdditionalFullHelpKeys = l.AdditionalShortHelpKeys

	return Model{list: l, keys: keys}
}

func toItems(meds []models.Medication) []list.Item {
	items := make([]list.Item, len(meds))
	for i, m := range meds {
		items[i] = Item{Med: m}
	}
	return items
}

func (m *Model) SetMeds(meds []models.Medication) {
	m.list.SetItems(toItems(meds))
}

// Selected returns the highlighted medication
func (m Model) Selected() (models.Medication, bool) {
	i, ok := m.list.SelectedItem().(Item)
	if !ok {
		return models.Medication{}, false
	}
	return i.Med, true
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddMedMsg{} }
		case key.Matches(msg, m.keys.Take):
			if med, ok := m.Selected(); ok {
				return m, func() tea.Msg { return TakeMedMsg{Med: med} }
			}
		case key.Matches(msg, m.keys.Edit):
			if med, ok := m.Selected(); ok {
				return m, func() tea.Msg { return EditMedMsg{Med: med} }
			}
		case key.Matches(msg, m.keys.Delete):
			if med, ok := m.Selected(); ok {
				return m, func() tea.Msg { return DeleteMedMsg{Med: med} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No medications yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

// Filtering reports whether the user is typing a filter query
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}
