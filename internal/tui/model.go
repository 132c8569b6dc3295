package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/medimate/internal/models"
	"github.com/julianstephens/medimate/internal/tracker"
	"github.com/julianstephens/medimate/internal/tui/components/history"
	"github.com/julianstephens/medimate/internal/tui/components/medlist"
)

type SessionState int

const (
	StateMeds SessionState = iota
	StateHistory
	StateForm
	StateConfirmDelete
)

type medsLoadedMsg struct {
	meds []models.Medication
	err  error
}

type historyLoadedMsg struct {
	entries []models.LogEntry
	err     error
}

// actionDoneMsg reports the outcome of a write. Data is reloaded after every
// action, failed or not.
type actionDoneMsg struct {
	status string
	err    error
}

type Model struct {
	meds      *tracker.MedStore
	log       *tracker.AdherenceLog
	state     SessionState
	prevState SessionState
	keys      KeyMap
	help      help.Model
	medList   medlist.Model
	history   history.Model
	form      *huh.Form
	formInput *models.MedicationInput
	// editingID is zero while adding
	editingID    int64
	deleteTarget models.Medication
	status       string
	statusErr    bool
	quitting     bool
	width        int
	height       int
}

func NewModel(meds *tracker.MedStore, log *tracker.AdherenceLog) Model {
	return Model{
		meds:    meds,
		log:     log,
		state:   StateMeds,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		medList: medlist.New(nil, 0, 0),
		history: history.New(0, 0),
	}
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateMeds:
		keys = append(keys, m.keys.Take, m.keys.Add, m.keys.Edit, m.keys.Delete)
	case StateHistory:
		keys = append(keys, m.keys.Filter)
	case StateConfirmDelete:
		keys = []key.Binding{m.keys.Yes, m.keys.No}
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down}

	var actions []key.Binding
	switch m.state {
	case StateMeds:
		actions = []key.Binding{m.keys.Take, m.keys.Add, m.keys.Edit, m.keys.Delete}
	case StateHistory:
		actions = []key.Binding{m.keys.Filter}
	}

	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return m.loadMeds()
}

func (m Model) loadMeds() tea.Cmd {
	return func() tea.Msg {
		meds, err := m.meds.ListAll(context.Background())
		return medsLoadedMsg{meds: meds, err: err}
	}
}

func (m Model) loadHistory() tea.Cmd {
	filter := m.history.Filter()
	return func() tea.Msg {
		entries, err := m.log.ListRecent(context.Background(), filter)
		return historyLoadedMsg{entries: entries, err: err}
	}
}

func (m Model) take(med models.Medication) tea.Cmd {
	return func() tea.Msg {
		if _, err := m.log.RecordTaken(context.Background(), med.ID); err != nil {
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{status: "✅ Marked " + med.Name + " as taken."}
	}
}

func (m Model) deleteMed(med models.Medication) tea.Cmd {
	return func() tea.Msg {
		if err := m.meds.Delete(context.Background(), med.ID); err != nil {
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{status: "Deleted " + med.Name + "."}
	}
}

// saveForm writes the submitted form, creating or updating as appropriate
func (m Model) saveForm() tea.Cmd {
	in := *m.formInput
	id := m.editingID
	return func() tea.Msg {
		bg := context.Background()
		if id == 0 {
			if _, err := m.meds.Create(bg, in); err != nil {
				return actionDoneMsg{err: err}
			}
			return actionDoneMsg{status: "Medication added."}
		}
		if err := m.meds.Update(bg, id, in); err != nil {
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{status: "Medication updated."}
	}
}
