package tui

import (
	"errors"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/medimate/internal/models"
	"github.com/julianstephens/medimate/internal/storage"
	"github.com/julianstephens/medimate/internal/tui/components/medlist"
	"github.com/julianstephens/medimate/internal/validation"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.medList.SetSize(msg.Width-4, msg.Height-6)
		m.history.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case medsLoadedMsg:
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		m.medList.SetMeds(msg.meds)
		return m, nil

	case historyLoadedMsg:
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		m.history.SetEntries(msg.entries)
		return m, nil

	case actionDoneMsg:
		if msg.err != nil {
			m.setError(msg.err)
		} else {
			m.status, m.statusErr = msg.status, false
		}
		return m, tea.Batch(m.loadMeds(), m.loadHistory())
	}

	switch m.state {
	case StateForm:
		return m.updateForm(msg)
	case StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok && !m.medList.Filtering() {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Tab):
			if m.state == StateMeds {
				m.state = StateHistory
				return m, m.loadHistory()
			}
			m.state = StateMeds
			return m, m.loadMeds()
		}
	}

	if m.state == StateHistory {
		if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, m.keys.Filter) {
			m.history.Toggle()
			return m, m.loadHistory()
		}
		var cmd tea.Cmd
		m.history, cmd = m.history.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case medlist.AddMedMsg:
		return m, m.openForm(models.MedicationInput{}, 0, "Add medication")
	case medlist.EditMedMsg:
		in := models.MedicationInput{
			Name:     msg.Med.Name,
			Dose:     msg.Med.Dose,
			Schedule: msg.Med.Schedule,
			Notes:    msg.Med.Notes,
		}
		return m, m.openForm(in, msg.Med.ID, "Edit medication")
	case medlist.TakeMedMsg:
		return m, m.take(msg.Med)
	case medlist.DeleteMedMsg:
		m.deleteTarget = msg.Med
		m.prevState = m.state
		m.state = StateConfirmDelete
		return m, nil
	}

	var cmd tea.Cmd
	m.medList, cmd = m.medList.Update(msg)
	return m, cmd
}

func (m *Model) openForm(in models.MedicationInput, id int64, title string) tea.Cmd {
	m.formInput = &in
	m.editingID = id
	m.form = NewMedicationForm(m.formInput, title)
	m.prevState = m.state
	m.state = StateForm
	return m.form.Init()
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = m.prevState
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.state = m.prevState
		return m, m.saveForm()
	case huh.StateAborted:
		m.state = m.prevState
		return m, nil
	}
	return m, cmd
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Yes):
		m.state = m.prevState
		return m, m.deleteMed(m.deleteTarget)
	case key.Matches(keyMsg, m.keys.No):
		m.state = m.prevState
		m.deleteTarget = models.Medication{}
	}
	return m, nil
}

func (m *Model) setError(err error) {
	m.statusErr = true

	var vErr *validation.Error
	switch {
	case errors.As(err, &vErr):
		m.status = vErr.Message
	case errors.Is(err, storage.ErrNotFound):
		m.status = "Medication not found."
	default:
		m.status = "Error: " + err.Error()
	}
}
