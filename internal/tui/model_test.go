package tui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/medimate/internal/models"
	"github.com/julianstephens/medimate/internal/storage/sqlite"
	"github.com/julianstephens/medimate/internal/tracker"
	"github.com/julianstephens/medimate/internal/tui/components/medlist"
)

func setupTestModel(t *testing.T, meds ...models.MedicationInput) (Model, *tracker.MedStore, *tracker.AdherenceLog) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(context.Background()); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	medStore := tracker.NewMedStore(store)
	log := tracker.NewAdherenceLog(store)
	for _, in := range meds {
		if _, err := medStore.Create(context.Background(), in); err != nil {
			t.Fatalf("failed to create medication: %v", err)
		}
	}

	m := NewModel(medStore, log)
	m = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	m = send(t, m, m.Init()())
	return m, medStore, log
}

// send delivers msg and then, a few levels deep, every message produced by
// the commands it returns
func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	return deliver(m, msg, 0)
}

func deliver(m Model, msg tea.Msg, depth int) Model {
	next, cmd := m.Update(msg)
	m = next.(Model)
	if depth >= 4 {
		return m
	}
	for _, out := range run(cmd) {
		m = deliver(m, out, depth+1)
	}
	return m
}

func run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			msgs = append(msgs, run(c)...)
		}
		return msgs
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// press delivers a key and follows the chain of commands it triggers
func press(t *testing.T, m Model, k string) Model {
	t.Helper()
	return send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
}

var aspirin = models.MedicationInput{Name: "Aspirin", Dose: "100mg", Schedule: "Morning"}

func TestModel_ListsMedications(t *testing.T) {
	m, _, _ := setupTestModel(t, aspirin, models.MedicationInput{Name: "Zinc", Dose: "25mg", Schedule: "Evening"})

	view := m.View()
	for _, want := range []string{"Medications", "Aspirin (100mg)", "Zinc (25mg)", "never"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q, got:\n%s", want, view)
		}
	}
}

func TestModel_EmptyState(t *testing.T) {
	m, _, _ := setupTestModel(t)
	if !strings.Contains(m.View(), "No medications yet.") {
		t.Errorf("expected empty state, got:\n%s", m.View())
	}
}

func TestModel_TakeSelected(t *testing.T) {
	m, _, log := setupTestModel(t, aspirin)

	m = press(t, m, "t")

	entries, err := log.ListRecent(context.Background(), models.LogFilterAll)
	if err != nil {
		t.Fatalf("ListRecent() error = %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "Aspirin" {
		t.Fatalf("expected one Aspirin event, got %+v", entries)
	}
	if m.statusErr || !strings.Contains(m.status, "Marked Aspirin as taken") {
		t.Errorf("unexpected status %q (error=%v)", m.status, m.statusErr)
	}
	if strings.Contains(m.View(), "last taken: never") {
		t.Error("expected last taken to refresh after marking")
	}
}

func TestModel_DeleteConfirm(t *testing.T) {
	m, meds, _ := setupTestModel(t, aspirin)
	bg := context.Background()

	m = press(t, m, "d")
	if m.state != StateConfirmDelete {
		t.Fatalf("expected confirm state, got %v", m.state)
	}
	if !strings.Contains(m.View(), "Delete Aspirin (100mg)") {
		t.Errorf("expected confirmation prompt, got:\n%s", m.View())
	}
	if !strings.Contains(m.View(), "╭") || !strings.Contains(m.View(), "[y] Yes    [n] No") {
		t.Errorf("expected boxed confirmation, got:\n%s", m.View())
	}

	m = press(t, m, "n")
	if m.state != StateMeds {
		t.Fatalf("expected to return to the list, got %v", m.state)
	}
	if list, _ := meds.ListAll(bg); len(list) != 1 {
		t.Fatal("cancelled delete removed the medication")
	}

	m = press(t, m, "d")
	m = press(t, m, "y")
	if list, _ := meds.ListAll(bg); len(list) != 0 {
		t.Errorf("expected medication to be deleted, got %+v", list)
	}
	if !strings.Contains(m.View(), "No medications yet.") {
		t.Errorf("expected list to refresh after delete, got:\n%s", m.View())
	}
}

func TestModel_HistoryToggle(t *testing.T) {
	m, _, _ := setupTestModel(t, aspirin)

	m = press(t, m, "t")
	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.state != StateHistory {
		t.Fatalf("expected history state, got %v", m.state)
	}
	if !strings.Contains(m.View(), "History (all)") || !strings.Contains(m.View(), "Aspirin") {
		t.Errorf("unexpected history view:\n%s", m.View())
	}
	if m.history.Len() != 1 {
		t.Errorf("expected one history row, got %d", m.history.Len())
	}

	m = press(t, m, "f")
	if m.history.Filter() != models.LogFilterToday {
		t.Fatalf("expected today filter, got %v", m.history.Filter())
	}
	if !strings.Contains(m.View(), "History (today)") || m.history.Len() != 1 {
		t.Errorf("expected today's event to be listed, got:\n%s", m.View())
	}

	m = press(t, m, "f")
	if m.history.Filter() != models.LogFilterAll {
		t.Errorf("expected filter to toggle back to all, got %v", m.history.Filter())
	}
}

func TestModel_AddForm(t *testing.T) {
	m, meds, _ := setupTestModel(t)

	next, _ := m.Update(medlist.AddMedMsg{})
	m = next.(Model)
	if m.state != StateForm || m.form == nil {
		t.Fatalf("expected form state, got %v", m.state)
	}
	if m.editingID != 0 {
		t.Errorf("expected add mode, got editing id %d", m.editingID)
	}

	m.formInput.Name = " Vitamin D "
	m.formInput.Dose = "1000IU"
	m.formInput.Schedule = "Morning"
	m = send(t, m, m.saveForm()())

	list, err := meds.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	if len(list) != 1 || list[0].Name != "Vitamin D" {
		t.Errorf("expected Vitamin D to be saved, got %+v", list)
	}
	if m.status != "Medication added." {
		t.Errorf("unexpected status %q", m.status)
	}
}

func TestModel_EditForm(t *testing.T) {
	m, meds, _ := setupTestModel(t, aspirin)
	bg := context.Background()

	existing, err := meds.ListAll(bg)
	if err != nil || len(existing) != 1 {
		t.Fatalf("failed to list medications: %v", err)
	}

	next, _ := m.Update(medlist.EditMedMsg{Med: existing[0]})
	m = next.(Model)
	if m.editingID != existing[0].ID || m.formInput.Name != "Aspirin" {
		t.Fatalf("expected form prefilled for edit, got id=%d input=%+v", m.editingID, m.formInput)
	}

	m.formInput.Dose = "200mg"
	m = send(t, m, m.saveForm()())

	med, err := meds.Get(bg, existing[0].ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if med.Dose != "200mg" {
		t.Errorf("expected dose to be updated, got %q", med.Dose)
	}
}

func TestModel_FormValidationError(t *testing.T) {
	m, _, _ := setupTestModel(t)

	next, _ := m.Update(medlist.AddMedMsg{})
	m = next.(Model)
	m.formInput.Name = "Aspirin"
	m = send(t, m, m.saveForm()())

	if !m.statusErr || m.status != "Please fill in Name, Dose, and Schedule." {
		t.Errorf("expected validation status, got %q (error=%v)", m.status, m.statusErr)
	}
}

func TestModel_FormEscape(t *testing.T) {
	m, _, _ := setupTestModel(t)

	next, _ := m.Update(medlist.AddMedMsg{})
	m = next.(Model)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)
	if m.state != StateMeds {
		t.Errorf("expected escape to close the form, got %v", m.state)
	}
}

func TestModel_Quit(t *testing.T) {
	m, _, _ := setupTestModel(t)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	m = next.(Model)
	if !m.quitting || cmd == nil {
		t.Fatal("expected q to quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected a quit command")
	}
	if m.View() != "" {
		t.Error("expected empty view after quitting")
	}
}

func TestFieldValidator(t *testing.T) {
	check := fieldValidator("Name", 5, true)

	tests := []struct {
		in      string
		wantErr bool
	}{
		{in: "Zinc"},
		{in: "  Zinc  "},
		{in: "", wantErr: true},
		{in: "   ", wantErr: true},
		{in: "Aspirin", wantErr: true},
	}
	for _, tt := range tests {
		if err := check(tt.in); (err != nil) != tt.wantErr {
			t.Errorf("fieldValidator(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
	}
}
