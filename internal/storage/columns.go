package storage

import (
	"database/sql"
	"fmt"

	"github.com/julianstephens/medimate/internal/models"
	"github.com/julianstephens/medimate/internal/utils"
)

// The meds table stores a medication's schedule in the time_of_day column.
// Every query reads medications through the select lists below and the scan
// functions in this file, so callers only ever see Schedule.
const (
	// MedicationColumns selects a medication row from meds aliased as m
	MedicationColumns = "m.id, m.name, m.dose, m.time_of_day, m.notes, m.created_at"

	// MedicationSummaryColumns adds the derived last_taken column
	MedicationSummaryColumns = MedicationColumns + `,
		(SELECT MAX(t.taken_at) FROM taken_logs t WHERE t.med_id = m.id) AS last_taken`

	// LogEntryColumns selects a taken event (t) joined with its medication (m)
	LogEntryColumns = "t.id, t.med_id, t.taken_at, m.name, m.dose, m.time_of_day"
)

// RowScanner is satisfied by *sql.Row and *sql.Rows
type RowScanner interface {
	Scan(dest ...any) error
}

// ScanMedication reads a row selected with MedicationColumns
func ScanMedication(row RowScanner) (models.Medication, error) {
	return scanMedication(row, false)
}

// ScanMedicationSummary reads a row selected with MedicationSummaryColumns
func ScanMedicationSummary(row RowScanner) (models.Medication, error) {
	return scanMedication(row, true)
}

func scanMedication(row RowScanner, withLastTaken bool) (models.Medication, error) {
	var m models.Medication
	var notes, lastTaken sql.NullString
	var createdAt string

	dest := []any{&m.ID, &m.Name, &m.Dose, &m.Schedule, &notes, &createdAt}
	if withLastTaken {
		dest = append(dest, &lastTaken)
	}

	if err := row.Scan(dest...); err != nil {
		return models.Medication{}, err
	}

	m.Notes = notes.String

	var err error
	m.CreatedAt, err = utils.ParseTimestamp(createdAt)
	if err != nil {
		return models.Medication{}, fmt.Errorf("failed to parse created_at for medication %d: %w", m.ID, err)
	}

	if lastTaken.Valid {
		t, err := utils.ParseTimestamp(lastTaken.String)
		if err != nil {
			return models.Medication{}, fmt.Errorf("failed to parse last_taken for medication %d: %w", m.ID, err)
		}
		m.LastTaken = &t
	}

	return m, nil
}

// ScanLogEntry reads a row selected with LogEntryColumns
func ScanLogEntry(row RowScanner) (models.LogEntry, error) {
	var e models.LogEntry
	var takenAt string

	if err := row.Scan(&e.ID, &e.MedID, &takenAt, &e.Name, &e.Dose, &e.Schedule); err != nil {
		return models.LogEntry{}, err
	}

	t, err := utils.ParseTimestamp(takenAt)
	if err != nil {
		return models.LogEntry{}, fmt.Errorf("failed to parse taken_at for event %d: %w", e.ID, err)
	}
	e.TakenAt = t

	return e, nil
}
