package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/medimate/internal/models"
	"github.com/julianstephens/medimate/internal/storage"
	"github.com/julianstephens/medimate/internal/utils"
)

func (s *Store) GetAllMedications(ctx context.Context) ([]models.Medication, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+storage.MedicationSummaryColumns+`
		FROM meds m
		ORDER BY m.time_of_day ASC, m.name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	meds := []models.Medication{}
	for rows.Next() {
		m, err := storage.ScanMedicationSummary(rows)
		if err != nil {
			return nil, err
		}
		meds = append(meds, m)
	}

	return meds, rows.Err()
}

func (s *Store) AddMedication(ctx context.Context, in models.MedicationInput, createdAt time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO meds (name, dose, time_of_day, notes, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		in.Name, in.Dose, in.Schedule, in.Notes, utils.FormatTimestamp(createdAt))
	if err != nil {
		return 0, err
	}

	return result.LastInsertId()
}

func (s *Store) GetMedication(ctx context.Context, id int64) (models.Medication, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+storage.MedicationColumns+`
		FROM meds m WHERE m.id = ?`, id)

	m, err := storage.ScanMedication(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Medication{}, storage.ErrNotFound
		}
		return models.Medication{}, err
	}

	return m, nil
}

func (s *Store) UpdateMedication(ctx context.Context, id int64, in models.MedicationInput) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE meds
		SET name = ?, dose = ?, time_of_day = ?, notes = ?
		WHERE id = ?`,
		in.Name, in.Dose, in.Schedule, in.Notes, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return storage.ErrNotFound
	}

	return nil
}

func (s *Store) DeleteMedication(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// Dependents first so the delete is atomic even without foreign keys
	if _, err := tx.ExecContext(ctx, `DELETE FROM taken_logs WHERE med_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete taken events: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM meds WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete medication: %w", err)
	}

	return tx.Commit()
}
