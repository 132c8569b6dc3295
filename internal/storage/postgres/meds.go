package postgres

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
	// COLLATE "C" keeps ordering byte-wise, the same as SQLite's BINARY
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+storage.MedicationSummaryColumns+`
		FROM meds m
		ORDER BY m.time_of_day COLLATE "C" ASC, m.name COLLATE "C" ASC`)
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
	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO meds (name, dose, time_of_day, notes, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		in.Name, in.Dose, in.Schedule, in.Notes, utils.FormatTimestamp(createdAt)).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (s *Store) GetMedication(ctx context.Context, id int64) (models.Medication, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+storage.MedicationColumns+`
		FROM meds m WHERE m.id = $1`, id)

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
		SET name = $1, dose = $2, time_of_day = $3, notes = $4
		WHERE id = $5`,
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

	if _, err := tx.ExecContext(ctx, `DELETE FROM taken_logs WHERE med_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete taken events: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM meds WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete medication: %w", err)
	}

	return tx.Commit()
}
