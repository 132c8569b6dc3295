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

func (s *Store) AddTakenEvent(ctx context.Context, medID int64, takenAt time.Time) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// Lock the medication row so a concurrent delete cannot slip in between
	// the check and the insert
	var exists int64
	err = tx.QueryRowContext(ctx, `SELECT id FROM meds WHERE id = $1 FOR UPDATE`, medID).Scan(&exists)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, storage.ErrNotFound
		}
		return 0, err
	}

	var id int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO taken_logs (med_id, taken_at)
		VALUES ($1, $2)
		RETURNING id`,
		medID, utils.FormatTimestamp(takenAt)).Scan(&id)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

func (s *Store) GetRecentTakenEvents(ctx context.Context, day string, limit int) ([]models.LogEntry, error) {
	query := `
		SELECT ` + storage.LogEntryColumns + `
		FROM taken_logs t
		JOIN meds m ON m.id = t.med_id`
	args := []any{}
	if day != "" {
		args = append(args, day)
		query += fmt.Sprintf(` WHERE substr(t.taken_at, 1, 10) = $%d`, len(args))
	}
	args = append(args, limit)
	query += fmt.Sprintf(` ORDER BY t.taken_at DESC, t.id DESC LIMIT $%d`, len(args))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []models.LogEntry{}
	for rows.Next() {
		e, err := storage.ScanLogEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

func (s *Store) CountOrphanedTakenEvents(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM taken_logs t
		WHERE NOT EXISTS (SELECT 1 FROM meds m WHERE m.id = t.med_id)`).Scan(&count)
	return count, err
}
