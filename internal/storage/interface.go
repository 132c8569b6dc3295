package storage

import (
	"context"
	"time"

	"github.com/julianstephens/medimate/internal/models"
)

type Provider interface {
	// Lifecycle
	Init(ctx context.Context) error
	Load(ctx context.Context) error
	Close() error
	Ping(ctx context.Context) error

	// Medications
	GetAllMedications(ctx context.Context) ([]models.Medication, error)
	AddMedication(ctx context.Context, in models.MedicationInput, createdAt time.Time) (int64, error)
	GetMedication(ctx context.Context, id int64) (models.Medication, error)
	UpdateMedication(ctx context.Context, id int64, in models.MedicationInput) error
	// DeleteMedication removes the medication and its taken events in a
	// single transaction. Deleting a missing id is not an error.
	DeleteMedication(ctx context.Context, id int64) error

	// Taken events
	// AddTakenEvent checks the medication exists and appends an event in one
	// transaction. Returns ErrNotFound without writing when it does not.
	AddTakenEvent(ctx context.Context, medID int64, takenAt time.Time) (int64, error)
	// GetRecentTakenEvents returns up to limit events newest first. When day
	// is non-empty only events on that local date (YYYY-MM-DD) are returned.
	GetRecentTakenEvents(ctx context.Context, day string, limit int) ([]models.LogEntry, error)

	// Diagnostics
	CountOrphanedTakenEvents(ctx context.Context) (int, error)
	SchemaComplete(ctx context.Context) (bool, error)

	// Utils
	GetConfigPath() string
}
