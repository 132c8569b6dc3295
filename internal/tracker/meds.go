package tracker

import (
	"context"
	"fmt"

	"github.com/julianstephens/medimate/internal/logger"
	"github.com/julianstephens/medimate/internal/models"
	"github.com/julianstephens/medimate/internal/storage"
	"github.com/julianstephens/medimate/internal/utils"
	"github.com/julianstephens/medimate/internal/validation"
)

// MedStore manages medication records. Input is validated before any write;
// a validation failure is returned as *validation.Error.
type MedStore struct {
	store storage.Provider
	now   utils.Clock
}

func NewMedStore(store storage.Provider) *MedStore {
	return &MedStore{
		store: store,
		now:   utils.Now,
	}
}

// ListAll returns every medication with its most recent taken time, ordered
// by schedule then name.
func (s *MedStore) ListAll(ctx context.Context) ([]models.Medication, error) {
	meds, err := s.store.GetAllMedications(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list medications: %w", err)
	}
	return meds, nil
}

// Create validates and stores a new medication and returns its id.
func (s *MedStore) Create(ctx context.Context, in models.MedicationInput) (int64, error) {
	in, err := validation.ValidateMedication(in)
	if err != nil {
		return 0, err
	}

	id, err := s.store.AddMedication(ctx, in, s.now())
	if err != nil {
		return 0, fmt.Errorf("failed to add medication: %w", err)
	}

	logger.Info("Medication added", "id", id, "name", in.Name)
	return id, nil
}

// Get returns storage.ErrNotFound when no medication has the id.
func (s *MedStore) Get(ctx context.Context, id int64) (models.Medication, error) {
	return s.store.GetMedication(ctx, id)
}

// Update overwrites the mutable fields. The id and creation time never change.
func (s *MedStore) Update(ctx context.Context, id int64, in models.MedicationInput) error {
	in, err := validation.ValidateMedication(in)
	if err != nil {
		return err
	}

	if err := s.store.UpdateMedication(ctx, id, in); err != nil {
		return err
	}

	logger.Info("Medication updated", "id", id)
	return nil
}

// Delete removes the medication and its adherence history. Deleting an id
// that does not exist is not an error.
func (s *MedStore) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteMedication(ctx, id); err != nil {
		return fmt.Errorf("failed to delete medication %d: %w", id, err)
	}

	logger.Info("Medication deleted", "id", id)
	return nil
}
