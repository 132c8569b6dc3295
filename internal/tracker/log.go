package tracker

import (
	"context"
	"fmt"

	"github.com/julianstephens/medimate/internal/constants"
	"github.com/julianstephens/medimate/internal/logger"
	"github.com/julianstephens/medimate/internal/models"
	"github.com/julianstephens/medimate/internal/storage"
	"github.com/julianstephens/medimate/internal/utils"
)

// AdherenceLog records and lists taken events.
type AdherenceLog struct {
	store storage.Provider
	now   utils.Clock
}

func NewAdherenceLog(store storage.Provider) *AdherenceLog {
	return &AdherenceLog{
		store: store,
		now:   utils.Now,
	}
}

// RecordTaken appends a taken event stamped with the current local time.
// Returns storage.ErrNotFound without writing when the medication is missing.
func (l *AdherenceLog) RecordTaken(ctx context.Context, medID int64) (int64, error) {
	id, err := l.store.AddTakenEvent(ctx, medID, l.now())
	if err != nil {
		return 0, err
	}

	logger.Info("Medication taken", "med_id", medID, "event_id", id)
	return id, nil
}

// ListRecent returns the newest events first, capped at RecentLogLimit.
// LogFilterToday keeps only events on the current local date.
func (l *AdherenceLog) ListRecent(ctx context.Context, filter models.LogFilter) ([]models.LogEntry, error) {
	var day string
	if filter == models.LogFilterToday {
		day = utils.DateOf(l.now())
	}

	entries, err := l.store.GetRecentTakenEvents(ctx, day, constants.RecentLogLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list taken events: %w", err)
	}
	return entries, nil
}
