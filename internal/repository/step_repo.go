package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"steprally/grouphub/internal/model"
)

type StepRepository interface {
	// GetDailySummaries returns one row per recorded day within [start, end].
	GetDailySummaries(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]model.DailyStepSummary, error)
	// GetTotalsForUsers sums steps and distance over [start, end] for the
	// whole user set in one grouped query. Users with no records in range
	// are absent from the returned map.
	GetTotalsForUsers(ctx context.Context, userIDs []uuid.UUID, start, end time.Time) (map[uuid.UUID]model.StepTotals, error)
}
