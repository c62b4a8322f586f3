package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"steprally/grouphub/internal/model"
)

type pgStepRepository struct {
	db *gorm.DB
}

func NewPGStepRepository(db *gorm.DB) StepRepository {
	return &pgStepRepository{db: db}
}

func (r *pgStepRepository) GetDailySummaries(ctx context.Context, userID uuid.UUID, start, end time.Time) ([]model.DailyStepSummary, error) {
	var summaries []model.DailyStepSummary
	err := r.db.WithContext(ctx).
		Model(&model.StepRecord{}).
		Select("date, steps, distance_meters").
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, start, end).
		Order("date ASC").
		Scan(&summaries).Error
	return summaries, err
}

func (r *pgStepRepository) GetTotalsForUsers(ctx context.Context, userIDs []uuid.UUID, start, end time.Time) (map[uuid.UUID]model.StepTotals, error) {
	if len(userIDs) == 0 {
		return map[uuid.UUID]model.StepTotals{}, nil
	}

	var rows []struct {
		UserID         uuid.UUID
		Steps          int64
		DistanceMeters float64
	}
	err := r.db.WithContext(ctx).
		Model(&model.StepRecord{}).
		Select("user_id, SUM(steps) AS steps, SUM(distance_meters) AS distance_meters").
		Where("user_id IN ? AND date BETWEEN ? AND ?", userIDs, start, end).
		Group("user_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	totals := make(map[uuid.UUID]model.StepTotals, len(rows))
	for _, row := range rows {
		totals[row.UserID] = model.StepTotals{Steps: row.Steps, DistanceMeters: row.DistanceMeters}
	}
	return totals, nil
}
