package model

import (
	"time"

	"github.com/google/uuid"
)

// StepRecord is one user-day of aggregated activity, written by the step
// ingestion pipeline. Grouphub reads it, never writes it.
type StepRecord struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Date           time.Time `gorm:"type:date;not null" json:"date"`
	Steps          int64     `gorm:"not null;default:0" json:"steps"`
	DistanceMeters float64   `gorm:"not null;default:0" json:"distance_meters"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (StepRecord) TableName() string { return "step_records" }

// DailyStepSummary is the per-day aggregate returned by the step ledger.
type DailyStepSummary struct {
	Date           time.Time `json:"date"`
	Steps          int64     `json:"steps"`
	DistanceMeters float64   `json:"distance_meters"`
}

// StepTotals is the summed activity of one user over a competition period.
type StepTotals struct {
	Steps          int64   `json:"steps"`
	DistanceMeters float64 `json:"distance_meters"`
}
