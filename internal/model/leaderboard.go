package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CompetitionPeriod is the inclusive scoring window a leaderboard ranks
// over. Value object, never persisted.
type CompetitionPeriod struct {
	StartDate  time.Time  `json:"start_date"`
	EndDate    time.Time  `json:"end_date"`
	PeriodType PeriodType `json:"period_type"`
}

func NewCompetitionPeriod(start, end time.Time, pt PeriodType) (CompetitionPeriod, error) {
	if end.Before(start) {
		return CompetitionPeriod{}, fmt.Errorf("competition period end %s before start %s", end.Format(time.DateOnly), start.Format(time.DateOnly))
	}
	return CompetitionPeriod{StartDate: start, EndDate: end, PeriodType: pt}, nil
}

// LeaderboardEntry is one ranked row. Ranks are dense and 1-based: tied
// step totals share a rank and the next distinct total takes rank+1.
type LeaderboardEntry struct {
	Rank           int       `json:"rank"`
	UserID         uuid.UUID `json:"user_id"`
	DisplayName    string    `json:"display_name"`
	AvatarURL      string    `json:"avatar_url"`
	TotalSteps     int64     `json:"total_steps"`
	TotalDistanceM float64   `json:"total_distance_meters"`
}

// Leaderboard is the assembled result for one group and period.
type Leaderboard struct {
	GroupID uuid.UUID          `json:"group_id"`
	Period  CompetitionPeriod  `json:"period"`
	Entries []LeaderboardEntry `json:"entries"`
}
