package service

import (
	"errors"
	"testing"
	"time"

	"steprally/grouphub/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolvePeriod(t *testing.T) {
	tests := []struct {
		name       string
		periodType model.PeriodType
		ref        time.Time
		wantStart  time.Time
		wantEnd    time.Time
	}{
		{
			name:       "daily is the reference date itself",
			periodType: model.PeriodDaily,
			ref:        date(2025, time.March, 12),
			wantStart:  date(2025, time.March, 12),
			wantEnd:    date(2025, time.March, 12),
		},
		{
			name:       "weekly from a Wednesday spans Monday to Sunday",
			periodType: model.PeriodWeekly,
			ref:        date(2025, time.March, 12), // Wednesday
			wantStart:  date(2025, time.March, 10), // Monday
			wantEnd:    date(2025, time.March, 16), // Sunday
		},
		{
			name:       "weekly from a Sunday ends that same Sunday",
			periodType: model.PeriodWeekly,
			ref:        date(2025, time.March, 16), // Sunday
			wantStart:  date(2025, time.March, 10),
			wantEnd:    date(2025, time.March, 16),
		},
		{
			name:       "weekly from a Monday starts that Monday",
			periodType: model.PeriodWeekly,
			ref:        date(2025, time.March, 10),
			wantStart:  date(2025, time.March, 10),
			wantEnd:    date(2025, time.March, 16),
		},
		{
			name:       "monthly spans the calendar month",
			periodType: model.PeriodMonthly,
			ref:        date(2025, time.March, 12),
			wantStart:  date(2025, time.March, 1),
			wantEnd:    date(2025, time.March, 31),
		},
		{
			name:       "monthly handles leap February",
			periodType: model.PeriodMonthly,
			ref:        date(2024, time.February, 15),
			wantStart:  date(2024, time.February, 1),
			wantEnd:    date(2024, time.February, 29),
		},
		{
			name:       "custom falls back to daily",
			periodType: model.PeriodCustom,
			ref:        date(2025, time.March, 12),
			wantStart:  date(2025, time.March, 12),
			wantEnd:    date(2025, time.March, 12),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			period, err := resolvePeriod(tt.periodType, tt.ref)
			if err != nil {
				t.Fatalf("resolvePeriod failed: %v", err)
			}
			if !period.StartDate.Equal(tt.wantStart) {
				t.Errorf("start: expected %v, got %v", tt.wantStart, period.StartDate)
			}
			if !period.EndDate.Equal(tt.wantEnd) {
				t.Errorf("end: expected %v, got %v", tt.wantEnd, period.EndDate)
			}
		})
	}
}

func TestResolvePeriodTruncatesTimeOfDay(t *testing.T) {
	ref := time.Date(2025, time.March, 12, 23, 45, 1, 0, time.UTC)
	period, err := resolvePeriod(model.PeriodDaily, ref)
	if err != nil {
		t.Fatalf("resolvePeriod failed: %v", err)
	}
	if !period.StartDate.Equal(date(2025, time.March, 12)) {
		t.Errorf("expected midnight start, got %v", period.StartDate)
	}
}

func TestResolvePeriodUnknownType(t *testing.T) {
	_, err := resolvePeriod(model.PeriodType(99), date(2025, time.March, 12))
	if !errors.Is(err, ErrInvalidPeriodType) {
		t.Fatalf("expected ErrInvalidPeriodType, got %v", err)
	}
}
