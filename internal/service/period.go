package service

import (
	"time"

	"steprally/grouphub/internal/model"
)

// resolvePeriod maps a period type and reference date to the inclusive
// competition window containing that date. Pure function of the supplied
// date; callers inject "now" so period boundaries stay testable.
func resolvePeriod(pt model.PeriodType, ref time.Time) (model.CompetitionPeriod, error) {
	day := truncateToDay(ref)

	switch pt {
	case model.PeriodDaily:
		return model.NewCompetitionPeriod(day, day, pt)
	case model.PeriodWeekly:
		// Weeks run Monday through Sunday.
		daysFromMonday := int(day.Weekday()) - 1
		if day.Weekday() == time.Sunday {
			daysFromMonday = 6
		}
		start := day.AddDate(0, 0, -daysFromMonday)
		return model.NewCompetitionPeriod(start, start.AddDate(0, 0, 6), pt)
	case model.PeriodMonthly:
		start := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
		end := start.AddDate(0, 1, -1)
		return model.NewCompetitionPeriod(start, end, pt)
	case model.PeriodCustom:
		// Custom periods are not defined yet and fall back to daily.
		return model.NewCompetitionPeriod(day, day, pt)
	}
	return model.CompetitionPeriod{}, ErrInvalidPeriodType
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
