package domain

import "time"

type DateRange string

const (
	DateRangeAll     DateRange = ""
	DateRangeWeek    DateRange = "week"
	DateRangeMonth   DateRange = "month"
	DateRange3Months DateRange = "3months"
	DateRange6Months DateRange = "6months"
	DateRangeYear    DateRange = "year"
	DateRangeCustom  DateRange = "custom"
)

type DurationBucket string

const (
	DurationAll    DurationBucket = ""
	DurationShort  DurationBucket = "short"  // under 25 minutes
	DurationMedium DurationBucket = "medium" // 25 to 40 minutes
	DurationLong   DurationBucket = "long"   // over 40 minutes
)

// MatchFilterCriteria is an immutable value object describing the active
// filters. The zero value means "no filtering". Callers replace it
// wholesale on each change; the pipeline never mutates it.
type MatchFilterCriteria struct {
	DateRange       DateRange
	CustomFrom      time.Time
	CustomTo        time.Time
	Result          Result // "" = all
	Opponents       []string
	TeamSide        Side // "" = all
	PickOrder       PickOrder
	HeroesPlayed    []int
	Duration        DurationBucket
	PerformanceTags []string
}

// DateBounds resolves the relative date ranges against now. The returned
// booleans report whether each bound is active.
func (c MatchFilterCriteria) DateBounds(now time.Time) (from, to time.Time, hasFrom, hasTo bool) {
	switch c.DateRange {
	case DateRangeWeek:
		return now.AddDate(0, 0, -7), now, true, false
	case DateRangeMonth:
		return now.AddDate(0, -1, 0), now, true, false
	case DateRange3Months:
		return now.AddDate(0, -3, 0), now, true, false
	case DateRange6Months:
		return now.AddDate(0, -6, 0), now, true, false
	case DateRangeYear:
		return now.AddDate(-1, 0, 0), now, true, false
	case DateRangeCustom:
		return c.CustomFrom, c.CustomTo, !c.CustomFrom.IsZero(), !c.CustomTo.IsZero()
	}
	return time.Time{}, time.Time{}, false, false
}
