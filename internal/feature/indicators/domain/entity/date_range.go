package entity

import (
	"fmt"
	"time"

	"fred_dashboard/internal/feature/indicators/domain"
)

// daysPerQuarter approximates a calendar quarter when the range is given as a number of quarters.
const daysPerQuarter = 91

// DateRange is an inclusive range of calendar dates in UTC.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange truncates start and end to UTC dates and rejects an inverted range.
func NewDateRange(start, end time.Time) (DateRange, error) {
	r := DateRange{Start: truncateDate(start), End: truncateDate(end)}
	if r.Start.IsZero() || r.End.IsZero() {
		return DateRange{}, fmt.Errorf("%w: start and end are required", domain.ErrInvalidRange)
	}
	if r.End.Before(r.Start) {
		return DateRange{}, fmt.Errorf("%w: end %s is before start %s",
			domain.ErrInvalidRange, r.End.Format(DateLayout), r.Start.Format(DateLayout))
	}
	return r, nil
}

// ParseDateRange parses YYYY-MM-DD start and end dates.
func ParseDateRange(start, end string) (DateRange, error) {
	s, err := time.Parse(DateLayout, start)
	if err != nil {
		return DateRange{}, fmt.Errorf("%w: start %q: %v", domain.ErrInvalidRange, start, err)
	}
	e, err := time.Parse(DateLayout, end)
	if err != nil {
		return DateRange{}, fmt.Errorf("%w: end %q: %v", domain.ErrInvalidRange, end, err)
	}
	return NewDateRange(s, e)
}

// LastQuarters returns the range ending at end and reaching back the given number of quarters.
func LastQuarters(end time.Time, quarters int) DateRange {
	e := truncateDate(end)
	return DateRange{Start: e.AddDate(0, 0, -quarters*daysPerQuarter), End: e}
}

// String formats the range as "start..end".
func (r DateRange) String() string {
	return r.Start.Format(DateLayout) + ".." + r.End.Format(DateLayout)
}

func truncateDate(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
