package entity

import (
	"fmt"
	"slices"
	"time"

	"fred_dashboard/internal/feature/indicators/domain"
)

// DateLayout is the date format used by FRED and by the dashboard query parameters.
const DateLayout = "2006-01-02"

// Observation is one (date, value) pair of a time series.
type Observation struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// Period returns the calendar quarter of the observation (e.g., "2024-Q1").
func (o Observation) Period() string {
	q := (int(o.Date.Month())-1)/3 + 1
	return fmt.Sprintf("%d-Q%d", o.Date.Year(), q)
}

// IndicatorSeries is an ordered sequence of observations for one indicator.
// Dates are strictly increasing and unique.
type IndicatorSeries struct {
	Indicator    Indicator
	Range        DateRange
	Observations []Observation
}

// NewIndicatorSeries builds a series from upstream observations.
// Observations are sorted by date; for a repeated date the last value wins.
// An empty observation list is reported as domain.ErrDataUnavailable.
func NewIndicatorSeries(ind Indicator, rng DateRange, obs []Observation) (*IndicatorSeries, error) {
	if len(obs) == 0 {
		return nil, fmt.Errorf("%w: no observations for %s", domain.ErrDataUnavailable, ind.SeriesID)
	}

	sorted := slices.Clone(obs)
	slices.SortStableFunc(sorted, func(a, b Observation) int {
		return a.Date.Compare(b.Date)
	})

	out := make([]Observation, 0, len(sorted))
	for _, o := range sorted {
		if n := len(out); n > 0 && out[n-1].Date.Equal(o.Date) {
			out[n-1] = o
			continue
		}
		out = append(out, o)
	}

	s := &IndicatorSeries{Indicator: ind, Range: rng, Observations: out}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks that the series is non-empty and its dates are strictly increasing.
func (s *IndicatorSeries) Validate() error {
	if len(s.Observations) == 0 {
		return fmt.Errorf("%w: %s has no observations", domain.ErrInvalidSeries, s.Indicator.SeriesID)
	}
	for i := 1; i < len(s.Observations); i++ {
		prev, cur := s.Observations[i-1].Date, s.Observations[i].Date
		if !cur.After(prev) {
			return fmt.Errorf("%w: %s date %s does not follow %s",
				domain.ErrInvalidSeries, s.Indicator.SeriesID, cur.Format(DateLayout), prev.Format(DateLayout))
		}
	}
	return nil
}

// Len returns the number of observations.
func (s *IndicatorSeries) Len() int {
	return len(s.Observations)
}

// Latest returns the observation with the greatest date.
func (s *IndicatorSeries) Latest() Observation {
	return s.Observations[len(s.Observations)-1]
}

// Values returns the observation values in date order.
func (s *IndicatorSeries) Values() []float64 {
	vs := make([]float64, len(s.Observations))
	for i, o := range s.Observations {
		vs[i] = o.Value
	}
	return vs
}

// Newest returns the observations ordered from newest to oldest, as shown in the raw table.
func (s *IndicatorSeries) Newest() []Observation {
	out := slices.Clone(s.Observations)
	slices.Reverse(out)
	return out
}
