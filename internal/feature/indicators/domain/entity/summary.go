package entity

import (
	"fmt"
	"math"
	"time"

	"github.com/montanaflynn/stats"
)

// Summary holds the key statistics shown next to the chart.
type Summary struct {
	Count      int
	Min        float64
	MinDate    time.Time
	Max        float64
	MaxDate    time.Time
	Mean       float64
	Latest     float64
	LatestDate time.Time
	// Change is the percentage change from the oldest to the newest observation.
	// It is nil when there are fewer than two observations or the oldest value is zero.
	Change *float64
}

// Summarize computes summary statistics over a validated series.
func Summarize(s *IndicatorSeries) (Summary, error) {
	if err := s.Validate(); err != nil {
		return Summary{}, err
	}
	data := stats.Float64Data(s.Values())

	minV, err := stats.Min(data)
	if err != nil {
		return Summary{}, fmt.Errorf("summary min: %w", err)
	}
	maxV, err := stats.Max(data)
	if err != nil {
		return Summary{}, fmt.Errorf("summary max: %w", err)
	}
	mean, err := stats.Mean(data)
	if err != nil {
		return Summary{}, fmt.Errorf("summary mean: %w", err)
	}
	// rounding in the running sum can push the mean one ulp outside [min, max]
	mean = math.Min(math.Max(mean, minV), maxV)

	latest := s.Latest()
	sum := Summary{
		Count:      s.Len(),
		Min:        minV,
		MinDate:    firstDateOf(s.Observations, minV),
		Max:        maxV,
		MaxDate:    firstDateOf(s.Observations, maxV),
		Mean:       mean,
		Latest:     latest.Value,
		LatestDate: latest.Date,
	}

	if s.Len() >= 2 {
		oldest := s.Observations[0].Value
		if oldest != 0 {
			pct := (latest.Value - oldest) / oldest * 100
			sum.Change = &pct
		}
	}
	return sum, nil
}

func firstDateOf(obs []Observation, v float64) time.Time {
	for _, o := range obs {
		if o.Value == v {
			return o.Date
		}
	}
	return time.Time{}
}
