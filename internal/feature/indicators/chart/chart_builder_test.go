package chart

import (
	"testing"
	"time"

	"fred_dashboard/internal/feature/indicators/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Type
	}{
		{"line", Line},
		{"Bar", Bar},
		{" AREA ", Area},
		{"", Line},
		{"pie", Line},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ParseType(tt.in))
		})
	}
}

func TestType_Label(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Line", Line.Label())
	assert.Equal(t, "Area", Area.Label())
	assert.Equal(t, "", Type("").Label())
}

func TestBuild(t *testing.T) {
	t.Parallel()

	ind, err := entity.LookupIndicator("unemployment")
	require.NoError(t, err)
	s, err := entity.NewIndicatorSeries(ind, entity.DateRange{}, []entity.Observation{
		{Date: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), Value: 3.5},
		{Date: time.Date(2020, 4, 1, 0, 0, 0, 0, time.UTC), Value: 14.8},
	})
	require.NoError(t, err)

	cfg := Build(s, Bar)
	require.NotNil(t, cfg)

	assert.Equal(t, Bar, cfg.ChartType)
	assert.Equal(t, "Unemployment Rate - Last 2 Observations", cfg.Title)
	assert.Equal(t, "Unemployment Rate (Percent)", cfg.YAxis)
	assert.False(t, cfg.Markers)
	require.Len(t, cfg.Series, 1)
	assert.Equal(t, []Point{
		{Label: "2020-01-01", Period: "2020-Q1", Value: 3.5},
		{Label: "2020-04-01", Period: "2020-Q2", Value: 14.8},
	}, cfg.Series[0].Data)
}

func TestBuild_LineHasMarkers(t *testing.T) {
	t.Parallel()

	s := &entity.IndicatorSeries{
		Indicator:    entity.Indicator{Name: "X"},
		Observations: []entity.Observation{{Date: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), Value: 1}},
	}
	cfg := Build(s, Line)
	require.NotNil(t, cfg)
	assert.True(t, cfg.Markers)
	assert.Equal(t, "X", cfg.YAxis)
}

func TestBuild_Empty(t *testing.T) {
	t.Parallel()

	assert.Nil(t, Build(nil, Line))
	assert.Nil(t, Build(&entity.IndicatorSeries{}, Line))
}
