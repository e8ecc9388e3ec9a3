// Package entity defines the domain models for the indicators feature.
package entity

import (
	"fmt"
	"strings"

	"fred_dashboard/internal/feature/indicators/domain"
)

// DefaultIndicatorKey is the indicator shown when none is selected.
const DefaultIndicatorKey = "gdp"

// Indicator describes one of the fixed FRED series the dashboard can display.
type Indicator struct {
	Key         string // URL-safe identifier (e.g., "unemployment")
	Name        string // Human-readable label (e.g., "Unemployment Rate")
	SeriesID    string // FRED series id (e.g., "UNRATE")
	Units       string // Units shown on the y axis
	Description string // Short explanation rendered next to the statistics
}

// indicators is the fixed catalog, in display order.
var indicators = []Indicator{
	{
		Key:         "gdp",
		Name:        "Gross Domestic Product (GDP)",
		SeriesID:    "GDP",
		Units:       "Billions of Dollars",
		Description: "GDP is the total monetary or market value of all finished goods and services produced within a country's borders in a specific time period.",
	},
	{
		Key:         "real-gdp",
		Name:        "Real GDP",
		SeriesID:    "GDPC1",
		Units:       "Billions of Chained 2017 Dollars",
		Description: "Real GDP is a macroeconomic measure of the value of economic output adjusted for price changes (inflation or deflation).",
	},
	{
		Key:         "gdp-growth",
		Name:        "GDP Growth Rate",
		SeriesID:    "A191RL1Q225SBEA",
		Units:       "Percent Change from Preceding Period",
		Description: "This measures the annualized percentage change in GDP from the previous quarter.",
	},
	{
		Key:         "pce",
		Name:        "Personal Consumption Expenditures",
		SeriesID:    "PCE",
		Units:       "Billions of Dollars",
		Description: "PCE measures consumer spending on goods and services in the U.S. economy.",
	},
	{
		Key:         "unemployment",
		Name:        "Unemployment Rate",
		SeriesID:    "UNRATE",
		Units:       "Percent",
		Description: "The unemployment rate represents the number of unemployed as a percentage of the labor force.",
	},
	{
		Key:         "cpi",
		Name:        "Consumer Price Index (CPI)",
		SeriesID:    "CPIAUCSL",
		Units:       "Index 1982-1984=100",
		Description: "CPI measures the average change over time in the prices paid by urban consumers for a market basket of consumer goods and services.",
	},
	{
		Key:         "fed-funds",
		Name:        "Federal Funds Rate",
		SeriesID:    "FEDFUNDS",
		Units:       "Percent",
		Description: "The federal funds rate is the interest rate at which depository institutions trade federal funds with each other overnight.",
	},
}

// Indicators returns a copy of the fixed indicator catalog in display order.
func Indicators() []Indicator {
	out := make([]Indicator, len(indicators))
	copy(out, indicators)
	return out
}

// LookupIndicator resolves an indicator by key or FRED series id, ignoring case.
func LookupIndicator(keyOrSeriesID string) (Indicator, error) {
	k := strings.TrimSpace(keyOrSeriesID)
	for _, ind := range indicators {
		if strings.EqualFold(ind.Key, k) || strings.EqualFold(ind.SeriesID, k) {
			return ind, nil
		}
	}
	return Indicator{}, fmt.Errorf("%w: %q", domain.ErrUnknownIndicator, keyOrSeriesID)
}
