// Package chart builds the chart view model rendered by the dashboard.
// The browser draws it with Plotly; the server only decides type, labels and points.
package chart

import (
	"fmt"
	"strings"

	"fred_dashboard/internal/feature/indicators/domain/entity"
)

// Type is the chart style selected by the user.
type Type string

const (
	Line Type = "line"
	Bar  Type = "bar"
	Area Type = "area"
)

// Types lists the selectable chart types in display order.
var Types = []Type{Line, Bar, Area}

// primaryColor matches the single-series colour used by the dashboard.
const primaryColor = "#1E88E5"

// ParseType resolves a chart type, falling back to Line for empty or unknown input.
func ParseType(s string) Type {
	switch Type(strings.ToLower(strings.TrimSpace(s))) {
	case Bar:
		return Bar
	case Area:
		return Area
	default:
		return Line
	}
}

// Label returns the display label ("Line", "Bar", "Area").
func (t Type) Label() string {
	s := string(t)
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Config is the chart view model.
type Config struct {
	ChartType Type     `json:"chartType"`
	Title     string   `json:"title"`
	XAxis     string   `json:"xAxis,omitempty"`
	YAxis     string   `json:"yAxis,omitempty"`
	Series    []Series `json:"series"`
	Markers   bool     `json:"markers"`
	Height    int      `json:"height"`
}

// Series is one named line of points.
type Series struct {
	Name  string  `json:"name"`
	Data  []Point `json:"data"`
	Color string  `json:"color,omitempty"`
}

// Point is a single x/y pair; Label is the observation date.
type Point struct {
	Label  string  `json:"label"`
	Period string  `json:"period"`
	Value  float64 `json:"value"`
}

// Build produces the chart for a series. It returns nil for an empty series so callers
// never render an empty chart.
func Build(s *entity.IndicatorSeries, t Type) *Config {
	if s == nil || s.Len() == 0 {
		return nil
	}

	points := make([]Point, 0, s.Len())
	for _, o := range s.Observations {
		points = append(points, Point{
			Label:  o.Date.Format(entity.DateLayout),
			Period: o.Period(),
			Value:  o.Value,
		})
	}

	name := s.Indicator.Name
	return &Config{
		ChartType: t,
		Title:     fmt.Sprintf("%s - Last %d Observations", name, len(points)),
		YAxis:     AxisLabel(s.Indicator),
		Series: []Series{{
			Name:  name,
			Data:  points,
			Color: primaryColor,
		}},
		Markers: t == Line,
		Height:  500,
	}
}

// AxisLabel formats "Name (Units)", or just the name when units are unknown.
func AxisLabel(ind entity.Indicator) string {
	if ind.Units == "" {
		return ind.Name
	}
	return fmt.Sprintf("%s (%s)", ind.Name, ind.Units)
}
