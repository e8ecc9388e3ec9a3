// Package dto はindicatorsフィーチャーのJSONレスポンスを定義します。
package dto

import (
	"fred_dashboard/internal/feature/indicators/chart"
	"fred_dashboard/internal/feature/indicators/domain/entity"
	"fred_dashboard/internal/feature/indicators/usecase"
)

// ErrorResponse はエラー時のレスポンスDTOです。
type ErrorResponse struct {
	Error string `json:"error"`
}

// IndicatorResponse は指標メタデータのレスポンスDTOです。
type IndicatorResponse struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	SeriesID    string `json:"series_id"`
	Units       string `json:"units"`
	Description string `json:"description"`
}

// ObservationResponse は観測値1件のレスポンスDTOです。
type ObservationResponse struct {
	Date   string  `json:"date"`   // YYYY-MM-DD
	Period string  `json:"period"` // 四半期 (2024-Q1)
	Value  float64 `json:"value"`
}

// SummaryResponse は統計量のレスポンスDTOです。
type SummaryResponse struct {
	Count      int      `json:"count"`
	Min        float64  `json:"min"`
	MinDate    string   `json:"min_date"`
	Max        float64  `json:"max"`
	MaxDate    string   `json:"max_date"`
	Mean       float64  `json:"mean"`
	Latest     float64  `json:"latest"`
	LatestDate string   `json:"latest_date"`
	ChangePct  *float64 `json:"change_pct"`
}

// RangeResponse は取得期間です。
type RangeResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// SeriesResponse は指標系列のレスポンスDTOです。
type SeriesResponse struct {
	Indicator    IndicatorResponse     `json:"indicator"`
	Range        RangeResponse         `json:"range"`
	Observations []ObservationResponse `json:"observations"`
	Summary      SummaryResponse       `json:"summary"`
	Chart        *chart.Config         `json:"chart"`
}

// NewIndicatorResponse converts a domain indicator.
func NewIndicatorResponse(ind entity.Indicator) IndicatorResponse {
	return IndicatorResponse{
		Key:         ind.Key,
		Name:        ind.Name,
		SeriesID:    ind.SeriesID,
		Units:       ind.Units,
		Description: ind.Description,
	}
}

// NewSeriesResponse converts a usecase result and its chart.
func NewSeriesResponse(res *usecase.Result, cfg *chart.Config) SeriesResponse {
	s := res.Series
	obs := make([]ObservationResponse, 0, s.Len())
	for _, o := range s.Observations {
		obs = append(obs, ObservationResponse{
			Date:   o.Date.Format(entity.DateLayout),
			Period: o.Period(),
			Value:  o.Value,
		})
	}
	sum := res.Summary
	return SeriesResponse{
		Indicator: NewIndicatorResponse(s.Indicator),
		Range: RangeResponse{
			Start: s.Range.Start.Format(entity.DateLayout),
			End:   s.Range.End.Format(entity.DateLayout),
		},
		Observations: obs,
		Summary: SummaryResponse{
			Count:      sum.Count,
			Min:        sum.Min,
			MinDate:    sum.MinDate.Format(entity.DateLayout),
			Max:        sum.Max,
			MaxDate:    sum.MaxDate.Format(entity.DateLayout),
			Mean:       sum.Mean,
			Latest:     sum.Latest,
			LatestDate: sum.LatestDate.Format(entity.DateLayout),
			ChangePct:  sum.Change,
		},
		Chart: cfg,
	}
}
