// Package dto defines the FRED API wire formats.
package dto

// MissingValue is the placeholder FRED uses for observations without data.
const MissingValue = "."

// ObservationsResponse は /fred/series/observations のレスポンスDTOです。
type ObservationsResponse struct {
	ObservationStart string        `json:"observation_start"`
	ObservationEnd   string        `json:"observation_end"`
	Units            string        `json:"units"`
	Count            int           `json:"count"`
	Observations     []Observation `json:"observations"`
}

// Observation は1件の観測値です。valueは文字列で返されます。
type Observation struct {
	RealtimeStart string `json:"realtime_start"`
	RealtimeEnd   string `json:"realtime_end"`
	Date          string `json:"date"`
	Value         string `json:"value"`
}

// ErrorResponse はエラー時のレスポンスDTOです。
type ErrorResponse struct {
	ErrorCode    int    `json:"error_code"`
	ErrorMessage string `json:"error_message"`
}
