// Package domain defines domain-level errors for the indicators feature.
package domain

import "errors"

// Error kinds surfaced by the dashboard.
// Upper layers classify them with errors.Is and decide how to present them.
var (
	// ErrConfiguration indicates a missing or rejected FRED API credential.
	// It is detected at startup (missing key) or on the first upstream call (invalid key).
	ErrConfiguration = errors.New("configuration error")

	// ErrDataUnavailable indicates that the upstream fetch failed or returned no observations.
	ErrDataUnavailable = errors.New("data unavailable")

	// ErrUnknownIndicator is returned when a key does not match one of the fixed indicators.
	ErrUnknownIndicator = errors.New("unknown indicator")

	// ErrInvalidRange is returned when a date range is malformed or inverted.
	ErrInvalidRange = errors.New("invalid date range")

	// ErrInvalidSeries is returned when observations violate the strictly increasing date invariant.
	ErrInvalidSeries = errors.New("invalid series")
)
