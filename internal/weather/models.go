package weather

import (
	"sunfutures/internal/providers/openmeteo"
	"sunfutures/internal/types"
)

// SourceState is the explicit per-source availability state. "Missing" is
// never represented as a silently-zero value.
type SourceState string

const (
	StateOK          SourceState = "OK"
	StateDegraded    SourceState = "DEGRADED"
	StateUnavailable SourceState = "UNAVAILABLE"
)

// SourceStatus pairs a state with a human-readable detail for response notes.
type SourceStatus struct {
	State  SourceState `json:"state"`
	Detail string      `json:"detail,omitempty"`
}

// FetchResult carries the outcome of the concurrent three-source fetch.
// Hourly is required; Grid and Ensemble degrade independently.
type FetchResult struct {
	Hourly   types.WeatherSeries
	Grid     types.WeatherSeries
	Ensemble *openmeteo.EnsembleAPIResponse

	HourlyStatus   SourceStatus
	GridStatus     SourceStatus
	EnsembleStatus SourceStatus
}
