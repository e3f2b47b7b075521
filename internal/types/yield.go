package types

// DailyYield is one day of forecast energy at the site, in kWh. Extended
// marks days built from the persistence fallback rather than modeled weather.
type DailyYield struct {
	Date     string  `json:"date"` // site-local calendar date, YYYY-MM-DD
	KWh      float64 `json:"kwh"`
	Extended bool    `json:"extended,omitempty"`
}

// BandSource states which branch produced the probabilistic bands.
type BandSource string

const (
	BandSourceRealEnsemble      BandSource = "REAL_ENSEMBLE"
	BandSourceSyntheticEnsemble BandSource = "SYNTHETIC_ENSEMBLE"
)

// ProbabilisticBand is the daily P10/P50/P90 energy envelope.
// Invariant: P10 <= P50 <= P90.
type ProbabilisticBand struct {
	Date   string  `json:"date"`
	P10KWh float64 `json:"p10_kwh"`
	P50KWh float64 `json:"p50_kwh"`
	P90KWh float64 `json:"p90_kwh"`
}
