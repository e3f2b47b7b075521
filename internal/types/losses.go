package types

import "fmt"

// LossConfig holds the named percentage losses applied by the power model.
// They combine multiplicatively in the order soiling, snow, IAM, mismatch,
// DC wiring, inverter conversion, AC wiring, auxiliary, availability.
type LossConfig struct {
	SoilingPct      float64 `json:"soiling_pct"`
	SnowPct         float64 `json:"snow_pct"`
	MismatchPct     float64 `json:"mismatch_pct"`
	DCWiringPct     float64 `json:"dc_wiring_pct"`
	ACWiringPct     float64 `json:"ac_wiring_pct"`
	IAMPct          float64 `json:"iam_pct"`
	AuxPct          float64 `json:"aux_pct"`
	AvailabilityPct float64 `json:"availability_pct"`
}

// DefaultLossConfig returns the conventional loss assumptions for a
// utility-scale plant.
func DefaultLossConfig() LossConfig {
	return LossConfig{
		SoilingPct:      2.0,
		SnowPct:         0.0,
		MismatchPct:     1.5,
		DCWiringPct:     1.0,
		ACWiringPct:     0.5,
		IAMPct:          2.0,
		AuxPct:          0.5,
		AvailabilityPct: 99.0,
	}
}

func (l LossConfig) Validate() error {
	named := []struct {
		name string
		pct  float64
	}{
		{"soiling_pct", l.SoilingPct},
		{"snow_pct", l.SnowPct},
		{"mismatch_pct", l.MismatchPct},
		{"dc_wiring_pct", l.DCWiringPct},
		{"ac_wiring_pct", l.ACWiringPct},
		{"iam_pct", l.IAMPct},
		{"aux_pct", l.AuxPct},
	}
	for _, n := range named {
		if n.pct < 0 || n.pct >= 100 {
			return fmt.Errorf("%s %.2f out of range [0, 100)", n.name, n.pct)
		}
	}
	if l.AvailabilityPct <= 0 || l.AvailabilityPct > 100 {
		return fmt.Errorf("availability_pct %.2f out of range (0, 100]", l.AvailabilityPct)
	}
	return nil
}
