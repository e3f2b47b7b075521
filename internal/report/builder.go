package report

import (
	"time"

	"sunfutures/internal/pv"
	"sunfutures/internal/types"
)

// Inputs are the pipeline internals the report derives its KPIs from. The
// same hourly power run feeds both the forecast response and the report.
type Inputs struct {
	Plant    types.PlantConfig
	Losses   types.LossConfig
	Params   pv.ModelParams
	Daily    []types.DailyYield
	DailyPOA []pv.DailyPOA
}

// DailyKPI is one day of PVsyst-style performance figures. PR uses POA
// irradiation as the GlobInc term: PR = E_AC / (GlobInc * PnomDC).
type DailyKPI struct {
	Date                string  `json:"date"`
	POAKWhPerM2         float64 `json:"poa_kwh_m2"`
	EACKWh              float64 `json:"e_ac_kwh"`
	SpecificYieldPerKWp float64 `json:"specific_yield_kwh_per_kwp"`
	PR                  float64 `json:"pr"`
	Extended            bool    `json:"extended"`
}

// Summary aggregates the daily KPIs over the horizon.
type Summary struct {
	TotalKWh               float64 `json:"total_kwh"`
	AvgPR                  float64 `json:"avg_pr"`
	AvgSpecificYieldPerDay float64 `json:"avg_specific_yield_kwh_per_kwp_day"`
}

// LossItem attributes energy lost to one configured loss term.
type LossItem struct {
	Name     string  `json:"name"`
	LossPct  float64 `json:"loss_pct"`
	DeltaKWh float64 `json:"delta_kwh"`
}

// LossDiagram walks the loss chain in application order. Item deltas sum to
// TheoreticalKWh minus ActualKWh.
type LossDiagram struct {
	TheoreticalKWh float64    `json:"theoretical_kwh"`
	ActualKWh      float64    `json:"actual_kwh"`
	Items          []LossItem `json:"items"`
}

// Report is the full performance report body.
type Report struct {
	Daily       []DailyKPI  `json:"daily"`
	Summary     Summary     `json:"summary"`
	LossDiagram LossDiagram `json:"loss_diagram"`
	GeneratedAt time.Time   `json:"generated_at"`
}

// Build derives the KPI block and loss diagram from the pipeline internals.
func Build(in Inputs) *Report {
	r := &Report{GeneratedAt: time.Now().UTC()}

	poaByDate := make(map[string]float64, len(in.DailyPOA))
	for _, d := range in.DailyPOA {
		poaByDate[d.Date] = d.POAKWhPerM2
	}

	var totalKWh, prSum, ySum float64
	var prDays int
	for _, d := range in.Daily {
		poa := poaByDate[d.Date]
		kpi := DailyKPI{
			Date:        d.Date,
			POAKWhPerM2: poa,
			EACKWh:      d.KWh,
			Extended:    d.Extended,
		}
		if in.Plant.DCCapacityKW > 0 {
			kpi.SpecificYieldPerKWp = d.KWh / in.Plant.DCCapacityKW
			if poa > 0 {
				kpi.PR = d.KWh / (poa * in.Plant.DCCapacityKW)
				prSum += kpi.PR
				prDays++
			}
		}
		totalKWh += d.KWh
		ySum += kpi.SpecificYieldPerKWp
		r.Daily = append(r.Daily, kpi)
	}

	r.Summary.TotalKWh = totalKWh
	if prDays > 0 {
		r.Summary.AvgPR = prSum / float64(prDays)
	}
	if len(in.Daily) > 0 {
		r.Summary.AvgSpecificYieldPerDay = ySum / float64(len(in.Daily))
	}
	r.LossDiagram = buildLossDiagram(totalKWh, in.Losses, in.Params)
	return r
}

// buildLossDiagram reconstructs the pre-loss theoretical yield by undoing
// the multiplicative chain, then walks the chain forward in application
// order so per-item deltas sum exactly to theoretical minus actual.
func buildLossDiagram(actualKWh float64, losses types.LossConfig, params pv.ModelParams) LossDiagram {
	chain := []struct {
		name string
		pct  float64
	}{
		{"Soiling", losses.SoilingPct},
		{"Snow", losses.SnowPct},
		{"IAM", losses.IAMPct},
		{"Mismatch", losses.MismatchPct},
		{"DC wiring", losses.DCWiringPct},
		{"Inverter conversion", (1 - params.InverterEfficiency) * 100},
		{"AC wiring", losses.ACWiringPct},
		{"Aux consumption", losses.AuxPct},
		{"Availability", 100 - losses.AvailabilityPct},
	}

	retentionProduct := 1.0
	for _, item := range chain {
		retentionProduct *= 1 - item.pct/100
	}

	diagram := LossDiagram{ActualKWh: actualKWh}
	if retentionProduct <= 0 {
		return diagram
	}
	diagram.TheoreticalKWh = actualKWh / retentionProduct

	running := diagram.TheoreticalKWh
	for _, item := range chain {
		delta := running * item.pct / 100
		diagram.Items = append(diagram.Items, LossItem{
			Name:     item.name,
			LossPct:  item.pct,
			DeltaKWh: delta,
		})
		running -= delta
	}
	return diagram
}
