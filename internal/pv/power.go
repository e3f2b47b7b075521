package pv

import (
	"math"
	"time"

	"sunfutures/internal/solar"
	"sunfutures/internal/types"
)

// Model defaults used when no equipment refinement is available.
const (
	DefaultGammaPmpPerC       = -0.0035 // module power temperature coefficient, 1/degC
	DefaultInverterEfficiency = 0.985
)

// SAPM open-rack glass/glass cell temperature coefficients.
const (
	sapmA      = -3.56
	sapmB      = -0.075
	sapmDeltaT = 3.0
)

// ModelParams are the resolved power-model parameters after equipment
// refinement and defaulting.
type ModelParams struct {
	GammaPmpPerC       float64
	InverterEfficiency float64
	InverterACMaxKW    float64 // 0 means unknown, no extra limit
}

// ResolveParams applies the equipment profile over the model defaults.
// Absent profile fields fall back to defaults, never to zero.
func ResolveParams(profile types.EquipmentProfile) ModelParams {
	params := ModelParams{
		GammaPmpPerC:       DefaultGammaPmpPerC,
		InverterEfficiency: DefaultInverterEfficiency,
	}
	if profile.GammaPmpPerC != nil {
		params.GammaPmpPerC = *profile.GammaPmpPerC
	}
	if profile.InverterEfficiency != nil {
		params.InverterEfficiency = *profile.InverterEfficiency
	}
	if profile.InverterACMaxKW != nil {
		params.InverterACMaxKW = *profile.InverterACMaxKW
	}
	return params
}

// HourlyPower is one modeled hour of plant output with the intermediate
// plane-of-array irradiance kept for reporting.
type HourlyPower struct {
	Time     time.Time
	POAWm2   float64
	PACKw    float64
	Extended bool
}

// CellTemperature is the SAPM cell temperature model: module temperature
// from irradiance, ambient and wind, plus the conduction offset.
func CellTemperature(poaWm2, ambientC, windMPS float64) float64 {
	wind := math.Max(0, math.Min(25, windMPS))
	moduleTemp := poaWm2*math.Exp(sapmA+sapmB*wind) + ambientC
	return moduleTemp + poaWm2/1000*sapmDeltaT
}

func retention(lossPct float64) float64 {
	return 1 - lossPct/100
}

// ACLimitKW returns the hard output ceiling: the lesser of AC capacity, the
// point-of-interconnection limit and the inverter AC maximum when known.
func ACLimitKW(plant types.PlantConfig, params ModelParams) float64 {
	limit := plant.ACCapacityKW
	if params.InverterACMaxKW > 0 && params.InverterACMaxKW < limit {
		limit = params.InverterACMaxKW
	}
	if plant.POILimitKW != nil && *plant.POILimitKW < limit {
		limit = *plant.POILimitKW
	}
	return limit
}

// ComputePower converts one hour of weather into AC power through the
// irradiance model, temperature derate and the ordered loss chain:
// soiling, snow, IAM, mismatch, DC wiring, inverter conversion, AC wiring,
// auxiliary consumption, availability. Output never exceeds ACLimitKW.
func ComputePower(sample types.WeatherSample, loc types.Location, plant types.PlantConfig, losses types.LossConfig, params ModelParams) HourlyPower {
	poa := solar.POAIrradiance(sample, loc.Latitude, loc.Longitude, loc.Elevation(), plant)
	return powerFromPOA(sample, poa, plant, losses, params)
}

// ComputePowerFromGHI is the ensemble-member path: plane-of-array irradiance
// is derived from a measured shortwave radiation proxy instead of cloud cover.
func ComputePowerFromGHI(sample types.WeatherSample, ghiWm2 float64, loc types.Location, plant types.PlantConfig, losses types.LossConfig, params ModelParams) HourlyPower {
	pos := solar.SolarPosition(sample.Time, loc.Latitude, loc.Longitude)
	poa := 0.0
	if pos.Up() && ghiWm2 > 0 {
		dni, dhi := solar.ErbsDecomposition(sample.Time, pos, ghiWm2)
		tilt, azimuth := solar.SurfaceOrientation(pos, plant)
		poa = solar.TransposeHayDavies(sample.Time, pos, dni, ghiWm2, dhi, tilt, azimuth, plant.GroundAlbedo())
	}
	return powerFromPOA(sample, poa, plant, losses, params)
}

func powerFromPOA(sample types.WeatherSample, poaWm2 float64, plant types.PlantConfig, losses types.LossConfig, params ModelParams) HourlyPower {
	out := HourlyPower{
		Time:     sample.Time,
		POAWm2:   poaWm2,
		Extended: sample.Source == types.SourceExtended,
	}
	if poaWm2 <= 0 {
		return out
	}

	cellTemp := CellTemperature(poaWm2, sample.TemperatureC, sample.WindSpeedMPS)
	dcKW := plant.DCCapacityKW * (poaWm2 / 1000) * (1 + params.GammaPmpPerC*(cellTemp-25))
	if dcKW < 0 {
		return out
	}

	// DC-side optical and array losses
	dcKW *= retention(losses.SoilingPct)
	dcKW *= retention(losses.SnowPct)
	dcKW *= retention(losses.IAMPct)
	dcKW *= retention(losses.MismatchPct)
	dcKW *= retention(losses.DCWiringPct)

	// Inverter conversion and clipping
	acKW := dcKW * params.InverterEfficiency
	limit := ACLimitKW(plant, params)
	if acKW > limit {
		acKW = limit
	}

	// AC-side losses
	acKW *= retention(losses.ACWiringPct)
	acKW *= retention(losses.AuxPct)
	acKW *= losses.AvailabilityPct / 100

	out.PACKw = acKW
	return out
}

// ComputeSeries runs the power model over every sample of a weather series.
func ComputeSeries(series types.WeatherSeries, loc types.Location, plant types.PlantConfig, losses types.LossConfig, params ModelParams) []HourlyPower {
	out := make([]HourlyPower, 0, len(series))
	for _, sample := range series {
		out = append(out, ComputePower(sample, loc, plant, losses, params))
	}
	return out
}
