package pv

import (
	"math"
	"testing"
	"time"

	"sunfutures/internal/types"
)

var (
	vegasElev = 600.0
	vegas     = types.Location{Latitude: 36.1699, Longitude: -115.1398, ElevationM: &vegasElev}
)

func vegasPlant() types.PlantConfig {
	plant := types.PlantConfig{
		DCCapacityKW: 250000,
		ACCapacityKW: 200000,
		Mounting:     types.MountingSAT,
		Backtracking: true,
	}
	plant.ApplyDefaults()
	return plant
}

func clearSummerDay(start time.Time, hours int) types.WeatherSeries {
	series := make(types.WeatherSeries, 0, hours)
	for i := 0; i < hours; i++ {
		series = append(series, types.WeatherSample{
			Time:          start.Add(time.Duration(i) * time.Hour),
			CloudCoverPct: 0,
			TemperatureC:  35,
			WindSpeedMPS:  2,
			Source:        types.SourceHourly,
		})
	}
	return series
}

func TestResolveParams(t *testing.T) {
	defaults := ResolveParams(types.EquipmentProfile{})
	if defaults.GammaPmpPerC != DefaultGammaPmpPerC {
		t.Errorf("default gamma = %v, want %v", defaults.GammaPmpPerC, DefaultGammaPmpPerC)
	}
	if defaults.InverterEfficiency != DefaultInverterEfficiency {
		t.Errorf("default efficiency = %v, want %v", defaults.InverterEfficiency, DefaultInverterEfficiency)
	}
	if defaults.InverterACMaxKW != 0 {
		t.Errorf("default pac max = %v, want 0 (unknown)", defaults.InverterACMaxKW)
	}

	gamma, eff, pac := -0.004, 0.97, 150000.0
	refined := ResolveParams(types.EquipmentProfile{
		GammaPmpPerC:       &gamma,
		InverterEfficiency: &eff,
		InverterACMaxKW:    &pac,
	})
	if refined.GammaPmpPerC != gamma || refined.InverterEfficiency != eff || refined.InverterACMaxKW != pac {
		t.Errorf("refined params = %+v", refined)
	}
}

func TestCellTemperature(t *testing.T) {
	// at zero irradiance the cell sits at ambient
	if got := CellTemperature(0, 20, 3); got != 20 {
		t.Errorf("dark cell temperature = %v, want ambient 20", got)
	}

	// irradiance heats the cell above ambient
	sunny := CellTemperature(1000, 30, 1)
	if sunny <= 30 {
		t.Errorf("irradiated cell temperature = %v, want above ambient 30", sunny)
	}

	// wind cools the cell
	calm := CellTemperature(1000, 30, 0)
	windy := CellTemperature(1000, 30, 10)
	if windy >= calm {
		t.Errorf("windy cell %v should be cooler than calm cell %v", windy, calm)
	}
}

func TestComputeSeries_NeverExceedsACLimit(t *testing.T) {
	plant := vegasPlant()
	losses := types.DefaultLossConfig()
	params := ResolveParams(types.EquipmentProfile{})

	start := time.Date(2026, 6, 21, 7, 0, 0, 0, time.UTC)
	hours := ComputeSeries(clearSummerDay(start, 24), vegas, plant, losses, params)

	sawPower := false
	for _, h := range hours {
		if h.PACKw < 0 {
			t.Fatalf("negative power %v at %v", h.PACKw, h.Time)
		}
		if h.PACKw > plant.ACCapacityKW {
			t.Fatalf("power %v exceeds AC capacity %v at %v", h.PACKw, plant.ACCapacityKW, h.Time)
		}
		if h.PACKw > 0 {
			sawPower = true
		}
	}
	if !sawPower {
		t.Fatal("clear summer day produced no power at all")
	}
}

func TestComputeSeries_POILimitClips(t *testing.T) {
	plant := vegasPlant()
	poi := 120000.0
	plant.POILimitKW = &poi
	losses := types.DefaultLossConfig()
	params := ResolveParams(types.EquipmentProfile{})

	start := time.Date(2026, 6, 21, 7, 0, 0, 0, time.UTC)
	for _, h := range ComputeSeries(clearSummerDay(start, 24), vegas, plant, losses, params) {
		if h.PACKw > poi {
			t.Fatalf("power %v exceeds POI limit %v at %v", h.PACKw, poi, h.Time)
		}
	}
}

func TestComputeSeries_InverterPacMaxClips(t *testing.T) {
	plant := vegasPlant()
	losses := types.DefaultLossConfig()
	pac := 100000.0
	params := ResolveParams(types.EquipmentProfile{InverterACMaxKW: &pac})

	start := time.Date(2026, 6, 21, 7, 0, 0, 0, time.UTC)
	for _, h := range ComputeSeries(clearSummerDay(start, 24), vegas, plant, losses, params) {
		if h.PACKw > pac {
			t.Fatalf("power %v exceeds inverter pac max %v at %v", h.PACKw, pac, h.Time)
		}
	}
}

func TestComputePower_LossesReduceOutput(t *testing.T) {
	// small plant so clipping never masks the loss difference
	plant := types.PlantConfig{DCCapacityKW: 100, ACCapacityKW: 200, Mounting: types.MountingFixed}
	plant.ApplyDefaults()
	params := ResolveParams(types.EquipmentProfile{})

	noon := types.WeatherSample{
		Time:          time.Date(2026, 6, 21, 19, 40, 0, 0, time.UTC),
		CloudCoverPct: 0,
		TemperatureC:  25,
		WindSpeedMPS:  2,
		Source:        types.SourceHourly,
	}

	noLosses := types.LossConfig{AvailabilityPct: 100}
	withLosses := types.DefaultLossConfig()

	clean := ComputePower(noon, vegas, plant, noLosses, params)
	lossy := ComputePower(noon, vegas, plant, withLosses, params)

	if clean.PACKw <= 0 {
		t.Fatal("no output at clear noon")
	}
	if lossy.PACKw >= clean.PACKw {
		t.Errorf("lossy output %v should be below lossless output %v", lossy.PACKw, clean.PACKw)
	}

	// default chain retains roughly 92 percent
	ratio := lossy.PACKw / clean.PACKw
	if math.Abs(ratio-0.918) > 0.005 {
		t.Errorf("loss chain retention = %v, want about 0.918", ratio)
	}
}

func TestComputePower_ExtendedFlagPropagates(t *testing.T) {
	plant := vegasPlant()
	params := ResolveParams(types.EquipmentProfile{})

	sample := types.WeatherSample{
		Time:          time.Date(2026, 6, 21, 19, 0, 0, 0, time.UTC),
		CloudCoverPct: 10,
		TemperatureC:  30,
		WindSpeedMPS:  2,
		Source:        types.SourceExtended,
	}
	h := ComputePower(sample, vegas, plant, types.DefaultLossConfig(), params)
	if !h.Extended {
		t.Error("extended source sample did not mark the hour as extended")
	}
}
