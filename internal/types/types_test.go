package types

import (
	"testing"
	"time"
)

func TestLocationValidate(t *testing.T) {
	tests := []struct {
		name    string
		loc     Location
		wantErr bool
	}{
		{
			name: "valid",
			loc:  Location{Latitude: 36.1699, Longitude: -115.1398},
		},
		{
			name:    "latitude too high",
			loc:     Location{Latitude: 90.5, Longitude: 0},
			wantErr: true,
		},
		{
			name:    "longitude too low",
			loc:     Location{Latitude: 0, Longitude: -181},
			wantErr: true,
		},
		{
			name:    "implausible elevation",
			loc:     Location{Latitude: 0, Longitude: 0, ElevationM: f(12000)},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.loc.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPlantConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*PlantConfig)
		wantErr bool
	}{
		{
			name:   "valid SAT",
			mutate: func(*PlantConfig) {},
		},
		{
			name:    "zero ac capacity",
			mutate:  func(p *PlantConfig) { p.ACCapacityKW = 0 },
			wantErr: true,
		},
		{
			name:    "unknown mounting",
			mutate:  func(p *PlantConfig) { p.Mounting = "DUAL_AXIS" },
			wantErr: true,
		},
		{
			name:    "gcr out of range",
			mutate:  func(p *PlantConfig) { p.GCR = 0.95 },
			wantErr: true,
		},
		{
			name:    "tilt out of range",
			mutate:  func(p *PlantConfig) { p.TiltDeg = f(95) },
			wantErr: true,
		},
		{
			name:   "dc below ac is allowed",
			mutate: func(p *PlantConfig) { p.DCCapacityKW = 100000 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plant := PlantConfig{DCCapacityKW: 250000, ACCapacityKW: 200000, Mounting: MountingSAT}
			plant.ApplyDefaults()
			tt.mutate(&plant)
			err := plant.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLossConfigValidate(t *testing.T) {
	valid := DefaultLossConfig()
	if err := valid.Validate(); err != nil {
		t.Errorf("default losses should validate, got %v", err)
	}

	negative := DefaultLossConfig()
	negative.SoilingPct = -1
	if err := negative.Validate(); err == nil {
		t.Error("negative loss should fail validation")
	}

	zeroAvail := DefaultLossConfig()
	zeroAvail.AvailabilityPct = 0
	if err := zeroAvail.Validate(); err == nil {
		t.Error("zero availability should fail validation")
	}
}

func TestWeatherSeries(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	series := WeatherSeries{
		{Time: start, Source: SourceHourly},
		{Time: start.Add(time.Hour), Source: SourceHourly},
	}
	if err := series.Validate(); err != nil {
		t.Errorf("ordered series should validate, got %v", err)
	}

	disordered := WeatherSeries{
		{Time: start.Add(time.Hour)},
		{Time: start},
	}
	if err := disordered.Validate(); err == nil {
		t.Error("out-of-order series should fail validation")
	}
}

func TestWeatherSeriesLastModeledDay(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	series := make(WeatherSeries, 0, 30)
	for i := 0; i < 30; i++ {
		source := SourceHourly
		if i >= 26 {
			source = SourceExtended
		}
		series = append(series, WeatherSample{Time: start.Add(time.Duration(i) * time.Hour), Source: source})
	}

	day := series.LastModeledDay()
	if day == nil {
		t.Fatal("LastModeledDay() = nil, want 24 samples")
	}
	if len(day) != 24 {
		t.Fatalf("LastModeledDay() returned %d samples, want 24", len(day))
	}
	for _, s := range day {
		if s.Source == SourceExtended {
			t.Fatal("LastModeledDay() included an extended sample")
		}
	}

	short := series[:10]
	if short.LastModeledDay() != nil {
		t.Error("LastModeledDay() on a short series should be nil")
	}
}

func TestEquipmentProfileMerge(t *testing.T) {
	base := EquipmentProfile{GammaPmpPerC: f(-0.003)}
	overlay := EquipmentProfile{InverterEfficiency: f(0.97)}

	merged := base.Merge(overlay)
	if merged.GammaPmpPerC == nil || *merged.GammaPmpPerC != -0.003 {
		t.Error("merge dropped the base gamma")
	}
	if merged.InverterEfficiency == nil || *merged.InverterEfficiency != 0.97 {
		t.Error("merge missed the overlay efficiency")
	}
	if !(EquipmentProfile{}).Empty() {
		t.Error("zero profile should be empty")
	}
	if merged.Empty() {
		t.Error("merged profile should not be empty")
	}
}

func f(v float64) *float64 { return &v }
