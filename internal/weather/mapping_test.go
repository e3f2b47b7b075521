package weather

import (
	"math"
	"testing"
	"time"

	"sunfutures/internal/providers/nws"
	"sunfutures/internal/types"
)

func TestParseWindMPH(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{
			name:  "single value",
			input: "10 mph",
			want:  10,
		},
		{
			name:  "range averages",
			input: "5 to 10 mph",
			want:  7.5,
		},
		{
			name:  "no number",
			input: "calm",
			want:  0,
		},
		{
			name:  "decimal value",
			input: "12.5 mph",
			want:  12.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseWindMPH(tt.input)
			if got != tt.want {
				t.Errorf("parseWindMPH(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestCloudFromShortForecast(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
	}{
		{
			name:  "mostly sunny beats sunny",
			input: "Mostly Sunny",
			want:  20,
		},
		{
			name:  "sunny",
			input: "Sunny",
			want:  5,
		},
		{
			name:  "clear night",
			input: "Clear",
			want:  5,
		},
		{
			name:  "partly cloudy",
			input: "Partly Cloudy",
			want:  40,
		},
		{
			name:  "mostly cloudy beats cloudy",
			input: "Mostly Cloudy",
			want:  70,
		},
		{
			name:  "overcast",
			input: "Overcast",
			want:  90,
		},
		{
			name:  "rain showers",
			input: "Rain Showers Likely",
			want:  85,
		},
		{
			name:  "unknown text",
			input: "Patchy Fog",
			want:  50,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cloudFromShortForecast(tt.input)
			if got != tt.want {
				t.Errorf("cloudFromShortForecast(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestMapHourlyPeriods(t *testing.T) {
	sky := 30.0
	periods := []nws.HourlyPeriod{
		{
			StartTime:       "2026-03-01T12:00:00-07:00",
			Temperature:     50,
			TemperatureUnit: "F",
			WindSpeed:       "10 mph",
			SkyCover:        &sky,
		},
		{
			StartTime:       "2026-03-01T12:00:00-07:00", // duplicate hour
			Temperature:     51,
			TemperatureUnit: "F",
			WindSpeed:       "10 mph",
		},
		{
			StartTime:       "2026-03-01T13:00:00-07:00",
			Temperature:     10,
			TemperatureUnit: "C",
			WindSpeed:       "5 to 15 mph",
			ShortForecast:   "Mostly Sunny",
		},
	}

	series, err := mapHourlyPeriods(periods)
	if err != nil {
		t.Fatalf("mapHourlyPeriods() error = %v", err)
	}
	if len(series) != 2 {
		t.Fatalf("mapHourlyPeriods() returned %d samples, want 2", len(series))
	}

	first := series[0]
	if !first.Time.Equal(time.Date(2026, 3, 1, 19, 0, 0, 0, time.UTC)) {
		t.Errorf("first sample time = %v, want 19:00 UTC", first.Time)
	}
	if math.Abs(first.TemperatureC-10) > 0.01 {
		t.Errorf("50F = %v C, want 10", first.TemperatureC)
	}
	if first.CloudCoverPct != 30 {
		t.Errorf("skyCover should win over shortForecast, got %v", first.CloudCoverPct)
	}
	if math.Abs(first.WindSpeedMPS-4.4704) > 0.001 {
		t.Errorf("10 mph = %v m/s, want 4.4704", first.WindSpeedMPS)
	}
	if first.Source != types.SourceHourly {
		t.Errorf("source = %v, want HOURLY", first.Source)
	}

	second := series[1]
	if second.CloudCoverPct != 20 {
		t.Errorf("mostly sunny fallback = %v, want 20", second.CloudCoverPct)
	}
	if second.TemperatureC != 10 {
		t.Errorf("celsius passthrough = %v, want 10", second.TemperatureC)
	}
}

func TestExpandGridLayer(t *testing.T) {
	v1, v2 := 12.0, 18.0
	layer := nws.GridLayer{
		Values: []nws.GridValue{
			{ValidTime: "2026-03-01T00:00:00+00:00/PT3H", Value: &v1},
			{ValidTime: "2026-03-01T03:00:00+00:00/PT1H", Value: &v2},
			{ValidTime: "bogus", Value: &v2},
		},
	}

	points := expandGridLayer(layer)
	if len(points) != 4 {
		t.Fatalf("expandGridLayer() produced %d hours, want 4", len(points))
	}
	for h := 0; h < 3; h++ {
		ts := time.Date(2026, 3, 1, h, 0, 0, 0, time.UTC)
		if points[ts] != 12 {
			t.Errorf("hour %d = %v, want forward-filled 12", h, points[ts])
		}
	}
	ts := time.Date(2026, 3, 1, 3, 0, 0, 0, time.UTC)
	if points[ts] != 18 {
		t.Errorf("hour 3 = %v, want 18", points[ts])
	}
}

func TestMapGridForecast(t *testing.T) {
	temp, wind, sky := 10.0, 18.0, 40.0
	resp := &nws.GridForecastAPIResponse{}
	resp.Properties.Temperature = nws.GridLayer{
		UOM:    "wmoUnit:degC",
		Values: []nws.GridValue{{ValidTime: "2026-03-01T00:00:00+00:00/PT2H", Value: &temp}},
	}
	resp.Properties.WindSpeed = nws.GridLayer{
		UOM:    "wmoUnit:km_h-1",
		Values: []nws.GridValue{{ValidTime: "2026-03-01T00:00:00+00:00/PT2H", Value: &wind}},
	}
	resp.Properties.SkyCover = nws.GridLayer{
		UOM: "wmoUnit:percent",
		// only the first hour has sky cover
		Values: []nws.GridValue{{ValidTime: "2026-03-01T00:00:00+00:00/PT1H", Value: &sky}},
	}

	series, err := mapGridForecast(resp)
	if err != nil {
		t.Fatalf("mapGridForecast() error = %v", err)
	}
	if len(series) != 1 {
		t.Fatalf("hours missing a field must be dropped, got %d samples", len(series))
	}
	s := series[0]
	if s.Source != types.SourceGrid {
		t.Errorf("source = %v, want GRID", s.Source)
	}
	if math.Abs(s.WindSpeedMPS-5) > 0.001 {
		t.Errorf("18 km/h = %v m/s, want 5", s.WindSpeedMPS)
	}
	if s.TemperatureC != 10 || s.CloudCoverPct != 40 {
		t.Errorf("sample fields = %+v", s)
	}
}
