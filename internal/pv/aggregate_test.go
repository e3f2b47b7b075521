package pv

import (
	"testing"
	"time"
)

func TestAggregateDaily(t *testing.T) {
	tz, err := time.LoadLocation("America/Los_Angeles")
	if err != nil {
		t.Fatalf("loading timezone: %v", err)
	}

	// 07:00 UTC is 23:00 or 00:00 local; start at a local midnight
	start := time.Date(2026, 6, 21, 7, 0, 0, 0, time.UTC)
	hours := make([]HourlyPower, 0, 72)
	for i := 0; i < 72; i++ {
		hours = append(hours, HourlyPower{
			Time:     start.Add(time.Duration(i) * time.Hour),
			PACKw:    100,
			POAWm2:   500,
			Extended: i >= 48,
		})
	}

	daily := AggregateDaily(hours, tz, 3)
	if len(daily) != 3 {
		t.Fatalf("AggregateDaily() returned %d days, want 3", len(daily))
	}

	for i, d := range daily {
		if d.KWh != 2400 {
			t.Errorf("day %d energy = %v kWh, want 2400", i, d.KWh)
		}
	}
	if daily[0].Date != "2026-06-21" {
		t.Errorf("first date = %s, want 2026-06-21", daily[0].Date)
	}
	if daily[0].Extended || daily[1].Extended {
		t.Error("modeled days flagged extended")
	}
	if !daily[2].Extended {
		t.Error("extended day not flagged")
	}
}

func TestAggregateDaily_TruncatesToHorizon(t *testing.T) {
	start := time.Date(2026, 6, 21, 0, 0, 0, 0, time.UTC)
	hours := make([]HourlyPower, 0, 120)
	for i := 0; i < 120; i++ {
		hours = append(hours, HourlyPower{Time: start.Add(time.Duration(i) * time.Hour), PACKw: 1})
	}

	daily := AggregateDaily(hours, time.UTC, 2)
	if len(daily) != 2 {
		t.Errorf("AggregateDaily() returned %d days, want horizon 2", len(daily))
	}
}

func TestAggregateDailyPOA(t *testing.T) {
	start := time.Date(2026, 6, 21, 0, 0, 0, 0, time.UTC)
	hours := make([]HourlyPower, 0, 24)
	for i := 0; i < 24; i++ {
		hours = append(hours, HourlyPower{Time: start.Add(time.Duration(i) * time.Hour), POAWm2: 250})
	}

	poa := AggregateDailyPOA(hours, time.UTC, 1)
	if len(poa) != 1 {
		t.Fatalf("AggregateDailyPOA() returned %d days, want 1", len(poa))
	}
	if poa[0].POAKWhPerM2 != 6 {
		t.Errorf("daily POA = %v kWh/m2, want 6", poa[0].POAKWhPerM2)
	}
}
