package pv

import (
	"time"

	"sunfutures/internal/types"
)

// DailyPOA is the plane-of-array insolation of one site-local day, used by
// the report builder for specific yield and performance ratio.
type DailyPOA struct {
	Date       string
	POAKWhPerM2 float64
}

// AggregateDaily sums hourly AC power into daily energy over site-local
// calendar days. Each hourly sample contributes its power times one hour.
// Days containing any extended sample are flagged as extended. Exactly
// horizonDays entries are returned, starting from the first modeled day.
func AggregateDaily(hours []HourlyPower, tz *time.Location, horizonDays int) []types.DailyYield {
	if tz == nil {
		tz = time.UTC
	}
	type bucket struct {
		kwh      float64
		extended bool
	}
	buckets := make(map[string]*bucket)
	order := make([]string, 0, horizonDays+2)
	for _, h := range hours {
		date := h.Time.In(tz).Format("2006-01-02")
		b, ok := buckets[date]
		if !ok {
			b = &bucket{}
			buckets[date] = b
			order = append(order, date)
		}
		b.kwh += h.PACKw
		if h.Extended {
			b.extended = true
		}
	}

	out := make([]types.DailyYield, 0, horizonDays)
	for _, date := range order {
		if len(out) == horizonDays {
			break
		}
		b := buckets[date]
		out = append(out, types.DailyYield{
			Date:     date,
			KWh:      b.kwh,
			Extended: b.extended,
		})
	}
	return out
}

// AggregateDailyPOA sums hourly plane-of-array irradiance into daily
// insolation per site-local day, aligned with AggregateDaily.
func AggregateDailyPOA(hours []HourlyPower, tz *time.Location, horizonDays int) []DailyPOA {
	if tz == nil {
		tz = time.UTC
	}
	sums := make(map[string]float64)
	order := make([]string, 0, horizonDays+2)
	for _, h := range hours {
		date := h.Time.In(tz).Format("2006-01-02")
		if _, ok := sums[date]; !ok {
			order = append(order, date)
		}
		sums[date] += h.POAWm2 / 1000
	}
	out := make([]DailyPOA, 0, horizonDays)
	for _, date := range order {
		if len(out) == horizonDays {
			break
		}
		out = append(out, DailyPOA{Date: date, POAKWhPerM2: sums[date]})
	}
	return out
}
