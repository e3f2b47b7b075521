package weather

import (
	"time"

	"sunfutures/internal/types"
)

// Extend appends persistence samples until the series covers through the
// given instant. The declared fallback policy repeats the diurnal shape of
// the last fully-modeled day; appended samples are tagged EXTENDED so they
// are never indistinguishable from modeled hours.
func Extend(series types.WeatherSeries, through time.Time) types.WeatherSeries {
	if len(series) == 0 {
		return series
	}

	out := make(types.WeatherSeries, len(series))
	copy(out, series)

	last := out[len(out)-1].Time
	if !last.Before(through) {
		return out
	}

	pattern := diurnalPattern(out)

	for t := last.Add(time.Hour); !t.After(through); t = t.Add(time.Hour) {
		src := pattern[t.Hour()]
		out = append(out, types.WeatherSample{
			Time:          t,
			CloudCoverPct: src.CloudCoverPct,
			TemperatureC:  src.TemperatureC,
			WindSpeedMPS:  src.WindSpeedMPS,
			Source:        types.SourceExtended,
		})
	}
	return out
}

// diurnalPattern indexes the last fully-modeled day by hour of day. When the
// series holds less than one modeled day, a flat persistence of the series
// mean is used for every hour.
func diurnalPattern(series types.WeatherSeries) [24]types.WeatherSample {
	var pattern [24]types.WeatherSample

	if day := series.LastModeledDay(); day != nil {
		for _, s := range day {
			pattern[s.Time.Hour()] = s
		}
		return pattern
	}

	var cloud, temp, wind float64
	for _, s := range series {
		cloud += s.CloudCoverPct
		temp += s.TemperatureC
		wind += s.WindSpeedMPS
	}
	n := float64(len(series))
	flat := types.WeatherSample{
		CloudCoverPct: cloud / n,
		TemperatureC:  temp / n,
		WindSpeedMPS:  wind / n,
	}
	for h := range pattern {
		pattern[h] = flat
	}
	return pattern
}
