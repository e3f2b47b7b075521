package weather

import (
	"sort"
	"time"

	"sunfutures/internal/types"
)

// GridPreferenceHours is the window in which grid-derived samples take
// precedence over the point hourly forecast. Grid fields are higher fidelity
// but only reliably available for the short range.
const GridPreferenceHours = 168

// Blend merges the hourly and grid series into one ordered series. Within the
// first GridPreferenceHours from the start of the hourly series a grid sample
// replaces the hourly sample for the same hour; beyond the window only hourly
// samples are used. A nil or empty grid series degrades to hourly-only.
func Blend(hourly, grid types.WeatherSeries) types.WeatherSeries {
	if len(hourly) == 0 {
		return nil
	}
	if len(grid) == 0 {
		out := make(types.WeatherSeries, len(hourly))
		copy(out, hourly)
		return out
	}

	start := hourly[0].Time
	cutoff := start.Add(GridPreferenceHours * time.Hour)

	merged := make(map[time.Time]types.WeatherSample, len(hourly)+len(grid))
	for _, s := range hourly {
		merged[s.Time] = s
	}
	for _, s := range grid {
		if s.Time.Before(start) || !s.Time.Before(cutoff) {
			continue
		}
		merged[s.Time] = s
	}

	out := make(types.WeatherSeries, 0, len(merged))
	for _, s := range merged {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Time.Before(out[j].Time) })
	return out
}
