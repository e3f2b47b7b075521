package weather

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"sunfutures/internal/providers/nws"
	"sunfutures/internal/types"
)

var numberPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)

// parseWindMPH averages the numbers in strings like "10 mph" or "5 to 10 mph".
func parseWindMPH(s string) float64 {
	matches := numberPattern.FindAllString(s, -1)
	if len(matches) == 0 {
		return 0
	}
	total := 0.0
	for _, m := range matches {
		v, err := strconv.ParseFloat(m, 64)
		if err != nil {
			continue
		}
		total += v
	}
	return total / float64(len(matches))
}

// cloudFromShortForecast maps forecast text to a cloud cover percentage for
// periods where skyCover is not provided. Order matters: longer phrases are
// checked before their substrings.
func cloudFromShortForecast(shortForecast string) float64 {
	t := strings.ToLower(shortForecast)
	switch {
	case strings.Contains(t, "mostly sunny"):
		return 20
	case strings.Contains(t, "partly sunny"), strings.Contains(t, "partly cloudy"):
		return 40
	case strings.Contains(t, "mostly cloudy"):
		return 70
	case strings.Contains(t, "sunny"), strings.Contains(t, "clear"):
		return 5
	case strings.Contains(t, "cloudy"), strings.Contains(t, "overcast"):
		return 90
	case strings.Contains(t, "rain"), strings.Contains(t, "showers"), strings.Contains(t, "thunder"):
		return 85
	default:
		return 50
	}
}

// mapHourlyPeriods converts NWS hourly forecast periods to a weather series
// tagged HOURLY, with timestamps truncated to the hour in UTC.
func mapHourlyPeriods(periods []nws.HourlyPeriod) (types.WeatherSeries, error) {
	series := make(types.WeatherSeries, 0, len(periods))
	var last time.Time
	for _, per := range periods {
		if per.StartTime == "" {
			continue
		}
		start, err := time.Parse(time.RFC3339, per.StartTime)
		if err != nil {
			continue
		}
		ts := start.UTC().Truncate(time.Hour)
		if !last.IsZero() && !ts.After(last) {
			continue // duplicate or out-of-order period
		}
		last = ts

		tempC := per.Temperature
		if per.TemperatureUnit == "F" {
			tempC = (per.Temperature - 32) * 5 / 9
		}

		cloud := 0.0
		if per.SkyCover != nil {
			cloud = *per.SkyCover
		} else {
			cloud = cloudFromShortForecast(per.ShortForecast)
		}

		series = append(series, types.WeatherSample{
			Time:          ts,
			CloudCoverPct: cloud,
			TemperatureC:  tempC,
			WindSpeedMPS:  parseWindMPH(per.WindSpeed) * 0.44704,
			Source:        types.SourceHourly,
		})
	}
	if len(series) == 0 {
		return nil, fmt.Errorf("no usable hourly periods")
	}
	return series, nil
}

var durationPattern = regexp.MustCompile(`PT(?:(\d+)H)?(?:(\d+)M)?`)

// expandGridLayer expands validTime ranges like "2026-02-14T18:00:00+00:00/PT3H"
// into per-hour values, forward-filling across each range.
func expandGridLayer(layer nws.GridLayer) map[time.Time]float64 {
	points := make(map[time.Time]float64)
	for _, gv := range layer.Values {
		if gv.Value == nil {
			continue
		}
		startStr, durStr, found := strings.Cut(gv.ValidTime, "/")
		if !found {
			continue
		}
		start, err := time.Parse(time.RFC3339, startStr)
		if err != nil {
			continue
		}

		hours := 1
		if md := durationPattern.FindStringSubmatch(durStr); md != nil {
			h, m := 0, 0
			if md[1] != "" {
				h, _ = strconv.Atoi(md[1])
			}
			if md[2] != "" {
				m, _ = strconv.Atoi(md[2])
			}
			if m >= 30 {
				h++
			}
			if h > 0 {
				hours = h
			}
		}

		base := start.UTC().Truncate(time.Hour)
		for k := 0; k < hours; k++ {
			points[base.Add(time.Duration(k)*time.Hour)] = *gv.Value
		}
	}
	return points
}

// mapGridForecast combines the temperature, windSpeed and skyCover layers of
// the raw grid response into a weather series tagged GRID. An hour is emitted
// only when all three fields are known for it, since the blender replaces
// whole samples.
func mapGridForecast(resp *nws.GridForecastAPIResponse) (types.WeatherSeries, error) {
	temp := expandGridLayer(resp.Properties.Temperature)
	wind := expandGridLayer(resp.Properties.WindSpeed)
	sky := expandGridLayer(resp.Properties.SkyCover)

	// NWS grid wind speed is typically km/h (wmoUnit:km_h-1)
	windScale := 1.0
	if strings.Contains(resp.Properties.WindSpeed.UOM, "km_h") || resp.Properties.WindSpeed.UOM == "" {
		windScale = 1.0 / 3.6
	}

	hours := make([]time.Time, 0, len(temp))
	for ts := range temp {
		if _, ok := wind[ts]; !ok {
			continue
		}
		if _, ok := sky[ts]; !ok {
			continue
		}
		hours = append(hours, ts)
	}
	sort.Slice(hours, func(i, j int) bool { return hours[i].Before(hours[j]) })

	if len(hours) == 0 {
		return nil, fmt.Errorf("grid forecast has no hours with all fields present")
	}

	series := make(types.WeatherSeries, 0, len(hours))
	for _, ts := range hours {
		series = append(series, types.WeatherSample{
			Time:          ts,
			CloudCoverPct: sky[ts],
			TemperatureC:  temp[ts],
			WindSpeedMPS:  wind[ts] * windScale,
			Source:        types.SourceGrid,
		})
	}
	return series, nil
}
