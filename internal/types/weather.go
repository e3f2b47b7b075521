package types

import (
	"fmt"
	"time"
)

// WeatherSource tags the origin of a weather sample.
type WeatherSource string

const (
	SourceHourly   WeatherSource = "HOURLY"
	SourceGrid     WeatherSource = "GRID"
	SourceExtended WeatherSource = "EXTENDED"
)

// WeatherSample is one hour of forecast weather, hour-aligned in UTC.
type WeatherSample struct {
	Time          time.Time     `json:"time"`
	CloudCoverPct float64       `json:"cloud_cover_pct"`
	TemperatureC  float64       `json:"temperature_c"`
	WindSpeedMPS  float64       `json:"wind_speed_mps"`
	Source        WeatherSource `json:"source"`
}

// WeatherSeries is an ordered hourly sequence with strictly increasing,
// non-duplicated timestamps.
type WeatherSeries []WeatherSample

func (s WeatherSeries) Validate() error {
	for i := 1; i < len(s); i++ {
		if !s[i].Time.After(s[i-1].Time) {
			return fmt.Errorf("series not strictly increasing at index %d (%s after %s)",
				i, s[i].Time.Format(time.RFC3339), s[i-1].Time.Format(time.RFC3339))
		}
	}
	return nil
}

// Hours returns the covered span in hours, assuming hourly spacing.
func (s WeatherSeries) Hours() int {
	return len(s)
}

// LastModeledDay returns the final 24 consecutive samples that are not
// EXTENDED, or nil when the series holds less than a full modeled day.
func (s WeatherSeries) LastModeledDay() WeatherSeries {
	end := len(s)
	for end > 0 && s[end-1].Source == SourceExtended {
		end--
	}
	if end < 24 {
		return nil
	}
	return s[end-24 : end]
}
