package types

import "fmt"

// Location identifies the plant site.
type Location struct {
	Name       string   `json:"name,omitempty"`
	Latitude   float64  `json:"lat"`
	Longitude  float64  `json:"lon"`
	ElevationM *float64 `json:"elevation_m,omitempty"`
}

func (l Location) Validate() error {
	if l.Latitude < -90 || l.Latitude > 90 {
		return fmt.Errorf("latitude %.4f out of range [-90, 90]", l.Latitude)
	}
	if l.Longitude < -180 || l.Longitude > 180 {
		return fmt.Errorf("longitude %.4f out of range [-180, 180]", l.Longitude)
	}
	if l.ElevationM != nil && (*l.ElevationM < -500 || *l.ElevationM > 9000) {
		return fmt.Errorf("elevation %.1f m out of range [-500, 9000]", *l.ElevationM)
	}
	return nil
}

// Elevation returns the configured elevation, or 0 when not supplied.
func (l Location) Elevation() float64 {
	if l.ElevationM == nil {
		return 0
	}
	return *l.ElevationM
}
