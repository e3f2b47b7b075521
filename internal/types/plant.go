package types

import "fmt"

// Mounting is the module mounting kind.
type Mounting string

const (
	MountingFixed Mounting = "FIXED"
	MountingSAT   Mounting = "SAT" // single-axis tracking
)

// PlantConfig describes the plant geometry and electrical limits.
type PlantConfig struct {
	PlantName    string   `json:"plant_name,omitempty"`
	DCCapacityKW float64  `json:"dc_capacity_kw"`
	ACCapacityKW float64  `json:"ac_capacity_kw"`
	Mounting     Mounting `json:"mounting"`

	// Fixed mounting geometry
	TiltDeg    *float64 `json:"tilt_deg,omitempty"`
	AzimuthDeg *float64 `json:"azimuth_deg,omitempty"`

	// Single-axis tracker geometry
	GCR                float64 `json:"gcr,omitempty"`
	MaxTrackerAngleDeg float64 `json:"max_tracker_angle_deg,omitempty"`
	Backtracking       bool    `json:"backtracking,omitempty"`

	POILimitKW *float64 `json:"poi_limit_kw,omitempty"`
	Albedo     *float64 `json:"albedo,omitempty"`
}

const (
	defaultGCR             = 0.35
	defaultMaxTrackerAngle = 60.0
	defaultFixedTilt       = 20.0
	defaultFixedAzimuth    = 180.0
	defaultAlbedo          = 0.2
)

// ApplyDefaults fills unset geometry fields with conventional values.
func (p *PlantConfig) ApplyDefaults() {
	if p.Mounting == "" {
		p.Mounting = MountingSAT
	}
	if p.GCR == 0 {
		p.GCR = defaultGCR
	}
	if p.MaxTrackerAngleDeg == 0 {
		p.MaxTrackerAngleDeg = defaultMaxTrackerAngle
	}
}

func (p PlantConfig) Validate() error {
	if p.DCCapacityKW <= 0 {
		return fmt.Errorf("dc_capacity_kw must be positive, got %.2f", p.DCCapacityKW)
	}
	if p.ACCapacityKW <= 0 {
		return fmt.Errorf("ac_capacity_kw must be positive, got %.2f", p.ACCapacityKW)
	}
	switch p.Mounting {
	case MountingFixed, MountingSAT:
	default:
		return fmt.Errorf("unknown mounting kind %q", p.Mounting)
	}
	if p.TiltDeg != nil && (*p.TiltDeg < 0 || *p.TiltDeg > 90) {
		return fmt.Errorf("tilt_deg %.1f out of range [0, 90]", *p.TiltDeg)
	}
	if p.AzimuthDeg != nil && (*p.AzimuthDeg < 0 || *p.AzimuthDeg > 360) {
		return fmt.Errorf("azimuth_deg %.1f out of range [0, 360]", *p.AzimuthDeg)
	}
	if p.Mounting == MountingSAT {
		if p.GCR < 0.1 || p.GCR > 0.9 {
			return fmt.Errorf("gcr %.2f out of range [0.1, 0.9]", p.GCR)
		}
		if p.MaxTrackerAngleDeg < 0 || p.MaxTrackerAngleDeg > 90 {
			return fmt.Errorf("max_tracker_angle_deg %.1f out of range [0, 90]", p.MaxTrackerAngleDeg)
		}
	}
	if p.POILimitKW != nil && *p.POILimitKW <= 0 {
		return fmt.Errorf("poi_limit_kw must be positive when set, got %.2f", *p.POILimitKW)
	}
	return nil
}

// Tilt returns the fixed-mount tilt in degrees, defaulted when unset.
func (p PlantConfig) Tilt() float64 {
	if p.TiltDeg == nil {
		return defaultFixedTilt
	}
	return *p.TiltDeg
}

// Azimuth returns the fixed-mount azimuth in degrees, defaulted when unset.
func (p PlantConfig) Azimuth() float64 {
	if p.AzimuthDeg == nil {
		return defaultFixedAzimuth
	}
	return *p.AzimuthDeg
}

// GroundAlbedo returns the configured albedo, or the conventional 0.2.
func (p PlantConfig) GroundAlbedo() float64 {
	if p.Albedo == nil {
		return defaultAlbedo
	}
	return *p.Albedo
}

// DCACRatio is advisory only: a ratio below 1 is unusual but never rejected.
func (p PlantConfig) DCACRatio() float64 {
	return p.DCCapacityKW / p.ACCapacityKW
}
