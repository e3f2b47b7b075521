package solar

import (
	"math"
	"time"

	"sunfutures/internal/types"
)

// KtFromCloud maps cloud cover percentage to a clearness index. Clouds reduce
// the clearness index strongly and non-linearly; the result is clamped to
// [0.05, 1] so overcast skies still pass diffuse light.
func KtFromCloud(cloudPct float64) float64 {
	c := math.Max(0, math.Min(1, cloudPct/100))
	kt := 1 - 0.75*math.Pow(c, 3.4)
	return math.Max(0.05, math.Min(1, kt))
}

// ErbsDecomposition splits global horizontal irradiance into direct normal
// and diffuse horizontal components using the Erbs (1982) correlation.
func ErbsDecomposition(t time.Time, pos Position, ghi float64) (dni, dhi float64) {
	if !pos.Up() || ghi <= 0 {
		return 0, 0
	}

	i0h := ExtraterrestrialNormal(t) * pos.CosZenith
	if i0h <= 0 {
		return 0, ghi
	}

	kt := math.Max(0, math.Min(1, ghi/i0h))

	var diffuseFraction float64
	switch {
	case kt <= 0.22:
		diffuseFraction = 1 - 0.09*kt
	case kt <= 0.8:
		diffuseFraction = 0.9511 - 0.1604*kt + 4.388*kt*kt -
			16.638*kt*kt*kt + 12.336*kt*kt*kt*kt
	default:
		diffuseFraction = 0.165
	}

	dhi = diffuseFraction * ghi

	// Avoid the DNI blow-up near the horizon
	cosZ := math.Max(pos.CosZenith, math.Cos(87*degToRad))
	dni = (ghi - dhi) / cosZ
	if dni < 0 {
		dni = 0
	}
	return dni, dhi
}

// TrackerAngle returns the rotation angle of a horizontal north-south
// single-axis tracker, in degrees, positive when the panel faces west.
// Backtracking reduces the rotation magnitude from the ground-coverage
// geometry so adjacent rows never shade each other; maxAngle bounds the
// mechanical range.
func TrackerAngle(pos Position, gcr, maxAngle float64, backtrack bool) float64 {
	if !pos.Up() {
		return 0
	}

	zRad := pos.ZenithDeg * degToRad
	azRad := pos.AzimuthDeg * degToRad

	// Ideal (true-tracking) rotation about the N-S axis
	ideal := math.Atan2(math.Sin(zRad)*math.Sin(azRad), math.Cos(zRad)) / degToRad

	angle := ideal
	if backtrack && gcr > 0 {
		// Shading is predicted while cos(ideal)/gcr < 1; back the tracker
		// off by the geometric correction in that zone.
		temp := math.Cos(ideal*degToRad) / gcr
		if temp < 1 {
			correction := math.Acos(math.Max(-1, math.Min(1, temp))) / degToRad
			if angle >= 0 {
				angle -= correction
			} else {
				angle += correction
			}
		}
	}

	if angle > maxAngle {
		angle = maxAngle
	}
	if angle < -maxAngle {
		angle = -maxAngle
	}
	return angle
}

// SurfaceOrientation resolves the plant geometry to a surface tilt and
// azimuth for one instant.
func SurfaceOrientation(pos Position, plant types.PlantConfig) (tiltDeg, azimuthDeg float64) {
	if plant.Mounting == types.MountingSAT {
		angle := TrackerAngle(pos, plant.GCR, plant.MaxTrackerAngleDeg, plant.Backtracking)
		tiltDeg = math.Abs(angle)
		if angle >= 0 {
			azimuthDeg = 90 // morning sun, panel faces east
		} else {
			azimuthDeg = 270 // afternoon sun, panel faces west
		}
		return tiltDeg, azimuthDeg
	}
	return plant.Tilt(), plant.Azimuth()
}

// TransposeHayDavies converts horizontal irradiance components to
// plane-of-array irradiance using the Hay-Davies anisotropic sky model plus
// an isotropic ground-reflected term scaled by albedo.
func TransposeHayDavies(t time.Time, pos Position, dni, ghi, dhi, tiltDeg, azimuthDeg, albedo float64) float64 {
	if ghi <= 0 {
		return 0
	}

	tiltRad := tiltDeg * degToRad
	zRad := pos.ZenithDeg * degToRad
	surfAzRad := azimuthDeg * degToRad
	sunAzRad := pos.AzimuthDeg * degToRad

	cosAOI := math.Cos(zRad)*math.Cos(tiltRad) +
		math.Sin(zRad)*math.Sin(tiltRad)*math.Cos(sunAzRad-surfAzRad)
	beamFactor := math.Max(0, cosAOI)

	// Anisotropy index weights circumsolar diffuse by beam transmittance
	i0 := ExtraterrestrialNormal(t)
	anisotropy := 0.0
	if i0 > 0 {
		anisotropy = math.Max(0, math.Min(1, dni/i0))
	}

	cosZ := math.Max(pos.CosZenith, math.Cos(87*degToRad))
	rb := beamFactor / cosZ

	beam := dni * beamFactor
	sky := dhi * (anisotropy*rb + (1-anisotropy)*(1+math.Cos(tiltRad))/2)
	ground := ghi * albedo * (1 - math.Cos(tiltRad)) / 2

	poa := beam + sky + ground
	if poa < 0 {
		return 0
	}
	return poa
}

// POAIrradiance runs the full irradiance chain for one weather sample:
// clear-sky attenuation by cloud cover, Erbs decomposition, geometry
// resolution and transposition.
func POAIrradiance(sample types.WeatherSample, latitude, longitude, elevationM float64, plant types.PlantConfig) float64 {
	pos := SolarPosition(sample.Time, latitude, longitude)
	if !pos.Up() {
		return 0
	}

	ghi := ClearSkyGHI(sample.Time, pos, elevationM) * KtFromCloud(sample.CloudCoverPct)
	if ghi <= 0 {
		return 0
	}

	dni, dhi := ErbsDecomposition(sample.Time, pos, ghi)
	tilt, azimuth := SurfaceOrientation(pos, plant)
	return TransposeHayDavies(sample.Time, pos, dni, ghi, dhi, tilt, azimuth, plant.GroundAlbedo())
}

// GHIFromIrradianceProxy converts a measured/forecast shortwave radiation
// value (W/m2, as ensemble members provide) directly to GHI, bypassing the
// cloud-to-clearness transform.
func GHIFromIrradianceProxy(shortwaveWm2 float64) float64 {
	if shortwaveWm2 < 0 {
		return 0
	}
	return shortwaveWm2
}
