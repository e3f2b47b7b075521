package solar

import (
	"math"
	"time"
)

// Position is the sun's apparent position for one instant and site.
type Position struct {
	ZenithDeg  float64
	AzimuthDeg float64 // degrees clockwise from north
	CosZenith  float64
}

// Up reports whether the sun is above the horizon.
func (p Position) Up() bool {
	return p.CosZenith > 0
}

const degToRad = math.Pi / 180

// SolarPosition computes the solar zenith and azimuth angles from the
// NOAA/Spencer series. Accuracy is a fraction of a degree, sufficient for
// hourly energy simulation.
func SolarPosition(t time.Time, latitude, longitude float64) Position {
	utc := t.UTC()
	doy := float64(utc.YearDay())
	hour := float64(utc.Hour()) + float64(utc.Minute())/60 + float64(utc.Second())/3600

	// Fractional year in radians
	gamma := 2 * math.Pi / 365 * (doy - 1 + (hour-12)/24)

	// Equation of time (minutes) and declination (radians), Spencer (1971)
	eqTime := 229.18 * (0.000075 +
		0.001868*math.Cos(gamma) - 0.032077*math.Sin(gamma) -
		0.014615*math.Cos(2*gamma) - 0.040849*math.Sin(2*gamma))
	decl := 0.006918 -
		0.399912*math.Cos(gamma) + 0.070257*math.Sin(gamma) -
		0.006758*math.Cos(2*gamma) + 0.000907*math.Sin(2*gamma) -
		0.002697*math.Cos(3*gamma) + 0.00148*math.Sin(3*gamma)

	// True solar time (minutes) and hour angle (degrees)
	timeOffset := eqTime + 4*longitude
	tst := hour*60 + timeOffset
	hourAngle := tst/4 - 180

	latRad := latitude * degToRad
	haRad := hourAngle * degToRad

	cosZenith := math.Sin(latRad)*math.Sin(decl) +
		math.Cos(latRad)*math.Cos(decl)*math.Cos(haRad)
	cosZenith = math.Max(-1, math.Min(1, cosZenith))
	zenith := math.Acos(cosZenith)

	// Azimuth clockwise from north
	sinZenith := math.Sin(zenith)
	azimuth := 0.0
	if sinZenith > 1e-6 {
		cosAz := (math.Sin(decl) - math.Sin(latRad)*cosZenith) /
			(math.Cos(latRad) * sinZenith)
		cosAz = math.Max(-1, math.Min(1, cosAz))
		azimuth = math.Acos(cosAz) / degToRad
		if hourAngle > 0 {
			azimuth = 360 - azimuth
		}
	}

	return Position{
		ZenithDeg:  zenith / degToRad,
		AzimuthDeg: azimuth,
		CosZenith:  cosZenith,
	}
}

// ExtraterrestrialNormal returns the top-of-atmosphere normal irradiance in
// W/m2 for the given day, including the earth-sun distance correction.
func ExtraterrestrialNormal(t time.Time) float64 {
	doy := float64(t.UTC().YearDay())
	return 1367.0 * (1 + 0.033*math.Cos(2*math.Pi*doy/365))
}
