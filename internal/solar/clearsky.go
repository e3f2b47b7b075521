package solar

import (
	"math"
	"time"
)

// defaultLinkeTurbidity is a reasonable continental annual mean. The Ineichen
// model is not very sensitive to it at the daily-energy level.
const defaultLinkeTurbidity = 3.0

// airMass returns the Kasten-Young (1989) relative air mass for a zenith
// angle in degrees, or +Inf below the horizon.
func airMass(zenithDeg float64) float64 {
	if zenithDeg >= 90 {
		return math.Inf(1)
	}
	zRad := zenithDeg * degToRad
	return 1 / (math.Cos(zRad) + 0.50572*math.Pow(96.07995-zenithDeg, -1.6364))
}

// ClearSkyGHI returns the Ineichen-Perez clear-sky global horizontal
// irradiance in W/m2 for the given instant, position and site elevation.
func ClearSkyGHI(t time.Time, pos Position, elevationM float64) float64 {
	if !pos.Up() {
		return 0
	}

	am := airMass(pos.ZenithDeg)
	if math.IsInf(am, 1) {
		return 0
	}

	fh1 := math.Exp(-elevationM / 8000)
	fh2 := math.Exp(-elevationM / 1250)
	cg1 := 5.09e-5*elevationM + 0.868
	cg2 := 3.92e-5*elevationM + 0.0387

	i0 := ExtraterrestrialNormal(t)
	tl := defaultLinkeTurbidity

	ghi := cg1 * i0 * pos.CosZenith *
		math.Exp(-cg2*am*(fh1+fh2*(tl-1)))
	if ghi < 0 {
		return 0
	}
	return ghi
}
