package hydraulics

import (
	"math"

	"github.com/katalvlaran/pipenet/units"
)

// Reynolds returns v·D/ν.
func Reynolds(v units.Velocity, d units.Length, nu units.KinematicViscosity) float64 {
	return float64(v) * float64(d) / float64(nu)
}

// DarcyFriction returns the Darcy friction factor for Reynolds number re and
// relative roughness relRough = ε/D. At re = 0 the factor is 0.
func DarcyFriction(re, relRough float64, m FrictionModel) float64 {
	if re <= 0 {
		return 0
	}
	if m == Serghide {
		return serghide(re, relRough)
	}
	return haaland(re, relRough)
}

func haaland(re, e float64) float64 {
	x := -1.8 * math.Log10(6.9/re+math.Pow(e/3.71, 1.11))
	return 1 / (x * x)
}

func serghide(re, e float64) float64 {
	a := -2 * math.Log10(e/3.7+12/re)
	b := -2 * math.Log10(e/3.7+2.51*a/re)
	c := -2 * math.Log10(e/3.7+2.51*b/re)
	x := a - (b-a)*(b-a)/(c-2*b+a)
	return 1 / (x * x)
}

// FullyTurbulentFriction returns the friction factor of the rough-pipe
// asymptote: 0.25 / log10(ε/(3.7·D))².
func FullyTurbulentFriction(relRough float64) float64 {
	l := math.Log10(relRough / 3.7)
	return 0.25 / (l * l)
}

// CircularArea returns π·D²/4.
func CircularArea(d units.Length) units.Area {
	return units.Area(math.Pi * float64(d) * float64(d) / 4)
}

// MeanVelocity returns q/A for a circular section of diameter d.
func MeanVelocity(q units.FlowRate, d units.Length) (units.Velocity, error) {
	a := CircularArea(d)
	if a <= 0 {
		return 0, ErrZeroDivision
	}
	return units.Velocity(float64(q) / float64(a)), nil
}

// VelocityPressure returns ρv²/2.
func VelocityPressure(rho units.Density, v units.Velocity) units.Pressure {
	return units.Pressure(float64(rho) * float64(v) * float64(v) / 2)
}
