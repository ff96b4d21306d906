// Package fluid supplies the density and viscosity of the fluid flowing in a
// network. It replaces a full thermodynamic library with closed-form
// correlations that cover the liquid-water and low-pressure-air ranges used in
// building services.
//
//   - Water(T): Kell density, Vogel viscosity, 0..150 °C.
//   - Air(T, gauge): ideal gas density, Sutherland viscosity.
//   - Fixed(name, rho, mu): constant properties.
//
// Lookup(name, T) resolves the fluid names accepted by session files.
package fluid

import (
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/pipenet"
	"github.com/katalvlaran/pipenet/units"
)

// Physical constants.
const (
	// ZeroCelsius is 0 °C in kelvin.
	ZeroCelsius = 273.15

	// AtmosphericPressure is the standard atmosphere in Pa.
	AtmosphericPressure = 101325.0

	// gasConstantAir is the specific gas constant of dry air in J/(kg·K).
	gasConstantAir = 287.058
)

var (
	// ErrUnknownFluid is returned by Lookup for an unsupported fluid name.
	ErrUnknownFluid = fmt.Errorf("fluid: unknown fluid: %w", pipenet.ErrInvalidConfiguration)

	// ErrTemperatureRange is returned when a temperature is outside the
	// validity range of the correlation.
	ErrTemperatureRange = fmt.Errorf("fluid: temperature out of range: %w", pipenet.ErrInvalidConfiguration)
)

// Fluid exposes the properties the hydraulic calculations need.
type Fluid interface {
	Name() string
	Temperature() float64 // °C
	Density() units.Density
	DynamicViscosity() units.DynamicViscosity
	KinematicViscosity() units.KinematicViscosity
}

// properties is the common implementation behind every fluid.
type properties struct {
	name string
	temp float64
	rho  units.Density
	mu   units.DynamicViscosity
}

func (p properties) Name() string                             { return p.name }
func (p properties) Temperature() float64                     { return p.temp }
func (p properties) Density() units.Density                   { return p.rho }
func (p properties) DynamicViscosity() units.DynamicViscosity { return p.mu }

func (p properties) KinematicViscosity() units.KinematicViscosity {
	return units.KinematicViscosity(float64(p.mu) / float64(p.rho))
}

func (p properties) String() string {
	return fmt.Sprintf("%s@%g°C", p.name, p.temp)
}

// Water returns liquid water at temperature t (°C).
func Water(t float64) (Fluid, error) {
	if t < 0 || t > 150 || math.IsNaN(t) {
		return nil, fmt.Errorf("%w: water at %g °C", ErrTemperatureRange, t)
	}
	return properties{
		name: "water",
		temp: t,
		rho:  units.Density(waterDensity(t)),
		mu:   units.DynamicViscosity(waterViscosity(t)),
	}, nil
}

// waterDensity is Kell's correlation (kg/m³, t in °C).
func waterDensity(t float64) float64 {
	num := 999.83952 +
		16.945176*t -
		7.9870401e-3*t*t -
		46.170461e-6*t*t*t +
		105.56302e-9*t*t*t*t -
		280.54253e-12*t*t*t*t*t
	return num / (1 + 16.879850e-3*t)
}

// waterViscosity is Vogel's equation (Pa·s, t in °C).
func waterViscosity(t float64) float64 {
	const a, b, c = 2.414e-5, 247.8, 140.0
	return a * math.Pow(10, b/(t+ZeroCelsius-c))
}

// Air returns dry air at temperature t (°C) and gauge pressure (Pa).
func Air(t float64, gauge units.Pressure) (Fluid, error) {
	if t < -50 || t > 400 || math.IsNaN(t) {
		return nil, fmt.Errorf("%w: air at %g °C", ErrTemperatureRange, t)
	}
	tk := t + ZeroCelsius
	p := AtmosphericPressure + float64(gauge)

	// Sutherland's law.
	const mu0, t0, s = 1.716e-5, 273.15, 110.4
	mu := mu0 * math.Pow(tk/t0, 1.5) * (t0 + s) / (tk + s)

	return properties{
		name: "air",
		temp: t,
		rho:  units.Density(p / (gasConstantAir * tk)),
		mu:   units.DynamicViscosity(mu),
	}, nil
}

// Fixed returns a fluid with constant properties.
func Fixed(name string, rho units.Density, mu units.DynamicViscosity) Fluid {
	return properties{name: name, temp: math.NaN(), rho: rho, mu: mu}
}

// Lookup resolves a fluid by name at temperature t (°C).
func Lookup(name string, t float64) (Fluid, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "water":
		return Water(t)
	case "air":
		return Air(t, 0)
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownFluid, name)
	}
}
