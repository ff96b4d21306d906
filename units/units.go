// Package units provides typed physical quantities with explicit conversion.
//
// Every quantity is a named float64 that always holds its SI base value
// (metre, square metre, cubic metre per second, pascal, ...). Values enter
// through NewX(v, unit) or a convenience constructor and leave through In(unit),
// so a number never crosses a package boundary without its unit being known.
//
// Supported units:
//
//	length, diameter: m, cm, mm, km
//	flow rate:        m^3/s, m^3/h, L/s, L/min
//	pressure:         Pa, kPa, bar, MPa, m (metre water column at 10 °C)
//	velocity:         m/s, km/h
//
// Errors:
//
//   - ErrUnknownUnit  if a unit string is not supported for the quantity.
package units

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/pipenet"
)

// Reference constants.
const (
	// Gravity is the standard acceleration of gravity in m/s².
	Gravity = 9.81

	// WaterDensity10C is the density of water at 10 °C in kg/m³, used for the
	// "m" (metre water column) pressure unit.
	WaterDensity10C = 999.70
)

// ErrUnknownUnit is returned when a unit string is not recognised.
var ErrUnknownUnit = fmt.Errorf("units: unknown unit: %w", pipenet.ErrInvalidConfiguration)

// Length is a length in metres.
type Length float64

// Area is an area in square metres.
type Area float64

// FlowRate is a volume flow rate in m³/s.
type FlowRate float64

// Velocity is a velocity in m/s.
type Velocity float64

// Pressure is a pressure or pressure difference in Pa.
type Pressure float64

// Density is a mass density in kg/m³.
type Density float64

// DynamicViscosity is a dynamic viscosity in Pa·s.
type DynamicViscosity float64

// KinematicViscosity is a kinematic viscosity in m²/s.
type KinematicViscosity float64

var (
	lengthFactors = map[string]float64{
		"m":  1,
		"cm": 1e-2,
		"mm": 1e-3,
		"km": 1e3,
	}
	flowFactors = map[string]float64{
		"m^3/s": 1,
		"m^3/h": 1.0 / 3600,
		"L/s":   1e-3,
		"L/min": 1e-3 / 60,
	}
	pressureFactors = map[string]float64{
		"Pa":  1,
		"kPa": 1e3,
		"bar": 1e5,
		"MPa": 1e6,
		"m":   WaterDensity10C * Gravity,
	}
	velocityFactors = map[string]float64{
		"m/s":  1,
		"km/h": 1.0 / 3.6,
	}
)

// factor returns the multiplier from unit to base for the given table.
func factor(table map[string]float64, unit string) (float64, error) {
	f, ok := table[unit]
	if !ok {
		return 0, fmt.Errorf("%w %q (supported: %v)", ErrUnknownUnit, unit, keys(table))
	}
	return f, nil
}

func keys(table map[string]float64) []string {
	out := make([]string, 0, len(table))
	for k := range table {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// NewLength converts v expressed in unit to a Length.
func NewLength(v float64, unit string) (Length, error) {
	f, err := factor(lengthFactors, unit)
	if err != nil {
		return 0, err
	}
	return Length(v * f), nil
}

// In returns l expressed in unit.
func (l Length) In(unit string) (float64, error) {
	f, err := factor(lengthFactors, unit)
	if err != nil {
		return 0, err
	}
	return float64(l) / f, nil
}

// Metres returns v metres.
func Metres(v float64) Length { return Length(v) }

// Millimetres returns v millimetres.
func Millimetres(v float64) Length { return Length(v * 1e-3) }

// Millimetres returns l in mm.
func (l Length) Millimetres() float64 { return float64(l) * 1e3 }

// NewFlowRate converts v expressed in unit to a FlowRate.
func NewFlowRate(v float64, unit string) (FlowRate, error) {
	f, err := factor(flowFactors, unit)
	if err != nil {
		return 0, err
	}
	return FlowRate(v * f), nil
}

// In returns q expressed in unit.
func (q FlowRate) In(unit string) (float64, error) {
	f, err := factor(flowFactors, unit)
	if err != nil {
		return 0, err
	}
	return float64(q) / f, nil
}

// LitresPerSecond returns v L/s.
func LitresPerSecond(v float64) FlowRate { return FlowRate(v * 1e-3) }

// CubicMetresPerHour returns v m³/h.
func CubicMetresPerHour(v float64) FlowRate { return FlowRate(v / 3600) }

// CubicMetresPerHour returns q in m³/h.
func (q FlowRate) CubicMetresPerHour() float64 { return float64(q) * 3600 }

// NewPressure converts v expressed in unit to a Pressure.
func NewPressure(v float64, unit string) (Pressure, error) {
	f, err := factor(pressureFactors, unit)
	if err != nil {
		return 0, err
	}
	return Pressure(v * f), nil
}

// In returns p expressed in unit.
func (p Pressure) In(unit string) (float64, error) {
	f, err := factor(pressureFactors, unit)
	if err != nil {
		return 0, err
	}
	return float64(p) / f, nil
}

// Pascals returns v Pa.
func Pascals(v float64) Pressure { return Pressure(v) }

// Bar returns v bar.
func Bar(v float64) Pressure { return Pressure(v * 1e5) }

// Bar returns p in bar.
func (p Pressure) Bar() float64 { return float64(p) * 1e-5 }

// MegaPascals returns v MPa.
func MegaPascals(v float64) Pressure { return Pressure(v * 1e6) }

// NewVelocity converts v expressed in unit to a Velocity.
func NewVelocity(v float64, unit string) (Velocity, error) {
	f, err := factor(velocityFactors, unit)
	if err != nil {
		return 0, err
	}
	return Velocity(v * f), nil
}

// In returns v expressed in unit.
func (v Velocity) In(unit string) (float64, error) {
	f, err := factor(velocityFactors, unit)
	if err != nil {
		return 0, err
	}
	return float64(v) / f, nil
}

// MetresPerSecond returns v m/s.
func MetresPerSecond(v float64) Velocity { return Velocity(v) }
