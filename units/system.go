package units

import (
	"fmt"

	"github.com/katalvlaran/pipenet"
)

// Kind names a quantity category in a units configuration.
type Kind string

// Recognised units-configuration keys.
const (
	KindLength   Kind = "length"
	KindDiameter Kind = "diameter"
	KindFlowRate Kind = "flow_rate"
	KindPressure Kind = "pressure"
	KindVelocity Kind = "velocity"
)

// ErrUnknownKind is returned when a units configuration names an unknown key.
var ErrUnknownKind = fmt.Errorf("units: unknown quantity key: %w", pipenet.ErrInvalidConfiguration)

// System maps quantity kinds to the unit used for input and output tables.
type System map[Kind]string

// DefaultSystem returns the default mapping: m, mm, L/s, bar, m/s.
func DefaultSystem() System {
	return System{
		KindLength:   "m",
		KindDiameter: "mm",
		KindFlowRate: "L/s",
		KindPressure: "bar",
		KindVelocity: "m/s",
	}
}

func tableFor(k Kind) (map[string]float64, error) {
	switch k {
	case KindLength, KindDiameter:
		return lengthFactors, nil
	case KindFlowRate:
		return flowFactors, nil
	case KindPressure:
		return pressureFactors, nil
	case KindVelocity:
		return velocityFactors, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownKind, string(k))
	}
}

// NewSystem returns the default system overridden by the given entries.
// Keys and units are validated.
func NewSystem(overrides map[string]string) (System, error) {
	sys := DefaultSystem()
	for key, unit := range overrides {
		k := Kind(key)
		table, err := tableFor(k)
		if err != nil {
			return nil, err
		}
		if _, err = factor(table, unit); err != nil {
			return nil, fmt.Errorf("units: key %q: %w", key, err)
		}
		sys[k] = unit
	}
	return sys, nil
}

// Unit returns the configured unit for k, falling back to the default.
func (s System) Unit(k Kind) string {
	if u, ok := s[k]; ok {
		return u
	}
	return DefaultSystem()[k]
}

// Length interprets v in the configured length unit.
func (s System) Length(v float64) (Length, error) { return NewLength(v, s.Unit(KindLength)) }

// Diameter interprets v in the configured diameter unit.
func (s System) Diameter(v float64) (Length, error) { return NewLength(v, s.Unit(KindDiameter)) }

// FlowRate interprets v in the configured flow-rate unit.
func (s System) FlowRate(v float64) (FlowRate, error) { return NewFlowRate(v, s.Unit(KindFlowRate)) }

// Pressure interprets v in the configured pressure unit.
func (s System) Pressure(v float64) (Pressure, error) { return NewPressure(v, s.Unit(KindPressure)) }

// Velocity interprets v in the configured velocity unit.
func (s System) Velocity(v float64) (Velocity, error) { return NewVelocity(v, s.Unit(KindVelocity)) }
