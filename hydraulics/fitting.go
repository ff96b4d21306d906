package hydraulics

import (
	"fmt"
	"math"

	"github.com/katalvlaran/pipenet/fluid"
	"github.com/katalvlaran/pipenet/schedule"
	"github.com/katalvlaran/pipenet/units"
)

// FlowCondition is the flow through the bore a fitting is mounted in.
type FlowCondition struct {
	Fluid    fluid.Fluid
	FlowRate units.FlowRate
	Diameter units.Length
}

func (c FlowCondition) velocity() (units.Velocity, error) {
	return MeanVelocity(c.FlowRate, c.Diameter)
}

// Resistance is one of the fitting resistance models.
type Resistance interface {
	// Zeta returns the resistance coefficient referred to the bore velocity.
	Zeta(c FlowCondition) (float64, error)
	// PressureDrop returns the pressure drop at c.
	PressureDrop(c FlowCondition) (units.Pressure, error)
	// Model names the model: "Kv", "3K", "ELR" or "zeta".
	Model() string
}

// FlowCoefficientModel is a fitting rated by Kv.
type FlowCoefficientModel struct{ Kv float64 }

// SingleK is a fitting rated by a constant resistance coefficient.
type SingleK struct{ K float64 }

// ThreeK is Darby's 3-K model: ζ = K1/Re + K∞·(1 + Kd/D^0.3), D in metres.
type ThreeK struct{ K1, KInf, KD float64 }

// EquivalentLength is a fitting rated by an equivalent length ratio L/D.
type EquivalentLength struct {
	ELR       float64
	Reference *schedule.Schedule
}

func (m FlowCoefficientModel) Model() string { return "Kv" }
func (m SingleK) Model() string              { return "zeta" }
func (m ThreeK) Model() string               { return "3K" }
func (m EquivalentLength) Model() string     { return "ELR" }

func (m FlowCoefficientModel) Zeta(c FlowCondition) (float64, error) {
	return ResistanceFromKv(m.Kv, c.Diameter)
}

func (m FlowCoefficientModel) PressureDrop(c FlowCondition) (units.Pressure, error) {
	av := KvToAv(m.Kv)
	if av == 0 {
		return 0, ErrZeroDivision
	}
	r := float64(c.FlowRate) / av
	return units.Pressure(float64(c.Fluid.Density()) * r * r), nil
}

func (m SingleK) Zeta(FlowCondition) (float64, error) { return m.K, nil }

func (m SingleK) PressureDrop(c FlowCondition) (units.Pressure, error) {
	return zetaDrop(m, c)
}

func (m ThreeK) Zeta(c FlowCondition) (float64, error) {
	v, err := c.velocity()
	if err != nil {
		return 0, err
	}
	re := Reynolds(v, c.Diameter, c.Fluid.KinematicViscosity())
	if re == 0 {
		return 0, fmt.Errorf("%w: 3-K model at zero Reynolds number", ErrZeroDivision)
	}
	return m.K1/re + m.KInf*(1+m.KD/math.Pow(float64(c.Diameter), 0.3)), nil
}

func (m ThreeK) PressureDrop(c FlowCondition) (units.Pressure, error) {
	if c.FlowRate == 0 {
		return 0, nil
	}
	return zetaDrop(m, c)
}

func (m EquivalentLength) Zeta(c FlowCondition) (float64, error) {
	return ResistanceFromELR(m.ELR, c.Diameter, m.Reference)
}

func (m EquivalentLength) PressureDrop(c FlowCondition) (units.Pressure, error) {
	return zetaDrop(m, c)
}

// zetaDrop returns ζ·ρv²/2.
func zetaDrop(r Resistance, c FlowCondition) (units.Pressure, error) {
	v, err := c.velocity()
	if err != nil {
		return 0, err
	}
	z, err := r.Zeta(c)
	if err != nil {
		return 0, err
	}
	return units.Pressure(z * float64(VelocityPressure(c.Fluid.Density(), v))), nil
}

// Coefficients holds the optional coefficient columns of a fittings row.
type Coefficients struct {
	Zeta    *float64
	ZetaInf *float64
	ZetaD   *float64
	ELR     *float64
	Kv      *float64
}

// Resistance selects the resistance model with precedence Kv > 3K > ELR > ζ.
// The 3-K model needs zeta, zeta_inf and zeta_d together.
func (c Coefficients) Resistance() (Resistance, error) {
	switch {
	case c.Kv != nil:
		if *c.Kv <= 0 {
			return nil, fmt.Errorf("%w: Kv %g", ErrInvalidValue, *c.Kv)
		}
		return FlowCoefficientModel{Kv: *c.Kv}, nil
	case c.ZetaInf != nil:
		if c.Zeta == nil || c.ZetaD == nil {
			return nil, fmt.Errorf("%w: 3-K model needs zeta, zeta_inf and zeta_d", ErrNoResistanceData)
		}
		return ThreeK{K1: *c.Zeta, KInf: *c.ZetaInf, KD: *c.ZetaD}, nil
	case c.ELR != nil:
		return EquivalentLength{ELR: *c.ELR, Reference: schedule.Schedule40}, nil
	case c.Zeta != nil:
		return SingleK{K: *c.Zeta}, nil
	default:
		return nil, ErrNoResistanceData
	}
}

// Fitting is a fitting or valve mounted in a pipe.
type Fitting struct {
	ID         string
	Type       string
	Resistance Resistance
	Condition  FlowCondition
}

// NewFitting selects the resistance model from coef and binds it to the flow condition.
func NewFitting(id, typ string, coef Coefficients, cond FlowCondition) (*Fitting, error) {
	r, err := coef.Resistance()
	if err != nil {
		return nil, fmt.Errorf("fitting %q: %w", id, err)
	}
	if cond.Fluid == nil {
		return nil, fmt.Errorf("fitting %q: no fluid: %w", id, ErrInvalidValue)
	}
	return &Fitting{ID: id, Type: typ, Resistance: r, Condition: cond}, nil
}

// PressureDrop returns the drop across the fitting.
func (f *Fitting) PressureDrop() (units.Pressure, error) {
	return f.Resistance.PressureDrop(f.Condition)
}

// Zeta returns the resistance coefficient.
func (f *Fitting) Zeta() (float64, error) {
	return f.Resistance.Zeta(f.Condition)
}
