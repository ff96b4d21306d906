package hydraulics

import "github.com/katalvlaran/pipenet/units"

// PumpCurve is the quadratic head curve Δp = A0 + A1·V + A2·V² in SI units
// (Pa, m³/s).
type PumpCurve struct {
	A0, A1, A2 float64
}

// Head returns the pressure added at flow rate q.
func (c PumpCurve) Head(q units.FlowRate) units.Pressure {
	v := float64(q)
	return units.Pressure(c.A0 + c.A1*v + c.A2*v*v)
}

// Slope returns dΔp/dV = A1 + 2·A2·V.
func (c PumpCurve) Slope(q units.FlowRate) float64 {
	return c.A1 + 2*c.A2*float64(q)
}

// ConvertPumpCurve rescales coefficients given for pressure unit pu and flow unit qu
// into SI.
func ConvertPumpCurve(a0, a1, a2 float64, pu, qu string) (PumpCurve, error) {
	p, err := units.NewPressure(1, pu)
	if err != nil {
		return PumpCurve{}, err
	}
	q, err := units.NewFlowRate(1, qu)
	if err != nil {
		return PumpCurve{}, err
	}
	ps, qs := float64(p), float64(q)
	return PumpCurve{A0: a0 * ps, A1: a1 * ps / qs, A2: a2 * ps / (qs * qs)}, nil
}
