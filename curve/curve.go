// Package curve fits pump curves to data-sheet points and tabulates pump
// and system curves.
//
// All values are SI: flow rate in m³/s, pressure in Pa.
package curve

import (
	"fmt"
	"math"

	"github.com/katalvlaran/pipenet"
	"github.com/katalvlaran/pipenet/hydraulics"
	"github.com/katalvlaran/pipenet/units"
)

var (
	// ErrTooFewPoints is returned by FitPumpCurve for fewer than three points.
	ErrTooFewPoints = fmt.Errorf("curve: at least three points are needed: %w", pipenet.ErrInvalidConfiguration)

	// ErrSingular is returned when the normal equations have no unique solution.
	ErrSingular = fmt.Errorf("curve: singular normal equations: %w", pipenet.ErrSingularSystem)

	// ErrInvalidRange is returned by Points for n < 2 or a reversed range.
	ErrInvalidRange = fmt.Errorf("curve: need n >= 2 and v0 <= v1: %w", pipenet.ErrInvalidConfiguration)

	// ErrNoOperatingPoint is returned when pump and system curves do not meet at a positive flow.
	ErrNoOperatingPoint = fmt.Errorf("curve: pump and system curves do not intersect: %w", pipenet.ErrInvalidConfiguration)
)

// Point is one (flow rate, pressure) pair.
type Point struct {
	FlowRate units.FlowRate
	Pressure units.Pressure
}

// FitPumpCurve returns the least-squares quadratic Δp = a0 + a1·V + a2·V²
// through points. Flow rates are scaled by their largest magnitude before
// the normal equations are formed.
func FitPumpCurve(points []Point) (hydraulics.PumpCurve, error) {
	if len(points) < 3 {
		return hydraulics.PumpCurve{}, ErrTooFewPoints
	}
	s := 0.0
	for _, p := range points {
		s = math.Max(s, math.Abs(float64(p.FlowRate)))
	}
	if s == 0 {
		return hydraulics.PumpCurve{}, ErrSingular
	}

	// Normal equations: Σ x^(i+j) · c_j = Σ x^i · y
	a := newDense(3)
	b := make([]float64, 3)
	for _, p := range points {
		x, y := float64(p.FlowRate)/s, float64(p.Pressure)
		pow := [5]float64{1, x, x * x, x * x * x, x * x * x * x}
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				a.add(i, j, pow[i+j])
			}
			b[i] += pow[i] * y
		}
	}
	c, err := solve(a, b)
	if err != nil {
		return hydraulics.PumpCurve{}, err
	}
	return hydraulics.PumpCurve{A0: c[0], A1: c[1] / s, A2: c[2] / (s * s)}, nil
}

// SystemCurve is Δp = R·V² + StaticHead + ElevationHead.
type SystemCurve struct {
	Resistance    float64
	StaticHead    units.Pressure
	ElevationHead units.Pressure
}

// Pressure returns the system pressure at flow rate q.
func (c SystemCurve) Pressure(q units.FlowRate) units.Pressure {
	v := float64(q)
	return units.Pressure(c.Resistance*v*v) + c.StaticHead + c.ElevationHead
}

// Points tabulates the system curve at n evenly spaced flow rates from v0 to v1.
func (c SystemCurve) Points(v0, v1 units.FlowRate, n int) ([]Point, error) {
	return tabulate(c.Pressure, v0, v1, n)
}

// PumpPoints tabulates a pump curve at n evenly spaced flow rates from v0 to v1.
func PumpPoints(p hydraulics.PumpCurve, v0, v1 units.FlowRate, n int) ([]Point, error) {
	return tabulate(p.Head, v0, v1, n)
}

func tabulate(f func(units.FlowRate) units.Pressure, v0, v1 units.FlowRate, n int) ([]Point, error) {
	if n < 2 || v1 < v0 {
		return nil, ErrInvalidRange
	}
	out := make([]Point, n)
	step := (v1 - v0) / units.FlowRate(n-1)
	for i := range out {
		q := v0 + units.FlowRate(i)*step
		if i == n-1 {
			q = v1
		}
		out[i] = Point{FlowRate: q, Pressure: f(q)}
	}
	return out, nil
}

// OperatingPoint returns the positive flow rate at which the pump head
// equals the system pressure, and that pressure.
func OperatingPoint(p hydraulics.PumpCurve, s SystemCurve) (units.FlowRate, units.Pressure, error) {
	// (a2 − R)·V² + a1·V + (a0 − static − elevation) = 0
	qa := p.A2 - s.Resistance
	qb := p.A1
	qc := p.A0 - float64(s.StaticHead+s.ElevationHead)

	var roots []float64
	if qa == 0 {
		if qb == 0 {
			return 0, 0, ErrNoOperatingPoint
		}
		roots = []float64{-qc / qb}
	} else {
		disc := qb*qb - 4*qa*qc
		if disc < 0 {
			return 0, 0, ErrNoOperatingPoint
		}
		r := math.Sqrt(disc)
		roots = []float64{(-qb + r) / (2 * qa), (-qb - r) / (2 * qa)}
	}
	best := -1.0
	for _, v := range roots {
		if v > 0 && (best < 0 || v < best) {
			best = v
		}
	}
	if best < 0 {
		return 0, 0, ErrNoOperatingPoint
	}
	q := units.FlowRate(best)
	return q, s.Pressure(q), nil
}
