package curve_test

import (
	"math"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pipenet"
	"github.com/katalvlaran/pipenet/curve"
	"github.com/katalvlaran/pipenet/hydraulics"
	"github.com/katalvlaran/pipenet/units"
)

func TestFitExactQuadratic(t *testing.T) {
	want := hydraulics.PumpCurve{A0: 60000, A1: 2e6, A2: -4e9}
	pts, err := curve.PumpPoints(want, 0, units.LitresPerSecond(5), 6)
	require.NoError(t, err)

	got, err := curve.FitPumpCurve(pts)
	require.NoError(t, err)
	assert.InDelta(t, want.A0, got.A0, 1e-6*math.Abs(want.A0))
	assert.InDelta(t, want.A1, got.A1, 1e-6*math.Abs(want.A1))
	assert.InDelta(t, want.A2, got.A2, 1e-6*math.Abs(want.A2))
}

func TestFitErrors(t *testing.T) {
	_, err := curve.FitPumpCurve([]curve.Point{{}, {}})
	assert.ErrorIs(t, err, curve.ErrTooFewPoints)
	assert.ErrorIs(t, err, pipenet.ErrInvalidConfiguration)

	same := curve.Point{FlowRate: units.LitresPerSecond(1), Pressure: 1000}
	_, err = curve.FitPumpCurve([]curve.Point{same, same, same})
	assert.ErrorIs(t, err, curve.ErrSingular)
	assert.ErrorIs(t, err, pipenet.ErrSingularSystem)
}

func TestSystemCurvePoints(t *testing.T) {
	c := curve.SystemCurve{Resistance: 1e9, StaticHead: 1000, ElevationHead: 500}
	pts, err := c.Points(0, units.LitresPerSecond(2), 3)
	require.NoError(t, err)
	require.Len(t, pts, 3)
	assert.InDelta(t, 1500, float64(pts[0].Pressure), 1e-9)
	assert.InDelta(t, 0.001, float64(pts[1].FlowRate), 1e-15)
	assert.InDelta(t, 1500+1e9*4e-6, float64(pts[2].Pressure), 1e-6)

	_, err = c.Points(0, 1, 1)
	assert.ErrorIs(t, err, curve.ErrInvalidRange)
}

func TestOperatingPoint(t *testing.T) {
	pump := hydraulics.PumpCurve{A0: 40000, A2: -1e10}
	sys := curve.SystemCurve{Resistance: 1e10}
	q, p, err := curve.OperatingPoint(pump, sys)
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt(2e-6), float64(q), 1e-12)
	assert.InDelta(t, 20000, float64(p), 1e-6)
	assert.InDelta(t, float64(pump.Head(q)), float64(p), 1e-6)

	_, _, err = curve.OperatingPoint(pump, curve.SystemCurve{StaticHead: 50000})
	assert.ErrorIs(t, err, curve.ErrNoOperatingPoint)
}

// TestFitRecoversCurveProperty checks that any downward quadratic sampled
// at its own points is recovered.
func TestFitRecoversCurveProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("fit reproduces sampled heads", prop.ForAll(
		func(a0, a1, a2 float64) bool {
			c := hydraulics.PumpCurve{A0: a0, A1: a1, A2: -a2}
			pts, err := curve.PumpPoints(c, 0, units.LitresPerSecond(10), 8)
			if err != nil {
				return false
			}
			fit, err := curve.FitPumpCurve(pts)
			if err != nil {
				return false
			}
			for _, p := range pts {
				if math.Abs(float64(fit.Head(p.FlowRate)-p.Pressure)) > 1e-6*math.Max(1, math.Abs(a0)) {
					return false
				}
			}
			return true
		},
		gen.Float64Range(1e3, 1e6),
		gen.Float64Range(-1e6, 1e6),
		gen.Float64Range(1e6, 1e10),
	))
	properties.TestingRun(t)
}
