package units_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pipenet"
	"github.com/katalvlaran/pipenet/units"
)

func TestLengthConversion(t *testing.T) {
	l, err := units.NewLength(15.8, "mm")
	require.NoError(t, err)
	assert.InDelta(t, 0.0158, float64(l), 1e-12)

	cm, err := l.In("cm")
	require.NoError(t, err)
	assert.InDelta(t, 1.58, cm, 1e-12)
	assert.InDelta(t, 15.8, l.Millimetres(), 1e-12)
}

func TestFlowRateConversion(t *testing.T) {
	q, err := units.NewFlowRate(0.29, "L/s")
	require.NoError(t, err)
	assert.InDelta(t, 1.044, q.CubicMetresPerHour(), 1e-9)

	lmin, err := q.In("L/min")
	require.NoError(t, err)
	assert.InDelta(t, 17.4, lmin, 1e-9)
}

func TestPressureConversion(t *testing.T) {
	p, err := units.NewPressure(0.05, "MPa")
	require.NoError(t, err)
	assert.InDelta(t, 0.5, p.Bar(), 1e-12)

	head, err := units.Bar(1).In("m")
	require.NoError(t, err)
	assert.InDelta(t, 1e5/(units.WaterDensity10C*units.Gravity), head, 1e-9)
}

func TestVelocityConversion(t *testing.T) {
	v, err := units.NewVelocity(3.6, "km/h")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, float64(v), 1e-12)
}

func TestUnknownUnit(t *testing.T) {
	_, err := units.NewPressure(1, "psi")
	require.Error(t, err)
	assert.True(t, errors.Is(err, units.ErrUnknownUnit))
	assert.True(t, errors.Is(err, pipenet.ErrInvalidConfiguration))

	_, err = units.Metres(1).In("ft")
	assert.ErrorIs(t, err, pipenet.ErrInvalidConfiguration)
}

func TestSystemDefaultsAndOverrides(t *testing.T) {
	sys := units.DefaultSystem()
	assert.Equal(t, "mm", sys.Unit(units.KindDiameter))
	assert.Equal(t, "L/s", sys.Unit(units.KindFlowRate))
	assert.Equal(t, "bar", sys.Unit(units.KindPressure))

	sys, err := units.NewSystem(map[string]string{"pressure": "kPa", "flow_rate": "m^3/h"})
	require.NoError(t, err)
	p, err := sys.Pressure(20)
	require.NoError(t, err)
	assert.InDelta(t, 20000, float64(p), 1e-9)
	assert.Equal(t, "m", sys.Unit(units.KindLength))

	_, err = units.NewSystem(map[string]string{"temperature": "K"})
	assert.ErrorIs(t, err, units.ErrUnknownKind)

	_, err = units.NewSystem(map[string]string{"velocity": "mph"})
	assert.ErrorIs(t, err, units.ErrUnknownUnit)
}
