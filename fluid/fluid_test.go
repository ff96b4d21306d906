package fluid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pipenet"
	"github.com/katalvlaran/pipenet/fluid"
	"github.com/katalvlaran/pipenet/units"
)

func TestWaterProperties(t *testing.T) {
	w, err := fluid.Water(10)
	require.NoError(t, err)
	assert.Equal(t, "water", w.Name())
	assert.InDelta(t, 999.70, float64(w.Density()), 0.05)
	assert.InDelta(t, 1.30e-3, float64(w.DynamicViscosity()), 0.03e-3)
	assert.InDelta(t, 1.30e-6, float64(w.KinematicViscosity()), 0.03e-6)

	hot, err := fluid.Water(80)
	require.NoError(t, err)
	assert.Less(t, float64(hot.Density()), float64(w.Density()))
	assert.Less(t, float64(hot.DynamicViscosity()), float64(w.DynamicViscosity()))
}

func TestAirProperties(t *testing.T) {
	a, err := fluid.Air(20, 0)
	require.NoError(t, err)
	assert.InDelta(t, 1.204, float64(a.Density()), 0.005)
	assert.InDelta(t, 1.81e-5, float64(a.DynamicViscosity()), 0.02e-5)

	pressurised, err := fluid.Air(20, units.Bar(1))
	require.NoError(t, err)
	assert.Greater(t, float64(pressurised.Density()), 2*float64(a.Density())*0.99)
}

func TestLookup(t *testing.T) {
	f, err := fluid.Lookup(" Water ", 15)
	require.NoError(t, err)
	assert.InDelta(t, 999.1, float64(f.Density()), 0.05)

	_, err = fluid.Lookup("glycol", 10)
	assert.ErrorIs(t, err, fluid.ErrUnknownFluid)
	assert.ErrorIs(t, err, pipenet.ErrInvalidConfiguration)

	_, err = fluid.Water(-5)
	assert.ErrorIs(t, err, fluid.ErrTemperatureRange)
}

func TestFixed(t *testing.T) {
	f := fluid.Fixed("oil", 850, 0.085)
	assert.Equal(t, "oil", f.Name())
	assert.InDelta(t, 1e-4, float64(f.KinematicViscosity()), 1e-12)
}
