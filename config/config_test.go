package config_test

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pipenet"
	"github.com/katalvlaran/pipenet/config"
	"github.com/katalvlaran/pipenet/network"
	"github.com/katalvlaran/pipenet/schedule"
	"github.com/katalvlaran/pipenet/units"
)

func TestLoadSessionFile(t *testing.T) {
	cfg, err := config.Load(filepath.Join("testdata", "session.yaml"))
	require.NoError(t, err)

	assert.Equal(t, network.Design, cfg.NetworkMode())
	assert.Equal(t, "n9", cfg.Supply)
	assert.Equal(t, "n0", cfg.Exit)
	assert.Equal(t, slog.LevelDebug, cfg.Level())
	assert.Equal(t, filepath.Join("testdata", "design.csv"), cfg.Tables.Network)
	assert.Equal(t, filepath.Join("testdata", "fittings.csv"), cfg.Tables.Fittings)

	require.Len(t, cfg.Design.BalancingValves, 1)
	assert.Equal(t, "b1", cfg.Design.BalancingValves[0].Segment)
	require.Len(t, cfg.Design.ControlValves, 1)
	assert.InDelta(t, 0.5, cfg.Design.ControlValves[0].Authority, 0)
	assert.InDelta(t, 4.0, cfg.Design.ControlValves[0].Kvs, 0)

	us, err := cfg.UnitSystem()
	require.NoError(t, err)
	assert.Equal(t, "m^3/h", us.Unit(units.KindFlowRate))
	assert.Equal(t, "mm", us.Unit(units.KindDiameter))

	fl, err := cfg.ResolveFluid()
	require.NoError(t, err)
	assert.Equal(t, "water", fl.Name())

	sch, err := cfg.ResolveSchedule()
	require.NoError(t, err)
	assert.Same(t, schedule.Schedule40, sch)

	hopts, err := cfg.HydraulicsOptions()
	require.NoError(t, err)
	assert.Len(t, hopts, 1)
}

func TestParseDefaults(t *testing.T) {
	cfg, err := config.Parse([]byte("mode: analysis\nsupply: a\nexit: b\ntables:\n  network: net.csv\n"))
	require.NoError(t, err)

	assert.Equal(t, network.Analysis, cfg.NetworkMode())
	assert.Equal(t, "water", cfg.Fluid)
	assert.Equal(t, schedule.NameSchedule40, cfg.Schedule)
	assert.Equal(t, 30, cfg.Solver.MaxIterations)
	assert.Equal(t, slog.LevelInfo, cfg.Level())
	assert.Equal(t, "net.csv", cfg.Tables.Network)
}

func TestParseRejects(t *testing.T) {
	base := "supply: a\nexit: b\ntables:\n  network: n.csv\n"
	cases := map[string]string{
		"mode":         "mode: steady\n" + base,
		"missing mode": base,
		"fluid":        "mode: design\nfluid: oil\n" + base,
		"units key":    "mode: design\nunits:\n  mass: kg\n" + base,
		"authority":    "mode: design\ndesign:\n  control_valves:\n    - segment: s\n      authority: 1.5\n" + base,
		"dp100":        "mode: design\ndesign:\n  balancing_valves:\n    - segment: s\n" + base,
		"unknown key":  "mode: design\ncolour: red\n" + base,
		"yaml":         "mode: [design\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := config.Parse([]byte(doc))
			require.Error(t, err)
			assert.ErrorIs(t, err, config.ErrInvalidConfig)
			assert.ErrorIs(t, err, pipenet.ErrInvalidConfiguration)
		})
	}
}

func TestValidationMessageNamesField(t *testing.T) {
	_, err := config.Parse([]byte("mode: design\nsupply: a\nexit: b\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Tables.Network")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadKeepsAbsoluteTablePaths(t *testing.T) {
	dir := t.TempDir()
	abs := filepath.Join(dir, "elsewhere", "net.csv")
	doc := "mode: analysis\nsupply: a\nexit: b\ntables:\n  network: " + abs + "\n"
	path := filepath.Join(dir, "s.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, abs, cfg.Tables.Network)
}
