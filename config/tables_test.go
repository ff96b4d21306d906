package config_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pipenet"
	"github.com/katalvlaran/pipenet/config"
	"github.com/katalvlaran/pipenet/units"
)

const analysisTable = `loop,segment,start,end,dn,length,zeta,a0,a1,a2,fixed_dp,flow
L1,P,n0,n1,40,1,,0.4,,-0.1,,2
L1,s1,n1,n2,25,10,1.5,,,,,1
L1,h,n2,n0,,,,,,,0.05,2
`

func TestReadAnalysisTable(t *testing.T) {
	specs, err := config.ReadAnalysisTable(strings.NewReader(analysisTable), units.DefaultSystem())
	require.NoError(t, err)
	require.Len(t, specs, 3)

	pump := specs[0]
	assert.Equal(t, "L1", pump.Loop)
	assert.Equal(t, "P", pump.ID)
	assert.InDelta(t, 0.040, float64(pump.NominalDiameter), 1e-12)
	assert.InDelta(t, 0.002, float64(pump.FlowRate), 1e-12)
	require.NotNil(t, pump.Pump)
	assert.InDelta(t, 0.4e5, pump.Pump.A0, 1e-6)
	assert.InDelta(t, 0, pump.Pump.A1, 0)
	assert.InEpsilon(t, -1e10, pump.Pump.A2, 1e-9)
	assert.Nil(t, pump.FixedDrop)

	pipe := specs[1]
	assert.Nil(t, pipe.Pump)
	assert.InDelta(t, 1.5, pipe.SumZeta, 0)
	assert.InDelta(t, 10, float64(pipe.Length), 0)

	pseudo := specs[2]
	require.NotNil(t, pseudo.FixedDrop)
	assert.InDelta(t, 5000, float64(*pseudo.FixedDrop), 1e-9)
}

func TestReadAnalysisTableNegativeFlow(t *testing.T) {
	table := "loop,segment,start,end,dn,length,zeta,a0,a1,a2,fixed_dp,flow\n" +
		"L2,s,a,b,25,3,,,,,,-0.5\n"
	specs, err := config.ReadAnalysisTable(strings.NewReader(table), units.DefaultSystem())
	require.NoError(t, err)
	require.Len(t, specs, 1)
	assert.InDelta(t, -0.0005, float64(specs[0].FlowRate), 1e-12)
}

const designTable = `segment,start,z_start,end,z_end,length,dn,flow,friction_loss
s0,n9,0,n1,0,5,40,1.2,
b1,n1,0,n2,3,4,,0.4,0.002
r0,n2,3,n0,0,,,,
`

func TestReadDesignTable(t *testing.T) {
	us, err := units.NewSystem(map[string]string{"pressure": "bar"})
	require.NoError(t, err)
	specs, err := config.ReadDesignTable(strings.NewReader(designTable), us)
	require.NoError(t, err)
	require.Len(t, specs, 3)

	assert.Equal(t, "s0", specs[0].ID)
	require.NotNil(t, specs[0].NominalDiameter)
	assert.InDelta(t, 0.040, float64(*specs[0].NominalDiameter), 1e-12)
	require.NotNil(t, specs[0].FlowRate)
	assert.InDelta(t, 0.0012, float64(*specs[0].FlowRate), 1e-12)
	assert.Nil(t, specs[0].FrictionLoss)

	assert.Nil(t, specs[1].NominalDiameter)
	require.NotNil(t, specs[1].FrictionLoss)
	assert.InDelta(t, 200, float64(*specs[1].FrictionLoss), 1e-9)
	assert.InDelta(t, 3, float64(specs[1].EndElevation), 0)

	assert.Nil(t, specs[2].FlowRate, "blank flow marks a pseudo segment")
}

func TestReadFittingsTable(t *testing.T) {
	table := "segment,fitting,type,zeta,zeta_inf,zeta_d,elr,kv\n" +
		"s0,e1,elbow,0.75,,,,\n" +
		"s0,t1,tee,800,0.1,4,,\n" +
		"b1,v1,valve,,,,,12\n"
	rows, err := config.ReadFittingsTable(strings.NewReader(table))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "elbow", rows[0].Type)
	require.NotNil(t, rows[0].Coefficients.Zeta)
	assert.InDelta(t, 0.75, *rows[0].Coefficients.Zeta, 0)
	assert.Nil(t, rows[0].Coefficients.Kv)

	require.NotNil(t, rows[1].Coefficients.ZetaD)
	assert.InDelta(t, 4, *rows[1].Coefficients.ZetaD, 0)

	require.NotNil(t, rows[2].Coefficients.Kv)
	assert.InDelta(t, 12, *rows[2].Coefficients.Kv, 0)
}

func TestTableRowErrors(t *testing.T) {
	cases := []struct {
		name   string
		read   func() error
		line   int
		column string
	}{
		{
			name: "bad number",
			read: func() error {
				_, err := config.ReadFittingsTable(strings.NewReader("h,h,h,h,h,h,h,h\ns,f,t,abc,,,,\n"))
				return err
			},
			line: 2, column: "zeta",
		},
		{
			name: "missing segment id",
			read: func() error {
				_, err := config.ReadDesignTable(strings.NewReader("h,h,h,h,h,h,h,h,h\n,a,0,b,0,1,25,1,\n"), units.DefaultSystem())
				return err
			},
			line: 2, column: "segment",
		},
		{
			name: "short row",
			read: func() error {
				_, err := config.ReadAnalysisTable(strings.NewReader("h,h,h,h,h,h,h,h,h,h,h,h\nL,s,a,b\n"), units.DefaultSystem())
				return err
			},
			line: 2,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.read()
			require.Error(t, err)
			var re *config.RowError
			require.True(t, errors.As(err, &re))
			assert.Equal(t, tc.line, re.Line)
			assert.Equal(t, tc.column, re.Column)
			assert.ErrorIs(t, err, pipenet.ErrInvalidConfiguration)
		})
	}
}

func TestEmptyTables(t *testing.T) {
	specs, err := config.ReadAnalysisTable(strings.NewReader(""), units.DefaultSystem())
	require.NoError(t, err)
	assert.Empty(t, specs)
}

func TestReadCurveTable(t *testing.T) {
	table := "flow,dp\n0,0.4\n1,0.3\n2,0\n"
	pts, err := config.ReadCurveTable(strings.NewReader(table), units.DefaultSystem())
	require.NoError(t, err)
	require.Len(t, pts, 3)
	assert.InDelta(t, 0.001, float64(pts[1].FlowRate), 1e-15)
	assert.InDelta(t, 30000, float64(pts[1].Pressure), 1e-9)
}
