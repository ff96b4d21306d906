package design_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/pipenet"
	"github.com/katalvlaran/pipenet/design"
	"github.com/katalvlaran/pipenet/fluid"
	"github.com/katalvlaran/pipenet/metrics"
	"github.com/katalvlaran/pipenet/network"
	"github.com/katalvlaran/pipenet/schedule"
	"github.com/katalvlaran/pipenet/units"
)

func ptr[T any](v T) *T { return &v }

func pipe(id, start, end string, flowLS, dnMM, lengthM float64) network.DesignSpec {
	return network.DesignSpec{
		ID: id, Start: start, End: end,
		Length:          units.Metres(lengthM),
		FlowRate:        ptr(units.LitresPerSecond(flowLS)),
		NominalDiameter: ptr(units.Millimetres(dnMM)),
	}
}

// threeBranch is a supply line feeding three parallel branches that
// rejoin into a return line.
//
//	n9 -s0-> n1 =b1/b2/b3=> n2 -r0-> n0
func threeBranch(t *testing.T) *network.Network {
	t.Helper()
	w, err := fluid.Water(10)
	require.NoError(t, err)
	n, err := network.New(network.Design, "n9", "n0", w, schedule.Schedule40)
	require.NoError(t, err)
	for _, r := range []network.DesignSpec{
		pipe("s0", "n9", "n1", 1.2, 40, 10),
		pipe("b1", "n1", "n2", 0.5, 25, 20),
		pipe("b2", "n1", "n2", 0.4, 20, 10),
		pipe("b3", "n1", "n2", 0.3, 20, 5),
		pipe("r0", "n2", "n0", 1.2, 40, 10),
	} {
		require.NoError(t, n.AddDesignSegment(r))
	}
	return n
}

// DesignerSuite runs the balancing workflow on the three-branch network.
type DesignerSuite struct {
	suite.Suite
	net *network.Network
	d   *design.Designer
	rec *metrics.Recorder
	log bytes.Buffer
}

func (s *DesignerSuite) SetupTest() {
	s.net = threeBranch(s.T())
	s.rec = metrics.NewRecorder()
	s.log.Reset()
	d, err := design.New(s.net,
		design.WithRecorder(s.rec),
		design.WithLogger(slog.New(slog.NewTextHandler(&s.log, nil))))
	s.Require().NoError(err)
	s.d = d
}

func (s *DesignerSuite) addValves() {
	kvs, err := s.d.AddBalancingValves([]design.Setting{
		{Segment: "b1", Value: 3000},
		{Segment: "b2", Value: 3000},
		{Segment: "b3", Value: 3000},
	})
	s.Require().NoError(err)
	s.Require().Len(kvs, 3)
	for _, k := range kvs {
		s.Greater(k.Value, 0.0)
	}
}

func (s *DesignerSuite) TestPathsAndCriticalPath() {
	ps, err := s.d.Paths()
	s.Require().NoError(err)
	s.Len(ps, 3)

	cp, err := s.d.CriticalPath()
	s.Require().NoError(err)
	for _, p := range ps {
		s.LessOrEqual(float64(p.StaticHead()), float64(cp.StaticHead()))
	}
	feed, err := s.d.FeedPressure()
	s.Require().NoError(err)
	s.Equal(cp.StaticHead(), feed)
	s.InDelta(0.0012, float64(s.d.FlowRate()), 1e-12)

	r, err := s.d.HydraulicResistance()
	s.Require().NoError(err)
	s.InDelta(float64(feed)/(0.0012*0.0012), r, 1e-6)
	s.NoError(s.net.CheckFlowBalance(1e-12), "sized network conserves flow at n1 and n2")
}

func (s *DesignerSuite) TestBalanceEqualisesStaticHeads() {
	s.addValves()
	kvr, err := s.d.Balance()
	s.Require().NoError(err)
	s.Len(kvr, 3)

	feed, err := s.d.FeedPressure()
	s.Require().NoError(err)
	ps, _ := s.d.Paths()
	for _, p := range ps {
		s.InDelta(float64(feed), float64(p.StaticHead()), 1e-6, p.String())
	}
	deficits, err := s.d.Deficits()
	s.Require().NoError(err)
	for _, dp := range deficits {
		s.InDelta(0, float64(dp), 1e-6)
	}

	// The critical branch keeps its valve fully open.
	open := 0
	for _, seg := range []string{"b1", "b2", "b3"} {
		sg, _ := s.net.Segment(seg)
		bv := sg.Element().(*network.Pipe).BalancingValve()
		s.LessOrEqual(bv.Kvr(), bv.Kvs()+1e-12)
		if bv.ExcessPressure() == 0 {
			open++
		}
	}
	s.Equal(1, open)
	s.NoError(s.net.CheckFlowBalance(1e-12), "trimming valves leaves the flows untouched")

	s.Equal(3.0, testutil.ToFloat64(s.rec.BalancingValveTrim))
	s.Contains(s.log.String(), "design balanced")
}

func (s *DesignerSuite) TestBalanceIsIdempotent() {
	s.addValves()
	first, err := s.d.Balance()
	s.Require().NoError(err)
	second, err := s.d.Balance()
	s.Require().NoError(err)
	s.Require().Len(second, len(first))
	for i := range first {
		s.Equal(first[i].Segment, second[i].Segment)
		s.InDelta(first[i].Value, second[i].Value, 1e-9)
	}
}

func (s *DesignerSuite) TestCommercialKvs() {
	s.addValves()
	s.Require().NoError(s.d.InitBalancingValves([]design.Setting{{Segment: "b1", Value: 4}}))
	b1, _ := s.net.Segment("b1")
	s.Equal(4.0, b1.Element().(*network.Pipe).BalancingValve().Kvs())
	_, err := s.d.Balance()
	s.Require().NoError(err)

	err = s.d.InitBalancingValves([]design.Setting{{Segment: "s0", Value: 4}})
	s.ErrorIs(err, network.ErrNoValve)
}

func (s *DesignerSuite) TestControlValves() {
	cp, err := s.d.CriticalPath()
	s.Require().NoError(err)
	dpCrit := cp.DynamicHead()

	kvs, err := s.d.AddControlValves([]design.Setting{{Segment: "r0", Value: 0.5}})
	s.Require().NoError(err)
	s.Require().Len(kvs, 1)

	r0, _ := s.net.Segment("r0")
	cv := r0.Element().(*network.Pipe).ControlValve()
	s.InDelta(float64(dpCrit), float64(cv.PressureDrop()), 1e-6)

	auth, err := s.d.ControlValveAuthorities()
	s.Require().NoError(err)
	s.Require().Len(auth, 1)
	s.InDelta(float64(cv.PressureDrop())/float64(r0.Loss()), auth[0].Value, 1e-12)

	s.Require().NoError(s.d.SetControlValves([]design.Setting{{Segment: "r0", Value: kvs[0].Value * 2}}))
	s.InDelta(float64(dpCrit)/4, float64(cv.PressureDrop()), 1e-6)

	_, err = s.d.AddControlValves([]design.Setting{{Segment: "b1", Value: 1}})
	s.ErrorIs(err, pipenet.ErrInvalidConfiguration)
}

func TestDesignerSuite(t *testing.T) {
	suite.Run(t, new(DesignerSuite))
}

func TestSerialChainHasOnePath(t *testing.T) {
	w, err := fluid.Water(10)
	require.NoError(t, err)
	n, err := network.New(network.Design, "a", "d", w, schedule.Schedule40)
	require.NoError(t, err)
	require.NoError(t, n.AddDesignSegment(pipe("s1", "a", "b", 1, 40, 5)))
	require.NoError(t, n.AddDesignSegment(pipe("s2", "b", "c", 1, 32, 5)))
	require.NoError(t, n.AddDesignSegment(pipe("s3", "c", "d", 1, 40, 5)))

	d, err := design.New(n)
	require.NoError(t, err)
	ps, err := d.Paths()
	require.NoError(t, err)
	require.Len(t, ps, 1)
	assert.Equal(t, "s1|s2|s3", ps[0].String())

	kvr, err := d.Balance()
	require.NoError(t, err)
	assert.Empty(t, kvr)
	assert.NoError(t, n.CheckFlowBalance(1e-12))
}

func TestPathsFollowAddedSegments(t *testing.T) {
	w, err := fluid.Water(10)
	require.NoError(t, err)
	n, err := network.New(network.Design, "a", "c", w, schedule.Schedule40)
	require.NoError(t, err)
	require.NoError(t, n.AddDesignSegment(pipe("s1", "a", "b", 1, 40, 5)))
	require.NoError(t, n.AddDesignSegment(pipe("s2", "b", "c", 0.6, 32, 5)))

	d, err := design.New(n)
	require.NoError(t, err)
	ps, err := d.Paths()
	require.NoError(t, err)
	require.Len(t, ps, 1)

	require.NoError(t, n.AddDesignSegment(pipe("s3", "b", "c", 0.4, 25, 5)))
	ps, err = d.Paths()
	require.NoError(t, err)
	require.Len(t, ps, 2)
	assert.Equal(t, "s1|s2", ps[0].String())
	assert.Equal(t, "s1|s3", ps[1].String())

	cp, err := d.CriticalPath()
	require.NoError(t, err)
	assert.Contains(t, []string{"s1|s2", "s1|s3"}, cp.String())
	assert.NoError(t, n.CheckFlowBalance(1e-12))
}

func TestOpenNetworkWithPseudo(t *testing.T) {
	// Each draw-off node drains to the exit through a pseudo segment.
	// Two branch points give three paths.
	w, err := fluid.Water(10)
	require.NoError(t, err)
	n, err := network.New(network.Design, "s", "x", w, schedule.Schedule40)
	require.NoError(t, err)
	for _, r := range []network.DesignSpec{
		pipe("p1", "s", "a", 0.6, 32, 5),
		pipe("p2", "a", "b", 0.4, 25, 5),
		pipe("p3", "b", "c", 0.2, 20, 5),
		{ID: "ta", Start: "a", End: "x"},
		{ID: "tb", Start: "b", End: "x"},
		{ID: "tc", Start: "c", End: "x"},
	} {
		require.NoError(t, n.AddDesignSegment(r))
	}
	d, err := design.New(n)
	require.NoError(t, err)
	ps, err := d.Paths()
	require.NoError(t, err)
	assert.Len(t, ps, 3)
	_, err = d.Balance()
	require.NoError(t, err)

	// Draw-off nodes do not conserve flow through real segments only:
	// each one balances once its 0.2 L/s draw-off is counted.
	assert.ErrorIs(t, n.CheckFlowBalance(1e-12), network.ErrFlowImbalance)
	for _, id := range []string{"a", "b", "c"} {
		nd, ok := n.Node(id)
		require.True(t, ok, id)
		assert.InDelta(t, 0, nd.FlowImbalance(nil, []units.FlowRate{units.LitresPerSecond(0.2)}), 1e-15, id)
	}
}

func TestNewErrors(t *testing.T) {
	_, err := design.New(nil)
	assert.ErrorIs(t, err, design.ErrNotDesign)

	w, err := fluid.Water(10)
	require.NoError(t, err)
	n, err := network.New(network.Analysis, "a", "b", w, schedule.Schedule40)
	require.NoError(t, err)
	_, err = design.New(n)
	assert.ErrorIs(t, err, design.ErrNotDesign)
}

func TestSpecificFrictionLoss(t *testing.T) {
	w, err := fluid.Water(10)
	require.NoError(t, err)
	perMetre, avail, err := design.SpecificFrictionLoss(design.SupplyBudget{
		PathLength:      units.Metres(50),
		SupplyPressure:  units.Bar(3),
		DrawOffPressure: units.Bar(1),
		Height:          units.Metres(10),
		FittingsPercent: 20,
	})
	require.NoError(t, err)
	want := (200000 - float64(w.Density())*units.Gravity*10) * 0.8
	assert.InDelta(t, want, float64(avail), 1e-6)
	assert.InDelta(t, want/50, float64(perMetre), 1e-6)

	_, _, err = design.SpecificFrictionLoss(design.SupplyBudget{})
	assert.ErrorIs(t, err, design.ErrInvalidBudget)
}
