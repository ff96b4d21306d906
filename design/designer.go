// Package design sizes and balances a branched network with fixed flows.
//
// Pipes are sized when their segments are added to the network. A Designer
// then finds the flow paths from supply to exit, picks the critical path
// (the one needing the highest feed pressure) and sets the balancing valves
// so that every path needs exactly that feed pressure. Control valves are
// sized against the dynamic head of the critical path.
//
// Typical sequence:
//
//	d, _ := design.New(net)
//	d.AddBalancingValves([]design.Setting{{Segment: "b1", Value: 3000}})
//	d.InitBalancingValves(commercialKvs)
//	d.AddControlValves(targetAuthorities)
//	d.SetControlValves(commercialKvs)
//	d.Balance()
//
// Balancing assumes at most one balancing valve per flow path.
package design

import (
	"fmt"
	"time"

	"github.com/katalvlaran/pipenet/metrics"
	"github.com/katalvlaran/pipenet/network"
	"github.com/katalvlaran/pipenet/paths"
	"github.com/katalvlaran/pipenet/units"
)

// Designer runs the design workflow on one network.
type Designer struct {
	net   *network.Network
	opts  Options
	paths []network.FlowPath
	// seen is the segment count the cached paths were enumerated at.
	seen int
}

// New returns a Designer for a design-mode network.
func New(net *network.Network, opts ...Option) (*Designer, error) {
	if net == nil || net.Mode() != network.Design {
		return nil, ErrNotDesign
	}
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	return &Designer{net: net, opts: o}, nil
}

// Network returns the network being designed.
func (d *Designer) Network() *network.Network { return d.net }

// Paths enumerates the flow paths and caches them until another segment
// is added to the network.
func (d *Designer) Paths() ([]network.FlowPath, error) {
	if d.paths != nil && d.seen == d.net.NumSegments() {
		return d.paths, nil
	}
	d.paths = nil
	ps, err := paths.Enumerate(d.net)
	if err != nil {
		return nil, err
	}
	if len(ps) == 0 {
		return nil, ErrNoPaths
	}
	d.opts.Recorder.RecordPaths(len(ps))
	d.paths = ps
	d.seen = d.net.NumSegments()
	return ps, nil
}

// CriticalPath returns the path with the largest static head. Ties go to
// the earliest path.
func (d *Designer) CriticalPath() (network.FlowPath, error) {
	ps, err := d.Paths()
	if err != nil {
		return nil, err
	}
	best := 0
	for i := 1; i < len(ps); i++ {
		if ps[i].StaticHead() > ps[best].StaticHead() {
			best = i
		}
	}
	return ps[best], nil
}

// FeedPressure returns the static head of the critical path.
func (d *Designer) FeedPressure() (units.Pressure, error) {
	cp, err := d.CriticalPath()
	if err != nil {
		return 0, err
	}
	return cp.StaticHead(), nil
}

// FlowRate returns the flow leaving the supply node.
func (d *Designer) FlowRate() units.FlowRate { return d.net.FlowRate() }

// HydraulicResistance returns feed pressure / V² in SI units.
func (d *Designer) HydraulicResistance() (float64, error) {
	v := float64(d.net.FlowRate())
	if v == 0 {
		return 0, ErrNoFlow
	}
	feed, err := d.FeedPressure()
	if err != nil {
		return 0, err
	}
	return float64(feed) / (v * v), nil
}

// Deficits returns, for every path in enumeration order, the static head
// of the critical path minus the static head of the path.
func (d *Designer) Deficits() ([]units.Pressure, error) {
	feed, err := d.FeedPressure()
	if err != nil {
		return nil, err
	}
	out := make([]units.Pressure, len(d.paths))
	for i, p := range d.paths {
		out[i] = feed - p.StaticHead()
	}
	return out, nil
}

// AddBalancingValves mounts a balancing valve on each listed segment.
// Value is the full-open design drop in Pa. It returns the preliminary Kvs
// of each valve.
func (d *Designer) AddBalancingValves(dp100 []Setting) ([]Setting, error) {
	out := make([]Setting, 0, len(dp100))
	for _, s := range dp100 {
		bv, err := d.net.AddBalancingValve(s.Segment, units.Pressure(s.Value))
		if err != nil {
			return nil, err
		}
		out = append(out, Setting{Segment: s.Segment, Value: bv.Kvs()})
	}
	return out, nil
}

// InitBalancingValves installs the commercial Kvs of each listed valve.
func (d *Designer) InitBalancingValves(kvs []Setting) error {
	for _, s := range kvs {
		if err := d.net.SetBalancingValveKvs(s.Segment, s.Value); err != nil {
			return err
		}
	}
	return nil
}

// AddControlValves mounts a control valve on each listed segment. Value is
// the target authority. Every valve is sized against the dynamic head of the
// critical path found before any of them is added. It returns the
// preliminary Kvs of each valve.
func (d *Designer) AddControlValves(authorities []Setting) ([]Setting, error) {
	cp, err := d.CriticalPath()
	if err != nil {
		return nil, err
	}
	dpCrit := cp.DynamicHead()
	out := make([]Setting, 0, len(authorities))
	for _, s := range authorities {
		cv, err := d.net.AddControlValve(s.Segment, s.Value, dpCrit)
		if err != nil {
			return nil, err
		}
		out = append(out, Setting{Segment: s.Segment, Value: cv.Kvs()})
	}
	return out, nil
}

// SetControlValves installs the commercial Kvs of each listed valve.
func (d *Designer) SetControlValves(kvs []Setting) error {
	for _, s := range kvs {
		if err := d.net.SetControlValveKvs(s.Segment, s.Value); err != nil {
			return err
		}
	}
	return nil
}

// ControlValveAuthorities returns the authority of every control valve,
// measured against the total drop of its segment, in segment order.
func (d *Designer) ControlValveAuthorities() ([]Setting, error) {
	var out []Setting
	for _, seg := range d.net.Segments() {
		cv := controlValve(seg)
		if cv == nil {
			continue
		}
		a, err := cv.Authority(seg.Loss())
		if err != nil {
			return nil, fmt.Errorf("design: segment %q: %w", seg.ID(), err)
		}
		out = append(out, Setting{Segment: seg.ID(), Value: a})
	}
	return out, nil
}

// Balance sets every balancing valve so that each path needs the feed
// pressure of the critical path. Heads are measured with all valves fully
// open, so calling Balance again gives the same settings. Each valve takes
// the excess of the most demanding path through it. It returns the Kvr
// setting of each valve in segment order.
func (d *Designer) Balance() ([]Setting, error) {
	start := time.Now()

	// 1) Open every balancing valve
	valves := balancingSegments(d.net)
	for _, seg := range valves {
		if _, err := d.net.SetBalancingValveExcess(seg.ID(), 0); err != nil {
			return nil, err
		}
	}

	// 2) Critical path and per-valve demand
	ps, err := d.Paths()
	if err != nil {
		return nil, err
	}
	feed, err := d.FeedPressure()
	if err != nil {
		return nil, err
	}
	demand := make(map[string]units.Pressure, len(valves))
	for _, p := range ps {
		head := p.StaticHead()
		for _, seg := range p {
			if balancingValve(seg) == nil {
				continue
			}
			if cur, ok := demand[seg.ID()]; !ok || head > cur {
				demand[seg.ID()] = head
			}
		}
	}

	// 3) Assign the excess
	out := make([]Setting, 0, len(valves))
	for _, seg := range valves {
		head, ok := demand[seg.ID()]
		if !ok {
			d.opts.Logger.Warn("balancing valve not on any flow path", "segment", seg.ID())
			continue
		}
		kvr, err := d.net.SetBalancingValveExcess(seg.ID(), feed-head)
		if err != nil {
			return nil, err
		}
		out = append(out, Setting{Segment: seg.ID(), Value: kvr})
	}

	d.opts.Recorder.RecordValveTrims(len(out))
	d.opts.Recorder.RecordSolve(network.Design.String(), metrics.StatusConverged, 1, time.Since(start))
	d.opts.Logger.Info("design balanced",
		"network", d.net.ID(), "valves", len(out), "feed_pressure_pa", float64(feed))
	return out, nil
}
