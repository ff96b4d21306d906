package network

import (
	"fmt"
	"math"

	"github.com/katalvlaran/pipenet"
	"github.com/katalvlaran/pipenet/hydraulics"
	"github.com/katalvlaran/pipenet/units"
)

var (
	// ErrIncompleteRow is returned when a segment row lacks an id, loop or node.
	ErrIncompleteRow = fmt.Errorf("network: segment row is incomplete: %w", pipenet.ErrInvalidConfiguration)

	// ErrDuplicateFitting is returned when a fitting id repeats within a segment.
	ErrDuplicateFitting = fmt.Errorf("network: duplicate fitting id: %w", pipenet.ErrInvalidConfiguration)

	// ErrNoValve is returned when a valve operation targets a segment without that valve.
	ErrNoValve = fmt.Errorf("network: segment has no such valve: %w", pipenet.ErrInvalidConfiguration)
)

// sharedFlowTolerance is the relative mismatch allowed between the two
// rows of a shared segment.
const sharedFlowTolerance = 1e-9

// AddAnalysisSegment adds one row of the analysis table.
//
// The row lists its nodes in the direction of the guessed flow. A negative
// FlowRate means the loop's positive sense runs against that direction.
// A segment id may appear a second time, in a different loop, to mark a
// segment shared by two loops; the second row must list the same nodes in
// the same order with the same flow magnitude and the opposite sign.
//
// Errors: ErrWrongMode, ErrIncompleteRow, ErrDuplicateSegment,
// ErrSharedSegment, pipe sizing errors wrapped in *SegmentError.
func (n *Network) AddAnalysisSegment(spec AnalysisSpec) error {
	// 1) Validate row
	if n.mode != Analysis {
		return ErrWrongMode
	}
	if spec.ID == "" || spec.Loop == "" || spec.Start == "" || spec.End == "" || spec.Start == spec.End {
		return fmt.Errorf("%w: segment %q in loop %q", ErrIncompleteRow, spec.ID, spec.Loop)
	}
	if math.IsNaN(float64(spec.FlowRate)) {
		return segErr(spec.ID, hydraulics.ErrInvalidValue)
	}

	// 2) Second occurrence: shared segment
	if existing, ok := n.segments[spec.ID]; ok {
		return n.share(existing, spec)
	}

	// 3) Build element
	q := units.FlowRate(math.Abs(float64(spec.FlowRate)))
	var el Element
	if spec.FixedDrop != nil {
		el = &Pseudo{Drop: *spec.FixedDrop}
	} else {
		dn := spec.NominalDiameter
		physics, err := hydraulics.NewPipe(hydraulics.PipeSpec{
			Fluid:           n.fluid,
			Schedule:        n.schedule,
			Length:          spec.Length,
			SumZeta:         spec.SumZeta,
			FlowRate:        &q,
			NominalDiameter: &dn,
		}, n.hopts...)
		if err != nil {
			return segErr(spec.ID, err)
		}
		el = newPipeElement(physics, spec.Pump)
	}

	// 4) Orientation and registration
	orientation := 1
	if spec.FlowRate < 0 {
		orientation = -1
	}
	l := n.loop(spec.Loop)
	s := &Segment{
		id:      spec.ID,
		start:   n.node(spec.Start, 0),
		end:     n.node(spec.End, 0),
		element: el,
		sign:    1,
		flow:    q,
		loops:   []membership{{loop: l, orientation: orientation}},
	}
	n.register(s)
	l.members = append(l.members, s)
	return s.Recalculate()
}

func (n *Network) share(s *Segment, spec AnalysisSpec) error {
	if len(s.loops) >= 2 || s.loops[0].loop.id == spec.Loop {
		return fmt.Errorf("%w: %q", ErrDuplicateSegment, spec.ID)
	}
	if !s.Real() || spec.FixedDrop != nil {
		return fmt.Errorf("%w: %q: pseudo segments cannot be shared", ErrSharedSegment, spec.ID)
	}
	if s.start.id != spec.Start || s.end.id != spec.End {
		return fmt.Errorf("%w: %q: rows connect nodes in a different order", ErrSharedSegment, spec.ID)
	}
	q := math.Abs(float64(spec.FlowRate))
	if math.Abs(q-float64(s.flow)) > sharedFlowTolerance*math.Max(q, float64(s.flow)) {
		return fmt.Errorf("%w: %q: flow %g vs %g", ErrSharedSegment, spec.ID, q, float64(s.flow))
	}
	orientation := -s.loops[0].orientation
	if q > 0 && (spec.FlowRate < 0) != (orientation < 0) {
		return fmt.Errorf("%w: %q: second row must carry the opposite sign", ErrSharedSegment, spec.ID)
	}
	l := n.loop(spec.Loop)
	s.loops = append(s.loops, membership{loop: l, orientation: orientation})
	l.members = append(l.members, s)
	return nil
}

// AddDesignSegment adds one row of the design table. The first reference
// to a node fixes its elevation.
//
// Errors: ErrWrongMode, ErrIncompleteRow, ErrDuplicateSegment, pipe sizing
// errors wrapped in *SegmentError.
func (n *Network) AddDesignSegment(spec DesignSpec) error {
	if n.mode != Design {
		return ErrWrongMode
	}
	if spec.ID == "" || spec.Start == "" || spec.End == "" || spec.Start == spec.End {
		return fmt.Errorf("%w: segment %q", ErrIncompleteRow, spec.ID)
	}
	if _, ok := n.segments[spec.ID]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateSegment, spec.ID)
	}

	var (
		el Element
		q  units.FlowRate
	)
	if spec.FlowRate == nil {
		el = &Pseudo{}
	} else {
		q = *spec.FlowRate
		physics, err := hydraulics.NewPipe(hydraulics.PipeSpec{
			Fluid:           n.fluid,
			Schedule:        n.schedule,
			Length:          spec.Length,
			FlowRate:        spec.FlowRate,
			NominalDiameter: spec.NominalDiameter,
			FrictionLoss:    spec.FrictionLoss,
		}, n.hopts...)
		if err != nil {
			return segErr(spec.ID, err)
		}
		el = newPipeElement(physics, nil)
	}

	s := &Segment{
		id:      spec.ID,
		start:   n.node(spec.Start, spec.StartElevation),
		end:     n.node(spec.End, spec.EndElevation),
		element: el,
		sign:    1,
		flow:    q,
	}
	n.register(s)
	return s.Recalculate()
}

// realSegment returns segment id and its pipe part.
func (n *Network) realSegment(id string) (*Segment, *Pipe, error) {
	s, err := n.Segment(id)
	if err != nil {
		return nil, nil, err
	}
	p := pipeOf(s.element)
	if p == nil {
		return nil, nil, fmt.Errorf("%w: %q", ErrPseudoSegment, id)
	}
	return s, p, nil
}

// AddFitting mounts a fitting in a real segment. The fitting sees the
// segment's flow and inside diameter.
func (n *Network) AddFitting(segID, fittingID, typ string, coef hydraulics.Coefficients) (*hydraulics.Fitting, error) {
	s, p, err := n.realSegment(segID)
	if err != nil {
		return nil, err
	}
	for _, f := range p.fittings {
		if f.ID == fittingID {
			return nil, fmt.Errorf("%w: %q in segment %q", ErrDuplicateFitting, fittingID, segID)
		}
	}
	f, err := hydraulics.NewFitting(fittingID, typ, coef, hydraulics.FlowCondition{
		Fluid:    n.fluid,
		FlowRate: s.flow,
		Diameter: s.InsideDiameter(),
	})
	if err != nil {
		return nil, segErr(segID, err)
	}
	p.fittings = append(p.fittings, f)
	return f, s.Recalculate()
}

// AddPump turns a pipe segment into a pump segment, or replaces the curve
// of an existing pump.
func (n *Network) AddPump(segID string, curve hydraulics.PumpCurve) error {
	s, p, err := n.realSegment(segID)
	if err != nil {
		return err
	}
	if pump, ok := s.element.(*Pump); ok {
		pump.Curve = curve
		return nil
	}
	s.element = &Pump{Pipe: *p, Curve: curve}
	return nil
}

// AddBalancingValve mounts a balancing valve sized for the segment's design
// flow at full-open drop dp100.
func (n *Network) AddBalancingValve(segID string, dp100 units.Pressure) (*hydraulics.BalancingValve, error) {
	if n.mode != Design {
		return nil, ErrWrongMode
	}
	s, p, err := n.realSegment(segID)
	if err != nil {
		return nil, err
	}
	bv, err := hydraulics.NewBalancingValve(n.fluid, s.flow, dp100)
	if err != nil {
		return nil, segErr(segID, err)
	}
	p.balancing = bv
	return bv, s.Recalculate()
}

// SetBalancingValveKvs installs a commercial Kvs on the segment's balancing valve.
func (n *Network) SetBalancingValveKvs(segID string, kvs float64) error {
	s, p, err := n.realSegment(segID)
	if err != nil {
		return err
	}
	if p.balancing == nil {
		return fmt.Errorf("%w: balancing valve in %q", ErrNoValve, segID)
	}
	if err := p.balancing.SetKvs(kvs); err != nil {
		return segErr(segID, err)
	}
	return s.Recalculate()
}

// SetBalancingValveExcess sets the pressure the segment's balancing valve
// must dissipate and returns the resulting Kvr.
func (n *Network) SetBalancingValveExcess(segID string, excess units.Pressure) (float64, error) {
	s, p, err := n.realSegment(segID)
	if err != nil {
		return 0, err
	}
	if p.balancing == nil {
		return 0, fmt.Errorf("%w: balancing valve in %q", ErrNoValve, segID)
	}
	kvr, err := p.balancing.SetExcessPressure(excess)
	if err != nil {
		return 0, segErr(segID, err)
	}
	return kvr, s.Recalculate()
}

// AddControlValve mounts a control valve sized for the target authority
// against dpCrit.
func (n *Network) AddControlValve(segID string, authority float64, dpCrit units.Pressure) (*hydraulics.ControlValve, error) {
	if n.mode != Design {
		return nil, ErrWrongMode
	}
	s, p, err := n.realSegment(segID)
	if err != nil {
		return nil, err
	}
	cv, err := hydraulics.NewControlValve(n.fluid, s.flow, authority, dpCrit)
	if err != nil {
		return nil, segErr(segID, err)
	}
	p.control = cv
	return cv, s.Recalculate()
}

// SetControlValveKvs installs a commercial Kvs on the segment's control valve.
func (n *Network) SetControlValveKvs(segID string, kvs float64) error {
	s, p, err := n.realSegment(segID)
	if err != nil {
		return err
	}
	if p.control == nil {
		return fmt.Errorf("%w: control valve in %q", ErrNoValve, segID)
	}
	if err := p.control.SetKvs(kvs); err != nil {
		return segErr(segID, err)
	}
	return s.Recalculate()
}
