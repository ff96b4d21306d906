package network

import (
	"math"

	"github.com/katalvlaran/pipenet/hydraulics"
	"github.com/katalvlaran/pipenet/units"
)

// membership records that a segment belongs to a loop. orientation is +1
// when the loop's positive sense runs from Start to End.
type membership struct {
	loop        *Loop
	orientation int
}

// Segment is a directed edge of the network.
type Segment struct {
	id         string
	start, end *Node
	element    Element
	sign       int
	flow       units.FlowRate
	loss       units.Pressure
	loops      []membership
	net        *Network
}

// ID returns the segment id.
func (s *Segment) ID() string { return s.id }

// Start returns the start node.
func (s *Segment) Start() *Node { return s.start }

// End returns the end node.
func (s *Segment) End() *Node { return s.end }

// Element returns the segment variant.
func (s *Segment) Element() Element { return s.element }

// Kind returns the variant tag.
func (s *Segment) Kind() Kind { return s.element.Kind() }

// Real reports whether the segment is a pipe or pump.
func (s *Segment) Real() bool { return s.element.Kind() != KindPseudo }

// Sign returns +1 when flow runs Start to End, -1 otherwise.
func (s *Segment) Sign() int { return s.sign }

// FlowRate returns the flow magnitude.
func (s *Segment) FlowRate() units.FlowRate { return s.flow }

// SignedFlowRate returns the flow along Start to End.
func (s *Segment) SignedFlowRate() units.FlowRate { return units.FlowRate(float64(s.sign)) * s.flow }

// Loops returns the ids of the loops the segment belongs to, primary first.
func (s *Segment) Loops() []string {
	out := make([]string, len(s.loops))
	for i, m := range s.loops {
		out[i] = m.loop.id
	}
	return out
}

// Loss returns the resistance loss magnitude: pipe friction and minor
// losses, fittings and valves. Zero for pseudo segments.
func (s *Segment) Loss() units.Pressure { return s.loss }

// Head returns the pressure added by a pump at the current flow, else 0.
func (s *Segment) Head() units.Pressure {
	if p, ok := s.element.(*Pump); ok {
		return p.Curve.Head(s.flow)
	}
	return 0
}

// PressureDrop returns the pressure drop from Start to End. Pump head
// counts as a negative drop. For a pseudo segment it is the fixed drop.
func (s *Segment) PressureDrop() units.Pressure {
	switch el := s.element.(type) {
	case *Pseudo:
		return el.Drop
	case *Pump:
		return units.Pressure(float64(s.sign)) * (s.loss - el.Curve.Head(s.flow))
	default:
		return units.Pressure(float64(s.sign)) * s.loss
	}
}

// InsideDiameter returns the bore of a real segment, else 0.
func (s *Segment) InsideDiameter() units.Length {
	if p := pipeOf(s.element); p != nil {
		return p.physics.CrossSection().Inside
	}
	return 0
}

// NominalDiameter returns the DN of a real segment, else 0.
func (s *Segment) NominalDiameter() units.Length {
	if p := pipeOf(s.element); p != nil {
		return p.physics.CrossSection().Nominal
	}
	return 0
}

// Length returns the pipe length of a real segment, else 0.
func (s *Segment) Length() units.Length {
	if p := pipeOf(s.element); p != nil {
		return p.physics.Length()
	}
	return 0
}

// Velocity returns the mean velocity of a real segment, else 0.
func (s *Segment) Velocity() units.Velocity {
	if p := pipeOf(s.element); p != nil {
		return p.physics.Velocity()
	}
	return 0
}

// VelocityPressure returns ρv²/2 of a real segment, else 0.
func (s *Segment) VelocityPressure() units.Pressure {
	if p := pipeOf(s.element); p != nil {
		return p.physics.VelocityPressure()
	}
	return 0
}

// Zeta returns the combined resistance coefficient of the fittings and
// valves mounted in a real segment.
func (s *Segment) Zeta() (float64, error) {
	if p := pipeOf(s.element); p != nil {
		z, err := p.zeta()
		return z, segErr(s.id, err)
	}
	return 0, nil
}

// Recalculate refreshes the cached loss from the current flow.
func (s *Segment) Recalculate() error {
	p := pipeOf(s.element)
	if p == nil {
		return nil
	}
	if err := p.physics.SetFlowRate(s.flow); err != nil {
		return segErr(s.id, err)
	}
	for _, f := range p.fittings {
		f.Condition.FlowRate = s.flow
	}
	dp, err := p.loss()
	if err != nil {
		return segErr(s.id, err)
	}
	s.loss = dp
	return nil
}

// orientation returns the loop orientation of s in l, or 0 if not a member.
func (s *Segment) orientation(l *Loop) int {
	for _, m := range s.loops {
		if m.loop == l {
			return m.orientation
		}
	}
	return 0
}

// LoopPressureDrop returns the pressure drop of s measured along the
// positive sense of loop l.
func (s *Segment) LoopPressureDrop(l *Loop) units.Pressure {
	return units.Pressure(float64(s.orientation(l))) * s.PressureDrop()
}

// Gradient returns ∂Δp/∂V used in the loop correction denominator:
// 2Δp/V for pipes, 2Δp/V − (a1 + 2a2V) for pumps, 0 for pseudo segments
// and segments without flow.
func (s *Segment) Gradient() float64 {
	if !s.Real() || s.flow == 0 {
		return 0
	}
	n := 2 * float64(s.loss) / float64(s.flow)
	if p, ok := s.element.(*Pump); ok {
		n -= p.Curve.Slope(s.flow)
	}
	return n
}

// applyCorrection moves the flow by the loop corrections: the own term for a
// single-loop segment, the difference of the two terms for a shared one.
// A flow that turns negative flips the direction sign.
func (s *Segment) applyCorrection() {
	if !s.Real() || len(s.loops) == 0 {
		return
	}
	primary := s.loops[0]
	delta := primary.loop.correction
	if len(s.loops) == 2 {
		delta -= s.loops[1].loop.correction
	}
	o := float64(primary.orientation)
	q := o*float64(s.sign)*float64(s.flow) - delta
	phys := o * q
	switch {
	case phys < 0:
		s.sign = -1
	case phys > 0:
		s.sign = 1
	}
	s.flow = units.FlowRate(math.Abs(phys))
}

// newPipeElement builds a pipe or pump element around physics.
func newPipeElement(physics *hydraulics.Pipe, curve *hydraulics.PumpCurve) Element {
	if curve != nil {
		return &Pump{Pipe: Pipe{physics: physics}, Curve: *curve}
	}
	return &Pipe{physics: physics}
}
