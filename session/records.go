package session

import (
	"github.com/katalvlaran/pipenet/curve"
	"github.com/katalvlaran/pipenet/network"
	"github.com/katalvlaran/pipenet/units"
)

// SegmentRecord is one output row per segment. Quantities are in the
// configured units; Zeta is dimensionless.
type SegmentRecord struct {
	ID              string
	Kind            string
	Loops           []string
	Start, End      string
	NominalDiameter float64
	InsideDiameter  float64
	Length          float64
	FlowRate        float64
	Velocity        float64
	PressureDrop    float64
	Zeta            float64
}

// PathRecord is one output row per flow path. Deficit is the static head
// of the critical path minus that of the path.
type PathRecord struct {
	Path          string
	VelocityHead  float64
	ElevationHead float64
	DynamicHead   float64
	StaticHead    float64
	Deficit       float64
}

// FittingRecord is one output row per mounted fitting.
type FittingRecord struct {
	Segment      string
	ID           string
	Type         string
	Model        string
	Zeta         float64
	PressureDrop float64
}

// BalancingValveRecord is one output row per balancing valve.
type BalancingValveRecord struct {
	Segment        string
	FlowRate       float64
	OpenDrop       float64
	ExcessPressure float64
	Kvs            float64
	Kvr            float64
}

// ControlValveRecord is one output row per control valve.
type ControlValveRecord struct {
	Segment         string
	FlowRate        float64
	PressureDrop    float64
	Kvs             float64
	TargetAuthority float64
	Authority       float64
}

// converter maps SI values into the session units and keeps the first error.
type converter struct {
	us  units.System
	err error
}

func (s *Session) converter() *converter { return &converter{us: s.units} }

func (c *converter) keep(v float64, err error) float64 {
	if err != nil && c.err == nil {
		c.err = err
	}
	return v
}

func (c *converter) length(l units.Length) float64 {
	return c.keep(l.In(c.us.Unit(units.KindLength)))
}

func (c *converter) diameter(l units.Length) float64 {
	return c.keep(l.In(c.us.Unit(units.KindDiameter)))
}

func (c *converter) flowRate(q units.FlowRate) float64 {
	return c.keep(q.In(c.us.Unit(units.KindFlowRate)))
}

func (c *converter) pressure(p units.Pressure) float64 {
	return c.keep(p.In(c.us.Unit(units.KindPressure)))
}

func (c *converter) velocity(v units.Velocity) float64 {
	return c.keep(v.In(c.us.Unit(units.KindVelocity)))
}

// SegmentRecords lists every segment in table order. Flow rates are signed
// in the start-to-end direction.
func (s *Session) SegmentRecords() ([]SegmentRecord, error) {
	if s.net == nil {
		return nil, ErrNoNetwork
	}
	c := s.converter()
	out := make([]SegmentRecord, 0, len(s.net.Segments()))
	for _, seg := range s.net.Segments() {
		r := SegmentRecord{
			ID:           seg.ID(),
			Kind:         seg.Kind().String(),
			Loops:        seg.Loops(),
			Start:        seg.Start().ID(),
			End:          seg.End().ID(),
			FlowRate:     c.flowRate(seg.SignedFlowRate()),
			PressureDrop: c.pressure(seg.PressureDrop()),
		}
		if seg.Real() {
			r.NominalDiameter = c.diameter(seg.NominalDiameter())
			r.InsideDiameter = c.diameter(seg.InsideDiameter())
			r.Length = c.length(seg.Length())
			r.Velocity = c.velocity(seg.Velocity())
			r.Zeta = c.keep(seg.Zeta())
		}
		out = append(out, r)
	}
	return out, c.err
}

// PathRecords lists the flow paths found by the last Solve or Design.
func (s *Session) PathRecords() ([]PathRecord, error) {
	if s.net == nil {
		return nil, ErrNoNetwork
	}
	if len(s.paths) == 0 {
		return nil, nil
	}
	var crit units.Pressure
	for i, p := range s.paths {
		if h := p.StaticHead(); i == 0 || h > crit {
			crit = h
		}
	}
	c := s.converter()
	out := make([]PathRecord, 0, len(s.paths))
	for _, p := range s.paths {
		static := p.StaticHead()
		out = append(out, PathRecord{
			Path:          p.String(),
			VelocityHead:  c.pressure(p.VelocityHead()),
			ElevationHead: c.pressure(p.ElevationHead()),
			DynamicHead:   c.pressure(p.DynamicHead()),
			StaticHead:    c.pressure(static),
			Deficit:       c.pressure(crit - static),
		})
	}
	return out, c.err
}

// FittingRecords lists every fitting in segment order.
func (s *Session) FittingRecords() ([]FittingRecord, error) {
	if s.net == nil {
		return nil, ErrNoNetwork
	}
	c := s.converter()
	var out []FittingRecord
	for _, seg := range s.net.Segments() {
		p := pipeOf(seg)
		if p == nil {
			continue
		}
		for _, f := range p.Fittings() {
			dp, err := f.PressureDrop()
			out = append(out, FittingRecord{
				Segment:      seg.ID(),
				ID:           f.ID,
				Type:         f.Type,
				Model:        f.Resistance.Model(),
				Zeta:         c.keep(f.Zeta()),
				PressureDrop: c.pressure(units.Pressure(c.keep(float64(dp), err))),
			})
		}
	}
	return out, c.err
}

// BalancingValveRecords lists every balancing valve in segment order.
func (s *Session) BalancingValveRecords() ([]BalancingValveRecord, error) {
	if s.net == nil {
		return nil, ErrNoNetwork
	}
	c := s.converter()
	var out []BalancingValveRecord
	for _, seg := range s.net.Segments() {
		p := pipeOf(seg)
		if p == nil || p.BalancingValve() == nil {
			continue
		}
		bv := p.BalancingValve()
		out = append(out, BalancingValveRecord{
			Segment:        seg.ID(),
			FlowRate:       c.flowRate(bv.FlowRate()),
			OpenDrop:       c.pressure(bv.OpenPressureDrop()),
			ExcessPressure: c.pressure(bv.ExcessPressure()),
			Kvs:            bv.Kvs(),
			Kvr:            bv.Kvr(),
		})
	}
	return out, c.err
}

// ControlValveRecords lists every control valve in segment order. Authority
// is measured against the drop of the valve's segment.
func (s *Session) ControlValveRecords() ([]ControlValveRecord, error) {
	if s.net == nil {
		return nil, ErrNoNetwork
	}
	c := s.converter()
	var out []ControlValveRecord
	for _, seg := range s.net.Segments() {
		p := pipeOf(seg)
		if p == nil || p.ControlValve() == nil {
			continue
		}
		cv := p.ControlValve()
		out = append(out, ControlValveRecord{
			Segment:         seg.ID(),
			FlowRate:        c.flowRate(seg.FlowRate()),
			PressureDrop:    c.pressure(cv.PressureDrop()),
			Kvs:             cv.Kvs(),
			TargetAuthority: cv.TargetAuthority(),
			Authority:       c.keep(cv.Authority(seg.Loss())),
		})
	}
	return out, c.err
}

func pipeOf(seg *network.Segment) *network.Pipe {
	switch el := seg.Element().(type) {
	case *network.Pipe:
		return el
	case *network.Pump:
		return &el.Pipe
	default:
		return nil
	}
}

// CurvePointRecord is one point of a tabulated curve in configured units.
type CurvePointRecord struct {
	FlowRate float64
	Pressure float64
}

// systemCurveSpan is the upper end of the tabulated system curve as a
// multiple of the design flow.
const systemCurveSpan = 1.5

// SystemCurveRecords tabulates the system curve of a designed network at n
// flow rates from zero to 1.5 times the design flow.
func (s *Session) SystemCurveRecords(n int) ([]CurvePointRecord, error) {
	if s.designer == nil {
		return nil, ErrNotDesigned
	}
	r, err := s.designer.HydraulicResistance()
	if err != nil {
		return nil, err
	}
	q := s.designer.FlowRate()
	pts, err := curve.SystemCurve{Resistance: r}.Points(0, q*systemCurveSpan, n)
	if err != nil {
		return nil, err
	}
	c := s.converter()
	out := make([]CurvePointRecord, len(pts))
	for i, p := range pts {
		out[i] = CurvePointRecord{FlowRate: c.flowRate(p.FlowRate), Pressure: c.pressure(p.Pressure)}
	}
	return out, c.err
}
