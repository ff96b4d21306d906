package network

import (
	"strings"

	"github.com/katalvlaran/pipenet/units"
)

// FlowPath is an ordered list of segments from the supply node to the exit node.
type FlowPath []*Segment

// String joins the segment ids with "|".
func (p FlowPath) String() string {
	ids := make([]string, len(p))
	for i, s := range p {
		ids[i] = s.id
	}
	return strings.Join(ids, "|")
}

// Contains reports whether the path runs through segment id.
func (p FlowPath) Contains(id string) bool {
	for _, s := range p {
		if s.id == id {
			return true
		}
	}
	return false
}

// FirstReal returns the first non-pseudo segment or nil.
func (p FlowPath) FirstReal() *Segment {
	for _, s := range p {
		if s.Real() {
			return s
		}
	}
	return nil
}

// LastReal returns the last non-pseudo segment or nil.
func (p FlowPath) LastReal() *Segment {
	for i := len(p) - 1; i >= 0; i-- {
		if p[i].Real() {
			return p[i]
		}
	}
	return nil
}

func (p FlowPath) mode() Mode {
	if len(p) == 0 || p[0].net == nil {
		return Analysis
	}
	return p[0].net.mode
}

// VelocityHead returns the velocity pressure of the last real segment minus
// that of the first real segment.
func (p FlowPath) VelocityHead() units.Pressure {
	first, last := p.FirstReal(), p.LastReal()
	if first == nil {
		return 0
	}
	return last.VelocityPressure() - first.VelocityPressure()
}

// ElevationHead returns the sum of pseudo drops in analysis mode, and
// ρ·g·(z_end − z_start) between the ends of the real part of the path in design mode.
func (p FlowPath) ElevationHead() units.Pressure {
	if p.mode() == Analysis {
		var sum units.Pressure
		for _, s := range p {
			if !s.Real() {
				sum += s.PressureDrop()
			}
		}
		return sum
	}
	first, last := p.FirstReal(), p.LastReal()
	if first == nil {
		return 0
	}
	dz := float64(last.end.elevation - first.start.elevation)
	rho := float64(p[0].net.fluid.Density())
	return units.Pressure(rho * units.Gravity * dz)
}

// DynamicHead returns the summed pressure drop of the real segments.
func (p FlowPath) DynamicHead() units.Pressure {
	var sum units.Pressure
	for _, s := range p {
		if s.Real() {
			sum += s.PressureDrop()
		}
	}
	return sum
}

// StaticHead returns the feed pressure the path requires in design mode:
// velocity + elevation + dynamic head. In analysis mode it returns the
// negated sum, the static pressure difference between exit and supply.
func (p FlowPath) StaticHead() units.Pressure {
	sum := p.VelocityHead() + p.ElevationHead() + p.DynamicHead()
	if p.mode() == Analysis {
		return -sum
	}
	return sum
}
