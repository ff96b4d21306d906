package network

import (
	"github.com/katalvlaran/pipenet/hydraulics"
	"github.com/katalvlaran/pipenet/units"
)

// Element is the physical content of a segment: *Pipe, *Pump or *Pseudo.
type Element interface {
	Kind() Kind
	isElement()
}

// Pipe is a straight pipe with its mounted fittings and valves.
type Pipe struct {
	physics   *hydraulics.Pipe
	fittings  []*hydraulics.Fitting
	balancing *hydraulics.BalancingValve
	control   *hydraulics.ControlValve
}

// Pump is a pipe carrying a pump.
type Pump struct {
	Pipe
	Curve hydraulics.PumpCurve
}

// Pseudo is a fixed pressure difference between two nodes.
type Pseudo struct {
	Drop units.Pressure
}

func (*Pipe) Kind() Kind   { return KindPipe }
func (*Pump) Kind() Kind   { return KindPump }
func (*Pseudo) Kind() Kind { return KindPseudo }

func (*Pipe) isElement()   {}
func (*Pseudo) isElement() {}

// Physics returns the underlying pipe model.
func (p *Pipe) Physics() *hydraulics.Pipe { return p.physics }

// Fittings returns the mounted fittings in insertion order.
func (p *Pipe) Fittings() []*hydraulics.Fitting {
	out := make([]*hydraulics.Fitting, len(p.fittings))
	copy(out, p.fittings)
	return out
}

// BalancingValve returns the balancing valve or nil.
func (p *Pipe) BalancingValve() *hydraulics.BalancingValve { return p.balancing }

// ControlValve returns the control valve or nil.
func (p *Pipe) ControlValve() *hydraulics.ControlValve { return p.control }

// pipeOf returns the pipe part of a real element, or nil for pseudo.
func pipeOf(e Element) *Pipe {
	switch el := e.(type) {
	case *Pipe:
		return el
	case *Pump:
		return &el.Pipe
	default:
		return nil
	}
}

// loss returns friction, minor, fitting and valve losses at the current flow.
func (p *Pipe) loss() (units.Pressure, error) {
	dp := p.physics.PressureLoss()
	for _, f := range p.fittings {
		fdp, err := f.PressureDrop()
		if err != nil {
			return 0, err
		}
		dp += fdp
	}
	if p.balancing != nil {
		dp += p.balancing.PressureDrop()
	}
	if p.control != nil {
		dp += p.control.PressureDrop()
	}
	return dp, nil
}

// zeta returns the combined resistance coefficient of fittings and valves.
func (p *Pipe) zeta() (float64, error) {
	di := p.physics.CrossSection().Inside
	z := 0.0
	for _, f := range p.fittings {
		fz, err := f.Zeta()
		if err != nil {
			return 0, err
		}
		z += fz
	}
	if p.balancing != nil {
		bz, err := hydraulics.ResistanceFromKv(p.balancing.Kvr(), di)
		if err != nil {
			return 0, err
		}
		z += bz
	}
	if p.control != nil {
		cz, err := hydraulics.ResistanceFromKv(p.control.Kvs(), di)
		if err != nil {
			return 0, err
		}
		z += cz
	}
	return z, nil
}
