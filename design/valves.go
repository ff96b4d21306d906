package design

import (
	"github.com/katalvlaran/pipenet/hydraulics"
	"github.com/katalvlaran/pipenet/network"
)

func pipeElement(seg *network.Segment) *network.Pipe {
	switch el := seg.Element().(type) {
	case *network.Pipe:
		return el
	case *network.Pump:
		return &el.Pipe
	default:
		return nil
	}
}

func balancingValve(seg *network.Segment) *hydraulics.BalancingValve {
	if p := pipeElement(seg); p != nil {
		return p.BalancingValve()
	}
	return nil
}

func controlValve(seg *network.Segment) *hydraulics.ControlValve {
	if p := pipeElement(seg); p != nil {
		return p.ControlValve()
	}
	return nil
}

func balancingSegments(net *network.Network) []*network.Segment {
	var out []*network.Segment
	for _, seg := range net.Segments() {
		if balancingValve(seg) != nil {
			out = append(out, seg)
		}
	}
	return out
}
