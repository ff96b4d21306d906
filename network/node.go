package network

import "github.com/katalvlaran/pipenet/units"

// Node is a junction between segments.
type Node struct {
	id        string
	elevation units.Length
	in, out   []*Segment
}

// ID returns the node id.
func (n *Node) ID() string { return n.id }

// Elevation returns the height above the reference plane (design mode).
func (n *Node) Elevation() units.Length { return n.elevation }

// Incoming returns the segments that end at n, in insertion order.
func (n *Node) Incoming() []*Segment {
	out := make([]*Segment, len(n.in))
	copy(out, n.in)
	return out
}

// Outgoing returns the segments that start at n, in insertion order.
func (n *Node) Outgoing() []*Segment {
	out := make([]*Segment, len(n.out))
	copy(out, n.out)
	return out
}

// FlowImbalance returns the net real inflow at n in m³/s: flow entering
// minus flow leaving, honouring each segment's direction sign. External
// inflows and outflows are added to and subtracted from the balance.
func (n *Node) FlowImbalance(externalIn, externalOut []units.FlowRate) float64 {
	sum := 0.0
	for _, s := range n.in {
		if s.Real() {
			sum += float64(s.SignedFlowRate())
		}
	}
	for _, s := range n.out {
		if s.Real() {
			sum -= float64(s.SignedFlowRate())
		}
	}
	for _, q := range externalIn {
		sum += float64(q)
	}
	for _, q := range externalOut {
		sum -= float64(q)
	}
	return sum
}
