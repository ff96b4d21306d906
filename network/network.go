package network

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/katalvlaran/pipenet"
	"github.com/katalvlaran/pipenet/fluid"
	"github.com/katalvlaran/pipenet/hydraulics"
	"github.com/katalvlaran/pipenet/schedule"
	"github.com/katalvlaran/pipenet/units"
)

var (
	// ErrIncomplete is returned by New when the fluid or schedule is missing.
	ErrIncomplete = fmt.Errorf("network: fluid and pipe schedule are required: %w", pipenet.ErrInvalidConfiguration)

	// ErrFlowImbalance is returned by CheckFlowBalance for a node whose
	// inflow and outflow differ.
	ErrFlowImbalance = fmt.Errorf("network: flow not conserved: %w", pipenet.ErrInvalidConfiguration)
)

// Option configures a Network.
type Option func(*Network)

// WithID overrides the generated network id.
func WithID(id string) Option {
	return func(n *Network) {
		if id != "" {
			n.id = id
		}
	}
}

// WithHydraulics passes solver options to every pipe the network builds.
func WithHydraulics(opts ...hydraulics.Option) Option {
	return func(n *Network) { n.hopts = append(n.hopts, opts...) }
}

// Network is the directed multigraph of nodes and segments of one
// analysis or design problem.
type Network struct {
	id       string
	mode     Mode
	supply   string
	exit     string
	fluid    fluid.Fluid
	schedule *schedule.Schedule
	hopts    []hydraulics.Option

	nodes     map[string]*Node
	nodeOrder []*Node
	segments  map[string]*Segment
	segOrder  []*Segment
	loops     map[string]*Loop
	loopOrder []*Loop
}

// New returns an empty network.
func New(mode Mode, supply, exit string, fl fluid.Fluid, sch *schedule.Schedule, opts ...Option) (*Network, error) {
	if supply == "" || exit == "" {
		return nil, ErrMissingNodes
	}
	if fl == nil || sch == nil {
		return nil, ErrIncomplete
	}
	n := &Network{
		id:       uuid.NewString(),
		mode:     mode,
		supply:   supply,
		exit:     exit,
		fluid:    fl,
		schedule: sch,
		nodes:    make(map[string]*Node),
		segments: make(map[string]*Segment),
		loops:    make(map[string]*Loop),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n, nil
}

// ID returns the network id.
func (n *Network) ID() string { return n.id }

// Mode returns the network mode.
func (n *Network) Mode() Mode { return n.mode }

// Supply returns the supply node id.
func (n *Network) Supply() string { return n.supply }

// Exit returns the exit node id.
func (n *Network) Exit() string { return n.exit }

// Fluid returns the network fluid.
func (n *Network) Fluid() fluid.Fluid { return n.fluid }

// Schedule returns the pipe schedule.
func (n *Network) Schedule() *schedule.Schedule { return n.schedule }

// Node returns the node with id.
func (n *Network) Node(id string) (*Node, bool) {
	nd, ok := n.nodes[id]
	return nd, ok
}

// Nodes returns all nodes in first-reference order.
func (n *Network) Nodes() []*Node {
	out := make([]*Node, len(n.nodeOrder))
	copy(out, n.nodeOrder)
	return out
}

// Segment returns the segment with id.
func (n *Network) Segment(id string) (*Segment, error) {
	s, ok := n.segments[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSegmentNotFound, id)
	}
	return s, nil
}

// Segments returns all segments in insertion order.
func (n *Network) Segments() []*Segment {
	out := make([]*Segment, len(n.segOrder))
	copy(out, n.segOrder)
	return out
}

// NumSegments returns the number of segments added so far. Segments are
// never removed, so the count changes exactly when the topology does.
func (n *Network) NumSegments() int { return len(n.segOrder) }

// Loop returns the loop with id.
func (n *Network) Loop(id string) (*Loop, bool) {
	l, ok := n.loops[id]
	return l, ok
}

// Loops returns all loops in first-reference order.
func (n *Network) Loops() []*Loop {
	out := make([]*Loop, len(n.loopOrder))
	copy(out, n.loopOrder)
	return out
}

// FlowRate returns the signed real flow in the segments leaving the supply node.
func (n *Network) FlowRate() units.FlowRate {
	nd, ok := n.nodes[n.supply]
	if !ok {
		return 0
	}
	var q units.FlowRate
	for _, s := range nd.out {
		if s.Real() {
			q += s.SignedFlowRate()
		}
	}
	return q
}

// CheckFlowBalance verifies flow conservation at every node except the
// supply and exit nodes.
func (n *Network) CheckFlowBalance(tol float64) error {
	for _, nd := range n.nodeOrder {
		if nd.id == n.supply || nd.id == n.exit {
			continue
		}
		if d := nd.FlowImbalance(nil, nil); math.Abs(d) > tol {
			return fmt.Errorf("%w: node %q off by %g m^3/s", ErrFlowImbalance, nd.id, d)
		}
	}
	return nil
}

// Recalculate refreshes the pressure loss of every segment.
func (n *Network) Recalculate() error {
	for _, s := range n.segOrder {
		if err := s.Recalculate(); err != nil {
			return err
		}
	}
	return nil
}

// ApplyCorrections moves every looped segment's flow by the correction
// terms last computed by Loop.UpdateCorrection, then recalculates losses.
func (n *Network) ApplyCorrections() error {
	for _, s := range n.segOrder {
		s.applyCorrection()
	}
	return n.Recalculate()
}

// node returns the node with id, creating it on first reference.
// Elevation is taken from the first reference.
func (n *Network) node(id string, z units.Length) *Node {
	if nd, ok := n.nodes[id]; ok {
		return nd
	}
	nd := &Node{id: id, elevation: z}
	n.nodes[id] = nd
	n.nodeOrder = append(n.nodeOrder, nd)
	return nd
}

func (n *Network) loop(id string) *Loop {
	if l, ok := n.loops[id]; ok {
		return l
	}
	l := &Loop{id: id}
	n.loops[id] = l
	n.loopOrder = append(n.loopOrder, l)
	return l
}

func (n *Network) register(s *Segment) {
	s.net = n
	s.start.out = append(s.start.out, s)
	s.end.in = append(s.end.in, s)
	n.segments[s.id] = s
	n.segOrder = append(n.segOrder, s)
}
