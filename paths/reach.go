package paths

import (
	"fmt"

	"github.com/katalvlaran/pipenet"
	"github.com/katalvlaran/pipenet/network"
)

// ErrUnreachable indicates segments that lie on no route from the supply
// node to the exit node.
var ErrUnreachable = fmt.Errorf("paths: segments off every supply-to-exit route: %w", pipenet.ErrInvalidConfiguration)

// ErrNodeNotFound is returned by Reach for an unknown origin.
var ErrNodeNotFound = fmt.Errorf("paths: node not found: %w", pipenet.ErrInvalidConfiguration)

// Direction selects which way Reach follows segments.
type Direction int

const (
	// Downstream follows segments from start to end.
	Downstream Direction = iota
	// Upstream follows segments from end to start.
	Upstream
)

// reachItem pairs a node with its hop count from the origin.
type reachItem struct {
	node  *network.Node
	depth int
}

// Reach returns the hop count of every node reachable from origin in
// breadth-first order. The origin itself has depth 0.
func Reach(net *network.Network, origin string, dir Direction) (map[string]int, error) {
	if net == nil {
		return nil, ErrNetworkNil
	}
	start, ok := net.Node(origin)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNodeNotFound, origin)
	}

	depth := map[string]int{origin: 0}
	queue := []reachItem{{node: start}}
	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		next := item.node.Outgoing()
		if dir == Upstream {
			next = item.node.Incoming()
		}
		for _, s := range next {
			nbr := s.End()
			if dir == Upstream {
				nbr = s.Start()
			}
			if _, seen := depth[nbr.ID()]; seen {
				continue
			}
			depth[nbr.ID()] = item.depth + 1
			queue = append(queue, reachItem{node: nbr, depth: item.depth + 1})
		}
	}
	return depth, nil
}

// CheckConnectivity reports, wrapped in ErrUnreachable, every segment that
// cannot be reached from the supply node or cannot reach the exit node.
// Such segments never appear in a flow path.
func CheckConnectivity(net *network.Network) ([]string, error) {
	if net == nil {
		return nil, ErrNetworkNil
	}
	if _, ok := net.Node(net.Supply()); !ok {
		return nil, fmt.Errorf("%w: %q", ErrSupplyNotFound, net.Supply())
	}
	if _, ok := net.Node(net.Exit()); !ok {
		return nil, fmt.Errorf("%w: %q", ErrExitNotFound, net.Exit())
	}
	down, err := Reach(net, net.Supply(), Downstream)
	if err != nil {
		return nil, err
	}
	up, err := Reach(net, net.Exit(), Upstream)
	if err != nil {
		return nil, err
	}

	var off []string
	for _, s := range net.Segments() {
		_, fromSupply := down[s.Start().ID()]
		_, toExit := up[s.End().ID()]
		if !fromSupply || !toExit {
			off = append(off, s.ID())
		}
	}
	if len(off) > 0 {
		return off, fmt.Errorf("%w: %v", ErrUnreachable, off)
	}
	return nil, nil
}
