// Package paths enumerates every flow path of a network, from the supply
// node to the exit node.
//
// Enumeration is depth-first over outgoing segments. At a node with several
// outgoing segments the first one continues the current path; each further
// one starts a copy of the path so far plus that segment, which is appended
// to the result and fully explored before the parent path continues. The
// resulting order is therefore deterministic for a given insertion order.
//
// The graph reachable from the supply node is assumed to be acyclic; a cycle
// is not detected and leads to unbounded recursion unless MaxPaths is set.
//
// Complexity:
//
//   - Time:   O(P·L) for P paths of length at most L.
//   - Memory: O(P·L) for the result, O(L) recursion depth.
//
// Errors:
//
//   - ErrNetworkNil       if net is nil.
//   - ErrSupplyNotFound   if the supply node is not referenced by any segment.
//   - ErrExitNotFound     if the exit node is not referenced by any segment.
//   - ErrDeadEnd          if a non-exit node on a path has no outgoing segment.
//   - ErrTooManyPaths     if MaxPaths is exceeded.
//   - context errors and any error returned by OnPath.
package paths

import (
	"fmt"

	"github.com/katalvlaran/pipenet/network"
)

// walker carries state during enumeration.
type walker struct {
	exit  string
	opts  Options
	paths []network.FlowPath
}

// Enumerate returns all flow paths of net.
func Enumerate(net *network.Network, opts ...Option) ([]network.FlowPath, error) {
	// 1) Validate network
	if net == nil {
		return nil, ErrNetworkNil
	}
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	supply, ok := net.Node(net.Supply())
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSupplyNotFound, net.Supply())
	}
	if _, ok = net.Node(net.Exit()); !ok {
		return nil, fmt.Errorf("%w: %q", ErrExitNotFound, net.Exit())
	}

	// 2) Seed with the supply node's first path and walk
	w := &walker{exit: net.Exit(), opts: o}
	w.paths = append(w.paths, network.FlowPath{})
	if err := w.walk(0, supply); err != nil {
		return nil, err
	}

	// 3) Report in output order
	if o.OnPath != nil {
		for _, p := range w.paths {
			if err := o.OnPath(p); err != nil {
				return nil, fmt.Errorf("paths: OnPath hook for %q: %w", p.String(), err)
			}
		}
	}
	return w.paths, nil
}

// walk extends w.paths[idx] from node n until the exit is reached.
func (w *walker) walk(idx int, n *network.Node) error {
	for n.ID() != w.exit {
		// 1) Cancellation check
		select {
		case <-w.opts.Ctx.Done():
			return w.opts.Ctx.Err()
		default:
		}

		out := n.Outgoing()
		if len(out) == 0 {
			return fmt.Errorf("%w: %q on path %q", ErrDeadEnd, n.ID(), w.paths[idx].String())
		}

		// 2) Branch: each extra outgoing segment forks a copy of the path so far
		for _, s := range out[1:] {
			if w.opts.MaxPaths > 0 && len(w.paths) >= w.opts.MaxPaths {
				return fmt.Errorf("%w: %d", ErrTooManyPaths, w.opts.MaxPaths)
			}
			fork := make(network.FlowPath, len(w.paths[idx]), len(w.paths[idx])+1)
			copy(fork, w.paths[idx])
			w.paths = append(w.paths, append(fork, s))
			if err := w.walk(len(w.paths)-1, s.End()); err != nil {
				return err
			}
		}

		// 3) Continue along the first outgoing segment
		w.paths[idx] = append(w.paths[idx], out[0])
		n = out[0].End()
	}
	return nil
}
