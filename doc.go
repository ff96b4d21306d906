// Package pipenet computes flow distribution and pressure loss in closed or
// branched piping networks carrying a single incompressible fluid.
//
// 🚀 What is pipenet?
//
//	A small engine for hydronic and distribution networks that brings together:
//		• Component physics: Darcy-Weisbach pipes, fittings, pumps, trim valves
//		• Graph model: nodes, pipe / pump / pseudo segments, loops, flow paths
//		• Analysis: Hardy-Cross loop correction for fixed-diameter networks
//		• Design: direct sizing plus branch balancing with balancing valves
//
// Two use cases are supported:
//
//   - ANALYSIS: topology, diameters and an initial flow guess are known;
//     the Hardy-Cross solver finds the actual flow in every segment.
//   - DESIGN: target flows and partial sizing are known; missing diameters
//     or friction losses are solved directly, then branches are balanced so
//     all of them share the feed pressure of the critical path.
//
// Under the hood, everything is organized under these subpackages:
//
//	units/       typed quantities (SI storage) and unit conversion
//	fluid/       density and viscosity of water, air and fixed fluids
//	schedule/    pipe schedule catalog (nominal to inside diameter)
//	hydraulics/  pipe friction, fittings, pumps, balancing / control valves
//	network/     Node, Segment, Loop, FlowPath
//	paths/       supply-to-exit flow path enumeration
//	hardycross/  Hardy-Cross analysis solver
//	design/      critical path, feed pressure, branch balancing
//	curve/       pump curve fit and system curve
//	config/      YAML session file and CSV network tables
//	session/     per-caller session object and result records
//	metrics/     Prometheus solver metrics
//	cmd/pipenet  command line front end
//
// Quick ASCII example (two parallel branches fed by a pump):
//
//	    n0 ──P──▶ n1 ──s1──▶ n2 ══sA══▶ n3 ──s3──▶ n0
//	                           ╚══sB══▶
//
// Every error returned by the engine wraps one of ErrInvalidConfiguration,
// ErrSingularSystem or ErrConvergenceFailure, so callers can classify
// failures with errors.Is.
package pipenet
