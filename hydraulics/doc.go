// Package hydraulics implements the steady-state physics of network
// components: straight pipes, fittings, pumps and trim valves.
//
// Key features:
//   - Friction: Reynolds number, Darcy friction factor (Haaland, Serghide),
//     fully turbulent friction factor.
//   - Pipe: Darcy-Weisbach friction loss plus minor losses, with three solve
//     modes selected by the known pair among flow rate, diameter and friction
//     loss. The two inverse modes are fixed-point iterations on the friction
//     factor; a solved diameter snaps to the nearest schedule DN.
//   - Fittings: Kv, single-K, 3-K and equivalent-length-ratio resistance
//     models, chosen from the supplied coefficients with precedence
//     Kv > 3K > ELR > ζ.
//   - Flow and resistance coefficient conversions (Av, Kv, ζ, ELR).
//   - Pumps: quadratic curve Δp = a0 + a1·V + a2·V².
//   - Balancing and control valves: preliminary Kvs, installed Kvs, trimmed
//     Kvr and valve authority.
//   - Correlations for tees, reducers, enlargers and reduced-port valves.
//
// Options (for the iterative pipe solves):
//
//   - WithFrictionModel(m)    Haaland (default) or Serghide.
//   - WithTolerance(tol)      stop when |f_new − f_old| ≤ tol (default 1e-5).
//   - WithMaxIterations(n)    iteration cap (default 30).
//
// Errors:
//
//   - ErrDiameterNotConverged, ErrFlowRateNotConverged  wrap pipenet.ErrConvergenceFailure.
//   - ErrUnderdetermined, ErrNoResistanceData, ErrBadAuthority  wrap pipenet.ErrInvalidConfiguration.
//   - ErrZeroDivision  wraps pipenet.ErrSingularSystem.
package hydraulics
