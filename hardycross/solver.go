// Package hardycross solves looped analysis networks with the Hardy-Cross
// method.
//
// Each iteration computes, for every loop, the correction
//
//	Δ = Σ signed Δp / Σ ∂Δp/∂V
//
// where a pipe contributes 2Δp/V and a pump 2Δp/V − (a1 + 2·a2·V) to the
// denominator, and a pseudo segment contributes its fixed drop to the
// numerator only. The corrections are then applied to every non-pseudo
// segment (a shared segment receives the difference of its two loops'
// terms) and all drops are recomputed.
//
// Lifecycle:
//
//	Configured -> Iterating -> Converged
//	                        \-> Failed
//
// Errors:
//
//   - ErrNotAnalysis, ErrNoLoops from NewSolver.
//   - network.ErrSingularLoop (pipenet.ErrSingularSystem) on a zero denominator.
//   - ErrNotConverged (pipenet.ErrConvergenceFailure) when the cap is exceeded.
//   - context errors when the solve context is cancelled.
package hardycross

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/pipenet/metrics"
	"github.com/katalvlaran/pipenet/network"
	"github.com/katalvlaran/pipenet/units"
)

const tracerName = "github.com/katalvlaran/pipenet/hardycross"

// Result summarises a finished solve.
type Result struct {
	Iterations int
	Residual   units.Pressure
	FlowRate   units.FlowRate
	Duration   time.Duration
}

// Solver drives one analysis network to loop balance. It mutates the
// network it was built with and is not safe for concurrent use.
type Solver struct {
	net   *network.Network
	opts  Options
	state State
	iter  int
}

// NewSolver validates net and returns a solver in the Configured state.
func NewSolver(net *network.Network, opts ...Option) (*Solver, error) {
	if net == nil || net.Mode() != network.Analysis {
		return nil, ErrNotAnalysis
	}
	if len(net.Loops()) == 0 {
		return nil, ErrNoLoops
	}
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	return &Solver{net: net, opts: o, state: Configured}, nil
}

// State returns the lifecycle state.
func (s *Solver) State() State { return s.state }

// Iterations returns the number of corrections applied.
func (s *Solver) Iterations() int { return s.iter }

// Residual returns the largest |Σ Δp| over all loops.
func (s *Solver) Residual() units.Pressure {
	worst := 0.0
	for _, l := range s.net.Loops() {
		worst = math.Max(worst, math.Abs(float64(l.PressureDrop())))
	}
	return units.Pressure(worst)
}

// Converged reports whether every loop residual is below tolerance.
func (s *Solver) Converged() bool {
	return float64(s.Residual()) < s.opts.Tolerance
}

// Step applies one round of loop corrections.
func (s *Solver) Step() error {
	if s.state == Converged || s.state == Failed {
		return ErrFinished
	}
	s.state = Iterating

	// 1) All corrections from the same network state
	for _, l := range s.net.Loops() {
		if _, err := l.UpdateCorrection(); err != nil {
			s.state = Failed
			return err
		}
	}

	// 2) Move flows and recompute drops
	if err := s.net.ApplyCorrections(); err != nil {
		s.state = Failed
		return err
	}
	s.iter++
	return nil
}

// Solve iterates until every loop residual is below tolerance. At most
// MaxIterations+1 corrections are applied; if the network is still out of
// balance the solve fails with ErrNotConverged.
func (s *Solver) Solve(ctx context.Context) (*Result, error) {
	if s.state == Converged || s.state == Failed {
		return nil, ErrFinished
	}
	ctx, span := otel.Tracer(tracerName).Start(ctx, "hardycross.Solve",
		trace.WithAttributes(
			attribute.String("pipenet.network", s.net.ID()),
			attribute.Int("pipenet.loops", len(s.net.Loops())),
		))
	defer span.End()

	start := time.Now()
	res, err := s.run(ctx)
	elapsed := time.Since(start)

	span.SetAttributes(attribute.Int("pipenet.iterations", s.iter))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.opts.Recorder.RecordSolve(network.Analysis.String(), metrics.StatusFailed, s.iter, elapsed)
		s.opts.Logger.Warn("hardycross solve failed",
			"network", s.net.ID(), "iterations", s.iter, "residual_pa", float64(s.Residual()), "error", err)
		return nil, err
	}
	res.Duration = elapsed
	s.opts.Recorder.RecordSolve(network.Analysis.String(), metrics.StatusConverged, s.iter, elapsed)
	s.opts.Logger.Info("hardycross solve converged",
		"network", s.net.ID(), "iterations", res.Iterations, "residual_pa", float64(res.Residual))
	return res, nil
}

func (s *Solver) run(ctx context.Context) (*Result, error) {
	for i := 0; ; i++ {
		if err := ctx.Err(); err != nil {
			s.state = Failed
			return nil, err
		}
		if i > s.opts.MaxIterations {
			s.state = Failed
			return nil, fmt.Errorf("%w: %d iterations, residual %g Pa", ErrNotConverged, s.iter, float64(s.Residual()))
		}
		if err := s.Step(); err != nil {
			return nil, err
		}
		residual := s.Residual()
		s.opts.Logger.Debug("hardycross iteration", "iteration", s.iter, "residual_pa", float64(residual))
		if float64(residual) < s.opts.Tolerance {
			s.state = Converged
			return &Result{Iterations: s.iter, Residual: residual, FlowRate: s.net.FlowRate()}, nil
		}
	}
}
