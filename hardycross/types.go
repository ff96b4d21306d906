package hardycross

import (
	"fmt"
	"log/slog"

	"github.com/katalvlaran/pipenet"
	"github.com/katalvlaran/pipenet/metrics"
)

var (
	// ErrNotAnalysis is returned by NewSolver for a design-mode network.
	ErrNotAnalysis = fmt.Errorf("hardycross: network is not in analysis mode: %w", pipenet.ErrInvalidConfiguration)

	// ErrNoLoops is returned by NewSolver for a network without loops.
	ErrNoLoops = fmt.Errorf("hardycross: network has no loops: %w", pipenet.ErrInvalidConfiguration)

	// ErrNotConverged is returned when the iteration cap is exceeded.
	ErrNotConverged = fmt.Errorf("hardycross: loop residuals above tolerance: %w", pipenet.ErrConvergenceFailure)

	// ErrFinished is returned when Step or Solve is called after the solver
	// has converged or failed.
	ErrFinished = fmt.Errorf("hardycross: solver already finished: %w", pipenet.ErrInvalidConfiguration)
)

// State is the solver lifecycle state.
type State int

const (
	// Configured: built, no correction applied yet.
	Configured State = iota
	// Iterating: at least one correction applied, not yet converged.
	Iterating
	// Converged: every loop residual is below tolerance.
	Converged
	// Failed: cap exceeded, singular system or cancelled.
	Failed
)

func (s State) String() string {
	switch s {
	case Configured:
		return "configured"
	case Iterating:
		return "iterating"
	case Converged:
		return "converged"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Options configures a Solver.
//   - Tolerance: largest accepted |Σ Δp| per loop in Pa (default 1e-3).
//   - MaxIterations: iteration cap; a solve fails once more than
//     MaxIterations+1 corrections would be needed (default 30).
//   - Logger: destination for iteration and outcome logs (default slog.Default()).
//   - Recorder: optional metrics sink.
type Options struct {
	Tolerance     float64
	MaxIterations int
	Logger        *slog.Logger
	Recorder      *metrics.Recorder
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns tolerance 1e-3 Pa, cap 30, the default logger and no recorder.
func DefaultOptions() Options {
	return Options{Tolerance: 1e-3, MaxIterations: 30, Logger: slog.Default()}
}

// WithTolerance sets the loop residual tolerance in Pa. Non-positive values are ignored.
func WithTolerance(tol float64) Option {
	return func(o *Options) {
		if tol > 0 {
			o.Tolerance = tol
		}
	}
}

// WithMaxIterations sets the iteration cap. Negative values are ignored.
func WithMaxIterations(n int) Option {
	return func(o *Options) {
		if n >= 0 {
			o.MaxIterations = n
		}
	}
}

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r *metrics.Recorder) Option {
	return func(o *Options) { o.Recorder = r }
}
