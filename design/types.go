package design

import (
	"fmt"
	"log/slog"

	"github.com/katalvlaran/pipenet"
	"github.com/katalvlaran/pipenet/metrics"
)

var (
	// ErrNotDesign is returned by New for an analysis-mode network.
	ErrNotDesign = fmt.Errorf("design: network is not in design mode: %w", pipenet.ErrInvalidConfiguration)

	// ErrNoPaths is returned when the network has no flow path.
	ErrNoPaths = fmt.Errorf("design: network has no flow path: %w", pipenet.ErrInvalidConfiguration)

	// ErrNoFlow is returned by HydraulicResistance when the network carries no flow.
	ErrNoFlow = fmt.Errorf("design: network flow rate is zero: %w", pipenet.ErrSingularSystem)

	// ErrInvalidBudget is returned by SpecificFrictionLoss for a non-positive path length.
	ErrInvalidBudget = fmt.Errorf("design: path length must be positive: %w", pipenet.ErrInvalidConfiguration)
)

// Setting pairs a segment id with a value. The meaning and unit of Value
// depend on the call: a pressure in Pa, a Kv value or an authority.
type Setting struct {
	Segment string
	Value   float64
}

// Options configures a Designer.
type Options struct {
	Logger   *slog.Logger
	Recorder *metrics.Recorder
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns the default logger and no recorder.
func DefaultOptions() Options {
	return Options{Logger: slog.Default()}
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
