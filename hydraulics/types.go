package hydraulics

import (
	"fmt"

	"github.com/katalvlaran/pipenet"
)

var (
	// ErrDiameterNotConverged is returned when the diameter fixed point hits the cap.
	ErrDiameterNotConverged = fmt.Errorf("hydraulics: diameter iteration: %w", pipenet.ErrConvergenceFailure)

	// ErrFlowRateNotConverged is returned when the flow-rate fixed point hits the cap.
	ErrFlowRateNotConverged = fmt.Errorf("hydraulics: flow rate iteration: %w", pipenet.ErrConvergenceFailure)

	// ErrUnderdetermined is returned when a pipe is not given exactly two of
	// flow rate, nominal diameter and friction loss.
	ErrUnderdetermined = fmt.Errorf("hydraulics: need exactly two of flow rate, diameter, friction loss: %w",
		pipenet.ErrInvalidConfiguration)

	// ErrNoResistanceData is returned when a fitting has no usable coefficient set.
	ErrNoResistanceData = fmt.Errorf("hydraulics: no usable resistance coefficients: %w", pipenet.ErrInvalidConfiguration)

	// ErrBadAuthority is returned for a control-valve authority outside (0, 1).
	ErrBadAuthority = fmt.Errorf("hydraulics: valve authority must lie in (0, 1): %w", pipenet.ErrInvalidConfiguration)

	// ErrInvalidValue is returned for negative or non-finite physical inputs.
	ErrInvalidValue = fmt.Errorf("hydraulics: invalid value: %w", pipenet.ErrInvalidConfiguration)

	// ErrZeroDivision is returned when a coefficient, diameter or pressure
	// used as a divisor is zero.
	ErrZeroDivision = fmt.Errorf("hydraulics: division by zero: %w", pipenet.ErrSingularSystem)
)

// FrictionModel selects the Darcy friction factor correlation.
type FrictionModel int

const (
	// Haaland is the explicit Haaland approximation of Colebrook-White.
	Haaland FrictionModel = iota
	// Serghide is Serghide's three-step Aitken extrapolation, closer to Colebrook-White.
	Serghide
)

func (m FrictionModel) String() string {
	switch m {
	case Haaland:
		return "haaland"
	case Serghide:
		return "serghide"
	default:
		return fmt.Sprintf("FrictionModel(%d)", int(m))
	}
}

// ParseFrictionModel maps "haaland" or "serghide" to a FrictionModel.
func ParseFrictionModel(s string) (FrictionModel, error) {
	switch s {
	case "", "haaland":
		return Haaland, nil
	case "serghide":
		return Serghide, nil
	default:
		return 0, fmt.Errorf("hydraulics: unknown friction model %q: %w", s, pipenet.ErrInvalidConfiguration)
	}
}

// Options configures the iterative pipe solves.
//   - Model: friction factor correlation (default Haaland).
//   - Tolerance: absolute change in friction factor that ends the iteration (default 1e-5).
//   - MaxIterations: iteration cap (default 30).
type Options struct {
	Model         FrictionModel
	Tolerance     float64
	MaxIterations int
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns Haaland, 1e-5, 30.
func DefaultOptions() Options {
	return Options{Model: Haaland, Tolerance: 1e-5, MaxIterations: 30}
}

// WithFrictionModel selects the friction factor correlation.
func WithFrictionModel(m FrictionModel) Option {
	return func(o *Options) { o.Model = m }
}

// WithTolerance sets the friction-factor convergence tolerance. Non-positive values are ignored.
func WithTolerance(tol float64) Option {
	return func(o *Options) {
		if tol > 0 {
			o.Tolerance = tol
		}
	}
}

// WithMaxIterations sets the iteration cap. Non-positive values are ignored.
func WithMaxIterations(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.MaxIterations = n
		}
	}
}

// resolve applies opts over the defaults.
func resolve(opts []Option) Options {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	return o
}
