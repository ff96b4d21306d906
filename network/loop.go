package network

import (
	"fmt"
	"math"

	"github.com/katalvlaran/pipenet"
	"github.com/katalvlaran/pipenet/units"
)

// ErrSingularLoop is returned when a loop's correction denominator is zero.
var ErrSingularLoop = fmt.Errorf("network: loop correction denominator is zero: %w", pipenet.ErrSingularSystem)

// Loop is a closed circuit of segments.
type Loop struct {
	id         string
	members    []*Segment
	correction float64
}

// ID returns the loop id.
func (l *Loop) ID() string { return l.id }

// Segments returns the member segments in insertion order.
func (l *Loop) Segments() []*Segment {
	out := make([]*Segment, len(l.members))
	copy(out, l.members)
	return out
}

// Correction returns the last computed correction term in m³/s.
func (l *Loop) Correction() float64 { return l.correction }

// PressureDrop returns the net signed pressure drop around the loop.
func (l *Loop) PressureDrop() units.Pressure {
	var sum units.Pressure
	for _, s := range l.members {
		sum += s.LoopPressureDrop(l)
	}
	return sum
}

// UpdateCorrection computes and stores Δ = Σ signed Δp / Σ ∂Δp/∂V.
// Pseudo segments contribute to the numerator only.
func (l *Loop) UpdateCorrection() (float64, error) {
	den := 0.0
	for _, s := range l.members {
		den += s.Gradient()
	}
	if den == 0 || math.IsNaN(den) || math.IsInf(den, 0) {
		return 0, fmt.Errorf("%w: loop %q", ErrSingularLoop, l.id)
	}
	l.correction = float64(l.PressureDrop()) / den
	return l.correction, nil
}
