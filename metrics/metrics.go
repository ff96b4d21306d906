// Package metrics records solver activity as Prometheus metrics.
//
// A Recorder owns a private registry so several sessions in one process
// never collide on metric names. All methods are safe on a nil *Recorder,
// which records nothing.
package metrics

import (
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
)

// Solve outcome labels.
const (
	StatusConverged = "converged"
	StatusFailed    = "failed"
)

// Recorder holds the pipenet metrics.
type Recorder struct {
	registry *prometheus.Registry

	SolvesTotal        *prometheus.CounterVec
	SolveIterations    *prometheus.HistogramVec
	SolveDuration      *prometheus.HistogramVec
	PathsEnumerated    prometheus.Histogram
	BalancingValveTrim prometheus.Counter
}

// NewRecorder creates a Recorder with a fresh registry.
func NewRecorder() *Recorder {
	r := &Recorder{registry: prometheus.NewRegistry()}
	f := promauto.With(r.registry)

	r.SolvesTotal = f.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipenet_solves_total",
			Help: "Total number of network solves",
		},
		[]string{"mode", "status"},
	)

	r.SolveIterations = f.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pipenet_solve_iterations",
			Help:    "Iterations used per solve",
			Buckets: []float64{1, 2, 5, 10, 20, 50, 100},
		},
		[]string{"mode"},
	)

	r.SolveDuration = f.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pipenet_solve_duration_seconds",
			Help:    "Solve duration in seconds",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1.0},
		},
		[]string{"mode"},
	)

	r.PathsEnumerated = f.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pipenet_paths_enumerated",
			Help:    "Number of flow paths found per enumeration",
			Buckets: []float64{1, 2, 5, 10, 50, 100, 1000},
		},
	)

	r.BalancingValveTrim = f.NewCounter(
		prometheus.CounterOpts{
			Name: "pipenet_balancing_valves_trimmed_total",
			Help: "Total number of balancing valve settings computed",
		},
	)

	return r
}

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// RecordSolve records one solve outcome.
func (r *Recorder) RecordSolve(mode, status string, iterations int, d time.Duration) {
	if r == nil {
		return
	}
	r.SolvesTotal.WithLabelValues(mode, status).Inc()
	r.SolveIterations.WithLabelValues(mode).Observe(float64(iterations))
	r.SolveDuration.WithLabelValues(mode).Observe(d.Seconds())
}

// RecordPaths records the size of one path enumeration.
func (r *Recorder) RecordPaths(n int) {
	if r == nil {
		return
	}
	r.PathsEnumerated.Observe(float64(n))
}

// RecordValveTrims adds n balancing valve settings.
func (r *Recorder) RecordValveTrims(n int) {
	if r == nil {
		return
	}
	r.BalancingValveTrim.Add(float64(n))
}

// WriteText writes every gathered metric family in the Prometheus text format.
func (r *Recorder) WriteText(w io.Writer) error {
	if r == nil {
		return nil
	}
	mfs, err := r.registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range mfs {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
