package metrics_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pipenet/metrics"
)

func TestRecordSolve(t *testing.T) {
	r := metrics.NewRecorder()
	r.RecordSolve("analysis", metrics.StatusConverged, 7, 3*time.Millisecond)
	r.RecordSolve("analysis", metrics.StatusFailed, 30, time.Millisecond)
	r.RecordSolve("analysis", metrics.StatusConverged, 4, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.SolvesTotal.WithLabelValues("analysis", metrics.StatusConverged)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.SolvesTotal.WithLabelValues("analysis", metrics.StatusFailed)))
	assert.Equal(t, 1, testutil.CollectAndCount(r.SolveIterations))
}

func TestRecordPathsAndTrims(t *testing.T) {
	r := metrics.NewRecorder()
	r.RecordPaths(3)
	r.RecordValveTrims(3)
	r.RecordValveTrims(2)

	assert.Equal(t, 5.0, testutil.ToFloat64(r.BalancingValveTrim))
	assert.Equal(t, 1, testutil.CollectAndCount(r.PathsEnumerated))

	var buf bytes.Buffer
	require.NoError(t, r.WriteText(&buf))
	assert.Contains(t, buf.String(), "pipenet_balancing_valves_trimmed_total 5")
	assert.Contains(t, buf.String(), "pipenet_paths_enumerated_count 1")
}

func TestRecordersAreIndependent(t *testing.T) {
	a, b := metrics.NewRecorder(), metrics.NewRecorder()
	a.RecordValveTrims(1)
	assert.Equal(t, 0.0, testutil.ToFloat64(b.BalancingValveTrim))
	assert.NotSame(t, a.Registry(), b.Registry())
}

func TestNilRecorder(t *testing.T) {
	var r *metrics.Recorder
	assert.NotPanics(t, func() {
		r.RecordSolve("design", metrics.StatusConverged, 1, time.Second)
		r.RecordPaths(1)
		r.RecordValveTrims(1)
	})
	assert.Nil(t, r.Registry())
	assert.NoError(t, r.WriteText(&bytes.Buffer{}))
}
