package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/katalvlaran/pipenet/config"
	"github.com/katalvlaran/pipenet/curve"
	"github.com/katalvlaran/pipenet/metrics"
	"github.com/katalvlaran/pipenet/session"
	"github.com/katalvlaran/pipenet/units"
)

// load reads the session file and builds a session with its network and
// fittings configured.
func load(flags *globalFlags) (*session.Session, *metrics.Recorder, error) {
	cfg, err := config.Load(flags.config)
	if err != nil {
		return nil, nil, err
	}
	if flags.logLevel != "" {
		cfg.LogLevel = flags.logLevel
		if err := cfg.Validate(); err != nil {
			return nil, nil, err
		}
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()}))
	slog.SetDefault(logger)

	var rec *metrics.Recorder
	if flags.metrics {
		rec = metrics.NewRecorder()
	}
	s, err := session.New(cfg, session.WithLogger(logger), session.WithRecorder(rec))
	if err != nil {
		return nil, nil, err
	}
	if err := withFile(cfg.Tables.Network, s.ConfigureNetwork); err != nil {
		return nil, nil, err
	}
	if cfg.Tables.Fittings != "" {
		if err := withFile(cfg.Tables.Fittings, s.AddFittings); err != nil {
			return nil, nil, err
		}
	}
	return s, rec, nil
}

func withFile(path string, fn func(io.Reader) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening table: %w", err)
	}
	defer f.Close()
	return fn(f)
}

func dumpMetrics(rec *metrics.Recorder) {
	if rec == nil {
		return
	}
	if err := rec.WriteText(os.Stderr); err != nil {
		slog.Warn("writing metrics", "error", err)
	}
}

func runAnalyze(ctx context.Context, w io.Writer, flags *globalFlags) error {
	s, rec, err := load(flags)
	if err != nil {
		return err
	}
	defer dumpMetrics(rec)

	res, err := s.Solve(ctx)
	if err != nil {
		return err
	}
	us := s.Units()
	q, err := res.FlowRate.In(us.Unit(units.KindFlowRate))
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "converged after %d iterations, network flow %.4g %s\n\n",
		res.Iterations, q, us.Unit(units.KindFlowRate))

	segs, err := s.SegmentRecords()
	if err != nil {
		return err
	}
	ps, err := s.PathRecords()
	if err != nil {
		return err
	}
	fittings, err := s.FittingRecords()
	if err != nil {
		return err
	}
	return printAll(w,
		func(tw io.Writer) { printSegments(tw, us, segs) },
		func(tw io.Writer) { printPaths(tw, us, ps) },
		func(tw io.Writer) { printFittings(tw, us, fittings) },
	)
}

func runDesign(ctx context.Context, w io.Writer, flags *globalFlags, curvePoints int) error {
	s, rec, err := load(flags)
	if err != nil {
		return err
	}
	defer dumpMetrics(rec)

	sum, err := s.Design(ctx)
	if err != nil {
		return err
	}
	us := s.Units()
	fmt.Fprintf(w, "critical path %s: feed %.4g %s at %.4g %s\n\n",
		sum.CriticalPath, sum.FeedPressure, us.Unit(units.KindPressure), sum.FlowRate, us.Unit(units.KindFlowRate))

	segs, err := s.SegmentRecords()
	if err != nil {
		return err
	}
	ps, err := s.PathRecords()
	if err != nil {
		return err
	}
	fittings, err := s.FittingRecords()
	if err != nil {
		return err
	}
	bvs, err := s.BalancingValveRecords()
	if err != nil {
		return err
	}
	cvs, err := s.ControlValveRecords()
	if err != nil {
		return err
	}
	sections := []func(io.Writer){
		func(tw io.Writer) { printSegments(tw, us, segs) },
		func(tw io.Writer) { printPaths(tw, us, ps) },
		func(tw io.Writer) { printFittings(tw, us, fittings) },
		func(tw io.Writer) { printBalancingValves(tw, us, bvs) },
		func(tw io.Writer) { printControlValves(tw, us, cvs) },
	}
	if curvePoints > 0 {
		pts, err := s.SystemCurveRecords(curvePoints)
		if err != nil {
			return err
		}
		sections = append(sections, func(tw io.Writer) { printCurve(tw, us, pts) })
	}
	return printAll(w, sections...)
}

func runFitPump(w io.Writer, flags *globalFlags, path string) error {
	cfg, err := config.Load(flags.config)
	if err != nil {
		return err
	}
	us, err := cfg.UnitSystem()
	if err != nil {
		return err
	}
	var pts []curve.Point
	err = withFile(path, func(r io.Reader) error {
		pts, err = config.ReadCurveTable(r, us)
		return err
	})
	if err != nil {
		return err
	}
	c, err := curve.FitPumpCurve(pts)
	if err != nil {
		return err
	}

	// Report in the configured units: Δp[pu] = a0 + a1·V[qu] + a2·V[qu]².
	pu, qu := us.Unit(units.KindPressure), us.Unit(units.KindFlowRate)
	pScale, err := units.Pressure(1).In(pu)
	if err != nil {
		return err
	}
	qScale, err := units.FlowRate(1).In(qu)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "a0 = %.6g %s\n", c.A0*pScale, pu)
	fmt.Fprintf(w, "a1 = %.6g %s/(%s)\n", c.A1*pScale/qScale, pu, qu)
	fmt.Fprintf(w, "a2 = %.6g %s/(%s)^2\n", c.A2*pScale/(qScale*qScale), pu, qu)
	return nil
}
