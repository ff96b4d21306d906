// Package session ties a loaded configuration to one network and runs the
// analysis or design workflow on it.
//
// A Session owns its unit system, fluid, pipe schedule and network; there
// is no package-level state, so independent sessions may run side by side.
//
//	cfg, _ := config.Load("pipenet.yaml")
//	s, _ := session.New(cfg, session.WithLogger(logger))
//	_ = s.ConfigureNetwork(networkCSV)
//	_ = s.AddFittings(fittingsCSV)
//	res, err := s.Solve(ctx)        // analysis
//	sum, err := s.Design(ctx)       // design
//	rows, err := s.SegmentRecords()
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/pipenet"
	"github.com/katalvlaran/pipenet/config"
	"github.com/katalvlaran/pipenet/design"
	"github.com/katalvlaran/pipenet/fluid"
	"github.com/katalvlaran/pipenet/hardycross"
	"github.com/katalvlaran/pipenet/metrics"
	"github.com/katalvlaran/pipenet/network"
	"github.com/katalvlaran/pipenet/paths"
	"github.com/katalvlaran/pipenet/schedule"
	"github.com/katalvlaran/pipenet/units"
)

const tracerName = "github.com/katalvlaran/pipenet/session"

var (
	// ErrNoNetwork is returned when a workflow step runs before ConfigureNetwork.
	ErrNoNetwork = fmt.Errorf("session: network not configured: %w", pipenet.ErrInvalidConfiguration)

	// ErrNotDesigned is returned when a design report is requested before Design.
	ErrNotDesigned = fmt.Errorf("session: network not designed: %w", pipenet.ErrInvalidConfiguration)

	// ErrConfigured is returned by a second call to ConfigureNetwork.
	ErrConfigured = fmt.Errorf("session: network already configured: %w", pipenet.ErrInvalidConfiguration)
)

// Option configures a Session.
type Option func(*Session)

// WithID overrides the generated session id.
func WithID(id string) Option {
	return func(s *Session) {
		if id != "" {
			s.id = id
		}
	}
}

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRecorder sets the metrics recorder shared by the solver and designer.
func WithRecorder(r *metrics.Recorder) Option {
	return func(s *Session) { s.recorder = r }
}

// Session is one configured problem.
type Session struct {
	id       string
	cfg      *config.Config
	units    units.System
	fluid    fluid.Fluid
	schedule *schedule.Schedule
	logger   *slog.Logger
	recorder *metrics.Recorder

	net      *network.Network
	designer *design.Designer
	paths    []network.FlowPath
}

// New resolves the units, fluid and schedule named by cfg.
func New(cfg *config.Config, opts ...Option) (*Session, error) {
	if cfg == nil {
		return nil, fmt.Errorf("session: nil config: %w", pipenet.ErrInvalidConfiguration)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	us, err := cfg.UnitSystem()
	if err != nil {
		return nil, err
	}
	fl, err := cfg.ResolveFluid()
	if err != nil {
		return nil, err
	}
	sch, err := cfg.ResolveSchedule()
	if err != nil {
		return nil, err
	}
	s := &Session{
		id:       uuid.NewString(),
		cfg:      cfg,
		units:    us,
		fluid:    fl,
		schedule: sch,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("session", s.id)
	return s, nil
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// Config returns the session configuration.
func (s *Session) Config() *config.Config { return s.cfg }

// Units returns the session unit system.
func (s *Session) Units() units.System { return s.units }

// Network returns the configured network or nil.
func (s *Session) Network() *network.Network { return s.net }

// ConfigureNetwork builds the network from the analysis or design table,
// depending on the configured mode.
func (s *Session) ConfigureNetwork(r io.Reader) error {
	if s.net != nil {
		return ErrConfigured
	}
	hopts, err := s.cfg.HydraulicsOptions()
	if err != nil {
		return err
	}
	net, err := network.New(s.cfg.NetworkMode(), s.cfg.Supply, s.cfg.Exit, s.fluid, s.schedule,
		network.WithID(s.id), network.WithHydraulics(hopts...))
	if err != nil {
		return err
	}

	switch net.Mode() {
	case network.Analysis:
		specs, err := config.ReadAnalysisTable(r, s.units)
		if err != nil {
			return err
		}
		for _, spec := range specs {
			if err := net.AddAnalysisSegment(spec); err != nil {
				return err
			}
		}
	case network.Design:
		specs, err := config.ReadDesignTable(r, s.units)
		if err != nil {
			return err
		}
		for _, spec := range specs {
			if err := net.AddDesignSegment(spec); err != nil {
				return err
			}
		}
	}

	if off, err := paths.CheckConnectivity(net); err != nil {
		s.logger.Warn("network has segments outside every flow path", "segments", off, "error", err)
	}

	s.net = net
	s.logger.Info("network configured",
		"mode", net.Mode().String(), "segments", len(net.Segments()), "nodes", len(net.Nodes()), "loops", len(net.Loops()))
	return nil
}

// AddFittings mounts every fitting listed in the fittings table.
func (s *Session) AddFittings(r io.Reader) error {
	if s.net == nil {
		return ErrNoNetwork
	}
	rows, err := config.ReadFittingsTable(r)
	if err != nil {
		return err
	}
	for _, row := range rows {
		if _, err := s.net.AddFitting(row.Segment, row.ID, row.Type, row.Coefficients); err != nil {
			return err
		}
	}
	s.logger.Debug("fittings added", "count", len(rows))
	return nil
}

// Solve runs the Hardy-Cross solver on an analysis network and then
// enumerates its flow paths.
func (s *Session) Solve(ctx context.Context) (*hardycross.Result, error) {
	if s.net == nil {
		return nil, ErrNoNetwork
	}
	opts := []hardycross.Option{
		hardycross.WithMaxIterations(s.cfg.Solver.MaxIterations),
		hardycross.WithLogger(s.logger),
		hardycross.WithRecorder(s.recorder),
	}
	if s.cfg.Solver.Tolerance > 0 {
		opts = append(opts, hardycross.WithTolerance(s.cfg.Solver.Tolerance))
	}
	solver, err := hardycross.NewSolver(s.net, opts...)
	if err != nil {
		return nil, err
	}
	res, err := solver.Solve(ctx)
	if err != nil {
		return nil, err
	}
	ps, err := paths.Enumerate(s.net, paths.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	s.recorder.RecordPaths(len(ps))
	s.paths = ps
	return res, nil
}

// Summary describes a balanced design in the configured units.
type Summary struct {
	CriticalPath        string
	FeedPressure        float64
	FlowRate            float64
	HydraulicResistance float64 // SI, Pa/(m³/s)²
}

// Design mounts the configured valves and balances the network.
//
// Balancing valves take their full-open drop from the config, control
// valves their target authority. A positive Kvs in the config replaces the
// preliminary rating before balancing.
func (s *Session) Design(ctx context.Context) (sum *Summary, err error) {
	if s.net == nil {
		return nil, ErrNoNetwork
	}
	_, span := otel.Tracer(tracerName).Start(ctx, "session.Design",
		trace.WithAttributes(attribute.String("pipenet.network", s.net.ID())))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	d, err := design.New(s.net, design.WithLogger(s.logger), design.WithRecorder(s.recorder))
	if err != nil {
		return nil, err
	}
	if err := s.mountValves(d); err != nil {
		return nil, err
	}
	if _, err := d.Balance(); err != nil {
		return nil, err
	}
	ps, err := d.Paths()
	if err != nil {
		return nil, err
	}
	cp, err := d.CriticalPath()
	if err != nil {
		return nil, err
	}
	s.designer, s.paths = d, ps

	c := s.converter()
	sum = &Summary{
		CriticalPath: cp.String(),
		FeedPressure: c.pressure(cp.StaticHead()),
		FlowRate:     c.flowRate(d.FlowRate()),
	}
	r, err := d.HydraulicResistance()
	switch {
	case err == nil:
		sum.HydraulicResistance = r
	case !errors.Is(err, design.ErrNoFlow):
		return nil, err
	}
	if c.err != nil {
		return nil, c.err
	}
	span.SetAttributes(attribute.String("pipenet.critical_path", sum.CriticalPath))
	return sum, nil
}

func (s *Session) mountValves(d *design.Designer) error {
	var (
		dp100, bvKvs []design.Setting
		auth, cvKvs  []design.Setting
	)
	for _, v := range s.cfg.Design.BalancingValves {
		dp, err := s.units.Pressure(v.DP100)
		if err != nil {
			return err
		}
		dp100 = append(dp100, design.Setting{Segment: v.Segment, Value: float64(dp)})
		if v.Kvs > 0 {
			bvKvs = append(bvKvs, design.Setting{Segment: v.Segment, Value: v.Kvs})
		}
	}
	for _, v := range s.cfg.Design.ControlValves {
		auth = append(auth, design.Setting{Segment: v.Segment, Value: v.Authority})
		if v.Kvs > 0 {
			cvKvs = append(cvKvs, design.Setting{Segment: v.Segment, Value: v.Kvs})
		}
	}

	if _, err := d.AddBalancingValves(dp100); err != nil {
		return err
	}
	if err := d.InitBalancingValves(bvKvs); err != nil {
		return err
	}
	if _, err := d.AddControlValves(auth); err != nil {
		return err
	}
	return d.SetControlValves(cvKvs)
}
