// Package config loads a pipenet session: a YAML file naming the problem
// (mode, nodes, fluid, schedule, units, solver settings, valve settings)
// and the CSV tables describing the network and its fittings.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/pipenet"
	"github.com/katalvlaran/pipenet/fluid"
	"github.com/katalvlaran/pipenet/hydraulics"
	"github.com/katalvlaran/pipenet/network"
	"github.com/katalvlaran/pipenet/schedule"
	"github.com/katalvlaran/pipenet/units"
)

// ErrInvalidConfig is returned when the session file fails validation.
var ErrInvalidConfig = fmt.Errorf("config: invalid session file: %w", pipenet.ErrInvalidConfiguration)

// validate is shared by all Config values.
var validate = validator.New()

// Config is the session file.
type Config struct {
	Mode        string            `yaml:"mode" validate:"required,oneof=analysis design"`
	Supply      string            `yaml:"supply" validate:"required"`
	Exit        string            `yaml:"exit" validate:"required"`
	Fluid       string            `yaml:"fluid" validate:"required,oneof=water air"`
	Temperature float64           `yaml:"temperature" validate:"gte=-50,lte=400"`
	Schedule    string            `yaml:"schedule" validate:"required"`
	Units       map[string]string `yaml:"units" validate:"omitempty,dive,keys,oneof=length diameter flow_rate pressure velocity,endkeys,required"`
	LogLevel    string            `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`
	Solver      SolverConfig      `yaml:"solver"`
	Tables      TablesConfig      `yaml:"tables"`
	Design      DesignConfig      `yaml:"design"`
}

// SolverConfig holds the numeric settings. Tolerance is the loop residual
// in Pa, whatever the configured pressure unit; zero keeps the solver
// default of 1e-3 Pa.
type SolverConfig struct {
	Tolerance     float64 `yaml:"tolerance" validate:"gte=0"`
	MaxIterations int     `yaml:"max_iterations" validate:"gte=0"`
	FrictionModel string  `yaml:"friction_model" validate:"omitempty,oneof=haaland serghide"`
}

// TablesConfig names the CSV inputs. Relative paths are resolved against
// the directory of the session file.
type TablesConfig struct {
	Network  string `yaml:"network" validate:"required"`
	Fittings string `yaml:"fittings"`
}

// DesignConfig lists the valves a design session mounts.
type DesignConfig struct {
	BalancingValves []BalancingValveConfig `yaml:"balancing_valves" validate:"dive"`
	ControlValves   []ControlValveConfig   `yaml:"control_valves" validate:"dive"`
}

// BalancingValveConfig: DP100 in the configured pressure unit; Kvs, when
// positive, replaces the preliminary rating.
type BalancingValveConfig struct {
	Segment string  `yaml:"segment" validate:"required"`
	DP100   float64 `yaml:"dp100" validate:"gt=0"`
	Kvs     float64 `yaml:"kvs" validate:"gte=0"`
}

// ControlValveConfig: Authority is the target authority; Kvs, when
// positive, replaces the preliminary rating.
type ControlValveConfig struct {
	Segment   string  `yaml:"segment" validate:"required"`
	Authority float64 `yaml:"authority" validate:"gt=0,lt=1"`
	Kvs       float64 `yaml:"kvs" validate:"gte=0"`
}

// Default returns a config with the defaults applied and no tables.
func Default() Config {
	return Config{
		Fluid:       "water",
		Temperature: 10,
		Schedule:    schedule.NameSchedule40,
		LogLevel:    "info",
		Solver:      SolverConfig{MaxIterations: 30, FrictionModel: "haaland"},
	}
}

// Load reads and validates the session file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading session file: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}
	cfg.resolve(filepath.Dir(path))
	return cfg, nil
}

// Parse decodes and validates a session file. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("%w: parsing YAML: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the struct tags.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// NetworkMode returns the configured mode.
func (c *Config) NetworkMode() network.Mode {
	if c.Mode == "design" {
		return network.Design
	}
	return network.Analysis
}

// UnitSystem returns the default units overridden by the units section.
func (c *Config) UnitSystem() (units.System, error) {
	return units.NewSystem(c.Units)
}

// ResolveFluid returns the configured fluid at the configured temperature.
func (c *Config) ResolveFluid() (fluid.Fluid, error) {
	return fluid.Lookup(c.Fluid, c.Temperature)
}

// ResolveSchedule returns the configured pipe schedule.
func (c *Config) ResolveSchedule() (*schedule.Schedule, error) {
	return schedule.Get(c.Schedule)
}

// HydraulicsOptions returns the pipe sizing options.
func (c *Config) HydraulicsOptions() ([]hydraulics.Option, error) {
	if c.Solver.FrictionModel == "" {
		return nil, nil
	}
	m, err := hydraulics.ParseFrictionModel(c.Solver.FrictionModel)
	if err != nil {
		return nil, err
	}
	return []hydraulics.Option{hydraulics.WithFrictionModel(m)}, nil
}

// Level returns the slog level named by LogLevel, Info when unset.
func (c *Config) Level() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (c *Config) resolve(dir string) {
	for _, p := range []*string{&c.Tables.Network, &c.Tables.Fittings} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}
}

// formatValidationError reports the first failed field.
func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	e := verrs[0]
	field := strings.TrimPrefix(e.Namespace(), "Config.")
	if e.Param() != "" {
		return fmt.Errorf("%w: %s: failed %q (%s)", ErrInvalidConfig, field, e.Tag(), e.Param())
	}
	return fmt.Errorf("%w: %s: failed %q", ErrInvalidConfig, field, e.Tag())
}
