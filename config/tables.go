package config

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/pipenet"
	"github.com/katalvlaran/pipenet/curve"
	"github.com/katalvlaran/pipenet/hydraulics"
	"github.com/katalvlaran/pipenet/network"
	"github.com/katalvlaran/pipenet/units"
)

// Column counts of the input tables.
const (
	AnalysisColumns = 12
	DesignColumns   = 9
	FittingsColumns = 8
)

// ErrMalformedRow is wrapped by every RowError.
var ErrMalformedRow = fmt.Errorf("config: malformed table row: %w", pipenet.ErrInvalidConfiguration)

// RowError locates a problem in an input table. Line is 1-based and
// counts the header.
type RowError struct {
	Table  string
	Line   int
	Column string
	Err    error
}

func (e *RowError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("config: %s table line %d: %v", e.Table, e.Line, e.Err)
	}
	return fmt.Sprintf("config: %s table line %d, column %s: %v", e.Table, e.Line, e.Column, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }

// FittingRow is one row of the fittings table.
type FittingRow struct {
	Segment      string
	ID           string
	Type         string
	Coefficients hydraulics.Coefficients
}

// row wraps a CSV record with its table and line for error reporting.
type row struct {
	table  string
	line   int
	fields []string
	names  []string
}

func (r row) fail(col int, err error) error {
	name := ""
	if col >= 0 && col < len(r.names) {
		name = r.names[col]
	}
	if !errors.Is(err, pipenet.ErrInvalidConfiguration) {
		err = fmt.Errorf("%w: %v", ErrMalformedRow, err)
	}
	return &RowError{Table: r.table, Line: r.line, Column: name, Err: err}
}

func (r row) text(col int) string { return strings.TrimSpace(r.fields[col]) }

// required returns a non-blank text cell.
func (r row) required(col int) (string, error) {
	s := r.text(col)
	if s == "" {
		return "", r.fail(col, errors.New("value is required"))
	}
	return s, nil
}

// number returns a numeric cell, or nil when blank.
func (r row) number(col int) (*float64, error) {
	s := r.text(col)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, r.fail(col, err)
	}
	return &v, nil
}

// value returns a numeric cell, 0 when blank.
func (r row) value(col int) (float64, error) {
	v, err := r.number(col)
	if err != nil || v == nil {
		return 0, err
	}
	return *v, nil
}

// records reads every data row of a CSV table with the given header names.
func records(rd io.Reader, table string, names []string) ([]row, error) {
	cr := csv.NewReader(rd)
	cr.FieldsPerRecord = len(names)
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	var out []row
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				line = pe.Line
			}
			return nil, &RowError{Table: table, Line: line, Err: fmt.Errorf("%w: %v", ErrMalformedRow, err)}
		}
		if line == 1 {
			continue
		}
		out = append(out, row{table: table, line: line, fields: rec, names: names})
	}
}

var analysisNames = []string{
	"loop", "segment", "start", "end", "nominal_diameter", "length",
	"zeta", "a0", "a1", "a2", "fixed_dp", "flow_rate",
}

// ReadAnalysisTable parses the analysis table. Values are interpreted in
// the units of us; pump coefficients use the pressure and flow-rate units.
func ReadAnalysisTable(rd io.Reader, us units.System) ([]network.AnalysisSpec, error) {
	rows, err := records(rd, "analysis", analysisNames)
	if err != nil {
		return nil, err
	}
	out := make([]network.AnalysisSpec, 0, len(rows))
	for _, r := range rows {
		spec, err := analysisRow(r, us)
		if err != nil {
			return nil, err
		}
		out = append(out, spec)
	}
	return out, nil
}

func analysisRow(r row, us units.System) (network.AnalysisSpec, error) {
	var (
		spec network.AnalysisSpec
		err  error
	)
	if spec.Loop, err = r.required(0); err != nil {
		return spec, err
	}
	if spec.ID, err = r.required(1); err != nil {
		return spec, err
	}
	if spec.Start, err = r.required(2); err != nil {
		return spec, err
	}
	if spec.End, err = r.required(3); err != nil {
		return spec, err
	}

	// 1) Pseudo row: fixed drop and flow only
	fixed, err := r.number(10)
	if err != nil {
		return spec, err
	}
	q, err := r.value(11)
	if err != nil {
		return spec, err
	}
	if spec.FlowRate, err = us.FlowRate(q); err != nil {
		return spec, r.fail(11, err)
	}
	if fixed != nil {
		dp, err := us.Pressure(*fixed)
		if err != nil {
			return spec, r.fail(10, err)
		}
		spec.FixedDrop = &dp
		return spec, nil
	}

	// 2) Pipe geometry
	dn, err := r.value(4)
	if err != nil {
		return spec, err
	}
	if spec.NominalDiameter, err = us.Diameter(dn); err != nil {
		return spec, r.fail(4, err)
	}
	length, err := r.value(5)
	if err != nil {
		return spec, err
	}
	if spec.Length, err = us.Length(length); err != nil {
		return spec, r.fail(5, err)
	}
	if spec.SumZeta, err = r.value(6); err != nil {
		return spec, err
	}

	// 3) Optional pump curve
	var coef [3]*float64
	for i := range coef {
		if coef[i], err = r.number(7 + i); err != nil {
			return spec, err
		}
	}
	if coef[0] != nil || coef[1] != nil || coef[2] != nil {
		var a [3]float64
		for i, c := range coef {
			if c != nil {
				a[i] = *c
			}
		}
		curve, err := hydraulics.ConvertPumpCurve(a[0], a[1], a[2], us.Unit(units.KindPressure), us.Unit(units.KindFlowRate))
		if err != nil {
			return spec, r.fail(7, err)
		}
		spec.Pump = &curve
	}
	return spec, nil
}

var designNames = []string{
	"segment", "start", "start_elevation", "end", "end_elevation",
	"length", "nominal_diameter", "flow_rate", "friction_loss",
}

// ReadDesignTable parses the design table. A blank flow rate marks a
// pseudo segment.
func ReadDesignTable(rd io.Reader, us units.System) ([]network.DesignSpec, error) {
	rows, err := records(rd, "design", designNames)
	if err != nil {
		return nil, err
	}
	out := make([]network.DesignSpec, 0, len(rows))
	for _, r := range rows {
		spec, err := designRow(r, us)
		if err != nil {
			return nil, err
		}
		out = append(out, spec)
	}
	return out, nil
}

func designRow(r row, us units.System) (network.DesignSpec, error) {
	var (
		spec network.DesignSpec
		err  error
	)
	if spec.ID, err = r.required(0); err != nil {
		return spec, err
	}
	if spec.Start, err = r.required(1); err != nil {
		return spec, err
	}
	if spec.End, err = r.required(3); err != nil {
		return spec, err
	}
	for _, c := range []struct {
		col int
		dst *units.Length
	}{{2, &spec.StartElevation}, {4, &spec.EndElevation}, {5, &spec.Length}} {
		v, err := r.value(c.col)
		if err != nil {
			return spec, err
		}
		if *c.dst, err = us.Length(v); err != nil {
			return spec, r.fail(c.col, err)
		}
	}

	if v, err := r.number(6); err != nil {
		return spec, err
	} else if v != nil {
		dn, err := us.Diameter(*v)
		if err != nil {
			return spec, r.fail(6, err)
		}
		spec.NominalDiameter = &dn
	}
	if v, err := r.number(7); err != nil {
		return spec, err
	} else if v != nil {
		q, err := us.FlowRate(*v)
		if err != nil {
			return spec, r.fail(7, err)
		}
		spec.FlowRate = &q
	}
	if v, err := r.number(8); err != nil {
		return spec, err
	} else if v != nil {
		dp, err := us.Pressure(*v)
		if err != nil {
			return spec, r.fail(8, err)
		}
		spec.FrictionLoss = &dp
	}
	return spec, nil
}

var fittingNames = []string{"segment", "fitting", "type", "zeta", "zeta_inf", "zeta_d", "elr", "kv"}

// ReadFittingsTable parses the fittings table. Coefficients are
// dimensionless and need no unit conversion.
func ReadFittingsTable(rd io.Reader) ([]FittingRow, error) {
	rows, err := records(rd, "fittings", fittingNames)
	if err != nil {
		return nil, err
	}
	out := make([]FittingRow, 0, len(rows))
	for _, r := range rows {
		var f FittingRow
		if f.Segment, err = r.required(0); err != nil {
			return nil, err
		}
		if f.ID, err = r.required(1); err != nil {
			return nil, err
		}
		f.Type = r.text(2)
		targets := []**float64{
			&f.Coefficients.Zeta, &f.Coefficients.ZetaInf, &f.Coefficients.ZetaD,
			&f.Coefficients.ELR, &f.Coefficients.Kv,
		}
		for i, dst := range targets {
			if *dst, err = r.number(3 + i); err != nil {
				return nil, err
			}
		}
		out = append(out, f)
	}
	return out, nil
}

var pointNames = []string{"flow_rate", "pressure"}

// ReadCurveTable parses a two-column table of measured pump points.
func ReadCurveTable(rd io.Reader, us units.System) ([]curve.Point, error) {
	rows, err := records(rd, "curve", pointNames)
	if err != nil {
		return nil, err
	}
	out := make([]curve.Point, 0, len(rows))
	for _, r := range rows {
		q, err := r.value(0)
		if err != nil {
			return nil, err
		}
		p, err := r.value(1)
		if err != nil {
			return nil, err
		}
		var pt curve.Point
		if pt.FlowRate, err = us.FlowRate(q); err != nil {
			return nil, r.fail(0, err)
		}
		if pt.Pressure, err = us.Pressure(p); err != nil {
			return nil, r.fail(1, err)
		}
		out = append(out, pt)
	}
	return out, nil
}
