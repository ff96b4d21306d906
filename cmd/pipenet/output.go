package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/katalvlaran/pipenet/session"
	"github.com/katalvlaran/pipenet/units"
)

// printAll writes each section through its own tabwriter, separated by a
// blank line.
func printAll(w io.Writer, sections ...func(io.Writer)) error {
	for i, section := range sections {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
		section(tw)
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}

func unit(us units.System, k units.Kind) string { return "[" + us.Unit(k) + "]" }

func printSegments(w io.Writer, us units.System, rows []session.SegmentRecord) {
	fmt.Fprintf(w, "segment\tkind\tloops\tstart\tend\tDN %s\tDi %s\tL %s\tV %s\tv %s\tdp %s\tzeta\t\n",
		unit(us, units.KindDiameter), unit(us, units.KindDiameter), unit(us, units.KindLength),
		unit(us, units.KindFlowRate), unit(us, units.KindVelocity), unit(us, units.KindPressure))
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%.4g\t%.4g\t%.4g\t%.4g\t%.4g\t%.4g\t%.4g\t\n",
			r.ID, r.Kind, strings.Join(r.Loops, ","), r.Start, r.End,
			r.NominalDiameter, r.InsideDiameter, r.Length, r.FlowRate, r.Velocity, r.PressureDrop, r.Zeta)
	}
}

func printPaths(w io.Writer, us units.System, rows []session.PathRecord) {
	p := unit(us, units.KindPressure)
	fmt.Fprintf(w, "path\tvelocity %s\televation %s\tdynamic %s\tstatic %s\tdeficit %s\t\n", p, p, p, p, p)
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%.4g\t%.4g\t%.4g\t%.4g\t%.4g\t\n",
			r.Path, r.VelocityHead, r.ElevationHead, r.DynamicHead, r.StaticHead, r.Deficit)
	}
}

func printFittings(w io.Writer, us units.System, rows []session.FittingRecord) {
	if len(rows) == 0 {
		return
	}
	fmt.Fprintf(w, "segment\tfitting\ttype\tmodel\tzeta\tdp %s\t\n", unit(us, units.KindPressure))
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.4g\t%.4g\t\n", r.Segment, r.ID, r.Type, r.Model, r.Zeta, r.PressureDrop)
	}
}

func printBalancingValves(w io.Writer, us units.System, rows []session.BalancingValveRecord) {
	if len(rows) == 0 {
		return
	}
	p := unit(us, units.KindPressure)
	fmt.Fprintf(w, "balancing valve\tV %s\tdp100 %s\texcess %s\tKvs\tKvr\t\n", unit(us, units.KindFlowRate), p, p)
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%.4g\t%.4g\t%.4g\t%.4g\t%.4g\t\n", r.Segment, r.FlowRate, r.OpenDrop, r.ExcessPressure, r.Kvs, r.Kvr)
	}
}

func printControlValves(w io.Writer, us units.System, rows []session.ControlValveRecord) {
	if len(rows) == 0 {
		return
	}
	fmt.Fprintf(w, "control valve\tV %s\tdp %s\tKvs\ttarget\tauthority\t\n",
		unit(us, units.KindFlowRate), unit(us, units.KindPressure))
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%.4g\t%.4g\t%.4g\t%.3g\t%.3g\t\n",
			r.Segment, r.FlowRate, r.PressureDrop, r.Kvs, r.TargetAuthority, r.Authority)
	}
}

func printCurve(w io.Writer, us units.System, rows []session.CurvePointRecord) {
	fmt.Fprintf(w, "V %s\tdp %s\t\n", unit(us, units.KindFlowRate), unit(us, units.KindPressure))
	for _, r := range rows {
		fmt.Fprintf(w, "%.4g\t%.4g\t\n", r.FlowRate, r.Pressure)
	}
}
