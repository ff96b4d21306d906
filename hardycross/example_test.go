package hardycross_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/pipenet/fluid"
	"github.com/katalvlaran/pipenet/hardycross"
	"github.com/katalvlaran/pipenet/network"
	"github.com/katalvlaran/pipenet/schedule"
	"github.com/katalvlaran/pipenet/units"
)

// ExampleSolver_Solve splits 2 L/s between a DN25 and a DN32 pipe in parallel.
// The guess sends half through each; the solver moves flow into the larger pipe.
func ExampleSolver_Solve() {
	w, _ := fluid.Water(10)
	n, _ := network.New(network.Analysis, "a", "b", w, schedule.Schedule40)
	for _, r := range []struct {
		id   string
		dn   float64
		flow float64
	}{{"p25", 25, 1}, {"p32", 32, -1}} {
		_ = n.AddAnalysisSegment(network.AnalysisSpec{
			Loop: "L", ID: r.id, Start: "a", End: "b",
			NominalDiameter: units.Millimetres(r.dn),
			Length:          units.Metres(10),
			FlowRate:        units.LitresPerSecond(r.flow),
		})
	}

	solver, err := hardycross.NewSolver(n, hardycross.WithTolerance(1e-6), hardycross.WithMaxIterations(100))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	res, err := solver.Solve(context.Background())
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	p25, _ := n.Segment("p25")
	p32, _ := n.Segment("p32")
	fmt.Println("state:", solver.State())
	fmt.Printf("total: %.3f L/s\n", float64(res.FlowRate)*1e3)
	fmt.Println("larger pipe carries more:", p32.FlowRate() > p25.FlowRate())
	// Output:
	// state: converged
	// total: 2.000 L/s
	// larger pipe carries more: true
}
