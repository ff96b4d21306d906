package paths_test

import (
	"fmt"

	"github.com/katalvlaran/pipenet/fluid"
	"github.com/katalvlaran/pipenet/network"
	"github.com/katalvlaran/pipenet/paths"
	"github.com/katalvlaran/pipenet/schedule"
	"github.com/katalvlaran/pipenet/units"
)

// ExampleEnumerate lists the paths through two branch points in series.
// Each fork is followed to the exit before its parent path continues.
func ExampleEnumerate() {
	w, _ := fluid.Water(10)
	n, _ := network.New(network.Design, "a", "e", w, schedule.Schedule40)
	for _, e := range [][3]string{
		{"x1", "a", "b"}, {"x2", "a", "b"},
		{"y1", "b", "c"}, {"y2", "b", "c"},
		{"z", "c", "e"},
	} {
		q, dn := units.LitresPerSecond(0.1), units.Millimetres(25)
		_ = n.AddDesignSegment(network.DesignSpec{
			ID: e[0], Start: e[1], End: e[2], Length: units.Metres(1),
			FlowRate: &q, NominalDiameter: &dn,
		})
	}

	ps, err := paths.Enumerate(n)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, p := range ps {
		fmt.Println(p)
	}
	// Output:
	// x1|y1|z
	// x2|y1|z
	// x2|y2|z
	// x1|y2|z
}
