package schedule_test

import (
	"fmt"

	"github.com/katalvlaran/pipenet/schedule"
	"github.com/katalvlaran/pipenet/units"
)

func ExampleSchedule_InsideDiameter() {
	sch, err := schedule.Get(schedule.NameSchedule40)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	di, err := sch.InsideDiameter(units.Millimetres(25))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("DN25 inside diameter: %.1f mm\n", di.Millimetres())
	// Output:
	// DN25 inside diameter: 26.6 mm
}
