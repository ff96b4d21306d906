package schedule

import (
	"fmt"
	"sort"
)

var (
	// Schedule40 is ANSI schedule 40 steel pipe. It is also the reference
	// schedule for equivalent-length-ratio fitting resistance.
	Schedule40 = mustNew(NameSchedule40, 0.046,
		[]float64{6, 8, 10, 15, 20, 25, 32, 40, 50, 65, 80, 90, 100},
		[]float64{10.3, 13.7, 17.1, 21.3, 26.7, 33.4, 42.2, 48.3, 60.3, 73.0, 88.9, 101.6, 114.3},
		[]float64{1.73, 2.24, 2.31, 2.77, 2.87, 3.38, 3.56, 3.68, 3.91, 5.16, 5.49, 5.74, 6.02},
		[]float64{6.84, 9.22, 12.5, 15.8, 21.0, 26.6, 35.1, 40.9, 52.5, 62.7, 77.9, 90.1, 102.3},
	)

	// GeberitMapressSteel is Geberit Mapress C-steel press-fit pipe.
	GeberitMapressSteel = mustNew(NameGeberitMapressSteel, 0.010,
		[]float64{10, 12, 15, 20, 25, 32, 40, 50, 65, 66.7, 80, 100},
		[]float64{12, 15, 18, 22, 28, 35, 42, 54, 76.1, 66.7, 88.9, 108},
		[]float64{1.2, 1.2, 1.2, 1.5, 1.5, 1.5, 1.5, 1.5, 2.0, 1.5, 2.0, 2.0},
		nil,
	)

	catalog = map[string]*Schedule{
		NameSchedule40:          Schedule40,
		NameGeberitMapressSteel: GeberitMapressSteel,
	}
)

func mustNew(name string, roughnessMM float64, nominal, outside, wall, inside []float64) *Schedule {
	s, err := New(name, roughnessMM, nominal, outside, wall, inside)
	if err != nil {
		panic(err)
	}
	return s
}

// Get returns the catalog schedule with the given name.
func Get(name string) (*Schedule, error) {
	s, ok := catalog[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (available: %v)", ErrUnknownSchedule, name, Names())
	}
	return s, nil
}

// Names lists the catalog in lexical order.
func Names() []string {
	out := make([]string, 0, len(catalog))
	for k := range catalog {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
