// Package schedule is a catalog of commercial pipe schedules. A schedule maps
// nominal diameters (DN) to outside diameter, wall thickness and inside
// diameter, and carries the absolute wall roughness of the material.
//
// Catalog names:
//
//	pipe_schedule_40       ANSI schedule 40 steel, roughness 0.046 mm
//	geberit_mapress_steel  Geberit Mapress C-steel, roughness 0.010 mm
//
// Errors:
//
//   - ErrUnknownSchedule         if Get is called with an unsupported name.
//   - ErrUnknownNominalDiameter  if a DN is not part of the schedule.
package schedule

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/pipenet"
	"github.com/katalvlaran/pipenet/units"
)

// Catalog names.
const (
	NameSchedule40          = "pipe_schedule_40"
	NameGeberitMapressSteel = "geberit_mapress_steel"
)

var (
	// ErrUnknownSchedule is returned for an unsupported schedule name.
	ErrUnknownSchedule = fmt.Errorf("schedule: unknown pipe schedule: %w", pipenet.ErrInvalidConfiguration)

	// ErrUnknownNominalDiameter is returned for a DN missing from a schedule.
	ErrUnknownNominalDiameter = fmt.Errorf("schedule: nominal diameter not in schedule: %w", pipenet.ErrInvalidConfiguration)
)

// Dimensions is one row of a schedule.
type Dimensions struct {
	Nominal units.Length
	Outside units.Length
	Wall    units.Length
	Inside  units.Length
}

// Schedule is an immutable pipe schedule.
type Schedule struct {
	Name      string
	Roughness units.Length
	dims      []Dimensions // sorted by inside diameter
}

// New builds a schedule from parallel tables given in millimetres. Inside
// diameters are taken from inside when non-nil, else derived as outside−2·wall.
func New(name string, roughnessMM float64, nominal, outside, wall, inside []float64) (*Schedule, error) {
	n := len(nominal)
	if n == 0 || len(outside) != n || len(wall) != n || (inside != nil && len(inside) != n) {
		return nil, fmt.Errorf("schedule %q: inconsistent table lengths: %w", name, pipenet.ErrInvalidConfiguration)
	}
	s := &Schedule{Name: name, Roughness: units.Millimetres(roughnessMM), dims: make([]Dimensions, n)}
	for i := 0; i < n; i++ {
		di := outside[i] - 2*wall[i]
		if inside != nil {
			di = inside[i]
		}
		s.dims[i] = Dimensions{
			Nominal: units.Millimetres(nominal[i]),
			Outside: units.Millimetres(outside[i]),
			Wall:    units.Millimetres(wall[i]),
			Inside:  units.Millimetres(di),
		}
	}
	sort.SliceStable(s.dims, func(a, b int) bool { return s.dims[a].Inside < s.dims[b].Inside })

	return s, nil
}

// Dimensions returns a copy of all rows ordered by inside diameter.
func (s *Schedule) Dimensions() []Dimensions {
	out := make([]Dimensions, len(s.dims))
	copy(out, s.dims)
	return out
}

// sameDN compares nominal diameters at micrometre resolution.
func sameDN(a, b units.Length) bool {
	return math.Abs(float64(a-b)) < 1e-6
}

// Lookup returns the row for nominal diameter dn.
func (s *Schedule) Lookup(dn units.Length) (Dimensions, error) {
	for _, d := range s.dims {
		if sameDN(d.Nominal, dn) {
			return d, nil
		}
	}
	return Dimensions{}, fmt.Errorf("%w: %s DN%g", ErrUnknownNominalDiameter, s.Name, dn.Millimetres())
}

// InsideDiameter returns the inside diameter for dn.
func (s *Schedule) InsideDiameter(dn units.Length) (units.Length, error) {
	d, err := s.Lookup(dn)
	return d.Inside, err
}

// OutsideDiameter returns the outside diameter for dn.
func (s *Schedule) OutsideDiameter(dn units.Length) (units.Length, error) {
	d, err := s.Lookup(dn)
	return d.Outside, err
}

// WallThickness returns the wall thickness for dn.
func (s *Schedule) WallThickness(dn units.Length) (units.Length, error) {
	d, err := s.Lookup(dn)
	return d.Wall, err
}

// NearestByInside returns the row whose inside diameter is closest to di.
// Ties go to the smaller pipe.
func (s *Schedule) NearestByInside(di units.Length) Dimensions {
	return s.nearest(func(d Dimensions) units.Length { return d.Inside }, di)
}

// NearestByOutside returns the row whose outside diameter is closest to do.
func (s *Schedule) NearestByOutside(do units.Length) Dimensions {
	return s.nearest(func(d Dimensions) units.Length { return d.Outside }, do)
}

func (s *Schedule) nearest(key func(Dimensions) units.Length, target units.Length) Dimensions {
	best := s.dims[0]
	bestDist := math.Abs(float64(key(best) - target))
	for _, d := range s.dims[1:] {
		if dist := math.Abs(float64(key(d) - target)); dist < bestDist {
			best, bestDist = d, dist
		}
	}
	return best
}
