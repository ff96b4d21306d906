package hydraulics

import (
	"fmt"
	"math"

	"github.com/katalvlaran/pipenet/fluid"
	"github.com/katalvlaran/pipenet/schedule"
	"github.com/katalvlaran/pipenet/units"
)

// CrossSection describes the circular bore of a pipe.
//   - Nominal: the schedule DN.
//   - Inside: inside diameter of that DN, used for every calculation.
//   - Calculated: theoretical diameter from a diameter solve; equals Inside otherwise.
type CrossSection struct {
	Nominal    units.Length
	Inside     units.Length
	Calculated units.Length
}

// Area returns the flow area of the inside diameter.
func (c CrossSection) Area() units.Area { return CircularArea(c.Inside) }

// PipeSpec is the input of NewPipe. Exactly two of FlowRate, NominalDiameter
// and FrictionLoss must be non-nil.
type PipeSpec struct {
	Fluid    fluid.Fluid
	Schedule *schedule.Schedule
	Length   units.Length
	SumZeta  float64

	FlowRate        *units.FlowRate
	NominalDiameter *units.Length
	FrictionLoss    *units.Pressure
}

// Pipe is a straight pipe of a schedule carrying a fluid.
type Pipe struct {
	fluid    fluid.Fluid
	schedule *schedule.Schedule
	length   units.Length
	rough    units.Length
	sumZeta  float64
	opts     Options

	section CrossSection
	flow    units.FlowRate
	dpFric  units.Pressure
	dpMinor units.Pressure

	// requested is the friction loss given to a diameter or flow solve.
	requested units.Pressure
}

// NewPipe validates spec and solves the unknown third quantity:
//   - flow rate + nominal diameter: friction and minor losses.
//   - flow rate + friction loss:    diameter (snapped to the nearest DN), then losses at that DN.
//   - friction loss + diameter:     flow rate.
//
// Complexity: O(1) for the direct mode, O(MaxIterations) otherwise.
func NewPipe(spec PipeSpec, opts ...Option) (*Pipe, error) {
	// 1) Validate common inputs
	if spec.Fluid == nil || spec.Schedule == nil {
		return nil, fmt.Errorf("hydraulics: pipe needs a fluid and a schedule: %w", ErrInvalidValue)
	}
	if spec.Length < 0 || spec.SumZeta < 0 || math.IsNaN(float64(spec.Length)) {
		return nil, fmt.Errorf("%w: length %g, sum zeta %g", ErrInvalidValue, float64(spec.Length), spec.SumZeta)
	}

	p := &Pipe{
		fluid:    spec.Fluid,
		schedule: spec.Schedule,
		length:   spec.Length,
		rough:    spec.Schedule.Roughness,
		sumZeta:  spec.SumZeta,
		opts:     resolve(opts),
	}

	// 2) Dispatch on the known pair
	known := 0
	for _, set := range []bool{spec.FlowRate != nil, spec.NominalDiameter != nil, spec.FrictionLoss != nil} {
		if set {
			known++
		}
	}
	if known != 2 {
		return nil, ErrUnderdetermined
	}

	switch {
	case spec.FlowRate != nil && spec.NominalDiameter != nil:
		if err := p.setNominal(*spec.NominalDiameter); err != nil {
			return nil, err
		}
		return p, p.SetFlowRate(*spec.FlowRate)

	case spec.FlowRate != nil && spec.FrictionLoss != nil:
		if *spec.FlowRate < 0 || *spec.FrictionLoss <= 0 {
			return nil, fmt.Errorf("%w: flow %g, friction loss %g", ErrInvalidValue,
				float64(*spec.FlowRate), float64(*spec.FrictionLoss))
		}
		di, err := SolveDiameter(p.fluid, p.rough, p.length, *spec.FlowRate, *spec.FrictionLoss, opts...)
		if err != nil {
			return nil, err
		}
		dims := p.schedule.NearestByInside(di)
		p.section = CrossSection{Nominal: dims.Nominal, Inside: dims.Inside, Calculated: di}
		p.requested = *spec.FrictionLoss
		return p, p.SetFlowRate(*spec.FlowRate)

	default:
		if *spec.FrictionLoss <= 0 {
			return nil, fmt.Errorf("%w: friction loss %g", ErrInvalidValue, float64(*spec.FrictionLoss))
		}
		if err := p.setNominal(*spec.NominalDiameter); err != nil {
			return nil, err
		}
		q, err := SolveFlowRate(p.fluid, p.rough, p.length, p.section.Inside, *spec.FrictionLoss, p.sumZeta, opts...)
		if err != nil {
			return nil, err
		}
		p.requested = *spec.FrictionLoss
		return p, p.SetFlowRate(q)
	}
}

func (p *Pipe) setNominal(dn units.Length) error {
	dims, err := p.schedule.Lookup(dn)
	if err != nil {
		return err
	}
	p.section = CrossSection{Nominal: dims.Nominal, Inside: dims.Inside, Calculated: dims.Inside}
	return nil
}

// SetFlowRate sets the flow magnitude and recomputes friction and minor losses.
func (p *Pipe) SetFlowRate(q units.FlowRate) error {
	if q < 0 || math.IsNaN(float64(q)) {
		return fmt.Errorf("%w: flow rate %g", ErrInvalidValue, float64(q))
	}
	p.flow = q
	dpf, _, err := FrictionLoss(p.fluid, p.rough, p.length, p.section.Inside, q, p.opts.Model)
	if err != nil {
		return err
	}
	p.dpFric = dpf
	p.dpMinor = units.Pressure(p.sumZeta * float64(p.VelocityPressure()))
	return nil
}

// Fluid returns the fluid in the pipe.
func (p *Pipe) Fluid() fluid.Fluid { return p.fluid }

// Schedule returns the pipe schedule.
func (p *Pipe) Schedule() *schedule.Schedule { return p.schedule }

// Length returns the pipe length.
func (p *Pipe) Length() units.Length { return p.length }

// Roughness returns the absolute wall roughness.
func (p *Pipe) Roughness() units.Length { return p.rough }

// SumZeta returns the lumped minor-loss coefficient.
func (p *Pipe) SumZeta() float64 { return p.sumZeta }

// CrossSection returns the bore.
func (p *Pipe) CrossSection() CrossSection { return p.section }

// FlowRate returns the flow magnitude.
func (p *Pipe) FlowRate() units.FlowRate { return p.flow }

// Velocity returns the mean velocity in the bore.
func (p *Pipe) Velocity() units.Velocity {
	a := p.section.Area()
	if a <= 0 {
		return 0
	}
	return units.Velocity(float64(p.flow) / float64(a))
}

// VelocityPressure returns ρv²/2.
func (p *Pipe) VelocityPressure() units.Pressure {
	return VelocityPressure(p.fluid.Density(), p.Velocity())
}

// FrictionLoss returns the Darcy-Weisbach loss at the installed diameter.
func (p *Pipe) FrictionLoss() units.Pressure { return p.dpFric }

// RequestedFrictionLoss returns the loss given to a diameter or flow solve, or 0.
func (p *Pipe) RequestedFrictionLoss() units.Pressure { return p.requested }

// MinorLosses returns Σζ·ρv²/2.
func (p *Pipe) MinorLosses() units.Pressure { return p.dpMinor }

// PressureLoss returns friction plus minor losses.
func (p *Pipe) PressureLoss() units.Pressure { return p.dpFric + p.dpMinor }

// FrictionLoss computes the Darcy-Weisbach loss f·(L/D)·ρv²/2 and returns it
// with the friction factor used.
func FrictionLoss(fl fluid.Fluid, rough, length, di units.Length, q units.FlowRate, m FrictionModel) (units.Pressure, float64, error) {
	v, err := MeanVelocity(q, di)
	if err != nil {
		return 0, 0, err
	}
	re := Reynolds(v, di, fl.KinematicViscosity())
	f := DarcyFriction(re, float64(rough)/float64(di), m)
	dp := f * float64(length) / float64(di) * float64(VelocityPressure(fl.Density(), v))
	return units.Pressure(dp), f, nil
}

// SolveDiameter finds the inside diameter that carries q with friction loss dpf.
//
// Implementation:
//   - Stage 1: start from f = 0.03.
//   - Stage 2: D = (f·L/Δp·ρ·8/π²·V²)^(1/5); recompute f at D.
//   - Stage 3: stop when |f_new − f| ≤ tolerance; D is refreshed with f_new.
//
// Returns ErrDiameterNotConverged after MaxIterations.
func SolveDiameter(fl fluid.Fluid, rough, length units.Length, q units.FlowRate, dpf units.Pressure, opts ...Option) (units.Length, error) {
	o := resolve(opts)
	if dpf <= 0 {
		return 0, ErrZeroDivision
	}
	rho := float64(fl.Density())
	nu := fl.KinematicViscosity()
	diameter := func(f float64) float64 {
		return math.Pow(f*float64(length)/float64(dpf)*rho*8/(math.Pi*math.Pi)*float64(q)*float64(q), 0.2)
	}

	f := 0.03
	for i := 0; i < o.MaxIterations; i++ {
		di := diameter(f)
		v, err := MeanVelocity(q, units.Length(di))
		if err != nil {
			return 0, err
		}
		fNew := DarcyFriction(Reynolds(v, units.Length(di), nu), float64(rough)/di, o.Model)
		if math.Abs(fNew-f) <= o.Tolerance {
			return units.Length(diameter(fNew)), nil
		}
		f = fNew
	}
	return 0, ErrDiameterNotConverged
}

// SolveFlowRate finds the flow rate through bore di for which friction plus
// minor losses equal dp.
//
// Implementation:
//   - Stage 1: start from the fully turbulent friction factor.
//   - Stage 2: v = sqrt(2Δp / (ρ(f·L/D + Σζ))); recompute f at v.
//   - Stage 3: stop when |f_new − f| ≤ tolerance; v is refreshed with f_new.
//
// Returns ErrFlowRateNotConverged after MaxIterations.
func SolveFlowRate(fl fluid.Fluid, rough, length, di units.Length, dp units.Pressure, sumZeta float64, opts ...Option) (units.FlowRate, error) {
	o := resolve(opts)
	if di <= 0 || (length == 0 && sumZeta == 0) {
		return 0, ErrZeroDivision
	}
	rho := float64(fl.Density())
	nu := fl.KinematicViscosity()
	d := float64(di)
	e := float64(rough) / d
	velocity := func(f float64) float64 {
		return math.Sqrt(2 * float64(dp) / (rho * (f*float64(length)/d + sumZeta)))
	}

	f := FullyTurbulentFriction(e)
	for i := 0; i < o.MaxIterations; i++ {
		v := velocity(f)
		fNew := DarcyFriction(Reynolds(units.Velocity(v), di, nu), e, o.Model)
		if math.Abs(fNew-f) <= o.Tolerance {
			return units.FlowRate(velocity(fNew) * float64(CircularArea(di))), nil
		}
		f = fNew
	}
	return 0, ErrFlowRateNotConverged
}
