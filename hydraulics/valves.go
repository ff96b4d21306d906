package hydraulics

import (
	"fmt"
	"math"

	"github.com/katalvlaran/pipenet/fluid"
	"github.com/katalvlaran/pipenet/units"
)

// dropAt returns ρ·(V/Av)² for a valve of rating kv.
func dropAt(fl fluid.Fluid, q units.FlowRate, kv float64) (units.Pressure, error) {
	if kv <= 0 {
		return 0, fmt.Errorf("%w: Kv %g", ErrZeroDivision, kv)
	}
	r := float64(q) / KvToAv(kv)
	return units.Pressure(float64(fl.Density()) * r * r), nil
}

// kvAt returns the Kv that passes q with drop dp: Av = V/sqrt(Δp/ρ).
func kvAt(fl fluid.Fluid, q units.FlowRate, dp units.Pressure) (float64, error) {
	if dp <= 0 {
		return 0, fmt.Errorf("%w: pressure drop %g", ErrZeroDivision, float64(dp))
	}
	av := float64(q) / math.Sqrt(float64(dp)/float64(fl.Density()))
	return AvToKv(av), nil
}

// BalancingValve is a manual trim valve.
//
// Lifecycle: NewBalancingValve sizes a preliminary Kvs from the full-open
// design drop; SetKvs installs a commercial Kvs and recomputes the full-open
// drop; SetExcessPressure assigns the pressure the valve must dissipate and
// derives the trimmed setting Kvr. The full-open drop is never modified by
// SetExcessPressure, so repeated calls replace the excess instead of adding to it.
type BalancingValve struct {
	fluid  fluid.Fluid
	flow   units.FlowRate
	kvs    float64
	dpOpen units.Pressure
	excess units.Pressure
	kvr    float64
}

// NewBalancingValve returns a valve sized for q at full-open drop dp100.
func NewBalancingValve(fl fluid.Fluid, q units.FlowRate, dp100 units.Pressure) (*BalancingValve, error) {
	kvs, err := kvAt(fl, q, dp100)
	if err != nil {
		return nil, fmt.Errorf("balancing valve: %w", err)
	}
	return &BalancingValve{fluid: fl, flow: q, kvs: kvs, dpOpen: dp100, kvr: kvs}, nil
}

// Kvs returns the full-open rating.
func (b *BalancingValve) Kvs() float64 { return b.kvs }

// Kvr returns the trimmed setting; equal to Kvs until an excess is set.
func (b *BalancingValve) Kvr() float64 { return b.kvr }

// FlowRate returns the design flow.
func (b *BalancingValve) FlowRate() units.FlowRate { return b.flow }

// OpenPressureDrop returns the drop with the valve fully open.
func (b *BalancingValve) OpenPressureDrop() units.Pressure { return b.dpOpen }

// ExcessPressure returns the pressure assigned to the trim.
func (b *BalancingValve) ExcessPressure() units.Pressure { return b.excess }

// PressureDrop returns the full-open drop plus the excess.
func (b *BalancingValve) PressureDrop() units.Pressure { return b.dpOpen + b.excess }

// SetKvs installs a Kvs, recomputes the full-open drop and clears any trim.
func (b *BalancingValve) SetKvs(kvs float64) error {
	dp, err := dropAt(b.fluid, b.flow, kvs)
	if err != nil {
		return fmt.Errorf("balancing valve: %w", err)
	}
	b.kvs, b.dpOpen, b.excess, b.kvr = kvs, dp, 0, kvs
	return nil
}

// SetExcessPressure sets the pressure to dissipate and returns the new Kvr.
func (b *BalancingValve) SetExcessPressure(excess units.Pressure) (float64, error) {
	if excess < 0 || math.IsNaN(float64(excess)) {
		return 0, fmt.Errorf("balancing valve: %w: excess pressure %g", ErrInvalidValue, float64(excess))
	}
	kvr, err := kvAt(b.fluid, b.flow, b.dpOpen+excess)
	if err != nil {
		return 0, fmt.Errorf("balancing valve: %w", err)
	}
	b.excess, b.kvr = excess, kvr
	return kvr, nil
}

// ControlValve is a modulating valve sized for a target authority.
type ControlValve struct {
	fluid  fluid.Fluid
	flow   units.FlowRate
	target float64
	dpCrit units.Pressure
	kvs    float64
	dp     units.Pressure
}

// NewControlValve sizes a preliminary Kvs so that the valve drop equals
// a·Δp_crit/(1−a) at flow q.
func NewControlValve(fl fluid.Fluid, q units.FlowRate, authority float64, dpCrit units.Pressure) (*ControlValve, error) {
	if !(authority > 0 && authority < 1) {
		return nil, fmt.Errorf("control valve: %w: got %g", ErrBadAuthority, authority)
	}
	dp := units.Pressure(authority * float64(dpCrit) / (1 - authority))
	kvs, err := kvAt(fl, q, dp)
	if err != nil {
		return nil, fmt.Errorf("control valve: %w", err)
	}
	return &ControlValve{fluid: fl, flow: q, target: authority, dpCrit: dpCrit, kvs: kvs, dp: dp}, nil
}

// Kvs returns the rating.
func (c *ControlValve) Kvs() float64 { return c.kvs }

// TargetAuthority returns the authority used for preliminary sizing.
func (c *ControlValve) TargetAuthority() float64 { return c.target }

// PressureDrop returns the drop across the fully open valve at design flow.
func (c *ControlValve) PressureDrop() units.Pressure { return c.dp }

// SetKvs installs a Kvs and recomputes the drop.
func (c *ControlValve) SetKvs(kvs float64) error {
	dp, err := dropAt(c.fluid, c.flow, kvs)
	if err != nil {
		return fmt.Errorf("control valve: %w", err)
	}
	c.kvs, c.dp = kvs, dp
	return nil
}

// Authority returns Δp_valve / Δp_section.
func (c *ControlValve) Authority(dpSection units.Pressure) (float64, error) {
	if dpSection == 0 {
		return 0, fmt.Errorf("control valve: %w: section pressure drop is zero", ErrZeroDivision)
	}
	return float64(c.dp) / float64(dpSection), nil
}
