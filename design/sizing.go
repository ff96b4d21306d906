package design

import (
	"github.com/katalvlaran/pipenet/fluid"
	"github.com/katalvlaran/pipenet/units"
)

// SupplyBudget describes the pressure available along the longest path of
// a drinking-water installation, from the water meter to a draw-off point.
type SupplyBudget struct {
	PathLength      units.Length   // total pipe length of the path
	SupplyPressure  units.Pressure // minimum available supply pressure
	DrawOffPressure units.Pressure // required flow pressure at the draw-off point
	Height          units.Length   // draw-off elevation above the supply entrance
	ApplianceLoss   units.Pressure // losses in appliances at design flow
	CheckValveLoss  units.Pressure // losses in check valves at design flow
	FittingsPercent float64        // share of the remaining head lost in fittings, 0..100
	Fluid           fluid.Fluid    // defaults to water at 10 °C
}

// SpecificFrictionLoss returns the friction loss per metre of pipe that
// remains available for sizing, and the total available friction loss.
func SpecificFrictionLoss(b SupplyBudget) (perMetre, available units.Pressure, err error) {
	if b.PathLength <= 0 {
		return 0, 0, ErrInvalidBudget
	}
	fl := b.Fluid
	if fl == nil {
		if fl, err = fluid.Water(10); err != nil {
			return 0, 0, err
		}
	}
	static := float64(fl.Density()) * units.Gravity * float64(b.Height)
	head := float64(b.SupplyPressure-b.DrawOffPressure) - static - float64(b.ApplianceLoss+b.CheckValveLoss)
	head *= 1 - b.FittingsPercent/100
	return units.Pressure(head / float64(b.PathLength)), units.Pressure(head), nil
}
