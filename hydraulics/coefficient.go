package hydraulics

import (
	"fmt"
	"math"

	"github.com/katalvlaran/pipenet/schedule"
	"github.com/katalvlaran/pipenet/units"
)

// ReferenceDensity is the density of water at 15 °C in kg/m³, the reference
// state of the Kv flow coefficient.
const ReferenceDensity = 999.1

// kvFactor converts Av [m³/s, Pa] to Kv [m³/h, bar] at the reference density.
var kvFactor = 3.6e5 * math.Sqrt(10) / math.Sqrt(ReferenceDensity)

// AvToKv converts an Av coefficient (m³/s at 1 Pa) to Kv (m³/h at 1 bar).
func AvToKv(av float64) float64 { return av * kvFactor }

// KvToAv converts Kv (m³/h at 1 bar) to Av (m³/s at 1 Pa).
func KvToAv(kv float64) float64 { return kv / kvFactor }

// KvFromFlow returns V[m³/h] / sqrt(Δp[bar]).
func KvFromFlow(q units.FlowRate, dp units.Pressure) (float64, error) {
	if dp <= 0 {
		return 0, fmt.Errorf("%w: pressure drop %g", ErrZeroDivision, float64(dp))
	}
	return q.CubicMetresPerHour() / math.Sqrt(dp.Bar()), nil
}

// ResistanceFromAv returns ζ = π²·D⁴ / (8·Av²).
func ResistanceFromAv(av float64, di units.Length) (float64, error) {
	if av == 0 {
		return 0, ErrZeroDivision
	}
	d := float64(di)
	return math.Pi * math.Pi * d * d * d * d / (8 * av * av), nil
}

// ResistanceFromKv returns the resistance coefficient of a Kv rating on bore di.
func ResistanceFromKv(kv float64, di units.Length) (float64, error) {
	return ResistanceFromAv(KvToAv(kv), di)
}

// KvFromResistance is the inverse of ResistanceFromKv.
func KvFromResistance(zeta float64, di units.Length) (float64, error) {
	if zeta <= 0 {
		return 0, ErrZeroDivision
	}
	d := float64(di)
	av := math.Pi * d * d / math.Sqrt(8*zeta)
	return AvToKv(av), nil
}

// elrFactor returns f_T·(D/D_ref)⁴ for bore di, with D_ref the inside
// diameter of the nearest reference DN and f_T its fully turbulent friction factor.
func elrFactor(di units.Length, ref *schedule.Schedule) (float64, error) {
	if ref == nil {
		ref = schedule.Schedule40
	}
	d40 := ref.NearestByInside(di).Inside
	if d40 <= 0 {
		return 0, ErrZeroDivision
	}
	f := FullyTurbulentFriction(float64(ref.Roughness) / float64(d40))
	return f * math.Pow(float64(di)/float64(d40), 4), nil
}

// ResistanceFromELR returns the resistance coefficient of an equivalent length
// ratio (Crane K method) on bore di. A nil reference selects schedule 40.
func ResistanceFromELR(elr float64, di units.Length, ref *schedule.Schedule) (float64, error) {
	k, err := elrFactor(di, ref)
	if err != nil {
		return 0, err
	}
	return k * elr, nil
}

// ELRFromResistance is the inverse of ResistanceFromELR.
func ELRFromResistance(zeta float64, di units.Length, ref *schedule.Schedule) (float64, error) {
	k, err := elrFactor(di, ref)
	if err != nil {
		return 0, err
	}
	if k == 0 {
		return 0, ErrZeroDivision
	}
	return zeta / k, nil
}
