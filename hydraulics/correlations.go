package hydraulics

import (
	"fmt"
	"math"
)

// TeeFlow is the flow pattern through a tee or wye.
type TeeFlow int

const (
	// Converging: branch and run flows join into the combined leg.
	Converging TeeFlow = iota
	// Diverging: the combined leg splits into branch and run.
	Diverging
)

// Tee describes a tee or wye. Diameters in any consistent unit, flows in
// any consistent unit, Angle in degrees (30, 45, 60 or 90 for converging).
type Tee struct {
	Pattern   TeeFlow
	DBranch   float64
	DCombined float64
	QBranch   float64
	QCombined float64
	Angle     float64
}

// TeeResistance returns (ζ_run, ζ_branch) of a tee. ζ_run refers to the
// combined-leg velocity, ζ_branch to the branch-leg velocity.
func TeeResistance(t Tee) (run, branch float64, err error) {
	if t.DCombined <= 0 || t.QCombined == 0 || t.QBranch == 0 {
		return 0, 0, ErrZeroDivision
	}
	beta := (t.DBranch / t.DCombined) * (t.DBranch / t.DCombined)
	ratio := t.QBranch / t.QCombined

	switch t.Pattern {
	case Converging:
		run, branch, err = teeConverging(beta, ratio, t.Angle)
	case Diverging:
		run, branch = teeDiverging(beta, ratio, t.Angle)
	default:
		err = fmt.Errorf("%w: tee pattern %d", ErrInvalidValue, t.Pattern)
	}
	if err != nil {
		return 0, 0, err
	}
	// Refer the branch coefficient to the branch-leg velocity.
	return run, branch * beta / (ratio * ratio), nil
}

// convergingCoefficients holds D, E, F of the branch leg and C, D, E, F of
// the run leg per branch angle.
var convergingCoefficients = map[float64][7]float64{
	30: {1, 2, 1.74, 1, 0, 1, 1.74},
	45: {1, 2, 1.41, 1, 0, 1, 1.41},
	60: {1, 2, 1, 1, 0, 1, 1},
	90: {1, 2, 0, 0, 0, 0, 0},
}

func teeConverging(beta, ratio, angle float64) (float64, float64, error) {
	k, ok := convergingCoefficients[angle]
	if !ok {
		return 0, 0, fmt.Errorf("%w: converging tee angle %g", ErrInvalidValue, angle)
	}
	db, eb, fb := k[0], k[1], k[2]
	cr, dr, er, fr := k[3], k[4], k[5], k[6]

	cb := 1.0
	if beta > 0.35 {
		if ratio <= 0.4 {
			cb = 0.9 * (1 - ratio)
		} else {
			cb = 0.55
		}
	}
	branch := cb * (1 + db*(ratio/beta)*(ratio/beta) - eb*(1-ratio)*(1-ratio) - fb/beta*ratio*ratio)
	if angle == 90 {
		return 1.55*ratio - ratio*ratio, branch, nil
	}
	run := cr * (1 + dr*(ratio/beta)*(ratio/beta) - er*(1-ratio)*(1-ratio) - fr/beta*ratio*ratio)
	return run, branch, nil
}

func teeDiverging(beta, ratio, angle float64) (float64, float64) {
	var g, h, j float64
	switch {
	case angle > 0 && angle <= 60:
		switch {
		case beta <= 0.35 && ratio <= 0.4:
			g = 1.1 - 0.7*ratio
		case beta <= 0.35:
			g = 0.85
		case ratio <= 0.6:
			g = 1 - 0.6*ratio
		default:
			g = 0.6
		}
		h, j = 1, 2
	case angle == 90:
		if math.Sqrt(beta) <= 2.0/3.0 {
			g, h, j = 1, 1, 2
		} else if beta == 1 || ratio/beta <= 2 {
			g, h, j = 1+0.3*ratio*ratio, 0.3, 0
		}
	}
	branch := g * (1 + h*(ratio/beta)*(ratio/beta) - j*(ratio/beta)*math.Cos(angle*math.Pi/180))

	m := 0.4
	if beta > 0.4 {
		if ratio <= 0.5 {
			m = 2 * (2*ratio - 1)
		} else {
			m = 0.3 * (2*ratio - 1)
		}
	}
	return m * ratio * ratio, branch
}

// conicalAngle returns the included angle of a cone between dLarge and dSmall over length.
func conicalAngle(dLarge, dSmall, length float64) float64 {
	return 2 * math.Atan((dLarge-dSmall)/(2*length))
}

// ReducerResistance returns (ζ_small, ζ_large) of a conical reducer,
// referred to the small-side and large-side velocity.
func ReducerResistance(dLarge, dSmall, length float64) (small, large float64, err error) {
	if dLarge <= 0 || dSmall <= 0 || length <= 0 || dSmall > dLarge {
		return 0, 0, fmt.Errorf("%w: reducer %g/%g over %g", ErrInvalidValue, dLarge, dSmall, length)
	}
	beta := dSmall / dLarge
	theta := conicalAngle(dLarge, dSmall, length)
	if theta <= math.Pi/4 {
		small = 0.8 * math.Sin(theta/2) * (1 - beta*beta)
	} else {
		small = 0.5 * math.Sqrt(math.Sin(theta/2)) * (1 - beta*beta)
	}
	return small, small / math.Pow(beta, 4), nil
}

// EnlargerResistance returns (ζ_small, ζ_large) of a conical enlarger.
func EnlargerResistance(dLarge, dSmall, length float64) (small, large float64, err error) {
	if dLarge <= 0 || dSmall <= 0 || length <= 0 || dSmall > dLarge {
		return 0, 0, fmt.Errorf("%w: enlarger %g/%g over %g", ErrInvalidValue, dLarge, dSmall, length)
	}
	beta := dSmall / dLarge
	theta := conicalAngle(dLarge, dSmall, length)
	b := (1 - beta*beta) * (1 - beta*beta)
	if theta <= math.Pi/4 {
		small = 2.6 * math.Sin(theta/2) * b
	} else {
		small = b
	}
	return small, small / math.Pow(beta, 4), nil
}

// ReducedPortType1 returns ζ of a reduced-port gate or ball valve with port
// reduction angle in degrees, from the full-bore coefficient.
func ReducedPortType1(dLarge, dSmall, angle, zetaFull float64) (float64, error) {
	if dLarge <= 0 || dSmall <= 0 || dSmall >= dLarge {
		return 0, fmt.Errorf("%w: reduced port %g/%g", ErrInvalidValue, dLarge, dSmall)
	}
	beta := dSmall / dLarge
	b := 1 - beta*beta
	theta := angle * math.Pi / 180
	if theta <= math.Pi/4 {
		return (zetaFull + math.Sin(theta/2)*(0.8*b+2.6*b*b)) / math.Pow(beta, 4), nil
	}
	return (zetaFull + 0.5*math.Sqrt(math.Sin(theta/2))*b + b*b) / math.Pow(beta, 4), nil
}

// ReducedPortType2 returns ζ of a reduced-port globe, angle, check or plug
// valve or cock, from the full-bore coefficient.
func ReducedPortType2(dLarge, dSmall, zetaFull float64) (float64, error) {
	if dLarge <= 0 || dSmall <= 0 || dSmall > dLarge {
		return 0, fmt.Errorf("%w: reduced port %g/%g", ErrInvalidValue, dLarge, dSmall)
	}
	beta := dSmall / dLarge
	b := 1 - beta*beta
	return (zetaFull + beta*(0.5*b+b*b)) / math.Pow(beta, 4), nil
}
