package analysis

import (
	"fmt"
	"math"
)

// Daniels & Gilbert (1979) regression coefficients. Kept verbatim.
const (
	costIntercept = -4.60
	costLinear    = 0.182258
	costQuadratic = 0.000104

	fractionBase  = 0.8
	fractionSlowA = 0.1894393
	fractionSlowK = 0.012778
	fractionFastA = 0.2989558
	fractionFastK = 0.1932605
)

// OxygenCost returns VO2 in ml/kg/min for running at v meters per minute
func OxygenCost(v float64) float64 {
	return costIntercept + costLinear*v + costQuadratic*v*v
}

// OxygenFraction returns the fraction of VO2max sustainable for a race
// lasting t minutes. Strictly decreasing towards 0.8; it exceeds 1.0 for
// races shorter than about 11 minutes.
func OxygenFraction(t float64) float64 {
	return fractionBase +
		fractionSlowA*math.Exp(-fractionSlowK*t) +
		fractionFastA*math.Exp(-fractionFastK*t)
}

// PerformanceIndex combines the two curves for a race of distanceMeters
// covered in t minutes
func PerformanceIndex(distanceMeters, t float64) float64 {
	return OxygenCost(distanceMeters/t) / OxygenFraction(t)
}

// InverseVelocity solves OxygenCost(v) = vo2 for the positive root v.
// Returns ErrPaceOutOfDomain when vo2 is below the range the quadratic covers.
func InverseVelocity(vo2 float64) (float64, error) {
	radicand := 0.033218 - 0.000416*(-4.6-vo2)
	if radicand < 0 || math.IsNaN(radicand) {
		return 0, fmt.Errorf("%w: VO2 %.2f gives negative radicand", ErrPaceOutOfDomain, vo2)
	}

	v := (-0.182258 + math.Sqrt(radicand)) / 0.000208
	if v <= 0 || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: VO2 %.2f gives velocity %.3f m/min", ErrPaceOutOfDomain, vo2, v)
	}
	return v, nil
}
