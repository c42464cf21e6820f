package analysis

import (
	"errors"
	"fmt"
	"math"
	"time"

	"vdot/internal/rootfind"
)

var (
	// ErrInvalidInput is returned for non-positive distances, durations or VDOT values
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoEquivalentTime is returned when the search bracket holds no
	// duration matching the requested VDOT for a distance
	ErrNoEquivalentTime = errors.New("no equivalent time within search bracket")

	// ErrPaceOutOfDomain is returned when a zone bound maps below the
	// range the inverse oxygen-cost formula covers
	ErrPaceOutOfDomain = errors.New("pace outside formula domain")
)

// Equivalent-time search bracket, in minutes
const (
	SearchLowMinutes  = 1
	SearchHighMinutes = 600
)

// MinDuration is the shortest race duration accepted. Anything shorter is
// treated as t -> 0 and rejected.
const MinDuration = time.Second

// EquivalentTime is the predicted finish time for a reference distance
type EquivalentTime struct {
	Distance ReferenceDistance
	Time     time.Duration
}

// PaceRange is the pace band for one training zone, per kilometer.
// Faster is never greater than Slower.
type PaceRange struct {
	Zone   IntensityZone
	Faster time.Duration
	Slower time.Duration
}

// Result holds everything derived from a single VDOT
type Result struct {
	VDOT        float64
	Equivalents []EquivalentTime
	Paces       []PaceRange
}

// CalculateVDOT derives VDOT from a race result.
// distanceMeters: the race distance in meters
// duration: the finish time, at least MinDuration
// A result too slow for the oxygen-cost curve (VDOT <= 0) returns
// ErrNoEquivalentTime rather than a negative index.
func CalculateVDOT(distanceMeters float64, duration time.Duration) (float64, error) {
	if err := validateDistance(distanceMeters); err != nil {
		return 0, err
	}
	if duration < MinDuration {
		return 0, fmt.Errorf("%w: duration %v is shorter than %v", ErrInvalidInput, duration, MinDuration)
	}

	vdot := PerformanceIndex(distanceMeters, duration.Minutes())
	if math.IsNaN(vdot) || math.IsInf(vdot, 0) {
		return 0, fmt.Errorf("%w: %.1f m in %v does not produce a finite VDOT", ErrInvalidInput, distanceMeters, duration)
	}
	if vdot <= 0 {
		return 0, fmt.Errorf("%w: %.1f m in %v is below the oxygen-cost curve (VDOT %.2f)",
			ErrNoEquivalentTime, distanceMeters, duration, vdot)
	}
	return vdot, nil
}

// PredictTime finds the finish time over targetDistanceMeters that yields
// the given VDOT
func PredictTime(vdot float64, targetDistanceMeters float64) (time.Duration, error) {
	if err := validateVDOT(vdot); err != nil {
		return 0, err
	}
	if err := validateDistance(targetDistanceMeters); err != nil {
		return 0, err
	}

	residual := func(t float64) float64 {
		return PerformanceIndex(targetDistanceMeters, t) - vdot
	}

	minutes, err := rootfind.Bisect(residual, SearchLowMinutes, SearchHighMinutes)
	if errors.Is(err, rootfind.ErrNotBracketed) {
		return 0, fmt.Errorf("%w: VDOT %.2f over %.1f m: %w", ErrNoEquivalentTime, vdot, targetDistanceMeters, err)
	}
	if err != nil {
		return 0, fmt.Errorf("solving for %.1f m: %w", targetDistanceMeters, err)
	}

	return minutesToDuration(minutes), nil
}

// CalculatePaceRange returns the per-kilometer pace band for a training zone.
// With vdot > 0 and a valid zone every vo2 is positive, which keeps
// InverseVelocity in its domain; ErrPaceOutOfDomain only guards the formula.
func CalculatePaceRange(vdot float64, zone IntensityZone) (PaceRange, error) {
	if err := validateVDOT(vdot); err != nil {
		return PaceRange{}, err
	}
	if err := zone.Validate(); err != nil {
		return PaceRange{}, err
	}

	low, err := paceAtFraction(vdot, zone.Low)
	if err != nil {
		return PaceRange{}, fmt.Errorf("%s zone lower bound: %w", zone.Name, err)
	}
	high, err := paceAtFraction(vdot, zone.High)
	if err != nil {
		return PaceRange{}, fmt.Errorf("%s zone upper bound: %w", zone.Name, err)
	}

	faster, slower := low, high
	if faster > slower {
		faster, slower = slower, faster
	}

	return PaceRange{Zone: zone, Faster: faster, Slower: slower}, nil
}

// Calculate derives VDOT from a race result along with equivalent times
// and training paces
func Calculate(distanceMeters float64, duration time.Duration) (*Result, error) {
	vdot, err := CalculateVDOT(distanceMeters, duration)
	if err != nil {
		return nil, err
	}
	return ResultForVDOT(vdot)
}

// ResultForVDOT computes equivalent times and training paces for a known VDOT
func ResultForVDOT(vdot float64) (*Result, error) {
	if err := validateVDOT(vdot); err != nil {
		return nil, err
	}

	result := &Result{VDOT: vdot}

	for _, d := range referenceDistances {
		t, err := PredictTime(vdot, d.Meters)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", d.Name, err)
		}
		result.Equivalents = append(result.Equivalents, EquivalentTime{Distance: d, Time: t})
	}

	for _, z := range intensityZones {
		p, err := CalculatePaceRange(vdot, z)
		if err != nil {
			return nil, err
		}
		result.Paces = append(result.Paces, p)
	}

	return result, nil
}

// GetVDOTLabel returns a human-readable fitness level for a VDOT value
func GetVDOTLabel(vdot float64) string {
	switch {
	case vdot >= 75:
		return "Elite"
	case vdot >= 65:
		return "Highly Competitive"
	case vdot >= 55:
		return "Competitive"
	case vdot >= 45:
		return "Advanced Recreational"
	case vdot >= 38:
		return "Intermediate"
	case vdot >= 30:
		return "Beginner"
	default:
		return "Novice"
	}
}

// paceAtFraction converts a fraction of VDOT into minutes per kilometer
func paceAtFraction(vdot, pct float64) (time.Duration, error) {
	v, err := InverseVelocity(vdot * pct)
	if err != nil {
		return 0, err
	}
	return minutesToDuration(MetersPerKm / v), nil
}

func minutesToDuration(minutes float64) time.Duration {
	return time.Duration(math.Round(minutes * float64(time.Minute)))
}

func validateDistance(meters float64) error {
	if math.IsNaN(meters) || math.IsInf(meters, 0) || meters <= 0 {
		return fmt.Errorf("%w: distance %v m must be positive", ErrInvalidInput, meters)
	}
	return nil
}

func validateVDOT(vdot float64) error {
	if math.IsNaN(vdot) || math.IsInf(vdot, 0) || vdot <= 0 {
		return fmt.Errorf("%w: VDOT %v must be positive", ErrInvalidInput, vdot)
	}
	return nil
}
