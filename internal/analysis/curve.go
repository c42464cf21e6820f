package analysis

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/floats"
)

// CurvePoint is the predicted race pace at one distance
type CurvePoint struct {
	Meters float64
	Time   time.Duration
	Pace   time.Duration // per kilometer
}

// PaceCurve samples n log-spaced distances between fromMeters and toMeters
// and predicts race pace at each for the given VDOT
func PaceCurve(vdot, fromMeters, toMeters float64, n int) ([]CurvePoint, error) {
	if n < 2 {
		return nil, fmt.Errorf("%w: need at least 2 samples, got %d", ErrInvalidInput, n)
	}
	if err := validateDistance(fromMeters); err != nil {
		return nil, err
	}
	if err := validateDistance(toMeters); err != nil {
		return nil, err
	}
	if toMeters <= fromMeters {
		return nil, fmt.Errorf("%w: curve range %.0f-%.0f m", ErrInvalidInput, fromMeters, toMeters)
	}

	distances := floats.LogSpan(make([]float64, n), fromMeters, toMeters)

	points := make([]CurvePoint, 0, n)
	for _, d := range distances {
		t, err := PredictTime(vdot, d)
		if err != nil {
			return nil, err
		}
		pace := time.Duration(float64(t) / (d / MetersPerKm))
		points = append(points, CurvePoint{Meters: d, Time: t, Pace: pace})
	}
	return points, nil
}

// Paces returns the curve's paces in minutes per kilometer
func Paces(points []CurvePoint) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.Pace.Minutes()
	}
	return out
}
