package analysis

import (
	"fmt"
	"math"
	"strings"
)

// IntensityZone is a training category expressed as a closed interval of
// fractions of VDOT-equivalent oxygen consumption
type IntensityZone struct {
	Name string
	Low  float64
	High float64
}

var intensityZones = [...]IntensityZone{
	{"Easy", 0.59, 0.74},
	{"Marathon", 0.75, 0.84},
	{"Threshold", 0.83, 0.88},
	{"Interval", 0.95, 1.00},
	{"Repetition", 1.05, 1.20},
}

// IntensityZones returns the five training zones from easiest to hardest.
// The returned slice is a copy.
func IntensityZones() []IntensityZone {
	out := make([]IntensityZone, len(intensityZones))
	copy(out, intensityZones[:])
	return out
}

// ZoneByName looks up a training zone, case-insensitively
func ZoneByName(name string) (IntensityZone, bool) {
	name = strings.TrimSpace(name)
	for _, z := range intensityZones {
		if strings.EqualFold(z.Name, name) {
			return z, true
		}
	}
	return IntensityZone{}, false
}

// Validate checks that the zone bounds are positive, finite and ordered
func (z IntensityZone) Validate() error {
	if math.IsNaN(z.Low) || math.IsNaN(z.High) || math.IsInf(z.Low, 0) || math.IsInf(z.High, 0) {
		return fmt.Errorf("%w: zone %q has non-finite bounds", ErrInvalidInput, z.Name)
	}
	if z.Low <= 0 || z.High < z.Low {
		return fmt.Errorf("%w: zone %q bounds [%v, %v]", ErrInvalidInput, z.Name, z.Low, z.High)
	}
	return nil
}
