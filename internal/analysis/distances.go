package analysis

import (
	"strings"
)

// Standard race distances in meters
const (
	Distance5K           = 5000
	Distance10K          = 10000
	DistanceHalfMarathon = 21097.5
	DistanceMarathon     = 42195

	MetersPerKm   = 1000.0
	MetersPerMile = 1609.344
)

// ReferenceDistance is a named standard race distance
type ReferenceDistance struct {
	Name   string
	Meters float64
}

// referenceDistances is ordered by ascending length
var referenceDistances = [...]ReferenceDistance{
	{"5K", Distance5K},
	{"10K", Distance10K},
	{"Half marathon", DistanceHalfMarathon},
	{"Marathon", DistanceMarathon},
}

// distanceAliases maps accepted spellings to an index in referenceDistances
var distanceAliases = map[string]int{
	"5k":            0,
	"10k":           1,
	"half":          2,
	"hm":            2,
	"half marathon": 2,
	"half-marathon": 2,
	"halfmarathon":  2,
	"marathon":      3,
	"full":          3,
}

// ReferenceDistances returns the fixed reference distances, shortest first.
// The returned slice is a copy.
func ReferenceDistances() []ReferenceDistance {
	out := make([]ReferenceDistance, len(referenceDistances))
	copy(out, referenceDistances[:])
	return out
}

// DistanceByName looks up a reference distance by name or common alias
func DistanceByName(name string) (ReferenceDistance, bool) {
	i, ok := distanceAliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return ReferenceDistance{}, false
	}
	return referenceDistances[i], true
}
