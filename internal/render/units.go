package render

import (
	"time"

	"vdot/internal/analysis"
	"vdot/internal/config"
	"vdot/internal/service"
)

// Pace units accepted in the display config
const (
	PacePerKm   = "min/km"
	PacePerMile = "min/mi"
)

// Units converts per-kilometer paces to the user's preferred unit
type Units struct {
	cfg config.DisplayConfig
}

// NewUnits creates a new Units helper with the given display config
func NewUnits(cfg config.DisplayConfig) Units {
	return Units{cfg: cfg}
}

// perMile reports whether paces are shown per mile
func (u Units) perMile() bool {
	return u.cfg.PaceUnit == PacePerMile
}

// Pace converts a per-kilometer pace into the preferred unit
func (u Units) Pace(perKm time.Duration) time.Duration {
	if u.perMile() {
		return time.Duration(float64(perKm) * analysis.MetersPerMile / analysis.MetersPerKm)
	}
	return perKm
}

// FormatPace formats a per-kilometer pace in the preferred unit, without label
func (u Units) FormatPace(perKm time.Duration) string {
	if perKm <= 0 {
		return "-"
	}
	return service.FormatDuration(u.Pace(perKm))
}

// FormatPaceWithUnit formats pace with the unit label
func (u Units) FormatPaceWithUnit(perKm time.Duration) string {
	pace := u.FormatPace(perKm)
	if pace == "-" {
		return pace
	}
	return pace + "/" + u.DistanceLabel()
}

// FormatPaceSeconds formats a whole-second per-kilometer pace as stored in the table
func (u Units) FormatPaceSeconds(secondsPerKm int) string {
	return u.FormatPace(time.Duration(secondsPerKm) * time.Second)
}

// PaceMinutes returns a per-kilometer pace as fractional minutes in the preferred unit
func (u Units) PaceMinutes(perKm time.Duration) float64 {
	return u.Pace(perKm).Minutes()
}

// DistanceLabel returns the short unit label ("mi" or "km")
func (u Units) DistanceLabel() string {
	if u.perMile() {
		return "mi"
	}
	return "km"
}
