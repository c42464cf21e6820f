package service

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"vdot/internal/analysis"
)

// ErrBadDuration is returned when a race time can't be parsed
var ErrBadDuration = errors.New("invalid duration")

// ErrBadDistance is returned when a race distance can't be parsed
var ErrBadDistance = errors.New("invalid distance")

// maxHours is the largest hour field a time.Duration can hold
const maxHours = math.MaxInt64 / int64(time.Hour)

// H:MM:SS or M:SS, optional fraction of a second
var durationPattern = regexp.MustCompile(`^(?:(\d+):)?([0-5]?\d):([0-5]\d)(?:\.(\d{1,3}))?$`)

// ParseDuration parses a race time such as "24:34", "1:53:03" or "3:10:00.5".
// Go duration strings ("24m34s") are accepted as well.
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)

	m := durationPattern.FindStringSubmatch(s)
	if m == nil {
		d, err := time.ParseDuration(s)
		if err != nil {
			return 0, fmt.Errorf("%w: %q (want H:MM:SS or M:SS)", ErrBadDuration, s)
		}
		return d, nil
	}

	var hours int64
	if m[1] != "" {
		h, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil || h > maxHours {
			return 0, fmt.Errorf("%w: %q hours out of range", ErrBadDuration, s)
		}
		hours = h
	}
	// the pattern limits minutes and seconds to two digits
	mins, err := strconv.Atoi(m[2])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadDuration, s)
	}
	secs, err := strconv.Atoi(m[3])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadDuration, s)
	}

	var millis int
	if m[4] != "" {
		frac := m[4] + strings.Repeat("0", 3-len(m[4]))
		if millis, err = strconv.Atoi(frac); err != nil {
			return 0, fmt.Errorf("%w: %q", ErrBadDuration, s)
		}
	}

	rest := time.Duration(mins)*time.Minute +
		time.Duration(secs)*time.Second +
		time.Duration(millis)*time.Millisecond
	if rest > time.Duration(math.MaxInt64)-time.Duration(hours)*time.Hour {
		return 0, fmt.Errorf("%w: %q out of range", ErrBadDuration, s)
	}

	d := time.Duration(hours)*time.Hour + rest
	return d, nil
}

var distanceUnits = map[string]float64{
	"":      1,
	"m":     1,
	"k":     analysis.MetersPerKm,
	"km":    analysis.MetersPerKm,
	"mi":    analysis.MetersPerMile,
	"mile":  analysis.MetersPerMile,
	"miles": analysis.MetersPerMile,
}

var distancePattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*([a-z]*)$`)

// ParseDistance parses a distance given as a reference name ("5K", "half",
// "marathon") or a number with an optional unit ("5000", "5km", "3.1mi").
// Returns meters.
func ParseDistance(s string) (float64, error) {
	s = strings.ToLower(strings.TrimSpace(s))

	if d, ok := analysis.DistanceByName(s); ok {
		return d.Meters, nil
	}

	m := distancePattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrBadDistance, s)
	}
	factor, ok := distanceUnits[m[2]]
	if !ok {
		return 0, fmt.Errorf("%w: unknown unit %q", ErrBadDistance, m[2])
	}
	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrBadDistance, s)
	}

	return value * factor, nil
}

// FormatDuration renders a duration as "H:MM:SS" or "M:SS", rounded to the second
func FormatDuration(d time.Duration) string {
	seconds := int(d.Round(time.Second) / time.Second)
	sign := ""
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}

	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%s%d:%02d:%02d", sign, h, m, s)
	}
	return fmt.Sprintf("%s%d:%02d", sign, m, s)
}

// FormatDistance renders meters using the reference name when one matches
func FormatDistance(meters float64) string {
	for _, d := range analysis.ReferenceDistances() {
		if math.Abs(d.Meters-meters) < 0.5 {
			return d.Name
		}
	}
	if meters >= analysis.MetersPerKm {
		return strconv.FormatFloat(meters/analysis.MetersPerKm, 'f', -1, 64) + " km"
	}
	return strconv.FormatFloat(meters, 'f', -1, 64) + " m"
}
