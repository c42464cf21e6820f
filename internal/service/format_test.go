package service

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input string
		want  time.Duration
	}{
		{"24:34", 24*time.Minute + 34*time.Second},
		{"0:45", 45 * time.Second},
		{"05:07", 5*time.Minute + 7*time.Second},
		{"1:53:03", time.Hour + 53*time.Minute + 3*time.Second},
		{"3:10:00.5", 3*time.Hour + 10*time.Minute + 500*time.Millisecond},
		{"19:56.25", 19*time.Minute + 56*time.Second + 250*time.Millisecond},
		{" 40:00 ", 40 * time.Minute},
		{"24m34s", 24*time.Minute + 34*time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDuration(tt.input)
			if err != nil {
				t.Fatalf("ParseDuration(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseDuration(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseDuration_Invalid(t *testing.T) {
	for _, input := range []string{"", "abc", "24:61", "1:60:00", "24", "1:2:3:4"} {
		t.Run(input, func(t *testing.T) {
			if _, err := ParseDuration(input); !errors.Is(err, ErrBadDuration) {
				t.Errorf("ParseDuration(%q) error = %v, want ErrBadDuration", input, err)
			}
		})
	}
}

func TestParseDuration_HourOverflow(t *testing.T) {
	for _, input := range []string{
		"5124096:00:00",
		"2562048:00:00",
		"2562047:47:17",
		"99999999999999999999:00:00",
	} {
		t.Run(input, func(t *testing.T) {
			d, err := ParseDuration(input)
			if !errors.Is(err, ErrBadDuration) {
				t.Errorf("ParseDuration(%q) = %v, %v, want ErrBadDuration", input, d, err)
			}
		})
	}

	// largest representable value still parses
	d, err := ParseDuration("2562047:47:16.854")
	if err != nil {
		t.Fatalf("ParseDuration() error = %v", err)
	}
	if d <= 0 {
		t.Errorf("ParseDuration() = %v, want positive", d)
	}
}

func TestParseDistance(t *testing.T) {
	tests := []struct {
		input string
		want  float64
	}{
		{"5K", 5000},
		{"10k", 10000},
		{"half", 21097.5},
		{"Marathon", 42195},
		{"5000", 5000},
		{"1500m", 1500},
		{"3k", 3000},
		{"15 km", 15000},
		{"1mi", 1609.344},
		{"26.2 miles", 26.2 * 1609.344},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDistance(tt.input)
			if err != nil {
				t.Fatalf("ParseDistance(%q) error = %v", tt.input, err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ParseDistance(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseDistance_Invalid(t *testing.T) {
	for _, input := range []string{"", "ultra", "-5", "0", "5 furlongs", "km"} {
		t.Run(input, func(t *testing.T) {
			if _, err := ParseDistance(input); !errors.Is(err, ErrBadDistance) {
				t.Errorf("ParseDistance(%q) error = %v, want ErrBadDistance", input, err)
			}
		})
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00"},
		{30 * time.Second, "0:30"},
		{5*time.Minute + 57*time.Second, "5:57"},
		{50*time.Minute + 58*time.Second + 900*time.Millisecond, "50:59"},
		{time.Hour, "1:00:00"},
		{3*time.Hour + 53*time.Minute + 54*time.Second, "3:53:54"},
		{-90 * time.Second, "-1:30"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatDuration(tt.d); got != tt.want {
				t.Errorf("FormatDuration(%v) = %q, want %q", tt.d, got, tt.want)
			}
		})
	}
}

func TestFormatDistance(t *testing.T) {
	tests := []struct {
		meters float64
		want   string
	}{
		{5000, "5K"},
		{21097.5, "Half marathon"},
		{42195, "Marathon"},
		{3000, "3 km"},
		{1500, "1.5 km"},
		{800, "800 m"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatDistance(tt.meters); got != tt.want {
				t.Errorf("FormatDistance(%v) = %q, want %q", tt.meters, got, tt.want)
			}
		})
	}
}
