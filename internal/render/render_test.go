package render

import (
	"errors"
	"strings"
	"testing"
	"time"

	"vdot/internal/analysis"
	"vdot/internal/config"
	"vdot/internal/service"
	"vdot/internal/store"
)

func TestUnits_FormatPace(t *testing.T) {
	tests := []struct {
		name  string
		unit  string
		perKm time.Duration
		want  string
	}{
		{"per km", PacePerKm, 5 * time.Minute, "5:00/km"},
		{"default unit", "", 4*time.Minute + 30*time.Second, "4:30/km"},
		{"per mile", PacePerMile, 5 * time.Minute, "8:03/mi"},
		{"zero pace", PacePerKm, 0, "-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := NewUnits(config.DisplayConfig{PaceUnit: tt.unit})
			if got := u.FormatPaceWithUnit(tt.perKm); got != tt.want {
				t.Errorf("FormatPaceWithUnit(%v) = %q, want %q", tt.perKm, got, tt.want)
			}
		})
	}
}

func TestUnits_PaceMinutes(t *testing.T) {
	u := NewUnits(config.DisplayConfig{PaceUnit: PacePerMile})
	got := u.PaceMinutes(time.Minute)
	want := analysis.MetersPerMile / analysis.MetersPerKm
	if diff := got - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("PaceMinutes(1m) = %v, want %v", got, want)
	}
}

func TestReport(t *testing.T) {
	result, err := analysis.Calculate(analysis.Distance5K, 1474*time.Second)
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	r := &service.Report{
		Result:         result,
		DistanceMeters: analysis.Distance5K,
		Duration:       1474 * time.Second,
		Label:          analysis.GetVDOTLabel(result.VDOT),
		CalculationID:  "abc-123",
	}

	out := Report(r, NewUnits(config.DisplayConfig{PaceUnit: PacePerKm}))

	for _, want := range []string{
		"39.1",
		"Intermediate",
		"5K in 24:34",
		"Half marathon",
		"Marathon",
		"Repetition",
		"5:57 - 7:07",
		"abc-123",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Report() missing %q\n%s", want, out)
		}
	}
}

func TestPaces_SinglePoint(t *testing.T) {
	paces := []analysis.PaceRange{{
		Zone:   analysis.IntensityZone{Name: "Steady", Low: 0.8, High: 0.8},
		Faster: 5 * time.Minute,
		Slower: 5 * time.Minute,
	}}

	out := Paces(paces, NewUnits(config.DisplayConfig{}))
	if !strings.Contains(out, "Steady") || !strings.Contains(out, "80-80%") {
		t.Errorf("Paces() = %q", out)
	}
	if strings.Contains(out, "5:00 - 5:00") {
		t.Errorf("equal bounds should render as a single pace: %q", out)
	}
}

func TestPrediction(t *testing.T) {
	out := Prediction(50, analysis.DistanceMarathon, 11440*time.Second, NewUnits(config.DisplayConfig{}))
	for _, want := range []string{"50.0", "Marathon", "3:10:40", "4:31/km"} {
		if !strings.Contains(out, want) {
			t.Errorf("Prediction() missing %q\n%s", want, out)
		}
	}
}

func TestTableRow(t *testing.T) {
	row := &store.TableRow{
		V: 500, FiveKTime: 1196, TenKTime: 2480, HalfTime: 5491, MarathonTime: 11440,
		EasyFastPace: 295, EasySlowPace: 334, MarathonPace: 271,
		ThresholdPace: 255, IntervalPace: 235, RepetitionPace: 220,
	}

	out := TableRow(row, NewUnits(config.DisplayConfig{PaceUnit: PacePerKm}))
	for _, want := range []string{"VDOT 50.0", "19:56", "41:20", "1:31:31", "3:10:40", "4:55 - 5:34", "4:15", "3:40"} {
		if !strings.Contains(out, want) {
			t.Errorf("TableRow() missing %q\n%s", want, out)
		}
	}
}

func TestHistory(t *testing.T) {
	if out := History(nil); !strings.Contains(out, "No calculations") {
		t.Errorf("History(nil) = %q", out)
	}

	out := History([]service.HistoryEntry{{
		Distance: "10K", Time: "45:00", VDOT: 45.3, Label: "Advanced Recreational", When: "2 minutes ago",
	}})
	for _, want := range []string{"10K", "45:00", "45.3", "2 minutes ago"} {
		if !strings.Contains(out, want) {
			t.Errorf("History() missing %q\n%s", want, out)
		}
	}
}

func TestCurve(t *testing.T) {
	points, err := analysis.PaceCurve(45, 1500, analysis.DistanceMarathon, 30)
	if err != nil {
		t.Fatalf("PaceCurve() error = %v", err)
	}

	out := Curve(45, points, NewUnits(config.DisplayConfig{}))
	if !strings.Contains(out, "VDOT 45.0") || !strings.Contains(out, "min/km") {
		t.Errorf("Curve() = %q", out)
	}
	if lines := strings.Count(out, "\n"); lines < 12 {
		t.Errorf("Curve() rendered %d lines, want a full plot", lines)
	}

	if out := Curve(45, nil, Units{}); !strings.Contains(out, "No data") {
		t.Errorf("Curve(nil) = %q", out)
	}
}

func TestRenderError(t *testing.T) {
	out := RenderError(errors.New("boom"))
	if !strings.Contains(out, "Error: boom") {
		t.Errorf("RenderError() = %q", out)
	}
}
