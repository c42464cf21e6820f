package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"vdot/internal/analysis"
	"vdot/internal/service"
	"vdot/internal/store"
)

const sectionWidth = 52

// Report renders a full calculation: VDOT, equivalent times and training paces
func Report(r *service.Report, u Units) string {
	var sections []string

	sections = append(sections, titleStyle.Render("VDOT Calculator"))
	sections = append(sections, "")

	var summary []string
	if r.Duration > 0 {
		summary = append(summary, RenderMetric("Race", fmt.Sprintf("%s in %s",
			service.FormatDistance(r.DistanceMeters), service.FormatDuration(r.Duration))))
	}
	summary = append(summary, RenderMetric("VDOT", fmt.Sprintf("%.1f", r.VDOT)))
	summary = append(summary, RenderMetric("Level", r.Label))
	sections = append(sections, cardStyle.Render(strings.Join(summary, "\n")))
	sections = append(sections, "")

	sections = append(sections, Equivalents(r.Equivalents, u))
	sections = append(sections, "")
	sections = append(sections, Paces(r.Paces, u))

	if r.CalculationID != "" {
		sections = append(sections, "")
		sections = append(sections, mutedStyle.Render("Saved as "+r.CalculationID))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// Equivalents renders the equivalent race times table
func Equivalents(eqs []analysis.EquivalentTime, u Units) string {
	var lines []string
	lines = append(lines, RenderSection("Equivalent Times", sectionWidth))
	lines = append(lines, tableHeaderStyle.Render(fmt.Sprintf("  %-15s  %10s  %12s", "Distance", "Time", "Pace")))

	for _, eq := range eqs {
		perKm := time.Duration(float64(eq.Time) * analysis.MetersPerKm / eq.Distance.Meters)
		lines = append(lines, fmt.Sprintf("  %-15s  %10s  %12s",
			eq.Distance.Name,
			service.FormatDuration(eq.Time),
			u.FormatPaceWithUnit(perKm),
		))
	}
	return strings.Join(lines, "\n")
}

// Paces renders the training pace table
func Paces(paces []analysis.PaceRange, u Units) string {
	var lines []string
	lines = append(lines, RenderSection("Training Paces", sectionWidth))
	lines = append(lines, tableHeaderStyle.Render(fmt.Sprintf("  %-12s  %-10s  %s", "Zone", "Intensity", "Pace (per "+u.DistanceLabel()+")")))

	for _, p := range paces {
		intensity := fmt.Sprintf("%.0f-%.0f%%", p.Zone.Low*100, p.Zone.High*100)
		pace := u.FormatPace(p.Faster)
		if p.Slower != p.Faster {
			pace += " - " + u.FormatPace(p.Slower)
		}
		lines = append(lines, fmt.Sprintf("  %-12s  %-10s  %s", p.Zone.Name, intensity, pace))
	}
	return strings.Join(lines, "\n")
}

// Prediction renders a single equivalent time
func Prediction(vdot, meters float64, t time.Duration, u Units) string {
	perKm := time.Duration(float64(t) * analysis.MetersPerKm / meters)
	return lipgloss.JoinVertical(lipgloss.Left,
		RenderMetric("VDOT", fmt.Sprintf("%.1f", vdot)),
		RenderMetric("Distance", service.FormatDistance(meters)),
		RenderMetric("Time", service.FormatDuration(t)),
		RenderMetric("Pace", u.FormatPaceWithUnit(perKm)),
	)
}

// TableRow renders one stored Daniels table row
func TableRow(row *store.TableRow, u Units) string {
	secs := func(n int) string { return service.FormatDuration(time.Duration(n) * time.Second) }

	var lines []string
	lines = append(lines, titleStyle.Render(fmt.Sprintf("VDOT %.1f", float64(row.V)/10)))
	lines = append(lines, "")
	lines = append(lines, RenderSection("Race Times", sectionWidth))
	lines = append(lines, RenderMetric("5K", secs(row.FiveKTime)))
	lines = append(lines, RenderMetric("10K", secs(row.TenKTime)))
	lines = append(lines, RenderMetric("Half marathon", secs(row.HalfTime)))
	lines = append(lines, RenderMetric("Marathon", secs(row.MarathonTime)))
	lines = append(lines, "")
	lines = append(lines, RenderSection("Paces per "+u.DistanceLabel(), sectionWidth))
	lines = append(lines, RenderMetric("Easy", u.FormatPaceSeconds(row.EasyFastPace)+" - "+u.FormatPaceSeconds(row.EasySlowPace)))
	lines = append(lines, RenderMetric("Marathon", u.FormatPaceSeconds(row.MarathonPace)))
	lines = append(lines, RenderMetric("Threshold", u.FormatPaceSeconds(row.ThresholdPace)))
	lines = append(lines, RenderMetric("Interval", u.FormatPaceSeconds(row.IntervalPace)))
	lines = append(lines, RenderMetric("Repetition", u.FormatPaceSeconds(row.RepetitionPace)))
	return strings.Join(lines, "\n")
}

// History renders recent calculations
func History(entries []service.HistoryEntry) string {
	if len(entries) == 0 {
		return mutedStyle.Render("No calculations recorded yet.")
	}

	var lines []string
	lines = append(lines, tableHeaderStyle.Render(fmt.Sprintf("%-15s  %10s  %6s  %-22s  %s", "Distance", "Time", "VDOT", "Level", "When")))
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("%-15s  %10s  %6.1f  %-22s  %s",
			e.Distance, e.Time, e.VDOT, e.Label, mutedStyle.Render(e.When)))
	}
	return strings.Join(lines, "\n")
}
