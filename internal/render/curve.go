package render

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"vdot/internal/analysis"
	"vdot/internal/service"
)

// Curve plots predicted race pace against distance. Points are expected in
// ascending distance order, as analysis.PaceCurve returns them.
func Curve(vdot float64, points []analysis.CurvePoint, u Units) string {
	if len(points) == 0 {
		return mutedStyle.Render("No data to plot")
	}

	data := make([]float64, len(points))
	for i, p := range points {
		data[i] = u.PaceMinutes(p.Pace)
	}

	first, last := points[0], points[len(points)-1]
	graph := asciigraph.Plot(data,
		asciigraph.Height(12),
		asciigraph.Width(60),
		asciigraph.Precision(2),
		asciigraph.Caption(fmt.Sprintf("pace (min/%s), %s to %s",
			u.DistanceLabel(),
			service.FormatDistance(first.Meters),
			service.FormatDistance(last.Meters),
		)),
	)

	title := titleStyle.Render(fmt.Sprintf("Race pace curve for VDOT %.1f", vdot))
	return lipgloss.JoinVertical(lipgloss.Left, title, "", graph)
}
