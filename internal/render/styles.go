package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Colors
var (
	primaryColor   = lipgloss.Color("#7C3AED") // Purple
	secondaryColor = lipgloss.Color("#10B981") // Green
	errorColor     = lipgloss.Color("#EF4444") // Red
	mutedColor     = lipgloss.Color("#6B7280") // Gray
	textColor      = lipgloss.Color("#F9FAFB") // Light gray
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(secondaryColor)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor).
			Padding(0, 2)

	metricLabelStyle = lipgloss.NewStyle().
				Foreground(mutedColor).
				Width(18)

	metricValueStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(textColor)

	tableHeaderStyle = lipgloss.NewStyle().
				Foreground(primaryColor)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	successStyle = lipgloss.NewStyle().
			Foreground(secondaryColor)
)

// RenderMetric renders a label/value pair on one line
func RenderMetric(label, value string) string {
	return lipgloss.JoinHorizontal(
		lipgloss.Left,
		metricLabelStyle.Render(label),
		metricValueStyle.Render(value),
	)
}

// RenderSection renders a section heading padded with a rule to width
func RenderSection(title string, width int) string {
	head := "── " + title + " "
	if n := width - lipgloss.Width(head); n > 0 {
		head += strings.Repeat("─", n)
	}
	return sectionStyle.Render(head)
}

// RenderError renders an error message
func RenderError(err error) string {
	return errorStyle.Render("Error: " + err.Error())
}

// RenderSuccess renders a confirmation message
func RenderSuccess(msg string) string {
	return successStyle.Render(msg)
}
