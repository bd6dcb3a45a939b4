package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/nikitabhat/focusd/internal/metrics"
)

type AppData struct {
	Header       string
	LeftPane     string
	RightPane    string
	StatusLine   string
	Footer       string
	Notification string
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// swatches maps the semantic color tokens of the metrics engine onto the
// terminal palette. Everything user-visible goes through this table so the
// theme stays in one place.
var swatches = map[metrics.Color]lipgloss.Color{
	metrics.ColorSuccess: lipgloss.Color("10"),
	metrics.ColorWarning: lipgloss.Color("11"),
	metrics.ColorError:   lipgloss.Color("9"),
	metrics.ColorNeutral: lipgloss.Color("8"),
	metrics.ColorBlue:    lipgloss.Color("12"),
	metrics.ColorGreen:   lipgloss.Color("2"),
	metrics.ColorOrange:  lipgloss.Color("208"),
	metrics.ColorPurple:  lipgloss.Color("13"),
	metrics.ColorTeal:    lipgloss.Color("14"),
	metrics.ColorPink:    lipgloss.Color("205"),
}

func Swatch(c metrics.Color) lipgloss.Color {
	if v, ok := swatches[c]; ok {
		return v
	}
	return swatches[metrics.ColorNeutral]
}

// Badge renders a short label tinted with a semantic color.
func Badge(label string, c metrics.Color) string {
	if strings.TrimSpace(label) == "" {
		return ""
	}
	return lipgloss.NewStyle().Foreground(Swatch(c)).Render("[" + label + "]")
}

func RenderApp(data AppData) string {
	left := panelStyle.Width(58).Render(data.LeftPane)
	right := panelStyle.Width(58).Render(data.RightPane)
	row := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	status := statusStyle.Render(data.StatusLine)
	if strings.Contains(strings.ToLower(data.StatusLine), "error") {
		status = errorStyle.Render(data.StatusLine)
	}

	lines := []string{
		headerStyle.Render(data.Header),
		row,
		status,
	}
	if data.Notification != "" {
		lines = append(lines, panelStyle.Render(data.Notification))
	}
	if data.Footer != "" {
		lines = append(lines, footerStyle.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

func RenderMarkdown(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	out, err := glamour.Render(md, "dark")
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
