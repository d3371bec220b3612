package styles

import (
	"github.com/allbin/serialconsole/console"
	"github.com/allbin/serialconsole/internal/tui/colors"
	"github.com/charmbracelet/lipgloss"
)

var (
	TimestampStyle = lipgloss.NewStyle().
			Foreground(colors.Subtext0)

	LineStyle = lipgloss.NewStyle().
			Foreground(colors.Text)

	HexStyle = lipgloss.NewStyle().
			Foreground(colors.Overlay0)

	// Outcome markers
	PartialStyle = lipgloss.NewStyle().
			Foreground(colors.Peach).
			Bold(true)

	TimeoutStyle = lipgloss.NewStyle().
			Foreground(colors.Yellow)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(colors.Red).
			Bold(true)

	// Content area styles
	ContentBorderStyle = lipgloss.NewStyle().
				BorderTop(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(colors.Surface1)

	HelpStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colors.Surface2).
			Padding(1, 2).
			Margin(1, 0)
)

// OutcomeStyle returns the marker style for a read outcome.
func OutcomeStyle(result console.Result) lipgloss.Style {
	switch result {
	case console.Success:
		return LineStyle
	case console.Timeout:
		return TimeoutStyle
	case console.Interrupted:
		return PartialStyle
	default:
		return ErrorStyle
	}
}
