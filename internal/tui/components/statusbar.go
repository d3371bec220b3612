package components

import (
	"fmt"

	"github.com/allbin/serialconsole/console"
	"github.com/allbin/serialconsole/internal/tui/colors"
	"github.com/charmbracelet/lipgloss"
)

// ReaderState is what the watch loop is currently doing.
type ReaderState int

const (
	StateOpening ReaderState = iota
	StateReading
	StatePaused
	StateFailed
)

func (s ReaderState) String() string {
	switch s {
	case StateOpening:
		return "OPENING"
	case StateReading:
		return "WATCH"
	case StatePaused:
		return "PAUSED"
	case StateFailed:
		return "FAILED"
	default:
		return "WATCH"
	}
}

// Counters tallies read outcomes.
type Counters struct {
	Lines    int
	Partials int
	Timeouts int
	Errors   int
}

// Count records one outcome.
func (c *Counters) Count(result console.Result) {
	switch result {
	case console.Success:
		c.Lines++
	case console.Interrupted:
		c.Partials++
	case console.Timeout:
		c.Timeouts++
	default:
		c.Errors++
	}
}

type StatusBar struct {
	portPath string
	settings string
	state    ReaderState
	err      error
	width    int
	counters Counters
}

func NewStatusBar(portPath, settings string) *StatusBar {
	return &StatusBar{
		portPath: portPath,
		settings: settings,
		state:    StateOpening,
	}
}

func (sb *StatusBar) SetWidth(width int) {
	sb.width = width
}

func (sb *StatusBar) SetState(state ReaderState, err error) {
	sb.state = state
	sb.err = err
}

func (sb *StatusBar) State() ReaderState {
	return sb.state
}

func (sb *StatusBar) Err() error {
	return sb.err
}

func (sb *StatusBar) Counters() *Counters {
	return &sb.counters
}

// View renders the status bar: state, port, reader health on the left,
// settings, counters and clock on the right.
func (sb *StatusBar) View(timestamp string) string {
	terminalWidth := sb.width
	if terminalWidth <= 0 {
		terminalWidth = 80
	}

	stateColor := colors.Blue
	switch sb.state {
	case StateOpening:
		stateColor = colors.Yellow
	case StatePaused:
		stateColor = colors.Peach
	case StateFailed:
		stateColor = colors.Red
	}
	mode := lipgloss.NewStyle().
		Foreground(colors.Base).
		Background(stateColor).
		Bold(true).
		Padding(0, 1).
		Render(sb.state.String())

	port := lipgloss.NewStyle().
		Foreground(colors.Mauve).
		Bold(true).
		Padding(0, 1).
		Render(sb.portPath)

	var indicator string
	switch {
	case sb.err != nil:
		indicator = lipgloss.NewStyle().Foreground(colors.Red).Render("✗ " + sb.err.Error())
	case sb.state == StateReading:
		indicator = lipgloss.NewStyle().Foreground(colors.Green).Render("●")
	default:
		indicator = lipgloss.NewStyle().Foreground(colors.Yellow).Render("○")
	}

	divider := lipgloss.NewStyle().
		Foreground(colors.Surface2).
		Padding(0, 1).
		Render("│")

	details := lipgloss.NewStyle().
		Foreground(colors.Subtext0).
		Padding(0, 1).
		Render(fmt.Sprintf("⚡ %s", sb.settings))

	counts := lipgloss.NewStyle().
		Foreground(colors.Subtext0).
		Padding(0, 1).
		Render(fmt.Sprintf("%d lines %d partial %d idle", sb.counters.Lines, sb.counters.Partials, sb.counters.Timeouts))

	clock := lipgloss.NewStyle().
		Foreground(colors.Subtext1).
		Padding(0, 1).
		Render(timestamp)

	leftSide := lipgloss.JoinHorizontal(lipgloss.Left, mode, port, indicator, divider)
	rightSide := lipgloss.JoinHorizontal(lipgloss.Left, details, divider, counts, divider, clock)

	spacerWidth := terminalWidth - lipgloss.Width(leftSide) - lipgloss.Width(rightSide)
	if spacerWidth < 1 {
		spacerWidth = 1
	}
	spacer := lipgloss.NewStyle().Width(spacerWidth).Render("")

	return lipgloss.NewStyle().
		Foreground(colors.Text).
		Background(colors.Surface0).
		Width(terminalWidth).
		Render(lipgloss.JoinHorizontal(lipgloss.Left, leftSide, spacer, rightSide))
}
