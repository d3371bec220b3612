package models

import (
	"time"

	"github.com/allbin/serialconsole/console"
	"github.com/allbin/serialconsole/internal/tui/components"
	"github.com/allbin/serialconsole/internal/tui/keys"
	"github.com/allbin/serialconsole/internal/tui/styles"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// WatchModel shows console lines as they arrive.
type WatchModel struct {
	pump      *Pump
	formatter *components.LineFormatter
	lines     *components.LineView
	statusBar *components.StatusBar
	help      help.Model
	keys      keys.WatchKeys

	reading bool
	ready   bool
	clock   func() time.Time
}

func NewWatchModel(pump *Pump, portPath, settings string, showTimestamps bool) *WatchModel {
	formatter := components.NewLineFormatter(showTimestamps, false)
	statusBar := components.NewStatusBar(portPath, settings)
	statusBar.SetState(components.StateReading, nil)

	return &WatchModel{
		pump:      pump,
		formatter: formatter,
		lines:     components.NewLineView(80, 20, formatter),
		statusBar: statusBar,
		help:      help.New(),
		keys:      keys.NewWatchKeys(),
		clock:     time.Now,
	}
}

func (m *WatchModel) Init() tea.Cmd {
	return m.read()
}

// read schedules the next line unless one is already pending.
func (m *WatchModel) read() tea.Cmd {
	if m.reading {
		return nil
	}
	m.reading = true
	return m.pump.Next()
}

func (m *WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// Status bar and content border take one line each
		m.lines.SetSize(msg.Width, msg.Height-2)
		m.statusBar.SetWidth(msg.Width)
		m.ready = true
		return m, m.lines.Update(msg)

	case tea.MouseMsg:
		return m, m.lines.Update(msg)

	case components.LineMsg:
		m.reading = false
		return m, m.handleLine(msg)

	case StoppedMsg:
		m.reading = false
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll

		case key.Matches(msg, m.keys.Clear):
			m.lines.Clear()

		case key.Matches(msg, m.keys.Pause):
			return m, m.togglePause()

		case key.Matches(msg, m.keys.ToggleTimestamps):
			m.formatter.ToggleTimestamps()
			m.lines.Refresh()

		case key.Matches(msg, m.keys.ToggleHex):
			m.formatter.ToggleHex()
			m.lines.Refresh()

		case key.Matches(msg, m.keys.ScrollUp):
			m.lines.ScrollUp()

		case key.Matches(msg, m.keys.ScrollDown):
			m.lines.ScrollDown()
		}
	}

	return m, nil
}

func (m *WatchModel) handleLine(msg components.LineMsg) tea.Cmd {
	m.statusBar.Counters().Count(msg.Result)

	switch msg.Result {
	case console.Success:
		m.lines.AddLine(msg)
	case console.Interrupted:
		if len(msg.Line) > 0 {
			m.lines.AddLine(msg)
		}
	case console.Error:
		m.lines.AddLine(msg)
		m.statusBar.SetState(components.StateFailed, msg.Err)
		return nil
	}

	if m.statusBar.State() != components.StateReading {
		return nil
	}
	return m.read()
}

func (m *WatchModel) togglePause() tea.Cmd {
	switch m.statusBar.State() {
	case components.StateReading:
		m.statusBar.SetState(components.StatePaused, nil)
	case components.StatePaused:
		m.statusBar.SetState(components.StateReading, nil)
		return m.read()
	}
	return nil
}

// Lines returns what the view currently holds.
func (m *WatchModel) Lines() []components.LineMsg {
	return m.lines.Lines()
}

// Status returns the status bar, for counters and state.
func (m *WatchModel) Status() *components.StatusBar {
	return m.statusBar
}

func (m *WatchModel) View() string {
	content := "Waiting for data..."
	if m.ready {
		content = m.lines.View()
	}

	sections := []string{styles.ContentBorderStyle.Render(content)}
	if m.help.ShowAll {
		sections = append(sections, styles.HelpStyle.Render(m.help.View(m.keys)))
	}
	sections = append(sections, m.statusBar.View(m.clock().Format("15:04:05")))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
