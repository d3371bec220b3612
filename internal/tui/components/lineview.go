package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// DefaultScrollback is how many lines a LineView keeps.
const DefaultScrollback = 5000

// LineView is a scrolling viewport of console lines. It follows the newest
// line unless the user scrolled up.
type LineView struct {
	viewport   viewport.Model
	formatter  *LineFormatter
	lines      []LineMsg
	rendered   []string
	content    strings.Builder
	scrollback int
}

func NewLineView(width, height int, formatter *LineFormatter) *LineView {
	return &LineView{
		viewport:   viewport.New(width, height),
		formatter:  formatter,
		scrollback: DefaultScrollback,
	}
}

func (v *LineView) SetSize(width, height int) {
	v.viewport.Width = width
	v.viewport.Height = height
	v.show(v.viewport.AtBottom())
}

func (v *LineView) Width() int {
	return v.viewport.Width
}

// AddLine formats only msg. The whole buffer is joined again only when the
// scrollback limit drops old lines.
func (v *LineView) AddLine(msg LineMsg) {
	follow := v.viewport.AtBottom()
	formatted := v.formatter.FormatLine(msg)
	v.lines = append(v.lines, msg)
	v.rendered = append(v.rendered, formatted)

	if over := len(v.lines) - v.scrollback; over > 0 {
		v.lines = append(v.lines[:0], v.lines[over:]...)
		v.rendered = append(v.rendered[:0], v.rendered[over:]...)
		v.rebuild()
	} else {
		if v.content.Len() > 0 {
			v.content.WriteByte('\n')
		}
		v.content.WriteString(formatted)
	}
	v.show(follow)
}

// Lines returns the buffered lines, oldest first.
func (v *LineView) Lines() []LineMsg {
	return v.lines
}

// Refresh re-renders every line, for use after the display mode changed.
func (v *LineView) Refresh() {
	v.rendered = v.formatter.FormatLines(v.lines)
	v.rebuild()
	v.show(v.viewport.AtBottom())
}

func (v *LineView) rebuild() {
	v.content.Reset()
	v.content.WriteString(strings.Join(v.rendered, "\n"))
}

func (v *LineView) show(follow bool) {
	v.viewport.SetContent(v.content.String())
	if follow {
		v.viewport.GotoBottom()
	}
}

func (v *LineView) Clear() {
	v.lines = nil
	v.rendered = nil
	v.content.Reset()
	v.viewport.SetContent("")
	v.viewport.GotoTop()
}

func (v *LineView) ScrollUp() {
	v.viewport.HalfViewUp()
}

func (v *LineView) ScrollDown() {
	v.viewport.HalfViewDown()
}

func (v *LineView) Update(msg tea.Msg) tea.Cmd {
	// Only pass certain message types to viewport to prevent it from consuming our key bindings
	switch msg.(type) {
	case tea.WindowSizeMsg, tea.MouseMsg:
		var cmd tea.Cmd
		v.viewport, cmd = v.viewport.Update(msg)
		return cmd
	default:
		return nil
	}
}

func (v *LineView) View() string {
	return v.viewport.View()
}
