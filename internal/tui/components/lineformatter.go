package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/allbin/serialconsole/console"
	"github.com/allbin/serialconsole/internal/tui/styles"
)

// LineMsg carries the outcome of one ReadLine call.
type LineMsg struct {
	Timestamp time.Time
	Line      []byte
	Result    console.Result
	Err       error
}

type DisplayMode struct {
	ShowTimestamps bool
	ShowHex        bool
}

type LineFormatter struct {
	mode DisplayMode
}

func NewLineFormatter(showTimestamps, showHex bool) *LineFormatter {
	return &LineFormatter{
		mode: DisplayMode{
			ShowTimestamps: showTimestamps,
			ShowHex:        showHex,
		},
	}
}

func (lf *LineFormatter) GetDisplayMode() DisplayMode {
	return lf.mode
}

func (lf *LineFormatter) ToggleTimestamps() {
	lf.mode.ShowTimestamps = !lf.mode.ShowTimestamps
}

func (lf *LineFormatter) ToggleHex() {
	lf.mode.ShowHex = !lf.mode.ShowHex
}

// FormatLine renders one line. Partial lines and errors get a marker.
func (lf *LineFormatter) FormatLine(msg LineMsg) string {
	var parts []string

	if lf.mode.ShowTimestamps {
		parts = append(parts, styles.TimestampStyle.Render(fmt.Sprintf("[%s]", msg.Timestamp.Format("15:04:05.000"))))
	}

	switch msg.Result {
	case console.Interrupted:
		parts = append(parts, styles.PartialStyle.Render("…"))
	case console.Error:
		text := "error"
		if msg.Err != nil {
			text = msg.Err.Error()
		}
		parts = append(parts, styles.ErrorStyle.Render("✗ "+text))
		return strings.Join(parts, " ")
	}

	parts = append(parts, styles.LineStyle.Render(printable(msg.Line)))

	if lf.mode.ShowHex && len(msg.Line) > 0 {
		parts = append(parts, styles.HexStyle.Render(fmt.Sprintf("[% X]", msg.Line)))
	}

	return strings.Join(parts, " ")
}

func (lf *LineFormatter) FormatLines(lines []LineMsg) []string {
	formatted := make([]string, len(lines))
	for i, msg := range lines {
		formatted[i] = lf.FormatLine(msg)
	}
	return formatted
}

// printable replaces bytes that would act as terminal control sequences.
func printable(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b))
	for _, c := range b {
		switch {
		case c == '\t':
			sb.WriteString("    ")
		case c >= 32 && c <= 126:
			sb.WriteByte(c)
		default:
			sb.WriteByte('.')
		}
	}
	return sb.String()
}
