package components

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/allbin/serialconsole/console"
	"github.com/google/go-cmp/cmp"
)

func TestFormatLine(t *testing.T) {
	ts := time.Date(2025, 1, 2, 13, 4, 5, 6_000_000, time.UTC)

	tests := []struct {
		name       string
		timestamps bool
		hex        bool
		msg        LineMsg
		want       []string
		notWant    []string
	}{
		{
			name:       "plain line with timestamp",
			timestamps: true,
			msg:        LineMsg{Timestamp: ts, Line: []byte("login:"), Result: console.Success},
			want:       []string{"[13:04:05.006]", "login:"},
		},
		{
			name:    "control bytes are masked",
			msg:     LineMsg{Line: []byte("a\x1b[2Jb\tc"), Result: console.Success},
			want:    []string{"a.[2Jb    c"},
			notWant: []string{"\x1b"},
		},
		{
			name: "hex dump",
			hex:  true,
			msg:  LineMsg{Line: []byte("OK"), Result: console.Success},
			want: []string{"OK", "[4F 4B]"},
		},
		{
			name: "partial line is marked",
			msg:  LineMsg{Line: []byte("# "), Result: console.Interrupted},
			want: []string{"…", "# "},
		},
		{
			name: "error shows the cause",
			msg:  LineMsg{Result: console.Error, Err: errors.New("error reading serial port: input/output error")},
			want: []string{"✗ error reading serial port: input/output error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewLineFormatter(tt.timestamps, tt.hex).FormatLine(tt.msg)
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("FormatLine() = %q, missing %q", got, w)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(got, w) {
					t.Errorf("FormatLine() = %q, must not contain %q", got, w)
				}
			}
		})
	}
}

func TestLineFormatterToggles(t *testing.T) {
	f := NewLineFormatter(true, false)
	f.ToggleTimestamps()
	f.ToggleHex()

	mode := f.GetDisplayMode()
	if mode.ShowTimestamps || !mode.ShowHex {
		t.Errorf("unexpected display mode after toggles: %+v", mode)
	}
}

func TestLineViewScrollback(t *testing.T) {
	v := NewLineView(40, 5, NewLineFormatter(false, false))
	v.scrollback = 3

	for _, s := range []string{"1", "2", "3", "4", "5"} {
		v.AddLine(LineMsg{Line: []byte(s), Result: console.Success})
	}

	lines := v.Lines()
	if len(lines) != 3 || string(lines[0].Line) != "3" || string(lines[2].Line) != "5" {
		t.Fatalf("unexpected scrollback contents: %v", lines)
	}

	if got := v.content.String(); got != "3\n4\n5" {
		t.Errorf("content after trim = %q", got)
	}

	v.Clear()
	if len(v.Lines()) != 0 || v.content.Len() != 0 {
		t.Errorf("Clear left %d lines, content %q", len(v.Lines()), v.content.String())
	}
}

func TestLineViewRendersNewLinesOnly(t *testing.T) {
	f := NewLineFormatter(false, false)
	v := NewLineView(40, 5, f)
	ts := time.Date(2025, 1, 2, 13, 4, 5, 0, time.UTC)

	v.AddLine(LineMsg{Timestamp: ts, Line: []byte("old"), Result: console.Success})
	f.ToggleTimestamps()
	v.AddLine(LineMsg{Timestamp: ts, Line: []byte("new"), Result: console.Success})

	// Earlier lines keep their rendering until Refresh.
	if got := v.content.String(); got != "old\n[13:04:05.000] new" {
		t.Fatalf("content = %q", got)
	}

	v.Refresh()
	if got := v.content.String(); got != "[13:04:05.000] old\n[13:04:05.000] new" {
		t.Errorf("content after Refresh = %q", got)
	}
}

func TestCounters(t *testing.T) {
	var c Counters
	for _, r := range []console.Result{console.Success, console.Success, console.Timeout, console.Interrupted, console.Error} {
		c.Count(r)
	}
	want := Counters{Lines: 2, Partials: 1, Timeouts: 1, Errors: 1}
	if diff := cmp.Diff(want, c); diff != "" {
		t.Errorf("counters mismatch (-want +got):\n%s", diff)
	}
}

func TestStatusBarView(t *testing.T) {
	sb := NewStatusBar("/dev/ttyUSB0", `115200 8N1 eol=\r`)
	sb.SetWidth(160)
	sb.SetState(StateReading, nil)
	sb.Counters().Count(console.Success)

	got := sb.View("12:00:00")
	for _, want := range []string{"WATCH", "/dev/ttyUSB0", "115200 8N1", "1 lines", "12:00:00"} {
		if !strings.Contains(got, want) {
			t.Errorf("status bar missing %q: %q", want, got)
		}
	}

	sb.SetState(StateFailed, errors.New("device hung up"))
	if got := sb.View("12:00:01"); !strings.Contains(got, "FAILED") || !strings.Contains(got, "device hung up") {
		t.Errorf("failed status bar: %q", got)
	}
}
