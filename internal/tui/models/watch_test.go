package models

import (
	"sync"
	"testing"
	"time"

	"github.com/allbin/serialconsole/console"
	"github.com/allbin/serialconsole/internal/tui/components"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sys/unix"
)

type fakeStep struct {
	line string
	err  error
}

type fakeSource struct {
	mu          sync.Mutex
	steps       []fakeStep
	calls       int
	interrupted int
}

func (s *fakeSource) ReadLine(dst []byte, timeout time.Duration, includeTerminator bool) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.calls >= len(s.steps) {
		return dst, console.ErrTimeout
	}
	step := s.steps[s.calls]
	s.calls++
	return append(dst, step.line...), step.err
}

func (s *fakeSource) Interrupt() {
	s.mu.Lock()
	s.interrupted++
	s.mu.Unlock()
}

// run feeds the model the message produced by cmd and returns the next cmd.
func run(t *testing.T, m *WatchModel, cmd tea.Cmd) tea.Cmd {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a read command")
	}
	_, next := m.Update(cmd())
	return next
}

func TestWatchModel_Outcomes(t *testing.T) {
	src := &fakeSource{steps: []fakeStep{
		{"boot ok", nil},
		{"", console.ErrTimeout},
		{"# ", console.ErrInterrupted},
		{"", console.ErrInterrupted},
		{"login:", nil},
	}}
	m := NewWatchModel(NewPump(src, time.Second), "/dev/ttyUSB0", "115200 8N1", false)

	cmd := m.Init()
	for i := 0; i < len(src.steps); i++ {
		cmd = run(t, m, cmd)
	}

	lines := m.Lines()
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	if string(lines[1].Line) != "# " || lines[1].Result != console.Interrupted {
		t.Errorf("partial line not kept: %+v", lines[1])
	}

	c := *m.Status().Counters()
	if c != (components.Counters{Lines: 2, Partials: 2, Timeouts: 1}) {
		t.Errorf("unexpected counters: %+v", c)
	}
	if cmd == nil {
		t.Error("model stopped reading after non-fatal outcomes")
	}
}

func TestWatchModel_ErrorStopsReading(t *testing.T) {
	src := &fakeSource{steps: []fakeStep{{"", unix.EIO}}}
	m := NewWatchModel(NewPump(src, time.Second), "/dev/ttyUSB0", "115200 8N1", true)

	if next := run(t, m, m.Init()); next != nil {
		t.Error("model kept reading after an error")
	}
	if m.Status().State() != components.StateFailed || m.Status().Err() == nil {
		t.Errorf("status not failed: %v %v", m.Status().State(), m.Status().Err())
	}
}

func TestWatchModel_Pause(t *testing.T) {
	src := &fakeSource{steps: []fakeStep{{"a", nil}, {"b", nil}}}
	m := NewWatchModel(NewPump(src, time.Second), "/dev/ttyUSB0", "115200 8N1", true)

	pending := m.Init()

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
	if cmd != nil || m.Status().State() != components.StatePaused {
		t.Fatal("pause should not start a read")
	}

	// The read already in flight still lands, but no new one is scheduled.
	if next := run(t, m, pending); next != nil {
		t.Error("paused model scheduled a read")
	}

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'p'}})
	if m.Status().State() != components.StateReading {
		t.Fatal("resume failed")
	}
	run(t, m, cmd)

	if len(m.Lines()) != 2 {
		t.Errorf("got %d lines, want 2", len(m.Lines()))
	}
}

func TestWatchModel_Quit(t *testing.T) {
	m := NewWatchModel(NewPump(&fakeSource{}, time.Second), "/dev/ttyUSB0", "115200 8N1", true)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("quit returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit key did not produce tea.QuitMsg")
	}
}

func TestPump_Stop(t *testing.T) {
	src := &fakeSource{steps: []fakeStep{{"never", nil}}}
	p := NewPump(src, time.Second)
	p.Stop()

	if _, ok := p.Next()().(StoppedMsg); !ok {
		t.Error("stopped pump still read")
	}
	if src.calls != 0 || src.interrupted != 1 {
		t.Errorf("calls=%d interrupted=%d", src.calls, src.interrupted)
	}
}
