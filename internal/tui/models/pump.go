package models

import (
	"sync"
	"time"

	"github.com/allbin/serialconsole/console"
	"github.com/allbin/serialconsole/internal/tui/components"
	tea "github.com/charmbracelet/bubbletea"
)

// LineSource is the part of console.Reader the watch loop needs.
type LineSource interface {
	ReadLine(dst []byte, timeout time.Duration, includeTerminator bool) ([]byte, error)
	Interrupt()
}

// StoppedMsg is delivered instead of a line once the Pump was stopped.
type StoppedMsg struct{}

// Pump turns blocking ReadLine calls into bubbletea commands. At most one
// read runs at a time, and Stop waits for it to return.
type Pump struct {
	src     LineSource
	timeout time.Duration
	now     func() time.Time

	mu      sync.Mutex
	stopped bool
}

func NewPump(src LineSource, timeout time.Duration) *Pump {
	return &Pump{src: src, timeout: timeout, now: time.Now}
}

// Next returns a command that reads one line.
func (p *Pump) Next() tea.Cmd {
	return func() tea.Msg {
		p.mu.Lock()
		defer p.mu.Unlock()

		if p.stopped {
			return StoppedMsg{}
		}

		line, err := p.src.ReadLine(nil, p.timeout, false)
		return components.LineMsg{
			Timestamp: p.now(),
			Line:      line,
			Result:    console.ResultOf(err),
			Err:       err,
		}
	}
}

// Stop interrupts a running read and blocks until it returned. Commands
// issued afterwards return StoppedMsg without touching the source.
func (p *Pump) Stop() {
	p.src.Interrupt()

	p.mu.Lock()
	p.stopped = true
	p.mu.Unlock()
}
