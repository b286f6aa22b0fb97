package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/velo-bench/velo/internal/engine/events"
)

// sendInterval throttles progress messages so a fast local download does
// not flood the render loop.
const sendInterval = 50 * time.Millisecond

// ProgramSink forwards engine progress into a running bubbletea program.
// It is called from a single consumer goroutine, so no locking is needed.
type ProgramSink struct {
	program *tea.Program
	last    time.Time
}

// NewProgramSink wraps a program as an engine.ProgressSink.
func NewProgramSink(p *tea.Program) *ProgramSink {
	return &ProgramSink{program: p}
}

func (s *ProgramSink) Progress(received, total int64) {
	now := time.Now()
	if now.Sub(s.last) < sendInterval {
		return
	}
	s.last = now
	s.program.Send(events.ProgressMsg{Received: received, ExpectedTotal: total})
}

func (s *ProgramSink) Done() {
	s.last = time.Time{}
}
