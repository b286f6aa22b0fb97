package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/velo-bench/velo/internal/engine"
	"github.com/velo-bench/velo/internal/engine/events"
	"github.com/velo-bench/velo/internal/target"
)

func TestModel_ProbeLifecycle(t *testing.T) {
	m := NewModel()

	updated, cmd := m.Update(events.ProbeStartedMsg{
		Index:  0,
		Total:  3,
		Target: target.Target{Method: "GET", URL: "http://example.com/file"},
	})
	m = updated.(Model)

	if m.active == nil {
		t.Fatal("probe start did not activate the display")
	}
	if cmd == nil {
		t.Fatal("probe start should print a scrollback line")
	}

	view := m.View()
	if !strings.Contains(view, "[1/3]") {
		t.Errorf("view missing probe counter: %q", view)
	}

	updated, _ = m.Update(events.ProgressMsg{Received: 5000, ExpectedTotal: 10000})
	m = updated.(Model)
	if m.received != 5000 || m.total != 10000 {
		t.Errorf("progress not tracked: received=%d total=%d", m.received, m.total)
	}

	updated, cmd = m.Update(events.ProbeFinishedMsg{Outcome: engine.Outcome{
		Target:     target.Target{Method: "GET", URL: "http://example.com/file"},
		Speed:      1000,
		SpeedKnown: true,
	}})
	m = updated.(Model)
	if m.active != nil {
		t.Error("finished probe should deactivate the display")
	}
	if cmd == nil {
		t.Error("finished probe should print a scrollback line")
	}
	if m.View() != "" {
		t.Errorf("idle view should be empty, got %q", m.View())
	}
}

func TestModel_RunDoneQuits(t *testing.T) {
	m := NewModel()

	updated, cmd := m.Update(events.RunDoneMsg{})
	m = updated.(Model)

	if !m.done {
		t.Error("run done not recorded")
	}
	if cmd == nil {
		t.Fatal("run done should quit the program")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected a quit command")
	}
}

func TestModel_CtrlCQuits(t *testing.T) {
	m := NewModel()

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("ctrl+c should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected a quit command")
	}
}

func TestModel_ViewWithoutLengthShowsByteCount(t *testing.T) {
	m := NewModel()

	updated, _ := m.Update(events.ProbeStartedMsg{
		Index:  1,
		Total:  2,
		Target: target.Target{Method: "GET", URL: "http://example.com/stream"},
	})
	m = updated.(Model)
	updated, _ = m.Update(events.ProgressMsg{Received: 2048, ExpectedTotal: -1})
	m = updated.(Model)

	view := m.View()
	if !strings.Contains(view, "[2/2]") {
		t.Errorf("view missing counter: %q", view)
	}
	if !strings.Contains(view, "2.0 KiB") {
		t.Errorf("view should fall back to a byte count without a length hint: %q", view)
	}
}
