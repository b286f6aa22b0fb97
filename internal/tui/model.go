// Package tui renders live probe progress inline on stderr.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/velo-bench/velo/internal/engine"
	"github.com/velo-bench/velo/internal/engine/events"
	"github.com/velo-bench/velo/internal/utils"
)

const defaultBarWidth = 40

// Model is the inline progress display for one run. Finished probes are
// printed above the managed area; the view shows only the active probe.
type Model struct {
	width int
	bar   progress.Model

	// active probe, nil between probes
	active    *activeProbe
	startedAt time.Time
	received  int64
	total     int64

	done bool
}

type activeProbe struct {
	index  int
	total  int
	method string
	url    string
}

// NewModel returns a fresh progress model.
func NewModel() Model {
	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = defaultBarWidth
	return Model{bar: bar}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		if msg.Width > 0 && msg.Width < defaultBarWidth+30 {
			m.bar.Width = msg.Width - 30
			if m.bar.Width < 10 {
				m.bar.Width = 10
			}
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil

	case events.ProbeStartedMsg:
		m.active = &activeProbe{
			index:  msg.Index,
			total:  msg.Total,
			method: msg.Target.Method,
			url:    msg.Target.URL,
		}
		m.startedAt = time.Now()
		m.received = 0
		m.total = -1
		return m, tea.Println(renderStartLine(msg.Target.Method, msg.Target.URL))

	case events.ProgressMsg:
		m.received = msg.Received
		m.total = msg.ExpectedTotal
		return m, nil

	case events.ProbeFinishedMsg:
		m.active = nil
		return m, tea.Println(renderOutcomeLine(msg.Outcome))

	case events.RunDoneMsg:
		m.done = true
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) View() string {
	if m.done || m.active == nil {
		return ""
	}

	counter := CounterStyle.Render(fmt.Sprintf("[%d/%d]", m.active.index+1, m.active.total))

	var bar string
	if m.total > 0 {
		pct := float64(m.received) / float64(m.total)
		if pct > 1 {
			pct = 1
		}
		bar = m.bar.ViewAs(pct)
	} else {
		bar = StatsStyle.Render(utils.FormatBytes(m.received))
	}

	stats := ""
	if elapsed := time.Since(m.startedAt); elapsed > time.Second/2 && m.received > 0 {
		rate := int64(float64(m.received) / elapsed.Seconds())
		stats = StatsStyle.Render(fmt.Sprintf(" %s  %s", utils.FormatBytes(m.received), utils.FormatSpeed(rate)))
	}

	return fmt.Sprintf("%s %s%s", counter, bar, stats)
}

func renderStartLine(method, url string) string {
	return fmt.Sprintf("%s %s %s", ArrowStyle.Render("==>"), MethodStyle.Render(method), url)
}

// renderOutcomeLine formats a finished probe for the scrollback area.
func renderOutcomeLine(o engine.Outcome) string {
	if o.OK() {
		detail := fmt.Sprintf("    done: %s (%s in %s)",
			o.FormatSpeed(), utils.FormatBytes(o.Received), o.Elapsed.Round(time.Millisecond))
		return SuccessStyle.Render(detail)
	}
	return ErrorStyle.Render(fmt.Sprintf("    failed: %s", o.Reason()))
}
