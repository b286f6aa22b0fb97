// Package report sorts probe outcomes and renders the summary table.
package report

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/muesli/termenv"

	"github.com/velo-bench/velo/internal/engine"
	"github.com/velo-bench/velo/internal/utils"
)

// Sort orders outcomes ascending by speed, unknown/failed speeds lowest.
// Rendering iterates in reverse so the fastest target prints first.
func Sort(outcomes []engine.Outcome) {
	sort.SliceStable(outcomes, func(i, j int) bool {
		return outcomes[i].Less(outcomes[j])
	})
}

// palette returns colors fitting the terminal background.
func palette() (header, border, fail lipgloss.Color) {
	if termenv.HasDarkBackground() {
		return lipgloss.Color("#bd93f9"), lipgloss.Color("#44475a"), lipgloss.Color("#ff5555")
	}
	return lipgloss.Color("#6f42c1"), lipgloss.Color("#d0d0d0"), lipgloss.Color("#cc0000")
}

// Render builds the summary table, fastest target first. Outcomes must
// already be sorted ascending (see Sort).
func Render(outcomes []engine.Outcome) string {
	headerColor, borderColor, failColor := palette()

	headerStyle := lipgloss.NewStyle().Foreground(headerColor).Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	failStyle := cellStyle.Foreground(failColor)

	failedRows := make(map[int]bool)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(borderColor)).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if failedRows[row] {
				return failStyle
			}
			return cellStyle
		}).
		Headers("URL", "Method", "Size", "Kind", "Speed")

	// Reverse iteration: fastest first
	for i := len(outcomes) - 1; i >= 0; i-- {
		o := outcomes[i]

		size := ""
		if o.Received > 0 {
			size = utils.FormatBytes(o.Received)
		}

		row := len(outcomes) - 1 - i
		if !o.OK() {
			failedRows[row] = true
		}

		t.Row(o.Target.URL, o.Target.Method, size, o.ContentKind, o.FormatSpeed())
	}

	return t.Render()
}
