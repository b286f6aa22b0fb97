package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/velo-bench/velo/internal/history"
	"github.com/velo-bench/velo/internal/utils"
)

var historyCmd = &cobra.Command{
	Use:     "history",
	Aliases: []string{"h"},
	Short:   "Show recent probe results",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		entries, err := history.Recent(limit)
		defer history.CloseDB()
		if err != nil {
			return fmt.Errorf("failed to read history: %w", err)
		}
		if len(entries) == 0 {
			fmt.Println("No recorded probes yet.")
			return nil
		}

		headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
		cellStyle := lipgloss.NewStyle().Padding(0, 1)

		t := table.New().
			Border(lipgloss.RoundedBorder()).
			StyleFunc(func(row, _ int) lipgloss.Style {
				if row == table.HeaderRow {
					return headerStyle
				}
				return cellStyle
			}).
			Headers("Time", "Method", "URL", "Size", "Speed")

		for _, e := range entries {
			speed := "N/A"
			if e.SpeedOK {
				speed = utils.FormatSpeed(e.Speed)
			} else if e.Failure != "" {
				speed = e.Failure
			}
			t.Row(e.CreatedAt.Format("2006-01-02 15:04"), e.Method, e.URL, utils.FormatBytes(e.Received), speed)
		}

		fmt.Println(t.Render())
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "number of entries to show")
	rootCmd.AddCommand(historyCmd)
}
