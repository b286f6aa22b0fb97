// Package cmd wires the velo command line interface.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/velo-bench/velo/internal/config"
	"github.com/velo-bench/velo/internal/engine"
	"github.com/velo-bench/velo/internal/engine/events"
	"github.com/velo-bench/velo/internal/engine/types"
	"github.com/velo-bench/velo/internal/history"
	"github.com/velo-bench/velo/internal/report"
	"github.com/velo-bench/velo/internal/runner"
	"github.com/velo-bench/velo/internal/target"
	"github.com/velo-bench/velo/internal/tui"
	"github.com/velo-bench/velo/internal/utils"
)

// Version information - set via ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:     "velo [url]...",
	Short:   "Measure HTTP(S) download throughput from your terminal",
	Long: `velo probes one or more HTTP(S) targets sequentially, streams each
response body under a transfer deadline and reports the achieved
download speed, fastest target first.`,
	Version:      Version,
	Args:         cobra.ArbitraryArgs,
	SilenceUsage: true,
	RunE:         runRoot,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringP("file", "f", "", `file with one target per line ("<url>" or "<method> <url>")`)
	rootCmd.Flags().Bool("clipboard", false, "read the target URL from the system clipboard")
	rootCmd.Flags().Bool("no-progress", false, "disable the live progress display")
	rootCmd.Flags().Bool("no-history", false, "do not record results to the history database")
	rootCmd.Flags().Bool("debug", false, "enable debug logging")
	rootCmd.Flags().Duration("connect-timeout", 0, "override the connect timeout (default 10s)")
	rootCmd.Flags().Duration("transfer-deadline", 0, "override the transfer deadline (default 60s)")
}

func runRoot(cmd *cobra.Command, args []string) error {
	debug, _ := cmd.Flags().GetBool("debug")
	utils.InitLogger(debug)
	log := utils.GetLogger("cli")

	settings, err := config.LoadSettings()
	if err != nil {
		log.Warn().Err(err).Msg("failed to load settings, using defaults")
		settings = config.DefaultSettings()
	}

	filePath, _ := cmd.Flags().GetString("file")
	useClipboard, _ := cmd.Flags().GetBool("clipboard")

	targets, err := gatherTargets(args, filePath, useClipboard)
	if err != nil {
		return err
	}

	runtime := &types.RuntimeConfig{
		ConnectTimeout:      settings.Probe.ConnectTimeout,
		TransferDeadline:    settings.Probe.TransferDeadline,
		UserAgent:           settings.General.UserAgent,
		ProxyURL:            settings.General.ProxyURL,
		SkipTLSVerification: settings.General.SkipTLSVerification,
	}
	if d, _ := cmd.Flags().GetDuration("connect-timeout"); d > 0 {
		runtime.ConnectTimeout = d
	}
	if d, _ := cmd.Flags().GetDuration("transfer-deadline"); d > 0 {
		runtime.TransferDeadline = d
	}

	r := runner.New(engine.NewProber(runtime))

	noProgress, _ := cmd.Flags().GetBool("no-progress")
	useTUI := !noProgress && !settings.General.DisableProgress && isTerminal(os.Stderr)

	var outcomes []engine.Outcome
	if useTUI {
		outcomes = runWithProgress(r, targets)
	} else {
		outcomes = runPlain(r, targets)
	}

	noHistory, _ := cmd.Flags().GetBool("no-history")
	if settings.History.Enabled && !noHistory {
		runID := uuid.New().String()
		if err := history.Record(runID, outcomes, settings.History.RetentionCount); err != nil {
			log.Warn().Err(err).Msg("failed to record history")
		}
		history.CloseDB()
	}

	report.Sort(outcomes)
	fmt.Println(report.Render(outcomes))

	return nil
}

// gatherTargets builds the target list from exactly one input source.
func gatherTargets(args []string, filePath string, useClipboard bool) ([]target.Target, error) {
	sources := 0
	if len(args) > 0 {
		sources++
	}
	if filePath != "" {
		sources++
	}
	if useClipboard {
		sources++
	}
	if sources != 1 {
		return nil, errors.New("provide target URLs, --file, or --clipboard (exactly one source)")
	}

	switch {
	case filePath != "":
		return target.ParseFile(filePath)
	case useClipboard:
		text, err := clipboard.ReadAll()
		if err != nil {
			return nil, fmt.Errorf("failed to read clipboard: %w", err)
		}
		return target.FromArgs([]string{text})
	default:
		return target.FromArgs(args)
	}
}

// runWithProgress drives the run behind an inline bubbletea display.
func runWithProgress(r *runner.Runner, targets []target.Target) []engine.Outcome {
	p := tea.NewProgram(tui.NewModel(), tea.WithOutput(os.Stderr))

	r.OnStart = func(index, total int, tgt target.Target) {
		p.Send(events.ProbeStartedMsg{Index: index, Total: total, Target: tgt})
	}
	r.SinkFor = func(index, total int, tgt target.Target) engine.ProgressSink {
		return tui.NewProgramSink(p)
	}
	r.OnOutcome = func(o engine.Outcome) {
		p.Send(events.ProbeFinishedMsg{Outcome: o})
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var outcomes []engine.Outcome
	done := make(chan struct{})
	go func() {
		outcomes = r.Run(ctx, targets)
		close(done)
		p.Send(events.RunDoneMsg{})
	}()

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "progress display failed: %v\n", err)
	}

	// Quitting the display early (ctrl+c) cancels the remaining probes
	cancel()
	<-done

	return outcomes
}

// runPlain drives the run with line-oriented output, used when stderr is
// not a terminal or progress is disabled.
func runPlain(r *runner.Runner, targets []target.Target) []engine.Outcome {
	r.OnStart = func(index, total int, tgt target.Target) {
		fmt.Fprintf(os.Stderr, "==> %s %s\n", tgt.Method, tgt.URL)
	}
	r.OnOutcome = func(o engine.Outcome) {
		if o.OK() {
			fmt.Fprintf(os.Stderr, "    done: %s (%s in %s)\n",
				o.FormatSpeed(), utils.FormatBytes(o.Received), o.Elapsed.Round(time.Millisecond))
		} else {
			fmt.Fprintf(os.Stderr, "    failed: %s\n", o.Reason())
		}
	}

	return r.Run(context.Background(), targets)
}

// isTerminal reports whether f is attached to a character device.
func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}
