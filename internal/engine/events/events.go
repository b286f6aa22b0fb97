// Package events defines the messages flowing from the probe runner to
// progress renderers.
package events

import (
	"github.com/velo-bench/velo/internal/engine"
	"github.com/velo-bench/velo/internal/target"
)

// ProbeStartedMsg is sent when a probe begins, before any network activity.
type ProbeStartedMsg struct {
	Index  int // zero-based position in the run
	Total  int // number of targets in the run
	Target target.Target
}

// ProgressMsg carries cumulative received bytes for the active probe.
// ExpectedTotal is the Content-Length hint, negative when unknown.
type ProgressMsg struct {
	Received      int64
	ExpectedTotal int64
}

// ProbeFinishedMsg carries the terminal outcome of one probe.
type ProbeFinishedMsg struct {
	Outcome engine.Outcome
}

// RunDoneMsg signals that every target has been probed.
type RunDoneMsg struct{}
