package engine

import (
	"fmt"
	"time"

	"github.com/velo-bench/velo/internal/target"
	"github.com/velo-bench/velo/internal/utils"
)

// FailureKind classifies how a probe failed.
type FailureKind int

const (
	FailNone FailureKind = iota
	FailBuild
	FailConnectTimeout
	FailTransferTimeout
	FailBadStatus
	FailTransport
)

func (k FailureKind) String() string {
	switch k {
	case FailNone:
		return "ok"
	case FailBuild:
		return "request build error"
	case FailConnectTimeout:
		return "connect timeout"
	case FailTransferTimeout:
		return "transfer timeout"
	case FailBadStatus:
		return "bad status"
	case FailTransport:
		return "transport error"
	default:
		return "unknown"
	}
}

// Outcome is the terminal result of probing one target. Exactly one is
// produced per target, immutable thereafter.
type Outcome struct {
	Target target.Target

	// Speed in bytes per second, valid only when SpeedKnown is true.
	Speed      int64
	SpeedKnown bool

	Received    int64
	Elapsed     time.Duration
	StatusCode  int
	ContentKind string // sniffed from the first body bytes, "" if unknown

	Failure FailureKind
	Err     error
}

// OK reports whether the probe completed without failure.
func (o Outcome) OK() bool {
	return o.Failure == FailNone
}

// HasSpeed reports whether a numeric speed was measured.
func (o Outcome) HasSpeed() bool {
	return o.OK() && o.SpeedKnown
}

// FormatSpeed renders the measured speed, or "N/A" when absent.
func (o Outcome) FormatSpeed() string {
	if !o.HasSpeed() {
		return "N/A"
	}
	return utils.FormatSpeed(o.Speed)
}

// Reason renders a human-readable failure description.
func (o Outcome) Reason() string {
	switch o.Failure {
	case FailNone:
		return ""
	case FailBadStatus:
		return fmt.Sprintf("%s: HTTP %d", o.Failure, o.StatusCode)
	case FailConnectTimeout, FailTransferTimeout:
		return o.Failure.String()
	default:
		if o.Err != nil {
			return fmt.Sprintf("%s: %v", o.Failure, o.Err)
		}
		return o.Failure.String()
	}
}

// Less orders outcomes ascending by speed, with unmeasured speeds lowest.
// Used for the summary table sort.
func (o Outcome) Less(other Outcome) bool {
	if o.HasSpeed() != other.HasSpeed() {
		return !o.HasSpeed()
	}
	return o.Speed < other.Speed
}
