package engine

import (
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/velo-bench/velo/internal/target"
)

func TestOutcome_FormatSpeed(t *testing.T) {
	measured := Outcome{Speed: 2097152, SpeedKnown: true}
	if got := measured.FormatSpeed(); got != "2.0 MiB/s" {
		t.Errorf("measured speed = %q, want 2.0 MiB/s", got)
	}

	instant := Outcome{Received: 4096, SpeedKnown: false}
	if got := instant.FormatSpeed(); got != "N/A" {
		t.Errorf("unmeasurable speed = %q, want N/A", got)
	}

	failed := Outcome{Speed: 1024, SpeedKnown: true, Failure: FailTransport}
	if got := failed.FormatSpeed(); got != "N/A" {
		t.Errorf("failed probe speed = %q, want N/A", got)
	}
}

func TestOutcome_Reason(t *testing.T) {
	badStatus := Outcome{Failure: FailBadStatus, StatusCode: 404}
	if got := badStatus.Reason(); got != "bad status: HTTP 404" {
		t.Errorf("bad status reason = %q", got)
	}

	timeout := Outcome{Failure: FailConnectTimeout}
	if got := timeout.Reason(); got != "connect timeout" {
		t.Errorf("connect timeout reason = %q", got)
	}

	transport := Outcome{Failure: FailTransport, Err: errors.New("connection reset by peer")}
	if got := transport.Reason(); !strings.Contains(got, "connection reset") {
		t.Errorf("transport reason = %q, want wrapped error", got)
	}

	if got := (Outcome{}).Reason(); got != "" {
		t.Errorf("ok outcome reason = %q, want empty", got)
	}
}

func TestOutcome_OrderingPutsUnmeasuredLowest(t *testing.T) {
	tgt := func(u string) target.Target { return target.Target{Method: "GET", URL: u} }

	outcomes := []Outcome{
		{Target: tgt("http://fast"), Speed: 5000000, SpeedKnown: true},
		{Target: tgt("http://failed"), Failure: FailBadStatus, StatusCode: 500},
		{Target: tgt("http://slow"), Speed: 1000, SpeedKnown: true},
		{Target: tgt("http://timeout"), Failure: FailTransferTimeout},
	}

	sort.SliceStable(outcomes, func(i, j int) bool { return outcomes[i].Less(outcomes[j]) })

	var urls []string
	for _, o := range outcomes {
		urls = append(urls, o.Target.URL)
	}

	// Unmeasured first in ascending order, preserving input order among them
	want := []string{"http://failed", "http://timeout", "http://slow", "http://fast"}
	for i := range want {
		if urls[i] != want[i] {
			t.Fatalf("order = %v, want %v", urls, want)
		}
	}
}
