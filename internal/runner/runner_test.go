package runner

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/velo-bench/velo/internal/engine"
	"github.com/velo-bench/velo/internal/engine/types"
	"github.com/velo-bench/velo/internal/target"
	"github.com/velo-bench/velo/internal/testutil"
)

func testProber() *engine.Prober {
	return engine.NewProber(&types.RuntimeConfig{
		ConnectTimeout:   5 * time.Second,
		TransferDeadline: 30 * time.Second,
	})
}

func TestRunner_OneOutcomePerTargetInOrder(t *testing.T) {
	good := testutil.NewMockServerT(t, testutil.WithBodySize(4096))
	bad := testutil.NewMockServerT(t, testutil.WithStatus(http.StatusNotFound))

	targets := []target.Target{
		{Method: "GET", URL: good.URL()},
		{Method: "GET", URL: bad.URL()},
		{Method: "GET", URL: good.URL()},
	}

	var started []string
	var finished []string

	r := New(testProber())
	r.OnStart = func(index, total int, tgt target.Target) {
		if total != 3 {
			t.Errorf("total = %d, want 3", total)
		}
		if index != len(started) {
			t.Errorf("start index = %d, want %d", index, len(started))
		}
		started = append(started, tgt.URL)
	}
	r.OnOutcome = func(o engine.Outcome) {
		finished = append(finished, o.Target.URL)
	}

	outcomes := r.Run(context.Background(), targets)

	if len(outcomes) != 3 {
		t.Fatalf("got %d outcomes, want 3", len(outcomes))
	}
	for i, o := range outcomes {
		if o.Target.URL != targets[i].URL {
			t.Errorf("outcome %d is for %s, want %s", i, o.Target.URL, targets[i].URL)
		}
	}
	if !outcomes[0].OK() || outcomes[1].OK() || !outcomes[2].OK() {
		t.Errorf("unexpected outcome pattern: %v %v %v",
			outcomes[0].Failure, outcomes[1].Failure, outcomes[2].Failure)
	}
	if len(started) != 3 || len(finished) != 3 {
		t.Errorf("callbacks: %d started, %d finished, want 3 each", len(started), len(finished))
	}
}

func TestRunner_FailureDoesNotAbortRun(t *testing.T) {
	good := testutil.NewMockServerT(t, testutil.WithBodySize(1024))

	targets := []target.Target{
		{Method: "GET", URL: "http://127.0.0.1:1/"}, // refused
		{Method: "GET", URL: good.URL()},
	}

	outcomes := New(testProber()).Run(context.Background(), targets)

	if len(outcomes) != 2 {
		t.Fatalf("got %d outcomes, want 2", len(outcomes))
	}
	if outcomes[0].Failure != engine.FailTransport {
		t.Errorf("first outcome = %v, want transport error", outcomes[0].Failure)
	}
	if !outcomes[1].OK() {
		t.Errorf("second probe should still run, got %s", outcomes[1].Reason())
	}
}

func TestRunner_CancelStopsBeforeNextTarget(t *testing.T) {
	good := testutil.NewMockServerT(t, testutil.WithBodySize(1024))

	targets := []target.Target{
		{Method: "GET", URL: good.URL()},
		{Method: "GET", URL: good.URL()},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcomes := New(testProber()).Run(ctx, targets)
	if len(outcomes) != 0 {
		t.Errorf("got %d outcomes after cancellation, want 0", len(outcomes))
	}
}
