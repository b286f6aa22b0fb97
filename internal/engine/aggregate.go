package engine

import (
	"time"
)

// AggregateResult is the reduction of one chunk stream.
type AggregateResult struct {
	Received  int64
	Elapsed   time.Duration
	Rate      int64 // bytes per second, valid only when RateKnown
	RateKnown bool
	TimedOut  bool
}

// Aggregator consumes chunk sizes from the bounded event queue, tracks
// cumulative progress and enforces the transfer deadline. It is the sole
// owner of the progress state while a probe is running.
type Aggregator struct {
	deadline time.Duration
	sink     ProgressSink

	now func() time.Time // injectable for tests
}

// NewAggregator returns an aggregator enforcing the given transfer deadline.
func NewAggregator(deadline time.Duration, sink ProgressSink) *Aggregator {
	if sink == nil {
		sink = NopSink{}
	}
	return &Aggregator{
		deadline: deadline,
		sink:     sink,
		now:      time.Now,
	}
}

// Run drains events until the channel closes or the deadline passes.
// expectedTotal is the Content-Length hint (negative = unknown); it is only
// forwarded to the sink, never validated against reality.
//
// The deadline is checked on every received event before the chunk is
// incorporated, so the byte count never includes data that arrived past the
// crossing point. Waiting for the next event is bounded by the same
// deadline, so a fully stalled stream times out as well.
func (a *Aggregator) Run(events <-chan int, expectedTotal int64) AggregateResult {
	defer a.sink.Done()

	started := a.now()
	var received int64

	timer := time.NewTimer(a.deadline)
	defer timer.Stop()

	for {
		select {
		case n, ok := <-events:
			if !ok {
				return a.finish(started, received, false)
			}
			if a.now().Sub(started) > a.deadline {
				return a.finish(started, received, true)
			}
			received += int64(n)
			a.sink.Progress(received, expectedTotal)

		case <-timer.C:
			return a.finish(started, received, true)
		}
	}
}

func (a *Aggregator) finish(started time.Time, received int64, timedOut bool) AggregateResult {
	elapsed := a.now().Sub(started)
	result := AggregateResult{
		Received: received,
		Elapsed:  elapsed,
		TimedOut: timedOut,
	}

	// rate = floor(bytes * 1000 / elapsed_ms); undefined when elapsed is zero
	if ms := elapsed.Milliseconds(); ms > 0 {
		result.Rate = received * 1000 / ms
		result.RateKnown = true
	}

	return result
}
