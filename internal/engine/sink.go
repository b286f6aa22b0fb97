package engine

// ProgressSink receives human-observable progress from a running probe.
// Implementations must be cheap: Progress is called once per received chunk
// from the consumer goroutine.
type ProgressSink interface {
	// Progress reports cumulative bytes received. total is the
	// Content-Length hint, or a negative value when unknown.
	Progress(received, total int64)

	// Done signals that streaming finished, timed out, or failed.
	Done()
}

// NopSink discards all progress updates.
type NopSink struct{}

func (NopSink) Progress(received, total int64) {}
func (NopSink) Done()                          {}
