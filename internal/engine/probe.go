// Package engine implements the streaming throughput measurement core:
// one HTTP download driven as a producer/consumer pair over a bounded
// queue, reduced to a speed value or a typed failure.
package engine

import (
	"context"
	"crypto/tls"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/velo-bench/velo/internal/engine/types"
	"github.com/velo-bench/velo/internal/target"
	"github.com/velo-bench/velo/internal/utils"
)

// Prober issues probe requests through a shared, tuned HTTP client.
// A Prober is reused across sequential probes; it is not safe for
// concurrent probes and the runner never attempts that.
type Prober struct {
	client  *http.Client
	runtime *types.RuntimeConfig
	log     zerolog.Logger
}

// connectResult pairs the response of the racing connect attempt.
type connectResult struct {
	resp *http.Response
	err  error
}

// NewProber builds a Prober with a transport configured from runtime settings.
func NewProber(runtime *types.RuntimeConfig) *Prober {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   types.DialTimeout,
			KeepAlive: types.KeepAliveDuration,
		}).DialContext,
		MaxIdleConns:          types.DefaultMaxIdleConns,
		IdleConnTimeout:       types.DefaultIdleConnTimeout,
		TLSHandshakeTimeout:   types.DefaultTLSHandshakeTimeout,
		ExpectContinueTimeout: types.DefaultExpectContinueTimeout,
	}

	if runtime != nil && runtime.ProxyURL != "" {
		if parsed, err := url.Parse(runtime.ProxyURL); err == nil {
			transport.Proxy = http.ProxyURL(parsed)
		}
	}

	if runtime != nil && runtime.SkipTLSVerification {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return &Prober{
		// Timeout stays zero: connect and transfer phases have their own
		// independent deadlines.
		client:  &http.Client{Timeout: 0, Transport: transport},
		runtime: runtime,
		log:     utils.GetLogger("engine"),
	}
}

// Client exposes the underlying HTTP client, shared across sequential probes.
func (p *Prober) Client() *http.Client {
	return p.client
}

// Probe measures one target end-to-end and reduces it to an Outcome.
// Every failure mode is converted into an Outcome variant; Probe never
// panics and never aborts the surrounding run.
func (p *Prober) Probe(ctx context.Context, tgt target.Target, sink ProgressSink) Outcome {
	if sink == nil {
		sink = NopSink{}
	}
	outcome := Outcome{Target: tgt}

	req, err := http.NewRequestWithContext(ctx, tgt.Method, tgt.URL, nil)
	if err != nil {
		outcome.Failure = FailBuild
		outcome.Err = err
		return outcome
	}
	req.Header.Set("User-Agent", p.runtime.GetUserAgent())

	// Connect phase: race the request against the connect timer. The loser
	// is abandoned; a late response still gets its body closed.
	connectStart := time.Now()
	res, ok := await(p.runtime.GetConnectTimeout(), func() connectResult {
		resp, err := p.client.Do(req)
		return connectResult{resp: resp, err: err}
	}, func(late connectResult) {
		if late.resp != nil {
			_ = late.resp.Body.Close()
		}
	})
	if !ok {
		p.log.Debug().Str("url", tgt.URL).Dur("timeout", p.runtime.GetConnectTimeout()).Msg("no response within connect timeout")
		outcome.Failure = FailConnectTimeout
		return outcome
	}
	if res.err != nil {
		outcome.Failure = FailTransport
		outcome.Err = res.err
		return outcome
	}

	resp := res.resp
	outcome.StatusCode = resp.StatusCode
	p.log.Debug().Str("url", tgt.URL).Int("status", resp.StatusCode).Dur("connect", time.Since(connectStart)).Msg("response received")

	if resp.StatusCode/100 != 2 {
		// Failure: the body is not consumed
		_ = resp.Body.Close()
		outcome.Failure = FailBadStatus
		return outcome
	}

	// Content-Length hint; negative means unknown. Display only.
	result, kind, streamErr := p.stream(resp.Body, resp.ContentLength, sink)

	outcome.Received = result.Received
	outcome.Elapsed = result.Elapsed
	outcome.ContentKind = kind

	switch {
	case result.TimedOut:
		outcome.Failure = FailTransferTimeout
	case streamErr != nil:
		outcome.Failure = FailTransport
		outcome.Err = streamErr
	default:
		outcome.Speed = result.Rate
		outcome.SpeedKnown = result.RateKnown
	}

	return outcome
}

// stream runs the producer/consumer pair: the producer drains the chunk
// source into a capacity-1 queue, the aggregator consumes it under the
// transfer deadline. Returns the aggregate, the sniffed content kind and
// any transport error the producer hit.
func (p *Prober) stream(body io.ReadCloser, expectedTotal int64, sink ProgressSink) (AggregateResult, string, error) {
	src := NewChunkSource(body)
	events := make(chan int, types.ChunkQueueCapacity)
	stop := make(chan struct{})
	errCh := make(chan error, 1)

	go func() {
		defer close(events)
		for {
			n, err := src.Next()
			if n > 0 {
				select {
				case events <- n:
				case <-stop:
					// Consumer gave up; discard remaining work
					return
				}
			}
			if err != nil {
				if err != io.EOF {
					errCh <- err
				}
				return
			}
		}
	}()

	agg := NewAggregator(p.runtime.GetTransferDeadline(), sink)
	result := agg.Run(events, expectedTotal)

	// Shut the producer down: release a blocked send, fail any in-flight
	// read, then wait for it to exit before touching the source again.
	close(stop)
	_ = body.Close()
	for range events {
	}

	var streamErr error
	select {
	case streamErr = <-errCh:
	default:
	}

	return result, src.Sniff(), streamErr
}
