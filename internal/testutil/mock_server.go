// Package testutil provides configurable HTTP test servers for probe testing.
package testutil

import (
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"
)

// MockServer is a configurable HTTP test server for throughput probe testing.
type MockServer struct {
	Server *httptest.Server

	// Configuration
	BodySize      int64         // Total body size to serve
	BodyPrefix    []byte        // Leading bytes of the body (for content sniffing)
	Status        int           // Response status code (default 200)
	NoLength      bool          // Suppress Content-Length (chunked transfer)
	HeaderDelay   time.Duration // Delay before writing the response header
	ChunkSize     int64         // Write size per flush (default 32KB)
	ChunkGap      time.Duration // Pause between chunk writes
	StallAfter    int64         // Stop writing after this many bytes and hang (0 = never)
	CustomHandler http.HandlerFunc

	// Tracking
	RequestCount atomic.Int64
	BytesServed  atomic.Int64
}

// MockServerOption configures a MockServer.
type MockServerOption func(*MockServer)

// WithHandler sets a custom request handler.
func WithHandler(h http.HandlerFunc) MockServerOption {
	return func(m *MockServer) { m.CustomHandler = h }
}

// WithBodySize sets the total body size to serve.
func WithBodySize(size int64) MockServerOption {
	return func(m *MockServer) { m.BodySize = size }
}

// WithBodyPrefix sets the leading body bytes.
func WithBodyPrefix(prefix []byte) MockServerOption {
	return func(m *MockServer) { m.BodyPrefix = prefix }
}

// WithStatus sets the response status code.
func WithStatus(code int) MockServerOption {
	return func(m *MockServer) { m.Status = code }
}

// WithoutContentLength suppresses the Content-Length header.
func WithoutContentLength() MockServerOption {
	return func(m *MockServer) { m.NoLength = true }
}

// WithHeaderDelay delays the response header, simulating a slow connect.
func WithHeaderDelay(d time.Duration) MockServerOption {
	return func(m *MockServer) { m.HeaderDelay = d }
}

// WithChunks serves the body in fixed-size flushed writes with a pause
// between them, simulating a paced network stream.
func WithChunks(size int64, gap time.Duration) MockServerOption {
	return func(m *MockServer) {
		m.ChunkSize = size
		m.ChunkGap = gap
	}
}

// WithStallAfter stops writing after n bytes and hangs until the client
// goes away, simulating a dead connection mid-transfer.
func WithStallAfter(n int64) MockServerOption {
	return func(m *MockServer) { m.StallAfter = n }
}

// NewMockServerT creates a mock server bound to IPv4 and skips the test if
// binding fails.
func NewMockServerT(t *testing.T, opts ...MockServerOption) *MockServer {
	t.Helper()

	m := &MockServer{
		BodySize:  64 * 1024,
		Status:    http.StatusOK,
		ChunkSize: 32 * 1024,
	}
	for _, opt := range opts {
		opt(m)
	}

	handler := m.CustomHandler
	if handler == nil {
		handler = m.handleRequest
	}
	m.Server = NewHTTPServerT(t, http.HandlerFunc(handler))
	t.Cleanup(m.Close)
	return m
}

// NewHTTPServerT starts an httptest server bound to IPv4 to avoid IPv6
// listener issues in sandboxed environments; the test is skipped if
// binding fails.
func NewHTTPServerT(t *testing.T, handler http.Handler) *httptest.Server {
	t.Helper()
	ln, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		t.Skipf("tcp4 listener unavailable: %v", err)
		return nil
	}

	srv := &httptest.Server{
		Listener: ln,
		Config: &http.Server{
			Handler: handler,
		},
	}
	srv.Start()
	return srv
}

// URL returns the server's URL.
func (m *MockServer) URL() string {
	return m.Server.URL
}

// Close shuts down the mock server.
func (m *MockServer) Close() {
	if m.Server != nil {
		m.Server.Close()
	}
}

func (m *MockServer) handleRequest(w http.ResponseWriter, r *http.Request) {
	m.RequestCount.Add(1)

	if m.HeaderDelay > 0 {
		select {
		case <-time.After(m.HeaderDelay):
		case <-r.Context().Done():
			return
		}
	}

	if m.Status/100 != 2 {
		http.Error(w, http.StatusText(m.Status), m.Status)
		return
	}

	if !m.NoLength {
		w.Header().Set("Content-Length", strconv.FormatInt(m.BodySize, 10))
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	w.WriteHeader(m.Status)

	flusher, _ := w.(http.Flusher)
	buf := make([]byte, m.ChunkSize)

	written := int64(0)
	for written < m.BodySize {
		if m.StallAfter > 0 && written >= m.StallAfter {
			// Keep the connection open without sending anything further
			<-r.Context().Done()
			return
		}

		chunk := buf
		if remaining := m.BodySize - written; remaining < int64(len(chunk)) {
			chunk = chunk[:remaining]
		}

		// Splice in the configured prefix bytes
		for i := range chunk {
			pos := written + int64(i)
			if pos < int64(len(m.BodyPrefix)) {
				chunk[i] = m.BodyPrefix[pos]
			} else {
				chunk[i] = 0
			}
		}

		n, err := w.Write(chunk)
		if err != nil {
			return // Client disconnected
		}
		written += int64(n)
		m.BytesServed.Add(int64(n))

		if flusher != nil {
			flusher.Flush()
		}
		if m.ChunkGap > 0 && written < m.BodySize {
			select {
			case <-time.After(m.ChunkGap):
			case <-r.Context().Done():
				return
			}
		}
	}
}
