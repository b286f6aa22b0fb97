package types

import (
	"time"
)

// Size constants
const (
	KB = 1024
	MB = 1024 * KB

	// ReadBuffer is the per-chunk read buffer size
	ReadBuffer = 32 * KB

	// SniffLen is how many leading body bytes are kept for content kind detection
	SniffLen = 262
)

// Measurement defaults
const (
	ConnectTimeout   = 10 * time.Second
	TransferDeadline = 60 * time.Second

	// ChunkQueueCapacity bounds the producer to one unacknowledged chunk
	ChunkQueueCapacity = 1
)

// HTTP Client Tuning
const (
	DefaultMaxIdleConns          = 100
	DefaultIdleConnTimeout       = 90 * time.Second
	DefaultTLSHandshakeTimeout   = 10 * time.Second
	DefaultExpectContinueTimeout = 1 * time.Second
	DialTimeout                  = 10 * time.Second
	KeepAliveDuration            = 30 * time.Second
)

// RuntimeConfig holds dynamic settings that can override defaults
type RuntimeConfig struct {
	ConnectTimeout      time.Duration
	TransferDeadline    time.Duration
	UserAgent           string
	ProxyURL            string
	SkipTLSVerification bool
}

// GetUserAgent returns the configured user agent or the default
func (r *RuntimeConfig) GetUserAgent() string {
	if r == nil || r.UserAgent == "" {
		return "velo/1.0 (+https://github.com/velo-bench/velo)"
	}
	return r.UserAgent
}

// GetConnectTimeout returns configured value or default
func (r *RuntimeConfig) GetConnectTimeout() time.Duration {
	if r == nil || r.ConnectTimeout <= 0 {
		return ConnectTimeout
	}
	return r.ConnectTimeout
}

// GetTransferDeadline returns configured value or default
func (r *RuntimeConfig) GetTransferDeadline() time.Duration {
	if r == nil || r.TransferDeadline <= 0 {
		return TransferDeadline
	}
	return r.TransferDeadline
}
