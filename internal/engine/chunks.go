package engine

import (
	"io"

	"github.com/h2non/filetype"

	"github.com/velo-bench/velo/internal/engine/types"
)

// ChunkSource adapts a response body into a sequence of chunk sizes.
// It is single-consumption: once Next returns an error the source is done.
type ChunkSource struct {
	r       io.Reader
	buf     []byte
	sniff   []byte
	pending error
}

// NewChunkSource wraps a response body.
func NewChunkSource(r io.Reader) *ChunkSource {
	return &ChunkSource{
		r:   r,
		buf: make([]byte, types.ReadBuffer),
	}
}

// Next returns the size of the next received chunk. End of body is io.EOF,
// anything else is a transport failure. A chunk delivered together with an
// error is returned first; the error surfaces on the following call.
func (c *ChunkSource) Next() (int, error) {
	if c.pending != nil {
		err := c.pending
		return 0, err
	}

	for {
		n, err := c.r.Read(c.buf)
		if n > 0 {
			if len(c.sniff) < types.SniffLen {
				take := types.SniffLen - len(c.sniff)
				if take > n {
					take = n
				}
				c.sniff = append(c.sniff, c.buf[:take]...)
			}
			if err != nil {
				c.pending = err
			}
			return n, nil
		}
		if err != nil {
			c.pending = err
			return 0, err
		}
		// Read returned (0, nil); retry per io.Reader contract
	}
}

// Sniff returns the detected content kind from the first body bytes,
// or "" when nothing was received or the type is unknown.
func (c *ChunkSource) Sniff() string {
	if len(c.sniff) == 0 {
		return ""
	}
	kind, err := filetype.Match(c.sniff)
	if err != nil || kind == filetype.Unknown {
		return ""
	}
	return kind.Extension
}
