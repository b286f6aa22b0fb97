package utils

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// FormatBytes renders a byte count with binary prefixes (KiB, MiB, ...).
func FormatBytes(n int64) string {
	if n < 0 {
		return "unknown"
	}
	return humanize.IBytes(uint64(n))
}

// FormatSpeed renders a transfer rate in bytes per second, e.g. "12 MiB/s".
func FormatSpeed(bytesPerSec int64) string {
	return fmt.Sprintf("%s/s", humanize.IBytes(uint64(bytesPerSec)))
}
