package utils

import "testing"

func TestFormatSpeed(t *testing.T) {
	tests := []struct {
		bytesPerSec int64
		want        string
	}{
		{0, "0 B/s"},
		{512, "512 B/s"},
		{2048, "2.0 KiB/s"},
		{2 * 1024 * 1024, "2.0 MiB/s"},
		{5 * 1024 * 1024 * 1024, "5.0 GiB/s"},
	}

	for _, tt := range tests {
		if got := FormatSpeed(tt.bytesPerSec); got != tt.want {
			t.Errorf("FormatSpeed(%d) = %q, want %q", tt.bytesPerSec, got, tt.want)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	if got := FormatBytes(-1); got != "unknown" {
		t.Errorf("FormatBytes(-1) = %q, want %q", got, "unknown")
	}
	if got := FormatBytes(1048576); got != "1.0 MiB" {
		t.Errorf("FormatBytes(1048576) = %q, want %q", got, "1.0 MiB")
	}
}
