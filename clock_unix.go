//go:build linux || darwin || freebsd || openbsd

package striad

import (
	"golang.org/x/sys/unix"
)

// Now returns the current CLOCK_MONOTONIC reading in seconds. The clock is
// not affected by wall-clock adjustments. A failed read is not reported.
func Now() float64 {
	var ts unix.Timespec
	_ = unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts)
	return float64(ts.Sec) + float64(ts.Nsec)*1e-9
}
