//go:build !(linux || darwin || freebsd || openbsd)

package striad

import (
	"time"
)

var epoch = time.Now()

// Now returns seconds since package initialization using the runtime's
// monotonic clock reading.
func Now() float64 {
	return time.Since(epoch).Seconds()
}
