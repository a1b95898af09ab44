//go:build !(linux || darwin || freebsd || netbsd || openbsd)

package striad

import (
	"unsafe"
)

// allocPlatform over-allocates on the Go heap and slices at the first
// aligned element. The heap does not move objects, so the alignment holds
// for the lifetime of the slice.
func allocPlatform(n int) ([]float64, func() error, error) {
	pad := ArrayAlignment / BytesPerWord
	buf := make([]float64, n+pad)

	off := 0
	if rem := uintptr(unsafe.Pointer(&buf[0])) % ArrayAlignment; rem != 0 {
		off = int(ArrayAlignment-rem) / BytesPerWord
	}

	return buf[off : off+n : off+n], func() error { return nil }, nil
}
