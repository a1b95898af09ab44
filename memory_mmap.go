//go:build linux || darwin || freebsd || netbsd || openbsd

package striad

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// allocPlatform maps anonymous private memory. Mappings are page aligned,
// which satisfies ArrayAlignment, and come back zeroed.
func allocPlatform(n int) ([]float64, func() error, error) {
	size := n * BytesPerWord
	buf, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, nil, NewMemoryError("AllocAligned", fmt.Sprintf("cannot map %d bytes", size), err)
	}

	data := unsafe.Slice((*float64)(unsafe.Pointer(&buf[0])), n)
	return data, func() error {
		return unix.Munmap(buf)
	}, nil
}
