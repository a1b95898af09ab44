package striad

import (
	"fmt"
	"math"
	"unsafe"
)

// Arrays holds the four triad operands. A is the destination; B, C and D
// are only read while a kernel runs. All four have the same length and
// ArrayAlignment, are allocated once and never resized.
type Arrays struct {
	A, B, C, D []float64

	release []func() error
	freed   bool
}

// AllocAligned allocates n float64 values whose first element is aligned to
// ArrayAlignment bytes. The returned function releases the memory; the
// slice must not be used after it has been called.
//
// Example:
//
//	buf, free, err := striad.AllocAligned(1 << 20)
//	if err != nil {
//		return err
//	}
//	defer free()
func AllocAligned(n int) ([]float64, func() error, error) {
	if n <= 0 {
		return nil, nil, ErrInvalidSize
	}
	if n > math.MaxInt/BytesPerWord-ArrayAlignment {
		return nil, nil, NewMemoryError("AllocAligned",
			fmt.Sprintf("%d elements exceed the address space", n), nil)
	}
	return allocPlatform(n)
}

// NewArrays allocates A, B, C and D with n elements each and fills them
// with FillA, FillB, FillC and FillD. The fill is split across workers so
// each page is first touched by the worker that later sweeps it.
func NewArrays(n, workers int) (*Arrays, error) {
	if workers < 1 {
		workers = 1
	}

	arr := &Arrays{}
	slots := []*[]float64{&arr.A, &arr.B, &arr.C, &arr.D}
	for _, slot := range slots {
		data, free, err := AllocAligned(n)
		if err != nil {
			arr.Free()
			return nil, err
		}
		*slot = data
		arr.release = append(arr.release, free)
	}

	forkJoin(workers, func(id int) {
		lo, hi := Partition(n, workers, id)
		fill(arr.A[lo:hi], FillA)
		fill(arr.B[lo:hi], FillB)
		fill(arr.C[lo:hi], FillC)
		fill(arr.D[lo:hi], FillD)
	})

	return arr, nil
}

// Len returns the element count of each array
func (arr *Arrays) Len() int {
	return len(arr.A)
}

// Free releases all four arrays. Calling Free twice returns ErrDoubleFree.
func (arr *Arrays) Free() error {
	if arr.freed {
		return ErrDoubleFree
	}
	arr.freed = true

	var first error
	for _, free := range arr.release {
		if err := free(); err != nil && first == nil {
			first = NewMemoryError("Free", "cannot release array", err)
		}
	}
	arr.release = nil
	arr.A, arr.B, arr.C, arr.D = nil, nil, nil, nil
	return first
}

func fill(s []float64, v float64) {
	for i := range s {
		s[i] = v
	}
}

// isAligned reports whether the first element of s sits on an
// ArrayAlignment boundary.
func isAligned(s []float64) bool {
	if len(s) == 0 {
		return false
	}
	return uintptr(unsafe.Pointer(&s[0]))%ArrayAlignment == 0
}
