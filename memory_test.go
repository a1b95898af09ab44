package striad

import (
	"fmt"
	"math"
	"testing"
)

func TestAllocAligned(t *testing.T) {
	for _, n := range []int{1, 7, 8, 1000, 1 << 16, 1<<16 + 3} {
		t.Run(fmt.Sprintf("N_%d", n), func(t *testing.T) {
			buf, free, err := AllocAligned(n)
			if err != nil {
				t.Fatalf("AllocAligned(%d): %v", n, err)
			}
			defer free()

			if len(buf) != n {
				t.Errorf("len = %d, want %d", len(buf), n)
			}
			if !isAligned(buf) {
				t.Errorf("buffer not aligned to %d bytes", ArrayAlignment)
			}
			// Every element must be writable
			for i := range buf {
				buf[i] = float64(i)
			}
			if buf[n-1] != float64(n-1) {
				t.Errorf("last element = %v, want %v", buf[n-1], float64(n-1))
			}
		})
	}
}

func TestAllocAlignedInvalidSize(t *testing.T) {
	for _, n := range []int{0, -1, math.MinInt} {
		_, _, err := AllocAligned(n)
		if err != ErrInvalidSize {
			t.Errorf("AllocAligned(%d) error = %v, want ErrInvalidSize", n, err)
		}
	}

	_, _, err := AllocAligned(math.MaxInt)
	if !IsMemoryError(err) {
		t.Errorf("AllocAligned(MaxInt) error = %v, want memory error", err)
	}
}

func TestNewArraysFill(t *testing.T) {
	tests := []struct {
		n, workers int
	}{
		{1, 1},
		{10, 1},
		{10, 3},
		{3, 8}, // more workers than elements
		{100003, 4},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("N_%d_W_%d", tt.n, tt.workers), func(t *testing.T) {
			arr := newTestArrays(t, tt.n, tt.workers)

			if arr.Len() != tt.n {
				t.Fatalf("Len() = %d, want %d", arr.Len(), tt.n)
			}
			for name, s := range map[string][]float64{"A": arr.A, "B": arr.B, "C": arr.C, "D": arr.D} {
				if len(s) != tt.n {
					t.Errorf("len(%s) = %d, want %d", name, len(s), tt.n)
				}
				if !isAligned(s) {
					t.Errorf("%s not aligned to %d bytes", name, ArrayAlignment)
				}
			}
			checkAll(t, "A", arr.A, FillA)
			checkAll(t, "B", arr.B, FillB)
			checkAll(t, "C", arr.C, FillC)
			checkAll(t, "D", arr.D, FillD)
		})
	}
}

func TestNewArraysInvalidSize(t *testing.T) {
	if _, err := NewArrays(0, 4); err != ErrInvalidSize {
		t.Errorf("NewArrays(0) error = %v, want ErrInvalidSize", err)
	}
}

func TestArraysDoubleFree(t *testing.T) {
	arr, err := NewArrays(1024, 2)
	if err != nil {
		t.Fatal(err)
	}

	if err := arr.Free(); err != nil {
		t.Fatalf("first Free: %v", err)
	}
	if arr.A != nil || arr.B != nil || arr.C != nil || arr.D != nil {
		t.Error("arrays still referenced after Free")
	}
	if err := arr.Free(); err != ErrDoubleFree {
		t.Errorf("second Free error = %v, want ErrDoubleFree", err)
	}
}

func TestIsAligned(t *testing.T) {
	if isAligned(nil) {
		t.Error("empty slice reported as aligned")
	}

	buf, free, err := AllocAligned(16)
	if err != nil {
		t.Fatal(err)
	}
	defer free()

	if !isAligned(buf) {
		t.Error("AllocAligned result not aligned")
	}
	if isAligned(buf[1:]) {
		t.Error("slice offset by one word reported as aligned")
	}
}
