package striad

import (
	"bytes"
	"math"
	"testing"
)

// fastCalibration keeps test runs in the millisecond range
func fastCalibration() Calibration {
	return Calibration{Start: 1, Accept: 0.001, Target: 0.003}
}

// newTestArrays allocates filled arrays and frees them at test cleanup
func newTestArrays(t testing.TB, n, workers int) *Arrays {
	t.Helper()
	arr, err := NewArrays(n, workers)
	if err != nil {
		t.Fatalf("NewArrays(%d, %d): %v", n, workers, err)
	}
	t.Cleanup(func() {
		if !arr.freed {
			arr.Free()
		}
	})
	return arr
}

// captureGuard redirects guard output into a buffer for the test's duration
func captureGuard(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := guardOut
	guardOut = &buf
	t.Cleanup(func() { guardOut = prev })
	return &buf
}

// triadValue is the element value after any number of sweeps over the
// default fill
func triadValue() float64 {
	return FillB + FillD*FillC
}

func checkAll(t *testing.T, name string, s []float64, want float64) {
	t.Helper()
	for i, v := range s {
		if math.Abs(v-want) > 1e-12 {
			t.Fatalf("%s[%d] = %v, want %v", name, i, v, want)
		}
	}
}
