package striad

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"golang.org/x/sys/cpu"
)

// KernelFunc performs iter sweeps of a[i] = b[i] + d[i]*c[i] over the whole
// of a and returns the wall-clock seconds spent in the sweeps. b, c and d
// must be at least as long as a and are never written.
type KernelFunc func(a, b, c, d []float64, iter int64) (float64, error)

// TestType selects the execution strategy of the triad
type TestType int

const (
	// Sequential runs every sweep on the calling goroutine
	Sequential TestType = iota
	// Throughput has every worker repeat the full problem into a private buffer
	Throughput
	// Worksharing splits each sweep of the shared array across the workers
	Worksharing
)

// ParseTestType maps the numeric command-line test type to a TestType
func ParseTestType(v int) (TestType, error) {
	t := TestType(v)
	switch t {
	case Sequential, Throughput, Worksharing:
		return t, nil
	}
	return 0, NewInvalidArgError("ParseTestType", fmt.Sprintf("unknown test type: %d", v))
}

// String returns the kernel name
func (t TestType) String() string {
	switch t {
	case Sequential:
		return "striad_seq"
	case Throughput:
		return "striad_tp"
	case Worksharing:
		return "striad_ws"
	default:
		return fmt.Sprintf("TestType(%d)", int(t))
	}
}

// Description returns a short human-readable name of the strategy
func (t TestType) Description() string {
	switch t {
	case Sequential:
		return "sequential"
	case Throughput:
		return "parallel throughput"
	case Worksharing:
		return "parallel worksharing"
	default:
		return "unknown"
	}
}

// Kernel returns the kernel implementing t with the given worker count.
// It returns nil for an unknown test type.
func (t TestType) Kernel(workers int) KernelFunc {
	switch t {
	case Sequential:
		return Seq
	case Throughput:
		return ThroughputKernel(workers)
	case Worksharing:
		return WorksharingKernel(workers)
	}
	return nil
}

// ThreadScale is the number of times one kernel call performs the N-element
// problem: once per worker in throughput mode, once otherwise.
func (t TestType) ThreadScale(workers int) int {
	if t == Throughput && workers > 1 {
		return workers
	}
	return 1
}

// Seq is the sequential triad kernel.
func Seq(a, b, c, d []float64, iter int64) (float64, error) {
	if err := checkOperands("Seq", a, b, c, d); err != nil {
		return 0, err
	}
	n := len(a)

	start := Now()
	for j := int64(0); j < iter; j++ {
		sweep(a, b, c, d)
		observe(a[n-1])
	}
	end := Now()

	runtime.KeepAlive(a)
	return end - start, nil
}

// workerSlot is per-worker state padded to its own cache line
type workerSlot struct {
	err error
	_   cpu.CacheLinePad
}

// ThroughputKernel returns a kernel in which each of workers goroutines
// sweeps the full range into a private aligned buffer. The buffers are
// allocated before the timed region and released after it; a is not
// written. Worker 0 takes both timestamps, each behind a barrier, so the
// result spans the slowest worker.
func ThroughputKernel(workers int) KernelFunc {
	if workers < 1 {
		workers = 1
	}
	return func(a, b, c, d []float64, iter int64) (float64, error) {
		if err := checkOperands("Throughput", a, b, c, d); err != nil {
			return 0, err
		}
		n := len(a)

		var start, end float64
		slots := make([]workerSlot, workers)
		bar := newBarrier(workers)

		forkJoin(workers, func(id int) {
			priv, free, err := AllocAligned(n)
			slots[id].err = err
			bar.Wait()

			for i := range slots {
				if slots[i].err != nil {
					if free != nil {
						free()
					}
					return
				}
			}
			defer free()

			if id == 0 {
				start = Now()
			}
			bar.Wait()

			for j := int64(0); j < iter; j++ {
				sweep(priv, b, c, d)
				observe(priv[n-1])
			}

			bar.Wait()
			if id == 0 {
				end = Now()
			}
			runtime.KeepAlive(priv)
		})

		for i := range slots {
			if slots[i].err != nil {
				return 0, slots[i].err
			}
		}
		return end - start, nil
	}
}

// WorksharingKernel returns a kernel that splits every sweep of a across
// workers goroutines with Partition. The workers meet at a barrier after
// each sweep; the owner of the last element then inspects it.
func WorksharingKernel(workers int) KernelFunc {
	if workers < 1 {
		workers = 1
	}
	return func(a, b, c, d []float64, iter int64) (float64, error) {
		if err := checkOperands("Worksharing", a, b, c, d); err != nil {
			return 0, err
		}
		n := len(a)
		bar := newBarrier(workers)

		start := Now()
		forkJoin(workers, func(id int) {
			lo, hi := Partition(n, workers, id)
			ownsLast := lo < hi && hi == n
			pa, pb, pc, pd := a[lo:hi], b[lo:hi], c[lo:hi], d[lo:hi]

			for j := int64(0); j < iter; j++ {
				sweep(pa, pb, pc, pd)
				bar.Wait()
				if ownsLast {
					observe(a[n-1])
				}
			}
		})
		end := Now()

		runtime.KeepAlive(a)
		return end - start, nil
	}
}

// sweep computes one pass of the triad over a.
func sweep(a, b, c, d []float64) {
	// Equal lengths let the compiler drop the bounds checks in the loop.
	b = b[:len(a)]
	c = c[:len(a)]
	d = d[:len(a)]
	for i := range a {
		a[i] = b[i] + d[i]*c[i]
	}
}

// guardOut receives the guard output
var guardOut io.Writer = os.Stdout

// observe consumes one result element so the sweeps have an observable
// effect and cannot be dropped as dead code. It prints only above
// GuardThreshold, which the benchmark inputs never reach.
func observe(v float64) {
	if v > GuardThreshold {
		fmt.Fprintf(guardOut, "Ai = %f\n", v)
	}
}

func checkOperands(op string, a, b, c, d []float64) error {
	if len(a) == 0 {
		return NewInvalidArgError(op, "empty output array")
	}
	if len(b) < len(a) || len(c) < len(a) || len(d) < len(a) {
		return NewInvalidArgError(op, fmt.Sprintf("input arrays shorter than output (%d, %d, %d < %d)",
			len(b), len(c), len(d), len(a)))
	}
	return nil
}
