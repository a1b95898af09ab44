//go:build linux

// Package striad provides Linux-specific performance counter implementation
package striad

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

type perfEventConfig struct {
	name   string
	typ    uint32
	config uint64
}

// PerfMonitor reads hardware counters through perf_event_open. Counters
// cover the OS thread that calls Start and threads it creates afterwards,
// user space only.
type PerfMonitor struct {
	fds      []int
	counters []perfEventConfig
}

// NewPerfMonitor creates a performance monitor using perf_event_open
func NewPerfMonitor() *PerfMonitor {
	return &PerfMonitor{
		counters: []perfEventConfig{
			{"cycles", unix.PERF_TYPE_HARDWARE, unix.PERF_COUNT_HW_CPU_CYCLES},
			{"instructions", unix.PERF_TYPE_HARDWARE, unix.PERF_COUNT_HW_INSTRUCTIONS},
			{"cache-references", unix.PERF_TYPE_HARDWARE, unix.PERF_COUNT_HW_CACHE_REFERENCES},
			{"cache-misses", unix.PERF_TYPE_HARDWARE, unix.PERF_COUNT_HW_CACHE_MISSES},
			{"LLC-load-misses", unix.PERF_TYPE_HW_CACHE, cacheConfig(unix.PERF_COUNT_HW_CACHE_LL, unix.PERF_COUNT_HW_CACHE_OP_READ, unix.PERF_COUNT_HW_CACHE_RESULT_MISS)},
		},
	}
}

// cacheConfig creates a cache event configuration
func cacheConfig(cache, op, result int) uint64 {
	return uint64(cache) | (uint64(op) << 8) | (uint64(result) << 16)
}

// Start opens, resets and enables all counters
func (pm *PerfMonitor) Start() error {
	pm.closeAll()

	pm.fds = make([]int, 0, len(pm.counters))
	for _, counter := range pm.counters {
		attr := &unix.PerfEventAttr{
			Type:   counter.typ,
			Size:   uint32(unsafe.Sizeof(unix.PerfEventAttr{})),
			Config: counter.config,
			Bits:   unix.PerfBitDisabled | unix.PerfBitInherit | unix.PerfBitExcludeKernel | unix.PerfBitExcludeHv,
		}

		fd, err := unix.PerfEventOpen(attr, 0, -1, -1, unix.PERF_FLAG_FD_CLOEXEC)
		if err != nil {
			pm.closeAll()
			return NewExecutionError("PerfMonitor.Start", fmt.Sprintf("cannot open perf event %s", counter.name), err)
		}
		pm.fds = append(pm.fds, fd)
	}

	for _, fd := range pm.fds {
		unix.IoctlSetInt(fd, unix.PERF_EVENT_IOC_RESET, 0)
		unix.IoctlSetInt(fd, unix.PERF_EVENT_IOC_ENABLE, 0)
	}
	return nil
}

// Stop disables and closes the counters and returns their values
func (pm *PerfMonitor) Stop() *PerfCounters {
	counters := &PerfCounters{}

	for i, fd := range pm.fds {
		unix.IoctlSetInt(fd, unix.PERF_EVENT_IOC_DISABLE, 0)

		var value uint64
		n, err := unix.Read(fd, (*[8]byte)(unsafe.Pointer(&value))[:])
		if err != nil || n != 8 {
			continue
		}
		switch pm.counters[i].name {
		case "cycles":
			counters.Cycles = value
		case "instructions":
			counters.Instructions = value
		case "cache-references":
			counters.CacheReferences = value
		case "cache-misses":
			counters.CacheMisses = value
		case "LLC-load-misses":
			counters.LLCLoadMisses = value
		}
	}
	pm.closeAll()

	counters.CalculateMetrics(0, 0)
	return counters
}

func (pm *PerfMonitor) closeAll() {
	for _, fd := range pm.fds {
		unix.Close(fd)
	}
	pm.fds = nil
}
