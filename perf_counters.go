// Package striad performance counter integration for detailed performance analysis
package striad

import (
	"fmt"
	"strings"
	"time"
)

// PerfCounters holds performance counter measurements
type PerfCounters struct {
	// Timing
	Duration time.Duration `json:"duration"`

	// CPU counters
	Cycles          uint64 `json:"cycles,omitempty"`
	Instructions    uint64 `json:"instructions,omitempty"`
	CacheReferences uint64 `json:"cache_references,omitempty"`
	CacheMisses     uint64 `json:"cache_misses,omitempty"`
	LLCLoadMisses   uint64 `json:"llc_load_misses,omitempty"`

	// Derived metrics
	IPC             float64 `json:"ipc,omitempty"`              // Instructions per cycle
	CacheMissRate   float64 `json:"cache_miss_rate,omitempty"`  // Misses per reference
	MemoryBandwidth float64 `json:"memory_bandwidth,omitempty"` // GB/s
	GFLOPS          float64 `json:"gflops,omitempty"`           // Billions of FP ops per second
}

// CalculateMetrics computes derived performance metrics
func (pc *PerfCounters) CalculateMetrics(flops uint64, bytes uint64) {
	if pc.Cycles > 0 {
		pc.IPC = float64(pc.Instructions) / float64(pc.Cycles)
	}
	if pc.CacheReferences > 0 {
		pc.CacheMissRate = float64(pc.CacheMisses) / float64(pc.CacheReferences)
	}
	if pc.Duration > 0 {
		seconds := pc.Duration.Seconds()
		pc.GFLOPS = float64(flops) / (seconds * 1e9)
		pc.MemoryBandwidth = float64(bytes) / (seconds * 1e9)
	}
}

// String formats performance counters for display
func (pc *PerfCounters) String() string {
	var sb strings.Builder

	sb.WriteString("Performance Counters:\n")
	if pc.Duration > 0 {
		sb.WriteString(fmt.Sprintf("  Duration:          %v\n", pc.Duration))
	}
	if pc.Cycles > 0 {
		sb.WriteString(fmt.Sprintf("  CPU Cycles:        %d\n", pc.Cycles))
		sb.WriteString(fmt.Sprintf("  Instructions:      %d\n", pc.Instructions))
		sb.WriteString(fmt.Sprintf("  IPC:               %.2f\n", pc.IPC))
	}
	if pc.CacheReferences > 0 {
		sb.WriteString(fmt.Sprintf("  Cache References:  %d\n", pc.CacheReferences))
		sb.WriteString(fmt.Sprintf("  Cache Misses:      %d\n", pc.CacheMisses))
		sb.WriteString(fmt.Sprintf("  Cache Miss Rate:   %.2f%%\n", pc.CacheMissRate*100))
	}
	if pc.LLCLoadMisses > 0 {
		sb.WriteString(fmt.Sprintf("  LLC Load Misses:   %d\n", pc.LLCLoadMisses))
	}
	if pc.GFLOPS > 0 {
		sb.WriteString(fmt.Sprintf("  GFLOPS:            %.2f\n", pc.GFLOPS))
	}
	if pc.MemoryBandwidth > 0 {
		sb.WriteString(fmt.Sprintf("  Memory Bandwidth:  %.2f GB/s\n", pc.MemoryBandwidth))
	}

	return sb.String()
}

// MeasureWithCounters runs fn with hardware counters if they can be opened
// and falls back to plain timing otherwise. The caller should lock its
// goroutine to the OS thread for accurate counts.
func MeasureWithCounters(fn func() error) (*PerfCounters, error) {
	monitor := NewPerfMonitor()
	useHW := monitor.Start() == nil

	start := time.Now()
	err := fn()
	duration := time.Since(start)

	counters := &PerfCounters{}
	if useHW {
		counters = monitor.Stop()
	}
	if err != nil {
		return nil, err
	}
	counters.Duration = duration
	return counters, nil
}
