//go:build !linux

// Package striad provides performance counter stubs for non-Linux platforms
package striad

// PerfMonitor stub for non-Linux platforms
type PerfMonitor struct{}

// NewPerfMonitor returns a stub monitor on non-Linux platforms
func NewPerfMonitor() *PerfMonitor {
	return &PerfMonitor{}
}

// Start always fails on non-Linux platforms
func (pm *PerfMonitor) Start() error {
	return NewExecutionError("PerfMonitor.Start", "hardware counters require Linux", nil)
}

// Stop returns empty counters on non-Linux platforms
func (pm *PerfMonitor) Stop() *PerfCounters {
	return &PerfCounters{}
}
