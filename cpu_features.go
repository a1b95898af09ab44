package striad

import (
	"runtime"
	"strings"

	"golang.org/x/sys/cpu"
)

// CPUFeatures tracks instruction set extensions relevant to streaming kernels
type CPUFeatures struct {
	Arch string

	// x86
	HasSSE4    bool
	HasAVX     bool
	HasAVX2    bool
	HasFMA     bool
	HasAVX512F bool

	// arm64
	HasASIMD   bool
	HasFP      bool
	HasATOMICS bool
}

// DetectCPUFeatures reads the feature flags of the running CPU
func DetectCPUFeatures() CPUFeatures {
	return CPUFeatures{
		Arch:       runtime.GOARCH,
		HasSSE4:    cpu.X86.HasSSE41 || cpu.X86.HasSSE42,
		HasAVX:     cpu.X86.HasAVX,
		HasAVX2:    cpu.X86.HasAVX2,
		HasFMA:     cpu.X86.HasFMA,
		HasAVX512F: cpu.X86.HasAVX512F,
		HasASIMD:   cpu.ARM64.HasASIMD,
		HasFP:      cpu.ARM64.HasFP,
		HasATOMICS: cpu.ARM64.HasATOMICS,
	}
}

// Names lists the detected features
func (f CPUFeatures) Names() []string {
	features := []string{}

	flags := []struct {
		on   bool
		name string
	}{
		{f.HasSSE4, "SSE4"},
		{f.HasAVX, "AVX"},
		{f.HasAVX2, "AVX2"},
		{f.HasFMA, "FMA"},
		{f.HasAVX512F, "AVX512F"},
		{f.HasASIMD, "ASIMD"},
		{f.HasFP, "FP"},
		{f.HasATOMICS, "ATOMICS"},
	}
	for _, fl := range flags {
		if fl.on {
			features = append(features, fl.name)
		}
	}
	return features
}

// CPUInfo returns a string describing available CPU features
func CPUInfo() string {
	f := DetectCPUFeatures()
	features := f.Names()
	if len(features) == 0 {
		return "CPU features (" + f.Arch + "): no SIMD extensions detected"
	}
	return "CPU features (" + f.Arch + "): " + strings.Join(features, ", ")
}
