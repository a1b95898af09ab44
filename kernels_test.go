package striad

import (
	"fmt"
	"strings"
	"testing"
)

func TestParseTestType(t *testing.T) {
	tests := []struct {
		in      int
		want    TestType
		name    string
		wantErr bool
	}{
		{0, Sequential, "striad_seq", false},
		{1, Throughput, "striad_tp", false},
		{2, Worksharing, "striad_ws", false},
		{3, 0, "", true},
		{-1, 0, "", true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.in), func(t *testing.T) {
			got, err := ParseTestType(tt.in)
			if tt.wantErr {
				if !IsInvalidArgError(err) {
					t.Fatalf("ParseTestType(%d) error = %v, want invalid argument", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseTestType(%d): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseTestType(%d) = %v, want %v", tt.in, got, tt.want)
			}
			if got.String() != tt.name {
				t.Errorf("String() = %q, want %q", got.String(), tt.name)
			}
			if got.Kernel(2) == nil {
				t.Error("Kernel returned nil for a known type")
			}
		})
	}

	if k := TestType(7).Kernel(1); k != nil {
		t.Error("Kernel returned a function for an unknown type")
	}
	if s := TestType(7).String(); s != "TestType(7)" {
		t.Errorf("String() = %q for unknown type", s)
	}
}

func TestThreadScale(t *testing.T) {
	tests := []struct {
		typ     TestType
		workers int
		want    int
	}{
		{Sequential, 4, 1},
		{Worksharing, 4, 1},
		{Throughput, 4, 4},
		{Throughput, 1, 1},
		{Throughput, 0, 1},
	}
	for _, tt := range tests {
		if got := tt.typ.ThreadScale(tt.workers); got != tt.want {
			t.Errorf("%v.ThreadScale(%d) = %d, want %d", tt.typ, tt.workers, got, tt.want)
		}
	}
}

func TestKernelsComputeTriad(t *testing.T) {
	kernels := []struct {
		name    string
		kernel  KernelFunc
		writesA bool
	}{
		{"Seq", Seq, true},
		{"Worksharing_1", WorksharingKernel(1), true},
		{"Worksharing_3", WorksharingKernel(3), true},
		{"Worksharing_8", WorksharingKernel(8), true},
		{"Throughput_1", ThroughputKernel(1), false},
		{"Throughput_4", ThroughputKernel(4), false},
	}
	sizes := []int{1, 5, 10, 1000, 65537}

	for _, k := range kernels {
		for _, n := range sizes {
			t.Run(fmt.Sprintf("%s/N_%d", k.name, n), func(t *testing.T) {
				guard := captureGuard(t)
				arr := newTestArrays(t, n, 2)

				secs, err := k.kernel(arr.A, arr.B, arr.C, arr.D, 3)
				if err != nil {
					t.Fatalf("kernel: %v", err)
				}
				if secs < 0 {
					t.Errorf("elapsed = %v, want >= 0", secs)
				}

				if k.writesA {
					checkAll(t, "A", arr.A, triadValue())
				} else {
					checkAll(t, "A", arr.A, FillA)
				}
				checkAll(t, "B", arr.B, FillB)
				checkAll(t, "C", arr.C, FillC)
				checkAll(t, "D", arr.D, FillD)

				if guard.Len() != 0 {
					t.Errorf("guard printed %q", guard.String())
				}
			})
		}
	}
}

func TestKernelIdempotent(t *testing.T) {
	captureGuard(t)
	for _, iter := range []int64{1, 2, 17} {
		arr := newTestArrays(t, 4099, 4)
		if _, err := WorksharingKernel(4)(arr.A, arr.B, arr.C, arr.D, iter); err != nil {
			t.Fatal(err)
		}
		checkAll(t, fmt.Sprintf("A(iter=%d)", iter), arr.A, triadValue())
	}
}

func TestKernelsAgree(t *testing.T) {
	captureGuard(t)
	const n = 12345

	seq := newTestArrays(t, n, 1)
	ws := newTestArrays(t, n, 4)
	// Vary the inputs so every element differs
	for i := 0; i < n; i++ {
		v := float64(i%97) * 0.01
		seq.B[i], ws.B[i] = v, v
		seq.C[i], ws.C[i] = 1-v, 1-v
	}

	if _, err := Seq(seq.A, seq.B, seq.C, seq.D, 2); err != nil {
		t.Fatal(err)
	}
	if _, err := WorksharingKernel(4)(ws.A, ws.B, ws.C, ws.D, 2); err != nil {
		t.Fatal(err)
	}
	for i := range seq.A {
		if seq.A[i] != ws.A[i] {
			t.Fatalf("A[%d]: sequential %v, worksharing %v", i, seq.A[i], ws.A[i])
		}
	}
}

func TestKernelZeroIterations(t *testing.T) {
	arr := newTestArrays(t, 100, 2)
	for _, k := range []KernelFunc{Seq, ThroughputKernel(2), WorksharingKernel(2)} {
		if _, err := k(arr.A, arr.B, arr.C, arr.D, 0); err != nil {
			t.Fatal(err)
		}
	}
	checkAll(t, "A", arr.A, FillA)
}

func TestKernelOperandErrors(t *testing.T) {
	long := make([]float64, 10)
	short := make([]float64, 5)

	tests := []struct {
		name       string
		a, b, c, d []float64
	}{
		{"empty output", nil, long, long, long},
		{"short b", long, short, long, long},
		{"short c", long, long, short, long},
		{"short d", long, long, long, short},
	}

	kernels := map[string]KernelFunc{
		"Seq":         Seq,
		"Throughput":  ThroughputKernel(2),
		"Worksharing": WorksharingKernel(2),
	}

	for kname, k := range kernels {
		for _, tt := range tests {
			t.Run(kname+"/"+tt.name, func(t *testing.T) {
				_, err := k(tt.a, tt.b, tt.c, tt.d, 1)
				if !IsInvalidArgError(err) {
					t.Errorf("error = %v, want invalid argument", err)
				}
			})
		}
	}
}

func TestObserveGuard(t *testing.T) {
	guard := captureGuard(t)

	observe(triadValue())
	observe(GuardThreshold)
	if guard.Len() != 0 {
		t.Fatalf("guard fired at or below threshold: %q", guard.String())
	}

	observe(2500)
	if got := guard.String(); !strings.Contains(got, "Ai = 2500.000000") {
		t.Errorf("guard output = %q", got)
	}
}

func BenchmarkTriad(b *testing.B) {
	sizes := []int{1 << 10, 1 << 16, 1 << 20}
	for _, typ := range []TestType{Sequential, Throughput, Worksharing} {
		for _, n := range sizes {
			b.Run(fmt.Sprintf("%s/N_%d", typ, n), func(b *testing.B) {
				workers := Workers()
				arr, err := NewArrays(n, workers)
				if err != nil {
					b.Fatal(err)
				}
				defer arr.Free()

				kernel := typ.Kernel(workers)
				b.SetBytes(int64(StreamsPerElement * BytesPerWord * n * typ.ThreadScale(workers)))
				b.ResetTimer()

				secs, err := kernel(arr.A, arr.B, arr.C, arr.D, int64(b.N))
				if err != nil {
					b.Fatal(err)
				}
				if secs > 0 {
					flops := float64(FlopsPerElement*n*typ.ThreadScale(workers)) * float64(b.N)
					b.ReportMetric(1e-6*flops/secs, "MFLOP/s")
				}
			})
		}
	}
}
