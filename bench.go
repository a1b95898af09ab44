package striad

import (
	"fmt"
	"io"
	"log"
	"runtime"
	"time"

	"gonum.org/v1/gonum/floats"
)

// Config describes one benchmark run
type Config struct {
	Type        TestType
	N           int         // Elements per array
	Workers     int         // Worker count; 0 uses Workers()
	Trials      int         // Timed trials including the warm-up
	Calibration Calibration

	// Validate checks the output array after the trials
	Validate bool
	// Counters collects hardware performance counters over the trials
	Counters bool
	// Logger receives verbose diagnostics; nil discards them
	Logger *log.Logger
}

// DefaultConfig returns a sequential configuration with the standard trial
// count and calibration. N must still be set.
func DefaultConfig() Config {
	return Config{
		Type:        Sequential,
		Trials:      NTimes,
		Calibration: DefaultCalibration(),
	}
}

// check reports the first invalid setting of cfg
func (cfg Config) check() error {
	if _, err := ParseTestType(int(cfg.Type)); err != nil {
		return err
	}
	if cfg.N <= 0 {
		return NewInvalidArgError("Run", fmt.Sprintf("N must be greater than zero, got %d", cfg.N))
	}
	if cfg.Trials < 2 {
		return ErrTooFewTrials
	}
	return cfg.Calibration.Validate()
}

func (cfg Config) logger() *log.Logger {
	if cfg.Logger != nil {
		return cfg.Logger
	}
	return log.New(io.Discard, "", 0)
}

// Result holds the measurements of one run
type Result struct {
	Type        TestType
	N           int
	Workers     int
	Scale       int   // Problem repetitions per kernel call
	Iterations  int64 // Calibrated sweeps per kernel call
	Calibration []CalibrationRound
	Times       []float64 // Seconds per trial, warm-up first
	Stats       Stats
	Validated   bool
	Counters    *PerfCounters
}

// Name returns the kernel name
func (r *Result) Name() string {
	return r.Type.String()
}

// DataSizeKB returns the size of the four arrays in kB
func (r *Result) DataSizeKB() float64 {
	return 1.0e-03 * float64(StreamsPerElement) * float64(r.N) * BytesPerWord
}

// MFlops returns the throughput of the fastest kept trial in MFLOP/s
func (r *Result) MFlops() float64 {
	return 1.0e-06 * r.flops() / r.Stats.Min
}

// MBPerSec returns the memory traffic of the fastest kept trial in MB/s
func (r *Result) MBPerSec() float64 {
	return 1.0e-06 * r.bytes() / r.Stats.Min
}

func (r *Result) flops() float64 {
	return float64(FlopsPerElement) * float64(r.N) * float64(r.Iterations) * float64(r.Scale)
}

func (r *Result) bytes() float64 {
	return float64(StreamsPerElement*BytesPerWord) * float64(r.N) * float64(r.Iterations) * float64(r.Scale)
}

// String formats the result line: data size in kB and MFLOP/s
func (r *Result) String() string {
	return fmt.Sprintf("%.2f %.2f", r.DataSizeKB(), r.MFlops())
}

// Run allocates and initializes the arrays, calibrates the iteration count
// and times cfg.Trials kernel calls.
func Run(cfg Config) (*Result, error) {
	if err := cfg.check(); err != nil {
		return nil, err
	}
	logger := cfg.logger()

	workers := cfg.Workers
	if workers <= 0 {
		workers = Workers()
	}
	scale := cfg.Type.ThreadScale(workers)

	logger.Printf("%s (%s), N = %d", cfg.Type, cfg.Type.Description(), cfg.N)
	if cfg.Type != Sequential {
		logger.Printf("Parallel run with %d workers", workers)
	}
	logger.Print(CPUInfo())

	arr, err := NewArrays(cfg.N, workers)
	if err != nil {
		return nil, err
	}
	defer arr.Free()

	kernel := cfg.Type.Kernel(workers)
	run := func(iter int64) (float64, error) {
		return kernel(arr.A, arr.B, arr.C, arr.D, iter)
	}

	iter, rounds, err := Calibrate(run, cfg.Calibration)
	for _, r := range rounds {
		logger.Printf("calibration: %d iterations in %.6f s", r.Iterations, r.Seconds)
	}
	if err != nil {
		return nil, err
	}

	res := &Result{
		Type:        cfg.Type,
		N:           cfg.N,
		Workers:     workers,
		Scale:       scale,
		Iterations:  iter,
		Calibration: rounds,
		Times:       make([]float64, cfg.Trials),
	}

	var monitor *PerfMonitor
	if cfg.Counters {
		// Counters follow the OS thread that opened them.
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()

		monitor = NewPerfMonitor()
		if err := monitor.Start(); err != nil {
			logger.Printf("hardware counters unavailable: %v", err)
			monitor = nil
		}
	}

	for k := range res.Times {
		t, err := run(iter)
		if err != nil {
			if monitor != nil {
				monitor.Stop()
			}
			return nil, err
		}
		res.Times[k] = t
	}

	if monitor != nil {
		counters := monitor.Stop()
		trials := float64(cfg.Trials)
		counters.Duration = time.Duration(floats.Sum(res.Times) * float64(time.Second))
		counters.CalculateMetrics(uint64(res.flops()*trials), uint64(res.bytes()*trials))
		res.Counters = counters
		logger.Print(counters)
	}

	if res.Stats, err = TrialStats(res.Times); err != nil {
		return nil, err
	}
	logger.Printf("iterations %d, time avg %.6f s, min %.6f s, max %.6f s, stddev %.6f s",
		iter, res.Stats.Avg, res.Stats.Min, res.Stats.Max, res.Stats.StdDev)
	logger.Printf("bandwidth %.2f MB/s", res.MBPerSec())

	if cfg.Validate {
		if cfg.Type == Throughput {
			logger.Printf("Validation not performed: %s writes private buffers", cfg.Type)
		} else {
			if err := Verify(arr.A, arr.B, arr.C, arr.D); err != nil {
				return nil, err
			}
			res.Validated = true
			logger.Print("Solution validates")
		}
	}

	return res, nil
}
