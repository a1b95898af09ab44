package striad

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// DefaultLogDir is where the command writes result logs unless told otherwise
const DefaultLogDir = "benchmark_logs"

// BenchmarkRecord captures the outcome of a single benchmark run
type BenchmarkRecord struct {
	Name       string        `json:"name"`
	Status     string        `json:"status"` // "pass" or "fail"
	N          int           `json:"n,omitempty"`
	Workers    int           `json:"workers,omitempty"`
	Scale      int           `json:"scale,omitempty"`
	Iterations int64         `json:"iterations,omitempty"`
	Times      []float64     `json:"times,omitempty"`
	Stats      *Stats        `json:"stats,omitempty"`
	DataSizeKB float64       `json:"data_size_kb,omitempty"`
	MFlops     float64       `json:"mflops,omitempty"`
	MBPerSec   float64       `json:"mb_per_sec,omitempty"`
	Validated  bool          `json:"validated,omitempty"`
	Counters   *PerfCounters `json:"counters,omitempty"`
	Error      string        `json:"error,omitempty"`
	Timestamp  time.Time     `json:"timestamp"`
}

// NewBenchmarkRecord converts a result into a passing record
func NewBenchmarkRecord(res *Result) BenchmarkRecord {
	stats := res.Stats
	return BenchmarkRecord{
		Name:       res.Name(),
		Status:     "pass",
		N:          res.N,
		Workers:    res.Workers,
		Scale:      res.Scale,
		Iterations: res.Iterations,
		Times:      res.Times,
		Stats:      &stats,
		DataSizeKB: res.DataSizeKB(),
		MFlops:     finite(res.MFlops()),
		MBPerSec:   finite(res.MBPerSec()),
		Validated:  res.Validated,
		Counters:   res.Counters,
	}
}

// finite maps NaN and infinities, which JSON cannot encode, to zero
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// ResultLog appends benchmark records to a JSON session file
type ResultLog struct {
	mu          sync.Mutex
	records     []BenchmarkRecord
	logDir      string
	sessionFile string
}

// NewResultLog creates dir if needed and starts a session file named after
// sessionName and the current time.
func NewResultLog(dir, sessionName string) (*ResultLog, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	rl := &ResultLog{
		logDir:      dir,
		sessionFile: filepath.Join(dir, fmt.Sprintf("%s_%s.json", sessionName, timestamp)),
	}
	if err := rl.flush(); err != nil {
		return nil, err
	}
	return rl, nil
}

// Path returns the session file
func (rl *ResultLog) Path() string {
	return rl.sessionFile
}

// Log appends a record and writes the session file
func (rl *ResultLog) Log(rec BenchmarkRecord) error {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}
	rl.records = append(rl.records, rec)

	// Flush to disk immediately to avoid losing data on crash
	return rl.flush()
}

// LogPass records a successful run
func (rl *ResultLog) LogPass(res *Result) error {
	return rl.Log(NewBenchmarkRecord(res))
}

// LogFail records a failed run
func (rl *ResultLog) LogFail(name string, err error) error {
	return rl.Log(BenchmarkRecord{
		Name:   name,
		Status: "fail",
		Error:  err.Error(),
	})
}

// flush writes records to disk
func (rl *ResultLog) flush() error {
	records := rl.records
	if records == nil {
		records = []BenchmarkRecord{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	return os.WriteFile(rl.sessionFile, data, 0644)
}

// ReadResultLog loads the records of a session file
func ReadResultLog(file string) ([]BenchmarkRecord, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	var records []BenchmarkRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", file, err)
	}
	return records, nil
}

// LatestLogFile returns the path to the most recent log file in dir
func LatestLogFile(dir string) (string, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", fmt.Errorf("no log files found in %s", dir)
	}

	var latest string
	var latestTime time.Time
	for _, file := range files {
		info, err := os.Stat(file)
		if err != nil {
			continue
		}
		if latest == "" || info.ModTime().After(latestTime) {
			latest = file
			latestTime = info.ModTime()
		}
	}
	if latest == "" {
		return "", fmt.Errorf("no readable log files in %s", dir)
	}
	return latest, nil
}

// PrintSummary writes a table of the records in file to w
func PrintSummary(w io.Writer, file string) error {
	records, err := ReadResultLog(file)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "\nBenchmark Summary from %s:\n", filepath.Base(file))
	fmt.Fprintln(w, strings.Repeat("=", 78))

	passed, failed := 0, 0
	for _, r := range records {
		switch r.Status {
		case "pass":
			passed++
			fmt.Fprintf(w, "✓ %-12s N=%-12d workers=%-4d %12.2f MFLOP/s %12.2f MB/s\n",
				r.Name, r.N, r.Workers, r.MFlops, r.MBPerSec)
		case "fail":
			failed++
			fmt.Fprintf(w, "✗ %-12s FAILED: %s\n", r.Name, r.Error)
		}
	}

	fmt.Fprintln(w, strings.Repeat("=", 78))
	fmt.Fprintf(w, "Total: %d | Passed: %d | Failed: %d\n", len(records), passed, failed)
	return nil
}
