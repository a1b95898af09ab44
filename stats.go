package striad

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats summarizes the timed trials after the warm-up
type Stats struct {
	Avg    float64 `json:"avg"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	StdDev float64 `json:"stddev"`
}

// TrialStats computes Stats over times[1:]. The first trial is a warm-up
// and never contributes. times must hold at least two entries.
func TrialStats(times []float64) (Stats, error) {
	if len(times) < 2 {
		return Stats{}, ErrTooFewTrials
	}
	kept := times[1:]

	s := Stats{
		Avg: stat.Mean(kept, nil),
		Min: floats.Min(kept),
		Max: floats.Max(kept),
	}
	if len(kept) > 1 {
		s.StdDev = stat.StdDev(kept, nil)
	}
	return s, nil
}
