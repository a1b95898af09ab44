package striad

import (
	"fmt"
	"math"
)

// Calibration controls the search for an iteration count
type Calibration struct {
	Start  int64   // Iteration count of the first round
	Accept float64 // A round longer than this (seconds) is accepted as is
	Target float64 // Runtime (seconds) the growth factor aims for
}

// DefaultCalibration returns the standard calibration parameters
func DefaultCalibration() Calibration {
	return Calibration{
		Start:  CalibrationStart,
		Accept: CalibrationAccept,
		Target: CalibrationTarget,
	}
}

// Validate checks the calibration parameters
func (cal Calibration) Validate() error {
	if cal.Start < 1 {
		return NewInvalidArgError("Calibrate", fmt.Sprintf("start iterations must be positive, got %d", cal.Start))
	}
	if !(cal.Accept > 0) || !(cal.Target > 0) {
		return NewInvalidArgError("Calibrate", fmt.Sprintf("thresholds must be positive, got accept=%v target=%v", cal.Accept, cal.Target))
	}
	return nil
}

// CalibrationRound records one kernel call made while calibrating
type CalibrationRound struct {
	Iterations int64
	Seconds    float64
}

// Calibrate searches for an iteration count whose single run takes long
// enough to measure. run is called with the current count; once a round
// takes longer than cal.Accept its count is returned. Otherwise the count
// is multiplied by the truncated factor cal.Target / (now - previous).
//
// Equal or decreasing timings grow the count by MinGrowth only, and the
// factor never exceeds MaxGrowth. The search fails once the count would
// exceed MaxIterations.
func Calibrate(run func(iter int64) (float64, error), cal Calibration) (int64, []CalibrationRound, error) {
	if err := cal.Validate(); err != nil {
		return 0, nil, err
	}

	var rounds []CalibrationRound
	iter := cal.Start
	var now, prev float64

	for now < cal.Target {
		t, err := run(iter)
		if err != nil {
			return 0, rounds, err
		}
		now = t
		rounds = append(rounds, CalibrationRound{Iterations: iter, Seconds: now})
		if now > cal.Accept {
			break
		}

		growth := int64(MinGrowth)
		if dt := now - prev; dt > 0 {
			growth = growthFactor(cal.Target / dt)
		}
		if iter > MaxIterations/growth {
			return 0, rounds, NewCalibrationError("Calibrate",
				fmt.Sprintf("iteration count would exceed %d after %d rounds (last run %.3g s)",
					int64(MaxIterations), len(rounds), now))
		}
		iter *= growth
		prev = now
	}

	return iter, rounds, nil
}

// growthFactor truncates factor to an integer within [MinGrowth, MaxGrowth].
// NaN maps to MinGrowth.
func growthFactor(factor float64) int64 {
	switch {
	case math.IsNaN(factor) || factor < MinGrowth:
		return MinGrowth
	case factor > MaxGrowth:
		return MaxGrowth
	}
	return int64(factor)
}
