package striad

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
)

// Verify checks that a holds one triad sweep of b, c and d. The checksum of
// a is compared with the checksum of the reference result within
// ValidationEpsilon; on a mismatch the first differing element is reported.
func Verify(a, b, c, d []float64) error {
	if err := checkOperands("Verify", a, b, c, d); err != nil {
		return err
	}

	ref := make([]float64, len(a))
	sweep(ref, b, c, d)

	asum := floats.Sum(a)
	rsum := floats.Sum(ref)
	if math.Abs(asum-rsum) <= ValidationEpsilon*math.Abs(rsum) {
		return nil
	}

	for i := range a {
		if !scalar.EqualWithinAbsOrRel(a[i], ref[i], ValidationEpsilon, ValidationEpsilon) {
			return NewValidationError("Verify",
				fmt.Sprintf("a[%d] = %v, want %v (checksum %v, want %v)", i, a[i], ref[i], asum, rsum))
		}
	}
	return NewValidationError("Verify", fmt.Sprintf("checksum %v, want %v", asum, rsum))
}
