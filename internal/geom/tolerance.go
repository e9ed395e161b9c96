package geom

import (
	"fmt"
	"math"
)

// RelativeTolerance is the relative tolerance used for all geometric
// comparisons and content keys. Geometry that agrees to five significant
// figures is treated as identical, so near-identical shapes dedupe correctly
// in containers keyed by value.
const RelativeTolerance = 1e-5

// Close reports whether a and b are equal within the relative tolerance.
func Close(a, b float64) bool {
	if a == b {
		return true
	}
	return math.Abs(a-b) <= RelativeTolerance*math.Max(math.Abs(a), math.Abs(b))
}

// RoundKey renders v as a canonical token at the key precision implied by
// RelativeTolerance. Negative zero normalizes to zero.
func RoundKey(v float64) string {
	if v == 0 {
		v = 0
	}
	return fmt.Sprintf("%.5e", v)
}
