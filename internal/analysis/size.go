package analysis

import (
	"math"

	"esglens/domain/dataset"
)

// NormalizeSizeValues shifts values so that every non-missing value is
// strictly positive, keeping their spacing. NaN marks a missing value and
// stays NaN.
//
//	min < 0  -> v - min + 1
//	min == 0 -> v + 1
//	min > 0  -> unchanged
//
// shifted reports the negative case, which callers surface as an advisory.
func NormalizeSizeValues(values []float64) (out []float64, shifted bool) {
	out = make([]float64, len(values))
	copy(out, values)

	lo := math.Inf(1)
	for _, v := range values {
		if !math.IsNaN(v) && v < lo {
			lo = v
		}
	}

	var offset float64
	switch {
	case math.IsInf(lo, 1):
		return out, false
	case lo < 0:
		offset = -lo + 1
		shifted = true
	case lo == 0:
		offset = 1
	default:
		return out, false
	}

	for i, v := range out {
		if !math.IsNaN(v) {
			out[i] = v + offset
		}
	}
	return out, shifted
}

// NormalizeSize builds the derived size column of a numeric column. Other
// columns are untouched; each call computes its own shift.
func NormalizeSize(col *dataset.Column, name string) (*dataset.Column, bool) {
	values, shifted := NormalizeSizeValues(col.Floats())
	return dataset.NewNumericColumn(name, values), shifted
}
