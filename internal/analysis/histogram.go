package analysis

import (
	"math"

	"esglens/domain/dataset"

	"github.com/montanaflynn/stats"
)

// Bin is one histogram bucket covering [Lower, Upper); the last bin also
// includes Upper
type Bin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// Histogram buckets the non-missing values of a column into equal-width bins
func Histogram(t *dataset.Table, name string, bins int) []Bin {
	values, ok := numbers(t, name)
	if !ok || bins <= 0 {
		return nil
	}
	return HistogramValues(values, bins)
}

// HistogramValues buckets the finite values into equal-width bins spanning
// their range. A constant sample yields a single unit-width bin centred on the
// value.
func HistogramValues(values []float64, bins int) []Bin {
	if bins <= 0 {
		return nil
	}
	finite := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			finite = append(finite, v)
		}
	}
	if len(finite) == 0 {
		return nil
	}
	lo, err := stats.Min(finite)
	if err != nil {
		return nil
	}
	hi, err := stats.Max(finite)
	if err != nil {
		return nil
	}

	if lo == hi {
		return []Bin{{Lower: lo - 0.5, Upper: hi + 0.5, Count: len(finite)}}
	}

	out := make([]Bin, bins)
	for i := range out {
		out[i].Lower = binEdge(lo, hi, i, bins)
		out[i].Upper = binEdge(lo, hi, i+1, bins)
	}
	out[0].Lower = lo
	out[bins-1].Upper = hi

	for _, v := range finite {
		out[binIndex(v, lo, hi, bins)].Count++
	}
	return out
}

// binEdge interpolates between lo and hi so that spans wider than the float
// range do not overflow
func binEdge(lo, hi float64, i, bins int) float64 {
	f := float64(i) / float64(bins)
	return lo*(1-f) + hi*f
}

// binIndex places v in [0, bins-1]; the last bin is closed on the right
func binIndex(v, lo, hi float64, bins int) int {
	frac := (v - lo) / (hi - lo)
	if math.IsInf(hi-lo, 0) {
		frac = (v/2 - lo/2) / (hi/2 - lo/2)
	}
	if math.IsNaN(frac) || frac < 0 {
		return 0
	}
	i := int(frac * float64(bins))
	if i >= bins {
		return bins - 1
	}
	return i
}
