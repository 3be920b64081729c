package analysis

import (
	"math"
	"sort"
	"strconv"

	"esglens/domain/dataset"

	"github.com/montanaflynn/stats"
)

// GroupOrder selects how grouped results are ordered
type GroupOrder int

const (
	// ByMeanDesc orders by descending mean, ties by ascending group
	ByMeanDesc GroupOrder = iota
	// ByGroupAsc orders by group value, numerically when both values are numbers
	ByGroupAsc
)

// GroupMean is the mean of a value column within one group
type GroupMean struct {
	Group string  `json:"group"`
	Mean  float64 `json:"mean"`
	Count int     `json:"count"`
}

// GroupSummary is the box-plot summary of a value column within one group.
// LowerFence and UpperFence are the most extreme values within 1.5 IQR of the
// quartiles; values beyond them are listed as Outliers in row order.
type GroupSummary struct {
	Group      string    `json:"group"`
	Count      int       `json:"count"`
	Min        float64   `json:"min"`
	Q1         float64   `json:"q1"`
	Median     float64   `json:"median"`
	Q3         float64   `json:"q3"`
	Max        float64   `json:"max"`
	LowerFence float64   `json:"lower_fence"`
	UpperFence float64   `json:"upper_fence"`
	Outliers   []float64 `json:"outliers"`
}

type bucket struct {
	key    string
	values []float64
}

// groupValues partitions the non-missing values of valueCol by the non-missing
// keys of groupCol, in order of first appearance. Groups without any value are
// dropped.
func groupValues(t *dataset.Table, groupCol, valueCol string) ([]bucket, bool) {
	group, ok := t.Column(groupCol)
	if !ok {
		return nil, false
	}
	value, ok := t.NumericColumn(valueCol)
	if !ok {
		return nil, false
	}

	index := make(map[string]int)
	var buckets []bucket
	for i := 0; i < t.Rows(); i++ {
		if !group.Cells[i].Valid || !value.Cells[i].Valid {
			continue
		}
		key := group.Key(i)
		j, seen := index[key]
		if !seen {
			j = len(buckets)
			index[key] = j
			buckets = append(buckets, bucket{key: key})
		}
		buckets[j].values = append(buckets[j].values, value.Cells[i].Number)
	}
	return buckets, true
}

// GroupedMean computes the mean of valueCol for every distinct value of
// groupCol. It returns nil when either column is unusable or no group has a
// value.
func GroupedMean(t *dataset.Table, groupCol, valueCol string, order GroupOrder) []GroupMean {
	buckets, ok := groupValues(t, groupCol, valueCol)
	if !ok || len(buckets) == 0 {
		return nil
	}

	out := make([]GroupMean, 0, len(buckets))
	for _, b := range buckets {
		mean, err := stats.Mean(b.values)
		if err != nil {
			continue
		}
		out = append(out, GroupMean{Group: b.key, Mean: mean, Count: len(b.values)})
	}

	switch order {
	case ByMeanDesc:
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].Mean != out[j].Mean {
				return out[i].Mean > out[j].Mean
			}
			return out[i].Group < out[j].Group
		})
	case ByGroupAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return groupLess(out[i].Group, out[j].Group)
		})
	}
	return out
}

// GroupedQuartiles computes a box-plot summary of valueCol per group, in order
// of first appearance
func GroupedQuartiles(t *dataset.Table, groupCol, valueCol string) []GroupSummary {
	buckets, ok := groupValues(t, groupCol, valueCol)
	if !ok || len(buckets) == 0 {
		return nil
	}

	out := make([]GroupSummary, 0, len(buckets))
	for _, b := range buckets {
		summary, err := summarize(b.values)
		if err != nil {
			continue
		}
		summary.Group = b.key
		out = append(out, summary)
	}
	return out
}

func summarize(values []float64) (GroupSummary, error) {
	lo, err := stats.Min(values)
	if err != nil {
		return GroupSummary{}, err
	}
	hi, err := stats.Max(values)
	if err != nil {
		return GroupSummary{}, err
	}
	median, err := stats.Median(values)
	if err != nil {
		return GroupSummary{}, err
	}

	summary := GroupSummary{Count: len(values), Min: lo, Median: median, Max: hi, Q1: median, Q3: median}
	if len(values) > 1 {
		q, err := stats.Quartile(values)
		if err != nil {
			return GroupSummary{}, err
		}
		summary.Q1, summary.Q3 = q.Q1, q.Q3
	}
	summary.LowerFence, summary.UpperFence, summary.Outliers = detectOutliers(values, summary.Q1, summary.Q3)
	return summary, nil
}

// detectOutliers applies the 1.5 IQR rule. It returns the whisker ends and the
// values outside them.
func detectOutliers(values []float64, q1, q3 float64) (float64, float64, []float64) {
	iqr := q3 - q1
	lowerBound := q1 - 1.5*iqr
	upperBound := q3 + 1.5*iqr

	lower, upper := math.Inf(1), math.Inf(-1)
	outliers := []float64{}
	for _, v := range values {
		if v < lowerBound || v > upperBound {
			outliers = append(outliers, v)
			continue
		}
		lower = math.Min(lower, v)
		upper = math.Max(upper, v)
	}
	return lower, upper, outliers
}

func groupLess(a, b string) bool {
	fa, errA := strconv.ParseFloat(a, 64)
	fb, errB := strconv.ParseFloat(b, 64)
	if errA == nil && errB == nil && !math.IsNaN(fa) && !math.IsNaN(fb) {
		return fa < fb
	}
	return a < b
}
