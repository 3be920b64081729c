package analysis

import (
	"esglens/domain/dataset"

	"github.com/montanaflynn/stats"
)

// numbers returns the non-missing values of a numeric column
func numbers(t *dataset.Table, name string) ([]float64, bool) {
	col, ok := t.NumericColumn(name)
	if !ok {
		return nil, false
	}
	values := col.Numbers()
	return values, len(values) > 0
}

// Mean is the arithmetic mean of the non-missing values of a column. It is
// unavailable when the column is absent, not numeric or entirely missing.
func Mean(t *dataset.Table, name string) (float64, bool) {
	values, ok := numbers(t, name)
	if !ok {
		return 0, false
	}
	mean, err := stats.Mean(values)
	if err != nil {
		return 0, false
	}
	return mean, true
}

// Sum is the sum of the non-missing values of a column, with the same
// availability rules as Mean
func Sum(t *dataset.Table, name string) (float64, bool) {
	values, ok := numbers(t, name)
	if !ok {
		return 0, false
	}
	sum, err := stats.Sum(values)
	if err != nil {
		return 0, false
	}
	return sum, true
}

// Median of the non-missing values of a column
func Median(t *dataset.Table, name string) (float64, bool) {
	values, ok := numbers(t, name)
	if !ok {
		return 0, false
	}
	median, err := stats.Median(values)
	if err != nil {
		return 0, false
	}
	return median, true
}

// Extent returns the minimum and maximum non-missing values of a column
func Extent(t *dataset.Table, name string) (lo, hi float64, ok bool) {
	values, ok := numbers(t, name)
	if !ok {
		return 0, 0, false
	}
	lo, err := stats.Min(values)
	if err != nil {
		return 0, 0, false
	}
	hi, err = stats.Max(values)
	if err != nil {
		return 0, 0, false
	}
	return lo, hi, true
}

// DistinctCount counts unique non-missing values. Unavailable only when the
// column is absent.
func DistinctCount(t *dataset.Table, name string) (int, bool) {
	col, ok := t.Column(name)
	if !ok {
		return 0, false
	}
	seen := make(map[string]struct{})
	for i := 0; i < col.Len(); i++ {
		if !col.Cells[i].Valid {
			continue
		}
		seen[col.Key(i)] = struct{}{}
	}
	return len(seen), true
}

// Completeness describes how many cells of a table are filled
type Completeness struct {
	Percent      float64 `json:"percent"`
	MissingCells int     `json:"missing_cells"`
	TotalCells   int     `json:"total_cells"`
}

// CompletenessOf computes (total - missing) / total * 100 over rows x columns.
// A table without cells has no defined ratio.
func CompletenessOf(t *dataset.Table) (Completeness, bool) {
	total := t.Rows() * t.Width()
	missing := 0
	t.Each(func(col *dataset.Column) {
		missing += col.Missing()
	})
	if total == 0 {
		return Completeness{MissingCells: missing}, false
	}
	return Completeness{
		Percent:      float64(total-missing) / float64(total) * 100,
		MissingCells: missing,
		TotalCells:   total,
	}, true
}

// NegativeColumns lists numeric columns whose minimum is below zero, in table order
func NegativeColumns(t *dataset.Table) []string {
	out := []string{}
	t.Each(func(col *dataset.Column) {
		if !col.IsNumeric() {
			return
		}
		values := col.Numbers()
		if len(values) == 0 {
			return
		}
		if lo, err := stats.Min(values); err == nil && lo < 0 {
			out = append(out, col.Name)
		}
	})
	return out
}

// FillMedian returns a table whose named column has its missing cells replaced
// by the column median. The table is returned unchanged when the column is
// absent, not numeric or has no values to take a median of.
func FillMedian(t *dataset.Table, name string) (*dataset.Table, bool) {
	col, ok := t.NumericColumn(name)
	if !ok || col.Missing() == 0 {
		return t, false
	}
	median, ok := Median(t, name)
	if !ok {
		return t, false
	}

	cells := make([]dataset.Cell, col.Len())
	for i, cell := range col.Cells {
		if cell.Valid {
			cells[i] = cell
		} else {
			cells[i] = dataset.NumberCell(median)
		}
	}

	filled, err := t.WithColumn(&dataset.Column{Name: col.Name, Kind: col.Kind, Cells: cells})
	if err != nil {
		return t, false
	}
	return filled, true
}
