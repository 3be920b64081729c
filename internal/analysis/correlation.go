package analysis

import (
	"encoding/json"
	"math"

	"esglens/domain/dataset"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Correlation is a pairwise Pearson correlation matrix over complete rows
type Correlation struct {
	Columns []string
	// Observations is the number of rows without a missing value in any column
	Observations int

	coefficients *mat.SymDense
	pValues      *mat.SymDense
}

// CorrelationMatrix correlates the candidate columns that are present and
// numeric. Fewer than two eligible columns skip the computation entirely.
// Rows with a missing value in any eligible column are excluded.
func CorrelationMatrix(t *dataset.Table, candidates []string) (*Correlation, bool) {
	var cols []*dataset.Column
	for _, name := range candidates {
		if col, ok := t.NumericColumn(name); ok {
			cols = append(cols, col)
		}
	}
	if len(cols) < 2 {
		return nil, false
	}

	complete := make([]int, 0, t.Rows())
	for i := 0; i < t.Rows(); i++ {
		ok := true
		for _, col := range cols {
			if !col.Cells[i].Valid {
				ok = false
				break
			}
		}
		if ok {
			complete = append(complete, i)
		}
	}

	series := make([][]float64, len(cols))
	names := make([]string, len(cols))
	for k, col := range cols {
		names[k] = col.Name
		series[k] = make([]float64, len(complete))
		for j, row := range complete {
			series[k][j] = col.Cells[row].Number
		}
	}

	n := len(cols)
	coefficients := mat.NewSymDense(n, nil)
	pValues := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			r := pearson(series[i], series[j], i == j)
			coefficients.SetSym(i, j, r)
			pValues.SetSym(i, j, pValue(r, len(complete)))
		}
	}

	return &Correlation{
		Columns:      names,
		Observations: len(complete),
		coefficients: coefficients,
		pValues:      pValues,
	}, true
}

// pearson returns NaN when either series has zero variance or too few points
func pearson(x, y []float64, diagonal bool) float64 {
	if len(x) < 2 {
		return math.NaN()
	}
	if diagonal {
		if stat.Variance(x, nil) > 0 {
			return 1
		}
		return math.NaN()
	}
	return stat.Correlation(x, y, nil)
}

// pValue is the two-sided significance of r under a Student's t with n-2 df
func pValue(r float64, n int) float64 {
	if math.IsNaN(r) || n <= 2 {
		return math.NaN()
	}
	if math.Abs(r) >= 1 {
		return 0
	}
	df := float64(n - 2)
	tStat := r * math.Sqrt(df/(1-r*r))
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	return 2 * (1 - dist.CDF(math.Abs(tStat)))
}

// At returns the coefficient of columns i and j; false when undefined
func (c *Correlation) At(i, j int) (float64, bool) {
	v := c.coefficients.At(i, j)
	return v, !math.IsNaN(v)
}

// PValue returns the significance of the coefficient of columns i and j
func (c *Correlation) PValue(i, j int) (float64, bool) {
	v := c.pValues.At(i, j)
	return v, !math.IsNaN(v)
}

// Coefficient looks up the coefficient of two named columns
func (c *Correlation) Coefficient(a, b string) (float64, bool) {
	i, j := c.indexOf(a), c.indexOf(b)
	if i < 0 || j < 0 {
		return 0, false
	}
	return c.At(i, j)
}

func (c *Correlation) indexOf(name string) int {
	for i, col := range c.Columns {
		if col == name {
			return i
		}
	}
	return -1
}

// MarshalJSON renders undefined entries as null
func (c *Correlation) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Columns      []string     `json:"columns"`
		Observations int          `json:"observations"`
		Values       [][]*float64 `json:"values"`
		PValues      [][]*float64 `json:"p_values"`
	}{
		Columns:      c.Columns,
		Observations: c.Observations,
		Values:       nullable(c.coefficients),
		PValues:      nullable(c.pValues),
	})
}

func nullable(m *mat.SymDense) [][]*float64 {
	n := m.SymmetricDim()
	out := make([][]*float64, n)
	for i := range out {
		out[i] = make([]*float64, n)
		for j := range out[i] {
			v := m.At(i, j)
			if !math.IsNaN(v) {
				out[i][j] = &v
			}
		}
	}
	return out
}
