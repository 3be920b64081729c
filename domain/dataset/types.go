package dataset

import (
	"fmt"
	"math"
	"strconv"
)

// Kind is the inferred type of a column
type Kind string

const (
	KindNumeric Kind = "numeric"
	KindText    Kind = "text"
)

// MissingKey is the category key of a missing cell. Non-missing text cells are
// never empty, so the key cannot collide with an observed value.
const MissingKey = ""

// Cell is a single table value. A cell with Valid == false is missing.
type Cell struct {
	Text   string
	Number float64
	Valid  bool
}

// NumberCell builds a numeric cell
func NumberCell(v float64) Cell {
	if math.IsNaN(v) {
		return MissingCell()
	}
	return Cell{Text: strconv.FormatFloat(v, 'f', -1, 64), Number: v, Valid: true}
}

// TextCell builds a text cell; an empty string is missing
func TextCell(s string) Cell {
	if s == "" {
		return MissingCell()
	}
	return Cell{Text: s, Valid: true}
}

// MissingCell builds a missing cell
func MissingCell() Cell {
	return Cell{}
}

// Column is a named, typed sequence of cells. Columns are never mutated after
// construction; transforms build new columns.
type Column struct {
	Name  string
	Kind  Kind
	Cells []Cell
}

// NewNumericColumn builds a numeric column; NaN entries become missing cells
func NewNumericColumn(name string, values []float64) *Column {
	cells := make([]Cell, len(values))
	for i, v := range values {
		cells[i] = NumberCell(v)
	}
	return &Column{Name: name, Kind: KindNumeric, Cells: cells}
}

// NewTextColumn builds a text column; empty entries become missing cells
func NewTextColumn(name string, values []string) *Column {
	cells := make([]Cell, len(values))
	for i, v := range values {
		cells[i] = TextCell(v)
	}
	return &Column{Name: name, Kind: KindText, Cells: cells}
}

// Len returns the number of cells
func (c *Column) Len() int {
	return len(c.Cells)
}

// IsNumeric reports whether the column holds numbers
func (c *Column) IsNumeric() bool {
	return c.Kind == KindNumeric
}

// Floats returns every cell as a float64 with NaN for missing cells
func (c *Column) Floats() []float64 {
	out := make([]float64, len(c.Cells))
	for i, cell := range c.Cells {
		if cell.Valid && c.IsNumeric() {
			out[i] = cell.Number
		} else {
			out[i] = math.NaN()
		}
	}
	return out
}

// Numbers returns the non-missing values of a numeric column
func (c *Column) Numbers() []float64 {
	if !c.IsNumeric() {
		return nil
	}
	out := make([]float64, 0, len(c.Cells))
	for _, cell := range c.Cells {
		if cell.Valid {
			out = append(out, cell.Number)
		}
	}
	return out
}

// Missing counts missing cells
func (c *Column) Missing() int {
	n := 0
	for _, cell := range c.Cells {
		if !cell.Valid {
			n++
		}
	}
	return n
}

// Key returns the category key of row i
func (c *Column) Key(i int) string {
	cell := c.Cells[i]
	if !cell.Valid {
		return MissingKey
	}
	if c.IsNumeric() {
		return strconv.FormatFloat(cell.Number, 'f', -1, 64)
	}
	return cell.Text
}

// NumberAt returns row i as a number. Text cells are parsed so that a text
// year column still compares numerically.
func (c *Column) NumberAt(i int) (float64, bool) {
	cell := c.Cells[i]
	if !cell.Valid {
		return 0, false
	}
	if c.IsNumeric() {
		return cell.Number, true
	}
	v, err := strconv.ParseFloat(cell.Text, 64)
	if err != nil || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// Value returns row i as a JSON-friendly value: nil, float64 or string
func (c *Column) Value(i int) interface{} {
	cell := c.Cells[i]
	if !cell.Valid {
		return nil
	}
	if c.IsNumeric() {
		return cell.Number
	}
	return cell.Text
}

func (c *Column) pick(rows []int) *Column {
	cells := make([]Cell, len(rows))
	for i, r := range rows {
		cells[i] = c.Cells[r]
	}
	return &Column{Name: c.Name, Kind: c.Kind, Cells: cells}
}

// Table is an ordered set of uniquely named, equal-length columns
type Table struct {
	columns []*Column
	index   map[string]int
	rows    int
}

// NewTable validates and assembles columns into a table
func NewTable(columns []*Column) (*Table, error) {
	t := &Table{
		columns: make([]*Column, 0, len(columns)),
		index:   make(map[string]int, len(columns)),
	}
	for i, col := range columns {
		if col == nil {
			return nil, fmt.Errorf("column %d is nil", i)
		}
		if _, dup := t.index[col.Name]; dup {
			return nil, fmt.Errorf("duplicate column name %q", col.Name)
		}
		if i == 0 {
			t.rows = col.Len()
		} else if col.Len() != t.rows {
			return nil, fmt.Errorf("column %q has %d rows, expected %d", col.Name, col.Len(), t.rows)
		}
		t.index[col.Name] = len(t.columns)
		t.columns = append(t.columns, col)
	}
	return t, nil
}

// MustTable is NewTable for literals known to be valid
func MustTable(columns ...*Column) *Table {
	t, err := NewTable(columns)
	if err != nil {
		panic(err)
	}
	return t
}

// Rows returns the row count
func (t *Table) Rows() int {
	return t.rows
}

// Width returns the column count
func (t *Table) Width() int {
	return len(t.columns)
}

// Columns returns the column names in table order
func (t *Table) Columns() []string {
	names := make([]string, len(t.columns))
	for i, col := range t.columns {
		names[i] = col.Name
	}
	return names
}

// Column looks up a column by name
func (t *Table) Column(name string) (*Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.columns[i], true
}

// HasColumn reports whether name is a column of the table
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// NumericColumn returns the named column only when it is numeric
func (t *Table) NumericColumn(name string) (*Column, bool) {
	col, ok := t.Column(name)
	if !ok || !col.IsNumeric() {
		return nil, false
	}
	return col, true
}

// Each calls fn for every column in order
func (t *Table) Each(fn func(col *Column)) {
	for _, col := range t.columns {
		fn(col)
	}
}

// SelectRows returns a new table holding the given rows in the given order
func (t *Table) SelectRows(rows []int) *Table {
	out := &Table{
		columns: make([]*Column, len(t.columns)),
		index:   t.index,
		rows:    len(rows),
	}
	for i, col := range t.columns {
		out.columns[i] = col.pick(rows)
	}
	return out
}

// Head returns the first n rows
func (t *Table) Head(n int) *Table {
	if n > t.rows {
		n = t.rows
	}
	if n < 0 {
		n = 0
	}
	rows := make([]int, n)
	for i := range rows {
		rows[i] = i
	}
	return t.SelectRows(rows)
}

// WithColumn returns a new table with col appended, or replacing the column of
// the same name in place. The receiver is unchanged.
func (t *Table) WithColumn(col *Column) (*Table, error) {
	if col.Len() != t.rows && len(t.columns) > 0 {
		return nil, fmt.Errorf("column %q has %d rows, expected %d", col.Name, col.Len(), t.rows)
	}
	columns := make([]*Column, len(t.columns))
	copy(columns, t.columns)
	if i, ok := t.index[col.Name]; ok {
		columns[i] = col
	} else {
		columns = append(columns, col)
	}
	return NewTable(columns)
}

// Record returns row i keyed by column name
func (t *Table) Record(i int) map[string]interface{} {
	rec := make(map[string]interface{}, len(t.columns))
	for _, col := range t.columns {
		rec[col.Name] = col.Value(i)
	}
	return rec
}

// Records returns every row keyed by column name
func (t *Table) Records() []map[string]interface{} {
	out := make([]map[string]interface{}, t.rows)
	for i := range out {
		out[i] = t.Record(i)
	}
	return out
}
