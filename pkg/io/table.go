package io

import (
	"encoding/json"
	"math"
	"sort"

	"github.com/matzehuels/oceanplot/pkg/errors"
)

// Table is a set of named float64 columns of equal length.
type Table struct {
	// Columns lists the column names in file order.
	Columns []string
	// Data maps each column name to its values.
	Data map[string][]float64
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{Data: make(map[string][]float64)}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil || len(t.Columns) == 0 {
		return 0
	}
	return len(t.Data[t.Columns[0]])
}

// Has reports whether the table has a column called name.
func (t *Table) Has(name string) bool {
	if t == nil {
		return false
	}
	_, ok := t.Data[name]
	return ok
}

// Column returns the values of the named column. A missing column returns
// a MISSING_COLUMN error listing the available ones.
func (t *Table) Column(name string) ([]float64, error) {
	if t.Has(name) {
		return t.Data[name], nil
	}
	var cols []string
	if t != nil {
		cols = t.Columns
	}
	return nil, errors.New(errors.ErrCodeMissingColumn, "no column %q (have %v)", name, cols)
}

// Add appends a column. The name must be valid and unused, and the values
// must match the length of the existing columns.
func (t *Table) Add(name string, values []float64) error {
	if err := errors.ValidateColumnName(name); err != nil {
		return err
	}
	if t.Has(name) {
		return errors.New(errors.ErrCodeInvalidInput, "duplicate column %q", name)
	}
	if len(t.Columns) > 0 {
		if err := errors.ValidateSameLength(
			[]string{t.Columns[0], name}, []int{t.Len(), len(values)},
		); err != nil {
			return err
		}
	}
	if t.Data == nil {
		t.Data = make(map[string][]float64)
	}
	t.Columns = append(t.Columns, name)
	t.Data[name] = values
	return nil
}

// Validate checks column names and that all columns have the same length.
func (t *Table) Validate() error {
	if t == nil || len(t.Columns) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "table has no columns")
	}
	names := make([]string, len(t.Columns))
	lengths := make([]int, len(t.Columns))
	for i, c := range t.Columns {
		if err := errors.ValidateColumnName(c); err != nil {
			return err
		}
		vals, ok := t.Data[c]
		if !ok {
			return errors.New(errors.ErrCodeMissingColumn, "column %q has no data", c)
		}
		names[i], lengths[i] = c, len(vals)
	}
	return errors.ValidateSameLength(names, lengths)
}

type tableJSON struct {
	Columns map[string][]value `json:"columns"`
}

// value is a float64 that encodes NaN and infinities as JSON null.
type value float64

func (v value) MarshalJSON() ([]byte, error) {
	f := float64(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(f)
}

func (v *value) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*v = value(math.NaN())
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*v = value(f)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (t Table) MarshalJSON() ([]byte, error) {
	out := tableJSON{Columns: make(map[string][]value, len(t.Columns))}
	for _, c := range t.Columns {
		vals := t.Data[c]
		col := make([]value, len(vals))
		for i, f := range vals {
			col[i] = value(f)
		}
		out.Columns[c] = col
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler. Columns come out sorted by name.
func (t *Table) UnmarshalJSON(b []byte) error {
	var in tableJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	names := make([]string, 0, len(in.Columns))
	for name := range in.Columns {
		names = append(names, name)
	}
	sort.Strings(names)

	t.Columns = names
	t.Data = make(map[string][]float64, len(names))
	for _, name := range names {
		col := in.Columns[name]
		vals := make([]float64, len(col))
		for i, v := range col {
			vals[i] = float64(v)
		}
		t.Data[name] = vals
	}
	return nil
}
