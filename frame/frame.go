// Package frame holds the in-memory table a data set is built into: a
// timestamp index and a set of ordered, named numeric columns.
package frame

import (
	"fmt"
	"time"
)

// Column is a named series of samples aligned by position to the table
// index.
type Column struct {
	Name   string
	Values []float64
}

// Table is the generated data set.  Every column has exactly one value
// per entry of Index.
type Table struct {
	Index   []time.Time
	Columns []Column
}

// New returns an empty table over the given timestamps.
func New(index []time.Time) *Table {
	return &Table{Index: index}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Index)
}

// Names returns the column names in order.
func (t *Table) Names() []string {
	ret := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		ret = append(ret, c.Name)
	}
	return ret
}

// Column returns the values of the named column.
func (t *Table) Column(name string) ([]float64, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c.Values, true
		}
	}
	return nil, false
}

// Add appends a column.  The column must be aligned to the index and its
// name must not already be present.
func (t *Table) Add(name string, values []float64) error {
	if len(values) != len(t.Index) {
		return fmt.Errorf("column %q has %d values, table has %d rows", name, len(values), len(t.Index))
	}
	if _, ok := t.Column(name); ok {
		return fmt.Errorf("column %q already present", name)
	}
	t.Columns = append(t.Columns, Column{Name: name, Values: values})
	return nil
}

// Set replaces the values of an existing column.
func (t *Table) Set(name string, values []float64) error {
	if len(values) != len(t.Index) {
		return fmt.Errorf("column %q has %d values, table has %d rows", name, len(values), len(t.Index))
	}
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			t.Columns[i].Values = values
			return nil
		}
	}
	return fmt.Errorf("column %q not found", name)
}

// Row returns the values of row i in column order.
func (t *Table) Row(i int) []float64 {
	ret := make([]float64, len(t.Columns))
	for j, c := range t.Columns {
		ret[j] = c.Values[i]
	}
	return ret
}

// Clone makes a deep copy.  The index is shared as it is never modified.
func (t *Table) Clone() *Table {
	c := &Table{Index: t.Index, Columns: make([]Column, len(t.Columns))}
	for i, col := range t.Columns {
		values := make([]float64, len(col.Values))
		copy(values, col.Values)
		c.Columns[i] = Column{Name: col.Name, Values: values}
	}
	return c
}
