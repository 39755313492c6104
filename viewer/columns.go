package viewer

import "fmt"

// ColumnOrder tracks the displayed column order against the dataset's native
// order. The current order is always a permutation of the original; only the
// ordering differs.
type ColumnOrder struct {
	original []string
	current  []string
	index    map[string]int // name -> native position
}

// NewColumnOrder starts with the dataset's native order.
func NewColumnOrder(columns []string) *ColumnOrder {
	o := &ColumnOrder{
		original: append([]string(nil), columns...),
		current:  append([]string(nil), columns...),
		index:    make(map[string]int, len(columns)),
	}
	for i, name := range columns {
		o.index[name] = i
	}
	return o
}

// Original returns the dataset's native column order.
func (o *ColumnOrder) Original() []string {
	return append([]string(nil), o.original...)
}

// Current returns the displayed column order.
func (o *ColumnOrder) Current() []string {
	return append([]string(nil), o.current...)
}

// Select moves the named column to the front, preserving the relative order
// of the remaining columns. Selecting the column already at the front is a
// no-op. Unknown names are rejected.
func (o *ColumnOrder) Select(name string) error {
	if _, ok := o.index[name]; !ok {
		return fmt.Errorf("%q: %w", name, ErrColumnNotFound)
	}
	if len(o.current) > 0 && o.current[0] == name {
		return nil
	}
	reordered := make([]string, 0, len(o.current))
	reordered = append(reordered, name)
	for _, col := range o.current {
		if col != name {
			reordered = append(reordered, col)
		}
	}
	o.current = reordered
	return nil
}

// Reset restores the native column order.
func (o *ColumnOrder) Reset() {
	o.current = append(o.current[:0], o.original...)
}

// ProjectRow maps a row given in native column order into the current
// display order.
func (o *ColumnOrder) ProjectRow(row []string) ([]string, error) {
	if len(row) != len(o.original) {
		return nil, fmt.Errorf("row has %d cells, want %d: %w", len(row), len(o.original), ErrInvalidSelection)
	}
	projected := make([]string, len(o.current))
	for i, name := range o.current {
		native, ok := o.index[name]
		if !ok {
			return nil, fmt.Errorf("%q: %w", name, ErrColumnNotFound)
		}
		projected[i] = row[native]
	}
	return projected, nil
}
