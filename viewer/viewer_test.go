package viewer

import "fmt"

// fakeSource is an in-memory TableSource for tests. Rows hold nil pointers
// for missing values, mirroring what the parquet-backed source produces.
type fakeSource struct {
	columns  []string
	rows     [][]*string
	sliceErr error
}

func (f *fakeSource) Columns() []string {
	return f.columns
}

func (f *fakeSource) NumRows() int64 {
	return int64(len(f.rows))
}

func (f *fakeSource) Slice(offset, length int64) ([][]string, error) {
	if f.sliceErr != nil {
		return nil, f.sliceErr
	}
	total := f.NumRows()
	if offset < 0 || length <= 0 || offset >= total {
		return [][]string{}, nil
	}
	if offset+length > total {
		length = total - offset
	}
	grid := make([][]string, length)
	for i := int64(0); i < length; i++ {
		row := make([]string, len(f.columns))
		for j, cell := range f.rows[offset+i] {
			if cell != nil {
				row[j] = *cell
			}
		}
		grid[i] = row
	}
	return grid, nil
}

func (f *fakeSource) ColumnValues(index int, offset, length int64) ([]*string, error) {
	if index < 0 || index >= len(f.columns) {
		return nil, fmt.Errorf("column index %d out of range", index)
	}
	total := f.NumRows()
	if offset < 0 || length <= 0 || offset >= total {
		return []*string{}, nil
	}
	if offset+length > total {
		length = total - offset
	}
	values := make([]*string, length)
	for i := int64(0); i < length; i++ {
		values[i] = f.rows[offset+i][index]
	}
	return values, nil
}

func strPtr(s string) *string {
	return &s
}

// numberedSource builds a single-column source with n rows: "0", "1", ...
func numberedSource(n int) *fakeSource {
	src := &fakeSource{columns: []string{"id"}}
	for i := 0; i < n; i++ {
		src.rows = append(src.rows, []*string{strPtr(fmt.Sprintf("%d", i))})
	}
	return src
}
