package viewer

// TableSource provides paged access to an opened tabular dataset. Cell
// values are pre-formatted display strings; in Slice output missing values
// are normalized to the empty string, while ColumnValues keeps them as nil
// pointers so aggregations can tell a null apart from an empty string.
//
// Implementations are expected to materialize only the requested window,
// not the whole dataset.
type TableSource interface {
	// Columns returns the column names in the dataset's native order.
	Columns() []string

	// NumRows returns the total number of rows.
	NumRows() int64

	// Slice returns up to length rows starting at offset, in native column
	// order. It returns fewer rows when offset+length exceeds the row
	// count, and an empty grid when offset is at or past the end.
	Slice(offset, length int64) ([][]string, error)

	// ColumnValues returns up to length values of one column starting at
	// offset. A nil entry is a missing value.
	ColumnValues(index int, offset, length int64) ([]*string, error)
}
