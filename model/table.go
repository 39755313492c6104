package model

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hangxie/parquet-go/v2/reader"
	pio "github.com/hangxie/parquet-tools/io"
)

// Info summarizes an open file for display and for the /info endpoint.
type Info struct {
	Path       string `json:"path"`
	NumRows    int64  `json:"numRows"`
	NumColumns int    `json:"numColumns"`
	FileSize   int64  `json:"fileSize"`
	CreatedBy  string `json:"createdBy,omitempty"`
}

// Table is a read-only window onto one Parquet file. Row data is never held
// in memory: Slice and ColumnValues read just the requested range through a
// fresh column reader each call.
type Table struct {
	mu      sync.Mutex
	uri     string
	pr      *reader.ParquetReader
	columns []leafColumn
	numRows int64
	info    Info
}

var supportedExtensions = map[string]bool{
	".parquet": true,
	".pq":      true,
}

// Open opens the Parquet file at uri, which may be a local path or any
// URI scheme the io helpers understand (s3, gs, http, ...).
func Open(uri string, readOption pio.ReadOption) (*Table, error) {
	ext := strings.ToLower(filepath.Ext(uri))
	if !supportedExtensions[ext] {
		return nil, fmt.Errorf("%q: %w", ext, ErrUnsupportedExtension)
	}

	// Surface a missing local file before the reader turns it into an
	// opaque open error. Remote URIs fail on their own terms.
	if !strings.Contains(uri, "://") {
		if _, err := os.Stat(uri); os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", uri, ErrFileNotFound)
		}
	}

	pr, err := pio.NewParquetFileReader(uri, readOption)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", uri, err)
	}

	t := &Table{
		uri:     uri,
		pr:      pr,
		columns: leafColumns(pr.Footer.Schema),
		numRows: pr.Footer.NumRows,
	}
	t.info = Info{
		Path:       uri,
		NumRows:    t.numRows,
		NumColumns: len(t.columns),
	}
	if pr.Footer.CreatedBy != nil {
		t.info.CreatedBy = *pr.Footer.CreatedBy
	}
	if fi, err := os.Stat(uri); err == nil {
		t.info.FileSize = fi.Size()
	} else {
		// Remote file: report the compressed data size instead
		for _, rg := range pr.Footer.RowGroups {
			if rg.IsSetTotalCompressedSize() {
				t.info.FileSize += rg.GetTotalCompressedSize()
				continue
			}
			for _, col := range rg.Columns {
				t.info.FileSize += col.MetaData.TotalCompressedSize
			}
		}
	}

	return t, nil
}

// Columns returns the dotted leaf column names in schema order.
func (t *Table) Columns() []string {
	names := make([]string, len(t.columns))
	for i, col := range t.columns {
		names[i] = col.Name
	}
	return names
}

// NumRows returns the total row count from the footer.
func (t *Table) NumRows() int64 {
	return t.numRows
}

// Info returns file-level metadata.
func (t *Table) Info() Info {
	return t.info
}

// Close releases the underlying file.
func (t *Table) Close() error {
	return t.pr.ReadStopWithError()
}

// Slice reads rows [offset, offset+length) and formats every cell for
// display. Null cells render as "". The range is clamped to the dataset;
// a window past the end returns an empty grid.
func (t *Table) Slice(offset, length int64) ([][]string, error) {
	offset, length = t.clamp(offset, length)
	if length == 0 {
		return [][]string{}, nil
	}

	grid := make([][]string, length)
	for i := range grid {
		grid[i] = make([]string, len(t.columns))
	}

	for colIdx, col := range t.columns {
		values, err := t.readWindow(colIdx, offset, length)
		if err != nil {
			return nil, fmt.Errorf("reading column %s: %w", col.Name, err)
		}
		for i, val := range values {
			if int64(i) >= length {
				break
			}
			grid[i][colIdx] = formatCell(val, col.Type, col.Elem)
		}
	}

	return grid, nil
}

// ColumnValues reads rows [offset, offset+length) of a single column,
// keeping nulls distinct as nil pointers.
func (t *Table) ColumnValues(index int, offset, length int64) ([]*string, error) {
	if index < 0 || index >= len(t.columns) {
		return nil, fmt.Errorf("column index %d out of range [0, %d): %w",
			index, len(t.columns), ErrInvalidColumnIndex)
	}

	offset, length = t.clamp(offset, length)
	if length == 0 {
		return []*string{}, nil
	}

	col := t.columns[index]
	values, err := t.readWindow(index, offset, length)
	if err != nil {
		return nil, fmt.Errorf("reading column %s: %w", col.Name, err)
	}

	out := make([]*string, len(values))
	for i, val := range values {
		if val == nil {
			continue
		}
		formatted := formatCell(val, col.Type, col.Elem)
		out[i] = &formatted
	}
	return out, nil
}

func (t *Table) clamp(offset, length int64) (int64, int64) {
	if offset < 0 {
		offset = 0
	}
	if length <= 0 || offset >= t.numRows {
		return offset, 0
	}
	if offset+length > t.numRows {
		length = t.numRows - offset
	}
	return offset, length
}

// readWindow reads length values of one column starting at row offset. A
// fresh column reader is created per call so that repeated windows never
// depend on previous read positions.
func (t *Table) readWindow(index int, offset, length int64) ([]any, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	fresh, err := reader.NewParquetColumnReader(t.pr.PFile, 4)
	if err != nil {
		return nil, err
	}
	defer func() { _ = fresh.ReadStopWithError() }()

	if offset > 0 {
		if err := fresh.SkipRows(offset); err != nil {
			return nil, err
		}
	}

	values, _, _, err := fresh.ReadColumnByIndex(int64(index), length)
	if err != nil {
		return nil, err
	}
	return values, nil
}
