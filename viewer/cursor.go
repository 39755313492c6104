package viewer

import "fmt"

// DefaultPageSize is the number of rows per page unless overridden.
const DefaultPageSize = 500

// PageState tracks the row window currently displayed. It is an immutable
// value: Next, Previous and WithOffset return a new state and never move the
// offset outside [0, TotalRows).
type PageState struct {
	Offset    int64
	PageSize  int64
	TotalRows int64
}

// NewPageState returns a PageState positioned at the first page.
func NewPageState(pageSize, totalRows int64) PageState {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return PageState{PageSize: pageSize, TotalRows: totalRows}
}

// CanAdvance reports whether a further page exists after the current one.
func (s PageState) CanAdvance() bool {
	return s.Offset+s.PageSize < s.TotalRows
}

// CanRetreat reports whether a page exists before the current one.
func (s PageState) CanRetreat() bool {
	return s.Offset > 0
}

// Next advances by one page, or returns the state unchanged when already on
// the last page.
func (s PageState) Next() PageState {
	if !s.CanAdvance() {
		return s
	}
	s.Offset += s.PageSize
	return s
}

// Previous retreats by one page, clamped to the first row.
func (s PageState) Previous() PageState {
	if !s.CanRetreat() {
		return s
	}
	s.Offset -= s.PageSize
	if s.Offset < 0 {
		s.Offset = 0
	}
	return s
}

// WithOffset returns the state positioned at the page containing offset,
// clamped into the valid range. Used when restoring a saved session.
func (s PageState) WithOffset(offset int64) PageState {
	if offset < 0 || s.TotalRows == 0 {
		s.Offset = 0
		return s
	}
	if offset >= s.TotalRows {
		offset = s.TotalRows - 1
	}
	// Snap to a page boundary so paging stays aligned.
	s.Offset = (offset / s.PageSize) * s.PageSize
	return s
}

// StatusRange returns the 1-indexed inclusive row range of the current page.
// An empty dataset yields (0, 0, 0).
func (s PageState) StatusRange() (startRow, endRow, totalRows int64) {
	if s.TotalRows == 0 {
		return 0, 0, 0
	}
	endRow = s.Offset + s.PageSize
	if endRow > s.TotalRows {
		endRow = s.TotalRows
	}
	return s.Offset + 1, endRow, s.TotalRows
}

// Status renders the page range as shown in the status line.
func (s PageState) Status() string {
	start, end, total := s.StatusRange()
	return fmt.Sprintf("Showing Rows: %d - %d of %d", start, end, total)
}
