package viewer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_PageState_NextPrevious(t *testing.T) {
	tests := []struct {
		name       string
		state      PageState
		wantNext   int64
		wantPrev   int64
		canAdvance bool
		canRetreat bool
	}{
		{
			name:       "first page of many",
			state:      PageState{Offset: 0, PageSize: 500, TotalRows: 1000},
			wantNext:   500,
			wantPrev:   0,
			canAdvance: true,
			canRetreat: false,
		},
		{
			name:       "last page",
			state:      PageState{Offset: 500, PageSize: 500, TotalRows: 1000},
			wantNext:   500,
			wantPrev:   0,
			canAdvance: false,
			canRetreat: true,
		},
		{
			name:       "middle page",
			state:      PageState{Offset: 500, PageSize: 500, TotalRows: 2000},
			wantNext:   1000,
			wantPrev:   0,
			canAdvance: true,
			canRetreat: true,
		},
		{
			name:       "single short page",
			state:      PageState{Offset: 0, PageSize: 500, TotalRows: 100},
			wantNext:   0,
			wantPrev:   0,
			canAdvance: false,
			canRetreat: false,
		},
		{
			name:       "empty dataset",
			state:      PageState{Offset: 0, PageSize: 500, TotalRows: 0},
			wantNext:   0,
			wantPrev:   0,
			canAdvance: false,
			canRetreat: false,
		},
		{
			name:       "page size exactly fills dataset",
			state:      PageState{Offset: 0, PageSize: 500, TotalRows: 500},
			wantNext:   0,
			wantPrev:   0,
			canAdvance: false,
			canRetreat: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantNext, tt.state.Next().Offset)
			assert.Equal(t, tt.wantPrev, tt.state.Previous().Offset)
			assert.Equal(t, tt.canAdvance, tt.state.CanAdvance())
			assert.Equal(t, tt.canRetreat, tt.state.CanRetreat())
		})
	}
}

func Test_PageState_RoundTrip(t *testing.T) {
	// previous(next(s)) == s whenever next actually advances
	for _, offset := range []int64{0, 500, 1000, 1500} {
		state := PageState{Offset: offset, PageSize: 500, TotalRows: 2500}
		if !state.CanAdvance() {
			continue
		}
		assert.Equal(t, state, state.Next().Previous(), "offset %d", offset)
	}
}

func Test_PageState_BoundaryPredicates(t *testing.T) {
	// canAdvance is false iff offset+pageSize >= totalRows
	for offset := int64(0); offset <= 1000; offset += 250 {
		state := PageState{Offset: offset, PageSize: 500, TotalRows: 1000}
		assert.Equal(t, offset+500 < 1000, state.CanAdvance(), "offset %d", offset)
		assert.Equal(t, offset > 0, state.CanRetreat(), "offset %d", offset)
	}
}

func Test_PageState_Status(t *testing.T) {
	tests := []struct {
		name     string
		state    PageState
		expected string
	}{
		{
			name:     "second page of two",
			state:    PageState{Offset: 500, PageSize: 500, TotalRows: 1000},
			expected: "Showing Rows: 501 - 1000 of 1000",
		},
		{
			name:     "first page",
			state:    PageState{Offset: 0, PageSize: 500, TotalRows: 1000},
			expected: "Showing Rows: 1 - 500 of 1000",
		},
		{
			name:     "partial last page",
			state:    PageState{Offset: 900, PageSize: 500, TotalRows: 1000},
			expected: "Showing Rows: 901 - 1000 of 1000",
		},
		{
			name:     "empty dataset",
			state:    PageState{Offset: 0, PageSize: 500, TotalRows: 0},
			expected: "Showing Rows: 0 - 0 of 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.state.Status())
		})
	}
}

func Test_PageState_WithOffset(t *testing.T) {
	tests := []struct {
		name     string
		offset   int64
		expected int64
	}{
		{name: "exact page boundary", offset: 500, expected: 500},
		{name: "mid page snaps down", offset: 750, expected: 500},
		{name: "negative clamps to zero", offset: -10, expected: 0},
		{name: "past the end clamps to last page", offset: 5000, expected: 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := NewPageState(500, 1000).WithOffset(tt.offset)
			assert.Equal(t, tt.expected, state.Offset)
		})
	}

	t.Run("empty dataset stays at zero", func(t *testing.T) {
		state := NewPageState(500, 0).WithOffset(123)
		assert.Equal(t, int64(0), state.Offset)
	})
}

func Test_NewPageState_DefaultPageSize(t *testing.T) {
	state := NewPageState(0, 100)
	assert.Equal(t, int64(DefaultPageSize), state.PageSize)
}
