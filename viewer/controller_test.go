package viewer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openerFor(sources map[string]*fakeSource) OpenFunc {
	return func(path string) (TableSource, error) {
		src, ok := sources[path]
		if !ok {
			return nil, errors.New("no such file")
		}
		return src, nil
	}
}

func Test_Controller_OpenFile(t *testing.T) {
	sources := map[string]*fakeSource{
		"good.parquet": {
			columns: []string{"a", "b"},
			rows: [][]*string{
				{strPtr("1"), strPtr("x")},
				{strPtr("2"), nil},
			},
		},
	}
	ctrl := NewController(openerFor(sources), 500)

	t.Run("starts empty", func(t *testing.T) {
		r := ctrl.Refresh()
		assert.False(t, ctrl.Loaded())
		assert.Equal(t, "No file loaded.", r.Status)
		assert.False(t, r.PrevEnabled)
		assert.False(t, r.NextEnabled)
	})

	t.Run("successful open renders first page", func(t *testing.T) {
		r := ctrl.OpenFile("good.parquet")
		require.Empty(t, r.Error)
		assert.True(t, ctrl.Loaded())
		assert.Equal(t, []string{"a", "b"}, r.Headers)
		assert.Equal(t, [][]string{{"1", "x"}, {"2", ""}}, r.Rows)
		assert.Equal(t, "Showing Rows: 1 - 2 of 2", r.Status)
		assert.Equal(t, "good.parquet", ctrl.Path())
	})

	t.Run("failed open clears the loaded dataset", func(t *testing.T) {
		r := ctrl.OpenFile("missing.parquet")
		assert.Equal(t, "no such file", r.Error)
		assert.False(t, ctrl.Loaded())
		assert.Empty(t, ctrl.Path())
		assert.Equal(t, "No file loaded.", r.Status)
	})
}

func Test_Controller_Paging(t *testing.T) {
	sources := map[string]*fakeSource{"big.parquet": numberedSource(1000)}
	ctrl := NewController(openerFor(sources), 500)

	r := ctrl.OpenFile("big.parquet")
	require.Empty(t, r.Error)
	require.Len(t, r.Rows, 500)
	assert.False(t, r.PrevEnabled)
	assert.True(t, r.NextEnabled)

	r = ctrl.Next()
	assert.Equal(t, int64(500), ctrl.Offset())
	assert.Equal(t, "Showing Rows: 501 - 1000 of 1000", r.Status)
	assert.Equal(t, "500", r.Rows[0][0])
	assert.True(t, r.PrevEnabled)
	assert.False(t, r.NextEnabled)

	// advancing past the last page is a no-op
	r = ctrl.Next()
	assert.Equal(t, int64(500), ctrl.Offset())

	r = ctrl.Previous()
	assert.Equal(t, int64(0), ctrl.Offset())
	assert.False(t, r.PrevEnabled)

	// retreating before the first page is a no-op
	ctrl.Previous()
	assert.Equal(t, int64(0), ctrl.Offset())
}

func Test_Controller_PagingWithoutDataset(t *testing.T) {
	ctrl := NewController(openerFor(nil), 500)
	assert.Equal(t, "No file loaded.", ctrl.Next().Status)
	assert.Equal(t, "No file loaded.", ctrl.Previous().Status)
	assert.Equal(t, "No file loaded.", ctrl.SelectColumn(0).Status)
}

func Test_Controller_SelectColumn(t *testing.T) {
	sources := map[string]*fakeSource{
		"f.parquet": {
			columns: []string{"a", "b", "c"},
			rows: [][]*string{
				{strPtr("1"), strPtr("2"), strPtr("3")},
			},
		},
	}
	ctrl := NewController(openerFor(sources), 500)
	require.Empty(t, ctrl.OpenFile("f.parquet").Error)

	t.Run("moves selected column to front", func(t *testing.T) {
		r := ctrl.SelectColumn(2)
		assert.Equal(t, []string{"c", "a", "b"}, r.Headers)
		assert.Equal(t, [][]string{{"3", "1", "2"}}, r.Rows)
	})

	t.Run("out of range index is ignored", func(t *testing.T) {
		r := ctrl.SelectColumn(99)
		assert.Equal(t, []string{"c", "a", "b"}, r.Headers)
		assert.Empty(t, r.Error)
	})

	t.Run("paging resets the order", func(t *testing.T) {
		r := ctrl.Next() // no-op move, still resets order
		assert.Equal(t, []string{"a", "b", "c"}, r.Headers)
	})
}

func Test_Controller_ValueCounts(t *testing.T) {
	sources := map[string]*fakeSource{
		"f.parquet": {
			columns: []string{"k"},
			rows:    [][]*string{{strPtr("a")}, {strPtr("a")}, {nil}},
		},
	}
	ctrl := NewController(openerFor(sources), 500)

	t.Run("requires a dataset", func(t *testing.T) {
		_, err := ctrl.ValueCounts("k")
		assert.ErrorIs(t, err, ErrNoDataset)
	})

	require.Empty(t, ctrl.OpenFile("f.parquet").Error)

	t.Run("does not disturb view state", func(t *testing.T) {
		before := ctrl.Refresh()
		result, err := ctrl.ValueCounts("k")
		require.NoError(t, err)
		assert.Equal(t, int64(2), result.Counts[0].Count)
		assert.Equal(t, before, ctrl.Refresh())
	})

	t.Run("unknown column", func(t *testing.T) {
		_, err := ctrl.ValueCounts("missing")
		assert.ErrorIs(t, err, ErrColumnNotFound)
	})
}

func Test_Controller_RestoreOffset(t *testing.T) {
	sources := map[string]*fakeSource{"big.parquet": numberedSource(1000)}
	ctrl := NewController(openerFor(sources), 500)
	require.Empty(t, ctrl.OpenFile("big.parquet").Error)

	r := ctrl.RestoreOffset(500)
	assert.Equal(t, int64(500), ctrl.Offset())
	assert.Equal(t, "Showing Rows: 501 - 1000 of 1000", r.Status)

	// restoring past the end clamps to the last page
	ctrl.RestoreOffset(99999)
	assert.Equal(t, int64(500), ctrl.Offset())
}

func Test_Controller_SliceError(t *testing.T) {
	src := numberedSource(10)
	sources := map[string]*fakeSource{"f.parquet": src}
	ctrl := NewController(openerFor(sources), 500)
	require.Empty(t, ctrl.OpenFile("f.parquet").Error)

	src.sliceErr = errors.New("read failed")
	r := ctrl.Refresh()
	assert.Equal(t, "read failed", r.Error)
	assert.Equal(t, []string{"id"}, r.Headers)
	assert.Nil(t, r.Rows)
}

func Test_Controller_SliceBounds(t *testing.T) {
	src := numberedSource(1000)

	tests := []struct {
		name     string
		offset   int64
		expected int
	}{
		{name: "full page", offset: 500, expected: 500},
		{name: "partial tail", offset: 900, expected: 100},
		{name: "past the end", offset: 1000, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grid, err := src.Slice(tt.offset, 500)
			require.NoError(t, err)
			assert.Len(t, grid, tt.expected)
		})
	}
}
