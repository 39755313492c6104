package viewer

// OpenFunc opens a path and returns a table source for it.
type OpenFunc func(path string) (TableSource, error)

// Render is the declarative output of a controller transition. The
// rendering layer applies it to widgets; the controller never touches
// widgets itself.
type Render struct {
	Headers     []string
	Rows        [][]string
	Status      string
	PrevEnabled bool
	NextEnabled bool
	Error       string
}

// Controller owns the viewing state for at most one open file: the table
// source, the page cursor and the column order. Every user action maps to
// one method that mutates the state and returns a fresh Render.
type Controller struct {
	open     OpenFunc
	pageSize int64

	source TableSource
	path   string
	page   PageState
	order  *ColumnOrder
}

// NewController creates a controller that opens files through open. A
// non-positive pageSize falls back to DefaultPageSize.
func NewController(open OpenFunc, pageSize int64) *Controller {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Controller{open: open, pageSize: pageSize}
}

// Loaded reports whether a dataset is present.
func (c *Controller) Loaded() bool {
	return c.source != nil
}

// Path returns the path of the open file, or "" when none is loaded.
func (c *Controller) Path() string {
	return c.path
}

// Offset returns the current page offset. Exposed so a session store can
// snapshot it.
func (c *Controller) Offset() int64 {
	return c.page.Offset
}

// Columns returns the currently displayed column order.
func (c *Controller) Columns() []string {
	if c.order == nil {
		return nil
	}
	return c.order.Current()
}

// Source returns the open table source, or nil.
func (c *Controller) Source() TableSource {
	return c.source
}

// OpenFile replaces the current dataset with the file at path, resetting
// the page to the first row and the column order to native. A failed open
// discards any previously loaded dataset; keeping the old table across a
// failed reload is the other defensible policy, this one matches the
// reference behavior.
func (c *Controller) OpenFile(path string) Render {
	src, err := c.open(path)
	if err != nil {
		c.source = nil
		c.path = ""
		c.order = nil
		c.page = PageState{}
		return Render{Status: "No file loaded.", Error: err.Error()}
	}
	c.source = src
	c.path = path
	c.page = NewPageState(c.pageSize, src.NumRows())
	c.order = NewColumnOrder(src.Columns())
	return c.render()
}

// Next moves to the following page. Paging reverts any custom column order.
// A no-op when no dataset is loaded or the last page is showing.
func (c *Controller) Next() Render {
	if c.source == nil {
		return c.render()
	}
	c.page = c.page.Next()
	c.order.Reset()
	return c.render()
}

// Previous moves to the preceding page, reverting any custom column order.
func (c *Controller) Previous() Render {
	if c.source == nil {
		return c.render()
	}
	c.page = c.page.Previous()
	c.order.Reset()
	return c.render()
}

// SelectColumn moves the column at index (into the displayed order) to the
// front. Out-of-range indexes are stale clicks and are ignored.
func (c *Controller) SelectColumn(index int) Render {
	if c.source == nil {
		return c.render()
	}
	current := c.order.Current()
	if index < 0 || index >= len(current) {
		return c.render()
	}
	_ = c.order.Select(current[index])
	return c.render()
}

// ValueCounts computes the frequency table for the named column over the
// full dataset. It mutates neither page nor column state.
func (c *Controller) ValueCounts(column string) (ValueCounts, error) {
	if c.source == nil {
		return ValueCounts{}, ErrNoDataset
	}
	return Analyze(c.source, column)
}

// RestoreOffset repositions onto the page containing offset, clamped to the
// dataset. Used when resuming a saved session.
func (c *Controller) RestoreOffset(offset int64) Render {
	if c.source == nil {
		return c.render()
	}
	c.page = c.page.WithOffset(offset)
	return c.render()
}

// Refresh re-renders the current state without changing it.
func (c *Controller) Refresh() Render {
	return c.render()
}

func (c *Controller) render() Render {
	if c.source == nil {
		return Render{Status: "No file loaded."}
	}

	r := Render{
		Headers:     c.order.Current(),
		Status:      c.page.Status(),
		PrevEnabled: c.page.CanRetreat(),
		NextEnabled: c.page.CanAdvance(),
	}

	grid, err := c.source.Slice(c.page.Offset, c.page.PageSize)
	if err != nil {
		r.Error = err.Error()
		return r
	}
	r.Rows = make([][]string, len(grid))
	for i, row := range grid {
		projected, err := c.order.ProjectRow(row)
		if err != nil {
			r.Rows = nil
			r.Error = err.Error()
			return r
		}
		r.Rows[i] = projected
	}
	return r
}
