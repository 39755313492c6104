package client

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/jac241/pview/model"
	"github.com/jac241/pview/service"
	"github.com/jac241/pview/viewer"
)

// Client reads table data from a running pview API server. It satisfies
// the same table source contract as a locally opened file, so the viewer
// can page through a remote dataset transparently.
type Client struct {
	baseURL string
	client  *http.Client

	info    model.Info
	columns []string
}

// New connects to the server at baseURL and fetches the table's metadata
// up front. A failure here usually means the server is not up yet.
func New(baseURL string) (*Client, error) {
	c := &Client{
		baseURL: baseURL,
		client:  &http.Client{},
	}

	if err := c.get("/info", &c.info); err != nil {
		return nil, fmt.Errorf("fetching file info: %w", err)
	}

	var cols service.ColumnsResponse
	if err := c.get("/columns", &cols); err != nil {
		return nil, fmt.Errorf("fetching columns: %w", err)
	}
	c.columns = cols.Columns

	return c, nil
}

// Info returns the metadata fetched at connect time.
func (c *Client) Info() model.Info {
	return c.info
}

// Columns returns the column names in schema order.
func (c *Client) Columns() []string {
	return c.columns
}

// NumRows returns the total row count.
func (c *Client) NumRows() int64 {
	return c.info.NumRows
}

// Slice fetches rows [offset, offset+length) already formatted for display.
func (c *Client) Slice(offset, length int64) ([][]string, error) {
	var resp service.RowsResponse
	path := fmt.Sprintf("/rows?offset=%d&limit=%d", offset, length)
	if err := c.get(path, &resp); err != nil {
		return nil, err
	}
	return resp.Rows, nil
}

// ColumnValues fetches a window of one column, nulls preserved as nil.
func (c *Client) ColumnValues(index int, offset, length int64) ([]*string, error) {
	var resp service.ValuesResponse
	path := fmt.Sprintf("/columns/%d/values?offset=%d&limit=%d", index, offset, length)
	if err := c.get(path, &resp); err != nil {
		return nil, err
	}
	return resp.Values, nil
}

// ValueCounts fetches the server-computed frequency table for one column.
func (c *Client) ValueCounts(index int) (viewer.ValueCounts, error) {
	var counts viewer.ValueCounts
	path := fmt.Sprintf("/columns/%d/valuecounts", index)
	err := c.get(path, &counts)
	return counts, err
}

// get makes a GET request and decodes the JSON response.
func (c *Client) get(path string, result interface{}) error {
	resp, err := c.client.Get(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
