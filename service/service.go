package service

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	pio "github.com/hangxie/parquet-tools/io"

	"github.com/jac241/pview/model"
	"github.com/jac241/pview/viewer"
)

// maxLimit caps how many rows a single request may ask for.
const maxLimit = 10000

// DataService exposes one table over HTTP: its metadata, row windows, raw
// column values and per-column frequency tables.
type DataService struct {
	source viewer.TableSource
	info   model.Info
	closer func() error
}

// NewDataService opens the Parquet file at uri and serves it.
func NewDataService(uri string, readOpts pio.ReadOption) (*DataService, error) {
	table, err := model.Open(uri, readOpts)
	if err != nil {
		return nil, err
	}
	return &DataService{
		source: table,
		info:   table.Info(),
		closer: table.Close,
	}, nil
}

// NewDataServiceFor serves an already-open source. Used by tests and by the
// embedded server inside the TUI.
func NewDataServiceFor(source viewer.TableSource, info model.Info) *DataService {
	return &DataService{source: source, info: info}
}

// Close closes the underlying file, if this service opened it.
func (s *DataService) Close() error {
	if s.closer != nil {
		return s.closer()
	}
	return nil
}

// ColumnsResponse lists the table's columns in schema order.
type ColumnsResponse struct {
	Columns []string `json:"columns"`
	Count   int      `json:"count"`
}

// RowsResponse is one window of formatted rows.
type RowsResponse struct {
	Offset int64      `json:"offset"`
	Count  int        `json:"count"`
	Rows   [][]string `json:"rows"`
}

// ValuesResponse is one window of a single column. Nulls are JSON null.
type ValuesResponse struct {
	Column string    `json:"column"`
	Offset int64     `json:"offset"`
	Count  int       `json:"count"`
	Values []*string `json:"values"`
}

// CreateRouter creates a new router with all routes configured.
// If quiet is true, disables logging middleware (useful for embedded servers)
func CreateRouter(s *DataService, quiet bool) *mux.Router {
	r := mux.NewRouter()
	s.SetupRoutes(r)
	r.Use(CORSMiddleware)
	if !quiet {
		r.Use(LoggingMiddleware)
	}
	return r
}

// SetupRoutes configures all HTTP routes
func (s *DataService) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/info", s.handleInfo).Methods("GET")
	r.HandleFunc("/columns", s.handleColumns).Methods("GET")
	r.HandleFunc("/rows", s.handleRows).Methods("GET")
	r.HandleFunc("/columns/{colIndex}/values", s.handleColumnValues).Methods("GET")
	r.HandleFunc("/columns/{colIndex}/valuecounts", s.handleValueCounts).Methods("GET")
}

func (s *DataService) handleInfo(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, s.info)
}

func (s *DataService) handleColumns(w http.ResponseWriter, r *http.Request) {
	columns := s.source.Columns()
	WriteJSON(w, http.StatusOK, ColumnsResponse{Columns: columns, Count: len(columns)})
}

func (s *DataService) handleRows(w http.ResponseWriter, r *http.Request) {
	offset, limit, err := windowParams(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	rows, err := s.source.Slice(offset, limit)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, RowsResponse{
		Offset: offset,
		Count:  len(rows),
		Rows:   rows,
	})
}

func (s *DataService) handleColumnValues(w http.ResponseWriter, r *http.Request) {
	colIndex, ok := s.columnIndex(w, r)
	if !ok {
		return
	}

	offset, limit, err := windowParams(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	values, err := s.source.ColumnValues(colIndex, offset, limit)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, ValuesResponse{
		Column: s.source.Columns()[colIndex],
		Offset: offset,
		Count:  len(values),
		Values: values,
	})
}

func (s *DataService) handleValueCounts(w http.ResponseWriter, r *http.Request) {
	colIndex, ok := s.columnIndex(w, r)
	if !ok {
		return
	}

	counts, err := viewer.Analyze(s.source, s.source.Columns()[colIndex])
	if err != nil {
		if errors.Is(err, viewer.ErrColumnNotFound) {
			WriteError(w, http.StatusNotFound, err.Error())
			return
		}
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	WriteJSON(w, http.StatusOK, counts)
}

// columnIndex parses and validates the colIndex path variable, writing the
// error response itself when the index is unusable.
func (s *DataService) columnIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	vars := mux.Vars(r)
	colIndex, err := strconv.Atoi(vars["colIndex"])
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid column index")
		return 0, false
	}

	numColumns := len(s.source.Columns())
	if colIndex < 0 || colIndex >= numColumns {
		WriteError(w, http.StatusNotFound,
			fmt.Sprintf("column index %d out of range [0, %d)", colIndex, numColumns))
		return 0, false
	}
	return colIndex, true
}

// windowParams reads offset and limit query parameters. Limit defaults to
// one page and is capped at maxLimit.
func windowParams(r *http.Request) (offset, limit int64, err error) {
	offset = 0
	limit = viewer.DefaultPageSize

	if raw := r.URL.Query().Get("offset"); raw != "" {
		offset, err = strconv.ParseInt(raw, 10, 64)
		if err != nil || offset < 0 {
			return 0, 0, fmt.Errorf("invalid offset %q", raw)
		}
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.ParseInt(raw, 10, 64)
		if err != nil || limit <= 0 {
			return 0, 0, fmt.Errorf("invalid limit %q", raw)
		}
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return offset, limit, nil
}

// StartServer starts the HTTP server with verbose output
func StartServer(s *DataService, addr string) error {
	r := CreateRouter(s, false)

	fmt.Printf("Starting pview API server on %s\n", addr)
	fmt.Printf("Available endpoints:\n")
	fmt.Printf("  GET /info                                 - File metadata\n")
	fmt.Printf("  GET /columns                              - Column names\n")
	fmt.Printf("  GET /rows?offset=N&limit=N                - Formatted row window\n")
	fmt.Printf("  GET /columns/{colIndex}/values?offset=N&limit=N - Raw column window\n")
	fmt.Printf("  GET /columns/{colIndex}/valuecounts       - Column frequency table\n")
	fmt.Println()

	return http.ListenAndServe(addr, r)
}
