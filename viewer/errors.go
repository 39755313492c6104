package viewer

import "errors"

var (
	// ErrColumnNotFound is returned when a named column does not exist in
	// the dataset
	ErrColumnNotFound = errors.New("column not found")

	// ErrInvalidSelection is returned when a selection refers to an index
	// that is out of range
	ErrInvalidSelection = errors.New("invalid selection")

	// ErrNoDataset is returned when an operation needs a loaded dataset and
	// none is present
	ErrNoDataset = errors.New("no dataset loaded")
)
