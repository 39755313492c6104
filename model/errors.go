package model

import "errors"

var (
	// ErrFileNotFound is returned when a local path does not exist
	ErrFileNotFound = errors.New("file not found")

	// ErrUnsupportedExtension is returned for paths that are not parquet files
	ErrUnsupportedExtension = errors.New("unsupported file extension")

	// ErrInvalidColumnIndex is returned when an invalid column index is requested
	ErrInvalidColumnIndex = errors.New("invalid column index")
)
