package repository

import "errors"

// Sentinel kinds for catalog errors.
var (
	ErrNotFound       = errors.New("course not found")
	ErrInvalidCatalog = errors.New("invalid catalog")
)
