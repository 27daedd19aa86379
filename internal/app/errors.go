package service

import "errors"

var (
	// ErrNotStarted is returned when the service is used before Start.
	ErrNotStarted = errors.New("service not started")
	// ErrEmptyBatch is returned for a batch without profiles.
	ErrEmptyBatch = errors.New("batch is empty")
	// ErrBatchTooLarge is returned when a batch exceeds the configured size.
	ErrBatchTooLarge = errors.New("batch too large")
)
