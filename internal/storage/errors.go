package storage

import "errors"

var (
	// ErrNotFound is returned when a referenced medication does not exist
	ErrNotFound = errors.New("medication not found")
	// ErrNotInitialized is returned by Load when the database has not been created
	ErrNotInitialized = errors.New("storage not initialized")
)
