package main

import "fmt"

// ValidationError is returned when a book does not satisfy
// the collection rules. Nothing is mutated nor persisted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + " " + e.Reason
}

func missingFieldError(field string) *ValidationError {
	return &ValidationError{Field: field, Reason: "is required"}
}

// StorageReadError describes a store which could not be read or decoded.
// It never leaves the storage layer: the collection starts empty instead.
type StorageReadError struct {
	Backend string
	Err     error
}

func (e *StorageReadError) Error() string {
	return fmt.Sprintf("storage: %s: read failed: %v", e.Backend, e.Err)
}

func (e *StorageReadError) Unwrap() error {
	return e.Err
}

// StorageWriteError is returned when the collection could not be saved.
// The in-memory collection may already hold the attempted change.
type StorageWriteError struct {
	Backend string
	Err     error
}

func (e *StorageWriteError) Error() string {
	return fmt.Sprintf("storage: %s: write failed: %v", e.Backend, e.Err)
}

func (e *StorageWriteError) Unwrap() error {
	return e.Err
}
