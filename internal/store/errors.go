package store

import (
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

// ErrMissingID is returned by Put for a recipe without an identifier.
var ErrMissingID = errors.New("recipe has no id")

// ErrNotFound is returned by Get when no recipe has the requested id.
var ErrNotFound = errors.New("recipe not found")

var errStoreClosed = errors.New("store is closed")

// StorageErrorCode categorizes storage failures.
type StorageErrorCode string

const (
	// ErrCodeQuotaExceeded indicates the database is full.
	ErrCodeQuotaExceeded StorageErrorCode = "QUOTA_EXCEEDED"

	// ErrCodeUnavailable indicates the database cannot be opened or written.
	ErrCodeUnavailable StorageErrorCode = "UNAVAILABLE"

	// ErrCodeFailed covers every other backend failure.
	ErrCodeFailed StorageErrorCode = "FAILED"
)

// StorageError reports a failed storage operation. The in-memory view of
// the caller may have diverged from what is durable.
type StorageError struct {
	// Code identifies the error category.
	Code StorageErrorCode

	// Op names the store operation that failed ("put", "delete", ...).
	Op string

	// Err is the underlying driver error.
	Err error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Op, e.Err)
}

// Unwrap exposes the driver error to errors.Is/As.
func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsStorageError returns true if err is or wraps a *StorageError.
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

// IsQuotaError returns true if the error is a quota exceeded error.
// Uses errors.As to handle wrapped errors.
func IsQuotaError(err error) bool {
	var se *StorageError
	if errors.As(err, &se) {
		return se.Code == ErrCodeQuotaExceeded
	}
	return false
}

// IsUnavailableError returns true if the storage backend is unavailable.
// Uses errors.As to handle wrapped errors.
func IsUnavailableError(err error) bool {
	var se *StorageError
	if errors.As(err, &se) {
		return se.Code == ErrCodeUnavailable
	}
	return false
}

// wrapErr classifies a driver error into a *StorageError. Errors that are
// already StorageErrors pass through unchanged.
func wrapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *StorageError
	if errors.As(err, &se) {
		return err
	}
	return &StorageError{Code: classify(err), Op: op, Err: err}
}

func classify(err error) StorageErrorCode {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return ErrCodeFailed
	}
	switch sqliteErr.Code {
	case sqlite3.ErrFull:
		return ErrCodeQuotaExceeded
	case sqlite3.ErrCantOpen, sqlite3.ErrReadonly, sqlite3.ErrPerm,
		sqlite3.ErrBusy, sqlite3.ErrLocked, sqlite3.ErrIoErr, sqlite3.ErrNotADB:
		return ErrCodeUnavailable
	}
	return ErrCodeFailed
}
