package catalog

import (
	"errors"
	"strings"
)

// Sentinel errors surfaced by the store. Callers match with errors.Is.
var (
	// ErrStorageUnavailable means the database file or its directory could
	// not be created or opened. Fatal at startup.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrConstraintViolation is returned when an insert collides with a
	// unique key (duplicate ISBN, duplicate category name) or references
	// a row that does not exist.
	ErrConstraintViolation = errors.New("constraint violation")

	// ErrAlreadyBorrowed is returned by LendBook only when the store was
	// opened with WithStrictLending and the book has an open lending record.
	ErrAlreadyBorrowed = errors.New("book already borrowed")
)

// isConstraintErr reports whether err is a SQLite constraint failure
// (unique key or foreign key).
func isConstraintErr(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "FOREIGN KEY constraint failed")
}
