package common

import (
	"errors"
	"fmt"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	// ErrConflict is wrapped by every uniqueness violation the services report.
	ErrConflict = errors.New("conflict")
)

// UpstreamError is a failure of an external collaborator such as object storage.
type UpstreamError struct {
	Op  string
	Err error
}

func (e UpstreamError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e UpstreamError) Unwrap() error {
	return e.Err
}

// SecondaryUpdateError reports that an aggregate update failed after the
// primary write had already been committed. The primary write is not undone.
type SecondaryUpdateError struct {
	Op  string
	Err error
}

func (e SecondaryUpdateError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e SecondaryUpdateError) Unwrap() error {
	return e.Err
}

// UniqueViolation reports whether err is a postgres unique_violation on the
// named constraint.
func UniqueViolation(err error, constraint string) bool {
	return pqErrorIs(err, "23505", constraint)
}

// ForeignKeyViolation reports whether err is a postgres foreign_key_violation
// on the named constraint.
func ForeignKeyViolation(err error, constraint string) bool {
	return pqErrorIs(err, "23503", constraint)
}
