package hero

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes store errors.
type ErrorCode string

const (
	// CodeDuplicateID indicates an insert collided with an existing id.
	// This is a programmer error or an id generation collision; it is never
	// retried.
	CodeDuplicateID ErrorCode = "DUPLICATE_ID"

	// CodeNotFound indicates the target id is not in the store.
	// Callers are expected to branch on it rather than fail.
	CodeNotFound ErrorCode = "NOT_FOUND"
)

// Error is returned by store mutations.
type Error struct {
	Code ErrorCode
	ID   string
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch e.Code {
	case CodeDuplicateID:
		return fmt.Sprintf("%s: hero %q already exists", e.Code, e.ID)
	case CodeNotFound:
		return fmt.Sprintf("%s: hero %q not found", e.Code, e.ID)
	default:
		return fmt.Sprintf("%s: hero %q", e.Code, e.ID)
	}
}

// NewDuplicateIDError creates an Error for an id collision.
func NewDuplicateIDError(id string) *Error {
	return &Error{Code: CodeDuplicateID, ID: id}
}

// NewNotFoundError creates an Error for a missing id.
func NewNotFoundError(id string) *Error {
	return &Error{Code: CodeNotFound, ID: id}
}

// IsDuplicateID reports whether err is, or wraps, a duplicate id error.
func IsDuplicateID(err error) bool {
	var he *Error
	if errors.As(err, &he) {
		return he.Code == CodeDuplicateID
	}
	return false
}

// IsNotFound reports whether err is, or wraps, a not-found error.
func IsNotFound(err error) bool {
	var he *Error
	if errors.As(err, &he) {
		return he.Code == CodeNotFound
	}
	return false
}
