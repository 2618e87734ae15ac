package models

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a domain failure so the HTTP layer can map it to a
// status code without inspecting message text.
type ErrorKind string

// Error kinds surfaced by the domain core.
const (
	KindNotFound        ErrorKind = "NotFound"
	KindInvalidArgument ErrorKind = "InvalidArgument"
	KindAlreadyExists   ErrorKind = "AlreadyExists"
	KindInvalidState    ErrorKind = "InvalidState"
)

// DomainError is a structured error carrying a kind and a human-readable
// message. Validation failures are detected before any write; multi-document
// operations that fail partway surface the error without rolling back.
type DomainError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *DomainError) Unwrap() error { return e.Err }

// NewNotFound reports a referenced id that does not resolve to a live record.
func NewNotFound(format string, args ...interface{}) *DomainError {
	return &DomainError{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// NewInvalidArgument reports malformed input such as a bad hex id or a
// date-ordering violation.
func NewInvalidArgument(format string, args ...interface{}) *DomainError {
	return &DomainError{Kind: KindInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

// NewAlreadyExists reports a duplicate unique field such as email or phone.
func NewAlreadyExists(format string, args ...interface{}) *DomainError {
	return &DomainError{Kind: KindAlreadyExists, Message: fmt.Sprintf(format, args...)}
}

// NewInvalidState reports an operation that conflicts with current state,
// such as adding a staff id that is already linked to a department.
func NewInvalidState(format string, args ...interface{}) *DomainError {
	return &DomainError{Kind: KindInvalidState, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the ErrorKind of err, or empty if err is not a DomainError.
func KindOf(err error) ErrorKind {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

// ErrorMessageResponse returns the error message response struct
type ErrorMessageResponse struct {
	Response MessageError
}

// MessageError contains the inner details for the error message response
type MessageError struct {
	Message string
	Error   string
}
