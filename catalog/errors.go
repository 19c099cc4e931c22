package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// Code is a machine-readable error code.
type Code string

const (
	// CodeMissingField means a required attribute is absent or blank, or an
	// update carried no attributes at all.
	CodeMissingField Code = "MISSING_FIELD"

	// CodeInvalidFormat means an attribute is present but malformed.
	CodeInvalidFormat Code = "INVALID_FORMAT"

	// CodeUnknownField means an update named an attribute the entity does not have.
	CodeUnknownField Code = "UNKNOWN_FIELD"

	// CodeImmutableField means an update tried to change a fixed attribute.
	CodeImmutableField Code = "IMMUTABLE_FIELD"

	// CodeConflict means the write would break uniqueness or orphan records.
	CodeConflict Code = "CONFLICT"

	// CodeNotFound means the addressed entity does not exist.
	CodeNotFound Code = "NOT_FOUND"

	// CodeStore means the underlying store call failed.
	CodeStore Code = "STORE"
)

// Sentinels for errors.Is. They match any *Error with the same code.
var (
	ErrMissingField   = &Error{Code: CodeMissingField}
	ErrInvalidFormat  = &Error{Code: CodeInvalidFormat}
	ErrUnknownField   = &Error{Code: CodeUnknownField}
	ErrImmutableField = &Error{Code: CodeImmutableField}
	ErrConflict       = &Error{Code: CodeConflict}
	ErrNotFound       = &Error{Code: CodeNotFound}
	ErrStore          = &Error{Code: CodeStore}
)

// Error is the error type returned by every service operation.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Short summary, safe to show to callers
	Detail  string // Longer explanation, safe to show to callers

	Resource string   // Entity kind for NOT_FOUND and CONFLICT
	ID       string   // Entity ID for NOT_FOUND
	Field    string   // Offending attribute, if any
	Required []string // Required attributes for MISSING_FIELD
	Allowed  []string // Accepted values for enumerated attributes

	Cause error // Wrapped underlying error, never shown to callers
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = strings.ToLower(string(e.Code))
	}
	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// CodeOf returns the code of the first *Error in err's chain, or "" if none.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsValidation reports whether err is a rejection of the caller's input.
func IsValidation(err error) bool {
	switch CodeOf(err) {
	case CodeMissingField, CodeInvalidFormat, CodeUnknownField, CodeImmutableField:
		return true
	}
	return false
}

func missingFields(required []string, missing []string) *Error {
	return &Error{
		Code:     CodeMissingField,
		Message:  "missing required fields",
		Detail:   "missing: " + strings.Join(missing, ", "),
		Field:    missing[0],
		Required: append([]string(nil), required...),
	}
}

func noFields() *Error {
	return &Error{
		Code:    CodeMissingField,
		Message: "no fields provided for update",
	}
}

func invalidFormat(field, message, detail string) *Error {
	return &Error{
		Code:    CodeInvalidFormat,
		Message: message,
		Detail:  detail,
		Field:   field,
	}
}

func invalidString(field string) *Error {
	return invalidFormat(field, "invalid "+field, field+" must be a non-empty string")
}

func unknownField(resource, field string) *Error {
	return &Error{
		Code:     CodeUnknownField,
		Message:  "unknown field " + field,
		Detail:   fmt.Sprintf("%s has no attribute %q", resource, field),
		Resource: resource,
		Field:    field,
	}
}

func notFound(resource, id string) *Error {
	return &Error{
		Code:     CodeNotFound,
		Message:  resource + " not found",
		Detail:   fmt.Sprintf("no %s exists with ID %s", resource, id),
		Resource: resource,
		ID:       id,
	}
}

func conflict(resource, message, detail string) *Error {
	return &Error{
		Code:     CodeConflict,
		Message:  message,
		Detail:   detail,
		Resource: resource,
	}
}

func storeFailure(op, resource string, cause error) *Error {
	return &Error{
		Code:     CodeStore,
		Message:  op + " " + resource,
		Resource: resource,
		Cause:    cause,
	}
}
