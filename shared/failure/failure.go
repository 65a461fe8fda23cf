package failure

import (
	"errors"
	"net/http"
)

// Kind is a machine-readable error category, stable across transports.
type Kind string

const (
	KindNotFound         Kind = "not_found"
	KindInvalidParameter Kind = "invalid_parameter"
	KindMalformedCursor  Kind = "malformed_cursor"
	KindStoreRead        Kind = "store_read"
	KindStoreWrite       Kind = "store_write"
	KindUnauthorized     Kind = "unauthorized"
	KindInternal         Kind = "internal"
)

// Failure is a wrapper for error messages and kinds using standard HTTP response codes.
type Failure struct {
	Code    int    `json:"code"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	cause   error
}

// Error returns the error message.
func (e *Failure) Error() string {
	return e.Message
}

// Unwrap exposes the underlying cause, if any.
func (e *Failure) Unwrap() error {
	return e.cause
}

// NotFound returns a new Failure for an entity that does not exist.
func NotFound(entityName string) error {
	return &Failure{
		Code:    http.StatusNotFound,
		Kind:    KindNotFound,
		Message: entityName,
	}
}

// InvalidParameter returns a new Failure for a caller-supplied parameter
// violating a stated constraint. Never retried.
func InvalidParameter(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Kind:    KindInvalidParameter,
		Message: msg,
	}
}

// BadRequest returns a new Failure with code for bad requests.
func BadRequest(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusBadRequest,
			Kind:    KindInvalidParameter,
			Message: err.Error(),
		}
	}

	return nil
}

// MalformedCursor returns a new Failure for a pagination token that does not
// decode to a structurally valid store position. The client must restart
// pagination from the first page.
func MalformedCursor(err error) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Kind:    KindMalformedCursor,
		Message: "malformed pagination cursor: " + err.Error(),
		cause:   err,
	}
}

// StoreRead returns a new Failure for an underlying store read failure.
// Surfaced as transient; retry policy belongs to the caller.
func StoreRead(err error) error {
	return &Failure{
		Code:    http.StatusServiceUnavailable,
		Kind:    KindStoreRead,
		Message: err.Error(),
		cause:   err,
	}
}

// StoreWrite returns a new Failure for an underlying store write failure.
func StoreWrite(err error) error {
	return &Failure{
		Code:    http.StatusServiceUnavailable,
		Kind:    KindStoreWrite,
		Message: err.Error(),
		cause:   err,
	}
}

// Unauthorized returns a new Failure with code for unauthorized requests.
func Unauthorized(msg string) error {
	return &Failure{
		Code:    http.StatusUnauthorized,
		Kind:    KindUnauthorized,
		Message: msg,
	}
}

// InternalError returns a new Failure with code for internal error and message derived from an error interface.
func InternalError(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusInternalServerError,
			Kind:    KindInternal,
			Message: err.Error(),
		}
	}

	return nil
}

// GetCode returns the HTTP status code of an error interface.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// GetKind returns the failure kind of an error interface.
func GetKind(err error) Kind {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Kind
	}

	return KindInternal
}

// IsKind reports whether the error carries the given failure kind.
func IsKind(err error, kind Kind) bool {
	return GetKind(err) == kind
}
