package service

import (
	"errors"
	"fmt"

	"mymembership/domain"
)

const (
	// ErrInternalServerError means that an internal server error has occurred.
	ErrInternalServerError = "internal_server_error"
	// ErrEntityNotFound means that the requested record is absent.
	ErrEntityNotFound = "entity_not_found"
	// ErrBadParameter means that provided parameter does not match declared.
	ErrBadParameter = "bad_parameter"
	// ErrMalformedEntry means that a stored node entry could not be decoded.
	ErrMalformedEntry = "malformed_entry"
	// ErrStoreUnavailable means that the key-value store could not be reached or failed the call.
	ErrStoreUnavailable = "store_unavailable"
	// ErrConfigurationInvalid means that the discovery configuration could not be read or is invalid.
	ErrConfigurationInvalid = "configuration_invalid"
)

// MyError represents an error within the context of mymembership services.
type MyError struct {
	// Code is a machine-readable code.
	Code string `json:"code,omitempty"`
	// Message is a human-readable message.
	Message string `json:"message"`
	// Inner is a wrapped error that is never shown to API consumers.
	Inner error `json:"-"`
}

// NewMyError creates a new MyError.
func NewMyError(code string, message string, inner error) *MyError {
	return &MyError{
		Code:    code,
		Message: message,
		Inner:   inner,
	}
}

func NewInternalServerError(message string, inner error) *MyError {
	myInner := ToMyError(inner)
	if myInner != nil {
		return myInner
	}

	return NewMyError(ErrInternalServerError, message, inner)
}

func NewEntityNotFoundError(message string, inner error) *MyError {
	myInner := ToMyError(inner)
	if myInner != nil {
		return myInner
	}

	return NewMyError(ErrEntityNotFound, message, inner)
}

func NewBadParameterError(message string, inner error) *MyError {
	myInner := ToMyError(inner)
	if myInner != nil {
		return myInner
	}

	return NewMyError(ErrBadParameter, message, inner)
}

func NewMalformedEntryError(message string, inner error) *MyError {
	myInner := ToMyError(inner)
	if myInner != nil {
		return myInner
	}

	return NewMyError(ErrMalformedEntry, message, inner)
}

func NewStoreUnavailableError(message string, inner error) *MyError {
	myInner := ToMyError(inner)
	if myInner != nil {
		return myInner
	}

	return NewMyError(ErrStoreUnavailable, message, inner)
}

func NewConfigurationInvalidError(message string, inner error) *MyError {
	myInner := ToMyError(inner)
	if myInner != nil {
		return myInner
	}

	return NewMyError(ErrConfigurationInvalid, message, inner)
}

// FromDomainError converts a domain sentinel error into the matching MyError; errors that are
// already MyError pass through, anything else becomes internal_server_error.
func FromDomainError(message string, err error) *MyError {
	switch {
	case err == nil:
		return nil
	case ToMyError(err) != nil:
		return ToMyError(err)
	case errors.Is(err, domain.ErrInvalidArgument):
		return NewBadParameterError(message, err)
	case errors.Is(err, domain.ErrMalformedEntry):
		return NewMalformedEntryError(message, err)
	case errors.Is(err, domain.ErrConfigurationInvalid):
		return NewConfigurationInvalidError(message, err)
	default:
		return NewInternalServerError(message, err)
	}
}

func (e MyError) Error() string {
	if e.Inner != nil {
		return fmt.Sprintf("%s %s: %v", e.Code, e.Message, e.Inner)
	}

	return fmt.Sprintf("%s %s", e.Code, e.Message)
}

// Unwrap the error returning the error's reason.
func (e MyError) Unwrap() error {
	return e.Inner
}

// ToMyError returns a pointer to a mymembership error, or nil if it is not a mymembership error.
func ToMyError(err error) *MyError {
	var e *MyError
	if errors.As(err, &e) {
		return e
	}

	return nil
}

// ToMyErrorCode returns the code of the error, if available.
func ToMyErrorCode(err error) string {
	myerror := ToMyError(err)
	if myerror != nil {
		return myerror.Code
	}
	return ""
}

func IsMyError(err error, code string) bool {
	myerror := ToMyError(err)
	if myerror != nil {
		return myerror.Code == code
	}
	return false
}

func IsInternalServerError(err error) bool {
	return IsMyError(err, ErrInternalServerError)
}

func IsEntityNotFoundError(err error) bool {
	return IsMyError(err, ErrEntityNotFound)
}

func IsBadParameterError(err error) bool {
	return IsMyError(err, ErrBadParameter)
}

func IsMalformedEntryError(err error) bool {
	return IsMyError(err, ErrMalformedEntry)
}

func IsStoreUnavailableError(err error) bool {
	return IsMyError(err, ErrStoreUnavailable)
}

func IsConfigurationInvalidError(err error) bool {
	return IsMyError(err, ErrConfigurationInvalid)
}
