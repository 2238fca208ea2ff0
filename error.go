package siteask

import (
	"errors"
	"fmt"
)

// Application error codes.
//
// Codes classify errors for programmatic handling. The HTTP layer maps
// them to status codes; the crawl retry policy uses them to decide
// whether a fetch failure is worth retrying.
const (
	EINVALID     = "invalid"        // validation failed
	ENOTFOUND    = "not_found"      // entity does not exist
	EINTERNAL    = "internal"       // internal error
	ETIMEOUT     = "timeout"        // deadline exceeded or connection failure
	EUNAVAILABLE = "unavailable"    // upstream temporarily unavailable (5xx, rate limits)
	EUNSUPPORTED = "unsupported"    // content cannot be processed
	ENOCONTEXT   = "no_context"     // no retrievable context for a question
	EMISMATCH    = "model_mismatch" // collection was indexed with a different embedding model
)

// Error represents an application-specific error. Errors can be unwrapped
// by the caller to extract the code and message.
type Error struct {
	// Machine-readable error code.
	Code string

	// Human-readable message.
	Message string
}

// Error implements the error interface. Not used by the application
// otherwise.
func (e *Error) Error() string {
	return fmt.Sprintf("siteask error: code=%s message=%s", e.Code, e.Message)
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error.".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// Errorf is a helper function to return an Error with a given code and
// formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}
