// Package apperr defines the user-visible error kinds of the viewer.
//
// Every failure that reaches the HTTP layer is an [*Error] carrying a
// machine-readable kind, a message safe to show to the user, and the status
// code it maps to. The wrapped cause is for logs only.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is a machine-readable error identifier.
type Kind string

const (
	KindInvalidURL          Kind = "INVALID_URL"
	KindFetchFailed         Kind = "FETCH_FAILED"
	KindInvalidImportFormat Kind = "INVALID_IMPORT_FORMAT"
	KindTranslationService  Kind = "TRANSLATION_SERVICE_ERROR"
	KindNoActiveThread      Kind = "NO_ACTIVE_THREAD"
	KindBadRequest          Kind = "BAD_REQUEST"
	KindNotFound            Kind = "NOT_FOUND"
	KindInternal            Kind = "INTERNAL"
)

// Error is the canonical error type.
type Error struct {
	Kind    Kind   `json:"code"`
	Message string `json:"error"`
	Status  int    `json:"-"`
	Cause   error  `json:"-"`
}

// Error returns the user-visible message.
func (e *Error) Error() string { return e.Message }

// Unwrap exposes the cause to [errors.Is] and [errors.As].
func (e *Error) Unwrap() error { return e.Cause }

// InvalidURL reports a source URL that does not name a thread.
func InvalidURL() *Error {
	return &Error{
		Kind:    KindInvalidURL,
		Message: "Invalid Reddit URL. Please provide a valid Reddit post URL.",
		Status:  http.StatusBadRequest,
	}
}

// FetchFailed reports a transport error or non-2xx response from the source.
func FetchFailed(cause error) *Error {
	return &Error{
		Kind:    KindFetchFailed,
		Message: fmt.Sprintf("Failed to fetch Reddit data: %v", cause),
		Status:  http.StatusBadGateway,
		Cause:   cause,
	}
}

// FetchStatus reports a non-2xx response from the source.
func FetchStatus(status int) *Error {
	return FetchFailed(fmt.Errorf("HTTP error! status: %d", status))
}

// InvalidImportFormat reports a file that failed parsing or shape validation.
func InvalidImportFormat(msg string, cause error) *Error {
	return &Error{
		Kind:    KindInvalidImportFormat,
		Message: msg,
		Status:  http.StatusBadRequest,
		Cause:   cause,
	}
}

// TranslationService reports a failed call to the translation transport.
func TranslationService(cause error) *Error {
	return &Error{
		Kind:    KindTranslationService,
		Message: fmt.Sprintf("Translation API error: %v", cause),
		Status:  http.StatusBadGateway,
		Cause:   cause,
	}
}

// TranslationStatus reports a non-2xx response from the translation transport.
func TranslationStatus(status int, text string) *Error {
	return TranslationService(fmt.Errorf("%d %s", status, text))
}

// NoActiveThread reports an operation that needs a loaded thread.
func NoActiveThread() *Error {
	return &Error{
		Kind:    KindNoActiveThread,
		Message: "No thread is loaded",
		Status:  http.StatusConflict,
	}
}

// BadRequest reports a malformed API request.
func BadRequest(msg string) *Error {
	return &Error{
		Kind:    KindBadRequest,
		Message: msg,
		Status:  http.StatusBadRequest,
	}
}

// NotFound reports a missing resource such as an evicted recent entry.
func NotFound(msg string) *Error {
	return &Error{
		Kind:    KindNotFound,
		Message: msg,
		Status:  http.StatusNotFound,
	}
}

// Internal wraps an unexpected error. The cause is never shown to the user.
func Internal(cause error) *Error {
	return &Error{
		Kind:    KindInternal,
		Message: "An unexpected error occurred",
		Status:  http.StatusInternalServerError,
		Cause:   cause,
	}
}

// As extracts the [*Error] from err's chain, or returns nil.
func As(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// KindOf returns the kind of err, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	if ae := As(err); ae != nil {
		return ae.Kind
	}
	return KindInternal
}
