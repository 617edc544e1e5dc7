package errors

import (
	stderrors "errors"
	"fmt"
	"io/fs"
)

// Kind is a stable code for every failure mode of the engine.
type Kind string

const (
	// InvalidInput indicates missing or malformed caller parameters
	InvalidInput Kind = "INVALID_INPUT"
	// DirectoryNotFound indicates the requested root does not exist
	DirectoryNotFound Kind = "DIRECTORY_NOT_FOUND"
	// AccessDenied indicates a permission failure on an explicit target
	AccessDenied Kind = "ACCESS_DENIED"
	// FileReadError indicates a single file could not be read
	FileReadError Kind = "FILE_READ_ERROR"
	// FileWriteError indicates a single file could not be written
	FileWriteError Kind = "FILE_WRITE_ERROR"
	// FileDeleteError indicates a single file could not be removed
	FileDeleteError Kind = "FILE_DELETE_ERROR"
	// AggregationFailure indicates report generation failed
	AggregationFailure Kind = "AGGREGATION_FAILURE"
	// UnknownFailure is the catch-all
	UnknownFailure Kind = "UNKNOWN_FAILURE"
)

// Error carries a Kind, a message and an optional cause.
type Error struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	cause   error
}

// New creates an Error.
func New(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

// Newf creates an Error without a cause.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches another *Error by kind, so errors.Is(err, &Error{Kind: k}) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

// KindOf returns the Kind of the first *Error in err's chain, or UnknownFailure.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return UnknownFailure
}

// HasKind reports whether err carries the given kind.
func HasKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// FromDir classifies an error returned while opening or listing a directory.
// fallback is used when the error is neither a missing path nor a permission failure.
func FromDir(err error, path string, fallback Kind) *Error {
	switch {
	case stderrors.Is(err, fs.ErrNotExist):
		return New(DirectoryNotFound, "not found: "+path, err)
	case stderrors.Is(err, fs.ErrPermission):
		return New(AccessDenied, "access denied: "+path, err)
	default:
		return New(fallback, path, err)
	}
}
