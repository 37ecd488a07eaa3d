package errors

import "fmt"

// Error is the structured error type the engine raises. It carries a Kind
// for dispatch (errors.Is/As, MCP error envelopes) plus an optional cause.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap supports errors.Is/errors.As against the wrapped cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches by Kind so sentinel comparisons work regardless of message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Code returns the error's kind as a string, used in the MCP error envelope.
func (e *Error) Code() string {
	return string(e.Kind)
}

// Retryable reports whether the error's kind is safe to retry.
func (e *Error) Retryable() bool {
	return e.Kind.retryable()
}

func newErr(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// IO wraps a filesystem or network failure encountered during walk, hash, or read.
func IO(message string, cause error) *Error { return newErr(KindIO, message, cause) }

// Parse wraps a tree-sitter parse failure.
func Parse(message string, cause error) *Error { return newErr(KindParse, message, cause) }

// StoreIntegrity wraps a store constraint or corruption error.
func StoreIntegrity(message string, cause error) *Error {
	return newErr(KindStoreIntegrity, message, cause)
}

// InvalidQuery wraps a regex compile failure or malformed query.
func InvalidQuery(message string, cause error) *Error {
	return newErr(KindInvalidQuery, message, cause)
}

// NotFound wraps a read against missing state. Callers should treat this as
// an empty result, not a failure, except where "Unknown project" messaging
// is explicitly called for.
func NotFound(message string) *Error { return newErr(KindNotFound, message, nil) }

// External wraps an embedder HTTP error or non-zero VCS exit.
func External(message string, cause error) *Error { return newErr(KindExternal, message, cause) }

// IsRetryable reports whether err is a retryable engine error.
func IsRetryable(err error) bool {
	var e *Error
	if unwrapTo(err, &e) {
		return e.Retryable()
	}
	return false
}

func unwrapTo(err error, target **Error) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			*target = e
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
