package figmaimporter

import (
	"errors"
	"fmt"
)

// ErrorKind categorizes conversion failures.
type ErrorKind string

const (
	// KindInvalidInput means the payload is missing or is not a JSON object.
	KindInvalidInput ErrorKind = "invalid input"
	// KindResourceUnavailable means a resource a node depends on, such as a
	// font, could not be obtained.
	KindResourceUnavailable ErrorKind = "resource unavailable"
	// KindInternal is any other failure, including recovered panics.
	KindInternal ErrorKind = "internal"
)

// Error is the error returned by the conversion functions.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

// Sentinels for errors.Is. They match any *Error of the same kind.
var (
	ErrInvalidInput        = &Error{Kind: KindInvalidInput}
	ErrResourceUnavailable = &Error{Kind: KindResourceUnavailable}
	ErrInternal            = &Error{Kind: KindInternal}
)

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func invalidInput(message string, err error) *Error {
	return &Error{Kind: KindInvalidInput, Message: message, Err: err}
}

func resourceUnavailable(message string, err error) *Error {
	return &Error{Kind: KindResourceUnavailable, Message: message, Err: err}
}

func internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// UserMessage returns a message for err suitable for end users: the message
// of a conversion error followed by its cause, or err as is.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}

	switch {
	case e.Err != nil && e.Message != "":
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	default:
		return string(e.Kind)
	}
}
