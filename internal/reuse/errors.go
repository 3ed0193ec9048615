package reuse

import (
	"errors"
	"fmt"
)

// Kind categorizes pipeline errors so callers can branch on category
// rather than message text.
type Kind int

const (
	// KindUnknown is the zero value for errors from outside the pipeline.
	KindUnknown Kind = iota
	// KindConfiguration marks invalid parameters, detected before any
	// stream processing begins.
	KindConfiguration
	// KindInput marks missing documents or malformed token data.
	KindInput
	// KindAlignment marks a per-candidate alignment failure. These are
	// recovered locally and never abort a run.
	KindAlignment
	// KindOutput marks a failure to persist the result record.
	KindOutput
)

func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindInput:
		return "input"
	case KindAlignment:
		return "alignment"
	case KindOutput:
		return "output"
	default:
		return "unknown"
	}
}

// Error is a pipeline error tagged with its category.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Errorf builds a kinded error from a format string.
func Errorf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// WrapError tags an existing error with a kind. Returns nil if err is nil.
func WrapError(kind Kind, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Err: err}
}

// KindOf extracts the category from an error chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
