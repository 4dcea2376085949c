package dump

import "errors"

// Errors returned by dump operations.
var (
	// ErrEncode is returned when producing a record panics.
	ErrEncode = errors.New("encoding variable failed")

	// ErrNotFound is returned when an attribute path does not resolve.
	ErrNotFound = errors.New("attribute not found")

	// ErrNotContainer is returned when a path segment descends into a scalar.
	ErrNotContainer = errors.New("value has no children")
)

// ErrorOnEval wraps the result of an evaluation that failed. The result is
// displayed as usual but the record is flagged isErrorOnEval.
type ErrorOnEval struct {
	Result any
}

// unwrap reports whether v is an evaluation error and returns the value to
// display.
func unwrap(v any) (any, bool) {
	switch e := v.(type) {
	case ErrorOnEval:
		return e.Result, true
	case *ErrorOnEval:
		if e == nil {
			return nil, false
		}
		return e.Result, true
	default:
		return v, false
	}
}
