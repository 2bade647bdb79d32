// Package errs defines the error kinds surfaced by the rasterizer's public
// API: ObjectNotFound, NotImplemented and InvalidArgument. All three unwind
// the current call without partially mutating external state.
package errs

import "fmt"

// Kind distinguishes the three error categories the pipeline can surface.
type Kind int

const (
	ObjectNotFound Kind = iota + 1
	NotImplemented
	InvalidArgument
)

func (k Kind) String() string {
	switch k {
	case ObjectNotFound:
		return "ObjectNotFound"
	case NotImplemented:
		return "NotImplemented"
	case InvalidArgument:
		return "InvalidArgument"
	default:
		return "Unknown"
	}
}

// Error is the concrete error type returned for every recoverable failure
// named in the error-handling design. Callers can recover the Kind with
// errors.As and a type switch, or with the Is helper below.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func ObjectNotFoundf(id uint32) error {
	return &Error{Kind: ObjectNotFound, Msg: fmt.Sprintf("object with id=%d could not be found", id)}
}

func NotImplementedf(format string, args ...any) error {
	return &Error{Kind: NotImplemented, Msg: fmt.Sprintf(format, args...)}
}

func InvalidArgumentf(format string, args ...any) error {
	return &Error{Kind: InvalidArgument, Msg: fmt.Sprintf(format, args...)}
}

// Is reports whether err is an *Error of the given kind.
func Is(err error, kind Kind) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == kind
}
