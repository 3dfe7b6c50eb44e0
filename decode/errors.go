package decode

import (
	"errors"
	"fmt"

	"github.com/casualjim/redraw/wire"
)

var (
	// ErrShapeMismatch reports a value that should have been an array (or had
	// too few elements).
	ErrShapeMismatch = errors.New("shape mismatch")
	// ErrTypeMismatch reports an element that exists but cannot be converted
	// to the target type, including out-of-range integers and invalid UTF-8.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrUnknownEvent reports an event name absent from the registry. The
	// dispatcher only surfaces it when asked to.
	ErrUnknownEvent = errors.New("unknown event")
)

// Error describes a single failed conversion.
type Error struct {
	Kind   error // ErrShapeMismatch or ErrTypeMismatch
	Want   string
	Got    wire.Kind
	Detail string
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%v: want %s, got %s", e.Kind, e.Want, e.Got)
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func typeError(want string, v wire.Value) *Error {
	return &Error{Kind: ErrTypeMismatch, Want: want, Got: wire.KindOf(v)}
}

func rangeError(want string, v wire.Value) *Error {
	return &Error{Kind: ErrTypeMismatch, Want: want, Got: wire.KindOf(v), Detail: "out of range: " + wire.Describe(v)}
}

func shapeError(want string, v wire.Value, detail string) *Error {
	return &Error{Kind: ErrShapeMismatch, Want: want, Got: wire.KindOf(v), Detail: detail}
}
