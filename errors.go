package redraw

import (
	"fmt"

	"github.com/casualjim/redraw/wire"
)

// DecodeError reports one occurrence that could not be turned into an event.
// It unwraps to the underlying decode error, so errors.Is works with
// decode.ErrShapeMismatch, decode.ErrTypeMismatch and decode.ErrUnknownEvent.
type DecodeError struct {
	Event string
	// Occurrence is the index within the batch, or -1 when the whole batch
	// was rejected.
	Occurrence int
	// Args holds the offending arguments when they are available.
	Args wire.Value
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Occurrence < 0 {
		return fmt.Sprintf("redraw: %s: %v", e.Event, e.Err)
	}
	return fmt.Sprintf("redraw: %s occurrence %d: %v", e.Event, e.Occurrence, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
