package events

import (
	"fmt"
	"strconv"

	"github.com/casualjim/redraw/decode"
	"github.com/casualjim/redraw/wire"
)

// WindowExtType is the extension type code the host uses for window
// handles.
const WindowExtType int8 = 1

// Window is an opaque reference to a host window. It is only ever compared,
// never dereferenced.
type Window struct {
	handle int64
}

// WindowHandle wraps a host-assigned window id.
func WindowHandle(id int64) Window {
	return Window{handle: id}
}

// ID returns the host-assigned id.
func (w Window) ID() int64 {
	return w.handle
}

func (w Window) String() string {
	return fmt.Sprintf("window(%d)", w.handle)
}

func (w Window) MarshalJSON() ([]byte, error) {
	return strconv.AppendInt(nil, w.handle, 10), nil
}

func (w *Window) UnmarshalJSON(data []byte) error {
	id, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid window handle: %w", err)
	}
	w.handle = id
	return nil
}

// DecodeWindow reads a window handle from an extension value whose payload
// is a msgpack encoded integer.
func DecodeWindow(v wire.Value) (Window, error) {
	ext, ok := v.(wire.Ext)
	if !ok {
		return Window{}, &decode.Error{Kind: decode.ErrTypeMismatch, Want: "window", Got: wire.KindOf(v)}
	}
	if ext.Type != WindowExtType {
		return Window{}, &decode.Error{
			Kind:   decode.ErrTypeMismatch,
			Want:   "window",
			Got:    wire.KindExt,
			Detail: fmt.Sprintf("ext type %d", ext.Type),
		}
	}
	payload, err := wire.Unmarshal(ext.Data)
	if err != nil {
		return Window{}, &decode.Error{Kind: decode.ErrTypeMismatch, Want: "window", Got: wire.KindExt, Detail: err.Error()}
	}
	id, err := decode.Int64(payload)
	if err != nil {
		return Window{}, fmt.Errorf("window payload: %w", err)
	}
	return WindowHandle(id), nil
}
