package redraw

import (
	"fmt"
	"strings"

	"github.com/casualjim/redraw/decode"
	"github.com/casualjim/redraw/wire"
)

// FieldWidth is the range accepted for unsigned integer fields (grid ids,
// positions, highlight ids). Event structs always carry uint64; the width
// only decides which wire values are rejected as out of range.
//
// Width64 matches current hosts. Width32 reproduces the older protocol
// generation whose fields were 32 bits wide.
type FieldWidth uint8

const (
	Width32 FieldWidth = 32
	Width64 FieldWidth = 64
)

// ParseFieldWidth accepts "32" or "64".
func ParseFieldWidth(s string) (FieldWidth, error) {
	switch strings.TrimSpace(s) {
	case "32":
		return Width32, nil
	case "64", "":
		return Width64, nil
	default:
		return 0, fmt.Errorf("invalid field width %q, expected 32 or 64", s)
	}
}

func (w FieldWidth) String() string {
	return fmt.Sprintf("%d", uint8(w))
}

func (w FieldWidth) valid() bool {
	return w == Width32 || w == Width64
}

// UnmarshalText lets FieldWidth be read from configuration.
func (w *FieldWidth) UnmarshalText(text []byte) error {
	parsed, err := ParseFieldWidth(string(text))
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}

func (w FieldWidth) uintDecoder() decode.Decoder[uint64] {
	if w == Width32 {
		return func(v wire.Value) (uint64, error) {
			u, err := decode.Uint32(v)
			return uint64(u), err
		}
	}
	return decode.Uint64
}
