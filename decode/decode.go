// Package decode converts wire values into native Go types.
//
// Every conversion is a Decoder: a function from a wire.Value to a typed
// result or an error. Decoders never panic and never coerce across kinds: a
// string never becomes a number, an integer never becomes a float, and an
// integer that does not fit the target width is rejected instead of being
// truncated.
//
// Composite shapes are built from the primitives:
//
//	grids := decode.SliceOf(decode.Uint64)
//	sel := decode.Optional(decode.Uint32)
//
// and fixed-arity argument lists are read in order with a Seq:
//
//	s, err := decode.NewSeq(args)
//	row, err := decode.Next(s, decode.Uint64)
//	col, err := decode.Next(s, decode.Uint64)
package decode

import (
	"math"
	"unicode/utf8"

	"github.com/casualjim/redraw/pkg/stdx"
	"github.com/casualjim/redraw/wire"
)

// Decoder converts a wire value into T.
type Decoder[T any] func(wire.Value) (T, error)

// Uint64 accepts non-negative integers of either signedness.
func Uint64(v wire.Value) (uint64, error) {
	switch v := v.(type) {
	case wire.Uint:
		return uint64(v), nil
	case wire.Int:
		if v < 0 {
			return 0, rangeError("uint64", v)
		}
		return uint64(v), nil
	default:
		return 0, typeError("uint64", v)
	}
}

// Uint32 is Uint64 restricted to the 32-bit range.
func Uint32(v wire.Value) (uint32, error) {
	u, err := Uint64(v)
	if err != nil {
		if de, ok := err.(*Error); ok {
			de.Want = "uint32"
		}
		return 0, err
	}
	if u > math.MaxUint32 {
		return 0, rangeError("uint32", v)
	}
	return uint32(u), nil
}

// Int64 accepts signed integers and unsigned ones up to math.MaxInt64.
func Int64(v wire.Value) (int64, error) {
	switch v := v.(type) {
	case wire.Int:
		return int64(v), nil
	case wire.Uint:
		if v > math.MaxInt64 {
			return 0, rangeError("int64", v)
		}
		return int64(v), nil
	default:
		return 0, typeError("int64", v)
	}
}

// Int32 is Int64 restricted to the 32-bit range.
func Int32(v wire.Value) (int32, error) {
	i, err := Int64(v)
	if err != nil {
		if de, ok := err.(*Error); ok {
			de.Want = "int32"
		}
		return 0, err
	}
	if i < math.MinInt32 || i > math.MaxInt32 {
		return 0, rangeError("int32", v)
	}
	return int32(i), nil
}

// Bool accepts only booleans.
func Bool(v wire.Value) (bool, error) {
	if b, ok := v.(wire.Bool); ok {
		return bool(b), nil
	}
	return false, typeError("bool", v)
}

// Float64 accepts only floats. Integers are not widened.
func Float64(v wire.Value) (float64, error) {
	if f, ok := v.(wire.Float); ok {
		return float64(f), nil
	}
	return 0, typeError("float64", v)
}

// String accepts only string values holding valid UTF-8.
func String(v wire.Value) (string, error) {
	s, ok := v.(wire.String)
	if !ok {
		return "", typeError("string", v)
	}
	if !utf8.ValidString(string(s)) {
		return "", &Error{Kind: ErrTypeMismatch, Want: "string", Got: wire.KindString, Detail: "invalid utf-8"}
	}
	return string(s), nil
}

// Bytes accepts binary and string values and returns a copy of the payload.
func Bytes(v wire.Value) ([]byte, error) {
	switch v := v.(type) {
	case wire.Binary:
		return append([]byte{}, v...), nil
	case wire.String:
		return []byte(v), nil
	default:
		return nil, typeError("bytes", v)
	}
}

// Array returns v as an array or a shape mismatch.
func Array(v wire.Value) (wire.Array, error) {
	arr, ok := v.(wire.Array)
	if !ok {
		return nil, shapeError("array", v, "")
	}
	return arr, nil
}

// SliceOf decodes every element of an array with elem, stopping at the first
// failure.
func SliceOf[T any](elem Decoder[T]) Decoder[[]T] {
	return func(v wire.Value) ([]T, error) {
		arr, err := Array(v)
		if err != nil {
			return nil, err
		}
		out := make([]T, len(arr))
		for i, e := range arr {
			if out[i], err = elem(e); err != nil {
				return nil, indexError(i, err)
			}
		}
		return out, nil
	}
}

// Pair is a decoded two element tuple.
type Pair[A, B any] struct {
	First  A
	Second B
}

// PairOf decodes a [a, b, ...] array. Extra elements are ignored.
func PairOf[A, B any](a Decoder[A], b Decoder[B]) Decoder[Pair[A, B]] {
	return func(v wire.Value) (Pair[A, B], error) {
		s, err := NewSeq(v)
		if err != nil {
			return stdx.Zero[Pair[A, B]](), err
		}
		first, err := Next(s, a)
		if err != nil {
			return stdx.Zero[Pair[A, B]](), err
		}
		second, err := Next(s, b)
		if err != nil {
			return stdx.Zero[Pair[A, B]](), err
		}
		return Pair[A, B]{First: first, Second: second}, nil
	}
}
