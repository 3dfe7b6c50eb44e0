package decode

import (
	"github.com/casualjim/redraw/wire"
	json "github.com/goccy/go-json"
)

// Option is a value that may be explicitly absent on the wire. It is
// comparable when T is.
type Option[T any] struct {
	value T
	ok    bool
}

// Some wraps a present value.
func Some[T any](v T) Option[T] {
	return Option[T]{value: v, ok: true}
}

// None is the absent value.
func None[T any]() Option[T] {
	return Option[T]{}
}

// Get returns the value and whether it is present.
func (o Option[T]) Get() (T, bool) {
	return o.value, o.ok
}

// IsSome reports whether a value is present.
func (o Option[T]) IsSome() bool {
	return o.ok
}

// MarshalJSON renders None as null and Some as the value itself.
func (o Option[T]) MarshalJSON() ([]byte, error) {
	if !o.ok {
		return []byte(`null`), nil
	}
	return json.Marshal(o.value)
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (o *Option[T]) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*o = None[T]()
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}

// Optional maps Nil to None and anything else through dec. It fails only
// when dec does.
func Optional[T any](dec Decoder[T]) Decoder[Option[T]] {
	return func(v wire.Value) (Option[T], error) {
		if wire.KindOf(v) == wire.KindNil {
			return None[T](), nil
		}
		t, err := dec(v)
		if err != nil {
			return None[T](), err
		}
		return Some(t), nil
	}
}
