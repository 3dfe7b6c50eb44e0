package wire

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
)

// number matches json.Number from both encoding/json and goccy/go-json.
type number interface {
	String() string
	Int64() (int64, error)
	Float64() (float64, error)
}

// From converts a plain Go value into a Value. Supported inputs are nil,
// Value, bool, every integer and float type, string, []byte, []any, []Value,
// map[string]any (keys sorted) and JSON numbers. Non-negative signed integers become Uint,
// matching how a msgpack encoder picks the most compact representation.
//
// From panics on unsupported types; it is meant for fixtures and decoded
// JSON where the input shape is already known. Use FromAny to get an error.
func From(v any) Value {
	val, err := FromAny(v)
	if err != nil {
		panic(err)
	}
	return val
}

// FromAny is From with an error instead of a panic.
func FromAny(v any) (Value, error) {
	switch v := v.(type) {
	case nil:
		return Nil{}, nil
	case Value:
		return v, nil
	case bool:
		return Bool(v), nil
	case int:
		return fromInt(int64(v)), nil
	case int8:
		return fromInt(int64(v)), nil
	case int16:
		return fromInt(int64(v)), nil
	case int32:
		return fromInt(int64(v)), nil
	case int64:
		return fromInt(v), nil
	case uint:
		return Uint(v), nil
	case uint8:
		return Uint(v), nil
	case uint16:
		return Uint(v), nil
	case uint32:
		return Uint(v), nil
	case uint64:
		return Uint(v), nil
	case float32:
		return Float(v), nil
	case float64:
		return Float(v), nil
	case string:
		return String(v), nil
	case []byte:
		return Binary(v), nil
	case number:
		return fromNumber(v)
	case []Value:
		return Array(v), nil
	case []any:
		arr := make(Array, len(v))
		for i, e := range v {
			ev, err := FromAny(e)
			if err != nil {
				return nil, fmt.Errorf("index %d: %w", i, err)
			}
			arr[i] = ev
		}
		return arr, nil
	case map[string]any:
		m := make(Map, 0, len(v))
		for _, k := range slices.Sorted(maps.Keys(v)) {
			ev, err := FromAny(v[k])
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", k, err)
			}
			m = append(m, Pair{Key: String(k), Val: ev})
		}
		return m, nil
	default:
		return nil, fmt.Errorf("wire: unsupported type %T", v)
	}
}

func fromInt(i int64) Value {
	if i >= 0 {
		return Uint(uint64(i))
	}
	return Int(i)
}

func fromNumber(n number) (Value, error) {
	s := n.String()
	if u, err := strconv.ParseUint(s, 10, 64); err == nil {
		return Uint(u), nil
	}
	if i, err := n.Int64(); err == nil {
		return Int(i), nil
	}
	f, err := n.Float64()
	if err != nil || math.IsInf(f, 0) {
		return nil, fmt.Errorf("wire: invalid number %q", s)
	}
	return Float(f), nil
}
