// Package wire models self-describing values as they arrive from the host,
// before any type-specific conversion happens.
//
// A Value is one of a closed set of variants:
//
//	Value
//	├── Nil
//	├── Bool
//	├── Int     signed 64-bit integer
//	├── Uint    unsigned 64-bit integer
//	├── Float   64-bit float
//	├── String  raw string payload, UTF-8 is checked by consumers
//	├── Binary  raw bytes
//	├── Array   ordered sequence of values
//	├── Map     ordered key/value pairs, duplicates preserved
//	└── Ext     extension type code plus opaque payload
//
// Values are never mutated after construction. Everything downstream is a
// read-only traversal, so a tree can be shared between goroutines as long as
// nobody writes into the underlying slices.
package wire

import (
	"fmt"
	"strings"
)

// Kind identifies the variant of a Value.
type Kind uint8

const (
	KindNil Kind = iota
	KindBool
	KindInt
	KindUint
	KindFloat
	KindString
	KindBinary
	KindArray
	KindMap
	KindExt
)

var kindNames = [...]string{
	KindNil:    "nil",
	KindBool:   "bool",
	KindInt:    "int",
	KindUint:   "uint",
	KindFloat:  "float",
	KindString: "string",
	KindBinary: "binary",
	KindArray:  "array",
	KindMap:    "map",
	KindExt:    "ext",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Value is a single dynamically typed wire value.
type Value interface {
	Kind() Kind
	wireValue()
}

type Nil struct{}

func (Nil) Kind() Kind { return KindNil }
func (Nil) wireValue() {}

type Bool bool

func (Bool) Kind() Kind { return KindBool }
func (Bool) wireValue() {}

type Int int64

func (Int) Kind() Kind { return KindInt }
func (Int) wireValue() {}

type Uint uint64

func (Uint) Kind() Kind { return KindUint }
func (Uint) wireValue() {}

type Float float64

func (Float) Kind() Kind { return KindFloat }
func (Float) wireValue() {}

// String holds the raw payload of a string value. It is not guaranteed to be
// valid UTF-8.
type String string

func (String) Kind() Kind { return KindString }
func (String) wireValue() {}

type Binary []byte

func (Binary) Kind() Kind { return KindBinary }
func (Binary) wireValue() {}

type Array []Value

func (Array) Kind() Kind { return KindArray }
func (Array) wireValue() {}

// Pair is one entry of a Map.
type Pair struct {
	Key Value
	Val Value
}

// Map keeps entries in the order they were read. Duplicate keys are legal
// and left unresolved.
type Map []Pair

func (Map) Kind() Kind { return KindMap }
func (Map) wireValue() {}

// Ext is an application-defined extension value.
type Ext struct {
	Type int8
	Data []byte
}

func (Ext) Kind() Kind { return KindExt }
func (Ext) wireValue() {}

// KindOf returns the kind of v, treating a nil interface as Nil.
func KindOf(v Value) Kind {
	if v == nil {
		return KindNil
	}
	return v.Kind()
}

// Describe renders a short, bounded description of v for log lines and
// error messages.
func Describe(v Value) string {
	var b strings.Builder
	describe(&b, v, 2)
	return b.String()
}

func describe(b *strings.Builder, v Value, depth int) {
	switch v := v.(type) {
	case nil, Nil:
		b.WriteString("nil")
	case Bool:
		fmt.Fprintf(b, "%t", bool(v))
	case Int:
		fmt.Fprintf(b, "%d", int64(v))
	case Uint:
		fmt.Fprintf(b, "%du", uint64(v))
	case Float:
		fmt.Fprintf(b, "%g", float64(v))
	case String:
		s := string(v)
		if len(s) > 32 {
			s = s[:32] + "..."
		}
		fmt.Fprintf(b, "%q", s)
	case Binary:
		fmt.Fprintf(b, "bin[%d]", len(v))
	case Ext:
		fmt.Fprintf(b, "ext(%d)[%d]", v.Type, len(v.Data))
	case Array:
		if depth == 0 {
			fmt.Fprintf(b, "array[%d]", len(v))
			return
		}
		b.WriteByte('[')
		for i, e := range v {
			if i > 0 {
				b.WriteString(", ")
			}
			if i == 8 {
				fmt.Fprintf(b, "...%d more", len(v)-i)
				break
			}
			describe(b, e, depth-1)
		}
		b.WriteByte(']')
	case Map:
		if depth == 0 {
			fmt.Fprintf(b, "map[%d]", len(v))
			return
		}
		b.WriteByte('{')
		for i, p := range v {
			if i > 0 {
				b.WriteString(", ")
			}
			if i == 8 {
				fmt.Fprintf(b, "...%d more", len(v)-i)
				break
			}
			describe(b, p.Key, depth-1)
			b.WriteString(": ")
			describe(b, p.Val, depth-1)
		}
		b.WriteByte('}')
	default:
		fmt.Fprintf(b, "%T", v)
	}
}
