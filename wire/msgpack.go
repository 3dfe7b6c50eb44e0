package wire

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/fogfish/opts"
	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"
)

// maxDepth bounds nesting so a hostile stream cannot exhaust the stack.
const maxDepth = 512

// prealloc caps the capacity reserved from a container header before its
// elements have been read.
const prealloc = 1024

// chunkSize is the step in which string, binary and ext payloads grow while
// they are read, so memory follows the bytes that actually arrive.
const chunkSize = 64 << 10

// DefaultMaxBytes is the largest string, binary or ext payload a Reader
// accepts unless WithMaxBytes says otherwise.
const DefaultMaxBytes = 64 << 20

var (
	// ErrTooDeep is returned when a value nests deeper than the reader allows.
	ErrTooDeep = errors.New("wire: value nested too deeply")

	// ErrTooLarge is returned when a string, binary or ext header announces
	// more bytes than the reader accepts.
	ErrTooLarge = errors.New("wire: payload too large")
)

// WithMaxBytes sets the largest string, binary or ext payload a Reader
// accepts.
func WithMaxBytes(n int) opts.Option[Reader] {
	return opts.Type[Reader](func(r *Reader) error {
		if n <= 0 {
			return fmt.Errorf("max bytes must be positive, got %d", n)
		}
		r.maxBytes = n
		return nil
	})
}

// Reader reads consecutive msgpack values from a stream.
type Reader struct {
	dec      *msgpack.Decoder
	maxBytes int
}

// NewReader creates a Reader over r. It panics when an option is invalid.
func NewReader(r io.Reader, options ...opts.Option[Reader]) *Reader {
	rd := &Reader{dec: msgpack.NewDecoder(r), maxBytes: DefaultMaxBytes}
	if err := opts.Apply(rd, options); err != nil {
		panic(err)
	}
	return rd
}

// Next reads one complete value. It returns io.EOF when the stream ends
// cleanly between values.
func (r *Reader) Next() (Value, error) {
	return decoder{d: r.dec, maxBytes: r.maxBytes}.decode()
}

// Unmarshal parses exactly one msgpack value from b. Trailing bytes are an
// error.
func Unmarshal(b []byte) (Value, error) {
	rd := bytes.NewReader(b)
	v, err := Decode(msgpack.NewDecoder(rd))
	if err != nil {
		return nil, err
	}
	if rd.Len() != 0 {
		return nil, fmt.Errorf("wire: %d trailing bytes after value", rd.Len())
	}
	return v, nil
}

// Decode reads the next value from d with the default payload limit. io.EOF
// is only returned when d is exhausted before the value starts; a value cut
// short reports io.ErrUnexpectedEOF.
func Decode(d *msgpack.Decoder) (Value, error) {
	return decoder{d: d, maxBytes: DefaultMaxBytes}.decode()
}

type decoder struct {
	d        *msgpack.Decoder
	maxBytes int
}

func (dc decoder) decode() (Value, error) {
	if _, err := dc.d.PeekCode(); err != nil {
		return nil, err
	}
	v, err := dc.value(0)
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("wire: truncated value: %w", io.ErrUnexpectedEOF)
	}
	return v, err
}

// payload reads n raw bytes, growing the buffer chunk by chunk.
func (dc decoder) payload(n int) ([]byte, error) {
	if n < 0 || n > dc.maxBytes {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", ErrTooLarge, n, dc.maxBytes)
	}
	buf := make([]byte, 0, min(n, chunkSize))
	for len(buf) < n {
		start := len(buf)
		step := min(n-start, chunkSize)
		buf = slices.Grow(buf, step)[:start+step]
		if err := dc.d.ReadFull(buf[start:]); err != nil {
			return nil, err
		}
	}
	return buf, nil
}

func (dc decoder) value(depth int) (Value, error) {
	d := dc.d
	if depth > maxDepth {
		return nil, ErrTooDeep
	}
	c, err := d.PeekCode()
	if err != nil {
		return nil, err
	}

	switch {
	case c == msgpcode.Nil:
		if err := d.DecodeNil(); err != nil {
			return nil, err
		}
		return Nil{}, nil

	case c == msgpcode.False || c == msgpcode.True:
		b, err := d.DecodeBool()
		if err != nil {
			return nil, err
		}
		return Bool(b), nil

	case msgpcode.IsFixedNum(c):
		if int8(c) < 0 {
			i, err := d.DecodeInt64()
			if err != nil {
				return nil, err
			}
			return Int(i), nil
		}
		u, err := d.DecodeUint64()
		if err != nil {
			return nil, err
		}
		return Uint(u), nil

	case c == msgpcode.Uint8 || c == msgpcode.Uint16 || c == msgpcode.Uint32 || c == msgpcode.Uint64:
		u, err := d.DecodeUint64()
		if err != nil {
			return nil, err
		}
		return Uint(u), nil

	case c == msgpcode.Int8 || c == msgpcode.Int16 || c == msgpcode.Int32 || c == msgpcode.Int64:
		i, err := d.DecodeInt64()
		if err != nil {
			return nil, err
		}
		return Int(i), nil

	case c == msgpcode.Float:
		f, err := d.DecodeFloat32()
		if err != nil {
			return nil, err
		}
		return Float(f), nil

	case c == msgpcode.Double:
		f, err := d.DecodeFloat64()
		if err != nil {
			return nil, err
		}
		return Float(f), nil

	case msgpcode.IsString(c) || msgpcode.IsBin(c):
		n, err := d.DecodeBytesLen()
		if err != nil {
			return nil, err
		}
		b, err := dc.payload(n)
		if err != nil {
			return nil, err
		}
		if msgpcode.IsBin(c) {
			return Binary(b), nil
		}
		return String(b), nil

	case msgpcode.IsFixedArray(c) || c == msgpcode.Array16 || c == msgpcode.Array32:
		n, err := d.DecodeArrayLen()
		if err != nil {
			return nil, err
		}
		arr := make(Array, 0, min(n, prealloc))
		for i := range n {
			v, err := dc.value(depth + 1)
			if err != nil {
				return nil, fmt.Errorf("array index %d: %w", i, err)
			}
			arr = append(arr, v)
		}
		return arr, nil

	case msgpcode.IsFixedMap(c) || c == msgpcode.Map16 || c == msgpcode.Map32:
		n, err := d.DecodeMapLen()
		if err != nil {
			return nil, err
		}
		m := make(Map, 0, min(n, prealloc))
		for i := range n {
			var p Pair
			if p.Key, err = dc.value(depth + 1); err != nil {
				return nil, fmt.Errorf("map entry %d key: %w", i, err)
			}
			if p.Val, err = dc.value(depth + 1); err != nil {
				return nil, fmt.Errorf("map entry %d value: %w", i, err)
			}
			m = append(m, p)
		}
		return m, nil

	case msgpcode.IsExt(c):
		typ, n, err := d.DecodeExtHeader()
		if err != nil {
			return nil, err
		}
		data, err := dc.payload(n)
		if err != nil {
			return nil, fmt.Errorf("ext payload: %w", err)
		}
		return Ext{Type: typ, Data: data}, nil

	default:
		return nil, fmt.Errorf("wire: unsupported msgpack code 0x%02x", c)
	}
}
