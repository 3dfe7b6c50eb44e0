package decode

import (
	"fmt"

	"github.com/casualjim/redraw/pkg/stdx"
	"github.com/casualjim/redraw/wire"
)

// Seq is a forward-only cursor over the elements of an array. Fields must be
// read in the order the host declares them.
type Seq struct {
	arr wire.Array
	pos int
}

// NewSeq starts a cursor over v, which must be an array.
func NewSeq(v wire.Value) (*Seq, error) {
	arr, err := Array(v)
	if err != nil {
		return nil, err
	}
	return &Seq{arr: arr}, nil
}

// Remaining reports how many elements have not been consumed yet.
func (s *Seq) Remaining() int {
	return len(s.arr) - s.pos
}

// Pos is the index of the next element.
func (s *Seq) Pos() int {
	return s.pos
}

// Next decodes the next element of s with dec. Running past the end is a
// shape mismatch; a conversion failure is wrapped with the field index.
func Next[T any](s *Seq, dec Decoder[T]) (T, error) {
	if s.pos >= len(s.arr) {
		return stdx.Zero[T](), shapeError("array", s.arr, fmt.Sprintf("missing field %d of %d", s.pos, len(s.arr)))
	}
	i := s.pos
	s.pos++
	v, err := dec(s.arr[i])
	if err != nil {
		return stdx.Zero[T](), fieldError(i, err)
	}
	return v, nil
}

// Single decodes the first element of an occurrence's argument array, for
// events whose whole payload is one value. Extra elements are ignored.
func Single[T any](args wire.Value, dec Decoder[T]) (T, error) {
	s, err := NewSeq(args)
	if err != nil {
		return stdx.Zero[T](), err
	}
	return Next(s, dec)
}

// First returns the first occurrence array of a batch of occurrences.
func First(batch wire.Value) (wire.Array, error) {
	arr, err := Array(batch)
	if err != nil {
		return nil, err
	}
	if len(arr) == 0 {
		return nil, shapeError("array of arrays", arr, "empty batch")
	}
	return Array(arr[0])
}

func fieldError(i int, err error) error {
	return fmt.Errorf("field %d: %w", i, err)
}

func indexError(i int, err error) error {
	return fmt.Errorf("index %d: %w", i, err)
}
