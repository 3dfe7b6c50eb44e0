package decode

import (
	"testing"

	"github.com/casualjim/redraw/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeq(t *testing.T) {
	t.Run("requires an array", func(t *testing.T) {
		for _, v := range []wire.Value{wire.Nil{}, nil, wire.Uint(1), wire.String("a"), wire.Map{}} {
			_, err := NewSeq(v)
			assert.ErrorIs(t, err, ErrShapeMismatch, "value %s", wire.Describe(v))
		}
	})

	t.Run("reads fields in order", func(t *testing.T) {
		s, err := NewSeq(wire.Array{wire.Uint(3), wire.String("x"), wire.Bool(true)})
		require.NoError(t, err)
		assert.Equal(t, 3, s.Remaining())

		n, err := Next(s, Uint64)
		require.NoError(t, err)
		assert.Equal(t, uint64(3), n)

		str, err := Next(s, String)
		require.NoError(t, err)
		assert.Equal(t, "x", str)
		assert.Equal(t, 2, s.Pos())
		assert.Equal(t, 1, s.Remaining())
	})

	t.Run("exhaustion is a shape mismatch", func(t *testing.T) {
		s, err := NewSeq(wire.Array{wire.Uint(1)})
		require.NoError(t, err)

		_, err = Next(s, Uint64)
		require.NoError(t, err)

		_, err = Next(s, Uint64)
		require.ErrorIs(t, err, ErrShapeMismatch)
		assert.Contains(t, err.Error(), "missing field 1")
	})

	t.Run("conversion failure names the field", func(t *testing.T) {
		s, err := NewSeq(wire.Array{wire.Uint(1), wire.String("nope")})
		require.NoError(t, err)

		_, err = Next(s, Uint64)
		require.NoError(t, err)

		_, err = Next(s, Uint64)
		require.ErrorIs(t, err, ErrTypeMismatch)
		assert.Contains(t, err.Error(), "field 1")
	})
}

func TestSingle(t *testing.T) {
	t.Run("first element", func(t *testing.T) {
		got, err := Single(wire.Array{wire.String("title")}, String)
		require.NoError(t, err)
		assert.Equal(t, "title", got)
	})

	t.Run("extra elements are ignored", func(t *testing.T) {
		got, err := Single(wire.Array{wire.String("x"), wire.String("y")}, String)
		require.NoError(t, err)
		assert.Equal(t, "x", got)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := Single(wire.Array{}, String)
		require.ErrorIs(t, err, ErrShapeMismatch)
	})

	t.Run("not an array", func(t *testing.T) {
		_, err := Single(wire.String("x"), String)
		require.ErrorIs(t, err, ErrShapeMismatch)
	})
}

func TestFirst(t *testing.T) {
	got, err := First(wire.Array{wire.Array{wire.Uint(1)}, wire.Array{wire.Uint(2)}})
	require.NoError(t, err)
	assert.Equal(t, wire.Array{wire.Uint(1)}, got)

	_, err = First(wire.Array{})
	require.ErrorIs(t, err, ErrShapeMismatch)

	_, err = First(wire.Array{wire.Uint(1)})
	require.ErrorIs(t, err, ErrShapeMismatch)

	_, err = First(wire.Nil{})
	require.ErrorIs(t, err, ErrShapeMismatch)
}

func TestOptional(t *testing.T) {
	dec := Optional(Uint64)

	t.Run("nil is none", func(t *testing.T) {
		got, err := dec(wire.Nil{})
		require.NoError(t, err)
		assert.False(t, got.IsSome())
		assert.Equal(t, None[uint64](), got)
	})

	t.Run("value is some", func(t *testing.T) {
		got, err := dec(wire.Uint(7))
		require.NoError(t, err)
		v, ok := got.Get()
		assert.True(t, ok)
		assert.Equal(t, uint64(7), v)
		assert.Equal(t, Some[uint64](7), got)
	})

	t.Run("other shapes fail", func(t *testing.T) {
		for _, v := range []wire.Value{wire.Int(-1), wire.String("7"), wire.Array{}, wire.Bool(false)} {
			_, err := dec(v)
			assert.ErrorIs(t, err, ErrTypeMismatch, "value %s", wire.Describe(v))
		}
	})

	t.Run("json", func(t *testing.T) {
		b, err := None[uint64]().MarshalJSON()
		require.NoError(t, err)
		assert.Equal(t, "null", string(b))

		b, err = Some[uint64](3).MarshalJSON()
		require.NoError(t, err)
		assert.Equal(t, "3", string(b))

		var o Option[uint64]
		require.NoError(t, o.UnmarshalJSON([]byte("12")))
		assert.Equal(t, Some[uint64](12), o)
		require.NoError(t, o.UnmarshalJSON([]byte("null")))
		assert.False(t, o.IsSome())
	})
}

func TestOptionMarshalReturnsFreshBuffer(t *testing.T) {
	first, err := None[uint64]().MarshalJSON()
	require.NoError(t, err)
	first[0] = 'x'

	second, err := None[uint64]().MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, "null", string(second))
}
