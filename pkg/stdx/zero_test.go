package stdx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZero(t *testing.T) {
	t.Run("numeric", func(t *testing.T) {
		assert.Equal(t, uint64(0), Zero[uint64]())
		assert.Equal(t, int32(0), Zero[int32]())
		assert.Equal(t, float64(0), Zero[float64]())
	})

	t.Run("string", func(t *testing.T) {
		assert.Equal(t, "", Zero[string]())
	})

	t.Run("slice", func(t *testing.T) {
		var expected []byte
		assert.Equal(t, expected, Zero[[]byte]())
	})

	t.Run("interface", func(t *testing.T) {
		var expected error
		assert.Equal(t, expected, Zero[error]())
	})

	t.Run("struct", func(t *testing.T) {
		type pair struct {
			First  uint64
			Second string
		}
		assert.Equal(t, pair{}, Zero[pair]())
	})
}
