package seqstorage

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexNormalizer(t *testing.T) {
	t.Parallel()

	t.Run("negative indexes are relative to the end", func(t *testing.T) {
		for length := 1; length < 10; length++ {
			offset, err := DefaultNormalizer.NormalizeInt32(-1, length)
			require.NoError(t, err)
			assert.Equal(t, length-1, offset)

			offset, err = DefaultNormalizer.NormalizeInt32(int32(-length), length)
			require.NoError(t, err)
			assert.Zero(t, offset)
		}
	})

	t.Run("length is out of range", func(t *testing.T) {
		for length := 0; length < 10; length++ {
			_, err := DefaultNormalizer.NormalizeInt32(int32(length), length)
			assert.ErrorIs(t, err, IndexError)
		}
	})

	t.Run("length is added once", func(t *testing.T) {
		_, err := DefaultNormalizer.NormalizeInt32(-7, 3)
		assert.ErrorIs(t, err, IndexError)

		offset, err := UncheckedIndexNormalizer.NormalizeInt32(-7, 3)
		require.NoError(t, err)
		assert.Equal(t, -4, offset)
	})

	t.Run("unchecked", func(t *testing.T) {
		offset, err := UncheckedIndexNormalizer.NormalizeInt32(3, 3)
		require.NoError(t, err)
		assert.Equal(t, 3, offset)
	})

	t.Run("messages", func(t *testing.T) {
		testCases := map[string]IndexNormalizer{
			S_INDEX_OUT_OF_RANGE:                  DefaultNormalizer,
			S_LIST_INDEX_OUT_OF_RANGE:             ListNormalizer,
			S_LIST_ASSIGNMENT_INDEX_OUT_OF_RANGE:  ListAssignNormalizer,
			S_TUPLE_INDEX_OUT_OF_RANGE:            TupleNormalizer,
			S_ARRAY_INDEX_OUT_OF_RANGE:            ArrayNormalizer,
			S_ARRAY_ASSIGNMENT_INDEX_OUT_OF_RANGE: ArrayAssignNormalizer,
			S_BYTEARRAY_INDEX_OUT_OF_RANGE:        BytearrayNormalizer,
			S_RANGE_INDEX_OUT_OF_RANGE:            RangeNormalizer,
		}

		for message, normalizer := range testCases {
			_, err := normalizer.NormalizeInt32(5, 2)
			if !assert.ErrorIs(t, err, IndexError) {
				continue
			}
			assert.Equal(t, "IndexError: "+message, err.Error())
		}

		assert.Equal(t, S_INDEX_OUT_OF_RANGE, IndexNormalizer{}.Message())
	})

	t.Run("64-bit indexes", func(t *testing.T) {
		offset, err := ListNormalizer.NormalizeInt64(-2, 5)
		require.NoError(t, err)
		assert.Equal(t, 3, offset)

		for _, index := range []int64{math.MaxInt32 + 1, math.MinInt32 - 1, math.MaxInt64, math.MinInt64} {
			_, err := ListNormalizer.NormalizeInt64(index, math.MaxInt32)
			assert.ErrorIs(t, err, IndexError)
			assert.ErrorContains(t, err, S_LIST_INDEX_OUT_OF_RANGE)

			//the narrowing fails whatever the bounds checking policy
			_, err = UncheckedIndexNormalizer.NormalizeInt64(index, math.MaxInt32)
			assert.ErrorIs(t, err, IndexError)
		}
	})

	t.Run("arbitrary-precision indexes", func(t *testing.T) {
		offset, err := TupleNormalizer.NormalizeBig(big.NewInt(-1), 4)
		require.NoError(t, err)
		assert.Equal(t, 3, offset)

		huge := new(big.Int).Lsh(big.NewInt(1), 100)
		_, err = TupleNormalizer.NormalizeBig(huge, 4)
		assert.ErrorIs(t, err, IndexError)
		assert.ErrorContains(t, err, S_TUPLE_INDEX_OUT_OF_RANGE)

		_, err = TupleNormalizer.NormalizeBig(big.NewInt(math.MaxInt32+1), 4)
		assert.ErrorIs(t, err, IndexError)
	})

	t.Run("dynamic index", func(t *testing.T) {
		for _, index := range []Value{1, int8(1), int32(1), int64(1), uint(1), uint64(1), big.NewInt(1), true} {
			offset, err := DefaultNormalizer.Normalize(index, 3)
			if assert.NoError(t, err, "%T", index) {
				assert.Equal(t, 1, offset)
			}
		}

		_, err := DefaultNormalizer.Normalize(uint64(math.MaxUint64), 3)
		assert.ErrorIs(t, err, IndexError)

		_, err = DefaultNormalizer.Normalize(int64(1)<<40, 3)
		assert.ErrorIs(t, err, IndexError)

		_, err = DefaultNormalizer.Normalize("1", 3)
		assert.ErrorIs(t, err, TypeError)

		_, err = DefaultNormalizer.Normalize(1.0, 3)
		assert.ErrorIs(t, err, TypeError)
	})
}
