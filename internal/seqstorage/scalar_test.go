package seqstorage

import (
	"math/big"
	"testing"

	"github.com/inoxlang/seqstore/internal/seqkind"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetItemScalar(t *testing.T) {
	t.Parallel()

	testInEachLocation(t, func(t *testing.T, build storageBuilder) {
		for _, kind := range allKinds {
			elements := elementsByKind[kind]
			s := build(kind, elements)

			for i, expected := range elements {
				v, err := GetItemScalar(s, i)
				require.NoError(t, err)
				assert.Equal(t, expected, v)
			}

			_, err := GetItemScalar(s, len(elements))
			assert.ErrorIs(t, err, IndexError)
		}
	})

	t.Run("foreign byte is unsigned", func(t *testing.T) {
		arena := newTestArena(t)
		s := ToNative(NewBytes([]byte{0xff, 0x80}), arena)

		v, err := GetItemScalar(s, 0)
		require.NoError(t, err)
		assert.Equal(t, 255, v)

		v, err = GetItemScalar(s, 1)
		require.NoError(t, err)
		assert.Equal(t, 128, v)
	})

	t.Run("invalid foreign item", func(t *testing.T) {
		arena := newTestArena(t)
		s := ToNative(NewInts([]int32{1}), corruptMemory{arena})

		_, err := GetItemScalar(s, 0)
		assert.ErrorIs(t, err, SystemError)
		assert.ErrorContains(t, err, "invalid item type string returned from native storage (expected: int)")
	})

	t.Run("foreign access failure", func(t *testing.T) {
		arena := newTestArena(t)
		s := ToNative(NewInts([]int32{1}), brokenMemory{arena})

		_, err := GetItemScalar(s, 0)
		assert.ErrorIs(t, err, SystemError)

		err = SetItemScalar(s, 0, 2)
		assert.ErrorIs(t, err, SystemError)
	})

	t.Run("released storage", func(t *testing.T) {
		arena := newTestArena(t)
		s := ToNative(NewInts([]int32{1}), arena)
		require.NoError(t, s.Native().Release())
		require.NoError(t, s.Native().Release())
		assert.True(t, s.Native().Released())

		_, err := GetItemScalar(s, 0)
		assert.ErrorIs(t, err, SystemError)
		assert.ErrorContains(t, err, S_NATIVE_STORAGE_RELEASED)
	})
}

func TestSetItemScalar(t *testing.T) {
	t.Parallel()

	testInEachLocation(t, func(t *testing.T, build storageBuilder) {

		t.Run("compatible values", func(t *testing.T) {
			testCases := []struct {
				kind     seqkind.Kind
				value    Value
				expected Value
			}{
				{seqkind.Byte, 200, 200},
				{seqkind.Byte, true, 1},
				{seqkind.Byte, big.NewInt(3), 3},
				{seqkind.Int, -300, int32(-300)},
				{seqkind.Int, false, int32(0)},
				{seqkind.Long, uint32(7), int64(7)},
				{seqkind.Double, float32(0.5), 0.5},
				{seqkind.Object, "x", "x"},
			}

			for _, testCase := range testCases {
				s := build(testCase.kind, elementsByKind[testCase.kind])
				require.NoError(t, SetItemScalar(s, 1, testCase.value))

				v, err := GetItemScalar(s, 1)
				require.NoError(t, err)
				assert.Equal(t, testCase.expected, v)
			}
		})

		t.Run("out of range byte", func(t *testing.T) {
			s := build(seqkind.Byte, []Value{1, 2, 3})

			for _, value := range []Value{300, -1, new(big.Int).Lsh(big.NewInt(1), 80)} {
				err := SetItemScalar(s, 0, value)
				assert.ErrorIs(t, err, ValueError)
				assert.ErrorContains(t, err, S_BYTE_OUT_OF_RANGE)
			}
			requireValues(t, []Value{1, 2, 3}, s)
		})

		t.Run("non integral byte", func(t *testing.T) {
			s := build(seqkind.Byte, []Value{1})

			err := SetItemScalar(s, 0, 1.5)
			assert.ErrorIs(t, err, TypeError)
			assert.ErrorContains(t, err, S_INTEGER_REQUIRED)
		})

		t.Run("incompatible values", func(t *testing.T) {
			s := build(seqkind.Int, []Value{1})
			err := SetItemScalar(s, 0, "a")
			assert.ErrorIs(t, err, TypeError)
			assert.ErrorContains(t, err, "int is required, was string")

			err = SetItemScalar(s, 0, int64(1)<<40)
			assert.ErrorIs(t, err, ValueError)

			s = build(seqkind.Double, []Value{1.0})
			err = SetItemScalar(s, 0, 1)
			assert.ErrorIs(t, err, TypeError)
			assert.ErrorContains(t, err, "double is required, was int")

			requireValues(t, []Value{1.0}, s)
		})

		t.Run("out of range index", func(t *testing.T) {
			s := build(seqkind.Long, []Value{int64(1)})
			assert.ErrorIs(t, SetItemScalar(s, 1, 2), IndexError)
			assert.ErrorIs(t, SetItemScalar(s, -1, 2), IndexError)
		})
	})
}

func TestCastToByte(t *testing.T) {
	t.Parallel()

	b, err := CastToByte(true)
	require.NoError(t, err)
	assert.Equal(t, byte(1), b)

	b, err = CastToByte(uint16(255))
	require.NoError(t, err)
	assert.Equal(t, byte(255), b)

	_, err = CastToByte(256)
	assert.ErrorIs(t, err, ValueError)

	_, err = CastToByte(uint64(1) << 63)
	assert.ErrorIs(t, err, ValueError)

	_, err = CastToByte("a")
	assert.ErrorIs(t, err, TypeError)
}

func TestVerifyNativeItem(t *testing.T) {
	t.Parallel()

	v, err := VerifyNativeItem(seqkind.Byte, int8(-1))
	require.NoError(t, err)
	assert.Equal(t, 255, v)

	v, err = VerifyNativeItem(seqkind.Object, seqkind.Opaque{Value: "a"})
	require.NoError(t, err)
	assert.Equal(t, "a", v)

	_, err = VerifyNativeItem(seqkind.Long, int32(1))
	assert.ErrorIs(t, err, SystemError)

	_, err = VerifyNativeItem(seqkind.Object, "a")
	assert.ErrorIs(t, err, SystemError)
}

func TestGetItem(t *testing.T) {
	t.Parallel()

	s := NewInts([]int32{0, 1, 2, 3, 4})

	v, err := GetItem(s, -1, ListNormalizer)
	require.NoError(t, err)
	assert.Equal(t, int32(4), v)

	v, err = GetItem(s, Slice{Step: Bound(-2)}, ListNormalizer)
	require.NoError(t, err)
	requireValues(t, []Value{int32(4), int32(2), int32(0)}, v.(*Storage))

	_, err = GetItem(s, 5, ListNormalizer)
	assert.ErrorIs(t, err, IndexError)
	assert.ErrorContains(t, err, S_LIST_INDEX_OUT_OF_RANGE)

	_, err = GetItem(s, "a", ListNormalizer)
	assert.ErrorIs(t, err, TypeError)

	_, err = GetItem(s, NewSlice(0, 1, 0), ListNormalizer)
	assert.ErrorIs(t, err, ValueError)

	t.Run("unchecked normalizer", func(t *testing.T) {
		normalizer := NewIndexNormalizer(S_ARRAY_INDEX_OUT_OF_RANGE, false)

		for _, index := range []int{5, 100, -6} {
			_, err := GetItem(s, index, normalizer)
			assert.ErrorIs(t, err, IndexError)
			assert.ErrorContains(t, err, S_ARRAY_INDEX_OUT_OF_RANGE)

			result, err := SetItem(s, index, 1, NewIndexNormalizer(S_ARRAY_ASSIGNMENT_INDEX_OUT_OF_RANGE, false), NoGeneralization{})
			assert.ErrorIs(t, err, IndexError)
			assert.ErrorContains(t, err, S_ARRAY_ASSIGNMENT_INDEX_OUT_OF_RANGE)
			assert.Same(t, s, result)
		}

		v, err := GetItem(s, -5, normalizer)
		require.NoError(t, err)
		assert.Equal(t, int32(0), v)
	})

	t.Run("scalar access reports the generic message", func(t *testing.T) {
		_, err := GetItemScalar(s, 5)
		assert.ErrorIs(t, err, IndexError)
		assert.EqualError(t, err, newError(IndexError, S_INDEX_OUT_OF_RANGE).Error())
	})
}

func TestSetItem(t *testing.T) {
	t.Parallel()

	t.Run("scalar", func(t *testing.T) {
		s := NewInts([]int32{1, 2, 3})

		result, err := SetItem(s, -1, 2.5, ListAssignNormalizer, ListGeneralization{})
		require.NoError(t, err)
		assert.Equal(t, seqkind.Double, result.Kind())
		requireValues(t, []Value{1.0, 2.0, 2.5}, result)

		//the original storage is not modified
		requireValues(t, []Value{int32(1), int32(2), int32(3)}, s)

		_, err = SetItem(s, 3, 1, ListAssignNormalizer, ListGeneralization{})
		assert.ErrorIs(t, err, IndexError)
		assert.ErrorContains(t, err, S_LIST_ASSIGNMENT_INDEX_OUT_OF_RANGE)
	})

	t.Run("byte storage that does not generalize", func(t *testing.T) {
		s := NewBytes([]byte{1, 2, 3})

		result, err := SetItem(s, 0, 300, BytearrayNormalizer, NoGeneralization{})
		assert.ErrorIs(t, err, ValueError)
		assert.Same(t, s, result)
		requireValues(t, []Value{1, 2, 3}, s)
	})

	t.Run("slice", func(t *testing.T) {
		s := NewBytes([]byte{1, 2, 3})

		result, err := SetItem(s, NewSlice(0, 1, 1), []Value{7, 8}, BytearrayNormalizer, NoGeneralization{})
		require.NoError(t, err)
		requireValues(t, []Value{7, 8, 2, 3}, result)

		result, err = SetItem(result, Slice{}, NewInts([]int32{4}), BytearrayNormalizer, NoGeneralization{})
		require.NoError(t, err)
		requireValues(t, []Value{4}, result)

		_, err = SetItem(result, Slice{}, 3, BytearrayNormalizer, NoGeneralization{})
		assert.ErrorIs(t, err, TypeError)
		assert.ErrorContains(t, err, S_CAN_ONLY_ASSIGN_ITERABLE)
	})
}
