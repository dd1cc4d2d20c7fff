package seqstorage

import (
	"testing"

	"github.com/inoxlang/seqstore/internal/seqkind"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetItemSlice(t *testing.T) {
	t.Parallel()

	testInEachLocation(t, func(t *testing.T, build storageBuilder) {

		t.Run("round trip", func(t *testing.T) {
			for _, kind := range allKinds {
				s := build(kind, elementsByKind[kind])

				slice, err := GetItemSlice(s, NewSliceInfo(0, s.Len(), 1))
				require.NoError(t, err)
				assert.Equal(t, kind, slice.Kind())
				assert.Equal(t, s.Location(), slice.Location())
				assert.True(t, Equal(s, slice))
				assert.True(t, Equal(slice, s))
			}
		})

		t.Run("reversed", func(t *testing.T) {
			s := build(seqkind.Int, []Value{int32(0), int32(1), int32(2), int32(3), int32(4)})

			slice, err := GetItemSlice(s, SliceInfo{Start: 4, Stop: -1, Step: -1, Length: 5})
			require.NoError(t, err)
			requireValues(t, []Value{int32(4), int32(3), int32(2), int32(1), int32(0)}, slice)
		})

		t.Run("step", func(t *testing.T) {
			s := build(seqkind.Double, []Value{0.0, 1.0, 2.0, 3.0, 4.0, 5.0})

			slice, err := GetItemSlice(s, NewSliceInfo(1, 6, 2))
			require.NoError(t, err)
			requireValues(t, []Value{1.0, 3.0, 5.0}, slice)

			slice, err = GetItemSlice(s, NewSliceInfo(5, 0, -3))
			require.NoError(t, err)
			requireValues(t, []Value{5.0, 2.0}, slice)
		})

		t.Run("empty", func(t *testing.T) {
			s := build(seqkind.Object, []Value{"a"})

			slice, err := GetItemSlice(s, NewSliceInfo(1, 0, 1))
			require.NoError(t, err)
			assert.Zero(t, slice.Len())
			assert.Equal(t, seqkind.Object, slice.Kind())
		})

		t.Run("no aliasing", func(t *testing.T) {
			s := build(seqkind.Long, []Value{int64(1), int64(2)})

			slice, err := GetItemSlice(s, NewSliceInfo(0, 2, 1))
			require.NoError(t, err)
			require.NoError(t, SetItemScalar(slice, 0, 5))
			requireValues(t, []Value{int64(1), int64(2)}, s)
		})

		t.Run("out of range", func(t *testing.T) {
			s := build(seqkind.Byte, []Value{1, 2})

			_, err := GetItemSlice(s, NewSliceInfo(0, 4, 1))
			assert.ErrorIs(t, err, IndexError)
		})
	})

	t.Run("invalid foreign item", func(t *testing.T) {
		arena := newTestArena(t)
		s := ToNative(NewLongs([]int64{1, 2}), corruptMemory{arena})

		_, err := GetItemSlice(s, NewSliceInfo(0, 2, 1))
		assert.ErrorIs(t, err, SystemError)
	})
}

func TestSetItemSlice(t *testing.T) {
	t.Parallel()

	testInEachLocation(t, func(t *testing.T, build storageBuilder) {

		t.Run("same length", func(t *testing.T) {
			s := build(seqkind.Int, []Value{int32(0), int32(1), int32(2)})

			result, err := SetItemSlice(s, NewSliceInfo(0, 2, 1), []Value{8, 9}, ListGeneralization{})
			require.NoError(t, err)
			assert.Same(t, s, result)
			requireValues(t, []Value{int32(8), int32(9), int32(2)}, s)
		})

		t.Run("grow", func(t *testing.T) {
			s := build(seqkind.Int, []Value{int32(0), int32(1), int32(2)})

			result, err := SetItemSlice(s, NewSliceInfo(1, 2, 1), []Value{7, 8, 9}, ListGeneralization{})
			require.NoError(t, err)
			assert.Equal(t, s.Location(), result.Location())
			requireValues(t, []Value{int32(0), int32(7), int32(8), int32(9), int32(2)}, result)
		})

		t.Run("shrink", func(t *testing.T) {
			s := build(seqkind.Long, []Value{int64(0), int64(1), int64(2), int64(3)})

			result, err := SetItemSlice(s, NewSliceInfo(1, 4, 1), nil, ListGeneralization{})
			require.NoError(t, err)
			requireValues(t, []Value{int64(0)}, result)
		})

		t.Run("insertion", func(t *testing.T) {
			s := build(seqkind.Object, []Value{"a", "b"})

			result, err := SetItemSlice(s, NewSliceInfo(1, 0, 1), []Value{"x"}, ListGeneralization{})
			require.NoError(t, err)
			requireValues(t, []Value{"a", "x", "b"}, result)
		})

		t.Run("extended slice", func(t *testing.T) {
			s := build(seqkind.Byte, []Value{0, 1, 2, 3, 4})

			result, err := SetItemSlice(s, NewSliceInfo(4, -1, -2), []Value{10, 20, 30}, NoGeneralization{})
			require.NoError(t, err)
			requireValues(t, []Value{30, 1, 20, 3, 10}, result)

			_, err = SetItemSlice(s, NewSliceInfo(0, 5, 2), []Value{1}, NoGeneralization{})
			assert.ErrorIs(t, err, ValueError)
			assert.ErrorContains(t, err, "attempt to assign sequence of size 1 to extended slice of size 3")
		})

		t.Run("generalization", func(t *testing.T) {
			s := build(seqkind.Byte, []Value{0, 1, 2})

			result, err := SetItemSlice(s, NewSliceInfo(0, 1, 1), []Value{"a", 2.5}, ListGeneralization{})
			require.NoError(t, err)
			assert.Equal(t, seqkind.Object, result.Kind())
			assert.Equal(t, s.Location(), result.Location())
			requireValues(t, []Value{"a", 2.5, 1, 2}, result)
		})

		t.Run("invalid value", func(t *testing.T) {
			s := build(seqkind.Byte, []Value{0, 1, 2})

			result, err := SetItemSlice(s, NewSliceInfo(0, 3, 1), []Value{5, 6, 300}, NoGeneralization{})
			assert.ErrorIs(t, err, ValueError)
			assert.Same(t, s, result)
			requireValues(t, []Value{0, 1, 2}, s)
		})
	})
}
