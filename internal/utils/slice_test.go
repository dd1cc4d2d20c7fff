package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReverse(t *testing.T) {
	t.Parallel()

	s := []int{1, 2, 3}
	Reverse(s)
	assert.Equal(t, []int{3, 2, 1}, s)

	empty := []int{}
	Reverse(empty)
	assert.Empty(t, empty)
}

func TestShrinkSliceIfWastedCapacity(t *testing.T) {
	t.Parallel()

	t.Run("small capacity", func(t *testing.T) {
		s := make([]int, 1, 10)
		assert.Equal(t, 10, cap(ShrinkSliceIfWastedCapacity(s, 20, 2)))
	})

	t.Run("enough elements", func(t *testing.T) {
		s := make([]int, 30, 40)
		assert.Equal(t, 40, cap(ShrinkSliceIfWastedCapacity(s, 20, 2)))
	})

	t.Run("wasted capacity", func(t *testing.T) {
		s := make([]int, 3, 40)
		s[2] = 5

		shrunk := ShrinkSliceIfWastedCapacity(s, 20, 2)
		assert.Equal(t, 20, cap(shrunk))
		assert.Equal(t, []int{0, 0, 5}, shrunk)
	})

	t.Run("length equal to the shrunk capacity", func(t *testing.T) {
		s := make([]int, 10, 40)

		shrunk := ShrinkSliceIfWastedCapacity(s, 20, 4)
		assert.Equal(t, 10, cap(shrunk))
		assert.Len(t, shrunk, 10)

		s = make([]int, 11, 40)
		assert.Equal(t, 40, cap(ShrinkSliceIfWastedCapacity(s, 20, 4)))
	})
}
