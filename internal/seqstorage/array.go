package seqstorage

import (
	"github.com/inoxlang/seqstore/internal/seqkind"
	"github.com/inoxlang/seqstore/internal/utils"
	"golang.org/x/exp/constraints"
)

const (
	SHRINK_DIVIDER              = 2
	MIN_SHRINKABLE_ARRAY_LENGTH = 10 * SHRINK_DIVIDER
)

func cloneArray(array any) any {
	switch arr := array.(type) {
	case []byte:
		return utils.CopySlice(arr)
	case []int32:
		return utils.CopySlice(arr)
	case []int64:
		return utils.CopySlice(arr)
	case []float64:
		return utils.CopySlice(arr)
	case []Value:
		return utils.CopySlice(arr)
	}
	panic(ErrUnreachable)
}

// fromArray returns a managed storage taking ownership of a typed slice.
func fromArray(array any) *Storage {
	switch arr := array.(type) {
	case []byte:
		return NewBytes(arr)
	case []int32:
		return NewInts(arr)
	case []int64:
		return NewLongs(arr)
	case []float64:
		return NewDoubles(arr)
	case []Value:
		return NewObjects(arr)
	}
	panic(ErrUnreachable)
}

// stridedCopy copies length elements of src starting at start with a step of step.
func stridedCopy[T any](src []T, start, step, length int) []T {
	dst := make([]T, length)
	if step == 1 {
		copy(dst, src[start:start+length])
		return dst
	}

	for i, j := 0, start; i < length; i, j = i+1, j+step {
		dst[i] = src[j]
	}
	return dst
}

// repeatArray returns src repeated times times, times*len(src) is assumed to not overflow.
func repeatArray[T any](src []T, times int) []T {
	dst := make([]T, len(src)*times)
	if len(src) == 0 {
		return dst
	}

	//doubling copy
	n := copy(dst, src)
	for n < len(dst) {
		n += copy(dst[n:], dst[:n])
	}
	return dst
}

func concatArrays[T any](left, right []T) []T {
	dst := make([]T, len(left)+len(right))
	copy(dst, left)
	copy(dst[len(left):], right)
	return dst
}

// grow returns a copy of the first length elements of array in an array of at least
// minCapacity elements, the capacity is at least doubled.
func grow[T any](array []T, length, capacity, minCapacity int) []T {
	newCapacity := max(2*capacity, minCapacity, MIN_GROWTH_CAPACITY)
	newCapacity = min(newCapacity, max(MaxLength, minCapacity))

	grown := make([]T, newCapacity)
	copy(grown, array[:length])
	return grown
}

// shrink releases the capacity of array if more than half of it is wasted.
func shrink[T any](array []T, length int) []T {
	shrunk := utils.ShrinkSliceIfWastedCapacity(array[:length], MIN_SHRINKABLE_ARRAY_LENGTH, SHRINK_DIVIDER)
	return shrunk[:cap(shrunk)]
}

func truncateArray[T any](array []T, length, oldLength int) []T {
	clearTail(array, length, oldLength)
	return shrink(array, length)
}

// clearTail sets the elements of array between from and to to the zero value.
func clearTail[T any](array []T, from, to int) {
	var zero T
	for i := from; i < to; i++ {
		array[i] = zero
	}
}

func arrayEqual[T comparable](left, right []T) bool {
	if len(left) != len(right) {
		return false
	}
	for i, e := range left {
		if e != right[i] {
			return false
		}
	}
	return true
}

func floatArrayEqual[T constraints.Float](left, right []T) bool {
	if len(left) != len(right) {
		return false
	}
	for i, e := range left {
		f := right[i]
		if e != f && !(e != e && f != f) {
			return false
		}
	}
	return true
}

// kindOfArray returns the kind of a typed slice.
func kindOfArray(array any) seqkind.Kind {
	switch array.(type) {
	case []byte:
		return seqkind.Byte
	case []int32:
		return seqkind.Int
	case []int64:
		return seqkind.Long
	case []float64:
		return seqkind.Double
	case []Value:
		return seqkind.Object
	}
	panic(ErrUnreachable)
}
