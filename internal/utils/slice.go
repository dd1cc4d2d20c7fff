package utils

func CopySlice[T any](s []T) []T {
	sliceCopy := make([]T, len(s))
	copy(sliceCopy, s)

	return sliceCopy
}

func Reverse[T any](slice []T) {
	length := len(slice)

	for i, j := 0, length-1; i < j; i, j = i+1, j-1 {
		slice[i], slice[j] = slice[j], slice[i]
	}
}

// ShrinkSliceIfWastedCapacity returns a copy of s with a capacity of cap(s)/divider if the
// capacity of s is at least minShrinkableCapacity and len(s) is at most cap(s)/divider.
func ShrinkSliceIfWastedCapacity[T any](s []T, minShrinkableCapacity int, divider int) []T {
	if cap(s) < minShrinkableCapacity || len(s) > cap(s)/divider {
		return s
	}

	shrunk := make([]T, len(s), cap(s)/divider)
	copy(shrunk, s)
	return shrunk
}
