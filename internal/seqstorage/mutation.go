package seqstorage

import (
	"github.com/inoxlang/seqstore/internal/seqkind"
	"github.com/inoxlang/seqstore/internal/utils"
)

// EnsureCapacity returns s if it can hold minCapacity elements, otherwise s is replaced by a
// larger storage of the same kind and location.
func EnsureCapacity(s *Storage, minCapacity int) (*Storage, error) {
	capacity := s.Capacity()
	if minCapacity <= capacity {
		return s, nil
	}
	if minCapacity > MaxLength {
		return s, newError(ValueError, S_SEQUENCE_TOO_LONG)
	}

	array := s.fullArray()
	if s.native != nil {
		var err error
		array, err = typedElements(s)
		if err != nil {
			return s, err
		}
	}

	switch s.kind {
	case seqkind.Byte:
		array = grow(array.([]byte), s.length, capacity, minCapacity)
	case seqkind.Int:
		array = grow(array.([]int32), s.length, capacity, minCapacity)
	case seqkind.Long:
		array = grow(array.([]int64), s.length, capacity, minCapacity)
	case seqkind.Double:
		array = grow(array.([]float64), s.length, capacity, minCapacity)
	default:
		array = grow(array.([]Value), s.length, capacity, minCapacity)
	}
	return rebuild(s, array, s.length), nil
}

// Append appends v to s, s is generalized if needed. The returned storage replaces s,
// on error s is returned unmodified.
func Append(s *Storage, v Value, gen Generalizer) (*Storage, error) {
	return Extend(s, []Value{v}, gen)
}

// Extend appends values to s, s is generalized if needed. The returned storage replaces s,
// on error s is returned unmodified.
func Extend(s *Storage, values []Value, gen Generalizer) (*Storage, error) {
	if len(values) == 0 {
		return s, nil
	}

	return insertValues(s, s.length, values, gen)
}

// Insert inserts v before index, index is clamped to [0, length] after negative indexes are
// made relative to the end. The returned storage replaces s, on error s is returned unmodified.
func Insert(s *Storage, index int, v Value, gen Generalizer) (*Storage, error) {
	if index < 0 {
		index = max(index+s.length, 0)
	}
	index = min(index, s.length)
	return insertValues(s, index, []Value{v}, gen)
}

func insertValues(s *Storage, index int, values []Value, gen Generalizer) (*Storage, error) {
	if s.length > MaxLength-len(values) {
		return s, newError(ValueError, S_SEQUENCE_TOO_LONG)
	}

	target, err := ensureAcceptsAll(s, values, gen)
	if err != nil {
		return s, err
	}

	elems := make([]any, len(values))
	for i, v := range values {
		elems[i], err = coerce(target.kind, v, true)
		if err != nil {
			discard(target, s)
			return s, err
		}
	}

	grown, err := EnsureCapacity(target, target.length+len(elems))
	if grown != target || err != nil {
		discard(target, s)
	}
	if err != nil {
		return s, err
	}

	if err := moveElements(grown, index+len(elems), index, grown.length-index); err != nil {
		discard(grown, s)
		return s, err
	}
	for i, elem := range elems {
		if err := grown.store(index+i, elem); err != nil {
			discard(grown, s)
			return s, err
		}
	}
	grown.length += len(elems)
	return grown, nil
}

// DeleteItem removes the element at a normalized index.
func DeleteItem(s *Storage, index int) error {
	if index < 0 || index >= s.length {
		return newError(IndexError, S_INDEX_OUT_OF_RANGE)
	}
	return removeRange(s, index, 1)
}

// DeleteSlice removes the elements of the slice described by info.
func DeleteSlice(s *Storage, info SliceInfo) error {
	if info.Length <= 0 {
		return nil
	}

	start, step := info.Start, info.Step
	if step < 0 {
		start, step = info.Start+(info.Length-1)*info.Step, -step
	}
	if start < 0 || start+(info.Length-1)*step >= s.length {
		return newError(IndexError, S_INDEX_OUT_OF_RANGE)
	}

	if step == 1 {
		return removeRange(s, start, info.Length)
	}

	//compaction of the elements that are kept
	w := start
	for r := start; r < s.length; r++ {
		if r <= start+(info.Length-1)*step && (r-start)%step == 0 {
			continue
		}
		if err := moveElements(s, w, r, 1); err != nil {
			return err
		}
		w++
	}
	return truncate(s, w)
}

// Pop removes the element at a normalized index and returns it.
func Pop(s *Storage, index int) (Value, error) {
	if s.length == 0 {
		return nil, newError(IndexError, S_POP_FROM_EMPTY)
	}
	if index < 0 || index >= s.length {
		return nil, newError(IndexError, S_INDEX_OUT_OF_RANGE)
	}

	v, err := s.load(index)
	if err != nil {
		return nil, err
	}
	if err := removeRange(s, index, 1); err != nil {
		return nil, err
	}
	return v, nil
}

// Clear removes all the elements of s.
func Clear(s *Storage) error {
	return truncate(s, 0)
}

// Reverse reverses s in place.
func Reverse(s *Storage) error {
	if s.native == nil {
		switch s.kind {
		case seqkind.Byte:
			utils.Reverse(s.bytes[:s.length])
		case seqkind.Int:
			utils.Reverse(s.ints[:s.length])
		case seqkind.Long:
			utils.Reverse(s.longs[:s.length])
		case seqkind.Double:
			utils.Reverse(s.doubles[:s.length])
		default:
			utils.Reverse(s.objects[:s.length])
		}
		return nil
	}

	for i, j := 0, s.length-1; i < j; i, j = i+1, j-1 {
		a, err := s.load(i)
		if err != nil {
			return err
		}
		b, err := s.load(j)
		if err != nil {
			return err
		}
		if err := storeValue(s, i, b); err != nil {
			return err
		}
		if err := storeValue(s, j, a); err != nil {
			return err
		}
	}
	return nil
}

func removeRange(s *Storage, start, count int) error {
	if err := moveElements(s, start, start+count, s.length-start-count); err != nil {
		return err
	}
	return truncate(s, s.length-count)
}

// truncate sets the length of s to length, the removed elements are cleared and managed arrays
// with too much wasted capacity are shrunk.
func truncate(s *Storage, length int) error {
	if s.native != nil {
		if s.kind == seqkind.Object {
			for i := length; i < s.length; i++ {
				if err := s.store(i, nil); err != nil {
					return err
				}
			}
		}
		s.length = length
		return nil
	}

	switch s.kind {
	case seqkind.Byte:
		s.bytes = truncateArray(s.bytes, length, s.length)
	case seqkind.Int:
		s.ints = truncateArray(s.ints, length, s.length)
	case seqkind.Long:
		s.longs = truncateArray(s.longs, length, s.length)
	case seqkind.Double:
		s.doubles = truncateArray(s.doubles, length, s.length)
	default:
		s.objects = truncateArray(s.objects, length, s.length)
	}
	s.length = length
	return nil
}

// moveElements copies the n elements at src to dst, the ranges can overlap. The capacity of s
// must be large enough.
func moveElements(s *Storage, dst, src, n int) error {
	if n <= 0 || dst == src {
		return nil
	}

	if s.native == nil {
		switch s.kind {
		case seqkind.Byte:
			copy(s.bytes[dst:dst+n], s.bytes[src:src+n])
		case seqkind.Int:
			copy(s.ints[dst:dst+n], s.ints[src:src+n])
		case seqkind.Long:
			copy(s.longs[dst:dst+n], s.longs[src:src+n])
		case seqkind.Double:
			copy(s.doubles[dst:dst+n], s.doubles[src:src+n])
		default:
			copy(s.objects[dst:dst+n], s.objects[src:src+n])
		}
		return nil
	}

	move := func(i int) error {
		v, err := s.load(src + i)
		if err != nil {
			return err
		}
		return storeValue(s, dst+i, v)
	}

	if dst < src {
		for i := 0; i < n; i++ {
			if err := move(i); err != nil {
				return err
			}
		}
	} else {
		for i := n - 1; i >= 0; i-- {
			if err := move(i); err != nil {
				return err
			}
		}
	}
	return nil
}

// storeValue stores a decoded element of s at i.
func storeValue(s *Storage, i int, v Value) error {
	elem, err := coerce(s.kind, v, false)
	if err != nil {
		return err
	}
	return s.store(i, elem)
}
