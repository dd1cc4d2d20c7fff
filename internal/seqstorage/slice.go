package seqstorage

import (
	"github.com/inoxlang/seqstore/internal/seqkind"
)

// GetItemSlice returns a new storage of the same kind and location as s holding the info.Length
// elements at info.Start, info.Start+info.Step, ... The elements of a foreign source are read
// and verified one by one.
func GetItemSlice(s *Storage, info SliceInfo) (*Storage, error) {
	length := max(info.Length, 0)
	if length > 0 {
		last := info.Start + (length-1)*info.Step
		if info.Start < 0 || info.Start >= s.length || last < 0 || last >= s.length {
			return nil, newError(IndexError, S_INDEX_OUT_OF_RANGE)
		}
	}

	if s.native == nil {
		var array any
		switch s.kind {
		case seqkind.Byte:
			array = stridedCopy(s.bytes, info.Start, info.Step, length)
		case seqkind.Int:
			array = stridedCopy(s.ints, info.Start, info.Step, length)
		case seqkind.Long:
			array = stridedCopy(s.longs, info.Start, info.Step, length)
		case seqkind.Double:
			array = stridedCopy(s.doubles, info.Start, info.Step, length)
		default:
			array = stridedCopy(s.objects, info.Start, info.Step, length)
		}
		return fromArray(array), nil
	}

	tmp := NewEmpty(s.kind, length)
	for i, j := 0, info.Start; i < length; i, j = i+1, j+info.Step {
		v, err := s.load(j)
		if err != nil {
			return nil, err
		}
		elem, err := coerce(s.kind, v, false)
		if err != nil {
			return nil, err
		}
		tmp.storeManaged(i, elem)
	}

	return newNative(s.native.mem, tmp.fullArray(), length), nil
}

// SetItemSlice assigns values to the slice described by info. With a step of 1 the slice is
// replaced by the values and the storage is rebuilt if its length changes. Otherwise the number
// of values must be equal to the length of the slice.
//
// The values are all converted before s is modified: if an error is returned s is unmodified.
// The returned storage replaces s.
func SetItemSlice(s *Storage, info SliceInfo, values []Value, gen Generalizer) (*Storage, error) {
	if info.Step != 1 && len(values) != info.Length {
		return s, newError(ValueError, FormatExtendedSliceSizeMismatch(len(values), info.Length))
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

	if info.Step != 1 || len(values) == info.Length {
		for i, j := 0, info.Start; i < len(elems); i, j = i+1, j+info.Step {
			if err := target.store(j, elems[i]); err != nil {
				discard(target, s)
				return s, err
			}
		}
		return target, nil
	}

	//step 1 and length change: the storage is rebuilt.

	start := min(max(info.Start, 0), target.length)
	stop := max(start, min(info.Stop, target.length))
	newLength := target.length - (stop - start) + len(elems)
	if newLength > MaxLength {
		discard(target, s)
		return s, newError(ValueError, S_SEQUENCE_TOO_LONG)
	}

	tmp := NewEmpty(target.kind, newLength)
	for i := 0; i < start; i++ {
		if err := copyElement(tmp, i, target, i); err != nil {
			discard(target, s)
			return s, err
		}
	}
	for i, elem := range elems {
		tmp.storeManaged(start+i, elem)
	}
	for i := stop; i < target.length; i++ {
		if err := copyElement(tmp, i-stop+start+len(elems), target, i); err != nil {
			discard(target, s)
			return s, err
		}
	}
	tmp.length = newLength

	result := tmp
	if target.native != nil {
		result = newNative(target.native.mem, tmp.fullArray(), newLength)
	}
	discard(target, s)
	return result, nil
}

// copyElement copies the element at srcIndex of src to the managed storage dst.
func copyElement(dst *Storage, dstIndex int, src *Storage, srcIndex int) error {
	if src.native == nil {
		dst.storeManaged(dstIndex, managedElement(src, srcIndex))
		return nil
	}

	v, err := src.load(srcIndex)
	if err != nil {
		return err
	}
	elem, err := coerce(dst.kind, v, false)
	if err != nil {
		return err
	}
	dst.storeManaged(dstIndex, elem)
	return nil
}

// managedElement returns the undecoded element at i of a managed storage.
func managedElement(s *Storage, i int) any {
	switch s.kind {
	case seqkind.Byte:
		return s.bytes[i]
	case seqkind.Int:
		return s.ints[i]
	case seqkind.Long:
		return s.longs[i]
	case seqkind.Double:
		return s.doubles[i]
	default:
		return s.objects[i]
	}
}
