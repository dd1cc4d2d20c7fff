package seqstorage

import (
	"github.com/inoxlang/seqstore/internal/seqkind"
)

// Concat returns a new managed storage holding the elements of left followed by the elements of
// right. Both storages must have the same kind, an empty storage is compatible with any kind.
// Concat never generalizes: storages of different kinds are a TypeError.
func Concat(left, right *Storage) (*Storage, error) {
	kind := left.kind
	switch {
	case left.kind == right.kind:
	case left.length == 0:
		kind = right.kind
	case right.length == 0:
	default:
		return nil, newError(TypeError, S_CANNOT_CONCATENATE)
	}

	if left.length > MaxLength-right.length {
		return nil, newError(ValueError, S_CONCATENATION_TOO_LONG)
	}

	if left.native == nil && right.native == nil && left.kind == right.kind {
		var array any
		switch kind {
		case seqkind.Byte:
			array = concatArrays(left.bytes[:left.length], right.bytes[:right.length])
		case seqkind.Int:
			array = concatArrays(left.ints[:left.length], right.ints[:right.length])
		case seqkind.Long:
			array = concatArrays(left.longs[:left.length], right.longs[:right.length])
		case seqkind.Double:
			array = concatArrays(left.doubles[:left.length], right.doubles[:right.length])
		default:
			array = concatArrays(left.objects[:left.length], right.objects[:right.length])
		}
		return fromArray(array), nil
	}

	//at least one operand is foreign: elements are copied one by one.

	result := NewEmpty(kind, left.length+right.length)
	for i := 0; i < left.length; i++ {
		if err := copyElement(result, i, left, i); err != nil {
			return nil, err
		}
	}
	for i := 0; i < right.length; i++ {
		if err := copyElement(result, left.length+i, right, i); err != nil {
			return nil, err
		}
	}
	result.length = left.length + right.length
	return result, nil
}
