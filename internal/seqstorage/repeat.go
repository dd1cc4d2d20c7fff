package seqstorage

import (
	"github.com/inoxlang/seqstore/internal/seqkind"
)

// Repeat returns a new managed storage of the kind of s holding the elements of s repeated
// times times, a negative count is treated as 0.
func Repeat(s *Storage, times int) (*Storage, error) {
	if times <= 0 || s.length == 0 {
		return NewEmpty(s.kind, 0), nil
	}

	if s.length > MaxLength/times {
		return nil, newError(ValueError, S_REPETITION_TOO_LONG)
	}

	var array any
	if s.native == nil {
		array = s.managedArray()
	} else {
		var err error
		array, err = typedElements(s)
		if err != nil {
			return nil, err
		}
	}

	switch s.kind {
	case seqkind.Byte:
		array = repeatArray(array.([]byte), times)
	case seqkind.Int:
		array = repeatArray(array.([]int32), times)
	case seqkind.Long:
		array = repeatArray(array.([]int64), times)
	case seqkind.Double:
		array = repeatArray(array.([]float64), times)
	default:
		array = repeatArray(array.([]Value), times)
	}
	return fromArray(array), nil
}
