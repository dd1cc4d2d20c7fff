package seqstorage

import (
	"bytes"

	"github.com/bits-and-blooms/bitset"
	"github.com/inoxlang/seqstore/internal/seqkind"
)

const TRANSLATION_TABLE_LENGTH = 256

// ToByteArray returns the elements of a storage of kind Byte. If exact is false and s is managed
// the returned slice is the backing array of s, otherwise it is a copy.
func ToByteArray(s *Storage, exact bool) ([]byte, error) {
	if s.kind != seqkind.Byte {
		return nil, newError(TypeError, S_EXPECTED_BYTES_LIKE)
	}

	if s.native == nil {
		if !exact {
			return s.bytes[:s.length], nil
		}
		return cloneArray(s.bytes[:s.length]).([]byte), nil
	}

	array, err := typedElements(s)
	if err != nil {
		return nil, err
	}
	return array.([]byte), nil
}

// Translate returns a new storage of kind Byte, in the same location as s, where each byte b of
// s is replaced by table[b] and the bytes in deleteBytes are removed. A nil table is the identity.
func Translate(s *Storage, table []byte, deleteBytes []byte) (*Storage, error) {
	if table != nil && len(table) != TRANSLATION_TABLE_LENGTH {
		return nil, newError(ValueError, S_TRANSLATION_TABLE_LENGTH)
	}

	input, err := ToByteArray(s, false)
	if err != nil {
		return nil, err
	}

	deleted := bitset.New(TRANSLATION_TABLE_LENGTH)
	for _, b := range deleteBytes {
		deleted.Set(uint(b))
	}

	output := make([]byte, 0, len(input))
	for _, b := range input {
		if deleted.Test(uint(b)) {
			continue
		}
		if table != nil {
			b = table[b]
		}
		output = append(output, b)
	}

	return rebuild(s, output, len(output)), nil
}

// ByteSubsequence returns the bytes denoted by sub: the elements of a storage of kind Byte,
// a copy of a []byte, or a single byte for an integral value.
func ByteSubsequence(sub Value) ([]byte, error) {
	switch v := sub.(type) {
	case *Storage:
		if v == nil {
			break
		}
		return ToByteArray(v, true)
	case []byte:
		return bytes.Clone(v), nil
	default:
		if _, isBool := sub.(bool); isBool || seqkind.IsIntegral(sub) {
			b, err := CastToByte(sub)
			if err != nil {
				return nil, err
			}
			return []byte{b}, nil
		}
	}
	return nil, newError(TypeError, S_EXPECTED_BYTES_LIKE)
}

// CountBytes returns the number of non-overlapping occurrences of sub in s, an empty sub occurs
// before each byte and at the end.
func CountBytes(s *Storage, sub Value) (int, error) {
	haystack, needle, err := byteOperands(s, sub)
	if err != nil {
		return 0, err
	}
	if len(needle) == 0 {
		return len(haystack) + 1, nil
	}
	return bytes.Count(haystack, needle), nil
}

// FindBytes returns the index of the first occurrence of sub in s, or -1.
func FindBytes(s *Storage, sub Value) (int, error) {
	haystack, needle, err := byteOperands(s, sub)
	if err != nil {
		return 0, err
	}
	return bytes.Index(haystack, needle), nil
}

// IndexBytes is like FindBytes but a missing sub is a ValueError.
func IndexBytes(s *Storage, sub Value) (int, error) {
	index, err := FindBytes(s, sub)
	if err != nil {
		return 0, err
	}
	if index < 0 {
		return 0, newError(ValueError, S_SUBSECTION_NOT_FOUND)
	}
	return index, nil
}

func HasBytePrefix(s *Storage, prefix Value) (bool, error) {
	haystack, needle, err := byteOperands(s, prefix)
	if err != nil {
		return false, err
	}
	return bytes.HasPrefix(haystack, needle), nil
}

func HasByteSuffix(s *Storage, suffix Value) (bool, error) {
	haystack, needle, err := byteOperands(s, suffix)
	if err != nil {
		return false, err
	}
	return bytes.HasSuffix(haystack, needle), nil
}

// JoinBytes returns a new managed storage of kind Byte with the elements of items separated by
// the elements of sep. Every item must have the kind Byte.
func JoinBytes(sep *Storage, items []*Storage) (*Storage, error) {
	separator, err := ToByteArray(sep, false)
	if err != nil {
		return nil, err
	}

	parts := make([][]byte, len(items))
	length := 0
	for i, item := range items {
		if item == nil || item.kind != seqkind.Byte {
			found := "nil"
			if item != nil {
				found = item.kind.String()
			}
			return nil, newError(TypeError, S_JOIN_ITEM_NOT_BYTES, i, found)
		}

		part, err := ToByteArray(item, false)
		if err != nil {
			return nil, err
		}
		parts[i] = part

		length += len(part)
		if i > 0 {
			length += len(separator)
		}
		if length > MaxLength {
			return nil, newError(ValueError, S_SEQUENCE_TOO_LONG)
		}
	}

	return NewBytes(bytes.Join(parts, separator)), nil
}

func byteOperands(s *Storage, sub Value) (haystack, needle []byte, err error) {
	haystack, err = ToByteArray(s, false)
	if err != nil {
		return nil, nil, err
	}
	needle, err = ByteSubsequence(sub)
	if err != nil {
		return nil, nil, err
	}
	return haystack, needle, nil
}
