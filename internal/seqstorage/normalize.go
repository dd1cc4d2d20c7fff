package seqstorage

import (
	"math"
	"math/big"

	"github.com/inoxlang/seqstore/internal/seqkind"
)

const (
	S_INDEX_OUT_OF_RANGE                  = "index out of range"
	S_LIST_INDEX_OUT_OF_RANGE             = "list index out of range"
	S_LIST_ASSIGNMENT_INDEX_OUT_OF_RANGE  = "list assignment index out of range"
	S_TUPLE_INDEX_OUT_OF_RANGE            = "tuple index out of range"
	S_ARRAY_INDEX_OUT_OF_RANGE            = "array index out of range"
	S_ARRAY_ASSIGNMENT_INDEX_OUT_OF_RANGE = "array assignment index out of range"
	S_BYTEARRAY_INDEX_OUT_OF_RANGE        = "bytearray index out of range"
	S_RANGE_INDEX_OUT_OF_RANGE            = "range index out of range"
)

var (
	DefaultNormalizer = NewIndexNormalizer(S_INDEX_OUT_OF_RANGE, true)

	ListNormalizer           = NewIndexNormalizer(S_LIST_INDEX_OUT_OF_RANGE, true)
	ListAssignNormalizer     = NewIndexNormalizer(S_LIST_ASSIGNMENT_INDEX_OUT_OF_RANGE, true)
	TupleNormalizer          = NewIndexNormalizer(S_TUPLE_INDEX_OUT_OF_RANGE, true)
	ArrayNormalizer          = NewIndexNormalizer(S_ARRAY_INDEX_OUT_OF_RANGE, true)
	ArrayAssignNormalizer    = NewIndexNormalizer(S_ARRAY_ASSIGNMENT_INDEX_OUT_OF_RANGE, true)
	BytearrayNormalizer      = NewIndexNormalizer(S_BYTEARRAY_INDEX_OUT_OF_RANGE, true)
	RangeNormalizer          = NewIndexNormalizer(S_RANGE_INDEX_OUT_OF_RANGE, true)
	UncheckedIndexNormalizer = NewIndexNormalizer(S_INDEX_OUT_OF_RANGE, false)
)

// An IndexNormalizer converts a possibly negative index into an offset for a given length.
// Negative indexes are relative to the end of the sequence. If bounds checking is enabled
// an offset outside of [0, length) is an IndexError carrying the message of the normalizer.
type IndexNormalizer struct {
	message     string
	boundsCheck bool
}

func NewIndexNormalizer(message string, boundsCheck bool) IndexNormalizer {
	return IndexNormalizer{message: message, boundsCheck: boundsCheck}
}

func (n IndexNormalizer) Message() string {
	if n.message == "" {
		return S_INDEX_OUT_OF_RANGE
	}
	return n.message
}

func (n IndexNormalizer) BoundsCheck() bool {
	return n.boundsCheck
}

func (n IndexNormalizer) outOfRange() *Error {
	return newError(IndexError, n.Message())
}

func (n IndexNormalizer) NormalizeInt32(index int32, length int) (int, error) {
	offset := int(index)
	if offset < 0 {
		offset += length
	}

	if n.boundsCheck && (offset < 0 || offset >= length) {
		return 0, n.outOfRange()
	}
	return offset, nil
}

// NormalizeInt64 narrows index to 32 bits before normalizing it, an index that does not fit
// is out of range whatever the value of boundsCheck.
func (n IndexNormalizer) NormalizeInt64(index int64, length int) (int, error) {
	if index < math.MinInt32 || index > math.MaxInt32 {
		return 0, n.outOfRange()
	}
	return n.NormalizeInt32(int32(index), length)
}

// NormalizeBig is the arbitrary-precision version of NormalizeInt64.
func (n IndexNormalizer) NormalizeBig(index *big.Int, length int) (int, error) {
	if !index.IsInt64() {
		return 0, n.outOfRange()
	}
	return n.NormalizeInt64(index.Int64(), length)
}

// Normalize normalizes an index of any integral type, booleans are treated as 0 and 1.
func (n IndexNormalizer) Normalize(index Value, length int) (int, error) {
	switch i := index.(type) {
	case int32:
		return n.NormalizeInt32(i, length)
	case *big.Int:
		if i == nil {
			break
		}
		return n.NormalizeBig(i, length)
	case bool:
		if i {
			return n.NormalizeInt32(1, length)
		}
		return n.NormalizeInt32(0, length)
	default:
		if i, ok := seqkind.AsInt64(index); ok {
			return n.NormalizeInt64(i, length)
		}
		if seqkind.IsIntegral(index) {
			//unsigned value above math.MaxInt64
			return 0, n.outOfRange()
		}
	}
	return 0, newError(TypeError, S_INDICES_MUST_BE_INTEGERS, index)
}
