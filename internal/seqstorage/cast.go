package seqstorage

import (
	"math"

	"github.com/inoxlang/seqstore/internal/seqkind"
)

// CastToByte converts v to a byte, booleans are converted to 0 and 1.
func CastToByte(v Value) (byte, error) {
	if b, ok := v.(bool); ok {
		if b {
			return 1, nil
		}
		return 0, nil
	}

	n, ok := seqkind.AsInt64(v)
	if !ok {
		if seqkind.IsIntegral(v) {
			return 0, newError(ValueError, S_BYTE_OUT_OF_RANGE)
		}
		return 0, newError(TypeError, S_INTEGER_REQUIRED)
	}
	if n < 0 || n > math.MaxUint8 {
		return 0, newError(ValueError, S_BYTE_OUT_OF_RANGE)
	}
	return byte(n), nil
}

// coerce converts v to the element type of kind: byte, int32, int64, float64 or Value.
// Booleans are accepted by integral kinds. If widen is true integral values are accepted by
// Double, a value that does not fit in 64 bits is never accepted.
func coerce(kind seqkind.Kind, v Value, widen bool) (any, error) {
	switch kind {
	case seqkind.Byte:
		return CastToByte(v)
	case seqkind.Int, seqkind.Long:
		n, ok := asIntegral(v)
		if !ok {
			if seqkind.IsIntegral(v) {
				return nil, newError(ValueError, S_VALUE_OUT_OF_RANGE, kind)
			}
			return nil, newError(TypeError, S_KIND_REQUIRED, kind, v)
		}
		if kind == seqkind.Long {
			return n, nil
		}
		if n < math.MinInt32 || n > math.MaxInt32 {
			return nil, newError(ValueError, S_VALUE_OUT_OF_RANGE, kind)
		}
		return int32(n), nil
	case seqkind.Double:
		if f, ok := seqkind.AsFloat64(v); ok {
			return f, nil
		}
		if widen {
			if n, ok := seqkind.AsInt64(v); ok {
				return float64(n), nil
			}
		}
		return nil, newError(TypeError, S_KIND_REQUIRED, kind, v)
	case seqkind.Object:
		return v, nil
	}
	return nil, seqkind.ErrUnknownKind
}

func asIntegral(v Value) (int64, bool) {
	if b, ok := v.(bool); ok {
		if b {
			return 1, true
		}
		return 0, true
	}
	return seqkind.AsInt64(v)
}
