package seqstorage

import (
	"github.com/inoxlang/seqstore/internal/seqkind"
)

// VerifyNativeItem checks that raw, a value read from a foreign buffer, has the type of the
// elements of kind and decodes it. Bytes are read as signed 8-bit values and are decoded to
// their unsigned value. A mismatch means that foreign code broke the layout of the buffer,
// a SystemError is returned.
func VerifyNativeItem(kind seqkind.Kind, raw any) (Value, error) {
	switch kind {
	case seqkind.Byte:
		if b, ok := raw.(int8); ok {
			return int(uint8(b)), nil
		}
	case seqkind.Int:
		if i, ok := raw.(int32); ok {
			return i, nil
		}
	case seqkind.Long:
		if l, ok := raw.(int64); ok {
			return l, nil
		}
	case seqkind.Double:
		if d, ok := raw.(float64); ok {
			return d, nil
		}
	case seqkind.Object:
		if o, ok := raw.(seqkind.Opaque); ok {
			return o.Value, nil
		}
	}
	return nil, newError(SystemError, S_INVALID_NATIVE_ITEM, raw, kind)
}

// toRaw converts an element returned by coerce to the value written in foreign memory.
func toRaw(kind seqkind.Kind, elem any) any {
	switch kind {
	case seqkind.Byte:
		return int8(elem.(byte))
	case seqkind.Object:
		return seqkind.Opaque{Value: elem}
	default:
		return elem
	}
}
