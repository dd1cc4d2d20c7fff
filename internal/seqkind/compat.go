package seqkind

import (
	"math"
	"math/big"
)

// AsInt64 returns v as an int64 if v is an integral value that fits in 64 bits.
// Booleans are not considered integral.
func AsInt64(v Value) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		if uint64(n) > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case *big.Int:
		if n == nil || !n.IsInt64() {
			return 0, false
		}
		return n.Int64(), true
	}
	return 0, false
}

// IsIntegral reports whether v is an integral value of any width.
func IsIntegral(v Value) bool {
	switch n := v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return true
	case *big.Int:
		return n != nil
	}
	return false
}

// AsFloat64 returns v as a float64 if v is a floating value.
func AsFloat64(v Value) (float64, bool) {
	switch f := v.(type) {
	case float64:
		return f, true
	case float32:
		return float64(f), true
	}
	return 0, false
}

func IsFloating(v Value) bool {
	_, ok := AsFloat64(v)
	return ok
}

// Accepts reports whether v can be stored into a storage of kind k without promotion.
func Accepts(k Kind, v Value) bool {
	switch k {
	case Byte:
		n, ok := AsInt64(v)
		return ok && n >= 0 && n <= math.MaxUint8
	case Int:
		n, ok := AsInt64(v)
		return ok && n >= math.MinInt32 && n <= math.MaxInt32
	case Long:
		_, ok := AsInt64(v)
		return ok
	case Double:
		return IsFloating(v)
	case Object:
		return true
	}
	return false
}

// KindOf returns the smallest kind that accepts v.
func KindOf(v Value) Kind {
	for _, k := range [...]Kind{Byte, Int, Long, Double} {
		if Accepts(k, v) {
			return k
		}
	}
	return Object
}

// ExactFloat64 reports whether n converts to a float64 without loss.
func ExactFloat64(n int64) bool {
	const maxExact = 1 << 53
	return n >= -maxExact && n <= maxExact
}
