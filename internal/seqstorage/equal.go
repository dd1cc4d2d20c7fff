package seqstorage

import (
	"math/big"
	"reflect"

	"github.com/inoxlang/seqstore/internal/seqkind"
)

// Equal reports whether two storages have the same kind and equal elements, it never fails:
// storages of different kinds are not equal and an error while reading a foreign element makes
// the storages unequal. Two empty storages are always equal.
func Equal(left, right *Storage) bool {
	if left.length == 0 && right.length == 0 {
		return true
	}
	if left.length != right.length || left.kind != right.kind {
		return false
	}
	if left == right {
		return true
	}

	if left.native == nil && right.native == nil {
		switch left.kind {
		case seqkind.Byte:
			return arrayEqual(left.bytes[:left.length], right.bytes[:right.length])
		case seqkind.Int:
			return arrayEqual(left.ints[:left.length], right.ints[:right.length])
		case seqkind.Long:
			return arrayEqual(left.longs[:left.length], right.longs[:right.length])
		case seqkind.Double:
			return floatArrayEqual(left.doubles[:left.length], right.doubles[:right.length])
		}
	}

	for i := 0; i < left.length; i++ {
		l, err := left.load(i)
		if err != nil {
			return false
		}
		r, err := right.load(i)
		if err != nil {
			return false
		}
		if !ValuesEqual(l, r) {
			return false
		}
	}
	return true
}

// An Equatable value defines its own equality.
type Equatable interface {
	Equal(other Value) bool
}

// ValuesEqual reports whether two element values are equal: numeric values are compared by
// value whatever their Go type, floating NaNs are equal to themselves.
func ValuesEqual(a, b Value) bool {
	if eq, ok := a.(Equatable); ok {
		return eq.Equal(b)
	}
	if eq, ok := b.(Equatable); ok {
		return eq.Equal(a)
	}

	if equal, ok := numericEqual(a, b); ok {
		return equal
	}

	if a == nil || b == nil {
		return a == nil && b == nil
	}

	typeA, typeB := reflect.TypeOf(a), reflect.TypeOf(b)
	if typeA == typeB && typeA.Comparable() {
		return comparableEqual(a, b)
	}
	return reflect.DeepEqual(a, b)
}

// comparableEqual compares two values of the same comparable type with ==, values of types such
// as structs with interface fields are deeply compared if == panics.
func comparableEqual(a, b Value) (equal bool) {
	defer func() {
		if recover() != nil {
			equal = reflect.DeepEqual(a, b)
		}
	}()
	return a == b
}

func numericEqual(a, b Value) (equal bool, ok bool) {
	fa, aIsFloat := seqkind.AsFloat64(a)
	fb, bIsFloat := seqkind.AsFloat64(b)

	switch {
	case aIsFloat && bIsFloat:
		return fa == fb || (fa != fa && fb != fb), true
	case aIsFloat && seqkind.IsIntegral(b):
		return integralEqualsFloat(b, fa), true
	case bIsFloat && seqkind.IsIntegral(a):
		return integralEqualsFloat(a, fb), true
	case seqkind.IsIntegral(a) && seqkind.IsIntegral(b):
		return toBig(a).Cmp(toBig(b)) == 0, true
	}
	return false, false
}

func integralEqualsFloat(n Value, f float64) bool {
	if f != f {
		return false
	}
	bf := new(big.Float).SetInt(toBig(n))
	return bf.Cmp(big.NewFloat(f)) == 0
}

func toBig(n Value) *big.Int {
	if b, ok := n.(*big.Int); ok {
		return b
	}
	if i, ok := seqkind.AsInt64(n); ok {
		return big.NewInt(i)
	}
	//unsigned value above math.MaxInt64
	return new(big.Int).SetUint64(reflect.ValueOf(n).Uint())
}
