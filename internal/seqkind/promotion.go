package seqkind

// Generalize returns the smallest kind that can hold both the elements of a storage of kind
// current and v. The integral kinds are ordered Byte < Int < Long; a floating value stored over
// an integral kind yields Double (existing elements are widened). Integral values are never
// converted to floating values: storing one over Double yields Object, as does every other mix.
func Generalize(current Kind, v Value) Kind {
	if Accepts(current, v) {
		return current
	}
	valueKind := KindOf(v)

	switch {
	case current == Object || valueKind == Object:
		return Object
	case current.IsIntegral() && valueKind.IsIntegral():
		return max(current, valueKind)
	case current.IsIntegral() && valueKind == Double:
		return Double
	}
	return Object
}

// Join returns the smallest kind that can hold the elements of two storages of kinds a and b,
// it is used to bring both operands of a concatenation to the same kind.
func Join(a, b Kind) Kind {
	switch {
	case a == b:
		return a
	case a == Object || b == Object:
		return Object
	case a.IsIntegral() && b.IsIntegral():
		return max(a, b)
	case a == Double && b.IsIntegral(), b == Double && a.IsIntegral():
		return Double
	}
	return Object
}
