package seqstorage

// GetItem returns the element at index key, or a new storage if key is a Slice.
func GetItem(s *Storage, key Value, normalizer IndexNormalizer) (Value, error) {
	if slice, ok := AsSlice(key); ok {
		info, err := slice.Indices(s.length)
		if err != nil {
			return nil, err
		}
		return GetItemSlice(s, info)
	}

	index, err := normalizer.Normalize(key, s.length)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= s.length {
		return nil, normalizer.outOfRange()
	}
	return GetItemScalar(s, index)
}

// SetItem stores value at index key, or assigns the elements of value (a *Storage or a []Value)
// to the slice key. The returned storage replaces s if s has been generalized or resized.
// On error s is returned unmodified.
func SetItem(s *Storage, key Value, value Value, normalizer IndexNormalizer, gen Generalizer) (*Storage, error) {
	if slice, ok := AsSlice(key); ok {
		info, err := slice.Indices(s.length)
		if err != nil {
			return s, err
		}

		values, err := valuesToAssign(value)
		if err != nil {
			return s, err
		}
		return SetItemSlice(s, info, values, gen)
	}

	index, err := normalizer.Normalize(key, s.length)
	if err != nil {
		return s, err
	}
	if index < 0 || index >= s.length {
		return s, normalizer.outOfRange()
	}

	target, err := ensureAccepts(s, value, gen)
	if err != nil {
		return s, err
	}

	if err := SetItemScalar(target, index, value); err != nil {
		discard(target, s)
		return s, err
	}
	return target, nil
}

// AsSlice returns the slice denoted by key, a Slice or a non-nil *Slice.
func AsSlice(key Value) (Slice, bool) {
	switch k := key.(type) {
	case Slice:
		return k, true
	case *Slice:
		if k != nil {
			return *k, true
		}
	}
	return Slice{}, false
}

func valuesToAssign(value Value) ([]Value, error) {
	switch v := value.(type) {
	case *Storage:
		return Values(v)
	case []Value:
		return v, nil
	case []byte:
		values := make([]Value, len(v))
		for i, b := range v {
			values[i] = int(b)
		}
		return values, nil
	}
	return nil, newError(TypeError, S_CAN_ONLY_ASSIGN_ITERABLE)
}
