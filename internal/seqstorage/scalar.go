package seqstorage

// GetItemScalar returns the element at a normalized index, elements of foreign storages
// are verified. An index out of range is an IndexError with the generic S_INDEX_OUT_OF_RANGE
// message; GetItem reports the message of its normalizer instead.
func GetItemScalar(s *Storage, index int) (Value, error) {
	if index < 0 || index >= s.length {
		return nil, newError(IndexError, S_INDEX_OUT_OF_RANGE)
	}
	return s.load(index)
}

// SetItemScalar stores v at a normalized index without generalizing the storage, a value not
// accepted by the kind of s is a ValueError (out of range) or a TypeError. The storage is not
// modified if an error is returned. As in GetItemScalar an index out of range is reported with
// the generic message.
func SetItemScalar(s *Storage, index int, v Value) error {
	if index < 0 || index >= s.length {
		return newError(IndexError, S_INDEX_OUT_OF_RANGE)
	}

	elem, err := coerce(s.kind, v, false)
	if err != nil {
		return err
	}
	return s.store(index, elem)
}
