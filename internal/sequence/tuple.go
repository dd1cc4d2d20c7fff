package sequence

import (
	"github.com/inoxlang/seqstore/internal/seqstorage"
)

const (
	S_POP_INDEX_OUT_OF_RANGE = "pop index out of range"
)

// A Tuple is an immutable sequence.
type Tuple struct {
	base
}

func NewTuple(values ...Value) *Tuple {
	return &Tuple{base{storage: seqstorage.FromValues(values)}}
}

func NewTupleFromStorage(s *seqstorage.Storage) *Tuple {
	return &Tuple{base{storage: s}}
}

func (t *Tuple) wrap(s *seqstorage.Storage) Sequence {
	return NewTupleFromStorage(s)
}

func (t *Tuple) GetItem(key Value) (Value, error) {
	return t.getItem(key, seqstorage.TupleNormalizer, t.wrap)
}

func (t *Tuple) Concat(other *Tuple) (*Tuple, error) {
	s, err := concatStorages(t.storage, other.storage)
	if err != nil {
		return nil, err
	}
	return NewTupleFromStorage(s), nil
}

func (t *Tuple) Repeat(times int) (*Tuple, error) {
	s, err := seqstorage.Repeat(t.storage, times)
	if err != nil {
		return nil, err
	}
	return NewTupleFromStorage(s), nil
}

func (t *Tuple) Equal(other Sequence) bool {
	otherTuple, ok := other.(*Tuple)
	return ok && Equal(t, otherTuple)
}
