package sequence

import (
	"fmt"

	"github.com/inoxlang/seqstore/internal/seqkind"
	"github.com/inoxlang/seqstore/internal/seqstorage"
)

// A List is a mutable sequence whose storage is generalized when an incompatible value is
// stored.
type List struct {
	base
}

func NewList(values ...Value) *List {
	return &List{base{storage: seqstorage.FromValues(values)}}
}

// NewListWithKind returns an empty list whose storage has the given kind and capacity.
func NewListWithKind(kind seqkind.Kind, capacity int) *List {
	return &List{base{storage: seqstorage.NewEmpty(kind, capacity)}}
}

func NewListFromStorage(s *seqstorage.Storage) *List {
	return &List{base{storage: s}}
}

func (l *List) wrap(s *seqstorage.Storage) Sequence {
	return NewListFromStorage(s)
}

// GetItem returns the element at index key or a new *List if key is a slice.
func (l *List) GetItem(key Value) (Value, error) {
	return l.getItem(key, seqstorage.ListNormalizer, l.wrap)
}

// SetItem stores value at index key, if key is a slice value should be a Sequence or a []Value.
func (l *List) SetItem(key Value, value Value) error {
	return l.setItem(key, value, seqstorage.ListAssignNormalizer, seqstorage.ListGeneralization{})
}

func (l *List) DelItem(key Value) error {
	return l.delItem(key, seqstorage.ListAssignNormalizer)
}

func (l *List) Append(v Value) error {
	return l.replace(seqstorage.Append(l.storage, v, seqstorage.ListGeneralization{}))
}

// Extend appends the elements of iterable, a Sequence or a []Value.
func (l *List) Extend(iterable Value) error {
	values, err := valuesOf(iterable)
	if err != nil {
		return err
	}
	return l.replace(seqstorage.Extend(l.storage, values, seqstorage.ListGeneralization{}))
}

func (l *List) Insert(index int, v Value) error {
	return l.replace(seqstorage.Insert(l.storage, index, v, seqstorage.ListGeneralization{}))
}

// Pop removes and returns the element at index, -1 is the last element.
func (l *List) Pop(index Value) (Value, error) {
	return l.pop(index, seqstorage.NewIndexNormalizer(S_POP_INDEX_OUT_OF_RANGE, true))
}

func (l *List) Clear() error {
	return seqstorage.Clear(l.storage)
}

func (l *List) Reverse() error {
	return seqstorage.Reverse(l.storage)
}

// Concat returns a new list holding the elements of l followed by the elements of other,
// other can be of any sequence type.
func (l *List) Concat(other Sequence) (*List, error) {
	s, err := concatStorages(l.storage, other.Storage())
	if err != nil {
		return nil, err
	}
	return NewListFromStorage(s), nil
}

func (l *List) Repeat(times int) (*List, error) {
	s, err := seqstorage.Repeat(l.storage, times)
	if err != nil {
		return nil, err
	}
	return NewListFromStorage(s), nil
}

// Equal reports whether other is a list with equal elements.
func (l *List) Equal(other Sequence) bool {
	otherList, ok := other.(*List)
	return ok && Equal(l, otherList)
}

func valuesOf(iterable Value) ([]Value, error) {
	switch it := iterable.(type) {
	case Sequence:
		return seqstorage.Values(it.Storage())
	case []Value:
		return it, nil
	}
	return nil, fmt.Errorf("%w: %T", ErrNotASequence, iterable)
}
