package sequence

import (
	"errors"

	"github.com/inoxlang/seqstore/internal/seqkind"
	"github.com/inoxlang/seqstore/internal/seqstorage"
)

var (
	_ = []Sequence{(*List)(nil), (*Tuple)(nil), (*Bytes)(nil), (*ByteArray)(nil)}
	_ = []seqstorage.Owner{(*List)(nil), (*Tuple)(nil), (*Bytes)(nil), (*ByteArray)(nil)}

	ErrNotASequence = errors.New("not a sequence")
)

type Value = seqkind.Value

// A Sequence is a sequence object owning a storage.
type Sequence interface {
	seqstorage.Owner
	Len() int
	Equal(other Sequence) bool
}

// base implements the storage ownership of all sequence objects. A base exclusively owns its
// storage: the foreign buffer of a replaced storage is released.
type base struct {
	storage *seqstorage.Storage
}

func (b *base) Storage() *seqstorage.Storage {
	return b.storage
}

func (b *base) SetStorage(s *seqstorage.Storage) {
	prev := b.storage
	b.storage = s

	if prev == nil || prev == s || !prev.IsNative() {
		return
	}
	if s.IsNative() && s.Native() == prev.Native() {
		return
	}
	prev.Native().Release()
}

func (b *base) Len() int {
	return b.storage.Len()
}

func (b *base) Kind() seqkind.Kind {
	return b.storage.Kind()
}

func (b *base) Values() ([]Value, error) {
	return seqstorage.Values(b.storage)
}

// Release releases the foreign buffer of the sequence, if any. The sequence should not be
// used afterwards.
func (b *base) Release() error {
	if buf := b.storage.Native(); buf != nil {
		return buf.Release()
	}
	return nil
}

func (b *base) String() string {
	return b.storage.String()
}

// replace sets the storage returned by an operation, if the operation failed the storage is
// not replaced.
func (b *base) replace(s *seqstorage.Storage, err error) error {
	if err != nil {
		return err
	}
	b.SetStorage(s)
	return nil
}

func (b *base) getItem(key Value, normalizer seqstorage.IndexNormalizer, wrap func(*seqstorage.Storage) Sequence) (Value, error) {
	v, err := seqstorage.GetItem(b.storage, key, normalizer)
	if err != nil {
		return nil, err
	}
	if s, ok := v.(*seqstorage.Storage); ok {
		return wrap(s), nil
	}
	return v, nil
}

func (b *base) setItem(key Value, value Value, normalizer seqstorage.IndexNormalizer, gen seqstorage.Generalizer) error {
	if seq, ok := value.(Sequence); ok {
		value = seq.Storage()
	}
	return b.replace(seqstorage.SetItem(b.storage, key, value, normalizer, gen))
}

func (b *base) delItem(key Value, normalizer seqstorage.IndexNormalizer) error {
	slice, ok := seqstorage.AsSlice(key)
	if !ok {
		index, err := normalizer.Normalize(key, b.storage.Len())
		if err != nil {
			return err
		}
		return seqstorage.DeleteItem(b.storage, index)
	}

	info, err := slice.Indices(b.storage.Len())
	if err != nil {
		return err
	}
	return seqstorage.DeleteSlice(b.storage, info)
}

func (b *base) pop(index Value, normalizer seqstorage.IndexNormalizer) (Value, error) {
	if b.storage.Len() == 0 {
		return seqstorage.Pop(b.storage, 0)
	}
	i, err := normalizer.Normalize(index, b.storage.Len())
	if err != nil {
		return nil, err
	}
	return seqstorage.Pop(b.storage, i)
}

// Equal reports whether two sequences have equal elements, unlike seqstorage.Equal elements of
// storages of different kinds are compared by value.
func Equal(a, b Sequence) bool {
	left, right := a.Storage(), b.Storage()
	if left.Len() != right.Len() {
		return false
	}
	if left.Kind() == right.Kind() {
		return seqstorage.Equal(left, right)
	}

	leftValues, err := seqstorage.Values(left)
	if err != nil {
		return false
	}
	rightValues, err := seqstorage.Values(right)
	if err != nil {
		return false
	}
	for i, v := range leftValues {
		if !seqstorage.ValuesEqual(v, rightValues[i]) {
			return false
		}
	}
	return true
}

// concatStorages concatenates two storages of possibly different kinds, both operands are
// generalized to a common kind first.
func concatStorages(left, right *seqstorage.Storage) (*seqstorage.Storage, error) {
	target := seqstorage.JoinTarget(left, right)

	generalizedLeft, err := generalizeOperand(left, target)
	if err != nil {
		return nil, err
	}
	defer releaseOperand(generalizedLeft, left)

	generalizedRight, err := generalizeOperand(right, target)
	if err != nil {
		return nil, err
	}
	defer releaseOperand(generalizedRight, right)

	return seqstorage.Concat(generalizedLeft, generalizedRight)
}

func generalizeOperand(s *seqstorage.Storage, target seqkind.Kind) (*seqstorage.Storage, error) {
	if s.Len() == 0 || s.Kind() == target {
		return s, nil
	}
	return seqstorage.Generalized(s, target)
}

func releaseOperand(generalized, original *seqstorage.Storage) {
	if generalized != original && generalized.IsNative() {
		generalized.Native().Release()
	}
}

// Materialize makes the storage of seq foreign, see seqstorage.Materialize.
func Materialize(seq Sequence, mem seqstorage.Memory) *seqstorage.NativeBuffer {
	return seqstorage.Materialize(seq, mem)
}
