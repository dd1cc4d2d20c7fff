package sequence

import (
	"fmt"

	"github.com/inoxlang/seqstore/internal/seqstorage"
	"github.com/inoxlang/seqstore/internal/utils"
)

// byteSequence implements the operations shared by Bytes and ByteArray, their storage
// always has the kind Byte.
type byteSequence struct {
	base
}

// Bytes returns a copy of the bytes of the sequence.
func (b *byteSequence) Bytes() ([]byte, error) {
	return seqstorage.ToByteArray(b.storage, true)
}

// Count returns the number of non-overlapping occurrences of sub, a byte sequence or a byte.
func (b *byteSequence) Count(sub Value) (int, error) {
	return seqstorage.CountBytes(b.storage, byteOperand(sub))
}

// Find returns the index of the first occurrence of sub, or -1.
func (b *byteSequence) Find(sub Value) (int, error) {
	return seqstorage.FindBytes(b.storage, byteOperand(sub))
}

// Index is like Find but a missing sub is a ValueError.
func (b *byteSequence) Index(sub Value) (int, error) {
	return seqstorage.IndexBytes(b.storage, byteOperand(sub))
}

func (b *byteSequence) StartsWith(prefix Value) (bool, error) {
	return seqstorage.HasBytePrefix(b.storage, byteOperand(prefix))
}

func (b *byteSequence) EndsWith(suffix Value) (bool, error) {
	return seqstorage.HasByteSuffix(b.storage, byteOperand(suffix))
}

func (b *byteSequence) join(items []Sequence) (*seqstorage.Storage, error) {
	storages := make([]*seqstorage.Storage, len(items))
	for i, item := range items {
		if !isByteSequence(item) {
			return nil, fmt.Errorf("%w: sequence item %d: expected a bytes-like object, %T found", seqstorage.TypeError, i, item)
		}
		storages[i] = item.Storage()
	}
	return seqstorage.JoinBytes(b.storage, storages)
}

// byteOperand returns the storage of a byte sequence, other values are returned unchanged.
func byteOperand(v Value) Value {
	if isByteSequence(v) {
		return v.(Sequence).Storage()
	}
	return v
}

// Bytes is an immutable sequence of bytes.
type Bytes struct {
	byteSequence
}

// NewBytes returns a Bytes holding a copy of b.
func NewBytes(b []byte) *Bytes {
	return NewBytesFromStorage(seqstorage.NewBytes(utils.CopySlice(b)))
}

func NewBytesFromStorage(s *seqstorage.Storage) *Bytes {
	return &Bytes{byteSequence{base{storage: s}}}
}

func (b *Bytes) wrap(s *seqstorage.Storage) Sequence {
	return NewBytesFromStorage(s)
}

// GetItem returns the byte at index key as an int or a new *Bytes if key is a slice.
func (b *Bytes) GetItem(key Value) (Value, error) {
	return b.getItem(key, seqstorage.DefaultNormalizer, b.wrap)
}

func (b *Bytes) Concat(other Sequence) (*Bytes, error) {
	s, err := seqstorage.Concat(b.storage, other.Storage())
	if err != nil {
		return nil, err
	}
	return NewBytesFromStorage(s), nil
}

func (b *Bytes) Repeat(times int) (*Bytes, error) {
	s, err := seqstorage.Repeat(b.storage, times)
	if err != nil {
		return nil, err
	}
	return NewBytesFromStorage(s), nil
}

// Translate returns a copy of b where each byte is mapped through table, the bytes in
// deleteBytes are removed.
func (b *Bytes) Translate(table []byte, deleteBytes []byte) (*Bytes, error) {
	s, err := seqstorage.Translate(b.storage, table, deleteBytes)
	if err != nil {
		return nil, err
	}
	return NewBytesFromStorage(s), nil
}

// Join returns the concatenation of items separated by b, items should be byte sequences.
func (b *Bytes) Join(items []Sequence) (*Bytes, error) {
	s, err := b.join(items)
	if err != nil {
		return nil, err
	}
	return NewBytesFromStorage(s), nil
}

// Equal reports whether other is a Bytes or a ByteArray with the same bytes.
func (b *Bytes) Equal(other Sequence) bool {
	return isByteSequence(other) && Equal(b, other)
}

// A ByteArray is a mutable sequence of bytes, its storage is never generalized: storing a value
// that is not a byte fails.
type ByteArray struct {
	byteSequence
}

// NewByteArray returns a ByteArray holding a copy of b.
func NewByteArray(b []byte) *ByteArray {
	return NewByteArrayFromStorage(seqstorage.NewBytes(utils.CopySlice(b)))
}

func NewByteArrayFromStorage(s *seqstorage.Storage) *ByteArray {
	return &ByteArray{byteSequence{base{storage: s}}}
}

func (a *ByteArray) wrap(s *seqstorage.Storage) Sequence {
	return NewByteArrayFromStorage(s)
}

func (a *ByteArray) GetItem(key Value) (Value, error) {
	return a.getItem(key, seqstorage.BytearrayNormalizer, a.wrap)
}

func (a *ByteArray) SetItem(key Value, value Value) error {
	return a.setItem(key, value, seqstorage.BytearrayNormalizer, seqstorage.NoGeneralization{})
}

func (a *ByteArray) DelItem(key Value) error {
	return a.delItem(key, seqstorage.BytearrayNormalizer)
}

func (a *ByteArray) Append(v Value) error {
	return a.replace(seqstorage.Append(a.storage, v, seqstorage.NoGeneralization{}))
}

func (a *ByteArray) Extend(iterable Value) error {
	values, err := valuesOf(iterable)
	if err != nil {
		return err
	}
	return a.replace(seqstorage.Extend(a.storage, values, seqstorage.NoGeneralization{}))
}

func (a *ByteArray) Insert(index int, v Value) error {
	return a.replace(seqstorage.Insert(a.storage, index, v, seqstorage.NoGeneralization{}))
}

func (a *ByteArray) Pop(index Value) (Value, error) {
	return a.pop(index, seqstorage.NewIndexNormalizer(S_POP_INDEX_OUT_OF_RANGE, true))
}

func (a *ByteArray) Clear() error {
	return seqstorage.Clear(a.storage)
}

func (a *ByteArray) Reverse() error {
	return seqstorage.Reverse(a.storage)
}

func (a *ByteArray) Concat(other Sequence) (*ByteArray, error) {
	s, err := seqstorage.Concat(a.storage, other.Storage())
	if err != nil {
		return nil, err
	}
	return NewByteArrayFromStorage(s), nil
}

func (a *ByteArray) Repeat(times int) (*ByteArray, error) {
	s, err := seqstorage.Repeat(a.storage, times)
	if err != nil {
		return nil, err
	}
	return NewByteArrayFromStorage(s), nil
}

func (a *ByteArray) Translate(table []byte, deleteBytes []byte) (*ByteArray, error) {
	s, err := seqstorage.Translate(a.storage, table, deleteBytes)
	if err != nil {
		return nil, err
	}
	return NewByteArrayFromStorage(s), nil
}

func (a *ByteArray) Join(items []Sequence) (*ByteArray, error) {
	s, err := a.join(items)
	if err != nil {
		return nil, err
	}
	return NewByteArrayFromStorage(s), nil
}

// Copy returns a ByteArray with the same bytes, in the same location.
func (a *ByteArray) Copy() (*ByteArray, error) {
	s, err := seqstorage.Copy(a.storage)
	if err != nil {
		return nil, err
	}
	return NewByteArrayFromStorage(s), nil
}

func (a *ByteArray) Equal(other Sequence) bool {
	return isByteSequence(other) && Equal(a, other)
}

func isByteSequence(v Value) bool {
	switch v.(type) {
	case *Bytes, *ByteArray:
		return true
	}
	return false
}
