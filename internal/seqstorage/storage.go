package seqstorage

import (
	"fmt"
	"math"
	"strings"

	"github.com/inoxlang/seqstore/internal/seqkind"
)

const (
	// maximum number of elements of a storage.
	MaxLength = math.MaxInt32

	MIN_GROWTH_CAPACITY = 4
)

type Value = seqkind.Value

type Location uint8

const (
	Managed Location = iota
	Foreign
)

func (l Location) String() string {
	if l == Foreign {
		return "foreign"
	}
	return "managed"
}

// A Storage is the backing representation of a sequence: a homogeneous array of one of the five
// element kinds, either managed (one of the typed arrays below) or foreign (a native buffer read
// and written through a Memory). Only the array matching kind is set. The length of a managed
// array is the capacity of the storage, elements after length are zero values.
//
// A Storage is not safe for concurrent use.
type Storage struct {
	kind   seqkind.Kind
	length int

	bytes   []byte
	ints    []int32
	longs   []int64
	doubles []float64
	objects []Value

	native *NativeBuffer
}

// NewEmpty returns an empty managed storage of the given kind.
func NewEmpty(kind seqkind.Kind, capacity int) *Storage {
	s := &Storage{kind: kind}
	capacity = max(capacity, 0)

	switch kind {
	case seqkind.Byte:
		s.bytes = make([]byte, capacity)
	case seqkind.Int:
		s.ints = make([]int32, capacity)
	case seqkind.Long:
		s.longs = make([]int64, capacity)
	case seqkind.Double:
		s.doubles = make([]float64, capacity)
	case seqkind.Object:
		s.objects = make([]Value, capacity)
	default:
		panic(seqkind.ErrUnknownKind)
	}
	return s
}

// NewBytes returns a managed storage of kind Byte that takes ownership of elements.
func NewBytes(elements []byte) *Storage {
	return &Storage{kind: seqkind.Byte, length: len(elements), bytes: elements}
}

// NewInts returns a managed storage of kind Int that takes ownership of elements.
func NewInts(elements []int32) *Storage {
	return &Storage{kind: seqkind.Int, length: len(elements), ints: elements}
}

// NewLongs returns a managed storage of kind Long that takes ownership of elements.
func NewLongs(elements []int64) *Storage {
	return &Storage{kind: seqkind.Long, length: len(elements), longs: elements}
}

// NewDoubles returns a managed storage of kind Double that takes ownership of elements.
func NewDoubles(elements []float64) *Storage {
	return &Storage{kind: seqkind.Double, length: len(elements), doubles: elements}
}

// NewObjects returns a managed storage of kind Object that takes ownership of elements.
func NewObjects(elements []Value) *Storage {
	return &Storage{kind: seqkind.Object, length: len(elements), objects: elements}
}

// FromValues returns a managed storage holding values in the most compact kind, the kind is
// the one a storage would end up with if the values were appended one by one to an empty list.
func FromValues(values []Value) *Storage {
	kind := kindForValues(values)
	s, err := newManaged(kind, values, len(values), true)
	if err != nil {
		//kindForValues only returns kinds accepting all the values
		panic(fmt.Errorf("%w: %w", ErrUnreachable, err))
	}
	return s
}

func kindForValues(values []Value) seqkind.Kind {
	if len(values) == 0 {
		return seqkind.Object
	}

	kind := seqkind.KindOf(values[0])
	for _, v := range values[1:] {
		kind = seqkind.Generalize(kind, v)
	}

	if kind == seqkind.Double {
		for _, v := range values {
			if n, ok := seqkind.AsInt64(v); ok && !seqkind.ExactFloat64(n) {
				return seqkind.Object
			}
		}
	}
	return kind
}

// newManaged returns a managed storage of the given kind holding values, if widen is true
// integral values are converted to floating values when kind is Double.
func newManaged(kind seqkind.Kind, values []Value, capacity int, widen bool) (*Storage, error) {
	s := NewEmpty(kind, max(capacity, len(values)))

	for i, v := range values {
		elem, err := coerce(kind, v, widen)
		if err != nil {
			return nil, err
		}
		s.storeManaged(i, elem)
	}
	s.length = len(values)
	return s, nil
}

func (s *Storage) Kind() seqkind.Kind {
	return s.kind
}

func (s *Storage) Len() int {
	return s.length
}

// Capacity returns the number of elements the storage can hold without being replaced.
func (s *Storage) Capacity() int {
	if s.native != nil {
		return s.native.capacity
	}

	switch s.kind {
	case seqkind.Byte:
		return len(s.bytes)
	case seqkind.Int:
		return len(s.ints)
	case seqkind.Long:
		return len(s.longs)
	case seqkind.Double:
		return len(s.doubles)
	default:
		return len(s.objects)
	}
}

func (s *Storage) Location() Location {
	if s.native != nil {
		return Foreign
	}
	return Managed
}

func (s *Storage) IsNative() bool {
	return s.native != nil
}

// Native returns the foreign buffer of a foreign storage, nil is returned for managed storages.
func (s *Storage) Native() *NativeBuffer {
	return s.native
}

// managedArray returns the elements of a managed storage as a typed slice of length s.length.
func (s *Storage) managedArray() any {
	switch s.kind {
	case seqkind.Byte:
		return s.bytes[:s.length]
	case seqkind.Int:
		return s.ints[:s.length]
	case seqkind.Long:
		return s.longs[:s.length]
	case seqkind.Double:
		return s.doubles[:s.length]
	default:
		return s.objects[:s.length]
	}
}

// fullArray returns the backing array of a managed storage, including the unused capacity.
func (s *Storage) fullArray() any {
	switch s.kind {
	case seqkind.Byte:
		return s.bytes
	case seqkind.Int:
		return s.ints
	case seqkind.Long:
		return s.longs
	case seqkind.Double:
		return s.doubles
	default:
		return s.objects
	}
}

// loadManaged returns the decoded element at i: an int for Byte, an int32 for Int,
// an int64 for Long, a float64 for Double.
func (s *Storage) loadManaged(i int) Value {
	switch s.kind {
	case seqkind.Byte:
		return int(s.bytes[i])
	case seqkind.Int:
		return s.ints[i]
	case seqkind.Long:
		return s.longs[i]
	case seqkind.Double:
		return s.doubles[i]
	default:
		return s.objects[i]
	}
}

// storeManaged stores an element returned by coerce.
func (s *Storage) storeManaged(i int, elem any) {
	switch s.kind {
	case seqkind.Byte:
		s.bytes[i] = elem.(byte)
	case seqkind.Int:
		s.ints[i] = elem.(int32)
	case seqkind.Long:
		s.longs[i] = elem.(int64)
	case seqkind.Double:
		s.doubles[i] = elem.(float64)
	default:
		s.objects[i] = elem
	}
}

// load returns the decoded element at i, the element of a foreign storage is verified.
func (s *Storage) load(i int) (Value, error) {
	if s.native == nil {
		return s.loadManaged(i), nil
	}
	raw, err := s.native.read(s.kind, i)
	if err != nil {
		return nil, err
	}
	return VerifyNativeItem(s.kind, raw)
}

// store stores an element returned by coerce at i.
func (s *Storage) store(i int, elem any) error {
	if s.native == nil {
		s.storeManaged(i, elem)
		return nil
	}
	return s.native.write(s.kind, i, toRaw(s.kind, elem))
}

// Values returns the decoded elements of s.
func Values(s *Storage) ([]Value, error) {
	values := make([]Value, s.length)
	for i := range values {
		v, err := s.load(i)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}

// Copy returns a storage with the same elements as s, in the same location.
func Copy(s *Storage) (*Storage, error) {
	array, err := typedElements(s)
	if err != nil {
		return nil, err
	}
	return rebuild(s, array, s.length), nil
}

// typedElements returns the elements of s as a typed slice (see managedArray) that does not
// alias the storage.
func typedElements(s *Storage) (any, error) {
	if s.native == nil {
		return cloneArray(s.managedArray()), nil
	}

	tmp := NewEmpty(s.kind, s.length)
	for i := 0; i < s.length; i++ {
		v, err := s.load(i)
		if err != nil {
			return nil, err
		}
		elem, err := coerce(s.kind, v, false)
		if err != nil {
			return nil, err
		}
		tmp.storeManaged(i, elem)
	}
	tmp.length = s.length
	return tmp.managedArray(), nil
}

func (s *Storage) String() string {
	buf := &strings.Builder{}
	buf.WriteString(s.kind.String())
	if s.native != nil {
		buf.WriteString("@native")
	}
	buf.WriteByte('[')

	for i := 0; i < s.length; i++ {
		if i > 0 {
			buf.WriteString(", ")
		}
		v, err := s.load(i)
		if err != nil {
			buf.WriteString("<" + err.Error() + ">")
			break
		}
		fmt.Fprintf(buf, "%v", v)
	}

	buf.WriteByte(']')
	return buf.String()
}
