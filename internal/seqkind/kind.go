package seqkind

import (
	"errors"
	"strconv"
)

var (
	ErrUnknownKind = errors.New("unknown element kind")

	_ = []Kind{Byte, Int, Long, Double, Object}
)

// A Value is any runtime value stored in a sequence.
type Value = any

// Kind is the element kind of a sequence storage, it determines the element type of the
// managed array and the element stride of a foreign buffer.
type Kind uint8

const (
	Byte Kind = iota
	Int
	Long
	Double
	Object
)

const (
	BYTE_STRIDE   = 1
	INT_STRIDE    = 4
	LONG_STRIDE   = 8
	DOUBLE_STRIDE = 8

	// objects are stored as opaque 64-bit handles in foreign memory.
	OBJECT_STRIDE = 8
)

var kindNames = [...]string{
	Byte:   "byte",
	Int:    "int",
	Long:   "long",
	Double: "double",
	Object: "object",
}

func (k Kind) String() string {
	if !k.Valid() {
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

func (k Kind) Valid() bool {
	return k <= Object
}

// Stride returns the size in bytes of an element of kind k in foreign memory.
func (k Kind) Stride() int {
	switch k {
	case Byte:
		return BYTE_STRIDE
	case Int:
		return INT_STRIDE
	case Long:
		return LONG_STRIDE
	case Double:
		return DOUBLE_STRIDE
	case Object:
		return OBJECT_STRIDE
	}
	panic(ErrUnknownKind)
}

func (k Kind) IsIntegral() bool {
	return k == Byte || k == Int || k == Long
}

func (k Kind) IsNumeric() bool {
	return k.IsIntegral() || k == Double
}

// ParseKind returns the kind named name.
func ParseKind(name string) (Kind, error) {
	for k, kindName := range kindNames {
		if kindName == name {
			return Kind(k), nil
		}
	}
	return 0, ErrUnknownKind
}

// An Opaque wraps a value of kind Object crossing the foreign memory boundary, foreign memory
// never holds the value itself but an opaque handle to it.
type Opaque struct {
	Value Value
}
