package seqstorage

import (
	"errors"
	"fmt"
)

const (
	S_BYTE_OUT_OF_RANGE        = "byte must be in range(0, 256)"
	S_INTEGER_REQUIRED         = "an integer is required"
	S_KIND_REQUIRED            = "%s is required, was %T"
	S_VALUE_OUT_OF_RANGE       = "value out of range for %s"
	S_INVALID_NATIVE_ITEM      = "invalid item type %T returned from native storage (expected: %s)"
	S_NATIVE_ACCESS_FAILED     = "native storage access failed: %v"
	S_CANNOT_CONCATENATE       = "cannot concatenate sequences"
	S_CONCATENATION_TOO_LONG   = "concatenated sequence is too long"
	S_REPETITION_TOO_LONG      = "repeated sequence is too long"
	S_SLICE_STEP_ZERO          = "slice step cannot be zero"
	S_EXTENDED_SLICE_SIZE      = "attempt to assign sequence of size %d to extended slice of size %d"
	S_INDICES_MUST_BE_INTEGERS = "indices must be integers or slices, not %T"
	S_CAN_ONLY_ASSIGN_ITERABLE = "can only assign an iterable"
	S_EXPECTED_BYTES_LIKE      = "expected a bytes-like object"
	S_TRANSLATION_TABLE_LENGTH = "translation table must be 256 characters long"
	S_POP_FROM_EMPTY           = "pop from empty sequence"
	S_SEQUENCE_TOO_LONG        = "sequence is too long"
	S_NATIVE_STORAGE_RELEASED  = "native storage has been released"
	S_SUBSECTION_NOT_FOUND     = "subsection not found"
	S_JOIN_ITEM_NOT_BYTES      = "sequence item %d: expected a bytes-like object, %s found"
)

var (
	ErrUnreachable = errors.New("unreachable")

	// ErrNativeAllocationFailed is the value of the panic raised when a foreign buffer cannot be allocated,
	// it means the foreign memory subsystem itself is broken.
	ErrNativeAllocationFailed = errors.New("could not allocate native storage")

	_ = []error{IndexError, ValueError, TypeError, SystemError, (*Error)(nil)}
)

// An ErrorClass is the class of the errors returned by storage operations,
// errors.Is(err, IndexError) reports whether err is an IndexError.
type ErrorClass string

const (
	// the index is out of range.
	IndexError ErrorClass = "IndexError"

	// the value is not representable, e.g. a byte not in 0-255.
	ValueError ErrorClass = "ValueError"

	// the operation is not defined for the value or the representation.
	TypeError ErrorClass = "TypeError"

	// invariant violation at the foreign memory boundary.
	SystemError ErrorClass = "SystemError"
)

func (c ErrorClass) Error() string {
	return string(c)
}

type Error struct {
	Class   ErrorClass
	Message string
}

func newError(class ErrorClass, format string, args ...any) *Error {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	return &Error{Class: class, Message: msg}
}

func (e *Error) Error() string {
	return string(e.Class) + ": " + e.Message
}

func (e *Error) Is(target error) bool {
	class, ok := target.(ErrorClass)
	return ok && class == e.Class
}

// ClassOf returns the class of err if err is (or wraps) an *Error.
func ClassOf(err error) (ErrorClass, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Class, true
	}
	return "", false
}

func FormatExtendedSliceSizeMismatch(sequenceSize, sliceSize int) string {
	return fmt.Sprintf(S_EXTENDED_SLICE_SIZE, sequenceSize, sliceSize)
}
