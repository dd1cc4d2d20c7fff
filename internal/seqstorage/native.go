package seqstorage

import (
	"fmt"
	"runtime"
	"sync/atomic"

	"github.com/inoxlang/seqstore/internal/seqkind"
)

// Memory is the capability used to access foreign memory. Raw values have the following types:
// int8 (Byte), int32 (Int), int64 (Long), float64 (Double) and seqkind.Opaque (Object).
type Memory interface {
	Read(ptr uintptr, byteOffset int, kind seqkind.Kind) (any, error)
	Write(ptr uintptr, byteOffset int, kind seqkind.Kind, raw any) error

	// Allocate allocates a buffer holding a copy of array, a typed slice whose element type
	// matches kind. The capacity of the buffer is len(array).
	Allocate(kind seqkind.Kind, array any) (uintptr, error)
	Free(ptr uintptr) error
}

// A NativeBuffer is a foreign buffer owned by a storage.
type NativeBuffer struct {
	mem      Memory
	ptr      uintptr
	capacity int
	released atomic.Bool
}

func newNativeBuffer(mem Memory, kind seqkind.Kind, array any) *NativeBuffer {
	ptr, err := mem.Allocate(kind, array)
	if err != nil {
		panic(fmt.Errorf("%w: %w", ErrNativeAllocationFailed, err))
	}

	buf := &NativeBuffer{mem: mem, ptr: ptr, capacity: arrayLength(array)}

	//buffers of unreachable storages are released by the garbage collector.
	runtime.SetFinalizer(buf, (*NativeBuffer).Release)

	logger.Debug().Str("kind", kind.String()).Int("capacity", buf.capacity).Uint64("handle", uint64(ptr)).Msg("native buffer allocated")
	return buf
}

func (b *NativeBuffer) Pointer() uintptr {
	return b.ptr
}

func (b *NativeBuffer) Memory() Memory {
	return b.mem
}

func (b *NativeBuffer) Capacity() int {
	return b.capacity
}

func (b *NativeBuffer) Released() bool {
	return b.released.Load()
}

// Release frees the foreign buffer, only the first call has an effect.
func (b *NativeBuffer) Release() error {
	if !b.released.CompareAndSwap(false, true) {
		return nil
	}
	runtime.SetFinalizer(b, nil)

	err := b.mem.Free(b.ptr)
	if err != nil {
		logger.Debug().Err(err).Uint64("handle", uint64(b.ptr)).Msg("failed to release native buffer")
		return err
	}

	logger.Debug().Uint64("handle", uint64(b.ptr)).Msg("native buffer released")
	return nil
}

func (b *NativeBuffer) read(kind seqkind.Kind, i int) (any, error) {
	// the finalizer of b releases b.ptr
	defer runtime.KeepAlive(b)

	if b.released.Load() {
		return nil, newError(SystemError, S_NATIVE_STORAGE_RELEASED)
	}
	raw, err := b.mem.Read(b.ptr, i*kind.Stride(), kind)
	if err != nil {
		return nil, newError(SystemError, S_NATIVE_ACCESS_FAILED, err)
	}
	return raw, nil
}

func (b *NativeBuffer) write(kind seqkind.Kind, i int, raw any) error {
	// the finalizer of b releases b.ptr
	defer runtime.KeepAlive(b)

	if b.released.Load() {
		return newError(SystemError, S_NATIVE_STORAGE_RELEASED)
	}
	err := b.mem.Write(b.ptr, i*kind.Stride(), kind, raw)
	if err != nil {
		return newError(SystemError, S_NATIVE_ACCESS_FAILED, err)
	}
	return nil
}

func arrayLength(array any) int {
	switch arr := array.(type) {
	case []byte:
		return len(arr)
	case []int32:
		return len(arr)
	case []int64:
		return len(arr)
	case []float64:
		return len(arr)
	case []Value:
		return len(arr)
	}
	panic(ErrUnreachable)
}

// newNative returns a foreign storage of length elements holding a copy of array, the
// capacity of the storage is len(array).
func newNative(mem Memory, array any, length int) *Storage {
	kind := kindOfArray(array)
	return &Storage{kind: kind, length: length, native: newNativeBuffer(mem, kind, array)}
}

// ToNative returns a foreign storage holding a copy of the elements of s, foreign storages are
// returned unchanged. Allocation failure panics with an error wrapping ErrNativeAllocationFailed.
func ToNative(s *Storage, mem Memory) *Storage {
	if s.native != nil {
		return s
	}

	native := newNative(mem, s.managedArray(), s.length)
	logger.Debug().Str("kind", s.kind.String()).Int("length", s.length).Msg("storage materialized to native memory")
	return native
}

// An Owner is a sequence object owning a storage.
type Owner interface {
	Storage() *Storage

	// SetStorage replaces the storage of the owner.
	SetStorage(s *Storage)
}

// Materialize makes the storage of owner foreign and returns its buffer. The new buffer is
// released if the storage of the owner could not be replaced.
func Materialize(owner Owner, mem Memory) *NativeBuffer {
	s := owner.Storage()
	if s.native != nil {
		return s.native
	}

	native := ToNative(s, mem)
	committed := false

	defer func() {
		if !committed {
			native.native.Release()
		}
	}()

	owner.SetStorage(native)
	committed = true
	return native.native
}

// rebuild returns a storage of the same location as s holding a typed slice, the slice is
// owned by the returned storage if it is managed.
func rebuild(s *Storage, array any, length int) *Storage {
	if s.native != nil {
		return newNative(s.native.mem, array, length)
	}
	managed := fromArray(array)
	managed.length = length
	return managed
}

// discard releases the foreign buffer of a storage built by an operation that failed.
func discard(candidate, original *Storage) {
	if candidate == nil || candidate == original || candidate.native == nil {
		return
	}
	if original != nil && candidate.native == original.native {
		return
	}
	candidate.native.Release()
}
