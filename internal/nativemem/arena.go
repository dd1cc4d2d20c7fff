package nativemem

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"sync/atomic"
	"unsafe"

	"github.com/inoxlang/seqstore/internal/seqkind"
	cmap "github.com/orcaman/concurrent-map/v2"
	"github.com/rs/zerolog"
)

const (
	DEFAULT_MAX_ARENA_SIZE  = 64 << 20
	ALLOCATION_TABLE_SHARDS = 16
)

var (
	ErrInvalidHandle    = errors.New("invalid native handle")
	ErrOutOfBounds      = errors.New("native access out of bounds")
	ErrArenaExhausted   = errors.New("native arena exhausted")
	ErrUnsupportedArray = errors.New("unsupported array type")
	ErrKindMismatch     = errors.New("element kind does not match the kind of the native buffer")
	ErrInvalidRawValue  = errors.New("raw value does not match the element kind")

	nativeEndian = binary.NativeEndian
)

type ArenaConfig struct {
	// maximum number of bytes allocated at the same time, defaults to DEFAULT_MAX_ARENA_SIZE.
	MaxSize int64

	// if true (and supported by the platform) buffers are mapped outside the Go heap.
	UseMmap bool

	Logger zerolog.Logger //ok if not set
}

// An Arena is a foreign memory allocator: buffers allocated by the arena are addressed by
// an opaque pointer and are only read and written through the arena. An Arena is shared by
// all sequences of a process, its methods can be called from several goroutines.
type Arena struct {
	maxSize int64
	useMmap bool
	logger  zerolog.Logger

	used        atomic.Int64
	allocations cmap.ConcurrentMap[uintptr, *allocation]
	objects     *objectTable
}

type allocation struct {
	kind    seqkind.Kind
	size    int //size in bytes requested by the caller
	data    []byte
	mmapped bool
}

func NewArena(config ArenaConfig) *Arena {
	maxSize := config.MaxSize
	if maxSize <= 0 {
		maxSize = DEFAULT_MAX_ARENA_SIZE
	}

	return &Arena{
		maxSize: maxSize,
		useMmap: config.UseMmap && mmapSupported,
		logger:  config.Logger,
		allocations: cmap.NewWithCustomShardingFunction[uintptr, *allocation](func(key uintptr) uint32 {
			return uint32((key >> 4) % ALLOCATION_TABLE_SHARDS)
		}),
		objects: newObjectTable(),
	}
}

// Allocate allocates a buffer holding a copy of array and returns a pointer to it; the capacity of
// the buffer is len(array). Elements of kind Object are stored as opaque handles.
func (a *Arena) Allocate(kind seqkind.Kind, array any) (uintptr, error) {
	length, err := arrayLen(kind, array)
	if err != nil {
		return 0, err
	}

	stride := kind.Stride()
	if length > math.MaxInt/stride {
		return 0, ErrArenaExhausted
	}
	size := length * stride

	//zero-length buffers still get a distinct address
	allocatedSize := max(size, stride)

	if a.used.Add(int64(allocatedSize)) > a.maxSize {
		a.used.Add(-int64(allocatedSize))
		return 0, fmt.Errorf("%w: %d bytes requested, %d bytes in use", ErrArenaExhausted, allocatedSize, a.used.Load())
	}

	alloc := &allocation{kind: kind, size: size}

	if a.useMmap {
		data, err := mapPages(allocatedSize)
		if err != nil {
			a.used.Add(-int64(allocatedSize))
			return 0, fmt.Errorf("failed to map native buffer: %w", err)
		}
		alloc.data = data[:allocatedSize]
		alloc.mmapped = true
	} else {
		alloc.data = make([]byte, allocatedSize)
	}

	a.fill(alloc, array)

	ptr := uintptr(unsafe.Pointer(&alloc.data[0]))
	a.allocations.Set(ptr, alloc)

	a.logger.Debug().
		Str("kind", kind.String()).
		Int("length", length).
		Bool("mmapped", alloc.mmapped).
		Uint64("ptr", uint64(ptr)).
		Msg("native buffer allocated")

	return ptr, nil
}

func (a *Arena) fill(alloc *allocation, array any) {
	data := alloc.data
	switch arr := array.(type) {
	case []byte:
		copy(data, arr)
	case []int32:
		for i, e := range arr {
			nativeEndian.PutUint32(data[i*seqkind.INT_STRIDE:], uint32(e))
		}
	case []int64:
		for i, e := range arr {
			nativeEndian.PutUint64(data[i*seqkind.LONG_STRIDE:], uint64(e))
		}
	case []float64:
		for i, e := range arr {
			nativeEndian.PutUint64(data[i*seqkind.DOUBLE_STRIDE:], math.Float64bits(e))
		}
	case []seqkind.Value:
		for i, e := range arr {
			nativeEndian.PutUint64(data[i*seqkind.OBJECT_STRIDE:], a.objects.put(e))
		}
	}
}

func arrayLen(kind seqkind.Kind, array any) (int, error) {
	var length int
	var arrayKind seqkind.Kind

	switch arr := array.(type) {
	case []byte:
		length, arrayKind = len(arr), seqkind.Byte
	case []int32:
		length, arrayKind = len(arr), seqkind.Int
	case []int64:
		length, arrayKind = len(arr), seqkind.Long
	case []float64:
		length, arrayKind = len(arr), seqkind.Double
	case []seqkind.Value:
		length, arrayKind = len(arr), seqkind.Object
	default:
		return 0, fmt.Errorf("%w: %T", ErrUnsupportedArray, array)
	}

	if arrayKind != kind {
		return 0, fmt.Errorf("%w: %s array, %s kind", ErrKindMismatch, arrayKind, kind)
	}
	return length, nil
}

func (a *Arena) lookup(ptr uintptr, byteOffset int, kind seqkind.Kind) (*allocation, error) {
	alloc, ok := a.allocations.Get(ptr)
	if !ok {
		return nil, ErrInvalidHandle
	}
	if alloc.kind != kind {
		return nil, fmt.Errorf("%w: buffer of kind %s accessed as %s", ErrKindMismatch, alloc.kind, kind)
	}
	if byteOffset < 0 || byteOffset%kind.Stride() != 0 || byteOffset+kind.Stride() > alloc.size {
		return nil, fmt.Errorf("%w: offset %d, size %d", ErrOutOfBounds, byteOffset, alloc.size)
	}
	return alloc, nil
}

// Read returns the raw element of kind kind at byteOffset: an int8, int32, int64, float64 or
// seqkind.Opaque.
func (a *Arena) Read(ptr uintptr, byteOffset int, kind seqkind.Kind) (any, error) {
	alloc, err := a.lookup(ptr, byteOffset, kind)
	if err != nil {
		return nil, err
	}
	data := alloc.data[byteOffset:]

	switch kind {
	case seqkind.Byte:
		return int8(data[0]), nil
	case seqkind.Int:
		return int32(nativeEndian.Uint32(data)), nil
	case seqkind.Long:
		return int64(nativeEndian.Uint64(data)), nil
	case seqkind.Double:
		return math.Float64frombits(nativeEndian.Uint64(data)), nil
	default:
		obj, ok := a.objects.get(nativeEndian.Uint64(data))
		if !ok {
			return nil, ErrInvalidHandle
		}
		return seqkind.Opaque{Value: obj}, nil
	}
}

// Write stores raw at byteOffset, raw should have the type Read returns for kind.
func (a *Arena) Write(ptr uintptr, byteOffset int, kind seqkind.Kind, raw any) error {
	alloc, err := a.lookup(ptr, byteOffset, kind)
	if err != nil {
		return err
	}
	data := alloc.data[byteOffset:]

	switch kind {
	case seqkind.Byte:
		b, ok := raw.(int8)
		if !ok {
			return fmt.Errorf("%w: %T", ErrInvalidRawValue, raw)
		}
		data[0] = byte(b)
	case seqkind.Int:
		i, ok := raw.(int32)
		if !ok {
			return fmt.Errorf("%w: %T", ErrInvalidRawValue, raw)
		}
		nativeEndian.PutUint32(data, uint32(i))
	case seqkind.Long:
		l, ok := raw.(int64)
		if !ok {
			return fmt.Errorf("%w: %T", ErrInvalidRawValue, raw)
		}
		nativeEndian.PutUint64(data, uint64(l))
	case seqkind.Double:
		d, ok := raw.(float64)
		if !ok {
			return fmt.Errorf("%w: %T", ErrInvalidRawValue, raw)
		}
		nativeEndian.PutUint64(data, math.Float64bits(d))
	default:
		opaque, ok := raw.(seqkind.Opaque)
		if !ok {
			return fmt.Errorf("%w: %T", ErrInvalidRawValue, raw)
		}
		prev := nativeEndian.Uint64(data)
		nativeEndian.PutUint64(data, a.objects.put(opaque.Value))
		a.objects.release(prev)
	}
	return nil
}

// Free releases the buffer pointed to by ptr and the object handles it holds.
func (a *Arena) Free(ptr uintptr) error {
	alloc, ok := a.allocations.Pop(ptr)
	if !ok {
		return ErrInvalidHandle
	}

	if alloc.kind == seqkind.Object {
		for offset := 0; offset < alloc.size; offset += seqkind.OBJECT_STRIDE {
			a.objects.release(nativeEndian.Uint64(alloc.data[offset:]))
		}
	}

	allocatedSize := len(alloc.data)
	a.used.Add(-int64(allocatedSize))

	if alloc.mmapped {
		if err := unmapPages(alloc.data[:cap(alloc.data)]); err != nil {
			return fmt.Errorf("failed to unmap native buffer: %w", err)
		}
	}
	alloc.data = nil

	a.logger.Debug().Uint64("ptr", uint64(ptr)).Int("size", allocatedSize).Msg("native buffer freed")
	return nil
}

// Live returns the number of buffers that have not been freed.
func (a *Arena) Live() int {
	return a.allocations.Count()
}

// Used returns the number of bytes currently allocated.
func (a *Arena) Used() int64 {
	return a.used.Load()
}

// LiveObjects returns the number of objects referenced from native buffers.
func (a *Arena) LiveObjects() int {
	return a.objects.count()
}

// Close frees all the buffers that are still allocated.
func (a *Arena) Close() error {
	var errs []error
	for _, ptr := range a.allocations.Keys() {
		if err := a.Free(ptr); err != nil && !errors.Is(err, ErrInvalidHandle) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
