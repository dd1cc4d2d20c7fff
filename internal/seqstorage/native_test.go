package seqstorage

import (
	"errors"
	"runtime"
	"testing"

	"github.com/inoxlang/seqstore/internal/nativemem"
	"github.com/inoxlang/seqstore/internal/seqkind"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testOwner struct {
	storage *Storage
	setErr  error
}

func (o *testOwner) Storage() *Storage {
	return o.storage
}

func (o *testOwner) SetStorage(s *Storage) {
	if o.setErr != nil {
		panic(o.setErr)
	}
	o.storage = s
}

// failingMemory cannot allocate buffers.
type failingMemory struct {
	*nativemem.Arena
}

func (m failingMemory) Allocate(kind seqkind.Kind, array any) (uintptr, error) {
	return 0, nativemem.ErrArenaExhausted
}

func TestToNative(t *testing.T) {
	t.Parallel()

	t.Run("each kind", func(t *testing.T) {
		arena := newTestArena(t)

		for _, kind := range allKinds {
			s := newStorage(t, kind, elementsByKind[kind])
			native := ToNative(s, arena)

			assert.NotSame(t, s, native)
			assert.Equal(t, Foreign, native.Location())
			assert.Equal(t, kind, native.Kind())
			assert.Equal(t, s.Len(), native.Capacity())
			assert.Same(t, arena, native.Native().Memory())
			assert.NotZero(t, native.Native().Pointer())
			requireValues(t, elementsByKind[kind], native)
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		arena := newTestArena(t)
		native := ToNative(NewInts([]int32{1}), arena)

		assert.Same(t, native, ToNative(native, arena))
		assert.Equal(t, 1, arena.Live())
	})

	t.Run("allocation failure", func(t *testing.T) {
		arena := newTestArena(t)

		defer func() {
			v := recover()
			err, ok := v.(error)
			require.True(t, ok)
			assert.ErrorIs(t, err, ErrNativeAllocationFailed)
			assert.ErrorIs(t, err, nativemem.ErrArenaExhausted)
		}()

		ToNative(NewInts([]int32{1}), failingMemory{arena})
	})
}

func TestMaterialize(t *testing.T) {
	t.Parallel()

	t.Run("storage is replaced", func(t *testing.T) {
		arena := newTestArena(t)
		managed := NewLongs([]int64{1, 2})
		owner := &testOwner{storage: managed}

		buf := Materialize(owner, arena)
		assert.True(t, owner.storage.IsNative())
		assert.Same(t, buf, owner.storage.Native())
		requireValues(t, []Value{int64(1), int64(2)}, owner.storage)

		assert.Same(t, buf, Materialize(owner, arena))
		assert.Equal(t, 1, arena.Live())
	})

	t.Run("buffer is released if the storage cannot be replaced", func(t *testing.T) {
		arena := newTestArena(t)
		managed := NewLongs([]int64{1, 2})
		owner := &testOwner{storage: managed, setErr: errors.New("cannot set storage")}

		assert.Panics(t, func() {
			Materialize(owner, arena)
		})
		assert.Same(t, managed, owner.storage)
		assert.Zero(t, arena.Live())
	})
}

func TestNativeBufferRelease(t *testing.T) {
	t.Parallel()

	arena := newTestArena(t)
	native := ToNative(NewObjects([]Value{"a", "b"}), arena)
	assert.Equal(t, 2, arena.LiveObjects())

	require.NoError(t, native.Native().Release())
	assert.Zero(t, arena.Live())
	assert.Zero(t, arena.LiveObjects())

	//only the first release frees the buffer
	require.NoError(t, native.Native().Release())
}

func TestNativeBufferAccessDuringCollection(t *testing.T) {
	t.Parallel()

	arena := newTestArena(t)

	for i := 0; i < 50; i++ {
		s := ToNative(newStorage(t, seqkind.Long, []Value{int64(i), int64(i + 1)}), arena)
		runtime.GC()

		require.NoError(t, SetItemScalar(s, 1, int64(-i)))
		runtime.GC()

		elem, err := GetItemScalar(s, 1)
		require.NoError(t, err)
		assert.EqualValues(t, int64(-i), elem)

		first, err := GetItemScalar(s, 0)
		require.NoError(t, err)
		assert.EqualValues(t, int64(i), first)
	}
}
