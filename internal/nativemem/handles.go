package nativemem

import (
	"sync"

	"github.com/bits-and-blooms/bitset"
	"github.com/inoxlang/seqstore/internal/seqkind"
)

const (
	// handle of the nil object.
	NULL_OBJECT_HANDLE = 0
)

// objectTable maps the opaque handles stored in native buffers of kind Object to the objects
// they reference. Handles are slot indexes plus one, freed slots are reused.
type objectTable struct {
	lock  sync.Mutex
	used  *bitset.BitSet
	slots []seqkind.Value
}

func newObjectTable() *objectTable {
	return &objectTable{used: bitset.New(0)}
}

func (t *objectTable) put(v seqkind.Value) uint64 {
	if v == nil {
		return NULL_OBJECT_HANDLE
	}

	t.lock.Lock()
	defer t.lock.Unlock()

	slot, ok := t.used.NextClear(0)
	if !ok || slot >= uint(len(t.slots)) {
		slot = uint(len(t.slots))
		t.slots = append(t.slots, nil)
	}

	t.used.Set(slot)
	t.slots[slot] = v
	return uint64(slot) + 1
}

func (t *objectTable) get(handle uint64) (seqkind.Value, bool) {
	if handle == NULL_OBJECT_HANDLE {
		return nil, true
	}

	t.lock.Lock()
	defer t.lock.Unlock()

	slot := uint(handle - 1)
	if !t.used.Test(slot) {
		return nil, false
	}
	return t.slots[slot], true
}

func (t *objectTable) release(handle uint64) {
	if handle == NULL_OBJECT_HANDLE {
		return
	}

	t.lock.Lock()
	defer t.lock.Unlock()

	slot := uint(handle - 1)
	if !t.used.Test(slot) {
		return
	}
	t.used.Clear(slot)
	t.slots[slot] = nil
}

func (t *objectTable) count() int {
	t.lock.Lock()
	defer t.lock.Unlock()

	return int(t.used.Count())
}
