package runtime

import "fmt"

// Allocation is one live or freed heap slot created by `new` (§3 Pointer
// payload "Heap" kind, §4.7 Lifetime Manager). Freed is flipped by Free and
// never reset, so double-delete and use-after-free are detectable from the
// handle alone.
type Allocation struct {
	Handle uint64
	Type   interface{} // types.Type; kept opaque so this package needn't import it twice for clarity
	Count  int
	Freed  bool
	Value  interface{} // the interp.Value(s) backing this allocation
}

// Heap tracks every outstanding `new`/`delete` allocation for the process.
// Entries are never removed on Free — only flagged — so UseAfterFree and
// DoubleDelete (§7 invariant, §8 boundary) stay detectable for the life of
// the program, and Leaks() can report what's still live at exit (§4.7,
// MemoryLeak is a warning not an error per §7).
type Heap struct {
	allocs map[uint64]*Allocation
	next   uint64
}

// NewHeap creates an empty heap table.
func NewHeap() *Heap {
	return &Heap{allocs: make(map[uint64]*Allocation)}
}

// Alloc registers a new allocation and returns its opaque handle.
func (h *Heap) Alloc(t interface{}, count int, value interface{}) uint64 {
	h.next++
	handle := h.next
	h.allocs[handle] = &Allocation{Handle: handle, Type: t, Count: count, Value: value}
	return handle
}

// Get looks up an allocation by handle, live or freed.
func (h *Heap) Get(handle uint64) (*Allocation, bool) {
	a, ok := h.allocs[handle]
	return a, ok
}

// ErrDoubleDelete is returned by Free when the slot was already freed.
var ErrDoubleDelete = fmt.Errorf("double delete")

// ErrUnknownHandle is returned by Free/Get for a handle this heap never issued.
var ErrUnknownHandle = fmt.Errorf("unknown heap handle")

// Free marks handle's allocation as freed. Returns ErrDoubleDelete if it was
// already freed, ErrUnknownHandle if the handle was never allocated here.
func (h *Heap) Free(handle uint64) error {
	a, ok := h.allocs[handle]
	if !ok {
		return ErrUnknownHandle
	}
	if a.Freed {
		return ErrDoubleDelete
	}
	a.Freed = true
	return nil
}

// Leaks returns every allocation still live (not freed) at the point this
// is called — intended for program-exit reporting (§4.7, §7 MemoryLeak).
func (h *Heap) Leaks() []*Allocation {
	var out []*Allocation
	for _, a := range h.allocs {
		if !a.Freed {
			out = append(out, a)
		}
	}
	return out
}
