package interp

import (
	"fmt"

	"github.com/cbscript/cb/internal/interp/runtime"
	"github.com/cbscript/cb/internal/types"
)

// PointerKind discriminates a pointer's provenance (§3, §9 "Pointer
// metadata"): each case has different lifetime and validity rules, so a
// single opaque-pointer model would lose information the evaluator needs
// for safe dereference and arithmetic.
type PointerKind int

const (
	PointerVariable PointerKind = iota
	PointerArrayElement
	PointerStructMember
	PointerHeap
	PointerNull
)

// NullDereferenceError, UseAfterFreeError, and OutOfBoundsError are the
// plain sentinel errors pointer operations return; the evaluator passes
// them up unwrapped, without a source position.
type NullDereferenceError struct{}

func (e *NullDereferenceError) Error() string { return "null pointer dereference" }

type UseAfterFreeError struct{ Handle uint64 }

func (e *UseAfterFreeError) Error() string {
	return fmt.Sprintf("use after free: heap handle %d", e.Handle)
}

type OutOfBoundsError struct{ Index, Len int }

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("array index out of bounds: %d (length %d)", e.Index, e.Len)
}

// Pointer is the provenance-carrying pointer payload (§3). Only Heap and
// ArrayElement provenance support arithmetic (§4.2); Variable, StructMember,
// and Null support load/store but not `+`.
type Pointer struct {
	Kind PointerKind
	Elem types.Type
	Mut  types.Mutability

	// Variable provenance.
	Var *runtime.Variable

	// ArrayElement provenance: addresses Array.Data[Index] (flat offset,
	// already resolved through any multidimensional stride at pointer
	// construction time).
	Array *ArrayValue
	Index int

	// StructMember provenance: walks Path from Struct root on every
	// access, so it stays valid across intervening mutations to sibling
	// members (§4.2).
	Struct *StructValue
	Path   []string

	// Heap provenance.
	Heap   *runtime.Heap
	Handle uint64
	Count  int
}

// PointerValue wraps a Pointer as a runtime Value.
type PointerValue struct{ P *Pointer }

func (v *PointerValue) Type() types.Type {
	return &types.Pointer{Pointee: v.P.Elem, Mut: v.P.Mut}
}

func (v *PointerValue) String() string {
	if v.P.Kind == PointerNull {
		return "null"
	}
	return "*" + v.P.Elem.String()
}

// NullPointer constructs the null pointer literal's value for a static
// pointee type (the pointee type is still tracked so later assignment-
// target typing stays consistent, §4.1).
func NullPointer(elem types.Type, mut types.Mutability) *PointerValue {
	return &PointerValue{P: &Pointer{Kind: PointerNull, Elem: elem, Mut: mut}}
}

// Load dereferences p for a read, dispatching on provenance (§4.2).
func (p *Pointer) Load() (Value, error) {
	switch p.Kind {
	case PointerNull:
		return nil, &NullDereferenceError{}
	case PointerVariable:
		return p.Var.Value.(Value), nil
	case PointerArrayElement:
		if p.Index < 0 || p.Index >= len(p.Array.Data) {
			return nil, &OutOfBoundsError{Index: p.Index, Len: len(p.Array.Data)}
		}
		return p.Array.Data[p.Index], nil
	case PointerStructMember:
		return walkStructPath(p.Struct, p.Path)
	case PointerHeap:
		a, ok := p.Heap.Get(p.Handle)
		if !ok {
			return nil, &UseAfterFreeError{Handle: p.Handle}
		}
		if a.Freed {
			return nil, &UseAfterFreeError{Handle: p.Handle}
		}
		return a.Value.(Value), nil
	default:
		return nil, fmt.Errorf("unknown pointer kind %d", p.Kind)
	}
}

// Store writes val through p, dispatching on provenance exactly as Load
// does (§4.2). Const-write rejection is enforced by the caller (the
// evaluator checks p.Mut before calling Store, producing
// WriteThroughConstPointer — pointer.go itself stays mechanism-only).
func (p *Pointer) Store(val Value) error {
	switch p.Kind {
	case PointerNull:
		return &NullDereferenceError{}
	case PointerVariable:
		p.Var.Value = val
		return nil
	case PointerArrayElement:
		if p.Index < 0 || p.Index >= len(p.Array.Data) {
			return &OutOfBoundsError{Index: p.Index, Len: len(p.Array.Data)}
		}
		p.Array.Data[p.Index] = val
		return nil
	case PointerStructMember:
		return storeStructPath(p.Struct, p.Path, val)
	case PointerHeap:
		a, ok := p.Heap.Get(p.Handle)
		if !ok {
			return &UseAfterFreeError{Handle: p.Handle}
		}
		if a.Freed {
			return &UseAfterFreeError{Handle: p.Handle}
		}
		a.Value = val
		return nil
	default:
		return fmt.Errorf("unknown pointer kind %d", p.Kind)
	}
}

// Add shifts an ArrayElement or Heap pointer by n elements (§4.2: "p + n
// shifts ArrayElement index by n * stride(element_type) in element
// units"). Out-of-range shifts are not an error here — they become one on
// the next Load/Store, matching "errors on deref, not on the arithmetic
// itself".
func (p *Pointer) Add(n int64) (*Pointer, error) {
	switch p.Kind {
	case PointerArrayElement:
		np := *p
		np.Index = p.Index + int(n)
		return &np, nil
	case PointerHeap:
		// Heap pointer arithmetic addresses a different conceptual slot
		// within the same allocation's Count; represented by tracking a
		// parallel array-backed view would duplicate state, so heap
		// pointer arithmetic is only meaningful in conjunction with the
		// allocation's stored array Value — reject the cases that would
		// silently do nothing instead of pretending to succeed.
		a, ok := p.Heap.Get(p.Handle)
		if !ok || a.Freed {
			return nil, &UseAfterFreeError{Handle: p.Handle}
		}
		arr, ok := a.Value.(*ArrayValue)
		if !ok {
			return nil, fmt.Errorf("pointer arithmetic on a non-array heap allocation")
		}
		np := &Pointer{Kind: PointerArrayElement, Elem: p.Elem, Mut: p.Mut, Array: arr, Index: int(n)}
		return np, nil
	default:
		return nil, fmt.Errorf("pointer arithmetic is only valid on heap or array-element pointers")
	}
}

func walkStructPath(s *StructValue, path []string) (Value, error) {
	cur := s
	for i, name := range path {
		val, ok := cur.Get(name)
		if !ok {
			return nil, fmt.Errorf("no such member: %s", name)
		}
		if i == len(path)-1 {
			return val, nil
		}
		next, ok := val.(*StructValue)
		if !ok {
			return nil, fmt.Errorf("member %s is not a struct", name)
		}
		cur = next
	}
	return nil, fmt.Errorf("empty struct member path")
}

func storeStructPath(s *StructValue, path []string, val Value) error {
	cur := s
	for i, name := range path {
		if i == len(path)-1 {
			if _, ok := cur.Get(name); !ok {
				return fmt.Errorf("no such member: %s", name)
			}
			cur.Set(name, val)
			return nil
		}
		next, ok := cur.Get(name)
		if !ok {
			return fmt.Errorf("no such member: %s", name)
		}
		ns, ok := next.(*StructValue)
		if !ok {
			return fmt.Errorf("member %s is not a struct", name)
		}
		cur = ns
	}
	return fmt.Errorf("empty struct member path")
}
