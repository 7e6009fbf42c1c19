package interp

import (
	"fmt"

	"github.com/cbscript/cb/internal/ast"
	"github.com/cbscript/cb/internal/errors"
	"github.com/cbscript/cb/internal/types"
)

// evalNew implements `new T` / `new T(args)` / `new T[n]`: allocates a heap
// slot holding either a single zero/constructed value or an array of them,
// and returns a Heap-provenance pointer to it (§3 Pointer payload, §4.7
// Lifetime Manager "new allocates on the heap").
func (e *Evaluator) evalNew(t *Task, x *ast.NewExpr) (Value, error) {
	elem, err := e.ResolveType(x.Type)
	if err != nil {
		return nil, err
	}

	if x.Count != nil {
		cv, err := e.evalExpr(t, x.Count)
		if err != nil {
			return nil, err
		}
		iv, ok := cv.(*IntValue)
		if !ok {
			return nil, fmt.Errorf("new[] count must be an integer")
		}
		n := int(iv.Val)
		data := make([]Value, n)
		for i := range data {
			zv, err := e.zeroValue(elem)
			if err != nil {
				return nil, err
			}
			data[i] = zv
		}
		arr := &ArrayValue{Elem: elem, Dims: []int{n}, Data: data}
		handle := e.Env.Heap.Alloc(elem, n, arr)
		return &PointerValue{P: &Pointer{Kind: PointerHeap, Elem: elem, Mut: types.Mutable, Heap: e.Env.Heap, Handle: handle, Count: n}}, nil
	}

	var val Value
	if st, ok := elem.(*types.Struct); ok && (len(x.Args) > 0 || e.hasConstructor(st.QualifiedName)) {
		args, err := e.evalArgs(t, x.Args)
		if err != nil {
			return nil, err
		}
		cv, err := e.RunConstructor(t, st.QualifiedName, args)
		if err != nil {
			return nil, err
		}
		val = cv
	} else {
		zv, err := e.zeroValue(elem)
		if err != nil {
			return nil, err
		}
		val = zv
	}

	arr := &ArrayValue{Elem: elem, Dims: []int{1}, Data: []Value{val}}
	handle := e.Env.Heap.Alloc(elem, 1, arr)
	return &PointerValue{P: &Pointer{Kind: PointerHeap, Elem: elem, Mut: types.Mutable, Heap: e.Env.Heap, Handle: handle, Count: 1}}, nil
}

// evalDelete implements `delete p`: runs the pointee's destructor (if any)
// then frees the heap slot, surfacing UseAfterFree/DoubleDelete as typed
// diagnostics rather than plain errors (§7).
func (e *Evaluator) evalDelete(t *Task, x *ast.DeleteExpr) (Value, error) {
	pv, err := e.evalExpr(t, x.Pointer)
	if err != nil {
		return nil, err
	}
	ptr, ok := pv.(*PointerValue)
	if !ok {
		return nil, fmt.Errorf("delete target is not a pointer")
	}
	if ptr.P.Kind != PointerHeap {
		return nil, fmt.Errorf("delete target is not a heap pointer")
	}

	alloc, ok := ptr.P.Heap.Get(ptr.P.Handle)
	if !ok {
		return nil, fmt.Errorf("%s: %d", errors.KindUseAfterFree, ptr.P.Handle)
	}
	if alloc.Freed {
		return nil, fmt.Errorf("%s: heap handle %d was already freed", errors.KindDoubleDelete, ptr.P.Handle)
	}

	if arr, ok := alloc.Value.(*ArrayValue); ok {
		for _, v := range arr.Data {
			if err := e.destroyValue(t, v); err != nil {
				return nil, err
			}
		}
	}

	if err := ptr.P.Heap.Free(ptr.P.Handle); err != nil {
		return nil, fmt.Errorf("%s: %s", errors.KindDoubleDelete, err.Error())
	}
	return &VoidValue{}, nil
}

// sizeOf computes a type's size in bytes the way Cb's `sizeof` operator
// reports it: sized integers and floats by their declared width, structs as
// the sum of their members' sizes (no padding/alignment modeling, since Cb
// values are never reinterpreted across a raw byte layout — §9 Supplemented
// Features "sizeof reports a logical, not an ABI, size").
func (e *Evaluator) sizeOf(t types.Type) int {
	switch tt := t.(type) {
	case *types.Integer:
		return int(tt.Width) / 8
	case *types.Float:
		return int(tt.Width) / 8
	case *types.Pointer:
		return 8
	case *types.Reference:
		return 8
	case *types.Array:
		total := e.sizeOf(tt.Element)
		for _, d := range tt.Dimensions {
			total *= d.Size
		}
		return total
	case *types.Struct:
		total := 0
		for _, m := range tt.Members {
			total += e.sizeOf(m.Type)
		}
		return total
	case *types.Enum:
		total := 4 // discriminant
		for _, v := range tt.Variants {
			if v.Payload != nil {
				if s := e.sizeOf(v.Payload); s > total-4 {
					total = 4 + s
				}
			}
		}
		return total
	default:
		switch t {
		case types.Bool, types.Char:
			return 1
		case types.Void:
			return 0
		}
		return 0
	}
}
