package interp

import (
	"fmt"

	"github.com/cbscript/cb/internal/interp/runtime"
	"github.com/cbscript/cb/internal/types"
)

// destroyVariable runs v's destructor (the inherent impl method named
// "~"+TypeName, §4.7: "a method named the same as For is the constructor;
// one named '~'+For is the destructor") and then recursively destroys any
// struct-typed members in reverse declaration order, depth first, so a member's own destructor observes
// its own members still intact (§4.7 "recursively destroy value-member
// structs").
func (e *Evaluator) destroyVariable(t *Task, v *runtime.Variable) error {
	return e.destroyValue(t, v.Value)
}

// destroyValue is destroyVariable's recursive core, usable for any
// destructible value regardless of whether it is reachable through a named
// variable (a struct held in an array slot, for instance).
func (e *Evaluator) destroyValue(t *Task, val interface{}) error {
	sv, ok := val.(*StructValue)
	if !ok {
		return nil
	}

	dtorName := "~" + sv.TypeName
	for _, m := range e.Env.ImplsFor(sv.TypeName) {
		if m.Decl.Name == dtorName {
			if _, err := e.CallFunction(t, m.Decl, nil, sv, sv.TypeName, m.Interface); err != nil {
				return err
			}
			break
		}
	}

	for i := len(sv.Order) - 1; i >= 0; i-- {
		member, _ := sv.Get(sv.Order[i])
		if err := e.destroyValue(t, member); err != nil {
			return err
		}
	}
	return nil
}

// hasConstructor reports whether typeName has a registered constructor (the
// impl-block method named the same as the type, §4.7).
func (e *Evaluator) hasConstructor(typeName string) bool {
	for _, m := range e.Env.ImplsFor(typeName) {
		if m.Decl.Name == typeName {
			return true
		}
	}
	return false
}

// hasDestructor reports whether typeName has a registered destructor, so
// the evaluator can set Variable.HasDtor correctly at declaration time
// (only destructible variables are walked during Scope.Unwind).
func (e *Evaluator) hasDestructor(typeName string) bool {
	dtorName := "~" + typeName
	for _, m := range e.Env.ImplsFor(typeName) {
		if m.Decl.Name == dtorName {
			return true
		}
	}
	return false
}

// RunConstructor invokes typeName's constructor (the impl-block method
// named the same as the type, §4.7) against a freshly zero-valued struct,
// falling back to the zero value when no constructor is defined.
func (e *Evaluator) RunConstructor(t *Task, typeName string, args []Value) (Value, error) {
	zero, err := e.zeroStruct(typeName)
	if err != nil {
		return nil, err
	}
	for _, m := range e.Env.ImplsFor(typeName) {
		if m.Decl.Name == typeName {
			if _, err := e.CallFunction(t, m.Decl, args, zero, typeName, m.Interface); err != nil {
				return nil, err
			}
			return zero, nil
		}
	}
	return zero, nil
}

// zeroStruct builds a struct value with every member set to its declared
// default expression, or its type's zero value when no default is given.
func (e *Evaluator) zeroStruct(typeName string) (*StructValue, error) {
	decl, ok := e.Env.Struct(typeName)
	if !ok {
		return nil, fmt.Errorf("unknown struct type %s", typeName)
	}
	resolved, err := e.Env.Types.Resolve(typeName)
	if err != nil {
		return nil, err
	}
	st, _ := resolved.(*types.Struct)

	fields := make(map[string]Value, len(decl.Fields))
	order := make([]string, len(decl.Fields))
	for i, f := range decl.Fields {
		ft, err := e.ResolveType(f.Type)
		if err != nil {
			return nil, err
		}
		var v Value
		if f.Default != nil {
			dv, err := e.evalConstExpr(f.Default)
			if err != nil {
				return nil, err
			}
			v = dv
		} else {
			v, err = e.zeroValue(ft)
			if err != nil {
				return nil, err
			}
		}
		fields[f.Name] = v
		order[i] = f.Name
	}
	return &StructValue{TypeName: typeName, St: st, Order: order, Fields: fields}, nil
}
