package interp

import (
	"fmt"

	"github.com/cbscript/cb/internal/errors"
	"github.com/cbscript/cb/internal/interp/runtime"
)

// ResolveMethod implements §4.5's method lookup order: an inherent impl
// (Interface == "") on the receiver's concrete type wins outright; failing
// that, every interface impl providing the method is a candidate, and more
// than one distinct candidate is an AmbiguousMethod error rather than a
// silent pick.
func (e *Evaluator) ResolveMethod(typeName, method string) (*runtime.MethodEntry, error) {
	var inherent *runtime.MethodEntry
	var viaInterfaces []*runtime.MethodEntry

	for _, m := range e.Env.ImplsFor(typeName) {
		if m.Decl.Name != method {
			continue
		}
		if m.Interface == "" {
			inherent = m
			continue
		}
		viaInterfaces = append(viaInterfaces, m)
	}

	if inherent != nil {
		return inherent, nil
	}
	if len(viaInterfaces) == 1 {
		return viaInterfaces[0], nil
	}
	if len(viaInterfaces) > 1 {
		return nil, fmt.Errorf("%s: %s.%s is provided by %d interfaces", errors.KindAmbiguousMethod, typeName, method, len(viaInterfaces))
	}
	return nil, fmt.Errorf("%s: %s has no method %s", errors.KindUndefinedMethod, typeName, method)
}

// DispatchMethod resolves and calls method on receiver with args (§4.5),
// and is the sole method-call entry point: evalMethodCall (expressions.go)
// calls through here rather than duplicating ResolveMethod's lookup. The
// receiver's concrete type — not any interface-typed variable it might be
// stored through — decides which impl runs, per §9's Open Question decision
// that an interface-typed binding carries a (concrete type, receiver) pair
// rather than erasing the concrete type. Calls invokeDecl rather than
// CallFunction directly so a generic or async impl method is instantiated/
// spawned the same way a free-function call is (§4.5, §4.6).
func (e *Evaluator) DispatchMethod(t *Task, receiver Value, method string, args []Value) (Value, error) {
	typeName := concreteTypeName(receiver)
	entry, err := e.ResolveMethod(typeName, method)
	if err != nil {
		return nil, err
	}
	return e.invokeDecl(t, entry.Decl, args, receiver, entry.ForType, entry.Interface)
}

// concreteTypeName extracts the type name dispatch keys off of: the nominal
// TypeName of a struct or enum receiver, otherwise the receiver type's
// String() spelling.
func concreteTypeName(v Value) string {
	switch rv := v.(type) {
	case *StructValue:
		return rv.TypeName
	case *EnumValue:
		return rv.TypeName
	default:
		return v.Type().String()
	}
}
