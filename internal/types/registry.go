package types

import "fmt"

// UnknownTypeError reports a reference to a type name with no registered
// definition.
type UnknownTypeError struct{ Name string }

func (e *UnknownTypeError) Error() string { return fmt.Sprintf("unknown type: %s", e.Name) }

// CyclicTypedefError reports a typedef chain that never reaches a concrete
// type.
type CyclicTypedefError struct{ Chain []string }

func (e *CyclicTypedefError) Error() string {
	msg := "cyclic typedef: "
	for i, n := range e.Chain {
		if i > 0 {
			msg += " -> "
		}
		msg += n
	}
	return msg
}

// TypeMismatchError reports a failed unification between an expected and an
// actual type.
type TypeMismatchError struct {
	Expected, Actual Type
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch: expected %s, got %s", e.Expected.String(), e.Actual.String())
}

// Registry resolves typedef names to their canonical Type and looks up
// nominal declarations (structs/enums/unions/interfaces) by qualified name.
//
// Typedef resolution expands one name-to-name level at a time to a fixpoint
// (§4.1). A type registered with Define, such as an array type, is returned
// as registered; Resolve does not look inside it to resolve its element.
type Registry struct {
	typedefs map[string]string // name -> aliased type name, one level
	named    map[string]Type   // fully resolved named types (struct/enum/union/interface/typedef target)
}

// NewRegistry creates an empty type registry.
func NewRegistry() *Registry {
	return &Registry{
		typedefs: make(map[string]string),
		named:    make(map[string]Type),
	}
}

// Define registers a concrete named type (struct, enum, union, interface).
func (r *Registry) Define(name string, t Type) {
	r.named[name] = t
}

// DefineTypedef registers `name := target` where target is itself a type
// name to be resolved (possibly through further typedefs).
func (r *Registry) DefineTypedef(name, target string) {
	r.typedefs[name] = target
}

// Resolve expands typedefs to a fixpoint and returns the canonical Type.
// Detects cycles; fails with UnknownTypeError on an unregistered name.
func (r *Registry) Resolve(name string) (Type, error) {
	seen := map[string]bool{}
	chain := []string{}
	cur := name
	for {
		if seen[cur] {
			chain = append(chain, cur)
			return nil, &CyclicTypedefError{Chain: chain}
		}
		seen[cur] = true
		chain = append(chain, cur)

		if t, ok := r.named[cur]; ok {
			return t, nil
		}
		next, ok := r.typedefs[cur]
		if !ok {
			return nil, &UnknownTypeError{Name: cur}
		}
		cur = next
	}
}

// Coercion describes a permitted implicit conversion found by Unify.
type Coercion int

const (
	CoercionNone Coercion = iota
	CoercionIdentity
	CoercionWidenInt
	CoercionIntToFloat
)

// Unify checks expected against actual, returning the coercion required (if
// any) or a TypeMismatchError. Permitted widenings (§4.1): same-signedness
// wider integer, and integer literal/value to float. Nothing else implicit.
func Unify(expected, actual Type) (Coercion, error) {
	if expected.Equals(actual) {
		return CoercionIdentity, nil
	}

	if ei, ok := expected.(*Integer); ok {
		if ai, ok := actual.(*Integer); ok && ai.Signed == ei.Signed && ai.Width <= ei.Width {
			return CoercionWidenInt, nil
		}
	}

	if ef, ok := expected.(*Float); ok {
		_ = ef
		if IsInteger(actual) {
			return CoercionIntToFloat, nil
		}
	}

	return CoercionNone, &TypeMismatchError{Expected: expected, Actual: actual}
}
