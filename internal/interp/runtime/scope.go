// Package runtime implements Cb's environment: nested lexical scopes, the
// typedef/struct/enum/interface registry, impl lookup tables, module
// namespaces, the generic instantiation cache, and the new/delete heap
// (spec §3 Environment, §4.3).
//
// This package stores Values as opaque interface{}: the concrete Value
// variant lives in internal/interp (C2), which imports runtime freely;
// keeping the dependency one-directional avoids a cycle, the same
// discipline the teacher's runtime package uses to stay independent of
// the interpreter package that drives it.
package runtime

import "github.com/cbscript/cb/internal/types"

// Variable is a symbol-table entry: declared type, current value, and the
// mutability/lifecycle flags the evaluator and lifetime manager need.
type Variable struct {
	Name       string
	Type       types.Type
	Value      interface{}
	IsConst    bool
	IsStatic   bool
	IsAssigned bool
	HasDtor    bool // true when Type is a struct with a registered destructor
}

// unwindEvent is one entry of a scope's combined declaration/defer
// timeline, used to replay cleanup in reverse registration order on scope
// exit (§4.7, §9 "defer vs destructor ordering": "things recorded later
// run first on unwinding"). Exactly one of Var/Defer is set.
type unwindEvent struct {
	Var   *Variable
	Defer func() error
}

// Scope is an ordered list of variable bindings and defer registrations,
// interleaved in declaration order, plus a link to the enclosing scope.
// Keeping both kinds of event in one timeline lets Unwind reproduce §4.7's
// precise rule: "for each destructible variable in reverse declaration
// order, run any defers registered after that variable's declaration but
// still within this scope, then its destructor" — a defer and a variable
// declared before it are not independently ordered lists, they interleave.
type Scope struct {
	Parent    *Scope
	Variables []*Variable
	byName    map[string]*Variable
	events    []unwindEvent
}

// NewScope creates a scope nested under parent (nil for the outermost).
func NewScope(parent *Scope) *Scope {
	return &Scope{Parent: parent, byName: make(map[string]*Variable)}
}

// Declare adds v to the scope. Fails if a variable of the same name is
// already declared directly in this scope (shadowing an outer scope is
// fine; re-declaring within the same scope is not, §4.3).
func (s *Scope) Declare(v *Variable) bool {
	if _, exists := s.byName[v.Name]; exists {
		return false
	}
	s.byName[v.Name] = v
	s.Variables = append(s.Variables, v)
	s.events = append(s.events, unwindEvent{Var: v})
	return true
}

// Lookup finds a variable declared directly in this scope.
func (s *Scope) Lookup(name string) (*Variable, bool) {
	v, ok := s.byName[name]
	return v, ok
}

// PushDefer registers run to execute on scope exit, interleaved with
// destructor calls for variables declared before/after it per this
// scope's declaration order (§4.7).
func (s *Scope) PushDefer(run func() error) {
	s.events = append(s.events, unwindEvent{Defer: run})
}

// Unwind replays this scope's declarations and defers in reverse
// registration order: each defer runs when its position is reached, and
// each destructible variable is passed to destroy in turn (recursive
// member destruction is the caller's responsibility, since only the
// evaluator knows how to walk a struct's own member declaration order).
// Every event still runs even if an earlier one errors; the first error
// encountered is returned, matching "cleanup always runs" with a single
// reported failure (§4.4).
func (s *Scope) Unwind(destroy func(v *Variable) error) error {
	var first error
	for i := len(s.events) - 1; i >= 0; i-- {
		ev := s.events[i]
		var err error
		if ev.Defer != nil {
			err = ev.Defer()
		} else if ev.Var.HasDtor {
			err = destroy(ev.Var)
		}
		if err != nil && first == nil {
			first = err
		}
	}
	s.events = nil
	return first
}
