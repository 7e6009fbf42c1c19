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

import (
	"github.com/cbscript/cb/internal/ast"
	"github.com/cbscript/cb/internal/types"
)

// MethodEntry binds one impl-block method to the concrete type it was
// declared for, and (when non-inherent) the interface it satisfies (§4.5).
type MethodEntry struct {
	Decl      *ast.FunctionDecl
	ForType   string
	Interface string // "" for an inherent impl
}

// FunctionEntry is a top-level (possibly generic) function registered by
// qualified name.
type FunctionEntry struct {
	Decl *ast.FunctionDecl
}

// Environment is the process-scoped runtime object (§9): globals, type
// registry, impl tables, function table, generic cache, namespaces, and
// heap. One Environment is shared by every task the scheduler runs
// (§5 "shared resources"), since concurrency here is cooperative and
// single threaded — only one task mutates it at a time. Each task keeps
// its own call stack (Frame), never shared, so a suspended task's frame
// stays frozen exactly as §3 invariant 5 requires.
type Environment struct {
	globals *Scope

	Types *types.Registry

	impls     map[string][]*MethodEntry // concrete type qualified name -> methods
	functions map[string]*FunctionEntry
	structs   map[string]*ast.StructDecl
	enums     map[string]*ast.EnumDecl
	unions    map[string]*ast.UnionDecl
	ifaces    map[string]*ast.InterfaceDecl

	// genericCache holds monomorphization results per §4.5/§4.6: the
	// instantiated types.Type keyed by (base, type_args), the specialized
	// *ast.FunctionDecl under a "func:" key, and, for an instantiated
	// struct/enum, its source decl under "decl:"+name and its type-parameter
	// bindings (map[string]types.Type) under "bound:"+name.
	genericCache map[string]interface{}

	// staticScopes holds the persistent per-function scope backing
	// `static` locals (§4.3), keyed by a caller-chosen identity: the
	// function's qualified name, or "Type.method" for impl methods.
	staticScopes map[string]*Scope

	CurrentNamespace string
	Usings           []string

	Heap *Heap
}

// NewEnvironment creates a fresh runtime with an empty global scope.
func NewEnvironment() *Environment {
	g := NewScope(nil)
	return &Environment{
		globals:      g,
		Types:        types.NewRegistry(),
		impls:        make(map[string][]*MethodEntry),
		functions:    make(map[string]*FunctionEntry),
		structs:      make(map[string]*ast.StructDecl),
		enums:        make(map[string]*ast.EnumDecl),
		unions:       make(map[string]*ast.UnionDecl),
		ifaces:       make(map[string]*ast.InterfaceDecl),
		genericCache: make(map[string]interface{}),
		staticScopes: make(map[string]*Scope),
		Heap:         NewHeap(),
	}
}

// Globals returns the root (global) scope.
func (e *Environment) Globals() *Scope {
	return e.globals
}

// StaticScope returns the persistent scope for key, creating it on first
// use, so statics in a function body re-attach across calls (§4.3).
func (e *Environment) StaticScope(key string) *Scope {
	s, ok := e.staticScopes[key]
	if !ok {
		s = NewScope(nil)
		e.staticScopes[key] = s
	}
	return s
}

// DefineStruct registers a struct type by its qualified name.
func (e *Environment) DefineStruct(qualifiedName string, decl *ast.StructDecl, t types.Type) {
	e.structs[qualifiedName] = decl
	e.Types.Define(qualifiedName, t)
}

// Struct looks up a registered struct declaration by qualified name.
func (e *Environment) Struct(qualifiedName string) (*ast.StructDecl, bool) {
	d, ok := e.structs[qualifiedName]
	return d, ok
}

// DefineEnum registers an enum type by its qualified name.
func (e *Environment) DefineEnum(qualifiedName string, decl *ast.EnumDecl, t types.Type) {
	e.enums[qualifiedName] = decl
	e.Types.Define(qualifiedName, t)
}

// Enum looks up a registered enum declaration by qualified name.
func (e *Environment) Enum(qualifiedName string) (*ast.EnumDecl, bool) {
	d, ok := e.enums[qualifiedName]
	return d, ok
}

// DefineUnion registers a union type by its qualified name.
func (e *Environment) DefineUnion(qualifiedName string, decl *ast.UnionDecl, t types.Type) {
	e.unions[qualifiedName] = decl
	e.Types.Define(qualifiedName, t)
}

// Union looks up a registered union declaration by qualified name.
func (e *Environment) Union(qualifiedName string) (*ast.UnionDecl, bool) {
	d, ok := e.unions[qualifiedName]
	return d, ok
}

// DefineInterface registers an interface type by its qualified name.
func (e *Environment) DefineInterface(qualifiedName string, decl *ast.InterfaceDecl, t types.Type) {
	e.ifaces[qualifiedName] = decl
	e.Types.Define(qualifiedName, t)
}

// Interface looks up a registered interface declaration by qualified name.
func (e *Environment) Interface(qualifiedName string) (*ast.InterfaceDecl, bool) {
	d, ok := e.ifaces[qualifiedName]
	return d, ok
}

// DefineFunction registers a top-level function by qualified name.
func (e *Environment) DefineFunction(qualifiedName string, decl *ast.FunctionDecl) {
	e.functions[qualifiedName] = &FunctionEntry{Decl: decl}
}

// Function looks up a registered function by qualified name.
func (e *Environment) Function(qualifiedName string) (*ast.FunctionDecl, bool) {
	f, ok := e.functions[qualifiedName]
	if !ok {
		return nil, false
	}
	return f.Decl, true
}

// FunctionExists reports whether qualifiedName names a registered function,
// for use as the Resolver.exists callback.
func (e *Environment) FunctionExists(qualifiedName string) bool {
	_, ok := e.functions[qualifiedName]
	return ok
}

// AddImpl registers one method of an impl block against its concrete type
// (§3 Lifecycles: "impl blocks bind behavior to types ... once per
// compilation unit").
func (e *Environment) AddImpl(entry *MethodEntry) {
	e.impls[entry.ForType] = append(e.impls[entry.ForType], entry)
}

// ImplsFor returns every method entry registered against a concrete type,
// in registration order.
func (e *Environment) ImplsFor(typeName string) []*MethodEntry {
	return e.impls[typeName]
}

// GenericCacheGet looks up a monomorphized definition by its (base,
// type_args) cache key.
func (e *Environment) GenericCacheGet(key string) (interface{}, bool) {
	v, ok := e.genericCache[key]
	return v, ok
}

// GenericCachePut stores a monomorphized definition under its cache key.
func (e *Environment) GenericCachePut(key string, def interface{}) {
	e.genericCache[key] = def
}

// Resolver returns a namespace Resolver bound to the environment's current
// namespace/using state.
func (e *Environment) Resolver() *Resolver {
	return &Resolver{Current: e.CurrentNamespace, Usings: e.Usings}
}
