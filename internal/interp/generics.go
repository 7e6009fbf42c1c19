package interp

import (
	"fmt"
	"strings"

	"github.com/cbscript/cb/internal/ast"
	"github.com/cbscript/cb/internal/errors"
	"github.com/cbscript/cb/internal/types"
)

// InstantiateGenericType monomorphizes a user-defined generic struct or
// enum against concrete type arguments, caching the result under its
// (base, type_args) key so repeated uses of the same instantiation return
// the identical types.Type (§4.5, §4.6).
func (e *Evaluator) InstantiateGenericType(base string, args []types.Type) (types.Type, error) {
	key := (&types.Generic{Base: base, TypeArgs: args}).CacheKey()
	if cached, ok := e.Env.GenericCacheGet(key); ok {
		if t, ok := cached.(types.Type); ok {
			return t, nil
		}
	}

	if structDecl, ok := e.Env.Struct(base); ok {
		t, err := e.instantiateGenericStruct(structDecl, args, key)
		if err != nil {
			return nil, err
		}
		return t, nil
	}
	if enumDecl, ok := e.Env.Enum(base); ok {
		t, err := e.instantiateGenericEnum(enumDecl, args, key)
		if err != nil {
			return nil, err
		}
		return t, nil
	}
	return nil, &types.UnknownTypeError{Name: base}
}

func bindTypeParams(params []ast.TypeParamDecl, args []types.Type) (map[string]types.Type, error) {
	if len(params) != len(args) {
		return nil, fmt.Errorf("expected %d type argument(s), got %d", len(params), len(args))
	}
	bound := make(map[string]types.Type, len(params))
	for i, p := range params {
		bound[p.Name] = args[i]
	}
	return bound, nil
}

// concreteTypeNameForType extracts the nominal name a bound-satisfaction
// check keys impl lookups off of, mirroring concreteTypeName's treatment of
// runtime receivers (dispatch.go) but over a types.Type instantiation
// argument instead of a Value.
func concreteTypeNameForType(t types.Type) string {
	switch tt := t.(type) {
	case *types.Struct:
		return tt.QualifiedName
	case *types.Enum:
		return tt.QualifiedName
	default:
		return t.String()
	}
}

// implementsInterface reports whether typeName's registered impl blocks
// provide every method the interface ifaceName declares (§4.5 "require all
// listed interfaces to be implemented").
func (e *Evaluator) implementsInterface(typeName, ifaceName string) bool {
	ifaceDecl, ok := e.Env.Interface(ifaceName)
	if !ok {
		return false
	}
	implemented := make(map[string]bool)
	for _, m := range e.Env.ImplsFor(typeName) {
		if m.Interface == ifaceName {
			implemented[m.Decl.Name] = true
		}
	}
	for _, sig := range ifaceDecl.Methods {
		if !implemented[sig.Name] {
			return false
		}
	}
	return true
}

// hasInherentResolution reports whether typeName has an inherent (non-
// interface) impl of methodName, the escape hatch §4.5 gives a user to
// resolve a method-name conflict between two bounds explicitly.
func (e *Evaluator) hasInherentResolution(typeName, methodName string) bool {
	for _, m := range e.Env.ImplsFor(typeName) {
		if m.Decl.Name == methodName && m.Interface == "" {
			return true
		}
	}
	return false
}

// checkTypeParamBounds enforces §4.5's two generic-instantiation rules that
// arity checking alone misses: every bound interface ("T: A + B") must
// actually be implemented by the concrete argument, and if two bounds on
// the same parameter introduce a same-named method, instantiation fails
// unless the type's own impl resolves the conflict with an inherent method
// ("Method-name conflict detection ... instantiation fails unless the
// user's impl resolves the conflict").
func (e *Evaluator) checkTypeParamBounds(params []ast.TypeParamDecl, bound map[string]types.Type) error {
	for _, p := range params {
		if len(p.Bounds) == 0 {
			continue
		}
		argType, ok := bound[p.Name]
		if !ok {
			continue
		}
		typeName := concreteTypeNameForType(argType)

		methodOwners := make(map[string][]string)
		for _, boundName := range p.Bounds {
			ifaceDecl, ok := e.Env.Interface(boundName)
			if !ok {
				return fmt.Errorf("%s: unknown interface bound %s on type parameter %s", errors.KindUndefinedInterface, boundName, p.Name)
			}
			if !e.implementsInterface(typeName, boundName) {
				return fmt.Errorf("%s: %s does not implement bound %s required by type parameter %s", errors.KindIncompleteImpl, typeName, boundName, p.Name)
			}
			for _, sig := range ifaceDecl.Methods {
				methodOwners[sig.Name] = append(methodOwners[sig.Name], boundName)
			}
		}
		for methodName, owners := range methodOwners {
			if len(owners) > 1 && !e.hasInherentResolution(typeName, methodName) {
				return fmt.Errorf("%s: %s.%s is required by multiple bounds on %s (%s) with no resolving impl",
					errors.KindMethodNameConflict, typeName, methodName, p.Name, strings.Join(owners, ", "))
			}
		}
	}
	return nil
}

// substituteType replaces a bare NamedType matching a bound type parameter
// with its concrete argument. Any other type expression, including a
// composite one that mentions a type parameter (T*, T[], Box<T>), is handed
// to resolve unchanged; no substitution is made inside it.
func substituteType(te ast.TypeExpr, bound map[string]types.Type, resolve func(ast.TypeExpr) (types.Type, error)) (types.Type, error) {
	if named, ok := te.(*ast.NamedType); ok {
		if t, ok := bound[named.Name]; ok {
			return t, nil
		}
	}
	return resolve(te)
}

func (e *Evaluator) instantiateGenericStruct(decl *ast.StructDecl, args []types.Type, key string) (types.Type, error) {
	bound, err := bindTypeParams(decl.TypeParams, args)
	if err != nil {
		return nil, err
	}
	if err := e.checkTypeParamBounds(decl.TypeParams, bound); err != nil {
		return nil, err
	}
	qualified := (&types.Generic{Base: decl.Name, TypeArgs: args}).String()

	members := make([]types.Member, len(decl.Fields))
	for i, f := range decl.Fields {
		ft, err := substituteType(f.Type, bound, e.ResolveType)
		if err != nil {
			return nil, err
		}
		members[i] = types.Member{Name: f.Name, Type: ft}
	}
	st := &types.Struct{QualifiedName: qualified, Members: members}
	e.Env.Types.Define(qualified, st)
	e.Env.GenericCachePut(key, st)
	e.Env.GenericCachePut("decl:"+qualified, decl)
	e.Env.GenericCachePut("bound:"+qualified, bound)
	return st, nil
}

func (e *Evaluator) instantiateGenericEnum(decl *ast.EnumDecl, args []types.Type, key string) (types.Type, error) {
	bound, err := bindTypeParams(decl.TypeParams, args)
	if err != nil {
		return nil, err
	}
	if err := e.checkTypeParamBounds(decl.TypeParams, bound); err != nil {
		return nil, err
	}
	qualified := (&types.Generic{Base: decl.Name, TypeArgs: args}).String()

	variants := make([]types.EnumVariant, len(decl.Variants))
	discriminants := make(map[string]int, len(decl.Variants))
	for i, v := range decl.Variants {
		var payload types.Type
		if v.Payload != nil {
			pt, err := substituteType(v.Payload, bound, e.ResolveType)
			if err != nil {
				return nil, err
			}
			payload = pt
		}
		variants[i] = types.EnumVariant{Name: v.Name, Payload: payload}
		discriminants[v.Name] = i
	}
	en := &types.Enum{QualifiedName: qualified, Variants: variants, Discriminants: discriminants}
	e.Env.Types.Define(qualified, en)
	e.Env.GenericCachePut(key, en)
	e.Env.GenericCachePut("decl:"+qualified, decl)
	e.Env.GenericCachePut("bound:"+qualified, bound)
	return en, nil
}

// InstantiateGenericFunction monomorphizes a generic free function or
// method against inferred or explicit type arguments (§4.5, §4.6),
// returning a FunctionDecl whose body's type expressions the evaluator
// resolves through the bound substitution at call time via a scoped
// typeParamStack (see resolveNamedType's fallback).
func (e *Evaluator) InstantiateGenericFunction(decl *ast.FunctionDecl, args []types.Type) (*ast.FunctionDecl, map[string]types.Type, error) {
	bound, err := bindTypeParams(decl.TypeParams, args)
	if err != nil {
		return nil, nil, err
	}
	key := "func:" + decl.Name + (&types.Generic{Base: decl.Name, TypeArgs: args}).CacheKey()
	if cached, ok := e.Env.GenericCacheGet(key); ok {
		if fd, ok := cached.(*ast.FunctionDecl); ok {
			return fd, bound, nil
		}
	}
	e.Env.GenericCachePut(key, decl)
	return decl, bound, nil
}

// CallGenericFunction instantiates decl against args (inferred elsewhere)
// and calls it with the type-parameter bindings visible to ResolveType for
// the duration of the call, so parameter/return/local type expressions
// written in terms of the function's own type parameters resolve to the
// concrete instantiation (§4.5, §4.6).
func (e *Evaluator) CallGenericFunction(t *Task, decl *ast.FunctionDecl, typeArgs []types.Type, args []Value, receiver Value, forType, ifaceName string) (Value, error) {
	_, bound, err := e.InstantiateGenericFunction(decl, typeArgs)
	if err != nil {
		return nil, err
	}
	e.pushTypeParams(bound)
	defer e.popTypeParams()
	return e.CallFunction(t, decl, args, receiver, forType, ifaceName)
}

// InferTypeArgs infers a generic function's type arguments positionally
// from its declared parameter types and the runtime types of args, the
// simple left-to-right unification the language needs since Cb generics
// have no variance or bounds-based inference beyond interface membership
// (§4.5 "Monomorphization ... args inferred from call-site arguments").
func (e *Evaluator) InferTypeArgs(decl *ast.FunctionDecl, args []Value) ([]types.Type, error) {
	names := make(map[string]bool, len(decl.TypeParams))
	for _, p := range decl.TypeParams {
		names[p.Name] = false
	}
	bound := make(map[string]types.Type)
	for i, p := range decl.Params {
		if i >= len(args) {
			break
		}
		if named, ok := p.Type.(*ast.NamedType); ok {
			if _, isParam := names[named.Name]; isParam {
				bound[named.Name] = args[i].Type()
			}
		}
	}
	result := make([]types.Type, len(decl.TypeParams))
	for i, p := range decl.TypeParams {
		t, ok := bound[p.Name]
		if !ok {
			return nil, fmt.Errorf("cannot infer type argument %s", p.Name)
		}
		result[i] = t
	}
	return result, nil
}
