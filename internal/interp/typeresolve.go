package interp

import (
	"fmt"

	"github.com/cbscript/cb/internal/ast"
	"github.com/cbscript/cb/internal/types"
)

// builtinPrimitives maps the fixed-spelling base type names (§3) to their
// singleton types.Type. "int"/"long"/etc. are Cb's sized-integer spellings
// (§4.1's width names tiny/short/int/long).
var builtinPrimitives = map[string]types.Type{
	"tiny":   types.Tiny,
	"short":  types.Short,
	"int":    types.Int,
	"long":   types.Long,
	"utiny":  types.UTiny,
	"ushort": types.UShort,
	"uint":   types.UInt,
	"ulong":  types.ULong,
	"float":  types.Float32,
	"double": types.Float64,
	"bool":   types.Bool,
	"char":   types.Char,
	"string": types.Str,
	"void":   types.Void,
}

// ResolveType expands a parsed TypeExpr into a concrete types.Type,
// resolving named types through the environment's registry/struct/enum/
// union/interface tables and generic instantiation (§4.1, §4.5).
func (e *Evaluator) ResolveType(te ast.TypeExpr) (types.Type, error) {
	switch t := te.(type) {
	case *ast.NamedType:
		return e.resolveNamedType(t.Name)
	case *ast.PointerType:
		pointee, err := e.ResolveType(t.Pointee)
		if err != nil {
			return nil, err
		}
		mut := types.Mutable
		if t.Const {
			mut = types.Const
		}
		return &types.Pointer{Pointee: pointee, Mut: mut}, nil
	case *ast.ReferenceType:
		referent, err := e.ResolveType(t.Referent)
		if err != nil {
			return nil, err
		}
		return &types.Reference{Referent: referent}, nil
	case *ast.ArrayType:
		elem, err := e.ResolveType(t.Element)
		if err != nil {
			return nil, err
		}
		extent := types.InferredExtent()
		if t.Size >= 0 {
			extent = types.FixedExtent(t.Size)
		}
		if arr, ok := elem.(*types.Array); ok {
			// Flatten "T[n][m]"-style nesting into one multidimensional Array.
			dims := append([]types.Extent{extent}, arr.Dimensions...)
			return &types.Array{Element: arr.Element, Dimensions: dims}, nil
		}
		return &types.Array{Element: elem, Dimensions: []types.Extent{extent}}, nil
	case *ast.GenericType:
		return e.resolveGenericType(t)
	case *ast.FunctionType:
		params := make([]types.Param, len(t.Params))
		for i, p := range t.Params {
			pt, err := e.ResolveType(p)
			if err != nil {
				return nil, err
			}
			params[i] = types.Param{Type: pt}
		}
		ret, err := e.ResolveType(t.Return)
		if err != nil {
			return nil, err
		}
		return &types.Function{Params: params, Return: ret, IsAsync: t.IsAsync}, nil
	default:
		return nil, fmt.Errorf("unknown type expression %T", te)
	}
}

func (e *Evaluator) resolveNamedType(name string) (types.Type, error) {
	if prim, ok := builtinPrimitives[name]; ok {
		return prim, nil
	}
	if bound, ok := e.lookupTypeParam(name); ok {
		return bound, nil
	}
	qualified, found, err := e.Env.Resolver().Resolve(name, func(q string) bool {
		_, rerr := e.Env.Types.Resolve(q)
		return rerr == nil
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, &types.UnknownTypeError{Name: name}
	}
	return e.Env.Types.Resolve(qualified)
}

// resolveGenericType resolves a "Base<Args...>" type expression, triggering
// generic struct/enum monomorphization when Base names one (§4.5, §4.6).
func (e *Evaluator) resolveGenericType(t *ast.GenericType) (types.Type, error) {
	args := make([]types.Type, len(t.Args))
	for i, a := range t.Args {
		rt, err := e.ResolveType(a)
		if err != nil {
			return nil, err
		}
		args[i] = rt
	}

	switch t.Base {
	case "Option":
		if len(args) != 1 {
			return nil, fmt.Errorf("Option requires exactly one type argument")
		}
		return e.optionType(args[0]), nil
	case "Result":
		if len(args) != 2 {
			return nil, fmt.Errorf("Result requires exactly two type arguments")
		}
		return e.resultType(args[0], args[1]), nil
	case "Future":
		if len(args) != 1 {
			return nil, fmt.Errorf("Future requires exactly one type argument")
		}
		return &types.Future{Inner: args[0]}, nil
	}

	return e.InstantiateGenericType(t.Base, args)
}

// optionType returns the built-in Option<T> enum type, registering its
// (base, type_args) instantiation in the type registry on first use.
func (e *Evaluator) optionType(inner types.Type) types.Type {
	g := &types.Generic{Base: "Option", TypeArgs: []types.Type{inner}}
	key := "Option<" + inner.String() + ">"
	if existing, err := e.Env.Types.Resolve(key); err == nil {
		return existing
	}
	en := &types.Enum{
		QualifiedName: key,
		Variants: []types.EnumVariant{
			{Name: "Some", Payload: inner},
			{Name: "None"},
		},
		Discriminants: map[string]int{"Some": 0, "None": 1},
	}
	e.Env.Types.Define(key, en)
	_ = g
	return en
}

// resultType returns the built-in Result<T,E> enum type.
func (e *Evaluator) resultType(ok, errT types.Type) types.Type {
	key := "Result<" + ok.String() + ", " + errT.String() + ">"
	if existing, err := e.Env.Types.Resolve(key); err == nil {
		return existing
	}
	en := &types.Enum{
		QualifiedName: key,
		Variants: []types.EnumVariant{
			{Name: "Ok", Payload: ok},
			{Name: "Err", Payload: errT},
		},
		Discriminants: map[string]int{"Ok": 0, "Err": 1},
	}
	e.Env.Types.Define(key, en)
	return en
}
