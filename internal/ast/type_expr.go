package ast

import (
	"strings"

	"github.com/cbscript/cb/internal/errors"
)

// TypeExpr is the AST-level spelling of a type: an unresolved name, or a
// pointer/reference/array/generic/function shape built from one. The
// evaluator resolves a TypeExpr to a types.Type via the type registry;
// TypeExpr itself never carries a resolved types.Type so construction has
// no dependency on the type-system package.
type TypeExpr interface {
	Node
	typeExprNode()
}

// NamedType is a bare or namespace-qualified type name ("int", "Point",
// "a::b::Widget").
type NamedType struct {
	Position errors.Position
	Name     string
}

func (t *NamedType) typeExprNode()        {}
func (t *NamedType) Pos() errors.Position { return t.Position }
func (t *NamedType) String() string       { return t.Name }

// PointerType is "T*" or "const T*".
type PointerType struct {
	Position errors.Position
	Pointee  TypeExpr
	Const    bool
}

func (t *PointerType) typeExprNode()        {}
func (t *PointerType) Pos() errors.Position { return t.Position }
func (t *PointerType) String() string {
	if t.Const {
		return "const " + t.Pointee.String() + "*"
	}
	return t.Pointee.String() + "*"
}

// ReferenceType is "T&".
type ReferenceType struct {
	Position errors.Position
	Referent TypeExpr
}

func (t *ReferenceType) typeExprNode()        {}
func (t *ReferenceType) Pos() errors.Position { return t.Position }
func (t *ReferenceType) String() string       { return t.Referent.String() + "&" }

// ArrayType is "T[n]" (Size >= 0) or "T[]" (Size == -1, inferred extent).
type ArrayType struct {
	Position errors.Position
	Element  TypeExpr
	Size     int
}

func (t *ArrayType) typeExprNode()        {}
func (t *ArrayType) Pos() errors.Position { return t.Position }
func (t *ArrayType) String() string {
	if t.Size < 0 {
		return t.Element.String() + "[]"
	}
	return t.Element.String() + "[" + itoa(int64(t.Size)) + "]"
}

// GenericType is "Base<Arg1, Arg2, ...>".
type GenericType struct {
	Position errors.Position
	Base     string
	Args     []TypeExpr
}

func (t *GenericType) typeExprNode()        {}
func (t *GenericType) Pos() errors.Position { return t.Position }
func (t *GenericType) String() string {
	var sb strings.Builder
	sb.WriteString(t.Base)
	sb.WriteString("<")
	for i, a := range t.Args {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(a.String())
	}
	sb.WriteString(">")
	return sb.String()
}

// FunctionType is the type of a function value: "func(T1, T2) -> R" or,
// when IsAsync, "async func(...) -> R".
type FunctionType struct {
	Position errors.Position
	Params   []TypeExpr
	Return   TypeExpr
	IsAsync  bool
}

func (t *FunctionType) typeExprNode()        {}
func (t *FunctionType) Pos() errors.Position { return t.Position }
func (t *FunctionType) String() string {
	var sb strings.Builder
	if t.IsAsync {
		sb.WriteString("async ")
	}
	sb.WriteString("func(")
	for i, p := range t.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.String())
	}
	sb.WriteString(") -> ")
	sb.WriteString(t.Return.String())
	return sb.String()
}
