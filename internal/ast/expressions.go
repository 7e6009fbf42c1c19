package ast

import (
	"strings"

	"github.com/cbscript/cb/internal/errors"
)

// BinaryExpr is a binary operation: arithmetic, comparison, logical
// (short-circuit), bitwise, or shift.
type BinaryExpr struct {
	Position errors.Position
	Left     Expression
	Operator string
	Right    Expression
}

func (e *BinaryExpr) expressionNode()      {}
func (e *BinaryExpr) Pos() errors.Position { return e.Position }
func (e *BinaryExpr) String() string {
	return "(" + e.Left.String() + " " + e.Operator + " " + e.Right.String() + ")"
}

// UnaryExpr is a prefix unary operation (-x, !b, ~x, *p, &x).
type UnaryExpr struct {
	Position errors.Position
	Operator string
	Operand  Expression
}

func (e *UnaryExpr) expressionNode()      {}
func (e *UnaryExpr) Pos() errors.Position { return e.Position }
func (e *UnaryExpr) String() string       { return "(" + e.Operator + e.Operand.String() + ")" }

// TernaryExpr is "cond ? then : else".
type TernaryExpr struct {
	Position errors.Position
	Cond     Expression
	Then     Expression
	Else     Expression
}

func (e *TernaryExpr) expressionNode()      {}
func (e *TernaryExpr) Pos() errors.Position { return e.Position }
func (e *TernaryExpr) String() string {
	return "(" + e.Cond.String() + " ? " + e.Then.String() + " : " + e.Else.String() + ")"
}

// GroupedExpr is a parenthesized expression, kept distinct so precedence is
// visible in debug output.
type GroupedExpr struct {
	Position errors.Position
	Inner    Expression
}

func (e *GroupedExpr) expressionNode()      {}
func (e *GroupedExpr) Pos() errors.Position { return e.Position }
func (e *GroupedExpr) String() string       { return "(" + e.Inner.String() + ")" }

// MemberExpr is dotted member access ("x.field").
type MemberExpr struct {
	Position errors.Position
	Object   Expression
	Member   string
}

func (e *MemberExpr) expressionNode()      {}
func (e *MemberExpr) Pos() errors.Position { return e.Position }
func (e *MemberExpr) String() string       { return e.Object.String() + "." + e.Member }

// IndexExpr is array subscript ("arr[i]" or, for multidimensional arrays,
// one IndexExpr per dimension wrapping the previous).
type IndexExpr struct {
	Position errors.Position
	Array    Expression
	Index    Expression
}

func (e *IndexExpr) expressionNode()      {}
func (e *IndexExpr) Pos() errors.Position { return e.Position }
func (e *IndexExpr) String() string       { return e.Array.String() + "[" + e.Index.String() + "]" }

// CallExpr is a free-function call.
type CallExpr struct {
	Position errors.Position
	Callee   Expression
	Args     []Expression
}

func (e *CallExpr) expressionNode()      {}
func (e *CallExpr) Pos() errors.Position { return e.Position }
func (e *CallExpr) String() string {
	return e.Callee.String() + "(" + joinExprs(e.Args) + ")"
}

// MethodCallExpr is "receiver.method(args)" — kept distinct from CallExpr
// wrapping a MemberExpr callee so dispatch (§4.5) has the receiver
// expression and method name without re-decomposing a MemberExpr.
type MethodCallExpr struct {
	Position errors.Position
	Receiver Expression
	Method   string
	Args     []Expression
}

func (e *MethodCallExpr) expressionNode()      {}
func (e *MethodCallExpr) Pos() errors.Position { return e.Position }
func (e *MethodCallExpr) String() string {
	return e.Receiver.String() + "." + e.Method + "(" + joinExprs(e.Args) + ")"
}

// StructLiteral is "T{field: expr, ...}".
type StructLiteral struct {
	Position errors.Position
	Type     TypeExpr
	Fields   []StructLiteralField
}

// StructLiteralField is one "name: expr" pair in a StructLiteral.
type StructLiteralField struct {
	Name  string
	Value Expression
}

func (e *StructLiteral) expressionNode()      {}
func (e *StructLiteral) Pos() errors.Position { return e.Position }
func (e *StructLiteral) String() string {
	var sb strings.Builder
	sb.WriteString(e.Type.String())
	sb.WriteString("{")
	for i, f := range e.Fields {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(f.Name)
		sb.WriteString(": ")
		sb.WriteString(f.Value.String())
	}
	sb.WriteString("}")
	return sb.String()
}

// ArrayLiteral is "[e1, e2, ...]".
type ArrayLiteral struct {
	Position errors.Position
	Elements []Expression
}

func (e *ArrayLiteral) expressionNode()      {}
func (e *ArrayLiteral) Pos() errors.Position { return e.Position }
func (e *ArrayLiteral) String() string       { return "[" + joinExprs(e.Elements) + "]" }

// EnumVariantExpr constructs an enum variant, with or without a payload
// ("None", "Some(7)", "Opt<int>::Some(7)" when qualified).
type EnumVariantExpr struct {
	Position errors.Position
	EnumType TypeExpr // nil if the variant is referenced unqualified
	Variant  string
	Payload  Expression // nil if the variant carries no data
}

func (e *EnumVariantExpr) expressionNode()      {}
func (e *EnumVariantExpr) Pos() errors.Position { return e.Position }
func (e *EnumVariantExpr) String() string {
	var sb strings.Builder
	if e.EnumType != nil {
		sb.WriteString(e.EnumType.String())
		sb.WriteString("::")
	}
	sb.WriteString(e.Variant)
	if e.Payload != nil {
		sb.WriteString("(")
		sb.WriteString(e.Payload.String())
		sb.WriteString(")")
	}
	return sb.String()
}

// RangeExpr is "a...b", valid only inside switch case labels.
type RangeExpr struct {
	Position errors.Position
	Start    Expression
	End      Expression
}

func (e *RangeExpr) expressionNode()      {}
func (e *RangeExpr) Pos() errors.Position { return e.Position }
func (e *RangeExpr) String() string       { return e.Start.String() + "..." + e.End.String() }

// NewExpr is "new T(args)" (single heap instance) or "new T[n]" (heap
// array); Count is nil for the single-instance form.
type NewExpr struct {
	Position errors.Position
	Type     TypeExpr
	Args     []Expression
	Count    Expression
}

func (e *NewExpr) expressionNode()      {}
func (e *NewExpr) Pos() errors.Position { return e.Position }
func (e *NewExpr) String() string {
	if e.Count != nil {
		return "new " + e.Type.String() + "[" + e.Count.String() + "]"
	}
	return "new " + e.Type.String() + "(" + joinExprs(e.Args) + ")"
}

// DeleteExpr is "delete p".
type DeleteExpr struct {
	Position errors.Position
	Pointer  Expression
}

func (e *DeleteExpr) expressionNode()      {}
func (e *DeleteExpr) Pos() errors.Position { return e.Position }
func (e *DeleteExpr) String() string       { return "delete " + e.Pointer.String() }

// SizeofExpr is "sizeof(T)".
type SizeofExpr struct {
	Position errors.Position
	Type     TypeExpr
}

func (e *SizeofExpr) expressionNode()      {}
func (e *SizeofExpr) Pos() errors.Position { return e.Position }
func (e *SizeofExpr) String() string       { return "sizeof(" + e.Type.String() + ")" }

// TryExpr is the "?" error-propagation operator.
type TryExpr struct {
	Position errors.Position
	Inner    Expression
}

func (e *TryExpr) expressionNode()      {}
func (e *TryExpr) Pos() errors.Position { return e.Position }
func (e *TryExpr) String() string       { return e.Inner.String() + "?" }

// AwaitExpr is "await e".
type AwaitExpr struct {
	Position errors.Position
	Inner    Expression
}

func (e *AwaitExpr) expressionNode()      {}
func (e *AwaitExpr) Pos() errors.Position { return e.Position }
func (e *AwaitExpr) String() string       { return "await " + e.Inner.String() }

func joinExprs(exprs []Expression) string {
	var sb strings.Builder
	for i, e := range exprs {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(e.String())
	}
	return sb.String()
}
