// Package interp implements Cb's tree-walking evaluator: the polymorphic
// Value model (C2), the statement/expression walk (C4), method dispatch and
// generic instantiation (C5), the cooperative task scheduler (C6), the
// constructor/destructor/defer lifetime manager (C7), and the match/switch
// pattern matcher (C8). It is built directly against internal/ast and
// internal/types, and drives internal/interp/runtime for scopes, the type
// registry, impl tables, and the heap.
package interp

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cbscript/cb/internal/ast"
	"github.com/cbscript/cb/internal/interp/runtime"
	"github.com/cbscript/cb/internal/types"
)

// Value is the tagged-variant interface every runtime value implements,
// mirroring the teacher's `Value` contract (Type()/String()) but carrying a
// real types.Type instead of a bare name string, since Cb's type system is
// structured rather than DWScript's flat type-name tags.
type Value interface {
	// Type returns this value's static type.
	Type() types.Type
	// String stringifies the value the way print/println/printf and string
	// interpolation do.
	String() string
}

// IntValue is a sized, signed-or-unsigned integer value (§3).
type IntValue struct {
	Val int64
	T   *types.Integer
}

func (v *IntValue) Type() types.Type { return v.T }
func (v *IntValue) String() string {
	if !v.T.Signed {
		return strconv.FormatUint(uint64(v.Val), 10)
	}
	return strconv.FormatInt(v.Val, 10)
}

// FloatValue is a 32- or 64-bit floating point value.
type FloatValue struct {
	Val float64
	T   *types.Float
}

func (v *FloatValue) Type() types.Type { return v.T }
func (v *FloatValue) String() string   { return strconv.FormatFloat(v.Val, 'g', -1, 64) }

// BoolValue is a boolean value.
type BoolValue struct{ Val bool }

func (v *BoolValue) Type() types.Type { return types.Bool }
func (v *BoolValue) String() string {
	if v.Val {
		return "true"
	}
	return "false"
}

// CharValue is a single-character value.
type CharValue struct{ Val rune }

func (v *CharValue) Type() types.Type { return types.Char }
func (v *CharValue) String() string   { return string(v.Val) }

// StringValue is a string value. Strings are value-semantic and immutable
// except that indexed assignment (`s[i] = c`) is permitted on a variable's
// stored StringValue (never on a literal's own copy) — the evaluator
// rebuilds Val with the rune replaced rather than mutating shared backing
// storage, keeping copies independent (§4.2).
type StringValue struct{ Val string }

func (v *StringValue) Type() types.Type { return types.Str }
func (v *StringValue) String() string   { return v.Val }

// WithRune returns a copy of v with the rune at index i replaced, bounds
// checked against the rune length.
func (v *StringValue) WithRune(i int, r rune) (*StringValue, error) {
	runes := []rune(v.Val)
	if i < 0 || i >= len(runes) {
		return nil, fmt.Errorf("array index out of bounds: %d", i)
	}
	runes[i] = r
	return &StringValue{Val: string(runes)}, nil
}

// VoidValue is the sole value of void-returning expressions/statements.
type VoidValue struct{}

func (v *VoidValue) Type() types.Type { return types.Void }
func (v *VoidValue) String() string   { return "" }

// ArrayValue is a (possibly multidimensional) homogeneous array, stored as
// a flat row-major Data slice addressed through Dims (§3). Dims holds the
// live extent of each dimension (not necessarily the declared fixed size,
// since an Inferred extent is sized from its initializer).
type ArrayValue struct {
	Elem types.Type
	Dims []int
	Data []Value
}

func (v *ArrayValue) Type() types.Type {
	dims := make([]types.Extent, len(v.Dims))
	for i, d := range v.Dims {
		dims[i] = types.FixedExtent(d)
	}
	return &types.Array{Element: v.Elem, Dimensions: dims}
}

func (v *ArrayValue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, e := range v.Data {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(e.String())
	}
	sb.WriteString("]")
	return sb.String()
}

// Len returns the outermost dimension's extent (the length seen by a bare
// `arr.length`/indexing expression).
func (v *ArrayValue) Len() int {
	if len(v.Dims) == 0 {
		return 0
	}
	return v.Dims[0]
}

// Stride returns the number of flat Data slots spanned by one step along
// the outermost dimension (the product of the remaining dimensions' sizes).
func (v *ArrayValue) Stride() int {
	s := 1
	for _, d := range v.Dims[1:] {
		s *= d
	}
	return s
}

// Index bounds-checks i against the outermost dimension and returns the
// flat offset of that slice's first element (or, for a 1-D array, the
// element itself).
func (v *ArrayValue) Index(i int) (int, error) {
	if i < 0 || i >= v.Len() {
		return 0, fmt.Errorf("array index out of bounds: %d", i)
	}
	return i * v.Stride(), nil
}

// StructValue is a struct instance: an ordered set of member values,
// ordered exactly as the struct's field declarations (needed for
// deterministic LIFO member-destruction order, §4.7).
type StructValue struct {
	TypeName string
	St       *types.Struct
	Order    []string
	Fields   map[string]Value
}

func (v *StructValue) Type() types.Type { return v.St }
func (v *StructValue) String() string {
	var sb strings.Builder
	sb.WriteString(v.TypeName)
	sb.WriteString("{")
	for i, name := range v.Order {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(name)
		sb.WriteString(": ")
		sb.WriteString(v.Fields[name].String())
	}
	sb.WriteString("}")
	return sb.String()
}

// Get returns a member's current value.
func (v *StructValue) Get(name string) (Value, bool) {
	val, ok := v.Fields[name]
	return val, ok
}

// Set updates a member's current value in place (the struct is addressed
// by reference wherever it's reachable through a Variable or pointer).
func (v *StructValue) Set(name string, val Value) {
	v.Fields[name] = val
}

// EnumValue is one constructed variant of a discriminated enum, with an
// optional associated payload value (§3).
type EnumValue struct {
	TypeName string
	En       *types.Enum
	Variant  string
	Payload  Value // nil when the variant carries no data
}

func (v *EnumValue) Type() types.Type { return v.En }
func (v *EnumValue) String() string {
	if v.Payload == nil {
		return v.TypeName + "::" + v.Variant
	}
	return v.TypeName + "::" + v.Variant + "(" + v.Payload.String() + ")"
}

// UnionValue is a value held by a union-typed variable, carrying the
// concrete alternative actually stored (§3, §8 Scenario F).
type UnionValue struct {
	Un    *types.Union
	Inner Value
}

func (v *UnionValue) Type() types.Type { return v.Un }
func (v *UnionValue) String() string   { return v.Inner.String() }

// FunctionValue is a callable value: a free function, or a method bound to
// a receiver (Receiver non-nil) for dispatch (§4.5).
type FunctionValue struct {
	Decl      *ast.FunctionDecl
	Receiver  Value  // non-nil for bound methods ("self")
	ForType   string // concrete type the method was resolved against
	Interface string // "" for inherent methods
}

func (v *FunctionValue) Type() types.Type {
	params := make([]types.Param, len(v.Decl.Params))
	for i := range v.Decl.Params {
		params[i] = types.Param{Name: v.Decl.Params[i].Name}
	}
	return &types.Function{Params: params, Varargs: v.Decl.Varargs, Return: types.Unknown, IsAsync: v.Decl.IsAsync}
}

func (v *FunctionValue) String() string { return "<func " + v.Decl.Name + ">" }

// ReferenceValue aliases a live Variable binding (§3 Reference type): reads
// and writes go through the same runtime.Variable the referent does.
type ReferenceValue struct {
	Target *runtime.Variable
}

func (v *ReferenceValue) Type() types.Type { return &types.Reference{Referent: v.Target.Type} }
func (v *ReferenceValue) String() string   { return "&" + v.Target.Value.(Value).String() }
