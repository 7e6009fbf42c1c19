package types

import "strings"

// Extent describes one dimension of an array type: either a fixed compile
// time size, or Inferred (determined from an initializer / dynamic growth).
type Extent struct {
	Fixed    bool
	Size     int
	Inferred bool
}

func FixedExtent(n int) Extent { return Extent{Fixed: true, Size: n} }
func InferredExtent() Extent   { return Extent{Inferred: true} }

// Array is a (possibly multidimensional) homogeneous sequence type.
type Array struct {
	Element    Type
	Dimensions []Extent
}

func (a *Array) Kind() string { return "array" }

func (a *Array) String() string {
	var sb strings.Builder
	sb.WriteString(a.Element.String())
	for _, d := range a.Dimensions {
		if d.Fixed {
			sb.WriteString("[")
			sb.WriteString(itoa(d.Size))
			sb.WriteString("]")
		} else {
			sb.WriteString("[]")
		}
	}
	return sb.String()
}

func (a *Array) Equals(other Type) bool {
	o, ok := other.(*Array)
	if !ok || len(o.Dimensions) != len(a.Dimensions) || !a.Element.Equals(o.Element) {
		return false
	}
	for i, d := range a.Dimensions {
		od := o.Dimensions[i]
		if d.Fixed != od.Fixed {
			return false
		}
		if d.Fixed && d.Size != od.Size {
			return false
		}
	}
	return true
}

// Rank returns the number of dimensions.
func (a *Array) Rank() int { return len(a.Dimensions) }

// ElementAt returns the type produced by indexing one dimension off a.
func (a *Array) ElementAt() Type {
	if len(a.Dimensions) <= 1 {
		return a.Element
	}
	return &Array{Element: a.Element, Dimensions: a.Dimensions[1:]}
}

// Mutability distinguishes mutable from const pointers/references.
type Mutability int

const (
	Mutable Mutability = iota
	Const
)

// Pointer is a typed, nullable pointer with a mutability qualifier.
type Pointer struct {
	Pointee Type
	Mut     Mutability
}

func (p *Pointer) Kind() string { return "pointer" }

func (p *Pointer) String() string {
	if p.Mut == Const {
		return "const " + p.Pointee.String() + "*"
	}
	return p.Pointee.String() + "*"
}

func (p *Pointer) Equals(other Type) bool {
	o, ok := other.(*Pointer)
	return ok && o.Mut == p.Mut && p.Pointee.Equals(o.Pointee)
}

// Reference is a non-null alias to a variable of the referent type.
type Reference struct {
	Referent Type
}

func (r *Reference) Kind() string   { return "reference" }
func (r *Reference) String() string { return r.Referent.String() + "&" }
func (r *Reference) Equals(other Type) bool {
	o, ok := other.(*Reference)
	return ok && r.Referent.Equals(o.Referent)
}

// Member is one field of a Struct, in declaration order.
type Member struct {
	Name    string
	Type    Type
	Default Value // compile-time default expression result, or nil
}

// Value is a placeholder for a constant-foldable default; the evaluator
// supplies the concrete runtime representation via an opaque holder so that
// the types package has no import cycle on the value model.
type Value interface{}

// Struct is a nominal aggregate type with ordered members.
type Struct struct {
	QualifiedName string
	Members       []Member
}

func (s *Struct) Kind() string   { return "struct" }
func (s *Struct) String() string { return s.QualifiedName }
func (s *Struct) Equals(other Type) bool {
	o, ok := other.(*Struct)
	return ok && o.QualifiedName == s.QualifiedName
}

// MemberType looks up a member's declared type by name.
func (s *Struct) MemberType(name string) (Type, bool) {
	for _, m := range s.Members {
		if m.Name == name {
			return m.Type, true
		}
	}
	return nil, false
}

// EnumVariant is one alternative of an Enum, with an optional payload type.
type EnumVariant struct {
	Name    string
	Payload Type // nil if the variant carries no data
}

// Enum is a nominal discriminated union ("tagged enum") type.
type Enum struct {
	QualifiedName string
	Variants      []EnumVariant
	Discriminants map[string]int
}

func (e *Enum) Kind() string   { return "enum" }
func (e *Enum) String() string { return e.QualifiedName }
func (e *Enum) Equals(other Type) bool {
	o, ok := other.(*Enum)
	return ok && o.QualifiedName == e.QualifiedName
}

// VariantByName returns the variant descriptor and its discriminant ordinal.
func (e *Enum) VariantByName(name string) (EnumVariant, int, bool) {
	for _, v := range e.Variants {
		if v.Name == name {
			return v, e.Discriminants[name], true
		}
	}
	return EnumVariant{}, 0, false
}

// AllowedKind discriminates the shape of one Union alternative.
type AllowedKind int

const (
	AllowedLiteral AllowedKind = iota
	AllowedType
)

// AllowedAlternative is one member of a Union's allowed set: either a
// concrete literal value or a base/typedef/struct/array type.
type AllowedAlternative struct {
	Kind    AllowedKind
	Literal Value // set when Kind == AllowedLiteral
	Type    Type  // set when Kind == AllowedType
}

// Union is a sum constrained by a fixed set of allowed literals/types.
type Union struct {
	QualifiedName string
	Allowed       []AllowedAlternative
}

func (u *Union) Kind() string   { return "union" }
func (u *Union) String() string { return u.QualifiedName }
func (u *Union) Equals(other Type) bool {
	o, ok := other.(*Union)
	return ok && o.QualifiedName == u.QualifiedName
}

// MethodSig is one interface method's signature.
type MethodSig struct {
	Name   string
	Params []Param
	Return Type
}

// Param is a single function/method parameter.
type Param struct {
	Name    string
	Type    Type
	Default Value
}

// Interface declares a set of required methods; it carries no state.
type Interface struct {
	Name    string
	Methods []MethodSig
}

func (i *Interface) Kind() string   { return "interface" }
func (i *Interface) String() string { return i.Name }
func (i *Interface) Equals(other Type) bool {
	o, ok := other.(*Interface)
	return ok && o.Name == i.Name
}

// HasMethod reports whether the interface declares a method of this name.
func (i *Interface) HasMethod(name string) bool {
	for _, m := range i.Methods {
		if m.Name == name {
			return true
		}
	}
	return false
}

// Function is the type of a callable value (free function, method, lambda).
type Function struct {
	Params   []Param
	Varargs  bool
	Return   Type
	IsAsync  bool
}

func (f *Function) Kind() string { return "function" }

func (f *Function) String() string {
	var sb strings.Builder
	if f.IsAsync {
		sb.WriteString("async ")
	}
	sb.WriteString("func(")
	for i, p := range f.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.Type.String())
	}
	if f.Varargs {
		sb.WriteString(", ...")
	}
	sb.WriteString(") ")
	sb.WriteString(f.Return.String())
	return sb.String()
}

func (f *Function) Equals(other Type) bool {
	o, ok := other.(*Function)
	if !ok || len(o.Params) != len(f.Params) || o.Varargs != f.Varargs || o.IsAsync != f.IsAsync {
		return false
	}
	if !f.Return.Equals(o.Return) {
		return false
	}
	for i, p := range f.Params {
		if !p.Type.Equals(o.Params[i].Type) {
			return false
		}
	}
	return true
}

// TypeParam is a generic type parameter with interface bounds ("T: A + B").
type TypeParam struct {
	Name   string
	Bounds []*Interface
}

func (t *TypeParam) Kind() string   { return "typeparam" }
func (t *TypeParam) String() string { return t.Name }
func (t *TypeParam) Equals(other Type) bool {
	o, ok := other.(*TypeParam)
	return ok && o.Name == t.Name
}

// Generic is an instantiation of a generic base type with concrete
// type arguments, e.g. Box<Option<int>>.
type Generic struct {
	Base     string
	TypeArgs []Type
}

func (g *Generic) Kind() string { return "generic" }

func (g *Generic) String() string {
	var sb strings.Builder
	sb.WriteString(g.Base)
	sb.WriteString("<")
	for i, a := range g.TypeArgs {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(a.String())
	}
	sb.WriteString(">")
	return sb.String()
}

func (g *Generic) Equals(other Type) bool {
	o, ok := other.(*Generic)
	if !ok || o.Base != g.Base || len(o.TypeArgs) != len(g.TypeArgs) {
		return false
	}
	for i, a := range g.TypeArgs {
		if !a.Equals(o.TypeArgs[i]) {
			return false
		}
	}
	return true
}

// CacheKey returns the (base, type_args) monomorphization cache key.
func (g *Generic) CacheKey() string {
	var sb strings.Builder
	sb.WriteString(g.Base)
	for _, a := range g.TypeArgs {
		sb.WriteString("|")
		sb.WriteString(a.String())
	}
	return sb.String()
}

// Future is the type of a value produced by an async call.
type Future struct {
	Inner Type
}

func (f *Future) Kind() string   { return "future" }
func (f *Future) String() string { return "Future<" + f.Inner.String() + ">" }
func (f *Future) Equals(other Type) bool {
	o, ok := other.(*Future)
	return ok && f.Inner.Equals(o.Inner)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
