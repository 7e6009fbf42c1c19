package ast

import (
	"strings"

	"github.com/cbscript/cb/internal/errors"
)

// Param is one function/method parameter; Default is nil when the
// parameter is required. Once a parameter has a Default, every later
// parameter in the same list must too (NonDefaultAfterDefault, §7).
type Param struct {
	Name    string
	Type    TypeExpr
	Default Expression
}

func (p Param) String() string {
	s := p.Type.String() + " " + p.Name
	if p.Default != nil {
		s += " = " + p.Default.String()
	}
	return s
}

// TypeParamDecl is a generic type parameter with interface bounds
// ("T: A + B").
type TypeParamDecl struct {
	Name   string
	Bounds []string
}

func (t TypeParamDecl) String() string {
	if len(t.Bounds) == 0 {
		return t.Name
	}
	return t.Name + ": " + strings.Join(t.Bounds, " + ")
}

// FunctionDecl is a top-level or impl-scoped function/method definition.
type FunctionDecl struct {
	Position   errors.Position
	Name       string
	TypeParams []TypeParamDecl
	Params     []Param
	Varargs    bool
	Return     TypeExpr
	Body       *BlockStmt
	IsAsync    bool
	IsExported bool
}

func (d *FunctionDecl) declNode()         {}
func (d *FunctionDecl) Pos() errors.Position { return d.Position }
func (d *FunctionDecl) String() string {
	var sb strings.Builder
	if d.IsExported {
		sb.WriteString("export ")
	}
	if d.IsAsync {
		sb.WriteString("async ")
	}
	sb.WriteString("func ")
	sb.WriteString(d.Name)
	if len(d.TypeParams) > 0 {
		sb.WriteString("<")
		for i, tp := range d.TypeParams {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(tp.String())
		}
		sb.WriteString(">")
	}
	sb.WriteString("(")
	for i, p := range d.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.String())
	}
	sb.WriteString(") ")
	sb.WriteString(d.Return.String())
	sb.WriteString(" ")
	sb.WriteString(d.Body.String())
	return sb.String()
}

// FieldDecl is one struct member: "T name [= default];".
type FieldDecl struct {
	Name    string
	Type    TypeExpr
	Default Expression
}

// StructDecl declares a nominal aggregate type, with an optional
// constructor/destructor pair supplied via its impl block(s) rather than
// inline (matching §4.7: constructors/destructors live in "impl T { T(...) {...} }").
type StructDecl struct {
	Position   errors.Position
	Name       string
	TypeParams []TypeParamDecl
	Fields     []FieldDecl
	IsExported bool
}

func (d *StructDecl) declNode()         {}
func (d *StructDecl) Pos() errors.Position { return d.Position }
func (d *StructDecl) String() string {
	var sb strings.Builder
	if d.IsExported {
		sb.WriteString("export ")
	}
	sb.WriteString("struct ")
	sb.WriteString(d.Name)
	sb.WriteString(" {\n")
	for _, f := range d.Fields {
		sb.WriteString("  ")
		sb.WriteString(f.Type.String())
		sb.WriteString(" ")
		sb.WriteString(f.Name)
		sb.WriteString(";\n")
	}
	sb.WriteString("}")
	return sb.String()
}

// EnumVariantDecl is one alternative of an EnumDecl; Payload is nil for a
// no-data variant.
type EnumVariantDecl struct {
	Name    string
	Payload TypeExpr
}

// EnumDecl declares a discriminated enum (tagged union), optionally generic
// ("enum Opt<T> { Some(T), None }").
type EnumDecl struct {
	Position   errors.Position
	Name       string
	TypeParams []TypeParamDecl
	Variants   []EnumVariantDecl
	IsExported bool
}

func (d *EnumDecl) declNode()         {}
func (d *EnumDecl) Pos() errors.Position { return d.Position }
func (d *EnumDecl) String() string {
	var sb strings.Builder
	if d.IsExported {
		sb.WriteString("export ")
	}
	sb.WriteString("enum ")
	sb.WriteString(d.Name)
	sb.WriteString(" { ")
	for i, v := range d.Variants {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(v.Name)
		if v.Payload != nil {
			sb.WriteString("(")
			sb.WriteString(v.Payload.String())
			sb.WriteString(")")
		}
	}
	sb.WriteString(" }")
	return sb.String()
}

// UnionAlternativeDecl is one allowed alternative of a UnionDecl: either a
// literal expression or a type.
type UnionAlternativeDecl struct {
	Literal Expression // set when this alternative is a literal value
	Type    TypeExpr   // set when this alternative is a type
}

// UnionDecl declares a union constrained to a fixed set of allowed literals
// or types ("union Status = 200 | 404 | \"err\";").
type UnionDecl struct {
	Position     errors.Position
	Name         string
	Alternatives []UnionAlternativeDecl
	IsExported   bool
}

func (d *UnionDecl) declNode()         {}
func (d *UnionDecl) Pos() errors.Position { return d.Position }
func (d *UnionDecl) String() string {
	var sb strings.Builder
	if d.IsExported {
		sb.WriteString("export ")
	}
	sb.WriteString("union ")
	sb.WriteString(d.Name)
	sb.WriteString(" = ")
	for i, a := range d.Alternatives {
		if i > 0 {
			sb.WriteString(" | ")
		}
		if a.Literal != nil {
			sb.WriteString(a.Literal.String())
		} else {
			sb.WriteString(a.Type.String())
		}
	}
	sb.WriteString(";")
	return sb.String()
}

// MethodSigDecl is one interface method requirement.
type MethodSigDecl struct {
	Name    string
	Params  []Param
	Varargs bool
	Return  TypeExpr
}

// InterfaceDecl declares a set of required methods; interfaces carry no
// state (§3 Lifecycles).
type InterfaceDecl struct {
	Position   errors.Position
	Name       string
	Methods    []MethodSigDecl
	IsExported bool
}

func (d *InterfaceDecl) declNode()         {}
func (d *InterfaceDecl) Pos() errors.Position { return d.Position }
func (d *InterfaceDecl) String() string {
	var sb strings.Builder
	if d.IsExported {
		sb.WriteString("export ")
	}
	sb.WriteString("interface ")
	sb.WriteString(d.Name)
	sb.WriteString(" { ")
	for _, m := range d.Methods {
		sb.WriteString(m.Name)
		sb.WriteString("(); ")
	}
	sb.WriteString("}")
	return sb.String()
}

// ImplBlock binds method bodies to a concrete type, either inherently
// ("impl T { ... }") or for an interface ("impl I for T { ... }").
// Interface is "" for an inherent impl. A method named the same as For is
// the constructor; one named "~" + For is the destructor.
type ImplBlock struct {
	Position  errors.Position
	Interface string
	For       string
	Methods   []*FunctionDecl
}

func (d *ImplBlock) declNode()         {}
func (d *ImplBlock) Pos() errors.Position { return d.Position }
func (d *ImplBlock) String() string {
	var sb strings.Builder
	sb.WriteString("impl ")
	if d.Interface != "" {
		sb.WriteString(d.Interface)
		sb.WriteString(" for ")
	}
	sb.WriteString(d.For)
	sb.WriteString(" { ")
	for _, m := range d.Methods {
		sb.WriteString(m.Name)
		sb.WriteString("(); ")
	}
	sb.WriteString("}")
	return sb.String()
}

// TypedefDecl aliases Name to Target, resolved on use (§4.1).
type TypedefDecl struct {
	Position   errors.Position
	Name       string
	Target     TypeExpr
	IsExported bool
}

func (d *TypedefDecl) declNode()         {}
func (d *TypedefDecl) Pos() errors.Position { return d.Position }
func (d *TypedefDecl) String() string {
	return "typedef " + d.Name + " = " + d.Target.String() + ";"
}

// ModuleDecl names the current compilation unit's module/namespace.
type ModuleDecl struct {
	Position errors.Position
	Name     string
}

func (d *ModuleDecl) declNode()         {}
func (d *ModuleDecl) Pos() errors.Position { return d.Position }
func (d *ModuleDecl) String() string       { return "module " + d.Name + ";" }

// ImportDecl is "import \"path\";" or, when Names is non-empty, the
// selective form "import { a, b } from \"path\";".
type ImportDecl struct {
	Position errors.Position
	Path     string
	Names    []string
}

func (d *ImportDecl) declNode()         {}
func (d *ImportDecl) Pos() errors.Position { return d.Position }
func (d *ImportDecl) String() string {
	if len(d.Names) == 0 {
		return "import \"" + d.Path + "\";"
	}
	return "import { " + strings.Join(d.Names, ", ") + " } from \"" + d.Path + "\";"
}

// UsingDecl is "using namespace X;", adding X to the unqualified name
// search list (§4.3).
type UsingDecl struct {
	Position  errors.Position
	Namespace string
}

func (d *UsingDecl) declNode()         {}
func (d *UsingDecl) Pos() errors.Position { return d.Position }
func (d *UsingDecl) String() string       { return "using namespace " + d.Namespace + ";" }
