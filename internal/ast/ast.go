// Package ast defines the typed abstract syntax tree the evaluator walks.
//
// Cb's lexer and parser are external collaborators (out of scope for this
// module); nodes here are produced either by a parser the core does not
// implement, or built directly by Go code (tests, the sample-program
// registry behind the CLI's run command). Every node still carries a
// source Position so diagnostics can point at it regardless of how it was
// constructed.
package ast

import (
	"bytes"
	"strings"

	"github.com/cbscript/cb/internal/errors"
)

// Node is the base interface every AST node implements.
type Node interface {
	// String returns a debug rendering of the node, not valid Cb source.
	String() string
	// Pos returns the node's source position.
	Pos() errors.Position
}

// Expression is any node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement is any node that performs an action without itself producing a
// value (though it may contain expressions that do).
type Statement interface {
	Node
	statementNode()
}

// Decl is a top-level declaration: function, struct, enum, union,
// interface, impl, typedef, or a module directive.
type Decl interface {
	Node
	declNode()
}

// Program is the root of a parsed (or hand-built) compilation unit.
type Program struct {
	Position    errors.Position
	Declarations []Decl
}

func (p *Program) Pos() errors.Position { return p.Position }

func (p *Program) String() string {
	var sb strings.Builder
	for _, d := range p.Declarations {
		sb.WriteString(d.String())
		sb.WriteString("\n")
	}
	return sb.String()
}

// Identifier is a bare name reference: a variable, function, type, or
// namespace-qualified path segment joined by "::".
type Identifier struct {
	Position errors.Position
	Name     string
}

func (i *Identifier) expressionNode()     {}
func (i *Identifier) Pos() errors.Position { return i.Position }
func (i *Identifier) String() string       { return i.Name }

// IntLiteral is an integer literal. Its concrete sized-integer type is
// assigned by the evaluator from context (§4.1 infer: int unless a wider
// context demands otherwise).
type IntLiteral struct {
	Position errors.Position
	Value    int64
}

func (l *IntLiteral) expressionNode()      {}
func (l *IntLiteral) Pos() errors.Position { return l.Position }
func (l *IntLiteral) String() string       { return itoa(l.Value) }

// FloatLiteral is a floating-point literal.
type FloatLiteral struct {
	Position errors.Position
	Value    float64
}

func (l *FloatLiteral) expressionNode()      {}
func (l *FloatLiteral) Pos() errors.Position { return l.Position }
func (l *FloatLiteral) String() string       { return ftoa(l.Value) }

// StringLiteral is a plain (non-interpolated) string literal.
type StringLiteral struct {
	Position errors.Position
	Value    string
}

func (l *StringLiteral) expressionNode()      {}
func (l *StringLiteral) Pos() errors.Position { return l.Position }
func (l *StringLiteral) String() string       { return "\"" + l.Value + "\"" }

// InterpolatedString is a string literal with embedded expressions
// ("...${expr}..." and "...${expr:fmt}..."). Parts alternate with Exprs:
// Parts has len(Exprs)+1 entries, Parts[i] preceding Exprs[i].
type InterpolatedString struct {
	Position errors.Position
	Parts    []string
	Exprs    []Expression
	Formats  []string // format suffix per expr, "" if none
}

func (l *InterpolatedString) expressionNode()      {}
func (l *InterpolatedString) Pos() errors.Position { return l.Position }
func (l *InterpolatedString) String() string {
	var sb strings.Builder
	sb.WriteString("\"")
	for i, p := range l.Parts {
		sb.WriteString(p)
		if i < len(l.Exprs) {
			sb.WriteString("${")
			sb.WriteString(l.Exprs[i].String())
			if l.Formats[i] != "" {
				sb.WriteString(":")
				sb.WriteString(l.Formats[i])
			}
			sb.WriteString("}")
		}
	}
	sb.WriteString("\"")
	return sb.String()
}

// CharLiteral is a single-character literal.
type CharLiteral struct {
	Position errors.Position
	Value    rune
}

func (l *CharLiteral) expressionNode()      {}
func (l *CharLiteral) Pos() errors.Position { return l.Position }
func (l *CharLiteral) String() string       { return "'" + string(l.Value) + "'" }

// BoolLiteral is a true/false literal.
type BoolLiteral struct {
	Position errors.Position
	Value    bool
}

func (l *BoolLiteral) expressionNode()      {}
func (l *BoolLiteral) Pos() errors.Position { return l.Position }
func (l *BoolLiteral) String() string {
	if l.Value {
		return "true"
	}
	return "false"
}

// NullLiteral is the null pointer literal.
type NullLiteral struct {
	Position errors.Position
}

func (l *NullLiteral) expressionNode()      {}
func (l *NullLiteral) Pos() errors.Position { return l.Position }
func (l *NullLiteral) String() string       { return "null" }

func itoa(v int64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	if v == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

func ftoa(v float64) string {
	var buf bytes.Buffer
	// Minimal, deterministic rendering for debug output; not a parser round
	// trip concern since the lexer/parser live outside this module.
	neg := v < 0
	if neg {
		v = -v
		buf.WriteByte('-')
	}
	whole := int64(v)
	frac := v - float64(whole)
	buf.WriteString(itoa(whole))
	buf.WriteByte('.')
	for i := 0; i < 6; i++ {
		frac *= 10
		d := int64(frac)
		buf.WriteByte(byte('0' + d))
		frac -= float64(d)
	}
	return buf.String()
}
