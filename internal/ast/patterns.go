package ast

import "github.com/cbscript/cb/internal/errors"

// Pattern is one arm's matchable shape in a MatchStmt, or (via
// LiteralPattern/OrPattern/RangePattern/WildcardPattern) in a switch case.
type Pattern interface {
	Node
	patternNode()
}

// VariantPattern matches an enum variant, optionally binding its payload to
// Binder in the arm's scope ("Some(x)"); Binder is "" for a no-payload
// match ("None").
type VariantPattern struct {
	Position errors.Position
	Variant  string
	Binder   string
}

func (p *VariantPattern) patternNode()        {}
func (p *VariantPattern) Pos() errors.Position { return p.Position }
func (p *VariantPattern) String() string {
	if p.Binder == "" {
		return p.Variant
	}
	return p.Variant + "(" + p.Binder + ")"
}

// LiteralPattern matches by exact equality against an integer/string/bool/
// char literal.
type LiteralPattern struct {
	Position errors.Position
	Value    Expression
}

func (p *LiteralPattern) patternNode()        {}
func (p *LiteralPattern) Pos() errors.Position { return p.Position }
func (p *LiteralPattern) String() string       { return p.Value.String() }

// OrPattern matches if any of Alternatives matches ("a | b | c").
type OrPattern struct {
	Position     errors.Position
	Alternatives []Pattern
}

func (p *OrPattern) patternNode()        {}
func (p *OrPattern) Pos() errors.Position { return p.Position }
func (p *OrPattern) String() string {
	out := ""
	for i, a := range p.Alternatives {
		if i > 0 {
			out += " | "
		}
		out += a.String()
	}
	return out
}

// RangePattern matches an integer in [Start, End] ("a...b").
type RangePattern struct {
	Position errors.Position
	Start    Expression
	End      Expression
}

func (p *RangePattern) patternNode()        {}
func (p *RangePattern) Pos() errors.Position { return p.Position }
func (p *RangePattern) String() string       { return p.Start.String() + "..." + p.End.String() }

// WildcardPattern ("_") matches anything.
type WildcardPattern struct {
	Position errors.Position
}

func (p *WildcardPattern) patternNode()        {}
func (p *WildcardPattern) Pos() errors.Position { return p.Position }
func (p *WildcardPattern) String() string       { return "_" }
