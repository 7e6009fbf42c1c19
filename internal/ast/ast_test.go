package ast

import "testing"

func TestBinaryExprString(t *testing.T) {
	e := binary(intLit(1), "+", intLit(2))
	if got, want := e.String(), "(1 + 2)"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestStructLiteralString(t *testing.T) {
	lit := &StructLiteral{
		Type: namedType("Point"),
		Fields: []StructLiteralField{
			{Name: "x", Value: intLit(1)},
			{Name: "y", Value: intLit(2)},
		},
	}
	if got, want := lit.String(), "Point{x: 1, y: 2}"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestEnumVariantExprString(t *testing.T) {
	some := &EnumVariantExpr{Variant: "Some", Payload: intLit(7)}
	if got, want := some.String(), "Some(7)"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	none := &EnumVariantExpr{Variant: "None"}
	if got, want := none.String(), "None"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestInterpolatedStringString(t *testing.T) {
	s := &InterpolatedString{
		Parts:   []string{"x=", ", y="},
		Exprs:   []Expression{ident("x"), ident("y")},
		Formats: []string{"", "02d"},
	}
	got := s.String()
	want := `"x=${x}, y=${y:02d}"`
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestVariantPatternString(t *testing.T) {
	p := &VariantPattern{Variant: "Some", Binder: "x"}
	if got, want := p.String(), "Some(x)"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	wildcard := &WildcardPattern{}
	if got, want := wildcard.String(), "_"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestArrayTypeString(t *testing.T) {
	fixed := &ArrayType{Element: namedType("int"), Size: 4}
	if got, want := fixed.String(), "int[4]"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	inferred := &ArrayType{Element: namedType("int"), Size: -1}
	if got, want := inferred.String(), "int[]"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestStructDeclString(t *testing.T) {
	d := &StructDecl{
		Name: "Point",
		Fields: []FieldDecl{
			{Name: "x", Type: namedType("int")},
			{Name: "y", Type: namedType("int")},
		},
	}
	got := d.String()
	want := "struct Point {\n  int x;\n  int y;\n}"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestUnionDeclString(t *testing.T) {
	d := &UnionDecl{
		Name: "Status",
		Alternatives: []UnionAlternativeDecl{
			{Literal: intLit(200)},
			{Literal: intLit(404)},
			{Literal: strLit("err")},
		},
	}
	if got, want := d.String(), `union Status = 200 | 404 | "err";`; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestImplBlockString(t *testing.T) {
	impl := &ImplBlock{
		Interface: "Inc",
		For:       "C",
		Methods: []*FunctionDecl{
			{Name: "inc", Return: namedType("C"), Body: block()},
		},
	}
	if got, want := impl.String(), "impl Inc for C { inc(); }"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestBoolLiteralRoundTrip(t *testing.T) {
	if got := boolLit(true).String(); got != "true" {
		t.Fatalf("got %q, want true", got)
	}
	if got := boolLit(false).String(); got != "false" {
		t.Fatalf("got %q, want false", got)
	}
}
