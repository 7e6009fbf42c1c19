package types

import "testing"

func TestResolveTypedefChain(t *testing.T) {
	r := NewRegistry()
	r.Define("int", Int)
	r.DefineTypedef("Age", "int")
	r.DefineTypedef("Years", "Age")

	got, err := r.Resolve("Years")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equals(Int) {
		t.Fatalf("got %s, want int", got.String())
	}
}

func TestResolveUnknownType(t *testing.T) {
	r := NewRegistry()
	_, err := r.Resolve("Nope")
	if _, ok := err.(*UnknownTypeError); !ok {
		t.Fatalf("expected UnknownTypeError, got %v", err)
	}
}

func TestResolveCyclicTypedef(t *testing.T) {
	r := NewRegistry()
	r.DefineTypedef("A", "B")
	r.DefineTypedef("B", "A")

	_, err := r.Resolve("A")
	if _, ok := err.(*CyclicTypedefError); !ok {
		t.Fatalf("expected CyclicTypedefError, got %v", err)
	}
}

func TestResolvePreservesArrayDimensionality(t *testing.T) {
	// Resolving T where T := U[] yields an array type over the resolution of U.
	r := NewRegistry()
	r.Define("int", Int)
	r.DefineTypedef("IntAlias", "int")
	arr := &Array{Element: Int, Dimensions: []Extent{InferredExtent()}}
	r.Define("IntArray", arr)
	r.DefineTypedef("Ints", "IntArray")

	got, err := r.Resolve("Ints")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	gotArr, ok := got.(*Array)
	if !ok {
		t.Fatalf("got %T, want *Array", got)
	}
	if gotArr.Rank() != 1 || !gotArr.Element.Equals(Int) {
		t.Fatalf("unexpected array shape: %s", gotArr.String())
	}
}

func TestUnifyIdentity(t *testing.T) {
	c, err := Unify(Int, Int)
	if err != nil || c != CoercionIdentity {
		t.Fatalf("Unify(Int,Int) = %v, %v", c, err)
	}
}

func TestUnifyWidenInt(t *testing.T) {
	c, err := Unify(Long, Int)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c != CoercionWidenInt {
		t.Fatalf("got %v, want CoercionWidenInt", c)
	}
}

func TestUnifyRejectsSignednessMismatch(t *testing.T) {
	_, err := Unify(Long, UInt)
	if err == nil {
		t.Fatalf("expected mismatch error widening across signedness")
	}
}

func TestUnifyIntLiteralToFloat(t *testing.T) {
	c, err := Unify(Float64, Int)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c != CoercionIntToFloat {
		t.Fatalf("got %v, want CoercionIntToFloat", c)
	}
}

func TestUnifyRejectsStringToInt(t *testing.T) {
	_, err := Unify(Int, Str)
	if err == nil {
		t.Fatalf("expected type mismatch error")
	}
	if _, ok := err.(*TypeMismatchError); !ok {
		t.Fatalf("expected *TypeMismatchError, got %T", err)
	}
}

func TestStructEqualityIsNominal(t *testing.T) {
	a := &Struct{QualifiedName: "Point", Members: []Member{{Name: "x", Type: Int}}}
	b := &Struct{QualifiedName: "Point", Members: []Member{{Name: "x", Type: Int}, {Name: "y", Type: Int}}}
	if !a.Equals(b) {
		t.Fatalf("expected nominal equality by qualified name regardless of member shape")
	}
}

func TestArrayEqualityIsStructural(t *testing.T) {
	a := &Array{Element: Int, Dimensions: []Extent{FixedExtent(4)}}
	b := &Array{Element: Int, Dimensions: []Extent{FixedExtent(4)}}
	c := &Array{Element: Int, Dimensions: []Extent{FixedExtent(5)}}
	if !a.Equals(b) {
		t.Fatalf("expected structural equality for identical array shapes")
	}
	if a.Equals(c) {
		t.Fatalf("expected inequality for differing fixed extents")
	}
}

func TestGenericCacheKeyDistinguishesTypeArgs(t *testing.T) {
	a := &Generic{Base: "Box", TypeArgs: []Type{Int}}
	b := &Generic{Base: "Box", TypeArgs: []Type{Str}}
	if a.CacheKey() == b.CacheKey() {
		t.Fatalf("expected distinct cache keys for Box<int> and Box<string>")
	}
}
