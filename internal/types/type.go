// Package types implements Cb's static type system: the Type variant, typedef
// resolution, structural/nominal equality, widening coercions, and sized
// integer range checking.
package types

import "fmt"

// Type is the tagged-variant interface every Cb type descriptor implements.
// Concrete kinds are the structs of this package (Integer, Float,
// Bool, Char, String, Void, Unknown, Array, Pointer, Reference, Struct,
// Enum, Union, Interface, Function, Generic, TypeParam, Future).
type Type interface {
	// Kind returns a short discriminator used for switches and error text.
	Kind() string
	// String returns the Cb source-level spelling of the type.
	String() string
	// Equals reports structural equality for non-nominal types and nominal
	// (qualified-name) equality for struct/enum/union/interface types.
	Equals(other Type) bool
}

// IntWidth is one of the four sized-integer widths Cb exposes.
type IntWidth int

const (
	Width8 IntWidth = 8 // tiny
	Width16 IntWidth = 16 // short
	Width32 IntWidth = 32 // int
	Width64 IntWidth = 64 // long
)

func (w IntWidth) name() string {
	switch w {
	case Width8:
		return "tiny"
	case Width16:
		return "short"
	case Width32:
		return "int"
	case Width64:
		return "long"
	default:
		return fmt.Sprintf("int%d", int(w))
	}
}

// Bounds returns the inclusive [min, max] range for this width/signedness.
func (w IntWidth) Bounds(signed bool) (min, max int64) {
	if signed {
		switch w {
		case Width8:
			return -1 << 7, 1<<7 - 1
		case Width16:
			return -1 << 15, 1<<15 - 1
		case Width32:
			return -1 << 31, 1<<31 - 1
		default:
			return -1 << 63, 1<<63 - 1
		}
	}
	switch w {
	case Width8:
		return 0, 1<<8 - 1
	case Width16:
		return 0, 1<<16 - 1
	case Width32:
		return 0, 1<<32 - 1
	default:
		return 0, 1<<63 - 1 // unsigned 64 clamps against int64 max; see Mask
	}
}

// Mask returns the bitmask applied to a clamped unsigned value of this width.
func (w IntWidth) Mask() uint64 {
	switch w {
	case Width8:
		return 1<<8 - 1
	case Width16:
		return 1<<16 - 1
	case Width32:
		return 1<<32 - 1
	default:
		return ^uint64(0)
	}
}

// Integer is a sized, signed-or-unsigned whole-number type.
type Integer struct {
	Width  IntWidth
	Signed bool
}

func (i *Integer) Kind() string { return "integer" }

func (i *Integer) String() string {
	if i.Signed {
		return i.Width.name()
	}
	return "unsigned " + i.Width.name()
}

func (i *Integer) Equals(other Type) bool {
	o, ok := other.(*Integer)
	return ok && o.Width == i.Width && o.Signed == i.Signed
}

// Float is a 32- or 64-bit floating point type.
type Float struct {
	Width IntWidth // Width32 or Width64
}

func (f *Float) Kind() string { return "float" }

func (f *Float) String() string {
	if f.Width == Width32 {
		return "float"
	}
	return "double"
}

func (f *Float) Equals(other Type) bool {
	o, ok := other.(*Float)
	return ok && o.Width == f.Width
}

// simple is a marker for the nullary primitive kinds.
type simple struct{ name string }

func (s *simple) Kind() string          { return s.name }
func (s *simple) String() string        { return s.name }
func (s *simple) Equals(other Type) bool {
	o, ok := other.(*simple)
	return ok && o.name == s.name
}

var (
	Bool    Type = &simple{"bool"}
	Char    Type = &simple{"char"}
	Str     Type = &simple{"string"}
	Void    Type = &simple{"void"}
	Unknown Type = &simple{"unknown"}
)

// Predefined integer/float singletons used throughout the evaluator.
var (
	Tiny   = &Integer{Width: Width8, Signed: true}
	Short  = &Integer{Width: Width16, Signed: true}
	Int    = &Integer{Width: Width32, Signed: true}
	Long   = &Integer{Width: Width64, Signed: true}
	UTiny  = &Integer{Width: Width8, Signed: false}
	UShort = &Integer{Width: Width16, Signed: false}
	UInt   = &Integer{Width: Width32, Signed: false}
	ULong  = &Integer{Width: Width64, Signed: false}

	Float32 = &Float{Width: Width32}
	Float64 = &Float{Width: Width64}
)

// IsNumeric reports whether t is an Integer or Float type.
func IsNumeric(t Type) bool {
	switch t.(type) {
	case *Integer, *Float:
		return true
	default:
		return false
	}
}

// IsInteger reports whether t is a sized integer type.
func IsInteger(t Type) bool {
	_, ok := t.(*Integer)
	return ok
}
