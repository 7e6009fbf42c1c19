package interp

import (
	"fmt"

	"github.com/cbscript/cb/internal/errors"
	"github.com/cbscript/cb/internal/types"
)

// zeroValue builds the default value of t when no initializer/default
// expression is given (§4.1 "every declared type has a zero value").
func (e *Evaluator) zeroValue(t types.Type) (Value, error) {
	switch tt := t.(type) {
	case *types.Integer:
		return &IntValue{Val: 0, T: tt}, nil
	case *types.Float:
		return &FloatValue{Val: 0, T: tt}, nil
	case *types.Array:
		return e.zeroArray(tt)
	default:
		switch t {
		case types.Bool:
			return &BoolValue{Val: false}, nil
		case types.Char:
			return &CharValue{Val: 0}, nil
		case types.Str:
			return &StringValue{Val: ""}, nil
		case types.Void:
			return &VoidValue{}, nil
		}
	}

	switch tt := t.(type) {
	case *types.Struct:
		return e.zeroStruct(tt.QualifiedName)
	case *types.Pointer:
		return NullPointer(tt.Pointee, tt.Mut), nil
	case *types.Enum:
		if len(tt.Variants) == 0 {
			return nil, fmt.Errorf("enum %s has no variants", tt.QualifiedName)
		}
		v := tt.Variants[0]
		var payload Value
		if v.Payload != nil {
			pv, err := e.zeroValue(v.Payload)
			if err != nil {
				return nil, err
			}
			payload = pv
		}
		return &EnumValue{TypeName: tt.QualifiedName, En: tt, Variant: v.Name, Payload: payload}, nil
	case *types.Union:
		if len(tt.Allowed) == 0 {
			return nil, fmt.Errorf("union %s has no allowed alternatives", tt.QualifiedName)
		}
		alt := tt.Allowed[0]
		if alt.Kind == types.AllowedLiteral {
			if lit, ok := alt.Literal.(Value); ok {
				return &UnionValue{Un: tt, Inner: lit}, nil
			}
		}
		inner, err := e.zeroValue(alt.Type)
		if err != nil {
			return nil, err
		}
		return &UnionValue{Un: tt, Inner: inner}, nil
	}

	return nil, fmt.Errorf("no zero value for type %s", t.String())
}

func (e *Evaluator) zeroArray(t *types.Array) (Value, error) {
	dims := make([]int, len(t.Dimensions))
	total := 1
	for i, d := range t.Dimensions {
		n := d.Size
		dims[i] = n
		total *= n
	}
	data := make([]Value, total)
	for i := range data {
		v, err := e.zeroValue(t.Element)
		if err != nil {
			return nil, err
		}
		data[i] = v
	}
	return &ArrayValue{Elem: t.Element, Dims: dims, Data: data}, nil
}

// coerce converts val to target's type where Cb's implicit-conversion
// rules allow it (matching same-signedness integer widening and
// int-to-float promotion, §4.1), range-checking/clamping integers per
// types.CheckRange. It is a no-op when val already has target's type.
func (e *Evaluator) coerce(target types.Type, val Value) (Value, error) {
	switch want := target.(type) {
	case *types.Integer:
		switch v := val.(type) {
		case *IntValue:
			if v.T.Width == want.Width && v.T.Signed == want.Signed {
				return v, nil
			}
			checked, err := types.CheckRange(want, v.Val)
			if err != nil {
				return nil, err
			}
			return &IntValue{Val: checked, T: want}, nil
		}
	case *types.Float:
		switch v := val.(type) {
		case *FloatValue:
			return &FloatValue{Val: v.Val, T: want}, nil
		case *IntValue:
			return &FloatValue{Val: float64(v.Val), T: want}, nil
		}
	case *types.Union:
		if uv, ok := val.(*UnionValue); ok {
			return uv, nil
		}
		return e.wrapUnion(want, val)
	}
	return val, nil
}

// wrapUnion checks val against one of target's allowed literal values or
// types and wraps it, or reports the appropriate union diagnostic kind
// (§7 ValueNotAllowedForUnion / TypeNotAllowedForUnion).
func (e *Evaluator) wrapUnion(target *types.Union, val Value) (Value, error) {
	hasLiteralAlt := false
	for _, alt := range target.Allowed {
		if alt.Kind == types.AllowedType && alt.Type.Equals(val.Type()) {
			return &UnionValue{Un: target, Inner: val}, nil
		}
		if alt.Kind == types.AllowedLiteral {
			hasLiteralAlt = true
			if lit, ok := alt.Literal.(Value); ok && literalsEqual(lit, val) {
				return &UnionValue{Un: target, Inner: val}, nil
			}
		}
	}
	// A union constrained (at least in part) by literal alternatives rejects
	// a non-matching value as ValueNotAllowedForUnion; a union constrained
	// purely by type alternatives rejects it as TypeNotAllowedForUnion (§7).
	if hasLiteralAlt {
		return nil, fmt.Errorf("%s: %s is not an allowed value of union %s", errors.KindValueNotAllowedForUnion, val.String(), target.QualifiedName)
	}
	return nil, fmt.Errorf("%s: %s is not an allowed type of union %s", errors.KindTypeNotAllowedForUnion, val.Type().String(), target.QualifiedName)
}

// literalsEqual compares a union's allowed literal against a candidate
// value by kind and content, with no cross-kind equality (§9 Open Question
// decision: a union literal of one kind never equals a value of another).
func literalsEqual(a, b Value) bool {
	switch av := a.(type) {
	case *IntValue:
		bv, ok := b.(*IntValue)
		return ok && av.Val == bv.Val
	case *FloatValue:
		bv, ok := b.(*FloatValue)
		return ok && av.Val == bv.Val
	case *StringValue:
		bv, ok := b.(*StringValue)
		return ok && av.Val == bv.Val
	case *CharValue:
		bv, ok := b.(*CharValue)
		return ok && av.Val == bv.Val
	case *BoolValue:
		bv, ok := b.(*BoolValue)
		return ok && av.Val == bv.Val
	}
	return false
}
