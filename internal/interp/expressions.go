package interp

import (
	"fmt"
	"strings"

	"github.com/cbscript/cb/internal/ast"
	"github.com/cbscript/cb/internal/errors"
	"github.com/cbscript/cb/internal/interp/runtime"
	"github.com/cbscript/cb/internal/types"
)

// evalExpr dispatches one expression node to a Value (§4.4 full expression
// inventory; §4.2 operator semantics).
func (e *Evaluator) evalExpr(t *Task, expr ast.Expression) (Value, error) {
	switch x := expr.(type) {
	case *ast.IntLiteral:
		return &IntValue{Val: x.Value, T: types.Int}, nil
	case *ast.FloatLiteral:
		return &FloatValue{Val: x.Value, T: types.Float64}, nil
	case *ast.StringLiteral:
		return &StringValue{Val: x.Value}, nil
	case *ast.InterpolatedString:
		return e.evalInterpolatedString(t, x)
	case *ast.CharLiteral:
		return &CharValue{Val: x.Value}, nil
	case *ast.BoolLiteral:
		return &BoolValue{Val: x.Value}, nil
	case *ast.NullLiteral:
		return NullPointer(types.Unknown, types.Mutable), nil

	case *ast.Identifier:
		return e.evalIdentifier(t, x)

	case *ast.GroupedExpr:
		return e.evalExpr(t, x.Inner)

	case *ast.BinaryExpr:
		return e.evalBinary(t, x)

	case *ast.UnaryExpr:
		return e.evalUnary(t, x)

	case *ast.TernaryExpr:
		cond, err := e.evalExpr(t, x.Cond)
		if err != nil {
			return nil, err
		}
		bv, ok := cond.(*BoolValue)
		if !ok {
			return nil, fmt.Errorf("ternary condition must be bool")
		}
		if bv.Val {
			return e.evalExpr(t, x.Then)
		}
		return e.evalExpr(t, x.Else)

	case *ast.MemberExpr:
		return e.evalMember(t, x)

	case *ast.IndexExpr:
		return e.evalIndex(t, x)

	case *ast.CallExpr:
		return e.evalCall(t, x)

	case *ast.MethodCallExpr:
		return e.evalMethodCall(t, x)

	case *ast.StructLiteral:
		return e.evalStructLiteral(t, x)

	case *ast.ArrayLiteral:
		return e.evalArrayLiteral(t, x)

	case *ast.EnumVariantExpr:
		return e.evalEnumVariant(t, x)

	case *ast.RangeExpr:
		return nil, fmt.Errorf("range expressions are only valid as switch case labels")

	case *ast.NewExpr:
		return e.evalNew(t, x)

	case *ast.DeleteExpr:
		return e.evalDelete(t, x)

	case *ast.SizeofExpr:
		return e.evalSizeof(x)

	case *ast.TryExpr:
		return e.evalTry(t, x)

	case *ast.AwaitExpr:
		return e.evalAwait(t, x)

	default:
		return nil, fmt.Errorf("unhandled expression %T", expr)
	}
}

func (e *Evaluator) evalIdentifier(t *Task, id *ast.Identifier) (Value, error) {
	if v, ok := t.Frame.FindVariable(id.Name); ok {
		if rv, ok := v.Value.(Value); ok {
			return rv, nil
		}
	}
	if decl, ok := e.Env.Function(id.Name); ok {
		return &FunctionValue{Decl: decl}, nil
	}
	qualified := runtime.Qualify(e.Env.CurrentNamespace, id.Name)
	if v, ok := t.Frame.FindVariable(qualified); ok {
		if rv, ok := v.Value.(Value); ok {
			return rv, nil
		}
	}
	return nil, fmt.Errorf("%s: undefined identifier %s", errors.KindUndefinedFunction, id.Name)
}

// lvalue resolves expr to an assignable target: either a variable, or a
// *Pointer provenance descriptor that Store()/Load() can use (§4.2, §4.3).
func (e *Evaluator) lvalue(t *Task, expr ast.Expression) (*runtime.Variable, *Pointer, error) {
	switch x := expr.(type) {
	case *ast.Identifier:
		v, ok := t.Frame.FindVariable(x.Name)
		if !ok {
			return nil, nil, fmt.Errorf("%s: undefined identifier %s", errors.KindUndefinedFunction, x.Name)
		}
		if v.IsConst {
			return nil, nil, fmt.Errorf("%s: cannot assign to const %s", errors.KindConstReassignment, x.Name)
		}
		return v, nil, nil

	case *ast.UnaryExpr:
		if x.Operator == "*" {
			pv, err := e.evalExpr(t, x.Operand)
			if err != nil {
				return nil, nil, err
			}
			ptr, ok := pv.(*PointerValue)
			if !ok {
				return nil, nil, fmt.Errorf("dereference target is not a pointer")
			}
			if ptr.P.Mut == types.Const {
				return nil, nil, fmt.Errorf("%s: cannot write through a const pointer", errors.KindWriteThroughConstPointer)
			}
			return nil, ptr.P, nil
		}

	case *ast.MemberExpr:
		obj, err := e.evalExpr(t, x.Object)
		if err != nil {
			return nil, nil, err
		}
		sv, ok := obj.(*StructValue)
		if !ok {
			return nil, nil, fmt.Errorf("member assignment target is not a struct")
		}
		return nil, &Pointer{Kind: PointerStructMember, Struct: sv, Path: []string{x.Member}}, nil

	case *ast.IndexExpr:
		arrVal, err := e.evalExpr(t, x.Array)
		if err != nil {
			return nil, nil, err
		}
		av, ok := arrVal.(*ArrayValue)
		if !ok {
			return nil, nil, fmt.Errorf("index assignment target is not an array")
		}
		idx, err := e.evalExpr(t, x.Index)
		if err != nil {
			return nil, nil, err
		}
		iv, ok := idx.(*IntValue)
		if !ok {
			return nil, nil, fmt.Errorf("index must be an integer")
		}
		offset, err := av.Index(int(iv.Val))
		if err != nil {
			return nil, nil, &errors.Diagnostic{Kind: errors.KindArrayIndexOutOfBounds, Message: err.Error()}
		}
		return nil, &Pointer{Kind: PointerArrayElement, Array: av, Index: offset}, nil
	}
	return nil, nil, fmt.Errorf("expression is not assignable")
}

func (e *Evaluator) assignTo(t *Task, target ast.Expression, val Value) error {
	if id, ok := target.(*ast.Identifier); ok {
		if v, ok := t.Frame.FindVariable(id.Name); ok {
			if v.IsConst {
				return fmt.Errorf("%s: cannot assign to const %s", errors.KindConstReassignment, id.Name)
			}
			coerced, err := e.coerce(v.Type, val)
			if err != nil {
				return err
			}
			v.Value = coerced
			return nil
		}
	}

	// `s[i] = c` rebuilds the variable's StringValue in place rather than
	// going through lvalue/Pointer, since strings are value-semantic and not
	// addressable the way arrays and struct members are (§4.2).
	if idx, ok := target.(*ast.IndexExpr); ok {
		if id, ok := idx.Array.(*ast.Identifier); ok {
			if v, ok := t.Frame.FindVariable(id.Name); ok {
				if sv, ok := v.Value.(*StringValue); ok {
					if v.IsConst {
						return fmt.Errorf("%s: cannot assign to const %s", errors.KindConstReassignment, id.Name)
					}
					iv, err := e.evalExpr(t, idx.Index)
					if err != nil {
						return err
					}
					ci, ok := iv.(*IntValue)
					if !ok {
						return fmt.Errorf("index must be an integer")
					}
					cv, ok := val.(*CharValue)
					if !ok {
						return fmt.Errorf("string character assignment requires a char value")
					}
					updated, err := sv.WithRune(int(ci.Val), cv.Val)
					if err != nil {
						return fmt.Errorf("%s: %s", errors.KindArrayIndexOutOfBounds, err.Error())
					}
					v.Value = updated
					return nil
				}
			}
		}
	}

	variable, ptr, err := e.lvalue(t, target)
	if err != nil {
		return err
	}
	if variable != nil {
		coerced, err := e.coerce(variable.Type, val)
		if err != nil {
			return err
		}
		variable.Value = coerced
		return nil
	}
	return ptr.Store(val)
}

// applyCompoundOp implements `+=`, `-=`, etc. for an AssignStmt operator
// ("+", "-", ...; a trailing `=` is stripped if present) by reusing the
// plain binary operator's semantics (§4.2).
func (e *Evaluator) applyCompoundOp(op string, cur, rhs Value) (Value, error) {
	base := strings.TrimSuffix(op, "=")
	return e.applyBinaryOp(base, cur, rhs)
}

func (e *Evaluator) evalBinary(t *Task, x *ast.BinaryExpr) (Value, error) {
	if x.Operator == "&&" {
		l, err := e.evalExpr(t, x.Left)
		if err != nil {
			return nil, err
		}
		lb, ok := l.(*BoolValue)
		if !ok {
			return nil, fmt.Errorf("&& requires bool operands")
		}
		if !lb.Val {
			return &BoolValue{Val: false}, nil
		}
		r, err := e.evalExpr(t, x.Right)
		if err != nil {
			return nil, err
		}
		rb, ok := r.(*BoolValue)
		if !ok {
			return nil, fmt.Errorf("&& requires bool operands")
		}
		return &BoolValue{Val: rb.Val}, nil
	}
	if x.Operator == "||" {
		l, err := e.evalExpr(t, x.Left)
		if err != nil {
			return nil, err
		}
		lb, ok := l.(*BoolValue)
		if !ok {
			return nil, fmt.Errorf("|| requires bool operands")
		}
		if lb.Val {
			return &BoolValue{Val: true}, nil
		}
		r, err := e.evalExpr(t, x.Right)
		if err != nil {
			return nil, err
		}
		rb, ok := r.(*BoolValue)
		if !ok {
			return nil, fmt.Errorf("|| requires bool operands")
		}
		return &BoolValue{Val: rb.Val}, nil
	}

	l, err := e.evalExpr(t, x.Left)
	if err != nil {
		return nil, err
	}
	r, err := e.evalExpr(t, x.Right)
	if err != nil {
		return nil, err
	}
	return e.applyBinaryOp(x.Operator, l, r)
}

func (e *Evaluator) applyBinaryOp(op string, l, r Value) (Value, error) {
	switch op {
	case "==":
		return &BoolValue{Val: valuesEqual(l, r)}, nil
	case "!=":
		return &BoolValue{Val: !valuesEqual(l, r)}, nil
	}

	switch lv := l.(type) {
	case *IntValue:
		rv, ok := r.(*IntValue)
		if !ok {
			if rf, ok := r.(*FloatValue); ok {
				return applyFloatOp(op, float64(lv.Val), rf.Val, rf.T)
			}
			return nil, fmt.Errorf("type mismatch in binary operator %s", op)
		}
		return applyIntOp(op, lv, rv)
	case *FloatValue:
		switch rv := r.(type) {
		case *FloatValue:
			return applyFloatOp(op, lv.Val, rv.Val, lv.T)
		case *IntValue:
			return applyFloatOp(op, lv.Val, float64(rv.Val), lv.T)
		}
		return nil, fmt.Errorf("type mismatch in binary operator %s", op)
	case *StringValue:
		rv, ok := r.(*StringValue)
		if !ok {
			return nil, fmt.Errorf("type mismatch in binary operator %s", op)
		}
		switch op {
		case "+":
			return &StringValue{Val: lv.Val + rv.Val}, nil
		case "<":
			return &BoolValue{Val: lv.Val < rv.Val}, nil
		case "<=":
			return &BoolValue{Val: lv.Val <= rv.Val}, nil
		case ">":
			return &BoolValue{Val: lv.Val > rv.Val}, nil
		case ">=":
			return &BoolValue{Val: lv.Val >= rv.Val}, nil
		}
		return nil, fmt.Errorf("unsupported string operator %s", op)
	case *BoolValue:
		rv, ok := r.(*BoolValue)
		if !ok {
			return nil, fmt.Errorf("type mismatch in binary operator %s", op)
		}
		switch op {
		case "&":
			return &BoolValue{Val: lv.Val && rv.Val}, nil
		case "|":
			return &BoolValue{Val: lv.Val || rv.Val}, nil
		case "^":
			return &BoolValue{Val: lv.Val != rv.Val}, nil
		}
		return nil, fmt.Errorf("unsupported bool operator %s", op)
	}
	return nil, fmt.Errorf("unsupported operand type for binary operator %s", op)
}

func applyIntOp(op string, l, r *IntValue) (Value, error) {
	t := l.T
	switch op {
	case "+":
		return checkedInt(t, l.Val+r.Val)
	case "-":
		return checkedInt(t, l.Val-r.Val)
	case "*":
		return checkedInt(t, l.Val*r.Val)
	case "/":
		if r.Val == 0 {
			return nil, fmt.Errorf("%s: division by zero", errors.KindDivisionByZero)
		}
		return checkedInt(t, l.Val/r.Val)
	case "%":
		if r.Val == 0 {
			return nil, fmt.Errorf("%s: division by zero", errors.KindDivisionByZero)
		}
		return checkedInt(t, l.Val%r.Val)
	case "&":
		return &IntValue{Val: l.Val & r.Val, T: t}, nil
	case "|":
		return &IntValue{Val: l.Val | r.Val, T: t}, nil
	case "^":
		return &IntValue{Val: l.Val ^ r.Val, T: t}, nil
	case "<<":
		return checkedInt(t, l.Val<<uint(r.Val))
	case ">>":
		return checkedInt(t, l.Val>>uint(r.Val))
	case "<":
		return &BoolValue{Val: l.Val < r.Val}, nil
	case "<=":
		return &BoolValue{Val: l.Val <= r.Val}, nil
	case ">":
		return &BoolValue{Val: l.Val > r.Val}, nil
	case ">=":
		return &BoolValue{Val: l.Val >= r.Val}, nil
	}
	return nil, fmt.Errorf("unsupported integer operator %s", op)
}

func checkedInt(t *types.Integer, raw int64) (Value, error) {
	stored, err := types.CheckRange(t, raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %s", errors.KindOutOfRange, err.Error())
	}
	return &IntValue{Val: stored, T: t}, nil
}

func applyFloatOp(op string, l, r float64, t *types.Float) (Value, error) {
	switch op {
	case "+":
		return &FloatValue{Val: l + r, T: t}, nil
	case "-":
		return &FloatValue{Val: l - r, T: t}, nil
	case "*":
		return &FloatValue{Val: l * r, T: t}, nil
	case "/":
		if r == 0 {
			return nil, fmt.Errorf("%s: division by zero", errors.KindDivisionByZero)
		}
		return &FloatValue{Val: l / r, T: t}, nil
	case "<":
		return &BoolValue{Val: l < r}, nil
	case "<=":
		return &BoolValue{Val: l <= r}, nil
	case ">":
		return &BoolValue{Val: l > r}, nil
	case ">=":
		return &BoolValue{Val: l >= r}, nil
	}
	return nil, fmt.Errorf("unsupported float operator %s", op)
}

// valuesEqual implements §4.2's equality: same-kind value comparison, with
// a union comparing by its concrete Inner value, and cross-kind union
// literals never equal (§9 Open Question decision).
func valuesEqual(l, r Value) bool {
	if lu, ok := l.(*UnionValue); ok {
		l = lu.Inner
	}
	if ru, ok := r.(*UnionValue); ok {
		r = ru.Inner
	}
	switch lv := l.(type) {
	case *IntValue:
		rv, ok := r.(*IntValue)
		return ok && lv.Val == rv.Val
	case *FloatValue:
		rv, ok := r.(*FloatValue)
		return ok && lv.Val == rv.Val
	case *StringValue:
		rv, ok := r.(*StringValue)
		return ok && lv.Val == rv.Val
	case *CharValue:
		rv, ok := r.(*CharValue)
		return ok && lv.Val == rv.Val
	case *BoolValue:
		rv, ok := r.(*BoolValue)
		return ok && lv.Val == rv.Val
	case *EnumValue:
		rv, ok := r.(*EnumValue)
		if !ok || lv.TypeName != rv.TypeName || lv.Variant != rv.Variant {
			return false
		}
		if lv.Payload == nil || rv.Payload == nil {
			return lv.Payload == rv.Payload
		}
		return valuesEqual(lv.Payload, rv.Payload)
	case *PointerValue:
		rv, ok := r.(*PointerValue)
		if !ok {
			return false
		}
		return pointersEqual(lv.P, rv.P)
	}
	return false
}

// pointersEqual compares two pointers by provenance identity rather than
// struct equality, since Pointer embeds a slice (Path) and is not itself
// comparable with ==.
func pointersEqual(a, b *Pointer) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case PointerNull:
		return true
	case PointerVariable:
		return a.Var == b.Var
	case PointerArrayElement:
		return a.Array == b.Array && a.Index == b.Index
	case PointerStructMember:
		if a.Struct != b.Struct || len(a.Path) != len(b.Path) {
			return false
		}
		for i := range a.Path {
			if a.Path[i] != b.Path[i] {
				return false
			}
		}
		return true
	case PointerHeap:
		return a.Heap == b.Heap && a.Handle == b.Handle
	}
	return false
}

func (e *Evaluator) evalUnary(t *Task, x *ast.UnaryExpr) (Value, error) {
	switch x.Operator {
	case "&":
		v, ptr, err := e.lvalue(t, x.Operand)
		if err != nil {
			return nil, err
		}
		if v != nil {
			return &PointerValue{P: &Pointer{Kind: PointerVariable, Elem: v.Type, Var: v}}, nil
		}
		return &PointerValue{P: ptr}, nil
	case "*":
		v, err := e.evalExpr(t, x.Operand)
		if err != nil {
			return nil, err
		}
		pv, ok := v.(*PointerValue)
		if !ok {
			return nil, fmt.Errorf("dereference target is not a pointer")
		}
		return pv.P.Load()
	}

	v, err := e.evalExpr(t, x.Operand)
	if err != nil {
		return nil, err
	}
	switch x.Operator {
	case "-":
		switch iv := v.(type) {
		case *IntValue:
			return checkedInt(iv.T, -iv.Val)
		case *FloatValue:
			return &FloatValue{Val: -iv.Val, T: iv.T}, nil
		}
	case "!":
		if bv, ok := v.(*BoolValue); ok {
			return &BoolValue{Val: !bv.Val}, nil
		}
	case "~":
		if iv, ok := v.(*IntValue); ok {
			return checkedInt(iv.T, ^iv.Val)
		}
	}
	return nil, fmt.Errorf("unsupported unary operator %s", x.Operator)
}

func (e *Evaluator) evalMember(t *Task, x *ast.MemberExpr) (Value, error) {
	obj, err := e.evalExpr(t, x.Object)
	if err != nil {
		return nil, err
	}
	switch ov := obj.(type) {
	case *StructValue:
		v, ok := ov.Get(x.Member)
		if !ok {
			return nil, fmt.Errorf("no such member: %s", x.Member)
		}
		return v, nil
	case *ArrayValue:
		if x.Member == "length" {
			return &IntValue{Val: int64(ov.Len()), T: types.Int}, nil
		}
	case *StringValue:
		if x.Member == "length" {
			return &IntValue{Val: int64(len([]rune(ov.Val))), T: types.Int}, nil
		}
	case *FutureValue:
		return FutureMember(ov, x.Member)
	}
	return nil, fmt.Errorf("no such member: %s", x.Member)
}

func (e *Evaluator) evalIndex(t *Task, x *ast.IndexExpr) (Value, error) {
	arr, err := e.evalExpr(t, x.Array)
	if err != nil {
		return nil, err
	}
	idx, err := e.evalExpr(t, x.Index)
	if err != nil {
		return nil, err
	}
	iv, ok := idx.(*IntValue)
	if !ok {
		return nil, fmt.Errorf("index must be an integer")
	}
	switch av := arr.(type) {
	case *ArrayValue:
		offset, err := av.Index(int(iv.Val))
		if err != nil {
			return nil, fmt.Errorf("%s: %s", errors.KindArrayIndexOutOfBounds, err.Error())
		}
		if len(av.Dims) > 1 {
			stride := av.Stride()
			return &ArrayValue{Elem: av.Elem, Dims: av.Dims[1:], Data: av.Data[offset : offset+stride]}, nil
		}
		return av.Data[offset], nil
	case *StringValue:
		runes := []rune(av.Val)
		if iv.Val < 0 || int(iv.Val) >= len(runes) {
			return nil, fmt.Errorf("%s: array index out of bounds: %d", errors.KindArrayIndexOutOfBounds, iv.Val)
		}
		return &CharValue{Val: runes[iv.Val]}, nil
	case *PointerValue:
		shifted, err := av.P.Add(iv.Val)
		if err != nil {
			return nil, err
		}
		return shifted.Load()
	}
	return nil, fmt.Errorf("value is not indexable")
}

func (e *Evaluator) evalCall(t *Task, x *ast.CallExpr) (Value, error) {
	id, ok := x.Callee.(*ast.Identifier)
	if !ok {
		fv, err := e.evalExpr(t, x.Callee)
		if err != nil {
			return nil, err
		}
		funcVal, ok := fv.(*FunctionValue)
		if !ok {
			return nil, fmt.Errorf("call target is not callable")
		}
		args, err := e.evalArgs(t, x.Args)
		if err != nil {
			return nil, err
		}
		return e.invokeFunctionValue(t, funcVal, args)
	}

	args, err := e.evalArgs(t, x.Args)
	if err != nil {
		return nil, err
	}

	if bv, handled, err := e.evalBuiltinCall(id.Name, args); handled {
		return bv, err
	}

	decl, ok := e.Env.Function(id.Name)
	if !ok {
		decl, ok = e.Env.Function(runtime.Qualify(e.Env.CurrentNamespace, id.Name))
	}
	if !ok {
		return nil, fmt.Errorf("%s: undefined function %s", errors.KindUndefinedFunction, id.Name)
	}
	return e.invokeDecl(t, decl, args, nil, "", "")
}

func (e *Evaluator) evalArgs(t *Task, exprs []ast.Expression) ([]Value, error) {
	args := make([]Value, len(exprs))
	for i, a := range exprs {
		v, err := e.evalExpr(t, a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return args, nil
}

// invokeDecl calls decl, transparently instantiating it first when it is
// generic, inferring type arguments from args (§4.5/§4.6).
func (e *Evaluator) invokeDecl(t *Task, decl *ast.FunctionDecl, args []Value, receiver Value, forType, ifaceName string) (Value, error) {
	if len(decl.TypeParams) > 0 {
		typeArgs, err := e.InferTypeArgs(decl, args)
		if err != nil {
			return nil, err
		}
		if decl.IsAsync {
			return e.spawnAsync(t, decl.Return, func(inner *Task) (Value, error) {
				return e.CallGenericFunction(inner, decl, typeArgs, args, receiver, forType, ifaceName)
			})
		}
		return e.CallGenericFunction(t, decl, typeArgs, args, receiver, forType, ifaceName)
	}
	if decl.IsAsync {
		return e.spawnAsync(t, decl.Return, func(inner *Task) (Value, error) {
			return e.CallFunction(inner, decl, args, receiver, forType, ifaceName)
		})
	}
	return e.CallFunction(t, decl, args, receiver, forType, ifaceName)
}

func (e *Evaluator) invokeFunctionValue(t *Task, fv *FunctionValue, args []Value) (Value, error) {
	return e.invokeDecl(t, fv.Decl, args, fv.Receiver, fv.ForType, fv.Interface)
}

// spawnAsync launches decl's body as a new cooperatively scheduled task and
// returns its Future immediately (§4.6 "Created by invoking an async
// function"), letting the caller choose whether/when to await it.
func (e *Evaluator) spawnAsync(t *Task, retTypeExpr ast.TypeExpr, run func(*Task) (Value, error)) (Value, error) {
	retType, err := e.ResolveType(retTypeExpr)
	if err != nil {
		return nil, err
	}
	frame := runtime.NewFrame(e.Env.Globals())
	future := e.Sched.Spawn(frame, retType, func(inner *Task) {
		val, err := run(inner)
		e.Sched.Complete(inner, val, err)
	})
	return future, nil
}

func (e *Evaluator) evalMethodCall(t *Task, x *ast.MethodCallExpr) (Value, error) {
	recv, err := e.evalExpr(t, x.Receiver)
	if err != nil {
		return nil, err
	}
	args, err := e.evalArgs(t, x.Args)
	if err != nil {
		return nil, err
	}
	return e.DispatchMethod(t, recv, x.Method, args)
}

func (e *Evaluator) evalStructLiteral(t *Task, x *ast.StructLiteral) (Value, error) {
	rt, err := e.ResolveType(x.Type)
	if err != nil {
		return nil, err
	}
	st, ok := rt.(*types.Struct)
	if !ok {
		return nil, fmt.Errorf("%s is not a struct type", x.Type.String())
	}
	typeName := st.QualifiedName
	zero, err := e.zeroStruct(typeName)
	if err != nil {
		return nil, err
	}
	for _, f := range x.Fields {
		v, err := e.evalExpr(t, f.Value)
		if err != nil {
			return nil, err
		}
		ft, ok := st.MemberType(f.Name)
		if !ok {
			return nil, fmt.Errorf("no such member: %s", f.Name)
		}
		cv, err := e.coerce(ft, v)
		if err != nil {
			return nil, err
		}
		zero.Set(f.Name, cv)
	}
	return zero, nil
}

func (e *Evaluator) evalArrayLiteral(t *Task, x *ast.ArrayLiteral) (Value, error) {
	data := make([]Value, len(x.Elements))
	var elemType types.Type = types.Unknown
	for i, el := range x.Elements {
		v, err := e.evalExpr(t, el)
		if err != nil {
			return nil, err
		}
		data[i] = v
		if i == 0 {
			elemType = v.Type()
		}
	}
	return &ArrayValue{Elem: elemType, Dims: []int{len(data)}, Data: data}, nil
}

func (e *Evaluator) evalEnumVariant(t *Task, x *ast.EnumVariantExpr) (Value, error) {
	var rawPayload Value
	if x.Payload != nil {
		pv, err := e.evalExpr(t, x.Payload)
		if err != nil {
			return nil, err
		}
		rawPayload = pv
	}

	var en *types.Enum
	switch {
	case x.EnumType != nil:
		rt, err := e.ResolveType(x.EnumType)
		if err != nil {
			return nil, err
		}
		etype, ok := rt.(*types.Enum)
		if !ok {
			return nil, fmt.Errorf("%s is not an enum type", x.EnumType.String())
		}
		en = etype

	case x.Variant == "Some" || x.Variant == "None":
		inner := types.Unknown
		if rawPayload != nil {
			inner = rawPayload.Type()
		}
		etype, _ := e.optionType(inner).(*types.Enum)
		en = etype

	case x.Variant == "Ok" || x.Variant == "Err":
		var okT, errT types.Type = types.Unknown, types.Unknown
		if rawPayload != nil {
			if x.Variant == "Ok" {
				okT = rawPayload.Type()
			} else {
				errT = rawPayload.Type()
			}
		}
		etype, _ := e.resultType(okT, errT).(*types.Enum)
		en = etype

	default:
		found, err := e.findEnumByVariant(x.Variant)
		if err != nil {
			return nil, err
		}
		en = found
	}
	variant, _, ok := en.VariantByName(x.Variant)
	if !ok {
		return nil, fmt.Errorf("%s: %s has no variant %s", errors.KindUndefinedEnumMember, en.QualifiedName, x.Variant)
	}
	payload := rawPayload
	if rawPayload != nil && variant.Payload != nil {
		cv, err := e.coerce(variant.Payload, rawPayload)
		if err != nil {
			return nil, err
		}
		payload = cv
	}
	return &EnumValue{TypeName: en.QualifiedName, En: en, Variant: x.Variant, Payload: payload}, nil
}

// findEnumByVariant resolves an unqualified "Some(x)"-style constructor by
// scanning registered enums for one owning that variant name, the same
// unqualified-name convenience the built-in Option/Result enums rely on.
func (e *Evaluator) findEnumByVariant(variant string) (*types.Enum, error) {
	for _, name := range []string{"Option", "Result"} {
		if t, err := e.Env.Types.Resolve(name); err == nil {
			if en, ok := t.(*types.Enum); ok {
				if _, _, ok := en.VariantByName(variant); ok {
					return en, nil
				}
			}
		}
	}
	return nil, fmt.Errorf("%s: no enum in scope declares variant %s", errors.KindUndefinedEnumMember, variant)
}

func (e *Evaluator) evalSizeof(x *ast.SizeofExpr) (Value, error) {
	t, err := e.ResolveType(x.Type)
	if err != nil {
		return nil, err
	}
	n := e.sizeOf(t)
	return &IntValue{Val: int64(n), T: types.ULong}, nil
}

func (e *Evaluator) evalTry(t *Task, x *ast.TryExpr) (Value, error) {
	v, err := e.evalExpr(t, x.Inner)
	if err != nil {
		return nil, err
	}
	ev, ok := v.(*EnumValue)
	if !ok {
		return v, nil
	}
	switch ev.Variant {
	case "Some", "Ok":
		return ev.Payload, nil
	case "None", "Err":
		return nil, &earlyReturn{Value: ev}
	}
	return v, nil
}

func (e *Evaluator) evalAwait(t *Task, x *ast.AwaitExpr) (Value, error) {
	v, err := e.evalExpr(t, x.Inner)
	if err != nil {
		return nil, err
	}
	fv, ok := v.(*FutureValue)
	if !ok {
		return v, nil
	}
	return e.Sched.Await(t, fv)
}
