package interp

import (
	"fmt"

	"github.com/cbscript/cb/internal/ast"
	"github.com/cbscript/cb/internal/errors"
	"github.com/cbscript/cb/internal/interp/runtime"
	"github.com/cbscript/cb/internal/types"
)

// execBlockIn executes block's statements directly within scope (no
// additional nesting) — used both for a fresh function-call scope (where
// params and body statements share one scope) and, via execBlock, for a
// genuinely nested `{ ... }` that does get its own child scope.
func (e *Evaluator) execBlockIn(t *Task, block *ast.BlockStmt, scope *runtime.Scope) (signal, error) {
	for _, stmt := range block.Statements {
		if !t.isRoot && t.resumeCh != nil {
			e.Sched.MaybeAutoYield(t)
		}
		sig, err := e.execStmt(t, stmt)
		if err != nil {
			return signal{}, err
		}
		if sig.kind != sigNone {
			return sig, nil
		}
	}
	return signal{}, nil
}

// execBlock runs block in a freshly pushed child scope, unwinding
// (defers + destructors, in reverse declaration order per §4.7) when it exits by
// any path — normal fallthrough, return, break, continue, or error.
func (e *Evaluator) execBlock(t *Task, block *ast.BlockStmt) (signal, error) {
	t.Frame.Push()
	scope := t.Frame.Current()
	sig, err := e.execBlockIn(t, block, scope)
	t.Frame.Pop()
	unwindErr := scope.Unwind(func(v *runtime.Variable) error { return e.destroyVariable(t, v) })
	if err != nil {
		return signal{}, err
	}
	if unwindErr != nil {
		return signal{}, unwindErr
	}
	return sig, nil
}

// execStmt dispatches one statement (§4.4 full statement inventory).
func (e *Evaluator) execStmt(t *Task, stmt ast.Statement) (signal, error) {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		if _, err := e.evalExpr(t, s.Expression); err != nil {
			return signal{}, err
		}
		return signal{}, nil

	case *ast.BlockStmt:
		return e.execBlock(t, s)

	case *ast.VarDecl:
		return signal{}, e.execVarDecl(t, s)

	case *ast.AssignStmt:
		return signal{}, e.execAssign(t, s)

	case *ast.IfStmt:
		return e.execIf(t, s)

	case *ast.WhileStmt:
		return e.execWhile(t, s)

	case *ast.ForStmt:
		return e.execFor(t, s)

	case *ast.BreakStmt:
		return signal{kind: sigBreak}, nil

	case *ast.ContinueStmt:
		return signal{kind: sigContinue}, nil

	case *ast.ReturnStmt:
		var v Value = &VoidValue{}
		if s.Value != nil {
			rv, err := e.evalExpr(t, s.Value)
			if err != nil {
				return signal{}, err
			}
			v = rv
		}
		return signal{kind: sigReturn, value: v}, nil

	case *ast.DeferStmt:
		target := t.Frame.Current()
		target.PushDefer(func() error {
			_, err := e.execStmt(t, s.Stmt)
			return err
		})
		return signal{}, nil

	case *ast.YieldStmt:
		e.Sched.Yield(t)
		return signal{}, nil

	case *ast.SwitchStmt:
		return e.execSwitch(t, s)

	case *ast.MatchStmt:
		return e.execMatch(t, s)

	default:
		return signal{}, fmt.Errorf("unhandled statement %T", stmt)
	}
}

func (e *Evaluator) execVarDecl(t *Task, s *ast.VarDecl) error {
	var val Value
	var vt types.Type
	if s.Type != nil {
		rt, err := e.ResolveType(s.Type)
		if err != nil {
			return err
		}
		vt = rt
	}

	if s.Init != nil {
		iv, err := e.evalExpr(t, s.Init)
		if err != nil {
			return err
		}
		if vt == nil {
			vt = iv.Type()
		}
		cv, err := e.coerce(vt, iv)
		if err != nil {
			return err
		}
		val = cv
	} else {
		zv, err := e.zeroValue(vt)
		if err != nil {
			return err
		}
		val = zv
	}

	hasDtor := false
	if sv, ok := val.(*StructValue); ok {
		hasDtor = e.hasDestructor(sv.TypeName)
	}

	v := &runtime.Variable{Name: s.Name, Type: vt, Value: val, IsConst: s.IsConst, IsStatic: s.IsStatic, IsAssigned: true, HasDtor: hasDtor}

	scope := t.Frame.Current()
	if s.IsStatic {
		scope = e.Env.StaticScope(staticScopeKey(t))
		if existing, ok := scope.Lookup(s.Name); ok {
			// Re-entering the declaration re-attaches to the persistent
			// static rather than re-initializing it (§4.3).
			t.Frame.Declare(existing)
			return nil
		}
	}
	if !scope.Declare(v) {
		return fmt.Errorf("%s: %s already declared in this scope", errors.KindTypeMismatch, s.Name)
	}
	if s.IsStatic {
		t.Frame.Declare(v)
	}
	return nil
}

// staticScopeKey is a placeholder identity for `static` locals when no
// enclosing function/method name is tracked on Task; refined once
// call-site context is threaded through (dispatch.go's CallFunction could
// stash the qualified name on Task in a later pass). For now all statics
// in the same lexical position across calls to the *same* function share
// one persistent scope, which is what matters for §4.3's semantics within
// a single function body.
func staticScopeKey(t *Task) string {
	return fmt.Sprintf("task-static-%p", t)
}

func (e *Evaluator) execAssign(t *Task, s *ast.AssignStmt) error {
	rhs, err := e.evalExpr(t, s.Value)
	if err != nil {
		return err
	}

	if s.Operator != "" && s.Operator != "=" {
		cur, err := e.evalExpr(t, s.Target)
		if err != nil {
			return err
		}
		combined, err := e.applyCompoundOp(s.Operator, cur, rhs)
		if err != nil {
			return err
		}
		rhs = combined
	}

	return e.assignTo(t, s.Target, rhs)
}

func (e *Evaluator) execIf(t *Task, s *ast.IfStmt) (signal, error) {
	cond, err := e.evalExpr(t, s.Cond)
	if err != nil {
		return signal{}, err
	}
	bv, ok := cond.(*BoolValue)
	if !ok {
		return signal{}, fmt.Errorf("if condition must be bool")
	}
	if bv.Val {
		return e.execBlock(t, s.Then)
	}
	if s.Else != nil {
		switch elseNode := s.Else.(type) {
		case *ast.BlockStmt:
			return e.execBlock(t, elseNode)
		case *ast.IfStmt:
			return e.execIf(t, elseNode)
		default:
			return e.execStmt(t, s.Else)
		}
	}
	return signal{}, nil
}

func (e *Evaluator) execWhile(t *Task, s *ast.WhileStmt) (signal, error) {
	for {
		e.Sched.MaybeAutoYield(t)
		cond, err := e.evalExpr(t, s.Cond)
		if err != nil {
			return signal{}, err
		}
		bv, ok := cond.(*BoolValue)
		if !ok {
			return signal{}, fmt.Errorf("while condition must be bool")
		}
		if !bv.Val {
			return signal{}, nil
		}
		sig, err := e.execBlock(t, s.Body)
		if err != nil {
			return signal{}, err
		}
		switch sig.kind {
		case sigBreak:
			return signal{}, nil
		case sigReturn:
			return sig, nil
		}
	}
}

func (e *Evaluator) execFor(t *Task, s *ast.ForStmt) (signal, error) {
	t.Frame.Push()
	outer := t.Frame.Current()
	defer func() {
		t.Frame.Pop()
		outer.Unwind(func(v *runtime.Variable) error { return e.destroyVariable(t, v) })
	}()

	if s.Init != nil {
		if _, err := e.execStmt(t, s.Init); err != nil {
			return signal{}, err
		}
	}
	for {
		e.Sched.MaybeAutoYield(t)
		if s.Cond != nil {
			cond, err := e.evalExpr(t, s.Cond)
			if err != nil {
				return signal{}, err
			}
			bv, ok := cond.(*BoolValue)
			if !ok {
				return signal{}, fmt.Errorf("for condition must be bool")
			}
			if !bv.Val {
				return signal{}, nil
			}
		}
		sig, err := e.execBlock(t, s.Body)
		if err != nil {
			return signal{}, err
		}
		if sig.kind == sigBreak {
			return signal{}, nil
		}
		if sig.kind == sigReturn {
			return sig, nil
		}
		if s.Post != nil {
			if _, err := e.execStmt(t, s.Post); err != nil {
				return signal{}, err
			}
		}
	}
}

func (e *Evaluator) execSwitch(t *Task, s *ast.SwitchStmt) (signal, error) {
	disc, err := e.evalExpr(t, s.Discriminant)
	if err != nil {
		return signal{}, err
	}
	var defaultCase *ast.SwitchCase
	for i := range s.Cases {
		c := &s.Cases[i]
		if c.IsDefault {
			defaultCase = c
			continue
		}
		for _, label := range c.Labels {
			if r, ok := label.(*ast.RangeExpr); ok {
				_, matched, err := e.matchPattern(t, &ast.RangePattern{Start: r.Start, End: r.End}, disc)
				if err != nil {
					return signal{}, err
				}
				if matched {
					return e.execCaseBody(t, c.Body)
				}
				continue
			}
			lv, err := e.evalExpr(t, label)
			if err != nil {
				return signal{}, err
			}
			if literalsEqual(disc, lv) {
				return e.execCaseBody(t, c.Body)
			}
		}
	}
	if defaultCase != nil {
		return e.execCaseBody(t, defaultCase.Body)
	}
	return signal{}, nil
}

func (e *Evaluator) execCaseBody(t *Task, body []ast.Statement) (signal, error) {
	t.Frame.Push()
	scope := t.Frame.Current()
	var result signal
	var resultErr error
	for _, stmt := range body {
		sig, err := e.execStmt(t, stmt)
		if err != nil {
			resultErr = err
			break
		}
		if sig.kind != sigNone {
			result = sig
			break
		}
	}
	t.Frame.Pop()
	if unwindErr := scope.Unwind(func(v *runtime.Variable) error { return e.destroyVariable(t, v) }); unwindErr != nil && resultErr == nil {
		resultErr = unwindErr
	}
	return result, resultErr
}

func (e *Evaluator) execMatch(t *Task, s *ast.MatchStmt) (signal, error) {
	subject, err := e.evalExpr(t, s.Subject)
	if err != nil {
		return signal{}, err
	}
	for _, arm := range s.Arms {
		bindings, matched, err := e.matchPattern(t, arm.Pattern, subject)
		if err != nil {
			return signal{}, err
		}
		if !matched {
			continue
		}
		t.Frame.Push()
		scope := t.Frame.Current()
		for name, v := range bindings {
			scope.Declare(&runtime.Variable{Name: name, Type: v.Type(), Value: v, IsAssigned: true})
		}
		sig, err := e.execBlockIn(t, &ast.BlockStmt{Statements: arm.Body}, scope)
		t.Frame.Pop()
		if unwindErr := scope.Unwind(func(v *runtime.Variable) error { return e.destroyVariable(t, v) }); unwindErr != nil && err == nil {
			err = unwindErr
		}
		return sig, err
	}
	return signal{}, fmt.Errorf("%s: no match arm matched the subject value", errors.KindUnmatchedPattern)
}
