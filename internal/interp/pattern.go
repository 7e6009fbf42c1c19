package interp

import (
	"github.com/cbscript/cb/internal/ast"
)

// matchPattern tests subject against pattern, returning the bindings the
// matching arm's body should see (currently only VariantPattern's payload
// binder produces one) and whether it matched at all (§4.4 match/switch,
// §8 Scenario listing the Option/Result pattern-match boundaries).
func (e *Evaluator) matchPattern(t *Task, pattern ast.Pattern, subject Value) (map[string]Value, bool, error) {
	switch p := pattern.(type) {
	case *ast.WildcardPattern:
		return nil, true, nil

	case *ast.VariantPattern:
		ev, ok := subject.(*EnumValue)
		if !ok || ev.Variant != p.Variant {
			return nil, false, nil
		}
		if p.Binder == "" {
			return nil, true, nil
		}
		return map[string]Value{p.Binder: ev.Payload}, true, nil

	case *ast.LiteralPattern:
		lit, err := e.evalExpr(t, p.Value)
		if err != nil {
			return nil, false, err
		}
		return nil, valuesEqual(subject, lit), nil

	case *ast.RangePattern:
		iv, ok := subject.(*IntValue)
		if !ok {
			return nil, false, nil
		}
		startV, err := e.evalExpr(t, p.Start)
		if err != nil {
			return nil, false, err
		}
		endV, err := e.evalExpr(t, p.End)
		if err != nil {
			return nil, false, err
		}
		start, ok := startV.(*IntValue)
		if !ok {
			return nil, false, nil
		}
		end, ok := endV.(*IntValue)
		if !ok {
			return nil, false, nil
		}
		return nil, iv.Val >= start.Val && iv.Val <= end.Val, nil

	case *ast.OrPattern:
		for _, alt := range p.Alternatives {
			bindings, matched, err := e.matchPattern(t, alt, subject)
			if err != nil {
				return nil, false, err
			}
			if matched {
				return bindings, true, nil
			}
		}
		return nil, false, nil
	}
	return nil, false, nil
}
