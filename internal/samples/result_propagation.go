package samples

import "github.com/cbscript/cb/internal/ast"

func init() {
	resultType := &ast.GenericType{Base: "Result", Args: []ast.TypeExpr{namedType("int"), namedType("string")}}

	safeDiv := &ast.FunctionDecl{
		Name:   "safeDiv",
		Params: []ast.Param{{Name: "a", Type: namedType("int")}, {Name: "b", Type: namedType("int")}},
		Return: resultType,
		Body: block(
			&ast.IfStmt{
				Cond: &ast.BinaryExpr{Left: named("b"), Operator: "==", Right: intLit(0)},
				Then: block(&ast.ReturnStmt{Value: &ast.EnumVariantExpr{Variant: "Err", Payload: strLit("division by zero")}}),
			},
			&ast.ReturnStmt{Value: &ast.EnumVariantExpr{
				Variant: "Ok",
				Payload: &ast.BinaryExpr{Left: named("a"), Operator: "/", Right: named("b")},
			}},
		),
	}

	compute := &ast.FunctionDecl{
		Name:   "compute",
		Params: []ast.Param{{Name: "a", Type: namedType("int")}, {Name: "b", Type: namedType("int")}},
		Return: resultType,
		Body: block(
			&ast.VarDecl{
				Name: "r", Type: namedType("int"),
				Init: &ast.TryExpr{Inner: call("safeDiv", named("a"), named("b"))},
			},
			&ast.ReturnStmt{Value: &ast.EnumVariantExpr{
				Variant: "Ok",
				Payload: &ast.BinaryExpr{Left: named("r"), Operator: "*", Right: intLit(2)},
			}},
		),
	}

	report := func(a, b int64) ast.Statement {
		return &ast.MatchStmt{
			Subject: call("compute", intLit(a), intLit(b)),
			Arms: []ast.MatchArm{
				{
					Pattern: &ast.VariantPattern{Variant: "Ok", Binder: "v"},
					Body: []ast.Statement{exprStmt(call("println", &ast.InterpolatedString{
						Parts: []string{"ok: ", ""}, Exprs: []ast.Expression{named("v")}, Formats: []string{""},
					}))},
				},
				{
					Pattern: &ast.VariantPattern{Variant: "Err", Binder: "e"},
					Body:    []ast.Statement{exprStmt(call("println", &ast.BinaryExpr{Left: strLit("err: "), Operator: "+", Right: named("e")}))},
				},
			},
		}
	}

	main := &ast.FunctionDecl{
		Name:   "main",
		Return: voidType(),
		Body: block(
			report(10, 2),
			report(10, 0),
		),
	}

	register(Sample{
		Name:        "result-propagation",
		Description: "uses the ? operator to propagate a Result error out of a helper function",
		Program: &ast.Program{
			Declarations: []ast.Decl{safeDiv, compute, main},
		},
	})
}
