package samples

import "github.com/cbscript/cb/internal/ast"

func init() {
	futureInt := &ast.GenericType{Base: "Future", Args: []ast.TypeExpr{namedType("int")}}

	worker := &ast.FunctionDecl{
		Name:    "worker",
		IsAsync: true,
		Params:  []ast.Param{{Name: "id", Type: namedType("int")}},
		Return:  namedType("int"),
		Body: block(
			exprStmt(call("println", &ast.InterpolatedString{
				Parts: []string{"worker ", " starting"}, Exprs: []ast.Expression{named("id")}, Formats: []string{""},
			})),
			&ast.YieldStmt{},
			exprStmt(call("println", &ast.InterpolatedString{
				Parts: []string{"worker ", " resuming"}, Exprs: []ast.Expression{named("id")}, Formats: []string{""},
			})),
			&ast.ReturnStmt{Value: &ast.BinaryExpr{Left: named("id"), Operator: "*", Right: intLit(10)}},
		),
	}

	main := &ast.FunctionDecl{
		Name:   "main",
		Return: voidType(),
		Body: block(
			&ast.VarDecl{Name: "f1", Type: futureInt, Init: call("worker", intLit(1))},
			&ast.VarDecl{Name: "f2", Type: futureInt, Init: call("worker", intLit(2))},
			&ast.VarDecl{Name: "r1", Type: namedType("int"), Init: &ast.AwaitExpr{Inner: named("f1")}},
			&ast.VarDecl{Name: "r2", Type: namedType("int"), Init: &ast.AwaitExpr{Inner: named("f2")}},
			exprStmt(call("println", &ast.InterpolatedString{
				Parts:   []string{"results: ", ", ", ""},
				Exprs:   []ast.Expression{named("r1"), named("r2")},
				Formats: []string{"", ""},
			})),
		),
	}

	register(Sample{
		Name:        "async-tasks",
		Description: "spawns two async workers that yield once each and awaits both, showing cooperative interleaving",
		Program: &ast.Program{
			Declarations: []ast.Decl{worker, main},
		},
	})
}
