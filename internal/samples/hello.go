package samples

import "github.com/cbscript/cb/internal/ast"

func init() {
	register(Sample{
		Name:        "hello",
		Description: "prints a greeting and the result of a string-interpolated calculation",
		Program: &ast.Program{
			Declarations: []ast.Decl{
				&ast.FunctionDecl{
					Name:   "main",
					Return: voidType(),
					Body: block(
						exprStmt(call("println", strLit("Hello from Cb!"))),
						&ast.VarDecl{Name: "x", Type: namedType("int"), Init: intLit(6)},
						&ast.VarDecl{Name: "y", Type: namedType("int"), Init: intLit(7)},
						exprStmt(call("println", &ast.InterpolatedString{
							Parts: []string{"", " * ", " = ", ""},
							Exprs: []ast.Expression{named("x"), named("y"), &ast.BinaryExpr{Left: named("x"), Operator: "*", Right: named("y")}},
							Formats: []string{"", "", ""},
						})),
					),
				},
			},
		},
	})
}
