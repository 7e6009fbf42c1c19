package samples

import "github.com/cbscript/cb/internal/ast"

func init() {
	register(Sample{
		Name:        "destructors",
		Description: "declares two structs and a defer in one scope to show the LIFO unwind order",
		Program: &ast.Program{
			Declarations: []ast.Decl{
				&ast.StructDecl{
					Name:   "Greeter",
					Fields: []ast.FieldDecl{{Name: "name", Type: namedType("string")}},
				},
				&ast.ImplBlock{
					For: "Greeter",
					Methods: []*ast.FunctionDecl{
						{
							Name:   "~Greeter",
							Return: voidType(),
							Body: block(
								exprStmt(call("println", &ast.BinaryExpr{
									Left:     strLit("destroying "),
									Operator: "+",
									Right:    &ast.MemberExpr{Object: named("self"), Member: "name"},
								})),
							),
						},
					},
				},
				&ast.FunctionDecl{
					Name:   "main",
					Return: voidType(),
					Body: block(
						&ast.VarDecl{
							Name: "a", Type: namedType("Greeter"),
							Init: &ast.StructLiteral{Type: namedType("Greeter"), Fields: []ast.StructLiteralField{{Name: "name", Value: strLit("first")}}},
						},
						&ast.VarDecl{
							Name: "b", Type: namedType("Greeter"),
							Init: &ast.StructLiteral{Type: namedType("Greeter"), Fields: []ast.StructLiteralField{{Name: "name", Value: strLit("second")}}},
						},
						&ast.DeferStmt{Stmt: exprStmt(call("println", strLit("deferred cleanup")))},
						exprStmt(call("println", strLit("running"))),
					),
				},
			},
		},
	})
}
