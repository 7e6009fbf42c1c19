// Package samples holds a small registry of complete Cb programs built
// directly as ast.Program values. Cb has no lexer/parser in this tree, so
// "cb run <name>" exercises the evaluator against these hand-built ASTs
// instead of against source text (see cmd/cb/cmd's run/sample commands).
package samples

import (
	"sort"

	"github.com/cbscript/cb/internal/ast"
)

// Sample is one named, runnable program plus a one-line description shown
// by "cb sample list".
type Sample struct {
	Name        string
	Description string
	Program     *ast.Program
}

var registry = map[string]Sample{}

func register(s Sample) {
	registry[s.Name] = s
}

// Get looks up a sample by name.
func Get(name string) (Sample, bool) {
	s, ok := registry[name]
	return s, ok
}

// Names returns every registered sample name, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func named(n string) *ast.Identifier       { return &ast.Identifier{Name: n} }
func strLit(s string) *ast.StringLiteral   { return &ast.StringLiteral{Value: s} }
func intLit(n int64) *ast.IntLiteral       { return &ast.IntLiteral{Value: n} }
func voidType() *ast.NamedType             { return &ast.NamedType{Name: "void"} }
func namedType(n string) *ast.NamedType    { return &ast.NamedType{Name: n} }
func block(stmts ...ast.Statement) *ast.BlockStmt {
	return &ast.BlockStmt{Statements: stmts}
}
func exprStmt(e ast.Expression) *ast.ExpressionStmt { return &ast.ExpressionStmt{Expression: e} }
func call(name string, args ...ast.Expression) *ast.CallExpr {
	return &ast.CallExpr{Callee: named(name), Args: args}
}
