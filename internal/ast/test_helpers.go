package ast

import "github.com/cbscript/cb/internal/errors"

// Helpers for building small AST fragments tersely in tests. Position is
// always line 1, column 1; tests that care about location build it
// directly.

func pos() errors.Position { return errors.Position{Line: 1, Column: 1} }

func ident(name string) *Identifier { return &Identifier{Position: pos(), Name: name} }

func intLit(v int64) *IntLiteral { return &IntLiteral{Position: pos(), Value: v} }

func strLit(v string) *StringLiteral { return &StringLiteral{Position: pos(), Value: v} }

func boolLit(v bool) *BoolLiteral { return &BoolLiteral{Position: pos(), Value: v} }

func namedType(name string) *NamedType { return &NamedType{Position: pos(), Name: name} }

func binary(left Expression, op string, right Expression) *BinaryExpr {
	return &BinaryExpr{Position: pos(), Left: left, Operator: op, Right: right}
}

func block(stmts ...Statement) *BlockStmt {
	return &BlockStmt{Position: pos(), Statements: stmts}
}
