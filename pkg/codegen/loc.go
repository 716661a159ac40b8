package codegen

import (
	"github.com/daizxn/minic-llir/pkg/ast"
	"github.com/daizxn/minic-llir/pkg/diag"
)

// locOf extracts the source location carried by any AST node, for use in
// diagnostics raised against a node whose concrete type isn't already
// known at the call site.
func locOf(n ast.Node) diag.Location {
	switch v := n.(type) {
	case ast.Identifier:
		return v.Loc
	case ast.Number:
		return v.Loc
	case ast.Char:
		return v.Loc
	case ast.String:
		return v.Loc
	case *ast.LVal:
		return v.Loc
	case *ast.Unary:
		return v.Loc
	case *ast.Binary:
		return v.Loc
	case *ast.Ternary:
		return v.Loc
	case *ast.FuncCall:
		return v.Loc
	case *ast.InitList:
		return v.Loc
	case *ast.ExprStmt:
		return v.Loc
	case *ast.Assign:
		return v.Loc
	case *ast.Block:
		return v.Loc
	case *ast.If:
		return v.Loc
	case *ast.While:
		return v.Loc
	case *ast.For:
		return v.Loc
	case *ast.Return:
		return v.Loc
	case *ast.Break:
		return v.Loc
	case *ast.Continue:
		return v.Loc
	case *ast.VarDef:
		return v.Loc
	case *ast.VarDecl:
		return v.Loc
	case *ast.FuncParam:
		return v.Loc
	case *ast.FuncDef:
		return v.Loc
	default:
		return diag.Location{}
	}
}
