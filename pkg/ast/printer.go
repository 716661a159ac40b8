package ast

import (
	"fmt"
	"strings"
)

// Dump renders a node as a stable, machine-comparable s-expression. It does
// not attempt to reproduce source syntax; it exists so parser tests can
// assert structural shape without comparing internal pointers or locations.
func Dump(n Node) string {
	var b strings.Builder
	dump(&b, n)
	return b.String()
}

func dump(b *strings.Builder, n Node) {
	switch v := n.(type) {
	case *CompUnit:
		b.WriteString("(CompUnit")
		for _, u := range v.Units {
			b.WriteByte(' ')
			dump(b, u)
		}
		b.WriteByte(')')
	case *FuncDef:
		fmt.Fprintf(b, "(FuncDef %s %s (", v.ReturnType, v.Name)
		for i, p := range v.Params {
			if i > 0 {
				b.WriteByte(' ')
			}
			dump(b, p)
		}
		b.WriteString(") ")
		dump(b, v.Body)
		b.WriteByte(')')
	case *FuncParam:
		fmt.Fprintf(b, "(Param %s %s", v.Type, v.Name)
		if v.IsArray {
			b.WriteString(" []")
			for _, d := range v.Dims[1:] {
				b.WriteByte(' ')
				dump(b, d)
			}
		}
		b.WriteByte(')')
	case *VarDecl:
		fmt.Fprintf(b, "(VarDecl %s", v.Type)
		for _, vd := range v.Vars {
			b.WriteByte(' ')
			dump(b, vd)
		}
		b.WriteByte(')')
	case *VarDef:
		fmt.Fprintf(b, "(VarDef %s", v.Name)
		for _, d := range v.Dims {
			b.WriteString(" [")
			if d != nil {
				dump(b, d)
			}
			b.WriteByte(']')
		}
		if v.Init != nil {
			b.WriteString(" = ")
			dump(b, v.Init)
		}
		b.WriteByte(')')
	case *Block:
		b.WriteString("(Block")
		for _, item := range v.Items {
			b.WriteByte(' ')
			dump(b, item)
		}
		b.WriteByte(')')
	case *ExprStmt:
		if v.Expr == nil {
			b.WriteString("(Empty)")
			return
		}
		b.WriteString("(ExprStmt ")
		dump(b, v.Expr)
		b.WriteByte(')')
	case *Assign:
		b.WriteString("(Assign ")
		dump(b, v.LHS)
		b.WriteByte(' ')
		dump(b, v.RHS)
		b.WriteByte(')')
	case *If:
		b.WriteString("(If ")
		dump(b, v.Cond)
		b.WriteByte(' ')
		dump(b, v.Then)
		if v.Else != nil {
			b.WriteByte(' ')
			dump(b, v.Else)
		}
		b.WriteByte(')')
	case *While:
		b.WriteString("(While ")
		dump(b, v.Cond)
		b.WriteByte(' ')
		dump(b, v.Body)
		b.WriteByte(')')
	case *For:
		b.WriteString("(For ")
		if v.Init != nil {
			dump(b, v.Init)
		} else {
			b.WriteString("()")
		}
		b.WriteByte(' ')
		if v.Cond != nil {
			dump(b, v.Cond)
		} else {
			b.WriteString("()")
		}
		b.WriteByte(' ')
		if v.Step != nil {
			dump(b, v.Step)
		} else {
			b.WriteString("()")
		}
		b.WriteByte(' ')
		dump(b, v.Body)
		b.WriteByte(')')
	case *Return:
		b.WriteString("(Return")
		if v.Value != nil {
			b.WriteByte(' ')
			dump(b, v.Value)
		}
		b.WriteByte(')')
	case *Break:
		b.WriteString("(Break)")
	case *Continue:
		b.WriteString("(Continue)")
	case Identifier:
		fmt.Fprintf(b, "(Ident %s)", v.Name)
	case Number:
		fmt.Fprintf(b, "(Number %d)", v.Value)
	case Char:
		fmt.Fprintf(b, "(Char %d)", v.Value)
	case String:
		fmt.Fprintf(b, "(String %q)", string(v.Value))
	case *LVal:
		fmt.Fprintf(b, "(LVal %s", v.Name)
		for _, idx := range v.Indices {
			b.WriteByte(' ')
			dump(b, idx)
		}
		b.WriteByte(')')
	case *Unary:
		fmt.Fprintf(b, "(Unary %s ", v.Op)
		dump(b, v.Operand)
		b.WriteByte(')')
	case *Binary:
		fmt.Fprintf(b, "(Binary %s ", v.Op)
		dump(b, v.Left)
		b.WriteByte(' ')
		dump(b, v.Right)
		b.WriteByte(')')
	case *Ternary:
		b.WriteString("(Ternary ")
		dump(b, v.Cond)
		b.WriteByte(' ')
		dump(b, v.Then)
		b.WriteByte(' ')
		dump(b, v.Else)
		b.WriteByte(')')
	case *FuncCall:
		fmt.Fprintf(b, "(Call %s", v.Name)
		for _, a := range v.Args {
			b.WriteByte(' ')
			dump(b, a)
		}
		b.WriteByte(')')
	case *InitList:
		b.WriteString("(InitList")
		for _, it := range v.Items {
			b.WriteByte(' ')
			dump(b, it)
		}
		b.WriteByte(')')
	default:
		fmt.Fprintf(b, "(? %T)", n)
	}
}
