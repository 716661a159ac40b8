package codegen

import (
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/daizxn/minic-llir/pkg/ast"
	"github.com/daizxn/minic-llir/pkg/diag"
)

// lowerExpr lowers an expression to the IR value it evaluates to. Every
// case that can fail reports a diagnostic and still returns a value (a
// zero i32 constant in most cases; a load through a null pointer for an
// undeclared name), so a caller can always keep building.
func (g *Generator) lowerExpr(e ast.Expr) value.Value {
	switch v := e.(type) {
	case ast.Number:
		return constant.NewInt(types.I32, int64(v.Value))
	case ast.Char:
		return constant.NewInt(types.I8, int64(v.Value))
	case ast.String:
		return g.lowerStringLit(v)
	case *ast.LVal:
		addr, elemType := g.lowerLValAddr(v)
		return g.cur.NewLoad(elemType, addr)
	case *ast.Unary:
		return g.lowerUnary(v)
	case *ast.Binary:
		return g.lowerBinary(v)
	case *ast.Ternary:
		return g.lowerTernary(v)
	case *ast.FuncCall:
		return g.lowerFuncCall(v)
	default:
		g.errorf(diag.Location{}, "unsupported expression %T", v)
		return constant.NewInt(types.I32, 0)
	}
}

func (g *Generator) lowerStringLit(s ast.String) value.Value {
	data := constant.NewCharArrayFromString(string(s.Value) + "\x00")
	glob := g.module.NewGlobalDef(g.uniqueStringName(), data)
	glob.Immutable = true
	zero := constant.NewInt(types.I32, 0)
	return constant.NewGetElementPtr(data.Type(), glob, zero, zero)
}

// toBool converts v to i1: an integer compares against zero, a pointer
// against null, and i1 passes through unchanged.
func (g *Generator) toBool(v value.Value, loc diag.Location) value.Value {
	switch t := v.Type().(type) {
	case *types.IntType:
		if t.BitSize == 1 {
			return v
		}
		return g.cur.NewICmp(enum.IPredNE, v, constant.NewInt(t, 0))
	case *types.PointerType:
		return g.cur.NewICmp(enum.IPredNE, v, constant.NewNull(t))
	default:
		g.errorf(loc, "cannot convert value of type %s to bool", v.Type())
		return constant.NewInt(types.I1, 0)
	}
}

// coerceTo widens or truncates an integer value to target's bit width.
// Non-integer values, and values already of the target type, pass
// through unchanged.
func (g *Generator) coerceTo(v value.Value, target types.Type) value.Value {
	if v.Type() == target {
		return v
	}
	srcInt, ok := v.Type().(*types.IntType)
	if !ok {
		return v
	}
	dstInt, ok := target.(*types.IntType)
	if !ok {
		return v
	}
	if dstInt.BitSize > srcInt.BitSize {
		return g.cur.NewZExt(v, dstInt)
	}
	if dstInt.BitSize < srcInt.BitSize {
		return g.cur.NewTrunc(v, dstInt)
	}
	return v
}

// commonIntType picks the wider of two integer-typed operands' types,
// defaulting to i32 when either side is not an integer.
func commonIntType(a, b value.Value) *types.IntType {
	ai, aok := a.Type().(*types.IntType)
	bi, bok := b.Type().(*types.IntType)
	switch {
	case aok && bok:
		if ai.BitSize >= bi.BitSize {
			return ai
		}
		return bi
	case aok:
		return ai
	case bok:
		return bi
	default:
		return types.I32
	}
}

func (g *Generator) lowerUnary(u *ast.Unary) value.Value {
	if u.Op == ast.OpInc || u.Op == ast.OpDec {
		g.errorf(u.Loc, "prefix %s is not supported", u.Op)
		return constant.NewInt(types.I32, 0)
	}

	v := g.lowerExpr(u.Operand)
	switch u.Op {
	case ast.OpPlus:
		return v
	case ast.OpNeg:
		it, ok := v.Type().(*types.IntType)
		if !ok {
			g.errorf(u.Loc, "unary - requires an integer operand")
			return v
		}
		return g.cur.NewSub(constant.NewInt(it, 0), v)
	case ast.OpNot:
		b := g.toBool(v, u.Loc)
		return g.cur.NewXor(b, constant.NewInt(types.I1, 1))
	case ast.OpBitNot:
		it, ok := v.Type().(*types.IntType)
		if !ok {
			g.errorf(u.Loc, "unary ~ requires an integer operand")
			return v
		}
		return g.cur.NewXor(v, constant.NewInt(it, -1))
	default:
		g.errorf(u.Loc, "unsupported unary operator %s", u.Op)
		return v
	}
}

func (g *Generator) lowerBinary(b *ast.Binary) value.Value {
	switch b.Op {
	case ast.OpAnd:
		return g.lowerShortCircuit(b, true)
	case ast.OpOr:
		return g.lowerShortCircuit(b, false)
	}

	left := g.lowerExpr(b.Left)
	right := g.lowerExpr(b.Right)

	switch b.Op {
	case ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe, ast.OpEq, ast.OpNe:
		t := commonIntType(left, right)
		l, r := g.coerceTo(left, t), g.coerceTo(right, t)
		return g.cur.NewICmp(comparisonPred(b.Op), l, r)
	}

	t := commonIntType(left, right)
	l, r := g.coerceTo(left, t), g.coerceTo(right, t)

	switch b.Op {
	case ast.OpAdd:
		return g.cur.NewAdd(l, r)
	case ast.OpSub:
		return g.cur.NewSub(l, r)
	case ast.OpMul:
		return g.cur.NewMul(l, r)
	case ast.OpDiv:
		return g.cur.NewSDiv(l, r)
	case ast.OpMod:
		return g.cur.NewSRem(l, r)
	case ast.OpBitAnd:
		return g.cur.NewAnd(l, r)
	case ast.OpBitOr:
		return g.cur.NewOr(l, r)
	case ast.OpBitXor:
		return g.cur.NewXor(l, r)
	case ast.OpShl:
		return g.cur.NewShl(l, r)
	case ast.OpShr:
		return g.cur.NewAShr(l, r)
	default:
		g.errorf(b.Loc, "unsupported binary operator %s", b.Op)
		return l
	}
}

func comparisonPred(op ast.BinaryOp) enum.IPred {
	switch op {
	case ast.OpLt:
		return enum.IPredSLT
	case ast.OpLe:
		return enum.IPredSLE
	case ast.OpGt:
		return enum.IPredSGT
	case ast.OpGe:
		return enum.IPredSGE
	case ast.OpEq:
		return enum.IPredEQ
	default:
		return enum.IPredNE
	}
}

// lowerShortCircuit lowers && (isAnd) or || (!isAnd). For &&, false on the
// left skips the right operand entirely; for ||, true on the left does.
// The merge block's phi carries the left-skipping value (false for &&,
// true for ||) from the entry block and the converted right-hand value
// from the right-hand block, so the right operand is never evaluated
// once the left side alone determines the result.
func (g *Generator) lowerShortCircuit(b *ast.Binary, isAnd bool) value.Value {
	left := g.lowerExpr(b.Left)
	leftBool := g.toBool(left, b.Loc)
	entry := g.cur

	rhsBlock := g.newBlock("")
	mergeBlock := g.newBlock("")

	var shortValue *constant.Int
	if isAnd {
		shortValue = constant.NewInt(types.I1, 0)
		g.cur.NewCondBr(leftBool, rhsBlock, mergeBlock)
	} else {
		shortValue = constant.NewInt(types.I1, 1)
		g.cur.NewCondBr(leftBool, mergeBlock, rhsBlock)
	}

	g.setBlock(rhsBlock)
	right := g.lowerExpr(b.Right)
	rightBool := g.toBool(right, b.Loc)
	rhsEnd := g.cur
	if !g.terminated() {
		g.cur.NewBr(mergeBlock)
	}

	g.setBlock(mergeBlock)
	return g.cur.NewPhi(
		newIncoming(shortValue, entry),
		newIncoming(rightBool, rhsEnd),
	)
}

func (g *Generator) lowerTernary(t *ast.Ternary) value.Value {
	cond := g.toBool(g.lowerExpr(t.Cond), t.Loc)

	thenBlock := g.newBlock("")
	elseBlock := g.newBlock("")
	mergeBlock := g.newBlock("")
	g.cur.NewCondBr(cond, thenBlock, elseBlock)

	g.setBlock(thenBlock)
	thenVal := g.lowerExpr(t.Then)
	thenEnd := g.cur
	if !g.terminated() {
		g.cur.NewBr(mergeBlock)
	}

	g.setBlock(elseBlock)
	elseVal := g.lowerExpr(t.Else)
	elseEnd := g.cur
	if !g.terminated() {
		g.cur.NewBr(mergeBlock)
	}

	g.setBlock(mergeBlock)
	elseVal = g.coerceTo(elseVal, thenVal.Type())
	return g.cur.NewPhi(
		newIncoming(thenVal, thenEnd),
		newIncoming(elseVal, elseEnd),
	)
}

func (g *Generator) lowerFuncCall(c *ast.FuncCall) value.Value {
	fn, ok := g.lookupFunc(c.Name)
	if !ok {
		g.errorf(c.Loc, "call to unknown function %q", c.Name)
		return constant.NewInt(types.I32, 0)
	}
	if len(c.Args) != len(fn.Params) {
		g.errorf(c.Loc, "function %q expects %d argument(s), got %d", c.Name, len(fn.Params), len(c.Args))
	}

	args := make([]value.Value, 0, len(c.Args))
	for i, a := range c.Args {
		v := g.lowerExpr(a)
		if i < len(fn.Params) {
			v = g.coerceTo(v, fn.Params[i].Type())
		}
		args = append(args, v)
	}
	return g.cur.NewCall(fn, args...)
}
