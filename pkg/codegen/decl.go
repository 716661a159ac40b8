package codegen

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/daizxn/minic-llir/pkg/ast"
	"github.com/daizxn/minic-llir/pkg/ctypes"
	"github.com/daizxn/minic-llir/pkg/diag"
	"github.com/daizxn/minic-llir/pkg/symtab"
)

// evalConstInt evaluates e as a constant integer expression, for use in
// array dimensions and global initializers. Only literals and arithmetic
// over literals are constant here; identifiers are never constant, since
// this language does no constant propagation. This is deliberately the
// only "folding" this generator performs, and only in the handful of
// contexts that require a compile-time constant by grammar.
func evalConstInt(e ast.Expr) (int32, bool) {
	switch v := e.(type) {
	case ast.Number:
		return v.Value, true
	case ast.Char:
		return int32(v.Value), true
	case *ast.Unary:
		x, ok := evalConstInt(v.Operand)
		if !ok {
			return 0, false
		}
		switch v.Op {
		case ast.OpPlus:
			return x, true
		case ast.OpNeg:
			return -x, true
		case ast.OpBitNot:
			return ^x, true
		case ast.OpNot:
			return boolInt(x == 0), true
		default:
			return 0, false
		}
	case *ast.Binary:
		l, ok := evalConstInt(v.Left)
		if !ok {
			return 0, false
		}
		r, ok := evalConstInt(v.Right)
		if !ok {
			return 0, false
		}
		switch v.Op {
		case ast.OpAdd:
			return l + r, true
		case ast.OpSub:
			return l - r, true
		case ast.OpMul:
			return l * r, true
		case ast.OpDiv:
			if r == 0 {
				return 0, false
			}
			return l / r, true
		case ast.OpMod:
			if r == 0 {
				return 0, false
			}
			return l % r, true
		case ast.OpShl:
			return l << uint32(r), true
		case ast.OpShr:
			return l >> uint32(r), true
		case ast.OpBitAnd:
			return l & r, true
		case ast.OpBitOr:
			return l | r, true
		case ast.OpBitXor:
			return l ^ r, true
		case ast.OpLt:
			return boolInt(l < r), true
		case ast.OpLe:
			return boolInt(l <= r), true
		case ast.OpGt:
			return boolInt(l > r), true
		case ast.OpGe:
			return boolInt(l >= r), true
		case ast.OpEq:
			return boolInt(l == r), true
		case ast.OpNe:
			return boolInt(l != r), true
		case ast.OpAnd:
			return boolInt(l != 0 && r != 0), true
		case ast.OpOr:
			return boolInt(l != 0 || r != 0), true
		default:
			return 0, false
		}
	default:
		return 0, false
	}
}

func boolInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

// scalarInitExpr unwraps a brace initializer down to the single expression
// a scalar declaration's init may be spelled with (a singleton init-list is
// accepted for a scalar, per spec.md's "first element of a singleton
// init-list" allowance).
func scalarInitExpr(e ast.Expr) ast.Expr {
	lst, ok := e.(*ast.InitList)
	if !ok {
		return e
	}
	if len(lst.Items) == 0 {
		return nil
	}
	return scalarInitExpr(lst.Items[0])
}

// flattenInitList walks a (possibly nested) brace initializer in source
// order, collecting every leaf expression. Nesting boundaries are not
// matched against declared dimensions; the result is stored row-major
// against the flat element count, truncating any excess (spec.md §4.3).
func flattenInitList(e ast.Expr, out *[]ast.Expr) {
	if lst, ok := e.(*ast.InitList); ok {
		for _, it := range lst.Items {
			flattenInitList(it, out)
		}
		return
	}
	*out = append(*out, e)
}

// evalDims evaluates declared array dimensions for a non-parameter array,
// substituting a size of 1 and reporting a semantic error for any
// dimension that is missing, non-constant, or non-positive.
func (g *Generator) evalDims(dims []ast.Expr) []int {
	out := make([]int, len(dims))
	for i, d := range dims {
		if d == nil {
			g.errorf(diag.Location{}, "array dimension must be specified")
			out[i] = 1
			continue
		}
		n, ok := evalConstInt(d)
		if !ok {
			g.errorf(locOf(d), "array dimension is not a constant expression")
			out[i] = 1
			continue
		}
		if n <= 0 {
			g.errorf(locOf(d), "array dimension must be positive")
			out[i] = 1
			continue
		}
		out[i] = int(n)
	}
	return out
}

// paramArrayDims evaluates a FuncParam's dimensions into SymbolInfo's
// ArrayDims convention: index 0 (the unsized leading dimension) is always
// 0, and any non-constant inner dimension is recorded as 0 rather than
// rejected, since it is metadata for address computation, not a declared
// storage size.
func paramArrayDims(dims []ast.Expr) []int {
	out := make([]int, len(dims))
	for i, d := range dims {
		if i == 0 || d == nil {
			out[i] = 0
			continue
		}
		n, ok := evalConstInt(d)
		if !ok {
			out[i] = 0
			continue
		}
		out[i] = int(n)
	}
	return out
}

// scalarIRType lowers typ, rejecting void (which cannot appear as a
// variable or parameter type) in favor of int so lowering can continue.
func (g *Generator) scalarIRType(loc diag.Location, what string, typ ctypes.TypeSpec) types.Type {
	if typ.Kind == ctypes.Void {
		g.errorf(loc, "%s cannot have type void", what)
		return types.I32
	}
	return ctypes.ToIR(typ)
}

// ---- globals ----

func (g *Generator) genGlobalVarDecl(n *ast.VarDecl) {
	for _, def := range n.Vars {
		g.genGlobalVarDef(n.Type, def)
	}
}

func (g *Generator) genGlobalVarDef(typ ctypes.TypeSpec, def *ast.VarDef) {
	elemType := g.scalarIRType(def.Loc, "global variable "+def.Name, typ)

	if len(def.Dims) == 0 {
		g.genGlobalScalar(typ, elemType, def)
		return
	}
	g.genGlobalArray(typ, elemType, def)
}

func (g *Generator) genGlobalScalar(typ ctypes.TypeSpec, elemType types.Type, def *ast.VarDef) {
	intType := elemType.(*types.IntType)
	initVal := constant.Constant(constant.NewInt(intType, 0))

	if def.Init != nil {
		expr := scalarInitExpr(def.Init)
		n, ok := evalConstInt(expr)
		if !ok {
			g.errorf(def.Loc, "initializer for global %q is not a constant expression", def.Name)
		} else {
			initVal = constant.NewInt(intType, int64(n))
		}
	}

	glob := g.module.NewGlobalDef(def.Name, initVal)
	glob.Immutable = typ.IsConst

	if !g.syms.Declare(def.Name, &symtab.SymbolInfo{
		Name: def.Name, IRType: elemType, StorageHandle: newHandle(glob),
		IsConst: typ.IsConst, IsGlobal: true,
	}) {
		g.errorf(def.Loc, "redeclaration of %q", def.Name)
	}
}

// genGlobalArray always zero-initializes: brace-enclosed initializers for
// global arrays are explicitly out of scope (spec.md §4.3, §9).
func (g *Generator) genGlobalArray(typ ctypes.TypeSpec, elemType types.Type, def *ast.VarDef) {
	dims := g.evalDims(def.Dims)
	arrType := ctypes.NestedArrayOf(elemType, dims)

	if def.Init != nil {
		g.errorf(def.Loc, "global array %q initializer is ignored; globals are zero-initialized", def.Name)
	}

	glob := g.module.NewGlobalDef(def.Name, constant.NewZeroInitializer(arrType))
	glob.Immutable = typ.IsConst

	if !g.syms.Declare(def.Name, &symtab.SymbolInfo{
		Name: def.Name, IRType: arrType, StorageHandle: newHandle(glob),
		IsConst: typ.IsConst, IsGlobal: true, ArrayDims: dims,
	}) {
		g.errorf(def.Loc, "redeclaration of %q", def.Name)
	}
}

// ---- locals ----

func (g *Generator) genLocalVarDecl(n *ast.VarDecl) {
	for _, def := range n.Vars {
		g.genLocalVarDef(n.Type, def)
	}
}

func (g *Generator) genLocalVarDef(typ ctypes.TypeSpec, def *ast.VarDef) {
	elemType := g.scalarIRType(def.Loc, "local variable "+def.Name, typ)

	if len(def.Dims) == 0 {
		g.genLocalScalar(typ, elemType, def)
		return
	}
	g.genLocalArray(typ, elemType, def)
}

func (g *Generator) genLocalScalar(typ ctypes.TypeSpec, elemType types.Type, def *ast.VarDef) {
	alloca := g.cur.NewAlloca(elemType)
	alloca.SetName(def.Name)

	if !g.syms.Declare(def.Name, &symtab.SymbolInfo{
		Name: def.Name, IRType: elemType, StorageHandle: newHandle(alloca),
		IsConst: typ.IsConst,
	}) {
		g.errorf(def.Loc, "redeclaration of %q in the same scope", def.Name)
	}

	if def.Init == nil {
		return
	}
	expr := scalarInitExpr(def.Init)
	if expr == nil {
		return
	}
	v := g.coerceTo(g.lowerExpr(expr), elemType)
	g.cur.NewStore(v, alloca)
}

func (g *Generator) genLocalArray(typ ctypes.TypeSpec, elemType types.Type, def *ast.VarDef) {
	dims := g.evalDims(def.Dims)
	arrType := ctypes.NestedArrayOf(elemType, dims)

	alloca := g.cur.NewAlloca(arrType)
	alloca.SetName(def.Name)

	if !g.syms.Declare(def.Name, &symtab.SymbolInfo{
		Name: def.Name, IRType: arrType, StorageHandle: newHandle(alloca),
		IsConst: typ.IsConst, ArrayDims: dims,
	}) {
		g.errorf(def.Loc, "redeclaration of %q in the same scope", def.Name)
	}

	if def.Init != nil {
		g.initLocalArray(alloca, arrType, elemType, dims, def.Init)
	}
}

// initLocalArray stores def's initializer into alloca's elements. A bare
// scalar expression broadcasts to every element; a brace initializer is
// flattened row-major, with excess initializers truncated and any
// elements past the end of the flattened list left uninitialized.
func (g *Generator) initLocalArray(base value.Value, arrType, elemType types.Type, dims []int, init ast.Expr) {
	total := 1
	for _, d := range dims {
		total *= d
	}

	lst, isList := init.(*ast.InitList)
	if !isList {
		v := g.coerceTo(g.lowerExpr(init), elemType)
		for i := 0; i < total; i++ {
			g.cur.NewStore(v, g.arrayElementAddr(base, arrType, dims, i))
		}
		return
	}

	var flat []ast.Expr
	flattenInitList(lst, &flat)
	if len(flat) > total {
		flat = flat[:total]
	}
	for i, e := range flat {
		v := g.coerceTo(g.lowerExpr(e), elemType)
		g.cur.NewStore(v, g.arrayElementAddr(base, arrType, dims, i))
	}
}

// arrayElementAddr computes the address of the flat-th element (row-major)
// of an array with the given declared dims, allocated at base.
func (g *Generator) arrayElementAddr(base value.Value, arrType types.Type, dims []int, flat int) value.Value {
	indices := make([]value.Value, len(dims)+1)
	indices[0] = constant.NewInt(types.I32, 0)
	rem := flat
	for k := len(dims) - 1; k >= 0; k-- {
		indices[k+1] = constant.NewInt(types.I32, int64(rem%dims[k]))
		rem /= dims[k]
	}
	return g.cur.NewGetElementPtr(arrType, base, indices...)
}

// ---- functions ----

// paramIRType lowers a FuncParam to its IR type: the element type directly
// for a scalar, or a pointer to the element type (or first inner array
// type) for an array parameter, since its leading dimension decays. It
// also returns the ArrayDims metadata genFuncDef records on the parameter's
// SymbolInfo.
func (g *Generator) paramIRType(p *ast.FuncParam) (types.Type, []int) {
	elemType := g.scalarIRType(p.Loc, "parameter "+p.Name, p.Type)
	if !p.IsArray {
		return elemType, nil
	}
	dims := paramArrayDims(p.Dims)
	return ctypes.DecayToPointer(elemType, dims[1:]), dims
}

// genFuncDef lowers one function definition: it registers the function in
// the global symbol table before lowering the body (so self-recursive
// calls resolve), allocates a stack slot per parameter to store the
// incoming argument, lowers the body, synthesizes a trailing void return
// if needed, and verifies the result.
func (g *Generator) genFuncDef(n *ast.FuncDef) {
	retType := ctypes.ToIR(n.ReturnType)

	irParams := make([]*ir.Param, len(n.Params))
	dimsByParam := make([][]int, len(n.Params))
	for i, p := range n.Params {
		irType, dims := g.paramIRType(p)
		irParams[i] = ir.NewParam(p.Name, irType)
		dimsByParam[i] = dims
	}

	fn := g.module.NewFunc(n.Name, retType, irParams...)

	if !g.syms.Declare(n.Name, &symtab.SymbolInfo{
		Name: n.Name, IRType: retType, StorageHandle: newHandle(fn), IsFunction: true, IsGlobal: true,
	}) {
		g.errorf(n.Loc, "redeclaration of %q", n.Name)
	}

	g.curFn = fn
	g.setBlock(fn.NewBlock("entry"))

	g.syms.EnterScope()
	for i, p := range n.Params {
		alloca := g.cur.NewAlloca(irParams[i].Type())
		alloca.SetName(p.Name + ".addr")
		g.cur.NewStore(irParams[i], alloca)

		if !g.syms.Declare(p.Name, &symtab.SymbolInfo{
			Name: p.Name, IRType: irParams[i].Type(), StorageHandle: newHandle(alloca),
			IsConst: p.Type.IsConst, ArrayDims: dimsByParam[i],
		}) {
			g.errorf(p.Loc, "redeclaration of parameter %q", p.Name)
		}
	}

	if n.Body != nil {
		g.lowerBlockBody(n.Body.Items)
	}

	if !g.terminated() {
		if n.ReturnType.Kind == ctypes.Void {
			g.cur.NewRet(nil)
		} else {
			g.errorf(n.Loc, "function %q does not return a value on every path", n.Name)
			g.cur.NewRet(constant.NewInt(retType.(*types.IntType), 0))
		}
	}
	g.syms.ExitScope()

	g.curFn = nil
	g.cur = nil

	if !g.verifyFunc(fn) {
		g.eraseFunc(fn)
	}
}

// verifyFunc confirms every block fn owns has exactly one terminator, the
// block-terminator invariant spec.md requires of a function this generator
// is willing to hand to a backend.
func (g *Generator) verifyFunc(fn *ir.Func) bool {
	ok := true
	for _, b := range fn.Blocks {
		if b.Term == nil {
			g.errorf(diag.Location{}, "internal error: function %q has an unterminated block", fn.Name())
			ok = false
		}
	}
	return ok
}

// eraseFunc drops fn from the module after a failed verification, so a
// malformed function never reaches the module a caller prints or hands to
// a backend.
func (g *Generator) eraseFunc(fn *ir.Func) {
	for i, f := range g.module.Funcs {
		if f == fn {
			g.module.Funcs = append(g.module.Funcs[:i], g.module.Funcs[i+1:]...)
			return
		}
	}
}

// verifyModule re-checks every surviving function once the whole
// compilation unit has been lowered, matching spec.md's "module
// finalization" step.
func (g *Generator) verifyModule() {
	for _, fn := range append([]*ir.Func{}, g.module.Funcs...) {
		if !g.verifyFunc(fn) {
			g.eraseFunc(fn)
		}
	}
}
