package codegen

import (
	"github.com/daizxn/minic-llir/pkg/ast"
)

// lowerStmt lowers one statement. Callers that emit a sequence of
// statements (block items, loop bodies) must stop as soon as the current
// block has a terminator; lowerStmt itself does not check this since the
// discipline is a property of the caller's loop, not of any one
// statement.
func (g *Generator) lowerStmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.ExprStmt:
		if n.Expr != nil {
			g.lowerExpr(n.Expr)
		}
	case *ast.Assign:
		g.lowerAssign(n)
	case *ast.Block:
		g.lowerBlock(n)
	case *ast.If:
		g.lowerIf(n)
	case *ast.While:
		g.lowerWhile(n)
	case *ast.For:
		g.lowerFor(n)
	case *ast.Return:
		g.lowerReturn(n)
	case *ast.Break:
		g.lowerBreak(n)
	case *ast.Continue:
		g.lowerContinue(n)
	default:
		g.errorf(locOf(s), "unsupported statement %T", n)
	}
}

func (g *Generator) lowerAssign(a *ast.Assign) {
	info, ok := g.syms.Lookup(a.LHS.Name)
	if !ok {
		g.errorf(a.Loc, "undeclared identifier %q", a.LHS.Name)
		g.lowerExpr(a.RHS)
		return
	}
	if info.IsConst {
		g.errorf(a.Loc, "cannot assign to const %q", a.LHS.Name)
	}

	addr, elemType := g.lowerLValAddr(a.LHS)
	rhs := g.coerceTo(g.lowerExpr(a.RHS), elemType)
	g.cur.NewStore(rhs, addr)
}

// lowerBlockBody lowers items into the current block, one scope's worth
// of statements/declarations, stopping as soon as a terminator appears
// (dead code after the first terminator in a block is never emitted).
func (g *Generator) lowerBlockBody(items []ast.BlockItem) {
	for _, item := range items {
		if g.terminated() {
			return
		}
		switch n := item.(type) {
		case ast.Decl:
			g.lowerLocalDecl(n)
		case ast.Stmt:
			g.lowerStmt(n)
		}
	}
}

func (g *Generator) lowerBlock(b *ast.Block) {
	g.syms.EnterScope()
	g.lowerBlockBody(b.Items)
	g.syms.ExitScope()
}

func (g *Generator) lowerLocalDecl(d ast.Decl) {
	switch n := d.(type) {
	case *ast.VarDecl:
		g.genLocalVarDecl(n)
	default:
		g.errorf(locOf(d), "unsupported declaration %T", n)
	}
}

func (g *Generator) lowerIf(n *ast.If) {
	cond := g.toBool(g.lowerExpr(n.Cond), n.Loc)

	thenBlock := g.newBlock("")
	mergeBlock := g.newBlock("")

	if n.Else == nil {
		g.cur.NewCondBr(cond, thenBlock, mergeBlock)
		g.setBlock(thenBlock)
		g.lowerStmt(n.Then)
		if !g.terminated() {
			g.cur.NewBr(mergeBlock)
		}
		g.setBlock(mergeBlock)
		return
	}

	elseBlock := g.newBlock("")
	g.cur.NewCondBr(cond, thenBlock, elseBlock)

	g.setBlock(thenBlock)
	g.lowerStmt(n.Then)
	if !g.terminated() {
		g.cur.NewBr(mergeBlock)
	}

	g.setBlock(elseBlock)
	g.lowerStmt(n.Else)
	if !g.terminated() {
		g.cur.NewBr(mergeBlock)
	}

	g.setBlock(mergeBlock)
}

func (g *Generator) lowerWhile(n *ast.While) {
	condBlock := g.newBlock("")
	bodyBlock := g.newBlock("")
	afterBlock := g.newBlock("")

	if !g.terminated() {
		g.cur.NewBr(condBlock)
	}

	g.setBlock(condBlock)
	cond := g.toBool(g.lowerExpr(n.Cond), n.Loc)
	g.cur.NewCondBr(cond, bodyBlock, afterBlock)

	g.loops.Push(loopContext{ContinueTarget: condBlock, BreakTarget: afterBlock})
	g.setBlock(bodyBlock)
	g.lowerStmt(n.Body)
	if !g.terminated() {
		g.cur.NewBr(condBlock)
	}
	g.loops.Pop()

	g.setBlock(afterBlock)
}

func (g *Generator) lowerFor(n *ast.For) {
	g.syms.EnterScope()
	defer g.syms.ExitScope()

	switch init := n.Init.(type) {
	case nil:
	case ast.Decl:
		g.lowerLocalDecl(init)
	case ast.Stmt:
		g.lowerStmt(init)
	}

	condBlock := g.newBlock("")
	bodyBlock := g.newBlock("")
	stepBlock := g.newBlock("")
	afterBlock := g.newBlock("")

	if !g.terminated() {
		g.cur.NewBr(condBlock)
	}

	g.setBlock(condBlock)
	if n.Cond != nil {
		cond := g.toBool(g.lowerExpr(n.Cond), n.Loc)
		g.cur.NewCondBr(cond, bodyBlock, afterBlock)
	} else {
		g.cur.NewBr(bodyBlock)
	}

	g.loops.Push(loopContext{ContinueTarget: stepBlock, BreakTarget: afterBlock})

	g.setBlock(bodyBlock)
	g.lowerStmt(n.Body)
	if !g.terminated() {
		g.cur.NewBr(stepBlock)
	}

	g.setBlock(stepBlock)
	if n.Step != nil {
		g.lowerStmt(n.Step)
	}
	if !g.terminated() {
		g.cur.NewBr(condBlock)
	}

	g.loops.Pop()
	g.setBlock(afterBlock)
}

func (g *Generator) lowerReturn(n *ast.Return) {
	if n.Value == nil {
		g.cur.NewRet(nil)
		return
	}
	v := g.lowerExpr(n.Value)
	v = g.coerceTo(v, g.curFn.Sig.RetType)
	g.cur.NewRet(v)
}

func (g *Generator) lowerBreak(n *ast.Break) {
	ctx, ok := g.loops.Top()
	if !ok {
		g.errorf(n.Loc, "break outside of a loop")
		return
	}
	g.cur.NewBr(ctx.BreakTarget)
}

func (g *Generator) lowerContinue(n *ast.Continue) {
	ctx, ok := g.loops.Top()
	if !ok {
		g.errorf(n.Loc, "continue outside of a loop")
		return
	}
	g.cur.NewBr(ctx.ContinueTarget)
}
