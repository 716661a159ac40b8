// Package codegen walks a compilation unit AST and emits an LLVM IR
// module: it performs name resolution against a lexically-scoped symbol
// table, reasons about array layout and decay at function boundaries,
// lowers short-circuit && / || and ?: to basic blocks with phi nodes, and
// tracks nested loop break/continue targets.
package codegen

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/value"

	"github.com/daizxn/minic-llir/pkg/ast"
	"github.com/daizxn/minic-llir/pkg/diag"
	"github.com/daizxn/minic-llir/pkg/symtab"
)

// handle is the concrete symtab.StorageHandle this generator stores in
// every SymbolInfo: a stack slot, a global, or a function, all of which
// satisfy value.Value.
type handle struct {
	v value.Value
}

func (handle) IsStorageHandle() {}

func newHandle(v value.Value) symtab.StorageHandle {
	return handle{v: v}
}

func valueOf(h symtab.StorageHandle) value.Value {
	return h.(handle).v
}

// Generator lowers a CompUnit to an *ir.Module. It is not safe for reuse
// across compilation units; construct a fresh one per call to Gen.
type Generator struct {
	module *ir.Module

	syms  *symtab.Table
	loops loopStack

	curFn *ir.Func
	cur   *ir.Block

	diags    diag.Diagnostics
	strCount int
}

// New returns a Generator that will emit into a module named name.
func New(name string) *Generator {
	m := ir.NewModule()
	m.SourceFilename = name
	return &Generator{
		module: m,
		syms:   symtab.New(),
	}
}

// Gen lowers unit's top-level declarations and function definitions in
// source order and returns the finished module along with any
// diagnostics. A non-nil module is always returned, even in the presence
// of errors, so a caller may still print what was produced.
func (g *Generator) Gen(unit *ast.CompUnit) (*ir.Module, diag.Diagnostics) {
	for _, u := range unit.Units {
		switch n := u.(type) {
		case *ast.FuncDef:
			g.genFuncDef(n)
		case *ast.VarDecl:
			g.genGlobalVarDecl(n)
		default:
			g.errorf(diag.Location{}, "unsupported top-level node %T", n)
		}
	}
	g.verifyModule()
	return g.module, g.diags
}

func (g *Generator) errorf(loc diag.Location, format string, args ...any) {
	g.diags.Add(loc, format, args...)
}

func (g *Generator) terminated() bool {
	return g.cur.Term != nil
}

func (g *Generator) setBlock(b *ir.Block) {
	g.cur = b
}

func (g *Generator) newBlock(name string) *ir.Block {
	return g.curFn.NewBlock(name)
}

func (g *Generator) uniqueStringName() string {
	g.strCount++
	return fmt.Sprintf(".str.%d", g.strCount)
}

// lookupFunc resolves a function symbol by name.
func (g *Generator) lookupFunc(name string) (*ir.Func, bool) {
	info, ok := g.syms.Lookup(name)
	if !ok || !info.IsFunction {
		return nil, false
	}
	fn, ok := valueOf(info.StorageHandle).(*ir.Func)
	return fn, ok
}

// newIncoming is a small wrapper over ir.NewIncoming kept local so callers
// in this package don't need to import the ir package just for phi nodes.
func newIncoming(x value.Value, pred *ir.Block) *ir.Incoming {
	return ir.NewIncoming(x, pred)
}
