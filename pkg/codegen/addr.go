package codegen

import (
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/daizxn/minic-llir/pkg/ast"
	"github.com/daizxn/minic-llir/pkg/diag"
	"github.com/daizxn/minic-llir/pkg/symtab"
)

// lowerLValAddr resolves lv to the address it denotes plus the IR type
// stored there, i.e. the type a load or store at that address should use.
func (g *Generator) lowerLValAddr(lv *ast.LVal) (value.Value, types.Type) {
	info, ok := g.syms.Lookup(lv.Name)
	if !ok {
		g.errorf(lv.Loc, "undeclared identifier %q", lv.Name)
		return constant.NewNull(types.NewPointer(types.I32)), types.I32
	}

	if len(lv.Indices) == 0 {
		return valueOf(info.StorageHandle), info.IRType
	}

	if len(info.ArrayDims) == 0 {
		g.errorf(lv.Loc, "%q is not an array", lv.Name)
		return valueOf(info.StorageHandle), info.IRType
	}

	idx := make([]value.Value, len(lv.Indices))
	for i, e := range lv.Indices {
		idx[i] = g.coerceTo(g.lowerExpr(e), types.I32)
	}

	if info.ArrayDims[0] == 0 {
		return g.lowerDecayedSubscript(info, idx, lv.Loc)
	}
	return g.lowerArraySubscript(info, idx)
}

// lowerArraySubscript addresses an element of a true (non-decayed) array:
// a single GEP with a leading zero index, followed by one index per
// subscript.
func (g *Generator) lowerArraySubscript(info *symtab.SymbolInfo, idx []value.Value) (value.Value, types.Type) {
	base := valueOf(info.StorageHandle)
	indices := append([]value.Value{constant.NewInt(types.I32, 0)}, idx...)
	addr := g.cur.NewGetElementPtr(info.IRType, base, indices...)

	elemType := info.IRType
	for range idx {
		arr, ok := elemType.(*types.ArrayType)
		if !ok {
			break
		}
		elemType = arr.ElemType
	}
	return addr, elemType
}

// lowerDecayedSubscript addresses an element through a decayed array
// parameter: the stored value is itself a pointer, loaded once, then
// walked one subscript at a time. The first subscript is plain pointer
// arithmetic (no leading zero, since the pointer already denotes the
// address of its pointee sequence); every subsequent subscript walks
// into a now-concrete-sized nested array, so it takes a leading zero
// like a true array access does.
func (g *Generator) lowerDecayedSubscript(info *symtab.SymbolInfo, idx []value.Value, loc diag.Location) (value.Value, types.Type) {
	ptrType, ok := info.IRType.(*types.PointerType)
	if !ok {
		g.errorf(loc, "%q has unsized array type but is not a pointer", info.Name)
		return constant.NewNull(types.NewPointer(types.I32)), types.I32
	}
	ptr := g.cur.NewLoad(ptrType, valueOf(info.StorageHandle))

	curType := ptrType.ElemType
	addr := g.cur.NewGetElementPtr(curType, ptr, idx[0])
	for _, i := range idx[1:] {
		arr, ok := curType.(*types.ArrayType)
		if !ok {
			g.errorf(loc, "%q has too many subscripts", info.Name)
			break
		}
		addr = g.cur.NewGetElementPtr(arr, addr, constant.NewInt(types.I32, 0), i)
		curType = arr.ElemType
	}
	return addr, curType
}
