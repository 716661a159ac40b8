// Package symtab implements the lexically-scoped symbol table the code
// generator uses for name resolution, grounded on the scope-stack shape of
// a classic compiler symbol table: a stack of scopes, innermost-outward
// lookup, same-scope redeclaration rejected.
package symtab

import "github.com/llir/llvm/ir/types"

// SymbolInfo describes one declared name: its IR type, where its storage
// lives, and the bookkeeping the code generator needs to re-derive array
// layout without recomputing it from the IR type.
type SymbolInfo struct {
	Name          string
	IRType        types.Type
	StorageHandle StorageHandle
	IsConst       bool
	IsGlobal      bool
	IsFunction    bool
	// ArrayDims holds the declared size of each array dimension, in
	// source order. A leading 0 denotes "unspecified" and appears only
	// for array-kind function parameters (decayed to a pointer); every
	// other entry is the concrete declared size, except that a parameter's
	// non-constant inner dimension is also recorded as 0. Empty for scalars.
	ArrayDims []int
}

// StorageHandle is an opaque reference to where a symbol's value lives:
// an IR stack slot (alloca), an IR global, or an IR function. The code
// generator's value.Value payload is stashed behind this interface so
// symtab need not import the llir ir package's full surface; the marker
// method is exported so codegen can define the concrete handle type that
// implements it.
type StorageHandle interface {
	IsStorageHandle()
}

type scope struct {
	names map[string]*SymbolInfo
}

func newScope() *scope {
	return &scope{names: make(map[string]*SymbolInfo)}
}

// Table is a stack of scopes. The table always has at least one scope (the
// global scope) once constructed.
type Table struct {
	scopes []*scope
}

// New returns a Table with just the global scope pushed.
func New() *Table {
	return &Table{scopes: []*scope{newScope()}}
}

// EnterScope pushes a new, empty scope.
func (t *Table) EnterScope() {
	t.scopes = append(t.scopes, newScope())
}

// ExitScope pops the innermost scope. It never pops the root scope.
func (t *Table) ExitScope() {
	if len(t.scopes) <= 1 {
		return
	}
	t.scopes = t.scopes[:len(t.scopes)-1]
}

// Depth reports the current number of active scopes (root counts as 1).
func (t *Table) Depth() int {
	return len(t.scopes)
}

// Declare inserts info into the topmost scope. It reports false without
// inserting if name already exists in that scope; shadowing an outer
// scope's name is always permitted.
func (t *Table) Declare(name string, info *SymbolInfo) bool {
	top := t.scopes[len(t.scopes)-1]
	if _, exists := top.names[name]; exists {
		return false
	}
	top.names[name] = info
	return true
}

// Lookup searches scopes innermost-outward and returns the first match.
func (t *Table) Lookup(name string) (*SymbolInfo, bool) {
	for i := len(t.scopes) - 1; i >= 0; i-- {
		if info, ok := t.scopes[i].names[name]; ok {
			return info, true
		}
	}
	return nil, false
}

// AtGlobalScope reports whether exactly the root scope is active.
func (t *Table) AtGlobalScope() bool {
	return len(t.scopes) == 1
}
