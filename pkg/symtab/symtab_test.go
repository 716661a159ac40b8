package symtab

import "testing"

func TestNewHasGlobalScope(t *testing.T) {
	tab := New()
	if tab.Depth() != 1 {
		t.Fatalf("Depth() = %d, want 1", tab.Depth())
	}
	if !tab.AtGlobalScope() {
		t.Fatalf("AtGlobalScope() = false, want true")
	}
}

func TestExitScopeNeverPopsRoot(t *testing.T) {
	tab := New()
	tab.ExitScope()
	if tab.Depth() != 1 {
		t.Fatalf("Depth() = %d, want 1 after exiting the root scope", tab.Depth())
	}
}

func TestEnterExitBalance(t *testing.T) {
	tab := New()
	tab.EnterScope()
	tab.EnterScope()
	if tab.Depth() != 3 {
		t.Fatalf("Depth() = %d, want 3", tab.Depth())
	}
	tab.ExitScope()
	tab.ExitScope()
	if tab.Depth() != 1 {
		t.Fatalf("Depth() = %d, want 1", tab.Depth())
	}
}

func TestDeclareRejectsSameScopeRedeclaration(t *testing.T) {
	tab := New()
	if !tab.Declare("x", &SymbolInfo{Name: "x"}) {
		t.Fatalf("first Declare of x should succeed")
	}
	if tab.Declare("x", &SymbolInfo{Name: "x"}) {
		t.Fatalf("second Declare of x in the same scope should fail")
	}
}

func TestDeclareAllowsShadowingInNestedScope(t *testing.T) {
	tab := New()
	tab.Declare("x", &SymbolInfo{Name: "x", IRType: nil})
	tab.EnterScope()
	if !tab.Declare("x", &SymbolInfo{Name: "x", IsConst: true}) {
		t.Fatalf("shadowing x in a nested scope should succeed")
	}
	info, ok := tab.Lookup("x")
	if !ok || !info.IsConst {
		t.Fatalf("Lookup(x) should resolve the innermost (shadowing) declaration")
	}
}

func TestLookupSearchesInnermostOutward(t *testing.T) {
	tab := New()
	tab.Declare("outer", &SymbolInfo{Name: "outer"})
	tab.EnterScope()
	tab.Declare("inner", &SymbolInfo{Name: "inner"})

	if _, ok := tab.Lookup("outer"); !ok {
		t.Fatalf("Lookup(outer) should find a name declared in an outer scope")
	}
	if _, ok := tab.Lookup("inner"); !ok {
		t.Fatalf("Lookup(inner) should find a name declared in the current scope")
	}

	tab.ExitScope()
	if _, ok := tab.Lookup("inner"); ok {
		t.Fatalf("Lookup(inner) should fail once its scope has exited")
	}
}

func TestLookupMissingNameFails(t *testing.T) {
	tab := New()
	if _, ok := tab.Lookup("nope"); ok {
		t.Fatalf("Lookup of an undeclared name should fail")
	}
}
