package codegen

import (
	"strings"
	"testing"

	"github.com/llir/llvm/ir"

	"github.com/daizxn/minic-llir/pkg/ast"
	"github.com/daizxn/minic-llir/pkg/diag"
	"github.com/daizxn/minic-llir/pkg/lexer"
	"github.com/daizxn/minic-llir/pkg/parser"
)

func parseUnit(t *testing.T, src string) *ast.CompUnit {
	t.Helper()
	l := lexer.New("t.c", src)
	p := parser.New(l)
	unit := p.Parse()
	if p.Diagnostics().HasErrors() {
		t.Fatalf("unexpected parser errors for %q: %v", src, p.Diagnostics())
	}
	return unit
}

func genModule(t *testing.T, src string) (*ir.Module, diag.Diagnostics) {
	t.Helper()
	unit := parseUnit(t, src)
	g := New("t")
	return g.Gen(unit)
}

func genModuleOK(t *testing.T, src string) *ir.Module {
	t.Helper()
	m, diags := genModule(t, src)
	if diags.HasErrors() {
		t.Fatalf("unexpected codegen errors for %q: %v", src, diags)
	}
	return m
}

// assertAllBlocksTerminated checks spec.md §8's "every generated basic
// block reachable from the entry of a verified function has exactly one
// terminator" property; the scenario tests below call it on their modules.
func assertAllBlocksTerminated(t *testing.T, m *ir.Module) {
	t.Helper()
	for _, fn := range m.Funcs {
		for _, b := range fn.Blocks {
			if b.Term == nil {
				t.Errorf("function %q has a block with no terminator", fn.Name())
			}
		}
	}
}

func TestArithmeticFunction(t *testing.T) {
	m := genModuleOK(t, "int add(int a, int b) { return a + b; }")
	assertAllBlocksTerminated(t, m)

	text := m.String()
	for _, want := range []string{"define i32 @add(i32 %a, i32 %b)", "add i32", "ret i32"} {
		if !strings.Contains(text, want) {
			t.Errorf("expected module text to contain %q, got:\n%s", want, text)
		}
	}
}

func TestRecursion(t *testing.T) {
	m := genModuleOK(t, `
		int factorial(int n) {
			if (n <= 1) return 1;
			return n * factorial(n - 1);
		}
	`)
	assertAllBlocksTerminated(t, m)

	text := m.String()
	for _, want := range []string{"icmp sle i32", "ret i32 1", "call i32 @factorial"} {
		if !strings.Contains(text, want) {
			t.Errorf("expected module text to contain %q, got:\n%s", want, text)
		}
	}
}

func TestArrayWriteThenRead(t *testing.T) {
	m := genModuleOK(t, `
		int a[3];
		int main() {
			a[0] = 7;
			a[1] = 11;
			a[2] = 13;
			return a[0] + a[1] + a[2];
		}
	`)
	assertAllBlocksTerminated(t, m)

	text := m.String()
	if !strings.Contains(text, "@a = global [3 x i32] zeroinitializer") {
		t.Errorf("expected a zero-initialized global array, got:\n%s", text)
	}
	if n := strings.Count(text, "getelementptr"); n != 6 {
		t.Errorf("expected 6 GEPs (3 stores + 3 loads), got %d in:\n%s", n, text)
	}
}

func TestShortCircuitAndSkipsRHS(t *testing.T) {
	m := genModuleOK(t, `
		int f(int x) {
			return (x != 0) && (100 / x > 1);
		}
	`)
	assertAllBlocksTerminated(t, m)

	text := m.String()
	if !strings.Contains(text, "phi i1") {
		t.Errorf("expected a phi over i1 for &&, got:\n%s", text)
	}
	if !strings.Contains(text, "sdiv i32") {
		t.Errorf("expected the division to still be emitted in the RHS block, got:\n%s", text)
	}
	// The division must be lexically after the conditional branch that
	// guards it, so it is only ever reached when the left side is true.
	condIdx := strings.Index(text, "br i1")
	divIdx := strings.Index(text, "sdiv i32")
	if condIdx < 0 || divIdx < condIdx {
		t.Errorf("expected sdiv to follow the short-circuit branch in emission order")
	}
}

func TestForWithBreak(t *testing.T) {
	m := genModuleOK(t, `
		int main() {
			int s = 0;
			for (int i = 0; i < 10; i = i + 1) {
				if (i == 5) break;
				s = s + i;
			}
			return s;
		}
	`)
	assertAllBlocksTerminated(t, m)

	text := m.String()
	if strings.Count(text, "br label") < 2 {
		t.Errorf("expected several unconditional branches wiring cond/body/step/after, got:\n%s", text)
	}
}

func TestRecoveryStillProducesCompUnit(t *testing.T) {
	l := lexer.New("t.c", "int x = 1 int y = 2;")
	p := parser.New(l)
	unit := p.Parse()

	if !p.Diagnostics().HasErrors() {
		t.Fatalf("expected at least one diagnostic for the missing semicolon")
	}
	if unit == nil {
		t.Fatalf("expected a non-nil CompUnit even after a recovered error")
	}

	found := false
	for _, u := range unit.Units {
		if vd, ok := u.(*ast.VarDecl); ok {
			for _, v := range vd.Vars {
				if v.Name == "y" {
					found = true
				}
			}
		}
	}
	if !found {
		t.Errorf("expected the declaration of y to still be parsed after recovery")
	}
}

// TestScopeInvariant checks that lowering a Block leaves the symbol table
// at the same depth it found it, per spec.md §8.
func TestScopeInvariant(t *testing.T) {
	unit := parseUnit(t, `
		int f() {
			int x = 1;
			{
				int y = 2;
				x = y;
			}
			return x;
		}
	`)
	g := New("t")
	fd := unit.Units[0].(*ast.FuncDef)

	g.genFuncDef(fd)
	if g.syms.Depth() != 1 {
		t.Errorf("symbol table depth after FuncDef = %d, want 1 (global scope only)", g.syms.Depth())
	}
	if g.loops.Depth() != 0 {
		t.Errorf("loop stack depth after FuncDef = %d, want 0", g.loops.Depth())
	}
}

func TestLoopStackBalanceAfterWhile(t *testing.T) {
	unit := parseUnit(t, `
		int f() {
			while (1) {
				break;
			}
			return 0;
		}
	`)
	g := New("t")
	fd := unit.Units[0].(*ast.FuncDef)
	g.genFuncDef(fd)

	if g.loops.Depth() != 0 {
		t.Errorf("loop stack depth after While = %d, want 0", g.loops.Depth())
	}
}

func TestGlobalConstInitializer(t *testing.T) {
	m := genModuleOK(t, "const int limit = 10; int main() { return limit; }")
	text := m.String()
	if !strings.Contains(text, "@limit = constant i32 10") {
		t.Errorf("expected a constant global for limit, got:\n%s", text)
	}
}

func TestAssignToConstIsRejected(t *testing.T) {
	_, diags := genModule(t, "int f() { const int x = 1; x = 2; return x; }")
	if !diags.HasErrors() {
		t.Errorf("expected an error assigning to a const local")
	}
}

func TestBreakOutsideLoopIsRejected(t *testing.T) {
	_, diags := genModule(t, "int f() { break; return 0; }")
	if !diags.HasErrors() {
		t.Errorf("expected an error for break outside of a loop")
	}
}

func TestUndeclaredIdentifierIsRejected(t *testing.T) {
	_, diags := genModule(t, "int f() { return y; }")
	if !diags.HasErrors() {
		t.Errorf("expected an error for an undeclared identifier")
	}
}

func TestArgumentCountMismatchIsRejected(t *testing.T) {
	_, diags := genModule(t, "int g(int a) { return a; } int f() { return g(1, 2); }")
	if !diags.HasErrors() {
		t.Errorf("expected an error for an argument-count mismatch")
	}
}

func TestPrefixIncrementIsRejected(t *testing.T) {
	_, diags := genModule(t, "int f() { int x = 0; return ++x; }")
	if !diags.HasErrors() {
		t.Errorf("expected prefix ++ to be rejected at lowering")
	}
}
