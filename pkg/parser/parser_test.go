package parser

import (
	"os"
	"testing"

	"github.com/daizxn/minic-llir/pkg/ast"
	"github.com/daizxn/minic-llir/pkg/lexer"
	"gopkg.in/yaml.v3"
)

// caseSpec is one entry in testdata/parse.yaml: a source fragment and the
// expected stable dump of its parsed CompUnit.
type caseSpec struct {
	Name  string `yaml:"name"`
	Input string `yaml:"input"`
	Dump  string `yaml:"dump"`
}

type caseFile struct {
	Tests []caseSpec `yaml:"tests"`
}

func TestParseYAML(t *testing.T) {
	data, err := os.ReadFile("../../testdata/parse.yaml")
	if err != nil {
		t.Fatalf("failed to read parse.yaml: %v", err)
	}

	var cf caseFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		t.Fatalf("failed to parse parse.yaml: %v", err)
	}

	for _, tc := range cf.Tests {
		t.Run(tc.Name, func(t *testing.T) {
			l := lexer.New("t.c", tc.Input)
			p := New(l)
			unit := p.Parse()

			if p.Diagnostics().HasErrors() {
				t.Fatalf("parser errors: %v", p.Diagnostics())
			}

			got := ast.Dump(unit)
			if got != tc.Dump {
				t.Errorf("dump mismatch:\n got:  %s\n want: %s", got, tc.Dump)
			}
		})
	}
}

func parseOK(t *testing.T, src string) *ast.CompUnit {
	t.Helper()
	l := lexer.New("t.c", src)
	p := New(l)
	unit := p.Parse()
	if p.Diagnostics().HasErrors() {
		t.Fatalf("unexpected parser errors for %q: %v", src, p.Diagnostics())
	}
	return unit
}

func TestOperatorPrecedence(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			"mul_binds_tighter_than_add",
			"int f() { return a + b * c; }",
			"(Binary + (LVal a) (Binary * (LVal b) (LVal c)))",
		},
		{
			"add_left_associates",
			"int f() { return a - b - c; }",
			"(Binary - (Binary - (LVal a) (LVal b)) (LVal c))",
		},
		{
			"shift_below_additive",
			"int f() { return a + b << c; }",
			"(Binary << (Binary + (LVal a) (LVal b)) (LVal c))",
		},
		{
			"bitand_below_equality",
			"int f() { return a == b & c; }",
			"(Binary & (Binary == (LVal a) (LVal b)) (LVal c))",
		},
		{
			"logical_or_loosest_of_binaries",
			"int f() { return a || b && c; }",
			"(Binary || (LVal a) (Binary && (LVal b) (LVal c)))",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unit := parseOK(t, tt.src)
			fn := unit.Units[0].(*ast.FuncDef)
			ret := fn.Body.Items[0].(*ast.Return)
			got := ast.Dump(ret.Value)
			if got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestTernaryRightAssociative(t *testing.T) {
	unit := parseOK(t, "int f() { return a ? b : c ? d : e; }")
	fn := unit.Units[0].(*ast.FuncDef)
	ret := fn.Body.Items[0].(*ast.Return)

	want := "(Ternary (LVal a) (LVal b) (Ternary (LVal c) (LVal d) (LVal e)))"
	if got := ast.Dump(ret.Value); got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestRecoveryMissingSemicolon(t *testing.T) {
	l := lexer.New("t.c", "int x = 1 int y = 2;")
	p := New(l)
	unit := p.Parse()

	if unit == nil {
		t.Fatal("Parse returned nil CompUnit")
	}
	if len(p.Diagnostics()) == 0 {
		t.Fatal("expected at least one diagnostic")
	}

	var foundY bool
	for _, u := range unit.Units {
		if vd, ok := u.(*ast.VarDecl); ok {
			for _, v := range vd.Vars {
				if v.Name == "y" {
					foundY = true
				}
			}
		}
	}
	if !foundY {
		t.Errorf("expected recovery to still parse declaration of y, got dump: %s", ast.Dump(unit))
	}
}

func TestAssignRequiresLVal(t *testing.T) {
	l := lexer.New("t.c", "int f() { 1 = 2; return 0; }")
	p := New(l)
	p.Parse()
	if !p.Diagnostics().HasErrors() {
		t.Fatal("expected a diagnostic for assignment to a non-lvalue")
	}
}

func TestFuncDefWithoutBodyIsError(t *testing.T) {
	l := lexer.New("t.c", "int f();")
	p := New(l)
	p.Parse()
	if !p.Diagnostics().HasErrors() {
		t.Fatal("expected a diagnostic for a function definition without a body")
	}
}

func TestBreakContinueInLoop(t *testing.T) {
	unit := parseOK(t, "int f() { while (1) { break; continue; } return 0; }")
	fn := unit.Units[0].(*ast.FuncDef)
	wh := fn.Body.Items[0].(*ast.While)
	body := wh.Body.(*ast.Block)

	if _, ok := body.Items[0].(*ast.Break); !ok {
		t.Errorf("expected Break, got %T", body.Items[0])
	}
	if _, ok := body.Items[1].(*ast.Continue); !ok {
		t.Errorf("expected Continue, got %T", body.Items[1])
	}
}

func TestInitListNested(t *testing.T) {
	unit := parseOK(t, "int a[2][2] = {{1, 2}, {3, 4}};")
	vd := unit.Units[0].(*ast.VarDecl)
	lst, ok := vd.Vars[0].Init.(*ast.InitList)
	if !ok {
		t.Fatalf("expected InitList, got %T", vd.Vars[0].Init)
	}
	if len(lst.Items) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(lst.Items))
	}
	if _, ok := lst.Items[0].(*ast.InitList); !ok {
		t.Errorf("expected nested InitList, got %T", lst.Items[0])
	}
}
