package ctypes

import (
	"testing"

	"github.com/llir/llvm/ir/types"
)

func TestTypeSpecString(t *testing.T) {
	tests := []struct {
		name string
		t    TypeSpec
		want string
	}{
		{"int", TypeSpec{Kind: Int}, "int"},
		{"char", TypeSpec{Kind: Char}, "char"},
		{"void", TypeSpec{Kind: Void}, "void"},
		{"const int", TypeSpec{Kind: Int, IsConst: true}, "const int"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.t.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestToIR(t *testing.T) {
	tests := []struct {
		name string
		t    TypeSpec
		want types.Type
	}{
		{"int", TypeSpec{Kind: Int}, types.I32},
		{"char", TypeSpec{Kind: Char}, types.I8},
		{"void", TypeSpec{Kind: Void}, types.Void},
		{"const int still i32", TypeSpec{Kind: Int, IsConst: true}, types.I32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToIR(tt.t); got != tt.want {
				t.Errorf("ToIR() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestArrayOf(t *testing.T) {
	got := ArrayOf(types.I32, 10)
	arr, ok := got.(*types.ArrayType)
	if !ok {
		t.Fatalf("ArrayOf did not return *types.ArrayType, got %T", got)
	}
	if arr.Len != 10 || arr.ElemType != types.I32 {
		t.Errorf("ArrayOf(i32, 10) = %v", arr)
	}
}

func TestNestedArrayOf(t *testing.T) {
	got := NestedArrayOf(types.I32, []int{2, 3})
	outer, ok := got.(*types.ArrayType)
	if !ok {
		t.Fatalf("NestedArrayOf did not return *types.ArrayType, got %T", got)
	}
	if outer.Len != 2 {
		t.Fatalf("outer dim = %d, want 2", outer.Len)
	}
	inner, ok := outer.ElemType.(*types.ArrayType)
	if !ok {
		t.Fatalf("inner elem type = %T, want *types.ArrayType", outer.ElemType)
	}
	if inner.Len != 3 || inner.ElemType != types.I32 {
		t.Errorf("inner dim = %v", inner)
	}
}

func TestDecayToPointer(t *testing.T) {
	scalar := DecayToPointer(types.I32, nil)
	if scalar.ElemType != types.I32 {
		t.Errorf("DecayToPointer(i32, nil) elem = %v, want i32", scalar.ElemType)
	}

	nested := DecayToPointer(types.I32, []int{3})
	arr, ok := nested.ElemType.(*types.ArrayType)
	if !ok {
		t.Fatalf("DecayToPointer(i32, [3]) elem = %T, want *types.ArrayType", nested.ElemType)
	}
	if arr.Len != 3 || arr.ElemType != types.I32 {
		t.Errorf("DecayToPointer(i32, [3]) elem = %v", arr)
	}
}
