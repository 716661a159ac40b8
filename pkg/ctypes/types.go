// Package ctypes holds the small type system this language supports: int,
// char, and void, each optionally const-qualified. It owns the single
// lowering function that maps those source types onto the IR builder's
// type representation.
package ctypes

import "github.com/llir/llvm/ir/types"

// TypeKind enumerates the scalar type keywords the grammar recognizes.
type TypeKind int

const (
	Int TypeKind = iota
	Char
	Void
)

func (k TypeKind) String() string {
	switch k {
	case Int:
		return "int"
	case Char:
		return "char"
	case Void:
		return "void"
	}
	return "?"
}

// TypeSpec is a declared type: a scalar kind plus const-qualification.
// Array-ness and pointer-decay are not carried here — they live in the
// declaring AST node (VarDef.Dims, FuncParam.IsArray/Dims) since a single
// TypeSpec is shared across every name a declaration introduces.
type TypeSpec struct {
	Kind    TypeKind
	IsConst bool
}

func (t TypeSpec) String() string {
	if t.IsConst {
		return "const " + t.Kind.String()
	}
	return t.Kind.String()
}

// ToIR lowers a scalar TypeSpec to its IR representation: int to a 32-bit
// integer, char to an 8-bit integer, void to the IR void type.
func ToIR(t TypeSpec) types.Type {
	switch t.Kind {
	case Int:
		return types.I32
	case Char:
		return types.I8
	case Void:
		return types.Void
	}
	return types.I32
}

// ArrayOf builds the IR array type for a single declared dimension over an
// element type.
func ArrayOf(elem types.Type, length int) types.Type {
	return types.NewArray(uint64(length), elem)
}

// NestedArrayOf builds the IR type for a multi-dimensional array given its
// dimensions in declaration order (outermost first).
func NestedArrayOf(elem types.Type, dims []int) types.Type {
	t := elem
	for i := len(dims) - 1; i >= 0; i-- {
		t = types.NewArray(uint64(dims[i]), t)
	}
	return t
}

// DecayToPointer builds the IR type of an array-kind function parameter: a
// pointer to the element type of its first dimension, since C array
// parameters decay to a pointer to their second-and-further dimensions.
// innerDims excludes the unspecified leading dimension.
func DecayToPointer(elem types.Type, innerDims []int) *types.PointerType {
	if len(innerDims) == 0 {
		return types.NewPointer(elem)
	}
	return types.NewPointer(NestedArrayOf(elem, innerDims))
}
