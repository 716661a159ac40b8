// Package ast defines the abstract syntax tree produced by pkg/parser: a
// tagged tree of expression, statement, and declaration nodes, one parent
// owning each child exclusively.
package ast

import (
	"github.com/daizxn/minic-llir/pkg/ctypes"
	"github.com/daizxn/minic-llir/pkg/diag"
)

// TypeSpec is re-exported from pkg/ctypes so AST nodes can embed it without
// every caller importing two packages for one concept.
type TypeSpec = ctypes.TypeSpec

// Node is the base interface implemented by every AST node.
type Node interface {
	implNode()
}

// Expr is the interface for expression nodes.
type Expr interface {
	Node
	implExpr()
}

// Stmt is the interface for statement nodes.
type Stmt interface {
	Node
	implStmt()
}

// BlockItem is either a Decl or a Stmt, as allowed inside a Block.
type BlockItem interface {
	Node
	implBlockItem()
}

// Decl is the interface for declaration nodes.
type Decl interface {
	Node
	BlockItem
	implDecl()
}

// BinaryOp enumerates the binary operators spec.md's grammar recognizes.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpLt
	OpLe
	OpGt
	OpGe
	OpEq
	OpNe
	OpAnd // &&
	OpOr  // ||
	OpBitAnd
	OpBitOr
	OpBitXor
	OpShl
	OpShr
)

var binaryOpNames = []string{
	"+", "-", "*", "/", "%", "<", "<=", ">", ">=", "==", "!=",
	"&&", "||", "&", "|", "^", "<<", ">>",
}

func (op BinaryOp) String() string {
	if int(op) < len(binaryOpNames) {
		return binaryOpNames[op]
	}
	return "?"
}

// UnaryOp enumerates the prefix unary operators spec.md's grammar
// recognizes. Inc/Dec are parsed but rejected during lowering.
type UnaryOp int

const (
	OpPlus UnaryOp = iota
	OpNeg
	OpNot
	OpBitNot
	OpInc
	OpDec
)

var unaryOpNames = []string{"+", "-", "!", "~", "++", "--"}

func (op UnaryOp) String() string {
	if int(op) < len(unaryOpNames) {
		return unaryOpNames[op]
	}
	return "?"
}

// ---- Expressions ----

// Identifier is a bare name as produced mid-parse before it is resolved
// into an LVal or FuncCall; it never survives into a finished expression
// tree handed to codegen.
type Identifier struct {
	Name string
	Loc  diag.Location
}

// Number is a decimal/hex/octal integer literal.
type Number struct {
	Value int32
	Loc   diag.Location
}

// Char is a character literal, decoded to its byte value.
type Char struct {
	Value byte
	Loc   diag.Location
}

// String is a string literal, decoded to its byte content (no terminator).
type String struct {
	Value []byte
	Loc   diag.Location
}

// LVal is a variable or array-element reference. Indices is empty for a
// scalar reference.
type LVal struct {
	Name    string
	Indices []Expr
	Loc     diag.Location
}

// Unary is a prefix unary expression.
type Unary struct {
	Op      UnaryOp
	Operand Expr
	Loc     diag.Location
}

// Binary is a binary expression.
type Binary struct {
	Op    BinaryOp
	Left  Expr
	Right Expr
	Loc   diag.Location
}

// Ternary is the `cond ? then : else` conditional expression.
type Ternary struct {
	Cond Expr
	Then Expr
	Else Expr
	Loc  diag.Location
}

// FuncCall is a call to a named function.
type FuncCall struct {
	Name string
	Args []Expr
	Loc  diag.Location
}

// InitList is a brace-enclosed initializer; only valid as (possibly nested
// within) a variable initializer.
type InitList struct {
	Items []Expr
	Loc   diag.Location
}

func (Identifier) implNode() {}
func (Identifier) implExpr() {}

func (Number) implNode() {}
func (Number) implExpr() {}

func (Char) implNode() {}
func (Char) implExpr() {}

func (String) implNode() {}
func (String) implExpr() {}

func (*LVal) implNode() {}
func (*LVal) implExpr() {}

func (*Unary) implNode() {}
func (*Unary) implExpr() {}

func (*Binary) implNode() {}
func (*Binary) implExpr() {}

func (*Ternary) implNode() {}
func (*Ternary) implExpr() {}

func (*FuncCall) implNode() {}
func (*FuncCall) implExpr() {}

func (*InitList) implNode() {}
func (*InitList) implExpr() {}

// ---- Statements ----

// ExprStmt is an expression evaluated for side effect, or an empty
// statement if Expr is nil.
type ExprStmt struct {
	Expr Expr
	Loc  diag.Location
}

// Assign is `lhs = rhs;`.
type Assign struct {
	LHS *LVal
	RHS Expr
	Loc diag.Location
}

// Block is a compound statement: `{ items... }`.
type Block struct {
	Items []BlockItem
	Loc   diag.Location
}

// If is `if (cond) then [else else_]`.
type If struct {
	Cond Expr
	Then Stmt
	Else Stmt
	Loc  diag.Location
}

// While is `while (cond) body`.
type While struct {
	Cond Expr
	Body Stmt
	Loc  diag.Location
}

// For is `for (init; cond; step) body`. Init and Step may each be nil.
type For struct {
	Init Node // Decl or Stmt, or nil
	Cond Expr
	Step Stmt
	Body Stmt
	Loc  diag.Location
}

// Return is `return [value];`.
type Return struct {
	Value Expr
	Loc   diag.Location
}

// Break is the `break;` statement.
type Break struct {
	Loc diag.Location
}

// Continue is the `continue;` statement.
type Continue struct {
	Loc diag.Location
}

func (*ExprStmt) implNode()      {}
func (*ExprStmt) implStmt()      {}
func (*ExprStmt) implBlockItem() {}

func (*Assign) implNode()      {}
func (*Assign) implStmt()      {}
func (*Assign) implBlockItem() {}

func (*Block) implNode()      {}
func (*Block) implStmt()      {}
func (*Block) implBlockItem() {}

func (*If) implNode()      {}
func (*If) implStmt()      {}
func (*If) implBlockItem() {}

func (*While) implNode()      {}
func (*While) implStmt()      {}
func (*While) implBlockItem() {}

func (*For) implNode()      {}
func (*For) implStmt()      {}
func (*For) implBlockItem() {}

func (*Return) implNode()      {}
func (*Return) implStmt()      {}
func (*Return) implBlockItem() {}

func (*Break) implNode()      {}
func (*Break) implStmt()      {}
func (*Break) implBlockItem() {}

func (*Continue) implNode()      {}
func (*Continue) implStmt()      {}
func (*Continue) implBlockItem() {}

// ---- Declarations ----

// VarDef is one name within a VarDecl: `name {[dim]} [= init]`. Dims empty
// means scalar; a nil entry in Dims denotes an omitted leading dimension
// (legal only in function-parameter position).
type VarDef struct {
	Name string
	Dims []Expr
	Init Expr
	Loc  diag.Location
}

// VarDecl is one type keyword declaring one or more names.
type VarDecl struct {
	Type TypeSpec
	Vars []*VarDef
	Loc  diag.Location
}

// FuncParam is one function parameter. IsArray with an empty (nil) first
// dimension models array-to-pointer decay; inner dimensions, if any, must
// be constant expressions.
type FuncParam struct {
	Type    TypeSpec
	Name    string
	IsArray bool
	Dims    []Expr
	Loc     diag.Location
}

// FuncDef is a function definition (the only function-introducing form;
// prototypes without bodies are not supported).
type FuncDef struct {
	ReturnType TypeSpec
	Name       string
	Params     []*FuncParam
	Body       *Block
	Loc        diag.Location
}

// CompUnit is the root of a compilation unit: a sequence of top-level
// function definitions and global variable declarations, in source order.
type CompUnit struct {
	Units []Node // *FuncDef or *VarDecl
}

func (*VarDef) implNode() {}

func (*VarDecl) implNode()      {}
func (*VarDecl) implDecl()      {}
func (*VarDecl) implBlockItem() {}

func (*FuncParam) implNode() {}

func (*FuncDef) implNode() {}

func (*CompUnit) implNode() {}
