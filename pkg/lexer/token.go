package lexer

import "github.com/daizxn/minic-llir/pkg/diag"

// Kind identifies the lexical class of a Token.
type Kind int

const (
	EOF Kind = iota
	Error

	Ident
	IntLit
	CharLit
	StringLit

	// Keywords
	KwInt
	KwChar
	KwVoid
	KwConst
	KwIf
	KwElse
	KwWhile
	KwFor
	KwReturn

	// Operators
	Plus
	Minus
	Star
	Slash
	Percent
	Assign
	Eq
	Ne
	Lt
	Le
	Gt
	Ge
	AndAnd
	OrOr
	Not
	Amp
	Pipe
	Caret
	Tilde
	Shl
	Shr
	Question
	Colon
	Inc
	Dec

	// Delimiters
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Semicolon
	Comma
)

var kindNames = map[Kind]string{
	EOF:       "EOF",
	Error:     "ERROR",
	Ident:     "IDENT",
	IntLit:    "INT_LIT",
	CharLit:   "CHAR_LIT",
	StringLit: "STRING_LIT",
	KwInt:     "int",
	KwChar:    "char",
	KwVoid:    "void",
	KwConst:   "const",
	KwIf:      "if",
	KwElse:    "else",
	KwWhile:   "while",
	KwFor:     "for",
	KwReturn:  "return",
	Plus:      "+",
	Minus:     "-",
	Star:      "*",
	Slash:     "/",
	Percent:   "%",
	Assign:    "=",
	Eq:        "==",
	Ne:        "!=",
	Lt:        "<",
	Le:        "<=",
	Gt:        ">",
	Ge:        ">=",
	AndAnd:    "&&",
	OrOr:      "||",
	Not:       "!",
	Amp:       "&",
	Pipe:      "|",
	Caret:     "^",
	Tilde:     "~",
	Shl:       "<<",
	Shr:       ">>",
	Question:  "?",
	Colon:     ":",
	Inc:       "++",
	Dec:       "--",
	LParen:    "(",
	RParen:    ")",
	LBrace:    "{",
	RBrace:    "}",
	LBracket:  "[",
	RBracket:  "]",
	Semicolon: ";",
	Comma:     ",",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "UNKNOWN"
}

// keywords maps identifier spellings to keyword kinds. break and continue
// are deliberately absent: the grammar recognizes them as plain identifiers
// with reserved meaning in statement position, not as lexical keywords.
var keywords = map[string]Kind{
	"int":    KwInt,
	"char":   KwChar,
	"void":   KwVoid,
	"const":  KwConst,
	"if":     KwIf,
	"else":   KwElse,
	"while":  KwWhile,
	"for":    KwFor,
	"return": KwReturn,
}

// LookupIdent returns the keyword Kind for ident, or Ident if it is not a
// keyword.
func LookupIdent(ident string) Kind {
	if k, ok := keywords[ident]; ok {
		return k
	}
	return Ident
}

// Token is one lexical unit: a kind tag, the literal lexeme, its source
// location, and (for numeric and character literals) a decoded value.
type Token struct {
	Kind     Kind
	Lexeme   string
	Location diag.Location
	IntValue int32
}

// TokenSource is the interface the parser depends on. The lexer is an
// external collaborator; the parser never inspects anything but this.
type TokenSource interface {
	NextToken() Token
}
