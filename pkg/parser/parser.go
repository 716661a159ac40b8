// Package parser implements a recursive-descent parser, with an
// operator-precedence expression tower and panic-mode error recovery, over
// a disciplined C subset: scalar/array declarations, functions, structured
// control flow, and the usual expression grammar.
package parser

import (
	"github.com/daizxn/minic-llir/pkg/ast"
	"github.com/daizxn/minic-llir/pkg/ctypes"
	"github.com/daizxn/minic-llir/pkg/diag"
	"github.com/daizxn/minic-llir/pkg/lexer"
)

// topLevelStart is the set of tokens synchronize treats as a stable
// boundary it must not consume.
var topLevelStart = map[lexer.Kind]bool{
	lexer.KwInt:    true,
	lexer.KwChar:   true,
	lexer.KwVoid:   true,
	lexer.KwConst:  true,
	lexer.KwIf:     true,
	lexer.KwWhile:  true,
	lexer.KwFor:    true,
	lexer.KwReturn: true,
}

// Parser consumes a token source and produces a CompUnit plus a list of
// diagnostics. It never panics on malformed input; every failure is
// recorded and the parser attempts to continue.
type Parser struct {
	src  lexer.TokenSource
	cur  lexer.Token
	peek lexer.Token

	diags diag.Diagnostics
}

// New creates a Parser over src, priming the one-token lookahead buffer.
func New(src lexer.TokenSource) *Parser {
	p := &Parser{src: src}
	p.advance()
	p.advance()
	return p
}

// Diagnostics returns every diagnostic recorded so far.
func (p *Parser) Diagnostics() diag.Diagnostics {
	return p.diags
}

func (p *Parser) advance() {
	p.cur = p.peek
	p.peek = p.src.NextToken()
}

func (p *Parser) loc() diag.Location {
	return p.cur.Location
}

func (p *Parser) errorf(format string, args ...any) {
	p.diags.Add(p.loc(), format, args...)
}

// match consumes and returns true if cur is kind, otherwise leaves cur in
// place and returns false.
func (p *Parser) match(kind lexer.Kind) bool {
	if p.cur.Kind == kind {
		p.advance()
		return true
	}
	return false
}

// consume requires cur to be kind, recording a diagnostic and consuming
// nothing if it is not.
func (p *Parser) consume(kind lexer.Kind, context string) bool {
	if p.cur.Kind == kind {
		p.advance()
		return true
	}
	p.errorf("expected %s %s, got %s", kind, context, p.cur.Kind)
	return false
}

// synchronize skips tokens until the next ';' (consumed) or the next
// top-level-start token (not consumed), always consuming at least one
// token so the parser cannot loop forever on a single bad token.
func (p *Parser) synchronize() {
	p.advance()
	for p.cur.Kind != lexer.EOF {
		if p.cur.Kind == lexer.Semicolon {
			p.advance()
			return
		}
		if topLevelStart[p.cur.Kind] {
			return
		}
		p.advance()
	}
}

func (p *Parser) isTypeStart() bool {
	switch p.cur.Kind {
	case lexer.KwConst, lexer.KwInt, lexer.KwChar, lexer.KwVoid:
		return true
	}
	return false
}

// parseTypeSpec consumes an optional 'const' qualifier followed by a base
// type keyword.
func (p *Parser) parseTypeSpec() ctypes.TypeSpec {
	isConst := p.match(lexer.KwConst)
	var kind ctypes.TypeKind
	switch p.cur.Kind {
	case lexer.KwInt:
		kind = ctypes.Int
		p.advance()
	case lexer.KwChar:
		kind = ctypes.Char
		p.advance()
	case lexer.KwVoid:
		kind = ctypes.Void
		p.advance()
	default:
		p.errorf("expected type specifier, got %s", p.cur.Kind)
	}
	return ctypes.TypeSpec{Kind: kind, IsConst: isConst}
}

// Parse consumes the entire token source and returns the resulting
// compilation unit. The returned CompUnit is never nil, even in the
// presence of errors; check Diagnostics().HasErrors() for failure.
func (p *Parser) Parse() *ast.CompUnit {
	unit := &ast.CompUnit{}
	for p.cur.Kind != lexer.EOF {
		n := p.parseTopLevel()
		if n != nil {
			unit.Units = append(unit.Units, n)
		}
	}
	return unit
}

// parseTopLevel parses one `Decl | FuncDef` at the top level. It consumes
// the leading type specifier and name itself, then dispatches on whether
// '(' follows the name.
func (p *Parser) parseTopLevel() ast.Node {
	if !p.isTypeStart() {
		p.errorf("expected declaration or function definition, got %s", p.cur.Kind)
		p.synchronize()
		return nil
	}
	loc := p.loc()
	typ := p.parseTypeSpec()

	if p.cur.Kind != lexer.Ident {
		p.errorf("expected identifier, got %s", p.cur.Kind)
		p.synchronize()
		return nil
	}
	name := p.cur.Lexeme
	p.advance()

	if p.cur.Kind == lexer.LParen {
		return p.parseFuncDefTail(loc, typ, name)
	}
	return p.parseVarDeclTail(loc, typ, name)
}
