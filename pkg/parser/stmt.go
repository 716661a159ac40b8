package parser

import (
	"github.com/daizxn/minic-llir/pkg/ast"
	"github.com/daizxn/minic-llir/pkg/lexer"
)

// parseBlock parses `"{" BlockItem* "}"`. cur is '{' on entry.
func (p *Parser) parseBlock() *ast.Block {
	loc := p.loc()
	p.advance() // consume '{'
	block := &ast.Block{Loc: loc}
	for p.cur.Kind != lexer.RBrace && p.cur.Kind != lexer.EOF {
		item := p.parseBlockItem()
		if item != nil {
			block.Items = append(block.Items, item)
		}
	}
	p.consume(lexer.RBrace, "to close block")
	return block
}

// parseBlockItem parses one `Decl | Stmt` inside a block.
func (p *Parser) parseBlockItem() ast.BlockItem {
	if p.isTypeStart() {
		loc := p.loc()
		typ := p.parseTypeSpec()
		if p.cur.Kind != lexer.Ident {
			p.errorf("expected identifier, got %s", p.cur.Kind)
			p.synchronize()
			return nil
		}
		name := p.cur.Lexeme
		p.advance()
		decl := p.parseVarDeclTail(loc, typ, name)
		item, _ := decl.(ast.BlockItem)
		return item
	}
	stmt := p.parseStatement()
	if stmt == nil {
		return nil
	}
	item, _ := stmt.(ast.BlockItem)
	return item
}

// parseStatement dispatches on the leading token per the statement
// grammar. It does not call synchronize: a syntax error inside a statement
// is recorded and parsing resumes at whatever token is current.
func (p *Parser) parseStatement() ast.Stmt {
	switch {
	case p.cur.Kind == lexer.LBrace:
		return p.parseBlock()
	case p.cur.Kind == lexer.KwIf:
		return p.parseIf()
	case p.cur.Kind == lexer.KwWhile:
		return p.parseWhile()
	case p.cur.Kind == lexer.KwFor:
		return p.parseFor()
	case p.cur.Kind == lexer.KwReturn:
		return p.parseReturn()
	case p.cur.Kind == lexer.Ident && p.cur.Lexeme == "break":
		loc := p.loc()
		p.advance()
		p.consume(lexer.Semicolon, "after break")
		return &ast.Break{Loc: loc}
	case p.cur.Kind == lexer.Ident && p.cur.Lexeme == "continue":
		loc := p.loc()
		p.advance()
		p.consume(lexer.Semicolon, "after continue")
		return &ast.Continue{Loc: loc}
	case p.cur.Kind == lexer.Semicolon:
		loc := p.loc()
		p.advance()
		return &ast.ExprStmt{Loc: loc}
	default:
		return p.parseSimpleStmt(true)
	}
}

// parseSimpleStmt parses an expression, then either an Assign (if '=' is
// next; a left side that is not an LVal is reported and left nil) or an
// ExprStmt. When requireSemi,
// a trailing ';' is required (statement position); for-loop step clauses
// pass false since ')' terminates them instead.
func (p *Parser) parseSimpleStmt(requireSemi bool) ast.Stmt {
	loc := p.loc()
	expr := p.parseExpr()

	if p.cur.Kind == lexer.Assign {
		lval, ok := expr.(*ast.LVal)
		if !ok {
			p.errorf("left side of assignment is not an lvalue")
		}
		p.advance()
		rhs := p.parseExpr()
		if requireSemi {
			p.consume(lexer.Semicolon, "after assignment")
		}
		return &ast.Assign{LHS: lval, RHS: rhs, Loc: loc}
	}

	if requireSemi {
		p.consume(lexer.Semicolon, "after expression statement")
	}
	return &ast.ExprStmt{Expr: expr, Loc: loc}
}

func (p *Parser) parseIf() ast.Stmt {
	loc := p.loc()
	p.advance() // consume 'if'
	p.consume(lexer.LParen, "after if")
	cond := p.parseExpr()
	p.consume(lexer.RParen, "after if condition")
	then := p.parseStatement()
	stmt := &ast.If{Cond: cond, Then: then, Loc: loc}
	if p.match(lexer.KwElse) {
		stmt.Else = p.parseStatement()
	}
	return stmt
}

func (p *Parser) parseWhile() ast.Stmt {
	loc := p.loc()
	p.advance() // consume 'while'
	p.consume(lexer.LParen, "after while")
	cond := p.parseExpr()
	p.consume(lexer.RParen, "after while condition")
	body := p.parseStatement()
	return &ast.While{Cond: cond, Body: body, Loc: loc}
}

// parseFor parses `"for" "(" (Decl | Stmt)? ";" Expr? ";" Stmt? ")" Stmt`.
// The init clause accepts a declaration or a statement; the step clause
// accepts an expression or assignment, never a declaration.
func (p *Parser) parseFor() ast.Stmt {
	loc := p.loc()
	p.advance() // consume 'for'
	p.consume(lexer.LParen, "after for")

	f := &ast.For{Loc: loc}
	if p.cur.Kind == lexer.Semicolon {
		p.advance()
	} else if p.isTypeStart() {
		declLoc := p.loc()
		typ := p.parseTypeSpec()
		if p.cur.Kind != lexer.Ident {
			p.errorf("expected identifier, got %s", p.cur.Kind)
		} else {
			name := p.cur.Lexeme
			p.advance()
			f.Init = p.parseVarDeclTail(declLoc, typ, name)
		}
	} else {
		f.Init = p.parseSimpleStmt(true)
	}

	if p.cur.Kind != lexer.Semicolon {
		f.Cond = p.parseExpr()
	}
	p.consume(lexer.Semicolon, "after for condition")

	if p.cur.Kind != lexer.RParen {
		f.Step = p.parseSimpleStmt(false)
	}
	p.consume(lexer.RParen, "after for clauses")

	f.Body = p.parseStatement()
	return f
}

func (p *Parser) parseReturn() ast.Stmt {
	loc := p.loc()
	p.advance() // consume 'return'
	ret := &ast.Return{Loc: loc}
	if p.cur.Kind != lexer.Semicolon {
		ret.Value = p.parseExpr()
	}
	p.consume(lexer.Semicolon, "after return")
	return ret
}
