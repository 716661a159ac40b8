package parser

import (
	"github.com/daizxn/minic-llir/pkg/ast"
	"github.com/daizxn/minic-llir/pkg/diag"
	"github.com/daizxn/minic-llir/pkg/lexer"
)

// parseExpr is the entry point into the precedence tower: the lowest
// (loosest-binding) level is the conditional expression.
func (p *Parser) parseExpr() ast.Expr {
	return p.parseConditional()
}

// parseConditional handles `cond ? then : else`, right-associative.
func (p *Parser) parseConditional() ast.Expr {
	cond := p.parseLogicalOr()
	if !p.match(lexer.Question) {
		return cond
	}
	loc := p.loc()
	then := p.parseExpr()
	p.consume(lexer.Colon, "in conditional expression")
	els := p.parseConditional()
	return &ast.Ternary{Cond: cond, Then: then, Else: els, Loc: loc}
}

func (p *Parser) parseLogicalOr() ast.Expr {
	left := p.parseLogicalAnd()
	for p.cur.Kind == lexer.OrOr {
		loc := p.loc()
		p.advance()
		right := p.parseLogicalAnd()
		left = &ast.Binary{Op: ast.OpOr, Left: left, Right: right, Loc: loc}
	}
	return left
}

func (p *Parser) parseLogicalAnd() ast.Expr {
	left := p.parseBitOr()
	for p.cur.Kind == lexer.AndAnd {
		loc := p.loc()
		p.advance()
		right := p.parseBitOr()
		left = &ast.Binary{Op: ast.OpAnd, Left: left, Right: right, Loc: loc}
	}
	return left
}

func (p *Parser) parseBitOr() ast.Expr {
	left := p.parseBitXor()
	for p.cur.Kind == lexer.Pipe {
		loc := p.loc()
		p.advance()
		right := p.parseBitXor()
		left = &ast.Binary{Op: ast.OpBitOr, Left: left, Right: right, Loc: loc}
	}
	return left
}

func (p *Parser) parseBitXor() ast.Expr {
	left := p.parseBitAnd()
	for p.cur.Kind == lexer.Caret {
		loc := p.loc()
		p.advance()
		right := p.parseBitAnd()
		left = &ast.Binary{Op: ast.OpBitXor, Left: left, Right: right, Loc: loc}
	}
	return left
}

func (p *Parser) parseBitAnd() ast.Expr {
	left := p.parseEquality()
	for p.cur.Kind == lexer.Amp {
		loc := p.loc()
		p.advance()
		right := p.parseEquality()
		left = &ast.Binary{Op: ast.OpBitAnd, Left: left, Right: right, Loc: loc}
	}
	return left
}

func (p *Parser) parseEquality() ast.Expr {
	left := p.parseRelational()
	for p.cur.Kind == lexer.Eq || p.cur.Kind == lexer.Ne {
		op := ast.OpEq
		if p.cur.Kind == lexer.Ne {
			op = ast.OpNe
		}
		loc := p.loc()
		p.advance()
		right := p.parseRelational()
		left = &ast.Binary{Op: op, Left: left, Right: right, Loc: loc}
	}
	return left
}

func (p *Parser) parseRelational() ast.Expr {
	left := p.parseShift()
	for {
		var op ast.BinaryOp
		switch p.cur.Kind {
		case lexer.Lt:
			op = ast.OpLt
		case lexer.Le:
			op = ast.OpLe
		case lexer.Gt:
			op = ast.OpGt
		case lexer.Ge:
			op = ast.OpGe
		default:
			return left
		}
		loc := p.loc()
		p.advance()
		right := p.parseShift()
		left = &ast.Binary{Op: op, Left: left, Right: right, Loc: loc}
	}
}

func (p *Parser) parseShift() ast.Expr {
	left := p.parseAdditive()
	for p.cur.Kind == lexer.Shl || p.cur.Kind == lexer.Shr {
		op := ast.OpShl
		if p.cur.Kind == lexer.Shr {
			op = ast.OpShr
		}
		loc := p.loc()
		p.advance()
		right := p.parseAdditive()
		left = &ast.Binary{Op: op, Left: left, Right: right, Loc: loc}
	}
	return left
}

func (p *Parser) parseAdditive() ast.Expr {
	left := p.parseMultiplicative()
	for p.cur.Kind == lexer.Plus || p.cur.Kind == lexer.Minus {
		op := ast.OpAdd
		if p.cur.Kind == lexer.Minus {
			op = ast.OpSub
		}
		loc := p.loc()
		p.advance()
		right := p.parseMultiplicative()
		left = &ast.Binary{Op: op, Left: left, Right: right, Loc: loc}
	}
	return left
}

func (p *Parser) parseMultiplicative() ast.Expr {
	left := p.parseUnary()
	for {
		var op ast.BinaryOp
		switch p.cur.Kind {
		case lexer.Star:
			op = ast.OpMul
		case lexer.Slash:
			op = ast.OpDiv
		case lexer.Percent:
			op = ast.OpMod
		default:
			return left
		}
		loc := p.loc()
		p.advance()
		right := p.parseUnary()
		left = &ast.Binary{Op: op, Left: left, Right: right, Loc: loc}
	}
}

// parseUnary handles the prefix unary operators, right-associative (a
// chain of prefix operators nests right, e.g. `!!x`).
func (p *Parser) parseUnary() ast.Expr {
	var op ast.UnaryOp
	switch p.cur.Kind {
	case lexer.Plus:
		op = ast.OpPlus
	case lexer.Minus:
		op = ast.OpNeg
	case lexer.Not:
		op = ast.OpNot
	case lexer.Tilde:
		op = ast.OpBitNot
	case lexer.Inc:
		op = ast.OpInc
	case lexer.Dec:
		op = ast.OpDec
	default:
		return p.parsePrimary()
	}
	loc := p.loc()
	p.advance()
	operand := p.parseUnary()
	return &ast.Unary{Op: op, Operand: operand, Loc: loc}
}

// parsePrimary handles parenthesized expressions, literals, and the
// identifier-lead forms (call vs. possibly-subscripted LVal).
func (p *Parser) parsePrimary() ast.Expr {
	loc := p.loc()
	switch p.cur.Kind {
	case lexer.LParen:
		p.advance()
		e := p.parseExpr()
		p.consume(lexer.RParen, "to close parenthesized expression")
		return e
	case lexer.IntLit:
		v := p.cur.IntValue
		p.advance()
		return ast.Number{Value: v, Loc: loc}
	case lexer.CharLit:
		v := byte(p.cur.IntValue)
		p.advance()
		return ast.Char{Value: v, Loc: loc}
	case lexer.StringLit:
		v := []byte(p.cur.Lexeme)
		p.advance()
		return ast.String{Value: v, Loc: loc}
	case lexer.Ident:
		name := p.cur.Lexeme
		p.advance()
		if p.cur.Kind == lexer.LParen {
			return p.parseCallTail(loc, name)
		}
		return p.parseLValTail(loc, name)
	default:
		p.errorf("expected expression, got %s", p.cur.Kind)
		p.advance()
		return ast.Number{Value: 0, Loc: loc}
	}
}

func (p *Parser) parseCallTail(loc diag.Location, name string) ast.Expr {
	p.advance() // consume '('
	call := &ast.FuncCall{Name: name, Loc: loc}
	if p.cur.Kind != lexer.RParen {
		call.Args = append(call.Args, p.parseExpr())
		for p.match(lexer.Comma) {
			call.Args = append(call.Args, p.parseExpr())
		}
	}
	p.consume(lexer.RParen, "to close call argument list")
	return call
}

func (p *Parser) parseLValTail(loc diag.Location, name string) *ast.LVal {
	lval := &ast.LVal{Name: name, Loc: loc}
	for p.match(lexer.LBracket) {
		lval.Indices = append(lval.Indices, p.parseExpr())
		p.consume(lexer.RBracket, "to close array subscript")
	}
	return lval
}
