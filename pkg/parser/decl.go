package parser

import (
	"github.com/daizxn/minic-llir/pkg/ast"
	"github.com/daizxn/minic-llir/pkg/ctypes"
	"github.com/daizxn/minic-llir/pkg/diag"
	"github.com/daizxn/minic-llir/pkg/lexer"
)

// parseVarDeclTail parses `{"[" ConstExpr? "]"} ("=" InitVal)? {"," VarDef}
// ";"` given a type and the first name already consumed.
func (p *Parser) parseVarDeclTail(loc diag.Location, typ ctypes.TypeSpec, name string) ast.Node {
	decl := &ast.VarDecl{Type: typ, Loc: loc}
	decl.Vars = append(decl.Vars, p.parseVarDefTail(name))
	for p.match(lexer.Comma) {
		if p.cur.Kind != lexer.Ident {
			p.errorf("expected identifier, got %s", p.cur.Kind)
			break
		}
		n := p.cur.Lexeme
		p.advance()
		decl.Vars = append(decl.Vars, p.parseVarDefTail(n))
	}
	p.consume(lexer.Semicolon, "after variable declaration")
	return decl
}

// parseVarDefTail parses the dims/initializer portion of a VarDef, given
// its name already consumed.
func (p *Parser) parseVarDefTail(name string) *ast.VarDef {
	def := &ast.VarDef{Name: name, Loc: p.loc()}
	for p.match(lexer.LBracket) {
		if p.cur.Kind == lexer.RBracket {
			def.Dims = append(def.Dims, nil)
		} else {
			def.Dims = append(def.Dims, p.parseExpr())
		}
		p.consume(lexer.RBracket, "to close array dimension")
	}
	if p.match(lexer.Assign) {
		def.Init = p.parseInitVal()
	}
	return def
}

// parseInitVal parses `Expr | "{" (InitVal ("," InitVal)*)? "}"`.
func (p *Parser) parseInitVal() ast.Expr {
	if p.cur.Kind != lexer.LBrace {
		return p.parseExpr()
	}
	loc := p.loc()
	p.advance()
	lst := &ast.InitList{Loc: loc}
	if p.cur.Kind != lexer.RBrace {
		lst.Items = append(lst.Items, p.parseInitVal())
		for p.match(lexer.Comma) {
			if p.cur.Kind == lexer.RBrace {
				break
			}
			lst.Items = append(lst.Items, p.parseInitVal())
		}
	}
	p.consume(lexer.RBrace, "to close initializer list")
	return lst
}

// parseFuncDefTail parses `"(" Params? ")" Block` given the return type
// and name already consumed; cur is '('.
func (p *Parser) parseFuncDefTail(loc diag.Location, typ ctypes.TypeSpec, name string) ast.Node {
	fd := &ast.FuncDef{ReturnType: typ, Name: name, Loc: loc}
	p.advance() // consume '('
	if p.cur.Kind != lexer.RParen {
		fd.Params = append(fd.Params, p.parseFuncParam())
		for p.match(lexer.Comma) {
			fd.Params = append(fd.Params, p.parseFuncParam())
		}
	}
	p.consume(lexer.RParen, "to close parameter list")

	if p.cur.Kind != lexer.LBrace {
		p.errorf("function definition requires a body, got %s", p.cur.Kind)
		return fd
	}
	fd.Body = p.parseBlock()
	return fd
}

// parseFuncParam parses `TypeSpec IDENT {"[" ConstExpr? "]"}`. The first
// subscript, if present, may be empty to model array decay.
func (p *Parser) parseFuncParam() *ast.FuncParam {
	loc := p.loc()
	typ := p.parseTypeSpec()
	param := &ast.FuncParam{Type: typ, Loc: loc}
	if p.cur.Kind != lexer.Ident {
		p.errorf("expected parameter name, got %s", p.cur.Kind)
		return param
	}
	param.Name = p.cur.Lexeme
	p.advance()

	if p.match(lexer.LBracket) {
		param.IsArray = true
		if p.cur.Kind == lexer.RBracket {
			param.Dims = append(param.Dims, nil)
		} else {
			param.Dims = append(param.Dims, p.parseExpr())
		}
		p.consume(lexer.RBracket, "to close array parameter dimension")
		for p.match(lexer.LBracket) {
			param.Dims = append(param.Dims, p.parseExpr())
			p.consume(lexer.RBracket, "to close array parameter dimension")
		}
	}
	return param
}
