package parser

import (
	"lunar/internal/ast"
	"lunar/internal/diag"
	"lunar/internal/source"
	"lunar/internal/token"
	"lunar/internal/trace"
)

// parseBlock: '{' Stmt* '}'. Тело разбирается, даже если '{' нет.
// Незакрытый блок заканчивается на следующем 'funct'.
func (p *Parser) parseBlock() []ast.StmtID {
	p.expect(token.LBrace, diag.SynUnexpectedToken, "'{'")

	var body []ast.StmtID
	for !p.at(token.RBrace) && !p.at(token.EOF) && !p.at(token.KwFunct) {
		if p.aborted() {
			return body
		}
		stmt := p.parseStmt()
		if stmt.IsValid() {
			body = append(body, stmt)
			continue
		}
		if p.tooDeep {
			trace.Point(p.tracer, trace.ScopeRecovery, "sync", "nesting too deep", 0)
			p.syncStmt()
			p.tooDeep = false
			continue
		}
		if !p.at(token.RBrace) && !p.at(token.EOF) && !p.at(token.KwFunct) {
			p.skip()
		}
	}
	p.expect(token.RBrace, diag.SynUnclosedBrace, "'}'")
	return body
}

func (p *Parser) parseStmt() ast.StmtID {
	switch p.peek().Kind {
	case token.KwLet:
		return p.parseLetStmt()
	case token.KwReturn:
		return p.parseReturnStmt()
	default:
		return p.parseExprStmt()
	}
}

// parseLetStmt: let [mut] name [: type] = expr ;
func (p *Parser) parseLetStmt() ast.StmtID {
	letTok := p.advance()
	isMut := p.accept(token.KwMut)

	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "variable name")
	if !ok {
		return ast.NoStmtID
	}

	typ := source.NoStringID
	if p.accept(token.Colon) {
		if typeTok, ok := p.expect(token.Ident, diag.SynExpectType, "type name"); ok {
			typ = p.intern(typeTok)
		}
	}

	p.expect(token.Assign, diag.SynExpectAssign, "'='")
	init := p.parseExpr()
	if !init.IsValid() {
		return ast.NoStmtID
	}
	p.expect(token.Semicolon, diag.SynExpectSemicolon, "';'")

	return p.arenas.Stmts.NewLet(letTok.Span, isMut, p.intern(nameTok), typ, init)
}

// parseReturnStmt: return [expr] ;
func (p *Parser) parseReturnStmt() ast.StmtID {
	retTok := p.advance()

	value := ast.NoExprID
	if !p.at(token.Semicolon) {
		value = p.parseExpr()
		if !value.IsValid() {
			return ast.NoStmtID
		}
	}
	p.expect(token.Semicolon, diag.SynExpectSemicolon, "';'")

	return p.arenas.Stmts.NewReturn(retTok.Span, value)
}

// parseExprStmt: expr ; Без выражения ';' не ожидается.
func (p *Parser) parseExprStmt() ast.StmtID {
	expr := p.parseExpr()
	if !expr.IsValid() {
		return ast.NoStmtID
	}
	p.expect(token.Semicolon, diag.SynExpectSemicolon, "';'")

	return p.arenas.Stmts.NewExpr(p.arenas.Exprs.Get(expr).Span, expr)
}
