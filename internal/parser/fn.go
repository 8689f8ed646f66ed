package parser

import (
	"lunar/internal/ast"
	"lunar/internal/diag"
	"lunar/internal/source"
	"lunar/internal/token"
	"lunar/internal/trace"
)

// parseFn: funct name ( params ) ret type { body }
// Безымянная функция разбирается целиком, но в программу не попадает.
func (p *Parser) parseFn() ast.FnID {
	fnTok := p.advance() // funct

	name := source.NoStringID
	if nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "function name"); ok {
		name = p.intern(nameTok)
	}

	p.expect(token.LParen, diag.SynUnexpectedToken, "'('")
	params := p.parseParams()
	p.expect(token.RParen, diag.SynUnclosedParen, "')'")

	p.expect(token.KwRet, diag.SynExpectRet, "'ret'")
	ret := source.NoStringID
	if retTok, ok := p.expect(token.Ident, diag.SynExpectType, "return type"); ok {
		ret = p.intern(retTok)
	}

	body := p.parseBlock()

	if name == source.NoStringID {
		trace.Point(p.tracer, trace.ScopeRecovery, "drop-fn", fnTok.Span.String(), 0)
		return ast.NoFnID
	}
	return p.arenas.Fns.New(fnTok.Span, name, params, ret, body)
}

// parseParams: name [: type] {, name [: type]}
func (p *Parser) parseParams() []ast.Param {
	if p.at(token.RParen) {
		return nil
	}

	var params []ast.Param
	for {
		nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "parameter name")
		if !ok {
			p.syncTo(token.RParen, token.LBrace)
			break
		}
		param := ast.Param{Name: p.intern(nameTok), Span: nameTok.Span}
		if p.accept(token.Colon) {
			if typeTok, ok := p.expect(token.Ident, diag.SynExpectType, "type name"); ok {
				param.Type = p.intern(typeTok)
			}
		}
		params = append(params, param)
		if !p.accept(token.Comma) {
			break
		}
	}
	return params
}
