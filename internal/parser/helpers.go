package parser

import (
	"slices"

	"lunar/internal/diag"
	"lunar/internal/source"
	"lunar/internal/token"
	"lunar/internal/trace"
)

// peek возвращает текущий токен. Invalid-токены пропускаются молча:
// лексер уже выдал по ним диагностику.
func (p *Parser) peek() token.Token {
	for {
		tok := p.lx.Peek()
		if tok.Kind != token.Invalid {
			return tok
		}
		p.lx.Next()
		trace.Point(p.tracer, trace.ScopeRecovery, "skip-invalid", tok.Text, 0)
	}
}

// advance: съедает текущий токен. Токены синхронизации снимают panic mode.
func (p *Parser) advance() token.Token {
	p.peek()
	tok := p.lx.Next()
	switch tok.Kind {
	case token.Semicolon, token.RBrace, token.KwFunct:
		p.recovering = false
	}
	return tok
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

// accept съедает токен, если он нужного вида.
func (p *Parser) accept(k token.Kind) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	return false
}

// expect: ожидаем конкретный токен. Если нет - репортим "expected <what>"
// на текущем токене, ничего не съедая.
func (p *Parser) expect(k token.Kind, code diag.Code, what string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	tok := p.peek()
	p.report(code, tok.Span, "expected "+what)
	return tok, false
}

// skip drops exactly one token.
func (p *Parser) skip() {
	tok := p.advance()
	trace.Point(p.tracer, trace.ScopeRecovery, "skip", tok.Kind.String(), 0)
}

// syncStmt skips to the end of the current statement: past the next ';', or up
// to '}' / 'funct' / EOF.
func (p *Parser) syncStmt() {
	for {
		switch p.peek().Kind {
		case token.EOF, token.RBrace, token.KwFunct:
			return
		case token.Semicolon:
			p.advance()
			return
		}
		p.skip()
	}
}

// syncTo skips tokens until one of kinds (not consumed), 'funct' or EOF.
func (p *Parser) syncTo(kinds ...token.Kind) {
	for {
		k := p.peek().Kind
		if k == token.EOF || k == token.KwFunct || slices.Contains(kinds, k) {
			return
		}
		p.skip()
	}
}

func (p *Parser) report(code diag.Code, sp source.Span, msg string) {
	if p.recovering {
		trace.Point(p.tracer, trace.ScopeRecovery, "suppressed", msg, 0)
		return
	}
	p.recovering = true
	p.errors++
	if p.opts.Reporter != nil && !p.opts.Enough() {
		p.opts.Reporter.Report(code, diag.SevError, sp, msg, nil)
	}
	p.opts.CurrentErrors++
}

// intern копирует текст токена в строковую таблицу билдера.
func (p *Parser) intern(tok token.Token) source.StringID {
	return p.arenas.Intern(tok.Text)
}
