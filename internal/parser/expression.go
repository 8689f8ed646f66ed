package parser

import (
	"lunar/internal/ast"
	"lunar/internal/diag"
	"lunar/internal/source"
	"lunar/internal/token"
)

// parseExpr - главная точка входа для парсинга выражений.
// NoExprID означает, что диагностика уже выдана.
func (p *Parser) parseExpr() ast.ExprID {
	return p.parseBinaryExpr(precAssignment)
}

// enter считает глубину рекурсии; leave вызывается всегда, даже при отказе.
func (p *Parser) enter() bool {
	p.depth++
	if p.depth <= p.opts.MaxDepth {
		return true
	}
	if !p.tooDeep {
		p.tooDeep = true
		p.report(diag.SynNestingTooDeep, p.peek().Span, "expression nesting too deep")
	}
	return false
}

func (p *Parser) leave() {
	p.depth--
}

// parseBinaryExpr: precedence climbing по таблице из op_table.go.
// minPrec - минимальный приоритет для текущего уровня
func (p *Parser) parseBinaryExpr(minPrec int) ast.ExprID {
	defer p.leave()
	if !p.enter() {
		return ast.NoExprID
	}

	left := p.parseUnaryExpr()
	if !left.IsValid() {
		return ast.NoExprID
	}

	for {
		opTok := p.peek()
		prec, rightAssoc := binaryPrec(opTok.Kind)
		if prec < minPrec {
			break
		}
		p.advance()

		if opTok.Kind == token.Assign && p.arenas.Exprs.Get(left).Kind != ast.ExprName {
			p.report(diag.SynInvalidAssignTarget, p.arenas.Exprs.Get(left).Span, "left side of assignment must be a name")
		}

		nextMinPrec := prec + 1
		if rightAssoc {
			nextMinPrec = prec
		}
		right := p.parseBinaryExpr(nextMinPrec)
		if !right.IsValid() {
			return ast.NoExprID
		}

		if opTok.Kind == token.Assign {
			left = p.newAssign(left, right)
		} else {
			left = p.arenas.Exprs.NewBinary(p.arenas.Exprs.Get(left).Span, binaryOp(opTok.Kind), left, right)
		}
		if !left.IsValid() {
			return ast.NoExprID
		}
	}
	return left
}

// newAssign: цель - только имя; иначе NoStringID как заглушка.
func (p *Parser) newAssign(target, value ast.ExprID) ast.ExprID {
	targetSpan := p.arenas.Exprs.Get(target).Span
	name := source.NoStringID
	if data, ok := p.arenas.Exprs.Name(target); ok {
		name = data.Name
	}
	return p.arenas.Exprs.NewAssign(targetSpan, name, targetSpan, value)
}

// parseUnaryExpr обрабатывает унарные операторы (префиксы)
func (p *Parser) parseUnaryExpr() ast.ExprID {
	type prefixOp struct {
		op   ast.ExprUnaryOp
		span source.Span
	}

	var prefixes []prefixOp
	for {
		op, ok := unaryOp(p.peek().Kind)
		if !ok {
			break
		}
		opTok := p.advance()
		prefixes = append(prefixes, prefixOp{op: op, span: opTok.Span})
	}

	expr := p.parsePostfixExpr()
	if !expr.IsValid() {
		return ast.NoExprID
	}

	// Применяем префиксы справа налево
	for i := len(prefixes) - 1; i >= 0; i-- {
		expr = p.arenas.Exprs.NewUnary(prefixes[i].span, prefixes[i].op, expr)
		if !expr.IsValid() {
			return ast.NoExprID
		}
	}
	return expr
}

// parsePostfixExpr: вызовы цепочкой, f(a)(b).
func (p *Parser) parsePostfixExpr() ast.ExprID {
	expr := p.parsePrimaryExpr()
	for expr.IsValid() && p.at(token.LParen) {
		expr = p.parseCallExpr(expr)
	}
	return expr
}

func (p *Parser) parseCallExpr(callee ast.ExprID) ast.ExprID {
	p.advance() // '('

	var args []ast.ExprID
	if !p.at(token.RParen) {
		for {
			arg := p.parseExpr()
			if !arg.IsValid() {
				return ast.NoExprID
			}
			args = append(args, arg)
			if !p.accept(token.Comma) {
				break
			}
		}
	}
	p.expect(token.RParen, diag.SynUnclosedParen, "')'")

	return p.arenas.Exprs.NewCall(p.arenas.Exprs.Get(callee).Span, callee, args)
}

// parsePrimaryExpr парсит основные (атомарные) выражения
func (p *Parser) parsePrimaryExpr() ast.ExprID {
	tok := p.peek()
	switch tok.Kind {
	case token.IntLit:
		p.advance()
		return p.arenas.Exprs.NewInt(tok.Span, tok.Value)

	case token.StringLit:
		p.advance()
		return p.arenas.Exprs.NewString(tok.Span, p.intern(tok))

	case token.KwTrue, token.KwFalse:
		p.advance()
		return p.arenas.Exprs.NewBool(tok.Span, tok.Kind == token.KwTrue)

	case token.Ident:
		p.advance()
		return p.arenas.Exprs.NewName(tok.Span, p.intern(tok))

	case token.LParen:
		p.advance()
		inner := p.parseExpr()
		if !inner.IsValid() {
			return ast.NoExprID
		}
		p.expect(token.RParen, diag.SynUnclosedParen, "')'")
		return inner

	default:
		p.report(diag.SynExpectExpression, tok.Span, "expected expression")
		return ast.NoExprID
	}
}
