package parser

import (
	"lunar/internal/ast"
	"lunar/internal/token"
)

// Таблица приоритетов для бинарных операторов
// Чем больше число, тем выше приоритет
const (
	precAssignment     = 1 // =
	precEquality       = 2 // == !=
	precComparison     = 3 // < <= > >=
	precAdditive       = 4 // + -
	precMultiplicative = 5 // * /
)

// binaryPrec возвращает приоритет и ассоциативность оператора
// Возвращает (приоритет, правоассоциативный); -1 для не-операторов.
func binaryPrec(kind token.Kind) (int, bool) {
	switch kind {
	case token.Assign:
		return precAssignment, true
	case token.EqEq, token.BangEq:
		return precEquality, false
	case token.Lt, token.LtEq, token.Gt, token.GtEq:
		return precComparison, false
	case token.Plus, token.Minus:
		return precAdditive, false
	case token.Star, token.Slash:
		return precMultiplicative, false
	default:
		return -1, false
	}
}

// binaryOp преобразует токен в тип бинарного оператора
func binaryOp(kind token.Kind) ast.ExprBinaryOp {
	switch kind {
	case token.Plus:
		return ast.OpAdd
	case token.Minus:
		return ast.OpSub
	case token.Star:
		return ast.OpMul
	case token.Slash:
		return ast.OpDiv
	case token.EqEq:
		return ast.OpEq
	case token.BangEq:
		return ast.OpNotEq
	case token.Lt:
		return ast.OpLess
	case token.LtEq:
		return ast.OpLessEq
	case token.Gt:
		return ast.OpGreater
	case token.GtEq:
		return ast.OpGreaterEq
	default:
		// Это не должно случаться, если таблица приоритетов корректна
		return ast.OpAdd
	}
}

func unaryOp(kind token.Kind) (ast.ExprUnaryOp, bool) {
	switch kind {
	case token.Minus:
		return ast.UnaryNeg, true
	case token.Bang:
		return ast.UnaryNot, true
	default:
		return ast.UnaryNeg, false
	}
}
