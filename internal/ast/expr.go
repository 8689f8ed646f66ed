package ast

import (
	"lunar/internal/source"
)

type ExprKind uint8

const (
	ExprInt ExprKind = iota
	ExprString
	ExprName
	ExprBool
	ExprUnary
	ExprBinary
	ExprAssign
	ExprCall
)

func (k ExprKind) String() string {
	switch k {
	case ExprInt:
		return "Int"
	case ExprString:
		return "String"
	case ExprName:
		return "Name"
	case ExprBool:
		return "Bool"
	case ExprUnary:
		return "Unary"
	case ExprBinary:
		return "Binary"
	case ExprAssign:
		return "Assign"
	case ExprCall:
		return "Call"
	}
	return "Expr(?)"
}

// Expr is the tagged node; Payload indexes the per-kind arena picked by Kind.
// Span is the node's first token (leftmost operand for infix forms).
type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

type ExprBinaryOp uint8

const (
	OpAdd ExprBinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpEq
	OpNotEq
	OpLess
	OpLessEq
	OpGreater
	OpGreaterEq
)

func (op ExprBinaryOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpEq:
		return "=="
	case OpNotEq:
		return "!="
	case OpLess:
		return "<"
	case OpLessEq:
		return "<="
	case OpGreater:
		return ">"
	case OpGreaterEq:
		return ">="
	}
	return "?"
}

type ExprUnaryOp uint8

const (
	UnaryNeg ExprUnaryOp = iota // -x
	UnaryNot                    // !x
)

func (op ExprUnaryOp) String() string {
	switch op {
	case UnaryNeg:
		return "-"
	case UnaryNot:
		return "!"
	}
	return "?"
}

// ExprLiteralData holds Int, String and Bool payloads; Kind says which field is live.
type ExprLiteralData struct {
	Int  int64
	Str  source.StringID // raw contents, escapes not decoded
	Bool bool
}

type ExprNameData struct {
	Name source.StringID
}

type ExprUnaryData struct {
	Op      ExprUnaryOp
	Operand ExprID
}

type ExprBinaryData struct {
	Op    ExprBinaryOp
	Left  ExprID
	Right ExprID
}

// ExprAssignData: Target is NoStringID when the left side was not a bare
// name; the diagnostic has already been reported in that case.
type ExprAssignData struct {
	Target     source.StringID
	TargetSpan source.Span
	Value      ExprID
}

func (d *ExprAssignData) HasTarget() bool {
	return d.Target != source.NoStringID
}

type ExprCallData struct {
	Callee ExprID
	Args   []ExprID
}
