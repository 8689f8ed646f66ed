package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid stands in for a byte the lexer could not classify.
	Invalid Kind = iota
	// EOF marks the end of the source input. Returned forever once reached.
	EOF

	Ident
	IntLit
	StringLit

	KwFunct  // funct
	KwRet    // ret
	KwLet    // let
	KwMut    // mut
	KwIf     // if
	KwElse   // else
	KwWhile  // while
	KwReturn // return
	KwTrue   // true
	KwFalse  // false

	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }
	LBracket  // [
	RBracket  // ]
	Comma     // ,
	Semicolon // ;
	Colon     // :
	Dot       // .
	Plus      // +
	Minus     // -
	Star      // *
	Slash     // /
	Assign    // =
	Bang      // !
	Lt        // <
	Gt        // >
	EqEq      // ==
	BangEq    // !=
	LtEq      // <=
	GtEq      // >=
	Arrow     // ->

	kindCount
)

var kindNames = [kindCount]string{
	Invalid:   "INVALID",
	EOF:       "EOF",
	Ident:     "IDENT",
	IntLit:    "INT",
	StringLit: "STRING",
	KwFunct:   "KW_FUNCT",
	KwRet:     "KW_RET",
	KwLet:     "KW_LET",
	KwMut:     "KW_MUT",
	KwIf:      "KW_IF",
	KwElse:    "KW_ELSE",
	KwWhile:   "KW_WHILE",
	KwReturn:  "KW_RETURN",
	KwTrue:    "KW_TRUE",
	KwFalse:   "KW_FALSE",
	LParen:    "(",
	RParen:    ")",
	LBrace:    "{",
	RBrace:    "}",
	LBracket:  "[",
	RBracket:  "]",
	Comma:     ",",
	Semicolon: ";",
	Colon:     ":",
	Dot:       ".",
	Plus:      "+",
	Minus:     "-",
	Star:      "*",
	Slash:     "/",
	Assign:    "=",
	Bang:      "!",
	Lt:        "<",
	Gt:        ">",
	EqEq:      "==",
	BangEq:    "!=",
	LtEq:      "<=",
	GtEq:      ">=",
	Arrow:     "->",
}

// String returns the dump name of the kind: upper-case tags for
// identifiers, literals and keywords, the lexeme itself for punctuation.
func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsKeyword reports whether the kind is a reserved word.
func (k Kind) IsKeyword() bool {
	return k >= KwFunct && k <= KwFalse
}

// IsPunctOrOp reports whether the kind is punctuation or an operator.
func (k Kind) IsPunctOrOp() bool {
	return k >= LParen && k < kindCount
}
