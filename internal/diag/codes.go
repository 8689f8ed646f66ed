package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexIntOverflow              Code = 1004

	// Синтаксические
	SynInfo                Code = 2000
	SynUnexpectedToken     Code = 2001
	SynUnclosedParen       Code = 2006
	SynUnclosedBrace       Code = 2007
	SynExpectSemicolon     Code = 2012
	SynExpectAssign        Code = 2013
	SynExpectColon         Code = 2014
	SynExpectFunct         Code = 2101
	SynExpectIdentifier    Code = 2102
	SynExpectRet           Code = 2103
	SynExpectType          Code = 2202
	SynExpectExpression    Code = 2203
	SynInvalidAssignTarget Code = 2301
	SynNestingTooDeep      Code = 2302

	// Ввод/вывод
	IOLoadFileError Code = 4001

	// Проект
	ProjInfo              Code = 5000
	ProjBadManifest       Code = 5001
	ProjToolchainMismatch Code = 5002
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string literal",
	LexUnterminatedBlockComment: "Unterminated block comment",
	LexIntOverflow:              "Integer literal overflows int64",
	SynInfo:                     "Syntax information",
	SynUnexpectedToken:          "Unexpected token",
	SynUnclosedParen:            "Unclosed parenthesis",
	SynUnclosedBrace:            "Unclosed brace",
	SynExpectSemicolon:          "Expected semicolon",
	SynExpectAssign:             "Expected '='",
	SynExpectColon:              "Expected ':'",
	SynExpectFunct:              "Expected function declaration",
	SynExpectIdentifier:         "Expected identifier",
	SynExpectRet:                "Expected 'ret'",
	SynExpectType:               "Expected type name",
	SynExpectExpression:         "Expected expression",
	SynInvalidAssignTarget:      "Invalid assignment target",
	SynNestingTooDeep:           "Expression nesting too deep",
	IOLoadFileError:             "I/O load file error",
	ProjInfo:                    "Project information",
	ProjBadManifest:             "Invalid lunar.toml",
	ProjToolchainMismatch:       "Toolchain version mismatch",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
