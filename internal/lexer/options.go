package lexer

import (
	"lunar/internal/diag"
	"lunar/internal/source"
)

type Options struct {
	Reporter diag.Reporter // может быть nil - тогда ошибки только отмечаются флагом
}

// errLex помечает лексер как ошибочный и отправляет диагностику.
// Лексинг продолжается в любом случае.
func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	lx.hadError = true
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, diag.SevError, sp, msg, nil)
	}
}
