package parser

import (
	"context"

	"lunar/internal/ast"
	"lunar/internal/diag"
	"lunar/internal/lexer"
	"lunar/internal/token"
	"lunar/internal/trace"
)

// DefaultMaxDepth ограничивает вложенность выражений, если Options.MaxDepth не задан.
const DefaultMaxDepth = 256

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	MaxDepth      int
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	Program   ast.ProgramID
	Errors    uint // синтаксические ошибки, включая подавленные лимитом
	LexFailed bool
}

// HadErrors reports whether the lexer or the parser produced any diagnostic.
func (r Result) HadErrors() bool {
	return r.Errors > 0 || r.LexFailed
}

// Parser: состояние парсера на один файл
type Parser struct {
	ctx    context.Context
	lx     *lexer.Lexer
	arenas *ast.Builder
	opts   Options
	tracer trace.Tracer

	errors     uint
	depth      int
	tooDeep    bool // сработал лимит вложенности, блок синхронизируется до ';' / '}'
	recovering bool // panic mode: диагностики подавляются до ';', '}' или 'funct'
}

// ParseFile: входная точка для разбора одного файла.
// Возвращает ошибку только если арена исчерпана или ctx отменён;
// синтаксические ошибки уходят в opts.Reporter и в Result.Errors.
func ParseFile(ctx context.Context, lx *lexer.Lexer, arenas *ast.Builder, opts Options) (Result, error) {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	p := Parser{
		ctx:    ctx,
		lx:     lx,
		arenas: arenas,
		opts:   opts,
		tracer: trace.FromContext(ctx),
	}

	prog := p.parseProgram()
	res := Result{
		Program:   prog,
		Errors:    p.errors,
		LexFailed: lx.HadError(),
	}
	if err := arenas.Err(); err != nil {
		return res, err
	}
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return res, err
		}
	}
	return res, nil
}

// aborted - дальнейший разбор бессмысленен (арена исчерпана или контекст отменён).
func (p *Parser) aborted() bool {
	if p.arenas.Err() != nil {
		return true
	}
	return p.ctx != nil && p.ctx.Err() != nil
}

// parseProgram - основной цикл верхнего уровня, parseFn до EOF.
func (p *Parser) parseProgram() ast.ProgramID {
	prog := p.arenas.NewProgram(p.peek().Span)
	for !p.at(token.EOF) && !p.aborted() {
		if !p.at(token.KwFunct) {
			p.report(diag.SynExpectFunct, p.peek().Span, "expected 'funct'")
			p.skip()
			continue
		}
		if fn := p.parseFn(); fn.IsValid() {
			p.arenas.PushFn(prog, fn)
		}
	}
	return prog
}
