package driver

import (
	"context"
	"fmt"
	"strconv"

	"lunar/internal/ast"
	"lunar/internal/diag"
	"lunar/internal/lexer"
	"lunar/internal/observ"
	"lunar/internal/parser"
	"lunar/internal/source"
	"lunar/internal/trace"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Builder *ast.Builder
	Program ast.ProgramID
	Parse   parser.Result
	Bag     *diag.Bag
	Timing  observ.Report
}

// Failed reports whether the unit must be treated as a failed compilation:
// any lexical or syntactic diagnostic, including ones dropped by the cap.
func (r *ParseResult) Failed() bool {
	if r == nil {
		return true
	}
	return r.Parse.HadErrors() || r.Bag.HasErrors()
}

// Parse loads path and parses it as one compilation unit.
// The error is non-nil only for read failures, arena exhaustion
// or cancellation; syntax problems end up in Bag.
func Parse(ctx context.Context, path string, opts Options) (*ParseResult, error) {
	timer := observ.NewTimer()
	fs := source.NewFileSet()
	fileID, err := loadFile(ctx, fs, path, timer)
	if err != nil {
		return nil, err
	}
	return parseLoaded(ctx, fs, fileID, opts, timer)
}

// ParseSource parses an in-memory buffer (REPL, tests).
func ParseSource(ctx context.Context, name string, src []byte, opts Options) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual(name, src)
	return parseLoaded(ctx, fs, fileID, opts, observ.NewTimer())
}

func parseLoaded(ctx context.Context, fs *source.FileSet, fileID source.FileID, opts Options, timer *observ.Timer) (*ParseResult, error) {
	file := fs.Get(fileID)
	bag := opts.newBag()
	// лексер и парсер пишут в один мешок; дубликаты по span+message отсекаются
	reporter := diag.NewDedupReporter(diag.BagReporter{Bag: bag})

	popts, err := opts.parserOptions(reporter)
	if err != nil {
		return nil, err
	}
	builder := ast.NewBuilder(opts.hints(), nil)
	lx := lexer.New(file, lexer.Options{Reporter: reporter})

	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "parse", 0)
	idx := timer.Begin("parse")
	res, perr := parser.ParseFile(ctx, lx, builder, popts)

	fns := 0
	if prog := builder.Programs.Get(res.Program); prog != nil {
		fns = len(prog.Fns)
	}
	note := strconv.Itoa(fns) + " fns"
	if res.HadErrors() {
		note += ", errors"
	}
	timer.End(idx, note)
	span.WithExtra("fns", strconv.Itoa(fns)).
		WithExtra("nodes", strconv.FormatUint(uint64(builder.NodesUsed()), 10)).
		End(file.Path)

	out := &ParseResult{
		FileSet: fs,
		File:    file,
		Builder: builder,
		Program: res.Program,
		Parse:   res,
		Bag:     bag,
		Timing:  timer.Report(),
	}
	if perr != nil {
		return out, fmt.Errorf("parse %s: %w", file.Path, perr)
	}
	return out, nil
}
