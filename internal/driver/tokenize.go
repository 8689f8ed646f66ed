package driver

import (
	"context"
	"fmt"
	"strconv"

	"lunar/internal/diag"
	"lunar/internal/lexer"
	"lunar/internal/observ"
	"lunar/internal/source"
	"lunar/internal/token"
	"lunar/internal/trace"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token // включая завершающий EOF
	Bag     *diag.Bag
	Timing  observ.Report
}

// Tokenize loads path and lexes it to EOF.
func Tokenize(ctx context.Context, path string, opts Options) (*TokenizeResult, error) {
	timer := observ.NewTimer()
	fs := source.NewFileSet()
	fileID, err := loadFile(ctx, fs, path, timer)
	if err != nil {
		return nil, err
	}
	return tokenizeLoaded(ctx, fs, fileID, opts, timer), nil
}

// TokenizeSource lexes an in-memory buffer registered under name.
func TokenizeSource(ctx context.Context, name string, src []byte, opts Options) *TokenizeResult {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual(name, src)
	return tokenizeLoaded(ctx, fs, fileID, opts, observ.NewTimer())
}

func tokenizeLoaded(ctx context.Context, fs *source.FileSet, fileID source.FileID, opts Options, timer *observ.Timer) *TokenizeResult {
	file := fs.Get(fileID)
	bag := opts.newBag()

	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "lex", 0)
	idx := timer.Begin("lex")
	lx := lexer.New(file, lexer.Options{Reporter: diag.NewDedupReporter(diag.BagReporter{Bag: bag})})
	tokens := lx.All()
	count := strconv.Itoa(len(tokens))
	timer.End(idx, count+" tokens")
	span.WithExtra("tokens", count).End(file.Path)

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
		Timing:  timer.Report(),
	}
}

// loadFile wraps FileSet.Load with the "load" trace span and timer phase.
func loadFile(ctx context.Context, fs *source.FileSet, path string, timer *observ.Timer) (source.FileID, error) {
	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "load", 0)
	idx := timer.Begin("load")
	fileID, err := fs.Load(path)
	if err != nil {
		timer.End(idx, "failed")
		span.End("failed")
		return 0, fmt.Errorf("load %s: %w", path, err)
	}
	size := strconv.Itoa(len(fs.Get(fileID).Content))
	timer.End(idx, size+" bytes")
	span.WithExtra("bytes", size).End(path)
	return fileID, nil
}
