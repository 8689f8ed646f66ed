package driver

import (
	"fmt"

	"fortio.org/safecast"

	"lunar/internal/ast"
	"lunar/internal/diag"
	"lunar/internal/parser"
)

// Options: общие настройки фронтенда для одного запуска CLI.
type Options struct {
	MaxDiagnostics int    // cap of the per-file diag.Bag; 0 = unlimited
	MaxDepth       int    // expression nesting limit; 0 = parser.DefaultMaxDepth
	MaxNodes       uint32 // arena budget per file; 0 = unlimited
	Jobs           int    // ParseDir workers; 0 = GOMAXPROCS
	Progress       ProgressSink
}

func (o Options) newBag() *diag.Bag {
	return diag.NewBag(o.MaxDiagnostics)
}

func (o Options) parserOptions(reporter diag.Reporter) (parser.Options, error) {
	maxErrors, err := safecast.Conv[uint](max(o.MaxDiagnostics, 0))
	if err != nil {
		return parser.Options{}, fmt.Errorf("max diagnostics: %w", err)
	}
	return parser.Options{
		MaxErrors: maxErrors,
		MaxDepth:  o.MaxDepth,
		Reporter:  reporter,
	}, nil
}

func (o Options) hints() ast.Hints {
	return ast.Hints{MaxNodes: o.MaxNodes}
}

func (o Options) emit(ev Event) {
	if o.Progress != nil {
		o.Progress.OnEvent(ev)
	}
}
