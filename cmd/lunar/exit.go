package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"lunar/internal/driver"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

// exitError carries the process exit code up to main.
// A nil err means the message was already printed.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

func usageErrorf(format string, args ...any) error {
	return &exitError{code: exitUsage, err: fmt.Errorf(format, args...)}
}

func failure(err error) error {
	return &exitError{code: exitFailure, err: err}
}

// errDiagnostics: диагностики уже напечатаны, осталось вернуть код 1.
var errDiagnostics = &exitError{code: exitFailure}

func isCobraUsageError(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") ||
		strings.HasPrefix(msg, "unknown flag") ||
		strings.HasPrefix(msg, "unknown shorthand flag") ||
		strings.HasPrefix(msg, "accepts ") ||
		strings.HasPrefix(msg, "requires ")
}

// checkSourceArg validates the single positional argument of file commands.
func checkSourceArg(args []string, allowDir bool) (string, error) {
	if len(args) != 1 {
		return "", usageErrorf("usage: lunar <file%s>", driver.SourceExt)
	}
	path := args[0]
	if allowDir && isDir(path) {
		return path, nil
	}
	if filepath.Ext(path) != driver.SourceExt {
		return "", usageErrorf("%s: expected a %s file", path, driver.SourceExt)
	}
	return path, nil
}

// readFailure renders a load error the way the classic front end did.
func readFailure(path string, err error) error {
	return &exitError{code: exitFailure, err: fmt.Errorf("%s: error: failed to read file: %w", path, err)}
}
