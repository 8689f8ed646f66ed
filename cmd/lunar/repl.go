package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"lunar/internal/driver"
	"lunar/internal/token"
	"lunar/internal/trace"
)

const replName = "<repl>"

var (
	replPromptColor = color.New(color.FgGreen)
	replHintColor   = color.New(color.FgHiBlack)
)

func newReplCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Interactive parser shell",
		Long:  `repl reads lunar snippets, parses each balanced snippet as a unit and prints its tree`,
		Args:  cobra.NoArgs,
		RunE:  runRepl,
	}
	cmd.Flags().String("format", "tree", "AST output format (pretty|tree|json)")
	cmd.Flags().String("history", "", "history file (default ~/.lunar_history)")
	return cmd
}

// readReplFormat accepts the AST formats that are safe to print to a terminal.
func readReplFormat(value string) (string, error) {
	format := strings.ToLower(strings.TrimSpace(value))
	switch format {
	case "pretty", "tree", "json":
		return format, nil
	default:
		return "", fmt.Errorf("unknown format %q (pretty|tree|json)", value)
	}
}

// replSession: состояние REPL без привязки к терминалу, чтобы его можно было тестировать.
type replSession struct {
	cfg    *cliConfig
	format string
	ring   *trace.RingTracer
	buf    strings.Builder
	depth  int
	out    io.Writer
	errOut io.Writer
}

func newReplSession(cfg *cliConfig, format string, out, errOut io.Writer) *replSession {
	return &replSession{
		cfg:    cfg,
		format: format,
		ring:   trace.NewRingTracer(1024, trace.LevelDebug),
		out:    out,
		errOut: errOut,
	}
}

// pending reports whether a multi-line snippet is being accumulated.
func (s *replSession) pending() bool {
	return s.depth > 0
}

func (s *replSession) reset() {
	s.buf.Reset()
	s.depth = 0
}

// feed appends one input line. It returns the snippet once braces balance.
func (s *replSession) feed(line string) (string, bool) {
	s.buf.WriteString(line)
	s.buf.WriteByte('\n')
	s.depth = braceDepth(s.buf.String())
	if s.depth > 0 {
		return "", false
	}
	src := s.buf.String()
	s.reset()
	return src, true
}

// braceDepth counts unmatched '{' using the lexer, so braces inside
// strings and comments do not count.
func braceDepth(src string) int {
	res := driver.TokenizeSource(context.Background(), replName, []byte(src), driver.Options{MaxDiagnostics: 1})
	depth := 0
	for _, tok := range res.Tokens {
		switch tok.Kind {
		case token.LBrace:
			depth++
		case token.RBrace:
			depth--
		}
	}
	return depth
}

// command handles ':'-prefixed meta commands; it returns false for "quit".
func (s *replSession) command(line string) bool {
	fields := strings.Fields(line)
	switch fields[0] {
	case ":quit", ":q":
		return false
	case ":trace":
		if err := s.ring.Dump(s.out, trace.FormatText); err != nil {
			fmt.Fprintf(s.errOut, "trace: %v\n", err)
		}
	case ":format":
		if len(fields) != 2 {
			fmt.Fprintf(s.out, "format: %s\n", s.format)
			break
		}
		format, err := readReplFormat(fields[1])
		if err != nil {
			fmt.Fprintln(s.errOut, err)
			break
		}
		s.format = format
	case ":help":
		fmt.Fprintln(s.out, ":trace           show trace of the last snippet")
		fmt.Fprintln(s.out, ":format [fmt]    show or set AST format (pretty|tree|json)")
		fmt.Fprintln(s.out, ":quit            leave (also 'exit' or Ctrl+D)")
	default:
		fmt.Fprintf(s.errOut, "unknown command %s (try :help)\n", fields[0])
	}
	return true
}

// eval parses one balanced snippet and prints its tree and diagnostics.
func (s *replSession) eval(ctx context.Context, src string) {
	if strings.TrimSpace(src) == "" {
		return
	}
	s.ring.Reset()
	ctx = trace.WithTracer(ctx, s.ring)

	result, err := driver.ParseSource(ctx, replName, []byte(src), s.cfg.driver)
	if result == nil {
		fmt.Fprintf(s.errOut, "error: %v\n", err)
		return
	}
	if rerr := reportDiagnostics(s.errOut, result.Bag, result.FileSet, s.cfg); rerr != nil {
		fmt.Fprintf(s.errOut, "error: %v\n", rerr)
	}
	if err != nil {
		fmt.Fprintf(s.errOut, "error: %v\n", err)
		return
	}
	if werr := writeAST(s.out, s.format, result.Builder, result.Program); werr != nil {
		fmt.Fprintf(s.errOut, "error: %v\n", werr)
	}
}

func runRepl(cmd *cobra.Command, _ []string) error {
	cfg, err := loadCLIConfig(cmd, "")
	if err != nil {
		return err
	}
	formatValue, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format, err := readReplFormat(formatValue)
	if err != nil {
		return usageErrorf("%v", err)
	}
	historyFile, err := cmd.Flags().GetString("history")
	if err != nil {
		return fmt.Errorf("failed to get history flag: %w", err)
	}
	if historyFile == "" {
		if home, herr := os.UserHomeDir(); herr == nil {
			historyFile = filepath.Join(home, ".lunar_history")
		}
	}

	prompt := replPromptColor.Sprint("lunar> ")
	rl, err := readline.NewEx(&readline.Config{
		Prompt:            prompt,
		HistoryFile:       historyFile,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		return failure(fmt.Errorf("readline init failed: %w", err))
	}
	defer rl.Close()

	if !cfg.quiet {
		fmt.Fprintln(rl.Stdout(), replHintColor.Sprint("lunar repl (:help for commands, 'exit' or Ctrl+D to quit)"))
	}

	session := newReplSession(cfg, format, rl.Stdout(), rl.Stderr())
	for {
		if session.pending() {
			rl.SetPrompt(replHintColor.Sprint("...    "))
		} else {
			rl.SetPrompt(prompt)
		}

		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				if session.pending() {
					session.reset()
					continue
				}
				fmt.Fprintln(rl.Stdout(), replHintColor.Sprint("(use 'exit' or Ctrl+D to quit)"))
				continue
			}
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(rl.Stdout())
				return nil
			}
			return failure(err)
		}

		if !session.pending() {
			trimmed := strings.TrimSpace(line)
			if trimmed == "exit" {
				return nil
			}
			if strings.HasPrefix(trimmed, ":") {
				if !session.command(trimmed) {
					return nil
				}
				continue
			}
		}

		if src, ok := session.feed(line); ok {
			session.eval(cmd.Context(), src)
		}
	}
}
