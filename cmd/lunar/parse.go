package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"lunar/internal/ast"
	"lunar/internal/diagfmt"
	"lunar/internal/driver"
	"lunar/internal/ui"
)

type parseFlags struct {
	format string
	jobs   int
	watch  bool
	ui     uiMode
}

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [flags] <file.lr|directory>",
		Short: "Parse a lunar source file or directory and output AST",
		Long:  `Parse analyzes a lunar source file or all *.lr files in a directory and outputs their syntax trees`,
		RunE:  runParse,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|tree|json|msgpack)")
	cmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	cmd.Flags().Bool("watch", false, "re-parse on file changes")
	cmd.Flags().String("ui", "off", "progress UI for directories (auto|on|off)")
	return cmd
}

func readParseFlags(cmd *cobra.Command) (parseFlags, error) {
	var pf parseFlags
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return pf, fmt.Errorf("failed to get format flag: %w", err)
	}
	pf.format = strings.ToLower(format)
	switch pf.format {
	case "pretty", "tree", "json", "msgpack":
	default:
		return pf, usageErrorf("unknown format: %s", format)
	}
	if pf.jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
		return pf, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if pf.watch, err = cmd.Flags().GetBool("watch"); err != nil {
		return pf, fmt.Errorf("failed to get watch flag: %w", err)
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return pf, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if pf.ui, err = readUIMode(uiValue); err != nil {
		return pf, usageErrorf("%v", err)
	}
	return pf, nil
}

func runParse(cmd *cobra.Command, args []string) error {
	target, err := checkSourceArg(args, true)
	if err != nil {
		return err
	}
	flags, err := readParseFlags(cmd)
	if err != nil {
		return err
	}
	cfg, err := loadCLIConfig(cmd, target)
	if err != nil {
		return err
	}
	cfg.driver.Jobs = flags.jobs

	dir := isDir(target)
	run := func(ctx context.Context) error {
		if dir {
			return parseDirectory(ctx, cmd, target, flags, cfg)
		}
		return parseSingle(ctx, cmd, target, flags, cfg)
	}

	firstErr := run(cmd.Context())
	if !flags.watch {
		return firstErr
	}
	if firstErr != nil && !errors.Is(firstErr, errDiagnostics) {
		return firstErr
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	if !cfg.quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "watching %s (ctrl+c to stop)\n", target)
	}
	err = driver.Watch(ctx, target, driver.DefaultDebounce, func(path string) {
		if !cfg.quiet {
			fmt.Fprintf(cmd.ErrOrStderr(), "== change: %s ==\n", path)
		}
		// ошибки разбора уже напечатаны; продолжаем следить
		if err := parseSingle(ctx, cmd, path, flags, cfg); err != nil && !errors.Is(err, errDiagnostics) {
			fmt.Fprintln(cmd.ErrOrStderr(), err)
		}
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func parseSingle(ctx context.Context, cmd *cobra.Command, path string, flags parseFlags, cfg *cliConfig) error {
	result, err := driver.Parse(ctx, path, cfg.driver)
	if result == nil && err != nil {
		return readFailure(path, err)
	}
	if rerr := reportDiagnostics(cmd.ErrOrStderr(), result.Bag, result.FileSet, cfg); rerr != nil {
		return rerr
	}
	if err != nil {
		return failure(err)
	}
	if werr := writeAST(cmd.OutOrStdout(), flags.format, result.Builder, result.Program); werr != nil {
		return werr
	}
	printTimings(cmd.ErrOrStderr(), cfg, result.Timing)
	if result.Failed() {
		return errDiagnostics
	}
	return nil
}

func parseDirectory(ctx context.Context, cmd *cobra.Command, dir string, flags parseFlags, cfg *cliConfig) error {
	opts := cfg.driver
	finishUI := func() {}
	if shouldUseTUI(flags.ui, cmd.OutOrStdout()) {
		files, err := driver.ListSourceFiles(dir)
		if err != nil {
			return failure(err)
		}
		// буфер на все события ParseDir, чтобы воркеры не ждали UI
		events := make(chan driver.Event, len(files)*3+1)
		opts.Progress = driver.ChannelSink{Ch: events}
		uiDone := make(chan error, 1)
		go func() {
			uiDone <- ui.Run("parsing "+dir, dir, files, events)
		}()
		finishUI = func() {
			close(events)
			if err := <-uiDone; err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "ui: %v\n", err)
			}
		}
	}

	fileSet, results, err := driver.ParseDir(ctx, dir, opts)
	finishUI()
	if err != nil {
		return failure(err)
	}

	failed := false
	out := cmd.OutOrStdout()
	for idx, r := range results {
		if rerr := reportDiagnostics(cmd.ErrOrStderr(), r.Bag, fileSet, cfg); rerr != nil {
			return rerr
		}
		if r.Err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", r.Path, r.Err)
		}
		if r.Failed() {
			failed = true
		}
		if r.Result == nil {
			continue
		}
		if !cfg.quiet && (flags.format == "pretty" || flags.format == "tree") {
			if idx > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "== %s ==\n", r.Path)
		}
		if err := writeAST(out, flags.format, r.Result.Builder, r.Result.Program); err != nil {
			return err
		}
	}
	printTimings(cmd.ErrOrStderr(), cfg, driver.MergeTimings(results))
	if failed {
		return errDiagnostics
	}
	return nil
}

func writeAST(w io.Writer, format string, builder *ast.Builder, prog ast.ProgramID) error {
	switch format {
	case "tree":
		return diagfmt.FormatASTTree(w, builder, prog)
	case "json":
		return diagfmt.FormatASTJSON(w, builder, prog)
	case "msgpack":
		return diagfmt.FormatASTMsgpack(w, builder, prog)
	default:
		return diagfmt.FormatASTPretty(w, builder, prog)
	}
}
