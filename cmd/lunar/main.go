package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"lunar/internal/version"
)

// cliApp owns one command tree and the tracer/profiler cleanups of its run.
type cliApp struct {
	root     *cobra.Command
	cleanups []func()
}

// newApp собирает дерево команд; отдельная функция нужна тестам,
// чтобы каждый прогон получал чистые флаги.
func newApp() *cliApp {
	app := &cliApp{}
	rootCmd := &cobra.Command{
		Use:   "lunar <file.lr>",
		Short: "lunar language front end",
		Long:  `lunar tokenizes and parses .lr sources and reports diagnostics`,
		Args:  cobra.ArbitraryArgs,
		RunE:  runCheck,

		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.Version = version.Version

	rootCmd.AddCommand(newTokenizeCmd())
	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newReplCmd())
	rootCmd.AddCommand(newVersionCmd())

	// Глобальные флаги
	pf := rootCmd.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "show timing information")
	pf.Int("max-diagnostics", 100, "maximum number of diagnostics to keep per file (0 = unlimited)")
	pf.Int("max-depth", 0, "maximum expression nesting depth (0 = default)")
	pf.Uint32("max-nodes", 0, "maximum AST arena slots per file (0 = unlimited)")
	pf.String("diag-format", "pretty", "diagnostics format (pretty|classic|short|json)")
	pf.String("trace", "", "trace output file (- for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-format", "auto", "trace format (auto|text|ndjson)")
	pf.String("cpu-profile", "", "write CPU profile to file")
	pf.String("mem-profile", "", "write heap profile to file on exit")
	pf.String("runtime-trace", "", "write Go runtime trace to file")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageErrorf("%v", err)
	})

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		stopProfiling, err := setupProfiling(cmd)
		if err != nil {
			return err
		}
		app.cleanups = append(app.cleanups, stopProfiling)
		stopTracing, err := setupTracing(cmd)
		if stopTracing != nil {
			app.cleanups = append(app.cleanups, stopTracing)
		}
		return err
	}
	app.root = rootCmd
	return app
}

// main runs the command tree and maps the returned error to an exit code:
// 0 clean, 1 read failure or diagnostics, 2 usage error.
func main() {
	os.Exit(newApp().execute(os.Args[1:], os.Stderr))
}

func (a *cliApp) execute(args []string, stderr io.Writer) int {
	a.root.SetArgs(args)
	err := a.root.Execute()
	// PostRun не вызывается при ошибке RunE, поэтому трейс и профили закрываем здесь
	for i := len(a.cleanups) - 1; i >= 0; i-- {
		a.cleanups[i]()
	}
	a.cleanups = nil
	if err == nil {
		return 0
	}
	var ee *exitError
	if errors.As(err, &ee) {
		if ee.err != nil {
			fmt.Fprintln(stderr, ee.err)
		}
		return ee.code
	}
	// ошибки cobra до RunE (неизвестная команда и т.п.) считаем ошибками использования
	fmt.Fprintln(stderr, err)
	if isCobraUsageError(err) {
		return exitUsage
	}
	return exitFailure
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
