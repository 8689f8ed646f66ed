package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"lunar/internal/diagfmt"
	"lunar/internal/driver"
)

func newTokenizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize [flags] file.lr",
		Short: "Tokenize a lunar source file",
		Long:  `Tokenize breaks down a lunar source file into its constituent tokens`,
		RunE:  runTokenize,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json|msgpack)")
	return cmd
}

func runTokenize(cmd *cobra.Command, args []string) error {
	path, err := checkSourceArg(args, false)
	if err != nil {
		return err
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format = strings.ToLower(format)
	switch format {
	case "pretty", "json", "msgpack":
	default:
		return usageErrorf("unknown format: %s", format)
	}
	cfg, err := loadCLIConfig(cmd, path)
	if err != nil {
		return err
	}

	result, err := driver.Tokenize(cmd.Context(), path, cfg.driver)
	if err != nil {
		return readFailure(path, err)
	}

	// диагностика в stderr, токены в stdout
	if err := reportDiagnostics(cmd.ErrOrStderr(), result.Bag, result.FileSet, cfg); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		err = diagfmt.FormatTokensJSON(out, result.Tokens)
	case "msgpack":
		err = diagfmt.FormatTokensMsgpack(out, result.Tokens)
	default:
		err = diagfmt.FormatTokensPretty(out, result.Tokens)
	}
	if err != nil {
		return err
	}
	printTimings(cmd.ErrOrStderr(), cfg, result.Timing)
	if result.Bag.HasErrors() {
		return errDiagnostics
	}
	return nil
}
