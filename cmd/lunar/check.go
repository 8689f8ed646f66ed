package main

import (
	"github.com/spf13/cobra"

	"lunar/internal/driver"
)

// runCheck handles `lunar <file.lr>`: parse one unit and report diagnostics.
func runCheck(cmd *cobra.Command, args []string) error {
	path, err := checkSourceArg(args, false)
	if err != nil {
		return err
	}
	cfg, err := loadCLIConfig(cmd, path)
	if err != nil {
		return err
	}

	result, err := driver.Parse(cmd.Context(), path, cfg.driver)
	if result == nil && err != nil {
		return readFailure(path, err)
	}
	if rerr := reportDiagnostics(cmd.ErrOrStderr(), result.Bag, result.FileSet, cfg); rerr != nil {
		return rerr
	}
	printTimings(cmd.ErrOrStderr(), cfg, result.Timing)
	if err != nil {
		return failure(err)
	}
	if result.Failed() {
		return errDiagnostics
	}
	return nil
}
