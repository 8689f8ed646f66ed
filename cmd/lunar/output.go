package main

import (
	"fmt"
	"io"

	"lunar/internal/diag"
	"lunar/internal/diagfmt"
	"lunar/internal/observ"
	"lunar/internal/source"
)

// reportDiagnostics печатает содержимое bag в выбранном формате.
func reportDiagnostics(w io.Writer, bag *diag.Bag, fs *source.FileSet, cfg *cliConfig) error {
	if bag == nil || (bag.Len() == 0 && bag.Dropped() == 0) {
		return nil
	}
	bag.Sort()
	switch cfg.diagFormat {
	case "classic":
		diagfmt.Classic(w, bag)
	case "short":
		if _, err := fmt.Fprintln(w, diag.FormatShortDiagnostics(bag.Items(), true)); err != nil {
			return err
		}
	case "json":
		return diagfmt.JSON(w, bag, diagfmt.JSONOpts{IncludeNotes: true})
	default:
		diagfmt.Pretty(w, bag, fs, cfg.prettyOpts())
	}
	return nil
}

func printTimings(w io.Writer, cfg *cliConfig, report observ.Report) {
	if !cfg.timings || len(report.Phases) == 0 {
		return
	}
	fmt.Fprint(w, report.Summary())
}
