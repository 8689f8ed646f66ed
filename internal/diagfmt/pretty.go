package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"lunar/internal/diag"
	"lunar/internal/source"
)

type palette struct {
	err, warn, info *color.Color
	path, gutter    *color.Color
	caret, note     *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		err:    mk(color.FgRed, color.Bold),
		warn:   mk(color.FgYellow, color.Bold),
		info:   mk(color.FgCyan, color.Bold),
		path:   mk(color.Bold),
		gutter: mk(color.FgBlue),
		caret:  mk(color.FgGreen, color.Bold),
		note:   mk(color.FgCyan),
	}
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем строку исходника с кареткой ^ под колонкой, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	for _, d := range bag.Items() {
		loc := formatLocation(d.Primary, opts.PathMode, opts.BaseDir)
		fmt.Fprintf(w, "%s: %s %s: %s\n",
			pal.path.Sprint(loc),
			pal.severity(d.Severity).Sprint(d.Severity),
			pal.severity(d.Severity).Sprint(d.Code.ID()),
			d.Message,
		)
		writeSnippet(w, fs, d.Primary, int(opts.Context), pal)

		if opts.ShowNotes {
			for _, n := range d.Notes {
				fmt.Fprintf(w, "  %s %s: %s\n",
					pal.note.Sprint("note:"),
					formatLocation(n.Span, opts.PathMode, opts.BaseDir),
					n.Msg,
				)
			}
		}
	}
	if dropped := bag.Dropped(); dropped > 0 {
		fmt.Fprintf(w, "... and %d more diagnostic(s) not shown\n", dropped)
	}
}

// Classic печатает диагностики одной строкой: "path:line:col: error: msg".
func Classic(w io.Writer, bag *diag.Bag) {
	for _, d := range bag.Items() {
		fmt.Fprintf(w, "%s: %s: %s\n", d.Primary, strings.ToLower(d.Severity.String()), d.Message)
	}
}

func formatLocation(sp source.Span, mode PathMode, baseDir string) string {
	path := sp.Path
	if path == "" {
		path = "<stdin>"
	} else {
		path = source.FormatPath(path, mode.String(), baseDir)
	}
	return fmt.Sprintf("%s:%d:%d", path, sp.Line, sp.Col)
}

// writeSnippet: контекстные строки, строка с ошибкой и каретка.
func writeSnippet(w io.Writer, fs *source.FileSet, sp source.Span, context int, pal palette) {
	if fs == nil || sp.IsZero() {
		return
	}
	file, ok := fs.GetByPath(sp.Path)
	if !ok {
		return
	}

	first := int(sp.Line) - context
	if first < 1 {
		first = 1
	}
	gutterWidth := len(fmt.Sprint(sp.Line))
	for ln := first; ln <= int(sp.Line); ln++ {
		line := file.GetLine(uint32(ln)) // #nosec G115 -- ln <= sp.Line
		fmt.Fprintf(w, " %s %s\n", pal.gutter.Sprintf("%*d |", gutterWidth, ln), line)
	}

	line := file.GetLine(sp.Line)
	fmt.Fprintf(w, " %s %s%s\n",
		pal.gutter.Sprintf("%*s |", gutterWidth, ""),
		caretPadding(line, int(sp.Col)),
		pal.caret.Sprint("^"),
	)
}

// caretPadding строит отступ до колонки col (в рунах): табы сохраняются,
// широкие символы занимают две ячейки.
func caretPadding(line string, col int) string {
	var sb strings.Builder
	n := 0
	for _, r := range line {
		if n >= col-1 {
			break
		}
		if r == '\t' {
			sb.WriteByte('\t')
		} else {
			sb.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
		}
		n++
	}
	if n < col-1 {
		sb.WriteString(strings.Repeat(" ", col-1-n))
	}
	return sb.String()
}
