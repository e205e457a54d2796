// Package diagfmt renders diagnostics and token dumps for the CLI.
package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"silica/internal/diag"
	"silica/internal/source"
)

// Pretty writes bag's diagnostics in a human-readable form. Callers sort the
// bag first. Each diagnostic prints as
//
//	<path>:<line>:<col>: <severity> <code>: <message>
//
// followed by the offending line with a caret underline and, with ShowNotes,
// the attached notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		writeDiagnostic(w, d, fs, opts)
	}
}

func writeDiagnostic(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	f := fs.Get(d.Primary.File)
	start, end := fs.Resolve(d.Primary)

	sev := d.Severity.String()
	code := d.Code.String()
	if opts.Color {
		sev = severityColor(d.Severity).Sprint(sev)
		code = color.New(color.Bold).Sprint(code)
	}
	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n", f.Path, start.Line, start.Col, sev, code, d.Message)

	writeContext(w, f, start, end, opts)

	if opts.ShowNotes {
		for _, n := range d.Notes {
			nStart, _ := fs.Resolve(n.Span)
			fmt.Fprintf(w, "  note: %s:%d:%d: %s\n", f.Path, nStart.Line, nStart.Col, n.Msg)
		}
	}
}

func writeContext(w io.Writer, f *source.File, start, end source.LineCol, opts PrettyOpts) {
	ctx := int(opts.Context)
	if ctx < 0 {
		ctx = 0
	}
	firstLine := start.Line
	if uint32(ctx) < firstLine {
		firstLine -= uint32(ctx)
	} else {
		firstLine = 1
	}

	for line := firstLine; line <= start.Line; line++ {
		text := f.GetLine(line)
		fmt.Fprintf(w, "%5d | %s\n", line, text)
		if line != start.Line {
			continue
		}
		marker := underline(text, start, end)
		if opts.Color {
			marker = color.New(color.FgRed, color.Bold).Sprint(marker)
		}
		fmt.Fprintf(w, "      | %s\n", marker)
	}
}

// underline builds the "^~~~" marker for the span's portion of its first
// line. Tabs in the prefix stay tabs so the marker lines up.
func underline(lineText string, start, end source.LineCol) string {
	col := int(start.Col)
	if col < 1 {
		col = 1
	}
	var b strings.Builder
	for i := 0; i < col-1 && i < len(lineText); i++ {
		if lineText[i] == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
	}
	b.WriteByte('^')
	width := 1
	if end.Line == start.Line && int(end.Col) > col+1 {
		width = int(end.Col) - col
	}
	limit := len(lineText) - col + 1
	if width > limit {
		width = limit
	}
	for i := 1; i < width; i++ {
		b.WriteByte('~')
	}
	return b.String()
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return color.New(color.FgRed, color.Bold)
	case diag.SevWarning:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgCyan)
	}
}
