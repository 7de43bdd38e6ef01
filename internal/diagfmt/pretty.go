package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"ember/internal/diag"
	"ember/internal/source"
)

const tabWidth = 4

type palette struct {
	err, warn, info, code, gutter, caret, note *color.Color
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
		code:   mk(color.Bold),
		gutter: mk(color.FgBlue),
		caret:  mk(color.FgRed, color.Bold),
		note:   mk(color.FgCyan),
	}
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
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
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//
// затем строку исходника с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for _, d := range bag.Items() {
		writeHeader(w, p, fs, d, opts)
		writeSnippet(w, p, fs, d.Primary, opts.Context)
		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			fmt.Fprintf(w, "  %s %s", p.note.Sprint("note:"), n.Msg)
			if loc := location(fs, n.Span, opts); loc != "" {
				fmt.Fprintf(w, " (%s)", loc)
			}
			fmt.Fprintln(w)
		}
	}
}

func location(fs *source.FileSet, sp source.Span, opts PrettyOpts) string {
	if fs == nil || int(sp.File) >= fs.Len() {
		return ""
	}
	f := fs.Get(sp.File)
	pos := f.Position(sp.Start)
	return fmt.Sprintf("%s:%d:%d", displayPath(f, opts.PathMode, opts.BaseDir), pos.Line, pos.Col)
}

func writeHeader(w io.Writer, p palette, fs *source.FileSet, d diag.Diagnostic, opts PrettyOpts) {
	if loc := location(fs, d.Primary, opts); loc != "" {
		fmt.Fprintf(w, "%s: ", loc)
	}
	fmt.Fprintf(w, "%s %s: %s\n", p.severity(d.Severity).Sprint(d.Severity), p.code.Sprint(d.Code.ID()), d.Message)
}

func writeSnippet(w io.Writer, p palette, fs *source.FileSet, sp source.Span, context int8) {
	if fs == nil || int(sp.File) >= fs.Len() {
		return
	}
	f := fs.Get(sp.File)
	pos := f.Position(sp.Start)
	first := pos.Line
	if context > 0 {
		if uint32(context) >= first {
			first = 1
		} else {
			first -= uint32(context)
		}
	}
	gutterWidth := len(fmt.Sprint(pos.Line))

	for ln := first; ln <= pos.Line; ln++ {
		text := expandTabs(f.GetLine(ln))
		fmt.Fprintf(w, " %s %s\n", p.gutter.Sprintf("%*d |", gutterWidth, ln), text)
	}

	line := f.GetLine(pos.Line)
	col := int(pos.Col) - 1
	if col > len(line) {
		col = len(line)
	}
	pad := runewidth.StringWidth(expandTabs(line[:col]))
	// подчёркиваем только в пределах первой строки спана
	end := col + int(sp.Len())
	if end > len(line) {
		end = len(line)
	}
	width := runewidth.StringWidth(expandTabs(line[col:end]))
	if width < 1 {
		width = 1
	}
	marker := "^" + strings.Repeat("~", width-1)
	fmt.Fprintf(w, " %s %s%s\n", p.gutter.Sprintf("%*s |", gutterWidth, ""), strings.Repeat(" ", pad), p.caret.Sprint(marker))
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}
