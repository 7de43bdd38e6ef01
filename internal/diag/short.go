package diag

import (
	"fmt"
	"strings"

	"ember/internal/source"
)

// FormatShort renders diagnostics one per line as
// "path:line:col: SEVERITY CODE: message", in Bag order.
// Notes follow their diagnostic, indented, when includeNotes is set.
func FormatShort(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}
	var sb strings.Builder
	for i := range diags {
		d := &diags[i]
		writeShortLine(&sb, fs, d.Primary, fmt.Sprintf("%s %s: %s", d.Severity, d.Code.ID(), d.Message))
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			sb.WriteString("  ")
			writeShortLine(&sb, fs, n.Span, "note: "+n.Msg)
		}
	}
	return sb.String()
}

func writeShortLine(sb *strings.Builder, fs *source.FileSet, sp source.Span, text string) {
	if int(sp.File) >= fs.Len() {
		sb.WriteString(text)
		sb.WriteByte('\n')
		return
	}
	f := fs.Get(sp.File)
	pos := f.Position(sp.Start)
	fmt.Fprintf(sb, "%s:%d:%d: %s\n", f.Path, pos.Line, pos.Col, text)
}
