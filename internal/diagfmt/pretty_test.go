package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"ember/internal/diag"
	"ember/internal/source"
)

func singleDiag(fs *source.FileSet, id source.FileID, start, end uint32, code diag.Code, msg string) *diag.Bag {
	bag := diag.NewBag(10)
	bag.Add(diag.NewError(code, source.Span{File: id, Start: start, End: end}, msg))
	return bag
}

func TestPrettyCaretUnderSpan(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.em", []byte("var x: Int = true"), source.LoadOptions{})
	bag := singleDiag(fs, id, 13, 17, diag.SemaAnnotationMismatch, "variable 'x' is declared Int but initialized with Bool")

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{})

	want := "test.em:1:14: ERROR SEM3010: variable 'x' is declared Int but initialized with Bool\n" +
		" 1 | var x: Int = true\n" +
		"   |              ^~~~\n"
	if got := buf.String(); got != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrettyWideRunes(t *testing.T) {
	fs := source.NewFileSet()
	// "世" занимает две колонки
	id := fs.AddVirtual("wide.em", []byte("世 @"), source.LoadOptions{})
	bag := singleDiag(fs, id, 4, 5, diag.LexUnknownChar, "unexpected character '@'")

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{})
	lines := strings.Split(buf.String(), "\n")
	if len(lines) < 3 {
		t.Fatalf("too few lines: %q", buf.String())
	}
	if lines[2] != "   |    ^" {
		t.Fatalf("caret misaligned: %q", lines[2])
	}
}

func TestPrettyContextLines(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("ctx.em", []byte("var a = 1;\nvar b = 2;\nc"), source.LoadOptions{})
	bag := singleDiag(fs, id, 22, 23, diag.SemaUnresolvedSymbol, "undefined name 'c'")

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: 1})
	want := "ctx.em:3:1: ERROR SEM3001: undefined name 'c'\n" +
		" 2 | var b = 2;\n" +
		" 3 | c\n" +
		"   | ^\n"
	if got := buf.String(); got != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", got, want)
	}
}

func TestPrettyNotes(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("n.em", []byte("x = 1"), source.LoadOptions{})
	bag := diag.NewBag(1)
	d := diag.NewError(diag.SemaInvalidAssignment, source.Span{File: id, Start: 0, End: 1}, "bad").
		WithNote(source.Span{File: id, Start: 4, End: 5}, "value here")
	bag.Add(d)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{ShowNotes: true})
	if !strings.Contains(buf.String(), "  note: value here (n.em:1:5)\n") {
		t.Fatalf("note missing:\n%s", buf.String())
	}

	buf.Reset()
	Pretty(&buf, bag, fs, PrettyOpts{})
	if strings.Contains(buf.String(), "note:") {
		t.Fatalf("notes printed without ShowNotes:\n%s", buf.String())
	}
}

func TestPrettyColor(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("c.em", []byte("@"), source.LoadOptions{})
	bag := singleDiag(fs, id, 0, 1, diag.LexUnknownChar, "unexpected character '@'")

	var plain, colored bytes.Buffer
	Pretty(&plain, bag, fs, PrettyOpts{})
	Pretty(&colored, bag, fs, PrettyOpts{Color: true})
	if strings.Contains(plain.String(), "\x1b[") {
		t.Fatalf("plain output has escapes: %q", plain.String())
	}
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Fatalf("colored output has no escapes: %q", colored.String())
	}
}

func TestPathModes(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.Add("/home/user/project/src/test.em", []byte("@\n"), 0)
	bag := singleDiag(fs, id, 0, 1, diag.LexUnknownChar, "unexpected character '@'")

	tests := []struct {
		name string
		mode PathMode
		want string
	}{
		{"absolute", PathModeAbsolute, "/home/user/project/src/test.em:1:1:"},
		{"relative", PathModeRelative, "src/test.em:1:1:"},
		{"basename", PathModeBasename, "test.em:1:1:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{PathMode: tt.mode, BaseDir: "/home/user/project"})
			if !strings.HasPrefix(buf.String(), tt.want) {
				t.Fatalf("want prefix %q, got:\n%s", tt.want, buf.String())
			}
		})
	}
}
