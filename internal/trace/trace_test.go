package trace

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestStreamTracerLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatText)

	outer := Begin(tr, ScopeStage, "parse", 0)
	inner := Begin(tr, ScopeNode, "expr", outer.ID())
	inner.End("")
	outer.End("ok")

	out := buf.String()
	if !strings.Contains(out, "← parse (ok)") {
		t.Fatalf("missing stage end line:\n%s", out)
	}
	if strings.Contains(out, "expr") {
		t.Fatalf("node spans must be filtered at phase level:\n%s", out)
	}
	if got := strings.Count(out, "\n"); got != 2 {
		t.Fatalf("want 2 lines, got %d:\n%s", got, out)
	}
	if inner.ID() != 0 || inner.End("") != 0 {
		t.Fatalf("filtered span must be inert")
	}
}

func TestNDJSONCarriesExtra(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatNDJSON)
	Begin(tr, ScopeStage, "lower", 0).WithExtra("instrs", "12").End("")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("want begin and end, got %d lines", len(lines))
	}
	if !strings.Contains(lines[1], `"instrs":"12"`) || !strings.Contains(lines[1], `"kind":"end"`) {
		t.Fatalf("unexpected end event: %s", lines[1])
	}
}

func TestRingTracerWraps(t *testing.T) {
	ring := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d"} {
		Point(ring, ScopeDetail, name, 0, "")
	}
	snap := ring.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("snapshot len = %d, want 3", len(snap))
	}
	if snap[0].Name != "b" || snap[2].Name != "d" {
		t.Fatalf("unexpected order: %s %s %s", snap[0].Name, snap[1].Name, snap[2].Name)
	}
	if snap[0].Seq >= snap[2].Seq {
		t.Fatalf("sequence numbers must grow: %d %d", snap[0].Seq, snap[2].Seq)
	}
}

func TestNewRingDumpsOnClose(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelDetail, Mode: ModeRing, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	Point(tr, ScopeDetail, "instr_count", 0, "Call=3")
	if buf.Len() != 0 {
		t.Fatalf("ring mode must not write before Close: %q", buf.String())
	}
	if err := tr.Close(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "• instr_count (Call=3)") {
		t.Fatalf("dump missing event:\n%s", buf.String())
	}
}

func TestNewBothStreamsStagesOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.ndjson")
	tr, err := New(Config{Level: LevelDetail, Mode: ModeBoth, OutputPath: path})
	if err != nil {
		t.Fatal(err)
	}
	span := Begin(tr, ScopeStage, "lex", 0)
	Point(tr, ScopeDetail, "tokens", span.ID(), "6")
	span.End("")
	if err := tr.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	// 2 события потока + 3 из дампа кольца
	if len(lines) != 5 {
		t.Fatalf("want 5 ndjson lines, got %d:\n%s", len(lines), data)
	}
	if strings.Contains(strings.Join(lines[:2], "\n"), `"tokens"`) {
		t.Fatalf("detail event leaked into the stream:\n%s", data)
	}
}

func TestNewOffIsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff, OutputPath: filepath.Join(t.TempDir(), "never")})
	if err != nil || tr != Nop {
		t.Fatalf("New(off) = %v, %v", tr, err)
	}
}

func TestContextDefaultsToNop(t *testing.T) {
	if FromContext(context.Background()).Level() != LevelOff {
		t.Fatalf("empty context must yield a disabled tracer")
	}
	ring := NewRingTracer(4, LevelPhase)
	ctx := WithTracer(context.Background(), ring)
	if FromContext(ctx) != Tracer(ring) {
		t.Fatalf("tracer not propagated")
	}
	if CurrentSpan(ctx).SpanID != 0 {
		t.Fatalf("no span attached yet")
	}
	ctx = WithSpanContext(ctx, SpanContext{SpanID: 7})
	if CurrentSpan(ctx).SpanID != 7 || FromContext(ctx) != Tracer(ring) {
		t.Fatalf("span context lost the tracer or id")
	}
}

func TestParseHelpers(t *testing.T) {
	if lvl, err := ParseLevel("Detail"); err != nil || lvl != LevelDetail {
		t.Fatalf("ParseLevel = %v, %v", lvl, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
	if f, err := ParseFormat("json"); err != nil || f != FormatNDJSON {
		t.Fatalf("ParseFormat = %v, %v", f, err)
	}
	if m, err := ParseMode("Ring"); err != nil || m != ModeRing {
		t.Fatalf("ParseMode = %v, %v", m, err)
	}
	if _, err := ParseMode("disk"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
	if FormatAuto.resolve("t.jsonl") != FormatNDJSON || FormatAuto.resolve("-") != FormatText {
		t.Fatalf("auto format resolution")
	}
}
