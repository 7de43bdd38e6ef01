package observ

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
)

func fakeClock(step time.Duration) func() time.Time {
	now := time.Unix(0, 0)
	return func() time.Time {
		now = now.Add(step)
		return now
	}
}

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	tm.now = fakeClock(2 * time.Millisecond)

	lex := tm.Begin("lex")
	tm.End(lex, "12 tokens")
	parse := tm.Begin("parse")
	tm.End(parse, "")
	tm.End(99, "ignored")

	r := tm.Report()
	if len(r.Phases) != 2 {
		t.Fatalf("phases = %d", len(r.Phases))
	}
	if r.Phases[0].DurationMS != 2 || r.Phases[0].Note != "12 tokens" {
		t.Errorf("lex phase = %+v", r.Phases[0])
	}
	if r.TotalMS != 4 {
		t.Errorf("total = %v", r.TotalMS)
	}
}

func TestTimerSummaryAndTable(t *testing.T) {
	tm := NewTimer()
	tm.now = fakeClock(time.Millisecond)
	tm.End(tm.Begin("codegen"), "48 bytes of stack")

	summary := tm.Summary()
	if !strings.Contains(summary, "codegen") || !strings.Contains(summary, "// 48 bytes of stack") {
		t.Errorf("summary:\n%s", summary)
	}
	if !strings.HasSuffix(summary, "ms\n") {
		t.Errorf("summary must end with the total line:\n%s", summary)
	}

	tbl := tm.Table()
	for _, want := range []string{"stage", "codegen", "1.00", "total"} {
		if !strings.Contains(tbl, want) {
			t.Errorf("table missing %q:\n%s", want, tbl)
		}
	}
}

func TestTableStyle(t *testing.T) {
	if !tableStyle(0, 0).GetBold() || !tableStyle(0, 1).GetBold() {
		t.Error("header row must be bold")
	}
	if tableStyle(1, 0).GetBold() {
		t.Error("data row must not be bold")
	}
	if got := tableStyle(1, 1).GetAlignHorizontal(); got != lipgloss.Right {
		t.Errorf("duration column align = %v", got)
	}
	if got := tableStyle(2, 0).GetAlignHorizontal(); got != lipgloss.Left {
		t.Errorf("name column align = %v", got)
	}
}

func TestEmptyReport(t *testing.T) {
	if r := NewTimer().Report(); r.TotalMS != 0 || r.Phases != nil {
		t.Errorf("empty report = %+v", r)
	}
}
