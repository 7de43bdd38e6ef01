package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nalgeon/be"

	"ember/internal/diag"
	"ember/internal/observ"
	"ember/internal/trace"
)

func TestCompileFullPipeline(t *testing.T) {
	res, err := Compile(context.Background(), Request{Path: "t.em", Input: []byte("1 + 2 * 3")})
	be.Err(t, err, nil)
	be.Equal(t, res.Bag.Len(), 0)
	be.Equal(t, res.Sema.Types.Name(res.Sema.Root), "Int")
	be.True(t, strings.HasPrefix(res.Asm, ".extern print_int\n"))
	be.True(t, strings.HasSuffix(res.Asm, "    ret\n"))
}

func TestCompileStopAfter(t *testing.T) {
	res, err := Compile(context.Background(), Request{Input: []byte("var x = 1; x"), StopAfter: StageParse})
	be.Err(t, err, nil)
	be.True(t, res.Builder != nil)
	be.True(t, res.Sema == nil)
	be.Equal(t, res.Asm, "")
}

func TestCompileFailureIsRecorded(t *testing.T) {
	tests := []struct {
		input    string
		stage    Stage
		sentinel error
	}{
		{"1 @ 2", StageLex, diag.ErrLexical},
		{"", StageParse, diag.ErrEmptyInput},
		{"1 +", StageParse, diag.ErrParse},
		{"1 + true", StageCheck, diag.ErrType},
	}
	for _, tt := range tests {
		t.Run(string(tt.stage)+"/"+tt.input, func(t *testing.T) {
			res, err := Compile(context.Background(), Request{Input: []byte(tt.input)})
			be.True(t, errors.Is(err, tt.sentinel))
			_, ok := diag.AsError(err)
			be.True(t, ok)
			be.Equal(t, res.Failed, tt.stage)
			be.Equal(t, res.Bag.Len(), 1)
			be.Equal(t, res.Asm, "")
		})
	}
}

func TestCompileReadsFilesAndStdin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.em")
	be.Err(t, os.WriteFile(path, []byte("print_int(1)"), 0o600), nil)
	res, err := Compile(context.Background(), Request{Path: path})
	be.Err(t, err, nil)
	be.Equal(t, res.File.Path, filepath.ToSlash(path))

	res, err = Compile(context.Background(), Request{Path: StdinPath, Stdin: strings.NewReader("true")})
	be.Err(t, err, nil)
	be.Equal(t, res.File.Path, "<stdin>")

	_, err = Compile(context.Background(), Request{Path: filepath.Join(t.TempDir(), "missing.em")})
	be.True(t, err != nil)
	_, isDiag := diag.AsError(err)
	be.True(t, !isDiag)

	_, err = Compile(context.Background(), Request{})
	be.Err(t, err, ErrNoInput)
}

func TestCompileProgressAndTimer(t *testing.T) {
	var events []Event
	timer := observ.NewTimer()
	_, err := Compile(context.Background(), Request{
		Input:    []byte("if true then 1 else 2"),
		Progress: SinkFunc(func(ev Event) { events = append(events, ev) }),
		Timer:    timer,
	})
	be.Err(t, err, nil)

	// 5 queued, затем working+done на стадию
	be.Equal(t, len(events), 15)
	for i, st := range Stages {
		be.Equal(t, events[i].Status, StatusQueued)
		be.Equal(t, events[5+2*i].Stage, st)
		be.Equal(t, events[5+2*i].Status, StatusWorking)
		be.Equal(t, events[6+2*i].Status, StatusDone)
	}

	phases := timer.Phases()
	be.Equal(t, len(phases), len(Stages))
	be.Equal(t, phases[0].Name, "lex")
	be.Equal(t, phases[0].Note, "6 tokens")
	be.Equal(t, phases[4].Note, "48 bytes of stack")
}

func TestCompileErrorEvent(t *testing.T) {
	var last Event
	_, err := Compile(context.Background(), Request{
		Input:    []byte("x"),
		Progress: SinkFunc(func(ev Event) { last = ev }),
	})
	be.True(t, errors.Is(err, diag.ErrType))
	be.Equal(t, last.Stage, StageCheck)
	be.Equal(t, last.Status, StatusError)
	be.True(t, last.Err != nil)
}

func TestCompileTracesStages(t *testing.T) {
	ring := trace.NewRingTracer(256, trace.LevelDetail)
	ctx := trace.WithTracer(context.Background(), ring)
	_, err := Compile(ctx, Request{Input: []byte("var a = 1; a + 1")})
	be.Err(t, err, nil)

	var stageEnds []string
	var driverID uint64
	parents := map[string]uint64{}
	points := 0
	for _, ev := range ring.Snapshot() {
		switch {
		case ev.Kind == trace.KindSpanBegin && ev.Scope == trace.ScopeDriver:
			driverID = ev.SpanID
		case ev.Kind == trace.KindSpanEnd && ev.Scope == trace.ScopeStage:
			stageEnds = append(stageEnds, ev.Name+": "+ev.Detail)
			parents[ev.Name] = ev.ParentID
		case ev.Kind == trace.KindPoint && ev.Name == "instr_count":
			points++
		}
	}
	be.Equal(t, len(stageEnds), 5)
	be.Equal(t, stageEnds[2], "check: root: Int")
	be.True(t, driverID != 0)
	be.Equal(t, parents["codegen"], driverID)
	be.True(t, points > 0)
}
