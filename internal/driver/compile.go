// Package driver runs the compilation pipeline over one source file and
// wires tracing, timing and progress reporting around each stage.
package driver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"ember/internal/ast"
	"ember/internal/backend/x86"
	"ember/internal/diag"
	"ember/internal/ir"
	"ember/internal/lexer"
	"ember/internal/observ"
	"ember/internal/parser"
	"ember/internal/sema"
	"ember/internal/source"
	"ember/internal/token"
	"ember/internal/trace"
)

// StdinPath makes Compile read the program from Request.Stdin.
const StdinPath = "-"

// Request configures one compilation.
type Request struct {
	Path string
	// Input, when non-nil, is compiled instead of reading Path.
	Input []byte
	Stdin io.Reader

	NFC    bool
	Trivia bool // сохранять trivia в токенах (для tokenize)
	// StopAfter ends the pipeline early; empty means codegen.
	StopAfter Stage

	Progress ProgressSink
	Timer    *observ.Timer
}

// Result holds everything produced up to the last stage that ran.
type Result struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Builder *ast.Builder
	Root    ast.ExprID
	Sema    *sema.Result
	Program *ir.Program
	Asm     string

	// Bag holds the diagnostic of a failed compilation, or nothing.
	Bag *diag.Bag
	// Failed is the stage that produced the diagnostic.
	Failed Stage
}

// ErrNoInput is returned when neither a path nor input was given.
var ErrNoInput = errors.New("no input file")

// Compile runs the pipeline. A compile failure is returned as *diag.Error and
// also recorded in Result.Bag; any other error is an I/O or usage problem.
func Compile(ctx context.Context, req Request) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	tracer := trace.FromContext(ctx)
	res := &Result{FileSet: source.NewFileSet(), Bag: diag.NewBag(1)}

	driverSpan := trace.Begin(tracer, trace.ScopeDriver, "compile", trace.CurrentSpan(ctx).SpanID).
		WithExtra("path", req.Path)
	defer driverSpan.End("")

	file, err := load(res.FileSet, req)
	if err != nil {
		driverSpan.WithExtra("error", err.Error())
		return res, err
	}
	res.File = file

	c := &compilation{
		ctx:    trace.WithSpanContext(ctx, trace.SpanContext{SpanID: driverSpan.ID()}),
		tracer: tracer,
		parent: driverSpan.ID(),
		req:    req,
		res:    res,
	}
	last := StageCodegen
	if req.StopAfter != "" {
		last = req.StopAfter
	}
	c.queue(last)

	steps := []struct {
		stage Stage
		run   func() (string, error)
	}{
		{StageLex, c.lex},
		{StageParse, c.parse},
		{StageCheck, c.check},
		{StageLower, c.lower},
		{StageCodegen, c.codegen},
	}
	for _, step := range steps {
		if err := c.run(step.stage, step.run); err != nil {
			driverSpan.WithExtra("failed", string(step.stage))
			return res, err
		}
		if step.stage == last {
			break
		}
	}
	return res, nil
}

func load(fs *source.FileSet, req Request) (*source.File, error) {
	opts := source.LoadOptions{NFC: req.NFC}
	switch {
	case req.Input != nil:
		name := req.Path
		if name == "" {
			name = "<input>"
		}
		return fs.Get(fs.AddVirtual(name, req.Input, opts)), nil
	case req.Path == StdinPath:
		in := req.Stdin
		if in == nil {
			in = os.Stdin
		}
		content, err := io.ReadAll(in)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return fs.Get(fs.AddVirtual("<stdin>", content, opts)), nil
	case req.Path == "":
		return nil, ErrNoInput
	default:
		id, err := fs.Load(req.Path, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", req.Path, err)
		}
		return fs.Get(id), nil
	}
}

type compilation struct {
	ctx    context.Context
	tracer trace.Tracer
	parent uint64
	req    Request
	res    *Result
}

func (c *compilation) emit(ev Event) {
	if c.req.Progress != nil {
		c.req.Progress.OnEvent(ev)
	}
}

func (c *compilation) queue(last Stage) {
	for _, st := range Stages[:last.index()+1] {
		c.emit(Event{Stage: st, Status: StatusQueued})
	}
}

// run wraps one stage in a trace span, a timer phase and progress events.
func (c *compilation) run(stage Stage, fn func() (string, error)) error {
	span := trace.Begin(c.tracer, trace.ScopeStage, string(stage), c.parent)
	phase := -1
	if c.req.Timer != nil {
		phase = c.req.Timer.Begin(string(stage))
	}
	c.emit(Event{Stage: stage, Status: StatusWorking})
	started := time.Now()

	prev := c.ctx
	c.ctx = trace.WithSpanContext(prev, trace.SpanContext{SpanID: span.ID()})
	detail, err := fn()
	c.ctx = prev

	elapsed := time.Since(started)
	if c.req.Timer != nil {
		c.req.Timer.End(phase, detail)
	}
	if err != nil {
		span.WithExtra("error", err.Error()).End("failed")
		c.res.Failed = stage
		diag.ReportErr(diag.BagReporter{Bag: c.res.Bag}, err)
		c.emit(Event{Stage: stage, Status: StatusError, Err: err, Elapsed: elapsed})
		return err
	}
	span.End(detail)
	c.emit(Event{Stage: stage, Status: StatusDone, Detail: detail, Elapsed: elapsed})
	return nil
}

func (c *compilation) lex() (string, error) {
	toks, err := lexer.Tokenize(c.res.File, lexer.Options{Trivia: c.req.Trivia})
	if err != nil {
		return "", err
	}
	c.res.Tokens = toks
	return fmt.Sprintf("%d tokens", len(toks)), nil
}

func (c *compilation) parse() (string, error) {
	b, root, err := parser.Parse(c.res.File, c.res.Tokens)
	if err != nil {
		return "", err
	}
	c.res.Builder, c.res.Root = b, root
	return fmt.Sprintf("%d nodes", b.Exprs.Len()), nil
}

func (c *compilation) check() (string, error) {
	res, err := sema.CheckContext(c.ctx, c.res.File, c.res.Builder, c.res.Root)
	if err != nil {
		return "", err
	}
	c.res.Sema = res
	return "root: " + res.Types.Name(res.Root), nil
}

func (c *compilation) lower() (string, error) {
	prog, err := ir.Lower(c.res.Builder, c.res.Root, c.res.Sema)
	if err != nil {
		return "", err
	}
	c.res.Program = prog
	stats := ir.Stats(prog.Instrs)
	for kind := ir.InstrLabel; kind <= ir.InstrCondJump; kind++ {
		if n := stats[kind]; n > 0 {
			trace.Point(c.tracer, trace.ScopeDetail, "instr_count", c.parentOf(), fmt.Sprintf("%s=%d", kind, n))
		}
	}
	return fmt.Sprintf("%d instructions", len(prog.Instrs)), nil
}

func (c *compilation) codegen() (string, error) {
	asm, err := x86.Emit(c.res.Program.Instrs)
	if err != nil {
		return "", err
	}
	c.res.Asm = asm
	return fmt.Sprintf("%d bytes of stack", x86.NewLocals(c.res.Program.Instrs).StackUsed()), nil
}

func (c *compilation) parentOf() uint64 {
	return trace.CurrentSpan(c.ctx).SpanID
}
