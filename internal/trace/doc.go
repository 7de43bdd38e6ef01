// Package trace records what the ember compiler is doing while it runs.
//
// Each pipeline stage opens a span, so a slow or stuck compilation can be
// located from the trace alone.
//
// # Usage
//
//	ember build --trace=- --trace-level=phase prog.em
//	ember build --trace=out.ndjson --trace-level=debug prog.em
//
// # Tracers
//
//   - nopTracer: used when tracing is off
//   - StreamTracer: writes every event immediately
//   - RingTracer: keeps the last N events for a crash dump
//   - MultiTracer: fans out to several tracers
//
// # Levels and scopes
//
// LevelPhase emits ScopeDriver and ScopeStage events (lex, parse, check,
// ir, asm). LevelDetail adds ScopeDetail facts such as token and
// instruction counts. LevelDebug adds ScopeNode spans from the checker.
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopeStage, "parse", parentID)
//	defer span.End("")
package trace
