// Package trace provides structured event logging for the lunar front end.
//
// Events describe what the driver and the parser are doing: phase
// boundaries (load, lex, parse), per-file work in directory mode, and
// parser recovery actions (skipped tokens, resynchronisation).
//
// # Usage
//
//	lunar parse --trace=- --trace-level=debug main.lr
//
// # Implementations
//
//   - Nop: zero-overhead tracer when disabled
//   - StreamTracer: immediate write to a file or stderr, text or NDJSON
//   - RingTracer: last N events in memory (used by the REPL)
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelError: recovery events only
//   - LevelPhase: driver and pass boundaries
//   - LevelDetail: per-file events
//   - LevelDebug: everything, including parser recovery
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopePass, "parse", 0)
//	defer span.End("")
package trace
