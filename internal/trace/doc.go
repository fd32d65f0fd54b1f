// Package trace is the event log of the sdl tool.
//
// It records where time goes and what the pipeline did: command start and
// finish, file loading, lexing, parsing and rendering. Nothing is written
// unless tracing is enabled.
//
// # Usage
//
// Enable tracing via command-line flags:
//
//	sdl parse --trace=- --trace-level=phase config.sdl
//
// # Tracers
//
//   - Nop: zero-overhead tracer used when disabled
//   - StreamTracer: writes every event to a file or stderr
//   - RingTracer: keeps the last N events in memory, dumped on failure
//   - MultiTracer: combines the two
//
// # Levels and scopes
//
// Events carry a Scope; the Level decides which scopes are emitted:
//
//   - LevelOff: nothing
//   - LevelError: nothing live; the ring is dumped when a command fails
//   - LevelPhase: ScopeDriver and ScopePass (load, lex, parse, render)
//   - LevelDetail: adds ScopeFile (one span per file in directory mode)
//   - LevelDebug: adds ScopeNode (one point per parsed top-level tag)
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "parse", 0)
//	defer span.End("")
package trace
