package driver

import (
	"sdl/internal/diag"
	"sdl/internal/observ"
)

// DefaultMaxDiagnostics is used when Options.MaxDiagnostics is zero.
const DefaultMaxDiagnostics = 100

// Options control a single driver run.
type Options struct {
	// MaxDiagnostics caps every per-file Bag; 0 means DefaultMaxDiagnostics.
	MaxDiagnostics int
	// MaxDepth is forwarded to the parser; 0 means parser.DefaultMaxDepth.
	MaxDepth int
	// Cache, when set, short-circuits parses of unchanged content.
	Cache *DiskCache
	// Timer, when set, records load/lex/parse phases.
	Timer *observ.Timer
	// Progress, when set, receives per-file events from ParseDir.
	Progress ProgressSink
}

func (o Options) newBag() *diag.Bag {
	n := o.MaxDiagnostics
	if n <= 0 {
		n = DefaultMaxDiagnostics
	}
	return diag.NewBag(n)
}

// reporterFor returns the reporter shared by lexer and parser. The parser
// re-reports the lexical error that stopped it, so duplicates are folded.
func reporterFor(bag *diag.Bag) diag.Reporter {
	return diag.NewDedupReporter(diag.BagReporter{Bag: bag})
}
