package diag

import "sdl/internal/source"

// DedupReporter forwards each distinct diagnostic once. Two reports are the
// same when code, severity, primary range and message all match; Line is
// derived from the range and is not compared.
//
// The parser re-reports the lexical error that stopped it, so the lexer and
// parser of one file share a DedupReporter.
type DedupReporter struct {
	next Reporter
	seen map[reportKey]struct{}
}

type reportKey struct {
	code       Code
	sev        Severity
	file       source.FileID
	start, end uint32
	msg        string
}

func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{next: next, seen: make(map[reportKey]struct{})}
}

func (r *DedupReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	if r == nil {
		return
	}
	key := reportKey{code, sev, primary.File, primary.Start, primary.End, msg}
	if _, dup := r.seen[key]; dup {
		return
	}
	r.seen[key] = struct{}{}
	if r.next != nil {
		r.next.Report(code, sev, primary, msg, notes)
	}
}
