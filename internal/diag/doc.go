// Package diag defines the diagnostic model shared by the scanner and parser.
//
// Diagnostic is the central record: a Severity, a numeric Code with a stable
// string form (LEXnnnn, SYNnnnn, IOnnnn), a short Message, the Primary
// source.Span and optional Notes.
//
// Producers emit through the Reporter interface and never depend on storage.
// BagReporter collects into a Bag with an optional size limit, and
// DedupReporter drops repeated reports of the same finding. Both the scanner
// and the parser see every lexical error token, so the driver shares one
// DedupReporter between them.
//
// Package diag does not render anything except the single-line short form
// (FormatShort); pretty and JSON output live in internal/diagfmt.
package diag
