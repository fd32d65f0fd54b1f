// Package driver wires the pipeline together: load a file into a FileSet,
// lex it, parse it and collect diagnostics. It also handles whole
// directories in parallel and the optional on-disk parse cache.
package driver
