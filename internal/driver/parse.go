package driver

import (
	"context"
	"fmt"

	"sdl/internal/ast"
	"sdl/internal/diag"
	"sdl/internal/lexer"
	"sdl/internal/parser"
	"sdl/internal/source"
	"sdl/internal/trace"
)

// ParseResult is the outcome of parsing one file.
// Tags holds every declaration completed before Err, if any.
type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tags    []*ast.Tag
	Err     *parser.Error
	Bag     *diag.Bag
	// Cached is true when Tags came from the disk cache.
	Cached bool
}

// OK reports whether the file parsed without error.
func (r *ParseResult) OK() bool {
	return r != nil && r.Err == nil && !r.Bag.HasErrors()
}

// Parse loads path and parses it.
func Parse(ctx context.Context, path string, opts Options) (*ParseResult, error) {
	span, ctx := trace.Start(ctx, trace.ScopePass, "load")
	fs := source.NewFileSet()
	var fileID source.FileID
	var err error
	opts.Timer.Measure("load", func() string {
		fileID, err = fs.Load(path)
		return path
	})
	span.End(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return parseFile(ctx, fs, fs.Get(fileID), opts, "parse"), nil
}

// ParseSource parses in-memory content registered under name.
func ParseSource(ctx context.Context, name string, content []byte, opts Options) *ParseResult {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual(name, content))
	return parseFile(ctx, fs, file, opts, "parse")
}

func parseFile(ctx context.Context, fs *source.FileSet, file *source.File, opts Options, phase string) *ParseResult {
	span, ctx := trace.Start(ctx, trace.ScopePass, phase)
	res := &ParseResult{FileSet: fs, File: file, Bag: opts.newBag()}

	opts.Timer.Measure(phase, func() string {
		if tags, ok := opts.Cache.Lookup(file, opts.MaxDepth); ok {
			res.Tags, res.Cached = tags, true
			return "cached"
		}

		rep := reporterFor(res.Bag)
		res.Tags, res.Err = parser.ParseFile(file,
			lexer.Options{Reporter: rep},
			parser.Options{MaxDepth: opts.MaxDepth, Reporter: rep},
		)
		if res.Err == nil {
			// кэш только для чистых разборов; сбой записи не фатален
			_ = opts.Cache.Store(file, opts.MaxDepth, res.Tags) //nolint:errcheck
		}
		return fmt.Sprintf("%d tags", len(res.Tags))
	})

	tr := trace.FromContext(ctx)
	for _, tag := range res.Tags {
		trace.Point(tr, trace.ScopeNode, "tag", span.ID(), tag.Name)
	}

	span.WithExtra("tags", fmt.Sprint(len(res.Tags)))
	if res.Cached {
		span.WithExtra("cache", "hit")
	}
	detail := "ok"
	if res.Err != nil {
		detail = res.Err.Error()
	}
	span.End(detail)
	return res
}
