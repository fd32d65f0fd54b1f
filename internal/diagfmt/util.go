package diagfmt

import (
	"fmt"

	"sdl/internal/source"
)

func formatPath(f *source.File, fs *source.FileSet, mode PathMode) string {
	base := ""
	if mode == PathModeRelative {
		base = fs.BaseDir()
	}
	return f.FormatPath(mode.String(), base)
}

// formatSpan renders span as "line:col-line:col", or as raw byte offsets
// when its file is unknown.
func formatSpan(span source.Span, fs *source.FileSet) string {
	if fs == nil || fs.Get(span.File) == nil {
		return fmt.Sprintf("span(%d-%d)", span.Start, span.End)
	}
	start, end := fs.Resolve(span)
	return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
}
