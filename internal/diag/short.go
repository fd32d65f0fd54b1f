package diag

import (
	"cmp"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"sdl/internal/source"
)

// shortLine is one rendered row of FormatShort.
type shortLine struct {
	label   string
	code    string
	path    string
	line    uint32
	col     uint32
	message string
}

func (l shortLine) String() string {
	return fmt.Sprintf("%s %s %s:%d:%d %s", l.label, l.code, l.path, l.line, l.col, l.message)
}

func compareShort(a, b shortLine) int {
	return cmp.Or(
		cmp.Compare(a.path, b.path),
		cmp.Compare(a.line, b.line),
		cmp.Compare(a.col, b.col),
		cmp.Compare(a.label, b.label),
		cmp.Compare(a.code, b.code),
		cmp.Compare(a.message, b.message),
	)
}

// FormatShort renders diagnostics one per line as
// "severity CODE path:line:col message", sorted by location.
// Diagnostics whose file is not in fs are skipped.
func FormatShort(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}

	lines := make([]shortLine, 0, len(diags))
	add := func(label string, code Code, sp source.Span, msg string) {
		file := fs.Get(sp.File)
		if file == nil {
			return
		}
		start, _ := fs.Resolve(sp)
		lines = append(lines, shortLine{
			label:   label,
			code:    code.ID(),
			path:    shortPath(file.FormatPath("relative", fs.BaseDir())),
			line:    start.Line,
			col:     start.Col,
			message: oneLine(msg),
		})
	}
	for _, d := range diags {
		add(d.Severity.Label(), d.Code, d.Primary, d.Message)
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			add("note", d.Code, n.Span, n.Msg)
		}
	}

	slices.SortStableFunc(lines, compareShort)
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.String()
	}
	return strings.Join(out, "\n")
}

func shortPath(path string) string {
	p := filepath.ToSlash(path)
	for strings.HasPrefix(p, "./") {
		p = p[2:]
	}
	return p
}

// oneLine folds any line breaks of msg into single spaces.
func oneLine(msg string) string {
	return strings.Join(strings.Fields(msg), " ")
}
