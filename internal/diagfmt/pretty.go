package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"sdl/internal/diag"
	"sdl/internal/source"
)

type palette struct {
	header func(a ...any) string
	gutter func(a ...any) string
	caret  func(a ...any) string
	note   func(a ...any) string
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) func(a ...any) string {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c.SprintFunc()
	}
	return palette{
		header: mk(color.FgRed, color.Bold),
		gutter: mk(color.FgBlue, color.Bold),
		caret:  mk(color.FgRed, color.Bold),
		note:   mk(color.FgCyan),
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее). Для каждой:
//
//	Syntax error at line 3: Expect ';' or '{'.
//	  --> conf/app.sdl:3:12
//	   |
//	 3 | true
//	   | ^~~~
//
// Исходник печатается с начала span до конца строки, каретка под span.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		writeDiagnostic(w, d, fs, opts, pal)
	}
}

func writeDiagnostic(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) {
	fmt.Fprintln(w, pal.header(fmt.Sprintf("%s at line %d: %s", headline(d.Severity), d.Primary.Line, d.Message)))

	f := fs.Get(d.Primary.File)
	if f == nil {
		return
	}
	start, _ := fs.Resolve(d.Primary)
	fmt.Fprintf(w, "  %s %s:%d:%d [%s]\n", pal.gutter("-->"), formatPath(f, fs, opts.PathMode), start.Line, start.Col, d.Code.ID())
	writeSnippet(w, f, d.Primary, pal)

	if opts.ShowNotes {
		for _, n := range d.Notes {
			fmt.Fprintf(w, "  %s %s\n", pal.note("note:"), n.Msg)
			if nf := fs.Get(n.Span.File); nf != nil {
				writeSnippet(w, nf, n.Span, pal)
			}
		}
	}
}

func headline(sev diag.Severity) string {
	switch sev {
	case diag.SevError:
		return "Syntax error"
	case diag.SevWarning:
		return "Warning"
	default:
		return "Info"
	}
}

// writeSnippet печатает фрагмент исходника от начала span до конца строки,
// в которой span заканчивается, и каретку под самим span.
func writeSnippet(w io.Writer, f *source.File, sp source.Span, pal palette) {
	marked := f.Slice(sp.Start, sp.End)
	text := marked + f.RestOfLine(sp.End)
	if before, _, ok := strings.Cut(text, "\n"); ok {
		text = before
	}
	if before, _, ok := strings.Cut(marked, "\n"); ok {
		marked = before
	}

	num := strconv.FormatUint(uint64(sp.Line), 10)
	pad := strings.Repeat(" ", len(num))

	width := runewidth.StringWidth(marked)
	if width < 1 {
		width = 1
	}
	caret := "^" + strings.Repeat("~", width-1)

	fmt.Fprintf(w, " %s %s\n", pad, pal.gutter("|"))
	fmt.Fprintf(w, " %s %s %s\n", pal.gutter(num), pal.gutter("|"), text)
	fmt.Fprintf(w, " %s %s %s\n", pad, pal.gutter("|"), pal.caret(caret))
}
