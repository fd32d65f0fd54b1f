package diag

import (
	"testing"

	"sdl/internal/source"
)

func TestFormatShort(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/workspace")

	file := fs.Add("/workspace/conf/app.sdl", []byte("a\nb\n"), 0)

	diags := []Diagnostic{
		{
			Severity: SevWarning,
			Code:     SynExpectTerminator,
			Message:  "another",
			Primary:  source.Span{File: file, Start: 2, End: 3, Line: 2},
		},
		{
			Severity: SevError,
			Code:     LexUnknownChar,
			Message:  "first line\nsecond",
			Primary:  source.Span{File: file, Start: 0, End: 1, Line: 1},
			Notes: []Note{
				{Span: source.Span{File: file, Start: 2, End: 3, Line: 2}, Msg: "note line"},
			},
		},
	}

	expected := "error LEX1001 conf/app.sdl:1:1 first line second\n" +
		"note LEX1001 conf/app.sdl:2:1 note line\n" +
		"warning SYN2012 conf/app.sdl:2:1 another"

	if got := FormatShort(diags, fs, true); got != expected {
		t.Fatalf("unexpected short diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}

	withoutNotes := "error LEX1001 conf/app.sdl:1:1 first line second\n" +
		"warning SYN2012 conf/app.sdl:2:1 another"
	if got := FormatShort(diags, fs, false); got != withoutNotes {
		t.Fatalf("unexpected output without notes:\n%s", got)
	}
}

func TestFormatShortSkipsUnknownFiles(t *testing.T) {
	fs := source.NewFileSet()
	diags := []Diagnostic{{Severity: SevError, Code: SynExpectLiteral, Message: "x", Primary: source.Span{File: 7}}}
	if got := FormatShort(diags, fs, false); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
	if got := FormatShort(nil, fs, false); got != "" {
		t.Fatalf("expected empty output for nil, got %q", got)
	}
}
