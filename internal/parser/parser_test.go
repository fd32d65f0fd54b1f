package parser

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"sdl/internal/ast"
	"sdl/internal/diag"
	"sdl/internal/lexer"
	"sdl/internal/source"
	"sdl/internal/testkit"
)

// tagOpts сравнивает деревья без учёта позиций.
var tagOpts = cmp.Options{
	cmpopts.IgnoreFields(ast.Tag{}, "Span"),
	cmpopts.EquateEmpty(),
}

func TestParseSimpleTag(t *testing.T) {
	tags, err, _ := parseSource(t, `author "Kirill Vasiltsov";`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []*ast.Tag{{
		Name:   "author",
		Values: []ast.Value{ast.String("Kirill Vasiltsov")},
	}}
	if diff := cmp.Diff(want, tags, tagOpts); diff != "" {
		t.Fatalf("tags mismatch (-want +got):\n%s", diff)
	}
}

func TestParseValuesAndAttributes(t *testing.T) {
	src := `server "main" 8080 1.5 true false null host="localhost" port=80 ratio=0.25 tls=true proxy=null;`
	tags, err, _ := parseSource(t, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []*ast.Tag{{
		Name: "server",
		Values: []ast.Value{
			ast.String("main"), ast.Int(8080), ast.Float(1.5),
			ast.Bool(true), ast.Bool(false), ast.Null(),
		},
		Attributes: map[string]ast.Value{
			"host":  ast.String("localhost"),
			"port":  ast.Int(80),
			"ratio": ast.Float(0.25),
			"tls":   ast.Bool(true),
			"proxy": ast.Null(),
		},
	}}
	if diff := cmp.Diff(want, tags, tagOpts); diff != "" {
		t.Fatalf("tags mismatch (-want +got):\n%s", diff)
	}
}

func TestParseDuplicateAttributeLastWins(t *testing.T) {
	tags, err, _ := parseSource(t, `x a=1 a=2 1 1;`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := tags[0].Attributes["a"]; !got.Equal(ast.Int(2)) {
		t.Fatalf("expected a=2, got %v", got)
	}
	if len(tags[0].Values) != 2 {
		t.Fatalf("duplicate values must be kept, got %d", len(tags[0].Values))
	}
}

func TestParseChildren(t *testing.T) {
	tags, err, _ := parseSource(t, "a { b 1; c 2; }")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []*ast.Tag{{
		Name: "a",
		Children: []*ast.Tag{
			{Name: "b", Values: []ast.Value{ast.Int(1)}},
			{Name: "c", Values: []ast.Value{ast.Int(2)}},
		},
	}}
	if diff := cmp.Diff(want, tags, tagOpts); diff != "" {
		t.Fatalf("tags mismatch (-want +got):\n%s", diff)
	}
}

func TestParseEmptyBraceTagAllowed(t *testing.T) {
	tags, err, _ := parseSource(t, "outer { inner {} } second {}")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tags) != 2 || len(tags[0].Children) != 1 || tags[0].Children[0].Name != "inner" {
		t.Fatalf("unexpected tree: %+v", tags)
	}
}

func TestParseEmptySemicolonTagRejected(t *testing.T) {
	tags, err, bag := parseSource(t, "a { b; c; }")
	if err == nil || err.Message != MsgExpectValueOrAttr {
		t.Fatalf("expected %q, got %v", MsgExpectValueOrAttr, err)
	}
	if err.Code != diag.SynEmptyTerminatedTag || bag.Items()[0].Code != diag.SynEmptyTerminatedTag {
		t.Fatalf("expected %s, got %s", diag.SynEmptyTerminatedTag, err.Code)
	}
	if len(tags) != 0 {
		t.Fatalf("expected no tags, got %d", len(tags))
	}
	// ошибка указывает на ';' после b
	if err.Span.Start != 5 || err.Span.End != 6 {
		t.Fatalf("expected span (5,6), got (%d,%d)", err.Span.Start, err.Span.End)
	}
}

func TestParseEmptyDocument(t *testing.T) {
	for _, src := range []string{"", "   \n", "// only a comment\n# and another"} {
		tags, err, bag := parseSource(t, src)
		if err != nil || len(tags) != 0 || bag.Len() != 0 {
			t.Fatalf("%q: expected nothing, got tags=%v err=%v", src, tags, err)
		}
	}
}

func TestParseKeepsTagsBeforeError(t *testing.T) {
	tags, err, _ := parseSource(t, "first 1;\nsecond 2;\nthird = 3;\nfourth 4;")
	if err == nil || err.Message != MsgExpectValueOrAttr {
		t.Fatalf("expected %q, got %v", MsgExpectValueOrAttr, err)
	}
	if err.Span.Line != 3 {
		t.Fatalf("expected error on line 3, got %d", err.Span.Line)
	}
	if len(tags) != 2 || tags[0].Name != "first" || tags[1].Name != "second" {
		t.Fatalf("expected first and second to survive, got %+v", tags)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		msg   string
		code  diag.Code
	}{
		{"bare assignment", "private=true", MsgExpectValueOrAttr, diag.SynExpectLiteral},
		{"missing terminator", "user private=true", MsgExpectTerminator, diag.SynExpectTerminator},
		{"missing terminator after value", `author "x"`, MsgExpectTerminator, diag.SynExpectTerminator},
		{"identifier then eof", "user name", MsgUnexpectedIdentifier, diag.SynExpectAssign},
		{"bare identifier value", "user name;", MsgExpectAssign, diag.SynExpectAssign},
		{"missing literal after eq", "user name=;", MsgExpectLiteralAfterEq, diag.SynExpectLiteral},
		{"identifier after eq", "user name=other;", MsgExpectLiteralAfterEq, diag.SynExpectLiteral},
		{"eof after eq", "user name=", MsgExpectLiteralAfterEq, diag.SynExpectLiteral},
		{"unclosed brace", "a { b 1;", MsgExpectRBrace, diag.SynUnclosedBrace},
		{"tag starts with literal", `"x";`, MsgInvalidIdentifier, diag.SynExpectIdentifier},
		{"tag starts with brace", "}", MsgInvalidIdentifier, diag.SynExpectIdentifier},
		{"keyword as tag name", "true 1;", MsgInvalidIdentifier, diag.SynExpectIdentifier},
		{"stray punctuation in body", "a 1 } ;", MsgExpectValueOrAttr, diag.SynExpectLiteral},
		{"integer overflow", "big 9223372036854775808;", MsgIntegerOutOfRange, diag.SynLiteralOutOfRange},
		{"float overflow", "big 1.0e999;", MsgFloatOutOfRange, diag.SynLiteralOutOfRange},
		{"lexical in name", "@ 1;", "Unexpected character.", diag.LexUnknownChar},
		{"lexical in value", "a 5.x;", "'.' must be followed by digit.", diag.LexBadNumber},
		{"lexical after eq", `a k="open`, "Unterminated string.", diag.LexUnterminatedString},
		{"lexical after name", "a k @;", "Unexpected character.", diag.LexUnknownChar},
		{"illegal float", "a 1.5e+;", "Illegal float.", diag.LexBadNumber},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := expectError(t, tt.input, tt.msg)
			if err.Code != tt.code {
				t.Fatalf("expected code %s, got %s", tt.code.ID(), err.Code.ID())
			}
		})
	}
}

func TestParseUnclosedBraceNotesOpening(t *testing.T) {
	_, err, bag := parseSource(t, "outer {\n  inner 1;\n")
	if err == nil || err.Message != MsgExpectRBrace {
		t.Fatalf("expected %q, got %v", MsgExpectRBrace, err)
	}
	notes := bag.Items()[0].Notes
	if len(notes) != 1 || notes[0].Msg != MsgBlockOpenedHere {
		t.Fatalf("expected one opening note, got %+v", notes)
	}
	if sp := notes[0].Span; sp.Start != 6 || sp.End != 7 || sp.Line != 1 {
		t.Fatalf("note must point at '{', got %v", sp)
	}
}

func TestParseMaxInt(t *testing.T) {
	tags, err, _ := parseSource(t, "big 9223372036854775807;")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := tags[0].Values[0].Int; got != 9223372036854775807 {
		t.Fatalf("unexpected value %d", got)
	}
}

func TestParseErrorAtEOFAnchorsOnPreviousToken(t *testing.T) {
	err := expectError(t, "user private=true", MsgExpectTerminator)
	// previous token is "true" at 13..17
	if err.Span.Start != 13 || err.Span.End != 17 || err.Span.Line != 1 {
		t.Fatalf("expected span 13..17@1, got %s", err.Span)
	}
}

func TestParseMissingLiteralAnchorsOnAssign(t *testing.T) {
	err := expectError(t, "user name=;", MsgExpectLiteralAfterEq)
	if err.Span.Start != 9 || err.Span.End != 10 {
		t.Fatalf("expected span on '=', got %s", err.Span)
	}
}

func TestParseNestingLimit(t *testing.T) {
	deep := strings.Repeat("a { ", 5) + strings.Repeat("} ", 5)
	if _, err, _ := parseSourceOpts(t, deep, Options{MaxDepth: 5}); err != nil {
		t.Fatalf("5 levels within limit 5 failed: %v", err)
	}
	_, err, _ := parseSourceOpts(t, deep, Options{MaxDepth: 4})
	if err == nil || err.Code != diag.SynNestingTooDeep || err.Message != MsgNestingTooDeep {
		t.Fatalf("expected nesting error, got %v", err)
	}
}

func TestParseNestingLimitStopsBeforeBlockBody(t *testing.T) {
	src := "a { b { ~ } }"
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("deep.sdl", []byte(src)))
	bag := diag.NewBag(16)
	rep := diag.NewDedupReporter(diag.BagReporter{Bag: bag})

	_, err := ParseFile(file, lexer.Options{Reporter: rep}, Options{MaxDepth: 1, Reporter: rep})
	if err == nil || err.Code != diag.SynNestingTooDeep {
		t.Fatalf("expected nesting error, got %v", err)
	}
	// ошибка стоит на втором '{', содержимое блока не читается
	if err.Span.Start != 6 || err.Span.End != 7 {
		t.Fatalf("expected span (6,7), got %s", err.Span)
	}
	if bag.Len() != 1 || bag.Items()[0].Code != diag.SynNestingTooDeep {
		t.Fatalf("expected a single %s, got %+v", diag.SynNestingTooDeep, bag.Items())
	}
}

func TestParseDefaultDepthHandlesDeepInput(t *testing.T) {
	n := DefaultMaxDepth
	deep := strings.Repeat("a {", n) + strings.Repeat("}", n)
	if _, err, _ := parseSource(t, deep); err != nil {
		t.Fatalf("expected %d levels to parse, got %v", n, err)
	}
	deeper := strings.Repeat("a {", n+1) + strings.Repeat("}", n+1)
	if _, err, _ := parseSource(t, deeper); err == nil {
		t.Fatal("expected nesting error past default depth")
	}
}

func TestParseSpans(t *testing.T) {
	src := "a 1;\nb {\n  c 2;\n}\n"
	tags, err, _ := parseSource(t, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []source.Span{
		{Start: 0, End: 4, Line: 1},
		{Start: 5, End: 17, Line: 2},
	}
	for i, sp := range want {
		got := tags[i].Span
		if got.Start != sp.Start || got.End != sp.End || got.Line != sp.Line {
			t.Errorf("tag %d: expected %s, got %s", i, sp, got)
		}
	}
	if c := tags[1].Children[0].Span; c.Line != 3 {
		t.Errorf("child line = %d, want 3", c.Line)
	}
}

func TestParseSpanInvariants(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("..", "..", "testdata", "*", "*.sdl"))
	if err != nil || len(paths) == 0 {
		t.Fatalf("no testdata: %v", err)
	}
	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			fs := source.NewFileSet()
			id, err := fs.Load(path)
			if err != nil {
				t.Fatal(err)
			}
			file := fs.Get(id)
			// partial output on invalid input must satisfy the same invariants
			tags, _ := ParseFile(file, lexer.Options{}, Options{})
			if err := testkit.CheckSpanInvariants(tags, file); err != nil {
				t.Fatal(err)
			}
		})
	}
}

func TestParseIdempotent(t *testing.T) {
	src := `
// sample
app "demo" version=3 {
  db driver="postgres" pool=10 {
    replica "r1" weight=0.5;
    replica "r2" weight=1.5e1;
  }
  feature:flags enabled=true beta=false legacy=null;
}
`
	first, err1, _ := parseSource(t, src)
	second, err2, _ := parseSource(t, src)
	if err1 != nil || err2 != nil {
		t.Fatalf("unexpected errors: %v, %v", err1, err2)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("parsing twice differs (-first +second):\n%s", diff)
	}
}

func TestParseRoundTrip(t *testing.T) {
	src := `app "demo" 7 2.5 7.8e+12 version=3 {
  db driver="postgres" pool=10 {
    replica "r1" weight=0.5;
  }
  empty {
  }
  flag true false null;
}
`
	tags, err, _ := parseSource(t, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	printed := ast.DocumentSource(tags)
	again, err, _ := parseSource(t, printed)
	if err != nil {
		t.Fatalf("re-parse of canonical source failed: %v\n%s", err, printed)
	}
	if diff := cmp.Diff(tags, again, tagOpts); diff != "" {
		t.Fatalf("round trip mismatch (-orig +reparsed):\n%s", diff)
	}
	if printed != src {
		t.Fatalf("canonical form changed:\nwant:\n%s\ngot:\n%s", src, printed)
	}
}
