package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"sdl/internal/lexer"
	"sdl/internal/source"
	"sdl/internal/token"
)

func lexAll(fs *source.FileSet, id source.FileID) []token.Token {
	lx := lexer.New(fs.Get(id), lexer.Options{})
	var toks []token.Token
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

func TestFormatTokensPretty(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.sdl", []byte("a \"b\" @"))

	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, lexAll(fs, id), fs); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	want := []string{
		`  1: Ident      "a" at 1:1-1:2`,
		`  2: StringLit  "b" at 1:4-1:5`,
		`  3: Error      "@" at 1:7-1:8 (Unexpected character.)`,
		`  4: EOF        at 1:8-1:8`,
	}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got:\n%s", len(want), buf.String())
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d:\nwant %q\ngot  %q", i, want[i], lines[i])
		}
	}
}

func TestFormatTokensJSON(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.sdl", []byte("x=1;"))

	var buf bytes.Buffer
	if err := FormatTokensJSON(&buf, lexAll(fs, id), fs); err != nil {
		t.Fatal(err)
	}
	var out []TokenOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(out) != 5 || out[2].Kind != "IntLit" || out[2].Text != "1" || out[4].Kind != "EOF" {
		t.Fatalf("unexpected tokens %+v", out)
	}
}
