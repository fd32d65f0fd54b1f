package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("config.sdl", []byte("a 1;"), 0)
	if id1 != 0 {
		t.Errorf("Expected first FileID to be 0, got %d", id1)
	}

	id2 := fs.Add("config.sdl", []byte("a 2;"), 0)
	if id2 != 1 {
		t.Errorf("Expected second FileID to be 1, got %d", id2)
	}

	// старая версия остаётся доступной
	if got := string(fs.Get(id1).Content); got != "a 1;" {
		t.Errorf("Expected first file content 'a 1;', got %q", got)
	}
	if fs.Len() != 2 {
		t.Errorf("Expected 2 files, got %d", fs.Len())
	}
	if fs.Get(FileID(7)) != nil {
		t.Error("Expected nil for unknown FileID")
	}
}

func TestAddVirtualLineIdx(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.sdl", []byte("a\nbb\n\nc"))
	file := fs.Get(id)

	want := []uint32{1, 4, 5}
	if len(file.LineIdx) != len(want) {
		t.Fatalf("Expected LineIdx %v, got %v", want, file.LineIdx)
	}
	for i := range want {
		if file.LineIdx[i] != want[i] {
			t.Errorf("LineIdx[%d] = %d, want %d", i, file.LineIdx[i], want[i])
		}
	}
	if file.Flags&FileVirtual == 0 {
		t.Error("Expected FileVirtual flag to be set")
	}
}

func TestResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.sdl", []byte("ab\ncd\n"))

	tests := []struct {
		name string
		off  uint32
		want LineCol
	}{
		{"start", 0, LineCol{Line: 1, Col: 1}},
		{"newline belongs to its line", 2, LineCol{Line: 1, Col: 3}},
		{"second line", 3, LineCol{Line: 2, Col: 1}},
		{"second line col 2", 4, LineCol{Line: 2, Col: 2}},
		{"end of file", 6, LineCol{Line: 3, Col: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
			if start != tt.want {
				t.Errorf("Resolve(%d) = %+v, want %+v", tt.off, start, tt.want)
			}
		})
	}
}

func TestResolveUTF8(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.sdl", []byte("α\n"))

	start, end := fs.Resolve(Span{File: id, Start: 0, End: 1})
	if start != (LineCol{Line: 1, Col: 1}) {
		t.Errorf("Expected start 1:1, got %+v", start)
	}
	if end != (LineCol{Line: 1, Col: 2}) {
		t.Errorf("Expected end 1:2, got %+v", end)
	}
}

func TestFileSliceAndLines(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.sdl", []byte("first 1;\nsecond \"x\";\n"))
	file := fs.Get(id)

	if got := file.Slice(0, 5); got != "first" {
		t.Errorf("Slice(0,5) = %q", got)
	}
	if got := file.Slice(100, 200); got != "" {
		t.Errorf("out of range Slice = %q, want empty", got)
	}
	if got := file.RestOfLine(9); got != "second \"x\";" {
		t.Errorf("RestOfLine(9) = %q", got)
	}
	if got := file.RestOfLine(6); got != "1;" {
		t.Errorf("RestOfLine(6) = %q", got)
	}

	crlf := fs.Get(fs.AddVirtual("crlf.sdl", []byte("a 1;\r\nb 2;\r\n")))
	if got := crlf.RestOfLine(0); got != "a 1;" {
		t.Errorf("RestOfLine over CRLF = %q", got)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.sdl")
	content := []byte{0xEF, 0xBB, 0xBF}
	content = append(content, []byte("a 1;\r\nb 2;\r\n")...)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	file := fs.Get(id)
	// BOM снимается, CRLF остаётся как есть
	if string(file.Content) != "a 1;\r\nb 2;\r\n" {
		t.Errorf("unexpected content %q", string(file.Content))
	}
	if file.Flags != FileHadBOM {
		t.Errorf("expected only the BOM flag, got %b", file.Flags)
	}
	if _, end := fs.Resolve(Span{File: id, Start: 6, End: 10}); end.Line != 2 {
		t.Errorf("expected second line after CRLF, got %d", end.Line)
	}

	if _, err := fs.Load(filepath.Join(dir, "missing.sdl")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestFormatPath(t *testing.T) {
	f := &File{Path: "/home/user/project/very/long/directory/name/config.sdl"}
	if got := f.FormatPath("basename", ""); got != "config.sdl" {
		t.Errorf("basename = %q", got)
	}
	if got := f.FormatPath("auto", ""); got != "config.sdl" {
		t.Errorf("auto on long abs path = %q", got)
	}
	short := &File{Path: "conf/a.sdl"}
	if got := short.FormatPath("auto", ""); got != "conf/a.sdl" {
		t.Errorf("auto on short path = %q", got)
	}
}
