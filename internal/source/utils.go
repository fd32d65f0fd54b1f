package source

import (
	"bytes"
	"path/filepath"
	"sort"
	"strings"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// stripBOM drops a leading UTF-8 BOM. Line endings stay as they are: the
// lexer skips '\r' and string literals keep it.
func stripBOM(raw []byte) ([]byte, FileFlags) {
	if content, ok := bytes.CutPrefix(raw, utf8BOM); ok {
		return content, FileHadBOM
	}
	return raw, 0
}

// buildLineIndex records the offset of every '\n'.
func buildLineIndex(content []byte) []uint32 {
	idx := make([]uint32, 0, bytes.Count(content, []byte{'\n'}))
	for i, b := range content {
		if b == '\n' {
			idx = append(idx, uint32(i))
		}
	}
	return idx
}

// position maps a byte offset to a 1-based line and byte column.
// A newline belongs to the line it terminates.
func (f *File) position(off uint32) LineCol {
	// число переводов строки строго до off
	before := sort.Search(len(f.LineIdx), func(i int) bool { return f.LineIdx[i] >= off })
	lineStart := uint32(0)
	if before > 0 {
		lineStart = f.LineIdx[before-1] + 1
	}
	return LineCol{Line: uint32(before) + 1, Col: off - lineStart + 1}
}

func normalizePath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}

func absolutePath(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return p
	}
	return filepath.ToSlash(abs)
}

func isAbs(p string) bool {
	return filepath.IsAbs(filepath.FromSlash(p))
}

func baseName(p string) string {
	return filepath.Base(p)
}

// RelativePath returns p relative to baseDir. A path outside baseDir is
// returned absolute rather than as a chain of "../".
func RelativePath(p, baseDir string) (string, error) {
	absPath, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(absBase, absPath)
	if err != nil {
		return "", err
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.ToSlash(absPath), nil
	}
	return filepath.ToSlash(rel), nil
}
