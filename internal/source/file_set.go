package source

import (
	"crypto/sha256"
	"fmt"
	"os"
	"strings"

	"fortio.org/safecast"
)

// FileSet owns every document read during one run. IDs are dense indexes
// into the set and stay valid for its lifetime.
type FileSet struct {
	files   []File
	baseDir string // каталог, относительно которого печатаются пути
}

func NewFileSet() *FileSet {
	return &FileSet{}
}

// NewFileSetWithBase creates a set whose paths are shown relative to baseDir.
func NewFileSetWithBase(baseDir string) *FileSet {
	return &FileSet{baseDir: baseDir}
}

func (fileSet *FileSet) SetBaseDir(dir string) {
	fileSet.baseDir = dir
}

// BaseDir returns the base directory, falling back to the working directory.
func (fileSet *FileSet) BaseDir() string {
	if fileSet.baseDir != "" {
		return fileSet.baseDir
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return ""
}

// Add stores content under path and returns its new FileID.
// Adding the same path twice yields two independent files.
func (fileSet *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	n, err := safecast.Conv[uint32](len(fileSet.files))
	if err != nil {
		panic(fmt.Errorf("len files overflow: %w", err))
	}
	fileSet.files = append(fileSet.files, File{
		ID:      FileID(n),
		Path:    normalizePath(path),
		Content: content,
		LineIdx: buildLineIndex(content),
		Hash:    sha256.Sum256(content),
		Flags:   flags,
	})
	return FileID(n)
}

// Load reads path from disk. A leading UTF-8 BOM is dropped; every other
// byte, CR included, is kept.
func (fileSet *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	if _, err := safecast.Conv[uint32](len(raw)); err != nil {
		return 0, fmt.Errorf("%s: file too large: %w", path, err)
	}
	content, flags := stripBOM(raw)
	return fileSet.Add(path, content, flags), nil
}

// AddVirtual adds in-memory content (stdin, tests) with FileVirtual set.
// It drops a BOM the same way Load does.
func (fileSet *FileSet) AddVirtual(name string, content []byte) FileID {
	content, flags := stripBOM(content)
	return fileSet.Add(name, content, flags|FileVirtual)
}

// Get returns the file for id, or nil if the set has no such file.
func (fileSet *FileSet) Get(id FileID) *File {
	if int(id) >= len(fileSet.files) {
		return nil
	}
	return &fileSet.files[id]
}

func (fileSet *FileSet) Len() int {
	return len(fileSet.files)
}

// Resolve converts both ends of span into line/column pairs.
func (fileSet *FileSet) Resolve(span Span) (start, end LineCol) {
	f := &fileSet.files[span.File]
	return f.position(span.Start), f.position(span.End)
}

// Slice returns the text of [start, end), clamped to the content.
func (f *File) Slice(start, end uint32) string {
	n := f.Len()
	end = min(end, n)
	start = min(start, end)
	return string(f.Content[start:end])
}

func (f *File) Len() uint32 {
	n, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("content length overflow: %w", err))
	}
	return n
}

// RestOfLine returns the text from off up to the next newline, without the
// CR of a CRLF ending.
func (f *File) RestOfLine(off uint32) string {
	n := f.Len()
	if off >= n {
		return ""
	}
	end := off
	for end < n && f.Content[end] != '\n' {
		end++
	}
	return strings.TrimSuffix(string(f.Content[off:end]), "\r")
}

// FormatPath renders the file path for humans.
// mode: "absolute", "relative", "basename", "auto"; anything else prints Path.
func (f *File) FormatPath(mode, baseDir string) string {
	switch mode {
	case "absolute":
		return absolutePath(f.Path)
	case "relative":
		if baseDir == "" {
			if wd, err := os.Getwd(); err == nil {
				baseDir = wd
			}
		}
		if rel, err := RelativePath(f.Path, baseDir); err == nil {
			return rel
		}
		return f.Path
	case "basename":
		return baseName(f.Path)
	case "auto":
		// длинные абсолютные пути сокращаем до имени файла
		if len(f.Path) >= 40 && isAbs(f.Path) {
			return baseName(f.Path)
		}
		return f.Path
	default:
		return f.Path
	}
}
