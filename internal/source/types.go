package source

// FileID indexes a File inside its FileSet.
type FileID uint32

// FileFlags record how a file entered the set.
type FileFlags uint8

const (
	// FileVirtual marks content that did not come from disk (stdin, tests).
	FileVirtual FileFlags = 1 << iota
	// FileHadBOM is set when a leading UTF-8 BOM was dropped.
	FileHadBOM
)

// File is one document. Content never changes after Add; Hash is the
// SHA-256 of Content and LineIdx holds the offset of every '\n'.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol is a 1-based line and byte column.
type LineCol struct {
	Line uint32
	Col  uint32
}
