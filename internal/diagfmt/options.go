package diagfmt

// PathMode selects how file paths appear in diagnostics.
type PathMode uint8

const (
	// PathModeAuto shortens long absolute paths to the file name.
	PathModeAuto PathMode = iota
	PathModeAbsolute
	// PathModeRelative prints paths relative to the FileSet base directory.
	PathModeRelative
	PathModeBasename
)

// String returns the mode name understood by source.File.FormatPath.
func (m PathMode) String() string {
	switch m {
	case PathModeAbsolute:
		return "absolute"
	case PathModeRelative:
		return "relative"
	case PathModeBasename:
		return "basename"
	default:
		return "auto"
	}
}

type PrettyOpts struct {
	Color     bool
	PathMode  PathMode
	ShowNotes bool
}

type JSONOpts struct {
	IncludePositions bool // добавить колонки и конечную строку
	PathMode         PathMode
	Max              int // обрезает вывод, Bag не трогает
	IncludeNotes     bool
}
