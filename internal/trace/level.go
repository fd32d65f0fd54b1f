package trace

// Level controls how much of a run is recorded.
type Level uint8

const (
	LevelOff    Level = iota // nothing
	LevelError               // keep a ring of recent events, dump it on failure
	LevelPhase               // command and pass boundaries
	LevelDetail              // plus one span per file
	LevelDebug               // plus a point per parsed tag
)

var levelNames = []string{
	LevelOff:    "off",
	LevelError:  "error",
	LevelPhase:  "phase",
	LevelDetail: "detail",
	LevelDebug:  "debug",
}

// finestScope is the most detailed scope each streaming level emits.
var finestScope = []Scope{
	LevelPhase:  ScopePass,
	LevelDetail: ScopeFile,
	LevelDebug:  ScopeNode,
}

func (l Level) String() string { return enumName(levelNames, l) }

// ParseLevel accepts off|error|phase|detail|debug.
func ParseLevel(s string) (Level, error) {
	return parseEnum[Level]("trace level", s, levelNames)
}

// ShouldEmit reports whether a streaming tracer at level l writes events of scope.
// LevelOff and LevelError stream nothing.
func (l Level) ShouldEmit(scope Scope) bool {
	if int(l) >= len(finestScope) || scope == 0 {
		return false
	}
	return scope <= finestScope[l]
}
