package trace

import "time"

// Kind distinguishes span boundaries from instant events.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
)

var kindNames = []string{KindSpanBegin: "begin", KindSpanEnd: "end", KindPoint: "point"}

func (k Kind) String() string { return enumName(kindNames, k) }

// Scope is the granularity of an event; smaller is coarser.
type Scope uint8

const (
	// ScopeDriver covers a whole CLI command.
	ScopeDriver Scope = iota + 1
	// ScopePass covers one phase of a run: load, parse, render.
	ScopePass
	// ScopeFile covers one document.
	ScopeFile
	// ScopeNode covers single tags.
	ScopeNode
)

var scopeNames = []string{ScopeDriver: "driver", ScopePass: "pass", ScopeFile: "file", ScopeNode: "node"}

func (s Scope) String() string { return enumName(scopeNames, s) }

// Event is one record of a trace. Seq is assigned by the tracer that stores it.
type Event struct {
	Time     time.Time
	Seq      uint64
	Kind     Kind
	Scope    Scope
	SpanID   uint64 // 0 for points
	ParentID uint64 // 0 at the root
	Name     string // "parse", "file:conf/app.sdl", "tag"
	Detail   string
	Dur      time.Duration // set on span end events
	Extra    map[string]string
}
