package ast

import (
	"sort"
	"strings"

	"sdl/internal/source"
)

// Tag is one statement of the language: a name, positional values,
// named attributes and, for brace-closed tags, children.
type Tag struct {
	Name       string
	Values     []Value
	Attributes map[string]Value
	Children   []*Tag
	// Span covers the tag from its name through its terminator.
	Span source.Span
}

func NewTag(name string) *Tag {
	return &Tag{Name: name, Attributes: make(map[string]Value)}
}

func (t *Tag) AddValue(v Value) {
	t.Values = append(t.Values, v)
}

// SetAttribute stores v under name; a repeated name overwrites the old value.
func (t *Tag) SetAttribute(name string, v Value) {
	if t.Attributes == nil {
		t.Attributes = make(map[string]Value)
	}
	t.Attributes[name] = v
}

func (t *Tag) AddChild(c *Tag) {
	t.Children = append(t.Children, c)
}

// Attribute returns the value stored under name.
func (t *Tag) Attribute(name string) (Value, bool) {
	v, ok := t.Attributes[name]
	return v, ok
}

// Empty reports whether the tag has neither values nor attributes.
func (t *Tag) Empty() bool {
	return len(t.Values) == 0 && len(t.Attributes) == 0
}

// AttributeNames returns attribute keys in sorted order.
func (t *Tag) AttributeNames() []string {
	names := make([]string, 0, len(t.Attributes))
	for k := range t.Attributes {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Equal compares two trees structurally. Spans are ignored.
func (t *Tag) Equal(o *Tag) bool {
	if t == nil || o == nil {
		return t == o
	}
	if t.Name != o.Name || len(t.Values) != len(o.Values) ||
		len(t.Attributes) != len(o.Attributes) || len(t.Children) != len(o.Children) {
		return false
	}
	for i := range t.Values {
		if !t.Values[i].Equal(o.Values[i]) {
			return false
		}
	}
	for k, v := range t.Attributes {
		ov, ok := o.Attributes[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	for i := range t.Children {
		if !t.Children[i].Equal(o.Children[i]) {
			return false
		}
	}
	return true
}

// Walk visits t and its descendants depth-first, parents before children.
// Returning false from fn skips the subtree.
func (t *Tag) Walk(fn func(tag *Tag, depth int) bool) {
	t.walk(fn, 0)
}

func (t *Tag) walk(fn func(tag *Tag, depth int) bool, depth int) {
	if !fn(t, depth) {
		return
	}
	for _, c := range t.Children {
		c.walk(fn, depth+1)
	}
}

// Source re-serializes the tag in canonical form: values in order,
// attributes sorted by name, children indented by two spaces per level.
// A brace body is used whenever the tag has children or is empty.
func (t *Tag) Source() string {
	var b strings.Builder
	t.writeSource(&b, 0)
	return b.String()
}

// DocumentSource re-serializes a list of top-level tags.
func DocumentSource(tags []*Tag) string {
	var b strings.Builder
	for _, t := range tags {
		t.writeSource(&b, 0)
	}
	return b.String()
}

func (t *Tag) writeSource(b *strings.Builder, depth int) {
	indent := strings.Repeat("  ", depth)
	b.WriteString(indent)
	b.WriteString(t.Name)
	for _, v := range t.Values {
		b.WriteByte(' ')
		b.WriteString(v.Literal())
	}
	for _, name := range t.AttributeNames() {
		b.WriteByte(' ')
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(t.Attributes[name].Literal())
	}
	if len(t.Children) == 0 && !t.Empty() {
		b.WriteString(";\n")
		return
	}
	b.WriteString(" {\n")
	for _, c := range t.Children {
		c.writeSource(b, depth+1)
	}
	b.WriteString(indent)
	b.WriteString("}\n")
}
