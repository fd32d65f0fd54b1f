package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"sdl/internal/ast"
	"sdl/internal/source"
)

// TagFormat selects how parsed tags are written.
type TagFormat string

const (
	TagFormatPretty  TagFormat = "pretty"
	TagFormatTree    TagFormat = "tree"
	TagFormatJSON    TagFormat = "json"
	TagFormatYAML    TagFormat = "yaml"
	TagFormatMsgpack TagFormat = "msgpack"
	TagFormatSource  TagFormat = "sdl"
)

// TagFormats lists accepted format names in help order.
var TagFormats = []TagFormat{
	TagFormatPretty, TagFormatTree, TagFormatJSON, TagFormatYAML, TagFormatMsgpack, TagFormatSource,
}

// ParseTagFormat validates a user-supplied format name.
func ParseTagFormat(s string) (TagFormat, error) {
	for _, f := range TagFormats {
		if string(f) == s {
			return f, nil
		}
	}
	names := make([]string, len(TagFormats))
	for i, f := range TagFormats {
		names[i] = string(f)
	}
	return "", fmt.Errorf("unknown format %q (want one of %s)", s, strings.Join(names, ", "))
}

// Binary reports whether the format produces non-text output.
func (f TagFormat) Binary() bool {
	return f == TagFormatMsgpack
}

// TagOutput is the encoder-neutral shape of a tag.
type TagOutput struct {
	Name       string         `json:"name" yaml:"name" msgpack:"name"`
	Values     []any          `json:"values,omitempty" yaml:"values,omitempty" msgpack:"values,omitempty"`
	Attributes map[string]any `json:"attributes,omitempty" yaml:"attributes,omitempty" msgpack:"attributes,omitempty"`
	Children   []TagOutput    `json:"children,omitempty" yaml:"children,omitempty" msgpack:"children,omitempty"`
	Line       uint32         `json:"line,omitempty" yaml:"line,omitempty" msgpack:"line,omitempty"`
}

// DocumentOutput wraps the tags of one file.
type DocumentOutput struct {
	File string      `json:"file,omitempty" yaml:"file,omitempty" msgpack:"file,omitempty"`
	Tags []TagOutput `json:"tags" yaml:"tags" msgpack:"tags"`
}

// floatOutput keeps a float distinct from an integer in text encoders:
// 1.0 stays "1.0" instead of collapsing to 1. msgpack sees a plain float64.
type floatOutput float64

func (f floatOutput) literal() (string, error) {
	if math.IsInf(float64(f), 0) || math.IsNaN(float64(f)) {
		return "", fmt.Errorf("float %v has no literal form", float64(f))
	}
	return ast.Float(float64(f)).Literal(), nil
}

func (f floatOutput) MarshalJSON() ([]byte, error) {
	s, err := f.literal()
	return []byte(s), err
}

func (f floatOutput) MarshalYAML() (any, error) {
	s, err := f.literal()
	if err != nil {
		return nil, err
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: s}, nil
}

func outputValue(v ast.Value) any {
	if v.Kind == ast.ValueFloat {
		return floatOutput(v.Float)
	}
	return v.Interface()
}

// BuildTagOutput converts a tag tree for generic encoders.
func BuildTagOutput(t *ast.Tag) TagOutput {
	out := TagOutput{Name: t.Name, Line: t.Span.Line}
	if len(t.Values) > 0 {
		out.Values = make([]any, len(t.Values))
		for i, v := range t.Values {
			out.Values[i] = outputValue(v)
		}
	}
	if len(t.Attributes) > 0 {
		out.Attributes = make(map[string]any, len(t.Attributes))
		for k, v := range t.Attributes {
			out.Attributes[k] = outputValue(v)
		}
	}
	for _, c := range t.Children {
		out.Children = append(out.Children, BuildTagOutput(c))
	}
	return out
}

// BuildDocumentOutput converts all top-level tags of a file.
func BuildDocumentOutput(path string, tags []*ast.Tag) DocumentOutput {
	doc := DocumentOutput{File: path, Tags: make([]TagOutput, 0, len(tags))}
	for _, t := range tags {
		doc.Tags = append(doc.Tags, BuildTagOutput(t))
	}
	return doc
}

// FormatTags writes tags in the requested format. fs is only used by the
// tree format to resolve spans and may be nil.
func FormatTags(w io.Writer, path string, tags []*ast.Tag, format TagFormat, fs *source.FileSet) error {
	switch format {
	case TagFormatPretty:
		return FormatTagsPretty(w, tags)
	case TagFormatTree:
		return FormatTagsTree(w, path, tags, fs)
	case TagFormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(BuildDocumentOutput(path, tags))
	case TagFormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(BuildDocumentOutput(path, tags)); err != nil {
			return err
		}
		return encoder.Close()
	case TagFormatMsgpack:
		encoder := msgpack.NewEncoder(w)
		encoder.SetSortMapKeys(true)
		return encoder.Encode(BuildDocumentOutput(path, tags))
	case TagFormatSource:
		_, err := io.WriteString(w, ast.DocumentSource(tags))
		return err
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// Structured reports whether the format encodes whole documents
// (json, yaml, msgpack) rather than printing text per file.
func (f TagFormat) Structured() bool {
	return f == TagFormatJSON || f == TagFormatYAML || f == TagFormatMsgpack
}

// FormatDocuments writes several files at once: a JSON array,
// a multi-document YAML stream or a msgpack array.
func FormatDocuments(w io.Writer, docs []DocumentOutput, format TagFormat) error {
	if docs == nil {
		docs = []DocumentOutput{}
	}
	switch format {
	case TagFormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(docs)
	case TagFormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		for i := range docs {
			if err := encoder.Encode(docs[i]); err != nil {
				return err
			}
		}
		return encoder.Close()
	case TagFormatMsgpack:
		encoder := msgpack.NewEncoder(w)
		encoder.SetSortMapKeys(true)
		return encoder.Encode(docs)
	default:
		return fmt.Errorf("format %q is not a document encoding", format)
	}
}

// FormatTagsPretty prints every tag in the block layout:
//
//	Tag server {
//	  values: main
//	  attributes: port=8080
//	  children:
//	    Tag tls {
//	      values:
//	    }
//	}
func FormatTagsPretty(w io.Writer, tags []*ast.Tag) error {
	var b strings.Builder
	for _, t := range tags {
		writeTagPretty(&b, t, 0)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeTagPretty(b *strings.Builder, t *ast.Tag, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(b, "%sTag %s {\n", indent, t.Name)

	vals := make([]string, len(t.Values))
	for i, v := range t.Values {
		vals[i] = v.String()
	}
	if len(vals) == 0 {
		fmt.Fprintf(b, "%s  values:\n", indent)
	} else {
		fmt.Fprintf(b, "%s  values: %s\n", indent, strings.Join(vals, ", "))
	}

	if len(t.Attributes) > 0 {
		names := t.AttributeNames()
		attrs := make([]string, len(names))
		for i, n := range names {
			attrs[i] = n + "=" + t.Attributes[n].String()
		}
		fmt.Fprintf(b, "%s  attributes: %s\n", indent, strings.Join(attrs, ", "))
	}

	if len(t.Children) > 0 {
		fmt.Fprintf(b, "%s  children:\n", indent)
		for _, c := range t.Children {
			writeTagPretty(b, c, depth+2)
		}
	}
	fmt.Fprintf(b, "%s}\n", indent)
}
