package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"sdl/internal/ast"
	"sdl/internal/source"
)

type treeNode struct {
	label    string
	children []*treeNode
}

// FormatTagsTree prints the document as a box-drawing tree:
//
//	conf/app.sdl
//	└─ server "main" port=8080 (span: 1:1-4:2)
//	   └─ tls cert="x" (span: 2:3-2:16)
func FormatTagsTree(w io.Writer, path string, tags []*ast.Tag, fs *source.FileSet) error {
	header := path
	if header == "" {
		header = "Document"
	}
	root := &treeNode{label: header}
	for _, t := range tags {
		root.children = append(root.children, buildTagTreeNode(t, fs))
	}

	var b strings.Builder
	b.WriteString(root.label)
	b.WriteByte('\n')
	writeTreeChildren(&b, root, "")
	_, err := io.WriteString(w, b.String())
	return err
}

func buildTagTreeNode(t *ast.Tag, fs *source.FileSet) *treeNode {
	var label strings.Builder
	label.WriteString(t.Name)
	for _, v := range t.Values {
		label.WriteByte(' ')
		label.WriteString(v.Literal())
	}
	for _, n := range t.AttributeNames() {
		fmt.Fprintf(&label, " %s=%s", n, t.Attributes[n].Literal())
	}
	fmt.Fprintf(&label, " (span: %s)", formatSpan(t.Span, fs))

	node := &treeNode{label: label.String()}
	for _, c := range t.Children {
		node.children = append(node.children, buildTagTreeNode(c, fs))
	}
	return node
}

func writeTreeChildren(b *strings.Builder, node *treeNode, prefix string) {
	for i, child := range node.children {
		last := i == len(node.children)-1
		branch, next := "├─ ", "│  "
		if last {
			branch, next = "└─ ", "   "
		}
		b.WriteString(prefix)
		b.WriteString(branch)
		b.WriteString(child.label)
		b.WriteByte('\n')
		writeTreeChildren(b, child, prefix+next)
	}
}
