// Package testkit holds checks shared by tests of several packages.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"sdl/internal/ast"
	"sdl/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on parsed tags:
// 1) every tag span is non-empty, points at sf and lies within its content
// 2) a tag's Line is the line its span starts on
// 3) children lie inside their parent's span
// 4) siblings appear in source order and do not overlap
func CheckSpanInvariants(tags []*ast.Tag, sf *source.File) error {
	if sf == nil {
		return fmt.Errorf("nil file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	return checkSiblings(tags, sf, source.Span{File: sf.ID, Start: 0, End: lenContent})
}

func checkSiblings(tags []*ast.Tag, sf *source.File, parent source.Span) error {
	var prevEnd uint32
	for i, t := range tags {
		if t == nil {
			return fmt.Errorf("nil tag at index %d", i)
		}
		sp := t.Span
		if sp.End <= sp.Start {
			return fmt.Errorf("tag %q has empty span %v", t.Name, sp)
		}
		if sp.File != sf.ID {
			return fmt.Errorf("tag %q span file mismatch: got=%d want=%d", t.Name, sp.File, sf.ID)
		}
		if sp.Start < parent.Start || sp.End > parent.End {
			return fmt.Errorf("tag %q span %v is outside parent span %v", t.Name, sp, parent)
		}
		if i > 0 && sp.Start < prevEnd {
			return fmt.Errorf("tag %q span %v overlaps previous sibling ending at %d", t.Name, sp, prevEnd)
		}
		if want := lineOf(sf, sp.Start); sp.Line != want {
			return fmt.Errorf("tag %q line = %d, want %d", t.Name, sp.Line, want)
		}
		if err := checkSiblings(t.Children, sf, sp); err != nil {
			return err
		}
		prevEnd = sp.End
	}
	return nil
}

// lineOf returns the 1-based line holding off.
func lineOf(sf *source.File, off uint32) uint32 {
	line := uint32(1)
	for _, b := range sf.Content[:off] {
		if b == '\n' {
			line++
		}
	}
	return line
}
