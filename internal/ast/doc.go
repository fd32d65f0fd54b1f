// Package ast holds the tag tree produced by the parser.
//
// A document is a list of top-level *Tag values. Each Tag owns its values,
// attributes and children outright; there are no back-references, so trees
// can be copied, compared and encoded without an arena.
package ast
