// Package parser builds the tag tree from the lexer's token stream.
//
// The parser is a plain recursive-descent reader with one token of
// lookahead (current) and the token before it (previous). It stops at the
// first lexical or syntax error: everything parsed before the error is
// returned together with a *Error, nothing after it is looked at.
//
//	document        := tag_declaration* EOF
//	tag_declaration := IDENT (attribute | literal)* terminator
//	terminator      := ';' | '{' tag_declaration* '}'
//	attribute       := IDENT '=' literal
//	literal         := INT | FLOAT | STRING | 'true' | 'false' | 'null'
//
// A ';'-closed tag must carry at least one value or attribute; a
// brace-closed tag may be empty.
package parser
