package parser

import (
	"fmt"

	"sdl/internal/diag"
	"sdl/internal/source"
)

// Сообщения синтаксических ошибок.
const (
	MsgExpectIdentifier     = "Expect identifier."
	MsgInvalidIdentifier    = "Invalid identifier."
	MsgExpectLiteral        = "Expect literal."
	MsgExpectAssign         = "Expect '=' after attribute name."
	MsgUnexpectedIdentifier = "Unexpected identifier."
	MsgExpectLiteralAfterEq = "Expect literal after '='."
	MsgExpectValueOrAttr    = "Expect literal value or attribute."
	MsgExpectTerminator     = "Expect ';' or '{'."
	MsgExpectRBrace         = "Expect '}' after tag body."
	MsgNestingTooDeep       = "Nesting too deep."
	MsgIntegerOutOfRange    = "Integer literal out of range."
	MsgFloatOutOfRange      = "Float literal out of range."

	// MsgBlockOpenedHere is the note attached to MsgExpectRBrace.
	MsgBlockOpenedHere = "Block opened here."
)

// Error is the first lexical or syntax error of a parse.
type Error struct {
	Code    diag.Code
	Message string
	Span    source.Span
	// Notes point at related locations, such as the '{' of an unclosed block.
	Notes []diag.Note
}

func (e *Error) Error() string {
	return fmt.Sprintf("line %d: %s", e.Span.Line, e.Message)
}

func (e *Error) withNote(sp source.Span, msg string) *Error {
	e.Notes = append(e.Notes, diag.Note{Span: sp, Msg: msg})
	return e
}

// Lexical reports whether the error came from a lexer error token.
func (e *Error) Lexical() bool {
	return e.Code >= diag.LexInfo && e.Code < diag.SynInfo
}
