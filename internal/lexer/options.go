package lexer

import (
	"sdl/internal/diag"
	"sdl/internal/source"
)

// Messages carried by token.Error tokens.
const (
	MsgDotNeedsDigit       = "'.' must be followed by digit."
	MsgIllegalFloat        = "Illegal float."
	MsgUnterminatedString  = "Unterminated string."
	MsgUnexpectedCharacter = "Unexpected character."
)

type Options struct {
	// Reporter может быть nil — тогда ошибки только возвращаются токенами.
	Reporter diag.Reporter
}

// CodeFor maps a lexical error message to its diagnostic code.
func CodeFor(msg string) diag.Code {
	switch msg {
	case MsgDotNeedsDigit, MsgIllegalFloat:
		return diag.LexBadNumber
	case MsgUnterminatedString:
		return diag.LexUnterminatedString
	case MsgUnexpectedCharacter:
		return diag.LexUnknownChar
	}
	return diag.LexInfo
}

func (lx *Lexer) report(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, diag.SevError, sp, msg, nil)
	}
}
