package token

import (
	"sdl/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	// Msg is set only for Kind == Error.
	Msg string
}

// Text returns the lexeme from f. Tokens never own their text.
func (t Token) Text(f *source.File) string {
	if f == nil {
		return ""
	}
	return f.Slice(t.Span.Start, t.Span.End)
}

// IsLiteral reports whether the token can start a literal value.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, StringLit, KwTrue, KwFalse, KwNull:
		return true
	default:
		return false
	}
}

// IsPunct reports whether the token is one of '=', ';', '{', '}'.
func (t Token) IsPunct() bool {
	switch t.Kind {
	case Assign, Semicolon, LBrace, RBrace:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a reserved word.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KwTrue, KwFalse, KwNull:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsError reports whether the token carries a lexical error.
func (t Token) IsError() bool { return t.Kind == Error }

// IsEOF reports whether the token is the end-of-input sentinel.
func (t Token) IsEOF() bool { return t.Kind == EOF }
