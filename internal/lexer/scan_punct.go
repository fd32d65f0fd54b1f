package lexer

import (
	"sdl/internal/token"
)

var punct = [utf8RuneSelf]token.Kind{
	'=': token.Assign,
	';': token.Semicolon,
	'{': token.LBrace,
	'}': token.RBrace,
}

// scanPunct распознаёт односимвольную пунктуацию.
// Любой другой символ (целая руна) съедается и превращается в ошибку.
func (lx *Lexer) scanPunct() token.Token {
	start := lx.cursor.Mark()
	b := lx.cursor.Peek()
	if b < utf8RuneSelf && punct[b] != token.Error {
		lx.cursor.Bump()
		return token.Token{Kind: punct[b], Span: lx.cursor.SpanFrom(start)}
	}
	_, sz := lx.peekRune()
	if sz == 0 {
		sz = 1
	}
	lx.cursor.Advance(sz)
	return lx.errorToken(lx.cursor.SpanFrom(start), MsgUnexpectedCharacter)
}
