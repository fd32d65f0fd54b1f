package lexer

import (
	"sdl/internal/token"
)

const utf8RuneSelf = 0x80

// scanIdentOrKeyword сканирует [Ident] и проверяет через LookupKeyword.
// Ключевые слова регистрозависимые (только lowercase).
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()

	r, sz := lx.peekRune()
	if !isIdentStartRune(r) {
		return lx.scanPunct()
	}
	lx.cursor.Advance(sz)
	for {
		b := lx.cursor.Peek()
		if b < utf8RuneSelf {
			if !isIdentContinueByte(b) {
				break
			}
			lx.cursor.Bump()
			continue
		}
		r2, sz2 := lx.peekRune()
		if sz2 == 0 || !isIdentContinueRune(r2) {
			break
		}
		lx.cursor.Advance(sz2)
	}

	sp := lx.cursor.SpanFrom(start)
	if k, ok := token.LookupKeyword(lx.file.Slice(sp.Start, sp.End)); ok {
		return token.Token{Kind: k, Span: sp}
	}
	return token.Token{Kind: token.Ident, Span: sp}
}
