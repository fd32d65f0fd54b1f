package lexer

import (
	"sdl/internal/token"
)

// Поддержка: 123, 1.5, 1.5e3, 1.5E-3, 1.5e+12.
// Экспонента допустима только после дробной части. Без суффиксов и без '_'.
// Ошибки возвращаются токеном token.Error; сканирование продолжается после
// уже прочитанных байтов.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	lx.skipDigits()
	if lx.cursor.Peek() != '.' {
		return token.Token{Kind: token.IntLit, Span: lx.cursor.SpanFrom(start)}
	}

	lx.cursor.Bump() // '.'
	if !isDec(lx.cursor.Peek()) {
		return lx.errorToken(lx.cursor.SpanFrom(start), MsgDotNeedsDigit)
	}
	lx.skipDigits()

	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		lx.cursor.Bump()
		if b := lx.cursor.Peek(); b == '+' || b == '-' {
			lx.cursor.Bump()
		}
		if !isDec(lx.cursor.Peek()) {
			return lx.errorToken(lx.cursor.SpanFrom(start), MsgIllegalFloat)
		}
		lx.skipDigits()
	}

	return token.Token{Kind: token.FloatLit, Span: lx.cursor.SpanFrom(start)}
}

func (lx *Lexer) skipDigits() {
	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
}
