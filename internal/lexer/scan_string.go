package lexer

import (
	"sdl/internal/token"
)

// scanString читает "..." без обработки escape-последовательностей.
// '\' только защищает следующий байт от завершения строки; текст остаётся
// как в исходнике. Span токена не включает кавычки. Строка может занимать
// несколько строк исходника.
func (lx *Lexer) scanString() token.Token {
	open := lx.cursor.Mark()
	lx.cursor.Bump() // opening '"'
	body := lx.cursor.Mark()
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '"' {
			sp := lx.cursor.SpanFrom(body)
			lx.cursor.Bump()
			return token.Token{Kind: token.StringLit, Span: sp}
		}
		if b == '\\' {
			lx.cursor.Bump()
			if lx.cursor.EOF() {
				break
			}
		}
		lx.cursor.Bump()
	}
	// EOF без закрывающей кавычки: ошибка указывает на открывающую кавычку и хвост
	return lx.errorToken(lx.cursor.SpanFrom(open), MsgUnterminatedString)
}
