package lexer

import (
	"unicode"
	"unicode/utf8"
)

// peekRune читает текущую позицию как руну
func (lx *Lexer) peekRune() (r rune, size int) {
	if lx.cursor.EOF() {
		return utf8.RuneError, 0
	}
	b := lx.cursor.Peek()
	if b < utf8.RuneSelf { // fast-path ASCII
		return rune(b), 1
	}
	return utf8.DecodeRune(lx.file.Content[lx.cursor.Off:lx.cursor.Limit])
}

// ===== Классификаторы =====

func isAlphaByte(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

// Продолжение идентификатора: буквы, цифры и '_', ':', '$', '-'.
func isIdentContinueByte(b byte) bool {
	switch b {
	case '_', ':', '$', '-':
		return true
	}
	return isAlphaByte(b) || isDec(b)
}

func isIdentStartRune(r rune) bool {
	if r < utf8RuneSelf {
		return isAlphaByte(byte(r))
	}
	return r != utf8.RuneError && unicode.IsLetter(r)
}

func isIdentContinueRune(r rune) bool {
	if r < utf8RuneSelf {
		return isIdentContinueByte(byte(r))
	}
	return r != utf8.RuneError && (unicode.IsLetter(r) || unicode.IsDigit(r))
}

func isDec(b byte) bool { return b >= '0' && b <= '9' }
