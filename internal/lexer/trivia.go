package lexer

// skipTrivia пропускает пробелы и комментарии перед значимым токеном.
//   - ' ', '\t', '\r' пропускаются молча
//   - '\n' пропускается и увеличивает номер строки (это делает Cursor.Bump)
//   - "//", "#", "--" открывают комментарий до конца строки; сам '\n' не съедается
func (lx *Lexer) skipTrivia() {
	for !lx.cursor.EOF() {
		switch b := lx.cursor.Peek(); b {
		case ' ', '\t', '\r', '\n':
			lx.cursor.Bump()
		case '#':
			lx.skipLineComment()
		case '/', '-':
			b0, b1, ok := lx.cursor.Peek2()
			if !ok || b0 != b1 {
				return
			}
			lx.skipLineComment()
		default:
			return
		}
	}
}

func (lx *Lexer) skipLineComment() {
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
}
