package lexer

import (
	"sdl/internal/source"
	"sdl/internal/token"
)

// Lexer turns one source file into a lazy stream of tokens.
// Lexical problems come back as token.Error values; scanning never stops
// before end of input.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Next возвращает следующий значимый токен.
// После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	lx.skipTrivia()

	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
	}

	ch := lx.cursor.Peek()
	switch {
	case isAlphaByte(ch):
		return lx.scanIdentOrKeyword()
	case ch >= utf8RuneSelf:
		// Unicode буква → идентификатор, иначе Unexpected character
		return lx.scanIdentOrKeyword()
	case isDec(ch):
		return lx.scanNumber()
	case ch == '"':
		return lx.scanString()
	default:
		return lx.scanPunct()
	}
}

// Slice returns the source text for [start, end) regardless of scan position.
func (lx *Lexer) Slice(start, end uint32) string {
	return lx.file.Slice(start, end)
}

// SourceLength is the byte length of the scanned text.
func (lx *Lexer) SourceLength() uint32 {
	return lx.cursor.Limit
}

// CurrentLine is the 1-based line of the scan position.
func (lx *Lexer) CurrentLine() uint32 {
	return lx.cursor.Line
}

// File returns the file being scanned.
func (lx *Lexer) File() *source.File {
	return lx.file
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off, Line: lx.cursor.Line}
}

func (lx *Lexer) errorToken(sp source.Span, msg string) token.Token {
	lx.report(CodeFor(msg), sp, msg)
	return token.Token{Kind: token.Error, Span: sp, Msg: msg}
}
