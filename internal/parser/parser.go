package parser

import (
	"sdl/internal/ast"
	"sdl/internal/diag"
	"sdl/internal/lexer"
	"sdl/internal/source"
	"sdl/internal/token"
)

// DefaultMaxDepth bounds brace nesting when Options.MaxDepth is zero.
const DefaultMaxDepth = 512

type Options struct {
	// MaxDepth limits nested '{' blocks; 0 means DefaultMaxDepth.
	MaxDepth int
	// Reporter receives the error that stopped the parse, if any.
	Reporter diag.Reporter
}

// Parser — состояние парсера на один файл
type Parser struct {
	lx       *lexer.Lexer
	opts     Options
	current  token.Token
	previous token.Token
	depth    int
}

// New primes the lookahead with the first token of lx.
func New(lx *lexer.Lexer, opts Options) *Parser {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	p := &Parser{lx: lx, opts: opts}
	start := source.Span{File: lx.File().ID, Line: 1}
	p.previous = token.Token{Kind: token.EOF, Span: start}
	p.current = lx.Next()
	return p
}

// ParseFile is a shortcut for New(lexer.New(file, lexOpts), opts).Parse().
func ParseFile(file *source.File, lexOpts lexer.Options, opts Options) ([]*ast.Tag, *Error) {
	return New(lexer.New(file, lexOpts), opts).Parse()
}

// Parse reads tag declarations until end of input or the first error.
// Tags completed before the error are always returned.
func (p *Parser) Parse() ([]*ast.Tag, *Error) {
	var tags []*ast.Tag
	for !p.at(token.EOF) {
		tag, err := p.tagDeclaration()
		if err != nil {
			p.emit(err)
			return tags, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

// advance сдвигает окно previous/current на один токен и возвращает съеденный.
func (p *Parser) advance() token.Token {
	p.previous = p.current
	p.current = p.lx.Next()
	return p.previous
}

func (p *Parser) at(k token.Kind) bool {
	return p.current.Kind == k
}

func (p *Parser) text(tok token.Token) string {
	return p.lx.Slice(tok.Span.Start, tok.Span.End)
}

// errorSpan anchors errors on current, or on previous once input is exhausted.
func (p *Parser) errorSpan() source.Span {
	if p.at(token.EOF) && p.previous.Span.End > 0 {
		return p.previous.Span
	}
	return p.current.Span
}

func (p *Parser) fail(code diag.Code, msg string) *Error {
	return &Error{Code: code, Message: msg, Span: p.errorSpan()}
}

func (p *Parser) failAt(code diag.Code, sp source.Span, msg string) *Error {
	return &Error{Code: code, Message: msg, Span: sp}
}

// lexError превращает токен-ошибку лексера в ошибку разбора.
func (p *Parser) lexError() *Error {
	return &Error{Code: lexer.CodeFor(p.current.Msg), Message: p.current.Msg, Span: p.current.Span}
}

func (p *Parser) emit(err *Error) {
	if p.opts.Reporter == nil || err == nil {
		return
	}
	b := diag.ReportError(p.opts.Reporter, err.Code, err.Span, err.Message)
	for _, n := range err.Notes {
		b.WithNote(n.Span, n.Msg)
	}
	b.Emit()
}
