package parser

import (
	"strconv"

	"sdl/internal/ast"
	"sdl/internal/diag"
	"sdl/internal/token"
)

// identifier съедает IDENT и возвращает его текст.
func (p *Parser) identifier() (string, *Error) {
	switch p.current.Kind {
	case token.Ident:
		return p.text(p.advance()), nil
	case token.EOF:
		return "", p.fail(diag.SynExpectIdentifier, MsgExpectIdentifier)
	case token.Error:
		return "", p.lexError()
	default:
		return "", p.fail(diag.SynExpectIdentifier, MsgInvalidIdentifier)
	}
}

// literal съедает литерал и превращает его в ast.Value.
func (p *Parser) literal() (ast.Value, *Error) {
	tok := p.current
	switch tok.Kind {
	case token.IntLit:
		n, err := strconv.ParseInt(p.text(tok), 10, 64)
		if err != nil {
			return ast.Value{}, p.fail(diag.SynLiteralOutOfRange, MsgIntegerOutOfRange)
		}
		p.advance()
		return ast.Int(n), nil
	case token.FloatLit:
		f, err := strconv.ParseFloat(p.text(tok), 64)
		if err != nil {
			// форма гарантирована лексером, ошибка возможна только по диапазону
			return ast.Value{}, p.fail(diag.SynLiteralOutOfRange, MsgFloatOutOfRange)
		}
		p.advance()
		return ast.Float(f), nil
	case token.StringLit:
		p.advance()
		return ast.String(p.text(tok)), nil
	case token.KwTrue:
		p.advance()
		return ast.Bool(true), nil
	case token.KwFalse:
		p.advance()
		return ast.Bool(false), nil
	case token.KwNull:
		p.advance()
		return ast.Null(), nil
	case token.Error:
		return ast.Value{}, p.lexError()
	default:
		return ast.Value{}, p.fail(diag.SynExpectLiteral, MsgExpectLiteral)
	}
}

// attribute разбирает IDENT '=' literal.
func (p *Parser) attribute() (string, ast.Value, *Error) {
	name, err := p.identifier()
	if err != nil {
		return "", ast.Value{}, err
	}
	switch p.current.Kind {
	case token.Assign:
	case token.EOF:
		return "", ast.Value{}, p.fail(diag.SynExpectAssign, MsgUnexpectedIdentifier)
	case token.Error:
		return "", ast.Value{}, p.lexError()
	default:
		return "", ast.Value{}, p.fail(diag.SynExpectAssign, MsgExpectAssign)
	}
	eq := p.advance()

	v, err := p.literal()
	if err != nil {
		if err.Lexical() {
			return "", ast.Value{}, err
		}
		return "", ast.Value{}, p.failAt(diag.SynExpectLiteral, eq.Span, MsgExpectLiteralAfterEq)
	}
	return name, v, nil
}

// attributeOrLiteral: идентификатор может начинать только атрибут,
// голые идентификаторы значениями не бывают.
func (p *Parser) attributeOrLiteral(tag *ast.Tag) *Error {
	if p.at(token.Ident) {
		name, v, err := p.attribute()
		if err != nil {
			return err
		}
		tag.SetAttribute(name, v)
		return nil
	}
	if p.current.IsLiteral() || p.at(token.Error) {
		v, err := p.literal()
		if err != nil {
			return err
		}
		tag.AddValue(v)
		return nil
	}
	return p.fail(diag.SynExpectLiteral, MsgExpectValueOrAttr)
}

func (p *Parser) tagDeclaration() (*ast.Tag, *Error) {
	start := p.current.Span
	name, err := p.identifier()
	if err != nil {
		return nil, err
	}
	tag := ast.NewTag(name)

	for !p.at(token.Semicolon) && !p.at(token.LBrace) && !p.at(token.EOF) {
		if err := p.attributeOrLiteral(tag); err != nil {
			return nil, err
		}
	}

	switch p.current.Kind {
	case token.Semicolon:
		if tag.Empty() {
			return nil, p.fail(diag.SynEmptyTerminatedTag, MsgExpectValueOrAttr)
		}
		end := p.advance()
		tag.Span = start.Cover(end.Span)
		return tag, nil

	case token.LBrace:
		// глубину проверяем до advance: следующий токен не должен быть прочитан
		if p.depth >= p.opts.MaxDepth {
			return nil, p.fail(diag.SynNestingTooDeep, MsgNestingTooDeep)
		}
		open := p.advance()
		p.depth++
		defer func() { p.depth-- }()

		for !p.at(token.RBrace) {
			if p.at(token.EOF) {
				return nil, p.fail(diag.SynUnclosedBrace, MsgExpectRBrace).withNote(open.Span, MsgBlockOpenedHere)
			}
			child, err := p.tagDeclaration()
			if err != nil {
				return nil, err
			}
			tag.AddChild(child)
		}
		end := p.advance()
		tag.Span = start.Cover(end.Span)
		return tag, nil

	default:
		return nil, p.fail(diag.SynExpectTerminator, MsgExpectTerminator)
	}
}
