package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo               Code = 1000
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexBadNumber          Code = 1004

	// Синтаксические
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynUnclosedBrace      Code = 2007
	SynExpectTerminator   Code = 2012
	SynExpectIdentifier   Code = 2102
	SynExpectLiteral      Code = 2103
	SynExpectAssign       Code = 2104
	SynNestingTooDeep     Code = 2105
	SynLiteralOutOfRange  Code = 2106
	SynEmptyTerminatedTag Code = 2107

	// Ввод-вывод
	IOLoadFileError Code = 4001
)

var codeDescription = map[Code]string{
	UnknownCode:           "Unknown error",
	LexInfo:               "Lexical information",
	LexUnknownChar:        "Unexpected character",
	LexUnterminatedString: "Unterminated string",
	LexBadNumber:          "Malformed number",
	SynInfo:               "Syntax information",
	SynUnexpectedToken:    "Unexpected token",
	SynUnclosedBrace:      "Unclosed brace",
	SynExpectTerminator:   "Expected ';' or '{'",
	SynExpectIdentifier:   "Expected identifier",
	SynExpectLiteral:      "Expected literal",
	SynExpectAssign:       "Expected '='",
	SynNestingTooDeep:     "Nesting too deep",
	SynLiteralOutOfRange:  "Literal out of range",
	SynEmptyTerminatedTag: "Tag without values or attributes",
	IOLoadFileError:       "Failed to load file",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
