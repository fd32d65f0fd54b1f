package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Error is a lexical error; Token.Msg explains it.
	Error Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// IntLit represents the integer literal token.
	IntLit
	// FloatLit represents the float literal token.
	FloatLit
	// StringLit represents the string literal token.
	StringLit

	// KwTrue represents the 'true' keyword.
	KwTrue // true
	// KwFalse represents the 'false' keyword.
	KwFalse // false
	// KwNull represents the 'null' keyword.
	KwNull // null

	// Assign represents the '=' token.
	Assign // =
	// Semicolon represents the ';' token.
	Semicolon // ;
	// LBrace represents the '{' token.
	LBrace // {
	// RBrace represents the '}' token.
	RBrace // }
)

var kindNames = [...]string{
	Error:     "Error",
	EOF:       "EOF",
	Ident:     "Ident",
	IntLit:    "IntLit",
	FloatLit:  "FloatLit",
	StringLit: "StringLit",
	KwTrue:    "KwTrue",
	KwFalse:   "KwFalse",
	KwNull:    "KwNull",
	Assign:    "Assign",
	Semicolon: "Semicolon",
	LBrace:    "LBrace",
	RBrace:    "RBrace",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}
