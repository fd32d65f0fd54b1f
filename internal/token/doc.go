// Package token defines lexical token kinds for the sdl configuration language.
// Invariants:
//   - Token never stores its lexeme; text is sliced lazily from the source file.
//   - Token.Span is the lexeme's byte range, except for strings, whose span
//     excludes both quote characters.
//   - Lexical errors are ordinary tokens of Kind Error carrying a static Msg.
//   - After the input is exhausted the lexer yields EOF forever.
package token
