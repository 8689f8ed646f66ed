// Package token defines lexical token kinds for the lunar front end.
// Invariants:
//   - Token.Span marks the first byte of the token, never a range.
//   - Token.Text is the raw lexeme; string literals keep their escapes undecoded
//     and carry only the bytes between the quotes.
//   - Keywords are matched exactly and case-sensitively: "functy" is an Ident.
//   - Type names (int, bool, ...) are identifiers, not keywords.
package token
