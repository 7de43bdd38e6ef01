// Package token defines lexical token kinds and trivia for the ember compiler.
// Invariants:
//   - Token.Text is exactly the source text covered by Token.Span.
//   - Word operators (not, and, or) and the literals true/false are reserved
//     words with their own kinds; they never lex as Ident.
//   - Type names (Int, Bool, Unit) are keywords, not identifiers.
//   - Whitespace and comments are Trivia and never appear in the token stream.
package token
