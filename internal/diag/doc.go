// Package diag defines the diagnostic model shared by all compiler stages.
//
// # Purpose
//
//   - Provide deterministic data structures for findings produced by the
//     lexer, parser, type checker and code generators.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to storage or formatting layers.
//   - Carry the fail-fast error value (*Error) every stage returns.
//
// # Fail-fast model
//
// Compilation stops at the first error. Stages do not accumulate diagnostics;
// they return a *Error whose Error() text is "line:col: message" and whose
// Unwrap() yields one of the class sentinels:
//
//   - ErrLexical – unmatched character, unterminated comment, bad literal.
//   - ErrParse – grammar violation.
//   - ErrEmptyInput – the token stream is empty.
//   - ErrType – static typing violation.
//   - ErrInternal – an invariant broke inside code generation.
//
// The driver forwards the error into a Bag through ReportErr so renderers in
// internal/diagfmt can treat it like any other diagnostic.
//
// # Codes
//
// Code is a compact numeric identifier with a stable string form: LEX1xxx,
// SYN2xxx, SEM3xxx and GEN9xxx. Titles live in codes.go.
package diag
