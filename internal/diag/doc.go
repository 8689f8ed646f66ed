// Package diag defines the diagnostic model shared by the lexer and parser.
//
// # Purpose
//
//   - Provide deterministic data structures that capture findings produced by
//     the lexical and syntactic passes.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to storage or formatting.
//
// Package diag does not perform any IO. Rendering lives in internal/diagfmt.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form
//     (LEX1001, SYN2101, ...).
//   - Message – the human text, e.g. "expected ';'".
//   - Primary – the source.Span the message is anchored at.
//   - Notes – optional secondary locations.
//
// # Recovery contract
//
// Producers report and keep going. A Reporter never aborts the caller; the
// parser decides on its own when enough errors were seen (Options.MaxErrors).
package diag
