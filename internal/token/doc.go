// Package token defines the lexical token value produced by the jargon scanner.
// Invariants:
//   - A Token is a plain value: Start and Length are copied verbatim by Create.
//   - Create never validates, clamps or fails; negative fields are carried as-is.
//   - Tokens are never mutated after construction and hold no references.
//   - Conversion to a source.Span is the only place bounds are checked.
package token
