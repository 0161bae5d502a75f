// Package codec implements the structured text format used by nodedoc
// documents.
//
// The format is a minimal JSON-shaped grammar: objects, arrays, strings,
// numbers, booleans, and null. It is written and read entirely by hand so
// that the on-disk behavior stays under our control:
//
//   - String fields holding the empty string are omitted from objects
//     entirely rather than written as null. This is a deliberate
//     compaction rule; readers treat a missing field as the zero value.
//   - Floating-point values are rendered with strconv's shortest
//     round-trip form, independent of locale.
//   - Unknown object keys are tolerated: the reader skips their values
//     structurally (tracking nested object/array depth and escaped
//     quotes) instead of failing. Newer documents remain readable by
//     older code.
//   - Numbers are coerced to whatever primitive the caller asks for.
//     Valid numeric text never fails to convert.
//
// Records bind themselves to the format with explicit per-field code:
// an [Encoder] callback writes each field by name, and a [Decoder.Object]
// callback claims the keys it recognizes. There is no reflection and no
// struct tagging; the schema lives in the binding functions of the
// wire package.
//
// Malformed input (unterminated string, unexpected token) surfaces as a
// [*SyntaxError] naming the offending byte position.
package codec
