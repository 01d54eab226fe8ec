// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides pstore's CBOR view of portable-storage values.
//
// JSON is the projection foreign callers consume, but it flattens the
// distinctions the binary format keeps: every integer width looks the
// same, a double with an integral value may look like an integer, and
// a string payload that is not UTF-8 has to be rendered as hex text.
// CBOR keeps all of these apart (unsigned and negative integers,
// floats, byte strings and text strings are separate major types), and
// its diagnostic notation (RFC 8949 §8) is readable. "pstore diag" is
// built on this package.
//
// The mapping from [portable.Value]:
//
//   - signed and unsigned integers of every width: CBOR integers
//   - Double: a 64-bit CBOR float, never shortened
//   - String: a text string when the payload is valid UTF-8, otherwise
//     a byte string
//   - Bool and Null: CBOR true/false and null
//   - Section: a map with text keys in field order
//   - Array: an array
//
// Scalars go through a single encoder mode derived from Core
// Deterministic Encoding (RFC 8949 §4.2) with float shortening turned
// off. Map keys are emitted in field order rather than sorted, because
// field order is part of a section's identity.
//
//	data, err := codec.FromPortable(value)
//	notation, err := codec.Diagnose(data)
package codec
