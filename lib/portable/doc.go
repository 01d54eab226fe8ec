// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package portable implements the portable-storage binary format and its
// JSON projection.
//
// Portable storage is a compact, self-describing serialization: a fixed
// 9-byte header (two signature words and a version byte) followed by a
// root section. A section is a varint count of named entries; each entry
// carries a one-byte type tag and a payload. Arrays are homogeneous: the
// element type is declared once and the payloads follow untagged.
//
// [Value] is a closed tagged variant whose discriminant is the wire
// [Type], so a decoded value keeps the exact integer width and
// signedness it was written with. JSON has no such distinction. When a
// JSON document is encoded, numbers take the narrowest lossless tag from
// {Uint64, Int64, Double}:
//
//   - integer literals that are non-negative and fit 64 bits -> Uint64
//   - negative integer literals that fit int64 -> Int64
//   - anything with fraction or exponent syntax, or outside the 64-bit
//     integer range -> Double
//
// Doubles always project back to JSON with fraction or exponent syntax
// ("1.0", "1e+21"), so a buffer produced by [JSONToBinary] survives
// decode -> JSON -> encode byte for byte. Buffers from other encoders
// that use 8, 16 or 32-bit integers re-encode with 64-bit tags.
//
// The two entry points most callers need:
//
//	bin, err := portable.JSONToBinary([]byte(`{"heights":[123456,1234567,870987]}`))
//	json, err := portable.BinaryToJSON(bin)
//
// Every failure wraps one of the sentinel errors in errors.go, so callers
// test with errors.Is. Decode failures additionally carry a [*DecodeError]
// with the byte offset where decoding stopped. No function in this
// package holds state between calls; all of them are safe for concurrent
// use.
package portable
