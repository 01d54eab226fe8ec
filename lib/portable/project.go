// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package portable

import (
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
	"unicode/utf8"
)

// AppendJSON appends the compact JSON projection of v to dst.
//
// Integers of every width print as plain JSON numbers. Doubles print
// with the shortest representation that round-trips, and always with
// fraction or exponent syntax so they parse back as doubles. String
// payloads that are valid UTF-8 print as JSON strings; other payloads
// print as a lowercase hex string. Null prints as null.
func AppendJSON(dst []byte, v Value) ([]byte, error) {
	switch v.typ {
	case TypeInt64, TypeInt32, TypeInt16, TypeInt8:
		return strconv.AppendInt(dst, int64(v.bits), 10), nil
	case TypeUint64, TypeUint32, TypeUint16, TypeUint8:
		return strconv.AppendUint(dst, v.bits, 10), nil
	case TypeDouble:
		return appendDouble(dst, math.Float64frombits(v.bits))
	case TypeString:
		if utf8.Valid(v.data) {
			return appendQuoted(dst, v.data), nil
		}
		dst = append(dst, '"')
		dst = hex.AppendEncode(dst, v.data)
		return append(dst, '"'), nil
	case TypeBool:
		if v.bits != 0 {
			return append(dst, "true"...), nil
		}
		return append(dst, "false"...), nil
	case TypeNull:
		return append(dst, "null"...), nil
	case TypeSection:
		dst = append(dst, '{')
		for index, field := range v.fields {
			if index > 0 {
				dst = append(dst, ',')
			}
			if !utf8.ValidString(field.Name) {
				return dst, fmt.Errorf("%w: field name %q is not valid UTF-8", ErrUnrepresentable, field.Name)
			}
			dst = appendQuoted(dst, []byte(field.Name))
			dst = append(dst, ':')
			var err error
			if dst, err = AppendJSON(dst, field.Value); err != nil {
				return dst, fmt.Errorf("field %q: %w", field.Name, err)
			}
		}
		return append(dst, '}'), nil
	case TypeArray:
		dst = append(dst, '[')
		for index, item := range v.items {
			if index > 0 {
				dst = append(dst, ',')
			}
			var err error
			if dst, err = AppendJSON(dst, item); err != nil {
				return dst, fmt.Errorf("item %d: %w", index, err)
			}
		}
		return append(dst, ']'), nil
	default:
		return dst, fmt.Errorf("%w: %d", ErrUnknownTypeTag, uint8(v.typ))
	}
}

// MarshalJSON implements json.Marshaler using AppendJSON.
func (v Value) MarshalJSON() ([]byte, error) {
	return AppendJSON(nil, v)
}

func appendDouble(dst []byte, float float64) ([]byte, error) {
	if math.IsNaN(float) || math.IsInf(float, 0) {
		return dst, fmt.Errorf("%w: %v has no JSON representation", ErrUnrepresentable, float)
	}
	start := len(dst)
	dst = strconv.AppendFloat(dst, float, 'g', -1, 64)
	for _, character := range dst[start:] {
		if character == '.' || character == 'e' {
			return dst, nil
		}
	}
	return append(dst, ".0"...), nil
}

const lowerHex = "0123456789abcdef"

// appendQuoted appends s as a JSON string. Only the escapes JSON
// requires are applied; HTML-sensitive characters are left as they are.
func appendQuoted(dst []byte, s []byte) []byte {
	dst = append(dst, '"')
	for _, character := range s {
		switch {
		case character == '"':
			dst = append(dst, '\\', '"')
		case character == '\\':
			dst = append(dst, '\\', '\\')
		case character == '\n':
			dst = append(dst, '\\', 'n')
		case character == '\r':
			dst = append(dst, '\\', 'r')
		case character == '\t':
			dst = append(dst, '\\', 't')
		case character < 0x20:
			dst = append(dst, '\\', 'u', '0', '0', lowerHex[character>>4], lowerHex[character&0x0f])
		default:
			dst = append(dst, character)
		}
	}
	return append(dst, '"')
}
