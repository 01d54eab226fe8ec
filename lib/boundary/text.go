// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package boundary

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"unicode/utf16"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

// UTF8Text is text that is already UTF-8.
type UTF8Text []byte

func (t UTF8Text) UTF8() ([]byte, error) { return t, nil }

// CStringText is NUL-terminated UTF-8. Bytes after the first NUL are
// ignored; a missing terminator means the whole slice is the string.
type CStringText []byte

func (t CStringText) UTF8() ([]byte, error) {
	if end := bytes.IndexByte(t, 0); end >= 0 {
		return t[:end], nil
	}
	return t, nil
}

// ModifiedUTF8Text is text in the JNI modified UTF-8 encoding.
type ModifiedUTF8Text []byte

func (t ModifiedUTF8Text) UTF8() ([]byte, error) {
	return DecodeModifiedUTF8(t)
}

// UTF16Text is a sequence of UTF-16 code units, as a runtime's native
// string exposes them. Unpaired surrogates are invalid.
type UTF16Text []uint16

func (t UTF16Text) UTF8() ([]byte, error) {
	for index := 0; index < len(t); index++ {
		unit := rune(t[index])
		switch {
		case unit >= 0xd800 && unit < 0xdc00:
			if index+1 >= len(t) || !isLowSurrogate(rune(t[index+1])) {
				return nil, fmt.Errorf("unpaired high surrogate %#04x at unit %d", unit, index)
			}
			index++
		case isLowSurrogate(unit):
			return nil, fmt.Errorf("unpaired low surrogate %#04x at unit %d", unit, index)
		}
	}
	units := make([]byte, 2*len(t))
	for index, unit := range t {
		binary.LittleEndian.PutUint16(units[2*index:], unit)
	}
	return utf16LE.NewDecoder().Bytes(units)
}

func isLowSurrogate(unit rune) bool { return unit >= 0xdc00 && unit < 0xe000 }

// utf16LE keeps byte order marks as ordinary characters in both
// directions.
var utf16LE = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

func encodeUTF16(s string) ([]byte, error) {
	encoded, err := utf16LE.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidUTF8, err)
	}
	return encoded, nil
}

// utf16Units reinterprets little-endian UTF-16 bytes as code units.
func utf16Units(encoded []byte) (UTF16Text, bool) {
	if len(encoded)%2 != 0 {
		return nil, false
	}
	units := make(UTF16Text, len(encoded)/2)
	for index := range units {
		units[index] = binary.LittleEndian.Uint16(encoded[2*index:])
	}
	return units, true
}

// AppendCString appends s and a NUL terminator to dst.
func AppendCString(dst []byte, s string) ([]byte, error) {
	if index := bytes.IndexByte([]byte(s), 0); index >= 0 {
		return nil, fmt.Errorf("%w: NUL at byte %d", ErrEmbeddedNUL, index)
	}
	dst = append(dst, s...)
	return append(dst, 0), nil
}

// AppendModifiedUTF8 appends the modified UTF-8 form of the valid UTF-8
// string s to dst. NUL becomes C0 80 and each supplementary character
// becomes the three-byte encodings of its two surrogates.
func AppendModifiedUTF8(dst []byte, s string) []byte {
	for _, character := range s {
		switch {
		case character == 0:
			dst = append(dst, 0xc0, 0x80)
		case character < 0x10000:
			dst = utf8.AppendRune(dst, character)
		default:
			high, low := utf16.EncodeRune(character)
			dst = appendSurrogate(dst, high)
			dst = appendSurrogate(dst, low)
		}
	}
	return dst
}

func appendSurrogate(dst []byte, unit rune) []byte {
	return append(dst,
		0xe0|byte(unit>>12),
		0x80|byte(unit>>6)&0x3f,
		0x80|byte(unit)&0x3f,
	)
}

// DecodeModifiedUTF8 converts modified UTF-8 to standard UTF-8. Raw NUL
// bytes, four-byte sequences, and unpaired surrogates are rejected.
func DecodeModifiedUTF8(encoded []byte) ([]byte, error) {
	decoded := make([]byte, 0, len(encoded))
	for index := 0; index < len(encoded); {
		first := encoded[index]
		switch {
		case first == 0:
			return nil, fmt.Errorf("raw NUL at byte %d", index)
		case first < utf8.RuneSelf:
			decoded = append(decoded, first)
			index++
			continue
		case first == 0xc0 && index+1 < len(encoded) && encoded[index+1] == 0x80:
			decoded = append(decoded, 0)
			index += 2
			continue
		}

		if high, ok := surrogateAt(encoded, index); ok {
			if high >= 0xdc00 {
				return nil, fmt.Errorf("unpaired low surrogate at byte %d", index)
			}
			low, ok := surrogateAt(encoded, index+3)
			if !ok || low < 0xdc00 {
				return nil, fmt.Errorf("unpaired high surrogate at byte %d", index)
			}
			decoded = utf8.AppendRune(decoded, utf16.DecodeRune(high, low))
			index += 6
			continue
		}

		character, size := utf8.DecodeRune(encoded[index:])
		if character == utf8.RuneError && size <= 1 {
			return nil, fmt.Errorf("invalid byte %#02x at byte %d", first, index)
		}
		if size == 4 {
			return nil, fmt.Errorf("four-byte sequence at byte %d", index)
		}
		decoded = append(decoded, encoded[index:index+size]...)
		index += size
	}
	return decoded, nil
}

// surrogateAt decodes a three-byte encoded UTF-16 surrogate at index.
func surrogateAt(encoded []byte, index int) (rune, bool) {
	if index+3 > len(encoded) || encoded[index] != 0xed || encoded[index+1] < 0xa0 || encoded[index+1] > 0xbf {
		return 0, false
	}
	third := encoded[index+2]
	if third&0xc0 != 0x80 {
		return 0, false
	}
	return 0xd000 | rune(encoded[index+1]&0x3f)<<6 | rune(third&0x3f), true
}
