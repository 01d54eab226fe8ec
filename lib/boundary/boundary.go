// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package boundary

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

var (
	// ErrAllocationFailed means the caller's runtime refused an
	// allocation. The accompanying handle is always nil.
	ErrAllocationFailed = errors.New("boundary: allocation failed")

	// ErrInvalidText means an inbound text handle did not hold a
	// well-formed string in its declared encoding.
	ErrInvalidText = errors.New("boundary: invalid text")

	// ErrInvalidUTF8 means outbound text was not valid UTF-8.
	ErrInvalidUTF8 = errors.New("boundary: invalid UTF-8")

	// ErrEmbeddedNUL means outbound text contains a NUL byte and the
	// runtime uses NUL-terminated strings.
	ErrEmbeddedNUL = errors.New("boundary: embedded NUL in NUL-terminated text")

	// ErrInvalidHandle means a handle reported a negative length or
	// refused a region copy inside its own bounds.
	ErrInvalidHandle = errors.New("boundary: invalid handle")
)

// ByteArray is the caller's byte array. Region copies must stay inside
// [0, Len()).
type ByteArray interface {
	Len() int
	GetRegion(offset int, dst []byte) error
	SetRegion(offset int, src []byte) error
}

// Text is the caller's string.
type Text interface {
	// UTF8 returns the string re-encoded as UTF-8. The result may
	// alias the handle's storage; callers copy it before the call
	// returns.
	UTF8() ([]byte, error)
}

// TextEncoding is the byte form a runtime expects for new strings.
type TextEncoding int

const (
	// EncodingUTF8 is plain UTF-8 with no terminator.
	EncodingUTF8 TextEncoding = iota

	// EncodingModifiedUTF8 is the JNI string encoding.
	EncodingModifiedUTF8

	// EncodingCString is UTF-8 followed by one NUL byte.
	EncodingCString

	// EncodingUTF16 is little-endian UTF-16 code units.
	EncodingUTF16
)

func (e TextEncoding) String() string {
	switch e {
	case EncodingUTF8:
		return "utf-8"
	case EncodingModifiedUTF8:
		return "modified-utf-8"
	case EncodingCString:
		return "c-string"
	case EncodingUTF16:
		return "utf-16le"
	default:
		return fmt.Sprintf("encoding(%d)", int(e))
	}
}

// Runtime allocates objects in the caller's memory. A false result
// means the allocation failed.
type Runtime interface {
	NewByteArray(length int) (ByteArray, bool)

	// NewText builds a string from bytes already in TextEncoding().
	NewText(encoded []byte) (Text, bool)

	TextEncoding() TextEncoding
}

// TextIn copies the caller's text into a Go string. A nil handle is the
// empty string.
func TextIn(handle Text) (string, error) {
	if handle == nil {
		return "", nil
	}
	encoded, err := handle.UTF8()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidText, err)
	}
	if !utf8.Valid(encoded) {
		return "", fmt.Errorf("%w: not valid UTF-8 after re-encoding", ErrInvalidText)
	}
	return string(encoded), nil
}

// BytesIn copies exactly Len() bytes out of the caller's array. A nil
// handle is an empty buffer.
func BytesIn(handle ByteArray) ([]byte, error) {
	if handle == nil {
		return []byte{}, nil
	}
	length := handle.Len()
	if length < 0 {
		return nil, fmt.Errorf("%w: negative length %d", ErrInvalidHandle, length)
	}
	data := make([]byte, length)
	if length == 0 {
		return data, nil
	}
	if err := handle.GetRegion(0, data); err != nil {
		return nil, fmt.Errorf("%w: read %d bytes: %v", ErrInvalidHandle, length, err)
	}
	return data, nil
}

// BytesOut allocates a caller array of exactly len(data) bytes and
// copies data into it. Empty data yields a non-nil zero-length array.
func BytesOut(runtime Runtime, data []byte) (ByteArray, error) {
	array, ok := runtime.NewByteArray(len(data))
	if !ok || array == nil {
		return nil, fmt.Errorf("%w: byte array of %d bytes", ErrAllocationFailed, len(data))
	}
	if len(data) == 0 {
		return array, nil
	}
	if err := array.SetRegion(0, data); err != nil {
		return nil, fmt.Errorf("%w: write %d bytes: %v", ErrInvalidHandle, len(data), err)
	}
	return array, nil
}

// TextOut encodes s for the runtime and allocates a caller string from
// it. s must be valid UTF-8.
func TextOut(runtime Runtime, s string) (Text, error) {
	if !utf8.ValidString(s) {
		return nil, ErrInvalidUTF8
	}
	encoding := runtime.TextEncoding()
	encoded, err := Encode(encoding, s)
	if err != nil {
		return nil, err
	}
	text, ok := runtime.NewText(encoded)
	if !ok || text == nil {
		return nil, fmt.Errorf("%w: %s text of %d bytes", ErrAllocationFailed, encoding, len(encoded))
	}
	return text, nil
}

// Encode converts valid UTF-8 text to the byte form of encoding.
func Encode(encoding TextEncoding, s string) ([]byte, error) {
	if !utf8.ValidString(s) {
		return nil, ErrInvalidUTF8
	}
	switch encoding {
	case EncodingUTF8:
		return []byte(s), nil
	case EncodingModifiedUTF8:
		return AppendModifiedUTF8(nil, s), nil
	case EncodingCString:
		return AppendCString(nil, s)
	case EncodingUTF16:
		return encodeUTF16(s)
	default:
		return nil, fmt.Errorf("boundary: unsupported text encoding %s", encoding)
	}
}
