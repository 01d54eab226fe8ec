// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package portable

import "fmt"

// Type is the one-byte wire discriminator of a portable-storage entry.
// The values are protocol constants: changing them breaks every stored
// buffer.
type Type uint8

const (
	TypeInt64   Type = 1
	TypeInt32   Type = 2
	TypeInt16   Type = 3
	TypeInt8    Type = 4
	TypeUint64  Type = 5
	TypeUint32  Type = 6
	TypeUint16  Type = 7
	TypeUint8   Type = 8
	TypeDouble  Type = 9
	TypeString  Type = 10
	TypeBool    Type = 11
	TypeSection Type = 12
	TypeArray   Type = 13

	// TypeNull is the explicit absent-marker that JSON null encodes to.
	// It has no payload. Readers that only know tags 1-13 reject it as
	// an unknown tag.
	TypeNull Type = 14

	// FlagArray is OR'ed into an entry's tag to mark an array whose
	// element type is the remaining low bits.
	FlagArray Type = 0x80
)

// Header layout. SignatureA and SignatureB are stored little-endian.
const (
	SignatureA    uint32 = 0x01011101
	SignatureB    uint32 = 0x01020101
	FormatVersion byte   = 1
	HeaderSize           = 9
)

var header = [HeaderSize]byte{
	0x01, 0x11, 0x01, 0x01, // SignatureA
	0x01, 0x01, 0x02, 0x01, // SignatureB
	FormatVersion,
}

// Header returns a copy of the fixed portable-storage header.
func Header() [HeaderSize]byte { return header }

// String returns the lowercase name of the type, or "array<elem>" for a
// flagged array tag.
func (t Type) String() string {
	if t&FlagArray != 0 {
		return "array<" + (t &^ FlagArray).String() + ">"
	}
	switch t {
	case TypeInt64:
		return "int64"
	case TypeInt32:
		return "int32"
	case TypeInt16:
		return "int16"
	case TypeInt8:
		return "int8"
	case TypeUint64:
		return "uint64"
	case TypeUint32:
		return "uint32"
	case TypeUint16:
		return "uint16"
	case TypeUint8:
		return "uint8"
	case TypeDouble:
		return "double"
	case TypeString:
		return "string"
	case TypeBool:
		return "bool"
	case TypeSection:
		return "section"
	case TypeArray:
		return "array"
	case TypeNull:
		return "null"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(t))
	}
}

// Valid reports whether t is one of the known element types (without
// FlagArray).
func (t Type) Valid() bool {
	return t >= TypeInt64 && t <= TypeNull
}

// IsSigned reports whether t is a signed integer type.
func (t Type) IsSigned() bool {
	return t >= TypeInt64 && t <= TypeInt8
}

// IsUnsigned reports whether t is an unsigned integer type.
func (t Type) IsUnsigned() bool {
	return t >= TypeUint64 && t <= TypeUint8
}

// IsNumeric reports whether t is an integer or double type.
func (t Type) IsNumeric() bool {
	return t >= TypeInt64 && t <= TypeDouble
}

// width is the fixed payload size of t, or 0 for variable-length and
// empty payloads.
func (t Type) width() int {
	switch t {
	case TypeInt64, TypeUint64, TypeDouble:
		return 8
	case TypeInt32, TypeUint32:
		return 4
	case TypeInt16, TypeUint16:
		return 2
	case TypeInt8, TypeUint8, TypeBool:
		return 1
	default:
		return 0
	}
}

// minPayload is the smallest number of bytes one untagged payload of t
// can occupy. Used to reject counts that cannot fit in the remaining
// buffer before anything is allocated.
func (t Type) minPayload() int {
	switch t {
	case TypeString, TypeSection:
		return 1 // a one-byte varint
	case TypeArray:
		return 2 // element tag plus a one-byte varint
	case TypeNull:
		return 0
	default:
		return t.width()
	}
}
