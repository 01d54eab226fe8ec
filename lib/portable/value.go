// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package portable

import (
	"bytes"
	"fmt"
	"math"
	"unicode/utf8"
)

// Value is one decoded portable-storage entity. The zero Value is
// invalid; build values with the constructors below or obtain them from
// [Decode] and [ParseJSON].
//
// Values are immutable once built: constructors copy byte and slice
// arguments, and accessors return data the caller must not modify.
type Value struct {
	typ Type

	// bits holds integers (two's complement for signed types), double
	// bit patterns, and booleans (0 or 1).
	bits uint64

	// data holds the raw String payload.
	data []byte

	// elem is the declared element type of an Array.
	elem Type

	items  []Value
	fields []Field
}

// Field is one named entry of a section.
type Field struct {
	Name  string
	Value Value
}

func Int64(v int64) Value { return Value{typ: TypeInt64, bits: uint64(v)} }
func Int32(v int32) Value { return Value{typ: TypeInt32, bits: uint64(int64(v))} }
func Int16(v int16) Value { return Value{typ: TypeInt16, bits: uint64(int64(v))} }
func Int8(v int8) Value   { return Value{typ: TypeInt8, bits: uint64(int64(v))} }

func Uint64(v uint64) Value { return Value{typ: TypeUint64, bits: v} }
func Uint32(v uint32) Value { return Value{typ: TypeUint32, bits: uint64(v)} }
func Uint16(v uint16) Value { return Value{typ: TypeUint16, bits: uint64(v)} }
func Uint8(v uint8) Value   { return Value{typ: TypeUint8, bits: uint64(v)} }

// Double returns a Double value. Non-finite values encode to binary but
// cannot be projected to JSON.
func Double(v float64) Value { return Value{typ: TypeDouble, bits: math.Float64bits(v)} }

// String returns a String value holding the UTF-8 bytes of s.
func String(s string) Value { return Value{typ: TypeString, data: []byte(s)} }

// Bytes returns a String value holding a copy of b. The wire format does
// not distinguish text from binary; payloads that are not valid UTF-8
// project to JSON as hex.
func Bytes(b []byte) Value { return Value{typ: TypeString, data: bytes.Clone(b)} }

func Bool(v bool) Value {
	if v {
		return Value{typ: TypeBool, bits: 1}
	}
	return Value{typ: TypeBool}
}

// Null returns the absent-marker value.
func Null() Value { return Value{typ: TypeNull} }

// Section returns a section holding fields in the given order. Field
// names are checked for uniqueness when the section is encoded.
func Section(fields ...Field) Value {
	copied := make([]Field, len(fields))
	copy(copied, fields)
	return Value{typ: TypeSection, fields: copied}
}

// NewArray returns an array of the declared element type. Every item
// must have exactly that type.
func NewArray(elem Type, items ...Value) (Value, error) {
	if !elem.Valid() {
		return Value{}, fmt.Errorf("%w: array element type %d", ErrUnknownTypeTag, uint8(elem))
	}
	for index, item := range items {
		if item.typ != elem {
			return Value{}, fmt.Errorf("%w: item %d is %s, array declares %s",
				ErrHeterogeneousArray, index, item.typ, elem)
		}
	}
	copied := make([]Value, len(items))
	copy(copied, items)
	return Value{typ: TypeArray, elem: elem, items: copied}, nil
}

// MustArray is NewArray for statically known inputs. It panics on error.
func MustArray(elem Type, items ...Value) Value {
	value, err := NewArray(elem, items...)
	if err != nil {
		panic(err)
	}
	return value
}

// Type returns the wire type of v.
func (v Value) Type() Type { return v.typ }

// Elem returns the declared element type of an array, or 0 for any
// other value.
func (v Value) Elem() Type { return v.elem }

// IsNull reports whether v is the absent-marker.
func (v Value) IsNull() bool { return v.typ == TypeNull }

// Int returns the value of a signed integer of any width.
func (v Value) Int() (int64, bool) {
	if !v.typ.IsSigned() {
		return 0, false
	}
	return int64(v.bits), true
}

// Uint returns the value of an unsigned integer of any width.
func (v Value) Uint() (uint64, bool) {
	if !v.typ.IsUnsigned() {
		return 0, false
	}
	return v.bits, true
}

// Float returns the value of a Double.
func (v Value) Float() (float64, bool) {
	if v.typ != TypeDouble {
		return 0, false
	}
	return math.Float64frombits(v.bits), true
}

// Bool returns the value of a Bool.
func (v Value) Bool() (bool, bool) {
	if v.typ != TypeBool {
		return false, false
	}
	return v.bits != 0, true
}

// Text returns a String payload that is valid UTF-8. Payloads that are
// not valid UTF-8 report ok=false; use Raw for those.
func (v Value) Text() (string, bool) {
	if v.typ != TypeString || !utf8.Valid(v.data) {
		return "", false
	}
	return string(v.data), true
}

// Raw returns the payload bytes of a String. The slice must not be
// modified.
func (v Value) Raw() ([]byte, bool) {
	if v.typ != TypeString {
		return nil, false
	}
	return v.data, true
}

// Fields returns the fields of a section in declaration order. The slice
// must not be modified.
func (v Value) Fields() []Field {
	if v.typ != TypeSection {
		return nil
	}
	return v.fields
}

// Items returns the elements of an array. The slice must not be
// modified.
func (v Value) Items() []Value {
	if v.typ != TypeArray {
		return nil
	}
	return v.items
}

// Len returns the number of fields of a section, the number of items of
// an array, the payload length of a string, and 0 otherwise.
func (v Value) Len() int {
	switch v.typ {
	case TypeSection:
		return len(v.fields)
	case TypeArray:
		return len(v.items)
	case TypeString:
		return len(v.data)
	default:
		return 0
	}
}

// Lookup returns the named field of a section.
func (v Value) Lookup(name string) (Value, bool) {
	for _, field := range v.Fields() {
		if field.Name == name {
			return field.Value, true
		}
	}
	return Value{}, false
}

// With returns a copy of section v with field appended. It does not
// check for duplicates.
func (v Value) With(field Field) Value {
	fields := make([]Field, 0, len(v.fields)+1)
	fields = append(fields, v.fields...)
	fields = append(fields, field)
	return Value{typ: TypeSection, fields: fields}
}

// Equal reports structural equality: same types (including integer
// width and array element type), same payloads, same field order.
// Doubles compare by bit pattern, so NaN equals an identical NaN.
func (v Value) Equal(other Value) bool {
	if v.typ != other.typ {
		return false
	}
	switch v.typ {
	case TypeString:
		return bytes.Equal(v.data, other.data)
	case TypeSection:
		if len(v.fields) != len(other.fields) {
			return false
		}
		for index := range v.fields {
			if v.fields[index].Name != other.fields[index].Name ||
				!v.fields[index].Value.Equal(other.fields[index].Value) {
				return false
			}
		}
		return true
	case TypeArray:
		if v.elem != other.elem || len(v.items) != len(other.items) {
			return false
		}
		for index := range v.items {
			if !v.items[index].Equal(other.items[index]) {
				return false
			}
		}
		return true
	default:
		return v.bits == other.bits
	}
}
