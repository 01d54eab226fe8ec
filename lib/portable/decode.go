// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package portable

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Decode validates the header of bin and decodes its root section. It
// fails on any byte left over after the root section. The returned
// Value does not reference bin.
func (o Options) Decode(bin []byte) (Value, error) {
	return o.DecodeWithBudget(bin, o.NewZeroWidthBudget())
}

// DecodeWithBudget is Decode drawing null array elements from budget,
// which may be shared with other calls.
func (o Options) DecodeWithBudget(bin []byte, budget *ZeroWidthBudget) (Value, error) {
	if err := checkHeader(bin); err != nil {
		return Value{}, err
	}
	reader := &reader{
		buffer:    bin,
		offset:    HeaderSize,
		maxDepth:  o.maxDepth(),
		zeroWidth: budget,
	}
	root, err := reader.sectionBody(0)
	if err != nil {
		return Value{}, err
	}
	if reader.offset != len(bin) {
		return Value{}, &DecodeError{
			Offset: reader.offset,
			Err:    fmt.Errorf("%w: %d bytes", ErrTrailingData, len(bin)-reader.offset),
		}
	}
	return root, nil
}

// checkHeader compares the available prefix of bin with the fixed
// header. A matching but short prefix is a truncation; any differing
// byte is a bad signature.
func checkHeader(bin []byte) error {
	available := min(len(bin), HeaderSize)
	if !bytes.Equal(bin[:available], header[:available]) {
		return &DecodeError{
			Offset: 0,
			Err:    fmt.Errorf("%w: got % x, want % x", ErrInvalidSignature, bin[:available], header[:available]),
		}
	}
	if available < HeaderSize {
		return &DecodeError{
			Offset: available,
			Err:    fmt.Errorf("%w: header needs %d bytes, have %d", ErrTruncatedBuffer, HeaderSize, len(bin)),
		}
	}
	return nil
}

// reader walks a buffer. Every read checks the remaining length first,
// so a malformed length never leads past the end of the buffer.
type reader struct {
	buffer    []byte
	offset    int
	maxDepth  int
	zeroWidth *ZeroWidthBudget
}

func (r *reader) remaining() int { return len(r.buffer) - r.offset }

func (r *reader) errorAt(offset int, err error) error {
	return &DecodeError{Offset: offset, Err: err}
}

func (r *reader) take(n int) ([]byte, error) {
	if n < 0 || n > r.remaining() {
		return nil, r.errorAt(r.offset, fmt.Errorf("%w: need %d bytes, have %d", ErrTruncatedBuffer, n, r.remaining()))
	}
	data := r.buffer[r.offset : r.offset+n]
	r.offset += n
	return data, nil
}

func (r *reader) readByte() (byte, error) {
	data, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return data[0], nil
}

func (r *reader) varint() (uint64, error) {
	value, width, err := ReadVarint(r.buffer[r.offset:])
	if err != nil {
		return 0, r.errorAt(r.offset, err)
	}
	r.offset += width
	return value, nil
}

// count reads a varint count of items that each occupy at least
// minSize bytes and rejects counts that cannot fit in the rest of the
// buffer. Zero-size items are drawn from the zero-width budget instead.
func (r *reader) count(minSize int) (int, error) {
	start := r.offset
	value, err := r.varint()
	if err != nil {
		return 0, err
	}
	if minSize == 0 {
		if err := r.zeroWidth.spend(value); err != nil {
			return 0, r.errorAt(start, err)
		}
		return int(value), nil
	}
	if value > uint64(r.remaining()/minSize) {
		return 0, r.errorAt(start, fmt.Errorf("%w: count %d needs at least %d bytes per item, have %d bytes",
			ErrTruncatedBuffer, value, minSize, r.remaining()))
	}
	return int(value), nil
}

func (r *reader) checkDepth(depth int) error {
	if depth > r.maxDepth {
		return r.errorAt(r.offset, fmt.Errorf("%w: depth %d, limit %d", ErrDepthExceeded, depth, r.maxDepth))
	}
	return nil
}

// sectionBody reads a field count followed by that many
// (name, tag, payload) entries.
func (r *reader) sectionBody(depth int) (Value, error) {
	if err := r.checkDepth(depth); err != nil {
		return Value{}, err
	}
	// Each field is at least a name-length byte and a tag byte.
	count, err := r.count(2)
	if err != nil {
		return Value{}, err
	}

	fields := make([]Field, 0, count)
	seen := make(map[string]struct{}, count)
	for range count {
		nameStart := r.offset
		nameLength, err := r.readByte()
		if err != nil {
			return Value{}, err
		}
		nameBytes, err := r.take(int(nameLength))
		if err != nil {
			return Value{}, err
		}
		name := string(nameBytes)
		if _, duplicate := seen[name]; duplicate {
			return Value{}, r.errorAt(nameStart, fmt.Errorf("%w: %q", ErrDuplicateField, name))
		}
		seen[name] = struct{}{}

		tagOffset := r.offset
		tag, err := r.readByte()
		if err != nil {
			return Value{}, err
		}

		var value Value
		if Type(tag)&FlagArray != 0 {
			value, err = r.arrayBody(Type(tag)&^FlagArray, tagOffset, depth+1)
		} else {
			value, err = r.payload(Type(tag), tagOffset, depth)
		}
		if err != nil {
			return Value{}, err
		}
		fields = append(fields, Field{Name: name, Value: value})
	}
	return Value{typ: TypeSection, fields: fields}, nil
}

// arrayBody reads the count and untagged payloads of an array whose
// element type was taken from a flagged tag at tagOffset.
func (r *reader) arrayBody(elem Type, tagOffset int, depth int) (Value, error) {
	if !elem.Valid() {
		return Value{}, r.errorAt(tagOffset, fmt.Errorf("%w: array element tag %d", ErrUnknownTypeTag, uint8(elem)))
	}
	if err := r.checkDepth(depth); err != nil {
		return Value{}, err
	}
	count, err := r.count(elem.minPayload())
	if err != nil {
		return Value{}, err
	}

	items := make([]Value, 0, count)
	for range count {
		item, err := r.payload(elem, r.offset, depth)
		if err != nil {
			return Value{}, err
		}
		items = append(items, item)
	}
	return Value{typ: TypeArray, elem: elem, items: items}, nil
}

// payload reads one value of type t. For sections and nested arrays
// depth is the depth of the containing entry.
func (r *reader) payload(t Type, tagOffset int, depth int) (Value, error) {
	switch t {
	case TypeInt64:
		data, err := r.take(8)
		if err != nil {
			return Value{}, err
		}
		return Int64(int64(binary.LittleEndian.Uint64(data))), nil
	case TypeInt32:
		data, err := r.take(4)
		if err != nil {
			return Value{}, err
		}
		return Int32(int32(binary.LittleEndian.Uint32(data))), nil
	case TypeInt16:
		data, err := r.take(2)
		if err != nil {
			return Value{}, err
		}
		return Int16(int16(binary.LittleEndian.Uint16(data))), nil
	case TypeInt8:
		data, err := r.take(1)
		if err != nil {
			return Value{}, err
		}
		return Int8(int8(data[0])), nil
	case TypeUint64:
		data, err := r.take(8)
		if err != nil {
			return Value{}, err
		}
		return Uint64(binary.LittleEndian.Uint64(data)), nil
	case TypeUint32:
		data, err := r.take(4)
		if err != nil {
			return Value{}, err
		}
		return Uint32(binary.LittleEndian.Uint32(data)), nil
	case TypeUint16:
		data, err := r.take(2)
		if err != nil {
			return Value{}, err
		}
		return Uint16(binary.LittleEndian.Uint16(data)), nil
	case TypeUint8:
		data, err := r.take(1)
		if err != nil {
			return Value{}, err
		}
		return Uint8(data[0]), nil
	case TypeDouble:
		data, err := r.take(8)
		if err != nil {
			return Value{}, err
		}
		return Value{typ: TypeDouble, bits: binary.LittleEndian.Uint64(data)}, nil
	case TypeString:
		length, err := r.count(1)
		if err != nil {
			return Value{}, err
		}
		data, err := r.take(length)
		if err != nil {
			return Value{}, err
		}
		return Bytes(data), nil
	case TypeBool:
		data, err := r.take(1)
		if err != nil {
			return Value{}, err
		}
		return Bool(data[0] != 0), nil
	case TypeSection:
		return r.sectionBody(depth + 1)
	case TypeArray:
		// An array nested in an array carries its own flagged tag.
		nestedOffset := r.offset
		tag, err := r.readByte()
		if err != nil {
			return Value{}, err
		}
		if Type(tag)&FlagArray == 0 {
			return Value{}, r.errorAt(nestedOffset, fmt.Errorf("%w: nested array tag %#02x lacks the array flag",
				ErrUnknownTypeTag, tag))
		}
		return r.arrayBody(Type(tag)&^FlagArray, nestedOffset, depth+1)
	case TypeNull:
		return Null(), nil
	default:
		return Value{}, r.errorAt(tagOffset, fmt.Errorf("%w: %d", ErrUnknownTypeTag, uint8(t)))
	}
}
