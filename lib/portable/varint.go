// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package portable

import (
	"encoding/binary"
	"fmt"
)

// MaxVarint is the largest value a portable-storage varint can carry.
// The two low bits of the first byte select the width, leaving 62 bits
// of value in the widest form.
const MaxVarint = 1<<62 - 1

// Width markers stored in the two low bits of a varint's first byte.
const (
	varintWidth1 = 0
	varintWidth2 = 1
	varintWidth4 = 2
	varintWidth8 = 3
)

// AppendVarint appends the portable-storage varint encoding of value,
// using the smallest of the four widths that holds it.
func AppendVarint(dst []byte, value uint64) ([]byte, error) {
	switch {
	case value <= 1<<6-1:
		return append(dst, byte(value<<2|varintWidth1)), nil
	case value <= 1<<14-1:
		return binary.LittleEndian.AppendUint16(dst, uint16(value<<2|varintWidth2)), nil
	case value <= 1<<30-1:
		return binary.LittleEndian.AppendUint32(dst, uint32(value<<2|varintWidth4)), nil
	case value <= MaxVarint:
		return binary.LittleEndian.AppendUint64(dst, value<<2|varintWidth8), nil
	default:
		return dst, fmt.Errorf("%w: varint %d exceeds %d", ErrUnrepresentable, value, uint64(MaxVarint))
	}
}

// ReadVarint decodes the varint at the start of data and returns the
// value and the number of bytes consumed.
func ReadVarint(data []byte) (uint64, int, error) {
	if len(data) == 0 {
		return 0, 0, fmt.Errorf("%w: varint needs 1 byte, have 0", ErrTruncatedBuffer)
	}
	var width int
	switch data[0] & 0x03 {
	case varintWidth1:
		width = 1
	case varintWidth2:
		width = 2
	case varintWidth4:
		width = 4
	default:
		width = 8
	}
	if len(data) < width {
		return 0, 0, fmt.Errorf("%w: varint needs %d bytes, have %d", ErrTruncatedBuffer, width, len(data))
	}

	var raw uint64
	switch width {
	case 1:
		raw = uint64(data[0])
	case 2:
		raw = uint64(binary.LittleEndian.Uint16(data))
	case 4:
		raw = uint64(binary.LittleEndian.Uint32(data))
	default:
		raw = binary.LittleEndian.Uint64(data)
	}
	return raw >> 2, width, nil
}
