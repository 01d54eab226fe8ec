// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package portable

import (
	"encoding/binary"
	"fmt"
)

// MaxNameLength is the longest field name the one-byte length prefix
// can carry.
const MaxNameLength = 255

// Encode writes root, which must be a section, as a complete
// portable-storage buffer. It applies the same limits as Decode, so
// every buffer it returns decodes with the same Options.
func (o Options) Encode(root Value) ([]byte, error) {
	return o.EncodeWithBudget(root, o.NewZeroWidthBudget())
}

// EncodeWithBudget is Encode drawing null array elements from budget,
// which may be shared with other calls.
func (o Options) EncodeWithBudget(root Value, budget *ZeroWidthBudget) ([]byte, error) {
	if root.typ != TypeSection {
		return nil, fmt.Errorf("%w: root must be a section, got %s", ErrUnrepresentable, root.typ)
	}
	writer := &writer{
		buffer:    append(make([]byte, 0, 64), header[:]...),
		maxDepth:  o.maxDepth(),
		zeroWidth: budget,
	}
	if err := writer.sectionBody(root, 0); err != nil {
		return nil, err
	}
	return writer.buffer, nil
}

type writer struct {
	buffer    []byte
	maxDepth  int
	zeroWidth *ZeroWidthBudget
}

func (w *writer) varint(value int) error {
	var err error
	w.buffer, err = AppendVarint(w.buffer, uint64(value))
	return err
}

func (w *writer) checkDepth(depth int) error {
	if depth > w.maxDepth {
		return fmt.Errorf("%w: depth %d, limit %d", ErrDepthExceeded, depth, w.maxDepth)
	}
	return nil
}

func (w *writer) sectionBody(section Value, depth int) error {
	if err := w.checkDepth(depth); err != nil {
		return err
	}
	if err := w.varint(len(section.fields)); err != nil {
		return err
	}

	seen := make(map[string]struct{}, len(section.fields))
	for _, field := range section.fields {
		if len(field.Name) > MaxNameLength {
			return fmt.Errorf("%w: field name of %d bytes exceeds %d", ErrUnrepresentable, len(field.Name), MaxNameLength)
		}
		if _, duplicate := seen[field.Name]; duplicate {
			return fmt.Errorf("%w: %q", ErrDuplicateField, field.Name)
		}
		seen[field.Name] = struct{}{}

		w.buffer = append(w.buffer, byte(len(field.Name)))
		w.buffer = append(w.buffer, field.Name...)

		value := field.Value
		if value.typ == TypeArray {
			if err := w.arrayEntry(value, depth+1); err != nil {
				return fmt.Errorf("field %q: %w", field.Name, err)
			}
			continue
		}
		if !value.typ.Valid() {
			return fmt.Errorf("%w: field %q has type %d", ErrUnknownTypeTag, field.Name, uint8(value.typ))
		}
		w.buffer = append(w.buffer, byte(value.typ))
		if err := w.payload(value, depth); err != nil {
			return fmt.Errorf("field %q: %w", field.Name, err)
		}
	}
	return nil
}

// arrayEntry writes a flagged element tag, the count, and the untagged
// payloads.
func (w *writer) arrayEntry(array Value, depth int) error {
	if err := w.checkDepth(depth); err != nil {
		return err
	}
	if !array.elem.Valid() {
		return fmt.Errorf("%w: array element type %d", ErrUnknownTypeTag, uint8(array.elem))
	}
	if array.elem.minPayload() == 0 {
		if err := w.zeroWidth.spend(uint64(len(array.items))); err != nil {
			return err
		}
	}
	w.buffer = append(w.buffer, byte(FlagArray|array.elem))
	if err := w.varint(len(array.items)); err != nil {
		return err
	}
	for index, item := range array.items {
		if item.typ != array.elem {
			return fmt.Errorf("%w: item %d is %s, array declares %s", ErrHeterogeneousArray, index, item.typ, array.elem)
		}
		if err := w.payload(item, depth); err != nil {
			return fmt.Errorf("item %d: %w", index, err)
		}
	}
	return nil
}

// payload writes the untagged payload of value. depth is the depth of
// the containing entry.
func (w *writer) payload(value Value, depth int) error {
	switch value.typ {
	case TypeInt64, TypeUint64, TypeDouble:
		w.buffer = binary.LittleEndian.AppendUint64(w.buffer, value.bits)
	case TypeInt32, TypeUint32:
		w.buffer = binary.LittleEndian.AppendUint32(w.buffer, uint32(value.bits))
	case TypeInt16, TypeUint16:
		w.buffer = binary.LittleEndian.AppendUint16(w.buffer, uint16(value.bits))
	case TypeInt8, TypeUint8, TypeBool:
		w.buffer = append(w.buffer, byte(value.bits))
	case TypeString:
		if err := w.varint(len(value.data)); err != nil {
			return err
		}
		w.buffer = append(w.buffer, value.data...)
	case TypeSection:
		return w.sectionBody(value, depth+1)
	case TypeArray:
		return w.arrayEntry(value, depth+1)
	case TypeNull:
	default:
		return fmt.Errorf("%w: %d", ErrUnknownTypeTag, uint8(value.typ))
	}
	return nil
}
