// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"encoding/binary"
	"fmt"
	"unicode/utf8"

	"github.com/bureau-foundation/pstore/lib/portable"
	"github.com/fxamacker/cbor/v2"
)

// encMode encodes scalars and arrays. Core Deterministic Encoding gives
// the smallest integer heads; float shortening is disabled so a Double
// stays a 64-bit float in the output.
var encMode cbor.EncMode

func init() {
	var err error

	encOptions := cbor.CoreDetEncOptions()
	encOptions.ShortestFloat = cbor.ShortestFloatNone
	encMode, err = encOptions.EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}
}

// Marshal encodes v to CBOR with the package's encoder mode.
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// RawMessage is a raw encoded CBOR value. Type alias so consumers import
// only lib/codec, not fxamacker/cbor directly.
type RawMessage = cbor.RawMessage

// FromPortable returns the CBOR encoding of v.
func FromPortable(v portable.Value) ([]byte, error) {
	return appendPortable(nil, v)
}

func appendPortable(dst []byte, v portable.Value) ([]byte, error) {
	switch v.Type() {
	case portable.TypeSection:
		fields := v.Fields()
		dst = appendHead(dst, majorMap, uint64(len(fields)))
		for _, field := range fields {
			if !utf8.ValidString(field.Name) {
				return nil, fmt.Errorf("codec: field name %q is not valid UTF-8", field.Name)
			}
			key, err := encMode.Marshal(field.Name)
			if err != nil {
				return nil, err
			}
			dst = append(dst, key...)
			if dst, err = appendPortable(dst, field.Value); err != nil {
				return nil, fmt.Errorf("field %q: %w", field.Name, err)
			}
		}
		return dst, nil
	case portable.TypeArray:
		items := v.Items()
		encoded := make([]RawMessage, len(items))
		for index, item := range items {
			raw, err := appendPortable(nil, item)
			if err != nil {
				return nil, fmt.Errorf("item %d: %w", index, err)
			}
			encoded[index] = raw
		}
		data, err := encMode.Marshal(encoded)
		if err != nil {
			return nil, err
		}
		return append(dst, data...), nil
	default:
		scalar, err := scalarOf(v)
		if err != nil {
			return nil, err
		}
		data, err := encMode.Marshal(scalar)
		if err != nil {
			return nil, err
		}
		return append(dst, data...), nil
	}
}

// scalarOf returns the Go value whose CBOR encoding represents v.
func scalarOf(v portable.Value) (any, error) {
	if signed, ok := v.Int(); ok {
		return signed, nil
	}
	if unsigned, ok := v.Uint(); ok {
		return unsigned, nil
	}
	if float, ok := v.Float(); ok {
		return float, nil
	}
	if boolean, ok := v.Bool(); ok {
		return boolean, nil
	}
	if text, ok := v.Text(); ok {
		return text, nil
	}
	if raw, ok := v.Raw(); ok {
		return raw, nil
	}
	if v.IsNull() {
		return nil, nil
	}
	return nil, fmt.Errorf("codec: no CBOR form for portable type %s", v.Type())
}

const majorMap = 5

// appendHead writes a CBOR data item head. fxamacker/cbor only emits
// maps from Go maps and structs, neither of which can carry a
// caller-chosen key order, so section heads are written here.
func appendHead(dst []byte, major byte, argument uint64) []byte {
	initial := major << 5
	switch {
	case argument < 24:
		return append(dst, initial|byte(argument))
	case argument <= 0xff:
		return append(dst, initial|24, byte(argument))
	case argument <= 0xffff:
		return binary.BigEndian.AppendUint16(append(dst, initial|25), uint16(argument))
	case argument <= 0xffffffff:
		return binary.BigEndian.AppendUint32(append(dst, initial|26), uint32(argument))
	default:
		return binary.BigEndian.AppendUint64(append(dst, initial|27), argument)
	}
}

// Diagnose returns the CBOR diagnostic notation (RFC 8949 §8) for the
// entire contents of data.
func Diagnose(data []byte) (string, error) {
	return cbor.Diagnose(data)
}

// DiagnoseFirst returns the CBOR diagnostic notation for the first
// data item in data, along with the remaining unconsumed bytes. Use
// this to process CBOR sequences one item at a time.
func DiagnoseFirst(data []byte) (string, []byte, error) {
	return cbor.DiagnoseFirst(data)
}

// DiagnosePortable returns the diagnostic notation of v's CBOR form.
func DiagnosePortable(v portable.Value) (string, error) {
	data, err := FromPortable(v)
	if err != nil {
		return "", err
	}
	return Diagnose(data)
}
