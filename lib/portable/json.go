// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package portable

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ParseJSON parses data as a single JSON object and returns it as a
// section. Key order is preserved. Empty input, invalid UTF-8, syntax
// errors, a non-object top level, and trailing content all fail with
// ErrMalformedJSON.
func (o Options) ParseJSON(data []byte) (Value, error) {
	parser, err := newJSONParser(data, o.maxDepth())
	if err != nil {
		return Value{}, err
	}
	token, err := parser.token()
	if err != nil {
		return Value{}, err
	}
	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return Value{}, fmt.Errorf("%w: top-level value must be an object", ErrMalformedJSON)
	}
	root, err := parser.object(0)
	if err != nil {
		return Value{}, err
	}
	if err := parser.end(); err != nil {
		return Value{}, err
	}
	return root, nil
}

// ParseJSONValue parses any single JSON value, not only objects.
func (o Options) ParseJSONValue(data []byte) (Value, error) {
	parser, err := newJSONParser(data, o.maxDepth())
	if err != nil {
		return Value{}, err
	}
	token, err := parser.token()
	if err != nil {
		return Value{}, err
	}
	value, err := parser.value(token, 0)
	if err != nil {
		return Value{}, err
	}
	if err := parser.end(); err != nil {
		return Value{}, err
	}
	return value, nil
}

// UnmarshalJSON implements json.Unmarshaler with the same mapping as
// ParseJSON, accepting any JSON value.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := Options{}.ParseJSONValue(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// jsonParser is a recursive-descent walk over encoding/json tokens.
// The token stream keeps object key order, which decoding into
// map[string]any would lose.
type jsonParser struct {
	decoder  *json.Decoder
	maxDepth int
}

func newJSONParser(data []byte, maxDepth int) (*jsonParser, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrMalformedJSON)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: input is not valid UTF-8", ErrMalformedJSON)
	}
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	return &jsonParser{decoder: decoder, maxDepth: maxDepth}, nil
}

func (p *jsonParser) token() (json.Token, error) {
	token, err := p.decoder.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: unexpected end of input", ErrMalformedJSON)
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}
	return token, nil
}

// end confirms nothing but whitespace follows the document.
func (p *jsonParser) end() error {
	if _, err := p.decoder.Token(); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: unexpected content after top-level value", ErrMalformedJSON)
	}
	return nil
}

func (p *jsonParser) checkDepth(depth int) error {
	if depth > p.maxDepth {
		return fmt.Errorf("%w: depth %d, limit %d", ErrDepthExceeded, depth, p.maxDepth)
	}
	return nil
}

func (p *jsonParser) value(token json.Token, depth int) (Value, error) {
	switch typed := token.(type) {
	case json.Delim:
		switch typed {
		case '{':
			return p.object(depth + 1)
		case '[':
			return p.array(depth + 1)
		default:
			return Value{}, fmt.Errorf("%w: unexpected %q", ErrMalformedJSON, typed)
		}
	case json.Number:
		return numberValue(typed)
	case string:
		return String(typed), nil
	case bool:
		return Bool(typed), nil
	case nil:
		return Null(), nil
	default:
		return Value{}, fmt.Errorf("%w: unexpected token %v", ErrMalformedJSON, token)
	}
}

// object reads the members of an object whose opening brace was already
// consumed.
func (p *jsonParser) object(depth int) (Value, error) {
	if err := p.checkDepth(depth); err != nil {
		return Value{}, err
	}
	var fields []Field
	seen := make(map[string]struct{})
	for p.decoder.More() {
		keyToken, err := p.token()
		if err != nil {
			return Value{}, err
		}
		key, ok := keyToken.(string)
		if !ok {
			return Value{}, fmt.Errorf("%w: object key is not a string", ErrMalformedJSON)
		}
		if _, duplicate := seen[key]; duplicate {
			return Value{}, fmt.Errorf("%w: %q", ErrDuplicateField, key)
		}
		seen[key] = struct{}{}

		valueToken, err := p.token()
		if err != nil {
			return Value{}, err
		}
		value, err := p.value(valueToken, depth)
		if err != nil {
			return Value{}, fmt.Errorf("field %q: %w", key, err)
		}
		fields = append(fields, Field{Name: key, Value: value})
	}
	if _, err := p.token(); err != nil { // closing brace
		return Value{}, err
	}
	return Value{typ: TypeSection, fields: fields}, nil
}

// array reads the elements of an array whose opening bracket was
// already consumed, then settles the element type.
func (p *jsonParser) array(depth int) (Value, error) {
	if err := p.checkDepth(depth); err != nil {
		return Value{}, err
	}
	var items []Value
	for p.decoder.More() {
		token, err := p.token()
		if err != nil {
			return Value{}, err
		}
		item, err := p.value(token, depth)
		if err != nil {
			return Value{}, fmt.Errorf("item %d: %w", len(items), err)
		}
		items = append(items, item)
	}
	if _, err := p.token(); err != nil { // closing bracket
		return Value{}, err
	}
	return inferArray(items)
}

// numberValue applies the narrowest-lossless rule: integer syntax maps
// to Uint64 when non-negative and Int64 when negative, everything else
// to Double.
func numberValue(number json.Number) (Value, error) {
	literal := number.String()
	if !strings.ContainsAny(literal, ".eE") {
		if !strings.HasPrefix(literal, "-") {
			if unsigned, err := strconv.ParseUint(literal, 10, 64); err == nil {
				return Uint64(unsigned), nil
			}
		} else if signed, err := strconv.ParseInt(literal, 10, 64); err == nil {
			if signed == 0 {
				// "-0" is zero, and zero is non-negative.
				return Uint64(0), nil
			}
			return Int64(signed), nil
		}
	}
	float, err := strconv.ParseFloat(literal, 64)
	if err != nil || math.IsInf(float, 0) {
		return Value{}, fmt.Errorf("%w: number %s is outside the double range", ErrUnrepresentable, literal)
	}
	return Double(float), nil
}

// inferArray picks one element type for items. The first element
// decides, with one widening: numbers unify to the narrowest of Uint64,
// Int64 and Double that holds every element exactly. Empty arrays are
// declared as arrays of sections.
func inferArray(items []Value) (Value, error) {
	if len(items) == 0 {
		return Value{typ: TypeArray, elem: TypeSection}, nil
	}
	first := items[0].typ
	if first.IsNumeric() {
		return unifyNumbers(items)
	}
	for index, item := range items {
		if item.typ != first {
			return Value{}, fmt.Errorf("%w: item %d is %s, item 0 is %s", ErrHeterogeneousArray, index, jsonKind(item.typ), jsonKind(first))
		}
	}
	return Value{typ: TypeArray, elem: first, items: items}, nil
}

func unifyNumbers(items []Value) (Value, error) {
	var hasNegative, hasDouble, hasLargeUnsigned bool
	for index, item := range items {
		switch item.typ {
		case TypeUint64:
			if item.bits > math.MaxInt64 {
				hasLargeUnsigned = true
			}
		case TypeInt64:
			hasNegative = true
		case TypeDouble:
			hasDouble = true
		default:
			return Value{}, fmt.Errorf("%w: item %d is %s, item 0 is a number", ErrHeterogeneousArray, index, jsonKind(item.typ))
		}
	}

	switch {
	case hasDouble:
		converted := make([]Value, len(items))
		for index, item := range items {
			float, ok := exactDouble(item)
			if !ok {
				return Value{}, fmt.Errorf("%w: item %d has no exact double representation in a double array",
					ErrHeterogeneousArray, index)
			}
			converted[index] = Double(float)
		}
		return Value{typ: TypeArray, elem: TypeDouble, items: converted}, nil
	case hasNegative && hasLargeUnsigned:
		return Value{}, fmt.Errorf("%w: array mixes negative integers with integers above int64 range", ErrHeterogeneousArray)
	case hasNegative:
		converted := make([]Value, len(items))
		for index, item := range items {
			converted[index] = Int64(int64(item.bits))
		}
		return Value{typ: TypeArray, elem: TypeInt64, items: converted}, nil
	default:
		return Value{typ: TypeArray, elem: TypeUint64, items: items}, nil
	}
}

// exactDouble converts a Uint64, Int64 or Double item to float64 when
// that loses nothing.
func exactDouble(item Value) (float64, bool) {
	switch item.typ {
	case TypeDouble:
		return math.Float64frombits(item.bits), true
	case TypeUint64:
		float := float64(item.bits)
		if float >= 1<<64 || uint64(float) != item.bits {
			return 0, false
		}
		return float, true
	case TypeInt64:
		signed := int64(item.bits)
		float := float64(signed)
		if float >= 1<<63 || int64(float) != signed {
			return 0, false
		}
		return float, true
	default:
		return 0, false
	}
}

// jsonKind names a wire type the way a JSON author would see it.
func jsonKind(t Type) string {
	switch {
	case t.IsNumeric():
		return "a number"
	case t == TypeString:
		return "a string"
	case t == TypeBool:
		return "a boolean"
	case t == TypeSection:
		return "an object"
	case t == TypeArray:
		return "an array"
	case t == TypeNull:
		return "null"
	default:
		return t.String()
	}
}
