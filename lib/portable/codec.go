// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package portable

import "fmt"

// Default limits applied when the corresponding Options field is zero.
const (
	// DefaultMaxDepth bounds nesting of sections and arrays.
	DefaultMaxDepth = 100

	// DefaultMaxZeroWidthElements bounds arrays whose elements occupy
	// no bytes (arrays of null). Every other array count is bounded by
	// the bytes remaining in the buffer.
	DefaultMaxZeroWidthElements = 1 << 16
)

// Options configures the codec's resource limits. The zero Options uses
// the defaults above. Options is a plain value; share it freely across
// goroutines.
type Options struct {
	// MaxDepth is the deepest nesting of sections and arrays accepted
	// in either direction. The root section is depth 0.
	MaxDepth int

	// MaxZeroWidthElements is the total number of null array elements
	// accepted by one Decode or Encode call, summed over every array in
	// the value.
	MaxZeroWidthElements int
}

// ZeroWidthBudget is the allowance of null array elements left to a
// run of Decode or Encode calls, such as the sections of one block
// stream. Options.Decode and Options.Encode each start a fresh one. A
// budget is not safe for concurrent use.
type ZeroWidthBudget struct {
	remaining int
}

// NewZeroWidthBudget returns a budget of MaxZeroWidthElements.
func (o Options) NewZeroWidthBudget() *ZeroWidthBudget {
	return &ZeroWidthBudget{remaining: o.maxZeroWidthElements()}
}

// Remaining reports how many null array elements the budget allows.
func (b *ZeroWidthBudget) Remaining() int { return b.remaining }

func (b *ZeroWidthBudget) spend(count uint64) error {
	if count > uint64(b.remaining) {
		return fmt.Errorf("%w: %d zero-width elements exceeds the remaining allowance of %d",
			ErrUnrepresentable, count, b.remaining)
	}
	b.remaining -= int(count)
	return nil
}

func (o Options) maxDepth() int {
	if o.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return o.MaxDepth
}

func (o Options) maxZeroWidthElements() int {
	if o.MaxZeroWidthElements <= 0 {
		return DefaultMaxZeroWidthElements
	}
	return o.MaxZeroWidthElements
}

// JSONToBinary parses json as a JSON object and returns its
// portable-storage encoding, header included.
func (o Options) JSONToBinary(json []byte) ([]byte, error) {
	root, err := o.ParseJSON(json)
	if err != nil {
		return nil, err
	}
	return o.Encode(root)
}

// BinaryToJSON decodes a portable-storage buffer and returns its compact
// JSON projection.
//
// The projection is lossy for string payloads that are not valid UTF-8.
// They print as lowercase hex text, which is indistinguishable from a
// UTF-8 string holding the same hex digits, and re-encode as that text
// rather than the original bytes. Decode keeps the raw payload, and
// codec.DiagnosePortable shows the two apart.
func (o Options) BinaryToJSON(bin []byte) ([]byte, error) {
	root, err := o.Decode(bin)
	if err != nil {
		return nil, err
	}
	output, err := AppendJSON(nil, root)
	if err != nil {
		return nil, fmt.Errorf("project to JSON: %w", err)
	}
	return output, nil
}

// JSONToBinary is Options{}.JSONToBinary.
func JSONToBinary(json []byte) ([]byte, error) {
	return Options{}.JSONToBinary(json)
}

// BinaryToJSON is Options{}.BinaryToJSON.
func BinaryToJSON(bin []byte) ([]byte, error) {
	return Options{}.BinaryToJSON(bin)
}

// Decode is Options{}.Decode.
func Decode(bin []byte) (Value, error) {
	return Options{}.Decode(bin)
}

// Encode is Options{}.Encode.
func Encode(root Value) ([]byte, error) {
	return Options{}.Encode(root)
}

// ParseJSON is Options{}.ParseJSON.
func ParseJSON(json []byte) (Value, error) {
	return Options{}.ParseJSON(json)
}
