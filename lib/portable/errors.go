// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package portable

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedJSON is returned when input text is not a single,
	// well-formed UTF-8 JSON object.
	ErrMalformedJSON = errors.New("portable: malformed JSON")

	// ErrHeterogeneousArray is returned when a JSON array mixes
	// elements that no single wire element type can hold.
	ErrHeterogeneousArray = errors.New("portable: heterogeneous array")

	// ErrInvalidSignature is returned when a buffer does not start with
	// the portable-storage signature and version.
	ErrInvalidSignature = errors.New("portable: invalid signature")

	// ErrTruncatedBuffer is returned when a declared length or count
	// would read past the end of the buffer.
	ErrTruncatedBuffer = errors.New("portable: truncated buffer")

	// ErrUnknownTypeTag is returned for a type discriminator outside the
	// known set.
	ErrUnknownTypeTag = errors.New("portable: unknown type tag")

	// ErrDuplicateField is returned when a section (or JSON object)
	// names the same field twice.
	ErrDuplicateField = errors.New("portable: duplicate field")

	// ErrDepthExceeded is returned when sections and arrays nest deeper
	// than Options.MaxDepth.
	ErrDepthExceeded = errors.New("portable: nesting depth exceeded")

	// ErrTrailingData is returned when bytes remain after the root
	// section.
	ErrTrailingData = errors.New("portable: trailing data after root section")

	// ErrUnrepresentable is returned when a value cannot be carried by
	// the target encoding: non-finite doubles in JSON, field names
	// longer than 255 bytes, lengths beyond the varint range.
	ErrUnrepresentable = errors.New("portable: value not representable")
)

// DecodeError records where binary decoding stopped. Err wraps one of
// the sentinel errors above.
type DecodeError struct {
	// Offset is the byte offset into the buffer at which the failing
	// read started.
	Offset int

	// Err is the underlying cause.
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%v (at byte %d)", e.Err, e.Offset)
}

// Unwrap returns the underlying cause so errors.Is sees the sentinel.
func (e *DecodeError) Unwrap() error { return e.Err }
