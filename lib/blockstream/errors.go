// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package blockstream

import (
	"errors"
	"fmt"
)

// ErrTruncatedStream means a record's framing declares more bytes than
// the stream holds.
var ErrTruncatedStream = errors.New("blockstream: truncated stream")

// RecordError reports which record of a stream failed and where it
// starts. Err is either an ErrTruncatedStream wrap or the codec error
// for the record's section.
type RecordError struct {
	// Index is the zero-based position of the record in the stream.
	Index int

	// Offset is the byte offset of the record's first framing byte.
	Offset int

	Err error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("record %d (at byte %d): %v", e.Index, e.Offset, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}
