// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package blockstream reads and writes concatenated portable-storage
// records ("blocks"), each carrying a section and a list of opaque
// transaction blobs.
//
// Every integer in the framing is a portable-storage varint:
//
//	record  := sectionLength section txCount { txLength txBytes }*
//	section := a complete portable-storage buffer, header included
//
// [Decode] returns the records in stream order. [BinaryBlocksToJSON]
// renders them as one JSON array whose elements are each record's
// section with the transactions added under a configurable field name,
// as hex or base64 text. Transaction bytes are never parsed.
//
// Decoding is all-or-nothing: a frame that runs past the end of the
// input fails with [ErrTruncatedStream], and any record that fails to
// decode aborts the call with a [*RecordError] naming the record. No
// partial list is ever returned.
package blockstream
