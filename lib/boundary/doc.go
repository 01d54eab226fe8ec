// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package boundary moves text and byte buffers across a foreign call
// boundary without retaining anything from the other side.
//
// The caller's objects are reached only through small handle
// interfaces: [ByteArray] for byte arrays (length plus region copy in
// and out), [Text] for strings (re-encoded to UTF-8 on request), and
// [Runtime] for allocating new ones. A handle is valid only for the
// duration of the call that received it. Inbound helpers copy the
// caller's data into Go memory before returning; outbound helpers
// allocate exactly the needed size in the caller's runtime and copy
// into it.
//
// Failures are never hidden. An allocation the runtime refuses returns
// a nil handle and [ErrAllocationFailed], which is distinct from an
// empty result: a zero-length output is a valid, non-nil handle. Text
// that is not valid UTF-8 is rejected, never patched with replacement
// characters.
//
// Runtimes differ in how they want text encoded. JNI-style runtimes
// take "modified UTF-8", in which NUL is the two bytes C0 80 and a
// supplementary character is a surrogate pair of three-byte sequences.
// C callers take NUL-terminated UTF-8, which cannot carry an embedded
// NUL. UTF-16 runtimes take little-endian code units. [TextOut] applies
// the encoding the runtime declares.
//
// [HeapRuntime] is a Go-memory runtime with an optional byte quota. It
// backs in-process callers and makes allocation failure reproducible.
package boundary
