// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package bridge exposes the portable-storage codec to a foreign
// runtime through the boundary marshalling contract.
//
// A foreign caller (a JVM through JNI, a C program through
// cmd/libpstore) hands over its own string and byte-array handles. Each
// [Bridge] method copies the input across the boundary, runs the codec,
// and allocates the result in the caller's runtime:
//
//	JSONToBinary        text       -> byte array
//	BinaryToJSON        byte array -> text
//	BinaryBlocksToJSON  byte array -> text (JSON array of records)
//	InitLogging         text, bool
//	SetLogLevel         int
//
// Every failure returns a nil handle and an error that wraps one of the
// sentinels of lib/portable, lib/blockstream, or lib/boundary. A call
// never returns partial output, and a nil handle always means failure:
// an empty result is a non-nil zero-length handle.
//
// The codec methods are stateless and safe to call concurrently. The
// logging methods act on a process-wide [logsink.Sink].
package bridge
